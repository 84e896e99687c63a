package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/xaenox/scamshield/internal/entitlement"
	"github.com/xaenox/scamshield/internal/models"
	"github.com/xaenox/scamshield/internal/orchestrator"
	"github.com/xaenox/scamshield/internal/promo"
	"github.com/xaenox/scamshield/internal/verdict"
	"go.uber.org/zap"
)

type Bot struct {
	api          *tgbotapi.BotAPI
	orchestrator *orchestrator.Orchestrator
	entitlements *entitlement.Service
	redeemer     *promo.Redeemer
	dailyLimit   int
	checkoutURL  string
	logger       *zap.Logger
}

func New(token string, orch *orchestrator.Orchestrator, entitlements *entitlement.Service, redeemer *promo.Redeemer, dailyLimit int, checkoutURL string, logger *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	return &Bot{
		api:          api,
		orchestrator: orch,
		entitlements: entitlements,
		redeemer:     redeemer,
		dailyLimit:   dailyLimit,
		checkoutURL:  checkoutURL,
		logger:       logger,
	}, nil
}

func (b *Bot) Start() error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for update := range updates {
		if update.Message == nil {
			continue
		}

		go b.handleMessage(update.Message)
	}

	return nil
}

func (b *Bot) handleMessage(message *tgbotapi.Message) {
	ctx := context.Background()

	if message.IsCommand() {
		b.handleCommand(ctx, message)
		return
	}

	msg := models.Message{
		UserID:     message.From.ID,
		Text:       message.Text,
		ReceivedAt: time.Now(),
	}

	result, err := b.orchestrator.Handle(ctx, msg)
	if err != nil {
		b.replyToError(message, err)
		return
	}

	if result.UsedFallback {
		// AI advisory text replaces the rule-based report entirely.
		b.sendMessage(message.Chat.ID, result.Advice)
		return
	}

	b.sendVerdict(message.Chat.ID, message.MessageID, &result)
}

func (b *Bot) replyToError(message *tgbotapi.Message, err error) {
	var quotaErr *orchestrator.QuotaExceededError
	switch {
	case errors.Is(err, orchestrator.ErrEmptyText):
		b.sendMessage(message.Chat.ID, "Please send text for analysis.")
	case errors.As(err, &quotaErr):
		b.sendMessage(message.Chat.ID, fmt.Sprintf("Daily limit reached (%d). Use /upgrade for unlimited checks.", quotaErr.Limit))
	default:
		b.logger.Error("failed to analyze message",
			zap.Error(err),
			zap.Int64("user_id", message.From.ID))
		b.sendErrorMessage(message.Chat.ID, "An error occurred. Try again later.")
	}
}

func (b *Bot) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	switch message.Command() {
	case "start":
		b.handleStart(message)
	case "help":
		b.handleHelp(message)
	case "status":
		b.handleStatus(ctx, message)
	case "upgrade":
		b.handleUpgrade(message)
	case "redeem":
		b.handleRedeem(ctx, message)
	default:
		b.sendMessage(message.Chat.ID, "Unknown command. Use /help to see available commands.")
	}
}

func (b *Bot) handleStart(message *tgbotapi.Message) {
	welcome := fmt.Sprintf(`👋 ScamShield — paste a suspicious message and I'll check it.

Free users get %d checks per day. Upgrade for unlimited checks.
Use /help to see all available commands.`, b.dailyLimit)

	b.sendMessage(message.Chat.ID, welcome)
}

func (b *Bot) handleHelp(message *tgbotapi.Message) {
	help := `Available commands:
/start - Start the bot
/help - Show this help message
/status - Show your plan
/upgrade - Get an upgrade link
/redeem <code> - Redeem a promo code

Send any text and I will analyze it for scam signals.`

	b.sendMessage(message.Chat.ID, help)
}

func (b *Bot) handleStatus(ctx context.Context, message *tgbotapi.Message) {
	premium, err := b.entitlements.IsPremium(ctx, message.From.ID)
	if err != nil {
		b.logger.Error("failed to check premium status",
			zap.Error(err),
			zap.Int64("user_id", message.From.ID))
		b.sendErrorMessage(message.Chat.ID, "Sorry, I couldn't check your plan. Please try again later.")
		return
	}

	if premium {
		b.sendMessage(message.Chat.ID, "🎉 You are PREMIUM — unlimited checks.")
		return
	}
	b.sendMessage(message.Chat.ID, fmt.Sprintf("Free user — %d checks/day. Use /upgrade to subscribe.", b.dailyLimit))
}

func (b *Bot) handleUpgrade(message *tgbotapi.Message) {
	if b.checkoutURL == "" {
		b.sendErrorMessage(message.Chat.ID, "Upgrade not configured. Contact admin.")
		return
	}
	b.sendMessage(message.Chat.ID, "💳 Upgrade to Premium: "+b.checkoutURL)
}

func (b *Bot) handleRedeem(ctx context.Context, message *tgbotapi.Message) {
	code := strings.TrimSpace(message.CommandArguments())
	if code == "" {
		b.sendMessage(message.Chat.ID, "Usage: /redeem <code>")
		return
	}

	c, err := b.redeemer.Redeem(ctx, message.From.ID, code)
	if errors.Is(err, promo.ErrUnknownCode) {
		b.sendMessage(message.Chat.ID, "That code isn't valid.")
		return
	}
	if err != nil {
		b.logger.Error("failed to redeem promo code",
			zap.Error(err),
			zap.Int64("user_id", message.From.ID))
		b.sendErrorMessage(message.Chat.ID, "Sorry, I couldn't redeem that code. Please try again later.")
		return
	}

	b.sendMessage(message.Chat.ID, fmt.Sprintf("🎉 %s — %d days of Premium added.", c.Description, c.Days))
}

// Notify delivers a plain status text to a user, for collaborators such as
// the payments handler.
func (b *Bot) Notify(userID int64, text string) {
	b.sendMessage(userID, text)
}

func (b *Bot) sendVerdict(chatID int64, replyToID int, result *verdict.Result) {
	emoji := map[verdict.Verdict]string{
		verdict.High:   "⚠️",
		verdict.Medium: "❗",
		verdict.Low:    "✅",
	}[result.Verdict]

	text := fmt.Sprintf("%s *Verdict:* *%s*  _\\(score: %d/100\\)_", emoji, result.Verdict, result.Score)

	if len(result.Flags) > 0 {
		text += "\n\n*Top flags:*"
		for _, flag := range result.Flags {
			text += "\n• " + escapeMarkdown(flag)
		}
	}
	text += "\n\n*Advice:* " + escapeMarkdown(result.Advice)

	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "MarkdownV2"
	msg.ReplyToMessageID = replyToID

	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("Failed to send verdict",
			zap.Error(err),
			zap.Int64("chat_id", chatID))
	}
}

// Escape special characters for MarkdownV2
func escapeMarkdown(text string) string {
	specialChars := []string{"_", "*", "[", "]", "(", ")", "~", "`", ">", "#", "+", "-", "=", "|", "{", "}", ".", "!"}
	escaped := text
	for _, char := range specialChars {
		escaped = strings.ReplaceAll(escaped, char, "\\"+char)
	}
	return escaped
}

func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("Failed to send message",
			zap.Error(err),
			zap.Int64("chat_id", chatID))
	}
}

func (b *Bot) sendErrorMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, "⚠️ "+text)
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("Failed to send error message",
			zap.Error(err),
			zap.Int64("chat_id", chatID))
	}
}
