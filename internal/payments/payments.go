package payments

import (
	"context"
	"fmt"

	"github.com/xaenox/scamshield/internal/entitlement"
	"go.uber.org/zap"
)

// Event types recognized by the handler. Events arrive already verified by
// the payment collaborator; only the user reference and type matter here.
const (
	EventCheckoutCompleted = "checkout.session.completed"
	EventPaymentFailed     = "invoice.payment_failed"
)

// Event is a verified payment notification for one user. Days overrides the
// default grant length when positive.
type Event struct {
	Type   string `json:"type" binding:"required"`
	UserID int64  `json:"user_id" binding:"required"`
	Days   int    `json:"days,omitempty"`
}

// Notifier delivers a short status text to a user, typically over the bot
// transport. Failures are logged, never propagated to the payment flow.
type Notifier func(userID int64, text string)

// Handler maps payment events onto entitlement grants.
type Handler struct {
	entitlements *entitlement.Service
	notify       Notifier
	defaultDays  int
	logger       *zap.Logger
}

func NewHandler(entitlements *entitlement.Service, notify Notifier, defaultDays int, logger *zap.Logger) *Handler {
	return &Handler{
		entitlements: entitlements,
		notify:       notify,
		defaultDays:  defaultDays,
		logger:       logger,
	}
}

// HandleEvent processes one verified payment event. Unknown event types are
// ignored so the sender can deliver its full event stream.
func (h *Handler) HandleEvent(ctx context.Context, ev Event) error {
	switch ev.Type {
	case EventCheckoutCompleted:
		days := ev.Days
		if days <= 0 {
			days = h.defaultDays
		}
		until, err := h.entitlements.Grant(ctx, ev.UserID, days)
		if err != nil {
			return fmt.Errorf("failed to grant premium: %w", err)
		}
		h.logger.Info("checkout completed",
			zap.Int64("user_id", ev.UserID),
			zap.Time("premium_until", until))
		if h.notify != nil {
			h.notify(ev.UserID, "🎉 Thank you — your subscription is active! You are now Premium.")
		}
	case EventPaymentFailed:
		h.logger.Warn("payment failed", zap.Int64("user_id", ev.UserID))
		if h.notify != nil {
			h.notify(ev.UserID, "⚠️ Payment failed. Please update your payment method.")
		}
	default:
		h.logger.Debug("ignoring payment event", zap.String("type", ev.Type))
	}
	return nil
}
