package classifier

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

const systemPrompt = "You are ScamShield: short, precise scam detection."

type OpenAIClassifier struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float64
	logger      *zap.Logger
}

// NewOpenAIClassifier builds a classifier backed by the OpenAI chat API.
// An empty apiKey is allowed; Classify then fails with ErrNotConfigured so
// the caller's degraded path kicks in.
func NewOpenAIClassifier(apiKey string, model string, maxTokens int, temperature float64, logger *zap.Logger) *OpenAIClassifier {
	var client *openai.Client
	if apiKey != "" {
		client = openai.NewClient(apiKey)
	}
	return &OpenAIClassifier{
		client:      client,
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
		logger:      logger,
	}
}

func (c *OpenAIClassifier) Classify(ctx context.Context, text string) (string, error) {
	if c.client == nil {
		return "", ErrNotConfigured
	}

	prompt := fmt.Sprintf("Analyze for scams and return a short verdict, 3 reasons and a one-line advice:\n\n%s", text)

	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: systemPrompt,
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			MaxTokens:   c.maxTokens,
			Temperature: float32(c.temperature),
		},
	)
	if err != nil {
		c.logger.Error("OpenAI request failed", zap.Error(err))
		return "", fmt.Errorf("%w: %v", ErrTransport, err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrUnparseable
	}
	answer := strings.TrimSpace(resp.Choices[0].Message.Content)
	if answer == "" {
		return "", ErrUnparseable
	}
	return answer, nil
}
