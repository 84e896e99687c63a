package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/xaenox/scamshield/internal/models"
	"github.com/xaenox/scamshield/internal/quota"
	"github.com/xaenox/scamshield/internal/scanner"
	"github.com/xaenox/scamshield/internal/verdict"
	"go.uber.org/zap"
)

// ErrEmptyText marks a message with nothing to analyze. It is an input
// rejection, not a zero score.
var ErrEmptyText = errors.New("nothing to analyze")

// QuotaExceededError is returned when a non-premium user is out of checks
// for the day. It carries the limit for display.
type QuotaExceededError struct {
	Limit int
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("daily limit of %d checks reached", e.Limit)
}

// Orchestrator runs the per-message pipeline: quota, scan, policy.
type Orchestrator struct {
	quota  *quota.Quota
	policy *verdict.Policy
	logger *zap.Logger
}

func New(q *quota.Quota, policy *verdict.Policy, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{
		quota:  q,
		policy: policy,
		logger: logger,
	}
}

// Handle analyzes one inbound message. It returns ErrEmptyText for blank
// input, *QuotaExceededError when the user is out of checks, and propagates
// storage failures as-is: a request whose quota state is unknown is never
// silently let through.
func (o *Orchestrator) Handle(ctx context.Context, msg models.Message) (verdict.Result, error) {
	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return verdict.Result{}, ErrEmptyText
	}

	check, err := o.quota.CheckAndIncrement(ctx, msg.UserID)
	if err != nil {
		return verdict.Result{}, fmt.Errorf("quota check failed: %w", err)
	}
	if !check.Allowed {
		return verdict.Result{}, &QuotaExceededError{Limit: check.Limit}
	}

	scanID := uuid.New().String()
	scan := scanner.Analyze(text)
	result := o.policy.Decide(ctx, scan, text)

	o.logger.Info("message analyzed",
		zap.String("scan_id", scanID),
		zap.Int64("user_id", msg.UserID),
		zap.Int("score", scan.Score),
		zap.String("verdict", string(result.Verdict)),
		zap.Bool("used_fallback", result.UsedFallback))
	return result, nil
}
