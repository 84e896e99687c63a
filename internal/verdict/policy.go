package verdict

import (
	"context"
	"time"

	"github.com/xaenox/scamshield/internal/classifier"
	"github.com/xaenox/scamshield/internal/scanner"
	"go.uber.org/zap"
)

// Policy turns a rule-based scan into a final Result, deferring to the AI
// classifier inside the ambiguous band. Classifier failures never reach the
// caller; the rule-based result is returned instead.
type Policy struct {
	classifier classifier.Classifier
	timeout    time.Duration
	logger     *zap.Logger
}

func NewPolicy(clf classifier.Classifier, timeout time.Duration, logger *zap.Logger) *Policy {
	return &Policy{
		classifier: clf,
		timeout:    timeout,
		logger:     logger,
	}
}

func (p *Policy) Decide(ctx context.Context, scan scanner.Result, text string) Result {
	ruleBased := Result{
		Verdict: Tier(scan.Score),
		Score:   scan.Score,
		Flags:   scan.Flags,
		Advice:  adviceFor(Tier(scan.Score)),
	}

	if !Ambiguous(scan.Score) || p.classifier == nil {
		return ruleBased
	}

	cctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	answer, err := p.classifier.Classify(cctx, text)
	if err != nil {
		p.logger.Warn("classifier fallback failed, using rule-based verdict",
			zap.Error(err),
			zap.Int("score", scan.Score))
		return ruleBased
	}

	// The AI answer supersedes the rule output entirely for display.
	return Result{
		Advice:       answer,
		UsedFallback: true,
	}
}
