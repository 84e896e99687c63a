package verdict

// Verdict is the risk tier assigned to a message, ordered Low < Medium < High.
type Verdict string

const (
	Low    Verdict = "Low"
	Medium Verdict = "Medium"
	High   Verdict = "High"
)

// Tier thresholds and the ambiguous band. The band deliberately extends past
// the Medium/High boundary at 60: scores 16..59 are eligible for an AI
// override, 15 and 60 are not.
const (
	highThreshold   = 60
	mediumThreshold = 30
	ambiguousLow    = 15
	ambiguousHigh   = 60
)

const (
	adviceHigh   = "do not click or reply, verify independently"
	adviceMedium = "be cautious, verify sender and links"
	adviceLow    = "appears low risk, but verify requests for money or credentials."
)

// Result is the final payload for one analyzed message. When UsedFallback is
// set the AI advisory text in Advice fully supersedes the rule-based fields,
// which are left zeroed.
type Result struct {
	Verdict      Verdict  `json:"verdict,omitempty"`
	Score        int      `json:"score"`
	Flags        []string `json:"flags,omitempty"`
	Advice       string   `json:"advice"`
	UsedFallback bool     `json:"used_fallback"`
}

// Tier maps a score to its verdict.
func Tier(score int) Verdict {
	switch {
	case score >= highThreshold:
		return High
	case score >= mediumThreshold:
		return Medium
	default:
		return Low
	}
}

func adviceFor(v Verdict) string {
	switch v {
	case High:
		return adviceHigh
	case Medium:
		return adviceMedium
	default:
		return adviceLow
	}
}

// Ambiguous reports whether a score falls in the band where the rule-based
// result is least confident.
func Ambiguous(score int) bool {
	return score > ambiguousLow && score < ambiguousHigh
}
