package scanner

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// Result is the outcome of a rule-based scan. Flags are ordered by rule
// evaluation order and capped at MaxFlags.
type Result struct {
	Score int
	Flags []string
}

// MaxFlags caps the number of reasons reported per scan.
const MaxFlags = 8

// Rule weights. Each keyword pattern contributes independently.
const (
	keywordWeight   = 18
	urlWeight       = 12
	shortenerWeight = 25
	moneyWeight     = 12
	urgencyWeight   = 8
	shoutingWeight  = 6
)

type pattern struct {
	name string
	re   *regexp.Regexp
}

// Each entry is one independently scored signal. Related phrasings share a
// pattern so a message repeating the same trick is not double counted.
var keywordPatterns = []pattern{
	{"money transfer request", regexp.MustCompile(`wire transfer|western union|bank transfer|send money|money transfer`)},
	{"urgency language", regexp.MustCompile(`urgent|act now|limited time|final notice`)},
	{"credential request", regexp.MustCompile(`verify your account|verify your identity|confirm your account|password`)},
	{"account suspension threat", regexp.MustCompile(`account suspended|account is suspended|will be suspended|account has been locked`)},
	{"prize language", regexp.MustCompile(`congratulations|winner|you won|prize|lottery`)},
	{"claim prompt", regexp.MustCompile(`claim now|verify now|claim your`)},
	{"deposit or loan offer", regexp.MustCompile(`deposit|loan offer|investment scheme`)},
	{"link bait", regexp.MustCompile(`click the link|click this link|click here`)},
}

var (
	urlPattern       = regexp.MustCompile(`https?://\S+`)
	shortenerPattern = regexp.MustCompile(`(?i)bit\.ly|tinyurl|t\.co|goo\.gl|ow\.ly|tiny\.cc|is\.gd|buff\.ly`)
	dollarPattern    = regexp.MustCompile(`\$\s?\d{2,}`)
	usdPattern       = regexp.MustCompile(`(?i)\d+\s?USD`)
	bangPattern      = regexp.MustCompile(`!!+`)
)

// Analyze scores text for scam signals. It is pure and deterministic: the
// same text always yields the same result. Empty or whitespace-only text
// scores 0 with no flags; rejecting such input is the caller's job.
func Analyze(text string) Result {
	score := 0
	var flags []string
	lower := strings.ToLower(text)

	for _, p := range keywordPatterns {
		if match := p.re.FindString(lower); match != "" {
			score += keywordWeight
			flags = append(flags, fmt.Sprintf("Suspicious phrase: %q", match))
		}
	}

	if urls := urlPattern.FindAllString(text, -1); len(urls) > 0 {
		score += urlWeight
		flags = append(flags, "URL(s): "+truncate(strings.Join(urls, ", "), 200))
		if shortenerPattern.MatchString(strings.Join(urls, " ")) {
			score += shortenerWeight
			flags = append(flags, "Shortened URL detected")
		}
	}

	if dollarPattern.MatchString(text) || usdPattern.MatchString(text) {
		score += moneyWeight
		flags = append(flags, "Mentions money")
	}

	if bangPattern.MatchString(text) {
		score += urgencyWeight
		flags = append(flags, "Urgent punctuation")
	}

	if shouting(text) {
		score += shoutingWeight
		flags = append(flags, "Many uppercase characters")
	}

	if score > 100 {
		score = 100
	}
	if len(flags) > MaxFlags {
		flags = flags[:MaxFlags]
	}

	return Result{Score: score, Flags: flags}
}

// shouting reports whether the uppercase rune count exceeds
// max(6, 0.12 × rune length).
func shouting(text string) bool {
	upper := 0
	length := 0
	for _, r := range text {
		length++
		if unicode.IsUpper(r) {
			upper++
		}
	}
	threshold := int(float64(length) * 0.12)
	if threshold < 6 {
		threshold = 6
	}
	return upper > threshold
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
