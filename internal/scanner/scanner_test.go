package scanner

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeEmptyText(t *testing.T) {
	result := Analyze("")
	assert.Equal(t, 0, result.Score)
	assert.Empty(t, result.Flags)

	result = Analyze("   \n\t  ")
	assert.Equal(t, 0, result.Score)
	assert.Empty(t, result.Flags)
}

func TestAnalyzeBenignText(t *testing.T) {
	result := Analyze("Hey, are we still meeting at 5pm?")
	assert.Equal(t, 0, result.Score)
	assert.Empty(t, result.Flags)
}

func TestAnalyzeHighRiskMessage(t *testing.T) {
	// Three keyword patterns (urgency, credential request, suspension
	// threat) plus URL, shortener and urgency punctuation: 54+12+25+8.
	text := "URGENT!! Verify your account now or it will be suspended. Click http://bit.ly/xyz"
	result := Analyze(text)

	assert.Equal(t, 99, result.Score)
	require.Len(t, result.Flags, 6)
	assert.Contains(t, result.Flags[0], "urgent")
	assert.Contains(t, result.Flags[1], "verify your account")
	assert.Contains(t, result.Flags[2], "will be suspended")
	assert.Contains(t, result.Flags[3], "http://bit.ly/xyz")
	assert.Equal(t, "Shortened URL detected", result.Flags[4])
	assert.Equal(t, "Urgent punctuation", result.Flags[5])
}

func TestAnalyzePrizeMessage(t *testing.T) {
	// Prize language and the claim prompt are two independent patterns.
	result := Analyze("Congratulations, you won a prize, claim now")
	assert.Equal(t, 36, result.Score)
	assert.Len(t, result.Flags, 2)
}

func TestAnalyzeScoreBounds(t *testing.T) {
	texts := []string{
		"",
		"hello",
		"URGENT!! wire transfer $500 USD winner claim now password deposit click here verify your account will be suspended http://bit.ly/x LOTS OF UPPERCASE TEXT!!!",
		strings.Repeat("urgent prize lottery winner ", 50),
	}
	for _, text := range texts {
		result := Analyze(text)
		assert.GreaterOrEqual(t, result.Score, 0, "text: %q", text)
		assert.LessOrEqual(t, result.Score, 100, "text: %q", text)
		assert.LessOrEqual(t, len(result.Flags), MaxFlags, "text: %q", text)
	}
}

func TestAnalyzeClampsAndCapsFlags(t *testing.T) {
	// Every rule fires: 8 keyword patterns plus URL, shortener, money,
	// punctuation and shouting would raise 11 flags and push the raw
	// score past 100.
	text := "URGENT WIRE TRANSFER!! verify your account, account suspended, " +
		"CONGRATULATIONS WINNER claim now, deposit $500 USD, " +
		"click the link http://bit.ly/xyz NOW"
	result := Analyze(text)

	assert.Equal(t, 100, result.Score)
	assert.Len(t, result.Flags, MaxFlags)
}

func TestAnalyzeDeterministic(t *testing.T) {
	text := "urgent: send money now!!"
	first := Analyze(text)
	second := Analyze(text)
	assert.Equal(t, first, second)
}

func TestAnalyzeMoneyMentions(t *testing.T) {
	tests := []struct {
		name string
		text string
		hit  bool
	}{
		{"dollar amount", "send $250 today", true},
		{"dollar with space", "send $ 250 today", true},
		{"usd suffix", "transfer 100 USD please", true},
		{"usd lowercase", "transfer 100usd please", true},
		{"single digit dollar", "that costs $5", false},
		{"no money", "see you tomorrow", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Analyze(tt.text)
			if tt.hit {
				assert.Equal(t, moneyWeight, result.Score)
				assert.Contains(t, result.Flags, "Mentions money")
			} else {
				assert.NotContains(t, result.Flags, "Mentions money")
			}
		})
	}
}

func TestAnalyzeURLWithoutShortener(t *testing.T) {
	result := Analyze("docs are at https://example.com/report")
	assert.Equal(t, urlWeight, result.Score)
	require.Len(t, result.Flags, 1)
	assert.Contains(t, result.Flags[0], "https://example.com/report")
}

func TestAnalyzeUrgencyPunctuation(t *testing.T) {
	assert.Equal(t, urgencyWeight, Analyze("reply soon!!").Score)
	assert.Equal(t, urgencyWeight, Analyze("reply soon!!!!!").Score)
	assert.Equal(t, 0, Analyze("reply soon!").Score)
}

func TestAnalyzeShouting(t *testing.T) {
	result := Analyze("PLEASE RESPOND TO THIS IMPORTANT NOTICE")
	assert.Equal(t, shoutingWeight, result.Score)
	assert.Contains(t, result.Flags, "Many uppercase characters")

	// Short texts tolerate up to six uppercase runes.
	assert.Equal(t, 0, Analyze("OK THX").Score)
}
