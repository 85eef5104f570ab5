package llm

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// RecommendationSystemPrompt constrains recommendation replies
const RecommendationSystemPrompt = "You are a supportive wellbeing coach, not a clinician. " +
	"Reply only with 4 to 6 short, practical, non-clinical self-care tips as markdown bullet points starting with \"• \". " +
	"Do not diagnose, do not mention medication, and suggest professional or crisis support if the conversation indicates risk."

// RecommendationInput carries the derived metrics of the last session
type RecommendationInput struct {
	SentimentLabel string
	SentimentScore int
	RiskPercent    int
	Transcript     string
}

// BuildRecommendationPrompt creates the user prompt for tip generation
func BuildRecommendationPrompt(in RecommendationInput) string {
	transcript := in.Transcript
	if strings.TrimSpace(transcript) == "" {
		transcript = "(no conversation recorded)"
	}

	return fmt.Sprintf(`Here is a summary of my most recent therapy session.

Overall mood: %s (sentiment score %d)
Estimated depression risk: %d%%

Conversation transcript:
%s

Based on this, suggest a few actionable things I could try over the next few days.`,
		in.SentimentLabel, in.SentimentScore, in.RiskPercent, transcript)
}

// Truncate caps s at maxChars runes, appending an ellipsis when it cuts.
// A non-positive maxChars disables the cap.
func Truncate(s string, maxChars int) string {
	if maxChars <= 0 || utf8.RuneCountInString(s) <= maxChars {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxChars]) + "…"
}

// CleanReply trims the reply and unwraps it when the whole reply is a single
// fenced code block
func CleanReply(content string) string {
	trimmed := strings.TrimSpace(content)
	if inner := extractFromCodeBlock(trimmed, "```"); inner != "" {
		return inner
	}
	return trimmed
}

func extractFromCodeBlock(content, marker string) string {
	if !strings.HasPrefix(content, marker) || !strings.HasSuffix(content, marker) || len(content) < 2*len(marker) {
		return ""
	}

	inner := content[len(marker) : len(content)-len(marker)]
	// Skip the info string (e.g. ```markdown) on the opening line
	if nl := strings.IndexByte(inner, '\n'); nl != -1 && !strings.ContainsAny(inner[:nl], " \t") {
		inner = inner[nl+1:]
	}
	return strings.TrimSpace(inner)
}
