package oracle

import (
	"fmt"
	"strings"

	"github.com/JustinTDCT/SkipVault/internal/models"
	"github.com/JustinTDCT/SkipVault/internal/synthesis"
)

// MaxPromptTokens is the transcript token budget for a single request,
// assuming roughly 4 characters per token.
const MaxPromptTokens = 120000

// SystemPrompt is sent as the system message on every classification request.
const SystemPrompt = "You are a precision video editing AI. Analyze patterns and return only JSON with skip timestamps. Focus on segments that truly diminish viewer experience."

// BuildPrompt assembles the user prompt for a classification request. The
// instructions adapt to the user's preferences, the video length and the
// speech density.
func BuildPrompt(videoDuration float64, wordCount int, prefs *models.UserPreferences) string {
	var b strings.Builder

	b.WriteString(`You are an expert video editor with advanced pattern recognition. Analyze the transcript and identify precise start times of segments that should be skipped based on user preferences.

CRITICAL: Return ONLY a JSON object with start times: {"segments": [12.5, 45.2, 89.7]}

ALWAYS SKIP THESE SEGMENTS:
HIGH PRIORITY:
- Filler speech: "um", "uh", "er", "like", "you know", "basically"
- Long pauses or dead air (>3 seconds)`)

	if prefs.Active() {
		if len(prefs.SelectedCategories) > 0 {
			b.WriteString("\n\nUSER SELECTED CATEGORIES TO SKIP:")
			for _, name := range prefs.SelectedCategories {
				cat, ok := synthesis.Categories[name]
				if !ok {
					continue
				}
				keywords := cat.Keywords
				if len(keywords) > 5 {
					keywords = keywords[:5]
				}
				fmt.Fprintf(&b, "\n- %s: %s", cat.Title, strings.Join(keywords, ", "))
			}
		}
		if len(prefs.CustomKeywords) > 0 {
			fmt.Fprintf(&b, "\n\nCUSTOM KEYWORDS TO SKIP: %s", strings.Join(prefs.CustomKeywords, ", "))
		}
		if len(prefs.CustomPhrases) > 0 {
			fmt.Fprintf(&b, "\n\nCUSTOM PHRASES TO SKIP: %s", strings.Join(prefs.CustomPhrases, ", "))
		}

		switch prefs.Sensitivity {
		case models.SensitivityHigh:
			b.WriteString("\n\nHIGH SENSITIVITY: Be aggressive in identifying skip segments. Target 20-30% reduction.")
		case models.SensitivityLow:
			b.WriteString("\n\nLOW SENSITIVITY: Only skip obvious and disruptive content. Target 5-10% reduction.")
		default:
			b.WriteString("\n\nMEDIUM SENSITIVITY: Balance between content preservation and skip effectiveness. Target 10-20% reduction.")
		}
	}

	b.WriteString(`

ALWAYS PRESERVE:
- Core educational/entertainment content
- Key examples and demonstrations
- Important transitions between topics
- Critical explanations and insights

ANALYSIS GUIDELINES:
- Focus on segments that interrupt content flow or match user preferences
- Prioritize skips that save time without losing meaning
- Consider pacing - don't over-skip fast-paced content
- Preserve context needed for understanding`)

	switch {
	case videoDuration > 1800:
		b.WriteString("\n\nLONG VIDEO: Be more aggressive with repetitive content and lengthy explanations.")
	case videoDuration < 300:
		b.WriteString("\n\nSHORT VIDEO: Only skip obvious filler and user-specified content.")
	default:
		b.WriteString("\n\nMEDIUM VIDEO: Balance engagement with user preferences.")
	}

	if wordCount > 3000 {
		b.WriteString("\nHIGH DENSITY: Look for verbose explanations that can be condensed.")
	}

	return b.String()
}

// CondenseTranscript renders a transcript as "12.5s: text" lines, trimmed to
// fit the token budget. Short transcripts pass through whole; long ones keep
// the full opening, a sampled middle and the full ending, since those regions
// carry most of the skippable structure.
func CondenseTranscript(segments []models.TranscriptSegment, maxTokens int) string {
	lines := make([]string, len(segments))
	for i, seg := range segments {
		lines[i] = fmt.Sprintf("%.1fs: %s", seg.Start, seg.Text)
	}
	full := strings.Join(lines, "\n")
	if len(full)/4 <= maxTokens {
		return full
	}

	last := segments[len(segments)-1]
	totalDuration := last.Start + last.Duration
	cutoff40 := totalDuration * 0.4
	cutoff75 := totalDuration * 0.75

	var kept []string
	for i, seg := range segments {
		if seg.Start <= cutoff40 {
			kept = append(kept, lines[i])
		}
	}
	middle := 0
	for i, seg := range segments {
		if seg.Start > cutoff40 && seg.Start < cutoff75 {
			if middle%3 == 0 {
				kept = append(kept, lines[i])
			}
			middle++
		}
	}
	for i, seg := range segments {
		if seg.Start >= cutoff75 {
			kept = append(kept, lines[i])
		}
	}
	return strings.Join(kept, "\n")
}

// WordCount counts whitespace-separated words across a transcript.
func WordCount(segments []models.TranscriptSegment) int {
	n := 0
	for _, seg := range segments {
		n += len(strings.Fields(seg.Text))
	}
	return n
}
