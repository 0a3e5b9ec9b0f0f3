package synthesis

import (
	"strings"

	"github.com/JustinTDCT/SkipVault/internal/models"
)

var (
	adTerms     = []string{"sponsor", "ad", "advertisement", "promo"}
	ctaTerms    = []string{"subscribe", "like and subscribe", "bell icon", "notification"}
	fillerTerms = []string{"um", "uh", "er"}
	outroTerms  = []string{"welcome back", "thanks for watching"}
)

// ClassifyReason maps a segment's lexical content to one human-readable skip
// reason. Rules are evaluated in fixed priority order; the first match wins.
func ClassifyReason(seg models.TranscriptSegment) string {
	text := strings.ToLower(seg.Text)
	tokens := strings.Fields(text)

	switch {
	case containsAny(text, adTerms):
		return "Advertisement"
	case containsAny(text, ctaTerms):
		return "Call to Action"
	case containsAny(text, fillerTerms) && len(tokens) < 10:
		return "Filler Speech"
	case seg.Duration > 10 && float64(distinctCount(tokens)) < float64(len(tokens))*0.6:
		return "Repetitive Content"
	case containsAny(text, outroTerms):
		return "Intro/Outro"
	default:
		return "Non-Essential Content"
	}
}
