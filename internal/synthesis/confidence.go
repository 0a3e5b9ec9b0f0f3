package synthesis

import (
	"math"
	"strings"
	"unicode"

	"github.com/JustinTDCT/SkipVault/internal/models"
)

// Lexical signal vocabularies for oracle-suggested segments. Matching is
// substring containment on the lower-cased text, same as the rule matcher.
var (
	fillerWords = []string{"um", "uh", "like", "you know", "basically", "actually", "literally", "so", "yeah", "right"}

	promoPhrases = []string{"sponsor", "subscribe", "like and subscribe", "check out", "link in description", "patreon", "merch"}

	introOutroPhrases = []string{"welcome back", "thanks for watching", "see you next time", "don't forget to"}

	technicalTerms = []string{"algorithm", "function", "variable", "method", "process", "system"}
)

// Score computes a heuristic skip confidence in [0,1] for a transcript
// segment, independent of user preferences. All terms are cumulative; the
// sum is clamped at the end.
func Score(seg models.TranscriptSegment) float64 {
	text := strings.ToLower(seg.Text)
	confidence := 0.4

	fillerCount := 0
	for _, w := range fillerWords {
		fillerCount += strings.Count(text, w)
	}
	confidence += math.Min(float64(fillerCount)*0.15, 0.4)

	tokens := strings.Fields(text)
	if float64(distinctCount(tokens)) < float64(len(tokens))*0.6 {
		confidence += 0.3
	}

	if seg.Duration < 2.0 && len(tokens) < 5 {
		confidence += 0.2
	}

	// Numbers tend to carry data worth keeping.
	if strings.ContainsFunc(text, unicode.IsDigit) {
		confidence -= 0.15
	}

	if containsAny(text, promoPhrases) {
		confidence += 0.35
	}

	if containsAny(text, introOutroPhrases) {
		confidence += 0.25
	}

	if containsAny(text, technicalTerms) {
		confidence -= 0.1
	}

	return math.Min(math.Max(confidence, 0.0), 1.0)
}

func distinctCount(tokens []string) int {
	seen := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		seen[t] = struct{}{}
	}
	return len(seen)
}

func containsAny(text string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(text, n) {
			return true
		}
	}
	return false
}
