package synthesis

import (
	"strings"

	"github.com/JustinTDCT/SkipVault/internal/models"
)

// Match evaluates one transcript segment against the user's skip rules.
// Matching is case-insensitive substring containment; a keyword matches even
// inside another word. The first rule to match wins, evaluated in order:
// category keywords, category phrases, custom keywords, custom phrases.
// Absent or disabled preferences never match.
func Match(seg models.TranscriptSegment, prefs *models.UserPreferences) (bool, string, float64) {
	if !prefs.Active() {
		return false, "", 0
	}

	text := strings.ToLower(seg.Text)
	high := prefs.Sensitivity == models.SensitivityHigh

	for _, name := range prefs.SelectedCategories {
		cat, ok := Categories[name]
		if !ok {
			continue
		}
		for _, kw := range cat.Keywords {
			if strings.Contains(text, strings.ToLower(kw)) {
				return true, "User preference: " + cat.Title, pick(high, 0.8, 0.6)
			}
		}
	}

	for _, name := range prefs.SelectedCategories {
		cat, ok := Categories[name]
		if !ok {
			continue
		}
		for _, ph := range cat.Phrases {
			if strings.Contains(text, strings.ToLower(ph)) {
				return true, "User preference: " + cat.Title, pick(high, 0.9, 0.7)
			}
		}
	}

	for _, kw := range prefs.CustomKeywords {
		if kw != "" && strings.Contains(text, strings.ToLower(kw)) {
			return true, "Custom keyword: " + kw, pick(high, 0.9, 0.7)
		}
	}

	for _, ph := range prefs.CustomPhrases {
		if ph != "" && strings.Contains(text, strings.ToLower(ph)) {
			return true, "Custom phrase: " + ph, pick(high, 0.95, 0.8)
		}
	}

	return false, "", 0
}

func pick(high bool, onHigh, otherwise float64) float64 {
	if high {
		return onHigh
	}
	return otherwise
}
