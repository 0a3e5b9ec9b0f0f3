package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"

	"github.com/JustinTDCT/SkipVault/internal/models"
)

// Key builds the cache key for one (video, transcript, preferences) triple.
// The transcript hash invalidates entries when captions change; the
// preferences hash separates entries per effective preference set.
func Key(videoID string, transcript []models.TranscriptSegment, prefs *models.UserPreferences) string {
	return keyPrefix + videoID + ":" + TranscriptHash(transcript) + ":" + PrefsHash(prefs)
}

// TranscriptHash returns a 16-character digest of the concatenated segment
// texts.
func TranscriptHash(transcript []models.TranscriptSegment) string {
	var b strings.Builder
	for _, seg := range transcript {
		b.WriteString(seg.Text)
	}
	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])[:16]
}

// PrefsHash returns an 8-character digest of the preference set. List order
// does not matter and disabled or nil preferences all map to "none".
func PrefsHash(prefs *models.UserPreferences) string {
	if !prefs.Active() {
		return "none"
	}

	var b strings.Builder
	writeSorted := func(label string, values []string) {
		sorted := make([]string, 0, len(values))
		for _, v := range values {
			v = strings.ToLower(strings.TrimSpace(v))
			if v != "" {
				sorted = append(sorted, v)
			}
		}
		sort.Strings(sorted)
		b.WriteString(label)
		b.WriteString("=")
		b.WriteString(strings.Join(sorted, ","))
		b.WriteString(";")
	}

	writeSorted("cat", prefs.SelectedCategories)
	writeSorted("kw", prefs.CustomKeywords)
	writeSorted("ph", prefs.CustomPhrases)
	b.WriteString("sens=")
	b.WriteString(string(prefs.Sensitivity))

	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])[:8]
}
