package models

import (
	"time"

	"github.com/google/uuid"
)

// ──────────────────── Transcript ────────────────────

// TranscriptSegment is one timed line of a video's spoken transcript.
// Segments are immutable once fetched; the synthesis engine only reads them.
type TranscriptSegment struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
}

// End returns the timestamp at which the segment stops.
func (s TranscriptSegment) End() float64 {
	return s.Start + s.Duration
}

// ──────────────────── Skip segments ────────────────────

// SkipSegment is one recommended skip interval in the final output.
// Intervals are non-overlapping, sorted by start, and at least 1.5s long.
type SkipSegment struct {
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	Confidence float64 `json:"confidence"`
	Reason     string  `json:"reason"`
}

// ──────────────────── User preferences ────────────────────

type Sensitivity string

const (
	SensitivityLow    Sensitivity = "low"
	SensitivityMedium Sensitivity = "medium"
	SensitivityHigh   Sensitivity = "high"
)

func (s Sensitivity) Valid() bool {
	switch s {
	case SensitivityLow, SensitivityMedium, SensitivityHigh:
		return true
	}
	return false
}

// UserPreferences configures rule-based skip matching. A nil value means
// "no preference filtering" and the engine runs in oracle-only mode.
type UserPreferences struct {
	SelectedCategories []string    `json:"selected_categories"`
	CustomKeywords     []string    `json:"custom_keywords"`
	CustomPhrases      []string    `json:"custom_phrases"`
	Sensitivity        Sensitivity `json:"sensitivity"`
	Enabled            bool        `json:"enabled"`
}

// Active reports whether preference rules should be evaluated at all.
func (p *UserPreferences) Active() bool {
	return p != nil && p.Enabled
}

// ──────────────────── Processing results ────────────────────

// ProcessResult is the response payload of a processing request.
type ProcessResult struct {
	Transcription  []TranscriptSegment `json:"transcription"`
	Remove         []SkipSegment       `json:"remove"`
	ProcessingTime float64             `json:"processing_time"`
	TotalDuration  float64             `json:"total_duration"`
	SkipPercentage float64             `json:"skip_percentage"`
}

// VideoResult is a persisted synthesis result for one (video, preferences) pair.
type VideoResult struct {
	ID              uuid.UUID     `json:"id"`
	VideoID         string        `json:"video_id"`
	PreferencesHash string        `json:"preferences_hash"`
	Segments        []SkipSegment `json:"segments"`
	TotalDuration   float64       `json:"total_duration"`
	SkipPercentage  float64       `json:"skip_percentage"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// ──────────────────── Users ────────────────────

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         UserRole  `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
