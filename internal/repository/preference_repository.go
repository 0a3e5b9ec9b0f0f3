package repository

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/JustinTDCT/SkipVault/internal/models"
)

type PreferenceRepository struct {
	db *sql.DB
}

func NewPreferenceRepository(db *sql.DB) *PreferenceRepository {
	return &PreferenceRepository{db: db}
}

// GetByUser returns the stored preferences for a user. Returns defaults if
// none are set yet.
func (r *PreferenceRepository) GetByUser(userID uuid.UUID) (*models.UserPreferences, error) {
	prefs := &models.UserPreferences{}
	query := `
		SELECT selected_categories, custom_keywords, custom_phrases, sensitivity, enabled
		FROM user_preferences WHERE user_id = $1`
	err := r.db.QueryRow(query, userID).Scan(
		pq.Array(&prefs.SelectedCategories), pq.Array(&prefs.CustomKeywords),
		pq.Array(&prefs.CustomPhrases), &prefs.Sensitivity, &prefs.Enabled,
	)
	if err == sql.ErrNoRows {
		return &models.UserPreferences{
			Sensitivity: models.SensitivityMedium,
			Enabled:     true,
		}, nil
	}
	return prefs, err
}

// Upsert inserts or updates a user's preferences.
func (r *PreferenceRepository) Upsert(userID uuid.UUID, prefs *models.UserPreferences) error {
	query := `
		INSERT INTO user_preferences (user_id, selected_categories, custom_keywords, custom_phrases, sensitivity, enabled)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE SET
		    selected_categories = EXCLUDED.selected_categories,
		    custom_keywords = EXCLUDED.custom_keywords,
		    custom_phrases = EXCLUDED.custom_phrases,
		    sensitivity = EXCLUDED.sensitivity,
		    enabled = EXCLUDED.enabled,
		    updated_at = CURRENT_TIMESTAMP`
	_, err := r.db.Exec(query, userID,
		pq.Array(prefs.SelectedCategories), pq.Array(prefs.CustomKeywords),
		pq.Array(prefs.CustomPhrases), prefs.Sensitivity, prefs.Enabled)
	return err
}
