package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/JustinTDCT/SkipVault/internal/models"
)

type ResultRepository struct {
	db *sql.DB
}

func NewResultRepository(db *sql.DB) *ResultRepository {
	return &ResultRepository{db: db}
}

// GetByVideo returns the stored result for a video and preferences hash.
func (r *ResultRepository) GetByVideo(videoID, prefsHash string) (*models.VideoResult, error) {
	result := &models.VideoResult{}
	var segments []byte
	query := `
		SELECT id, video_id, preferences_hash, segments, total_duration,
		       skip_percentage, created_at, updated_at
		FROM video_results
		WHERE video_id = $1 AND preferences_hash = $2`
	err := r.db.QueryRow(query, videoID, prefsHash).Scan(
		&result.ID, &result.VideoID, &result.PreferencesHash, &segments,
		&result.TotalDuration, &result.SkipPercentage, &result.CreatedAt, &result.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(segments, &result.Segments); err != nil {
		return nil, fmt.Errorf("decode segments for %s: %w", videoID, err)
	}
	return result, nil
}

// ListByVideo returns all stored results for a video, newest first.
func (r *ResultRepository) ListByVideo(videoID string) ([]*models.VideoResult, error) {
	query := `
		SELECT id, video_id, preferences_hash, segments, total_duration,
		       skip_percentage, created_at, updated_at
		FROM video_results
		WHERE video_id = $1
		ORDER BY updated_at DESC`
	rows, err := r.db.Query(query, videoID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []*models.VideoResult
	for rows.Next() {
		result := &models.VideoResult{}
		var segments []byte
		if err := rows.Scan(&result.ID, &result.VideoID, &result.PreferencesHash,
			&segments, &result.TotalDuration, &result.SkipPercentage,
			&result.CreatedAt, &result.UpdatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(segments, &result.Segments); err != nil {
			return nil, fmt.Errorf("decode segments for %s: %w", videoID, err)
		}
		results = append(results, result)
	}
	return results, rows.Err()
}

// Upsert inserts or updates a result (unique on video_id + preferences_hash).
func (r *ResultRepository) Upsert(result *models.VideoResult) error {
	if result.ID == uuid.Nil {
		result.ID = uuid.New()
	}
	segments, err := json.Marshal(result.Segments)
	if err != nil {
		return fmt.Errorf("encode segments: %w", err)
	}
	if segments == nil || string(segments) == "null" {
		segments = []byte("[]")
	}

	query := `
		INSERT INTO video_results (id, video_id, preferences_hash, segments, total_duration, skip_percentage)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (video_id, preferences_hash) DO UPDATE SET
		    segments = EXCLUDED.segments,
		    total_duration = EXCLUDED.total_duration,
		    skip_percentage = EXCLUDED.skip_percentage,
		    updated_at = CURRENT_TIMESTAMP
		RETURNING id, created_at, updated_at`
	return r.db.QueryRow(query, result.ID, result.VideoID, result.PreferencesHash,
		segments, result.TotalDuration, result.SkipPercentage).
		Scan(&result.ID, &result.CreatedAt, &result.UpdatedAt)
}

// DeleteByVideo removes all stored results for a video.
func (r *ResultRepository) DeleteByVideo(videoID string) (int64, error) {
	res, err := r.db.Exec(`DELETE FROM video_results WHERE video_id = $1`, videoID)
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// PurgeOlderThan removes results untouched since the cutoff and returns the
// number of rows deleted.
func (r *ResultRepository) PurgeOlderThan(cutoff time.Time) (int64, error) {
	res, err := r.db.Exec(`DELETE FROM video_results WHERE updated_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// Stats summarizes the stored results.
type Stats struct {
	TotalResults      int     `json:"total_results"`
	DistinctVideos    int     `json:"distinct_videos"`
	AvgSkipPercentage float64 `json:"avg_skip_percentage"`
	TotalSkipSeconds  float64 `json:"total_skip_seconds"`
}

// GetStats aggregates counts over the video_results table.
func (r *ResultRepository) GetStats() (*Stats, error) {
	stats := &Stats{}
	err := r.db.QueryRow(`
		SELECT COUNT(*), COUNT(DISTINCT video_id),
		       COALESCE(AVG(skip_percentage), 0),
		       COALESCE(SUM(total_duration * skip_percentage / 100.0), 0)
		FROM video_results`).
		Scan(&stats.TotalResults, &stats.DistinctVideos, &stats.AvgSkipPercentage, &stats.TotalSkipSeconds)
	return stats, err
}
