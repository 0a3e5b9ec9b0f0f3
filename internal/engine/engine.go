// Package engine orchestrates a full processing run for one video: fetch the
// transcript, consult the cache, ask the oracle for candidates, synthesize
// skip intervals and store the outcome.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/JustinTDCT/SkipVault/internal/cache"
	"github.com/JustinTDCT/SkipVault/internal/models"
	"github.com/JustinTDCT/SkipVault/internal/oracle"
	"github.com/JustinTDCT/SkipVault/internal/repository"
	"github.com/JustinTDCT/SkipVault/internal/synthesis"
	"github.com/JustinTDCT/SkipVault/internal/transcript"
)

// TranscriptFetcher is the transcript source. Satisfied by transcript.Fetcher.
type TranscriptFetcher interface {
	Fetch(ctx context.Context, videoID string) ([]models.TranscriptSegment, error)
}

type Engine struct {
	fetcher    TranscriptFetcher
	classifier oracle.Classifier
	cache      *cache.Cache
	results    *repository.ResultRepository
}

// New assembles an Engine. classifier, cache and results may each be nil; the
// corresponding step is then skipped.
func New(fetcher TranscriptFetcher, classifier oracle.Classifier, c *cache.Cache, results *repository.ResultRepository) *Engine {
	return &Engine{fetcher: fetcher, classifier: classifier, cache: c, results: results}
}

// Process runs the pipeline for one video and preference set.
func (e *Engine) Process(ctx context.Context, videoID string, prefs *models.UserPreferences) (*models.ProcessResult, error) {
	started := time.Now()

	segments, err := e.fetcher.Fetch(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("fetch transcript for %s: %w", videoID, err)
	}
	if len(segments) == 0 {
		return nil, transcript.ErrNoTranscript
	}

	totalDuration := synthesis.TotalDuration(segments)

	if e.cache != nil {
		key := cache.Key(videoID, segments, prefs)
		if entry, err := e.cache.Get(ctx, key); err == nil {
			log.Printf("Engine: cache hit for video %s", videoID)
			return &models.ProcessResult{
				Transcription:  segments,
				Remove:         entry.SkipSegments,
				ProcessingTime: time.Since(started).Seconds(),
				TotalDuration:  totalDuration,
				SkipPercentage: entry.SkipPercentage,
			}, nil
		} else if !errors.Is(err, cache.ErrMiss) {
			log.Printf("Engine: cache lookup failed for video %s: %v", videoID, err)
		}
	}

	var timestamps []float64
	if e.classifier != nil {
		prompt := oracle.BuildPrompt(totalDuration, oracle.WordCount(segments), prefs)
		prompt += "\n\nTranscript:\n" + oracle.CondenseTranscript(segments, oracle.MaxPromptTokens)

		result, err := e.classifier.Classify(ctx, prompt)
		if err != nil {
			return nil, fmt.Errorf("classify video %s: %w", videoID, err)
		}
		timestamps = result.Segments
	}

	skips := synthesis.Synthesize(segments, timestamps, prefs, synthesis.DefaultBuffer)
	_, skipPercentage := synthesis.Summarize(skips, totalDuration)

	if e.cache != nil {
		key := cache.Key(videoID, segments, prefs)
		entry := &cache.Entry{
			SkipSegments:   skips,
			SkipPercentage: skipPercentage,
			TotalDuration:  totalDuration,
		}
		if err := e.cache.Set(ctx, key, entry); err != nil {
			log.Printf("Engine: cache store failed for video %s: %v", videoID, err)
		}
	}

	if e.results != nil {
		stored := &models.VideoResult{
			VideoID:         videoID,
			PreferencesHash: cache.PrefsHash(prefs),
			Segments:        skips,
			TotalDuration:   totalDuration,
			SkipPercentage:  skipPercentage,
		}
		if err := e.results.Upsert(stored); err != nil {
			log.Printf("Engine: persist failed for video %s: %v", videoID, err)
		}
	}

	return &models.ProcessResult{
		Transcription:  segments,
		Remove:         skips,
		ProcessingTime: time.Since(started).Seconds(),
		TotalDuration:  totalDuration,
		SkipPercentage: skipPercentage,
	}, nil
}
