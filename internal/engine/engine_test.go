package engine

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/JustinTDCT/SkipVault/internal/models"
	"github.com/JustinTDCT/SkipVault/internal/oracle"
	"github.com/JustinTDCT/SkipVault/internal/oracle/mock"
	"github.com/JustinTDCT/SkipVault/internal/transcript"
)

type stubFetcher struct {
	segments []models.TranscriptSegment
	err      error
}

func (f *stubFetcher) Fetch(ctx context.Context, videoID string) ([]models.TranscriptSegment, error) {
	return f.segments, f.err
}

func testTranscript() []models.TranscriptSegment {
	return []models.TranscriptSegment{
		{Text: "um so welcome back everyone", Start: 0, Duration: 3},
		{Text: "today we discuss results", Start: 3, Duration: 5},
		{Text: "check out my sponsor NordVPN", Start: 8, Duration: 4},
	}
}

func TestProcess(t *testing.T) {
	classifier := &mock.Classifier{Result: oracle.Result{Segments: []float64{0.5}}}
	eng := New(&stubFetcher{segments: testTranscript()}, classifier, nil, nil)

	prefs := &models.UserPreferences{
		SelectedCategories: []string{"advertisements"},
		Sensitivity:        models.SensitivityMedium,
		Enabled:            true,
	}
	result, err := eng.Process(context.Background(), "vid123", prefs)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	if len(result.Transcription) != 3 {
		t.Errorf("transcription length = %d", len(result.Transcription))
	}
	if len(result.Remove) != 2 {
		t.Fatalf("got %d skip segments, want 2: %+v", len(result.Remove), result.Remove)
	}
	if result.TotalDuration != 12 {
		t.Errorf("TotalDuration = %v, want 12", result.TotalDuration)
	}
	if result.SkipPercentage <= 0 || result.SkipPercentage > 100 {
		t.Errorf("SkipPercentage = %v", result.SkipPercentage)
	}

	if len(classifier.Calls) != 1 {
		t.Fatalf("classifier called %d times, want 1", len(classifier.Calls))
	}
	prompt := classifier.Calls[0].Prompt
	if !strings.Contains(prompt, "Transcript:\n0.0s: um so welcome back everyone") {
		t.Error("prompt missing the rendered transcript")
	}
	if !strings.Contains(prompt, "Advertisements") {
		t.Error("prompt missing the selected category")
	}
}

func TestProcess_OracleDisabled(t *testing.T) {
	eng := New(&stubFetcher{segments: testTranscript()}, nil, nil, nil)

	prefs := &models.UserPreferences{
		SelectedCategories: []string{"advertisements"},
		Sensitivity:        models.SensitivityMedium,
		Enabled:            true,
	}
	result, err := eng.Process(context.Background(), "vid123", prefs)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	// Rule-based matching still runs without a classifier.
	if len(result.Remove) != 1 {
		t.Fatalf("got %d skip segments, want 1: %+v", len(result.Remove), result.Remove)
	}
	if result.Remove[0].Reason != "User preference: Advertisements" {
		t.Errorf("reason = %q", result.Remove[0].Reason)
	}
}

func TestProcess_FetchError(t *testing.T) {
	eng := New(&stubFetcher{err: transcript.ErrTranscriptsDisabled}, nil, nil, nil)

	_, err := eng.Process(context.Background(), "vid123", nil)
	if !errors.Is(err, transcript.ErrTranscriptsDisabled) {
		t.Errorf("got %v, want ErrTranscriptsDisabled", err)
	}
}

func TestProcess_EmptyTranscript(t *testing.T) {
	eng := New(&stubFetcher{}, nil, nil, nil)

	_, err := eng.Process(context.Background(), "vid123", nil)
	if !errors.Is(err, transcript.ErrNoTranscript) {
		t.Errorf("got %v, want ErrNoTranscript", err)
	}
}

func TestProcess_OracleError(t *testing.T) {
	classifier := &mock.Classifier{Err: oracle.ErrUnavailable}
	eng := New(&stubFetcher{segments: testTranscript()}, classifier, nil, nil)

	_, err := eng.Process(context.Background(), "vid123", nil)
	if !errors.Is(err, oracle.ErrUnavailable) {
		t.Errorf("got %v, want ErrUnavailable", err)
	}
}
