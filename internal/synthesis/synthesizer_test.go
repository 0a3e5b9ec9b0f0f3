package synthesis

import (
	"reflect"
	"strings"
	"testing"

	"github.com/JustinTDCT/SkipVault/internal/models"
)

func adPrefs(sensitivity models.Sensitivity) *models.UserPreferences {
	return &models.UserPreferences{
		SelectedCategories: []string{"advertisements"},
		Sensitivity:        sensitivity,
		Enabled:            true,
	}
}

// checkInvariants verifies the structural guarantees every result must hold.
func checkInvariants(t *testing.T, out []models.SkipSegment, totalDuration float64) {
	t.Helper()
	for i, s := range out {
		if s.End <= s.Start {
			t.Errorf("interval %d has end %v <= start %v", i, s.End, s.Start)
		}
		if s.End-s.Start < 1.5 {
			t.Errorf("interval %d shorter than 1.5s: [%v,%v]", i, s.Start, s.End)
		}
		if s.Start < 0 || s.End > totalDuration {
			t.Errorf("interval %d out of bounds [0,%v]: [%v,%v]", i, totalDuration, s.Start, s.End)
		}
		if s.Confidence < 0 || s.Confidence > 1 {
			t.Errorf("interval %d confidence %v outside [0,1]", i, s.Confidence)
		}
		if i > 0 {
			if out[i-1].Start > s.Start {
				t.Errorf("intervals not sorted at %d: %v > %v", i, out[i-1].Start, s.Start)
			}
			if out[i-1].End > s.Start {
				t.Errorf("intervals %d and %d overlap", i-1, i)
			}
		}
	}
}

func TestSynthesize_EmptyInputs(t *testing.T) {
	transcript := []models.TranscriptSegment{seg("hello there", 0, 2)}

	if got := Synthesize(nil, []float64{1.0}, adPrefs(models.SensitivityHigh), DefaultBuffer); got != nil {
		t.Errorf("empty transcript: got %v, want nil", got)
	}
	if got := Synthesize(transcript, nil, nil, DefaultBuffer); got != nil {
		t.Errorf("no timestamps and no preferences: got %v, want nil", got)
	}
	disabled := adPrefs(models.SensitivityHigh)
	disabled.Enabled = false
	if got := Synthesize(transcript, nil, disabled, DefaultBuffer); got != nil {
		t.Errorf("no timestamps and disabled preferences: got %v, want nil", got)
	}
}

func TestSynthesize_RuleBasedOnly(t *testing.T) {
	transcript := []models.TranscriptSegment{
		seg("the topic of the day", 0, 4),
		seg("a word from our sponsor first", 4, 5),
		seg("back to the content", 9, 6),
	}

	out := Synthesize(transcript, nil, adPrefs(models.SensitivityMedium), DefaultBuffer)
	if len(out) != 1 {
		t.Fatalf("got %d intervals, want 1: %+v", len(out), out)
	}
	want := models.SkipSegment{Start: 3.5, End: 9.5, Confidence: 0.6, Reason: "User preference: Advertisements"}
	if !reflect.DeepEqual(out[0], want) {
		t.Errorf("got %+v, want %+v", out[0], want)
	}
	checkInvariants(t, out, 15)
}

func TestSynthesize_OracleOnly(t *testing.T) {
	transcript := []models.TranscriptSegment{
		seg("um uh you know basically", 0, 3),
		seg("the important demonstration", 3, 5),
	}

	out := Synthesize(transcript, []float64{1.0}, nil, DefaultBuffer)
	if len(out) != 1 {
		t.Fatalf("got %d intervals, want 1: %+v", len(out), out)
	}
	if out[0].Start != 0 || out[0].End != 3.5 {
		t.Errorf("interval = [%v,%v], want [0,3.5]", out[0].Start, out[0].End)
	}
	if out[0].Reason != "Filler Speech" {
		t.Errorf("reason = %q, want Filler Speech", out[0].Reason)
	}
	checkInvariants(t, out, 8)
}

func TestSynthesize_OracleTimestampOutsideTranscript(t *testing.T) {
	transcript := []models.TranscriptSegment{
		seg("um uh you know basically", 0, 3),
	}

	// 50.0 has no containing segment and is silently dropped.
	out := Synthesize(transcript, []float64{50.0}, nil, DefaultBuffer)
	if out != nil {
		t.Errorf("got %+v, want nil", out)
	}
}

func TestSynthesize_PreferencePrecedence(t *testing.T) {
	transcript := []models.TranscriptSegment{
		seg("the intro of the show", 0, 4),
		seg("big thanks to our sponsor acme", 10, 5),
	}

	// The oracle also flags the sponsor segment; the rule match must own it.
	out := Synthesize(transcript, []float64{12.0}, adPrefs(models.SensitivityMedium), DefaultBuffer)
	if len(out) != 1 {
		t.Fatalf("got %d intervals, want 1: %+v", len(out), out)
	}
	if out[0].Confidence != 0.6 {
		t.Errorf("confidence = %v, want rule confidence 0.6", out[0].Confidence)
	}
	if out[0].Reason != "User preference: Advertisements" {
		t.Errorf("reason = %q, want the rule reason", out[0].Reason)
	}
}

func TestSynthesize_ConfidenceThreshold(t *testing.T) {
	// Scores 0.4-0.15 = 0.25: below both thresholds once a digit appears.
	lowValue := []models.TranscriptSegment{
		seg("the answer is 42", 0, 3),
		seg("more findings follow in a moment", 3, 5),
	}
	if out := Synthesize(lowValue, []float64{1.0}, nil, DefaultBuffer); out != nil {
		t.Errorf("candidate below threshold kept: %+v", out)
	}

	// Scores exactly 0.4: admitted at the default threshold.
	neutral := []models.TranscriptSegment{
		seg("we will discuss the findings now", 0, 3),
		seg("more findings follow in a moment", 3, 5),
	}
	out := Synthesize(neutral, []float64{1.0}, nil, DefaultBuffer)
	if len(out) != 1 {
		t.Fatalf("candidate at threshold dropped: %+v", out)
	}
}

func TestSynthesize_SensitivityMonotonicity(t *testing.T) {
	// Segment scoring 0.4-0.1 = 0.3 (technical term): accepted only at
	// high sensitivity.
	transcript := []models.TranscriptSegment{
		seg("the system does its thing", 0, 3),
		seg("more findings follow in a moment", 3, 5),
	}
	prefsLow := &models.UserPreferences{Sensitivity: models.SensitivityLow, Enabled: true}
	prefsHigh := &models.UserPreferences{Sensitivity: models.SensitivityHigh, Enabled: true}

	low := Synthesize(transcript, []float64{1.0}, prefsLow, DefaultBuffer)
	high := Synthesize(transcript, []float64{1.0}, prefsHigh, DefaultBuffer)
	if len(high) < len(low) {
		t.Errorf("high sensitivity produced fewer intervals (%d) than low (%d)", len(high), len(low))
	}
	if len(low) != 0 {
		t.Errorf("low sensitivity admitted a 0.3-confidence candidate: %+v", low)
	}
	if len(high) != 1 {
		t.Errorf("high sensitivity rejected a 0.3-confidence candidate")
	}
}

func TestSynthesize_MergesAdjacentCandidates(t *testing.T) {
	transcript := []models.TranscriptSegment{
		seg("our sponsor pays the bills", 0, 3),
		seg("this promo runs all week", 3.5, 3),
		seg("now the actual content begins here", 8, 6),
	}

	out := Synthesize(transcript, nil, adPrefs(models.SensitivityMedium), DefaultBuffer)
	if len(out) != 1 {
		t.Fatalf("adjacent rule matches not merged: %+v", out)
	}
	if out[0].Start != 0 || out[0].End != 7.0 {
		t.Errorf("merged interval = [%v,%v], want [0,7]", out[0].Start, out[0].End)
	}
	// Same reason twice must not be duplicated.
	if strings.Count(out[0].Reason, "User preference: Advertisements") != 1 {
		t.Errorf("duplicated reason: %q", out[0].Reason)
	}
	checkInvariants(t, out, 14)
}

func TestSynthesize_DistinctReasonsJoined(t *testing.T) {
	prefs := &models.UserPreferences{
		SelectedCategories: []string{"advertisements"},
		CustomKeywords:     []string{"widgetpro"},
		Sensitivity:        models.SensitivityMedium,
		Enabled:            true,
	}
	transcript := []models.TranscriptSegment{
		seg("our sponsor pays the bills", 0, 3),
		seg("the widgetpro is amazing", 3.5, 3),
		seg("now the actual content begins here", 8, 6),
	}

	out := Synthesize(transcript, nil, prefs, DefaultBuffer)
	if len(out) != 1 {
		t.Fatalf("got %d intervals, want 1: %+v", len(out), out)
	}
	want := "User preference: Advertisements, Custom keyword: widgetpro"
	if out[0].Reason != want {
		t.Errorf("reason = %q, want %q", out[0].Reason, want)
	}
	// Merged confidence is the max of the parts (0.6 keyword, 0.7 custom).
	if out[0].Confidence != 0.7 {
		t.Errorf("confidence = %v, want 0.7", out[0].Confidence)
	}
}

func TestSynthesize_MinimumDurationFilter(t *testing.T) {
	// A lone short segment at the very end of the transcript produces an
	// interval clamped under 1.5s.
	transcript := []models.TranscriptSegment{
		seg("the main content of the video runs here", 0, 10),
		seg("um bye", 10, 0.4),
	}
	prefs := &models.UserPreferences{
		CustomKeywords: []string{"bye"},
		Sensitivity:    models.SensitivityMedium,
		Enabled:        true,
	}

	out := Synthesize(transcript, nil, prefs, DefaultBuffer)
	if out != nil {
		t.Errorf("sub-1.5s interval survived the filter: %+v", out)
	}
}

func TestSynthesize_UnsortedInputs(t *testing.T) {
	sorted := []models.TranscriptSegment{
		seg("um so welcome back everyone", 0, 3),
		seg("today we discuss results", 3, 5),
		seg("check out my sponsor NordVPN", 8, 4),
	}
	shuffled := []models.TranscriptSegment{sorted[2], sorted[0], sorted[1]}

	a := Synthesize(sorted, []float64{8.5, 0.5}, adPrefs(models.SensitivityMedium), DefaultBuffer)
	b := Synthesize(shuffled, []float64{0.5, 8.5}, adPrefs(models.SensitivityMedium), DefaultBuffer)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("order-dependent result:\n%+v\nvs\n%+v", a, b)
	}
}

func TestSynthesize_Idempotent(t *testing.T) {
	transcript := []models.TranscriptSegment{
		seg("um so welcome back everyone", 0, 3),
		seg("today we discuss results", 3, 5),
		seg("check out my sponsor NordVPN", 8, 4),
	}
	stamps := []float64{0.5, 8.5}
	prefs := adPrefs(models.SensitivityMedium)

	a := Synthesize(transcript, stamps, prefs, DefaultBuffer)
	b := Synthesize(transcript, stamps, prefs, DefaultBuffer)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("non-deterministic result:\n%+v\nvs\n%+v", a, b)
	}
}

// TestSynthesize_EndToEnd walks the full reconciliation: a rule-based match,
// an oracle timestamp covered by it, and an independent oracle interval.
func TestSynthesize_EndToEnd(t *testing.T) {
	transcript := []models.TranscriptSegment{
		seg("um so welcome back everyone", 0, 3),
		seg("today we discuss results", 3, 5),
		seg("check out my sponsor NordVPN", 8, 4),
	}
	out := Synthesize(transcript, []float64{0.5, 8.5}, adPrefs(models.SensitivityMedium), DefaultBuffer)

	if len(out) != 2 {
		t.Fatalf("got %d intervals, want 2: %+v", len(out), out)
	}
	checkInvariants(t, out, 12)

	// Oracle interval around segment one: the filler and intro signals
	// push the confidence well past the 0.4 threshold.
	first := out[0]
	if first.Start != 0 || first.End != 3.5 {
		t.Errorf("first interval = [%v,%v], want [0,3.5]", first.Start, first.End)
	}
	if first.Reason != "Filler Speech" {
		t.Errorf("first reason = %q, want Filler Speech", first.Reason)
	}
	if first.Confidence < 0.4 {
		t.Errorf("first confidence = %v, want >= 0.4", first.Confidence)
	}

	// Rule interval around the sponsor segment; the 8.5 oracle timestamp
	// falls inside it and must not create a second interval.
	second := out[1]
	if second.Start != 7.5 || second.End != 12.0 {
		t.Errorf("second interval = [%v,%v], want [7.5,12]", second.Start, second.End)
	}
	if second.Reason != "User preference: Advertisements" {
		t.Errorf("second reason = %q", second.Reason)
	}
	if second.Confidence != 0.6 {
		t.Errorf("second confidence = %v, want 0.6", second.Confidence)
	}
}

func TestTotalDuration(t *testing.T) {
	if got := TotalDuration(nil); got != 0 {
		t.Errorf("TotalDuration(nil) = %v, want 0", got)
	}
	transcript := []models.TranscriptSegment{
		seg("b", 5, 3),
		seg("a", 0, 4),
	}
	if got := TotalDuration(transcript); got != 8 {
		t.Errorf("TotalDuration = %v, want 8", got)
	}
}

func TestSummarize(t *testing.T) {
	segs := []models.SkipSegment{
		{Start: 0, End: 2},
		{Start: 5, End: 9},
	}
	total, pct := Summarize(segs, 60)
	if total != 6 {
		t.Errorf("totalSkip = %v, want 6", total)
	}
	if pct != 10 {
		t.Errorf("skipPercentage = %v, want 10", pct)
	}

	if _, pct := Summarize(segs, 0); pct != 0 {
		t.Errorf("zero duration must not divide: pct = %v", pct)
	}
}
