// Package synthesis implements the skip-segment synthesis engine: it
// reconciles rule-based preference matches and oracle-suggested timestamps
// into one sorted, non-overlapping, confidence-scored list of skip intervals.
//
// The engine is a pure computation over in-memory values. It performs no
// I/O, owns no state, never mutates its inputs, and is safe to call
// concurrently. Input validation (non-negative durations, numeric
// timestamps) is the caller's responsibility.
package synthesis

import (
	"math"
	"sort"
	"strings"

	"github.com/JustinTDCT/SkipVault/internal/models"
)

const (
	// DefaultBuffer widens every candidate interval on both sides so skips
	// do not clip the surrounding speech.
	DefaultBuffer = 0.5

	// mergeTolerance is the maximum gap between intervals that still
	// collapses them into one.
	mergeTolerance = 1.0

	// minDuration drops intervals too short to be worth skipping.
	minDuration = 1.5
)

// Synthesize builds the final skip interval list from a transcript, a list
// of oracle-suggested timestamps, and optional user preferences.
//
// Pass 1 walks the transcript and turns preference-rule matches into
// intervals. Pass 2 locates each oracle timestamp inside the transcript,
// scores it, and keeps it only when it clears the sensitivity threshold and
// is not already covered. Candidates closer than one second are merged;
// intervals shorter than 1.5 seconds are dropped. Malformed input degrades
// to an empty result, never an error.
func Synthesize(transcript []models.TranscriptSegment, oracleTimestamps []float64, prefs *models.UserPreferences, buffer float64) []models.SkipSegment {
	if len(transcript) == 0 {
		return nil
	}
	if len(oracleTimestamps) == 0 && !prefs.Active() {
		return nil
	}

	segments := make([]models.TranscriptSegment, len(transcript))
	copy(segments, transcript)
	sort.SliceStable(segments, func(i, j int) bool { return segments[i].Start < segments[j].Start })

	stamps := make([]float64, len(oracleTimestamps))
	copy(stamps, oracleTimestamps)
	sort.Float64s(stamps)

	total := segments[len(segments)-1].End()

	// Pass 1: rule-based intervals, in transcript order.
	var ruleBased []models.SkipSegment
	for _, seg := range segments {
		matched, reason, confidence := Match(seg, prefs)
		if !matched {
			continue
		}
		ruleBased = appendMerged(ruleBased, candidate(seg, confidence, reason, buffer, total))
	}

	// Pass 2: oracle timestamps, ascending.
	threshold := oracleThreshold(prefs)
	var oracleBased []models.SkipSegment
	for _, ts := range stamps {
		seg, ok := containingSegment(segments, ts)
		if !ok {
			// No transcript content at this timestamp; drop silently.
			continue
		}
		if covers(ruleBased, seg.Start) || covers(oracleBased, seg.Start) {
			// Already claimed by an earlier interval; a weaker oracle
			// candidate must not override it.
			continue
		}
		confidence := Score(seg)
		if confidence < threshold {
			continue
		}
		oracleBased = appendMerged(oracleBased, candidate(seg, confidence, ClassifyReason(seg), buffer, total))
	}

	// Interleave both passes by start time and merge across sources.
	all := make([]models.SkipSegment, 0, len(ruleBased)+len(oracleBased))
	all = append(all, ruleBased...)
	all = append(all, oracleBased...)
	sort.SliceStable(all, func(i, j int) bool { return all[i].Start < all[j].Start })

	var merged []models.SkipSegment
	for _, c := range all {
		merged = appendMerged(merged, c)
	}

	out := merged[:0]
	for _, s := range merged {
		if s.End-s.Start >= minDuration {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// TotalDuration returns the transcript length in seconds, computed from the
// latest-starting segment. Zero for an empty transcript.
func TotalDuration(transcript []models.TranscriptSegment) float64 {
	var last models.TranscriptSegment
	found := false
	for _, seg := range transcript {
		if !found || seg.Start > last.Start {
			last = seg
			found = true
		}
	}
	if !found {
		return 0
	}
	return last.End()
}

// Summarize derives the caller-facing statistics from a skip interval list.
func Summarize(segments []models.SkipSegment, totalDuration float64) (totalSkip, skipPercentage float64) {
	for _, s := range segments {
		totalSkip += s.End - s.Start
	}
	if totalDuration > 0 {
		skipPercentage = totalSkip / totalDuration * 100
	}
	return totalSkip, skipPercentage
}

func candidate(seg models.TranscriptSegment, confidence float64, reason string, buffer, total float64) models.SkipSegment {
	return models.SkipSegment{
		Start:      math.Max(0, seg.Start-buffer),
		End:        math.Min(total, seg.End()+buffer),
		Confidence: confidence,
		Reason:     reason,
	}
}

// appendMerged appends a candidate to a start-ordered list, collapsing it
// into the previous interval when the gap is within tolerance. A merge keeps
// the furthest end, the highest confidence, and appends the reason unless it
// is already present.
func appendMerged(list []models.SkipSegment, cand models.SkipSegment) []models.SkipSegment {
	n := len(list)
	if n == 0 || cand.Start > list[n-1].End+mergeTolerance {
		return append(list, cand)
	}
	prev := &list[n-1]
	if cand.End > prev.End {
		prev.End = cand.End
	}
	if cand.Confidence > prev.Confidence {
		prev.Confidence = cand.Confidence
	}
	for _, r := range strings.Split(cand.Reason, ", ") {
		if !hasReason(prev.Reason, r) {
			prev.Reason += ", " + r
		}
	}
	return list
}

func hasReason(joined, reason string) bool {
	for _, r := range strings.Split(joined, ", ") {
		if r == reason {
			return true
		}
	}
	return false
}

// containingSegment finds the first transcript segment whose span contains
// the timestamp, inclusive on both ends.
func containingSegment(segments []models.TranscriptSegment, ts float64) (models.TranscriptSegment, bool) {
	for _, seg := range segments {
		if seg.Start <= ts && ts <= seg.End() {
			return seg, true
		}
	}
	return models.TranscriptSegment{}, false
}

// covers reports whether any interval in the list contains the timestamp.
func covers(list []models.SkipSegment, ts float64) bool {
	for _, s := range list {
		if s.Start <= ts && ts <= s.End {
			return true
		}
	}
	return false
}

// oracleThreshold is the minimum confidence an oracle-based candidate must
// reach. High sensitivity admits weaker candidates.
func oracleThreshold(prefs *models.UserPreferences) float64 {
	if prefs != nil && prefs.Sensitivity == models.SensitivityHigh {
		return 0.3
	}
	return 0.4
}
