// Package transcript fetches YouTube caption tracks and converts them into
// timed transcript segments.
package transcript

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/JustinTDCT/SkipVault/internal/models"
)

var (
	// ErrTranscriptsDisabled means the video exists but exposes no caption
	// tracks at all.
	ErrTranscriptsDisabled = errors.New("transcripts are disabled for this video")

	// ErrNoTranscript means caption tracks exist but none is usable (for
	// example no track in a supported language).
	ErrNoTranscript = errors.New("no transcript available for this video")
)

type Fetcher struct {
	client    *http.Client
	userAgent string
}

func NewFetcher() *Fetcher {
	return &Fetcher{
		client:    &http.Client{Timeout: 15 * time.Second},
		userAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) SkipVault/1.0",
	}
}

// Fetch downloads the best available caption track for a video and returns it
// as ordered transcript segments. English tracks are preferred, and manually
// authored captions win over auto-generated ones.
func (f *Fetcher) Fetch(ctx context.Context, videoID string) ([]models.TranscriptSegment, error) {
	watchURL := "https://www.youtube.com/watch?v=" + url.QueryEscape(videoID)
	body, err := f.get(ctx, watchURL)
	if err != nil {
		return nil, fmt.Errorf("fetch watch page: %w", err)
	}

	tracks, err := extractCaptionTracks(body)
	if err != nil {
		return nil, err
	}

	track := pickTrack(tracks)
	if track == nil {
		return nil, ErrNoTranscript
	}

	raw, err := f.get(ctx, track.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("fetch caption track: %w", err)
	}

	segments, err := parseTimedText(raw)
	if err != nil {
		return nil, fmt.Errorf("parse caption track: %w", err)
	}
	if len(segments) == 0 {
		return nil, ErrNoTranscript
	}
	return segments, nil
}

func (f *Fetcher) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, rawURL)
	}
	return io.ReadAll(resp.Body)
}

// captionTrack is one entry of the player response's captionTracks list.
type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"` // "asr" for auto-generated
}

// extractCaptionTracks pulls the captionTracks array out of the embedded
// player response on a watch page. The page is not valid JSON as a whole, so
// the array is located and decoded in place.
func extractCaptionTracks(page []byte) ([]captionTrack, error) {
	const marker = `"captionTracks":`
	idx := strings.Index(string(page), marker)
	if idx < 0 {
		return nil, ErrTranscriptsDisabled
	}

	rest := page[idx+len(marker):]
	end := jsonArrayEnd(rest)
	if end < 0 {
		return nil, fmt.Errorf("malformed captionTracks block")
	}

	var tracks []captionTrack
	if err := json.Unmarshal(rest[:end], &tracks); err != nil {
		return nil, fmt.Errorf("decode captionTracks: %w", err)
	}
	if len(tracks) == 0 {
		return nil, ErrTranscriptsDisabled
	}
	return tracks, nil
}

// jsonArrayEnd returns the byte offset just past the closing bracket of the
// JSON array starting at b[0], honoring nesting and string escapes.
func jsonArrayEnd(b []byte) int {
	if len(b) == 0 || b[0] != '[' {
		return -1
	}
	depth := 0
	inString := false
	for i := 0; i < len(b); i++ {
		c := b[i]
		if inString {
			switch c {
			case '\\':
				i++
			case '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return -1
}

// pickTrack chooses the preferred caption track: manual English, then
// auto-generated English, then any manual track, then anything at all.
func pickTrack(tracks []captionTrack) *captionTrack {
	rank := func(t captionTrack) int {
		english := t.LanguageCode == "en" || strings.HasPrefix(t.LanguageCode, "en-")
		manual := t.Kind != "asr"
		switch {
		case english && manual:
			return 0
		case english:
			return 1
		case manual:
			return 2
		default:
			return 3
		}
	}

	best := -1
	for i := range tracks {
		if tracks[i].BaseURL == "" {
			continue
		}
		if best < 0 || rank(tracks[i]) < rank(tracks[best]) {
			best = i
		}
	}
	if best < 0 {
		return nil
	}
	return &tracks[best]
}

type timedText struct {
	Texts []struct {
		Start    float64 `xml:"start,attr"`
		Duration float64 `xml:"dur,attr"`
		Body     string  `xml:",chardata"`
	} `xml:"text"`
}

// parseTimedText converts YouTube's timedtext XML into transcript segments.
// Entries with empty text are dropped and the result is sorted by start time.
func parseTimedText(raw []byte) ([]models.TranscriptSegment, error) {
	var doc timedText
	if err := xml.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}

	segments := make([]models.TranscriptSegment, 0, len(doc.Texts))
	for _, t := range doc.Texts {
		text := strings.TrimSpace(html.UnescapeString(t.Body))
		if text == "" {
			continue
		}
		segments = append(segments, models.TranscriptSegment{
			Text:     text,
			Start:    t.Start,
			Duration: t.Duration,
		})
	}
	sort.SliceStable(segments, func(i, j int) bool { return segments[i].Start < segments[j].Start })
	return segments, nil
}
