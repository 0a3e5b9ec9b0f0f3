// Package oracle defines the language-model classifier that suggests skip
// candidate timestamps for a transcript.
package oracle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrUnavailable means the upstream model could not be reached or
	// refused the request.
	ErrUnavailable = errors.New("oracle unavailable")

	// ErrMalformedResponse means the model answered with something other
	// than the expected JSON shape.
	ErrMalformedResponse = errors.New("malformed oracle response")
)

// Result is the classifier's answer: start times, in seconds, of transcript
// segments worth skipping.
type Result struct {
	Segments []float64 `json:"segments"`
}

// Classifier produces skip candidate timestamps for a prepared prompt.
type Classifier interface {
	Classify(ctx context.Context, prompt string) (Result, error)
}

// ParseSegments decodes a model reply into a Result. The reply must be a JSON
// object with a "segments" array of numbers; anything else is reported as
// ErrMalformedResponse.
func ParseSegments(raw string) (Result, error) {
	var result Result
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return result, nil
}
