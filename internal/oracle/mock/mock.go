// Package mock provides a test double for the oracle.Classifier interface.
//
// Zero values for response fields cause Classify to return an empty Result
// and a nil error. Set Err to inject errors.
package mock

import (
	"context"
	"sync"

	"github.com/JustinTDCT/SkipVault/internal/oracle"
)

// Call records a single invocation of Classify.
type Call struct {
	Ctx    context.Context
	Prompt string
}

// Classifier is a mock implementation of oracle.Classifier.
type Classifier struct {
	mu sync.Mutex

	// Result is returned by Classify when Err is nil.
	Result oracle.Result

	// Err, if non-nil, is returned as the error from Classify.
	Err error

	// Calls records every invocation of Classify in order.
	Calls []Call
}

// Classify implements oracle.Classifier.
func (c *Classifier) Classify(ctx context.Context, prompt string) (oracle.Result, error) {
	c.mu.Lock()
	c.Calls = append(c.Calls, Call{Ctx: ctx, Prompt: prompt})
	c.mu.Unlock()

	if c.Err != nil {
		return oracle.Result{}, c.Err
	}
	return c.Result, nil
}
