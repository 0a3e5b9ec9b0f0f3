// Package groq provides an oracle.Classifier backed by the Groq chat
// completions API via its OpenAI-compatible endpoint.
package groq

import (
	"context"
	"fmt"
	"net/http"
	"time"

	oai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"
	"github.com/openai/openai-go/shared"
	"golang.org/x/time/rate"

	"github.com/JustinTDCT/SkipVault/internal/oracle"
)

const (
	// DefaultBaseURL is Groq's OpenAI-compatible endpoint.
	DefaultBaseURL = "https://api.groq.com/openai/v1"

	// DefaultModel balances speed and quality for transcript analysis.
	DefaultModel = "meta-llama/llama-4-scout-17b-16e-instruct"

	// Low temperature keeps repeated runs on the same transcript stable.
	temperature         = 0.1
	maxCompletionTokens = 2048
)

// Classifier implements oracle.Classifier against the Groq API. A token
// bucket limiter spreads requests out so bursts of queued videos stay under
// the account's rate limit.
type Classifier struct {
	client  oai.Client
	model   string
	limiter *rate.Limiter
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithModel overrides the default model.
func WithModel(model string) Option {
	return func(c *Classifier) {
		if model != "" {
			c.model = model
		}
	}
}

// WithRequestsPerSecond replaces the default limit of 1 request per second.
func WithRequestsPerSecond(rps float64) Option {
	return func(c *Classifier) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

// New constructs a Classifier. baseURL may be empty to use DefaultBaseURL.
func New(apiKey, baseURL string, opts ...Option) (*Classifier, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("groq: apiKey must not be empty")
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	c := &Classifier{
		client: oai.NewClient(
			option.WithAPIKey(apiKey),
			option.WithBaseURL(baseURL),
			option.WithHTTPClient(&http.Client{Timeout: 60 * time.Second}),
		),
		model:   DefaultModel,
		limiter: rate.NewLimiter(rate.Limit(1), 1),
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// Classify implements oracle.Classifier.
func (c *Classifier) Classify(ctx context.Context, prompt string) (oracle.Result, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return oracle.Result{}, err
	}

	params := oai.ChatCompletionNewParams{
		Model: shared.ChatModel(c.model),
		Messages: []oai.ChatCompletionMessageParamUnion{
			oai.SystemMessage(oracle.SystemPrompt),
			oai.UserMessage(prompt),
		},
		Temperature:         param.NewOpt(temperature),
		MaxCompletionTokens: param.NewOpt(int64(maxCompletionTokens)),
		ResponseFormat: oai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		},
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return oracle.Result{}, fmt.Errorf("%w: %v", oracle.ErrUnavailable, err)
	}
	if len(resp.Choices) == 0 {
		return oracle.Result{}, fmt.Errorf("%w: empty choices", oracle.ErrMalformedResponse)
	}

	return oracle.ParseSegments(resp.Choices[0].Message.Content)
}
