package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	generateTimeout   = 40 * time.Second
	listModelsTimeout = 25 * time.Second

	// jitter added on top of each backoff delay, uniform in [0, jitterMax).
	jitterMax = 0.25

	bodySnippetLen = 300
)

var (
	ErrMissingAPIKey = errors.New("gemini api key is not configured")
	ErrEmptyModel    = errors.New("gemini model name is empty")
	ErrInvalidModel  = errors.New("model is not a gemini model")
)

// APIError is a non-2xx answer from the provider. Body is truncated so raw
// provider payloads never propagate whole.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gemini api error: status %d: %s", e.Status, e.Body)
}

// IsQuotaExhausted reports whether err is the provider telling us the request
// volume quota ran out. This is the one gateway failure the coach resolves
// with the offline fallback instead of surfacing.
func IsQuotaExhausted(err error) bool {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	if apiErr.Status == http.StatusTooManyRequests {
		return true
	}
	return strings.Contains(apiErr.Body, "RESOURCE_EXHAUSTED") ||
		strings.Contains(apiErr.Body, "exceeded your current quota")
}

// ValidateModelName normalizes and checks a configured model identifier. An
// optional "models/" namespace prefix is stripped; empty names and names
// carrying non-Gemini model markers are rejected.
func ValidateModelName(model string) (string, error) {
	m := strings.TrimSpace(model)
	if m == "" {
		return "", ErrEmptyModel
	}
	m = strings.TrimSpace(strings.TrimPrefix(m, "models/"))

	low := strings.ToLower(m)
	if strings.Contains(low, "llama") || strings.Contains(low, "mixtral") {
		return "", fmt.Errorf("%w: %q", ErrInvalidModel, m)
	}
	if !strings.HasPrefix(low, "gemini-") {
		return "", fmt.Errorf("%w: %q (expected a gemini- prefix)", ErrInvalidModel, m)
	}
	return m, nil
}

// Config holds the provider endpoint plus the retry policy knobs. Backoff
// values are in seconds, matching the environment surface.
type Config struct {
	APIKey      string
	Model       string
	BaseURL     string
	Retries     int
	BackoffBase float64
	BackoffCap  float64
}

// Client calls the Gemini content-generation API with retry and exponential
// backoff on transient failures. Sleep and jitter are injectable so the
// retry loop is testable without real delays.
type Client struct {
	cfg    Config
	httpc  *http.Client
	sleep  func(time.Duration)
	jitter func() float64
}

func NewClient(cfg Config) *Client {
	return &Client{
		cfg:    cfg,
		httpc:  &http.Client{Timeout: generateTimeout},
		sleep:  time.Sleep,
		jitter: rand.Float64,
	}
}

type GenerateOptions struct {
	Temperature     float64
	MaxOutputTokens int
	TopP            float64
}

// Meta carries the interpreted slice of the provider answer; everything else
// is passed through opaquely.
type Meta struct {
	RequestID    string          `json:"request_id"`
	BlockReason  string          `json:"block_reason,omitempty"`
	FinishReason string          `json:"finish_reason,omitempty"`
	Usage        json.RawMessage `json:"usage,omitempty"`
}

type Result struct {
	Text    string
	Model   string
	Meta    Meta
	RawHead string
}

type contentPart struct {
	Text string `json:"text"`
}

type contentBlock struct {
	Role  string        `json:"role,omitempty"`
	Parts []contentPart `json:"parts"`
}

type generateRequest struct {
	SystemInstruction *contentBlock  `json:"systemInstruction,omitempty"`
	Contents          []contentBlock `json:"contents"`
	GenerationConfig  struct {
		Temperature     float64 `json:"temperature"`
		MaxOutputTokens int     `json:"maxOutputTokens"`
		TopP            float64 `json:"topP"`
	} `json:"generationConfig"`
}

type generateResponse struct {
	PromptFeedback struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
	Candidates []struct {
		FinishReason string `json:"finishReason"`
		Content      struct {
			Parts []contentPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	UsageMetadata json.RawMessage `json:"usageMetadata"`
}

// Generate runs the content call with the configured retry budget. Rate
// limits (429) and server instability (500/503) are retried with exponential
// backoff plus jitter; transport failures follow the same policy. Validation
// and credential problems fail immediately.
func (c *Client) Generate(ctx context.Context, systemText, userText string, opts GenerateOptions) (*Result, error) {
	model, err := ValidateModelName(c.cfg.Model)
	if err != nil {
		return nil, err
	}
	if c.cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	var lastErr error
	for attempt := 0; attempt <= c.cfg.Retries; attempt++ {
		res, err := c.generateOnce(ctx, model, systemText, userText, opts)
		if err == nil {
			return res, nil
		}
		lastErr = err

		if !retriable(err) || attempt >= c.cfg.Retries {
			return nil, err
		}

		delay := math.Min(c.cfg.BackoffCap, c.cfg.BackoffBase*math.Pow(2, float64(attempt)))
		delay += c.jitter() * jitterMax
		c.sleep(time.Duration(delay * float64(time.Second)))
	}
	return nil, lastErr
}

func retriable(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Status {
		case http.StatusTooManyRequests, http.StatusInternalServerError, http.StatusServiceUnavailable:
			return true
		}
		return false
	}
	// Transport-level failures (connection reset, timeout) get the same
	// retry budget as provider instability.
	return true
}

func (c *Client) generateOnce(ctx context.Context, model, systemText, userText string, opts GenerateOptions) (*Result, error) {
	payload := generateRequest{
		SystemInstruction: &contentBlock{Parts: []contentPart{{Text: systemText}}},
		Contents:          []contentBlock{{Role: "user", Parts: []contentPart{{Text: userText}}}},
	}
	payload.GenerationConfig.Temperature = opts.Temperature
	payload.GenerationConfig.MaxOutputTokens = opts.MaxOutputTokens
	payload.GenerationConfig.TopP = opts.TopP

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding generate payload: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		strings.TrimRight(c.cfg.BaseURL, "/"), model, c.cfg.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "LifeOps/1.2 (Go; SnixCoach)")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gemini generate transport: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("reading gemini response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{Status: resp.StatusCode, Body: truncate(string(raw), bodySnippetLen)}
	}

	var decoded generateResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, fmt.Errorf("decoding gemini response: %w", err)
	}

	result := &Result{
		Model:   model,
		RawHead: truncate(string(raw), bodySnippetLen),
		Meta: Meta{
			RequestID:   uuid.NewString(),
			BlockReason: decoded.PromptFeedback.BlockReason,
			Usage:       decoded.UsageMetadata,
		},
	}

	if len(decoded.Candidates) > 0 {
		first := decoded.Candidates[0]
		result.Meta.FinishReason = first.FinishReason

		var texts []string
		for _, p := range first.Content.Parts {
			if t := strings.TrimSpace(p.Text); t != "" {
				texts = append(texts, t)
			}
		}
		result.Text = strings.Join(texts, "\n")
	}

	return result, nil
}

// ListModels fetches the provider's raw model catalog, passed through as-is.
func (c *Client) ListModels(ctx context.Context) (json.RawMessage, error) {
	if c.cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	ctx, cancel := context.WithTimeout(ctx, listModelsTimeout)
	defer cancel()

	url := fmt.Sprintf("%s/models?key=%s", strings.TrimRight(c.cfg.BaseURL, "/"), c.cfg.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gemini list models transport: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("reading gemini model catalog: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{Status: resp.StatusCode, Body: truncate(string(raw), 400)}
	}
	return json.RawMessage(raw), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
