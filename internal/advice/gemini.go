package advice

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"
)

var ErrNoAPIKey = errors.New("advice: no Gemini API key configured")

type GeminiConfig struct {
	APIKey string

	// Model defaults to gemini-2.5-flash.
	Model string

	// BaseURL defaults to the public Generative Language endpoint.
	BaseURL string

	// MaxRetries for retryable errors. Defaults to 2.
	MaxRetries uint64

	// BaseRetryDelay defaults to 500ms, MaxRetryDelay to 4s.
	BaseRetryDelay time.Duration
	MaxRetryDelay  time.Duration

	HTTPClient *http.Client
}

// GeminiClient asks a Gemini model for advice through the REST API.
type GeminiClient struct {
	config GeminiConfig
	http   *http.Client
}

func NewGemini(cfg GeminiConfig) *GeminiClient {
	if cfg.Model == "" {
		cfg.Model = "gemini-2.5-flash"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://generativelanguage.googleapis.com"
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 2
	}
	if cfg.BaseRetryDelay == 0 {
		cfg.BaseRetryDelay = 500 * time.Millisecond
	}
	if cfg.MaxRetryDelay == 0 {
		cfg.MaxRetryDelay = 4 * time.Second
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &GeminiClient{config: cfg, http: httpClient}
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Parts []part `json:"parts"`
}

type schema struct {
	Type       string            `json:"type"`
	Properties map[string]schema `json:"properties,omitempty"`
}

type generationConfig struct {
	ResponseMimeType string `json:"responseMimeType"`
	ResponseSchema   schema `json:"responseSchema"`
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

var adviceSchema = schema{
	Type: "OBJECT",
	Properties: map[string]schema{
		"explanation": {Type: "STRING"},
		"tip":         {Type: "STRING"},
	},
}

func (c *GeminiClient) Advise(ctx context.Context, mode, situation string) (Advice, error) {
	if c.config.APIKey == "" {
		return Advice{}, ErrNoAPIKey
	}

	b := retry.NewExponential(c.config.BaseRetryDelay)
	b = retry.WithCappedDuration(c.config.MaxRetryDelay, b)
	b = retry.WithMaxRetries(c.config.MaxRetries, b)

	var a Advice
	err := retry.Do(ctx, b, func(ctx context.Context) error {
		var err error
		a, err = c.generate(ctx, prompt(mode, situation))
		var he *HTTPError
		if errors.As(err, &he) && he.IsRetryable() {
			return retry.RetryableError(err)
		}
		return err
	})
	return a, err
}

func (c *GeminiClient) generate(ctx context.Context, text string) (Advice, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: text}}}},
		GenerationConfig: generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   adviceSchema,
		},
	})
	if nil != err {
		return Advice{}, fmt.Errorf("advice: marshal request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent",
		strings.TrimRight(c.config.BaseURL, "/"), url.PathEscape(c.config.Model))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if nil != err {
		return Advice{}, fmt.Errorf("advice: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.config.APIKey)

	resp, err := c.http.Do(req)
	if nil != err {
		return Advice{}, fmt.Errorf("advice: http request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if nil != err {
		return Advice{}, fmt.Errorf("advice: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return Advice{}, &HTTPError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	var gr generateResponse
	if err := json.Unmarshal(raw, &gr); nil != err {
		return Advice{}, fmt.Errorf("advice: decode response: %w", err)
	}
	for _, cand := range gr.Candidates {
		for _, p := range cand.Content.Parts {
			if strings.TrimSpace(p.Text) != "" {
				return decode(p.Text)
			}
		}
	}
	return Advice{}, ErrEmptyAdvice
}
