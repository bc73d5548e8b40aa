package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"learnlens/config"
	"learnlens/errs"
)

// TextGenerator is the external text-generation collaborator
type TextGenerator interface {
	// GenerateText sends one prompt and returns the model's text response.
	// It fails with errs.ErrUnavailable when no credential is configured and
	// wraps errs.ErrUpstream on API failures.
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Client calls the Gemini generateContent REST API
type Client struct {
	cfg        config.GenAIConfig
	apiKey     string
	httpClient *http.Client
	log        *zap.Logger
}

// New creates a Gemini client. The API key comes from GEMINI_API_KEY; an
// empty key is allowed and makes every call fail with errs.ErrUnavailable so
// callers can take their fallback paths.
func New(cfg config.GenAIConfig, log *zap.Logger) *Client {
	return &Client{
		cfg:        cfg,
		apiKey:     os.Getenv("GEMINI_API_KEY"),
		httpClient: &http.Client{Timeout: time.Duration(cfg.TimeoutSec) * time.Second},
		log:        log,
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// GenerateText sends the prompt to Gemini and returns the first candidate's text
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("%w: GEMINI_API_KEY not set", errs.ErrUnavailable)
	}

	c.log.Debug("calling gemini",
		zap.String("model", c.cfg.Model),
		zap.Int("promptChars", len(prompt)),
	)

	// Retry transient failures (Gemini occasionally times out)
	var lastErr error
	for attempt := 1; attempt <= c.cfg.MaxRetries; attempt++ {
		text, err := c.generateOnce(ctx, prompt)
		if err == nil {
			return text, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
		c.log.Warn("gemini attempt failed",
			zap.Int("attempt", attempt),
			zap.Error(err),
		)
		if attempt == c.cfg.MaxRetries {
			break
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(time.Duration(attempt*c.cfg.RetryBackoffSec) * time.Second):
		}
	}
	return "", fmt.Errorf("%w: %v", errs.ErrUpstream, lastErr)
}

func (c *Client) generateOnce(ctx context.Context, prompt string) (string, error) {
	reqBody := generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	}
	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.cfg.Endpoint, c.cfg.Model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini request: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var genResp generateResponse
	if err := json.Unmarshal(respBytes, &genResp); err != nil {
		return "", fmt.Errorf("parse gemini response: %w", err)
	}
	if genResp.Error != nil {
		return "", fmt.Errorf("gemini error: %s", genResp.Error.Message)
	}
	if len(genResp.Candidates) == 0 || len(genResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, p := range genResp.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String(), nil
}
