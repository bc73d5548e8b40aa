package genai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"learnlens/config"
	"learnlens/errs"
)

func testClient(t *testing.T, endpoint string) *Client {
	t.Helper()
	cfg := config.GenAIConfig{
		Model:           "gemini-2.5-flash",
		Endpoint:        endpoint,
		TimeoutSec:      5,
		MaxRetries:      1,
		RetryBackoffSec: 1,
	}
	return New(cfg, zap.NewNop())
}

func TestGenerateText_Unavailable(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	c := testClient(t, "http://localhost:0")

	_, err := c.GenerateText(context.Background(), "prompt")
	assert.ErrorIs(t, err, errs.ErrUnavailable)
}

func TestGenerateText_Success(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/gemini-2.5-flash:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"1. Topic One\n"},{"text":"2. Topic Two"}]}}]}`))
	}))
	defer srv.Close()

	c := testClient(t, srv.URL)
	text, err := c.GenerateText(context.Background(), "make an outline")
	require.NoError(t, err)
	assert.Equal(t, "1. Topic One\n2. Topic Two", text)
}

func TestGenerateText_APIError(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"error":{"message":"quota exceeded"}}`))
	}))
	defer srv.Close()

	c := testClient(t, srv.URL)
	_, err := c.GenerateText(context.Background(), "prompt")
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrUpstream)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestGenerateText_NoCandidates(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	c := testClient(t, srv.URL)
	_, err := c.GenerateText(context.Background(), "prompt")
	assert.ErrorIs(t, err, errs.ErrUpstream)
}
