package script

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"learnlens/config"
	"learnlens/errs"
	"learnlens/genai"
)

type fakeTextGen struct {
	response string
	err      error
	prompts  []string
}

var _ genai.TextGenerator = (*fakeTextGen)(nil)

func (f *fakeTextGen) GenerateText(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.response, f.err
}

func newWriter(gen genai.TextGenerator) *Writer {
	cfg := config.ScriptConfig{ContentPreview: 1000, TargetDurationMin: 2, TargetDurationMax: 3}
	return New(cfg, gen, zap.NewNop())
}

func TestWrite_ReturnsModelScript(t *testing.T) {
	gen := &fakeTextGen{response: "Welcome! Today we cover photosynthesis in depth."}
	got := newWriter(gen).Write(context.Background(), "Photosynthesis", "plants convert light")

	assert.Equal(t, gen.response, got)
	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], `"Photosynthesis"`)
	assert.Contains(t, gen.prompts[0], "2-3 minutes")
}

func TestWrite_TruncatesSourceText(t *testing.T) {
	gen := &fakeTextGen{response: "script"}
	newWriter(gen).Write(context.Background(), "Topic", strings.Repeat("y", 4000))

	require.Len(t, gen.prompts, 1)
	assert.Less(t, len(gen.prompts[0]), 1500)
}

func TestWrite_PlaceholderOnFailure(t *testing.T) {
	gen := &fakeTextGen{err: fmt.Errorf("%w: timeout", errs.ErrUpstream)}
	got := newWriter(gen).Write(context.Background(), "Cell Division", "source")

	assert.Equal(t, "Educational content about Cell Division", got)
}

func TestWrite_PlaceholderWhenUnavailable(t *testing.T) {
	gen := &fakeTextGen{err: errs.ErrUnavailable}
	got := newWriter(gen).Write(context.Background(), "Mitosis", "source")

	assert.Equal(t, Placeholder("Mitosis"), got)
}
