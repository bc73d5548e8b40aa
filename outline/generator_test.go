package outline

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"learnlens/config"
	"learnlens/errs"
	"learnlens/genai"
	"learnlens/types"
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

func testCfg() config.OutlineConfig {
	return config.OutlineConfig{MaxTopics: 5, ContentPreview: 2000, MinTitleLength: 4}
}

func newGenerator(gen genai.TextGenerator) *Generator {
	return New(testCfg(), gen, zap.NewNop())
}

func assertOutlineInvariants(t *testing.T, o *types.Outline) {
	t.Helper()
	require.NotNil(t, o)
	require.NotEmpty(t, o.Topics)
	for i, topic := range o.Topics {
		assert.Equal(t, i, topic.Order, "topic order must be dense from 0")
		assert.Equal(t, i > 0, topic.IsPremium, "only the first topic is free")
		assert.NotEmpty(t, topic.ID)
		assert.NotEmpty(t, topic.Title)
	}
}

func TestGenerate_FromModelResponse(t *testing.T) {
	gen := &fakeTextGen{response: "1. Getting Started\n2. Core Concepts Deep Dive\n3. Common Pitfalls"}
	o := newGenerator(gen).Generate(context.Background(), "some document text", "guide.pdf")

	assertOutlineInvariants(t, o)
	require.Len(t, o.Topics, 3)
	assert.Equal(t, "Getting Started", o.Topics[0].Title)
	assert.Equal(t, "Educational content about getting started", o.Topics[0].Description)
	assert.Equal(t, "guide", o.Title)
}

func TestGenerate_TruncatesContent(t *testing.T) {
	long := make([]byte, 5000)
	for i := range long {
		long[i] = 'x'
	}
	gen := &fakeTextGen{response: "1. Only Topic Here"}
	newGenerator(gen).Generate(context.Background(), string(long), "big.txt")

	require.Len(t, gen.prompts, 1)
	assert.Less(t, len(gen.prompts[0]), 2500, "prompt must embed only a bounded prefix")
}

func TestGenerate_GenericOutlineWhenNothingParses(t *testing.T) {
	gen := &fakeTextGen{response: "I could not determine any structure for this document"}
	o := newGenerator(gen).Generate(context.Background(), "text", "notes.txt")

	assertOutlineInvariants(t, o)
	require.Len(t, o.Topics, 3)
	assert.Equal(t, "Introduction and Overview", o.Topics[0].Title)
	assert.Equal(t, "Core Concepts", o.Topics[1].Title)
	assert.Equal(t, "Practical Applications", o.Topics[2].Title)
}

func TestGenerate_FallbackWhenUnavailable(t *testing.T) {
	gen := &fakeTextGen{err: fmt.Errorf("%w: GEMINI_API_KEY not set", errs.ErrUnavailable)}
	o := newGenerator(gen).Generate(context.Background(), "text", "notes.txt")

	assertOutlineInvariants(t, o)
	require.Len(t, o.Topics, 1)
	assert.Equal(t, "Introduction", o.Topics[0].Title)
	assert.False(t, o.Topics[0].IsPremium)
}

func TestGenerate_FallbackWhenUpstreamFails(t *testing.T) {
	gen := &fakeTextGen{err: fmt.Errorf("%w: 503", errs.ErrUpstream)}
	o := newGenerator(gen).Generate(context.Background(), "", "empty.txt")

	assertOutlineInvariants(t, o)
	require.Len(t, o.Topics, 1)
}

func TestGenerate_NeverEmptyOnGarbage(t *testing.T) {
	for _, text := range []string{"", "   \n\t", "@@@@####$$$$"} {
		gen := &fakeTextGen{response: ""}
		o := newGenerator(gen).Generate(context.Background(), text, "f.txt")
		assertOutlineInvariants(t, o)
	}
}
