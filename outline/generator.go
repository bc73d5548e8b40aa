package outline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"learnlens/config"
	"learnlens/genai"
	"learnlens/types"
)

// Generator derives a learning outline from extracted document text.
// Generate never fails outward: every failure of the text model collapses
// into one of two fallback tiers, so an upload always gets a usable outline.
type Generator struct {
	cfg config.OutlineConfig
	gen genai.TextGenerator
	log *zap.Logger
}

// New creates a new outline Generator
func New(cfg config.OutlineConfig, gen genai.TextGenerator, log *zap.Logger) *Generator {
	return &Generator{cfg: cfg, gen: gen, log: log}
}

// Generate asks the text model to propose topics for the document and parses
// its free-form answer. Model unavailable or call failed → single-topic
// fallback outline. Model answered but nothing parseable → generic 3-topic
// outline. Either way the first topic is free and the rest are premium.
func (g *Generator) Generate(ctx context.Context, text, sourceName string) *types.Outline {
	g.log.Info("generating outline",
		zap.String("source", sourceName),
		zap.Int("chars", len(text)),
	)

	preview := text
	if len(preview) > g.cfg.ContentPreview {
		preview = preview[:g.cfg.ContentPreview]
	}

	response, err := g.gen.GenerateText(ctx, buildPrompt(preview, sourceName))
	if err != nil {
		g.log.Warn("outline model call failed, using fallback outline", zap.Error(err))
		return g.fallbackOutline(sourceName)
	}

	titles := ParseTopics(response, g.cfg.MaxTopics, g.cfg.MinTitleLength)
	if len(titles) == 0 {
		g.log.Warn("no topics parsed from model response, using generic outline")
		return g.genericOutline(sourceName)
	}

	topics := make([]types.Topic, 0, len(titles))
	for i, title := range titles {
		topics = append(topics, newTopic(title, fmt.Sprintf("Educational content about %s", strings.ToLower(title)), i))
	}

	g.log.Info("outline ready", zap.Int("topics", len(topics)))
	return &types.Outline{
		ID:        uuid.NewString(),
		Title:     TitleFromFilename(sourceName),
		Topics:    topics,
		CreatedAt: time.Now().UTC(),
	}
}

func buildPrompt(preview, sourceName string) string {
	var sb strings.Builder
	sb.WriteString("Analyze the following document content and create a structured learning outline.\n\n")
	sb.WriteString(fmt.Sprintf("Document: %s\n", sourceName))
	sb.WriteString(fmt.Sprintf("Content: %s...\n\n", preview))
	sb.WriteString("Create 5-7 main topics that would make good educational videos. For each topic, provide:\n")
	sb.WriteString("1. A clear, engaging title\n")
	sb.WriteString("2. A brief description of what the video would cover\n")
	sb.WriteString("3. Logical order for learning\n\n")
	sb.WriteString("List one topic per line, in learning order.")
	return sb.String()
}

// genericOutline is the zero-topics-parsed tier: the model answered but
// nothing in the answer looked like a topic
func (g *Generator) genericOutline(sourceName string) *types.Outline {
	seed := []struct{ title, desc string }{
		{"Introduction and Overview", "Get started with the fundamentals"},
		{"Core Concepts", "Understanding the main principles"},
		{"Practical Applications", "Real-world examples and use cases"},
	}
	topics := make([]types.Topic, 0, len(seed))
	for i, s := range seed {
		topics = append(topics, newTopic(s.title, s.desc, i))
	}
	return &types.Outline{
		ID:        uuid.NewString(),
		Title:     TitleFromFilename(sourceName),
		Topics:    topics,
		CreatedAt: time.Now().UTC(),
	}
}

// fallbackOutline is the service-failed tier: a single free Introduction topic
func (g *Generator) fallbackOutline(sourceName string) *types.Outline {
	return &types.Outline{
		ID:        uuid.NewString(),
		Title:     TitleFromFilename(sourceName),
		Topics:    []types.Topic{newTopic("Introduction", "Overview of the document content", 0)},
		CreatedAt: time.Now().UTC(),
	}
}

func newTopic(title, description string, order int) types.Topic {
	return types.Topic{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Order:       order,
		IsPremium:   order > 0, // first topic is free
	}
}

// TitleFromFilename strips known document extensions from a filename
func TitleFromFilename(filename string) string {
	for _, ext := range []string{".pdf", ".txt", ".docx", ".doc"} {
		if strings.HasSuffix(strings.ToLower(filename), ext) {
			return filename[:len(filename)-len(ext)]
		}
	}
	return filename
}
