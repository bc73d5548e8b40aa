package script

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"learnlens/config"
	"learnlens/genai"
)

// Writer generates spoken-style video scripts for topics.
// Write never fails outward: a model failure yields a minimal placeholder
// script so the rendering step always has something to work with.
type Writer struct {
	cfg config.ScriptConfig
	gen genai.TextGenerator
	log *zap.Logger
}

// New creates a new script Writer
func New(cfg config.ScriptConfig, gen genai.TextGenerator, log *zap.Logger) *Writer {
	return &Writer{cfg: cfg, gen: gen, log: log}
}

// Write generates a natural speaking script for the topic from the source text
func (w *Writer) Write(ctx context.Context, title, sourceText string) string {
	w.log.Info("generating video script", zap.String("topic", title))

	preview := sourceText
	if len(preview) > w.cfg.ContentPreview {
		preview = preview[:w.cfg.ContentPreview]
	}

	text, err := w.gen.GenerateText(ctx, w.buildPrompt(title, preview))
	if err != nil {
		w.log.Warn("script model call failed, using placeholder script",
			zap.String("topic", title),
			zap.Error(err),
		)
		return Placeholder(title)
	}

	w.log.Info("script ready",
		zap.String("topic", title),
		zap.Int("chars", len(text)),
	)
	return text
}

func (w *Writer) buildPrompt(title, preview string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Create an engaging educational video script for the topic: %q\n\n", title))
	sb.WriteString(fmt.Sprintf("Based on this content: %s...\n\n", preview))
	sb.WriteString("The script should:\n")
	sb.WriteString(fmt.Sprintf("1. Be %d-%d minutes long when spoken\n", w.cfg.TargetDurationMin, w.cfg.TargetDurationMax))
	sb.WriteString("2. Include clear explanations and examples\n")
	sb.WriteString("3. Be engaging and educational\n")
	sb.WriteString("4. Have a clear introduction, main content, and conclusion\n\n")
	sb.WriteString("Format as a natural speaking script.")
	return sb.String()
}

// Placeholder is the fallback script used when the model cannot be reached
func Placeholder(title string) string {
	return fmt.Sprintf("Educational content about %s", title)
}
