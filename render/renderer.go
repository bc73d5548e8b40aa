package render

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"learnlens/config"
	"learnlens/errs"
	"learnlens/types"
)

// Renderer turns a finished script into a hosted video asset. Rendering is
// long-running; callers are expected to bound it with a context deadline.
type Renderer interface {
	Render(ctx context.Context, script string) (types.RenderedAsset, error)
}

// Simulated stands in for the real rendering backend: it derives the prompt
// the backend would receive, waits the configured delay, and hands back the
// demo asset. Swap this for a real implementation without touching callers.
type Simulated struct {
	cfg config.RenderConfig
	log *zap.Logger
}

// NewSimulated creates the simulated renderer
func NewSimulated(cfg config.RenderConfig, log *zap.Logger) *Simulated {
	return &Simulated{cfg: cfg, log: log}
}

var _ Renderer = (*Simulated)(nil)

// Render simulates the rendering call and returns the demo asset
func (s *Simulated) Render(ctx context.Context, script string) (types.RenderedAsset, error) {
	prompt := script
	if len(prompt) > s.cfg.PromptLimit {
		prompt = prompt[:s.cfg.PromptLimit]
	}
	s.log.Info("rendering video",
		zap.Int("scriptChars", len(script)),
		zap.String("prompt", fmt.Sprintf("Create an educational video with this script: %s...", prompt)),
	)

	select {
	case <-ctx.Done():
		return types.RenderedAsset{}, fmt.Errorf("%w: render cancelled: %v", errs.ErrUpstream, ctx.Err())
	case <-time.After(time.Duration(s.cfg.SimulatedDelayMs) * time.Millisecond):
	}

	return types.RenderedAsset{
		URL:       s.cfg.DemoURL,
		Duration:  s.cfg.DemoDurationSec,
		Thumbnail: s.cfg.DemoThumbnail,
	}, nil
}
