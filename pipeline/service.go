// Package pipeline orchestrates the document-to-lessons flow: upload,
// outline generation, and the detached per-topic video generation tasks.
package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"learnlens/config"
	"learnlens/entitlement"
	"learnlens/errs"
	"learnlens/extract"
	"learnlens/outline"
	"learnlens/registry"
	"learnlens/render"
	"learnlens/script"
	"learnlens/types"
)

// Service wires the extractor, outline generator, script writer, renderer,
// registry and entitlement gate into the operations clients consume.
type Service struct {
	cfg       *config.Config
	extractor *extract.Extractor
	outliner  *outline.Generator
	writer    *script.Writer
	renderer  render.Renderer
	reg       *registry.Registry
	gate      *entitlement.Gate
	log       *zap.Logger

	mu       sync.Mutex
	inFlight map[string]bool // topic id → generation task running
}

// New creates the pipeline Service
func New(
	cfg *config.Config,
	extractor *extract.Extractor,
	outliner *outline.Generator,
	writer *script.Writer,
	renderer render.Renderer,
	reg *registry.Registry,
	gate *entitlement.Gate,
	log *zap.Logger,
) *Service {
	return &Service{
		cfg:       cfg,
		extractor: extractor,
		outliner:  outliner,
		writer:    writer,
		renderer:  renderer,
		reg:       reg,
		gate:      gate,
		log:       log,
		inFlight:  make(map[string]bool),
	}
}

// UploadResult is returned to the caller of Upload
type UploadResult struct {
	DocumentID string         `json:"documentId"`
	Outline    *types.Outline `json:"outline"`
}

// Upload extracts text from the file, derives an outline, stores the
// document, and kicks off generation for the free first topic. The topic-0
// generation does not consume the free quota.
func (s *Service) Upload(ctx context.Context, data []byte, mimeType, filename string) (*UploadResult, error) {
	s.log.Info("upload started",
		zap.String("filename", filename),
		zap.String("mimeType", mimeType),
	)

	text, err := s.extractor.Extract(data, mimeType, filename)
	if err != nil {
		return nil, err
	}

	doc := &types.Document{
		ID:        uuid.NewString(),
		Filename:  filename,
		RawText:   text,
		Outline:   s.outliner.Generate(ctx, text, filename),
		CreatedAt: time.Now().UTC(),
	}
	s.reg.PutDocument(doc)

	// First topic is free and generated automatically, outside the gate
	first := doc.Outline.Topics[0]
	videoID, err := s.startGeneration(first.ID, first.Title, text, false)
	if err != nil {
		// Only possible if a task for this topic already runs, which a fresh
		// topic id rules out
		return nil, fmt.Errorf("%w: start first generation: %v", errs.ErrInternal, err)
	}

	s.log.Info("upload complete",
		zap.String("documentId", doc.ID),
		zap.Int("topics", len(doc.Outline.Topics)),
		zap.String("firstVideoId", videoID),
	)
	return &UploadResult{DocumentID: doc.ID, Outline: doc.Outline}, nil
}

// DocumentStatus returns the outline with current per-topic video status
func (s *Service) DocumentStatus(documentID string) (*types.ProjectedOutline, error) {
	return s.reg.ProjectOutline(documentID)
}

// RequestVideoGeneration starts a gated generation for the topic and returns
// the new video id. Real success or failure is discoverable only by polling.
func (s *Service) RequestVideoGeneration(topicID string) (string, error) {
	doc, topic, err := s.reg.FindTopic(topicID)
	if err != nil {
		return "", err
	}

	return s.startGeneration(topic.ID, topic.Title, doc.RawText, true)
}

// VideoStatus returns the current state of one video
func (s *Service) VideoStatus(videoID string) (*types.Video, error) {
	return s.reg.GetVideo(videoID)
}

// Subscription returns the current subscription record
func (s *Service) Subscription() types.User {
	return s.gate.Status()
}

// Subscribe activates the premium subscription
func (s *Service) Subscribe() {
	s.gate.Subscribe()
}

// startGeneration registers a video in the generating state and detaches the
// background task. At most one task runs per topic at a time; the registry
// write on completion is the only signal the task emits. Gated starts pass
// the entitlement gate while the in-flight marker is held, so a request
// never consumes quota without also starting a task.
func (s *Service) startGeneration(topicID, title, sourceText string, gated bool) (string, error) {
	s.mu.Lock()
	if s.inFlight[topicID] {
		s.mu.Unlock()
		return "", fmt.Errorf("topic %s: %w", topicID, errs.ErrGenerationInFlight)
	}
	if gated {
		if err := s.gate.TryGrant(); err != nil {
			s.mu.Unlock()
			s.log.Info("generation denied", zap.String("topicId", topicID))
			return "", err
		}
	}
	s.inFlight[topicID] = true
	s.mu.Unlock()

	video := &types.Video{
		ID:        uuid.NewString(),
		TopicID:   topicID,
		Title:     title,
		Status:    types.VideoGenerating,
		CreatedAt: time.Now().UTC(),
	}
	s.reg.PutVideo(video)

	s.log.Info("video generation started",
		zap.String("videoId", video.ID),
		zap.String("topicId", topicID),
		zap.String("title", title),
	)

	go s.runGeneration(video.ID, topicID, title, sourceText)
	return video.ID, nil
}

// runGeneration is the detached task: write the script, render the asset,
// and transition the video to its terminal state. It is the sole writer of
// its video record and never reports failure to anyone synchronously.
func (s *Service) runGeneration(videoID, topicID, title, sourceText string) {
	defer func() {
		s.mu.Lock()
		delete(s.inFlight, topicID)
		s.mu.Unlock()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(s.cfg.Render.TimeoutSec)*time.Second)
	defer cancel()

	// Script generation degrades to a placeholder internally, never fails
	scriptText := s.writer.Write(ctx, title, sourceText)

	asset, err := s.renderer.Render(ctx, scriptText)
	if err != nil {
		s.log.Error("video generation failed",
			zap.String("videoId", videoID),
			zap.Error(err),
		)
		_ = s.reg.UpdateVideo(videoID, func(v *types.Video) {
			v.Status = types.VideoError
		})
		return
	}

	_ = s.reg.UpdateVideo(videoID, func(v *types.Video) {
		v.Status = types.VideoReady
		v.URL = asset.URL
		v.Duration = asset.Duration
		v.Thumbnail = asset.Thumbnail
		v.Script = scriptText
	})

	s.log.Info("video generation complete",
		zap.String("videoId", videoID),
		zap.String("url", asset.URL),
	)
}
