// Package registry is the exclusive owner of all document, outline, topic
// and video state. Every read and write goes through its methods; callers
// never hold references they can mutate behind its back.
package registry

import (
	"fmt"
	"sync"

	"learnlens/errs"
	"learnlens/types"
)

// Registry is the in-memory store correlating documents, outlines, topics
// and videos. Videos are indexed by topic so the outline projection never
// scans, and every method copies records on the way in and out.
type Registry struct {
	mu            sync.RWMutex
	documents     map[string]*types.Document
	videos        map[string]*types.Video
	videosByTopic map[string][]string // topic id → video ids, oldest first
	topicIndex    map[string]topicRef // topic id → owning document
}

type topicRef struct {
	documentID string
	topicIdx   int
}

// New creates an empty Registry
func New() *Registry {
	return &Registry{
		documents:     make(map[string]*types.Document),
		videos:        make(map[string]*types.Video),
		videosByTopic: make(map[string][]string),
		topicIndex:    make(map[string]topicRef),
	}
}

// PutDocument stores a document and indexes its outline topics for reverse lookup
func (r *Registry) PutDocument(doc *types.Document) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := cloneDocument(doc)
	if cp.Outline != nil {
		for i, t := range cp.Outline.Topics {
			r.topicIndex[t.ID] = topicRef{documentID: doc.ID, topicIdx: i}
		}
	}
	r.documents[doc.ID] = cp
}

// GetDocument returns a copy of the stored document
func (r *Registry) GetDocument(documentID string) (*types.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, ok := r.documents[documentID]
	if !ok {
		return nil, fmt.Errorf("document %s: %w", documentID, errs.ErrNotFound)
	}
	return cloneDocument(doc), nil
}

func cloneDocument(doc *types.Document) *types.Document {
	cp := *doc
	if doc.Outline != nil {
		o := *doc.Outline
		o.Topics = append([]types.Topic(nil), doc.Outline.Topics...)
		cp.Outline = &o
	}
	return &cp
}

// FindTopic resolves a topic id to its owning document and the topic itself
func (r *Registry) FindTopic(topicID string) (*types.Document, *types.Topic, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ref, ok := r.topicIndex[topicID]
	if !ok {
		return nil, nil, fmt.Errorf("topic %s: %w", topicID, errs.ErrNotFound)
	}
	doc := r.documents[ref.documentID]
	topicCp := doc.Outline.Topics[ref.topicIdx]
	return cloneDocument(doc), &topicCp, nil
}

// PutVideo stores a new video record and appends it to its topic's index
func (r *Registry) PutVideo(v *types.Video) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *v
	r.videos[v.ID] = &cp
	r.videosByTopic[v.TopicID] = append(r.videosByTopic[v.TopicID], v.ID)
}

// GetVideo returns a copy of the stored video
func (r *Registry) GetVideo(videoID string) (*types.Video, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.videos[videoID]
	if !ok {
		return nil, fmt.Errorf("video %s: %w", videoID, errs.ErrNotFound)
	}
	cp := *v
	return &cp, nil
}

// UpdateVideo applies a mutation to a video under the registry lock, so a
// status read can never race a completion write
func (r *Registry) UpdateVideo(videoID string, apply func(*types.Video)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.videos[videoID]
	if !ok {
		return fmt.Errorf("video %s: %w", videoID, errs.ErrNotFound)
	}
	apply(v)
	return nil
}

// ProjectOutline returns the document's outline with the current video
// status attached to each topic. When several videos exist for one topic the
// most recently created one wins; topics with no video carry none.
func (r *Registry) ProjectOutline(documentID string) (*types.ProjectedOutline, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, ok := r.documents[documentID]
	if !ok {
		return nil, fmt.Errorf("document %s: %w", documentID, errs.ErrNotFound)
	}

	out := &types.ProjectedOutline{
		ID:        doc.Outline.ID,
		Title:     doc.Outline.Title,
		Topics:    make([]types.ProjectedTopic, 0, len(doc.Outline.Topics)),
		CreatedAt: doc.Outline.CreatedAt,
	}
	for _, t := range doc.Outline.Topics {
		pt := types.ProjectedTopic{Topic: t}
		if v := r.latestVideoLocked(t.ID); v != nil {
			pt.Video = &types.VideoSummary{
				ID:        v.ID,
				Status:    v.Status,
				URL:       v.URL,
				Duration:  v.Duration,
				Thumbnail: v.Thumbnail,
			}
		}
		out.Topics = append(out.Topics, pt)
	}
	return out, nil
}

// latestVideoLocked picks the newest video for a topic; ids are appended in
// creation order so the last entry is the most recently created
func (r *Registry) latestVideoLocked(topicID string) *types.Video {
	ids := r.videosByTopic[topicID]
	if len(ids) == 0 {
		return nil
	}
	return r.videos[ids[len(ids)-1]]
}
