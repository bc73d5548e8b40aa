package types

import "time"

// VideoStatus tracks a video through its generation lifecycle
type VideoStatus string

const (
	VideoGenerating VideoStatus = "generating"
	VideoReady      VideoStatus = "ready"
	VideoError      VideoStatus = "error"
)

// Topic is one lesson unit within an outline. Order is zero-based and dense;
// only the first topic (order 0) is free.
type Topic struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Order       int    `json:"order"`
	IsPremium   bool   `json:"isPremium"`
}

// Outline is the ordered list of topics derived from one document.
// It is created once and never mutated; video state lives on Video records.
type Outline struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Topics    []Topic   `json:"topics"`
	CreatedAt time.Time `json:"createdAt"`
}

// Document is an uploaded file with its extracted text and derived outline
type Document struct {
	ID        string    `json:"id"`
	Filename  string    `json:"filename"`
	RawText   string    `json:"-"`
	Outline   *Outline  `json:"outline"`
	CreatedAt time.Time `json:"createdAt"`
}

// Video is one generation attempt for one topic. It starts in the
// generating state and transitions exactly once to ready or error.
// URL, Duration, Thumbnail and Script are set only on the ready transition.
type Video struct {
	ID        string      `json:"id"`
	TopicID   string      `json:"topicId"`
	Title     string      `json:"title"`
	Status    VideoStatus `json:"status"`
	CreatedAt time.Time   `json:"createdAt"`
	URL       string      `json:"url,omitempty"`
	Duration  int         `json:"duration,omitempty"`
	Thumbnail string      `json:"thumbnail,omitempty"`
	Script    string      `json:"script,omitempty"`
}

// User holds the single global subscription record
type User struct {
	IsPremium      bool `json:"isPremium"`
	FreeVideosUsed int  `json:"freeVideosUsed"`
}

// VideoSummary is the per-topic status attached by the outline projection
type VideoSummary struct {
	ID        string      `json:"id"`
	Status    VideoStatus `json:"status"`
	URL       string      `json:"url,omitempty"`
	Duration  int         `json:"duration,omitempty"`
	Thumbnail string      `json:"thumbnail,omitempty"`
}

// ProjectedTopic is a topic with its latest video status, if any
type ProjectedTopic struct {
	Topic
	Video *VideoSummary `json:"video"`
}

// ProjectedOutline is the client view of an outline: each topic carries the
// status of its most recently created video
type ProjectedOutline struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Topics    []ProjectedTopic `json:"topics"`
	CreatedAt time.Time        `json:"createdAt"`
}

// RenderedAsset is what the video rendering service returns for a script
type RenderedAsset struct {
	URL       string `json:"url"`
	Duration  int    `json:"duration"`
	Thumbnail string `json:"thumbnail"`
}
