// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

var (
	// ErrNotFound indicates the requested document, topic or video does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnsupportedType indicates an upload with a MIME type no extractor handles.
	ErrUnsupportedType = errors.New("unsupported file type")

	// ErrExtraction indicates text extraction failed on a supported file.
	ErrExtraction = errors.New("extraction failed")

	// ErrNoContent indicates extraction yielded empty or whitespace-only text.
	ErrNoContent = errors.New("no text content extracted")

	// ErrUnavailable indicates the text-generation service cannot be called
	// at all (e.g. missing credential).
	ErrUnavailable = errors.New("text generation unavailable")

	// ErrUpstream indicates an external AI service call failed.
	ErrUpstream = errors.New("upstream service error")

	// ErrEntitlementDenied indicates the free-generation quota is exhausted
	// and the user is not premium.
	ErrEntitlementDenied = errors.New("premium subscription required")

	// ErrGenerationInFlight indicates a generation is already running for the topic.
	ErrGenerationInFlight = errors.New("generation already in progress for topic")

	// ErrInternal is the catch-all for unexpected failures.
	ErrInternal = errors.New("internal error")
)
