package models

import "errors"

// Pipeline errors. Every failure crossing a pipeline boundary is wrapped
// around exactly one of these sentinels so the transport layer can map it
// to a response without inspecting collaborator internals.
var (
	// ErrValidation indicates malformed input: a non-PDF upload, an empty
	// conversation, or a conversation without a user turn.
	ErrValidation = errors.New("validation failed")

	// ErrExtraction indicates a PDF that yielded no usable text on any page.
	ErrExtraction = errors.New("text extraction failed")

	// ErrNotFound indicates an unknown document identifier or a missing
	// vector collection.
	ErrNotFound = errors.New("not found")

	// ErrUpstream indicates a vector index or model call failure.
	ErrUpstream = errors.New("upstream service failed")
)
