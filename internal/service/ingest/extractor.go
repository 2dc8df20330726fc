package ingest

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"
)

// Extractor produces the raw text projection of an uploaded payload.
type Extractor interface {
	Extract(ctx context.Context, job Job) (string, error)
}

// ExtractorFunc adapts a function to the Extractor interface.
type ExtractorFunc func(ctx context.Context, job Job) (string, error)

func (f ExtractorFunc) Extract(ctx context.Context, job Job) (string, error) {
	return f(ctx, job)
}

// ErrEmptyPayload is returned when an uploaded document has no bytes to
// extract from; it drives the document to the Failed state.
var ErrEmptyPayload = errors.New("empty payload")

// TextExtractor is the default extraction step. Text payloads pass through
// verbatim; binary payloads (scans, PDFs) yield a synthesized description in
// place of real OCR output.
type TextExtractor struct{}

func (TextExtractor) Extract(_ context.Context, job Job) (string, error) {
	if len(job.Payload) == 0 {
		return "", ErrEmptyPayload
	}
	if utf8.Valid(job.Payload) {
		return string(job.Payload), nil
	}
	return fmt.Sprintf("Extracted content of %s (%s, %d bytes).", job.Name, job.MediaType, len(job.Payload)), nil
}
