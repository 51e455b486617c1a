// Package ocr provides text detection on storefront photographs using
// Google Cloud APIs.
//
// Two interchangeable backends are available: Google Cloud Vision text
// detection (the default) and a Document AI OCR processor. Both normalize
// their responses to the same Result shape: the full text blob first,
// followed by one RawDetection per detected word or phrase.
//
// Required Environment Variables:
//   - GOOGLE_APPLICATION_CREDENTIALS: Path to service account JSON file, OR
//   - GOOGLE_CREDENTIALS: Inline JSON credentials string
//
// For the Document AI backend additionally:
//   - GOOGLE_CLOUD_PROJECT: Google Cloud project ID
//   - GOOGLE_CLOUD_LOCATION: Processing location (e.g., "us", "eu")
//   - DOCUMENT_AI_PROCESSOR_ID: OCR processor ID
//
// API Limitations:
//   - Maximum image size: 20MB for synchronous processing
//   - Supported formats: JPEG, PNG, GIF, BMP, WEBP, TIFF
package ocr

import (
	"context"
	"io"
	"time"
)

// MaxImageSizeBytes is the maximum image size for synchronous processing (20MB).
const MaxImageSizeBytes = 20 * 1024 * 1024

// Detector defines the interface for OCR text detection services.
type Detector interface {
	// DetectText extracts text from a photograph. The first detection in the
	// result is the full text blob; the rest are word-level detections.
	// Fails with ErrNoTextDetected when the image yields zero detections.
	DetectText(ctx context.Context, image io.Reader) (*Result, error)
}

// RawDetection is one OCR observation: either the full text blob or a single
// word/phrase token.
type RawDetection struct {
	// Text is the detected token or, for the first detection, the full blob.
	Text string `json:"text"`

	// Confidence is the engine's score for this detection (0.0 to 1.0).
	// May be zero when the engine does not report one.
	Confidence float32 `json:"confidence,omitempty"`

	// HasBounds reports whether the engine attached a bounding box.
	HasBounds bool `json:"has_bounds,omitempty"`
}

// Result contains the detections for one image with processing metadata.
type Result struct {
	// FullText is the complete detected text, newline-separated in reading
	// order. Identical to Detections[0].Text.
	FullText string `json:"full_text"`

	// Detections holds the full text blob first, then word-level detections.
	Detections []RawDetection `json:"detections"`

	// ProcessedAt is the timestamp when detection completed.
	ProcessedAt time.Time `json:"processed_at"`

	// ProcessingDuration is how long the detection took.
	ProcessingDuration time.Duration `json:"processing_duration"`
}
