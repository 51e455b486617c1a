package ocr

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"cloud.google.com/go/documentai/apiv1/documentaipb"
)

func testDocumentAIDetector() *DocumentAIDetector {
	return &DocumentAIDetector{
		config: DocumentAIConfig{
			ProjectID:   "test-project",
			Location:    "us",
			ProcessorID: "proc-123",
			Timeout:     time.Second,
		},
	}
}

func TestProcessorName(t *testing.T) {
	detector := testDocumentAIDetector()
	want := "projects/test-project/locations/us/processors/proc-123"
	if got := detector.processorName(); got != want {
		t.Errorf("processorName() = %q, want %q", got, want)
	}
}

func TestProcessDocument(t *testing.T) {
	detector := testDocumentAIDetector()

	fullText := "SUNSET GRILL\nOpen Daily"
	doc := &documentaipb.Document{
		Text: fullText,
		Pages: []*documentaipb.Document_Page{
			{
				Tokens: []*documentaipb.Document_Page_Token{
					{
						Layout: &documentaipb.Document_Page_Layout{
							TextAnchor: &documentaipb.Document_TextAnchor{
								TextSegments: []*documentaipb.Document_TextAnchor_TextSegment{
									{StartIndex: 0, EndIndex: 6},
								},
							},
							Confidence:   0.95,
							BoundingPoly: &documentaipb.BoundingPoly{},
						},
					},
					{
						Layout: &documentaipb.Document_Page_Layout{
							TextAnchor: &documentaipb.Document_TextAnchor{
								TextSegments: []*documentaipb.Document_TextAnchor_TextSegment{
									{StartIndex: 7, EndIndex: 12},
								},
							},
							Confidence: 0.91,
						},
					},
					{Layout: nil},
				},
			},
		},
	}

	result, err := detector.processDocument(doc)
	if err != nil {
		t.Fatalf("processDocument() error = %v", err)
	}

	if result.FullText != fullText {
		t.Errorf("FullText = %q", result.FullText)
	}
	// Blob plus the two tokens with layouts.
	if len(result.Detections) != 3 {
		t.Fatalf("len(Detections) = %d, want 3", len(result.Detections))
	}
	if result.Detections[0].Text != fullText {
		t.Errorf("first detection %q is not the full text blob", result.Detections[0].Text)
	}
	if result.Detections[1].Text != "SUNSET" {
		t.Errorf("token text = %q, want SUNSET", result.Detections[1].Text)
	}
	if !result.Detections[1].HasBounds || result.Detections[2].HasBounds {
		t.Errorf("bounding info mismatch: %+v", result.Detections[1:])
	}
	if result.Detections[2].Text != "GRILL" {
		t.Errorf("token text = %q, want GRILL", result.Detections[2].Text)
	}
}

func TestProcessDocumentNoText(t *testing.T) {
	detector := testDocumentAIDetector()

	_, err := detector.processDocument(&documentaipb.Document{Text: "  \n"})
	if !errors.Is(err, ErrNoTextDetected) {
		t.Errorf("processDocument() error = %v, want ErrNoTextDetected", err)
	}
}

func TestAnchorText(t *testing.T) {
	fullText := "SUNSET GRILL"

	tests := []struct {
		name   string
		anchor *documentaipb.Document_TextAnchor
		want   string
	}{
		{
			name:   "nil anchor",
			anchor: nil,
			want:   "",
		},
		{
			name: "single segment",
			anchor: &documentaipb.Document_TextAnchor{
				TextSegments: []*documentaipb.Document_TextAnchor_TextSegment{
					{StartIndex: 7, EndIndex: 12},
				},
			},
			want: "GRILL",
		},
		{
			name: "segments concatenate",
			anchor: &documentaipb.Document_TextAnchor{
				TextSegments: []*documentaipb.Document_TextAnchor_TextSegment{
					{StartIndex: 0, EndIndex: 6},
					{StartIndex: 6, EndIndex: 12},
				},
			},
			want: "SUNSET GRILL",
		},
		{
			name: "out of range segment skipped",
			anchor: &documentaipb.Document_TextAnchor{
				TextSegments: []*documentaipb.Document_TextAnchor_TextSegment{
					{StartIndex: 0, EndIndex: 6},
					{StartIndex: 5, EndIndex: 100},
				},
			},
			want: "SUNSET",
		},
		{
			name: "inverted segment skipped",
			anchor: &documentaipb.Document_TextAnchor{
				TextSegments: []*documentaipb.Document_TextAnchor_TextSegment{
					{StartIndex: 6, EndIndex: 6},
				},
			},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := anchorText(fullText, tt.anchor); got != tt.want {
				t.Errorf("anchorText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHandleProcessingError(t *testing.T) {
	detector := testDocumentAIDetector()

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"permission denied", fmt.Errorf("rpc error: code = PERMISSION_DENIED"), ErrMissingCredentials},
		{"processor not found", fmt.Errorf("rpc error: code = NOT_FOUND"), ErrInvalidConfiguration},
		{"bad image", fmt.Errorf("rpc error: code = INVALID_ARGUMENT"), ErrInvalidImage},
		{"timeout", fmt.Errorf("context deadline exceeded"), context.DeadlineExceeded},
		{"anything else", fmt.Errorf("connection reset"), ErrDetectionFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := detector.handleProcessingError("DetectText", tt.err)
			if !errors.Is(got, tt.want) {
				t.Errorf("handleProcessingError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
