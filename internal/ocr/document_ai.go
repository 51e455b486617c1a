package ocr

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	documentai "cloud.google.com/go/documentai/apiv1"
	"cloud.google.com/go/documentai/apiv1/documentaipb"
	"github.com/rs/zerolog"
	"google.golang.org/api/option"

	"shopscan/internal/logger"
)

// DocumentAIConfig holds configuration for the Document AI OCR backend.
type DocumentAIConfig struct {
	// ProjectID is the Google Cloud project ID where Document AI is enabled.
	ProjectID string

	// Location is the processing location (e.g., "us", "eu").
	// Should match where the OCR processor is created.
	Location string

	// ProcessorID is the Document AI OCR processor ID.
	ProcessorID string

	// Timeout is the maximum time to wait for processing.
	// Default: 60 seconds.
	Timeout time.Duration
}

// DocumentAIDetector implements Detector using a Google Document AI OCR
// processor. Slower than Vision text detection but reads dense or skewed
// signage more reliably.
type DocumentAIDetector struct {
	client *documentai.DocumentProcessorClient
	config DocumentAIConfig
	log    zerolog.Logger
}

// NewDocumentAIDetector creates a detector with credentials from environment.
// Expects: GOOGLE_APPLICATION_CREDENTIALS or GOOGLE_CREDENTIALS
// Requires: GOOGLE_CLOUD_PROJECT, DOCUMENT_AI_PROCESSOR_ID
// Optional: GOOGLE_CLOUD_LOCATION (defaults to "us")
func NewDocumentAIDetector(ctx context.Context) (Detector, error) {
	const op = "NewDocumentAIDetector"

	config := DocumentAIConfig{
		ProjectID:   os.Getenv("GOOGLE_CLOUD_PROJECT"),
		Location:    os.Getenv("GOOGLE_CLOUD_LOCATION"),
		ProcessorID: os.Getenv("DOCUMENT_AI_PROCESSOR_ID"),
		Timeout:     60 * time.Second,
	}

	if config.ProjectID == "" {
		return nil, WrapOCRError(op, ErrInvalidConfiguration, "GOOGLE_CLOUD_PROJECT is required")
	}
	if config.ProcessorID == "" {
		return nil, WrapOCRError(op, ErrInvalidConfiguration, "DOCUMENT_AI_PROCESSOR_ID is required")
	}
	if config.Location == "" {
		config.Location = "us"
	}

	var clientOptions []option.ClientOption

	// Regional endpoints are required outside us
	if config.Location != "us" {
		endpoint := fmt.Sprintf("%s-documentai.googleapis.com:443", config.Location)
		clientOptions = append(clientOptions, option.WithEndpoint(endpoint))
	}

	if credJSON := os.Getenv("GOOGLE_CREDENTIALS"); credJSON != "" {
		clientOptions = append(clientOptions, option.WithCredentialsJSON([]byte(credJSON)))
	} else if credFile := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); credFile != "" {
		clientOptions = append(clientOptions, option.WithCredentialsFile(credFile))
	}

	client, err := documentai.NewDocumentProcessorClient(ctx, clientOptions...)
	if err != nil {
		if len(clientOptions) == 0 {
			return nil, WrapOCRError(op, ErrMissingCredentials, "no credentials found in environment")
		}
		return nil, WrapOCRError(op, err, fmt.Sprintf("failed to create Document AI client for location: %s", config.Location))
	}

	return &DocumentAIDetector{
		client: client,
		config: config,
		log:    logger.WithComponent("document-ai"),
	}, nil
}

// NewDocumentAIDetectorWithConfig creates a detector with explicit config and client (for testing).
func NewDocumentAIDetectorWithConfig(config DocumentAIConfig, client *documentai.DocumentProcessorClient) Detector {
	return &DocumentAIDetector{
		client: client,
		config: config,
		log:    logger.WithComponent("document-ai"),
	}
}

// DetectText extracts text from a photograph using the Document AI OCR processor.
func (d *DocumentAIDetector) DetectText(ctx context.Context, image io.Reader) (*Result, error) {
	const op = "DetectText"
	startTime := time.Now()

	imageBytes, err := io.ReadAll(image)
	if err != nil {
		return nil, WrapOCRError(op, err, "failed to read image data")
	}

	if len(imageBytes) > MaxImageSizeBytes {
		return nil, WrapOCRError(op, ErrImageTooLarge, fmt.Sprintf("file size: %d bytes", len(imageBytes)))
	}

	mimeType := http.DetectContentType(imageBytes)
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, WrapOCRError(op, ErrInvalidImage, fmt.Sprintf("detected content type: %s", mimeType))
	}

	processCtx, cancel := context.WithTimeout(ctx, d.config.Timeout)
	defer cancel()

	req := &documentaipb.ProcessRequest{
		Name: d.processorName(),
		Source: &documentaipb.ProcessRequest_RawDocument{
			RawDocument: &documentaipb.RawDocument{
				Content:  imageBytes,
				MimeType: mimeType,
			},
		},
	}

	resp, err := d.client.ProcessDocument(processCtx, req)
	if err != nil {
		return nil, d.handleProcessingError(op, err)
	}

	if resp.Document == nil {
		return nil, WrapOCRError(op, ErrDetectionFailed, "no document in response")
	}

	result, err := d.processDocument(resp.Document)
	if err != nil {
		return nil, WrapOCRError(op, err, "")
	}

	result.ProcessedAt = time.Now()
	result.ProcessingDuration = result.ProcessedAt.Sub(startTime)

	return result, nil
}

// processorName constructs the full processor name for the Document AI API.
func (d *DocumentAIDetector) processorName() string {
	return fmt.Sprintf("projects/%s/locations/%s/processors/%s",
		d.config.ProjectID, d.config.Location, d.config.ProcessorID)
}

// processDocument normalizes a Document AI document into a Result: the full
// text blob first, then one detection per recognized token.
func (d *DocumentAIDetector) processDocument(doc *documentaipb.Document) (*Result, error) {
	if strings.TrimSpace(doc.Text) == "" {
		return nil, ErrNoTextDetected
	}

	detections := []RawDetection{{Text: doc.Text}}

	for _, page := range doc.Pages {
		for _, token := range page.Tokens {
			if token.Layout == nil {
				continue
			}
			text := strings.TrimSpace(anchorText(doc.Text, token.Layout.TextAnchor))
			if text == "" {
				continue
			}
			detections = append(detections, RawDetection{
				Text:       text,
				Confidence: token.Layout.Confidence,
				HasBounds:  token.Layout.BoundingPoly != nil,
			})
		}
	}

	d.log.Debug().
		Int("detections", len(detections)).
		Int("text_length", len(doc.Text)).
		Msg("Normalized Document AI response")

	return &Result{
		FullText:   doc.Text,
		Detections: detections,
	}, nil
}

// anchorText resolves a text anchor against the document's full text.
func anchorText(fullText string, anchor *documentaipb.Document_TextAnchor) string {
	if anchor == nil {
		return ""
	}

	var builder strings.Builder
	for _, segment := range anchor.TextSegments {
		start := int(segment.StartIndex)
		end := int(segment.EndIndex)
		if start < 0 || end > len(fullText) || start >= end {
			continue
		}
		builder.WriteString(fullText[start:end])
	}
	return builder.String()
}

// handleProcessingError converts Document AI errors to OCR errors.
func (d *DocumentAIDetector) handleProcessingError(op string, err error) error {
	errStr := err.Error()

	switch {
	case strings.Contains(errStr, "PERMISSION_DENIED"):
		return WrapOCRError(op, ErrMissingCredentials, "insufficient permissions for Document AI")
	case strings.Contains(errStr, "NOT_FOUND"):
		return WrapOCRError(op, ErrInvalidConfiguration, fmt.Sprintf("processor not found: %s", d.config.ProcessorID))
	case strings.Contains(errStr, "INVALID_ARGUMENT"):
		return WrapOCRError(op, ErrInvalidImage, "image format not supported or corrupted")
	case strings.Contains(errStr, "context deadline exceeded") || strings.Contains(errStr, "DeadlineExceeded"):
		return WrapOCRError(op, context.DeadlineExceeded, "processing timeout")
	default:
		return WrapOCRError(op, ErrDetectionFailed, fmt.Sprintf("Document AI error: %v", err))
	}
}

// Close closes the underlying Document AI client.
func (d *DocumentAIDetector) Close() error {
	if d.client != nil {
		return d.client.Close()
	}
	return nil
}
