package ocr

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	vision "cloud.google.com/go/vision/v2/apiv1"
	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	"google.golang.org/api/option"
)

// GoogleVisionDetector implements Detector using Google Cloud Vision API
// text detection.
type GoogleVisionDetector struct {
	client *vision.ImageAnnotatorClient
}

// NewGoogleVisionDetector creates a new detector with credentials from environment.
// It expects either GOOGLE_APPLICATION_CREDENTIALS path or GOOGLE_CREDENTIALS JSON in env.
func NewGoogleVisionDetector(ctx context.Context) (Detector, error) {
	const op = "NewGoogleVisionDetector"

	var client *vision.ImageAnnotatorClient
	var err error

	// Check for inline credentials first
	if credJSON := os.Getenv("GOOGLE_CREDENTIALS"); credJSON != "" {
		client, err = vision.NewImageAnnotatorClient(ctx, option.WithCredentialsJSON([]byte(credJSON)))
		if err != nil {
			return nil, WrapOCRError(op, err, "failed to create client with GOOGLE_CREDENTIALS")
		}
	} else if credFile := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); credFile != "" {
		// Use credentials file
		client, err = vision.NewImageAnnotatorClient(ctx, option.WithCredentialsFile(credFile))
		if err != nil {
			return nil, WrapOCRError(op, err, "failed to create client with GOOGLE_APPLICATION_CREDENTIALS")
		}
	} else {
		// Try default credentials as fallback
		client, err = vision.NewImageAnnotatorClient(ctx)
		if err != nil {
			return nil, WrapOCRError(op, ErrMissingCredentials, "no credentials found in environment")
		}
	}

	return &GoogleVisionDetector{
		client: client,
	}, nil
}

// NewGoogleVisionDetectorWithClient creates a new detector with an explicit client (for testing).
func NewGoogleVisionDetectorWithClient(client *vision.ImageAnnotatorClient) Detector {
	return &GoogleVisionDetector{
		client: client,
	}
}

// DetectText extracts text from a photograph using Vision text detection.
func (g *GoogleVisionDetector) DetectText(ctx context.Context, image io.Reader) (*Result, error) {
	const op = "DetectText"
	startTime := time.Now()

	imageBytes, err := io.ReadAll(image)
	if err != nil {
		return nil, WrapOCRError(op, err, "failed to read image data")
	}

	if len(imageBytes) > MaxImageSizeBytes {
		return nil, WrapOCRError(op, ErrImageTooLarge, fmt.Sprintf("file size: %d bytes", len(imageBytes)))
	}

	if mime := http.DetectContentType(imageBytes); !strings.HasPrefix(mime, "image/") {
		return nil, WrapOCRError(op, ErrInvalidImage, fmt.Sprintf("detected content type: %s", mime))
	}

	// Prepare the request
	req := &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{
			{
				Image: &visionpb.Image{
					Content: imageBytes,
				},
				Features: []*visionpb.Feature{
					{
						Type: visionpb.Feature_TEXT_DETECTION,
					},
				},
			},
		},
	}

	// Call the Vision API
	resp, err := g.client.BatchAnnotateImages(ctx, req)
	if err != nil {
		return nil, WrapOCRError(op, ErrDetectionFailed, fmt.Sprintf("Vision API call failed: %v", err))
	}

	if len(resp.Responses) == 0 {
		return nil, WrapOCRError(op, ErrDetectionFailed, "no response from Vision API")
	}

	imageResp := resp.Responses[0]
	if imageResp.Error != nil {
		return nil, WrapOCRError(op, ErrDetectionFailed, fmt.Sprintf("Vision API error: %s", imageResp.Error.Message))
	}

	result, err := g.processAnnotations(imageResp.TextAnnotations)
	if err != nil {
		return nil, WrapOCRError(op, err, "")
	}

	result.ProcessedAt = time.Now()
	result.ProcessingDuration = result.ProcessedAt.Sub(startTime)

	return result, nil
}

// processAnnotations normalizes Vision text annotations into a Result. The
// first annotation is the full text blob, the rest are word-level detections.
func (g *GoogleVisionDetector) processAnnotations(annotations []*visionpb.EntityAnnotation) (*Result, error) {
	if len(annotations) == 0 {
		return nil, ErrNoTextDetected
	}

	detections := make([]RawDetection, 0, len(annotations))
	for _, annotation := range annotations {
		detections = append(detections, RawDetection{
			Text:       annotation.Description,
			Confidence: annotation.Confidence,
			HasBounds:  annotation.BoundingPoly != nil,
		})
	}

	fullText := detections[0].Text
	if strings.TrimSpace(fullText) == "" {
		return nil, ErrNoTextDetected
	}

	return &Result{
		FullText:   fullText,
		Detections: detections,
	}, nil
}

// Close closes the underlying Vision client.
func (g *GoogleVisionDetector) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}
