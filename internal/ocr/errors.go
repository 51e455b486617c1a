package ocr

import (
	"errors"
	"fmt"
)

// Common OCR processing errors
var (
	// ErrNoTextDetected is returned when the image yields zero detections.
	// Fatal for the current request: there is nothing to extract from.
	ErrNoTextDetected = errors.New("no text detected in image")

	// ErrImageTooLarge is returned when the image exceeds the maximum size.
	ErrImageTooLarge = errors.New("image size exceeds the maximum limit (20MB)")

	// ErrInvalidImage is returned when the provided data is not a supported image format.
	ErrInvalidImage = errors.New("invalid or unsupported image format")

	// ErrDetectionFailed is returned when the Google Cloud API fails to process the image.
	ErrDetectionFailed = errors.New("text detection failed")

	// ErrMissingCredentials is returned when neither GOOGLE_APPLICATION_CREDENTIALS
	// nor GOOGLE_CREDENTIALS environment variables are configured.
	ErrMissingCredentials = errors.New("missing Google Cloud credentials: set GOOGLE_APPLICATION_CREDENTIALS or GOOGLE_CREDENTIALS environment variable")

	// ErrInvalidConfiguration is returned when required backend configuration is absent.
	ErrInvalidConfiguration = errors.New("invalid OCR backend configuration")
)

// OCRError wraps errors with additional context about the detection failure.
type OCRError struct {
	// Op is the operation that failed (e.g., "DetectText").
	Op string

	// Err is the underlying error.
	Err error

	// Details provides additional context about the failure.
	Details string
}

// Error implements the error interface.
func (e *OCRError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("ocr: %s failed: %s: %v", e.Op, e.Details, e.Err)
	}
	return fmt.Sprintf("ocr: %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *OCRError) Unwrap() error {
	return e.Err
}

// Is implements error matching for Go 1.13+ error handling.
func (e *OCRError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// NewOCRError creates a new OCRError with the specified operation and underlying error.
func NewOCRError(op string, err error, details string) *OCRError {
	return &OCRError{
		Op:      op,
		Err:     err,
		Details: details,
	}
}

// WrapOCRError wraps an error as an OCRError if it isn't already one.
func WrapOCRError(op string, err error, details string) error {
	if err == nil {
		return nil
	}

	var ocrErr *OCRError
	if errors.As(err, &ocrErr) {
		return err // Already wrapped
	}

	return NewOCRError(op, err, details)
}
