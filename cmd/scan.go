package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"shopscan/internal/config"
	"shopscan/internal/listing"
	"shopscan/internal/logger"
	"shopscan/internal/ocr"
	"shopscan/internal/places"
	"shopscan/internal/sheets"
	"shopscan/pkg/models"
)

var scanCmd = &cobra.Command{
	Use:   "scan [image-file]",
	Short: "Build a business listing from a storefront photo",
	Long: `Process a storefront photograph end to end: detect text with Google
Cloud OCR, infer the business name and contact details, and resolve the
physical business through the Google Places API.

When the places lookup is ambiguous the command prints the candidate
locations; re-run with --select to pick one and fetch its details.

Required environment variables:
  GOOGLE_APPLICATION_CREDENTIALS - Path to service account JSON file, OR
  GOOGLE_CREDENTIALS - Inline JSON credentials string
  GOOGLE_MAPS_API_KEY - API key with the Places API enabled

Optional:
  OCR_BACKEND - "vision" (default) or "documentai"`,
	Example: `  # Scan a storefront photo
  shopscan scan storefront.jpg

  # Output the full result as JSON
  shopscan scan storefront.jpg --json

  # Pick the second location candidate from an ambiguous scan
  shopscan scan storefront.jpg --select 2

  # Process with custom timeout
  shopscan scan storefront.jpg --timeout 120

  # Append the resolved listing to a Google Sheet
  shopscan scan storefront.jpg --sheet "https://docs.google.com/spreadsheets/d/SHEET_ID/edit"`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().Bool("json", false, "Output as JSON")
	scanCmd.Flags().Int("select", 0, "Select the Nth location candidate (1-based) when the lookup is ambiguous")
	scanCmd.Flags().Int("timeout", 60, "Processing timeout in seconds")
	scanCmd.Flags().String("sheet", "", "Google Sheets URL to append the resolved listing to")
	scanCmd.Flags().String("sheet-name", "Listings", "Sheet tab to append to")
}

func runScan(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("scan")

	jsonOutput, _ := cmd.Flags().GetBool("json")
	selectIndex, _ := cmd.Flags().GetInt("select")
	timeoutSecs, _ := cmd.Flags().GetInt("timeout")
	sheetURL, _ := cmd.Flags().GetString("sheet")
	sheetName, _ := cmd.Flags().GetString("sheet-name")

	imagePath := args[0]

	log.Info().
		Str("file", imagePath).
		Bool("json", jsonOutput).
		Int("timeout", timeoutSecs).
		Msg("Starting storefront scan")

	fileInfo, err := validateImageFile(imagePath, log)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, cancel := createContextWithTimeout(timeoutSecs, log)
	defer cancel()

	service, err := createListingService(ctx, cfg, log)
	if err != nil {
		return err
	}

	imageFile, err := os.Open(imagePath)
	if err != nil {
		log.Error().
			Err(err).
			Str("file", imagePath).
			Msg("Failed to open image file")
		return fmt.Errorf("failed to open image file: %w", err)
	}
	defer func() {
		if closeErr := imageFile.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("Failed to close image file")
		}
	}()

	log.Info().
		Str("file", imagePath).
		Int64("size", fileInfo.Size()).
		Msg("Processing image")

	result, err := service.Scan(ctx, imageFile)
	if err != nil {
		return handleScanError(err, log)
	}

	// An ambiguous lookup needs a selection before enrichment is fetched.
	if len(result.Options) > 0 && selectIndex > 0 {
		if selectIndex > len(result.Options) {
			return fmt.Errorf("--select %d is out of range: %d location candidates", selectIndex, len(result.Options))
		}
		result.Listing = service.Select(ctx, result.Options[selectIndex-1], result.Extracted)
		result.Options = nil
	}

	log.Info().
		Str("request_id", result.RequestID).
		Str("decision", string(result.Decision)).
		Bool("location_found", result.LocationFound).
		Int("options", len(result.Options)).
		Msg("Scan completed")

	if sheetURL != "" && result.Listing != nil {
		if err := exportListing(ctx, sheetURL, sheetName, result, log); err != nil {
			return err
		}
	}

	return outputScanResult(result, jsonOutput)
}

// exportListing appends the resolved listing to the configured Google Sheet.
func exportListing(ctx context.Context, sheetURL, sheetName string, result *listing.ScanResult, log zerolog.Logger) error {
	exporter, err := sheets.NewService(ctx, sheetURL)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create sheets exporter")
		return fmt.Errorf("failed to create sheets exporter: %w", err)
	}

	if err := exporter.AppendListings(ctx, []*models.BusinessListing{result.Listing}, sheetName); err != nil {
		log.Error().Err(err).Msg("Failed to export listing to Google Sheet")
		return fmt.Errorf("failed to export listing to Google Sheet: %w", err)
	}

	log.Info().
		Str("sheet", sheetName).
		Str("place_id", result.Listing.PlaceID).
		Msg("Listing exported to Google Sheet")
	return nil
}

// validateImageFile checks that the file exists, is readable, and looks like an image
func validateImageFile(imagePath string, log zerolog.Logger) (os.FileInfo, error) {
	fileInfo, err := os.Stat(imagePath)
	if err != nil {
		if os.IsNotExist(err) {
			log.Error().
				Str("file", imagePath).
				Msg("Image file not found")
			return nil, fmt.Errorf("image file not found: %s", imagePath)
		}
		if os.IsPermission(err) {
			log.Error().
				Str("file", imagePath).
				Msg("Permission denied accessing image file")
			return nil, fmt.Errorf("permission denied accessing image file: %s", imagePath)
		}
		return nil, fmt.Errorf("error accessing image file: %w", err)
	}

	if !fileInfo.Mode().IsRegular() {
		log.Error().
			Str("file", imagePath).
			Msg("Path is not a regular file")
		return nil, fmt.Errorf("path is not a regular file: %s", imagePath)
	}

	lower := strings.ToLower(imagePath)
	knownExtension := false
	for _, ext := range []string{".jpg", ".jpeg", ".png", ".gif", ".bmp", ".webp", ".tif", ".tiff"} {
		if strings.HasSuffix(lower, ext) {
			knownExtension = true
			break
		}
	}
	if !knownExtension {
		log.Warn().
			Str("file", imagePath).
			Msg("File does not have a known image extension")
	}

	if fileInfo.Size() == 0 {
		log.Error().
			Str("file", imagePath).
			Msg("Image file is empty")
		return nil, fmt.Errorf("image file is empty: %s", imagePath)
	}

	if fileInfo.Size() > ocr.MaxImageSizeBytes {
		log.Error().
			Str("file", imagePath).
			Int64("size", fileInfo.Size()).
			Int64("max_size", ocr.MaxImageSizeBytes).
			Msg("Image file exceeds maximum size limit")
		return nil, fmt.Errorf("image file too large (%d bytes). Maximum size is %d bytes (20MB)",
			fileInfo.Size(), ocr.MaxImageSizeBytes)
	}

	return fileInfo, nil
}

// createContextWithTimeout creates a context with timeout and signal handling
func createContextWithTimeout(timeoutSecs int, log zerolog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(timeoutSecs)*time.Second)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			log.Info().
				Str("signal", sig.String()).
				Msg("Received interrupt signal, canceling processing")
			cancel()
		case <-ctx.Done():
			// Context completed normally
		}
	}()

	return ctx, cancel
}

// createListingService wires the configured OCR backend and the places client.
func createListingService(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*listing.Service, error) {
	detector, err := createDetector(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	placesClient, err := places.NewClientWithConfig(places.ClientConfig{
		APIKey:  cfg.GoogleMapsAPIKey,
		BaseURL: cfg.PlacesBaseURL,
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to create places client")
		return nil, fmt.Errorf("failed to create places client: %w", err)
	}

	return listing.NewService(detector, placesClient), nil
}

// createDetector creates the OCR backend named by OCR_BACKEND.
func createDetector(ctx context.Context, cfg *config.Config, log zerolog.Logger) (ocr.Detector, error) {
	hasCredentials := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS") != "" || os.Getenv("GOOGLE_CREDENTIALS") != ""
	if !hasCredentials {
		log.Error().Msg("Google Cloud credentials not configured")
		return nil, fmt.Errorf("Google Cloud credentials not configured. Please set one of:\n\n" +
			"1. Export GOOGLE_APPLICATION_CREDENTIALS with path to service account JSON:\n" +
			"   export GOOGLE_APPLICATION_CREDENTIALS=/path/to/service-account-key.json\n\n" +
			"2. Export GOOGLE_CREDENTIALS with inline JSON:\n" +
			"   export GOOGLE_CREDENTIALS='{\"type\":\"service_account\",\"project_id\":\"your-project\",...}'\n\n" +
			"3. Check that your .env file contains the credentials variables")
	}

	var detector ocr.Detector
	var err error
	if cfg.OCRBackend == "documentai" {
		detector, err = ocr.NewDocumentAIDetector(ctx)
	} else {
		detector, err = ocr.NewGoogleVisionDetector(ctx)
	}
	if err != nil {
		if errors.Is(err, ocr.ErrMissingCredentials) {
			log.Error().
				Err(err).
				Msg("Google Cloud credentials validation failed")
			return nil, fmt.Errorf("Google Cloud credentials validation failed. Please verify:\n\n"+
				"1. Credentials file exists and is readable\n"+
				"2. JSON format is valid\n"+
				"3. Service account has proper permissions\n\n"+
				"Original error: %w", err)
		}
		log.Error().
			Err(err).
			Str("backend", cfg.OCRBackend).
			Msg("Failed to create OCR detector")
		return nil, fmt.Errorf("failed to create OCR detector: %w", err)
	}

	log.Debug().Str("backend", cfg.OCRBackend).Msg("OCR detector created successfully")
	return detector, nil
}

// handleScanError provides user-friendly error messages for scan failures
func handleScanError(err error, log zerolog.Logger) error {
	log.Error().Err(err).Msg("Scan failed")

	errStr := err.Error()

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("scan timed out. Try increasing --timeout")
	case errors.Is(err, context.Canceled):
		return fmt.Errorf("scan was canceled")
	case errors.Is(err, ocr.ErrNoTextDetected):
		return fmt.Errorf("no text detected in the image. Try a sharper photo taken closer to the sign")
	case errors.Is(err, ocr.ErrImageTooLarge):
		return fmt.Errorf("image is too large (maximum 20MB). Try resizing or compressing it")
	case errors.Is(err, ocr.ErrInvalidImage):
		return fmt.Errorf("the file is not a supported image format (JPEG, PNG, GIF, BMP, WEBP, TIFF)")
	case strings.Contains(errStr, "Unauthenticated") ||
		strings.Contains(errStr, "invalid_grant") ||
		strings.Contains(errStr, "auth:"):
		return fmt.Errorf("Google Cloud authentication failed. Please check your credentials:\n\n"+
			"1. Set GOOGLE_APPLICATION_CREDENTIALS to your service account JSON file path\n"+
			"2. Or set GOOGLE_CREDENTIALS with inline JSON\n"+
			"3. Ensure the service account has the Vision (or Document AI) role\n\n"+
			"Original error: %v", err)
	case strings.Contains(errStr, "PERMISSION_DENIED") ||
		strings.Contains(errStr, "permission"):
		return fmt.Errorf("permission denied. Please check your Google Cloud service account roles")
	case strings.Contains(errStr, "QUOTA_EXCEEDED") ||
		strings.Contains(errStr, "quota"):
		return fmt.Errorf("Google Cloud API quota exceeded. Check your project quotas in the Google Cloud Console")
	default:
		return fmt.Errorf("scan failed: %w", err)
	}
}

// outputScanResult prints the scan result as JSON or human-readable text.
func outputScanResult(result *listing.ScanResult, jsonOutput bool) error {
	if jsonOutput {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to create JSON output: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("=== Extraction ===\n")
	if len(result.Extracted.BusinessNames) == 0 {
		fmt.Println("No business name could be inferred from the sign.")
	} else {
		fmt.Printf("Business names (best first):\n")
		for i, name := range result.Extracted.BusinessNames {
			fmt.Printf("  %d. %s\n", i+1, name)
		}
	}
	printFieldList("Addresses", result.Extracted.Addresses)
	printFieldList("Phone numbers", result.Extracted.PhoneNumbers)
	printFieldList("Websites", result.Extracted.Websites)
	printFieldList("Emails", result.Extracted.Emails)
	fmt.Printf("Confidence: name=%s address=%s phone=%s\n",
		result.Extracted.Confidence.BusinessName,
		result.Extracted.Confidence.Address,
		result.Extracted.Confidence.Phone)

	if result.Decision == listing.DecisionConfirm {
		fmt.Println("\nThe inferred name is uncertain; confirm it before trusting the listing.")
	}

	switch {
	case result.Listing != nil:
		l := result.Listing
		fmt.Printf("\n=== Listing ===\n")
		fmt.Printf("Name:    %s\n", l.Name)
		fmt.Printf("Address: %s\n", l.Address)
		if l.PhoneNumber != "" {
			fmt.Printf("Phone:   %s\n", l.PhoneNumber)
		}
		if l.Website != "" {
			fmt.Printf("Website: %s\n", l.Website)
		}
		if l.Rating > 0 {
			fmt.Printf("Rating:  %.1f (%d ratings)\n", l.Rating, l.RatingCount)
		}
	case len(result.Options) > 0:
		fmt.Printf("\n=== Location candidates (re-run with --select N) ===\n")
		for i, option := range result.Options {
			fmt.Printf("  %d. %s - %s\n", i+1, option.Name, option.FormattedAddress)
		}
	case !result.LocationFound:
		fmt.Println("\nNo matching location found.")
	}

	return nil
}

func printFieldList(label string, values []string) {
	if len(values) == 0 {
		return
	}
	fmt.Printf("%s: %s\n", label, strings.Join(values, ", "))
}
