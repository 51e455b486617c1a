package listing

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"shopscan/internal/extract"
	"shopscan/internal/ocr"
	"shopscan/internal/places"
)

type fakeDetector struct {
	result *ocr.Result
	err    error
	calls  int
}

func (d *fakeDetector) DetectText(ctx context.Context, image io.Reader) (*ocr.Result, error) {
	d.calls++
	if d.err != nil {
		return nil, d.err
	}
	return d.result, nil
}

type fakeResolver struct {
	resolution *places.Resolution
	resolveErr error
	details    *places.PlaceDetails
	detailsErr error

	queries  []string
	placeIDs []string
}

func (r *fakeResolver) Resolve(ctx context.Context, query string) (*places.Resolution, error) {
	r.queries = append(r.queries, query)
	if r.resolveErr != nil {
		return nil, r.resolveErr
	}
	return r.resolution, nil
}

func (r *fakeResolver) Details(ctx context.Context, placeID string) (*places.PlaceDetails, error) {
	r.placeIDs = append(r.placeIDs, placeID)
	if r.detailsErr != nil {
		return nil, r.detailsErr
	}
	return r.details, nil
}

// detectionResult builds an OCR result with the given full text and one
// detection per whitespace token.
func detectionResult(fullText string) *ocr.Result {
	tokens := strings.Fields(fullText)
	detections := make([]ocr.RawDetection, 0, len(tokens))
	for _, token := range tokens {
		detections = append(detections, ocr.RawDetection{Text: token, Confidence: 0.9})
	}
	return &ocr.Result{FullText: fullText, Detections: detections}
}

const storefrontText = "JOE'S COFFEE SHOP\n123 Main Street\nOpen Daily\nCall 555-123-4567"

func matchedResolution() *places.Resolution {
	return &places.Resolution{
		Match: &places.PlaceDetails{
			LocationOption: places.LocationOption{
				PlaceID:          "place-1",
				Name:             "Joe's Coffee Shop",
				FormattedAddress: "123 Main St, Springfield",
				Rating:           4.5,
				UserRatingsTotal: 120,
				BusinessStatus:   "OPERATIONAL",
				Types:            []string{"cafe"},
				Location:         &places.LatLng{Lat: 37.77, Lng: -122.42},
			},
			PhoneNumber:  "(555) 987-6543",
			Website:      "https://joescoffee.com",
			OpeningHours: []string{"Monday: 7AM-5PM"},
		},
	}
}

func TestScanResolvesListing(t *testing.T) {
	detector := &fakeDetector{result: detectionResult(storefrontText)}
	resolver := &fakeResolver{resolution: matchedResolution()}
	service := NewService(detector, resolver)

	result, err := service.Scan(context.Background(), strings.NewReader("image-bytes"))
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	if result.RequestID == "" {
		t.Error("RequestID is empty")
	}
	if result.Decision != DecisionAutoProceed {
		t.Errorf("Decision = %v, want %v", result.Decision, DecisionAutoProceed)
	}
	if !result.LocationFound {
		t.Error("LocationFound = false")
	}
	if len(result.Options) != 0 {
		t.Errorf("Options = %v, want none for a resolved match", result.Options)
	}

	if len(resolver.queries) != 1 {
		t.Fatalf("resolver called %d times, want 1", len(resolver.queries))
	}
	if want := "JOE'S COFFEE SHOP 123 Main Street"; resolver.queries[0] != want {
		t.Errorf("query = %q, want %q", resolver.queries[0], want)
	}

	listing := result.Listing
	if listing == nil {
		t.Fatal("Listing is nil")
	}
	if listing.PlaceID != "place-1" || listing.Name != "Joe's Coffee Shop" {
		t.Errorf("listing identity = %+v", listing)
	}
	if !listing.Enriched {
		t.Error("Enriched = false for a details-backed listing")
	}
	if listing.PhoneNumber != "(555) 987-6543" {
		t.Errorf("PhoneNumber = %q, places value should win over OCR", listing.PhoneNumber)
	}
	if listing.Latitude != 37.77 || listing.Longitude != -122.42 {
		t.Errorf("coordinates = %v, %v", listing.Latitude, listing.Longitude)
	}
}

func TestScanDetectorErrorIsFatal(t *testing.T) {
	detectErr := ocr.WrapOCRError("DetectText", ocr.ErrNoTextDetected, "")
	detector := &fakeDetector{err: detectErr}
	resolver := &fakeResolver{resolution: matchedResolution()}
	service := NewService(detector, resolver)

	_, err := service.Scan(context.Background(), strings.NewReader("image-bytes"))
	if !errors.Is(err, ocr.ErrNoTextDetected) {
		t.Errorf("Scan() error = %v, want ErrNoTextDetected", err)
	}
	if len(resolver.queries) != 0 {
		t.Errorf("resolver called after OCR failure")
	}
}

func TestScanNoNamesSkipsLookup(t *testing.T) {
	detector := &fakeDetector{result: detectionResult("www.example.com\n555\n&")}
	resolver := &fakeResolver{resolution: matchedResolution()}
	service := NewService(detector, resolver)

	result, err := service.Scan(context.Background(), strings.NewReader("image-bytes"))
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	if len(resolver.queries) != 0 {
		t.Errorf("resolver called with no extracted names: %v", resolver.queries)
	}
	if result.Decision != DecisionConfirm {
		t.Errorf("Decision = %v, want %v", result.Decision, DecisionConfirm)
	}
	if result.LocationFound {
		t.Error("LocationFound = true without a lookup")
	}
}

func TestScanLookupFailureIsNotFatal(t *testing.T) {
	detector := &fakeDetector{result: detectionResult(storefrontText)}
	resolver := &fakeResolver{resolveErr: places.WrapPlacesError("Search", places.ErrLookupFailed, "boom")}
	service := NewService(detector, resolver)

	result, err := service.Scan(context.Background(), strings.NewReader("image-bytes"))
	if err != nil {
		t.Fatalf("Scan() error = %v, lookup failure must not fail the scan", err)
	}
	if result.LocationFound {
		t.Error("LocationFound = true after failed lookup")
	}
	if result.Listing != nil || len(result.Options) != 0 {
		t.Errorf("listing populated after failed lookup: %+v %+v", result.Listing, result.Options)
	}
	if result.Extracted == nil || len(result.Extracted.BusinessNames) == 0 {
		t.Error("extraction output missing after failed lookup")
	}
}

func TestScanNotFound(t *testing.T) {
	detector := &fakeDetector{result: detectionResult(storefrontText)}
	resolver := &fakeResolver{resolveErr: places.WrapPlacesError("Search", places.ErrNoLocationFound, "")}
	service := NewService(detector, resolver)

	result, err := service.Scan(context.Background(), strings.NewReader("image-bytes"))
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if result.LocationFound {
		t.Error("LocationFound = true for a zero-result lookup")
	}
}

func TestScanAmbiguousReturnsOptions(t *testing.T) {
	options := []places.LocationOption{
		{PlaceID: "a", Name: "Joe's Coffee Shop Downtown"},
		{PlaceID: "b", Name: "Joe's Coffee Shop Airport"},
	}
	detector := &fakeDetector{result: detectionResult(storefrontText)}
	resolver := &fakeResolver{resolution: &places.Resolution{Options: options}}
	service := NewService(detector, resolver)

	result, err := service.Scan(context.Background(), strings.NewReader("image-bytes"))
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	if !result.LocationFound {
		t.Error("LocationFound = false with options present")
	}
	if result.Listing != nil {
		t.Errorf("Listing = %+v, want nil until selection", result.Listing)
	}
	if len(result.Options) != 2 {
		t.Errorf("len(Options) = %d, want 2", len(result.Options))
	}
	if got := EventFor(result); got != EventOptionsFound {
		t.Errorf("EventFor() = %v, want %v", got, EventOptionsFound)
	}
}

func TestSelectEnrichesOption(t *testing.T) {
	resolver := &fakeResolver{details: matchedResolution().Match}
	service := NewService(&fakeDetector{}, resolver)

	extracted := extract.FromText(storefrontText, 10)
	option := places.LocationOption{PlaceID: "place-1", Name: "Joe's Coffee Shop"}

	listing := service.Select(context.Background(), option, extracted)

	if len(resolver.placeIDs) != 1 || resolver.placeIDs[0] != "place-1" {
		t.Errorf("details calls = %v, want [place-1]", resolver.placeIDs)
	}
	if !listing.Enriched {
		t.Error("Enriched = false after successful details fetch")
	}
	if listing.Website != "https://joescoffee.com" {
		t.Errorf("Website = %q", listing.Website)
	}
}

func TestSelectFallsBackOnDetailsFailure(t *testing.T) {
	resolver := &fakeResolver{detailsErr: places.WrapPlacesError("Details", places.ErrDetailsFailed, "")}
	service := NewService(&fakeDetector{}, resolver)

	extracted := extract.FromText(storefrontText, 10)
	option := places.LocationOption{
		PlaceID:          "place-1",
		Name:             "Joe's Coffee Shop",
		FormattedAddress: "123 Main St, Springfield",
	}

	listing := service.Select(context.Background(), option, extracted)

	if listing == nil {
		t.Fatal("Select returned nil on enrichment failure")
	}
	if listing.Enriched {
		t.Error("Enriched = true for a fallback listing")
	}
	if listing.Name != "Joe's Coffee Shop" || listing.Address != "123 Main St, Springfield" {
		t.Errorf("basic fields lost in fallback: %+v", listing)
	}
	// Contact fields come from the sign when the places record has none.
	if listing.PhoneNumber != "555-123-4567" {
		t.Errorf("PhoneNumber = %q, want the OCR-extracted number", listing.PhoneNumber)
	}
}
