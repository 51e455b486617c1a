// Package listing composes OCR text detection, heuristic extraction and
// places lookup into structured business listing records.
//
// One Scan call processes one photograph synchronously: detect text, infer
// names and contact fields, decide whether the caller must confirm, then
// disambiguate against the places service. All state is request-scoped; a
// Service is safe for concurrent use.
package listing

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"shopscan/internal/extract"
	"shopscan/internal/logger"
	"shopscan/internal/ocr"
	"shopscan/internal/places"
	"shopscan/pkg/models"
)

// Resolver is the places-lookup surface the listing workflow needs.
// *places.Client satisfies it.
type Resolver interface {
	// Resolve disambiguates a text query into a match or an option list.
	Resolve(ctx context.Context, query string) (*places.Resolution, error)

	// Details fetches the enriched record for one place.
	Details(ctx context.Context, placeID string) (*places.PlaceDetails, error)
}

// Service runs the photo-to-listing workflow.
type Service struct {
	detector ocr.Detector
	resolver Resolver
	log      zerolog.Logger
}

// NewService creates a listing service from its two collaborators.
func NewService(detector ocr.Detector, resolver Resolver) *Service {
	return &Service{
		detector: detector,
		resolver: resolver,
		log:      logger.WithComponent("listing"),
	}
}

// ScanResult is the outcome of one photograph scan.
type ScanResult struct {
	// RequestID identifies this scan in logs.
	RequestID string `json:"request_id"`

	// Extracted holds the ranked names, contact fields and confidence labels.
	Extracted *extract.ExtractedText `json:"extracted"`

	// Decision says whether the caller may auto-proceed with the top name.
	Decision Decision `json:"decision"`

	// LocationFound is false when the places lookup yielded nothing usable.
	LocationFound bool `json:"location_found"`

	// Listing is set when the lookup resolved to a single place.
	Listing *models.BusinessListing `json:"listing,omitempty"`

	// Options is set when the caller must pick among several places.
	Options []places.LocationOption `json:"options,omitempty"`
}

// Scan processes one photograph end to end. OCR failure (including no text
// detected) fails the request; a places lookup failure does not, it only
// leaves LocationFound false.
func (s *Service) Scan(ctx context.Context, image io.Reader) (*ScanResult, error) {
	requestID := uuid.NewString()
	log := logger.WithRequestID(requestID)

	detected, err := s.detector.DetectText(ctx, image)
	if err != nil {
		return nil, err
	}

	extracted := extract.FromText(detected.FullText, len(detected.Detections))

	result := &ScanResult{
		RequestID: requestID,
		Extracted: extracted,
		Decision:  Decide(extracted.BusinessNames, extracted.Confidence),
	}

	log.Info().
		Int("detections", len(detected.Detections)).
		Strs("business_names", extracted.BusinessNames).
		Str("decision", string(result.Decision)).
		Msg("Extraction completed")

	if len(extracted.BusinessNames) == 0 {
		return result, nil
	}

	resolution, err := s.resolver.Resolve(ctx, s.buildQuery(extracted))
	if err != nil {
		if places.NotFound(err) {
			log.Info().Msg("No location found for extracted name")
		} else {
			log.Warn().Err(err).Msg("Places lookup failed")
		}
		return result, nil
	}

	result.LocationFound = true
	if resolution.Match != nil {
		result.Listing = s.listingFromDetails(resolution.Match, extracted)
	} else {
		result.Options = resolution.Options
	}

	return result, nil
}

// Select enriches the option the user picked. Enrichment failure degrades to
// the option's basic fields; this never fails.
func (s *Service) Select(ctx context.Context, option places.LocationOption, extracted *extract.ExtractedText) *models.BusinessListing {
	details, err := s.resolver.Details(ctx, option.PlaceID)
	if err != nil {
		s.log.Warn().
			Err(err).
			Str("place_id", option.PlaceID).
			Msg("Details enrichment failed, using basic fields")
		return s.listingFromOption(option, extracted)
	}
	return s.listingFromDetails(details, extracted)
}

// buildQuery forms the places search query: top name, plus the first
// extracted address when one exists.
func (s *Service) buildQuery(extracted *extract.ExtractedText) string {
	query := extracted.BusinessNames[0]
	if len(extracted.Addresses) > 0 {
		query += " " + extracted.Addresses[0]
	}
	return query
}

// listingFromDetails builds an enriched listing, backfilling contact fields
// the places record lacks from the OCR extraction.
func (s *Service) listingFromDetails(details *places.PlaceDetails, extracted *extract.ExtractedText) *models.BusinessListing {
	listing := s.listingFromOption(details.LocationOption, extracted)
	listing.Enriched = true
	if details.PhoneNumber != "" {
		listing.PhoneNumber = details.PhoneNumber
	}
	if details.Website != "" {
		listing.Website = details.Website
	}
	listing.OpeningHours = details.OpeningHours
	return listing
}

func (s *Service) listingFromOption(option places.LocationOption, extracted *extract.ExtractedText) *models.BusinessListing {
	listing := &models.BusinessListing{
		PlaceID:        option.PlaceID,
		Name:           option.Name,
		Address:        option.FormattedAddress,
		Rating:         option.Rating,
		RatingCount:    option.UserRatingsTotal,
		BusinessStatus: option.BusinessStatus,
		Categories:     option.Types,
		CreatedAt:      time.Now(),
	}
	if option.Location != nil {
		listing.Latitude = option.Location.Lat
		listing.Longitude = option.Location.Lng
	}
	if len(extracted.PhoneNumbers) > 0 {
		listing.PhoneNumber = extracted.PhoneNumbers[0]
	}
	if len(extracted.Websites) > 0 {
		listing.Website = extracted.Websites[0]
	}
	if len(extracted.Emails) > 0 {
		listing.Email = extracted.Emails[0]
	}
	return listing
}
