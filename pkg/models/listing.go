package models

import "time"

type BusinessListing struct {
	// Core identifiers
	PlaceID string // Google Places identifier (empty if never geocoded)
	Name    string // Resolved business name

	// Contact details
	Address     string // Formatted street address
	PhoneNumber string // Formatted phone number
	Website     string // Website URL
	Email       string // Email address (OCR-extracted, places has none)

	// Place metadata
	Rating         float64  // Average rating (0 if unknown)
	RatingCount    int      // Number of ratings behind the average
	BusinessStatus string   // OPERATIONAL, CLOSED_TEMPORARILY, CLOSED_PERMANENTLY
	Categories     []string // Place type tags
	OpeningHours   []string // Human-readable weekday hours

	// Coordinates (0,0 if never geocoded)
	Latitude  float64
	Longitude float64

	// Provenance
	Enriched  bool      // True when details enrichment succeeded
	CreatedAt time.Time // Record creation timestamp
}
