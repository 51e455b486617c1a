// Package places looks up physical businesses through the Google Places API
// and disambiguates free-text queries into concrete place records.
//
// Required Environment Variables:
//   - GOOGLE_MAPS_API_KEY: API key with the Places API enabled
//
// The client speaks the Places JSON API directly (Text Search and Place
// Details endpoints). Details enrichment is deferred: it is only fetched for
// an unambiguous match or for the option the caller selected, never for every
// search result.
package places

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"shopscan/internal/logger"
)

// DefaultBaseURL is the Google Places API endpoint prefix.
const DefaultBaseURL = "https://maps.googleapis.com/maps/api/place"

// detailsFields limits the Details response to the fields the listing needs.
const detailsFields = "place_id,name,formatted_address,formatted_phone_number,website,rating,user_ratings_total,business_status,types,geometry,opening_hours"

// ClientConfig holds configuration for the places client.
type ClientConfig struct {
	// APIKey is the Google Maps API key. Required.
	APIKey string

	// BaseURL overrides the Places API endpoint prefix (for testing).
	BaseURL string

	// HTTPClient overrides the HTTP client used for API calls.
	HTTPClient *http.Client

	// Timeout is applied when no HTTPClient is provided. Default: 15 seconds.
	Timeout time.Duration
}

// Client calls the Google Places API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	log        zerolog.Logger
}

// NewClient creates a places client for the given API key.
func NewClient(apiKey string) (*Client, error) {
	return NewClientWithConfig(ClientConfig{APIKey: apiKey})
}

// NewClientWithConfig creates a places client with explicit configuration.
func NewClientWithConfig(config ClientConfig) (*Client, error) {
	const op = "NewClientWithConfig"

	if config.APIKey == "" {
		return nil, WrapPlacesError(op, ErrMissingAPIKey, "")
	}
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.Timeout == 0 {
		config.Timeout = 15 * time.Second
	}
	if config.HTTPClient == nil {
		config.HTTPClient = &http.Client{Timeout: config.Timeout}
	}

	return &Client{
		httpClient: config.HTTPClient,
		baseURL:    config.BaseURL,
		apiKey:     config.APIKey,
		log:        logger.WithComponent("places"),
	}, nil
}

// Search runs a text search and returns the provider-ranked place candidates,
// lightly normalized. Returns ErrNoLocationFound when the search yields zero
// places.
func (c *Client) Search(ctx context.Context, query string) ([]LocationOption, error) {
	const op = "Search"

	params := url.Values{}
	params.Set("query", query)
	params.Set("key", c.apiKey)

	var response textSearchResponse
	if err := c.get(ctx, "/textsearch/json", params, &response); err != nil {
		return nil, WrapPlacesError(op, ErrLookupFailed, err.Error())
	}

	switch response.Status {
	case "OK":
	case "ZERO_RESULTS":
		return nil, WrapPlacesError(op, ErrNoLocationFound, fmt.Sprintf("query: %q", query))
	default:
		return nil, WrapPlacesError(op, ErrLookupFailed, fmt.Sprintf("status: %s %s", response.Status, response.ErrorMessage))
	}

	if len(response.Results) == 0 {
		return nil, WrapPlacesError(op, ErrNoLocationFound, fmt.Sprintf("query: %q", query))
	}

	options := make([]LocationOption, 0, len(response.Results))
	for _, result := range response.Results {
		options = append(options, result.toOption())
	}

	c.log.Debug().
		Str("query", query).
		Int("results", len(options)).
		Msg("Places text search completed")

	return options, nil
}

// Details fetches the enriched record for one place.
func (c *Client) Details(ctx context.Context, placeID string) (*PlaceDetails, error) {
	const op = "Details"

	params := url.Values{}
	params.Set("place_id", placeID)
	params.Set("fields", detailsFields)
	params.Set("key", c.apiKey)

	var response detailsResponse
	if err := c.get(ctx, "/details/json", params, &response); err != nil {
		return nil, WrapPlacesError(op, ErrDetailsFailed, err.Error())
	}

	if response.Status != "OK" || response.Result == nil {
		return nil, WrapPlacesError(op, ErrDetailsFailed, fmt.Sprintf("status: %s %s", response.Status, response.ErrorMessage))
	}

	details := &PlaceDetails{
		LocationOption: response.Result.toOption(),
		PhoneNumber:    response.Result.FormattedPhoneNumber,
		Website:        response.Result.Website,
	}
	if response.Result.OpeningHours != nil {
		details.OpeningHours = response.Result.OpeningHours.WeekdayText
	}

	return details, nil
}

// get performs one Places API request and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	requestURL := c.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.log.Warn().Err(closeErr).Msg("Failed to close response body")
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected HTTP status: %s", resp.Status)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
