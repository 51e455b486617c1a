package places

import (
	"context"
	"errors"
)

// MaxOptions bounds the option list returned for an ambiguous search.
const MaxOptions = 10

// Resolution is the outcome of a lookup: either a single resolved place or a
// set of options requiring caller-side selection. Exactly one of Match and
// Options is populated.
type Resolution struct {
	// Match is set when the search was unambiguous.
	Match *PlaceDetails `json:"match,omitempty"`

	// Options is set when the caller must pick before enrichment is fetched.
	Options []LocationOption `json:"options,omitempty"`
}

// Resolve disambiguates a text query. A single search result is enriched via
// Details; if enrichment fails the basic search fields are returned instead,
// so an enrichment outage never fails the whole request. Multiple results are
// returned as up to MaxOptions options with enrichment deferred to selection.
func (c *Client) Resolve(ctx context.Context, query string) (*Resolution, error) {
	options, err := c.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	if len(options) == 1 {
		details, err := c.Details(ctx, options[0].PlaceID)
		if err != nil {
			c.log.Warn().
				Err(err).
				Str("place_id", options[0].PlaceID).
				Msg("Details enrichment failed, falling back to search fields")
			return &Resolution{Match: &PlaceDetails{LocationOption: options[0]}}, nil
		}
		return &Resolution{Match: details}, nil
	}

	if len(options) > MaxOptions {
		options = options[:MaxOptions]
	}
	return &Resolution{Options: options}, nil
}

// NotFound reports whether err signals a zero-result lookup, the one places
// failure callers surface as an empty state rather than an error.
func NotFound(err error) bool {
	return errors.Is(err, ErrNoLocationFound)
}
