package places

// LatLng is a geographic coordinate pair.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// LocationOption is one lightly-normalized place candidate, returned when a
// search needs caller-side disambiguation before enrichment.
type LocationOption struct {
	PlaceID          string   `json:"place_id"`
	Name             string   `json:"name"`
	FormattedAddress string   `json:"formatted_address"`
	Rating           float64  `json:"rating,omitempty"`
	UserRatingsTotal int      `json:"user_ratings_total,omitempty"`
	BusinessStatus   string   `json:"business_status,omitempty"`
	Types            []string `json:"types,omitempty"`
	Location         *LatLng  `json:"location,omitempty"`
}

// PlaceDetails is the enriched record for one place, fetched per selection.
type PlaceDetails struct {
	LocationOption

	PhoneNumber  string   `json:"phone_number,omitempty"`
	Website      string   `json:"website,omitempty"`
	OpeningHours []string `json:"opening_hours,omitempty"`
}

// Google Places API wire shapes.

type textSearchResponse struct {
	Status       string        `json:"status"`
	ErrorMessage string        `json:"error_message"`
	Results      []placeResult `json:"results"`
}

type placeResult struct {
	PlaceID          string   `json:"place_id"`
	Name             string   `json:"name"`
	FormattedAddress string   `json:"formatted_address"`
	Rating           float64  `json:"rating"`
	UserRatingsTotal int      `json:"user_ratings_total"`
	BusinessStatus   string   `json:"business_status"`
	Types            []string `json:"types"`
	Geometry         *struct {
		Location LatLng `json:"location"`
	} `json:"geometry"`
}

type detailsResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Result       *struct {
		placeResult
		FormattedPhoneNumber string `json:"formatted_phone_number"`
		Website              string `json:"website"`
		OpeningHours         *struct {
			WeekdayText []string `json:"weekday_text"`
		} `json:"opening_hours"`
	} `json:"result"`
}

// toOption normalizes a raw search result to a LocationOption.
func (r placeResult) toOption() LocationOption {
	option := LocationOption{
		PlaceID:          r.PlaceID,
		Name:             r.Name,
		FormattedAddress: r.FormattedAddress,
		Rating:           r.Rating,
		UserRatingsTotal: r.UserRatingsTotal,
		BusinessStatus:   r.BusinessStatus,
		Types:            r.Types,
	}
	if r.Geometry != nil {
		location := r.Geometry.Location
		option.Location = &location
	}
	return option
}
