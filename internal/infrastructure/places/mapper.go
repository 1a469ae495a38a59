package places

import "github.com/platepulse/backend/internal/domain"

// Wire types mirror the places API response shapes

type findPlaceResponse struct {
	Candidates []placeResult `json:"candidates"`
	Status     string        `json:"status"`
}

type detailsResponse struct {
	Result placeResult `json:"result"`
	Status string      `json:"status"`
}

type nearbyResponse struct {
	Results []placeResult `json:"results"`
	Status  string        `json:"status"`
}

type placeResult struct {
	PlaceID          string        `json:"place_id"`
	Name             string        `json:"name"`
	FormattedAddress string        `json:"formatted_address"`
	Vicinity         string        `json:"vicinity"`
	FormattedPhone   string        `json:"formatted_phone_number"`
	Website          string        `json:"website"`
	Rating           float64       `json:"rating"`
	UserRatingsTotal int           `json:"user_ratings_total"`
	PriceLevel       int           `json:"price_level"`
	Types            []string      `json:"types"`
	Photos           []photo       `json:"photos"`
	OpeningHours     *openingHours `json:"opening_hours"`
	Geometry         geometry      `json:"geometry"`
}

type photo struct {
	PhotoReference string `json:"photo_reference"`
}

type openingHours struct {
	OpenNow *bool `json:"open_now"`
}

type geometry struct {
	Location domain.LatLng `json:"location"`
}

// mapResult converts a wire place result to the domain model
func mapResult(r *placeResult) *domain.Place {
	place := &domain.Place{
		PlaceID:     r.PlaceID,
		Name:        r.Name,
		Address:     r.FormattedAddress,
		Phone:       r.FormattedPhone,
		Website:     r.Website,
		Rating:      r.Rating,
		ReviewCount: r.UserRatingsTotal,
		PriceLevel:  r.PriceLevel,
		Types:       r.Types,
		PhotoCount:  len(r.Photos),
		Location:    r.Geometry.Location,
	}
	if place.Address == "" {
		place.Address = r.Vicinity
	}
	if r.OpeningHours != nil {
		place.OpenNow = r.OpeningHours.OpenNow
	}
	return place
}

// mapCompetitors converts nearby search results to competitor records
func mapCompetitors(results []placeResult) []domain.Competitor {
	competitors := make([]domain.Competitor, 0, len(results))
	for _, r := range results {
		address := r.FormattedAddress
		if address == "" {
			address = r.Vicinity
		}
		competitors = append(competitors, domain.Competitor{
			PlaceID:     r.PlaceID,
			Name:        r.Name,
			Address:     address,
			Rating:      r.Rating,
			ReviewCount: r.UserRatingsTotal,
		})
	}
	return competitors
}
