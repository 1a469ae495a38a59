package domain

// LatLng is a geographic coordinate pair
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Place represents the resolved business profile as returned by the
// places API (profile fields drive the completeness checklist)
type Place struct {
	PlaceID     string   `json:"placeId"`
	Name        string   `json:"name"`
	Address     string   `json:"address"`
	Phone       string   `json:"phone,omitempty"`
	Website     string   `json:"website,omitempty"`
	Rating      float64  `json:"rating"`
	ReviewCount int      `json:"reviewCount"`
	PriceLevel  int      `json:"priceLevel"`
	Types       []string `json:"types,omitempty"`
	PhotoCount  int      `json:"photoCount"`
	OpenNow     *bool    `json:"openNow,omitempty"`
	Location    LatLng   `json:"location"`
}

// Competitor is a nearby venue from the places nearby search
type Competitor struct {
	PlaceID     string  `json:"placeId"`
	Name        string  `json:"name"`
	Address     string  `json:"address"`
	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"reviewCount"`
	Distance    float64 `json:"distanceMeters,omitempty"`
}

// RankEntry is a single result from the local-search ranking API
type RankEntry struct {
	Position    int     `json:"position"`
	PlaceID     string  `json:"placeId,omitempty"`
	Title       string  `json:"title"`
	Rating      float64 `json:"rating,omitempty"`
	ReviewCount int     `json:"reviewCount,omitempty"`
}

// RankBucket is the coarse local-search position classification
type RankBucket string

const (
	RankTop3 RankBucket = "top3"
	RankMid  RankBucket = "4-10"
	RankNone RankBucket = "none"
)

// PageSignals holds the basic SEO signals extracted from a website homepage
type PageSignals struct {
	URL               string `json:"url"`
	HTTPS             bool   `json:"https"`
	Title             string `json:"title,omitempty"`
	MetaDescription   string `json:"metaDescription,omitempty"`
	HasH1             bool   `json:"hasH1"`
	HasViewportMeta   bool   `json:"hasViewportMeta"`
	HasPhoneText      bool   `json:"hasPhoneText"`
	HasMenuLink       bool   `json:"hasMenuLink"`
	HasStructuredData bool   `json:"hasStructuredData"`
}
