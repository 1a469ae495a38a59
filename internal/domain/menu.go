package domain

// Channel identifies where a menu was sourced from
type Channel string

const (
	ChannelDineIn   Channel = "dinein"
	ChannelDelivery Channel = "delivery"
)

// MenuItem is a single priced item extracted from a menu page.
// Price of 0 means the item was listed without a price.
type MenuItem struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Category string  `json:"category,omitempty"`
	Channel  Channel `json:"channel"`
}
