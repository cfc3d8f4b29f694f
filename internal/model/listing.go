package model

// Record is the raw listing shape returned by a store channel. Price
// arrives as a numeric string, matching the upstream document schema.
type Record struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       string   `json:"price"`
	ImageURLs   []string `json:"image_urls"`
	Latitude    float64  `json:"latitude"`
	Longitude   float64  `json:"longitude"`
}

// Coordinates is a listing centroid.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Summary is the normalized listing shape attached to assistant
// messages. Built fresh per query and never cached beyond one reply.
type Summary struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Price       int64        `json:"price"`
	Images      []string     `json:"images"`
	Beds        int          `json:"beds"`
	Baths       int          `json:"baths"`
	Area        int          `json:"area"`
	Category    Category     `json:"category,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}
