package models

// Service is one bookable offering. The catalog is loaded from config at
// startup and never changes while the process runs.
type Service struct {
	Key          string `yaml:"key" json:"key"`
	Title        string `yaml:"title" json:"title"`
	Description  string `yaml:"description,omitempty" json:"description,omitempty"`
	DurationMin  int    `yaml:"duration_min" json:"durationMin"`
	PriceFromTRY int    `yaml:"price_from_try" json:"priceFromTRY"`
	// PriceToTRY > 0 means the price is quoted as a range.
	PriceToTRY int `yaml:"price_to_try,omitempty" json:"priceToTRY,omitempty"`
}
