package domain

import "time"

// Review is one normalized customer review, denormalized with the product
// title and page URL it was scraped from. Pointer fields distinguish
// "absent on the page" from empty.
type Review struct {
	Author           string    `json:"author"`
	Content          string    `json:"content"`
	Date             time.Time `json:"date"`
	FoundHelpful     *string   `json:"found_helpful"`
	Images           *string   `json:"images"` // newline-joined URLs, nil when none
	Product          string    `json:"product"`
	Rating           *float64  `json:"rating"` // nil when the raw title was absent
	Title            string    `json:"title"`
	URL              string    `json:"url"`
	Variant          *string   `json:"variant"`
	VerifiedPurchase *bool     `json:"verified_purchase,omitempty"`
}
