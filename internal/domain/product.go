package domain

// ProductReview is the aggregate built from one scraped review page:
// the product summary plus its reviews in page order. It is a value
// object, constructed once per scrape and never mutated.
type ProductReview struct {
	ProductTitle    string            `json:"product_title"`
	AverageRating   float64           `json:"average_rating"`
	NumberOfReviews int               `json:"number_of_reviews"`
	Histogram       map[string]string `json:"histogram"`
	NextPage        *string           `json:"next_page"`
	Reviews         []Review          `json:"reviews"`
}
