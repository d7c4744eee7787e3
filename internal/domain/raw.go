package domain

// RawFields is the untyped field mapping produced by markup extraction,
// before any normalization. Values are string, []any (lists of strings or
// nested maps for repeated child selectors), or nil when a selector
// matched nothing. Key presence is optional throughout.
type RawFields map[string]any

// Top-level field names the extractor is expected to produce.
const (
	FieldProductTitle    = "product_title"
	FieldAverageRating   = "average_rating"
	FieldNumberOfReviews = "number_of_reviews"
	FieldHistogram       = "histogram"
	FieldNextPage        = "next_page"
	FieldReviews         = "reviews"
)
