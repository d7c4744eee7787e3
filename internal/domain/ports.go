package domain

import "context"

// PageFetcher downloads one review page and returns its markup.
type PageFetcher interface {
	FetchPage(ctx context.Context, pageURL string) (string, error)
}

// FieldExtractor locates the raw fields in page markup. The selector
// definitions behind it are opaque to the pipeline; only the field names
// in raw.go are part of the contract.
type FieldExtractor interface {
	Extract(markup, baseURL string) (RawFields, error)
}

// ReviewRepository durably stores one aggregate: one product row plus one
// review row per review, each review carrying the store-generated product
// identifier. Returns that identifier on success.
type ReviewRepository interface {
	SaveProductReview(ctx context.Context, pr ProductReview) (int64, error)
}
