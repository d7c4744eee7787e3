package app

import (
	"amazon_reviews/internal/domain"
)

/********** raw value access helpers **********/

// rawStr returns the string at key, or "" when absent or not a string.
func rawStr(m map[string]any, key string) string {
	if s, ok := m[key].(string); ok {
		return s
	}
	return ""
}

// rawStrPtr returns a pointer to the string at key, nil when absent/empty.
func rawStrPtr(m map[string]any, key string) *string {
	if s, ok := m[key].(string); ok && s != "" {
		return &s
	}
	return nil
}

// rawList returns the list at key, or nil.
func rawList(m map[string]any, key string) []any {
	if l, ok := m[key].([]any); ok {
		return l
	}
	return nil
}

// rawStrings coerces a list value into its string elements.
func rawStrings(m map[string]any, key string) []string {
	l := rawList(m, key)
	out := make([]string, 0, len(l))
	for _, v := range l {
		if s, ok := v.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}

/********** record assembler **********/

// AssembleProductReview combines the raw field mapping of one page into the
// ProductReview aggregate. Assembly is all-or-nothing: the first field that
// fails normalization aborts with a NormalizationError naming it, and no
// partial aggregate is returned. The product title and the request URL are
// stamped onto every review.
func AssembleProductReview(raw domain.RawFields, pageURL string) (domain.ProductReview, error) {
	avg, err := ParseAverageRating(rawStr(raw, domain.FieldAverageRating))
	if err != nil {
		return domain.ProductReview{}, err
	}
	count, err := ParseReviewCount(rawStr(raw, domain.FieldNumberOfReviews))
	if err != nil {
		return domain.ProductReview{}, err
	}

	pr := domain.ProductReview{
		ProductTitle:    rawStr(raw, domain.FieldProductTitle),
		AverageRating:   avg,
		NumberOfReviews: count,
		Histogram:       BuildHistogram(rawList(raw, domain.FieldHistogram)),
		NextPage:        rawStrPtr(raw, domain.FieldNextPage),
	}

	rawReviews := rawList(raw, domain.FieldReviews)
	pr.Reviews = make([]domain.Review, 0, len(rawReviews))
	for _, item := range rawReviews {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		rv, err := assembleReview(m, pr.ProductTitle, pageURL)
		if err != nil {
			return domain.ProductReview{}, err
		}
		pr.Reviews = append(pr.Reviews, rv)
	}
	return pr, nil
}

func assembleReview(m map[string]any, productTitle, pageURL string) (domain.Review, error) {
	rv := domain.Review{
		Author:       rawStr(m, "author"),
		Content:      rawStr(m, "content"),
		FoundHelpful: rawStrPtr(m, "found_helpful"),
		Variant:      rawStrPtr(m, "variant"),
		Product:      productTitle,
		URL:          pageURL,
	}

	// Badge absent -> field omitted entirely, not false.
	if v, ok := m["verified_purchase"]; ok && v != nil {
		verified := ParseVerifiedPurchase(rawStr(m, "verified_purchase"))
		rv.VerifiedPurchase = &verified
	}

	rating, title, err := ParseRatingTitle(rawStr(m, "title"))
	if err != nil {
		return domain.Review{}, err
	}
	rv.Rating = rating
	rv.Title = title

	date, err := ParseReviewDate(rawStr(m, "date"))
	if err != nil {
		return domain.Review{}, err
	}
	rv.Date = date

	rv.Images = JoinImageURLs(rawStrings(m, "images"))
	return rv, nil
}
