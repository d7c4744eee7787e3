package app

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"amazon_reviews/internal/domain"
)

/********** field normalizers (pure, one raw value -> one typed value) **********/

// ParseAverageRating handles strings like "4.8 out of 5 stars": everything
// left of " out" is the float value.
func ParseAverageRating(raw string) (float64, error) {
	left, _, _ := strings.Cut(raw, " out")
	f, err := strconv.ParseFloat(strings.TrimSpace(left), 64)
	if err != nil {
		return 0, &domain.NormalizationError{Field: "average_rating", Value: raw, Err: err}
	}
	if f < 1.0 || f > 5.0 {
		return 0, &domain.NormalizationError{Field: "average_rating", Value: raw, Err: fmt.Errorf("rating %v outside [1,5]", f)}
	}
	return f, nil
}

// ParseReviewCount handles comma-grouped counts like "1,234 global ratings":
// take the part before "global", strip separators, parse as integer.
func ParseReviewCount(raw string) (int, error) {
	left, _, _ := strings.Cut(raw, "global")
	s := strings.ReplaceAll(strings.TrimSpace(left), ",", "")
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, &domain.NormalizationError{Field: "number_of_reviews", Value: raw, Err: err}
	}
	if n < 0 {
		return 0, &domain.NormalizationError{Field: "number_of_reviews", Value: raw, Err: fmt.Errorf("negative count %d", n)}
	}
	return n, nil
}

// ParseRatingTitle splits a composite review title of the form
// "<rating> out of 5 stars <title>" into its rating and display title.
// An empty raw value is a genuinely title-less review: nil rating, empty
// title, no error.
func ParseRatingTitle(raw string) (*float64, string, error) {
	if raw == "" {
		return nil, "", nil
	}
	left, _, _ := strings.Cut(raw, "out of")
	f, err := strconv.ParseFloat(strings.TrimSpace(left), 64)
	if err != nil {
		return nil, "", &domain.NormalizationError{Field: "rating", Value: raw, Err: err}
	}
	if f < 1.0 || f > 5.0 {
		return nil, "", &domain.NormalizationError{Field: "rating", Value: raw, Err: fmt.Errorf("rating %v outside [1,5]", f)}
	}
	_, after, ok := strings.Cut(raw, "stars")
	if !ok {
		return nil, "", &domain.NormalizationError{Field: "title", Value: raw, Err: fmt.Errorf("missing %q separator", "stars")}
	}
	return &f, strings.TrimSpace(after), nil
}

// ParseReviewDate strips any locale wording up to the last "on " (e.g.
// "Reviewed in the United States on 5 January 2023"), parses the remainder
// as a free-form calendar date, and canonicalizes to UTC midnight.
func ParseReviewDate(raw string) (time.Time, error) {
	datePart := raw
	if i := strings.LastIndex(raw, "on "); i >= 0 {
		datePart = raw[i+len("on "):]
	}
	t, err := dateparse.ParseAny(strings.TrimSpace(datePart))
	if err != nil {
		return time.Time{}, &domain.NormalizationError{Field: "date", Value: raw, Err: err}
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// ParseVerifiedPurchase: true iff the badge text contains the exact phrase.
func ParseVerifiedPurchase(raw string) bool {
	return strings.Contains(raw, "Verified Purchase")
}

// JoinImageURLs serializes an ordered URL list as one newline-joined string,
// or nil when the list is empty.
func JoinImageURLs(urls []string) *string {
	if len(urls) == 0 {
		return nil
	}
	s := strings.Join(urls, "\n")
	return &s
}

// BuildHistogram folds extracted {key, value} pairs into a map. Last write
// wins on duplicate keys. Absent histogram yields an empty map.
func BuildHistogram(entries []any) map[string]string {
	out := make(map[string]string, len(entries))
	for _, e := range entries {
		pair, ok := e.(map[string]any)
		if !ok {
			continue
		}
		k, _ := pair["key"].(string)
		if k == "" {
			continue
		}
		v, _ := pair["value"].(string)
		out[k] = v
	}
	return out
}
