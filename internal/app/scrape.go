package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"amazon_reviews/internal/adapters/observability"
	"amazon_reviews/internal/domain"
)

// ScrapeService runs the whole pipeline for one page URL:
// fetch -> extract -> normalize/assemble -> persist. One synchronous pass,
// no retries, no caching; concurrent calls are independent.
type ScrapeService struct {
	fetcher   domain.PageFetcher
	extractor domain.FieldExtractor
	repo      domain.ReviewRepository
}

func NewScrapeService(f domain.PageFetcher, e domain.FieldExtractor, r domain.ReviewRepository) *ScrapeService {
	return &ScrapeService{fetcher: f, extractor: e, repo: r}
}

// Scrape returns the assembled aggregate on success. All failure modes
// (blocked page, fetch error, normalization error, store error) surface as
// an error; field-level diagnostics go to the log only.
func (s *ScrapeService) Scrape(ctx context.Context, pageURL string) (domain.ProductReview, error) {
	log.Info().Str("url", pageURL).Msg("downloading page")

	markup, err := s.fetcher.FetchPage(ctx, pageURL)
	if err != nil {
		observability.ObserveScrape("fetch_failed")
		log.Warn().Str("url", pageURL).Err(err).Msg("fetch failed")
		return domain.ProductReview{}, err
	}

	raw, err := s.extractor.Extract(markup, pageURL)
	if err != nil {
		observability.ObserveScrape("extract_failed")
		log.Warn().Str("url", pageURL).Err(err).Msg("extraction failed")
		return domain.ProductReview{}, fmt.Errorf("extract %s: %w", pageURL, err)
	}

	pr, err := AssembleProductReview(raw, pageURL)
	if err != nil {
		observability.ObserveScrape("normalize_failed")
		log.Warn().Str("url", pageURL).Err(err).Msg("normalization failed")
		return domain.ProductReview{}, err
	}

	productID, err := s.repo.SaveProductReview(ctx, pr)
	if err != nil {
		observability.ObserveScrape("persist_failed")
		log.Warn().Str("url", pageURL).Err(err).Msg("persistence failed")
		return domain.ProductReview{}, fmt.Errorf("persist %s: %w", pageURL, err)
	}

	observability.ObserveScrape("ok")
	log.Info().
		Str("url", pageURL).
		Int64("product_id", productID).
		Str("product", pr.ProductTitle).
		Int("reviews", len(pr.Reviews)).
		Msg("scrape persisted")
	return pr, nil
}
