package app_test

import (
	"context"
	"errors"
	"testing"

	"amazon_reviews/internal/app"
	"amazon_reviews/internal/domain"
)

// ---- fakes ----

type fakeFetcher struct {
	markup string
	err    error
	calls  int
}

func (f *fakeFetcher) FetchPage(ctx context.Context, pageURL string) (string, error) {
	f.calls++
	return f.markup, f.err
}

type fakeExtractor struct {
	raw domain.RawFields
	err error
}

func (f *fakeExtractor) Extract(markup, baseURL string) (domain.RawFields, error) {
	return f.raw, f.err
}

type fakeRepo struct {
	saved  []domain.ProductReview
	nextID int64
	err    error
}

func (f *fakeRepo) SaveProductReview(ctx context.Context, pr domain.ProductReview) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.saved = append(f.saved, pr)
	f.nextID++
	return f.nextID, nil
}

func newService(fe *fakeFetcher, ex *fakeExtractor, repo *fakeRepo) *app.ScrapeService {
	return app.NewScrapeService(fe, ex, repo)
}

// ---- tests ----

func TestScrape_PersistsAggregate(t *testing.T) {
	repo := &fakeRepo{}
	svc := newService(&fakeFetcher{markup: "<html/>"}, &fakeExtractor{raw: rawPage()}, repo)

	pr, err := svc.Scrape(context.Background(), pageURL)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(repo.saved) != 1 {
		t.Fatalf("saved = %d aggregates", len(repo.saved))
	}
	got := repo.saved[0]
	if len(got.Reviews) != 2 || got.Reviews[0].Author != "Alice" || got.Reviews[1].Author != "Bob" {
		t.Fatalf("persisted reviews: %+v", got.Reviews)
	}
	if pr.ProductTitle != got.ProductTitle {
		t.Fatalf("returned aggregate differs from persisted one")
	}
}

func TestScrape_NoIdempotency(t *testing.T) {
	// two identical calls persist two independent aggregates; dedup is
	// deliberately not offered
	repo := &fakeRepo{}
	svc := newService(&fakeFetcher{markup: "<html/>"}, &fakeExtractor{raw: rawPage()}, repo)

	for i := 0; i < 2; i++ {
		if _, err := svc.Scrape(context.Background(), pageURL); err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
	}
	if len(repo.saved) != 2 {
		t.Fatalf("saved = %d, want 2", len(repo.saved))
	}
}

func TestScrape_BlockedPage(t *testing.T) {
	repo := &fakeRepo{}
	svc := newService(&fakeFetcher{err: domain.ErrBlocked}, &fakeExtractor{}, repo)

	_, err := svc.Scrape(context.Background(), pageURL)
	if !errors.Is(err, domain.ErrBlocked) {
		t.Fatalf("err = %v", err)
	}
	if len(repo.saved) != 0 {
		t.Fatal("nothing should be persisted on a blocked fetch")
	}
}

func TestScrape_NormalizationFailureSkipsPersistence(t *testing.T) {
	raw := rawPage()
	raw["average_rating"] = "unknown"
	repo := &fakeRepo{}
	svc := newService(&fakeFetcher{markup: "<html/>"}, &fakeExtractor{raw: raw}, repo)

	_, err := svc.Scrape(context.Background(), pageURL)
	var ne *domain.NormalizationError
	if !errors.As(err, &ne) {
		t.Fatalf("err = %v", err)
	}
	if len(repo.saved) != 0 {
		t.Fatal("nothing should be persisted when normalization fails")
	}
}

func TestScrape_PersistenceFailure(t *testing.T) {
	repo := &fakeRepo{err: errors.New("store down")}
	svc := newService(&fakeFetcher{markup: "<html/>"}, &fakeExtractor{raw: rawPage()}, repo)

	if _, err := svc.Scrape(context.Background(), pageURL); err == nil {
		t.Fatal("expected error when the store rejects the insert")
	}
}
