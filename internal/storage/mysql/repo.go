package mysql

import (
	"context"
	"database/sql"
	"fmt"

	"amazon_reviews/internal/domain"
)

func valStr(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

func valBool(p *bool) any {
	if p == nil {
		return nil
	}
	return *p
}

func valF64(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// SaveProductReview stores the aggregate as one product row plus one review
// row per review, in extraction order, all carrying the generated product
// identifier. Both inserts run in one transaction: a failure anywhere rolls
// everything back, so the store never holds a product with a partial review
// set. Every call creates a fresh product row; there is no dedup.
func (r *Repo) SaveProductReview(ctx context.Context, pr domain.ProductReview) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, insertProductSQL,
		pr.ProductTitle,
		pr.AverageRating,
		pr.NumberOfReviews,
		valStr(pr.NextPage),
	)
	if err != nil {
		return 0, fmt.Errorf("insert product: %w", err)
	}
	productID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("product id: %w", err)
	}

	for i, rv := range pr.Reviews {
		_, err := tx.ExecContext(ctx, insertReviewSQL,
			productID,
			rv.Product,
			rv.Author,
			rv.Content,
			rv.Date,
			valStr(rv.FoundHelpful),
			valStr(rv.Images),
			valF64(rv.Rating),
			rv.Title,
			rv.URL,
			valStr(rv.Variant),
			valBool(rv.VerifiedPurchase),
		)
		if err != nil {
			return 0, fmt.Errorf("insert review %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return productID, nil
}
