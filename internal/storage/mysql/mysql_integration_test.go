//go:build integration || !unit

package mysql_test

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	"amazon_reviews/internal/domain"
	mysqlrepo "amazon_reviews/internal/storage/mysql"
)

// ---------- small helpers ----------
func pstr(s string) *string { return &s }
func pbool(b bool) *bool    { return &b }
func pf64(f float64) *float64 {
	return &f
}

func startMySQL(t *testing.T) *sql.DB {
	t.Helper()

	// Start isolated MySQL; let Docker pick a free host port.
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}

	runOpts := &dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=scraper",
		},
	}
	resource, err := pool.RunWithOptions(runOpts, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	hostPort := resource.GetPort("3306/tcp")
	dsn := fmt.Sprintf("root:root@tcp(127.0.0.1:%s)/scraper?parseTime=true&multiStatements=true&charset=utf8mb4,utf8&loc=UTC",
		hostPort)

	var db *sql.DB
	if err := pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := mysqlrepo.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := mysqlrepo.ValidateSchema(context.Background(), db); err != nil {
		t.Fatalf("schema check: %v", err)
	}
	return db
}

func sampleAggregate() domain.ProductReview {
	return domain.ProductReview{
		ProductTitle:    "Acme Widget",
		AverageRating:   4.8,
		NumberOfReviews: 1234,
		Histogram:       map[string]string{"5 star": "84%"},
		NextPage:        pstr("https://www.amazon.com/product-reviews/B000TEST?pageNumber=2"),
		Reviews: []domain.Review{
			{
				Author:           "Alice",
				Content:          "Works as advertised.",
				Date:             time.Date(2023, time.January, 5, 0, 0, 0, 0, time.UTC),
				Images:           pstr("https://img/1.jpg\nhttps://img/2.jpg"),
				Product:          "Acme Widget",
				Rating:           pf64(5.0),
				Title:            "Love it",
				URL:              "https://www.amazon.com/product-reviews/B000TEST",
				Variant:          pstr("Color: Black"),
				VerifiedPurchase: pbool(true),
				FoundHelpful:     pstr("12 people found this helpful"),
			},
			{
				Author:  "Bob",
				Content: "",
				Date:    time.Date(2023, time.March, 7, 0, 0, 0, 0, time.UTC),
				Product: "Acme Widget",
				Title:   "",
				URL:     "https://www.amazon.com/product-reviews/B000TEST",
			},
		},
	}
}

// ---------- the test ----------
func TestRepo_MySQL_SaveProductReview(t *testing.T) {
	db := startMySQL(t)
	repo := mysqlrepo.New(db)
	ctx := context.Background()

	productID, err := repo.SaveProductReview(ctx, sampleAggregate())
	if err != nil {
		t.Fatalf("SaveProductReview: %v", err)
	}
	if productID == 0 {
		t.Fatal("expected a generated product id")
	}

	// exactly one product row with the normalized fields
	var title string
	var avg float64
	var count int
	if err := db.QueryRowContext(ctx,
		"SELECT title, average_rating, number_of_reviews FROM products WHERE id = ?", productID,
	).Scan(&title, &avg, &count); err != nil {
		t.Fatalf("product row: %v", err)
	}
	if title != "Acme Widget" || avg != 4.8 || count != 1234 {
		t.Fatalf("product row = %q %v %d", title, avg, count)
	}

	// both review rows reference the generated product id, in insertion order
	rows, err := db.QueryContext(ctx,
		"SELECT product_id, author, rating, verified_purchase FROM reviews WHERE product_id = ? ORDER BY id", productID)
	if err != nil {
		t.Fatalf("review rows: %v", err)
	}
	defer rows.Close()

	var authors []string
	for rows.Next() {
		var pid int64
		var author string
		var rating sql.NullFloat64
		var verified sql.NullBool
		if err := rows.Scan(&pid, &author, &rating, &verified); err != nil {
			t.Fatalf("scan: %v", err)
		}
		if pid != productID {
			t.Fatalf("review product_id = %d, want %d", pid, productID)
		}
		authors = append(authors, author)
		if author == "Alice" {
			if !rating.Valid || rating.Float64 != 5.0 {
				t.Fatalf("Alice rating = %+v", rating)
			}
			if !verified.Valid || !verified.Bool {
				t.Fatalf("Alice verified = %+v", verified)
			}
		}
		if author == "Bob" {
			if rating.Valid {
				t.Fatalf("Bob rating should be NULL, got %v", rating.Float64)
			}
			if verified.Valid {
				t.Fatalf("Bob verified_purchase should be NULL")
			}
		}
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("rows: %v", err)
	}
	if len(authors) != 2 || authors[0] != "Alice" || authors[1] != "Bob" {
		t.Fatalf("authors = %v", authors)
	}
}

func TestRepo_MySQL_NoIdempotency(t *testing.T) {
	db := startMySQL(t)
	repo := mysqlrepo.New(db)
	ctx := context.Background()

	// two identical saves, two distinct product rows: dedup is deliberately
	// not offered
	id1, err := repo.SaveProductReview(ctx, sampleAggregate())
	if err != nil {
		t.Fatalf("first save: %v", err)
	}
	id2, err := repo.SaveProductReview(ctx, sampleAggregate())
	if err != nil {
		t.Fatalf("second save: %v", err)
	}
	if id1 == id2 {
		t.Fatalf("expected distinct product ids, both %d", id1)
	}

	var products, reviews int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM products").Scan(&products); err != nil {
		t.Fatalf("count products: %v", err)
	}
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM reviews").Scan(&reviews); err != nil {
		t.Fatalf("count reviews: %v", err)
	}
	if products != 2 || reviews != 4 {
		t.Fatalf("rows = %d products, %d reviews", products, reviews)
	}
}
