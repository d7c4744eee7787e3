package mysql

import (
	"context"
	"database/sql"
	"fmt"
)

// schemaContract is the column set each insert statement assumes. Checked
// once at startup so a drifted schema fails fast instead of at the first
// scrape.
var schemaContract = map[string][]string{
	"products": {"id", "title", "average_rating", "number_of_reviews", "next_page"},
	"reviews": {
		"id", "product_id", "product_title", "author", "content", "date",
		"found_helpful", "images", "rating", "title", "url", "variant",
		"verified_purchase",
	},
}

// ValidateSchema verifies that every column the repo writes exists in the
// connected database.
func ValidateSchema(ctx context.Context, db *sql.DB) error {
	for table, required := range schemaContract {
		have, err := tableColumns(ctx, db, table)
		if err != nil {
			return err
		}
		for _, col := range required {
			if _, ok := have[col]; !ok {
				return fmt.Errorf("schema check: %s.%s missing", table, col)
			}
		}
	}
	return nil
}

func tableColumns(ctx context.Context, db *sql.DB, table string) (map[string]struct{}, error) {
	rows, err := db.QueryContext(ctx, schemaColumnsSQL, table)
	if err != nil {
		return nil, fmt.Errorf("schema check %s: %w", table, err)
	}
	defer rows.Close()

	out := make(map[string]struct{})
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out[name] = struct{}{}
	}
	return out, rows.Err()
}
