package mysql

const insertProductSQL = `
INSERT INTO products
  (title, average_rating, number_of_reviews, next_page)
VALUES
  (?, ?, ?, ?)
`

// Note: date collides with the DATE keyword; keep it backtick-quoted everywhere.
const insertReviewSQL = "INSERT INTO reviews\n" +
	"  (product_id, product_title, author, content, `date`, found_helpful, images, rating, title, url, variant, verified_purchase)\n" +
	"VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"

// schemaColumnsSQL lists the columns of one table in the current database,
// used by the startup schema check.
const schemaColumnsSQL = `
SELECT COLUMN_NAME
FROM information_schema.COLUMNS
WHERE TABLE_SCHEMA = DATABASE() AND TABLE_NAME = ?
`
