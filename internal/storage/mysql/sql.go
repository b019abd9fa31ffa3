package mysql

const insertReviewsPrefix = `
INSERT INTO reviews
  (row_hash, restaurant_name, comment, rating, review_date, sentiment, source_line, extra)
VALUES `

// Re-importing the same row refreshes its label and position only.
const insertReviewsOnDup = `
ON DUPLICATE KEY UPDATE
  sentiment   = VALUES(sentiment),
  source_line = VALUES(source_line),
  extra       = VALUES(extra),
  updated_at  = CURRENT_TIMESTAMP`

// One row per source line; a re-import refreshes the reason.
const insertRejectSQL = `
INSERT INTO ingest_rejects (source, line, reason)
VALUES (?, ?, ?)
ON DUPLICATE KEY UPDATE
  reason     = VALUES(reason),
  created_at = CURRENT_TIMESTAMP`

const countReviewsSQL = `SELECT COUNT(*) FROM reviews`

// Oldest first so the loaded table reads like the original file.
const selectReviewsSQL = `
SELECT restaurant_name, comment, rating, review_date, extra
FROM reviews
ORDER BY review_date, id`

const countRejectsSQL = `SELECT COUNT(*) FROM ingest_rejects WHERE source = ?`
