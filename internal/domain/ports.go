package domain

import (
	"context"
	"fmt"
	"time"
)

// ReviewSource yields the raw review table (CSV file, HTTP download, MySQL table).
type ReviewSource interface {
	Name() string
	Read(ctx context.Context) (RawTable, error)
}

type ReviewRepository interface {
	// Write paths
	// extraColumns names the values of Review.Extra.
	UpsertReviews(ctx context.Context, extraColumns []string, rs []Review) error
	LogReject(ctx context.Context, source string, r Reject) error

	// Read path
	CountReviews(ctx context.Context) (int, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// Criteria selects a filtered view. Zero From/To leave that side open.
type Criteria struct {
	RatingMin  float64
	RatingMax  float64
	Restaurant string
	From, To   time.Time
}

// Key is a stable string form used for cache keys.
func (c Criteria) Key() string {
	return fmt.Sprintf("%g:%g:%s:%s:%s", c.RatingMin, c.RatingMax, c.Restaurant,
		dateKey(c.From), dateKey(c.To))
}

func dateKey(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format(DateLayout)
}

// DateLayout is the canonical calendar date format for query params and export.
const DateLayout = "2006-01-02"

// Read models

type Stats struct {
	Total       int      `json:"total"`
	MeanRating  *float64 `json:"mean_rating"`
	PositivePct *float64 `json:"positive_pct"`
	NeutralPct  *float64 `json:"neutral_pct"`
	NegativePct *float64 `json:"negative_pct"`
}

type Bucket struct {
	Rating float64 `json:"rating"`
	Count  int     `json:"count"`
}

type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

type Point struct {
	Rating        float64 `json:"rating"`
	CommentLength int     `json:"comment_length"`
}

type SentimentCounts struct {
	Restaurant string `json:"restaurant"`
	Positive   int    `json:"positive"`
	Neutral    int    `json:"neutral"`
	Negative   int    `json:"negative"`
}

type DashboardView struct {
	Fingerprint  string      `json:"fingerprint"`
	Stats        Stats       `json:"stats"`
	Distribution []Bucket    `json:"distribution"`
	Words        []WordCount `json:"words"`
	Scatter      []Point     `json:"scatter"`
}

type ReviewRow struct {
	Review
	CommentLength int `json:"comment_length"`
}

type ReviewsPage struct {
	Items      []ReviewRow `json:"items"`
	Total      int         `json:"total"`
	NextOffset *int        `json:"next_offset"`
}

type Meta struct {
	Source      string     `json:"source"`
	Fingerprint string     `json:"fingerprint"`
	LoadedAt    time.Time  `json:"loaded_at"`
	Rows        int        `json:"rows"`
	Kept        int        `json:"kept"`
	Dropped     int        `json:"dropped"`
	Restaurants []string   `json:"restaurants"`
	MinDate     *time.Time `json:"min_date"`
	MaxDate     *time.Time `json:"max_date"`
}
