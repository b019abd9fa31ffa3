package app

import (
	"strings"
	"unicode/utf8"

	"resto_dashboard/internal/domain"
)

// AllRestaurants selects every restaurant. "Semua" and "" are accepted too.
const AllRestaurants = "ALL"

func IsAll(restaurant string) bool {
	r := strings.TrimSpace(restaurant)
	return r == "" || strings.EqualFold(r, AllRestaurants) || strings.EqualFold(r, "semua")
}

// Match reports whether rv satisfies c. Bounds are inclusive.
func Match(c domain.Criteria, rv domain.Review) bool {
	if rv.Rating < c.RatingMin || rv.Rating > c.RatingMax {
		return false
	}
	if !c.From.IsZero() && rv.Date.Before(c.From) {
		return false
	}
	if !c.To.IsZero() && rv.Date.After(c.To) {
		return false
	}
	return IsAll(c.Restaurant) || rv.Restaurant == c.Restaurant
}

// Filter returns the matching records in their original order.
// The input slice is not modified; the result never aliases it.
func Filter(records []domain.Review, c domain.Criteria) []domain.Review {
	out := make([]domain.Review, 0, len(records)/4)
	for _, rv := range records {
		if Match(c, rv) {
			out = append(out, rv)
		}
	}
	return out
}

// CommentLength counts characters, not bytes.
func CommentLength(comment string) int { return utf8.RuneCountInString(comment) }

// WithLength attaches the comment length to each filtered record.
func WithLength(records []domain.Review) []domain.ReviewRow {
	out := make([]domain.ReviewRow, len(records))
	for i, rv := range records {
		out[i] = domain.ReviewRow{Review: rv, CommentLength: CommentLength(rv.Comment)}
	}
	return out
}
