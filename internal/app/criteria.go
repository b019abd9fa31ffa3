package app

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"resto_dashboard/internal/domain"
)

const (
	MinRating = 1
	MaxRating = 5
)

// FullCriteria selects the whole dataset.
func FullCriteria() domain.Criteria {
	return domain.Criteria{RatingMin: MinRating, RatingMax: MaxRating, Restaurant: AllRestaurants}
}

// NewCriteria validates UI-style inputs: an integer rating range within 1..5 and
// optional YYYY-MM-DD dates. Empty dates leave that side open.
func NewCriteria(lo, hi int, restaurant, start, end string) (domain.Criteria, error) {
	if lo < MinRating || hi > MaxRating || lo > hi {
		return domain.Criteria{}, fmt.Errorf("%w: rating range [%d,%d] must lie within [%d,%d] with min <= max",
			domain.ErrInvalidCriteria, lo, hi, MinRating, MaxRating)
	}
	c := domain.Criteria{RatingMin: float64(lo), RatingMax: float64(hi), Restaurant: strings.TrimSpace(restaurant)}
	if IsAll(c.Restaurant) {
		c.Restaurant = AllRestaurants
	}

	var err error
	if c.From, err = parseDay(start); err != nil {
		return domain.Criteria{}, fmt.Errorf("%w: start: %v", domain.ErrInvalidCriteria, err)
	}
	if c.To, err = parseDay(end); err != nil {
		return domain.Criteria{}, fmt.Errorf("%w: end: %v", domain.ErrInvalidCriteria, err)
	}
	if !c.From.IsZero() && !c.To.IsZero() && c.From.After(c.To) {
		return domain.Criteria{}, fmt.Errorf("%w: start %s is after end %s",
			domain.ErrInvalidCriteria, start, end)
	}
	return c, nil
}

// ParseCriteria reads min_rating, max_rating, restaurant, start and end from q.
func ParseCriteria(q url.Values) (domain.Criteria, error) {
	atoi := func(k string, def int) (int, error) {
		v := strings.TrimSpace(q.Get(k))
		if v == "" {
			return def, nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidCriteria, k)
		}
		return n, nil
	}
	lo, err := atoi("min_rating", MinRating)
	if err != nil {
		return domain.Criteria{}, err
	}
	hi, err := atoi("max_rating", MaxRating)
	if err != nil {
		return domain.Criteria{}, err
	}
	return NewCriteria(lo, hi, q.Get("restaurant"), q.Get("start"), q.Get("end"))
}

func parseDay(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(domain.DateLayout, s)
}
