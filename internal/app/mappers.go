package app

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"resto_dashboard/internal/domain"
)

/********** alias registry (single source of truth) **********/

// columnAliases lists accepted header spellings per canonical column.
var columnAliases = map[string][]string{
	domain.ColRestaurant: {"nama restoran", "nama_restoran", "restoran", "restaurant", "restaurant_name"},
	domain.ColComment:    {"komentar", "comment", "review", "ulasan"},
	domain.ColRating:     {"rating", "bintang", "stars", "score"},
	domain.ColDate:       {"tanggal", "date", "review_date"},
}

// derivedColumns are produced by export; they are recomputed, never carried as extras.
var derivedColumns = map[string]struct{}{
	strings.ToLower(domain.ColSentiment):     {},
	strings.ToLower(domain.ColCommentLength): {},
}

// dateLayouts are tried in order; month-first for ambiguous slash dates.
var dateLayouts = []string{
	domain.DateLayout,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006/01/02",
	"1/2/2006",
	"1/2/2006 15:04",
	"1/2/2006 15:04:05",
	"2 January 2006",
	"2 Jan 2006",
	"January 2, 2006",
	"Jan 2, 2006",
}

/********** header resolution **********/

// columnIndex maps canonical columns to their position in a header.
type columnIndex struct {
	restaurant, comment, rating, date int
	extra                             []int
	extraNames                        []string
	// header is the export column order: source order, core columns under
	// their canonical names, derived columns left out.
	header []string
}

func normHeader(h string) string {
	return strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
}

func resolveColumns(header []string) (columnIndex, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		if _, seen := pos[normHeader(h)]; !seen {
			pos[normHeader(h)] = i
		}
	}
	find := func(col string) (int, error) {
		for _, a := range columnAliases[col] {
			if i, ok := pos[a]; ok {
				return i, nil
			}
		}
		return -1, fmt.Errorf("%w: %q", domain.ErrMissingColumn, col)
	}

	var (
		ix  columnIndex
		err error
	)
	if ix.restaurant, err = find(domain.ColRestaurant); err != nil {
		return ix, err
	}
	if ix.comment, err = find(domain.ColComment); err != nil {
		return ix, err
	}
	if ix.rating, err = find(domain.ColRating); err != nil {
		return ix, err
	}
	if ix.date, err = find(domain.ColDate); err != nil {
		return ix, err
	}

	core := map[int]string{
		ix.restaurant: domain.ColRestaurant,
		ix.comment:    domain.ColComment,
		ix.rating:     domain.ColRating,
		ix.date:       domain.ColDate,
	}
	for i, h := range header {
		if name, ok := core[i]; ok {
			ix.header = append(ix.header, name)
			continue
		}
		if _, ok := derivedColumns[normHeader(h)]; ok {
			continue
		}
		name := strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		ix.extra = append(ix.extra, i)
		ix.extraNames = append(ix.extraNames, name)
		ix.header = append(ix.header, name)
	}
	return ix, nil
}

/********** coercion helpers **********/

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

// parseRating accepts "4", "4.5" and decimal-comma "4,5". NaN and Inf are rejected.
func parseRating(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// parseDate returns the calendar date at UTC midnight.
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, l := range dateLayouts {
		if t, err := time.Parse(l, s); err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

/********** row mapper **********/

// mapRow coerces one raw row; reason is non-empty when the row must be dropped.
func mapRow(ix columnIndex, row []string) (rv domain.Review, reason string) {
	rv.Restaurant = strings.TrimSpace(cell(row, ix.restaurant))
	rv.Comment = cell(row, ix.comment)
	// An empty cell is a missing value; whitespace is a comment.
	if rv.Comment == "" {
		return rv, "missing comment"
	}

	raw := cell(row, ix.rating)
	if strings.TrimSpace(raw) == "" {
		return rv, "missing rating"
	}
	r, ok := parseRating(raw)
	if !ok {
		return rv, "invalid rating"
	}
	rv.Rating = r

	d, ok := parseDate(cell(row, ix.date))
	if !ok {
		return rv, "invalid date"
	}
	rv.Date = d

	if len(ix.extra) > 0 {
		rv.Extra = make([]string, len(ix.extra))
		for k, i := range ix.extra {
			rv.Extra[k] = cell(row, i)
		}
	}
	return rv, ""
}
