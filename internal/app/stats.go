package app

import (
	"sort"
	"strings"
	"time"
	"unicode"

	"resto_dashboard/internal/domain"
	"resto_dashboard/internal/sentiment"
)

// Summarize computes count, mean rating and sentiment shares.
// An empty input reports nil mean and percentages ("no data").
func Summarize(records []domain.Review) domain.Stats {
	st := domain.Stats{Total: len(records)}
	if len(records) == 0 {
		return st
	}
	var sum float64
	var pos, neu, neg int
	for _, rv := range records {
		sum += rv.Rating
		switch rv.Sentiment {
		case domain.Positive:
			pos++
		case domain.Neutral:
			neu++
		case domain.Negative:
			neg++
		}
	}
	n := float64(len(records))
	pct := func(k int) *float64 {
		v := float64(k) / n * 100
		return &v
	}
	mean := sum / n
	st.MeanRating = &mean
	st.PositivePct, st.NeutralPct, st.NegativePct = pct(pos), pct(neu), pct(neg)
	return st
}

// RatingDistribution counts records per distinct rating value, ascending.
func RatingDistribution(records []domain.Review) []domain.Bucket {
	counts := map[float64]int{}
	for _, rv := range records {
		counts[rv.Rating]++
	}
	out := make([]domain.Bucket, 0, len(counts))
	for r, n := range counts {
		out = append(out, domain.Bucket{Rating: r, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Rating < out[j].Rating })
	return out
}

// Corpus joins every comment with a single space, for word-cloud rendering.
func Corpus(records []domain.Review) string {
	var b strings.Builder
	for i, rv := range records {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(rv.Comment)
	}
	return b.String()
}

// WordFrequencies returns the most frequent words of text, skipping stop words,
// numbers and one-letter tokens. Ties are ordered alphabetically. limit <= 0 keeps all.
func WordFrequencies(text string, limit int) []domain.WordCount {
	counts := map[string]int{}
	for _, tok := range sentiment.Tokenize(text) {
		if len([]rune(tok)) < 2 || isStopWord(tok) || isNumber(tok) {
			continue
		}
		counts[tok]++
	}
	out := make([]domain.WordCount, 0, len(counts))
	for w, n := range counts {
		out = append(out, domain.WordCount{Word: w, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Word < out[j].Word
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func isNumber(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// Scatter pairs each rating with its comment length.
func Scatter(records []domain.Review) []domain.Point {
	out := make([]domain.Point, len(records))
	for i, rv := range records {
		out[i] = domain.Point{Rating: rv.Rating, CommentLength: CommentLength(rv.Comment)}
	}
	return out
}

// Restaurants lists distinct non-empty restaurant names in first-seen order.
func Restaurants(records []domain.Review) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, rv := range records {
		if rv.Restaurant == "" {
			continue
		}
		if _, ok := seen[rv.Restaurant]; ok {
			continue
		}
		seen[rv.Restaurant] = struct{}{}
		out = append(out, rv.Restaurant)
	}
	return out
}

// DateBounds returns the earliest and latest review date; ok is false when empty.
func DateBounds(records []domain.Review) (first, last time.Time, ok bool) {
	for i, rv := range records {
		if i == 0 || rv.Date.Before(first) {
			first = rv.Date
		}
		if i == 0 || rv.Date.After(last) {
			last = rv.Date
		}
	}
	return first, last, len(records) > 0
}

// SentimentByRestaurant counts labels per restaurant, ordered by review count desc.
func SentimentByRestaurant(records []domain.Review) []domain.SentimentCounts {
	idx := map[string]int{}
	var out []domain.SentimentCounts
	for _, rv := range records {
		i, ok := idx[rv.Restaurant]
		if !ok {
			i = len(out)
			idx[rv.Restaurant] = i
			out = append(out, domain.SentimentCounts{Restaurant: rv.Restaurant})
		}
		switch rv.Sentiment {
		case domain.Positive:
			out[i].Positive++
		case domain.Neutral:
			out[i].Neutral++
		case domain.Negative:
			out[i].Negative++
		}
	}
	total := func(s domain.SentimentCounts) int { return s.Positive + s.Neutral + s.Negative }
	sort.SliceStable(out, func(i, j int) bool { return total(out[i]) > total(out[j]) })
	return out
}
