package domain

import "time"

// Source column names as they appear in the scraped dataset.
const (
	ColRestaurant = "Nama Restoran"
	ColComment    = "Komentar"
	ColRating     = "Rating"
	ColDate       = "Tanggal"

	// derived columns appended on export
	ColSentiment     = "Sentiment"
	ColCommentLength = "Panjang Komentar"
)

// RequiredColumns must be present in every source header.
var RequiredColumns = []string{ColRestaurant, ColComment, ColRating, ColDate}

type Sentiment string

const (
	Positive Sentiment = "Positive"
	Neutral  Sentiment = "Neutral"
	Negative Sentiment = "Negative"
)

// Review is one cleaned, classified row. Never mutated after load.
type Review struct {
	Line       int       `json:"line"`
	Restaurant string    `json:"restaurant"`
	Comment    string    `json:"comment"`
	Rating     float64   `json:"rating"`
	Date       time.Time `json:"date"`
	Sentiment  Sentiment `json:"sentiment"`
	Extra      []string  `json:"-"` // values of non-core columns, in header order
	// Occurrence counts earlier records of the same load with identical
	// restaurant, comment, rating and date.
	Occurrence int `json:"-"`
}

// RawTable is a source as read, before any coercion.
type RawTable struct {
	Header      []string
	Rows        [][]string
	Lines       []int // source line of each row; optional
	Fingerprint string
}

type Reject struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

type LoadReport struct {
	Rows     int      `json:"rows"`
	Kept     int      `json:"kept"`
	Rejected []Reject `json:"rejected,omitempty"`
}

func (r LoadReport) Dropped() int { return len(r.Rejected) }
