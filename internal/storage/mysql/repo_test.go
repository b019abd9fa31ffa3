package mysql

import (
	"testing"
	"time"

	"resto_dashboard/internal/domain"
)

func TestRowHash(t *testing.T) {
	d := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	a := domain.Review{Restaurant: "A", Comment: "enak", Rating: 5, Date: d, Line: 2}
	b := a
	b.Line, b.Sentiment = 40, domain.Negative
	if RowHash(a) != RowHash(b) {
		t.Fatalf("hash must depend on content only")
	}
	if len(RowHash(a)) != 16 {
		t.Fatalf("hash width: %q", RowHash(a))
	}
	c := a
	c.Comment = "enak!"
	if RowHash(a) == RowHash(c) {
		t.Fatalf("different comments collide")
	}
	// field boundaries matter
	x := domain.Review{Restaurant: "ab", Comment: "c", Rating: 5, Date: d}
	y := domain.Review{Restaurant: "a", Comment: "bc", Rating: 5, Date: d}
	if RowHash(x) == RowHash(y) {
		t.Fatalf("boundary collision")
	}
}

func TestRowHash_IdenticalReviewsStayDistinct(t *testing.T) {
	d := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	first := domain.Review{Restaurant: "A", Comment: "Enak", Rating: 5, Date: d, Line: 2}
	second := first
	second.Line, second.Occurrence = 3, 1
	if RowHash(first) == RowHash(second) {
		t.Fatalf("identical reviews share a key: %s", RowHash(first))
	}
	again := second
	again.Line = 9
	if RowHash(again) != RowHash(second) {
		t.Fatalf("key must not depend on line")
	}
}

func TestEncodeExtra(t *testing.T) {
	b, err := encodeExtra([]string{"No", "Kota"}, []string{"1", "Bandung"})
	if err != nil {
		t.Fatal(err)
	}
	if got := string(b); got != `[{"column":"No","value":"1"},{"column":"Kota","value":"Bandung"}]` {
		t.Fatalf("encoded: %s", got)
	}
	if b, _ := encodeExtra([]string{"Kota"}, nil); b != nil {
		t.Fatalf("no values should store NULL: %s", b)
	}
}
