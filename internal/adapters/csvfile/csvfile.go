// Package csvfile reads review tables from delimited text and writes
// filtered exports back in the same shape.
package csvfile

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"

	"resto_dashboard/internal/domain"
)

// ExportFileName is the download name of a filtered export.
const ExportFileName = "filtered_reviews.csv"

// Source reads a CSV/TSV file from disk on every Read.
type Source struct{ path string }

func New(path string) *Source { return &Source{path: path} }

func (s *Source) Name() string { return "file:" + filepath.Base(s.path) }

func (s *Source) Path() string { return s.path }

func (s *Source) Read(ctx context.Context) (domain.RawTable, error) {
	if err := ctx.Err(); err != nil {
		return domain.RawTable{}, err
	}
	b, err := os.ReadFile(s.path)
	if err != nil {
		return domain.RawTable{}, fmt.Errorf("read %s: %w", s.path, err)
	}
	return Parse(b, Delimiter(s.path, b))
}

// Bytes is an in-memory source, e.g. stdin or an uploaded body.
type Bytes struct {
	name string
	data []byte
}

func FromBytes(name string, data []byte) *Bytes { return &Bytes{name: name, data: data} }

func (b *Bytes) Name() string { return b.name }

func (b *Bytes) Read(ctx context.Context) (domain.RawTable, error) {
	if err := ctx.Err(); err != nil {
		return domain.RawTable{}, err
	}
	return Parse(b.data, Delimiter(b.name, b.data))
}

// Checksum is the hex xxhash of b; it identifies a dataset version.
func Checksum(b []byte) string {
	digest := xxhash.New()
	_, _ = digest.Write(b)
	return hex.EncodeToString(digest.Sum(nil))
}

// Delimiter picks tab for .tsv names, ';' when the first line has more
// semicolons than commas, and ',' otherwise.
func Delimiter(name string, data []byte) rune {
	if strings.HasSuffix(strings.ToLower(name), ".tsv") {
		return '\t'
	}
	first := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		first = data[:i]
	}
	if bytes.Count(first, []byte{';'}) > bytes.Count(first, []byte{','}) {
		return ';'
	}
	return ','
}

// Parse splits data into header and rows. Short rows are padded to the header width.
// An empty input yields an empty table; header validation is left to the loader.
func Parse(data []byte, delim rune) (domain.RawTable, error) {
	t := domain.RawTable{Fingerprint: Checksum(data)}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return t, nil
		}
		return t, fmt.Errorf("read header: %w", err)
	}
	t.Header = header
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return t, fmt.Errorf("read row %d: %w", len(t.Rows)+1, err)
		}
		line, _ := r.FieldPos(0)
		if len(rec) < len(header) {
			tmp := make([]string, len(header))
			copy(tmp, rec)
			rec = tmp
		}
		t.Rows = append(t.Rows, rec)
		t.Lines = append(t.Lines, line)
	}
	return t, nil
}

// ExportHeader is the column order of Write: the dataset header, or the
// core columns when it is empty, followed by the derived columns.
func ExportHeader(header []string) []string {
	if len(header) == 0 {
		header = domain.RequiredColumns
	}
	h := make([]string, 0, len(header)+2)
	h = append(h, header...)
	return append(h, domain.ColSentiment, domain.ColCommentLength)
}

// Write encodes rows as comma-separated values in ExportHeader order.
// The first occurrence of a core column name takes the record field; every
// other column takes the next value of Review.Extra.
func Write(w io.Writer, header []string, rows []domain.ReviewRow) error {
	cols := ExportHeader(header)
	cw := csv.NewWriter(w)
	if err := cw.Write(cols); err != nil {
		return err
	}
	source := cols[:len(cols)-2]
	rec := make([]string, 0, len(cols))
	for _, r := range rows {
		rec = rec[:0]
		seen := 0
		extra := 0
		for _, c := range source {
			v, core := coreField(r, c, &seen)
			if !core {
				if extra < len(r.Extra) {
					v = r.Extra[extra]
				}
				extra++
			}
			rec = append(rec, v)
		}
		rec = append(rec, string(r.Sentiment), strconv.Itoa(r.CommentLength))
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// coreField returns the record value for the first occurrence of a core
// column; seen is a bitmask of core columns already emitted.
func coreField(r domain.ReviewRow, col string, seen *int) (string, bool) {
	for bit, name := range domain.RequiredColumns {
		if col != name || *seen&(1<<bit) != 0 {
			continue
		}
		*seen |= 1 << bit
		switch name {
		case domain.ColRestaurant:
			return r.Restaurant, true
		case domain.ColComment:
			return r.Comment, true
		case domain.ColRating:
			return strconv.FormatFloat(r.Rating, 'f', -1, 64), true
		default:
			return r.Date.Format(domain.DateLayout), true
		}
	}
	return "", false
}
