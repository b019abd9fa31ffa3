package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"

	"resto_dashboard/internal/domain"
)

func valJSON(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return string(b)
}

// Repo stores imported reviews and serves them back as a review source.
type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// RowHash identifies a review by its content and occurrence, so re-imports
// are idempotent while identical reviews in one source stay separate rows.
// The first occurrence hashes content only.
func RowHash(rv domain.Review) string {
	d := xxhash.New()
	_, _ = d.WriteString(rv.Restaurant)
	_, _ = d.WriteString("\x1f")
	_, _ = d.WriteString(rv.Comment)
	_, _ = d.WriteString("\x1f")
	_, _ = d.WriteString(strconv.FormatFloat(rv.Rating, 'f', -1, 64))
	_, _ = d.WriteString("\x1f")
	_, _ = d.WriteString(rv.Date.Format(domain.DateLayout))
	if rv.Occurrence > 0 {
		_, _ = d.WriteString("\x1f#")
		_, _ = d.WriteString(strconv.Itoa(rv.Occurrence))
	}
	return fmt.Sprintf("%016x", d.Sum64())
}

// extraField is one stored non-core cell; the extra column holds a JSON array of them.
type extraField struct {
	Column string `json:"column"`
	Value  string `json:"value"`
}

func encodeExtra(columns, values []string) ([]byte, error) {
	if len(values) == 0 {
		return nil, nil
	}
	fs := make([]extraField, 0, len(values))
	for i, v := range values {
		name := ""
		if i < len(columns) {
			name = columns[i]
		}
		fs = append(fs, extraField{Column: name, Value: v})
	}
	return json.Marshal(fs)
}

func (r *Repo) UpsertReviews(ctx context.Context, extraColumns []string, rs []domain.Review) error {
	if len(rs) == 0 {
		return nil
	}
	values := make([]string, 0, len(rs))
	args := make([]any, 0, len(rs)*8)
	for _, rv := range rs {
		extra, err := encodeExtra(extraColumns, rv.Extra)
		if err != nil {
			return fmt.Errorf("encode extra (line %d): %w", rv.Line, err)
		}
		values = append(values, "(?,?,?,?,?,?,?,?)")
		args = append(args,
			RowHash(rv),
			rv.Restaurant,
			rv.Comment,
			rv.Rating,
			rv.Date.Format(domain.DateLayout),
			string(rv.Sentiment),
			rv.Line,
			valJSON(extra),
		)
	}
	sqlStr := insertReviewsPrefix + strings.Join(values, ",") + insertReviewsOnDup
	_, err := r.db.ExecContext(ctx, sqlStr, args...)
	return err
}

// LogReject records a dropped row; the same source line is stored once.
func (r *Repo) LogReject(ctx context.Context, source string, rj domain.Reject) error {
	_, err := r.db.ExecContext(ctx, insertRejectSQL, source, rj.Line, rj.Reason)
	return err
}

func (r *Repo) CountReviews(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, countReviewsSQL).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// CountRejects reports how many dropped rows are recorded for source.
func (r *Repo) CountRejects(ctx context.Context, source string) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, countRejectsSQL, source).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *Repo) Name() string { return "mysql:reviews" }

// Read returns the stored reviews as a raw table: the core columns, then the
// extra columns in first-seen order. The fingerprint covers every cell.
func (r *Repo) Read(ctx context.Context) (domain.RawTable, error) {
	rows, err := r.db.QueryContext(ctx, selectReviewsSQL)
	if err != nil {
		return domain.RawTable{}, fmt.Errorf("query reviews: %w", err)
	}
	defer rows.Close()

	var (
		recs   [][]string
		extras [][]extraField
		colIdx = map[string]int{}
		cols   []string
	)
	for rows.Next() {
		var (
			name, comment string
			rating        float64
			day           time.Time
			extra         sql.NullString
		)
		if err := rows.Scan(&name, &comment, &rating, &day, &extra); err != nil {
			return domain.RawTable{}, fmt.Errorf("scan review: %w", err)
		}
		var fs []extraField
		if extra.Valid && extra.String != "" {
			if err := json.Unmarshal([]byte(extra.String), &fs); err != nil {
				return domain.RawTable{}, fmt.Errorf("decode extra: %w", err)
			}
		}
		for _, f := range fs {
			if _, ok := colIdx[f.Column]; !ok {
				colIdx[f.Column] = len(cols)
				cols = append(cols, f.Column)
			}
		}
		recs = append(recs, []string{name, comment, strconv.FormatFloat(rating, 'f', -1, 64), day.Format(domain.DateLayout)})
		extras = append(extras, fs)
	}
	if err := rows.Err(); err != nil {
		return domain.RawTable{}, err
	}

	core := len(domain.RequiredColumns)
	t := domain.RawTable{Header: append(append([]string(nil), domain.RequiredColumns...), cols...)}
	d := xxhash.New()
	for _, c := range t.Header {
		_, _ = d.WriteString(c)
		_, _ = d.WriteString("\x1f")
	}
	_, _ = d.WriteString("\x1e")
	for i, rec := range recs {
		row := make([]string, core+len(cols))
		copy(row, rec)
		for _, f := range extras[i] {
			row[core+colIdx[f.Column]] = f.Value
		}
		for _, f := range row {
			_, _ = d.WriteString(f)
			_, _ = d.WriteString("\x1f")
		}
		_, _ = d.WriteString("\x1e")
		t.Rows = append(t.Rows, row)
	}
	t.Fingerprint = fmt.Sprintf("%016x", d.Sum64())
	return t, nil
}
