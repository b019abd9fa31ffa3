package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"resto_dashboard/internal/domain"
	"resto_dashboard/internal/sentiment"
)

// Dataset is a loaded, cleaned and classified review table.
// It is never modified after BuildDataset returns; share it freely.
type Dataset struct {
	Source       string
	Fingerprint  string
	LoadedAt     time.Time
	// Header is the source column order with core columns under their
	// canonical names; Write uses it for the export.
	Header       []string
	ExtraColumns []string
	Records      []domain.Review
	Report       domain.LoadReport
}

type contentKey struct {
	restaurant, comment string
	rating              float64
	day                 int64
}

// BuildDataset validates the header, coerces every row, drops the ones that
// fail cleaning and labels the rest exactly once.
func BuildDataset(raw domain.RawTable, clf *sentiment.Classifier) (*Dataset, error) {
	if clf == nil {
		clf = sentiment.NewClassifier(nil)
	}
	ix, err := resolveColumns(raw.Header)
	if err != nil {
		return nil, err
	}

	ds := &Dataset{
		Fingerprint:  raw.Fingerprint,
		LoadedAt:     time.Now().UTC(),
		Header:       ix.header,
		ExtraColumns: ix.extraNames,
		Records:      make([]domain.Review, 0, len(raw.Rows)),
	}
	ds.Report.Rows = len(raw.Rows)
	seen := make(map[contentKey]int)

	for i, row := range raw.Rows {
		line := i + 2 // header is line 1
		if len(raw.Lines) == len(raw.Rows) {
			line = raw.Lines[i]
		}
		rv, reason := mapRow(ix, row)
		if reason != "" {
			ds.Report.Rejected = append(ds.Report.Rejected, domain.Reject{Line: line, Reason: reason})
			continue
		}
		rv.Line = line
		k := contentKey{rv.Restaurant, rv.Comment, rv.Rating, rv.Date.Unix()}
		rv.Occurrence = seen[k]
		seen[k]++
		rv.Sentiment = clf.Classify(rv.Comment, rv.Rating)
		ds.Records = append(ds.Records, rv)
	}
	ds.Report.Kept = len(ds.Records)
	return ds, nil
}

// LoadDataset reads src and builds a dataset from it.
func LoadDataset(ctx context.Context, src domain.ReviewSource, clf *sentiment.Classifier) (*Dataset, error) {
	raw, err := src.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("read source %s: %w", src.Name(), err)
	}
	ds, err := BuildDataset(raw, clf)
	if err != nil {
		return nil, fmt.Errorf("load source %s: %w", src.Name(), err)
	}
	ds.Source = src.Name()

	for _, rj := range ds.Report.Rejected {
		log.Debug().Str("source", ds.Source).Int("line", rj.Line).Str("reason", rj.Reason).Msg("row dropped")
	}
	log.Info().
		Str("source", ds.Source).
		Str("fingerprint", ds.Fingerprint).
		Int("rows", ds.Report.Rows).
		Int("kept", ds.Report.Kept).
		Int("dropped", ds.Report.Dropped()).
		Msg("dataset loaded")
	return ds, nil
}
