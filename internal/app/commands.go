package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"resto_dashboard/internal/domain"
	"resto_dashboard/internal/sentiment"
)

// IngestionService copies a review source into the repository, storing
// each cleaned row with its sentiment and logging the rows cleaning dropped.
type IngestionService struct {
	src  domain.ReviewSource
	repo domain.ReviewRepository
	clf  *sentiment.Classifier
}

func NewIngestionService(src domain.ReviewSource, repo domain.ReviewRepository, clf *sentiment.Classifier) *IngestionService {
	if clf == nil {
		clf = sentiment.NewClassifier(nil)
	}
	return &IngestionService{src: src, repo: repo, clf: clf}
}

// Prepare loads and classifies the source once; batches are stored from the result.
func (s *IngestionService) Prepare(ctx context.Context) (*Dataset, error) {
	return LoadDataset(ctx, s.src, s.clf)
}

// StoreBatch upserts one batch of ds. Safe to call concurrently.
func (s *IngestionService) StoreBatch(ctx context.Context, ds *Dataset, batch []domain.Review) error {
	if len(batch) == 0 {
		return nil
	}
	if err := s.repo.UpsertReviews(ctx, ds.ExtraColumns, batch); err != nil {
		// do not swallow: a failed batch means missing rows
		return fmt.Errorf("upsert %d reviews (lines %d-%d): %w",
			len(batch), batch[0].Line, batch[len(batch)-1].Line, err)
	}
	return nil
}

// LogRejects records dropped rows; the repository keys them by source and
// line, so a re-import does not repeat them. Failures are logged and skipped.
func (s *IngestionService) LogRejects(ctx context.Context, ds *Dataset) int {
	n := 0
	for _, rj := range ds.Report.Rejected {
		if err := s.repo.LogReject(ctx, ds.Source, rj); err != nil {
			log.Warn().Err(err).Int("line", rj.Line).Msg("log reject failed")
			continue
		}
		n++
	}
	return n
}

// Batches splits records into chunks of at most size (size <= 0 means one chunk).
// Chunks share the backing array of records.
func Batches(records []domain.Review, size int) [][]domain.Review {
	if len(records) == 0 {
		return nil
	}
	if size <= 0 || size >= len(records) {
		return [][]domain.Review{records}
	}
	out := make([][]domain.Review, 0, (len(records)+size-1)/size)
	for start := 0; start < len(records); start += size {
		end := start + size
		if end > len(records) {
			end = len(records)
		}
		out = append(out, records[start:end:end])
	}
	return out
}
