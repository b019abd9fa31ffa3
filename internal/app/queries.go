package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"resto_dashboard/internal/adapters/observability"
	"resto_dashboard/internal/domain"
	"resto_dashboard/internal/sentiment"
)

// DefaultWordLimit caps the word list of a dashboard view.
const DefaultWordLimit = 100

// QueryService serves filtered views over a lazily loaded dataset.
// The dataset is swapped atomically on Reload; readers never lock.
type QueryService struct {
	src      domain.ReviewSource
	clf      *sentiment.Classifier
	cache    domain.Cache
	cacheTTL time.Duration

	ds     atomic.Pointer[Dataset]
	loadMu sync.Mutex
}

func NewQueryService(src domain.ReviewSource, clf *sentiment.Classifier, c domain.Cache, ttl time.Duration) *QueryService {
	if clf == nil {
		clf = sentiment.NewClassifier(nil)
	}
	return &QueryService{src: src, clf: clf, cache: c, cacheTTL: ttl}
}

// Dataset returns the loaded dataset, loading it on first use.
// A failed load is not remembered; the next call tries again.
func (s *QueryService) Dataset(ctx context.Context) (*Dataset, error) {
	if ds := s.ds.Load(); ds != nil {
		return ds, nil
	}
	s.loadMu.Lock()
	defer s.loadMu.Unlock()
	if ds := s.ds.Load(); ds != nil {
		return ds, nil
	}
	ds, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	s.ds.Store(ds)
	return ds, nil
}

// Loaded reports the active dataset without triggering a load.
func (s *QueryService) Loaded() (*Dataset, bool) {
	ds := s.ds.Load()
	return ds, ds != nil
}

// Reload re-reads the source and swaps the dataset in when its fingerprint changed.
// On error the previous dataset stays active.
func (s *QueryService) Reload(ctx context.Context) (bool, error) {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()
	ds, err := s.load(ctx)
	if err != nil {
		return false, err
	}
	if cur := s.ds.Load(); cur != nil && cur.Fingerprint != "" && cur.Fingerprint == ds.Fingerprint {
		log.Debug().Str("fingerprint", ds.Fingerprint).Msg("source unchanged; keeping dataset")
		return false, nil
	}
	s.ds.Store(ds)
	return true, nil
}

func (s *QueryService) load(ctx context.Context) (*Dataset, error) {
	ds, err := LoadDataset(ctx, s.src, s.clf)
	if err != nil {
		observability.ObserveLoad(s.src.Name(), 0, 0, nil, err)
		return nil, fmt.Errorf("%w: %w", domain.ErrNoDataset, err)
	}
	by := map[string]int{string(domain.Positive): 0, string(domain.Neutral): 0, string(domain.Negative): 0}
	for _, rv := range ds.Records {
		by[string(rv.Sentiment)]++
	}
	observability.ObserveLoad(ds.Source, ds.Report.Kept, ds.Report.Dropped(), by, nil)
	return ds, nil
}

func (s *QueryService) Meta(ctx context.Context) (domain.Meta, error) {
	ds, err := s.Dataset(ctx)
	if err != nil {
		return domain.Meta{}, err
	}
	m := domain.Meta{
		Source:      ds.Source,
		Fingerprint: ds.Fingerprint,
		LoadedAt:    ds.LoadedAt,
		Rows:        ds.Report.Rows,
		Kept:        ds.Report.Kept,
		Dropped:     ds.Report.Dropped(),
		Restaurants: Restaurants(ds.Records),
	}
	if lo, hi, ok := DateBounds(ds.Records); ok {
		m.MinDate, m.MaxDate = &lo, &hi
	}
	return m, nil
}

// Filtered returns the dataset together with the records matching c.
func (s *QueryService) Filtered(ctx context.Context, c domain.Criteria) (*Dataset, []domain.Review, error) {
	ds, err := s.Dataset(ctx)
	if err != nil {
		return nil, nil, err
	}
	start := time.Now()
	out := Filter(ds.Records, c)
	observability.ObserveFilter(time.Since(start))
	return ds, out, nil
}

// Dashboard builds statistics and chart series for c, cache-aside when a cache is set.
func (s *QueryService) Dashboard(ctx context.Context, c domain.Criteria, words int) (domain.DashboardView, error) {
	ds, err := s.Dataset(ctx)
	if err != nil {
		return domain.DashboardView{}, err
	}
	if words <= 0 {
		words = DefaultWordLimit
	}
	key := fmt.Sprintf("dash:%s:%s:%d", ds.Fingerprint, c.Key(), words)
	var out domain.DashboardView
	if s.cache != nil {
		if ok, err := s.cache.Get(ctx, key, &out); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("cache get failed")
		} else if ok {
			return out, nil
		}
	}

	start := time.Now()
	rs := Filter(ds.Records, c)
	out = domain.DashboardView{
		Fingerprint:  ds.Fingerprint,
		Stats:        Summarize(rs),
		Distribution: RatingDistribution(rs),
		Words:        WordFrequencies(Corpus(rs), words),
		Scatter:      Scatter(rs),
	}
	observability.ObserveFilter(time.Since(start))

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, out, int(s.cacheTTL.Seconds())); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("cache set failed")
		}
	}
	return out, nil
}

// ListReviews pages through the filtered records.
func (s *QueryService) ListReviews(ctx context.Context, c domain.Criteria, limit, offset int) (domain.ReviewsPage, error) {
	if limit <= 0 || offset < 0 {
		return domain.ReviewsPage{}, errors.New("limit must be positive and offset non-negative")
	}
	_, rs, err := s.Filtered(ctx, c)
	if err != nil {
		return domain.ReviewsPage{}, err
	}
	page := domain.ReviewsPage{Total: len(rs), Items: []domain.ReviewRow{}}
	if offset >= len(rs) {
		return page, nil
	}
	end := offset + limit
	if end < len(rs) {
		next := end
		page.NextOffset = &next
	} else {
		end = len(rs)
	}
	page.Items = WithLength(rs[offset:end])
	return page, nil
}
