package remote_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"resto_dashboard/internal/adapters/remote"
	"resto_dashboard/internal/domain"
)

const sample = "Nama Restoran,Komentar,Rating,Tanggal\nWarung A,enak,5,2024-01-02\n"

func TestClient_Fetch_RetriesThenSuccess(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch atomic.AddInt32(&hits, 1) {
		case 1:
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
		case 2:
			w.WriteHeader(http.StatusBadGateway)
		default:
			if got := r.Header.Get("Authorization"); got != "Bearer tok" {
				t.Errorf("authorization header: %q", got)
			}
			_, _ = w.Write([]byte(sample))
		}
	}))
	defer ts.Close()

	cl := remote.New("tok", 100) // high RPS for tests
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	b, err := cl.Fetch(ctx, ts.URL+"/reviews.csv")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if string(b) != sample {
		t.Fatalf("unexpected body: %q", b)
	}
	if atomic.LoadInt32(&hits) != 3 {
		t.Fatalf("expected 3 calls due to retries, got %d", hits)
	}
}

func TestClient_Fetch_404(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	defer ts.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_, err := remote.New("", 100).Fetch(ctx, ts.URL)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestClient_Fetch_Forbidden(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer ts.Close()

	_, err := remote.New("", 100).Fetch(context.Background(), ts.URL)
	if !errors.Is(err, remote.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestSource_ReadParsesTable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(sample))
	}))
	defer ts.Close()

	src, err := remote.NewSource(ts.URL+"/data/reviews.csv", remote.New("", 100))
	if err != nil {
		t.Fatal(err)
	}
	tbl, err := src.Read(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(tbl.Header) != 4 || len(tbl.Rows) != 1 || tbl.Rows[0][0] != "Warung A" || tbl.Fingerprint == "" {
		t.Fatalf("unexpected table: %+v", tbl)
	}
}

func TestNewSource_RejectsRelativeURL(t *testing.T) {
	if _, err := remote.NewSource("reviews.csv", nil); err == nil {
		t.Fatalf("expected error")
	}
}
