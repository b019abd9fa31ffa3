package observability_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"resto_dashboard/internal/adapters/observability"
)

func scrape(t *testing.T) string {
	t.Helper()
	reg := observability.InitRegistry()
	mh := observability.MetricsHandler(reg)
	req := httptest.NewRequest("GET", "/metrics", nil)
	rr := httptest.NewRecorder()
	mh.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("metrics status: %d", rr.Code)
	}
	body, _ := io.ReadAll(rr.Body)
	return string(body)
}

func TestMetricsRegistryAndHandler(t *testing.T) {
	// record samples so vectors are exported
	observability.ObserveHTTP("/test", "GET", 200, 12*time.Millisecond)
	observability.ObserveLoad("file:test.csv", 9, 1, map[string]int{"Positive": 5}, nil)
	observability.ObserveFilter(time.Millisecond)

	out := scrape(t)
	for _, want := range []string{
		"resto_http_requests_total",
		`resto_dataset_rows{state="kept"} 9`,
		`resto_dataset_rows{state="dropped"} 1`,
		`resto_dataset_sentiment_reviews{sentiment="Positive"} 5`,
		"resto_filter_duration_seconds_count",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output", want)
		}
	}
}

func TestObserveLoad_FailureOnlyCounts(t *testing.T) {
	observability.ObserveLoad("file:broken.csv", 0, 0, nil, errors.New("boom"))
	out := scrape(t)
	if !strings.Contains(out, `resto_dataset_loads_total{result="*errors.errorString",source="file:broken.csv"} 1`) {
		t.Fatalf("expected failed load counter, got:\n%s", out)
	}
}

func TestLabelErr(t *testing.T) {
	if got := observability.LabelErr(nil); got != "none" {
		t.Fatalf("got %q", got)
	}
}
