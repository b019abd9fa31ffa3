package httpserver

import (
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"resto_dashboard/internal/adapters/csvfile"
	"resto_dashboard/internal/adapters/observability"
	"resto_dashboard/internal/app"
	"resto_dashboard/internal/domain"
)

const (
	defaultPageSize = 50
	maxPageSize     = 500
)

type Handlers struct {
	Q *app.QueryService
	// Export throttles /v1/export.csv per client; nil disables.
	Export *IPLimiter
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/", h.page)
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/readyz", h.ready)
	s.mux.Get("/v1/meta", h.meta)
	s.mux.Get("/v1/dashboard", h.dashboard)
	s.mux.Get("/v1/reviews", h.listReviews)
	s.mux.Get("/v1/sentiment", h.sentiment)
	s.mux.Get("/v1/wordcloud/text", h.corpus)
	s.mux.With(RateLimit(h.Export)).Get("/v1/export.csv", h.export)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeError maps service errors onto problem responses.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidCriteria):
		writeProblem(w, http.StatusBadRequest, "Invalid criteria", err.Error())
	case errors.Is(err, domain.ErrNoDataset):
		log.Error().Err(err).Msg("dataset unavailable")
		writeProblem(w, http.StatusServiceUnavailable, "Dataset unavailable", "the review dataset could not be loaded")
	default:
		log.Error().Err(err).Msg("request failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	return `W/"` + hex.EncodeToString(sum[:]) + `"`, body
}

// writeJSON answers 304 when the client already holds this representation.
func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if body == nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Str("path", r.URL.Path).Msg("failed to write body")
	}
}

func (h *Handlers) ready(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.Q.Loaded(); ok {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
		return
	}
	// try once so a fresh process becomes ready without waiting for traffic
	if _, err := h.Q.Dataset(r.Context()); err != nil {
		writeProblem(w, http.StatusServiceUnavailable, "Not Ready", "dataset not loaded")
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

func (h *Handlers) meta(w http.ResponseWriter, r *http.Request) {
	m, err := h.Q.Meta(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, r, m)
}

func (h *Handlers) dashboard(w http.ResponseWriter, r *http.Request) {
	c, err := app.ParseCriteria(r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}
	words := 0
	if ws := r.URL.Query().Get("words"); ws != "" {
		n, err := strconv.Atoi(ws)
		if err != nil || n <= 0 || n > 1000 {
			writeProblem(w, http.StatusBadRequest, "Invalid words", "words must be an integer between 1 and 1000")
			return
		}
		words = n
	}
	v, err := h.Q.Dashboard(r.Context(), c, words)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, r, v)
}

func (h *Handlers) listReviews(w http.ResponseWriter, r *http.Request) {
	c, err := app.ParseCriteria(r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}
	limit := defaultPageSize
	if ls := r.URL.Query().Get("limit"); ls != "" {
		l, err := strconv.Atoi(ls)
		if err != nil || l <= 0 || l > maxPageSize {
			writeProblem(w, http.StatusBadRequest, "Invalid limit",
				fmt.Sprintf("limit must be an integer between 1 and %d", maxPageSize))
			return
		}
		limit = l
	}
	offset := 0
	if offs := r.URL.Query().Get("offset"); offs != "" {
		o, err := strconv.Atoi(offs)
		if err != nil || o < 0 {
			writeProblem(w, http.StatusBadRequest, "Invalid offset", "offset must be a non-negative integer")
			return
		}
		offset = o
	}
	page, err := h.Q.ListReviews(r.Context(), c, limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, r, page)
}

func (h *Handlers) sentiment(w http.ResponseWriter, r *http.Request) {
	c, err := app.ParseCriteria(r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}
	_, rs, err := h.Q.Filtered(r.Context(), c)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, r, app.SentimentByRestaurant(rs))
}

// corpus feeds client-side word clouds.
func (h *Handlers) corpus(w http.ResponseWriter, r *http.Request) {
	c, err := app.ParseCriteria(r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}
	_, rs, err := h.Q.Filtered(r.Context(), c)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(app.Corpus(rs)))
}

func (h *Handlers) export(w http.ResponseWriter, r *http.Request) {
	c, err := app.ParseCriteria(r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}
	ds, rs, err := h.Q.Filtered(r.Context(), c)
	if err != nil {
		writeError(w, err)
		return
	}
	// buffer so an encoding failure can still become a problem response
	var buf bytes.Buffer
	if err := csvfile.Write(&buf, ds.Header, app.WithLength(rs)); err != nil {
		writeError(w, fmt.Errorf("encode export: %w", err))
		return
	}
	observability.ObserveExport(len(rs))

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, csvfile.ExportFileName))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		log.Error().Err(err).Msg("failed to write export body")
	}
}
