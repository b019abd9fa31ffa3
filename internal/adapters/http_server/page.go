package httpserver

import (
	"bytes"
	_ "embed"
	"html/template"
	"net/http"

	"github.com/rs/zerolog/log"

	"resto_dashboard/internal/app"
	"resto_dashboard/internal/domain"
)

//go:embed web/dashboard.html
var dashboardHTML string

var pageTmpl = template.Must(template.New("dashboard").Parse(dashboardHTML))

type pageData struct {
	Meta       domain.Meta
	Ready      bool
	MinRating  int
	MaxRating  int
	All        string
	DateLayout string
}

// page renders the controls; charts are drawn in the browser from /v1/dashboard.
func (h *Handlers) page(w http.ResponseWriter, r *http.Request) {
	d := pageData{MinRating: app.MinRating, MaxRating: app.MaxRating, All: app.AllRestaurants, DateLayout: domain.DateLayout}
	if m, err := h.Q.Meta(r.Context()); err == nil {
		d.Meta, d.Ready = m, true
	} else {
		log.Warn().Err(err).Msg("dashboard page without dataset")
	}
	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, d); err != nil {
		log.Error().Err(err).Msg("render dashboard page")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}
