package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"jude-explorer/internal/analysis"
	"jude-explorer/internal/explorer"
	"jude-explorer/internal/export"
	"jude-explorer/internal/logging"
	"jude-explorer/internal/models"
	"jude-explorer/internal/render"
	"jude-explorer/internal/state"
)

var logger = logging.New("api")

type Handler struct {
	Store    *state.Store
	Exporter export.Exporter
}

func NewHandler(store *state.Store, exp export.Exporter) *Handler {
	return &Handler{
		Store:    store,
		Exporter: exp,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.HealthCheck)

	r.Route("/api", func(r chi.Router) {
		r.Get("/variables", h.GetVariables)
		r.Post("/reload", h.Reload)

		r.Get("/view", h.GetView)
		r.Post("/plot", h.Plot)
		r.Post("/filter", h.Filter)
		r.Post("/hover", h.Hover)
		r.Post("/select", h.Select)
		r.Post("/deselect", h.Deselect)

		r.Get("/panels/{panel}", h.GetPanel)
		r.Post("/panels/{panel}/next", h.NextPage)
		r.Post("/panels/{panel}/prev", h.PrevPage)
		r.Post("/panels/{panel}/export", h.Export)

		r.Get("/chart.png", h.GetChart)
		r.Get("/summary", h.GetSummary)
	})
}

// ============================================================================
// Health & dataset
// ============================================================================

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("OK"))
}

// GetVariables returns the variable catalogue
func (h *Handler) GetVariables(w http.ResponseWriter, r *http.Request) {
	data := h.Store.Dataset()
	if data == nil {
		http.Error(w, state.ErrNotLoaded.Error(), http.StatusServiceUnavailable)
		return
	}

	writeJSON(w, map[string]interface{}{
		"variables": data.Variables,
		"subjects":  len(data.SubjectData),
		"loaded_at": h.Store.LoadedAt(),
	})
}

// Reload fetches the dataset again and starts over
func (h *Handler) Reload(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Load(r.Context()); err != nil {
		http.Error(w, fmt.Sprintf("Failed to load dataset: %v", err), http.StatusBadGateway)
		return
	}
	h.GetView(w, r)
}

// ============================================================================
// Pipeline
// ============================================================================

func (h *Handler) GetView(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w)
	if !ok {
		return
	}
	writeJSON(w, sess.View())
}

// Plot handles the "Plot!" submit
func (h *Handler) Plot(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w)
	if !ok {
		return
	}

	var spec models.PlotSpec
	if err := json.NewDecoder(r.Body).Decode(&spec); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if err := sess.Submit(spec); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, sess.View())
}

// Filter handles the perijove slider and the vortex checkbox
func (h *Handler) Filter(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w)
	if !ok {
		return
	}

	f := models.DefaultFilter()
	if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if err := sess.SetFilter(f); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, sess.View())
}

func (h *Handler) Hover(w http.ResponseWriter, r *http.Request) {
	h.chartEvent(w, r, (*explorer.Session).Hover)
}

func (h *Handler) Select(w http.ResponseWriter, r *http.Request) {
	h.chartEvent(w, r, (*explorer.Session).Select)
}

func (h *Handler) Deselect(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w)
	if !ok {
		return
	}
	if err := sess.Deselect(); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, sess.View())
}

func (h *Handler) chartEvent(w http.ResponseWriter, r *http.Request, apply func(*explorer.Session, models.ChartEvent) error) {
	sess, ok := h.session(w)
	if !ok {
		return
	}

	var ev models.ChartEvent
	// An empty body is a cleared selection.
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}
	if err := apply(sess, ev); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, sess.View())
}

// ============================================================================
// Panels
// ============================================================================

func (h *Handler) GetPanel(w http.ResponseWriter, r *http.Request) {
	h.panelAction(w, r, (*explorer.Session).Page)
}

func (h *Handler) NextPage(w http.ResponseWriter, r *http.Request) {
	h.panelAction(w, r, (*explorer.Session).NextPage)
}

func (h *Handler) PrevPage(w http.ResponseWriter, r *http.Request) {
	h.panelAction(w, r, (*explorer.Session).PrevPage)
}

func (h *Handler) panelAction(w http.ResponseWriter, r *http.Request, action func(*explorer.Session, string) (explorer.PanelPage, error)) {
	sess, ok := h.session(w)
	if !ok {
		return
	}
	page, err := action(sess, chi.URLParam(r, "panel"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, page)
}

// Export downloads a CSV of every subject held by a panel
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w)
	if !ok {
		return
	}

	panel := chi.URLParam(r, "panel")
	ids, release, err := sess.StartExport(panel)
	if err != nil {
		writeError(w, err)
		return
	}
	defer release()

	artifact, err := export.Run(r.Context(), h.Exporter, ids)
	if err != nil {
		logger.Warnf("export of %d subjects from %s failed: %v", len(ids), panel, err)
		http.Error(w, fmt.Sprintf("Export failed: %v", err), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", artifact.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(artifact.Data)))
	w.Write(artifact.Data)
}

// ============================================================================
// Chart & summary
// ============================================================================

func (h *Handler) GetChart(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w)
	if !ok {
		return
	}

	series, _, colors := sess.Current()
	var buf bytes.Buffer
	if err := render.PNG(series, colors, &buf); err != nil {
		if errors.Is(err, render.ErrNothingToRender) {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		http.Error(w, fmt.Sprintf("Render failed: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Write(buf.Bytes())
}

func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w)
	if !ok {
		return
	}

	series, _, _ := sess.Current()
	if series == nil {
		writeError(w, explorer.ErrNoPlot)
		return
	}
	writeJSON(w, analysis.Summarize(series))
}

// ============================================================================
// Helpers
// ============================================================================

func (h *Handler) session(w http.ResponseWriter) (*explorer.Session, bool) {
	sess, err := h.Store.Session()
	if err != nil {
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return nil, false
	}
	return sess, true
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		logger.Errorf("encode response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(buf.Bytes())
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, explorer.ErrUnknownPlotType):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, explorer.ErrUnknownPanel):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, explorer.ErrNoPlot):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		logger.Errorf("%v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
