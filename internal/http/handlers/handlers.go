package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/preston-bernstein/ipl-stats-service/internal/dataset"
	"github.com/preston-bernstein/ipl-stats-service/internal/logging"
	"github.com/preston-bernstein/ipl-stats-service/internal/reloader"
	"github.com/preston-bernstein/ipl-stats-service/internal/views"
)

// DatasetSource returns the dataset currently served.
type DatasetSource interface {
	Current() (*dataset.Dataset, bool)
}

// Handler wires HTTP routes to the view catalog and runner.
type Handler struct {
	source   DatasetSource
	catalog  *views.Catalog
	runner   *views.Runner
	logger   *slog.Logger
	statusFn func() reloader.Status
}

// NewHandler constructs a Handler. statusFn may be nil, in which case
// readiness only requires a loaded dataset.
func NewHandler(source DatasetSource, catalog *views.Catalog, runner *views.Runner, logger *slog.Logger, statusFn func() reloader.Status) *Handler {
	if catalog == nil {
		catalog = views.Builtin()
	}
	if runner == nil {
		runner = views.NewRunner(nil, views.WithLogger(logger))
	}
	return &Handler{
		source:   source,
		catalog:  catalog,
		runner:   runner,
		logger:   logger,
		statusFn: statusFn,
	}
}

// ServeHTTP dispatches on path so the Handler can be mounted directly.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == "/health":
		h.Health(w, r)
	case r.URL.Path == "/ready":
		h.Ready(w, r)
	case r.URL.Path == "/dataset":
		h.Dataset(w, r)
	case r.URL.Path == "/editions":
		h.Editions(w, r)
	case r.URL.Path == "/views":
		h.Views(w, r)
	case strings.HasPrefix(r.URL.Path, "/views/"):
		h.RunView(w, r)
	case r.URL.Path == "/resolve":
		h.Resolve(w, r)
	default:
		writeError(w, r, http.StatusNotFound, "not found", h.logger)
	}
}

// Health reports the service health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet, h.logger) {
		return
	}
	if err := r.Context().Err(); err != nil {
		writeError(w, r, http.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic (e.g., for Kubernetes probes).
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet, h.logger) {
		return
	}
	_, loaded := h.current()
	if h.statusFn == nil {
		if loaded {
			writeJSON(w, http.StatusOK, map[string]string{"status": "ready"}, h.logger)
			return
		}
		writeError(w, r, http.StatusServiceUnavailable, "dataset not loaded", h.logger)
		return
	}
	status := h.statusFn()
	if loaded && status.IsReady() {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, http.StatusServiceUnavailable, msg, h.logger)
}

// Dataset describes the loaded dataset.
func (h *Handler) Dataset(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet, h.logger) {
		return
	}
	ds, ok := h.current()
	if !ok {
		writeError(w, r, http.StatusServiceUnavailable, "dataset not loaded", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, ds.Summary(), h.logger)
}

type editionsResponse struct {
	Default  string          `json:"default"`
	Editions []views.Edition `json:"editions"`
}

// Editions lists every edition with its views.
func (h *Handler) Editions(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet, h.logger) {
		return
	}
	writeJSON(w, http.StatusOK, editionsResponse{
		Default:  h.catalog.Default(),
		Editions: h.catalog.Editions(),
	}, h.logger)
}

// Views lists the views of one edition (the default when none is named).
func (h *Handler) Views(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet, h.logger) {
		return
	}
	edition, err := h.catalog.Edition(r.URL.Query().Get("edition"))
	if err != nil {
		writeError(w, r, http.StatusNotFound, err.Error(), h.logger)
		return
	}
	writeJSON(w, http.StatusOK, edition, h.logger)
}

type notFoundResponse struct {
	errorBody
	views.Result
}

// RunView runs /views/{name}?q=&edition= against the current dataset.
func (h *Handler) RunView(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet, h.logger) {
		return
	}
	name, err := url.PathUnescape(strings.TrimPrefix(r.URL.Path, "/views/"))
	if err != nil || name == "" || strings.ContainsAny(name, " \t/") {
		writeError(w, r, http.StatusBadRequest, "invalid view name", h.logger)
		return
	}

	query := r.URL.Query()
	view, err := h.catalog.View(query.Get("edition"), name)
	if err != nil {
		writeError(w, r, http.StatusNotFound, err.Error(), h.logger)
		return
	}

	ds, ok := h.current()
	if !ok {
		writeError(w, r, http.StatusServiceUnavailable, "dataset not loaded", h.logger)
		return
	}

	logger := loggerFromContext(r, h.logger)
	res, err := h.runner.Run(r.Context(), ds, view, query.Get("q"))
	switch {
	case errors.Is(err, views.ErrInputRequired):
		writeError(w, r, http.StatusBadRequest, "query parameter q is required for this view", logger)
		return
	case err != nil:
		logging.Error(logger, "view run failed", err, logging.FieldView, view.Name)
		writeError(w, r, http.StatusInternalServerError, "view failed", logger)
		return
	}

	if !res.Found {
		writeJSON(w, http.StatusNotFound, notFoundResponse{
			errorBody: errorBody{Error: "name not found", RequestID: requestID(r)},
			Result:    res,
		}, logger)
		return
	}
	if res.Empty {
		writeJSON(w, http.StatusNotFound, notFoundResponse{
			errorBody: errorBody{Error: res.EmptyReason(), RequestID: requestID(r)},
			Result:    res,
		}, logger)
		return
	}
	writeJSON(w, http.StatusOK, res, logger)
}

type resolveResponse struct {
	Input       string         `json:"input"`
	Vocabulary  dataset.Column `json:"vocabulary"`
	Match       string         `json:"match,omitempty"`
	Found       bool           `json:"found"`
	Score       float64        `json:"score"`
	Suggestions []string       `json:"suggestions,omitempty"`
}

// Resolve exposes the name resolver: /resolve?q=&vocabulary=.
func (h *Handler) Resolve(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet, h.logger) {
		return
	}
	query := r.URL.Query()
	input := strings.TrimSpace(query.Get("q"))
	if input == "" {
		writeError(w, r, http.StatusBadRequest, "query parameter q is required", h.logger)
		return
	}
	col, err := dataset.ParseColumn(query.Get("vocabulary"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error(), h.logger)
		return
	}
	ds, ok := h.current()
	if !ok {
		writeError(w, r, http.StatusServiceUnavailable, "dataset not loaded", h.logger)
		return
	}

	res := h.runner.Resolver()
	vocab := ds.Vocabulary(col)
	out := resolveResponse{Input: input, Vocabulary: col}
	if match, found := res.Resolve(input, vocab); found {
		out.Match = match
		out.Found = true
		out.Score = res.Score(input, match)
	} else {
		out.Suggestions = res.Suggest(input, vocab, h.runner.SuggestionLimit())
	}
	writeJSON(w, http.StatusOK, out, loggerFromContext(r, h.logger))
}

func (h *Handler) current() (*dataset.Dataset, bool) {
	if h.source == nil {
		return nil, false
	}
	return h.source.Current()
}
