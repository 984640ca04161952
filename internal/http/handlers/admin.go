package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/preston-bernstein/ipl-stats-service/internal/http/requestutil"
	"github.com/preston-bernstein/ipl-stats-service/internal/logging"
)

// Reloader reloads the dataset on demand.
type Reloader interface {
	Reload(ctx context.Context) error
}

// AdminHandler exposes admin-only endpoints (e.g., dataset reload).
type AdminHandler struct {
	reloader Reloader
	source   DatasetSource
	token    string
	logger   *slog.Logger
}

// NewAdminHandler constructs an AdminHandler.
func NewAdminHandler(reloader Reloader, source DatasetSource, token string, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		reloader: reloader,
		source:   source,
		token:    token,
		logger:   logger,
	}
}

// Reload fetches the dataset again and swaps it in on success.
// Guarded by ADMIN_TOKEN; returns 401 if missing/invalid.
func (h *AdminHandler) Reload(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost, h.logger) {
		return
	}
	if !h.authorize(r) {
		logging.Warn(h.logger, "admin unauthorized",
			slog.String(logging.FieldPath, r.URL.Path),
			slog.String("client_ip", requestutil.ClientIP(r)),
		)
		writeError(w, r, http.StatusUnauthorized, "unauthorized", h.logger)
		return
	}
	if h.reloader == nil {
		writeError(w, r, http.StatusServiceUnavailable, "reloader not configured", h.logger)
		return
	}

	logger := loggerFromContext(r, h.logger)
	start := time.Now()
	if err := h.reloader.Reload(r.Context()); err != nil {
		logging.Warn(logger, "admin reload failed", logging.FieldError, err)
		writeError(w, r, http.StatusBadGateway, "reload failed: "+err.Error(), logger)
		return
	}

	body := map[string]any{"status": "ok"}
	if h.source != nil {
		if ds, ok := h.source.Current(); ok {
			body["dataset"] = ds.Summary()
		}
	}
	writeJSON(w, http.StatusOK, body, logger)
	logging.Info(logger, "admin reload complete",
		slog.Int64(logging.FieldDurationMS, time.Since(start).Milliseconds()),
	)
}

func (h *AdminHandler) authorize(r *http.Request) bool {
	if h.token == "" {
		return false
	}
	return r.Header.Get("Authorization") == "Bearer "+h.token
}
