package http

import (
	nethttp "net/http"

	"github.com/preston-bernstein/ipl-stats-service/internal/http/handlers"
)

// NewRouter registers HTTP routes on a ServeMux. Admin routes are only
// mounted when admin is non-nil.
func NewRouter(handler *handlers.Handler, admin *handlers.AdminHandler) nethttp.Handler {
	mux := nethttp.NewServeMux()
	mux.HandleFunc("/health", handler.Health)
	mux.HandleFunc("/ready", handler.Ready)
	mux.HandleFunc("/dataset", handler.Dataset)
	mux.HandleFunc("/editions", handler.Editions)
	mux.HandleFunc("/views", handler.Views)
	mux.HandleFunc("/views/", handler.RunView)
	mux.HandleFunc("/resolve", handler.Resolve)
	if admin != nil {
		mux.HandleFunc("/admin/reload", admin.Reload)
	}
	return mux
}
