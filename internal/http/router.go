package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RouterConfig holds the handlers and middleware wired into the router.
type RouterConfig struct {
	Punches *PunchHandler
	Exports *ExportHandler

	// RequireAuth wraps every credential-gated route. The index redirect
	// stays open; its target is gated.
	RequireAuth func(http.Handler) http.Handler

	// Middleware is applied to the whole router, outermost first.
	Middleware []func(http.Handler) http.Handler
}

// NewRouter creates the route table: the index redirect, the per-clock punch
// form, and the three export endpoints.
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	for _, middleware := range cfg.Middleware {
		if middleware != nil {
			r.Use(mux.MiddlewareFunc(middleware))
		}
	}

	guard := cfg.RequireAuth
	if guard == nil {
		guard = func(next http.Handler) http.Handler { return next }
	}

	if cfg.Punches != nil {
		r.Handle("/", http.HandlerFunc(cfg.Punches.Index)).Methods(http.MethodGet)
		r.Handle("/form/{clock}/", guard(http.HandlerFunc(cfg.Punches.ShowForm))).Methods(http.MethodGet)
		r.Handle("/form/{clock}/", guard(http.HandlerFunc(cfg.Punches.SubmitPunch))).Methods(http.MethodPost)
	}

	if cfg.Exports != nil {
		r.Handle("/export.csv", guard(http.HandlerFunc(cfg.Exports.ExportCSV))).Methods(http.MethodGet)
		r.Handle("/export.tsv", guard(http.HandlerFunc(cfg.Exports.ExportTSV))).Methods(http.MethodGet)
		r.Handle("/export.tab", guard(http.HandlerFunc(cfg.Exports.ExportTSV))).Methods(http.MethodGet)
	}

	return r
}
