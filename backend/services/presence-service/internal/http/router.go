package httpserver

import "net/http"

// Routes groups handlers.
type Routes struct {
	Presence     http.HandlerFunc
	Overview     http.HandlerFunc
	Distribution http.HandlerFunc
	Activity     http.HandlerFunc
	EventsNotify http.HandlerFunc
	Health       http.HandlerFunc
	Metrics      http.Handler
}

// NewRouter registers endpoints.
func NewRouter(routes Routes) http.Handler {
	mux := http.NewServeMux()
	if routes.Presence != nil {
		mux.Handle("/presence", method(http.MethodGet, routes.Presence))
	}
	if routes.Overview != nil {
		mux.Handle("/presence/overview", method(http.MethodGet, routes.Overview))
	}
	if routes.Distribution != nil {
		mux.Handle("/distribution", method(http.MethodGet, routes.Distribution))
	}
	if routes.Activity != nil {
		mux.Handle("/ws/activity", method(http.MethodGet, routes.Activity))
	}
	if routes.EventsNotify != nil {
		mux.Handle("/internal/events/notify", method(http.MethodPost, routes.EventsNotify))
	}
	if routes.Health != nil {
		mux.Handle("/health", method(http.MethodGet, routes.Health))
	}
	if routes.Metrics != nil {
		mux.Handle("/metrics", routes.Metrics)
	}
	return mux
}

func method(expected string, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != expected {
			w.Header().Set("Allow", expected)
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		handler(w, r)
	}
}
