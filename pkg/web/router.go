package web

import "net/http"

// Router wraps http.ServeMux with a fallback for unmatched routes, such as a
// rendered not-found page.
type Router struct {
	mux      *http.ServeMux
	fallback http.HandlerFunc
}

func NewRouter() *Router {
	return &Router{mux: http.NewServeMux()}
}

// SetFallback configures the handler for unmatched routes.
func (r *Router) SetFallback(handler http.HandlerFunc) {
	r.fallback = handler
}

// Handle registers a handler for the given pattern.
func (r *Router) Handle(pattern string, handler http.Handler) {
	r.mux.Handle(pattern, handler)
}

// Views registers a GET page handler for each view at its Route.
func (r *Router) Views(ts *TemplateSet, layout string, views []ViewDef) {
	for _, v := range views {
		r.mux.Handle("GET "+v.Route, ts.PageHandler(layout, v))
	}
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if _, pattern := r.mux.Handler(req); pattern == "" && r.fallback != nil {
		r.fallback.ServeHTTP(w, req)
		return
	}
	r.mux.ServeHTTP(w, req)
}
