// Package module mounts self-contained HTTP surfaces, such as the JSON API
// and the chat page, under single-segment prefixes of one listener.
package module

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/tonaja/FastAutomate-Cloud-Bot/pkg/middleware"
)

// Module serves requests under prefix through its own middleware stack.
// The inner handler sees paths with the prefix removed.
type Module struct {
	prefix     string
	inner      http.Handler
	middleware middleware.System
}

// New panics unless prefix is a single segment such as "/api".
func New(prefix string, inner http.Handler) *Module {
	if err := checkPrefix(prefix); err != nil {
		panic(err)
	}
	return &Module{prefix: prefix, inner: inner, middleware: middleware.New()}
}

func (m *Module) Prefix() string {
	return m.prefix
}

// Use appends mw to the module's stack. The first added runs outermost.
func (m *Module) Use(mw func(http.Handler) http.Handler) {
	m.middleware.Use(mw)
}

// Handler is the inner handler wrapped in the module's middleware.
func (m *Module) Handler() http.Handler {
	return m.middleware.Apply(m.inner)
}

// Serve rewrites the request path relative to the prefix and dispatches it.
func (m *Module) Serve(w http.ResponseWriter, r *http.Request) {
	m.Handler().ServeHTTP(w, withPath(r, relative(r.URL.Path, m.prefix)))
}

// withPath shallow-copies r with a new path so the caller's request is untouched.
func withPath(r *http.Request, path string) *http.Request {
	u := *r.URL
	u.Path = path
	u.RawPath = ""

	out := r.Clone(r.Context())
	out.URL = &u
	return out
}

func relative(path, prefix string) string {
	rest := strings.TrimPrefix(path, prefix)
	if rest == "" {
		return "/"
	}
	return rest
}

func checkPrefix(prefix string) error {
	switch {
	case prefix == "":
		return fmt.Errorf("module prefix is empty")
	case prefix[0] != '/':
		return fmt.Errorf("module prefix %q must start with /", prefix)
	case prefix == "/" || strings.Contains(prefix[1:], "/"):
		return fmt.Errorf("module prefix %q must be a single path segment", prefix)
	}
	return nil
}

