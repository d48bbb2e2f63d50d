// Package middleware holds the net/http decorators shared by every mounted
// module: CORS, request logging, metrics observation and body limits.
package middleware

import "net/http"

// Func decorates a handler.
type Func = func(http.Handler) http.Handler

// System collects middleware in registration order; the first registered
// runs outermost.
type System interface {
	Use(mw Func)
	Apply(handler http.Handler) http.Handler
}

type chain []Func

// New returns an empty System.
func New() System {
	return &chain{}
}

func (c *chain) Use(mw Func) {
	*c = append(*c, mw)
}

func (c *chain) Apply(handler http.Handler) http.Handler {
	for i := range *c {
		handler = (*c)[len(*c)-1-i](handler)
	}
	return handler
}
