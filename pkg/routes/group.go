package routes

import (
	"net/http"
	"strings"

	"github.com/tonaja/FastAutomate-Cloud-Bot/pkg/openapi"
)

// Group shares a path prefix, OpenAPI tags and component schemas across
// its routes. Children nest under the parent's prefix and inherit its tags
// unless they declare their own.
type Group struct {
	Prefix      string
	Tags        []string
	Description string
	Routes      []Route
	Children    []Group
	Schemas     map[string]*openapi.Schema
}

type visitor struct {
	group func(g *Group)
	route func(path string, tags []string, r Route)
}

// walk visits g and then its children depth first, resolving each route's
// full path and effective tags.
func (g *Group) walk(prefix string, inherited []string, v visitor) {
	prefix += g.Prefix
	tags := g.Tags
	if len(tags) == 0 {
		tags = inherited
	}
	if v.group != nil {
		v.group(g)
	}
	for _, r := range g.Routes {
		v.route(prefix+r.Pattern, tags, r)
	}
	for i := range g.Children {
		g.Children[i].walk(prefix, tags, v)
	}
}

// Register mounts every route under groups on mux using method-qualified
// ServeMux patterns.
func Register(mux *http.ServeMux, groups ...Group) {
	for i := range groups {
		groups[i].walk("", nil, visitor{
			route: func(path string, _ []string, r Route) {
				mux.HandleFunc(r.Method+" "+path, r.Handler)
			},
		})
	}
}

// Describe records the documented routes of groups in spec, prefixing each
// path with basePath, and merges the groups' schemas into its components.
// Routes without an OpenAPI operation stay out of the document.
func Describe(spec *openapi.Spec, basePath string, groups ...Group) {
	for i := range groups {
		groups[i].walk(basePath, nil, visitor{
			group: func(g *Group) {
				if g.Schemas != nil {
					spec.Components.AddSchemas(g.Schemas)
				}
			},
			route: func(path string, tags []string, r Route) {
				if r.OpenAPI == nil {
					return
				}
				op := *r.OpenAPI
				if len(op.Tags) == 0 {
					op.Tags = tags
				}
				setOperation(spec, templatePath(path), r.Method, &op)
			},
		})
	}
}

func setOperation(spec *openapi.Spec, path, method string, op *openapi.Operation) {
	item := spec.Paths[path]
	if item == nil {
		item = &openapi.PathItem{}
		spec.Paths[path] = item
	}
	switch method {
	case http.MethodGet:
		item.Get = op
	case http.MethodPost:
		item.Post = op
	case http.MethodPut:
		item.Put = op
	case http.MethodPatch:
		item.Patch = op
	case http.MethodDelete:
		item.Delete = op
	}
}

// templatePath turns ServeMux patterns into OpenAPI path templates:
// {key...} becomes {key} and a trailing {$} is dropped.
func templatePath(pattern string) string {
	pattern = strings.TrimSuffix(strings.ReplaceAll(pattern, "...}", "}"), "{$}")
	if pattern == "" {
		return "/"
	}
	return pattern
}
