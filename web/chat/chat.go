// Package chat serves a minimal browser client for the PrimeLeads chat API.
package chat

import (
	"embed"
	"net/http"

	"github.com/tonaja/FastAutomate-Cloud-Bot/pkg/module"
	"github.com/tonaja/FastAutomate-Cloud-Bot/pkg/web"
)

//go:embed layouts views static
var siteFS embed.FS

const layout = "app"

// NewModule creates a module serving the chat page at basePath. apiPath is
// the mount point of the API module the page posts questions to.
func NewModule(basePath, apiPath string) (*module.Module, error) {
	router, err := buildRouter(basePath, apiPath)
	if err != nil {
		return nil, err
	}
	return module.New(basePath, router), nil
}

func buildRouter(basePath, apiPath string) (http.Handler, error) {
	page := web.ViewDef{
		Route:    "/{$}",
		Template: "chat.html",
		Title:    "Chat",
		Data:     map[string]string{"ChatEndpoint": apiPath + "/chat"},
	}
	notFound := web.ViewDef{Template: "not-found.html", Title: "Not Found"}

	ts, err := web.NewTemplateSet(siteFS, "layouts/*.html", "views", basePath, []web.ViewDef{page, notFound})
	if err != nil {
		return nil, err
	}

	router := web.NewRouter()
	router.Views(ts, layout, []web.ViewDef{page})
	router.Handle("GET /static/", web.Assets(siteFS, "static", "/static/"))
	router.SetFallback(ts.ErrorHandler(layout, notFound, http.StatusNotFound))

	return router, nil
}
