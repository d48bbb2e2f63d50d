package web_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/tonaja/FastAutomate-Cloud-Bot/pkg/web"
)

var testFS = fstest.MapFS{
	"layouts/app.html": {Data: []byte(
		`{{ define "app" }}<title>{{ .Title }}</title><base href="{{ .BasePath }}">{{ block "content" . }}{{ end }}{{ end }}`,
	)},
	"views/home.html":    {Data: []byte(`{{ define "content" }}home {{ .Data }}{{ end }}`)},
	"views/missing.html": {Data: []byte(`{{ define "content" }}not here{{ end }}`)},
	"views/linked.html":  {Data: []byte(`{{ define "content" }}<a href="{{ url "static/app.css" }}">css</a>{{ end }}`)},
	"views/broken.html":  {Data: []byte(`{{ define "content" }}before {{ .Data.Missing }}{{ end }}`)},
	"static/app.css":     {Data: []byte(`body{}`)},
}

var (
	home     = web.ViewDef{Route: "/{$}", Template: "home.html", Title: "Home", Data: "page"}
	notFound = web.ViewDef{Template: "missing.html", Title: "Not Found"}
)

func newSet(t *testing.T) *web.TemplateSet {
	t.Helper()
	ts, err := web.NewTemplateSet(testFS, "layouts/*.html", "views", "/app", []web.ViewDef{home, notFound})
	if err != nil {
		t.Fatalf("NewTemplateSet: %v", err)
	}
	return ts
}

func serve(h http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestNewTemplateSetErrors(t *testing.T) {
	if _, err := web.NewTemplateSet(testFS, "nope/*.html", "views", "", nil); err == nil {
		t.Error("missing layouts: expected error")
	}
	if _, err := web.NewTemplateSet(testFS, "layouts/*.html", "views", "", []web.ViewDef{{Template: "absent.html"}}); err == nil {
		t.Error("missing view: expected error")
	}
}

func TestPageHandler(t *testing.T) {
	rec := serve(newSet(t).PageHandler("app", home), "/")

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"<title>Home</title>", `href="/app"`, "home page"} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q: %s", want, body)
		}
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("content type: got %q", ct)
	}
}

func TestURLFunc(t *testing.T) {
	linked := web.ViewDef{Template: "linked.html"}
	ts, err := web.NewTemplateSet(testFS, "layouts/*.html", "views", "/app", []web.ViewDef{linked})
	if err != nil {
		t.Fatal(err)
	}
	rec := serve(ts.PageHandler("app", linked), "/")
	if !strings.Contains(rec.Body.String(), `href="/app/static/app.css"`) {
		t.Errorf("body: %s", rec.Body.String())
	}
}

func TestRenderFailureWritesNoPartialPage(t *testing.T) {
	broken := web.ViewDef{Template: "broken.html", Data: "text"}
	ts, err := web.NewTemplateSet(testFS, "layouts/*.html", "views", "", []web.ViewDef{broken})
	if err != nil {
		t.Fatal(err)
	}
	rec := serve(ts.PageHandler("app", broken), "/")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status: got %d, want 500", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "before") {
		t.Errorf("partial page written: %s", rec.Body.String())
	}
}

func TestRenderUnknownView(t *testing.T) {
	rec := serve(newSet(t).PageHandler("app", web.ViewDef{Template: "other.html"}), "/")
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status: got %d, want 500", rec.Code)
	}
}

func TestRouter(t *testing.T) {
	ts := newSet(t)
	r := web.NewRouter()
	r.Views(ts, "app", []web.ViewDef{home})
	r.Handle("GET /static/", web.Assets(testFS, "static", "/static/"))

	t.Run("view", func(t *testing.T) {
		if rec := serve(r, "/"); !strings.Contains(rec.Body.String(), "home page") {
			t.Errorf("body: %s", rec.Body.String())
		}
	})

	t.Run("asset", func(t *testing.T) {
		rec := serve(r, "/static/app.css")
		if rec.Code != http.StatusOK || rec.Body.String() != "body{}" {
			t.Errorf("got %d %q", rec.Code, rec.Body.String())
		}
	})

	t.Run("no fallback", func(t *testing.T) {
		if rec := serve(r, "/elsewhere"); rec.Code != http.StatusNotFound {
			t.Errorf("status: got %d, want 404", rec.Code)
		}
	})

	t.Run("fallback", func(t *testing.T) {
		r.SetFallback(ts.ErrorHandler("app", notFound, http.StatusNotFound))
		rec := serve(r, "/elsewhere")
		if rec.Code != http.StatusNotFound {
			t.Errorf("status: got %d, want 404", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "not here") {
			t.Errorf("body: %s", rec.Body.String())
		}
	})
}

func TestAssetsInvalidDir(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	web.Assets(testFS, "../outside", "/static/")
}
