// Package search finds public LinkedIn profiles through Google Custom
// Search. Results are normalized into Profile records and deduplicated by
// link.
package search

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"

	"github.com/tonaja/FastAutomate-Cloud-Bot/internal/config"
)

// Profile is one search hit for a person.
type Profile struct {
	Name    string `json:"name"`
	Link    string `json:"profile_link"`
	Snippet string `json:"snippet"`
}

// Searcher returns the profiles matching a free-text query.
type Searcher interface {
	Profiles(ctx context.Context, query string) ([]Profile, error)
}

// Google is a Searcher backed by the Custom Search JSON API.
type Google struct {
	svc      *customsearch.Service
	engineID string
	site     string
	pages    int
	pageSize int
	logger   *slog.Logger
}

// New validates the credentials in cfg and creates the Custom Search
// client. Extra client options are appended after the API key.
func New(ctx context.Context, cfg *config.SearchConfig, logger *slog.Logger, opts ...option.ClientOption) (*Google, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.EngineID == "" {
		return nil, ErrMissingEngineID
	}

	svc, err := customsearch.NewService(ctx, append([]option.ClientOption{option.WithAPIKey(cfg.APIKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("create custom search service: %w", err)
	}

	return &Google{
		svc:      svc,
		engineID: cfg.EngineID,
		site:     cfg.Site,
		pages:    cfg.Pages,
		pageSize: min(cfg.PageSize, 10),
		logger:   logger.With("system", "search"),
	}, nil
}

// Profiles runs the query restricted to the configured site and collects
// up to pages × pageSize unique hits. Paging stops early when a page comes
// back short.
func (g *Google) Profiles(ctx context.Context, query string) ([]Profile, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}
	q := Restrict(g.site, query)

	var (
		profiles []Profile
		seen     = make(map[string]bool)
	)

	for page := range g.pages {
		start := int64(page*g.pageSize + 1)

		res, err := g.svc.Cse.List().
			Cx(g.engineID).
			Q(q).
			Num(int64(g.pageSize)).
			Start(start).
			Context(ctx).
			Do()
		if err != nil {
			return profiles, fmt.Errorf("%w: %w", ErrSearchFailed, err)
		}

		for _, item := range res.Items {
			if item.Link == "" || seen[item.Link] {
				continue
			}
			seen[item.Link] = true
			profiles = append(profiles, Profile{
				Name:    item.Title,
				Link:    item.Link,
				Snippet: item.Snippet,
			})
		}

		if len(res.Items) < g.pageSize {
			break
		}
	}

	g.logger.DebugContext(ctx, "search complete", "query", q, "profiles", len(profiles))
	return profiles, nil
}

// Restrict prefixes query with a site: operator unless it already has one.
func Restrict(site, query string) string {
	if site == "" || strings.Contains(query, "site:") {
		return query
	}
	return "site:" + site + " " + query
}

// Dedupe keeps the first profile seen for each link, preserving order.
func Dedupe(profiles []Profile) []Profile {
	seen := make(map[string]bool, len(profiles))
	out := make([]Profile, 0, len(profiles))
	for _, p := range profiles {
		if p.Link == "" || seen[p.Link] {
			continue
		}
		seen[p.Link] = true
		out = append(out, p)
	}
	return out
}

// Unavailable fails every search with Err. It stands in for Google when
// credentials are missing, so the error surfaces on the request that needs
// search instead of at startup.
type Unavailable struct {
	Err error
}

func (u Unavailable) Profiles(context.Context, string) ([]Profile, error) {
	return nil, u.Err
}
