package api

import (
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"

	"github.com/brijr/wp-poster/internal/wp"
)

// typeSummary is the listing shape the UI consumes; the schema stays
// server-side.
type typeSummary struct {
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	RESTBase     string `json:"rest_base"`
	Hierarchical bool   `json:"hierarchical"`
	Viewable     bool   `json:"viewable"`
}

// ListTypes returns the post types, served from the cache unless it is
// stale or ?refresh=1 forces a refetch.
func (s *Server) ListTypes(w http.ResponseWriter, r *http.Request) {
	refresh := r.URL.Query().Get("refresh") == "1"
	types, err := s.Types.Get(r.Context(), s.Client, s.Site.BaseURL(), refresh)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	summaries := make([]typeSummary, 0, len(types))
	for key, pt := range types {
		restBase := pt.RESTBase
		if restBase == "" {
			restBase = key
		}
		summaries = append(summaries, typeSummary{
			Name:         pt.Name,
			Slug:         key,
			RESTBase:     restBase,
			Hierarchical: pt.Hierarchical,
			Viewable:     pt.Viewable,
		})
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].Slug < summaries[j].Slug })
	writeJSON(w, http.StatusOK, summaries)
}

// GetTypeFields returns the mappable field list for one post type. Custom
// field sampling is best effort: a sampling failure degrades to the schema
// and base fields and surfaces a warning instead of an error.
func (s *Server) GetTypeFields(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "type")
	types, err := s.Types.Get(r.Context(), s.Client, s.Site.BaseURL(), false)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	pt, ok := types[slug]
	if !ok {
		writeError(w, http.StatusNotFound, "unknown post type: "+slug)
		return
	}

	restBase := pt.RESTBase
	if restBase == "" {
		restBase = slug
	}

	var warning string
	_, sampleBody, err := s.Client.FetchSampleItems(r.Context(), restBase)
	if err != nil {
		warning = "could not sample existing items for custom fields: " + err.Error()
		s.Log.WithField("type", slug).Warn(warning)
	}

	fields := wp.ExtractFields(pt, sampleBody)

	resp := map[string]interface{}{
		"type":      slug,
		"rest_base": restBase,
		"fields":    fields,
	}
	if warning != "" {
		resp["warning"] = warning
	}
	writeJSON(w, http.StatusOK, resp)
}
