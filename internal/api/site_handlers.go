package api

import (
	"net/http"
)

// GetSite returns the configured site. The application password is never
// serialized.
func (s *Server) GetSite(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"url":      s.Site.BaseURL(),
		"username": s.Site.Username,
	})
}

// TestConnection checks reachability and credentials against the types
// endpoint. Failures are reported in the body, not as HTTP errors, so the
// UI can render them inline.
func (s *Server) TestConnection(w http.ResponseWriter, r *http.Request) {
	if !s.Client.ValidateConnection(r.Context()) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"ok":    false,
			"error": "could not reach the site with the configured credentials",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"ok": true})
}

// Whoami returns the authenticated user for diagnostics. With
// ?context=edit the response includes roles and capabilities.
func (s *Server) Whoami(w http.ResponseWriter, r *http.Request) {
	var err error
	var id interface{}
	if r.URL.Query().Get("context") == "edit" {
		id, err = s.Client.WhoamiEdit(r.Context())
	} else {
		id, err = s.Client.Whoami(r.Context())
	}
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, id)
}
