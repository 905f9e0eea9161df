package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/brijr/wp-poster/internal/mapping"
)

// GetMapping loads the saved field mapping. A missing file is reported
// distinctly so the UI can show "no saved mapping" rather than an error.
func (s *Server) GetMapping(w http.ResponseWriter, r *http.Request) {
	m, err := mapping.Load(s.MappingFile)
	if errors.Is(err, mapping.ErrNotFound) {
		writeError(w, http.StatusNotFound, "no saved mapping")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// PutMapping saves the field mapping sent in the request body.
func (s *Server) PutMapping(w http.ResponseWriter, r *http.Request) {
	var m mapping.Mapping
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if err := mapping.Save(m, s.MappingFile); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, m)
}
