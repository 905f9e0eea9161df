package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/brijr/wp-poster/internal/mapping"
	"github.com/brijr/wp-poster/internal/models"
	"github.com/brijr/wp-poster/internal/uploader"
)

// StartUpload begins an async batch upload of the active dataset to one
// post type. The mapping may be sent inline (the UI's current, possibly
// unsaved state); when omitted, the saved mapping file is used. Once
// started, the batch attempts every row.
func (s *Server) StartUpload(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Type    string          `json:"type"`
		Mapping mapping.Mapping `json:"mapping,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if req.Type == "" {
		writeError(w, http.StatusBadRequest, "type is required")
		return
	}

	ds := s.Datasets.Get()
	if ds == nil {
		writeError(w, http.StatusConflict, "no dataset loaded")
		return
	}

	m := req.Mapping
	if m == nil {
		var err error
		m, err = mapping.Load(s.MappingFile)
		if errors.Is(err, mapping.ErrNotFound) {
			writeError(w, http.StatusConflict, "no mapping provided and no saved mapping")
			return
		}
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
	}
	if len(m) == 0 {
		writeError(w, http.StatusBadRequest, "mapping is empty")
		return
	}

	types, err := s.Types.Get(r.Context(), s.Client, s.Site.BaseURL(), false)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	pt, ok := types[req.Type]
	if !ok {
		writeError(w, http.StatusNotFound, "unknown post type: "+req.Type)
		return
	}
	restBase := pt.RESTBase
	if restBase == "" {
		restBase = req.Type
	}

	job := s.Jobs.Create(req.Type)
	job.SetProgress(0, len(ds.Rows))

	go func() {
		job.AppendLog(fmt.Sprintf("Uploading to %s (%s)", s.Site.BaseURL(), req.Type))
		res := uploader.Run(context.Background(), s.Client, restBase, ds, m,
			job.AppendLog, job.SetProgress)
		job.Complete(res.Succeeded, res.Failed)
	}()

	writeJSON(w, http.StatusAccepted, map[string]string{"job_id": job.ID})
}

func (s *Server) ListJobs(w http.ResponseWriter, r *http.Request) {
	jobs := s.Jobs.List()
	snapshots := make([]models.JobSnapshot, 0, len(jobs))
	for _, j := range jobs {
		snapshots = append(snapshots, j.Snapshot())
	}
	writeJSON(w, http.StatusOK, snapshots)
}

func (s *Server) GetJob(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	job := s.Jobs.Get(id)
	if job == nil {
		writeError(w, http.StatusNotFound, "job not found")
		return
	}
	writeJSON(w, http.StatusOK, job.Snapshot())
}
