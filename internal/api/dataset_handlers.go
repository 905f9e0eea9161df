package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/brijr/wp-poster/internal/dataset"
	"github.com/brijr/wp-poster/internal/models"
)

// maxUploadBytes bounds uploaded files (CSV or database) at 64 MiB.
const maxUploadBytes = 64 << 20

// previewRows is how many rows the dataset preview returns.
const previewRows = 10

// UploadCSV parses a multipart CSV upload into the active dataset,
// replacing whatever was loaded before.
func (s *Server) UploadCSV(w http.ResponseWriter, r *http.Request) {
	file, _, err := s.formFile(w, r)
	if err != nil {
		return
	}
	defer file.Close()

	ds, err := dataset.LoadCSV(file)
	if err != nil {
		var pe *dataset.ParseError
		if errors.As(err, &pe) {
			writeError(w, http.StatusBadRequest, pe.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.Datasets.Set(ds)
	s.Log.WithField("rows", len(ds.Rows)).Info("loaded CSV dataset")
	writeJSON(w, http.StatusOK, summarize(ds))
}

// UploadSQLite saves an uploaded database file and responds with its table
// list. The dataset itself is not loaded until a table is selected. Every
// upload reuses one fixed temp path so replaced uploads never accumulate.
func (s *Server) UploadSQLite(w http.ResponseWriter, r *http.Request) {
	file, _, err := s.formFile(w, r)
	if err != nil {
		return
	}
	defer file.Close()

	dst := uploadDBPath()
	out, err := os.Create(dst)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "saving upload: "+err.Error())
		return
	}
	if _, err := io.Copy(out, file); err != nil {
		out.Close()
		os.Remove(dst)
		writeError(w, http.StatusInternalServerError, "saving upload: "+err.Error())
		return
	}
	out.Close()

	src, err := dataset.OpenSQLite(r.Context(), dst)
	if err != nil {
		os.Remove(dst)
		writeError(w, http.StatusBadRequest, "not a usable SQLite database: "+err.Error())
		return
	}
	defer src.Close()

	tables, err := src.Tables(r.Context())
	if err != nil {
		os.Remove(dst)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.setSQLitePath(dst)
	writeJSON(w, http.StatusOK, map[string]interface{}{"tables": tables})
}

// uploadDBPath is the fixed location uploaded databases are written to.
func uploadDBPath() string {
	return filepath.Join(os.TempDir(), "wp-poster-upload.db")
}

// LoadSQLiteTable loads one table of the previously uploaded database as
// the active dataset, replacing whatever was loaded before.
func (s *Server) LoadSQLiteTable(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Table string `json:"table"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if req.Table == "" {
		writeError(w, http.StatusBadRequest, "table is required")
		return
	}

	path := s.getSQLitePath()
	if path == "" {
		writeError(w, http.StatusConflict, "no database uploaded")
		return
	}

	src, err := dataset.OpenSQLite(r.Context(), path)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	defer src.Close()

	ds, err := src.LoadTable(r.Context(), req.Table)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.Datasets.Set(ds)
	s.Log.WithField("table", req.Table).WithField("rows", len(ds.Rows)).Info("loaded table dataset")
	writeJSON(w, http.StatusOK, summarize(ds))
}

// GetDataset returns a preview of the active dataset.
func (s *Server) GetDataset(w http.ResponseWriter, r *http.Request) {
	ds := s.Datasets.Get()
	if ds == nil {
		writeError(w, http.StatusNotFound, "no dataset loaded")
		return
	}
	writeJSON(w, http.StatusOK, summarize(ds))
}

// formFile pulls the "file" part out of a multipart upload, writing the
// error response itself on failure.
func (s *Server) formFile(w http.ResponseWriter, r *http.Request) (io.ReadCloser, string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid upload: "+err.Error())
		return nil, "", err
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field: "+err.Error())
		return nil, "", err
	}
	return file, header.Filename, nil
}

func summarize(ds *models.Dataset) map[string]interface{} {
	preview := ds.Rows
	if len(preview) > previewRows {
		preview = preview[:previewRows]
	}
	return map[string]interface{}{
		"source":  ds.Source,
		"columns": ds.Columns,
		"rows":    len(ds.Rows),
		"preview": preview,
	}
}

func (s *Server) setSQLitePath(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sqlitePath = path
}

func (s *Server) getSQLitePath() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sqlitePath
}
