package api

import (
	"io"
	"io/fs"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/brijr/wp-poster/internal/models"
	"github.com/brijr/wp-poster/internal/wp"
)

// Server holds shared state for all API handlers. The site and client are
// fixed for the session; datasets, jobs and the uploaded database path are
// mutated only through discrete user actions.
type Server struct {
	Site        *models.Site
	Client      *wp.Client
	Types       *TypeCache
	Datasets    *models.DatasetStore
	Jobs        *models.JobStore
	MappingFile string
	Log         *logrus.Logger

	mu         sync.Mutex
	sqlitePath string // last uploaded database file
}

// NewRouter builds the chi router with all API routes and static file serving.
func NewRouter(s *Server, webFS fs.FS) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(corsMiddleware)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Site / connection
		r.Get("/site", s.GetSite)
		r.Post("/site/test", s.TestConnection)
		r.Get("/site/whoami", s.Whoami)

		// Post types and fields
		r.Get("/types", s.ListTypes)
		r.Get("/types/{type}/fields", s.GetTypeFields)

		// Data sources
		r.Post("/dataset/csv", s.UploadCSV)
		r.Post("/dataset/sqlite", s.UploadSQLite)
		r.Post("/dataset/sqlite/table", s.LoadSQLiteTable)
		r.Get("/dataset", s.GetDataset)

		// Field mapping persistence
		r.Get("/mapping", s.GetMapping)
		r.Put("/mapping", s.PutMapping)

		// Upload (async)
		r.Post("/upload", s.StartUpload)

		// Jobs
		r.Get("/jobs", s.ListJobs)
		r.Get("/jobs/{id}", s.GetJob)
	})

	// WebSocket (outside /api to avoid JSON content-type assumptions)
	r.Get("/ws/jobs/{id}/logs", s.StreamJobLogs)

	// Serve embedded frontend (catch-all)
	r.Get("/*", func(w http.ResponseWriter, req *http.Request) {
		path := req.URL.Path
		if path == "/" {
			path = "/index.html"
		}

		f, err := webFS.Open(path[1:])
		if err == nil {
			f.Close()
			serveFileFS(w, req, webFS, path[1:])
			return
		}

		serveFileFS(w, req, webFS, "index.html")
	})

	return r
}

// serveFileFS mirrors http.ServeFileFS (Go 1.22+) for the Go 1.21 toolchain.
func serveFileFS(w http.ResponseWriter, r *http.Request, fsys fs.FS, name string) {
	f, err := fsys.Open(name)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer f.Close()
	fi, err := f.Stat()
	if err != nil {
		http.NotFound(w, r)
		return
	}
	rs, ok := f.(io.ReadSeeker)
	if !ok {
		http.NotFound(w, r)
		return
	}
	http.ServeContent(w, r, name, fi.ModTime(), rs)
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
