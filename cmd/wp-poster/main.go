package main

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	wpposter "github.com/brijr/wp-poster"
	"github.com/brijr/wp-poster/internal/api"
	"github.com/brijr/wp-poster/internal/config"
	"github.com/brijr/wp-poster/internal/models"
	"github.com/brijr/wp-poster/internal/wp"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	for _, arg := range os.Args[1:] {
		if arg == "--version" || arg == "-v" {
			fmt.Printf("wp-poster %s (commit: %s, built: %s)\n", version, commit, date)
			os.Exit(0)
		}
	}

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})

	cfg, err := config.Parse()
	if err != nil {
		log.Fatal(err)
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	site := &models.Site{
		URL:         cfg.Site.URL,
		Username:    cfg.Site.Username,
		AppPassword: cfg.Site.AppPassword,
		Insecure:    cfg.Site.Insecure,
	}
	client := wp.NewClient(site)
	log.WithField("site", site.BaseURL()).Info("configured site")

	// Verify connectivity and auth early; a failure here is surfaced but
	// the session stays usable for a retry from the UI.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if client.ValidateConnection(ctx) {
		log.Info("connection OK: types endpoint reachable")
		if id, err := client.Whoami(ctx); err == nil {
			log.WithField("user", id.Name).Info("authenticated")
		} else {
			log.WithError(err).Warn("identity check failed")
		}
	} else {
		log.Warn("connection check failed: verify URL, username and application password")
	}
	cancel()

	webFS, err := fs.Sub(wpposter.WebFS, "web")
	if err != nil {
		log.Fatal("embedded web FS: ", err)
	}

	server := &api.Server{
		Site:        site,
		Client:      client,
		Types:       api.NewTypeCache(),
		Datasets:    models.NewDatasetStore(),
		Jobs:        models.NewJobStore(),
		MappingFile: cfg.MappingFile,
		Log:         log,
	}

	log.Infof("wp-poster %s listening on %s", version, cfg.Listen)
	log.Infof("open http://localhost%s in your browser", cfg.Listen)

	if err := http.ListenAndServe(cfg.Listen, api.NewRouter(server, webFS)); err != nil {
		log.Fatal(err)
	}
}
