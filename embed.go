package wpposter

import "embed"

// WebFS embeds the frontend served at the router's catch-all.
//
//go:embed web
var WebFS embed.FS
