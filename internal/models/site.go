package models

import "strings"

// Site holds the credentials for the WordPress instance this session posts
// to. It is built once from configuration at startup and read-only after.
type Site struct {
	URL         string `json:"url"`
	Username    string `json:"username"`
	AppPassword string `json:"-"`
	Insecure    bool   `json:"insecure"` // skip TLS verification
}

// BaseURL returns the normalized base URL for API calls, without a trailing
// slash so endpoint paths can be appended directly.
func (s *Site) BaseURL() string {
	return strings.TrimRight(NormalizeURL(s.URL), "/")
}

// NormalizeURL ensures a user-supplied host string has an explicit scheme,
// defaulting to https. Inputs that already carry a scheme are returned
// unchanged.
func NormalizeURL(raw string) string {
	if raw == "" || strings.Contains(raw, "://") {
		return raw
	}
	return "https://" + raw
}
