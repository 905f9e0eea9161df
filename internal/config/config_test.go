package config

import "testing"

func TestApplyEnvAndDefaults(t *testing.T) {
	env := map[string]string{
		"WP_URL":          "example.com",
		"WP_USERNAME":     "admin",
		"WP_APP_PASSWORD": "xxxx yyyy zzzz",
	}
	c := &Config{}
	c.applyEnv(func(k string) string { return env[k] })
	c.applyDefaults()

	if c.Site.URL != "example.com" || c.Site.Username != "admin" {
		t.Errorf("site = %+v, want env values applied", c.Site)
	}
	if c.Listen != ":8080" || c.MappingFile != "mapping.json" || c.LogLevel != "info" {
		t.Errorf("defaults not applied: %+v", c)
	}
	if err := c.validate(); err != nil {
		t.Errorf("validate: %v", err)
	}
}

func TestValidateRequiresCredentialTriple(t *testing.T) {
	tests := []struct {
		name string
		site SiteConfig
	}{
		{"missing URL", SiteConfig{Username: "u", AppPassword: "p"}},
		{"missing username", SiteConfig{URL: "example.com", AppPassword: "p"}},
		{"missing password", SiteConfig{URL: "example.com", Username: "u"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := &Config{Site: tc.site}
			if err := c.validate(); err == nil {
				t.Error("validate should fail")
			}
		})
	}
}

func TestEnvOverridesFileValues(t *testing.T) {
	c := &Config{Site: SiteConfig{URL: "from-file.com", Username: "fileuser", AppPassword: "filepass"}}
	c.applyEnv(func(k string) string {
		if k == "WP_URL" {
			return "from-env.com"
		}
		return ""
	})

	if c.Site.URL != "from-env.com" {
		t.Errorf("URL = %q, want env to win over file", c.Site.URL)
	}
	if c.Site.Username != "fileuser" {
		t.Errorf("Username = %q, want file value kept when env is unset", c.Site.Username)
	}
}
