// Package config loads runtime settings from the environment, with an
// optional .env file, and defines the sites being watched.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"westendwatcher/internal/notify"
)

// Site is one theatre website to watch. Dynamic sites need a headless
// browser to render their listings before extraction.
type Site struct {
	ID      string
	Name    string
	URL     string
	Dynamic bool
}

// DefaultSites returns the watched sites in their fixed reporting order.
func DefaultSites() []Site {
	return []Site{
		{ID: "donmar", Name: "Donmar Warehouse", URL: "https://www.donmarwarehouse.com/whats-on"},
		{ID: "national", Name: "National Theatre", URL: "https://www.nationaltheatre.org.uk/whats-on/"},
		{ID: "bridge", Name: "Bridge Theatre", URL: "https://bridgetheatre.co.uk/performances/"},
		{ID: "hampstead", Name: "Hampstead Theatre", URL: "https://www.hampsteadtheatre.com/whats-on/main-stage/"},
		{ID: "marylebone", Name: "Marylebone Theatre", URL: "https://www.marylebonetheatre.com/#Whats-On"},
		{ID: "soho_dean", Name: "Soho Theatre (Dean Street)", URL: "https://sohotheatre.com/dean-street/"},
		{ID: "soho_walthamstow", Name: "Soho Theatre (Walthamstow)", URL: "https://sohotheatre.com/walthamstow/"},
		{ID: "rsc", Name: "Royal Shakespeare Company (London)", URL: "https://www.rsc.org.uk/whats-on/in/london/?from=ql", Dynamic: true},
		{ID: "royal_court", Name: "Royal Court Theatre", URL: "https://royalcourttheatre.com/whats-on/"},
		{ID: "drury_lane", Name: "Drury Lane Theatre", URL: "https://lwtheatres.co.uk/theatres/theatre-royal-drury-lane/whats-on/"},
	}
}

// Config is the resolved runtime configuration.
type Config struct {
	Sites       []Site
	SnapshotDir string

	MaxRetries     int
	RetryDelay     time.Duration
	RequestTimeout time.Duration
	UserAgent      string

	Email notify.SMTPConfig
}

// Load resolves configuration from the environment. A .env file in the
// working directory is read first when present, without overriding
// variables already set.
func Load() Config {
	if err := godotenv.Load(); err == nil {
		slog.Debug("loaded .env file")
	}

	return Config{
		Sites:          DefaultSites(),
		SnapshotDir:    envOr("SNAPSHOT_DIR", "data/snapshots"),
		MaxRetries:     3,
		RetryDelay:     5 * time.Second,
		RequestTimeout: 30 * time.Second,
		UserAgent:      "TheaterScraperBot/1.0",
		Email: notify.SMTPConfig{
			Server:    envFirst("SMTP_SERVER", "THEATER_SMTP_SERVER", "smtp.gmail.com"),
			Port:      envInt("SMTP_PORT", "THEATER_SMTP_PORT", 587),
			UseTLS:    envBool("USE_TLS", "THEATER_SMTP_TLS", true),
			Sender:    envFirst("SENDER_EMAIL", "THEATER_SENDER_EMAIL", ""),
			Password:  envFirst("SENDER_PASSWORD", "THEATER_SENDER_PASSWORD", ""),
			Recipient: envFirst("RECIPIENT_EMAIL", "THEATER_RECIPIENT_EMAIL", ""),
		},
	}
}

// Validate reports configuration problems without aborting. Email settings
// are only checked when email appears to be in use at all.
func (c Config) Validate() []string {
	var issues []string

	if c.Email.Sender != "" || c.Email.Recipient != "" {
		if c.Email.Server == "" {
			issues = append(issues, "missing required email config: smtp server")
		}
		if c.Email.Sender == "" {
			issues = append(issues, "missing required email config: sender email")
		}
		if c.Email.Recipient == "" {
			issues = append(issues, "missing required email config: recipient email")
		}
	}

	if c.SnapshotDir == "" {
		issues = append(issues, "missing snapshot directory")
	}
	if len(c.Sites) == 0 {
		issues = append(issues, "no sites configured")
	}

	return issues
}

// SiteByID finds a configured site by its identifier.
func (c Config) SiteByID(id string) (Site, error) {
	for _, site := range c.Sites {
		if site.ID == id {
			return site, nil
		}
	}
	return Site{}, fmt.Errorf("unknown site %q", id)
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

// envFirst checks the plain name first, then the THEATER_ prefixed one.
func envFirst(key, altKey, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	if v, ok := os.LookupEnv(altKey); ok && v != "" {
		return v
	}
	return fallback
}

func envInt(key, altKey string, fallback int) int {
	raw := envFirst(key, altKey, "")
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		slog.Warn("invalid integer in environment", "key", key, "value", raw)
		return fallback
	}
	return n
}

func envBool(key, altKey string, fallback bool) bool {
	raw := envFirst(key, altKey, "")
	if raw == "" {
		return fallback
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		slog.Warn("invalid boolean in environment", "key", key, "value", raw)
		return fallback
	}
	return b
}
