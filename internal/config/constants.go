package config

import "time"

// Database connection pool settings
const (
	DBMaxOpenConns    = 25
	DBMaxIdleConns    = 5
	DBConnMaxLifetime = 5 * time.Minute
)

// HTTP server timeouts
const (
	ServerRequestTimeout  = 30 * time.Second
	ServerReadTimeout     = 15 * time.Second
	ServerWriteTimeout    = 30 * time.Second
	ServerIdleTimeout     = 120 * time.Second
	ServerShutdownTimeout = 30 * time.Second
)

// Database ping timeout for health checks
const DBPingTimeout = 5 * time.Second

// Outbound calls (SMTP, translation API, Redis) fail fast.
const DefaultUpstreamTimeout = 5 * time.Second

// Admin sessions last a week.
const SessionLifetime = 7 * 24 * time.Hour

// Admin login attempts per client IP per minute.
const LoginAttemptsPerMin = 5

// Public listing page size.
const PublicPageSize = 12
