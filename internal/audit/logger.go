// Package audit writes security-relevant events to the structured log.
package audit

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/mileusna/useragent"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type EventType string

const (
	EventLoginSuccess    EventType = "login_success"
	EventLoginFailure    EventType = "login_failure"
	EventLogout          EventType = "logout"
	EventAuthFailure     EventType = "auth_failure"
	EventCSRFFailure     EventType = "csrf_failure"
	EventRateLimitExceed EventType = "rate_limit_exceeded"
	EventContentCreate   EventType = "content_create"
	EventContentUpdate   EventType = "content_update"
	EventContentDelete   EventType = "content_delete"
	EventContactReceived EventType = "contact_received"
	EventContactUpdate   EventType = "contact_update"
	EventTranslate       EventType = "content_translate"
)

type Event struct {
	Type       EventType
	UserID     string
	Email      string
	Collection string
	RecordID   string
	IP         string
	UserAgent  string
	Details    map[string]any
}

func Log(ctx context.Context, event Event) {
	logger := log.Ctx(ctx)
	if logger.GetLevel() == zerolog.Disabled {
		logger = &log.Logger
	}

	e := logger.Info().
		Str("audit", "security").
		Str("event_type", string(event.Type)).
		Time("timestamp", time.Now())

	if event.UserID != "" {
		e = e.Str("user_id", event.UserID)
	}
	if event.Email != "" {
		e = e.Str("email", event.Email)
	}
	if event.Collection != "" {
		e = e.Str("collection", event.Collection)
	}
	if event.RecordID != "" {
		e = e.Str("record_id", event.RecordID)
	}
	if event.IP != "" {
		e = e.Str("ip", event.IP)
	}
	if event.UserAgent != "" {
		ua := useragent.Parse(event.UserAgent)
		e = e.Str("user_agent", event.UserAgent).Bool("bot", ua.Bot)
		if ua.Name != "" {
			e = e.Str("browser", ua.Name)
		}
		if ua.OS != "" {
			e = e.Str("os", ua.OS)
		}
	}
	for k, v := range event.Details {
		e = addField(e, k, v)
	}
	e.Msg("security audit event")
}

func addField(e *zerolog.Event, key string, value any) *zerolog.Event {
	switch v := value.(type) {
	case string:
		return e.Str(key, v)
	case int:
		return e.Int(key, v)
	case int64:
		return e.Int64(key, v)
	case bool:
		return e.Bool(key, v)
	default:
		return e.Interface(key, v)
	}
}

func LogFromRequest(r *http.Request, event Event) {
	event.IP = ClientIP(r)
	event.UserAgent = r.UserAgent()
	Log(r.Context(), event)
}

// ClientIP returns the remote host without its port. chi's RealIP middleware
// has already replaced RemoteAddr with the forwarded address when present.
func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
