package mail

import (
	"bufio"
	"context"
	"io"
	"mime/quotedprintable"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/negligencias/site-server/internal/i18n"
	"github.com/negligencias/site-server/internal/model"
)

func strPtr(s string) *string { return &s }

func testContact(locale string) *model.Contact {
	return &model.Contact{
		ID:        "c1",
		Name:      "Lucía Pérez",
		Email:     "lucia@example.com",
		Phone:     strPtr("600123123"),
		Message:   "Mi padre sufrió un error de diagnóstico.",
		SourceURL: strPtr("https://example.com/es/contacto"),
		UTMSource: strPtr("google"),
		Locale:    locale,
	}
}

// fakeSMTP accepts a single session and returns the DATA payload.
func fakeSMTP(t *testing.T) (host string, port int, received <-chan string) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })

	out := make(chan string, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		r := bufio.NewReader(conn)
		write := func(s string) { io.WriteString(conn, s+"\r\n") }

		write("220 localhost ESMTP")
		for {
			line, err := r.ReadString('\n')
			if err != nil {
				return
			}
			cmd := strings.ToUpper(strings.TrimSpace(line))
			switch {
			case strings.HasPrefix(cmd, "EHLO"):
				write("250-localhost")
				write("250 8BITMIME")
			case strings.HasPrefix(cmd, "MAIL"), strings.HasPrefix(cmd, "RCPT"):
				write("250 OK")
			case cmd == "DATA":
				write("354 go ahead")
				var data strings.Builder
				for {
					l, err := r.ReadString('\n')
					if err != nil {
						return
					}
					if l == ".\r\n" {
						break
					}
					data.WriteString(l)
				}
				out <- data.String()
				write("250 queued")
			case cmd == "QUIT":
				write("221 bye")
				return
			default:
				write("250 OK")
			}
		}
	}()

	addr := ln.Addr().(*net.TCPAddr)
	return "127.0.0.1", addr.Port, out
}

func decodeBody(t *testing.T, raw string) string {
	t.Helper()
	_, body, ok := strings.Cut(raw, "\r\n\r\n")
	require.True(t, ok)
	decoded, err := io.ReadAll(quotedprintable.NewReader(strings.NewReader(body)))
	require.NoError(t, err)
	return string(decoded)
}

func TestBuildMessage(t *testing.T) {
	msg, err := buildMessage("no-reply@example.com", "Negligencias", "staff@example.com", "lucia@example.com", "Nueva consulta de Lucía", "<p>Hola</p>")
	require.NoError(t, err)

	s := string(msg)
	assert.Contains(t, s, "From: Negligencias <no-reply@example.com>\r\n")
	assert.Contains(t, s, "To: staff@example.com\r\n")
	assert.Contains(t, s, "Reply-To: lucia@example.com\r\n")
	assert.Contains(t, s, "Subject: =?utf-8?q?Nueva_consulta_de_Luc=C3=ADa?=\r\n")
	assert.Contains(t, s, "Content-Transfer-Encoding: quoted-printable\r\n")
	assert.Equal(t, "<p>Hola</p>", decodeBody(t, s))
}

func TestBuildMessageRejectsHeaderInjection(t *testing.T) {
	_, err := buildMessage("a@example.com", "", "b@example.com\r\nBcc: x@example.com", "", "hi", "body")
	assert.Error(t, err)
}

func TestRenderConfirmUsesSubmitterLocale(t *testing.T) {
	body, err := render("confirm.html", contactEmail{Locale: i18n.English, SiteName: "Negligencias", SiteURL: "https://example.com", Contact: testContact("en")})
	require.NoError(t, err)
	assert.Contains(t, body, "Hello Lucía Pérez,")
	assert.Contains(t, body, "A lawyer will review your case")

	body, err = render("confirm.html", contactEmail{Locale: i18n.Spanish, Contact: testContact("es")})
	require.NoError(t, err)
	assert.Contains(t, body, "Hola Lucía Pérez,")
}

func TestRenderStaffEscapesInput(t *testing.T) {
	c := testContact("es")
	c.Message = "<script>alert(1)</script>"
	body, err := render("staff.html", contactEmail{Locale: i18n.Spanish, SiteURL: "https://example.com", Contact: c})
	require.NoError(t, err)
	assert.NotContains(t, body, "<script>")
	assert.Contains(t, body, "600123123")
	assert.Contains(t, body, "google")
	assert.Contains(t, body, "https://example.com/admin/contacts")
}

func TestNotifyStaffWithoutAddressIsNoop(t *testing.T) {
	m := New(Config{Host: "127.0.0.1", Port: 1, Timeout: time.Second})
	assert.NoError(t, m.NotifyStaff(context.Background(), testContact("es")))
}

func TestNotifyStaffDelivers(t *testing.T) {
	host, port, received := fakeSMTP(t)
	m := New(Config{
		Host: host, Port: port, From: "no-reply@example.com", Staff: "staff@example.com",
		SiteName: "Negligencias", SiteURL: "https://example.com", Timeout: 2 * time.Second,
	})

	require.NoError(t, m.NotifyStaff(context.Background(), testContact("es")))

	select {
	case raw := <-received:
		assert.Contains(t, raw, "To: staff@example.com")
		assert.Contains(t, raw, "Reply-To: lucia@example.com")
		assert.Contains(t, decodeBody(t, raw), "Mi padre sufrió un error de diagnóstico.")
	case <-time.After(2 * time.Second):
		t.Fatal("no message received")
	}
}

func TestConfirmSubmitterDelivers(t *testing.T) {
	host, port, received := fakeSMTP(t)
	m := New(Config{Host: host, Port: port, From: "no-reply@example.com", Timeout: 2 * time.Second})

	require.NoError(t, m.ConfirmSubmitter(context.Background(), testContact("en")))

	raw := <-received
	assert.Contains(t, raw, "To: lucia@example.com")
	assert.NotContains(t, raw, "Reply-To")
	assert.Contains(t, raw, "We have received your enquiry")
}

func TestSendFailsWhenRelayUnreachable(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	ln.Close()

	m := New(Config{Host: "127.0.0.1", Port: port, From: "a@example.com", Timeout: time.Second})
	err = m.Send(context.Background(), "b@example.com", "", "hi", "body")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mail: dial")
}
