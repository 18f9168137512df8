// Package mail delivers contact notifications over SMTP.
package mail

import (
	"bytes"
	"context"
	"crypto/tls"
	"embed"
	"fmt"
	"html/template"
	"mime"
	"mime/quotedprintable"
	"net"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/negligencias/site-server/internal/i18n"
	"github.com/negligencias/site-server/internal/model"
)

//go:embed templates/*.html
var templatesFS embed.FS

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"t": i18n.T,
	"tf": func(locale i18n.Locale, key string, args ...any) string {
		return fmt.Sprintf(i18n.T(locale, key), args...)
	},
}).ParseFS(templatesFS, "templates/*.html"))

// implicitTLSPort is the SMTPS port; every other port upgrades with STARTTLS when offered.
const implicitTLSPort = 465

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	Staff    string
	SiteName string
	SiteURL  string
	Timeout  time.Duration
}

type Mailer struct {
	cfg Config
}

func New(cfg Config) *Mailer {
	return &Mailer{cfg: cfg}
}

type contactEmail struct {
	Locale   i18n.Locale
	SiteName string
	SiteURL  string
	Contact  *model.Contact
}

// NotifyStaff sends the lead to the firm's inbox. Without a staff address it does nothing.
func (m *Mailer) NotifyStaff(ctx context.Context, c *model.Contact) error {
	if m.cfg.Staff == "" {
		return nil
	}
	subject := fmt.Sprintf(i18n.T(i18n.Spanish, "mail.staff.subject"), c.Name)
	body, err := render("staff.html", contactEmail{
		Locale: i18n.Spanish, SiteName: m.cfg.SiteName, SiteURL: m.cfg.SiteURL, Contact: c,
	})
	if err != nil {
		return err
	}
	return m.Send(ctx, m.cfg.Staff, c.Email, subject, body)
}

// ConfirmSubmitter acknowledges the request in the submitter's language.
func (m *Mailer) ConfirmSubmitter(ctx context.Context, c *model.Contact) error {
	locale := i18n.LocaleOrDefault(c.Locale)
	body, err := render("confirm.html", contactEmail{
		Locale: locale, SiteName: m.cfg.SiteName, SiteURL: m.cfg.SiteURL, Contact: c,
	})
	if err != nil {
		return err
	}
	return m.Send(ctx, c.Email, "", i18n.T(locale, "mail.confirm.subject"), body)
}

func render(name string, data contactEmail) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("mail: render %s: %w", name, err)
	}
	return buf.String(), nil
}

// Send delivers one HTML message. The whole SMTP conversation is bounded by the configured timeout.
func (m *Mailer) Send(ctx context.Context, to, replyTo, subject, htmlBody string) error {
	msg, err := buildMessage(m.cfg.From, m.cfg.SiteName, to, replyTo, subject, htmlBody)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, m.cfg.Timeout)
	defer cancel()

	conn, err := m.dial(ctx)
	if err != nil {
		return fmt.Errorf("mail: dial: %w", err)
	}
	defer conn.Close()
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
	}

	c, err := smtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		return fmt.Errorf("mail: new client: %w", err)
	}
	defer c.Close()

	if m.cfg.Port != implicitTLSPort {
		if ok, _ := c.Extension("STARTTLS"); ok {
			if err := c.StartTLS(&tls.Config{ServerName: m.cfg.Host}); err != nil {
				return fmt.Errorf("mail: starttls: %w", err)
			}
		}
	}
	if m.cfg.Username != "" {
		if ok, _ := c.Extension("AUTH"); ok {
			auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
			if err := c.Auth(auth); err != nil {
				return fmt.Errorf("mail: auth: %w", err)
			}
		}
	}
	if err := c.Mail(m.cfg.From); err != nil {
		return fmt.Errorf("mail: MAIL FROM: %w", err)
	}
	if err := c.Rcpt(to); err != nil {
		return fmt.Errorf("mail: RCPT TO: %w", err)
	}
	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("mail: DATA: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		_ = w.Close()
		return fmt.Errorf("mail: write body: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("mail: close data: %w", err)
	}
	return c.Quit()
}

func (m *Mailer) dial(ctx context.Context) (net.Conn, error) {
	addr := net.JoinHostPort(m.cfg.Host, strconv.Itoa(m.cfg.Port))
	if m.cfg.Port == implicitTLSPort {
		d := &tls.Dialer{Config: &tls.Config{ServerName: m.cfg.Host}}
		return d.DialContext(ctx, "tcp", addr)
	}
	var d net.Dialer
	return d.DialContext(ctx, "tcp", addr)
}

func buildMessage(from, fromName, to, replyTo, subject, htmlBody string) ([]byte, error) {
	if strings.ContainsAny(to+replyTo+subject, "\r\n") {
		return nil, fmt.Errorf("mail: header contains a line break")
	}

	var buf bytes.Buffer
	header := func(k, v string) {
		buf.WriteString(k)
		buf.WriteString(": ")
		buf.WriteString(v)
		buf.WriteString("\r\n")
	}

	if fromName != "" {
		header("From", fmt.Sprintf("%s <%s>", mime.QEncoding.Encode("utf-8", fromName), from))
	} else {
		header("From", from)
	}
	header("To", to)
	if replyTo != "" {
		header("Reply-To", replyTo)
	}
	header("Subject", mime.QEncoding.Encode("utf-8", subject))
	header("Date", time.Now().Format(time.RFC1123Z))
	header("MIME-Version", "1.0")
	header("Content-Type", "text/html; charset=UTF-8")
	header("Content-Transfer-Encoding", "quoted-printable")
	buf.WriteString("\r\n")

	qp := quotedprintable.NewWriter(&buf)
	if _, err := qp.Write([]byte(htmlBody)); err != nil {
		return nil, fmt.Errorf("mail: encode body: %w", err)
	}
	if err := qp.Close(); err != nil {
		return nil, fmt.Errorf("mail: encode body: %w", err)
	}
	return buf.Bytes(), nil
}
