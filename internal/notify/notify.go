// Package notify composes the daily change report and delivers it by email.
package notify

import (
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
	"time"

	"github.com/jordan-wright/email"

	"westendwatcher/internal"
)

// SMTPConfig carries everything needed to deliver a report.
type SMTPConfig struct {
	Server    string
	Port      int
	UseTLS    bool
	Sender    string
	Password  string
	Recipient string
}

func (c SMTPConfig) valid() error {
	switch {
	case c.Server == "":
		return fmt.Errorf("missing smtp server")
	case c.Port == 0:
		return fmt.Errorf("missing smtp port")
	case c.Sender == "":
		return fmt.Errorf("missing sender email")
	case c.Recipient == "":
		return fmt.Errorf("missing recipient email")
	}
	return nil
}

const dateLayout = "02 Jan 2006"

// Compose renders a change report as an email subject and plain-text body.
// Errors collected during the run get their own section at the end.
func Compose(report internal.ChangeReport, errors []string, now time.Time) (subject, body string) {
	today := now.Format(dateLayout)
	subject = "London Theater Updates - " + today

	var b strings.Builder
	fmt.Fprintf(&b, "# London Theater Updates - %s\n\n", today)

	fmt.Fprintf(&b, "## New Shows (%d)\n\n", len(report.New))
	if len(report.New) > 0 {
		for _, show := range report.New {
			writeShow(&b, show)
		}
	} else {
		b.WriteString("No new shows detected.\n\n")
	}

	fmt.Fprintf(&b, "## Updated Shows (%d)\n\n", len(report.Updated))
	if len(report.Updated) > 0 {
		for _, update := range report.Updated {
			writeUpdate(&b, update)
		}
	} else {
		b.WriteString("No updated shows detected.\n\n")
	}

	fmt.Fprintf(&b, "## Removed Shows (%d)\n\n", len(report.Removed))
	if len(report.Removed) > 0 {
		for _, show := range report.Removed {
			writeShow(&b, show)
		}
	} else {
		b.WriteString("No removed shows detected.\n\n")
	}

	fmt.Fprintf(&b, "## Unchanged Shows (%d)\n\n", len(report.Unchanged))
	if len(report.Unchanged) > 0 {
		for _, show := range report.Unchanged {
			fmt.Fprintf(&b, "- %s (%s)\n", show.Title, show.Venue)
		}
		b.WriteString("\n")
	} else {
		b.WriteString("No unchanged shows found.\n\n")
	}

	if len(errors) > 0 {
		fmt.Fprintf(&b, "## Errors Encountered (%d)\n\n", len(errors))
		for i, msg := range errors {
			fmt.Fprintf(&b, "%d. %s\n", i+1, msg)
		}
		b.WriteString("\n")
	}

	return subject, b.String()
}

func writeShow(b *strings.Builder, show internal.ShowRecord) {
	fmt.Fprintf(b, "### %s (%s)\n", show.Title, show.Venue)
	fmt.Fprintf(b, "Title: %s\n", show.Title)
	fmt.Fprintf(b, "Venue: %s\n", show.Venue)
	fmt.Fprintf(b, "URL: %s\n", show.URL)
	if show.PerformanceStart != nil {
		fmt.Fprintf(b, "Starts: %s\n", show.PerformanceStart.Format(dateLayout))
	}
	if show.PerformanceEnd != nil {
		fmt.Fprintf(b, "Ends: %s\n", show.PerformanceEnd.Format(dateLayout))
	}
	if show.PriceRange != "" {
		fmt.Fprintf(b, "Price Range: %s\n", show.PriceRange)
	}
	if show.Description != "" {
		fmt.Fprintf(b, "Description: %s\n", show.Description)
	}
	b.WriteString("\n---\n\n")
}

func writeUpdate(b *strings.Builder, update internal.UpdatedShow) {
	current, previous := update.Current, update.Previous
	fmt.Fprintf(b, "### %s (%s)\n", current.Title, current.Venue)
	fmt.Fprintf(b, "Title: %s\n", current.Title)
	fmt.Fprintf(b, "Venue: %s\n", current.Venue)
	fmt.Fprintf(b, "URL: %s\n", current.URL)
	if !datesEqual(current.PerformanceStart, previous.PerformanceStart) {
		fmt.Fprintf(b, "Start Date: %s -> %s\n",
			formatDate(previous.PerformanceStart), formatDate(current.PerformanceStart))
	}
	if !datesEqual(current.PerformanceEnd, previous.PerformanceEnd) {
		fmt.Fprintf(b, "End Date: %s -> %s\n",
			formatDate(previous.PerformanceEnd), formatDate(current.PerformanceEnd))
	}
	if current.PriceRange != previous.PriceRange {
		fmt.Fprintf(b, "Price Range: %s -> %s\n",
			orNA(previous.PriceRange), orNA(current.PriceRange))
	}
	if current.Description != previous.Description {
		b.WriteString("Description has changed\n")
	}
	b.WriteString("\n---\n\n")
}

func formatDate(t *time.Time) string {
	if t == nil {
		return "N/A"
	}
	return t.Format(dateLayout)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func datesEqual(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

// Mailer delivers composed reports over SMTP.
type Mailer struct {
	config SMTPConfig
	send   func(e *email.Email, cfg SMTPConfig) error
}

func NewMailer(cfg SMTPConfig) *Mailer {
	return &Mailer{config: cfg, send: deliver}
}

// Send composes and delivers the report. Delivery failure is reported as an
// error so the caller can log it without aborting the run.
func (m *Mailer) Send(report internal.ChangeReport, errors []string) error {
	if err := m.config.valid(); err != nil {
		return fmt.Errorf("email not configured: %w", err)
	}

	subject, body := Compose(report, errors, time.Now())

	e := email.NewEmail()
	e.From = m.config.Sender
	e.To = []string{m.config.Recipient}
	e.Subject = subject
	e.Text = []byte(body)

	if err := m.send(e, m.config); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	slog.Info("email sent", "recipient", m.config.Recipient)
	return nil
}

func deliver(e *email.Email, cfg SMTPConfig) error {
	addr := fmt.Sprintf("%s:%d", cfg.Server, cfg.Port)

	var auth smtp.Auth
	if cfg.Password != "" {
		// App passwords are often pasted with spaces in them.
		password := strings.ReplaceAll(cfg.Password, " ", "")
		auth = smtp.PlainAuth("", cfg.Sender, password, cfg.Server)
	}

	if cfg.UseTLS {
		return e.SendWithStartTLS(addr, auth, &tls.Config{ServerName: cfg.Server})
	}
	return e.Send(addr, auth)
}
