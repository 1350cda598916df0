// Package mail owns the SMTP transport. The client is constructed once at
// boot and injected into the notifier; there is no package-level singleton.
package mail

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/textproto"
	"syscall"
	"time"

	gomail "github.com/wneessen/go-mail"
)

// Message is a fully rendered transactional email. Both bodies are always
// present; clients pick whichever they can display.
type Message struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

// Config holds SMTP connection settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	Timeout  time.Duration
}

const implicitTLSPort = 465

// Mailer sends transactional email over SMTP. A transient failure is
// retried exactly once; non-transient errors and second failures propagate
// to the caller, who only logs them.
type Mailer struct {
	client *gomail.Client
	from   string
}

func NewMailer(cfg Config) (*Mailer, error) {
	if cfg.Host == "" {
		return nil, errors.New("mail: host is required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	opts := []gomail.Option{
		gomail.WithPort(cfg.Port),
		gomail.WithTimeout(cfg.Timeout),
	}
	if cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.Username),
			gomail.WithPassword(cfg.Password),
		)
	}
	// Implicit TLS when the port is the TLS default, STARTTLS otherwise.
	if cfg.Port == implicitTLSPort {
		opts = append(opts, gomail.WithSSL())
	} else {
		opts = append(opts, gomail.WithTLSPolicy(gomail.TLSOpportunistic))
	}

	client, err := gomail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("mail: %w", err)
	}

	return &Mailer{client: client, from: cfg.From}, nil
}

// Send delivers a message, retrying once if the first attempt fails with a
// transient error.
func (m *Mailer) Send(ctx context.Context, msg Message) error {
	err := m.send(ctx, msg)
	if err == nil || !IsTransient(err) {
		return err
	}
	return m.send(ctx, msg)
}

func (m *Mailer) send(ctx context.Context, msg Message) error {
	out := gomail.NewMsg()
	if err := out.From(m.from); err != nil {
		return err
	}
	if err := out.To(msg.To); err != nil {
		return err
	}
	out.Subject(msg.Subject)
	out.SetBodyString(gomail.TypeTextPlain, msg.Text)
	out.AddAlternativeString(gomail.TypeTextHTML, msg.HTML)

	return m.client.DialAndSendWithContext(ctx, out)
}

// Close tears down the SMTP connection at shutdown.
func (m *Mailer) Close() error {
	err := m.client.Close()
	if err != nil && !errors.Is(err, gomail.ErrNoActiveConnection) {
		return err
	}
	return nil
}

// IsTransient classifies delivery errors worth one retry: network, timeout
// and connection errors, plus 5xx SMTP responses from an overloaded or
// flapping relay. Permanent rejections (auth, bad recipient) are not
// retried.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}

	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.EPIPE) {
		return true
	}

	var protoErr *textproto.Error
	if errors.As(err, &protoErr) {
		return protoErr.Code >= 500
	}

	return false
}
