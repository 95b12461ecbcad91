package mailer

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	mail "gopkg.in/mail.v2"

	"lostfound/config"
	"lostfound/internal/audit"
	"lostfound/internal/metrics"
)

// Outcome is the result of one delivery attempt. The mailer is a boundary:
// transport errors never escape as panics or propagated failures, they come
// back here and the caller matches on OK.
type Outcome struct {
	Sent    bool
	Skipped bool
	Err     error
}

// OK reports whether the workflow may treat the attempt as successful. A
// skipped send (transport unconfigured) counts as success so the rest of the
// workflow still runs end to end in environments without mail credentials.
func (o Outcome) OK() bool {
	return o.Err == nil
}

type Mailer struct {
	cfg    config.SMTPConfig
	trail  *audit.Trail
	logger *zap.Logger

	dialAndSend func(ctx context.Context, m ...*mail.Message) error
}

func New(cfg config.SMTPConfig, trail *audit.Trail, logger *zap.Logger) *Mailer {
	m := &Mailer{
		cfg:    cfg,
		trail:  trail,
		logger: logger,
	}
	m.dialAndSend = m.realDialAndSend
	return m
}

// Send delivers a plain-text email. Every real attempt, success or failure,
// appends exactly one line to the mail audit trail. The transport dial,
// handshake and submission are bounded by ctx's deadline.
func (m *Mailer) Send(ctx context.Context, to, subject, body string) Outcome {
	if missing := m.missingKeys(); len(missing) > 0 {
		m.logger.Warn("Email transport not configured, treating send as successful",
			zap.String("missing", strings.Join(missing, ", ")),
			zap.String("to", to),
			zap.String("subject", subject),
		)
		metrics.RecordEmailSend("skipped")
		return Outcome{Skipped: true}
	}

	msg := mail.NewMessage()
	msg.SetHeader("From", m.cfg.Sender)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialAndSend(ctx, msg); err != nil {
		m.logger.Error("Failed to send email", zap.String("to", to), zap.Error(err))
		m.trail.Appendf("ERROR sending email to %s: %v", to, err)
		metrics.RecordEmailSend("failed")
		return Outcome{Err: err}
	}

	m.trail.Appendf("SUCCESS: Sent to %s", to)
	metrics.RecordEmailSend("sent")
	return Outcome{Sent: true}
}

func (m *Mailer) realDialAndSend(ctx context.Context, msgs ...*mail.Message) error {
	d := mail.NewDialer(m.cfg.Host, m.cfg.Port, m.cfg.User, m.cfg.Password)
	d.StartTLSPolicy = mail.MandatoryStartTLS
	if deadline, ok := ctx.Deadline(); ok {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return ctx.Err()
		}
		d.Timeout = remaining
	}
	return d.DialAndSend(msgs...)
}

func (m *Mailer) missingKeys() []string {
	var missing []string
	if m.cfg.Sender == "" {
		missing = append(missing, "EMAIL_SENDER")
	}
	if m.cfg.Host == "" {
		missing = append(missing, "EMAIL_HOST")
	}
	if m.cfg.User == "" {
		missing = append(missing, "EMAIL_USER")
	}
	if m.cfg.Password == "" {
		missing = append(missing, "EMAIL_PASS")
	}
	return missing
}
