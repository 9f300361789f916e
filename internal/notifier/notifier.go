package notifier

import (
	"context"

	"go.uber.org/zap"
	gomail "gopkg.in/gomail.v2"
)

// Notifier is the outbound mail boundary. Dispatch is fire-and-forget
// from the pipeline's perspective: a failed send is logged and counted
// but never gates order completion.
type Notifier interface {
	Send(ctx context.Context, recipient, subject, body string) error
}

// SMTPNotifier sends plain-text mail through an SMTP relay.
type SMTPNotifier struct {
	dialer *gomail.Dialer
	from   string
	logger *zap.Logger
}

func NewSMTPNotifier(host string, port int, username, password, from string, l *zap.Logger) *SMTPNotifier {
	return &SMTPNotifier{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
		logger: l,
	}
}

func (n *SMTPNotifier) Send(ctx context.Context, recipient, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", recipient)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := n.dialer.DialAndSend(m); err != nil {
		n.logger.Error("Failed to send mail", zap.String("recipient", recipient), zap.Error(err))
		return err
	}
	n.logger.Debug("Mail sent", zap.String("recipient", recipient), zap.String("subject", subject))
	return nil
}

// LogNotifier only logs the would-be mail. Used when no SMTP relay is
// configured (local runs, CI).
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(l *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: l}
}

func (n *LogNotifier) Send(_ context.Context, recipient, subject, body string) error {
	n.logger.Info("Mail dispatch (log only)",
		zap.String("recipient", recipient),
		zap.String("subject", subject),
		zap.String("body", body))
	return nil
}
