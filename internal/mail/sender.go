package mail

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

// ErrDelivery marks a failure reported by, or while reaching, the mail provider.
var ErrDelivery = errors.New("mail delivery failed")

// Message is a single outbound email.
type Message struct {
	ToEmail string
	ToName  string
	Subject string
	HTML    string
	Text    string
}

// Sender delivers email messages.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// LogSender records messages in the log instead of delivering them.
// It is wired when no provider key is configured.
type LogSender struct {
	logger *zap.Logger
	from   string
}

// NewLogSender returns a sender that only logs.
func NewLogSender(logger *zap.Logger, from string) *LogSender {
	return &LogSender{logger: logger, from: from}
}

// Send logs msg.
func (s *LogSender) Send(_ context.Context, msg Message) error {
	s.logger.Info("mail provider not configured; message logged only",
		zap.String("from", s.from),
		zap.String("to", msg.ToEmail),
		zap.String("subject", msg.Subject))
	return nil
}
