package mail

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"

	"github.com/cancelshield/api/internal/config"
)

const (
	sendGridHost     = "https://api.sendgrid.com"
	sendGridEndpoint = "/v3/mail/send"
)

// SendGridSender delivers mail through the SendGrid v3 API. Requests are not retried.
type SendGridSender struct {
	apiKey string
	host   string
	from   *sgmail.Email
	logger *zap.Logger
}

// NewSendGridSender builds a sender from mail configuration.
func NewSendGridSender(cfg config.MailConfig, logger *zap.Logger) *SendGridSender {
	return &SendGridSender{
		apiKey: cfg.SendGridAPIKey,
		host:   sendGridHost,
		from:   sgmail.NewEmail(cfg.SenderName, cfg.SenderEmail),
		logger: logger,
	}
}

// WithHost points the sender at another API host.
func (s *SendGridSender) WithHost(host string) *SendGridSender {
	clone := *s
	clone.host = host
	return &clone
}

// Send posts msg to SendGrid. Any transport error or non-2xx status wraps ErrDelivery.
func (s *SendGridSender) Send(ctx context.Context, msg Message) error {
	to := sgmail.NewEmail(msg.ToName, msg.ToEmail)
	message := sgmail.NewSingleEmail(s.from, msg.Subject, to, msg.Text, msg.HTML)

	request := sendgrid.GetRequest(s.apiKey, sendGridEndpoint, s.host)
	request.Method = http.MethodPost
	request.Body = sgmail.GetRequestBody(message)

	response, err := sendgrid.MakeRequestWithContext(ctx, request)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDelivery, err)
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return fmt.Errorf("%w: sendgrid status %d: %s", ErrDelivery, response.StatusCode, response.Body)
	}

	s.logger.Info("email sent",
		zap.String("to", msg.ToEmail),
		zap.String("subject", msg.Subject),
		zap.Int("status", response.StatusCode))
	return nil
}
