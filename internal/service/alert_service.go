package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/cancelshield/api/internal/domain"
	"github.com/cancelshield/api/internal/mail"
)

const (
	testAlertSubject = "CancelShield Test Alert"
	testAlertHTML    = `
    <h2>CancelShield Alert</h2>
    <p>This is a test reminder email.</p>
    `
	testAlertText = "CancelShield Alert\n\nThis is a test reminder email."
)

// AlertService sends reminder emails to users.
type AlertService struct {
	sender mail.Sender
	logger *zap.Logger
}

// NewAlertService creates the service.
func NewAlertService(sender mail.Sender, logger *zap.Logger) *AlertService {
	return &AlertService{sender: sender, logger: logger}
}

// SendTestAlert emails the fixed test template to user. Nothing is persisted
// and a failed send is not retried.
func (a *AlertService) SendTestAlert(ctx context.Context, user *domain.User) error {
	msg := mail.Message{
		ToEmail: user.Email,
		ToName:  user.Name,
		Subject: testAlertSubject,
		HTML:    testAlertHTML,
		Text:    testAlertText,
	}
	if err := a.sender.Send(ctx, msg); err != nil {
		a.logger.Error("test alert delivery failed", zap.String("user_id", user.ID), zap.Error(err))
		return fmt.Errorf("send test alert: %w", err)
	}
	a.logger.Info("test alert sent", zap.String("user_id", user.ID))
	return nil
}
