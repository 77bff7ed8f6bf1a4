package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/cancelshield/api/internal/domain"
	"github.com/cancelshield/api/internal/mail"
)

type recordingSender struct {
	sent []mail.Message
	err  error
}

func (r *recordingSender) Send(_ context.Context, msg mail.Message) error {
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, msg)
	return nil
}

func TestAlertService_SendTestAlert(t *testing.T) {
	sender := &recordingSender{}
	svc := NewAlertService(sender, zaptest.NewLogger(t))

	err := svc.SendTestAlert(context.Background(), &domain.User{ID: "user_a", Email: "alice@x.com", Name: "Alice"})
	require.NoError(t, err)

	require.Len(t, sender.sent, 1)
	msg := sender.sent[0]
	assert.Equal(t, "alice@x.com", msg.ToEmail)
	assert.Equal(t, "CancelShield Test Alert", msg.Subject)
	assert.Contains(t, msg.HTML, "<h2>CancelShield Alert</h2>")
	assert.Contains(t, msg.HTML, "This is a test reminder email.")
}

func TestAlertService_SurfacesDeliveryFailure(t *testing.T) {
	sender := &recordingSender{err: fmt.Errorf("%w: sendgrid status 500", mail.ErrDelivery)}
	svc := NewAlertService(sender, zaptest.NewLogger(t))

	err := svc.SendTestAlert(context.Background(), &domain.User{ID: "user_a", Email: "alice@x.com"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, mail.ErrDelivery))
}
