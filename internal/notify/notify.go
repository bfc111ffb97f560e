package notify

import (
	"context"

	"go.uber.org/zap"
)

// Sender delivers one-time passcodes to a professional.
type Sender interface {
	SendOTP(ctx context.Context, tenantSlug, email, code string) error
}

// LogSender writes codes to the log. Used until a mail provider is configured.
type LogSender struct {
	log *zap.Logger
}

func NewLogSender(log *zap.Logger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) SendOTP(_ context.Context, tenantSlug, email, code string) error {
	s.log.Info("otp issued", zap.String("tenant", tenantSlug), zap.String("email", email))
	s.log.Debug("otp code", zap.String("email", email), zap.String("otp", code))
	return nil
}
