// Package sms is the out-of-band delivery collaborator for OTP codes.
package sms

import (
	"context"

	"github.com/sirupsen/logrus"
)

// Sender delivers an OTP code to a phone number. Delivery is
// fire-and-forget relative to the stored challenge: a failed send does not
// invalidate the code.
type Sender interface {
	Send(ctx context.Context, phone, code string) error
}

// LogSender writes the code to the log instead of sending it. Development
// only; a gateway-backed sender replaces it in production.
type LogSender struct {
	logger *logrus.Logger
}

func NewLogSender(logger *logrus.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(_ context.Context, phone, code string) error {
	s.logger.WithFields(logrus.Fields{
		"phone": phone,
		"code":  code,
	}).Info("OTP generated (logged for development)")
	return nil
}
