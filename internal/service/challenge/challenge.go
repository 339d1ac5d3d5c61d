// Package challenge implements the OTP issue/verify state machine.
package challenge

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/afritok/afritok/internal/models"
	"github.com/afritok/afritok/internal/store"
)

var (
	ErrInvalidPhone      = errors.New("invalid phone number format")
	ErrMalformedCode     = errors.New("malformed code")
	ErrChallengeNotFound = errors.New("no challenge outstanding")
	ErrChallengeExpired  = errors.New("challenge expired")
	ErrCodeMismatch      = errors.New("code mismatch")
	ErrTooManyAttempts   = errors.New("too many attempts")
)

var (
	// E.164: +[country code][number], max 15 digits.
	phoneRegex = regexp.MustCompile(`^\+[1-9]\d{1,14}$`)
	codeRegex  = regexp.MustCompile(`^\d{6}$`)
)

type Config struct {
	TTL         time.Duration
	MaxAttempts int
}

type Service struct {
	store       store.ChallengeStore
	sender      Sender
	ttl         time.Duration
	maxAttempts int
	logger      *logrus.Logger
}

// Sender mirrors sms.Sender; declared here so the service depends on the
// behavior, not the package.
type Sender interface {
	Send(ctx context.Context, phone, code string) error
}

func NewService(st store.ChallengeStore, sender Sender, cfg Config, logger *logrus.Logger) *Service {
	return &Service{
		store:       st,
		sender:      sender,
		ttl:         cfg.TTL,
		maxAttempts: cfg.MaxAttempts,
		logger:      logger,
	}
}

// NormalizePhone trims whitespace, prefixes a missing "+", and checks the
// E.164 shape.
func NormalizePhone(raw string) (string, error) {
	phone := strings.TrimSpace(raw)
	if phone == "" {
		return "", ErrInvalidPhone
	}
	if !strings.HasPrefix(phone, "+") {
		phone = "+" + phone
	}
	if !phoneRegex.MatchString(phone) {
		return "", ErrInvalidPhone
	}
	return phone, nil
}

// Request issues a fresh challenge for the phone, replacing any live one.
// The stored challenge stays valid whether or not delivery succeeds, so a
// caller cannot learn from the response whether the number is deliverable.
func (s *Service) Request(ctx context.Context, phone string) error {
	code, err := generateCode()
	if err != nil {
		return fmt.Errorf("failed to generate code: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash code: %w", err)
	}

	now := time.Now().UTC()
	ch := models.Challenge{
		ID:        uuid.New().String(),
		Phone:     phone,
		CodeHash:  string(hash),
		Attempts:  0,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.ttl),
	}

	if err := s.store.Put(ctx, ch); err != nil {
		s.logger.WithError(err).Error("Failed to store challenge")
		return fmt.Errorf("failed to store challenge: %w", err)
	}

	if err := s.sender.Send(ctx, phone, code); err != nil {
		s.logger.WithError(err).WithField("phone", phone).Error("OTP delivery failed")
	}
	return nil
}

// Verify runs the challenge state machine for a (phone, code) pair:
// absent -> ErrChallengeNotFound, expired -> consumed + ErrChallengeExpired,
// mismatch -> attempt counted (cap consumes), match -> consumed exactly once.
func (s *Service) Verify(ctx context.Context, phone, code string) error {
	if !codeRegex.MatchString(code) {
		return ErrMalformedCode
	}

	ch, err := s.store.Get(ctx, phone)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrChallengeNotFound
		}
		return fmt.Errorf("failed to get challenge: %w", err)
	}

	if ch.Expired(time.Now().UTC()) {
		if err := s.store.Delete(ctx, phone); err != nil {
			s.logger.WithError(err).Warn("Failed to delete expired challenge")
		}
		return ErrChallengeExpired
	}

	if bcrypt.CompareHashAndPassword([]byte(ch.CodeHash), []byte(code)) != nil {
		ch.Attempts++
		if ch.Attempts >= s.maxAttempts {
			if err := s.store.DeleteIfMatch(ctx, phone, ch.ID); err != nil && !errors.Is(err, store.ErrNotFound) && !errors.Is(err, store.ErrConflict) {
				s.logger.WithError(err).Warn("Failed to consume challenge after attempt cap")
			}
			return ErrTooManyAttempts
		}
		// Conditioned on the ID so a fresh challenge put for the same
		// phone between the Get and this write is never clobbered.
		if err := s.store.UpdateIfMatch(ctx, phone, ch.ID, ch.Attempts); err != nil && !errors.Is(err, store.ErrNotFound) && !errors.Is(err, store.ErrConflict) {
			s.logger.WithError(err).Warn("Failed to record failed attempt")
		}
		return ErrCodeMismatch
	}

	// Consume only the challenge that was matched: a fresh Put for the same
	// phone racing this verify must survive.
	if err := s.store.DeleteIfMatch(ctx, phone, ch.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) || errors.Is(err, store.ErrConflict) {
			// Replaced or already consumed between Get and delete; the
			// match itself stands.
			return nil
		}
		return fmt.Errorf("failed to consume challenge: %w", err)
	}
	return nil
}

// generateCode draws uniformly over the 6-digit space [100000, 999999].
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
