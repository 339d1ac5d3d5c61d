// Package session mints and resolves the signed session credential. The
// server keeps no session table: validity is signature plus expiry, so a
// token that leaves through logout stays technically valid until it
// expires naturally.
package session

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/afritok/afritok/internal/models"
)

// CookieName carries the session credential on browser clients.
const CookieName = "afritok_session"

const tokenType = "session"

var ErrNoCredential = errors.New("no session credential")

type Config struct {
	Secret string
	Expiry time.Duration
	// SecureCookies marks the cookie Secure; enabled in production where
	// the service is always behind TLS.
	SecureCookies bool
}

type Service struct {
	secretKey     []byte
	expiry        time.Duration
	secureCookies bool
	logger        *logrus.Logger
}

func NewService(cfg Config, logger *logrus.Logger) (*Service, error) {
	if len(cfg.Secret) < 32 {
		return nil, fmt.Errorf("session secret must be at least 32 bytes")
	}
	return &Service{
		secretKey:     []byte(cfg.Secret),
		expiry:        cfg.Expiry,
		secureCookies: cfg.SecureCookies,
		logger:        logger,
	}, nil
}

type Claims struct {
	Phone  string `json:"phone"`
	UserID string `json:"uid"`
	Type   string `json:"typ"`
	jwt.RegisteredClaims
}

// Issue mints a signed credential for the user.
func (s *Service) Issue(user *models.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		Phone:  user.Phone,
		UserID: user.ID,
		Type:   tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Phone,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secretKey)
	if err != nil {
		s.logger.WithError(err).Error("Failed to sign session token")
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// Verify checks signature, expiry, and token type.
func (s *Service) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.Type != tokenType {
		return nil, fmt.Errorf("invalid token type")
	}
	return claims, nil
}

// Resolve extracts and verifies the credential from a request: the session
// cookie first, then an Authorization bearer token for cookie-less clients.
// An absent credential is ErrNoCredential, a normal state for anonymous
// traffic.
func (s *Service) Resolve(r *http.Request) (*Claims, error) {
	if cookie, err := r.Cookie(CookieName); err == nil && cookie.Value != "" {
		return s.Verify(cookie.Value)
	}

	auth := r.Header.Get("Authorization")
	if auth == "" {
		return nil, ErrNoCredential
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, ErrNoCredential
	}
	return s.Verify(strings.TrimSpace(parts[1]))
}

// SetCookie binds the credential to the client.
func (s *Service) SetCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.expiry.Seconds()),
		HttpOnly: true,
		Secure:   s.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie instructs the client to discard the credential.
func (s *Service) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

// GenerateSecret returns a random 256-bit secret, used as the development
// fallback when no secret is configured.
func GenerateSecret() (string, error) {
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(key), nil
}
