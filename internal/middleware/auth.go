package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/afritok/afritok/internal/models"
	"github.com/afritok/afritok/internal/service/session"
	"github.com/afritok/afritok/internal/store"
)

type contextKey string

const userContextKey contextKey = "user"

// UserResolver looks up the account a verified credential points at.
type UserResolver interface {
	GetUserByPhone(ctx context.Context, phone string) (*models.User, error)
}

type SessionMiddleware struct {
	sessions *session.Service
	users    UserResolver
	logger   *logrus.Logger
}

func NewSessionMiddleware(sessions *session.Service, users UserResolver, logger *logrus.Logger) *SessionMiddleware {
	return &SessionMiddleware{
		sessions: sessions,
		users:    users,
		logger:   logger,
	}
}

// resolve recovers the authenticated user from the request. Tampered and
// expired credentials resolve to nil, as does a credential whose user no
// longer exists; a non-nil error means the lookup itself failed and the
// credential's state is unknown.
func (m *SessionMiddleware) resolve(r *http.Request) (*models.User, error) {
	claims, err := m.sessions.Resolve(r)
	if err != nil {
		return nil, nil
	}

	user, err := m.users.GetUserByPhone(r.Context(), claims.Phone)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			m.logger.WithField("phone", claims.Phone).Debug("Session credential for unknown user")
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

// RequireAuth rejects requests that do not resolve to a user. A failed
// user lookup is reported as retryable, not as unauthenticated.
func (m *SessionMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := m.resolve(r)
		if err != nil {
			m.logger.WithError(err).Error("Failed to resolve session user")
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"error":{"code":"TEMPORARY_FAILURE","message":"Could not process the request, try again"}}`))
			return
		}
		if user == nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":{"code":"UNAUTHENTICATED","message":"Authentication required"}}`))
			return
		}
		next.ServeHTTP(w, r.WithContext(withUser(r.Context(), user)))
	})
}

// OptionalAuth attaches the user when a valid credential is present and
// passes anonymous traffic through untouched. A failed lookup degrades to
// anonymous rather than failing a public route.
func (m *SessionMiddleware) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := m.resolve(r)
		if err != nil {
			m.logger.WithError(err).Warn("Failed to resolve session user, continuing as anonymous")
		}
		if user != nil {
			r = r.WithContext(withUser(r.Context(), user))
		}
		next.ServeHTTP(w, r)
	})
}

func withUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// UserFrom returns the authenticated user attached by the middleware.
func UserFrom(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userContextKey).(*models.User)
	return user, ok
}
