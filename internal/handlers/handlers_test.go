package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/afritok/afritok/internal/middleware"
	"github.com/afritok/afritok/internal/service/challenge"
	"github.com/afritok/afritok/internal/service/session"
	"github.com/afritok/afritok/internal/store/memory"
)

// captureSender stands in for SMS delivery so tests can read the code that
// would have gone to the phone.
type captureSender struct {
	lastCode string
}

func (c *captureSender) Send(_ context.Context, _ string, code string) error {
	c.lastCode = code
	return nil
}

type testEnv struct {
	router *mux.Router
	store  *memory.Store
	sender *captureSender
}

// newTestEnv builds the full router on the in-memory store, mirroring the
// wiring in cmd/server.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	st := memory.NewStore()
	sender := &captureSender{}

	sessions, err := session.NewService(session.Config{
		Secret: "0123456789abcdef0123456789abcdef",
		Expiry: time.Hour,
	}, logger)
	require.NoError(t, err)

	challenges := challenge.NewService(st, sender, challenge.Config{
		TTL:         10 * time.Minute,
		MaxAttempts: 5,
	}, logger)

	sessionMW := middleware.NewSessionMiddleware(sessions, st, logger)

	router := NewRouter(
		NewAuthHandlers(challenges, sessions, st, logger),
		NewVideoHandlers(st, "https://afritok.example", logger),
		NewCommentHandlers(st, logger),
		NewReportHandlers(st, logger),
		NewFilterHandlers(st, logger),
		NewCheckoutHandlers(st, logger),
		sessionMW,
		logger,
	)

	return &testEnv{router: router, store: st, sender: sender}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) doWithBearer(t *testing.T, path, token string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// login walks the OTP flow for the phone and returns the session cookie.
func (e *testEnv) login(t *testing.T, phone string) *http.Cookie {
	t.Helper()

	w := e.do(t, http.MethodPost, "/api/v1/auth/request-otp", map[string]string{"phone": phone}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = e.do(t, http.MethodPost, "/api/v1/auth/verify-otp", map[string]string{
		"phone": phone,
		"code":  e.sender.lastCode,
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	for _, c := range w.Result().Cookies() {
		if c.Name == session.CookieName && c.Value != "" {
			return c
		}
	}
	t.Fatal("verify-otp response carried no session cookie")
	return nil
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(w.Body).Decode(dst))
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp ErrorResponse
	decodeBody(t, w, &resp)
	return resp.Error.Code
}
