package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/afritok/afritok/internal/service/session"
)

func TestAuthFlow(t *testing.T) {
	env := newTestEnv(t)
	phone := "+15551234567"

	// Request a code.
	w := env.do(t, http.MethodPost, "/api/v1/auth/request-otp", map[string]string{"phone": phone}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotEmpty(t, env.sender.lastCode)

	// Verify it; the response carries the token, the user, and the cookie.
	w = env.do(t, http.MethodPost, "/api/v1/auth/verify-otp", map[string]string{
		"phone": phone,
		"code":  env.sender.lastCode,
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var verifyResp verifyOTPResponse
	decodeBody(t, w, &verifyResp)
	assert.True(t, verifyResp.Success)
	assert.NotEmpty(t, verifyResp.Token)
	assert.Equal(t, phone, verifyResp.User.Phone)

	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == session.CookieName {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)

	// The cookie authenticates /auth/me as the same user.
	w = env.do(t, http.MethodGet, "/api/v1/auth/me", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	var meResp struct {
		User userPayload `json:"user"`
	}
	decodeBody(t, w, &meResp)
	assert.Equal(t, phone, meResp.User.Phone)
	assert.Equal(t, verifyResp.User.ID, meResp.User.ID)

	// Logout clears the cookie.
	w = env.do(t, http.MethodPost, "/api/v1/auth/logout", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	cleared := w.Result().Cookies()
	require.NotEmpty(t, cleared)
	assert.Less(t, cleared[0].MaxAge, 0)

	// Without a credential /auth/me is unauthorized.
	w = env.do(t, http.MethodGet, "/api/v1/auth/me", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "UNAUTHENTICATED", errorCode(t, w))
}

func TestAuthBearerFallback(t *testing.T) {
	env := newTestEnv(t)
	phone := "+15551234567"

	w := env.do(t, http.MethodPost, "/api/v1/auth/request-otp", map[string]string{"phone": phone}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodPost, "/api/v1/auth/verify-otp", map[string]string{
		"phone": phone,
		"code":  env.sender.lastCode,
	}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var verifyResp verifyOTPResponse
	decodeBody(t, w, &verifyResp)

	req := env.do(t, http.MethodGet, "/api/v1/auth/me", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, req.Code)

	reqRec := env.doWithBearer(t, "/api/v1/auth/me", verifyResp.Token)
	assert.Equal(t, http.StatusOK, reqRec.Code)
}

func TestRequestOTPRejectsBadPhone(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/auth/request-otp", map[string]string{"phone": "not-a-phone"}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_PHONE", errorCode(t, w))

	w = env.do(t, http.MethodPost, "/api/v1/auth/request-otp", map[string]string{}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_REQUEST", errorCode(t, w))
}

func TestVerifyOTPErrorMapping(t *testing.T) {
	env := newTestEnv(t)
	phone := "+15551234567"

	// No challenge outstanding.
	w := env.do(t, http.MethodPost, "/api/v1/auth/verify-otp", map[string]string{
		"phone": phone,
		"code":  "123456",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "OTP_NOT_FOUND", errorCode(t, w))

	w = env.do(t, http.MethodPost, "/api/v1/auth/request-otp", map[string]string{"phone": phone}, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Malformed code shape.
	w = env.do(t, http.MethodPost, "/api/v1/auth/verify-otp", map[string]string{
		"phone": phone,
		"code":  "12ab",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_CODE", errorCode(t, w))

	// Wrong code.
	wrong := "000000"
	if env.sender.lastCode == wrong {
		wrong = "000001"
	}
	w = env.do(t, http.MethodPost, "/api/v1/auth/verify-otp", map[string]string{
		"phone": phone,
		"code":  wrong,
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "OTP_MISMATCH", errorCode(t, w))

	// The correct code still goes through after a miss.
	w = env.do(t, http.MethodPost, "/api/v1/auth/verify-otp", map[string]string{
		"phone": phone,
		"code":  env.sender.lastCode,
	}, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestVerifyOTPSamePhoneSameUser(t *testing.T) {
	env := newTestEnv(t)
	phone := "+15551234567"

	first := env.login(t, phone)
	w := env.do(t, http.MethodGet, "/api/v1/auth/me", nil, first)
	require.Equal(t, http.StatusOK, w.Code)
	var firstResp struct {
		User userPayload `json:"user"`
	}
	decodeBody(t, w, &firstResp)

	second := env.login(t, phone)
	w = env.do(t, http.MethodGet, "/api/v1/auth/me", nil, second)
	require.Equal(t, http.StatusOK, w.Code)
	var secondResp struct {
		User userPayload `json:"user"`
	}
	decodeBody(t, w, &secondResp)

	assert.Equal(t, firstResp.User.ID, secondResp.User.ID)
}
