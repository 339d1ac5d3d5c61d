package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/afritok/afritok/internal/models"
)

func TestCreateReport(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.login(t, "+15551234567")
	video := env.createVideo(t, cookie)

	w := env.do(t, http.MethodPost, "/api/v1/videos/"+video.ID+"/report", map[string]string{
		"reason":  "spam",
		"details": "repeated promo clip",
	}, cookie)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Report models.Report `json:"report"`
	}
	decodeBody(t, w, &resp)
	assert.NotEmpty(t, resp.Report.ID)
	assert.Equal(t, "spam", resp.Report.Reason)
	assert.Equal(t, video.ID, resp.Report.VideoID)
}

func TestCreateReportRejectsUnknownReason(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.login(t, "+15551234567")
	video := env.createVideo(t, cookie)

	w := env.do(t, http.MethodPost, "/api/v1/videos/"+video.ID+"/report", map[string]string{
		"reason": "boring",
	}, cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_REQUEST", errorCode(t, w))
}

func TestCreateReportMissingVideo(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.login(t, "+15551234567")

	w := env.do(t, http.MethodPost, "/api/v1/videos/missing/report", map[string]string{
		"reason": "abuse",
	}, cookie)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
