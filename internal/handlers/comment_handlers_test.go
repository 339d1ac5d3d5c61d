package handlers

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/afritok/afritok/internal/models"
)

func (e *testEnv) createVideo(t *testing.T, cookie *http.Cookie) models.Video {
	t.Helper()

	w := e.do(t, http.MethodPost, "/api/v1/videos", map[string]string{
		"video_url": "https://cdn.example/clip.mp4",
	}, cookie)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Video models.Video `json:"video"`
	}
	decodeBody(t, w, &resp)
	return resp.Video
}

func TestCommentLifecycle(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.login(t, "+15551234567")
	video := env.createVideo(t, cookie)

	w := env.do(t, http.MethodPost, "/api/v1/videos/"+video.ID+"/comments", map[string]string{
		"text": "love this",
	}, cookie)
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Comment models.Comment `json:"comment"`
	}
	decodeBody(t, w, &created)
	assert.NotEmpty(t, created.Comment.ID)
	assert.Equal(t, "love this", created.Comment.Text)

	// Anyone can read comments.
	w = env.do(t, http.MethodGet, "/api/v1/videos/"+video.ID+"/comments", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listed struct {
		Comments []models.Comment `json:"comments"`
	}
	decodeBody(t, w, &listed)
	require.Len(t, listed.Comments, 1)

	w = env.do(t, http.MethodDelete, "/api/v1/comments/"+created.Comment.ID, nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/videos/"+video.ID+"/comments", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &listed)
	assert.Empty(t, listed.Comments)
}

func TestCommentValidation(t *testing.T) {
	env := newTestEnv(t)
	cookie := env.login(t, "+15551234567")
	video := env.createVideo(t, cookie)

	w := env.do(t, http.MethodPost, "/api/v1/videos/"+video.ID+"/comments", map[string]string{
		"text": "",
	}, cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPost, "/api/v1/videos/"+video.ID+"/comments", map[string]string{
		"text": strings.Repeat("x", 501),
	}, cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPost, "/api/v1/videos/missing/comments", map[string]string{
		"text": "hello",
	}, cookie)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteCommentAuthorOnly(t *testing.T) {
	env := newTestEnv(t)
	author := env.login(t, "+15551234567")
	video := env.createVideo(t, author)

	w := env.do(t, http.MethodPost, "/api/v1/videos/"+video.ID+"/comments", map[string]string{
		"text": "mine",
	}, author)
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		Comment models.Comment `json:"comment"`
	}
	decodeBody(t, w, &created)

	other := env.login(t, "+15559876543")
	w = env.do(t, http.MethodDelete, "/api/v1/comments/"+created.Comment.ID, nil, other)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "FORBIDDEN", errorCode(t, w))

	w = env.do(t, http.MethodDelete, "/api/v1/comments/missing", nil, other)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
