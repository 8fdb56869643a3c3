package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"feedpost/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func formRequest(method, target string, values url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func decodeState(t *testing.T, w *httptest.ResponseRecorder) models.CommentBoxState {
	t.Helper()
	var raw struct {
		Draft    string   `json:"draft"`
		State    string   `json:"state"`
		Comments []string `json:"comments"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	state := models.CommentBoxState{Draft: raw.Draft, Comments: raw.Comments}
	if raw.State == "editing" {
		state.State = models.DraftEditing
	}
	return state
}

func TestCommentControllerWeb(t *testing.T) {
	env := setupTestEnv(t)
	require.NoError(t, env.posts.SavePost(testPost(1)))

	t.Run("update draft redirects to the card", func(t *testing.T) {
		w := env.serve("s1", formRequest(http.MethodPost, "/posts/1/draft", url.Values{
			"comment":   {"Parabéns"},
			"return_to": {"/"},
		}))
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/#post-1", w.Header().Get("Location"))

		state, err := env.comments.State("s1", 1)
		require.NoError(t, err)
		assert.Equal(t, "Parabéns", state.Draft)
		assert.Equal(t, models.DraftEditing, state.State)
	})

	t.Run("draft is rendered with submit enabled", func(t *testing.T) {
		w := env.serve("s1", httptest.NewRequest(http.MethodGet, "/posts/1", nil))
		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, ">Parabéns</textarea>")
		assert.NotContains(t, body, " disabled>")
	})

	t.Run("publish comment", func(t *testing.T) {
		w := env.serve("s1", formRequest(http.MethodPost, "/posts/1/comments", url.Values{
			"comment": {"Parabéns"},
		}))
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/posts/1#post-1", w.Header().Get("Location"))

		w = env.serve("s1", httptest.NewRequest(http.MethodGet, "/posts/1", nil))
		body := w.Body.String()
		assert.Contains(t, body, "comments-list")
		assert.Contains(t, body, "<p>Parabéns</p>")
		assert.Contains(t, body, " disabled>")
	})

	t.Run("empty comment re-renders with message", func(t *testing.T) {
		w := env.serve("s1", formRequest(http.MethodPost, "/posts/1/comments", url.Values{
			"comment":   {""},
			"return_to": {"/"},
		}))
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, `<p class="field-error" role="alert">Esse campo é obrigatório!</p>`)
		assert.Contains(t, body, `aria-invalid="true"`)
		assert.Contains(t, body, "<p>Parabéns</p>")

		state, err := env.comments.State("s1", 1)
		require.NoError(t, err)
		assert.Equal(t, []string{"Parabéns"}, state.Comments)
	})

	t.Run("delete comment", func(t *testing.T) {
		w := env.serve("s1", formRequest(http.MethodPost, "/posts/1/comments/delete", url.Values{
			"comment":   {"Parabéns"},
			"return_to": {"https://evil.example"},
		}))
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/posts/1#post-1", w.Header().Get("Location"))

		state, err := env.comments.State("s1", 1)
		require.NoError(t, err)
		assert.Empty(t, state.Comments)
	})

	t.Run("missing post", func(t *testing.T) {
		w := env.serve("s1", formRequest(http.MethodPost, "/posts/42/comments", url.Values{
			"comment": {"oi"},
		}))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestCommentControllerAPI(t *testing.T) {
	env := setupTestEnv(t)
	require.NoError(t, env.posts.SavePost(testPost(1)))

	jsonRequest := func(method, target, comment string) *http.Request {
		body, _ := json.Marshal(map[string]string{"comment": comment})
		req := httptest.NewRequest(method, target, strings.NewReader(string(body)))
		req.Header.Set("Content-Type", "application/json")
		return req
	}

	t.Run("update draft", func(t *testing.T) {
		w := env.serve("s1", jsonRequest(http.MethodPut, "/api/posts/1/draft", "rascunho"))
		require.Equal(t, http.StatusOK, w.Code)
		state := decodeState(t, w)
		assert.Equal(t, "rascunho", state.Draft)
		assert.Equal(t, models.DraftEditing, state.State)
		assert.Empty(t, state.Comments)
	})

	t.Run("publish duplicates", func(t *testing.T) {
		for _, text := range []string{"A", "B", "A"} {
			w := env.serve("s1", jsonRequest(http.MethodPost, "/api/posts/1/comments", text))
			require.Equal(t, http.StatusCreated, w.Code)
		}
		state, err := env.comments.State("s1", 1)
		require.NoError(t, err)
		assert.Equal(t, []string{"A", "B", "A"}, state.Comments)
		assert.Equal(t, "", state.Draft)
	})

	t.Run("empty comment", func(t *testing.T) {
		w := env.serve("s1", jsonRequest(http.MethodPost, "/api/posts/1/comments", ""))
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

		var response struct {
			Error      string `json:"error"`
			CommentBox struct {
				Comments []string `json:"comments"`
			} `json:"comment_box"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "Esse campo é obrigatório!", response.Error)
		assert.Equal(t, []string{"A", "B", "A"}, response.CommentBox.Comments)
	})

	t.Run("delete removes every equal comment", func(t *testing.T) {
		w := env.serve("s1", jsonRequest(http.MethodDelete, "/api/posts/1/comments", "A"))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []string{"B"}, decodeState(t, w).Comments)
	})

	t.Run("delete unknown value is a no-op", func(t *testing.T) {
		w := env.serve("s1", jsonRequest(http.MethodDelete, "/api/posts/1/comments", "Z"))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []string{"B"}, decodeState(t, w).Comments)
	})

	t.Run("malformed json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/api/posts/1/draft", strings.NewReader(`{"comment":`))
		w := env.serve("s1", req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unmount resets the card", func(t *testing.T) {
		w := env.serve("s1", httptest.NewRequest(http.MethodDelete, "/api/posts/1/instance", nil))
		assert.Equal(t, http.StatusNoContent, w.Code)

		state, err := env.comments.State("s1", 1)
		require.NoError(t, err)
		assert.Empty(t, state.Comments)
		assert.Equal(t, models.DraftEmpty, state.State)
	})
}
