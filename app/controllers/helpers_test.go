package controllers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"feedpost/app/locale"
	"feedpost/app/middleware"
	"feedpost/app/models"
	"feedpost/app/repositories"
	"feedpost/app/repositories/mock"
	"feedpost/app/services"
	"feedpost/app/views"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var publishedAt = time.Date(2022, time.May, 3, 20, 0, 0, 0, time.UTC)

type testEnv struct {
	router   *mux.Router
	postRepo *mock.PostRepository
	posts    *services.PostService
	comments *services.CommentService
}

func testPost(id int) *models.Post {
	return &models.Post{
		ID: id,
		Author: models.Author{
			Name:      "Diego Fernandes",
			Role:      "CTO @Rocketseat",
			AvatarURL: "https://github.com/diego3g.png",
		},
		Content: []models.ContentLine{
			{Kind: models.Paragraph, Text: "Fala galeraa 👋"},
			{Kind: models.Link, Text: "jane.design/doctorcare"},
		},
		PublishedAt: publishedAt,
	}
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	postRepo := mock.NewPostRepository()
	instances := repositories.NewInstanceStore(100, 0, nil)
	postService := services.NewPostService(postRepo, instances, nil)
	commentService := services.NewCommentService(postRepo, instances)

	loc, err := locale.New("pt_BR", time.UTC, models.Validator())
	require.NoError(t, err)
	renderer, err := views.NewRenderer(loc, views.WithClock(func() time.Time {
		return publishedAt.Add(2 * time.Hour)
	}))
	require.NoError(t, err)

	pc := NewPostController(postService, commentService, renderer, nil)
	cc := NewCommentController(postService, commentService, renderer, nil)

	router := mux.NewRouter()
	router.HandleFunc("/", pc.Index).Methods("GET")
	router.HandleFunc("/posts/{id:[0-9]+}", pc.Show).Methods("GET")
	router.HandleFunc("/posts/{id:[0-9]+}/draft", cc.UpdateDraft).Methods("POST")
	router.HandleFunc("/posts/{id:[0-9]+}/comments", cc.Create).Methods("POST")
	router.HandleFunc("/posts/{id:[0-9]+}/comments/delete", cc.Delete).Methods("POST")

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/posts", pc.Index).Methods("GET")
	api.HandleFunc("/posts", pc.Create).Methods("POST")
	api.HandleFunc("/posts/{id:[0-9]+}", pc.Show).Methods("GET")
	api.HandleFunc("/posts/{id:[0-9]+}", pc.Delete).Methods("DELETE")
	api.HandleFunc("/posts/{id:[0-9]+}/draft", cc.UpdateDraft).Methods("PUT")
	api.HandleFunc("/posts/{id:[0-9]+}/comments", cc.Create).Methods("POST")
	api.HandleFunc("/posts/{id:[0-9]+}/comments", cc.Delete).Methods("DELETE")
	api.HandleFunc("/posts/{id:[0-9]+}/instance", cc.Unmount).Methods("DELETE")

	return &testEnv{
		router:   router,
		postRepo: postRepo,
		posts:    postService,
		comments: commentService,
	}
}

// serve runs req for session and returns the recorder
func (e *testEnv) serve(session string, req *http.Request) *httptest.ResponseRecorder {
	req = req.WithContext(middleware.WithSession(req.Context(), session))
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func TestReturnTo(t *testing.T) {
	tests := []struct {
		name   string
		target string
		want   string
	}{
		{name: "local path", target: "/", want: "/"},
		{name: "post page", target: "/posts/2", want: "/posts/2"},
		{name: "empty", target: "", want: "/fallback"},
		{name: "absolute url", target: "https://evil.example", want: "/fallback"},
		{name: "protocol relative", target: "//evil.example", want: "/fallback"},
		{name: "backslash", target: "/\\evil.example", want: "/fallback"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/?return_to="+url.QueryEscape(tt.target), nil)
			assert.Equal(t, tt.want, returnTo(req, "/fallback"))
		})
	}
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, statusFor(repositories.ErrNotFound))
	assert.Equal(t, http.StatusUnprocessableEntity, statusFor(services.ErrInvalidPost))
	assert.Equal(t, http.StatusUnprocessableEntity, statusFor(services.ErrEmptyComment))
	assert.Equal(t, http.StatusInternalServerError, statusFor(assert.AnError))
}
