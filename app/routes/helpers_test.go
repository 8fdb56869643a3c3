package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"feedpost/app/locale"
	"feedpost/app/middleware"
	"feedpost/app/models"
	"feedpost/app/repositories"
	"feedpost/app/services"
	"feedpost/app/views"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
)

var publishedAt = time.Date(2022, time.May, 3, 20, 0, 0, 0, time.UTC)

func setupTestRouter(t *testing.T) (*mux.Router, *services.PostService) {
	t.Helper()
	db, err := repositories.OpenDB("", nil)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	postRepo := repositories.NewBadgerPostRepository(db)
	instances := repositories.NewInstanceStore(100, 0, nil)
	postService := services.NewPostService(postRepo, instances, nil)
	commentService := services.NewCommentService(postRepo, instances)

	loc, err := locale.New("pt_BR", time.UTC, models.Validator())
	require.NoError(t, err)
	renderer, err := views.NewRenderer(loc, views.WithClock(func() time.Time {
		return publishedAt.Add(3 * 24 * time.Hour)
	}))
	require.NoError(t, err)

	setupTestData(t, postService)

	return SetupRoutes(Deps{
		Posts:    postService,
		Comments: commentService,
		Renderer: renderer,
	}), postService
}

func setupTestData(t *testing.T, postService *services.PostService) {
	posts := []*models.Post{
		{
			ID: 1,
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
		},
		{
			ID: 2,
			Author: models.Author{
				Name:      "Mayk Brito",
				Role:      "Educator @Rocketseat",
				AvatarURL: "https://github.com/maykbrito.png",
			},
			Content: []models.ContentLine{
				{Kind: models.Paragraph, Text: "Acabei de subir mais um projeto no meu portifa."},
			},
			PublishedAt: publishedAt.Add(-10 * 24 * time.Hour),
		},
	}
	_, err := postService.Seed(posts)
	require.NoError(t, err)
}

// browser replays the session cookie across requests
type browser struct {
	t       *testing.T
	handler http.Handler
	session *http.Cookie
}

func (b *browser) do(req *http.Request) *httptest.ResponseRecorder {
	if b.session != nil {
		req.AddCookie(b.session)
	}
	w := httptest.NewRecorder()
	b.handler.ServeHTTP(w, req)
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.SessionCookie {
			b.session = c
		}
	}
	return w
}
