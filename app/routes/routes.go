package routes

import (
	"encoding/json"
	"net/http"
	"strings"

	"feedpost/app/controllers"
	"feedpost/app/middleware"
	"feedpost/app/services"
	"feedpost/app/views"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Deps are the services the routes are served from.
type Deps struct {
	Posts    *services.PostService
	Comments *services.CommentService
	Renderer *views.Renderer
	Logger   *zap.Logger
}

// SetupRoutes defines the application's routes and returns a router.
func SetupRoutes(deps Deps) *mux.Router {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := mux.NewRouter()

	// Apply global middleware
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recoverer(logger))
	router.Use(middleware.Session)

	router.NotFoundHandler = http.HandlerFunc(notFound)
	router.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)

	postController := controllers.NewPostController(deps.Posts, deps.Comments, deps.Renderer, logger)
	commentController := controllers.NewCommentController(deps.Posts, deps.Comments, deps.Renderer, logger)

	// Serve static files
	router.PathPrefix("/static/").Handler(http.StripPrefix("/static/", views.StaticHandler()))

	// Web routes
	router.HandleFunc("/", postController.Index).Methods("GET")

	posts := router.PathPrefix("/posts").Subrouter()
	posts.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)
	posts.HandleFunc("", postController.Index).Methods("GET")
	posts.HandleFunc("/{id:[0-9]+}", postController.Show).Methods("GET")
	posts.HandleFunc("/{id:[0-9]+}/draft", commentController.UpdateDraft).Methods("POST")
	posts.HandleFunc("/{id:[0-9]+}/comments", commentController.Create).Methods("POST")
	posts.HandleFunc("/{id:[0-9]+}/comments/delete", commentController.Delete).Methods("POST")

	// API routes with JSON content type
	api := router.PathPrefix("/api").Subrouter()
	api.Use(middleware.ContentTypeJSON)
	api.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)

	apiPosts := api.PathPrefix("/posts").Subrouter()
	apiPosts.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)
	apiPosts.HandleFunc("", postController.Index).Methods("GET")
	apiPosts.HandleFunc("", postController.Create).Methods("POST")
	apiPosts.HandleFunc("/{id:[0-9]+}", postController.Show).Methods("GET")
	apiPosts.HandleFunc("/{id:[0-9]+}", postController.Delete).Methods("DELETE")
	apiPosts.HandleFunc("/{id:[0-9]+}/draft", commentController.UpdateDraft).Methods("PUT")
	apiPosts.HandleFunc("/{id:[0-9]+}/comments", commentController.Create).Methods("POST")
	apiPosts.HandleFunc("/{id:[0-9]+}/comments", commentController.Delete).Methods("DELETE")
	apiPosts.HandleFunc("/{id:[0-9]+}/instance", commentController.Unmount).Methods("DELETE")

	return router
}

func notFound(w http.ResponseWriter, r *http.Request) {
	sendStatus(w, r, "Not found", http.StatusNotFound)
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	sendStatus(w, r, "Method not allowed", http.StatusMethodNotAllowed)
}

// sendStatus answers JSON under /api and plain text elsewhere
func sendStatus(w http.ResponseWriter, r *http.Request, message string, status int) {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]string{"error": message})
		return
	}
	http.Error(w, message, status)
}
