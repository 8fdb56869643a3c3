package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"feedpost/app/locale"
	"feedpost/app/middleware"
	"feedpost/app/models"
	"feedpost/app/repositories"
	"feedpost/app/services"
	"feedpost/app/views"

	"go.uber.org/zap"
)

// PostController handles HTTP requests for feed posts
type PostController struct {
	postService    *services.PostService
	commentService *services.CommentService
	renderer       *views.Renderer
	logger         *zap.Logger
}

// NewPostController creates a new PostController
func NewPostController(postService *services.PostService, commentService *services.CommentService, renderer *views.Renderer, logger *zap.Logger) *PostController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PostController{
		postService:    postService,
		commentService: commentService,
		renderer:       renderer,
		logger:         logger,
	}
}

// publishedView carries both renderings of the publication time
type publishedView struct {
	ISO      string `json:"iso"`
	Long     string `json:"long"`
	Relative string `json:"relative"`
}

// postView is the API representation of a mounted card
type postView struct {
	*models.Post
	Published  publishedView          `json:"published"`
	CommentBox models.CommentBoxState `json:"comment_box"`
}

// Index handles the feed. The web page shows every post card for this
// session; the API pages through posts.
func (pc *PostController) Index(w http.ResponseWriter, r *http.Request) {
	if isAPI(r) {
		pc.list(w, r)
		return
	}

	posts, err := pc.postService.AllPosts()
	if err != nil {
		pc.fail(w, r, "Failed to fetch posts", err)
		return
	}

	session := middleware.SessionID(r.Context())
	cards := make([]views.PostCard, 0, len(posts))
	for _, post := range posts {
		state, err := pc.commentService.State(session, post.ID)
		if err != nil {
			// deleted between listing and mounting
			if errors.Is(err, repositories.ErrNotFound) {
				continue
			}
			pc.fail(w, r, "Failed to mount post", err)
			return
		}
		card, err := pc.renderer.Card(post, state, r.URL.Path, "")
		if err != nil {
			pc.fail(w, r, "Template error", err)
			return
		}
		cards = append(cards, card)
	}

	if err := pc.renderer.Render(w, views.PageFeed, cards); err != nil {
		pc.fail(w, r, "Template error", err)
	}
}

// list handles the paginated API listing
func (pc *PostController) list(w http.ResponseWriter, r *http.Request) {
	page := 1
	if pageStr := r.URL.Query().Get("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			page = p
		}
	}

	perPage := 10
	if perPageStr := r.URL.Query().Get("per_page"); perPageStr != "" {
		if pp, err := strconv.Atoi(perPageStr); err == nil && pp > 0 {
			perPage = pp
		}
	}

	posts, err := pc.postService.ListPosts(page, perPage)
	if err != nil {
		pc.fail(w, r, "Failed to fetch posts", err)
		return
	}
	if posts == nil {
		posts = []*models.Post{}
	}
	sendJSON(w, http.StatusOK, map[string]interface{}{
		"posts": posts,
		"page":  page,
	})
}

// Show handles displaying a single post card
func (pc *PostController) Show(w http.ResponseWriter, r *http.Request) {
	id, err := postID(r)
	if err != nil {
		sendError(w, r, err.Error(), http.StatusBadRequest)
		return
	}

	post, err := pc.postService.GetPost(id)
	if err != nil {
		pc.fail(w, r, pc.renderer.Locale().T(locale.PostNotFound), err)
		return
	}
	state, err := pc.commentService.State(middleware.SessionID(r.Context()), id)
	if err != nil {
		pc.fail(w, r, pc.renderer.Locale().T(locale.PostNotFound), err)
		return
	}

	if isAPI(r) {
		sendJSON(w, http.StatusOK, pc.view(post, state))
		return
	}

	card, err := pc.renderer.Card(post, state, r.URL.Path, "")
	if err != nil {
		pc.fail(w, r, "Template error", err)
		return
	}
	if err := pc.renderer.Render(w, views.PageShow, []views.PostCard{card}); err != nil {
		pc.fail(w, r, "Template error", err)
	}
}

// Create stores a host-supplied post, replacing one with the same id
func (pc *PostController) Create(w http.ResponseWriter, r *http.Request) {
	var post models.Post
	if err := json.NewDecoder(r.Body).Decode(&post); err != nil {
		sendError(w, r, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := pc.postService.SavePost(&post); err != nil {
		pc.fail(w, r, "Failed to save post: "+err.Error(), err)
		return
	}

	sendJSON(w, http.StatusCreated, post)
}

// Delete handles deleting a post
func (pc *PostController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := postID(r)
	if err != nil {
		sendError(w, r, err.Error(), http.StatusBadRequest)
		return
	}

	if err := pc.postService.DeletePost(id); err != nil {
		pc.fail(w, r, "Failed to delete post", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (pc *PostController) view(post *models.Post, state models.CommentBoxState) postView {
	return postView{
		Post: post,
		Published: publishedView{
			ISO:      locale.ISO(post.PublishedAt),
			Long:     pc.renderer.Locale().LongDate(post.PublishedAt),
			Relative: pc.renderer.Relative(post.PublishedAt),
		},
		CommentBox: state,
	}
}

func (pc *PostController) fail(w http.ResponseWriter, r *http.Request, message string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		pc.logger.Error(message, zap.Error(err), zap.String("path", r.URL.Path))
	}
	sendError(w, r, message, status)
}
