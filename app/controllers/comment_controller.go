package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"feedpost/app/middleware"
	"feedpost/app/models"
	"feedpost/app/services"
	"feedpost/app/views"

	"go.uber.org/zap"
)

// CommentController handles the comment box of a post card
type CommentController struct {
	postService    *services.PostService
	commentService *services.CommentService
	renderer       *views.Renderer
	logger         *zap.Logger
}

// NewCommentController creates a new CommentController
func NewCommentController(postService *services.PostService, commentService *services.CommentService, renderer *views.Renderer, logger *zap.Logger) *CommentController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CommentController{
		postService:    postService,
		commentService: commentService,
		renderer:       renderer,
		logger:         logger,
	}
}

// commentRequest is the JSON body of the comment endpoints
type commentRequest struct {
	Comment string `json:"comment"`
}

// readComment takes the comment text from a JSON body or a form field
func readComment(r *http.Request) (string, error) {
	if isAPI(r) {
		var req commentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return "", errors.New("Invalid JSON: " + err.Error())
		}
		return req.Comment, nil
	}
	if err := r.ParseForm(); err != nil {
		return "", errors.New("Invalid form data")
	}
	return r.FormValue("comment"), nil
}

// cardAnchor is where a form goes back to after the change
func cardAnchor(r *http.Request, id int) string {
	return returnTo(r, "/posts/"+strconv.Itoa(id)) + "#post-" + strconv.Itoa(id)
}

// UpdateDraft replaces the draft text of the comment box
func (cc *CommentController) UpdateDraft(w http.ResponseWriter, r *http.Request) {
	id, err := postID(r)
	if err != nil {
		sendError(w, r, err.Error(), http.StatusBadRequest)
		return
	}
	text, err := readComment(r)
	if err != nil {
		sendError(w, r, err.Error(), http.StatusBadRequest)
		return
	}

	state, err := cc.commentService.SetDraft(middleware.SessionID(r.Context()), id, text)
	if err != nil {
		cc.fail(w, r, "Failed to update draft", err)
		return
	}

	if isAPI(r) {
		sendJSON(w, http.StatusOK, state)
		return
	}
	http.Redirect(w, r, cardAnchor(r, id), http.StatusSeeOther)
}

// Create submits the draft as a new comment
func (cc *CommentController) Create(w http.ResponseWriter, r *http.Request) {
	id, err := postID(r)
	if err != nil {
		sendError(w, r, err.Error(), http.StatusBadRequest)
		return
	}
	text, err := readComment(r)
	if err != nil {
		sendError(w, r, err.Error(), http.StatusBadRequest)
		return
	}

	session := middleware.SessionID(r.Context())
	state, err := cc.commentService.Submit(session, id, text)
	switch {
	case errors.Is(err, services.ErrEmptyComment):
		message := cc.renderer.Locale().TranslateError(err)
		if isAPI(r) {
			sendJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
				"error":       message,
				"comment_box": state,
			})
			return
		}
		cc.invalid(w, r, id, state, message)
		return
	case err != nil:
		cc.fail(w, r, "Failed to publish comment", err)
		return
	}

	if isAPI(r) {
		sendJSON(w, http.StatusCreated, state)
		return
	}
	http.Redirect(w, r, cardAnchor(r, id), http.StatusSeeOther)
}

// Delete removes every comment equal to the given text
func (cc *CommentController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := postID(r)
	if err != nil {
		sendError(w, r, err.Error(), http.StatusBadRequest)
		return
	}
	text, err := readComment(r)
	if err != nil {
		sendError(w, r, err.Error(), http.StatusBadRequest)
		return
	}

	state, err := cc.commentService.Delete(middleware.SessionID(r.Context()), id, text)
	if err != nil {
		cc.fail(w, r, "Failed to delete comment", err)
		return
	}

	if isAPI(r) {
		sendJSON(w, http.StatusOK, state)
		return
	}
	http.Redirect(w, r, cardAnchor(r, id), http.StatusSeeOther)
}

// Unmount discards the comment box of the card for this session
func (cc *CommentController) Unmount(w http.ResponseWriter, r *http.Request) {
	id, err := postID(r)
	if err != nil {
		sendError(w, r, err.Error(), http.StatusBadRequest)
		return
	}
	cc.commentService.Unmount(middleware.SessionID(r.Context()), id)
	w.WriteHeader(http.StatusNoContent)
}

// invalid re-renders the card with the validation message under the field
func (cc *CommentController) invalid(w http.ResponseWriter, r *http.Request, id int, state models.CommentBoxState, message string) {
	post, err := cc.postService.GetPost(id)
	if err != nil {
		cc.fail(w, r, "Failed to fetch post", err)
		return
	}
	card, err := cc.renderer.Card(post, state, returnTo(r, "/posts/"+strconv.Itoa(id)), message)
	if err != nil {
		cc.fail(w, r, "Template error", err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusUnprocessableEntity)
	if err := cc.renderer.Render(w, views.PageShow, []views.PostCard{card}); err != nil {
		cc.logger.Error("Template error", zap.Error(err), zap.String("path", r.URL.Path))
	}
}

func (cc *CommentController) fail(w http.ResponseWriter, r *http.Request, message string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		cc.logger.Error(message, zap.Error(err), zap.String("path", r.URL.Path))
	}
	sendError(w, r, message, status)
}
