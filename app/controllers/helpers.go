package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"feedpost/app/repositories"
	"feedpost/app/services"

	"github.com/gorilla/mux"
)

// isAPI reports whether the request expects a JSON response
func isAPI(r *http.Request) bool {
	return r.Header.Get("Accept") == "application/json" || strings.HasPrefix(r.URL.Path, "/api")
}

// postID reads the {id} route variable
func postID(r *http.Request) (int, error) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		return 0, errors.New("invalid post ID")
	}
	return id, nil
}

// statusFor maps service errors onto HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrInvalidPost), errors.Is(err, services.ErrEmptyComment):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// returnTo picks the local page a form should go back to
func returnTo(r *http.Request, fallback string) string {
	target := r.FormValue("return_to")
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.ContainsAny(target, "\\\r\n") {
		return fallback
	}
	return target
}

// Helper methods for consistent response handling

func sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func sendError(w http.ResponseWriter, r *http.Request, message string, status int) {
	if isAPI(r) {
		sendJSON(w, status, map[string]string{"error": message})
	} else {
		http.Error(w, message, status)
	}
}
