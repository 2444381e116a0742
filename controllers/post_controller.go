package controllers

import (
	"encoding/json"
	"net/http"

	"talkalot_server/services"

	"github.com/gorilla/mux"
)

// PostController handles HTTP requests for the interest board
type PostController struct {
	PostService *services.PostService
}

// NewPostController creates a new PostController instance
func NewPostController(postService *services.PostService) *PostController {
	return &PostController{PostService: postService}
}

// HandleCreatePost publishes a new interest post
func (pc *PostController) HandleCreatePost(w http.ResponseWriter, r *http.Request) {
	var request struct {
		UserID  string   `json:"userId"`
		Content string   `json:"content"`
		Tags    []string `json:"tags"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.UserID == "" || request.Content == "" {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	post, err := pc.PostService.CreatePost(r.Context(), request.UserID, request.Content, request.Tags)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// HandleListPosts lists all posts for a viewer, newest first
func (pc *PostController) HandleListPosts(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userID")
	if userID == "" {
		http.Error(w, "userID is required", http.StatusBadRequest)
		return
	}

	posts, err := pc.PostService.ListPosts(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

// HandleLikePost records a like on a post
func (pc *PostController) HandleLikePost(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["postId"]
	var request struct {
		UserID string `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.UserID == "" {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	result, err := pc.PostService.LikePost(r.Context(), request.UserID, postID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// HandleUnlikePost removes a like from a post
func (pc *PostController) HandleUnlikePost(w http.ResponseWriter, r *http.Request) {
	postID := mux.Vars(r)["postId"]
	var request struct {
		UserID string `json:"userId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil || request.UserID == "" {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	if err := pc.PostService.UnlikePost(r.Context(), request.UserID, postID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "unliked"})
}
