package routes

import (
	"talkalot_server/controllers"
	"talkalot_server/services"

	"github.com/gorilla/mux"
)

// RegisterPostRoutes sets up routes for the interest board under /api/posts
func RegisterPostRoutes(r *mux.Router, postService *services.PostService) {
	controller := controllers.NewPostController(postService)

	postRouter := r.PathPrefix("/api/posts").Subrouter()
	postRouter.HandleFunc("", controller.HandleCreatePost).Methods("POST")
	postRouter.HandleFunc("", controller.HandleListPosts).Methods("GET")
	postRouter.HandleFunc("/{postId}/like", controller.HandleLikePost).Methods("POST")
	postRouter.HandleFunc("/{postId}/unlike", controller.HandleUnlikePost).Methods("POST")
}
