package routes

import (
	"talkalot_server/controllers"
	"talkalot_server/services"

	"github.com/gorilla/mux"
)

// RegisterUserRoutes sets up routes for identity and presence under /api
func RegisterUserRoutes(r *mux.Router, userService *services.UserService) {
	controller := controllers.NewUserController(userService)

	apiRouter := r.PathPrefix("/api").Subrouter()
	apiRouter.HandleFunc("/register", controller.HandleRegister).Methods("POST")
	apiRouter.HandleFunc("/join-fair", controller.HandleJoinFair).Methods("POST")
	apiRouter.HandleFunc("/leave-fair", controller.HandleLeaveFair).Methods("POST")
	apiRouter.HandleFunc("/user-status", controller.HandleStatus).Methods("GET")
	apiRouter.HandleFunc("/interests", controller.HandleUpdateInterests).Methods("POST")
}
