package routes

import (
	"talkalot_server/controllers"
	"talkalot_server/services"

	"github.com/gorilla/mux"
)

// RegisterMatchRoutes sets up routes for matches and the confirmation
// handshake under /api/matches
func RegisterMatchRoutes(r *mux.Router, matchService *services.MatchService, handshakeService *services.HandshakeService) {
	controller := controllers.NewMatchController(matchService, handshakeService)

	matchRouter := r.PathPrefix("/api/matches").Subrouter()
	matchRouter.HandleFunc("", controller.HandleListMatches).Methods("GET")
	matchRouter.HandleFunc("/{matchId}/confirm", controller.HandleConfirm).Methods("POST")
	matchRouter.HandleFunc("/{matchId}/status", controller.HandleGetStatus).Methods("GET")
}
