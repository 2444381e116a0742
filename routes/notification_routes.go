package routes

import (
	"talkalot_server/controllers"
	"talkalot_server/services"

	"github.com/gorilla/mux"
)

// RegisterNotificationRoutes sets up routes for the notification log under
// /api/notifications
func RegisterNotificationRoutes(r *mux.Router, notificationService *services.NotificationService) {
	controller := controllers.NewNotificationController(notificationService)

	notifRouter := r.PathPrefix("/api/notifications").Subrouter()
	notifRouter.HandleFunc("", controller.HandleList).Methods("GET")
	notifRouter.HandleFunc("/mark-seen", controller.HandleMarkSeen).Methods("POST")
}
