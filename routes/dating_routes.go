package routes

import (
	"kindler_server/controllers"
	"kindler_server/services"

	"github.com/gorilla/mux"
)

// RegisterDatingRoutes sets up the swipe-to-match routes under /dating
func RegisterDatingRoutes(
	r *mux.Router,
	swipeService *services.SwipeService,
	discoveryService *services.DiscoveryService,
	matchService *services.MatchService,
	notificationService *services.NotificationService,
) {
	swipeController := controllers.NewSwipeController(swipeService)
	discoveryController := controllers.NewDiscoveryController(discoveryService)
	matchController := controllers.NewMatchController(matchService)
	notificationController := controllers.NewNotificationController(notificationService)

	datingRouter := r.PathPrefix("/dating").Subrouter()
	datingRouter.HandleFunc("/swipe", swipeController.HandleSwipe).Methods("POST")
	datingRouter.HandleFunc("/discovery", discoveryController.HandleGetDiscovery).Methods("GET")
	datingRouter.HandleFunc("/matches", matchController.HandleGetMatches).Methods("GET")
	datingRouter.HandleFunc("/matches/{matchId}", matchController.HandleGetMatchByID).Methods("GET")
	datingRouter.HandleFunc("/notifications", notificationController.HandleGetNotifications).Methods("GET")
}
