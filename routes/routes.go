package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"warbler/handlers"
	"warbler/monitoring"
)

// SetupRoutes initializes all the application routes
// The routing logic is isolated here
func SetupRoutes(userHandler *handlers.UserHandler, messageHandler *handlers.MessageHandler) http.Handler {
	router := mux.NewRouter()

	router.HandleFunc("/", userHandler.Home).Methods("GET")

	// User routes
	router.HandleFunc("/signup", userHandler.Signup).Methods("GET", "POST")
	router.HandleFunc("/login", userHandler.Login).Methods("GET", "POST")
	router.HandleFunc("/logout", userHandler.Logout).Methods("GET")
	router.HandleFunc("/users/{id:[0-9]+}", userHandler.Profile).Methods("GET")
	router.HandleFunc("/users/{id:[0-9]+}/likes", userHandler.Likes).Methods("GET")
	router.HandleFunc("/users/follow/{id:[0-9]+}", userHandler.Follow).Methods("POST")
	router.HandleFunc("/users/stop-following/{id:[0-9]+}", userHandler.StopFollowing).Methods("POST")
	router.HandleFunc("/users/delete", userHandler.Delete).Methods("POST")

	// Message routes
	router.HandleFunc("/messages/new", messageHandler.New).Methods("GET", "POST")
	router.HandleFunc("/messages/{id:[0-9]+}", messageHandler.Show).Methods("GET")
	router.HandleFunc("/messages/{id:[0-9]+}/delete", messageHandler.Delete).Methods("POST")
	router.HandleFunc("/messages/{id:[0-9]+}/like", messageHandler.ToggleLike).Methods("POST")

	// Read-only JSON API
	router.HandleFunc("/api/messages", messageHandler.APIMessages).Methods("GET")

	// Add metrics endpoint
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	return monitoring.InstrumentHandler(router)
}
