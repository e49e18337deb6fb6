package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"warbler/models"
	"warbler/monitoring"
	"warbler/repositories"
)

// AccessUnauthorized is the flash shown for every denied mutating
// action. The denial degrades to a redirect, never an error status.
const AccessUnauthorized = "Access unauthorized."

func parseID(r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// unauthorized flashes the denial and sends the client back home.
func unauthorized(s *SessionManager, w http.ResponseWriter, r *http.Request) {
	monitoring.AuthorizationDenied.Inc()
	s.Flash(w, r, AccessUnauthorized)
	http.Redirect(w, r, "/", http.StatusFound)
}

// currentUser loads the logged-in user, or nil for guests.
func currentUser(s *SessionManager, users repositories.UserRepository, r *http.Request) *models.User {
	id, ok := s.CurrentUserID(r)
	if !ok {
		return nil
	}
	user, err := users.ByID(id)
	if err != nil {
		return nil
	}
	return user
}
