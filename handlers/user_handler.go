package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"warbler/models"
	"warbler/monitoring"
	"warbler/repositories"
)

// UserHandler handles signup, login and user-page endpoints
type UserHandler struct {
	Users    repositories.UserRepository
	Messages repositories.MessageRepository
	Sessions *SessionManager
}

// NewUserHandler initializes a new UserHandler
func NewUserHandler(users repositories.UserRepository, messages repositories.MessageRepository, sessions *SessionManager) *UserHandler {
	return &UserHandler{Users: users, Messages: messages, Sessions: sessions}
}

// Home renders the timeline for logged-in users and the welcome page
// for guests.
func (h *UserHandler) Home(w http.ResponseWriter, r *http.Request) {
	data := &templateData{
		Title:   "Home",
		Flashes: h.Sessions.Flashes(w, r),
		User:    currentUser(h.Sessions, h.Users, r),
	}

	if data.User != nil {
		messages, err := h.Messages.Timeline(data.User.ID, 100)
		if err != nil {
			http.Error(w, "Database error", http.StatusInternalServerError)
			return
		}
		data.Messages = messages
	}

	render(w, http.StatusOK, "home", data)
}

// Signup renders the signup form and creates new users
func (h *UserHandler) Signup(w http.ResponseWriter, r *http.Request) {
	data := &templateData{Title: "Sign up", Flashes: h.Sessions.Flashes(w, r)}

	if r.Method == http.MethodGet {
		render(w, http.StatusOK, "signup", data)
		return
	}

	user, err := models.Signup(
		r.FormValue("username"),
		r.FormValue("email"),
		r.FormValue("password"),
		r.FormValue("image_url"),
	)
	if err != nil {
		data.Error = signupErrorMessage(err)
		render(w, http.StatusBadRequest, "signup", data)
		return
	}

	if taken, err := h.Users.UsernameTaken(user.Username); err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	} else if taken {
		data.Error = "The username is already taken"
		render(w, http.StatusBadRequest, "signup", data)
		return
	}
	if taken, err := h.Users.EmailTaken(user.Email); err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	} else if taken {
		data.Error = "The email is already taken"
		render(w, http.StatusBadRequest, "signup", data)
		return
	}

	if err := h.Users.Create(user); err != nil {
		// Lost the race against a concurrent signup; the unique
		// indexes on username/email rejected the row. Either column
		// may have collided, so the message names both.
		logrus.Warnf("signup rejected by database: %v", err)
		data.Error = "Username or email is already taken"
		render(w, http.StatusBadRequest, "signup", data)
		return
	}

	monitoring.SignupSuccess.Inc()
	if err := h.Sessions.SetCurrentUser(w, r, user.ID); err != nil {
		http.Error(w, "Session error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

func signupErrorMessage(err error) string {
	switch {
	case errors.Is(err, models.ErrUsernameRequired):
		return "You have to enter a username"
	case errors.Is(err, models.ErrEmailRequired):
		return "You have to enter a valid email address"
	case errors.Is(err, models.ErrPasswordRequired):
		return "You have to enter a password"
	default:
		return "Signup failed"
	}
}

// Login renders the login form and binds the session on success
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	data := &templateData{Title: "Log in", Flashes: h.Sessions.Flashes(w, r)}

	if r.Method == http.MethodGet {
		render(w, http.StatusOK, "login", data)
		return
	}

	username := r.FormValue("username")
	password := r.FormValue("password")

	if username == "" {
		data.Error = "You have to enter a username"
		render(w, http.StatusBadRequest, "login", data)
		return
	}
	if password == "" {
		data.Error = "You have to enter a password"
		render(w, http.StatusBadRequest, "login", data)
		return
	}

	user, err := h.Users.ByUsername(username)
	if err != nil {
		monitoring.LoginFailure.WithLabelValues("unknown_username").Inc()
		data.Error = "Invalid username"
		render(w, http.StatusUnauthorized, "login", data)
		return
	}
	if !user.Authenticate(password) {
		monitoring.LoginFailure.WithLabelValues("wrong_password").Inc()
		data.Error = "Invalid password"
		render(w, http.StatusUnauthorized, "login", data)
		return
	}

	monitoring.LoginSuccess.Inc()
	if err := h.Sessions.SetCurrentUser(w, r, user.ID); err != nil {
		http.Error(w, "Session error", http.StatusInternalServerError)
		return
	}
	h.Sessions.Flash(w, r, fmt.Sprintf("Hello, %s!", user.Username))
	http.Redirect(w, r, "/", http.StatusFound)
}

// Logout clears the session
func (h *UserHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.Sessions.Clear(w, r)
	h.Sessions.Flash(w, r, "You have successfully logged out.")
	http.Redirect(w, r, "/login", http.StatusFound)
}

// Profile shows a user's page with their messages. Reads are public.
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	profile, err := h.Users.ByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.NotFound(w, r)
		} else {
			http.Error(w, "Database error", http.StatusInternalServerError)
		}
		return
	}

	messages, err := h.Messages.ByUserID(id, 100)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	data := &templateData{
		Title:    "@" + profile.Username,
		Flashes:  h.Sessions.Flashes(w, r),
		User:     currentUser(h.Sessions, h.Users, r),
		Profile:  profile,
		Messages: messages,
	}
	if data.User != nil && data.User.ID != profile.ID {
		follows, err := h.Users.IsFollowing(data.User.ID, profile.ID)
		if err != nil {
			http.Error(w, "Database error", http.StatusInternalServerError)
			return
		}
		data.Follows = follows
	}

	render(w, http.StatusOK, "profile", data)
}

// Likes shows the messages a user has liked.
func (h *UserHandler) Likes(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	profile, err := h.Users.ByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.NotFound(w, r)
		} else {
			http.Error(w, "Database error", http.StatusInternalServerError)
		}
		return
	}

	messages, err := h.Messages.LikedBy(id)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	render(w, http.StatusOK, "likes", &templateData{
		Title:    "Likes",
		Flashes:  h.Sessions.Flashes(w, r),
		User:     currentUser(h.Sessions, h.Users, r),
		Profile:  profile,
		Messages: messages,
	})
}

// Follow creates a follow relation from the session user to {id}.
func (h *UserHandler) Follow(w http.ResponseWriter, r *http.Request) {
	uid, ok := h.Sessions.CurrentUserID(r)
	if !ok {
		unauthorized(h.Sessions, w, r)
		return
	}

	id, ok := parseID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if _, err := h.Users.ByID(id); err != nil {
		http.NotFound(w, r)
		return
	}

	if following, err := h.Users.IsFollowing(uid, id); err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	} else if !following {
		if err := h.Users.Follow(uid, id); err != nil {
			if errors.Is(err, repositories.ErrSelfFollow) {
				unauthorized(h.Sessions, w, r)
				return
			}
			http.Error(w, "Database error", http.StatusInternalServerError)
			return
		}
	}

	http.Redirect(w, r, fmt.Sprintf("/users/%d", id), http.StatusFound)
}

// StopFollowing removes the follow relation to {id}.
func (h *UserHandler) StopFollowing(w http.ResponseWriter, r *http.Request) {
	uid, ok := h.Sessions.CurrentUserID(r)
	if !ok {
		unauthorized(h.Sessions, w, r)
		return
	}

	id, ok := parseID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	if err := h.Users.Unfollow(uid, id); err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, fmt.Sprintf("/users/%d", id), http.StatusFound)
}

// Delete removes the session user and everything they own.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	uid, ok := h.Sessions.CurrentUserID(r)
	if !ok {
		unauthorized(h.Sessions, w, r)
		return
	}

	if err := h.Users.Delete(uid); err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	h.Sessions.Clear(w, r)
	http.Redirect(w, r, "/signup", http.StatusFound)
}
