package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"gorm.io/gorm"

	"warbler/dto"
	"warbler/models"
	"warbler/monitoring"
	"warbler/repositories"
)

// MessageHandler handles message-related endpoints
type MessageHandler struct {
	Messages repositories.MessageRepository
	Users    repositories.UserRepository
	Sessions *SessionManager
}

// NewMessageHandler initializes a new MessageHandler
func NewMessageHandler(messages repositories.MessageRepository, users repositories.UserRepository, sessions *SessionManager) *MessageHandler {
	return &MessageHandler{Messages: messages, Users: users, Sessions: sessions}
}

// New renders the message form on GET and creates a message on POST.
// Both require an authenticated session.
func (h *MessageHandler) New(w http.ResponseWriter, r *http.Request) {
	uid, ok := h.Sessions.CurrentUserID(r)
	if !ok {
		unauthorized(h.Sessions, w, r)
		return
	}

	data := &templateData{
		Title:   "New Message",
		Flashes: h.Sessions.Flashes(w, r),
		User:    currentUser(h.Sessions, h.Users, r),
	}

	if r.Method == http.MethodGet {
		render(w, http.StatusOK, "new_message", data)
		return
	}

	text := strings.TrimSpace(r.FormValue("text"))
	if text == "" {
		data.Error = "You have to enter a message"
		render(w, http.StatusBadRequest, "new_message", data)
		return
	}
	if len(text) > models.MaxMessageLength {
		data.Error = fmt.Sprintf("Messages can be at most %d characters", models.MaxMessageLength)
		render(w, http.StatusBadRequest, "new_message", data)
		return
	}

	message := &models.Message{Text: text, UserID: uid}
	if err := h.Messages.Create(message); err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	monitoring.MessagesPosted.Inc()
	http.Redirect(w, r, fmt.Sprintf("/messages/%d", message.ID), http.StatusFound)
}

// Show renders a single message. Reads are public.
func (h *MessageHandler) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	message, err := h.Messages.ByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.NotFound(w, r)
		} else {
			http.Error(w, "Database error", http.StatusInternalServerError)
		}
		return
	}

	data := &templateData{
		Title:   "Message",
		Flashes: h.Sessions.Flashes(w, r),
		User:    currentUser(h.Sessions, h.Users, r),
		Message: message,
	}
	if data.User != nil {
		liked, err := h.Messages.IsLiked(data.User.ID, message.ID)
		if err != nil {
			http.Error(w, "Database error", http.StatusInternalServerError)
			return
		}
		data.Liked = liked
	}

	render(w, http.StatusOK, "message", data)
}

// Delete removes a message. Only the owning user may delete it; every
// other caller is sent to the unauthorized flash and the message is
// left untouched.
func (h *MessageHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
	message, err := h.Messages.ByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.NotFound(w, r)
		} else {
			http.Error(w, "Database error", http.StatusInternalServerError)
		}
		return
	}

	if message.UserID != uid {
		unauthorized(h.Sessions, w, r)
		return
	}

	if err := h.Messages.Delete(id); err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	monitoring.MessagesDeleted.Inc()
	h.Sessions.Flash(w, r, "Message deleted.")
	http.Redirect(w, r, fmt.Sprintf("/users/%d", uid), http.StatusFound)
}

// ToggleLike likes a message, or removes an existing like. Liking
// your own message is denied.
func (h *MessageHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
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
	message, err := h.Messages.ByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			http.NotFound(w, r)
		} else {
			http.Error(w, "Database error", http.StatusInternalServerError)
		}
		return
	}
	if message.UserID == uid {
		unauthorized(h.Sessions, w, r)
		return
	}

	liked, err := h.Messages.IsLiked(uid, id)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	if liked {
		err = h.Messages.Unlike(uid, id)
	} else {
		err = h.Messages.Like(uid, id)
	}
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	target := r.Header.Get("Referer")
	if target == "" {
		target = "/"
	}
	http.Redirect(w, r, target, http.StatusFound)
}

// APIMessages returns the latest messages as JSON.
func (h *MessageHandler) APIMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := h.Messages.Latest(100)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	response := make([]dto.MessageDTO, len(messages))
	for i, msg := range messages {
		response[i] = dto.MessageDTO{
			ID:       msg.ID,
			Text:     msg.Text,
			PubDate:  msg.CreatedAt.Unix(),
			Username: msg.User.Username,
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}
