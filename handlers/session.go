package handlers

import (
	"net/http"

	"github.com/gorilla/sessions"
)

// SessionManager wraps the cookie session store together with the
// configured name of the key holding the current user's identifier.
// The key name is injected so deployments and tests can swap it.
type SessionManager struct {
	store       *sessions.CookieStore
	name        string
	currUserKey string
}

func NewSessionManager(secret []byte, name, currUserKey string) *SessionManager {
	store := sessions.NewCookieStore(secret)
	store.Options.Path = "/"
	store.Options.HttpOnly = true
	store.Options.SameSite = http.SameSiteLaxMode
	return &SessionManager{store: store, name: name, currUserKey: currUserKey}
}

// CurrentUserID returns the authenticated user's identifier. Absence
// of the session key is the sole signal of "not authenticated".
func (m *SessionManager) CurrentUserID(r *http.Request) (uint, bool) {
	sess, err := m.store.Get(r, m.name)
	if err != nil {
		return 0, false
	}
	id, ok := sess.Values[m.currUserKey].(uint)
	return id, ok
}

// SetCurrentUser binds the session to the given user.
func (m *SessionManager) SetCurrentUser(w http.ResponseWriter, r *http.Request, userID uint) error {
	sess, _ := m.store.Get(r, m.name)
	sess.Values[m.currUserKey] = userID
	return sess.Save(r, w)
}

// Clear removes the current-user binding.
func (m *SessionManager) Clear(w http.ResponseWriter, r *http.Request) {
	sess, _ := m.store.Get(r, m.name)
	delete(sess.Values, m.currUserKey)
	sess.Save(r, w)
}

// Flash queues a one-time message shown on the next rendered page.
func (m *SessionManager) Flash(w http.ResponseWriter, r *http.Request, msg string) {
	sess, _ := m.store.Get(r, m.name)
	sess.AddFlash(msg)
	sess.Save(r, w)
}

// Flashes drains the queued flash messages.
func (m *SessionManager) Flashes(w http.ResponseWriter, r *http.Request) []string {
	sess, _ := m.store.Get(r, m.name)
	raw := sess.Flashes()
	if len(raw) == 0 {
		return nil
	}
	sess.Save(r, w)

	out := make([]string, 0, len(raw))
	for _, f := range raw {
		if s, ok := f.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
