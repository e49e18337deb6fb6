package handlers_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"gorm.io/gorm"

	"warbler/handlers"
	"warbler/models"
	"warbler/repositories"
)

func signupForm(username, password, email string) url.Values {
	form := url.Values{}
	form.Add("username", username)
	form.Add("password", password)
	form.Add("email", email)
	return form
}

func TestRegisterUser(t *testing.T) {
	app := newTestApp(t)

	// Test successful registration
	resp := app.postFormNoRedirect("/signup", signupForm("user123", "password123", "user123@example.com"))
	resp.Body.Close()
	if resp.StatusCode != http.StatusFound {
		t.Errorf("Expected status 302 but got %d", resp.StatusCode)
	}

	// Test duplicate username
	resp = app.postForm("/signup", signupForm("user123", "password123", "other@example.com"))
	if body := readBody(t, resp); resp.StatusCode != http.StatusBadRequest || !strings.Contains(body, "The username is already taken") {
		t.Errorf("Expected status 400 and duplicate username error but got %d. Response: %s", resp.StatusCode, body)
	}

	// Test duplicate email
	resp = app.postForm("/signup", signupForm("user456", "password123", "user123@example.com"))
	if body := readBody(t, resp); resp.StatusCode != http.StatusBadRequest || !strings.Contains(body, "The email is already taken") {
		t.Errorf("Expected status 400 and duplicate email error but got %d. Response: %s", resp.StatusCode, body)
	}

	// Test empty username
	resp = app.postForm("/signup", signupForm("", "password123", "user2@example.com"))
	if body := readBody(t, resp); resp.StatusCode != http.StatusBadRequest || !strings.Contains(body, "You have to enter a username") {
		t.Errorf("Expected status 400 and empty username error but got %d. Response: %s", resp.StatusCode, body)
	}

	// Test empty password
	resp = app.postForm("/signup", signupForm("user_empty_pw", "", "user_empty_pw@example.com"))
	if body := readBody(t, resp); resp.StatusCode != http.StatusBadRequest || !strings.Contains(body, "You have to enter a password") {
		t.Errorf("Expected status 400 and empty password error but got %d. Response: %s", resp.StatusCode, body)
	}

	// Test invalid email
	resp = app.postForm("/signup", signupForm("user_invalid_email", "password123", "invalid-email"))
	if body := readBody(t, resp); resp.StatusCode != http.StatusBadRequest || !strings.Contains(body, "You have to enter a valid email address") {
		t.Errorf("Expected status 400 and invalid email error but got %d. Response: %s", resp.StatusCode, body)
	}
}

// blindUserRepo hides existing rows from the pre-checks, so a signup
// proceeds to Create and loses against the unique indexes the way a
// concurrent registration would.
type blindUserRepo struct {
	repositories.UserRepository
}

func (blindUserRepo) UsernameTaken(string) (bool, error) { return false, nil }
func (blindUserRepo) EmailTaken(string) (bool, error)    { return false, nil }

func TestSignupLostRace(t *testing.T) {
	app := newTestApp(t)
	app.signupUser(8989, "testuser", "testuser@example.com")

	sessions := handlers.NewSessionManager([]byte(testSecretKey), testSessionName, testCurrUserKey)
	handler := handlers.NewUserHandler(blindUserRepo{app.users}, app.messages, sessions)

	form := signupForm("other_user", "password123", "testuser@example.com")
	req := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	handler.Signup(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 but got %d. Response: %s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), "Username or email is already taken") {
		t.Errorf("expected neutral duplicate error, got: %s", rr.Body.String())
	}
}

func TestLoginUser(t *testing.T) {
	app := newTestApp(t)
	app.signupUser(8989, "testuser", "testuser@example.com")

	// Test successful login
	resp := app.postFormNoRedirect("/login", url.Values{"username": {"testuser"}, "password": {"password"}})
	resp.Body.Close()
	if resp.StatusCode != http.StatusFound {
		t.Errorf("Expected status 302 (Redirect), got %d", resp.StatusCode)
	}

	// The timeline greets the logged-in user after the redirect
	resp = app.get("/")
	if body := readBody(t, resp); !strings.Contains(body, "Hello, testuser!") {
		t.Errorf("Expected greeting flash after login, got: %s", body)
	}

	// Test empty username
	resp = app.postForm("/login", url.Values{"username": {""}, "password": {"password"}})
	if body := readBody(t, resp); resp.StatusCode != http.StatusBadRequest || !strings.Contains(body, "You have to enter a username") {
		t.Errorf("Expected status 400 and empty username error but got %d. Response: %s", resp.StatusCode, body)
	}

	// Test incorrect password
	resp = app.postForm("/login", url.Values{"username": {"testuser"}, "password": {"wrongpassword"}})
	if body := readBody(t, resp); resp.StatusCode != http.StatusUnauthorized || !strings.Contains(body, "Invalid password") {
		t.Errorf("Expected status 401 and 'Invalid password' but got %d. Response: %s", resp.StatusCode, body)
	}

	// Test unknown username
	resp = app.postForm("/login", url.Values{"username": {"nobody"}, "password": {"password"}})
	if body := readBody(t, resp); resp.StatusCode != http.StatusUnauthorized || !strings.Contains(body, "Invalid username") {
		t.Errorf("Expected status 401 and 'Invalid username' but got %d. Response: %s", resp.StatusCode, body)
	}
}

func TestLogout(t *testing.T) {
	app := newTestApp(t)
	app.signupUser(8989, "testuser", "testuser@example.com")
	app.setSession(8989)

	resp := app.get("/logout")
	mustStatus(t, resp, http.StatusOK)
	if body := readBody(t, resp); !strings.Contains(body, "You have successfully logged out.") {
		t.Errorf("expected logout flash on the login page, got: %s", body)
	}

	// Session is gone, mutating routes are denied again
	resp = app.postForm("/messages/new", url.Values{"text": {"hello"}})
	if body := readBody(t, resp); !strings.Contains(body, "Access unauthorized") {
		t.Errorf("expected unauthorized page after logout, got: %s", body)
	}
}

func TestProfileIsPubliclyReadable(t *testing.T) {
	app := newTestApp(t)
	app.signupUser(8989, "testuser", "test@test.com")
	if err := app.messages.Create(&models.Message{Text: "a public warble", UserID: 8989}); err != nil {
		t.Fatalf("messages.Create: %v", err)
	}

	// No session at all
	resp := app.get("/users/8989")
	mustStatus(t, resp, http.StatusOK)
	body := readBody(t, resp)
	if !strings.Contains(body, "@testuser") || !strings.Contains(body, "a public warble") {
		t.Errorf("expected public profile with messages, got: %s", body)
	}
}

func TestLikesPage(t *testing.T) {
	app := newTestApp(t)
	app.signupUser(8989, "testuser", "test@test.com")
	app.signupUser(888, "yetanothertest", "t@email.com")
	if err := app.messages.Create(&models.Message{ID: 1234, Text: "a liked warble", UserID: 8989}); err != nil {
		t.Fatalf("messages.Create: %v", err)
	}
	if err := app.messages.Like(888, 1234); err != nil {
		t.Fatalf("messages.Like: %v", err)
	}

	resp := app.get("/users/888/likes")
	mustStatus(t, resp, http.StatusOK)
	body := readBody(t, resp)
	if !strings.Contains(body, "@yetanothertest") || !strings.Contains(body, "a liked warble") {
		t.Errorf("expected likes page with the liked message, got: %s", body)
	}
}

func TestFollowAndStopFollowing(t *testing.T) {
	app := newTestApp(t)
	app.signupUser(1, "alice", "alice@test.com")
	app.signupUser(2, "bob", "bob@test.com")
	app.setSession(1)

	resp := app.postForm("/users/follow/2", nil)
	mustStatus(t, resp, http.StatusOK)
	resp.Body.Close()
	if following, _ := app.users.IsFollowing(1, 2); !following {
		t.Fatal("expected alice to follow bob")
	}

	// Following twice stays a single relation
	resp = app.postForm("/users/follow/2", nil)
	mustStatus(t, resp, http.StatusOK)
	resp.Body.Close()

	resp = app.postForm("/users/stop-following/2", nil)
	mustStatus(t, resp, http.StatusOK)
	resp.Body.Close()
	if following, _ := app.users.IsFollowing(1, 2); following {
		t.Fatal("expected follow relation to be removed")
	}
}

func TestFollowRequiresSession(t *testing.T) {
	app := newTestApp(t)
	app.signupUser(1, "alice", "alice@test.com")
	app.signupUser(2, "bob", "bob@test.com")

	resp := app.postForm("/users/follow/2", nil)
	mustStatus(t, resp, http.StatusOK)
	if body := readBody(t, resp); !strings.Contains(body, "Access unauthorized") {
		t.Errorf("expected unauthorized page, got: %s", body)
	}
	if following, _ := app.users.IsFollowing(1, 2); following {
		t.Error("expected no follow relation to be created")
	}
}

func TestSelfFollowDenied(t *testing.T) {
	app := newTestApp(t)
	app.signupUser(1, "alice", "alice@test.com")
	app.setSession(1)

	resp := app.postForm("/users/follow/1", nil)
	mustStatus(t, resp, http.StatusOK)
	if body := readBody(t, resp); !strings.Contains(body, "Access unauthorized") {
		t.Errorf("expected unauthorized page, got: %s", body)
	}
}

func TestDeleteUser(t *testing.T) {
	app := newTestApp(t)
	app.signupUser(8989, "testuser", "test@test.com")
	if err := app.messages.Create(&models.Message{Text: "a warble", UserID: 8989}); err != nil {
		t.Fatalf("messages.Create: %v", err)
	}
	app.setSession(8989)

	resp := app.postForm("/users/delete", nil)
	mustStatus(t, resp, http.StatusOK)
	resp.Body.Close()

	if _, err := app.users.ByID(8989); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("expected user to be gone, got %v", err)
	}
	if msgs, _ := app.messages.Latest(100); len(msgs) != 0 {
		t.Errorf("expected the user's messages to be gone, got %d", len(msgs))
	}
}
