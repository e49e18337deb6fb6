package handlers_test

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"testing"

	"github.com/gorilla/securecookie"
	"gorm.io/gorm"

	"warbler/database"
	"warbler/handlers"
	"warbler/models"
	"warbler/repositories"
	"warbler/routes"
)

// Use the same secret key as the app's CookieStore so session cookies
// can be forged from the outside, mimicking direct session
// manipulation in a browser test client.
const (
	testSecretKey   = "development-key"
	testSessionName = "warbler_session"
	testCurrUserKey = "curr_user"
)

type testApp struct {
	t        *testing.T
	server   *httptest.Server
	client   *http.Client
	db       *gorm.DB
	users    repositories.UserRepository
	messages repositories.MessageRepository
}

// newTestApp wires the full application against a fresh database and
// serves it through an in-process HTTP server. The returned client
// keeps cookies and follows redirects like a browser.
func newTestApp(t *testing.T) *testApp {
	t.Helper()

	db, err := database.Connect(filepath.Join(t.TempDir(), "warbler_test.db"))
	if err != nil {
		t.Fatalf("database.Connect: %v", err)
	}
	if err := database.Reset(db); err != nil {
		t.Fatalf("database.Reset: %v", err)
	}

	users := repositories.NewUserRepository(db)
	messages := repositories.NewMessageRepository(db)

	sessions := handlers.NewSessionManager([]byte(testSecretKey), testSessionName, testCurrUserKey)
	userHandler := handlers.NewUserHandler(users, messages, sessions)
	messageHandler := handlers.NewMessageHandler(messages, users, sessions)

	server := httptest.NewServer(routes.SetupRoutes(userHandler, messageHandler))
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookiejar.New: %v", err)
	}

	return &testApp{
		t:        t,
		server:   server,
		client:   &http.Client{Jar: jar},
		db:       db,
		users:    users,
		messages: messages,
	}
}

// signupUser persists a user through the signup path with a
// pre-assigned identifier.
func (a *testApp) signupUser(id uint, username, email string) *models.User {
	a.t.Helper()

	u, err := models.Signup(username, email, "password", "")
	if err != nil {
		a.t.Fatalf("models.Signup: %v", err)
	}
	u.ID = id
	if err := a.users.Create(u); err != nil {
		a.t.Fatalf("users.Create: %v", err)
	}
	return u
}

// setSession forges a session cookie binding the client to the given
// user, the way a browser would carry it after login.
func (a *testApp) setSession(userID uint) {
	a.t.Helper()

	codec := securecookie.New([]byte(testSecretKey), nil)
	encoded, err := codec.Encode(testSessionName, map[interface{}]interface{}{testCurrUserKey: userID})
	if err != nil {
		a.t.Fatalf("failed to encode session cookie: %v", err)
	}

	serverURL, err := url.Parse(a.server.URL)
	if err != nil {
		a.t.Fatalf("url.Parse: %v", err)
	}
	a.client.Jar.SetCookies(serverURL, []*http.Cookie{{
		Name:  testSessionName,
		Value: encoded,
		Path:  "/",
	}})
}

// postForm posts form data and follows redirects.
func (a *testApp) postForm(path string, form url.Values) *http.Response {
	a.t.Helper()

	resp, err := a.client.PostForm(a.server.URL+path, form)
	if err != nil {
		a.t.Fatalf("POST %s: %v", path, err)
	}
	return resp
}

// postFormNoRedirect posts form data and returns the raw response
// without following redirects.
func (a *testApp) postFormNoRedirect(path string, form url.Values) *http.Response {
	a.t.Helper()

	client := &http.Client{
		Jar: a.client.Jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	resp, err := client.PostForm(a.server.URL+path, form)
	if err != nil {
		a.t.Fatalf("POST %s: %v", path, err)
	}
	return resp
}

func (a *testApp) get(path string) *http.Response {
	a.t.Helper()

	resp, err := a.client.Get(a.server.URL + path)
	if err != nil {
		a.t.Fatalf("GET %s: %v", path, err)
	}
	return resp
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()

	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading response body: %v", err)
	}
	return string(data)
}

func mustStatus(t *testing.T, resp *http.Response, expected int) {
	t.Helper()

	if resp.StatusCode != expected {
		t.Fatalf("expected status %d, got %d", expected, resp.StatusCode)
	}
}
