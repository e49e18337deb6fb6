package handlers

import (
	"html/template"
	"net/http"

	"github.com/sirupsen/logrus"

	"warbler/models"
)

// templateData carries everything a page template may need.
type templateData struct {
	Title    string
	Flashes  []string
	User     *models.User // logged-in user, nil for guests
	Profile  *models.User
	Message  *models.Message
	Messages []models.Message
	Error    string
	Liked    bool
	Follows  bool
}

var templates = template.Must(template.New("warbler").Parse(pagesHTML))

func render(w http.ResponseWriter, status int, name string, data *templateData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := templates.ExecuteTemplate(w, name, data); err != nil {
		logrus.Errorf("render %s: %v", name, err)
	}
}

const pagesHTML = `
{{define "header"}}<!DOCTYPE html>
<html>
<head><title>{{.Title}} | Warbler</title></head>
<body>
<nav>
  <a href="/">Warbler</a>
  {{if .User}}
    <a href="/users/{{.User.ID}}">@{{.User.Username}}</a>
    <a href="/messages/new">New Message</a>
    <a href="/logout">Log out</a>
  {{else}}
    <a href="/signup">Sign up</a>
    <a href="/login">Log in</a>
  {{end}}
</nav>
{{range .Flashes}}<div class="alert">{{.}}</div>{{end}}
{{if .Error}}<div class="alert error">{{.Error}}</div>{{end}}
{{end}}

{{define "footer"}}</body>
</html>
{{end}}

{{define "home"}}{{template "header" .}}
{{if .User}}
<ul class="timeline">
  {{range .Messages}}
  <li><a href="/users/{{.UserID}}">@{{.User.Username}}</a>
    <a href="/messages/{{.ID}}">{{.Text}}</a></li>
  {{end}}
</ul>
{{else}}
<h1>What's Happening?</h1>
<p><a href="/signup">Sign up now to get your own personalized timeline!</a></p>
{{end}}
{{template "footer" .}}{{end}}

{{define "signup"}}{{template "header" .}}
<h2>Join Warbler today.</h2>
<form method="POST" action="/signup">
  <input type="text" name="username" placeholder="Username">
  <input type="text" name="email" placeholder="E-Mail">
  <input type="password" name="password" placeholder="Password">
  <input type="text" name="image_url" placeholder="(Optional) Image URL">
  <button type="submit">Sign me up!</button>
</form>
{{template "footer" .}}{{end}}

{{define "login"}}{{template "header" .}}
<h2>Welcome back.</h2>
<form method="POST" action="/login">
  <input type="text" name="username" placeholder="Username">
  <input type="password" name="password" placeholder="Password">
  <button type="submit">Log in</button>
</form>
{{template "footer" .}}{{end}}

{{define "profile"}}{{template "header" .}}
<img src="{{.Profile.ImageURL}}" alt="profile image">
<h2>@{{.Profile.Username}}</h2>
{{if and .User (ne .User.ID .Profile.ID)}}
  {{if .Follows}}
  <form method="POST" action="/users/stop-following/{{.Profile.ID}}"><button>Unfollow</button></form>
  {{else}}
  <form method="POST" action="/users/follow/{{.Profile.ID}}"><button>Follow</button></form>
  {{end}}
{{end}}
<a href="/users/{{.Profile.ID}}/likes">Likes</a>
<ul class="messages">
  {{range .Messages}}
  <li><a href="/messages/{{.ID}}">{{.Text}}</a></li>
  {{end}}
</ul>
{{template "footer" .}}{{end}}

{{define "likes"}}{{template "header" .}}
<h2>Messages @{{.Profile.Username}} likes</h2>
<ul class="messages">
  {{range .Messages}}
  <li><a href="/users/{{.UserID}}">@{{.User.Username}}</a>
    <a href="/messages/{{.ID}}">{{.Text}}</a></li>
  {{end}}
</ul>
{{template "footer" .}}{{end}}

{{define "new_message"}}{{template "header" .}}
<form method="POST" action="/messages/new">
  <textarea name="text" placeholder="What's happening?"></textarea>
  <button type="submit">Add my message!</button>
</form>
{{template "footer" .}}{{end}}

{{define "message"}}{{template "header" .}}
<a href="/users/{{.Message.UserID}}">@{{.Message.User.Username}}</a>
<blockquote class="message-text">{{.Message.Text}}</blockquote>
{{if .User}}
  {{if eq .User.ID .Message.UserID}}
  <form method="POST" action="/messages/{{.Message.ID}}/delete"><button>Delete</button></form>
  {{else}}
  <form method="POST" action="/messages/{{.Message.ID}}/like">
    <button>{{if .Liked}}Unlike{{else}}Like{{end}}</button>
  </form>
  {{end}}
{{end}}
{{template "footer" .}}{{end}}
`
