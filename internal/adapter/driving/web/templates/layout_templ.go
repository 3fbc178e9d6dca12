package templates

import (
	"github.com/a-h/templ"

	vm "github.com/risinglab/jewelpanel/internal/adapter/driving/web/viewmodel"
)

const htmxSrc = "https://unpkg.com/htmx.org@2.0.4/dist/htmx.min.js"

// Layout wraps body in the full HTML document.
func Layout(title string, body templ.Component) templ.Component {
	return component(func(hw *htmlWriter) {
		hw.raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		hw.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		hw.raw(`<title>`)
		hw.text(title)
		hw.raw(`</title>`)
		hw.raw(`<link rel="stylesheet" href="/static/app.css">`)
		hw.raw(`<script src="` + htmxSrc + `" defer></script>`)
		hw.raw(`<script src="/static/csrf.js" defer></script>`)
		hw.raw(`<script src="/static/app.js" defer></script>`)
		hw.raw(`</head><body>`)
		hw.raw(`<div id="toast-area" class="toast-area" aria-live="polite"></div>`)
		hw.render(body)
		hw.raw(`</body></html>`)
	})
}

// LoginPage renders the sign-in form.
func LoginPage(m vm.LoginViewModel) templ.Component {
	return Layout(m.Title, loginForm(m))
}

func loginForm(m vm.LoginViewModel) templ.Component {
	return component(func(hw *htmlWriter) {
		hw.raw(`<main class="login"><form class="card login-card" method="post" action="/login">`)
		hw.raw(`<h1>Welcome to Rising Lab</h1><p class="muted">Please sign in to your account</p>`)
		csrfInput(hw, m.CSRFToken)
		if m.Error != "" {
			hw.raw(`<p class="alert alert-error" role="alert">`)
			hw.text(m.Error)
			hw.raw(`</p>`)
		}
		hw.raw(`<label>Email<input type="email" name="email" required autocomplete="username"`)
		hw.attr("value", m.Email)
		hw.raw(`></label>`)
		hw.raw(`<label>Password<input type="password" name="password" required autocomplete="current-password"></label>`)
		hw.raw(`<button type="submit" class="btn btn-primary">Login</button>`)
		hw.raw(`</form></main>`)
	})
}

// csrfInput renders the hidden CSRF form field.
func csrfInput(hw *htmlWriter, token string) {
	hw.raw(`<input type="hidden" name="csrf_token"`)
	hw.attr("value", token)
	hw.raw(`>`)
}
