package templates

import (
	"github.com/a-h/templ"

	vm "github.com/risinglab/jewelpanel/internal/adapter/driving/web/viewmodel"
)

// AccountMenu renders the avatar anchor and its dropdown. Clicks outside the
// menu are reported by app.js to the dismiss endpoint.
func AccountMenu(m vm.MenuViewModel) templ.Component {
	return component(func(hw *htmlWriter) {
		hw.raw(`<div id="account-menu" class="account-menu"`)
		hw.attr("data-dismiss-path", m.DismissPath)
		hw.flag("data-open", m.Open)
		hw.raw(`>`)

		hw.raw(`<button type="button" class="avatar-anchor" aria-haspopup="true" hx-target="#account-menu" hx-swap="outerHTML"`)
		hw.attr("hx-post", m.TogglePath)
		hw.attr("aria-expanded", boolString(m.Open))
		hw.raw(`>`)
		avatar(hw, m.User)
		hw.raw(`</button>`)

		if m.Open {
			hw.raw(`<div class="dropdown" role="menu"><div class="dropdown-header">`)
			avatar(hw, m.User)
			hw.raw(`<div><div class="name">`)
			hw.text(m.User.Name)
			hw.raw(`</div><div class="muted">`)
			hw.text(m.User.Email)
			hw.raw(`</div></div></div><hr>`)
			if m.Error != "" {
				hw.raw(`<p class="alert alert-error">`)
				hw.text(m.Error)
				hw.raw(`</p>`)
			}
			hw.raw(`<button type="button" class="btn btn-danger btn-block" hx-target="#account-menu" hx-swap="outerHTML" hx-indicator="#signout-indicator" hx-disabled-elt="this"`)
			hw.attr("hx-post", m.LogoutPath)
			hw.flag("disabled", m.Pending)
			hw.raw(`>Logout <i class="tabler-logout"></i></button>`)
			hw.raw(`<p id="signout-indicator" class="htmx-indicator muted">`)
			hw.text(m.PendingText)
			hw.raw(`</p></div>`)
		}

		hw.raw(`</div>`)
	})
}

func avatar(hw *htmlWriter, u vm.UserViewModel) {
	if u.Image != "" {
		hw.raw(`<img class="avatar"`)
		hw.attr("src", u.Image)
		hw.attr("alt", u.Name)
		hw.raw(`>`)
		return
	}
	hw.raw(`<span class="avatar avatar-initials">`)
	hw.text(u.Initials)
	hw.raw(`</span>`)
}

