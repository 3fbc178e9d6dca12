package templates

import (
	"github.com/a-h/templ"

	vm "github.com/risinglab/jewelpanel/internal/adapter/driving/web/viewmodel"
)

// Dashboard renders the catalog dashboard page.
func Dashboard(m vm.DashboardViewModel) templ.Component {
	return Layout(m.Title, dashboardBody(m))
}

func dashboardBody(m vm.DashboardViewModel) templ.Component {
	return component(func(hw *htmlWriter) {
		hw.raw(`<header class="navbar"><span class="brand">Rising Lab</span>`)
		hw.render(AccountMenu(m.Menu))
		hw.raw(`</header>`)

		hw.raw(`<main class="content">`)
		hw.raw(`<section class="card"><div class="card-header"><h2>Jewellery</h2>`)
		hw.raw(`<button type="button" class="btn btn-primary" hx-target="#jewellery-dialog" hx-swap="outerHTML"`)
		hw.attr("hx-get", m.NewPath)
		hw.raw(`><i class="tabler-plus"></i> Add Jewellery</button></div>`)
		hw.raw(`<div hx-trigger="catalogChanged from:body" hx-swap="innerHTML"`)
		hw.attr("hx-get", m.ListPath)
		hw.raw(`>`)
		hw.render(JewelleryList(m.List))
		hw.raw(`</div></section>`)

		hw.raw(`<section class="card"><div class="card-header"><h2>Recent activity</h2></div>`)
		hw.render(ActivityFeed(m.Activity))
		hw.raw(`</section>`)
		hw.raw(`</main>`)

		hw.render(Dialog(m.Dialog))
	})
}

// JewelleryList renders the catalog table.
func JewelleryList(m vm.JewelleryListViewModel) templ.Component {
	return component(func(hw *htmlWriter) {
		hw.raw(`<div id="jewellery-list">`)
		if m.Error != "" {
			hw.raw(`<p class="alert alert-error">`)
			hw.text(m.Error)
			hw.raw(`</p>`)
		}
		if len(m.Rows) == 0 && m.Error == "" {
			hw.raw(`<p class="muted">No jewellery yet.</p></div>`)
			return
		}

		hw.raw(`<table class="table"><thead><tr><th></th><th>Name</th><th>Brand</th><th>SKU</th>`)
		hw.raw(`<th>Colour</th><th>Size</th><th>Price</th><th></th></tr></thead><tbody>`)
		for _, row := range m.Rows {
			hw.raw(`<tr><td>`)
			if row.Thumbnail != "" {
				hw.raw(`<img class="thumb" alt="" loading="lazy"`)
				hw.attr("src", row.Thumbnail)
				hw.raw(`>`)
			}
			hw.raw(`</td><td>`)
			hw.text(row.Name)
			hw.raw(`</td><td>`)
			hw.text(row.Brand)
			hw.raw(`</td><td>`)
			hw.text(row.SKU)
			hw.raw(`</td><td><span class="swatch"`)
			hw.attr("style", swatchStyle(row.Color))
			hw.raw(`></span> `)
			hw.text(row.Color)
			hw.raw(`</td><td>`)
			hw.text(row.Size)
			hw.raw(`</td><td>`)
			hw.text(row.Price)
			hw.raw(`</td><td><button type="button" class="btn btn-icon" title="Edit" hx-target="#jewellery-dialog" hx-swap="outerHTML"`)
			hw.attr("hx-get", row.EditPath)
			hw.raw(`><i class="tabler-edit"></i></button></td></tr>`)
		}
		hw.raw(`</tbody></table></div>`)
	})
}

// ActivityFeed renders the recent mutation log.
func ActivityFeed(items []vm.ActivityViewModel) templ.Component {
	return component(func(hw *htmlWriter) {
		if len(items) == 0 {
			hw.raw(`<p class="muted">Nothing yet.</p>`)
			return
		}
		hw.raw(`<ul class="activity">`)
		for _, it := range items {
			hw.raw(`<li`)
			if it.Failed {
				hw.attr("class", "failed")
			}
			hw.raw(`><time>`)
			hw.text(it.When)
			hw.raw(`</time> <strong>`)
			hw.text(it.User)
			hw.raw(`</strong> `)
			hw.text(it.Summary)
			hw.raw(` <span class="badge">`)
			hw.text(it.Outcome)
			hw.raw(`</span></li>`)
		}
		hw.raw(`</ul>`)
	})
}
