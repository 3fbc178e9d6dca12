package templates

import (
	"github.com/a-h/templ"

	vm "github.com/risinglab/jewelpanel/internal/adapter/driving/web/viewmodel"
)

// Dialog renders the create/update dialog, or an empty placeholder when the
// dialog is closed. Every response targets #jewellery-dialog.
func Dialog(m vm.DialogViewModel) templ.Component {
	return component(func(hw *htmlWriter) {
		if !m.Open {
			hw.raw(`<div id="jewellery-dialog"></div>`)
			return
		}

		hw.raw(`<div id="jewellery-dialog" class="modal-backdrop"><div class="modal" role="dialog" aria-modal="true" aria-labelledby="dialog-title">`)
		hw.raw(`<button type="button" class="modal-close" title="Close" hx-target="#jewellery-dialog" hx-swap="outerHTML"`)
		hw.attr("hx-post", m.ClosePath)
		hw.raw(`><i class="tabler-x"></i></button>`)

		hw.raw(`<h3 id="dialog-title" class="modal-title">`)
		hw.text(m.Title)
		hw.raw(`<span>`)
		hw.text(m.Subtitle)
		hw.raw(`</span></h3>`)

		hw.raw(`<form id="jewellery-form" class="grid" hx-target="#jewellery-dialog" hx-swap="outerHTML" hx-disabled-elt="#dialog-submit, #dialog-cancel"`)
		hw.attr("hx-post", m.SubmitPath)
		hw.raw(`>`)
		csrfInput(hw, m.CSRFToken)

		selectField(hw, "col-4", m.Category, m.Categories, "Select category")
		inputField(hw, "col-4", m.Name)
		inputField(hw, "col-4", m.Brand)

		hw.raw(`<fieldset class="col-12"><legend`)
		if m.ColorError != "" {
			hw.attr("class", "error")
		}
		hw.raw(`>Select Color</legend><div class="radio-row">`)
		for _, c := range m.Colors {
			hw.raw(`<label class="radio"><input type="radio" name="color"`)
			hw.attr("value", c.Value)
			hw.flag("checked", c.Selected)
			hw.raw(`><span class="swatch"`)
			hw.attr("style", swatchStyle(c.Value))
			hw.raw(`></span>`)
			hw.text(c.Label)
			hw.raw(`</label>`)
		}
		hw.raw(`</div>`)
		helper(hw, m.ColorError)
		hw.raw(`</fieldset>`)

		selectField(hw, "col-4", m.Size, m.Sizes, "")
		inputField(hw, "col-4", m.SKU)
		inputField(hw, "col-4", m.Price)

		hw.raw(`<div class="col-12"><p class="label">Description (Optional)</p><div class="editor card">`)
		hw.render(EditorToolbar(m.Toolbar))
		hw.raw(`<hr>`)
		hw.render(EditorContent(m, false))
		hw.raw(`<input type="hidden" name="description" id="editor-value"`)
		hw.attr("value", m.Description)
		hw.raw(`></div></div>`)
		hw.raw(`</form>`)

		hw.raw(`<div class="col-12 uploader"><label class="btn btn-tonal">Browse images<input type="file" name="images" accept="image/*" multiple hidden hx-trigger="change" hx-encoding="multipart/form-data" hx-target="#dialog-images" hx-swap="outerHTML"`)
		hw.attr("hx-post", m.UploadPath)
		hw.raw(`></label>`)
		hw.render(ImageList(m.Attachments))
		hw.raw(`</div>`)

		hw.raw(`<div class="modal-actions">`)
		hw.raw(`<button id="dialog-submit" type="submit" form="jewellery-form" class="btn btn-primary"`)
		hw.flag("disabled", m.Pending)
		hw.raw(`><span class="idle">`)
		hw.text(m.SubmitLabel)
		hw.raw(`</span><span class="busy">`)
		hw.text(m.PendingLabel)
		hw.raw(`</span></button>`)
		hw.raw(`<button id="dialog-cancel" type="button" class="btn btn-secondary" hx-target="#jewellery-dialog" hx-swap="outerHTML"`)
		hw.attr("hx-post", m.ClosePath)
		hw.flag("disabled", m.Pending)
		hw.raw(`>Cancel</button></div>`)

		hw.raw(`</div></div>`)
	})
}

// ImageList renders the stored and staged images of the draft.
func ImageList(items []vm.AttachmentViewModel) templ.Component {
	return component(func(hw *htmlWriter) {
		hw.raw(`<ul id="dialog-images" class="images">`)
		for _, it := range items {
			hw.raw(`<li>`)
			if it.URL != "" {
				hw.raw(`<img class="thumb" alt=""`)
				hw.attr("src", it.URL)
				hw.raw(`>`)
			} else {
				hw.raw(`<i class="tabler-photo"></i>`)
			}
			hw.raw(`<span class="file-name">`)
			hw.text(it.FileName)
			hw.raw(`</span><span class="muted">`)
			hw.text(it.Size)
			hw.raw(`</span><button type="button" class="btn btn-icon" title="Remove" hx-target="#dialog-images" hx-swap="outerHTML"`)
			hw.attr("hx-delete", it.DeletePath)
			hw.raw(`><i class="tabler-x"></i></button></li>`)
		}
		hw.raw(`</ul>`)
	})
}

// EditorContent renders the editable description document. With oob set it
// is swapped out of band, replacing the browser editor's document.
func EditorContent(m vm.DialogViewModel, oob bool) templ.Component {
	return component(func(hw *htmlWriter) {
		hw.raw(`<div id="editor-content" class="editor-content" contenteditable="true"`)
		hw.attr("data-placeholder", m.Placeholder)
		hw.attr("data-sync-path", m.EditorPath)
		if oob {
			hw.raw(` hx-swap-oob="true" data-fresh="true"`)
		}
		hw.raw(`>`)
		// EditorHTML is sanitised by the richtext policy.
		hw.raw(m.EditorHTML)
		hw.raw(`</div>`)
	})
}

// EditorToolbar renders the description editor toolbar with active states.
func EditorToolbar(buttons []vm.ToolbarButtonViewModel) templ.Component {
	return component(func(hw *htmlWriter) {
		hw.raw(`<div id="editor-toolbar" class="toolbar" role="toolbar">`)
		for _, b := range buttons {
			hw.raw(`<button type="button"`)
			class := "tool"
			if b.Active {
				class += " active"
			}
			hw.attr("class", class)
			hw.attr("title", b.Format)
			hw.attr("data-command", b.Command)
			hw.attr("aria-pressed", boolString(b.Active))
			hw.raw(`><i`)
			hw.attr("class", b.Icon)
			hw.raw(`></i></button>`)
		}
		hw.raw(`</div>`)
	})
}

func inputField(hw *htmlWriter, col string, f vm.FieldViewModel) {
	hw.raw(`<label`)
	hw.attr("class", col)
	hw.raw(`>`)
	hw.text(f.Label)
	hw.raw(`<input`)
	typ := inputType(f)
	hw.attr("type", typ)
	hw.attr("name", f.Name)
	hw.attr("value", f.Value)
	hw.attr("placeholder", f.Placeholder)
	if typ == "number" {
		hw.raw(` min="0" step="any"`)
	}
	if f.Error != "" {
		hw.raw(` class="error" aria-invalid="true"`)
	}
	hw.raw(`>`)
	helper(hw, f.Error)
	hw.raw(`</label>`)
}

func selectField(hw *htmlWriter, col string, f vm.FieldViewModel, options []vm.OptionViewModel, prompt string) {
	hw.raw(`<label`)
	hw.attr("class", col)
	hw.raw(`>`)
	hw.text(f.Label)
	hw.raw(`<select`)
	hw.attr("name", f.Name)
	if f.Error != "" {
		hw.raw(` class="error" aria-invalid="true"`)
	}
	hw.raw(`><option value="">`)
	hw.text(prompt)
	hw.raw(`</option>`)
	for _, o := range options {
		hw.raw(`<option`)
		hw.attr("value", o.Value)
		hw.flag("selected", o.Selected)
		hw.raw(`>`)
		hw.text(o.Label)
		hw.raw(`</option>`)
	}
	hw.raw(`</select>`)
	helper(hw, f.Error)
	hw.raw(`</label>`)
}

func helper(hw *htmlWriter, msg string) {
	if msg == "" {
		return
	}
	hw.raw(`<small class="helper error">`)
	hw.text(msg)
	hw.raw(`</small>`)
}
