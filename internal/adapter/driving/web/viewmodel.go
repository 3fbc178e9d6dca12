package web

import (
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	vm "github.com/risinglab/jewelpanel/internal/adapter/driving/web/viewmodel"
	"github.com/risinglab/jewelpanel/internal/application"
	"github.com/risinglab/jewelpanel/internal/domain/model"
	"github.com/risinglab/jewelpanel/internal/richtext"
)

const (
	jewelleryBasePath = "/app/jewellery"
	dialogBasePath    = "/app/dialog"
	menuBasePath      = "/app/menu"
)

// toUserViewModel converts a session into the navbar user.
func toUserViewModel(s model.Session) vm.UserViewModel {
	return vm.UserViewModel{
		Name:     s.Name,
		Email:    s.Email,
		Image:    s.Image,
		Initials: initials(s.Name, s.Email),
	}
}

func initials(name, email string) string {
	var b strings.Builder
	for _, part := range strings.Fields(name) {
		r := []rune(part)
		b.WriteString(strings.ToUpper(string(r[0])))
		if b.Len() >= 2 {
			break
		}
	}
	if b.Len() == 0 && email != "" {
		return strings.ToUpper(string([]rune(email)[0]))
	}
	return b.String()
}

// toMenuViewModel converts the account dropdown state.
func toMenuViewModel(s model.Session, m application.MenuView, csrf string) vm.MenuViewModel {
	return vm.MenuViewModel{
		User:        toUserViewModel(s),
		Open:        m.Open,
		Pending:     m.Pending,
		Error:       m.Error,
		PendingText: application.SigningOutNotice,
		TogglePath:  menuBasePath + "/toggle",
		DismissPath: menuBasePath + "/dismiss",
		LogoutPath:  "/logout",
		CSRFToken:   csrf,
	}
}

// toJewelleryListViewModel converts catalog records into table rows.
func toJewelleryListViewModel(items []model.Jewellery) vm.JewelleryListViewModel {
	rows := make([]vm.JewelleryRowViewModel, 0, len(items))
	for _, j := range items {
		row := vm.JewelleryRowViewModel{
			ID:       j.ID,
			Name:     j.JewelleryName,
			Brand:    j.Brand,
			SKU:      j.SKU,
			Price:    formatPrice(j.Price),
			Color:    string(j.Color),
			Size:     string(j.Size),
			EditPath: fmt.Sprintf("%s/%s/edit", jewelleryBasePath, j.ID),
		}
		if len(j.Images) > 0 {
			row.Thumbnail = j.Images[0]
		}
		rows = append(rows, row)
	}
	return vm.JewelleryListViewModel{Rows: rows}
}

func formatPrice(p string) string {
	if p == "" {
		return ""
	}
	return "₹ " + p
}

// toActivityViewModels converts audit records into feed lines.
func toActivityViewModels(recs []model.MutationRecord, now time.Time) []vm.ActivityViewModel {
	out := make([]vm.ActivityViewModel, 0, len(recs))
	for _, r := range recs {
		verb := "created"
		if r.Kind == model.MutationUpdate {
			verb = "updated"
		}
		summary := verb + " jewellery"
		if r.SKU != "" {
			summary += " " + r.SKU
		}
		out = append(out, vm.ActivityViewModel{
			When:    humanize.RelTime(r.CreatedAt, now, "ago", "from now"),
			User:    r.UserEmail,
			Summary: summary,
			Outcome: string(r.Outcome),
			Failed:  r.Outcome != model.OutcomeFulfilled,
		})
	}
	return out
}

// fieldLabels maps form field names to their label and placeholder.
var fieldLabels = map[string][2]string{
	"category":      {"Category", ""},
	"jewelleryName": {"Jewellery Name", "Bracelet"},
	"brand":         {"Brand", "Brand"},
	"size":          {"Size", ""},
	"sku":           {"SKU", "MNK-001"},
	"price":         {"Price", "₹ 199"},
}

func field(name, value, typ string, errs map[string]string) vm.FieldViewModel {
	l := fieldLabels[name]
	return vm.FieldViewModel{
		Name:        name,
		Label:       l[0],
		Type:        typ,
		Placeholder: l[1],
		Value:       value,
		Error:       errs[name],
	}
}

// toDialogViewModel converts the dialog state into the modal form.
func toDialogViewModel(d application.DialogView, toolbar []richtext.Button, csrf string) vm.DialogViewModel {
	if !d.Open {
		return vm.DialogViewModel{}
	}

	out := vm.DialogViewModel{
		Open:         true,
		Title:        "Add New Jewellery",
		Subtitle:     "Add newest launched jewellery",
		SubmitLabel:  "Submit",
		PendingLabel: "Submitting...",
		Pending:      d.Pending,
		CSRFToken:    csrf,
		SubmitPath:   jewelleryBasePath,
		ClosePath:    dialogBasePath + "/close",
		UploadPath:   dialogBasePath + "/images",
		EditorPath:   dialogBasePath + "/description",
		Category:     field("category", d.Draft.Category, "", d.FieldErrors),
		Name:         field("jewelleryName", d.Draft.JewelleryName, "text", d.FieldErrors),
		Brand:        field("brand", d.Draft.Brand, "text", d.FieldErrors),
		ColorError:   d.FieldErrors["color"],
		Size:         field("size", d.Draft.Size, "", d.FieldErrors),
		SKU:          field("sku", d.Draft.SKU, "text", d.FieldErrors),
		Price:        field("price", d.Draft.Price, "number", d.FieldErrors),
		Description:  d.Draft.Description,
		EditorHTML:   d.EditorHTML,
		Placeholder:  richtext.Placeholder,
		Toolbar:      toToolbarViewModels(toolbar),
		Attachments:  toAttachmentViewModels(d),
	}
	if d.Mode == model.DialogModeEdit {
		out.Title = "Edit Jewellery"
		out.Subtitle = "Edit Jewellery"
		out.SubmitLabel = "Update"
	}

	for _, c := range d.Categories {
		out.Categories = append(out.Categories, vm.OptionViewModel{
			Value:    c.ID,
			Label:    c.Name,
			Selected: c.ID == d.Draft.Category,
		})
	}
	for _, c := range model.Colors {
		out.Colors = append(out.Colors, vm.OptionViewModel{
			Value:    string(c),
			Label:    capitalize(string(c)),
			Selected: string(c) == d.Draft.Color,
		})
	}
	for _, s := range model.Sizes {
		out.Sizes = append(out.Sizes, vm.OptionViewModel{
			Value:    string(s),
			Label:    string(s),
			Selected: string(s) == d.Draft.Size,
		})
	}
	return out
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func toToolbarViewModels(buttons []richtext.Button) []vm.ToolbarButtonViewModel {
	out := make([]vm.ToolbarButtonViewModel, 0, len(buttons))
	for _, b := range buttons {
		out = append(out, vm.ToolbarButtonViewModel{
			Format:  string(b.Format),
			Icon:    b.Icon,
			Command: b.Command,
			Active:  b.Active,
		})
	}
	return out
}

// toAttachmentViewModels lists the stored images first, then staged uploads.
func toAttachmentViewModels(d application.DialogView) []vm.AttachmentViewModel {
	out := make([]vm.AttachmentViewModel, 0, len(d.KeptImages)+len(d.Attachments))
	for _, img := range d.KeptImages {
		out = append(out, vm.AttachmentViewModel{
			ID:         img.ID,
			FileName:   path.Base(img.URL),
			URL:        img.URL,
			Size:       "Saved",
			DeletePath: dialogBasePath + "/images/" + img.ID,
		})
	}
	for _, a := range d.Attachments {
		out = append(out, vm.AttachmentViewModel{
			ID:         a.ID,
			FileName:   a.FileName,
			Size:       humanize.Bytes(uint64(max(a.Size, 0))),
			DeletePath: dialogBasePath + "/images/" + a.ID,
		})
	}
	return out
}
