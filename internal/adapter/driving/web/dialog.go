package web

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/risinglab/jewelpanel/internal/adapter/driving/web/templates"
	vm "github.com/risinglab/jewelpanel/internal/adapter/driving/web/viewmodel"
	"github.com/risinglab/jewelpanel/internal/application"
	"github.com/risinglab/jewelpanel/internal/domain/model"
	"github.com/risinglab/jewelpanel/internal/domain/port/driven"
	"github.com/risinglab/jewelpanel/internal/richtext"
)

const (
	maxUploadMemory = 8 << 20

	createdNotice         = "Jewellery added successfully."
	updatedNotice         = "Jewellery updated successfully."
	categoriesFailedText  = "Could not load categories."
	jewelleryMissingText  = "This jewellery no longer exists."
	submissionPendingText = "A submission is already in progress."
	unsupportedImageText  = "Only image files can be attached."
	uploadFailedText      = "Could not upload the image. Please try again."
)

// dialogViewModel renders the workspace dialog with the toolbar at caret.
func (h *Handler) dialogViewModel(ws *application.Workspace, csrf string, caret int) vm.DialogViewModel {
	return toDialogViewModel(ws.Dialog.Snapshot(), ws.Dialog.Toolbar(caret), csrf)
}

func (h *Handler) renderDialog(w http.ResponseWriter, r *http.Request, ws *application.Workspace) {
	h.render(w, r, templates.Dialog(h.dialogViewModel(ws, h.csrfToken(w, r), 0)))
}

// NewJewellery opens the dialog for a new record.
func (h *Handler) NewJewellery(w http.ResponseWriter, r *http.Request) {
	ws := workspaceFrom(r.Context())
	if err := ws.Dialog.Open(r.Context(), nil); err != nil {
		h.logger.Error("failed to open dialog", "error", err)
		trigger(w, toastError, categoriesFailedText)
	}
	h.renderDialog(w, r, ws)
}

// EditJewellery opens the dialog bound to an existing record.
func (h *Handler) EditJewellery(w http.ResponseWriter, r *http.Request) {
	ws := workspaceFrom(r.Context())
	id := r.PathValue("id")

	record, err := h.catalog.GetJewellery(r.Context(), id)
	if err != nil {
		if errors.Is(err, driven.ErrJewelleryNotFound) {
			trigger(w, toastError, jewelleryMissingText, catalogChangedEvent)
			http.Error(w, "jewellery not found", http.StatusNotFound)
			return
		}
		h.logger.Error("failed to load jewellery", "id", id, "error", err)
		trigger(w, toastError, application.RejectionNotice(err))
		http.Error(w, "catalog unavailable", http.StatusBadGateway)
		return
	}

	if err := ws.Dialog.Open(r.Context(), record); err != nil {
		h.logger.Error("failed to open dialog", "error", err)
		trigger(w, toastError, categoriesFailedText)
	}
	h.renderDialog(w, r, ws)
}

// CloseDialog hides the dialog and discards the draft.
func (h *Handler) CloseDialog(w http.ResponseWriter, r *http.Request) {
	ws := workspaceFrom(r.Context())
	ws.Dialog.Close()
	h.renderDialog(w, r, ws)
}

// SubmitJewellery validates the form and creates or updates the record.
// Validation and rejection responses re-render the open dialog with status
// 200 so htmx swaps them in.
func (h *Handler) SubmitJewellery(w http.ResponseWriter, r *http.Request) {
	ws := workspaceFrom(r.Context())

	res, err := ws.Dialog.Submit(r.Context(), draftFromForm(r))
	if err != nil {
		var verr *application.ValidationError
		switch {
		case errors.As(err, &verr):
			h.renderDialog(w, r, ws)
		case errors.Is(err, application.ErrNoImages):
			trigger(w, toastError, application.NoImagesNotice)
			h.renderDialog(w, r, ws)
		case errors.Is(err, application.ErrSubmissionInFlight):
			trigger(w, toastInfo, submissionPendingText)
			w.WriteHeader(http.StatusConflict)
		case errors.Is(err, application.ErrDialogClosed):
			h.renderDialog(w, r, ws)
		default:
			h.logger.Error("failed to submit jewellery", "error", err)
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
		return
	}

	switch res.Outcome {
	case model.OutcomeFulfilled:
		notice := createdNotice
		if res.Kind == model.MutationUpdate {
			notice = updatedNotice
		}
		trigger(w, toastSuccess, notice, catalogChangedEvent)
	case model.OutcomeRejected:
		trigger(w, toastError, application.RejectionNotice(res.Err))
	case model.OutcomeCancelled:
		// The dialog was closed or reopened by another request.
	}
	h.renderDialog(w, r, ws)
}

// draftFromForm reads the dialog fields. The record identifier is never
// taken from the form.
func draftFromForm(r *http.Request) model.Draft {
	return model.Draft{
		Category:      r.FormValue("category"),
		JewelleryName: r.FormValue("jewelleryName"),
		Brand:         r.FormValue("brand"),
		Color:         r.FormValue("color"),
		Size:          r.FormValue("size"),
		SKU:           r.FormValue("sku"),
		Price:         r.FormValue("price"),
		Description:   r.FormValue("description"),
	}
}

// UploadImages stages every file of the "images" field.
func (h *Handler) UploadImages(w http.ResponseWriter, r *http.Request) {
	ws := workspaceFrom(r.Context())

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		h.logger.Warn("invalid image upload", "error", err)
		trigger(w, toastError, uploadFailedText)
		http.Error(w, "invalid upload", http.StatusBadRequest)
		return
	}

	var failed string
	for _, fh := range r.MultipartForm.File["images"] {
		if err := h.attach(r, ws, fh); err != nil {
			if errors.Is(err, application.ErrDialogClosed) {
				w.WriteHeader(http.StatusConflict)
				return
			}
			failed = uploadFailedText
			if errors.Is(err, application.ErrUnsupportedImage) {
				failed = unsupportedImageText
			} else {
				h.logger.Error("failed to stage image", "file", fh.Filename, "error", err)
			}
		}
	}
	if failed != "" {
		trigger(w, toastError, failed)
	}

	h.render(w, r, templates.ImageList(toAttachmentViewModels(ws.Dialog.Snapshot())))
}

func (h *Handler) attach(r *http.Request, ws *application.Workspace, fh *multipart.FileHeader) error {
	f, err := fh.Open()
	if err != nil {
		return fmt.Errorf("open upload %s: %w", fh.Filename, err)
	}
	defer f.Close()

	_, err = ws.Dialog.AttachImage(r.Context(), fh.Filename, fh.Header.Get("Content-Type"), f, fh.Size)
	return err
}

// RemoveImage drops a staged image.
func (h *Handler) RemoveImage(w http.ResponseWriter, r *http.Request) {
	ws := workspaceFrom(r.Context())

	if err := ws.Dialog.RemoveImage(r.Context(), r.PathValue("id")); err != nil {
		if !errors.Is(err, driven.ErrAttachmentNotFound) {
			h.logger.Error("failed to remove image", "error", err)
			trigger(w, toastError, uploadFailedText)
		}
	}
	h.render(w, r, templates.ImageList(toAttachmentViewModels(ws.Dialog.Snapshot())))
}

// SyncDescription stores the editor document and returns the toolbar for
// the caret. Pasted markdown is converted and appended to the document.
func (h *Handler) SyncDescription(w http.ResponseWriter, r *http.Request) {
	ws := workspaceFrom(r.Context())

	doc := r.FormValue("description")
	md := r.FormValue("markdown")
	if md != "" {
		doc += richtext.FromMarkdown(md)
	}

	if _, err := ws.Dialog.SetDescription(doc); err != nil {
		w.WriteHeader(http.StatusConflict)
		return
	}

	caret, err := strconv.Atoi(r.FormValue("caret"))
	if err != nil || caret < 0 {
		caret = 0
	}

	m := h.dialogViewModel(ws, h.csrfToken(w, r), caret)
	h.render(w, r, templates.EditorToolbar(m.Toolbar))
	if md != "" {
		if err := templates.EditorContent(m, true).Render(r.Context(), w); err != nil {
			h.logger.Error("failed to render editor", "error", err)
		}
	}
}
