package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/risinglab/jewelpanel/internal/domain/model"
	"github.com/risinglab/jewelpanel/internal/domain/port/driven"
	"github.com/risinglab/jewelpanel/internal/richtext"
)

// ErrUnsupportedImage rejects attachments that are not images.
var ErrUnsupportedImage = errors.New("attachment is not an image")

// MutationObserver is notified of every settled catalog mutation.
type MutationObserver interface {
	ObserveMutation(kind model.MutationKind, outcome model.Outcome)
}

// DialogServices bundles the collaborators shared by every JewelleryDialog.
type DialogServices struct {
	catalog     driven.CatalogClient
	categories  *CategoryService
	attachments driven.AttachmentStore
	audit       driven.MutationLog
	observer    MutationObserver
	validate    *validator.Validate
	logger      *slog.Logger
}

// NewDialogServices creates the shared dialog collaborators. audit and
// observer may be nil.
func NewDialogServices(
	catalog driven.CatalogClient,
	categories *CategoryService,
	attachments driven.AttachmentStore,
	audit driven.MutationLog,
	observer MutationObserver,
	logger *slog.Logger,
) *DialogServices {
	return &DialogServices{
		catalog:     catalog,
		categories:  categories,
		attachments: attachments,
		audit:       audit,
		observer:    observer,
		validate:    newDraftValidator(),
		logger:      logger,
	}
}

// DialogView is a read-only copy of a dialog's state for rendering.
type DialogView struct {
	Open        bool
	Mode        model.DialogMode
	Draft       model.Draft
	EditorHTML  string
	KeptImages  []model.StoredImage
	Attachments []model.Attachment
	Categories  []model.Category
	FieldErrors map[string]string
	Pending     bool
}

// SubmitResult is the settled outcome of a dispatched create or update.
// Err is set when Outcome is OutcomeRejected.
type SubmitResult struct {
	Kind    model.MutationKind
	Outcome model.Outcome
	Record  *model.Jewellery
	Err     error
}

// JewelleryDialog is the create/update dialog of one admin session. The
// draft lives only while the dialog is open; the category list is cached for
// the lifetime of the dialog.
type JewelleryDialog struct {
	svc       *DialogServices
	store     *Store
	userEmail string

	mu          sync.Mutex
	open        bool
	mode        model.DialogMode
	draft       model.Draft
	description *richtext.Field
	kept        []model.StoredImage
	attachments []model.Attachment
	categories  []model.Category
	fieldErrors map[string]string
	pending     bool
	generation  uint64
	cancel      context.CancelFunc
}

// NewJewelleryDialog creates a closed dialog bound to store.
func NewJewelleryDialog(svc *DialogServices, store *Store, userEmail string) *JewelleryDialog {
	return &JewelleryDialog{
		svc:         svc,
		store:       store,
		userEmail:   userEmail,
		mode:        model.DialogModeAdd,
		description: richtext.NewField(""),
	}
}

// Open shows the dialog for existing, or for a new record when existing is
// nil. Any previous draft is discarded and any in-flight submission is
// cancelled. Categories are fetched when the dialog has none cached; a fetch
// failure is returned but leaves the dialog open.
func (d *JewelleryDialog) Open(ctx context.Context, existing *model.Jewellery) error {
	d.mu.Lock()
	stale := d.resetLocked()
	d.open = true
	if existing != nil {
		d.mode = model.DialogModeEdit
		d.draft = model.DraftFromJewellery(*existing)
		for _, url := range existing.Images {
			d.kept = append(d.kept, model.StoredImage{ID: uuid.NewString(), URL: url})
		}
	} else {
		d.mode = model.DialogModeAdd
	}
	d.description.SetContent(d.draft.Description)
	d.draft.Description = d.description.HTML()
	needCategories := len(d.categories) == 0
	gen := d.generation
	d.mu.Unlock()

	d.discard(stale)

	if !needCategories {
		return nil
	}

	categories, err := d.svc.categories.Load(ctx, d.store)
	if err != nil {
		return fmt.Errorf("load categories: %w", err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if gen == d.generation && len(categories) > 0 {
		d.categories = categories
	}
	return nil
}

// Close hides the dialog, discards the draft and staged images and cancels
// any in-flight submission.
func (d *JewelleryDialog) Close() {
	d.mu.Lock()
	stale := d.resetLocked()
	d.mu.Unlock()

	d.discard(stale)
}

// resetLocked returns the dialog to its closed, empty state and bumps the
// generation so late mutation results are ignored. It returns the staged
// attachments that must be discarded.
func (d *JewelleryDialog) resetLocked() []model.Attachment {
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.generation++
	d.open = false
	d.pending = false
	d.mode = model.DialogModeAdd
	d.draft = model.Draft{}
	d.description.SetContent("")
	d.fieldErrors = nil
	d.kept = nil

	stale := d.attachments
	d.attachments = nil
	return stale
}

// discard deletes staged attachment bytes. Failures are logged only.
func (d *JewelleryDialog) discard(atts []model.Attachment) {
	for _, a := range atts {
		if err := d.svc.attachments.Delete(context.Background(), a.Key); err != nil {
			d.svc.logger.Warn("failed to discard staged image", "key", a.Key, "error", err)
		}
	}
}

// IsOpen reports whether the dialog is shown.
func (d *JewelleryDialog) IsOpen() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.open
}

// Snapshot returns a copy of the dialog state for rendering.
func (d *JewelleryDialog) Snapshot() DialogView {
	d.mu.Lock()
	defer d.mu.Unlock()

	errs := make(map[string]string, len(d.fieldErrors))
	for k, v := range d.fieldErrors {
		errs[k] = v
	}

	return DialogView{
		Open:        d.open,
		Mode:        d.mode,
		Draft:       d.draft,
		EditorHTML:  d.description.EditorHTML(),
		KeptImages:  slices.Clone(d.kept),
		Attachments: slices.Clone(d.attachments),
		Categories:  slices.Clone(d.categories),
		FieldErrors: errs,
		Pending:     d.pending,
	}
}

// SetDescription stores HTML emitted by the description editor and returns
// the sanitised value kept in the draft.
func (d *JewelleryDialog) SetDescription(src string) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.open {
		return "", ErrDialogClosed
	}
	d.draft.Description = d.description.Update(src)
	return d.draft.Description, nil
}

// Toolbar returns the editor toolbar state for a caret offset.
func (d *JewelleryDialog) Toolbar(caret int) []richtext.Button {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.description.Toolbar(caret)
}

// AttachImage stages an uploaded image for the draft.
func (d *JewelleryDialog) AttachImage(ctx context.Context, fileName, contentType string, body io.Reader, size int64) (model.Attachment, error) {
	if !strings.HasPrefix(contentType, "image/") {
		return model.Attachment{}, fmt.Errorf("attach %s (%s): %w", fileName, contentType, ErrUnsupportedImage)
	}

	d.mu.Lock()
	if !d.open {
		d.mu.Unlock()
		return model.Attachment{}, ErrDialogClosed
	}
	gen := d.generation
	d.mu.Unlock()

	id := uuid.NewString()
	att := model.Attachment{
		ID:          id,
		Key:         "attachments/" + id,
		FileName:    fileName,
		ContentType: contentType,
		Size:        size,
		UploadedAt:  time.Now().UTC(),
	}

	if err := d.svc.attachments.Put(ctx, att.Key, contentType, body, size); err != nil {
		return model.Attachment{}, fmt.Errorf("stage image %s: %w", fileName, err)
	}

	d.mu.Lock()
	if !d.open || gen != d.generation {
		d.mu.Unlock()
		d.discard([]model.Attachment{att})
		return model.Attachment{}, ErrDialogClosed
	}
	d.attachments = append(d.attachments, att)
	d.mu.Unlock()

	return att, nil
}

// RemoveImage drops a stored or staged image from the draft. A stored image
// is only left out of the next update; a staged one is deleted.
func (d *JewelleryDialog) RemoveImage(ctx context.Context, id string) error {
	d.mu.Lock()
	if i := slices.IndexFunc(d.kept, func(img model.StoredImage) bool { return img.ID == id }); i >= 0 {
		d.kept = slices.Delete(d.kept, i, i+1)
		d.mu.Unlock()
		return nil
	}
	idx := slices.IndexFunc(d.attachments, func(a model.Attachment) bool { return a.ID == id })
	if idx < 0 {
		d.mu.Unlock()
		return fmt.Errorf("remove image %s: %w", id, driven.ErrAttachmentNotFound)
	}
	att := d.attachments[idx]
	d.attachments = slices.Delete(d.attachments, idx, idx+1)
	d.mu.Unlock()

	if err := d.svc.attachments.Delete(ctx, att.Key); err != nil {
		return fmt.Errorf("remove image %s: %w", id, err)
	}
	return nil
}

// Submit validates form and dispatches exactly one create or update.
//
// Pre-dispatch rejections are returned as errors and leave the dialog open:
// *ValidationError for missing or invalid fields, ErrNoImages when neither a
// stored nor a staged image remains, ErrSubmissionInFlight while another submission is pending
// and ErrDialogClosed when the dialog is not shown.
//
// Once dispatched, the result reports the outcome. Fulfilled closes the
// dialog and resets the draft. Rejected keeps the dialog open with the draft
// intact. Cancelled means the dialog was closed or reopened mid-flight.
func (d *JewelleryDialog) Submit(ctx context.Context, form model.Draft) (SubmitResult, error) {
	d.mu.Lock()
	if !d.open {
		d.mu.Unlock()
		return SubmitResult{}, ErrDialogClosed
	}
	if d.pending {
		d.mu.Unlock()
		return SubmitResult{}, ErrSubmissionInFlight
	}

	form = normalizeDraft(form)
	form.ID = d.draft.ID
	form.Description = d.description.Update(form.Description)
	d.draft = form

	if err := validateDraft(d.svc.validate, form); err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			d.fieldErrors = verr.Fields
		}
		d.mu.Unlock()
		return SubmitResult{}, err
	}
	d.fieldErrors = nil

	if len(d.kept)+len(d.attachments) == 0 {
		d.mu.Unlock()
		return SubmitResult{}, ErrNoImages
	}

	kind := model.MutationCreate
	if form.IsPersisted() {
		kind = model.MutationUpdate
	}

	mctx, cancel := context.WithCancel(ctx)
	d.pending = true
	d.cancel = cancel
	gen := d.generation
	atts := slices.Clone(d.attachments)
	kept := make([]string, 0, len(d.kept))
	for _, img := range d.kept {
		kept = append(kept, img.URL)
	}
	d.mu.Unlock()

	defer cancel()

	d.store.Dispatch(MutationStarted{Kind: kind})
	record, err := d.dispatch(mctx, kind, form, kept, atts)

	d.mu.Lock()
	if gen != d.generation {
		d.mu.Unlock()
		return d.settle(SubmitResult{Kind: kind, Outcome: model.OutcomeCancelled}, form), nil
	}
	d.pending = false
	d.cancel = nil

	if err != nil {
		d.mu.Unlock()
		return d.settle(SubmitResult{Kind: kind, Outcome: model.OutcomeRejected, Err: err}, form), nil
	}

	stale := d.resetLocked()
	d.mu.Unlock()
	d.discard(stale)

	return d.settle(SubmitResult{Kind: kind, Outcome: model.OutcomeFulfilled, Record: record}, form), nil
}

// dispatch opens every staged image and sends the payload.
func (d *JewelleryDialog) dispatch(ctx context.Context, kind model.MutationKind, draft model.Draft, kept []string, atts []model.Attachment) (*model.Jewellery, error) {
	payload := model.JewelleryPayload{Fields: draft.Fields(), KeptImages: kept}

	for _, a := range atts {
		rc, err := d.svc.attachments.Open(ctx, a.Key)
		if err != nil {
			return nil, fmt.Errorf("open staged image %s: %w", a.FileName, err)
		}
		defer rc.Close()

		payload.Images = append(payload.Images, model.ImagePart{
			FileName:    a.FileName,
			ContentType: a.ContentType,
			Body:        rc,
		})
	}

	if kind == model.MutationUpdate {
		return d.svc.catalog.UpdateJewellery(ctx, draft.ID, payload)
	}
	return d.svc.catalog.CreateJewellery(ctx, payload)
}

// settle publishes the outcome to the store, the audit log and the observer.
func (d *JewelleryDialog) settle(res SubmitResult, draft model.Draft) SubmitResult {
	d.store.Dispatch(MutationSettled{Kind: res.Kind, Outcome: res.Outcome, Err: res.Err})

	id := draft.ID
	if res.Record != nil && res.Record.ID != "" {
		id = res.Record.ID
	}

	logArgs := []any{"action", mutationActionType(res.Kind, string(res.Outcome)), "jewellery_id", id, "sku", draft.SKU}
	if res.Err != nil {
		d.svc.logger.Warn("jewellery mutation rejected", append(logArgs, "error", res.Err)...)
	} else {
		d.svc.logger.Info("jewellery mutation settled", logArgs...)
	}

	if d.svc.observer != nil {
		d.svc.observer.ObserveMutation(res.Kind, res.Outcome)
	}

	if d.svc.audit != nil {
		rec := model.MutationRecord{
			UserEmail:   d.userEmail,
			Kind:        res.Kind,
			JewelleryID: id,
			SKU:         draft.SKU,
			Outcome:     res.Outcome,
			Message:     RejectionNotice(res.Err),
		}
		// Audit writes must not be lost to a cancelled request.
		if err := d.svc.audit.Record(context.Background(), rec); err != nil {
			d.svc.logger.Error("failed to record mutation", "error", err)
		}
	}

	return res
}

// RejectionNotice returns the user-visible text for a rejected mutation, or
// "" for a nil error.
func RejectionNotice(err error) string {
	if err == nil {
		return ""
	}
	var rejected *driven.RejectedError
	if errors.As(err, &rejected) && rejected.Message != "" {
		return rejected.Message
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return "The request was cancelled before the catalog answered."
	}
	return "Could not save the jewellery. Please try again."
}
