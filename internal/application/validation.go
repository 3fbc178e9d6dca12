package application

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/risinglab/jewelpanel/internal/domain/model"
)

// NoImagesNotice is the user-visible notice for a submission without images.
const NoImagesNotice = "Please upload at least one image."

// RequiredFieldMessage is the inline message for an empty required field.
const RequiredFieldMessage = "This field is required."

var (
	// ErrNoImages rejects a submission whose draft carries no image attachment.
	ErrNoImages = errors.New("no image attached")

	// ErrSubmissionInFlight rejects a submission while another is outstanding.
	ErrSubmissionInFlight = errors.New("submission already in progress")

	// ErrDialogClosed rejects operations on a dialog that is not open.
	ErrDialogClosed = errors.New("dialog is not open")
)

// ValidationError lists per-field messages keyed by form field name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return fmt.Sprintf("invalid fields: %s", strings.Join(names, ", "))
}

// newDraftValidator returns a validator that reports fields by their form name.
func newDraftValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("form"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	// Registration only fails for empty tags or nil funcs.
	_ = v.RegisterValidation("nonnegative", func(fl validator.FieldLevel) bool {
		f, err := strconv.ParseFloat(fl.Field().String(), 64)
		return err == nil && f >= 0
	})

	return v
}

// validateDraft checks the required fields of a draft.
func validateDraft(v *validator.Validate, d model.Draft) error {
	err := v.Struct(d)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate draft: %w", err)
	}

	out := &ValidationError{Fields: make(map[string]string, len(fieldErrs))}
	for _, fe := range fieldErrs {
		out.Fields[fe.Field()] = messageFor(fe)
	}
	return out
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return RequiredFieldMessage
	case "oneof":
		return "Select one of the listed options."
	case "numeric", "nonnegative":
		return "Enter a price of 0 or more."
	default:
		return "This field is invalid."
	}
}

// normalizeDraft trims surrounding whitespace from every text field.
func normalizeDraft(d model.Draft) model.Draft {
	d.ID = strings.TrimSpace(d.ID)
	d.Category = strings.TrimSpace(d.Category)
	d.JewelleryName = strings.TrimSpace(d.JewelleryName)
	d.Brand = strings.TrimSpace(d.Brand)
	d.Color = strings.TrimSpace(d.Color)
	d.Size = strings.TrimSpace(d.Size)
	d.SKU = strings.TrimSpace(d.SKU)
	d.Price = strings.TrimSpace(d.Price)
	return d
}
