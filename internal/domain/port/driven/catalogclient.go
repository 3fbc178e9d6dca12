package driven

import (
	"context"
	"errors"
	"fmt"

	"github.com/risinglab/jewelpanel/internal/domain/model"
)

// ErrJewelleryNotFound indicates the catalog API has no record with the requested ID.
var ErrJewelleryNotFound = errors.New("jewellery not found")

// RejectedError is returned when the catalog API answers a request with a
// non-success status. Message carries the API's own explanation when present.
type RejectedError struct {
	StatusCode int
	Message    string
}

func (e *RejectedError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("catalog api rejected request: status %d", e.StatusCode)
	}
	return fmt.Sprintf("catalog api rejected request: status %d: %s", e.StatusCode, e.Message)
}

// CatalogClient defines the driven port for the remote catalog API.
type CatalogClient interface {
	FetchCategories(ctx context.Context, parentID string) ([]model.Category, error)
	ListJewellery(ctx context.Context) ([]model.Jewellery, error)
	GetJewellery(ctx context.Context, id string) (*model.Jewellery, error)
	CreateJewellery(ctx context.Context, payload model.JewelleryPayload) (*model.Jewellery, error)
	UpdateJewellery(ctx context.Context, id string, payload model.JewelleryPayload) (*model.Jewellery, error)
}
