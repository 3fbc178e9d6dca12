package driven

import (
	"context"

	"github.com/risinglab/jewelpanel/internal/domain/model"
)

// MutationLog defines the driven port for the catalog mutation audit trail.
type MutationLog interface {
	Record(ctx context.Context, rec model.MutationRecord) error
	ListRecent(ctx context.Context, limit int) ([]model.MutationRecord, error)
}
