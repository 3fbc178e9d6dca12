package application

import (
	"context"
	"log/slog"

	"golang.org/x/sync/singleflight"

	"github.com/risinglab/jewelpanel/internal/domain/model"
	"github.com/risinglab/jewelpanel/internal/domain/port/driven"
)

// DefaultCategoryParentID is the taxonomy node whose children are offered as
// jewellery categories.
const DefaultCategoryParentID = "67a11573f8bba178b89e62c9"

// CategoryService loads the jewellery category list from the catalog API.
type CategoryService struct {
	client   driven.CatalogClient
	parentID string
	group    singleflight.Group
	logger   *slog.Logger
}

// NewCategoryService creates a CategoryService filtering on parentID
// (DefaultCategoryParentID when empty).
func NewCategoryService(client driven.CatalogClient, parentID string, logger *slog.Logger) *CategoryService {
	if parentID == "" {
		parentID = DefaultCategoryParentID
	}
	return &CategoryService{client: client, parentID: parentID, logger: logger}
}

// ParentID returns the parent filter sent to the catalog API.
func (s *CategoryService) ParentID() string {
	return s.parentID
}

// Load fetches the categories and records the request lifecycle on store.
// Concurrent loads share a single upstream request. The upstream request is
// not tied to any one caller's cancellation; a caller whose ctx ends stops
// waiting and its store records the cancellation as a failed fetch.
func (s *CategoryService) Load(ctx context.Context, store *Store) ([]model.Category, error) {
	store.Dispatch(CategoriesRequested{})

	ch := s.group.DoChan(s.parentID, func() (any, error) {
		return s.client.FetchCategories(context.WithoutCancel(ctx), s.parentID)
	})

	select {
	case <-ctx.Done():
		store.Dispatch(CategoriesFailed{Err: ctx.Err()})
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			s.logger.Error("failed to fetch categories", "parent", s.parentID, "error", res.Err)
			store.Dispatch(CategoriesFailed{Err: res.Err})
			return nil, res.Err
		}

		categories := res.Val.([]model.Category)
		store.Dispatch(CategoriesFetched{Categories: categories})
		return store.Snapshot().Categories, nil
	}
}
