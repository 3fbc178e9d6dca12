package application_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/risinglab/jewelpanel/internal/application"
	"github.com/risinglab/jewelpanel/internal/domain/model"
)

func TestStore_ActionTypes(t *testing.T) {
	tests := []struct {
		action application.Action
		want   string
	}{
		{action: application.CategoriesRequested{}, want: "category/fetchAll/pending"},
		{action: application.CategoriesFetched{}, want: "category/fetchAll/fulfilled"},
		{action: application.CategoriesFailed{}, want: "category/fetchAll/rejected"},
		{action: application.MutationStarted{Kind: model.MutationCreate}, want: "jewellery/create/pending"},
		{action: application.MutationSettled{Kind: model.MutationUpdate, Outcome: model.OutcomeRejected}, want: "jewellery/update/rejected"},
		{action: application.MutationSettled{Kind: model.MutationCreate, Outcome: model.OutcomeFulfilled}, want: "jewellery/create/fulfilled"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.action.Type())
		})
	}
}

func TestStore_CategoryLifecycle(t *testing.T) {
	store := application.NewStore()
	assert.Equal(t, application.FetchIdle, store.Snapshot().CategoriesStatus)

	store.Dispatch(application.CategoriesRequested{})
	assert.Equal(t, application.FetchPending, store.Snapshot().CategoriesStatus)

	cats := []model.Category{{ID: "c1", Name: "Rings"}}
	store.Dispatch(application.CategoriesFetched{Categories: cats})
	cats[0].Name = "mutated"

	state := store.Snapshot()
	assert.Equal(t, application.FetchSettled, state.CategoriesStatus)
	assert.Equal(t, "Rings", state.Categories[0].Name, "store keeps its own copy")

	store.Dispatch(application.CategoriesFailed{Err: errors.New("boom")})
	state = store.Snapshot()
	assert.Equal(t, application.FetchRejected, state.CategoriesStatus)
	assert.Equal(t, "boom", state.CategoriesError)
	assert.Len(t, state.Categories, 1, "previous categories survive a failed refetch")
}

func TestStore_MutationLoadingFlag(t *testing.T) {
	store := application.NewStore()

	store.Dispatch(application.MutationStarted{Kind: model.MutationCreate})
	assert.True(t, store.Snapshot().JewelleryLoading)

	store.Dispatch(application.MutationSettled{Kind: model.MutationCreate, Outcome: model.OutcomeRejected, Err: errors.New("409")})
	state := store.Snapshot()
	assert.False(t, state.JewelleryLoading)
	assert.Equal(t, "jewellery/create/rejected", state.LastMutation)
	assert.Equal(t, "409", state.MutationError)
}

func TestStore_Subscribe(t *testing.T) {
	store := application.NewStore()

	var seen []application.FetchStatus
	unsubscribe := store.Subscribe(func(s application.State) {
		seen = append(seen, s.CategoriesStatus)
	})

	store.Dispatch(application.CategoriesRequested{})
	store.Dispatch(application.CategoriesFetched{})
	unsubscribe()
	store.Dispatch(application.CategoriesRequested{})

	assert.Equal(t, []application.FetchStatus{application.FetchPending, application.FetchSettled}, seen)
}

func TestStore_SubscriberMayReadStore(t *testing.T) {
	store := application.NewStore()

	var got application.State
	store.Subscribe(func(application.State) {
		got = store.Snapshot()
	})

	store.Dispatch(application.MutationStarted{Kind: model.MutationUpdate})
	assert.True(t, got.JewelleryLoading)
}

// --- CategoryService ---

type blockingCatalog struct {
	mockCatalog
	mu      sync.Mutex
	calls   int
	release chan struct{}
}

func (b *blockingCatalog) FetchCategories(_ context.Context, _ string) ([]model.Category, error) {
	b.mu.Lock()
	b.calls++
	b.mu.Unlock()
	<-b.release
	return []model.Category{{ID: "c1", Name: "Rings"}}, nil
}

func TestCategoryService_DefaultParent(t *testing.T) {
	svc := application.NewCategoryService(&mockCatalog{}, "", discardLogger())
	assert.Equal(t, application.DefaultCategoryParentID, svc.ParentID())

	svc = application.NewCategoryService(&mockCatalog{}, "abc", discardLogger())
	assert.Equal(t, "abc", svc.ParentID())
}

func TestCategoryService_CollapsesConcurrentLoads(t *testing.T) {
	catalog := &blockingCatalog{release: make(chan struct{})}
	svc := application.NewCategoryService(catalog, "", discardLogger())

	var wg sync.WaitGroup
	stores := []*application.Store{application.NewStore(), application.NewStore(), application.NewStore()}
	for _, st := range stores {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cats, err := svc.Load(context.Background(), st)
			assert.NoError(t, err)
			assert.Len(t, cats, 1)
		}()
	}

	assert.Eventually(t, func() bool {
		for _, st := range stores {
			if st.Snapshot().CategoriesStatus != application.FetchPending {
				return false
			}
		}
		return true
	}, time.Second, time.Millisecond)

	// Give the last caller time to join the in-flight request.
	time.Sleep(20 * time.Millisecond)
	close(catalog.release)
	wg.Wait()

	catalog.mu.Lock()
	defer catalog.mu.Unlock()
	assert.Equal(t, 1, catalog.calls)
	for _, st := range stores {
		assert.Equal(t, application.FetchSettled, st.Snapshot().CategoriesStatus)
	}
}

func TestCategoryService_CallerCancellation(t *testing.T) {
	catalog := &blockingCatalog{release: make(chan struct{})}
	svc := application.NewCategoryService(catalog, "", discardLogger())
	store := application.NewStore()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Load(ctx, store)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, application.FetchRejected, store.Snapshot().CategoriesStatus)

	close(catalog.release)
}

func TestCategoryService_FetchError(t *testing.T) {
	svc := application.NewCategoryService(&mockCatalog{fetchErr: errors.New("503")}, "", discardLogger())
	store := application.NewStore()

	_, err := svc.Load(context.Background(), store)
	require.Error(t, err)

	state := store.Snapshot()
	assert.Equal(t, application.FetchRejected, state.CategoriesStatus)
	assert.Equal(t, "503", state.CategoriesError)
}
