package application_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/risinglab/jewelpanel/internal/domain/model"
	"github.com/risinglab/jewelpanel/internal/domain/port/driven"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// --- CatalogClient ---

type sentPayload struct {
	ID         string
	Fields     []model.FormField
	KeptImages []string
	Images     map[string]string // file name -> body
}

type mockCatalog struct {
	mu         sync.Mutex
	categories []model.Category
	fetchErr   error
	fetchCalls int
	creates    []sentPayload
	updates    []sentPayload

	// mutate, when set, decides the result of create and update calls.
	mutate func(ctx context.Context) (*model.Jewellery, error)
}

func (m *mockCatalog) FetchCategories(_ context.Context, _ string) ([]model.Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fetchCalls++
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}
	return m.categories, nil
}

func (m *mockCatalog) ListJewellery(_ context.Context) ([]model.Jewellery, error) {
	return nil, nil
}

func (m *mockCatalog) GetJewellery(_ context.Context, _ string) (*model.Jewellery, error) {
	return nil, driven.ErrJewelleryNotFound
}

func (m *mockCatalog) CreateJewellery(ctx context.Context, payload model.JewelleryPayload) (*model.Jewellery, error) {
	sent := capturePayload("", payload)
	m.mu.Lock()
	m.creates = append(m.creates, sent)
	mutate := m.mutate
	m.mu.Unlock()

	if mutate != nil {
		return mutate(ctx)
	}
	return &model.Jewellery{ID: "new-1"}, nil
}

func (m *mockCatalog) UpdateJewellery(ctx context.Context, id string, payload model.JewelleryPayload) (*model.Jewellery, error) {
	sent := capturePayload(id, payload)
	m.mu.Lock()
	m.updates = append(m.updates, sent)
	mutate := m.mutate
	m.mu.Unlock()

	if mutate != nil {
		return mutate(ctx)
	}
	return &model.Jewellery{ID: id}, nil
}

func (m *mockCatalog) counts() (fetches, creates, updates int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fetchCalls, len(m.creates), len(m.updates)
}

func capturePayload(id string, payload model.JewelleryPayload) sentPayload {
	sent := sentPayload{ID: id, Fields: payload.Fields, KeptImages: payload.KeptImages, Images: make(map[string]string)}
	for _, img := range payload.Images {
		b, _ := io.ReadAll(img.Body)
		sent.Images[img.FileName] = string(b)
	}
	return sent
}

// --- AttachmentStore ---

type mockAttachments struct {
	mu      sync.Mutex
	objects map[string][]byte
	deleted []string
}

func newMockAttachments() *mockAttachments {
	return &mockAttachments{objects: make(map[string][]byte)}
}

func (m *mockAttachments) Put(_ context.Context, key, _ string, body io.Reader, _ int64) error {
	b, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = b
	return nil
}

func (m *mockAttachments) Open(_ context.Context, key string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.objects[key]
	if !ok {
		return nil, driven.ErrAttachmentNotFound
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

func (m *mockAttachments) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	m.deleted = append(m.deleted, key)
	return nil
}

func (m *mockAttachments) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}

// --- MutationLog ---

type mockAudit struct {
	mu      sync.Mutex
	records []model.MutationRecord
}

func (m *mockAudit) Record(_ context.Context, rec model.MutationRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, rec)
	return nil
}

func (m *mockAudit) ListRecent(_ context.Context, limit int) ([]model.MutationRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if limit > len(m.records) {
		limit = len(m.records)
	}
	return append([]model.MutationRecord(nil), m.records[:limit]...), nil
}

func (m *mockAudit) all() []model.MutationRecord {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.MutationRecord(nil), m.records...)
}

// --- MutationObserver ---

type observed struct {
	Kind    model.MutationKind
	Outcome model.Outcome
}

type mockObserver struct {
	mu   sync.Mutex
	seen []observed
}

func (m *mockObserver) ObserveMutation(kind model.MutationKind, outcome model.Outcome) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seen = append(m.seen, observed{Kind: kind, Outcome: outcome})
}

// --- UserStore ---

type mockUsers struct {
	users     map[string]model.User
	passwords map[int64]string
}

func (m *mockUsers) FindByEmail(_ context.Context, email string) (*model.User, error) {
	u, ok := m.users[email]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (m *mockUsers) VerifyPassword(_ context.Context, userID int64, password string) (bool, error) {
	return m.passwords[userID] == password, nil
}

// --- RevocationStore ---

type mockRevocations struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	err     error
}

func newMockRevocations() *mockRevocations {
	return &mockRevocations{revoked: make(map[string]time.Time)}
}

func (m *mockRevocations) Revoke(_ context.Context, tokenID string, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.revoked[tokenID] = expiresAt
	return nil
}

func (m *mockRevocations) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.revoked[tokenID]
	return ok, nil
}

func (m *mockRevocations) PurgeExpired(_ context.Context, now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for id, exp := range m.revoked {
		if !exp.After(now) {
			delete(m.revoked, id)
			n++
		}
	}
	return n, nil
}
