package memory

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/risinglab/jewelpanel/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.AttachmentStore = (*AttachmentStore)(nil)

// AttachmentStore keeps staged image bytes in memory. It is the default when
// no S3 bucket is configured.
type AttachmentStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewAttachmentStore creates an empty AttachmentStore.
func NewAttachmentStore() *AttachmentStore {
	return &AttachmentStore{blobs: make(map[string][]byte)}
}

// Put stores the body under key, replacing any previous bytes.
func (s *AttachmentStore) Put(_ context.Context, key, _ string, body io.Reader, _ int64) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return fmt.Errorf("read attachment %s: %w", key, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[key] = data
	return nil
}

// Open returns a reader over the bytes stored under key.
func (s *AttachmentStore) Open(_ context.Context, key string) (io.ReadCloser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.blobs[key]
	if !ok {
		return nil, fmt.Errorf("open attachment %s: %w", key, driven.ErrAttachmentNotFound)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

// Delete removes the bytes stored under key. Missing keys are ignored.
func (s *AttachmentStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blobs, key)
	return nil
}

// Len returns the number of staged attachments.
func (s *AttachmentStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.blobs)
}
