package store

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/shandysiswandi/fraudboard/internal/dashboard/entity"
	"github.com/shandysiswandi/fraudboard/internal/pkg/pkgerror"
)

// InMemoryStore keeps the uploads submitted through this service and the
// investigation case currently selected.
type InMemoryStore struct {
	mu      sync.RWMutex
	uploads map[string]*uploadRecord

	caseMu sync.RWMutex
	active *entity.CaseDetail
}

type uploadRecord struct {
	mu   sync.RWMutex
	meta entity.UploadMeta
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		uploads: make(map[string]*uploadRecord),
	}
}

func (s *InMemoryStore) CreateUpload(ctx context.Context, meta entity.UploadMeta) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.uploads[meta.ID]; exists {
		return pkgerror.NewBusiness("upload already exists", pkgerror.CodeConflict)
	}

	s.uploads[meta.ID] = &uploadRecord{
		meta: meta,
	}

	return nil
}

func (s *InMemoryStore) UpdateMeta(ctx context.Context, uploadID string, fn func(meta *entity.UploadMeta)) error {
	rec, err := s.get(uploadID)
	if err != nil {
		return err
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()

	fn(&rec.meta)

	return nil
}

func (s *InMemoryStore) GetUpload(ctx context.Context, uploadID string) (entity.UploadMeta, error) {
	rec, err := s.get(uploadID)
	if err != nil {
		return entity.UploadMeta{}, err
	}

	rec.mu.RLock()
	defer rec.mu.RUnlock()

	return rec.meta, nil
}

// ListUploads returns every upload, most recently started first.
func (s *InMemoryStore) ListUploads(ctx context.Context) ([]entity.UploadMeta, error) {
	s.mu.RLock()
	recs := make([]*uploadRecord, 0, len(s.uploads))
	for _, rec := range s.uploads {
		recs = append(recs, rec)
	}
	s.mu.RUnlock()

	items := make([]entity.UploadMeta, 0, len(recs))
	for _, rec := range recs {
		rec.mu.RLock()
		items = append(items, rec.meta)
		rec.mu.RUnlock()
	}

	slices.SortStableFunc(items, compareUploads)

	return items, nil
}

func (s *InMemoryStore) get(uploadID string) (*uploadRecord, error) {
	s.mu.RLock()
	rec, ok := s.uploads[uploadID]
	s.mu.RUnlock()
	if !ok {
		return nil, pkgerror.ErrNotFound
	}

	return rec, nil
}

func compareUploads(a, b entity.UploadMeta) int {
	switch {
	case a.StartedAt > b.StartedAt:
		return -1
	case a.StartedAt < b.StartedAt:
		return 1
	}
	return strings.Compare(a.ID, b.ID)
}
