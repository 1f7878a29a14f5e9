package store

import (
	"context"
	"slices"

	"github.com/shandysiswandi/fraudboard/internal/dashboard/entity"
	"github.com/shandysiswandi/fraudboard/internal/pkg/pkgerror"
)

// SelectCase replaces the active case. Any previous selection is discarded.
func (s *InMemoryStore) SelectCase(ctx context.Context, detail entity.CaseDetail) error {
	s.caseMu.Lock()
	defer s.caseMu.Unlock()

	d := cloneDetail(detail)
	s.active = &d
	return nil
}

func (s *InMemoryStore) ActiveCase(ctx context.Context) (entity.CaseDetail, error) {
	s.caseMu.RLock()
	defer s.caseMu.RUnlock()

	if s.active == nil {
		return entity.CaseDetail{}, pkgerror.ErrNotFound
	}
	return cloneDetail(*s.active), nil
}

// UpdateCase applies fn to the active case. The change is kept only when fn
// returns nil.
func (s *InMemoryStore) UpdateCase(ctx context.Context, fn func(detail *entity.CaseDetail) error) (entity.CaseDetail, error) {
	s.caseMu.Lock()
	defer s.caseMu.Unlock()

	if s.active == nil {
		return entity.CaseDetail{}, pkgerror.ErrNotFound
	}

	d := cloneDetail(*s.active)
	if err := fn(&d); err != nil {
		return entity.CaseDetail{}, err
	}
	s.active = &d

	return cloneDetail(d), nil
}

func (s *InMemoryStore) ClearCase(ctx context.Context) error {
	s.caseMu.Lock()
	defer s.caseMu.Unlock()

	s.active = nil
	return nil
}

func cloneDetail(d entity.CaseDetail) entity.CaseDetail {
	d.Timeline = slices.Clone(d.Timeline)
	d.RiskFactors = slices.Clone(d.RiskFactors)
	d.RecommendedActions = slices.Clone(d.RecommendedActions)
	d.RelatedCases = slices.Clone(d.RelatedCases)
	d.SimilarCases = slices.Clone(d.SimilarCases)
	return d
}
