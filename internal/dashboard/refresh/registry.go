package refresh

import (
	"slices"
	"sync"

	"github.com/shandysiswandi/fraudboard/internal/pkg/pkgerror"
)

// Controllable is the type-erased surface of a View used by the HTTP layer.
type Controllable interface {
	Refresher
	Status() Status
	Reset()
}

type Registry struct {
	mu    sync.RWMutex
	views map[string]Controllable
}

func NewRegistry() *Registry {
	return &Registry{views: make(map[string]Controllable)}
}

func (r *Registry) Add(v Controllable) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.views[v.Name()] = v
}

func (r *Registry) Get(name string) (Controllable, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.views[name]
	if !ok {
		return nil, pkgerror.ErrNotFound
	}
	return v, nil
}

func (r *Registry) Statuses() []Status {
	r.mu.RLock()
	names := make([]string, 0, len(r.views))
	for name := range r.views {
		names = append(names, name)
	}
	r.mu.RUnlock()
	slices.Sort(names)

	out := make([]Status, 0, len(names))
	for _, name := range names {
		if v, err := r.Get(name); err == nil {
			out = append(out, v.Status())
		}
	}
	return out
}
