package fallback

import (
	"math/rand/v2"
	"sync"
)

// Source yields floats in [0, 1). Implementations need not be goroutine-safe;
// Generator serializes access.
type Source interface {
	Float64() float64
}

// NewSource returns a PCG-backed source. Equal seeds produce equal sequences.
func NewSource(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Generator produces synthetic datasets shaped exactly like live ones.
type Generator struct {
	mu  sync.Mutex
	src Source
}

func New(src Source) *Generator {
	if src == nil {
		src = NewSource(rand.Uint64())
	}
	return &Generator{src: src}
}

func (g *Generator) float() float64 {
	return g.src.Float64()
}
