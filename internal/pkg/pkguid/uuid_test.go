package pkguid

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestUUIDGenerate(t *testing.T) {
	gen := NewUUID()
	id := gen.Generate()
	parsed, err := uuid.Parse(id)
	if err != nil {
		t.Fatalf("expected valid uuid, got %q", id)
	}
	if parsed.Version() != 7 {
		t.Fatalf("expected version 7, got %d", parsed.Version())
	}
}

func TestPrefixedUUIDGenerate(t *testing.T) {
	id := NewPrefixedUUID("alert").Generate()
	rest, ok := strings.CutPrefix(id, "alert-")
	if !ok {
		t.Fatalf("expected alert- prefix, got %q", id)
	}
	if _, err := uuid.Parse(rest); err != nil {
		t.Fatalf("expected valid uuid after prefix, got %q", rest)
	}
}
