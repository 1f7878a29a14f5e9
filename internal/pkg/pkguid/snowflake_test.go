package pkguid

import "testing"

func TestGenerateRandomNodeIDRange(t *testing.T) {
	id, err := generateRandomNodeID()
	if err != nil {
		t.Fatalf("generateRandomNodeID: %v", err)
	}
	if id < 0 || id > 1023 {
		t.Fatalf("expected id within 0..1023, got %d", id)
	}
}

func TestSnowflakeGenerateIncreasing(t *testing.T) {
	gen, err := NewSnowflake(-1)
	if err != nil {
		t.Fatalf("NewSnowflake: %v", err)
	}
	id1 := gen.Generate()
	id2 := gen.Generate()
	if id2 <= id1 {
		t.Fatalf("expected increasing ids, got %d then %d", id1, id2)
	}
}

func TestSnowflakeFixedNodesDoNotCollide(t *testing.T) {
	a, err := NewSnowflake(1)
	if err != nil {
		t.Fatalf("NewSnowflake(1): %v", err)
	}
	b, err := NewSnowflake(2)
	if err != nil {
		t.Fatalf("NewSnowflake(2): %v", err)
	}

	seen := make(map[int64]bool, 200)
	for range 100 {
		for _, id := range []int64{a.Generate(), b.Generate()} {
			if seen[id] {
				t.Fatalf("duplicate id %d", id)
			}
			seen[id] = true
		}
	}
}

func TestSnowflakeRejectsNodeOutOfRange(t *testing.T) {
	if _, err := NewSnowflake(1024); err == nil {
		t.Fatalf("expected error for node 1024")
	}
}
