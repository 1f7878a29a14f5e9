package pkgconfig

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestViperConfigValues(t *testing.T) {
	path := writeConfigFile(t, "int: 42\nbool: true\nfloat: 3.14\nstring: hi\ninterval: 45s\narray: a, b ,c\n")

	cfg, err := NewViper(path, nil)
	if err != nil {
		t.Fatalf("NewViper: %v", err)
	}
	defer func() {
		if err := cfg.Close(); err != nil {
			t.Fatalf("Close: %v", err)
		}
	}()

	if got := cfg.GetInt("int"); got != 42 {
		t.Fatalf("GetInt: expected 42, got %d", got)
	}
	if got := cfg.GetBool("bool"); got != true {
		t.Fatalf("GetBool: expected true, got %v", got)
	}
	if got := cfg.GetFloat("float"); got != 3.14 {
		t.Fatalf("GetFloat: expected 3.14, got %v", got)
	}
	if got := cfg.GetString("string"); got != "hi" {
		t.Fatalf("GetString: expected hi, got %q", got)
	}
	if got := cfg.GetDuration("interval"); got != 45*time.Second {
		t.Fatalf("GetDuration: expected 45s, got %v", got)
	}
	if got := cfg.GetArray("array"); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Fatalf("GetArray: unexpected value: %#v", got)
	}
}

func TestViperDefaultsAndEnvOverride(t *testing.T) {
	path := writeConfigFile(t, "backend:\n  base_url: http://file:8000\n")
	t.Setenv("FRAUDBOARD_BACKEND_BASE_URL", "http://env:9000")

	cfg, err := NewViper(path, map[string]any{
		"backend.base_url":         "http://default:8000",
		"views.alerts.interval":    "45s",
		"views.alerts.fetch_limit": 50,
	})
	if err != nil {
		t.Fatalf("NewViper: %v", err)
	}

	if got := cfg.GetString("backend.base_url"); got != "http://env:9000" {
		t.Fatalf("expected env override, got %q", got)
	}
	if got := cfg.GetDuration("views.alerts.interval"); got != 45*time.Second {
		t.Fatalf("expected default interval, got %v", got)
	}
	if got := cfg.GetInt("views.alerts.fetch_limit"); got != 50 {
		t.Fatalf("expected default limit, got %d", got)
	}
}

func TestViperGetArrayEmpty(t *testing.T) {
	path := writeConfigFile(t, "array: \"\"\n")
	cfg, err := NewViper(path, nil)
	if err != nil {
		t.Fatalf("NewViper: %v", err)
	}

	if got := cfg.GetArray("array"); got != nil {
		t.Fatalf("expected nil for empty array, got %#v", got)
	}
}
