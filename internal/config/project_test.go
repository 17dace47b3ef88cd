package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseConfig(t *testing.T) {
	data := []byte(`
serve:
  addr: "0.0.0.0:9000"
color: never
definitions:
  - name: id
    source: "(A:* (x:A x))"
  - name: const
    source: "(A:* (B:* (x:A (y:B x))))"
`)
	cfg, err := ParseConfig(data, "sol.yaml")
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.Serve.Addr != "0.0.0.0:9000" {
		t.Errorf("serve.addr: got %q", cfg.Serve.Addr)
	}
	if cfg.Color != ColorNever {
		t.Errorf("color: got %q", cfg.Color)
	}
	if len(cfg.Definitions) != 2 || cfg.Definitions[0].Name != "id" || cfg.Definitions[1].Name != "const" {
		t.Errorf("definitions: got %+v", cfg.Definitions)
	}
}

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte("definitions: []\n"), "sol.yaml")
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if cfg.Serve.Addr != DefaultServeAddr {
		t.Errorf("serve.addr default: got %q", cfg.Serve.Addr)
	}
	if cfg.Color != ColorAuto {
		t.Errorf("color default: got %q", cfg.Color)
	}
}

func TestParseConfigErrors(t *testing.T) {
	testCases := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"bad_color", "color: rainbow\n", "color must be"},
		{"missing_name", "definitions:\n  - source: \"*\"\n", "name is required"},
		{"bad_name", "definitions:\n  - name: \"a-b\"\n    source: \"*\"\n", "is not an identifier"},
		{"duplicate", "definitions:\n  - name: a\n    source: \"*\"\n  - name: a\n    source: \"*\"\n", "already defined"},
		{"missing_source", "definitions:\n  - name: a\n", "source is required"},
		{"bad_yaml", "definitions: [", "parsing"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tc.yaml), "sol.yaml")
			if err == nil {
				t.Fatalf("expected error containing %q", tc.wantErr)
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("got %q, want it to contain %q", err.Error(), tc.wantErr)
			}
		})
	}
}

func TestFindConfig(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	path, err := FindConfig(nested)
	if err != nil {
		t.Fatal(err)
	}
	// The temp dir may sit below a directory holding a stray sol.yaml; only
	// assert that nothing inside root was found.
	if strings.HasPrefix(path, root) {
		t.Fatalf("unexpected config %q", path)
	}

	want := filepath.Join(root, ConfigFileName)
	if err := os.WriteFile(want, []byte("color: always\n"), 0644); err != nil {
		t.Fatal(err)
	}
	path, err = FindConfig(nested)
	if err != nil {
		t.Fatal(err)
	}
	if path != want {
		t.Errorf("got %q, want %q", path, want)
	}

	cfg, err := LoadFrom(nested)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Color != ColorAlways {
		t.Errorf("LoadFrom: color %q", cfg.Color)
	}
}

func TestIsIdentifier(t *testing.T) {
	for _, s := range []string{"x", "Nat_2", "_", "42"} {
		if !IsIdentifier(s) {
			t.Errorf("%q should be an identifier", s)
		}
	}
	for _, s := range []string{"", "a b", "a-b", "λ"} {
		if IsIdentifier(s) {
			t.Errorf("%q should not be an identifier", s)
		}
	}
}
