package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"tilde prefix", "~/data/ratings.db", filepath.Join(home, "data", "ratings.db")},
		{"bare tilde", "~", home},
		{"plain path", "/var/lib/cupping.db", "/var/lib/cupping.db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExpandPath(tt.in); got != tt.want {
				t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestExpandPath_EnvVar(t *testing.T) {
	t.Setenv("CUPPING_TEST_DIR", "/srv/data")

	if got := ExpandPath("$CUPPING_TEST_DIR/ratings.db"); got != "/srv/data/ratings.db" {
		t.Errorf("ExpandPath with env var = %q", got)
	}
}
