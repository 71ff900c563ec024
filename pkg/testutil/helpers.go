package testutil

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/compinst/pkg/config"
	"github.com/arthur-debert/compinst/pkg/types"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/v2"
)

// WriteFileT creates a file and its parent directories
func WriteFileT(t *testing.T, fs types.FS, path, content string) {
	t.Helper()

	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create parent directories for %s: %v", path, err)
	}
	if err := fs.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create file %s: %v", path, err)
	}
}

// ReadFileT returns a file's content, failing the test when it is missing
func ReadFileT(t *testing.T, fs types.FS, path string) string {
	t.Helper()

	data, err := fs.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}
	return string(data)
}

// AssertFileContent checks a file's exact content
func AssertFileContent(t *testing.T, fs types.FS, path, want string) {
	t.Helper()

	data, err := fs.ReadFile(path)
	if err != nil {
		t.Errorf("Expected file %s: %v", path, err)
		return
	}
	if string(data) != want {
		t.Errorf("Content of %s\nExpected: %q\nActual:   %q", path, want, string(data))
	}
}

// AssertNotExists checks that path is absent
func AssertNotExists(t *testing.T, fs types.FS, path string) {
	t.Helper()

	if _, err := fs.Stat(path); err == nil {
		t.Errorf("Expected %s to be absent", path)
	}
}

// NewConfig builds a host configuration from inline values on top of the
// embedded defaults. The environment is not consulted.
func NewConfig(t *testing.T, values map[string]interface{}) *koanf.Koanf {
	t.Helper()

	k, err := config.Load(config.LoadOptions{SkipEnv: true})
	if err != nil {
		t.Fatalf("Failed to load defaults: %v", err)
	}
	if len(values) > 0 {
		if err := k.Load(confmap.Provider(values, "."), nil); err != nil {
			t.Fatalf("Failed to load test config: %v", err)
		}
	}
	return k
}
