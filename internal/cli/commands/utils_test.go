package commands

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFixture(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "fixture.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestLoadAndBuild_ValidFixture(t *testing.T) {
	path := writeFixture(t, `{"body": [{"kind": "assign", "targets": [{"kind": "name", "value": "x"}], "value": {"kind": "constant", "tag": "int"}}]}`)

	result, err := LoadAndBuild(path, "mypkg")
	if err != nil {
		t.Fatalf("LoadAndBuild: %v", err)
	}
	if result.File.Path != path {
		t.Errorf("expected result.File.Path to be %q, got %q", path, result.File.Path)
	}
	if len(result.AllScopes) == 0 {
		t.Error("expected at least the file scope")
	}
}

func TestLoadAndBuild_MissingFile(t *testing.T) {
	if _, err := LoadAndBuild(filepath.Join(t.TempDir(), "missing.json"), ""); err == nil {
		t.Fatal("expected an error reading a nonexistent fixture")
	}
}

func TestLoadAndBuild_MalformedFixture(t *testing.T) {
	path := writeFixture(t, `not json at all`)
	if _, err := LoadAndBuild(path, ""); err == nil {
		t.Fatal("expected an error decoding malformed JSON")
	}
}

func TestScopeAndSymbolKindNameHelpers(t *testing.T) {
	if got := ScopeKindName(0); got != "File" {
		t.Errorf("expected the zero ScopeKind to render as %q, got %q", "File", got)
	}
	if got := SymbolKindName(0); got != "Other" {
		t.Errorf("expected the zero SymbolKind to render as %q, got %q", "Other", got)
	}
}
