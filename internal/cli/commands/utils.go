package commands

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/arborcode/semcore/pkg/semantic"
	"github.com/arborcode/semcore/pkg/stubs"
	"github.com/arborcode/semcore/pkg/syntax"
)

// OutputJSON outputs data as JSON.
func OutputJSON(data interface{}) {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
		os.Exit(1)
	}
}

// LoadAndBuild reads one tree fixture from disk and runs the full
// six-component pipeline over it against the builtin stub index.
func LoadAndBuild(path, pkg string) (*semantic.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	file, err := syntax.DecodeFile(data, path, pkg)
	if err != nil {
		return nil, err
	}
	idx := stubs.NewMemoryIndex(stubs.StandardBuiltins(), nil)
	b := semantic.NewBuilder(idx, idx, slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))
	return b.Build(file), nil
}

// ScopeKindName renders a semantic.ScopeKind the way CLI/JSON output does.
func ScopeKindName(k semantic.ScopeKind) string { return k.String() }

// SymbolKindName renders a semantic.SymbolKind the way CLI/JSON output does.
func SymbolKindName(k semantic.SymbolKind) string { return k.String() }
