package workspace

import (
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/tools/txtar"

	"github.com/arborcode/semcore/pkg/stubs"
	"github.com/arborcode/semcore/pkg/syntax"
)

// fixtures is a txtar archive bundling several independent tree fixtures,
// one per file, the same way a multi-file workspace bundles separate
// modules. Each file's synthetic path is made unique with a fresh UUID so
// BuildAll's input-order guarantee can be checked without relying on the
// archive's own file names colliding with a real filesystem.
const fixtures = `
-- a.json --
{"body": [{"kind": "assign", "targets": [{"kind": "name", "value": "x"}], "value": {"kind": "constant", "tag": "int"}}]}
-- b.json --
{"body": [{"kind": "classdef", "name": {"kind": "name", "value": "Widget"}, "bases": [], "body": []}]}
-- c.json --
{"body": [{"kind": "funcdef", "name": {"kind": "name", "value": "run"}, "params": [], "body": []}]}
`

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func decodeArchive(t *testing.T, archive string) []*syntax.FileInput {
	t.Helper()
	ar := txtar.Parse([]byte(archive))
	files := make([]*syntax.FileInput, 0, len(ar.Files))
	for _, f := range ar.Files {
		path := uuid.NewString() + "-" + f.Name
		file, err := syntax.DecodeFile(f.Data, path, "pkg")
		if err != nil {
			t.Fatalf("decode %s: %v", f.Name, err)
		}
		files = append(files, file)
	}
	return files
}

func TestBuildAll_DeterministicOrderAndNoSoftErrors(t *testing.T) {
	files := decodeArchive(t, fixtures)
	idx := stubs.NewMemoryIndex(stubs.StandardBuiltins(), nil)
	ws := New(idx, idx, discardLogger())

	results := ws.BuildAll(files)
	if len(results) != len(files) {
		t.Fatalf("expected %d results, got %d", len(files), len(results))
	}
	for i, r := range results {
		if r.Path != files[i].Path {
			t.Errorf("result %d: expected path %q (input order), got %q", i, files[i].Path, r.Path)
		}
		if r.Hard != nil {
			t.Errorf("result %d (%s): unexpected hard failure: %v", i, r.Path, r.Hard)
		}
		if r.Result == nil {
			t.Errorf("result %d (%s): expected a non-nil semantic.Result", i, r.Path)
		}
	}
}

func TestBuildAll_MalformedFileDoesNotAbortOthers(t *testing.T) {
	good, err := syntax.DecodeFile([]byte(`{"body": [{"kind": "assign", "targets": [{"kind": "name", "value": "x"}], "value": {"kind": "constant", "tag": "int"}}]}`), "good.json", "pkg")
	if err != nil {
		t.Fatalf("decode good fixture: %v", err)
	}

	// A FuncDef with no name node decodes successfully (the decoder has no
	// way to validate this invariant) but is a malformed tree the binder
	// cannot walk: it dereferences FuncDef.Name.Value directly.
	malformed := syntax.NewFileInput("bad.json", "pkg",
		[]syntax.Node{syntax.NewFuncDef(nil, nil, nil, nil, nil, 1, 2)}, 1, 2)

	idx := stubs.NewMemoryIndex(stubs.StandardBuiltins(), nil)
	ws := New(idx, idx, discardLogger())

	results := ws.BuildAll([]*syntax.FileInput{good, malformed})
	if results[0].Hard != nil {
		t.Errorf("expected the well-formed file to build cleanly, got hard failure: %v", results[0].Hard)
	}
	if results[0].Result == nil {
		t.Error("expected the well-formed file to produce a Result")
	}
	if results[1].Hard == nil {
		t.Error("expected the malformed file to recover into a Hard failure instead of crashing the run")
	}
}

func TestBuildAll_EmptyInput(t *testing.T) {
	idx := stubs.NewMemoryIndex(stubs.StandardBuiltins(), nil)
	ws := New(idx, idx, discardLogger())
	if got := ws.BuildAll(nil); len(got) != 0 {
		t.Errorf("expected no results for empty input, got %d", len(got))
	}
}
