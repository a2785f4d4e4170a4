// Package workspace orchestrates semantic.Builder across every file in a
// source tree (spec §5): one Builder per file, run concurrently over a
// bounded worker pool, collected back into a deterministic result set in
// input order.
//
// The shape is a two-phase pool (sequential discovery, then an index channel
// drained by runtime.NumCPU workers writing into a pre-sized results slice)
// with a hard per-file panic/recover, since spec §7's MalformedTreeError is
// a programmer-error class that must not abort the whole workspace.
package workspace

import (
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/arborcode/semcore/pkg/semantic"
	"github.com/arborcode/semcore/pkg/stubs"
	"github.com/arborcode/semcore/pkg/syntax"
	"github.com/arborcode/semcore/pkg/types"
)

// FileResult pairs one file's Build outcome with a recovered hard failure,
// if the tree for that file was malformed (spec §7). Exactly one of Result
// or Hard is set.
type FileResult struct {
	Path   string
	Result *semantic.Result
	Hard   *types.MalformedTreeError
}

// Workspace holds the two read-only indices every file's Builder is
// constructed against (spec §6's "Consumed" indices), plus the logger
// passed through to each Builder.
type Workspace struct {
	StubIndex   stubs.StubIndex
	GlobalIndex stubs.GlobalIndex
	Logger      *slog.Logger
}

// New constructs a Workspace. A nil logger falls back to slog.Default, the
// same default NewBuilder uses.
func New(stubIndex stubs.StubIndex, globalIndex stubs.GlobalIndex, logger *slog.Logger) *Workspace {
	if logger == nil {
		logger = slog.Default()
	}
	return &Workspace{StubIndex: stubIndex, GlobalIndex: globalIndex, Logger: logger}
}

// BuildAll runs one Builder per file, in parallel over a worker pool sized
// to runtime.NumCPU (spec §5: "one Builder per file... workspace-level
// orchestration may run the per-file builders in parallel"). Results are
// returned in the same order as the input files regardless of completion
// order, so downstream consumers get a deterministic workspace view (spec
// §5's determinism requirement extended across files).
func (w *Workspace) BuildAll(files []*syntax.FileInput) []FileResult {
	results := make([]FileResult, len(files))

	workers := runtime.NumCPU()
	if workers > len(files) {
		workers = len(files)
	}
	if workers == 0 {
		return results
	}

	idxCh := make(chan int, len(files))
	for i := range files {
		idxCh <- i
	}
	close(idxCh)

	var wg sync.WaitGroup
	for wkr := 0; wkr < workers; wkr++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range idxCh {
				results[idx] = w.buildOne(files[idx])
			}
		}()
	}
	wg.Wait()

	return results
}

// buildOne runs a single file's Builder, recovering a MalformedTreeError
// panic at file granularity so one malformed file does not bring down the
// rest of the workspace's concurrent builds (spec §7).
func (w *Workspace) buildOne(file *syntax.FileInput) (fr FileResult) {
	fr.Path = file.Path
	defer func() {
		if r := recover(); r != nil {
			if hard, ok := r.(*types.MalformedTreeError); ok {
				w.Logger.Error("malformed tree, file skipped", "file", file.Path, "err", hard.Error())
				fr.Hard = hard
				return
			}
			hard := &types.MalformedTreeError{
				Message:  fmt.Sprint(r),
				File:     file.Path,
				NodeKind: "unknown",
			}
			w.Logger.Error("unrecovered panic during build, file skipped", "file", file.Path, "err", hard.Error())
			fr.Hard = hard
		}
	}()

	b := semantic.NewBuilder(w.StubIndex, w.GlobalIndex, w.Logger)
	fr.Result = b.Build(file)
	return fr
}
