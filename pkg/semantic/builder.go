// Package semantic implements the six-component symbol-table core (spec
// §2): the scope graph (C1), the symbol model (C2), the binding pass (C3),
// the reference pass (C4), disambiguation and class-member attachment
// (C5), and shallow type inference (C6).
package semantic

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/arborcode/semcore/pkg/stubs"
	"github.com/arborcode/semcore/pkg/syntax"
	"github.com/arborcode/semcore/pkg/types"
)

// Builder owns one file's arena, scope registry, and side sets (spec §5:
// "a single builder owns the tree, the scope registry, the symbol arena,
// and the side sets; no shared mutable state is exposed during
// construction"). It is the "single mutable builder" spec §9 sanctions
// over a typed-state pipeline of immutable snapshots; Build reinitializes
// that mutable state from scratch each call rather than freezing it
// against reuse, so the idempotence invariant (spec §8) holds.
type Builder struct {
	logger      *slog.Logger
	stubIndex   stubs.StubIndex
	globalIndex stubs.GlobalIndex

	arena *arena
	graph *scopeGraph

	file      *syntax.FileInput
	moduleFQN string

	assignLHS        map[syntax.Node]bool
	wildcardResolved map[*syntax.ImportFrom]bool
	childSymbols     map[*Symbol]map[string]*Symbol

	classSymbolByDecl map[*syntax.ClassDef]*Symbol
	funcSymbolByDecl  map[*syntax.FuncDef]*Symbol
	exprTypes         map[syntax.Node]*InferredType

	softErrors []*types.AnalysisError
}

// NewBuilder constructs a Builder against the two read-only external
// indices (spec §6). Callers analyzing a workspace in parallel must
// construct one Builder per file (spec §5) — a Builder is not safe for
// concurrent use or for analyzing more than one file.
func NewBuilder(stubIndex stubs.StubIndex, globalIndex stubs.GlobalIndex, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{
		logger:      logger,
		stubIndex:   stubIndex,
		globalIndex: globalIndex,
	}
}

// Result is the annotated output of a single Build call: the file's scope
// tree plus every symbol and soft error produced along the way (spec §6,
// "Produced").
type Result struct {
	File             *syntax.FileInput
	FileScope        *Scope
	AllScopes        []*Scope
	AllSymbols       []*Symbol
	WildcardResolved map[*syntax.ImportFrom]bool
	ExprTypes        map[syntax.Node]*InferredType
	SoftErrors       []*types.AnalysisError
}

// Build runs the three synchronous traversals plus the disambiguation
// fix-up pass (spec §2, §5) over one file and returns the annotated
// result. The core is total (spec §4.7): every syntactically well-formed
// input tree yields a Result, never an error, except for the hard
// MalformedTreeError case, which panics and is expected to be recovered by
// the caller (pkg/workspace does this at file granularity).
//
// Build is idempotent (spec §8 invariant 8): every field below is
// reinitialized from scratch at the top of the call, so running it twice
// over the same tree — on the same Builder or a fresh one — produces
// observably equivalent Results rather than accumulating duplicate usages.
func (b *Builder) Build(file *syntax.FileInput) *Result {
	correlationID := uuid.NewString()
	logger := b.logger.With("correlation_id", correlationID, "file", file.Path)
	logger.Debug("build starting")

	b.file = file
	b.moduleFQN = deriveModuleFQN(file)
	b.arena = newArena()
	b.graph = newScopeGraph(b.arena)
	b.assignLHS = make(map[syntax.Node]bool)
	b.wildcardResolved = make(map[*syntax.ImportFrom]bool)
	b.childSymbols = make(map[*Symbol]map[string]*Symbol)
	b.classSymbolByDecl = make(map[*syntax.ClassDef]*Symbol)
	b.funcSymbolByDecl = make(map[*syntax.FuncDef]*Symbol)
	b.exprTypes = make(map[syntax.Node]*InferredType)
	b.softErrors = nil

	bd := &binder{b: b, g: b.graph}
	fileScope := bd.run(file)
	logger.Debug("binding pass complete", "scopes", len(b.arena.scopes), "symbols", len(b.arena.symbols))

	rf := &referencer{b: b, g: b.graph}
	rf.run(file, fileScope)
	logger.Debug("reference pass complete")

	da := &disambiguator{b: b, g: b.graph}
	da.run(fileScope)
	logger.Debug("disambiguation pass complete")

	inf := &inferrer{b: b}
	inf.run(fileScope)
	logger.Debug("type inference pass complete")

	logger.Debug("build finished", "soft_errors", len(b.softErrors))

	return &Result{
		File:             file,
		FileScope:        fileScope,
		AllScopes:        b.arena.allScopes(),
		AllSymbols:       b.arena.allSymbols(),
		WildcardResolved: b.wildcardResolved,
		ExprTypes:        b.exprTypes,
		SoftErrors:       b.softErrors,
	}
}

func (b *Builder) logSoft(err *types.AnalysisError) {
	b.softErrors = append(b.softErrors, err)
	b.logger.Debug("soft failure", "kind", err.Kind.String(), "message", err.Message)
}

// deriveModuleFQN implements spec §4.2: "<package>.<moduleName> with
// moduleName derived from the file name (strip the last dot-extension)".
func deriveModuleFQN(file *syntax.FileInput) string {
	base := file.Path
	if idx := strings.LastIndexAny(base, "/\\"); idx >= 0 {
		base = base[idx+1:]
	}
	if idx := strings.LastIndexByte(base, '.'); idx >= 0 {
		base = base[:idx]
	}
	if file.Package == "" {
		return base
	}
	return file.Package + "." + base
}

func unresolvedImportError(file string, module string) *types.AnalysisError {
	return &types.AnalysisError{
		Kind:    types.UnresolvedImport,
		Message: fmt.Sprintf("module %q not found in global or stub index", module),
		File:    file,
	}
}

func unresolvedNameError(file string, name string) *types.AnalysisError {
	return &types.AnalysisError{
		Kind:    types.UnresolvedName,
		Message: fmt.Sprintf("name %q could not be resolved", name),
		File:    file,
	}
}

func unresolvedBaseClassError(file string, expr string) *types.AnalysisError {
	return &types.AnalysisError{
		Kind:    types.UnresolvedBaseClass,
		Message: fmt.Sprintf("base class %q could not be resolved", expr),
		File:    file,
	}
}
