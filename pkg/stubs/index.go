// Package stubs defines the two read-only external indices the semantic
// core consumes (spec §6): a stub index (precomputed summaries of the
// standard library and third-party packages) and a global-symbol index
// (cross-file symbols for the rest of the workspace). Producing these
// indices — parsing real stub files, crawling a workspace — is explicitly
// out of scope (spec §1); this package only defines the contract and a
// simple in-memory implementation good enough for tests, the CLI demo, and
// the MCP server's bundled builtins.
//
// Deliberately its own small Symbol type rather than *semantic.Symbol: the
// index is shared read-only across every concurrent per-file Builder (spec
// §5), while semantic.Symbol values are owned by one file's arena and
// carry build-local state (usage lists, arena ids). The binder copies a
// Symbol descriptor out of the index into its own arena on first use,
// handing back read-only snapshots rather than live pointers into another
// package's build state.
package stubs

// SymbolKind classifies an index entry. It intentionally only distinguishes
// the shapes the binder needs to treat specially (Function and Class
// vs. everything else) — a stub index has no notion of "Ambiguous".
type SymbolKind int

const (
	Other SymbolKind = iota
	Function
	Class
)

// Symbol is one precomputed entry: a name exported by a module (or a
// built-in), its FQN, kind, and — for classes — member names, for a
// shallow ResolveMember lookup without re-parsing the stub.
type Symbol struct {
	Name    string
	FQN     string
	Kind    SymbolKind
	Members []string
	Bases   []string // dotted FQNs of declared base classes, best-effort
}

// StubIndex is the read-only contract spec §6 names:
// "builtinSymbols() -> map<name, Symbol>" and
// "symbolsForModule(fqn) -> set<Symbol>".
type StubIndex interface {
	BuiltinSymbols() map[string]Symbol
	SymbolsForModule(moduleFQN string) (map[string]Symbol, bool)
}

// GlobalIndex is spec §6's "globalSymbolsByModuleName: map<moduleFQN,
// set<Symbol>>", used for cross-file wildcard and aliased imports.
type GlobalIndex interface {
	ModuleSymbols(moduleFQN string) (map[string]Symbol, bool)
}

// MemoryIndex is a map-backed implementation of both StubIndex and
// GlobalIndex. It is immutable once constructed (callers build it via
// NewMemoryIndex and never mutate the maps afterward), which is what makes
// it safe for the concurrent reads spec §5 requires — no locking needed
// since the data never changes after construction.
type MemoryIndex struct {
	builtins map[string]Symbol
	modules  map[string]map[string]Symbol
}

// NewMemoryIndex builds an index from builtins and per-module symbol sets.
// Both arguments are copied defensively so later mutation by the caller
// cannot violate the read-only contract concurrent builders rely on.
func NewMemoryIndex(builtins map[string]Symbol, modules map[string]map[string]Symbol) *MemoryIndex {
	idx := &MemoryIndex{
		builtins: make(map[string]Symbol, len(builtins)),
		modules:  make(map[string]map[string]Symbol, len(modules)),
	}
	for k, v := range builtins {
		idx.builtins[k] = v
	}
	for mod, syms := range modules {
		cp := make(map[string]Symbol, len(syms))
		for k, v := range syms {
			cp[k] = v
		}
		idx.modules[mod] = cp
	}
	return idx
}

func (m *MemoryIndex) BuiltinSymbols() map[string]Symbol { return m.builtins }

func (m *MemoryIndex) SymbolsForModule(moduleFQN string) (map[string]Symbol, bool) {
	syms, ok := m.modules[moduleFQN]
	return syms, ok
}

func (m *MemoryIndex) ModuleSymbols(moduleFQN string) (map[string]Symbol, bool) {
	return m.SymbolsForModule(moduleFQN)
}

// StandardBuiltins is a small, representative slice of the source
// language's true built-in namespace — enough for tests and the CLI demo
// to exercise file-scope seeding (spec §4.3) without shipping a full
// standard-library stub summary, which is out of scope (spec §1).
func StandardBuiltins() map[string]Symbol {
	names := []string{
		"len", "print", "range", "str", "int", "float", "bool", "list",
		"dict", "set", "tuple", "object", "type", "isinstance", "super",
		"Exception", "ValueError", "TypeError", "KeyError", "None", "True", "False",
	}
	out := make(map[string]Symbol, len(names))
	for _, n := range names {
		kind := Other
		if n == "object" || n == "Exception" || n == "ValueError" || n == "TypeError" || n == "KeyError" {
			kind = Class
		} else if n == "len" || n == "print" || n == "isinstance" || n == "super" {
			kind = Function
		}
		out[n] = Symbol{Name: n, FQN: "builtins." + n, Kind: kind}
	}
	return out
}
