package semantic

import "github.com/arborcode/semcore/pkg/syntax"

// arena is the per-build store of scopes and symbols addressed by integer
// index rather than owned by pointer (spec §9, "Cyclic ownership"). Class
// hierarchies and ambiguous-symbol alternatives can form cycles (A extends
// B extends A, through stale or hand-written stubs); Go's garbage
// collector tolerates pointer cycles fine, so the arena's real job is
// determinism (spec §5: scopes and each scope's symbol map must iterate in
// insertion order) and giving every Symbol a stable, comparable ID for
// tests and for the MCP facade's JSON output (SPEC_FULL §3,
// Symbol.DefinitionID) instead of relying on pointer identity.
//
// Grounded on two teacher mechanisms that do the same thing for Go ASTs:
// pkg/graph/symbol_graph.go's Nodes map[string]*SymbolNode (stable id, no
// owning back-pointer across dependency cycles) and
// pkg/analysis/typeindex.go's packageIndex (def/uses keyed by object,
// resolved by lookup rather than re-derived recursively).
type arena struct {
	scopes  []*Scope
	symbols []*Symbol
}

func newArena() *arena {
	return &arena{}
}

func (a *arena) newScope(kind ScopeKind, anchor syntax.Node, parent *Scope) *Scope {
	s := &Scope{
		id:            len(a.scopes),
		kind:          kind,
		anchor:        anchor,
		parent:        parent,
		symbolsByName: make(map[string]*Symbol),
		globalNames:   make(map[string]struct{}),
		nonlocalNames: make(map[string]struct{}),
	}
	if kind == ClassScope {
		s.instanceAttributesByName = make(map[string]*Symbol)
	}
	if kind == FileScope {
		s.builtinSymbols = make(map[string]struct{})
	}
	a.scopes = append(a.scopes, s)
	if parent != nil {
		parent.children = append(parent.children, s)
	}
	return s
}

func (a *arena) newSymbol(name string, kind SymbolKind) *Symbol {
	s := &Symbol{
		id:   len(a.symbols),
		name: name,
		kind: kind,
	}
	if kind == KindClass {
		s.members = make(map[string]*Symbol)
	}
	a.symbols = append(a.symbols, s)
	return s
}

// allScopes and allSymbols expose insertion-order iteration for passes that
// need to walk every scope/symbol created so far (C5 disambiguation runs
// per-scope over all scopes built during C3/C4).
func (a *arena) allScopes() []*Scope   { return a.scopes }
func (a *arena) allSymbols() []*Symbol { return a.symbols }
