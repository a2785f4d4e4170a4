package semantic

import "github.com/arborcode/semcore/pkg/syntax"

// ScopeKind mirrors spec §3's five scope-root kinds.
type ScopeKind int

const (
	FileScope ScopeKind = iota
	FunctionScope
	LambdaScope
	ClassScope
	ComprehensionScope
)

func (k ScopeKind) String() string {
	switch k {
	case FileScope:
		return "File"
	case FunctionScope:
		return "Function"
	case LambdaScope:
		return "Lambda"
	case ClassScope:
		return "Class"
	case ComprehensionScope:
		return "Comprehension"
	default:
		return "Unknown"
	}
}

// Scope is one node of C1's scope graph (spec §4.1). It is anchored to a
// scope-root syntax node, owns its local symbols, and links to its parent.
// Ownership is one-directional (scope -> symbol); symbols never own their
// scope.
type Scope struct {
	id     int
	kind   ScopeKind
	anchor syntax.Node
	parent *Scope

	children []*Scope

	symbolsByName map[string]*Symbol
	symbolOrder   []string // insertion order of first binding (spec §5 determinism)

	// instanceAttributesByName aggregates self.<attr> assignments found in
	// the class's methods; class scopes only (spec §3).
	instanceAttributesByName map[string]*Symbol
	instanceAttrOrder        []string

	globalNames   map[string]struct{}
	nonlocalNames map[string]struct{}

	// builtinSymbols is the subset of symbolsByName seeded from the
	// built-in namespace; file scope only (spec §3).
	builtinSymbols map[string]struct{}

	// selfParamName records the method's implicit-instance parameter name
	// (spec §4.1 createSelfParameter), so reference resolution of
	// `<selfParamName>.x = ...` inside this function scope can route the
	// attribute write to the enclosing class scope's instance attributes.
	selfParamName string
}

func (s *Scope) ID() int             { return s.id }
func (s *Scope) Kind() ScopeKind     { return s.kind }
func (s *Scope) Anchor() syntax.Node { return s.anchor }
func (s *Scope) Parent() *Scope      { return s.parent }
func (s *Scope) Children() []*Scope  { return s.children }

// Locals returns this scope's own symbols in insertion order (spec §5).
func (s *Scope) Locals() []*Symbol {
	out := make([]*Symbol, 0, len(s.symbolOrder))
	for _, name := range s.symbolOrder {
		out = append(out, s.symbolsByName[name])
	}
	return out
}

// InstanceAttributes returns a class scope's self.x-derived attribute
// symbols in insertion order; nil for non-class scopes.
func (s *Scope) InstanceAttributes() []*Symbol {
	out := make([]*Symbol, 0, len(s.instanceAttrOrder))
	for _, name := range s.instanceAttrOrder {
		out = append(out, s.instanceAttributesByName[name])
	}
	return out
}

func (s *Scope) isGlobalName(name string) bool {
	_, ok := s.globalNames[name]
	return ok
}

func (s *Scope) isNonlocalName(name string) bool {
	_, ok := s.nonlocalNames[name]
	return ok
}

// fileScope walks up to this scope's enclosing file-input scope.
func (s *Scope) fileScope() *Scope {
	cur := s
	for cur.parent != nil {
		cur = cur.parent
	}
	return cur
}

// scopeGraph owns the arena and the current traversal stack (spec §4.1:
// enterScope/leaveScope maintained as a stack, currentScope() the top).
type scopeGraph struct {
	arena *arena
	stack []*Scope
}

func newScopeGraph(a *arena) *scopeGraph {
	return &scopeGraph{arena: a}
}

// createScope is idempotent per anchor (spec §4.1): a second call with an
// anchor that already has a scope returns that scope instead of creating a
// duplicate. C3 creates the scopes it reaches; C4 calls createScope to look
// those scopes up. An anchor C3 never reached (for example a lambda inside a
// parameter default) gets a new scope on its first C4 call, with a nil
// parent because C4 pushes nothing on the scope stack.
func (g *scopeGraph) createScope(kind ScopeKind, anchor syntax.Node) *Scope {
	for _, sc := range g.arena.scopes {
		if sc.anchor == anchor {
			return sc
		}
	}
	var parent *Scope
	if len(g.stack) > 0 {
		parent = g.stack[len(g.stack)-1]
	}
	return g.arena.newScope(kind, anchor, parent)
}

func (g *scopeGraph) enterScope(s *Scope) { g.stack = append(g.stack, s) }

func (g *scopeGraph) leaveScope() *Scope {
	n := len(g.stack)
	if n == 0 {
		return nil
	}
	s := g.stack[n-1]
	g.stack = g.stack[:n-1]
	return s
}

func (g *scopeGraph) currentScope() *Scope {
	if len(g.stack) == 0 {
		return nil
	}
	return g.stack[len(g.stack)-1]
}

// resolve implements spec §4.1's lookup algorithm: global/nonlocal
// redirection, then a parent-chain walk that treats class scopes as
// transparent when the walk started inside a nested function.
func (g *scopeGraph) resolve(from *Scope, name string) *Symbol {
	if from.isGlobalName(name) {
		return from.fileScope().symbolsByName[name]
	}
	if from.isNonlocalName(name) {
		for cur := from.parent; cur != nil && cur.kind != FileScope; cur = cur.parent {
			if sym, ok := cur.symbolsByName[name]; ok {
				return sym
			}
		}
		return nil
	}

	startedInFunction := from.kind == FunctionScope || from.kind == LambdaScope
	for cur := from; cur != nil; cur = cur.parent {
		// Class scopes are transparent to resolution originating in a
		// nested function (spec §3, §4.1): skip them unless we are
		// looking at our own immediate scope (a class body can still see
		// its own locals while being built).
		if cur != from && cur.kind == ClassScope && startedInFunction {
			continue
		}
		if sym, ok := cur.symbolsByName[name]; ok {
			return sym
		}
	}
	return nil
}

// addBindingUsage implements spec §4.1: locate-or-create the local symbol
// (subject to global/nonlocal redirection), append the usage, and set the
// FQN if supplied and not already set. kindFactory lets callers control
// what kind of Symbol gets created the first time a name is bound (e.g.
// KindFunction for a FUNC_DECLARATION), defaulting to KindOther.
func (g *scopeGraph) addBindingUsage(scope *Scope, name string, node syntax.Node, kind UsageKind, symKind SymbolKind, fqn string, hasFQN bool) *Symbol {
	target := scope
	if scope.isGlobalName(name) {
		target = scope.fileScope()
	} else if scope.isNonlocalName(name) {
		for cur := scope.parent; cur != nil && cur.kind != FileScope; cur = cur.parent {
			if _, ok := cur.symbolsByName[name]; ok {
				target = cur
				break
			}
		}
	}

	sym, exists := target.symbolsByName[name]
	if !exists {
		sym = g.arena.newSymbol(name, symKind)
		target.symbolsByName[name] = sym
		target.symbolOrder = append(target.symbolOrder, name)
	}
	sym.addUsage(Usage{Node: node, Kind: kind})
	if hasFQN {
		sym.setFQN(fqn)
	}
	return sym
}

// addInstanceAttribute records a `self.x = ...`-style assignment into the
// enclosing class scope's instance-attribute map (spec §4.1
// createSelfParameter / §4.3's self.x handling).
func (g *scopeGraph) addInstanceAttribute(classScope *Scope, name string, node syntax.Node, kind UsageKind) *Symbol {
	sym, exists := classScope.instanceAttributesByName[name]
	if !exists {
		sym = g.arena.newSymbol(name, KindOther)
		classScope.instanceAttributesByName[name] = sym
		classScope.instanceAttrOrder = append(classScope.instanceAttrOrder, name)
	}
	sym.addUsage(Usage{Node: node, Kind: kind})
	return sym
}
