package semantic

import (
	"go/token"

	"github.com/arborcode/semcore/pkg/syntax"
)

// SymbolKind discriminates the four Symbol variants (spec §3). Symbols are
// a closed tagged union on purpose (spec §9, "Polymorphism"): one struct
// carrying every variant's fields behind a Kind tag, not an interface with
// four implementations. Downstream rule checks switch on Kind.
type SymbolKind int

const (
	KindOther SymbolKind = iota
	KindFunction
	KindClass
	KindAmbiguous
)

func (k SymbolKind) String() string {
	switch k {
	case KindOther:
		return "Other"
	case KindFunction:
		return "Function"
	case KindClass:
		return "Class"
	case KindAmbiguous:
		return "Ambiguous"
	default:
		return "Unknown"
	}
}

// UsageKind classifies a single Usage (spec §3). Any kind other than
// OtherUsage is a "binding usage".
type UsageKind int

const (
	AssignmentLHS UsageKind = iota
	CompoundAssignmentLHS
	CompDeclaration
	LoopDeclaration
	ParameterUsage
	ImportUsage
	FuncDeclaration
	ClassDeclaration
	ExceptionInstance
	WithInstance
	GlobalDeclaration
	OtherUsage
)

func (k UsageKind) String() string {
	names := [...]string{
		"ASSIGNMENT_LHS", "COMPOUND_ASSIGNMENT_LHS", "COMP_DECLARATION",
		"LOOP_DECLARATION", "PARAMETER", "IMPORT", "FUNC_DECLARATION",
		"CLASS_DECLARATION", "EXCEPTION_INSTANCE", "WITH_INSTANCE",
		"GLOBAL_DECLARATION", "OTHER",
	}
	if int(k) < len(names) {
		return names[k]
	}
	return "UNKNOWN"
}

// IsBinding reports whether this usage kind denotes a write/declaration
// rather than a plain read (spec GLOSSARY, "binding usage").
func (k UsageKind) IsBinding() bool { return k != OtherUsage }

// Usage pairs a tree reference with the reason it was recorded.
type Usage struct {
	Node syntax.Node
	Kind UsageKind
}

// ResolvedParameter is one entry of the resolved parameter list attached
// to Function symbols after C6 (spec §4.6, "finalized with the
// per-parameter inferred types"); Flag carries the syntax.ParamFlag over.
type ResolvedParameter struct {
	Name         string
	HasDefault   bool
	Flag         syntax.ParamFlag
	InferredType *InferredType
}

// MemberResolution distinguishes "absent" from "unknown" for
// (*Symbol).ResolveMember (spec §4.2: "if any parent is unresolved, the
// result is unknown, distinct from absent").
type MemberResolution int

const (
	MemberAbsent MemberResolution = iota
	MemberUnknown
	MemberFound
)

// Symbol is the tagged-union type spec §3 describes. Every field outside
// the per-kind block is common to all four variants. Mutators are
// unexported (package-private to the builder, spec §4.2): callers outside
// pkg/semantic only ever read a Symbol once Build has returned.
type Symbol struct {
	id int // stable arena index (spec §9 "arena + index"), used for go-cmp-friendly identity instead of pointer equality

	name       string
	fqn        string
	hasFQN     bool
	kind       SymbolKind
	usages     []Usage
	decorators []string // spec SPEC_FULL §4.8

	// Function-only.
	params   []*ResolvedParameter
	declPos  token.Pos
	declFile string

	// Class-only.
	baseExprs              []syntax.Node
	bases                  []*Symbol // resolved in declaration order; nil entry = unresolved
	members                map[string]*Symbol
	memberOrder            []string
	hasUnresolvedHierarchy bool

	// Ambiguous-only.
	alternatives []*Symbol
}

func (s *Symbol) ID() int { return s.id }

func (s *Symbol) Name() string { return s.name }

// FullyQualifiedName returns the dotted FQN and whether one has been set
// (spec §3, "nullable fullyQualifiedName").
func (s *Symbol) FullyQualifiedName() (string, bool) { return s.fqn, s.hasFQN }

func (s *Symbol) Kind() SymbolKind { return s.kind }

func (s *Symbol) Usages() []Usage { return s.usages }

// FindReferences collects every usage recorded against sym (spec SPEC_FULL
// §4.9's workspace-facing convenience API). It performs no new resolution,
// only a scan of usage lists the builder already populated: for an
// ordinary symbol this is just Usages(), but for an Ambiguous symbol it
// also folds in each alternative's own usages, deduplicated against sym's
// own list, so a caller holding only the ambiguous symbol still sees every
// binding and read site regardless of which alternative produced it.
func FindReferences(sym *Symbol) []Usage {
	if sym == nil {
		return nil
	}
	if sym.kind != KindAmbiguous {
		return append([]Usage(nil), sym.usages...)
	}
	seen := make(map[Usage]bool, len(sym.usages))
	out := make([]Usage, 0, len(sym.usages))
	add := func(u Usage) {
		if seen[u] {
			return
		}
		seen[u] = true
		out = append(out, u)
	}
	for _, u := range sym.usages {
		add(u)
	}
	for _, alt := range sym.alternatives {
		for _, u := range alt.usages {
			add(u)
		}
	}
	return out
}

// Decorators lists the dotted names of decorator expressions recognized on
// a Function or Class symbol (SPEC_FULL §4.8). Empty for Other symbols; an
// Ambiguous symbol keeps the list set by its last def or class binding, and
// each of its Alternatives() carries its own.
func (s *Symbol) Decorators() []string { return s.decorators }

func (s *Symbol) setFQN(fqn string) {
	if s.hasFQN {
		return
	}
	s.fqn = fqn
	s.hasFQN = true
}

func (s *Symbol) addUsage(u Usage) {
	s.usages = append(s.usages, u)
}

// --- Function-only operations ---

// Parameters returns the parameter list; empty/nil before C6 finalizes
// inferred types (spec §4.6). Only meaningful when Kind() == KindFunction.
func (s *Symbol) Parameters() []*ResolvedParameter { return s.params }

// DefinitionLocation is the symbol's declaring function-def/class-def
// position (spec §6, "definitionLocation() for class and function
// symbols").
func (s *Symbol) DefinitionLocation() token.Pos { return s.declPos }

// --- Class-only operations ---

// Bases returns resolved base-class symbols in declaration order; an entry
// is nil when that base could not be resolved. Only meaningful when
// Kind() == KindClass.
func (s *Symbol) Bases() []*Symbol { return s.bases }

// HasUnresolvedHierarchy reports the soft-failure state named in spec §7.
func (s *Symbol) HasUnresolvedHierarchy() bool { return s.hasUnresolvedHierarchy }

// Members returns the class's member set in insertion order (spec §5
// determinism: class-body names first, then self.x-only attributes).
func (s *Symbol) Members() []*Symbol {
	out := make([]*Symbol, 0, len(s.memberOrder))
	for _, name := range s.memberOrder {
		out = append(out, s.members[name])
	}
	return out
}

// ResolveMember implements spec §4.2's member lookup: local members first,
// then each base in declaration order; MemberUnknown (not MemberAbsent)
// once any base is unresolved, so rules can decline to report rather than
// assume absence.
func (s *Symbol) ResolveMember(name string) (*Symbol, MemberResolution) {
	if s.kind != KindClass {
		return nil, MemberAbsent
	}
	if m, ok := s.members[name]; ok {
		return m, MemberFound
	}
	sawUnresolvedBase := s.hasUnresolvedHierarchy
	for _, base := range s.bases {
		if base == nil {
			sawUnresolvedBase = true
			continue
		}
		if m, res := base.ResolveMember(name); res == MemberFound {
			return m, MemberFound
		} else if res == MemberUnknown {
			sawUnresolvedBase = true
		}
	}
	if sawUnresolvedBase {
		return nil, MemberUnknown
	}
	return nil, MemberAbsent
}

// --- Ambiguous-only operations ---

// Alternatives returns the candidate symbols an Ambiguous symbol carries
// (spec §3, §4.5). Only meaningful when Kind() == KindAmbiguous.
func (s *Symbol) Alternatives() []*Symbol { return s.alternatives }
