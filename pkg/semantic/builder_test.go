package semantic

import (
	"io"
	"log/slog"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/arborcode/semcore/pkg/stubs"
	"github.com/arborcode/semcore/pkg/syntax"
	"github.com/arborcode/semcore/pkg/types"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func buildFixture(t *testing.T, src string) *Result {
	t.Helper()
	file, err := syntax.DecodeFile([]byte(src), "fixture.json", "pkg")
	if err != nil {
		t.Fatalf("DecodeFile: %v", err)
	}
	idx := stubs.NewMemoryIndex(stubs.StandardBuiltins(), nil)
	b := NewBuilder(idx, idx, discardLogger())
	return b.Build(file)
}

func findScopeSymbol(result *Result, scopeKind ScopeKind, name string) *Symbol {
	for _, scope := range result.AllScopes {
		if scope.Kind() != scopeKind {
			continue
		}
		if sym, ok := scope.symbolsByName[name]; ok {
			return sym
		}
	}
	return nil
}

func TestBuild_ClassInheritanceAndMembers(t *testing.T) {
	const src = `{
		"body": [
			{"kind": "classdef", "name": {"kind": "name", "value": "Animal"}, "bases": [],
			 "body": [
				{"kind": "funcdef", "name": {"kind": "name", "value": "__init__"},
				 "params": [{"target": {"kind": "name", "value": "self"}, "flag": "plain"},
				            {"target": {"kind": "name", "value": "name"}, "annotation": {"kind": "name", "value": "str"}, "flag": "plain"}],
				 "body": [
					{"kind": "assign",
					 "targets": [{"kind": "attribute", "value": {"kind": "name", "value": "self"}, "attr": {"kind": "name", "value": "name"}}],
					 "value": {"kind": "name", "value": "name"}}
				 ]}
			 ]},
			{"kind": "classdef", "name": {"kind": "name", "value": "Dog"}, "bases": [{"kind": "name", "value": "Animal"}],
			 "body": [
				{"kind": "funcdef", "name": {"kind": "name", "value": "fetch"},
				 "params": [{"target": {"kind": "name", "value": "self"}, "flag": "plain"}], "body": []}
			 ]}
		]
	}`

	result := buildFixture(t, src)
	if len(result.SoftErrors) != 0 {
		t.Fatalf("expected no soft errors, got %v", result.SoftErrors)
	}

	dog := findScopeSymbol(result, FileScope, "Dog")
	if dog == nil || dog.Kind() != KindClass {
		t.Fatalf("expected Dog to be a file-scope class symbol, got %#v", dog)
	}
	if dog.HasUnresolvedHierarchy() {
		t.Fatal("expected Dog's hierarchy to be fully resolved")
	}
	if len(dog.Bases()) != 1 || dog.Bases()[0].Name() != "Animal" {
		t.Fatalf("expected Dog's base to resolve to Animal, got %#v", dog.Bases())
	}

	fetch, res := dog.ResolveMember("fetch")
	if res != MemberFound || fetch == nil {
		t.Fatalf("expected Dog.fetch to resolve locally, got %v/%v", fetch, res)
	}

	// __init__ is defined on Animal, not Dog; inherited lookup must still find it.
	init, res := dog.ResolveMember("__init__")
	if res != MemberFound || init == nil {
		t.Fatalf("expected Dog.__init__ to resolve through its base class, got %v/%v", init, res)
	}

	if _, res := dog.ResolveMember("nope"); res != MemberAbsent {
		t.Fatalf("expected an absent member to report MemberAbsent, got %v", res)
	}

	animal := findScopeSymbol(result, FileScope, "Animal")
	if animal == nil {
		t.Fatal("expected Animal symbol at file scope")
	}
	if _, res := animal.ResolveMember("name"); res != MemberFound {
		t.Fatalf("expected self.name assignment to surface as an instance member, got %v", res)
	}
}

func TestBuild_UnresolvedBaseClassMarksHierarchy(t *testing.T) {
	const src = `{
		"body": [
			{"kind": "classdef", "name": {"kind": "name", "value": "Widget"},
			 "bases": [{"kind": "name", "value": "DoesNotExist"}], "body": []}
		]
	}`

	result := buildFixture(t, src)
	widget := findScopeSymbol(result, FileScope, "Widget")
	if widget == nil {
		t.Fatal("expected Widget symbol")
	}
	if !widget.HasUnresolvedHierarchy() {
		t.Fatal("expected Widget's hierarchy to be marked unresolved")
	}
	if len(widget.Bases()) != 1 || widget.Bases()[0] != nil {
		t.Fatalf("expected a single nil base entry, got %#v", widget.Bases())
	}
}

func TestBuild_AmbiguousConditionalFunctionDef(t *testing.T) {
	const src = `{
		"body": [
			{"kind": "if", "cond": {"kind": "constant", "tag": "bool"},
			 "body": [
				{"kind": "funcdef", "name": {"kind": "name", "value": "handler"}, "params": [], "body": []}
			 ],
			 "else": [
				{"kind": "assign", "targets": [{"kind": "name", "value": "handler"}], "value": {"kind": "constant", "tag": "none"}}
			 ]}
		]
	}`

	result := buildFixture(t, src)
	handler := findScopeSymbol(result, FileScope, "handler")
	if handler == nil {
		t.Fatal("expected a file-scope symbol named handler")
	}
	if handler.Kind() != KindAmbiguous {
		t.Fatalf("expected handler to be KindAmbiguous, got %v", handler.Kind())
	}
	if len(handler.Alternatives()) != 2 {
		t.Fatalf("expected 2 alternatives, got %d", len(handler.Alternatives()))
	}
}

func TestBuild_UnresolvedNameProducesSoftError(t *testing.T) {
	const src = `{
		"body": [
			{"kind": "assign", "targets": [{"kind": "name", "value": "y"}],
			 "value": {"kind": "name", "value": "totallyUndefined"}}
		]
	}`

	result := buildFixture(t, src)
	if len(result.SoftErrors) == 0 {
		t.Fatal("expected an unresolved-name soft error")
	}
}

func TestBuild_ShallowInferenceResolvesAnnotatedParam(t *testing.T) {
	const src = `{
		"body": [
			{"kind": "classdef", "name": {"kind": "name", "value": "Animal"}, "bases": [], "body": []},
			{"kind": "funcdef", "name": {"kind": "name", "value": "greet"},
			 "params": [{"target": {"kind": "name", "value": "animal"}, "annotation": {"kind": "name", "value": "Animal"}, "flag": "plain"}],
			 "body": []}
		]
	}`

	result := buildFixture(t, src)
	greet := findScopeSymbol(result, FileScope, "greet")
	if greet == nil {
		t.Fatal("expected greet symbol")
	}
	if len(greet.Parameters()) != 1 {
		t.Fatalf("expected 1 resolved parameter, got %d", len(greet.Parameters()))
	}
	animal := findScopeSymbol(result, FileScope, "Animal")
	if animal == nil {
		t.Fatal("expected Animal symbol")
	}
	param := greet.Parameters()[0]
	if param.InferredType == nil || !param.InferredType.certain {
		t.Fatalf("expected a certain inferred type for an annotated parameter, got %#v", param.InferredType)
	}
	if param.InferredType.classSym != animal {
		t.Errorf("expected the annotated param to resolve to class Animal's symbol, got %#v", param.InferredType.classSym)
	}
	if param.InferredType.CanHaveMember("nonexistent") {
		t.Errorf("expected CanHaveMember to reject a name absent from Animal and its bases")
	}
}

// TestRebindingProducesAmbiguousSymbol covers scenario S1: a module
// containing `def f(): pass` followed by `f = 3` produces one top-level
// symbol f with kind Ambiguous and two alternatives (Function, Other).
func TestRebindingProducesAmbiguousSymbol(t *testing.T) {
	const src = `{
		"body": [
			{"kind": "funcdef", "name": {"kind": "name", "value": "f"}, "params": [], "body": []},
			{"kind": "assign", "targets": [{"kind": "name", "value": "f"}], "value": {"kind": "constant", "tag": "int"}}
		]
	}`

	result := buildFixture(t, src)
	f := findScopeSymbol(result, FileScope, "f")
	if f == nil || f.Kind() != KindAmbiguous {
		t.Fatalf("expected an ambiguous f symbol, got %#v", f)
	}
	alts := f.Alternatives()
	if len(alts) != 2 {
		t.Fatalf("expected 2 alternatives, got %d", len(alts))
	}
	if alts[0].Kind() != KindFunction {
		t.Fatalf("expected the first alternative to be a Function, got %v", alts[0].Kind())
	}
	if alts[1].Kind() != KindOther {
		t.Fatalf("expected the second alternative to be Other, got %v", alts[1].Kind())
	}
}

// TestSelfAttributeBecomesClassMember covers scenario S2: a class whose
// __init__ assigns self.x produces members {__init__, x}, with x's usage
// list containing the self.x LHS name.
func TestSelfAttributeBecomesClassMember(t *testing.T) {
	const src = `{
		"body": [
			{"kind": "classdef", "name": {"kind": "name", "value": "C"}, "bases": [],
			 "body": [
				{"kind": "funcdef", "name": {"kind": "name", "value": "__init__"},
				 "params": [{"target": {"kind": "name", "value": "self"}, "flag": "plain"}],
				 "body": [
					{"kind": "assign",
					 "targets": [{"kind": "attribute", "value": {"kind": "name", "value": "self"}, "attr": {"kind": "name", "value": "x"}}],
					 "value": {"kind": "constant", "tag": "int"}}
				 ]}
			 ]}
		]
	}`

	result := buildFixture(t, src)
	c := findScopeSymbol(result, FileScope, "C")
	if c == nil || c.Kind() != KindClass {
		t.Fatalf("expected a class symbol C, got %#v", c)
	}
	names := make(map[string]bool)
	for _, m := range c.Members() {
		names[m.Name()] = true
	}
	if !names["__init__"] || !names["x"] {
		t.Fatalf("expected members {__init__, x}, got %v", names)
	}
	x, res := c.ResolveMember("x")
	if res != MemberFound || x == nil {
		t.Fatalf("expected x to resolve as a class member, got %v/%v", x, res)
	}
	foundSelfX := false
	for _, u := range x.Usages() {
		if u.Kind != AssignmentLHS {
			continue
		}
		if name, ok := u.Node.(*syntax.Name); ok && name.Value == "x" {
			foundSelfX = true
		}
	}
	if !foundSelfX {
		t.Fatal("expected x's usage list to contain the self.x LHS name")
	}
}

// symbolSummary and scopeSummary project a Result down to plain,
// cycle-free, exported-field values go-cmp can diff directly — Scope and
// Symbol carry unexported fields and Usage.Node is a syntax.Node interface
// with parent-pointer cycles, neither of which cmp.Diff can walk safely.
type symbolSummary struct {
	ID        int
	Name      string
	Kind      string
	FQN       string
	HasFQN    bool
	NumUsages int
}

type scopeSummary struct {
	ID     int
	Kind   string
	Locals []symbolSummary
}

func summarizeSymbol(sym *Symbol) symbolSummary {
	fqn, hasFQN := sym.FullyQualifiedName()
	return symbolSummary{
		ID:        sym.ID(),
		Name:      sym.Name(),
		Kind:      sym.Kind().String(),
		FQN:       fqn,
		HasFQN:    hasFQN,
		NumUsages: len(sym.Usages()),
	}
}

func summarizeResult(r *Result) []scopeSummary {
	out := make([]scopeSummary, 0, len(r.AllScopes))
	for _, scope := range r.AllScopes {
		locals := scope.Locals()
		summary := scopeSummary{ID: scope.ID(), Kind: scope.Kind().String(), Locals: make([]symbolSummary, len(locals))}
		for i, sym := range locals {
			summary.Locals[i] = summarizeSymbol(sym)
		}
		out = append(out, summary)
	}
	return out
}

// TestBuildIsIdempotent covers spec §8 invariant 8: running the builder
// twice over the same tree — reusing the same Builder, which Build no
// longer refuses — leaves the tree in the same observable state instead of
// duplicating usages or renumbering symbols.
func TestBuildIsIdempotent(t *testing.T) {
	const src = `{
		"body": [
			{"kind": "classdef", "name": {"kind": "name", "value": "Animal"}, "bases": [], "body": []},
			{"kind": "classdef", "name": {"kind": "name", "value": "Dog"}, "bases": [{"kind": "name", "value": "Animal"}], "body": []},
			{"kind": "if", "cond": {"kind": "constant", "tag": "bool"},
			 "body": [
				{"kind": "funcdef", "name": {"kind": "name", "value": "handler"}, "params": [], "body": []}
			 ],
			 "else": [
				{"kind": "assign", "targets": [{"kind": "name", "value": "handler"}], "value": {"kind": "constant", "tag": "none"}}
			 ]}
		]
	}`

	file, err := syntax.DecodeFile([]byte(src), "fixture.json", "pkg")
	if err != nil {
		t.Fatalf("DecodeFile: %v", err)
	}
	idx := stubs.NewMemoryIndex(stubs.StandardBuiltins(), nil)
	b := NewBuilder(idx, idx, discardLogger())

	first := b.Build(file)
	second := b.Build(file)

	if diff := cmp.Diff(summarizeResult(first), summarizeResult(second)); diff != "" {
		t.Fatalf("Build is not idempotent (-first +second):\n%s", diff)
	}
	if len(first.SoftErrors) != len(second.SoftErrors) {
		t.Fatalf("soft error count changed across rebuilds: %d vs %d", len(first.SoftErrors), len(second.SoftErrors))
	}
}

// TestGlobalRedirect covers scenario S3: a module-level name reassigned
// from inside a function via `global` accumulates usages on the module
// symbol instead of creating a shadow local in the function's own scope.
func TestGlobalRedirect(t *testing.T) {
	const src = `{
		"body": [
			{"kind": "assign", "targets": [{"kind": "name", "value": "x"}], "value": {"kind": "constant", "tag": "int"}},
			{"kind": "funcdef", "name": {"kind": "name", "value": "f"}, "params": [],
			 "body": [
				{"kind": "global", "names": ["x"]},
				{"kind": "assign", "targets": [{"kind": "name", "value": "x"}], "value": {"kind": "constant", "tag": "int"}}
			 ]}
		]
	}`

	result := buildFixture(t, src)

	moduleX := findScopeSymbol(result, FileScope, "x")
	if moduleX == nil {
		t.Fatal("expected module-scope symbol x")
	}
	assignments := 0
	for _, u := range moduleX.Usages() {
		if u.Kind == AssignmentLHS {
			assignments++
		}
	}
	if assignments != 2 {
		t.Fatalf("expected 2 ASSIGNMENT_LHS usages on module x, got %d", assignments)
	}
	if sym := findScopeSymbol(result, FunctionScope, "x"); sym != nil {
		t.Fatal("expected f's own scope to hold no local x; global redirects binding to module scope")
	}
}

// TestRelativeImportFQN covers scenario S4: `from ..other import q` inside
// file pkg/sub/mod.py binds local name q with FQN pkg.other.q.
func TestRelativeImportFQN(t *testing.T) {
	const src = `{
		"body": [
			{"kind": "importfrom", "module": "other", "dotted_prefix": 2, "names": [{"name": "q"}]}
		]
	}`

	file, err := syntax.DecodeFile([]byte(src), "pkg/sub/mod.py", "pkg.sub")
	if err != nil {
		t.Fatalf("DecodeFile: %v", err)
	}
	idx := stubs.NewMemoryIndex(stubs.StandardBuiltins(), nil)
	b := NewBuilder(idx, idx, discardLogger())
	result := b.Build(file)

	q := findScopeSymbol(result, FileScope, "q")
	if q == nil {
		t.Fatal("expected file-scope symbol q")
	}
	fqn, ok := q.FullyQualifiedName()
	if !ok || fqn != "pkg.other.q" {
		t.Fatalf("expected q's FQN to be pkg.other.q, got %q (ok=%v)", fqn, ok)
	}
}

// TestWildcardImportFromStub covers scenario S5: `from typing import *`
// copies every name the typing stub exports into the module scope and
// marks the import resolved.
func TestWildcardImportFromStub(t *testing.T) {
	const src = `{
		"body": [
			{"kind": "importfrom", "module": "typing", "wildcard": true, "names": []}
		]
	}`

	modules := map[string]map[string]stubs.Symbol{
		"typing": {
			"List": {Name: "List", FQN: "typing.List", Kind: stubs.Class},
			"Dict": {Name: "Dict", FQN: "typing.Dict", Kind: stubs.Class},
		},
	}
	idx := stubs.NewMemoryIndex(stubs.StandardBuiltins(), modules)

	file, err := syntax.DecodeFile([]byte(src), "fixture.json", "")
	if err != nil {
		t.Fatalf("DecodeFile: %v", err)
	}
	b := NewBuilder(idx, idx, discardLogger())
	result := b.Build(file)

	im := file.Body[0].(*syntax.ImportFrom)
	if !result.WildcardResolved[im] {
		t.Fatal("expected the wildcard import to be marked resolved")
	}
	if sym := findScopeSymbol(result, FileScope, "List"); sym == nil {
		t.Fatal("expected typing.List to be copied into the module scope")
	}
	if sym := findScopeSymbol(result, FileScope, "Dict"); sym == nil {
		t.Fatal("expected typing.Dict to be copied into the module scope")
	}
}

// TestAmbiguousFunctionAlternativesKeepOwnParameters covers scenario S6:
// two module-level `def f(...)` with different signatures produce one
// Ambiguous f whose alternatives each carry their own parameter list.
func TestAmbiguousFunctionAlternativesKeepOwnParameters(t *testing.T) {
	const src = `{
		"body": [
			{"kind": "funcdef", "name": {"kind": "name", "value": "f"},
			 "params": [{"target": {"kind": "name", "value": "a"}, "flag": "plain"}], "body": []},
			{"kind": "funcdef", "name": {"kind": "name", "value": "f"},
			 "params": [{"target": {"kind": "name", "value": "b"}, "flag": "plain"},
			            {"target": {"kind": "name", "value": "c"}, "flag": "plain"}], "body": []}
		]
	}`

	result := buildFixture(t, src)
	f := findScopeSymbol(result, FileScope, "f")
	if f == nil || f.Kind() != KindAmbiguous {
		t.Fatalf("expected an ambiguous f symbol, got %#v", f)
	}
	alts := f.Alternatives()
	if len(alts) != 2 {
		t.Fatalf("expected 2 alternatives, got %d", len(alts))
	}
	if got := paramNames(alts[0]); len(got) != 1 || got[0] != "a" {
		t.Fatalf("expected the first alternative's params to be [a], got %v", got)
	}
	if got := paramNames(alts[1]); len(got) != 2 || got[0] != "b" || got[1] != "c" {
		t.Fatalf("expected the second alternative's params to be [b c], got %v", got)
	}
}

func paramNames(sym *Symbol) []string {
	out := make([]string, len(sym.Parameters()))
	for i, p := range sym.Parameters() {
		out[i] = p.Name
	}
	return out
}

// TestEveryBindingUsageHasSymbol covers spec §8 invariant 1: every name
// node carrying a binding-kind usage has its Symbol slot populated, and
// that symbol's own usage list contains this exact name back.
func TestEveryBindingUsageHasSymbol(t *testing.T) {
	const src = `{
		"body": [
			{"kind": "classdef", "name": {"kind": "name", "value": "Animal"}, "bases": [],
			 "body": [
				{"kind": "funcdef", "name": {"kind": "name", "value": "__init__"},
				 "params": [{"target": {"kind": "name", "value": "self"}, "flag": "plain"}],
				 "body": [
					{"kind": "assign",
					 "targets": [{"kind": "attribute", "value": {"kind": "name", "value": "self"}, "attr": {"kind": "name", "value": "name"}}],
					 "value": {"kind": "constant", "tag": "str"}}
				 ]}
			 ]},
			{"kind": "assign", "targets": [{"kind": "name", "value": "pet"}], "value": {"kind": "name", "value": "Animal"}}
		]
	}`

	result := buildFixture(t, src)
	checked := 0
	for _, scope := range result.AllScopes {
		for _, sym := range scope.Locals() {
			for _, u := range sym.Usages() {
				if !u.Kind.IsBinding() {
					continue
				}
				name, ok := u.Node.(*syntax.Name)
				if !ok {
					continue
				}
				checked++
				got, ok := name.Symbol.(*Symbol)
				if !ok || got == nil {
					t.Fatalf("binding usage %s on name %q has no symbol set", u.Kind, name.Value)
				}
				found := false
				for _, su := range got.Usages() {
					if su.Node == name && su.Kind == u.Kind {
						found = true
						break
					}
				}
				if !found {
					t.Fatalf("name %q's symbol does not list this usage back", name.Value)
				}
			}
		}
	}
	if checked == 0 {
		t.Fatal("fixture produced no binding usages to check")
	}
}

// TestResolutionRespectsScopeChain covers spec §8 invariant 2: a read
// resolves by walking the enclosing scope chain, skipping class scopes for
// a read that originates inside a nested function.
func TestResolutionRespectsScopeChain(t *testing.T) {
	const src = `{
		"body": [
			{"kind": "assign", "targets": [{"kind": "name", "value": "x"}], "value": {"kind": "constant", "tag": "int"}},
			{"kind": "classdef", "name": {"kind": "name", "value": "C"}, "bases": [],
			 "body": [
				{"kind": "assign", "targets": [{"kind": "name", "value": "y"}], "value": {"kind": "constant", "tag": "int"}},
				{"kind": "funcdef", "name": {"kind": "name", "value": "method"},
				 "params": [{"target": {"kind": "name", "value": "self"}, "flag": "plain"}],
				 "body": [
					{"kind": "assign", "targets": [{"kind": "name", "value": "z"}], "value": {"kind": "name", "value": "x"}},
					{"kind": "assign", "targets": [{"kind": "name", "value": "w"}], "value": {"kind": "name", "value": "y"}}
				 ]}
			 ]}
		]
	}`

	result := buildFixture(t, src)
	moduleX := findScopeSymbol(result, FileScope, "x")
	if moduleX == nil {
		t.Fatal("expected module-scope symbol x")
	}

	classDef := result.File.Body[1].(*syntax.ClassDef)
	method := classDef.Body[1].(*syntax.FuncDef)

	readX := method.Body[0].(*syntax.Assign).Value.(*syntax.Name)
	xSym, ok := readX.Symbol.(*Symbol)
	if !ok || xSym != moduleX {
		t.Fatalf("expected the read of x inside method to resolve to the module symbol, got %#v", readX.Symbol)
	}

	readY := method.Body[1].(*syntax.Assign).Value.(*syntax.Name)
	if readY.Symbol != nil {
		t.Fatalf("expected the read of y inside method to stay unresolved (class scopes are skipped for nested-function reads), got %#v", readY.Symbol)
	}
	foundSoftError := false
	for _, e := range result.SoftErrors {
		if e.Kind == types.UnresolvedName {
			foundSoftError = true
		}
	}
	if !foundSoftError {
		t.Fatal("expected an unresolved-name soft error for the class-scope-skipped read of y")
	}
}
