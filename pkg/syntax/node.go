// Package syntax defines the external syntax-tree contract the semantic
// core consumes (spec §6, "Consumed: Syntax tree"). It is deliberately not
// a lexer or parser for the source language — building a tokenizer/grammar
// is out of scope (spec §1) — it is just enough of a concrete, typed node
// model that pkg/semantic has something real to walk, and that tests can
// build literal trees against.
//
// The node set mirrors the constructs spec.md names directly: file-input,
// function-def, lambda, class-def, the four comprehension forms, name and
// attribute reads, the assignment family, import forms, global/nonlocal,
// and the few statement shapes (for/while/if/try/with) needed to carry
// binding targets and to give the reference pass something to recurse
// through. It intentionally stops short of a full expression grammar
// (arithmetic, boolean operators, subscripts) — those nodes are inert as
// far as symbol resolution is concerned. No concrete node type models them
// (KindOther has no node of its own), and DecodeFile rejects any node kind
// it does not know.
package syntax

import (
	"go/token"
	"reflect"
)

// Kind identifies the syntactic construct a Node represents.
type Kind int

const (
	KindOther Kind = iota
	KindFileInput
	KindFuncDef
	KindLambda
	KindClassDef
	KindListComp
	KindSetComp
	KindDictComp
	KindGeneratorExp
	KindName
	KindAttribute
	KindCall
	KindParameter
	KindDecorator
	KindAnnotation
	KindAssign
	KindAnnAssign
	KindAugAssign
	KindWalrus
	KindFor
	KindWhile
	KindIf
	KindTry
	KindExceptHandler
	KindWith
	KindWithItem
	KindImport
	KindImportAlias
	KindImportFrom
	KindGlobal
	KindNonlocal
	KindTuple
	KindListLit
	KindConstant
)

func (k Kind) String() string {
	names := [...]string{
		"Other", "FileInput", "FuncDef", "Lambda", "ClassDef",
		"ListComp", "SetComp", "DictComp", "GeneratorExp",
		"Name", "Attribute", "Call", "Parameter", "Decorator", "Annotation",
		"Assign", "AnnAssign", "AugAssign", "Walrus",
		"For", "While", "If", "Try", "ExceptHandler", "With", "WithItem",
		"Import", "ImportAlias", "ImportFrom", "Global", "Nonlocal",
		"Tuple", "ListLit", "Constant",
	}
	if int(k) < len(names) {
		return names[k]
	}
	return "Unknown"
}

// IsScopeRoot reports whether a node of this kind introduces a new scope
// (spec §3, "scope-root kinds").
func (k Kind) IsScopeRoot() bool {
	switch k {
	case KindFileInput, KindFuncDef, KindLambda, KindClassDef,
		KindListComp, KindSetComp, KindDictComp, KindGeneratorExp:
		return true
	default:
		return false
	}
}

// Node is the read-only tree contract the builder walks. Every concrete
// node type in this package implements it. Children returns direct
// syntactic children in a fixed per-kind order (mostly source order, but
// FuncDef and ClassDef list their Name before their decorators); callers
// needing scope-relevant
// substructure (parameters, the function body, a class's bases) use the
// concrete type's own accessors instead of Children.
type Node interface {
	Kind() Kind
	Pos() token.Pos
	End() token.Pos
	Parent() Node
	Children() []Node
	setParent(Node)
}

type base struct {
	parent   Node
	startPos token.Pos
	endPos   token.Pos
}

func (b *base) Pos() token.Pos     { return b.startPos }
func (b *base) End() token.Pos     { return b.endPos }
func (b *base) Parent() Node       { return b.parent }
func (b *base) setParent(p Node)   { b.parent = p }

// attach wires each non-nil child's parent pointer, so constructors can
// build a tree bottom-up with parent links kept consistent. A typed nil
// pointer (an absent optional child such as ImportAlias.Alias) is skipped
// like an untyped nil.
func attach(parent Node, children ...Node) {
	for _, c := range children {
		if c == nil {
			continue
		}
		if v := reflect.ValueOf(c); v.Kind() == reflect.Pointer && v.IsNil() {
			continue
		}
		c.setParent(parent)
	}
}

// ---- leaf / expression nodes ----

// Name is a bare identifier reference or binding target. Symbol is the
// mutable slot spec §6 requires ("every name node exposes name() and a
// mutable symbol() slot"); it holds a *semantic.Symbol once the builder
// resolves or binds it, but is typed any here to avoid an import cycle
// between pkg/syntax and pkg/semantic (mirrors go/ast.Ident.Obj, which
// does exactly this with *ast.Object for the same reason).
type Name struct {
	base
	Value  string
	Symbol any
}

func NewName(value string, pos, end token.Pos) *Name {
	return &Name{base: base{startPos: pos, endPos: end}, Value: value}
}

func (n *Name) Kind() Kind        { return KindName }
func (n *Name) Children() []Node  { return nil }

// Attribute is a qualified expression `Value.Attr` (spec §4.4's "qualified
// expressions q.n").
type Attribute struct {
	base
	Value Node
	Attr  *Name
}

func NewAttribute(value Node, attr *Name, pos, end token.Pos) *Attribute {
	a := &Attribute{base: base{startPos: pos, endPos: end}, Value: value, Attr: attr}
	attach(a, value, attr)
	return a
}

func (a *Attribute) Kind() Kind       { return KindAttribute }
func (a *Attribute) Children() []Node { return []Node{a.Value, a.Attr} }

// Constant is a literal (int/float/str/bool/none/...); LiteralTag names the
// builtin type tag it contributes to shallow type inference (C6).
type Constant struct {
	base
	LiteralTag string
}

func NewConstant(tag string, pos, end token.Pos) *Constant {
	return &Constant{base: base{startPos: pos, endPos: end}, LiteralTag: tag}
}

func (c *Constant) Kind() Kind       { return KindConstant }
func (c *Constant) Children() []Node { return nil }

// Tuple and ListLit group sub-targets; used both as literal expressions and
// as destructured assignment targets ("tuple-structured parameters" / LHS
// tuples, spec §4.3).
type Tuple struct {
	base
	Elements []Node
}

func NewTuple(elements []Node, pos, end token.Pos) *Tuple {
	t := &Tuple{base: base{startPos: pos, endPos: end}, Elements: elements}
	attach(t, elements...)
	return t
}

func (t *Tuple) Kind() Kind       { return KindTuple }
func (t *Tuple) Children() []Node { return t.Elements }

type ListLit struct {
	base
	Elements []Node
}

func NewListLit(elements []Node, pos, end token.Pos) *ListLit {
	l := &ListLit{base: base{startPos: pos, endPos: end}, Elements: elements}
	attach(l, elements...)
	return l
}

func (l *ListLit) Kind() Kind       { return KindListLit }
func (l *ListLit) Children() []Node { return l.Elements }

// Call is a call expression; Func is the callee expression, Args its
// argument expressions (keyword arguments are out of scope for C1-C6,
// which never need to resolve them).
type Call struct {
	base
	Func Node
	Args []Node
}

func NewCall(fn Node, args []Node, pos, end token.Pos) *Call {
	c := &Call{base: base{startPos: pos, endPos: end}, Func: fn, Args: args}
	attach(c, fn)
	attach(c, args...)
	return c
}

func (c *Call) Kind() Kind { return KindCall }
func (c *Call) Children() []Node {
	return append([]Node{c.Func}, c.Args...)
}

// ---- parameters, decorators, annotations ----

// ParamFlag classifies a Parameter per spec §3 ("variadic/keyword-only/
// positional-only flags").
type ParamFlag int

const (
	ParamPlain ParamFlag = iota
	ParamPositionalOnly
	ParamKeywordOnly
	ParamVariadicPositional // *args
	ParamVariadicKeyword    // **kwargs
)

// Parameter is one entry in a FuncDef's parameter list. Target holds the
// binding shape: usually a *Name, but a *Tuple for destructured parameters
// (spec §4.3, "tuple-structured parameters are destructured recursively").
type Parameter struct {
	base
	Target     Node
	Annotation Node // nil if unannotated
	Default    Node // nil if no default
	Flag       ParamFlag
}

func NewParameter(target, annotation, def Node, flag ParamFlag, pos, end token.Pos) *Parameter {
	p := &Parameter{base: base{startPos: pos, endPos: end}, Target: target, Annotation: annotation, Default: def, Flag: flag}
	attach(p, target, annotation, def)
	return p
}

func (p *Parameter) Kind() Kind { return KindParameter }
func (p *Parameter) Children() []Node {
	var out []Node
	for _, n := range []Node{p.Target, p.Annotation, p.Default} {
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}

// Decorator wraps a decorator expression applied to a FuncDef/ClassDef.
type Decorator struct {
	base
	Expr Node
}

func NewDecorator(expr Node, pos, end token.Pos) *Decorator {
	d := &Decorator{base: base{startPos: pos, endPos: end}, Expr: expr}
	attach(d, expr)
	return d
}

func (d *Decorator) Kind() Kind       { return KindDecorator }
func (d *Decorator) Children() []Node { return []Node{d.Expr} }

// ---- scope-root nodes ----

// FuncDef is a function-def or method-def (spec §4.1, §4.3).
type FuncDef struct {
	base
	Name       *Name
	Params     []*Parameter
	Decorators []*Decorator
	Returns    Node // return-annotation expression, nil if absent
	Body       []Node

	// LocalVariableSymbols is the function scope's locals, surfaced back
	// onto the anchor once C5 finishes (spec §4.5, §6's "localVariableSymbols
	// attached" on every function-def). Typed any for the same import-cycle
	// reason as Name.Symbol; each entry is a *semantic.Symbol.
	LocalVariableSymbols []any
}

func NewFuncDef(name *Name, params []*Parameter, decorators []*Decorator, returns Node, body []Node, pos, end token.Pos) *FuncDef {
	f := &FuncDef{base: base{startPos: pos, endPos: end}, Name: name, Params: params, Decorators: decorators, Returns: returns, Body: body}
	attach(f, name, returns)
	for _, p := range params {
		attach(f, p)
	}
	for _, d := range decorators {
		attach(f, d)
	}
	attach(f, body...)
	return f
}

func (f *FuncDef) Kind() Kind { return KindFuncDef }
func (f *FuncDef) Children() []Node {
	out := []Node{f.Name}
	for _, d := range f.Decorators {
		out = append(out, d)
	}
	for _, p := range f.Params {
		out = append(out, p)
	}
	if f.Returns != nil {
		out = append(out, f.Returns)
	}
	out = append(out, f.Body...)
	return out
}

// Lambda is an anonymous, single-expression function scope.
type Lambda struct {
	base
	Params []*Parameter
	Body   Node
}

func NewLambda(params []*Parameter, body Node, pos, end token.Pos) *Lambda {
	l := &Lambda{base: base{startPos: pos, endPos: end}, Params: params, Body: body}
	for _, p := range params {
		attach(l, p)
	}
	attach(l, body)
	return l
}

func (l *Lambda) Kind() Kind { return KindLambda }
func (l *Lambda) Children() []Node {
	out := make([]Node, 0, len(l.Params)+1)
	for _, p := range l.Params {
		out = append(out, p)
	}
	return append(out, l.Body)
}

// ClassDef is a class-def (spec §4.1, §4.3, §4.5).
type ClassDef struct {
	base
	Name       *Name
	Bases      []Node // base-class expressions, usually *Name or *Attribute
	Decorators []*Decorator
	Body       []Node

	// LocalVariableSymbols is the class scope's own class-body locals,
	// surfaced back onto the anchor once C5 finishes (spec §4.5, §6's
	// "class-fields" set; distinct from InstanceAttributeSymbols below).
	// Typed any for the same import-cycle reason as Name.Symbol; each entry
	// is a *semantic.Symbol.
	LocalVariableSymbols []any

	// InstanceAttributeSymbols is the class scope's self.x-derived
	// instance-attribute symbols, surfaced the same way (spec §6's
	// "instance-fields" set).
	InstanceAttributeSymbols []any
}

func NewClassDef(name *Name, bases []Node, decorators []*Decorator, body []Node, pos, end token.Pos) *ClassDef {
	c := &ClassDef{base: base{startPos: pos, endPos: end}, Name: name, Bases: bases, Decorators: decorators, Body: body}
	attach(c, name)
	attach(c, bases...)
	for _, d := range decorators {
		attach(c, d)
	}
	attach(c, body...)
	return c
}

func (c *ClassDef) Kind() Kind { return KindClassDef }
func (c *ClassDef) Children() []Node {
	out := []Node{c.Name}
	out = append(out, c.Bases...)
	for _, d := range c.Decorators {
		out = append(out, d)
	}
	return append(out, c.Body...)
}

// CompKind distinguishes the four comprehension scope-root forms.
type CompKind int

const (
	CompList CompKind = iota
	CompSet
	CompDict
	CompGenerator
)

// CompClause is one `for Target in Iter [if Cond]*` clause of a
// comprehension. The first clause's Iter is evaluated in the enclosing
// scope (spec §3, §4.3, §4.4); subsequent clauses and all Conds evaluate
// in the comprehension's own scope.
type CompClause struct {
	Target Node
	Iter   Node
	Conds  []Node
}

// Comprehension is one of the four comprehension scope-root kinds. Elt is
// the element expression (Key/Value for dict comprehensions, folded into
// Elt/ValueElt).
type Comprehension struct {
	base
	CompKind CompKind
	Elt      Node
	ValueElt Node // dict comprehensions only
	Clauses  []CompClause
}

func NewComprehension(kind CompKind, elt, valueElt Node, clauses []CompClause, pos, end token.Pos) *Comprehension {
	c := &Comprehension{base: base{startPos: pos, endPos: end}, CompKind: kind, Elt: elt, ValueElt: valueElt, Clauses: clauses}
	attach(c, elt, valueElt)
	for _, cl := range clauses {
		attach(c, cl.Target, cl.Iter)
		attach(c, cl.Conds...)
	}
	return c
}

func (c *Comprehension) Kind() Kind {
	switch c.CompKind {
	case CompList:
		return KindListComp
	case CompSet:
		return KindSetComp
	case CompDict:
		return KindDictComp
	default:
		return KindGeneratorExp
	}
}

func (c *Comprehension) Children() []Node {
	out := []Node{}
	if c.Elt != nil {
		out = append(out, c.Elt)
	}
	if c.ValueElt != nil {
		out = append(out, c.ValueElt)
	}
	for _, cl := range c.Clauses {
		out = append(out, cl.Target, cl.Iter)
		out = append(out, cl.Conds...)
	}
	return out
}

// ---- assignment family ----

type Assign struct {
	base
	Targets []Node
	Value   Node
}

func NewAssign(targets []Node, value Node, pos, end token.Pos) *Assign {
	a := &Assign{base: base{startPos: pos, endPos: end}, Targets: targets, Value: value}
	attach(a, targets...)
	attach(a, value)
	return a
}

func (a *Assign) Kind() Kind       { return KindAssign }
func (a *Assign) Children() []Node { return append(append([]Node{}, a.Targets...), a.Value) }

type AnnAssign struct {
	base
	Target     Node
	Annotation Node
	Value      Node // nil if the annotation has no initializer
}

func NewAnnAssign(target, annotation, value Node, pos, end token.Pos) *AnnAssign {
	a := &AnnAssign{base: base{startPos: pos, endPos: end}, Target: target, Annotation: annotation, Value: value}
	attach(a, target, annotation, value)
	return a
}

func (a *AnnAssign) Kind() Kind { return KindAnnAssign }
func (a *AnnAssign) Children() []Node {
	out := []Node{a.Target, a.Annotation}
	if a.Value != nil {
		out = append(out, a.Value)
	}
	return out
}

type AugAssign struct {
	base
	Target Node
	Op     string
	Value  Node
}

func NewAugAssign(target Node, op string, value Node, pos, end token.Pos) *AugAssign {
	a := &AugAssign{base: base{startPos: pos, endPos: end}, Target: target, Op: op, Value: value}
	attach(a, target, value)
	return a
}

func (a *AugAssign) Kind() Kind       { return KindAugAssign }
func (a *AugAssign) Children() []Node { return []Node{a.Target, a.Value} }

// Walrus is the `name := expr` named-expression form.
type Walrus struct {
	base
	Target *Name
	Value  Node
}

func NewWalrus(target *Name, value Node, pos, end token.Pos) *Walrus {
	w := &Walrus{base: base{startPos: pos, endPos: end}, Target: target, Value: value}
	attach(w, target, value)
	return w
}

func (w *Walrus) Kind() Kind       { return KindWalrus }
func (w *Walrus) Children() []Node { return []Node{w.Target, w.Value} }

// ---- control-flow statements (carry binding targets: for/with/except) ----

type For struct {
	base
	Target Node
	Iter   Node
	Body   []Node
}

func NewFor(target, iter Node, body []Node, pos, end token.Pos) *For {
	f := &For{base: base{startPos: pos, endPos: end}, Target: target, Iter: iter, Body: body}
	attach(f, target, iter)
	attach(f, body...)
	return f
}

func (f *For) Kind() Kind       { return KindFor }
func (f *For) Children() []Node { return append([]Node{f.Target, f.Iter}, f.Body...) }

type While struct {
	base
	Cond Node
	Body []Node
}

func NewWhile(cond Node, body []Node, pos, end token.Pos) *While {
	w := &While{base: base{startPos: pos, endPos: end}, Cond: cond, Body: body}
	attach(w, cond)
	attach(w, body...)
	return w
}

func (w *While) Kind() Kind       { return KindWhile }
func (w *While) Children() []Node { return append([]Node{w.Cond}, w.Body...) }

type If struct {
	base
	Cond Node
	Body []Node
	Else []Node
}

func NewIf(cond Node, body, els []Node, pos, end token.Pos) *If {
	i := &If{base: base{startPos: pos, endPos: end}, Cond: cond, Body: body, Else: els}
	attach(i, cond)
	attach(i, body...)
	attach(i, els...)
	return i
}

func (i *If) Kind() Kind       { return KindIf }
func (i *If) Children() []Node { return append(append([]Node{i.Cond}, i.Body...), i.Else...) }

// ExceptHandler binds an exception instance name (spec's EXCEPTION_INSTANCE
// usage kind) when `except E as name:` is used.
type ExceptHandler struct {
	base
	ExcType Node
	Target  *Name // nil if the handler doesn't bind a name
	Body    []Node
}

func NewExceptHandler(excType Node, target *Name, body []Node, pos, end token.Pos) *ExceptHandler {
	h := &ExceptHandler{base: base{startPos: pos, endPos: end}, ExcType: excType, Target: target, Body: body}
	attach(h, excType, target)
	attach(h, body...)
	return h
}

func (h *ExceptHandler) Kind() Kind { return KindExceptHandler }
func (h *ExceptHandler) Children() []Node {
	out := []Node{}
	if h.ExcType != nil {
		out = append(out, h.ExcType)
	}
	if h.Target != nil {
		out = append(out, h.Target)
	}
	return append(out, h.Body...)
}

type Try struct {
	base
	Body     []Node
	Handlers []*ExceptHandler
	Else     []Node
	Finally  []Node
}

func NewTry(body []Node, handlers []*ExceptHandler, els, finally []Node, pos, end token.Pos) *Try {
	t := &Try{base: base{startPos: pos, endPos: end}, Body: body, Handlers: handlers, Else: els, Finally: finally}
	attach(t, body...)
	for _, h := range handlers {
		attach(t, h)
	}
	attach(t, els...)
	attach(t, finally...)
	return t
}

func (t *Try) Kind() Kind { return KindTry }
func (t *Try) Children() []Node {
	out := append([]Node{}, t.Body...)
	for _, h := range t.Handlers {
		out = append(out, h)
	}
	out = append(out, t.Else...)
	return append(out, t.Finally...)
}

// WithItem binds the `as name` target of one context manager in a with
// statement (spec's WITH_INSTANCE usage kind).
type WithItem struct {
	base
	ContextExpr Node
	Target      Node // nil if no `as` clause
}

func NewWithItem(contextExpr, target Node, pos, end token.Pos) *WithItem {
	w := &WithItem{base: base{startPos: pos, endPos: end}, ContextExpr: contextExpr, Target: target}
	attach(w, contextExpr, target)
	return w
}

func (w *WithItem) Kind() Kind { return KindWithItem }
func (w *WithItem) Children() []Node {
	out := []Node{w.ContextExpr}
	if w.Target != nil {
		out = append(out, w.Target)
	}
	return out
}

type With struct {
	base
	Items []*WithItem
	Body  []Node
}

func NewWith(items []*WithItem, body []Node, pos, end token.Pos) *With {
	w := &With{base: base{startPos: pos, endPos: end}, Items: items, Body: body}
	for _, it := range items {
		attach(w, it)
	}
	attach(w, body...)
	return w
}

func (w *With) Kind() Kind { return KindWith }
func (w *With) Children() []Node {
	out := []Node{}
	for _, it := range w.Items {
		out = append(out, it)
	}
	return append(out, w.Body...)
}

// ---- imports, global/nonlocal ----

// ImportAlias is one `X [as Y]` entry of an import statement.
type ImportAlias struct {
	base
	Path  string // dotted module path, e.g. "os.path"
	Alias *Name  // nil when no `as` clause; bound name is then Path's first component
}

func NewImportAlias(path string, alias *Name, pos, end token.Pos) *ImportAlias {
	i := &ImportAlias{base: base{startPos: pos, endPos: end}, Path: path, Alias: alias}
	attach(i, alias)
	return i
}

func (i *ImportAlias) Kind() Kind { return KindImportAlias }
func (i *ImportAlias) Children() []Node {
	if i.Alias != nil {
		return []Node{i.Alias}
	}
	return nil
}

type Import struct {
	base
	Names []*ImportAlias
}

func NewImport(names []*ImportAlias, pos, end token.Pos) *Import {
	im := &Import{base: base{startPos: pos, endPos: end}, Names: names}
	for _, n := range names {
		attach(im, n)
	}
	return im
}

func (i *Import) Kind() Kind { return KindImport }
func (i *Import) Children() []Node {
	out := make([]Node, len(i.Names))
	for idx, n := range i.Names {
		out[idx] = n
	}
	return out
}

// ImportFromName is one `N [as A]` entry of a from-import.
type ImportFromName struct {
	base
	Name  string
	Alias *Name // nil when no `as` clause; bound name is then Name itself
}

func NewImportFromName(name string, alias *Name, pos, end token.Pos) *ImportFromName {
	f := &ImportFromName{base: base{startPos: pos, endPos: end}, Name: name, Alias: alias}
	attach(f, alias)
	return f
}

func (f *ImportFromName) Kind() Kind { return KindImportAlias }
func (f *ImportFromName) Children() []Node {
	if f.Alias != nil {
		return []Node{f.Alias}
	}
	return nil
}

// ImportFrom is `from M import N [as A], ...` or `from M import *`.
// DottedPrefix > 0 marks a relative import: `from ..other import q` (spec
// S4) has Module "other" and DottedPrefix 2; Module is empty only for a
// pure relative import such as `from .. import q`.
type ImportFrom struct {
	base
	Module       string // empty for a pure relative import with no module component
	DottedPrefix int    // count of leading dots; 0 for an absolute import
	Names        []*ImportFromName
	Wildcard     bool // `from M import *`
}

func NewImportFrom(module string, dottedPrefix int, names []*ImportFromName, wildcard bool, pos, end token.Pos) *ImportFrom {
	f := &ImportFrom{base: base{startPos: pos, endPos: end}, Module: module, DottedPrefix: dottedPrefix, Names: names, Wildcard: wildcard}
	for _, n := range names {
		attach(f, n)
	}
	return f
}

func (f *ImportFrom) Kind() Kind { return KindImportFrom }
func (f *ImportFrom) Children() []Node {
	out := make([]Node, len(f.Names))
	for idx, n := range f.Names {
		out[idx] = n
	}
	return out
}

type Global struct {
	base
	Names []string
}

func NewGlobal(names []string, pos, end token.Pos) *Global {
	return &Global{base: base{startPos: pos, endPos: end}, Names: names}
}

func (g *Global) Kind() Kind       { return KindGlobal }
func (g *Global) Children() []Node { return nil }

type Nonlocal struct {
	base
	Names []string
}

func NewNonlocal(names []string, pos, end token.Pos) *Nonlocal {
	return &Nonlocal{base: base{startPos: pos, endPos: end}, Names: names}
}

func (n *Nonlocal) Kind() Kind       { return KindNonlocal }
func (n *Nonlocal) Children() []Node { return nil }

// ---- file root ----

// FileInput is the scope-root for the whole file (spec §3's file-input).
type FileInput struct {
	base
	Path    string // source path, used to derive the module FQN (spec §4.2)
	Package string // dotted package path the file lives under
	Body    []Node

	// GlobalVariableSymbols is the file scope's locals, surfaced back onto
	// the anchor once C5 finishes (spec §4.5, §6's "globalVariables()" on
	// every file-input). Typed any for the same import-cycle reason as
	// Name.Symbol; each entry is a *semantic.Symbol.
	GlobalVariableSymbols []any
}

func NewFileInput(path, pkg string, body []Node, pos, end token.Pos) *FileInput {
	f := &FileInput{base: base{startPos: pos, endPos: end}, Path: path, Package: pkg, Body: body}
	attach(f, body...)
	return f
}

func (f *FileInput) Kind() Kind       { return KindFileInput }
func (f *FileInput) Children() []Node { return f.Body }
