package semantic

import "github.com/arborcode/semcore/pkg/syntax"

// builtinTags are the literal/annotation tags shallow inference recognizes
// (spec §4.6: "literal kind (int/float/str/list/set/dict/tuple/bool/
// none)").
var builtinTags = map[string]bool{
	"int": true, "float": true, "str": true, "bool": true, "none": true,
	"list": true, "set": true, "dict": true, "tuple": true,
}

// InferredType answers the three questions spec §4.6 names. A type that is
// not "certain" is Any: canOnlyBe always false, canHaveMember always true
// (pessimistic, to suppress false positives downstream).
type InferredType struct {
	certain  bool
	tag      string // builtin tag, set only when classSym == nil && !callable
	classSym *Symbol
	callable bool
}

func anyType() *InferredType { return &InferredType{} }

func literalType(tag string) *InferredType { return &InferredType{certain: true, tag: tag} }

func instanceType(cls *Symbol) *InferredType { return &InferredType{certain: true, classSym: cls} }

func callableType() *InferredType { return &InferredType{certain: true, callable: true} }

// CanOnlyBe reports whether this expression's type is certainly the given
// builtin tag.
func (t *InferredType) CanOnlyBe(tag string) bool {
	return t != nil && t.certain && t.classSym == nil && !t.callable && t.tag == tag
}

// CanHaveMember reports whether an attribute access by this name could
// succeed. Any type answers true unconditionally (spec §4.6); a class type
// answers by member resolution; a certain builtin-tag or callable type
// answers false.
func (t *InferredType) CanHaveMember(name string) bool {
	if t == nil || !t.certain {
		return true
	}
	if t.classSym != nil {
		_, res := t.classSym.ResolveMember(name)
		return res != MemberAbsent
	}
	return false
}

// IsIdentityComparableWith reports whether two expressions' types could
// ever refer to the same object. Uncertainty on either side answers true
// (pessimistic).
func (t *InferredType) IsIdentityComparableWith(other *InferredType) bool {
	if t == nil || other == nil || !t.certain || !other.certain {
		return true
	}
	if t.callable != other.callable {
		return false
	}
	if t.classSym != nil || other.classSym != nil {
		return t.classSym == other.classSym
	}
	return t.tag == other.tag
}

// inferrer implements C6 (spec §4.6): a third traversal assigning an
// InferredType to the expressions it visits, and finalizing each function
// symbol's parameter list from its declared annotations. Decorators,
// annotations, parameter defaults, base lists and except types are not
// visited, nor are statement kinds it has no case for.
type inferrer struct {
	b *Builder
}

func (inf *inferrer) run(fileScope *Scope) {
	for _, stmt := range inf.b.file.Body {
		inf.visitStmt(stmt, fileScope)
	}
	for declNode, sym := range inf.b.funcSymbolByDecl {
		inf.finalizeParams(declNode, sym, fileScope)
	}
}

func (inf *inferrer) visitStmt(n syntax.Node, scope *Scope) {
	if n == nil {
		return
	}
	switch v := n.(type) {
	case *syntax.FuncDef:
		fnScope := inf.findScope(v)
		for _, stmt := range v.Body {
			inf.visitStmt(stmt, fnScope)
		}
	case *syntax.ClassDef:
		classScope := inf.findScope(v)
		for _, stmt := range v.Body {
			inf.visitStmt(stmt, classScope)
		}
	case *syntax.Assign:
		inf.visitExpr(v.Value, scope)
		for _, t := range v.Targets {
			inf.visitExpr(t, scope)
		}
	case *syntax.AnnAssign:
		if v.Value != nil {
			inf.visitExpr(v.Value, scope)
		}
		inf.visitExpr(v.Target, scope)
	case *syntax.AugAssign:
		inf.visitExpr(v.Target, scope)
		inf.visitExpr(v.Value, scope)
	case *syntax.Walrus:
		inf.visitExpr(v.Value, scope)
	case *syntax.For:
		inf.visitExpr(v.Iter, scope)
		for _, s := range v.Body {
			inf.visitStmt(s, scope)
		}
	case *syntax.While:
		inf.visitExpr(v.Cond, scope)
		for _, s := range v.Body {
			inf.visitStmt(s, scope)
		}
	case *syntax.If:
		inf.visitExpr(v.Cond, scope)
		for _, s := range v.Body {
			inf.visitStmt(s, scope)
		}
		for _, s := range v.Else {
			inf.visitStmt(s, scope)
		}
	case *syntax.Try:
		for _, s := range v.Body {
			inf.visitStmt(s, scope)
		}
		for _, h := range v.Handlers {
			for _, s := range h.Body {
				inf.visitStmt(s, scope)
			}
		}
		for _, s := range v.Else {
			inf.visitStmt(s, scope)
		}
		for _, s := range v.Finally {
			inf.visitStmt(s, scope)
		}
	case *syntax.With:
		for _, it := range v.Items {
			inf.visitExpr(it.ContextExpr, scope)
		}
		for _, s := range v.Body {
			inf.visitStmt(s, scope)
		}
	case *syntax.Comprehension:
		inf.visitExpr(v, scope)
	}
}

func (inf *inferrer) findScope(anchor syntax.Node) *Scope {
	for _, s := range inf.b.arena.allScopes() {
		if s.anchor == anchor {
			return s
		}
	}
	return nil
}

func (inf *inferrer) visitExpr(n syntax.Node, scope *Scope) *InferredType {
	if n == nil {
		return anyType()
	}
	var t *InferredType
	switch v := n.(type) {
	case *syntax.Constant:
		t = literalType(v.LiteralTag)
	case *syntax.Name:
		sym, _ := v.Symbol.(*Symbol)
		t = typeForSymbol(sym)
	case *syntax.Attribute:
		qt := inf.visitExpr(v.Value, scope)
		t = inf.typeForMember(qt, v.Attr.Value)
	case *syntax.Call:
		ft := inf.visitExpr(v.Func, scope)
		for _, a := range v.Args {
			inf.visitExpr(a, scope)
		}
		if ft != nil && ft.certain && ft.classSym != nil {
			t = instanceType(ft.classSym)
		} else {
			t = anyType()
		}
	case *syntax.Tuple:
		for _, el := range v.Elements {
			inf.visitExpr(el, scope)
		}
		t = literalType("tuple")
	case *syntax.ListLit:
		for _, el := range v.Elements {
			inf.visitExpr(el, scope)
		}
		t = literalType("list")
	case *syntax.Comprehension:
		if v.Elt != nil {
			inf.visitExpr(v.Elt, scope)
		}
		if v.ValueElt != nil {
			inf.visitExpr(v.ValueElt, scope)
		}
		for _, cl := range v.Clauses {
			inf.visitExpr(cl.Iter, scope)
			for _, c := range cl.Conds {
				inf.visitExpr(c, scope)
			}
		}
		switch v.CompKind {
		case syntax.CompSet:
			t = literalType("set")
		case syntax.CompDict:
			t = literalType("dict")
		default:
			t = literalType("list")
		}
	default:
		for _, c := range n.Children() {
			inf.visitExpr(c, scope)
		}
		t = anyType()
	}
	inf.b.exprTypes[n] = t
	return t
}

func (inf *inferrer) typeForMember(qt *InferredType, name string) *InferredType {
	if qt == nil || !qt.certain || qt.classSym == nil {
		return anyType()
	}
	member, res := qt.classSym.ResolveMember(name)
	if res != MemberFound {
		return anyType()
	}
	return typeForSymbol(member)
}

// typeForSymbol implements spec §4.6's symbol-kind-based inference: "class
// symbol ⇒ instance-of-class; function symbol ⇒ callable".
func typeForSymbol(sym *Symbol) *InferredType {
	if sym == nil {
		return anyType()
	}
	switch sym.kind {
	case KindClass:
		return instanceType(sym)
	case KindFunction:
		return callableType()
	default:
		return anyType()
	}
}

// finalizeParams implements spec §4.6's closing step: "each function
// symbol's parameter list is finalized with the per-parameter inferred
// types pulled from annotations."
func (inf *inferrer) finalizeParams(declNode *syntax.FuncDef, sym *Symbol, fileScope *Scope) {
	sym.params = sym.params[:0]
	for _, p := range declNode.Params {
		pt := anyType()
		if p.Annotation != nil {
			pt = inf.parseAnnotation(p.Annotation, fileScope)
		}
		sym.params = append(sym.params, &ResolvedParameter{
			Name:         paramName(p.Target),
			HasDefault:   p.Default != nil,
			Flag:         p.Flag,
			InferredType: pt,
		})
	}
}

// parseAnnotation implements spec §4.6's "declared annotations on
// parameters and variables (parsed from annotation expressions into
// nominal tags)". Only bare-name annotations are resolvable without
// executing code (`x: int`, `x: MyClass`); anything else is Any.
func (inf *inferrer) parseAnnotation(expr syntax.Node, fileScope *Scope) *InferredType {
	name, ok := expr.(*syntax.Name)
	if !ok {
		return anyType()
	}
	if builtinTags[name.Value] {
		return literalType(name.Value)
	}
	if sym, ok := fileScope.symbolsByName[name.Value]; ok && sym.kind == KindClass {
		return instanceType(sym)
	}
	return anyType()
}
