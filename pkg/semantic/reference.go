package semantic

import "github.com/arborcode/semcore/pkg/syntax"

// referencer implements C4 (spec §4.4): a second traversal with read
// semantics. Scopes were already created by the binder (C3); this pass
// looks them up by anchor (scopeGraph.createScope is idempotent) and
// threads the correct scope explicitly through each recursive call rather
// than maintaining a push/pop stack — the ordering exceptions in §4.4
// (default values, comprehension iterables, decorators/return
// annotations) are exactly about *which scope value* a subtree is visited
// with, which falls out naturally from passing it as a parameter instead
// of implicitly tracking "current scope".
type referencer struct {
	b *Builder
	g *scopeGraph
}

func (rf *referencer) run(file *syntax.FileInput, fileScope *Scope) {
	for _, stmt := range file.Body {
		rf.visitStmt(stmt, fileScope)
	}
}

func (rf *referencer) visitStmt(n syntax.Node, scope *Scope) {
	if n == nil {
		return
	}
	switch n.Kind() {
	case syntax.KindFuncDef:
		rf.visitFuncDef(n.(*syntax.FuncDef), scope)
	case syntax.KindClassDef:
		rf.visitClassDef(n.(*syntax.ClassDef), scope)
	case syntax.KindAssign:
		a := n.(*syntax.Assign)
		for _, t := range a.Targets {
			rf.visitExpr(t, scope)
		}
		rf.visitExpr(a.Value, scope)
	case syntax.KindAnnAssign:
		a := n.(*syntax.AnnAssign)
		rf.visitExpr(a.Annotation, scope)
		rf.visitExpr(a.Target, scope)
		if a.Value != nil {
			rf.visitExpr(a.Value, scope)
		}
	case syntax.KindAugAssign:
		a := n.(*syntax.AugAssign)
		rf.visitExpr(a.Target, scope)
		rf.visitExpr(a.Value, scope)
	case syntax.KindWalrus:
		w := n.(*syntax.Walrus)
		rf.visitExpr(w.Value, scope)
	case syntax.KindFor:
		f := n.(*syntax.For)
		rf.visitExpr(f.Target, scope)
		rf.visitExpr(f.Iter, scope)
		for _, s := range f.Body {
			rf.visitStmt(s, scope)
		}
	case syntax.KindWhile:
		w := n.(*syntax.While)
		rf.visitExpr(w.Cond, scope)
		for _, s := range w.Body {
			rf.visitStmt(s, scope)
		}
	case syntax.KindIf:
		i := n.(*syntax.If)
		rf.visitExpr(i.Cond, scope)
		for _, s := range i.Body {
			rf.visitStmt(s, scope)
		}
		for _, s := range i.Else {
			rf.visitStmt(s, scope)
		}
	case syntax.KindTry:
		t := n.(*syntax.Try)
		for _, s := range t.Body {
			rf.visitStmt(s, scope)
		}
		for _, h := range t.Handlers {
			if h.ExcType != nil {
				rf.visitExpr(h.ExcType, scope)
			}
			for _, s := range h.Body {
				rf.visitStmt(s, scope)
			}
		}
		for _, s := range t.Else {
			rf.visitStmt(s, scope)
		}
		for _, s := range t.Finally {
			rf.visitStmt(s, scope)
		}
	case syntax.KindWith:
		w := n.(*syntax.With)
		for _, it := range w.Items {
			rf.visitExpr(it.ContextExpr, scope)
			if it.Target != nil {
				rf.visitExpr(it.Target, scope)
			}
		}
		for _, s := range w.Body {
			rf.visitStmt(s, scope)
		}
	case syntax.KindListComp, syntax.KindSetComp, syntax.KindDictComp, syntax.KindGeneratorExp:
		rf.visitComprehension(n.(*syntax.Comprehension), scope)
	case syntax.KindImport, syntax.KindImportFrom, syntax.KindGlobal, syntax.KindNonlocal:
		// No reads to resolve; fully handled by C3.
	default:
		rf.visitExpr(n, scope)
	}
}

func (rf *referencer) visitFuncDef(f *syntax.FuncDef, enclosing *Scope) {
	for _, d := range f.Decorators {
		rf.visitExpr(d.Expr, enclosing)
	}
	if f.Returns != nil {
		rf.visitExpr(f.Returns, enclosing)
	}
	for _, p := range f.Params {
		if p.Annotation != nil {
			rf.visitExpr(p.Annotation, enclosing)
		}
		if p.Default != nil {
			rf.visitExpr(p.Default, enclosing)
		}
	}
	fnScope := rf.g.createScope(FunctionScope, f)
	for _, stmt := range f.Body {
		rf.visitStmt(stmt, fnScope)
	}
}

func (rf *referencer) visitLambda(l *syntax.Lambda, enclosing *Scope) {
	for _, p := range l.Params {
		if p.Annotation != nil {
			rf.visitExpr(p.Annotation, enclosing)
		}
		if p.Default != nil {
			rf.visitExpr(p.Default, enclosing)
		}
	}
	fnScope := rf.g.createScope(LambdaScope, l)
	rf.visitExpr(l.Body, fnScope)
}

func (rf *referencer) visitClassDef(c *syntax.ClassDef, enclosing *Scope) {
	for _, d := range c.Decorators {
		rf.visitExpr(d.Expr, enclosing)
	}
	for _, base := range c.Bases {
		rf.visitExpr(base, enclosing)
	}
	classScope := rf.g.createScope(ClassScope, c)
	for _, stmt := range c.Body {
		rf.visitStmt(stmt, classScope)
	}
}

func (rf *referencer) visitComprehension(c *syntax.Comprehension, enclosing *Scope) {
	compScope := rf.g.createScope(ComprehensionScope, c)
	for i, clause := range c.Clauses {
		if i == 0 {
			rf.visitExpr(clause.Iter, enclosing)
		} else {
			rf.visitExpr(clause.Iter, compScope)
		}
		rf.visitExpr(clause.Target, compScope)
		for _, cond := range clause.Conds {
			rf.visitExpr(cond, compScope)
		}
	}
	if c.Elt != nil {
		rf.visitExpr(c.Elt, compScope)
	}
	if c.ValueElt != nil {
		rf.visitExpr(c.ValueElt, compScope)
	}
}

// visitExpr resolves reads. It is also used to walk assignment/for/with
// targets: a *Name target already carries a Symbol set by the binder and
// is a no-op here, but an *Attribute target (e.g. `self.x = 1`, `obj.y =
// 2`) still needs its qualifier resolved, which is exactly the mechanism
// spec §4.4 describes.
func (rf *referencer) visitExpr(n syntax.Node, scope *Scope) {
	if n == nil {
		return
	}
	switch v := n.(type) {
	case *syntax.Name:
		// A slot holding a symbol of this build's arena is a binding
		// occurrence; one left over from an earlier Build is resolved anew.
		if sym, ok := v.Symbol.(*Symbol); ok && sym.id < len(rf.g.arena.symbols) && rf.g.arena.symbols[sym.id] == sym {
			return // already a binding occurrence
		}
		if sym := rf.g.resolve(scope, v.Value); sym != nil {
			sym.addUsage(Usage{Node: v, Kind: OtherUsage})
			v.Symbol = sym
		} else {
			rf.b.logSoft(unresolvedNameError(rf.b.file.Path, v.Value))
		}
	case *syntax.Attribute:
		rf.visitExpr(v.Value, scope)
		qSym := exprSymbol(v.Value)
		if qSym == nil {
			return
		}
		kind := OtherUsage
		if rf.b.assignLHS[v] {
			kind = AssignmentLHS
		}
		if fn := nearestFunctionScope(scope); fn != nil && fn.selfParamName != "" && fn.parent != nil && fn.parent.kind == ClassScope {
			if name, ok := v.Value.(*syntax.Name); ok && name.Value == fn.selfParamName && qSym == fn.symbolsByName[fn.selfParamName] {
				child := rf.g.addInstanceAttribute(fn.parent, v.Attr.Value, v.Attr, kind)
				v.Attr.Symbol = child
				return
			}
		}
		m, ok := rf.b.childSymbols[qSym]
		if !ok {
			m = make(map[string]*Symbol)
			rf.b.childSymbols[qSym] = m
		}
		child, ok := m[v.Attr.Value]
		if !ok {
			child = rf.g.arena.newSymbol(v.Attr.Value, KindOther)
			m[v.Attr.Value] = child
		}
		child.addUsage(Usage{Node: v.Attr, Kind: kind})
		v.Attr.Symbol = child
	case *syntax.Call:
		rf.visitExpr(v.Func, scope)
		for _, arg := range v.Args {
			rf.visitExpr(arg, scope)
		}
	case *syntax.Tuple:
		for _, el := range v.Elements {
			rf.visitExpr(el, scope)
		}
	case *syntax.ListLit:
		for _, el := range v.Elements {
			rf.visitExpr(el, scope)
		}
	case *syntax.Lambda:
		rf.visitLambda(v, scope)
	case *syntax.Comprehension:
		rf.visitComprehension(v, scope)
	case *syntax.Constant:
		// literal, nothing to resolve
	default:
		for _, c := range n.Children() {
			rf.visitExpr(c, scope)
		}
	}
}

// exprSymbol extracts the symbol an already-visited expression resolved
// to, if any (spec §4.4: "If q's symbol is known...").
func exprSymbol(n syntax.Node) *Symbol {
	switch v := n.(type) {
	case *syntax.Name:
		if sym, ok := v.Symbol.(*Symbol); ok {
			return sym
		}
	case *syntax.Attribute:
		if sym, ok := v.Attr.Symbol.(*Symbol); ok {
			return sym
		}
	}
	return nil
}

func nearestFunctionScope(scope *Scope) *Scope {
	for cur := scope; cur != nil; cur = cur.parent {
		if cur.kind == FunctionScope {
			return cur
		}
	}
	return nil
}
