package semantic

import (
	"sort"
	"strings"

	"github.com/arborcode/semcore/pkg/stubs"
	"github.com/arborcode/semcore/pkg/syntax"
)

// binder implements C3 (spec §4.3): a single traversal that creates scopes
// and records binding usages. It never reads names — every expression that
// is purely a read (default values, annotations, comprehension iterables,
// decorator expressions, base-class expressions) is skipped here and
// revisited by the reference pass (reference.go).
type binder struct {
	b *Builder
	g *scopeGraph
}

func (bd *binder) run(file *syntax.FileInput) *Scope {
	fileScope := bd.g.createScope(FileScope, file)
	bd.seedBuiltins(fileScope, file)
	bd.g.enterScope(fileScope)
	for _, stmt := range file.Body {
		bd.bindNode(stmt, fileScope)
	}
	bd.g.leaveScope()
	return fileScope
}

// seedBuiltins implements spec §4.3's file-input rule: seed the root scope
// with the built-in namespace, except when the file being analyzed is
// itself one of the base stub modules (avoids the stub index referencing
// itself while it is being built). Builtins are seeded in name order so the
// arena and the scope's symbol order come out the same on every build.
func (bd *binder) seedBuiltins(fileScope *Scope, file *syntax.FileInput) {
	mfqn := bd.b.moduleFQN
	if mfqn == "" || mfqn == "typing" || mfqn == "typing_extensions" {
		return
	}
	builtins := bd.b.stubIndex.BuiltinSymbols()
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		local := bd.materializeStubSymbol(builtins[name])
		fileScope.symbolsByName[name] = local
		fileScope.symbolOrder = append(fileScope.symbolOrder, name)
		fileScope.builtinSymbols[name] = struct{}{}
	}
}

// materializeStubSymbol copies a read-only stub descriptor into this
// build's own arena (see pkg/stubs's doc comment for why the index and the
// per-file arena must stay separate).
func (bd *binder) materializeStubSymbol(s stubs.Symbol) *Symbol {
	kind := KindOther
	switch s.Kind {
	case stubs.Function:
		kind = KindFunction
	case stubs.Class:
		kind = KindClass
	}
	sym := bd.g.arena.newSymbol(s.Name, kind)
	sym.setFQN(s.FQN)
	if kind == KindClass {
		for _, m := range s.Members {
			msym := bd.g.arena.newSymbol(m, KindOther)
			sym.members[m] = msym
			sym.memberOrder = append(sym.memberOrder, m)
		}
	}
	return sym
}

func (bd *binder) bindNode(n syntax.Node, scope *Scope) {
	if n == nil {
		return
	}
	switch n.Kind() {
	case syntax.KindFuncDef:
		bd.bindFuncDef(n.(*syntax.FuncDef), scope)
	case syntax.KindLambda:
		bd.bindLambda(n.(*syntax.Lambda), scope)
	case syntax.KindClassDef:
		bd.bindClassDef(n.(*syntax.ClassDef), scope)
	case syntax.KindListComp, syntax.KindSetComp, syntax.KindDictComp, syntax.KindGeneratorExp:
		bd.bindComprehension(n.(*syntax.Comprehension), scope)
	case syntax.KindImport:
		bd.bindImport(n.(*syntax.Import), scope)
	case syntax.KindImportFrom:
		bd.bindImportFrom(n.(*syntax.ImportFrom), scope)
	case syntax.KindAssign:
		a := n.(*syntax.Assign)
		for _, t := range a.Targets {
			bd.bindTarget(t, scope, AssignmentLHS)
		}
		bd.bindNode(a.Value, scope)
	case syntax.KindAnnAssign:
		a := n.(*syntax.AnnAssign)
		bd.bindTarget(a.Target, scope, AssignmentLHS)
		bd.bindNode(a.Value, scope)
	case syntax.KindAugAssign:
		a := n.(*syntax.AugAssign)
		bd.bindTarget(a.Target, scope, CompoundAssignmentLHS)
		bd.bindNode(a.Value, scope)
	case syntax.KindWalrus:
		w := n.(*syntax.Walrus)
		bd.bindTarget(w.Target, scope, AssignmentLHS)
		bd.bindNode(w.Value, scope)
	case syntax.KindFor:
		f := n.(*syntax.For)
		bd.bindTarget(f.Target, scope, LoopDeclaration)
		bd.bindNode(f.Iter, scope)
		for _, s := range f.Body {
			bd.bindNode(s, scope)
		}
	case syntax.KindWhile:
		w := n.(*syntax.While)
		bd.bindNode(w.Cond, scope)
		for _, s := range w.Body {
			bd.bindNode(s, scope)
		}
	case syntax.KindIf:
		i := n.(*syntax.If)
		bd.bindNode(i.Cond, scope)
		for _, s := range i.Body {
			bd.bindNode(s, scope)
		}
		for _, s := range i.Else {
			bd.bindNode(s, scope)
		}
	case syntax.KindTry:
		t := n.(*syntax.Try)
		for _, s := range t.Body {
			bd.bindNode(s, scope)
		}
		for _, h := range t.Handlers {
			if h.Target != nil {
				bd.g.addBindingUsage(scope, h.Target.Value, h.Target, ExceptionInstance, KindOther, "", false)
				h.Target.Symbol = scope.symbolsByName[h.Target.Value]
			}
			bd.bindNode(h.ExcType, scope)
			for _, s := range h.Body {
				bd.bindNode(s, scope)
			}
		}
		for _, s := range t.Else {
			bd.bindNode(s, scope)
		}
		for _, s := range t.Finally {
			bd.bindNode(s, scope)
		}
	case syntax.KindWith:
		w := n.(*syntax.With)
		for _, it := range w.Items {
			if it.Target != nil {
				bd.bindTarget(it.Target, scope, WithInstance)
			}
			bd.bindNode(it.ContextExpr, scope)
		}
		for _, s := range w.Body {
			bd.bindNode(s, scope)
		}
	case syntax.KindGlobal:
		g := n.(*syntax.Global)
		for _, name := range g.Names {
			scope.globalNames[name] = struct{}{}
			fs := scope.fileScope()
			bd.g.addBindingUsage(fs, name, g, GlobalDeclaration, KindOther, "", false)
		}
	case syntax.KindNonlocal:
		nl := n.(*syntax.Nonlocal)
		for _, name := range nl.Names {
			scope.nonlocalNames[name] = struct{}{}
		}
	default:
		for _, c := range n.Children() {
			bd.bindNode(c, scope)
		}
	}
}

// bindTarget recursively binds an assignment/for/with/comprehension target
// (spec §4.3: "bind each name on the left with the appropriate usage
// kind"), destructuring tuples and lists, and recording qualified-
// expression targets into the assignment-LHS side set instead of binding
// them directly (spec §4.3's "collect all assignment LHS expressions").
func (bd *binder) bindTarget(target syntax.Node, scope *Scope, kind UsageKind) {
	if target == nil {
		return
	}
	switch target.Kind() {
	case syntax.KindName:
		name := target.(*syntax.Name)
		sym := bd.g.addBindingUsage(scope, name.Value, name, kind, KindOther, "", false)
		name.Symbol = sym
	case syntax.KindTuple:
		for _, el := range target.(*syntax.Tuple).Elements {
			bd.bindTarget(el, scope, kind)
		}
	case syntax.KindListLit:
		for _, el := range target.(*syntax.ListLit).Elements {
			bd.bindTarget(el, scope, kind)
		}
	case syntax.KindAttribute:
		bd.b.assignLHS[target] = true
	default:
		// Malformed target shape; permissive per spec §4.7 (not every
		// upstream producer is trusted to only ever emit well-formed
		// assignment targets, and this is not a case severe enough to
		// abort the file over).
	}
}

func (bd *binder) bindFuncDef(f *syntax.FuncDef, enclosing *Scope) {
	sym := bd.g.addBindingUsage(enclosing, f.Name.Value, f.Name, FuncDeclaration, KindFunction, "", false)
	f.Name.Symbol = sym
	if enclosing.kind != FileScope {
		if fqn, ok := enclosing.anchorFQN(); ok {
			sym.setFQN(fqn + "." + f.Name.Value)
		}
	} else if bd.b.moduleFQN != "" {
		sym.setFQN(bd.b.moduleFQN + "." + f.Name.Value)
	}
	sym.decorators = decoratorNames(f.Decorators)
	sym.declPos = f.Pos()
	sym.declFile = bd.b.file.Path

	isMethod := enclosing.kind == ClassScope
	fnScope := bd.g.createScope(FunctionScope, f)
	bd.g.enterScope(fnScope)
	for i, p := range f.Params {
		kind := ParameterUsage
		if i == 0 && isMethod {
			if name, ok := p.Target.(*syntax.Name); ok {
				fnScope.selfParamName = name.Value
			}
		}
		bd.bindTarget(p.Target, fnScope, kind)
	}
	for _, stmt := range f.Body {
		bd.bindNode(stmt, fnScope)
	}
	bd.g.leaveScope()
}

func (bd *binder) bindLambda(l *syntax.Lambda, enclosing *Scope) {
	fnScope := bd.g.createScope(LambdaScope, l)
	bd.g.enterScope(fnScope)
	for _, p := range l.Params {
		bd.bindTarget(p.Target, fnScope, ParameterUsage)
	}
	bd.bindNode(l.Body, fnScope)
	bd.g.leaveScope()
}

func (bd *binder) bindClassDef(c *syntax.ClassDef, enclosing *Scope) {
	sym := bd.g.addBindingUsage(enclosing, c.Name.Value, c.Name, ClassDeclaration, KindClass, "", false)
	c.Name.Symbol = sym
	if enclosing.kind != FileScope {
		if fqn, ok := enclosing.anchorFQN(); ok {
			sym.setFQN(fqn + "." + c.Name.Value)
		}
	} else if bd.b.moduleFQN != "" {
		sym.setFQN(bd.b.moduleFQN + "." + c.Name.Value)
	}
	sym.decorators = decoratorNames(c.Decorators)
	sym.declPos = c.Pos()
	sym.declFile = bd.b.file.Path
	sym.baseExprs = c.Bases

	classScope := bd.g.createScope(ClassScope, c)
	bd.g.enterScope(classScope)
	for _, stmt := range c.Body {
		bd.bindNode(stmt, classScope)
	}
	bd.g.leaveScope()
}

func (bd *binder) bindComprehension(c *syntax.Comprehension, enclosing *Scope) {
	compScope := bd.g.createScope(ComprehensionScope, c)
	bd.g.enterScope(compScope)
	for _, clause := range c.Clauses {
		bd.bindTarget(clause.Target, compScope, CompDeclaration)
	}
	bd.g.leaveScope()
	_ = enclosing // outermost iterable is visited in the enclosing scope by C4, not here
}

func (bd *binder) bindImport(im *syntax.Import, scope *Scope) {
	for _, alias := range im.Names {
		var boundName string
		var node syntax.Node = alias
		if alias.Alias != nil {
			boundName = alias.Alias.Value
			node = alias.Alias
		} else {
			boundName = firstDottedComponent(alias.Path)
		}
		sym := bd.g.addBindingUsage(scope, boundName, node, ImportUsage, KindOther, alias.Path, true)
		if alias.Alias != nil {
			alias.Alias.Symbol = sym
		}
	}
}

func (bd *binder) bindImportFrom(im *syntax.ImportFrom, scope *Scope) {
	module := bd.resolveModule(im)
	if im.Wildcard {
		bd.bindWildcardImport(im, module, scope)
		return
	}
	for _, n := range im.Names {
		boundName := n.Name
		var node syntax.Node = n
		if n.Alias != nil {
			boundName = n.Alias.Value
			node = n.Alias
		}
		fqn := n.Name
		if module != "" {
			fqn = module + "." + n.Name
		}
		sym := bd.g.addBindingUsage(scope, boundName, node, ImportUsage, KindOther, fqn, true)
		if n.Alias != nil {
			n.Alias.Symbol = sym
		}
	}
}

// resolveModule implements spec §4.3's relative-import rule (also tested
// as scenario S4): when Module is absent and a dotted prefix is present,
// the target module is derived by walking up the current file's own
// package path by (dottedPrefix-1) components and appending Module.
func (bd *binder) resolveModule(im *syntax.ImportFrom) string {
	if im.DottedPrefix == 0 {
		return im.Module
	}
	comps := []string{}
	if bd.b.file.Package != "" {
		comps = strings.Split(bd.b.file.Package, ".")
	}
	up := im.DottedPrefix - 1
	if up > len(comps) {
		up = len(comps)
	}
	base := comps[:len(comps)-up]
	baseStr := strings.Join(base, ".")
	switch {
	case im.Module == "":
		return baseStr
	case baseStr == "":
		return im.Module
	default:
		return baseStr + "." + im.Module
	}
}

func (bd *binder) bindWildcardImport(im *syntax.ImportFrom, module string, scope *Scope) {
	syms, ok := bd.b.globalIndex.ModuleSymbols(module)
	if !ok {
		syms, ok = bd.b.stubIndex.SymbolsForModule(module)
	}
	if !ok {
		bd.b.wildcardResolved[im] = false
		bd.b.logSoft(unresolvedImportError(bd.b.file.Path, module))
		return
	}
	bd.b.wildcardResolved[im] = true
	names := make([]string, 0, len(syms))
	for name := range syms {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		local := bd.materializeStubSymbol(syms[name])
		local.addUsage(Usage{Node: im, Kind: ImportUsage})
		scope.symbolsByName[name] = local
		scope.symbolOrder = append(scope.symbolOrder, name)
	}
}

func decoratorNames(decorators []*syntax.Decorator) []string {
	if len(decorators) == 0 {
		return nil
	}
	out := make([]string, 0, len(decorators))
	for _, d := range decorators {
		out = append(out, dottedExprName(d.Expr))
	}
	return out
}

// dottedExprName best-effort renders a Name or Attribute chain as a dotted
// string; anything else (a call, a subscript) is not a static decorator
// name and is reported as "<dynamic>" (spec SPEC_FULL §4.8).
func dottedExprName(n syntax.Node) string {
	switch v := n.(type) {
	case *syntax.Name:
		return v.Value
	case *syntax.Attribute:
		base := dottedExprName(v.Value)
		if base == "<dynamic>" {
			return base
		}
		return base + "." + v.Attr.Value
	default:
		return "<dynamic>"
	}
}

func firstDottedComponent(path string) string {
	if i := strings.IndexByte(path, '.'); i >= 0 {
		return path[:i]
	}
	return path
}

// anchorFQN returns the FQN of the symbol a scope is anchored to, used to
// build nested FQNs (spec §4.2: "of a nested entity is <parent FQN>.<name>").
func (s *Scope) anchorFQN() (string, bool) {
	switch s.kind {
	case ClassScope:
		if c, ok := s.anchor.(*syntax.ClassDef); ok {
			if c.Name.Symbol != nil {
				if sym, ok := c.Name.Symbol.(*Symbol); ok {
					return sym.FullyQualifiedName()
				}
			}
		}
	case FunctionScope:
		if f, ok := s.anchor.(*syntax.FuncDef); ok {
			if f.Name.Symbol != nil {
				if sym, ok := f.Name.Symbol.(*Symbol); ok {
					return sym.FullyQualifiedName()
				}
			}
		}
	}
	return "", false
}
