package semantic

import "github.com/arborcode/semcore/pkg/syntax"

// disambiguator implements C5 (spec §4.5): turn any name with ≥2 binding
// usages, at least one a function-or-class declaration, into an Ambiguous
// symbol; resolve class base-class expressions; compute class member
// sets; and surface each scope's locals back onto its syntax anchor.
type disambiguator struct {
	b *Builder
	g *scopeGraph
}

func (da *disambiguator) run(fileScope *Scope) {
	for _, scope := range da.b.arena.allScopes() {
		for _, name := range append([]string(nil), scope.symbolOrder...) {
			da.disambiguateOne(scope, name)
		}
	}
	// Base-class resolution and member attachment run after every
	// ambiguous symbol (and its alternatives) exists, since a base
	// expression may itself name a class declared later in the file, or
	// one that turned out to be ambiguous.
	for _, scope := range da.b.arena.allScopes() {
		if scope.kind != ClassScope {
			continue
		}
		declNode, ok := scope.anchor.(*syntax.ClassDef)
		if !ok {
			continue
		}
		sym := da.b.classSymbolByDecl[declNode]
		if sym == nil {
			continue
		}
		da.resolveBases(sym, declNode.Bases, scope.fileScope())
		da.finalizeMembers(sym, scope)
	}
	da.surfaceLocals()
}

// surfaceLocals implements spec §4.5/§6's final step: each scope's locals
// are written back onto its syntax anchor, so a rule holding a bare
// *syntax.FuncDef/*syntax.ClassDef/*syntax.FileInput can read them without
// independently scanning the scope graph for a matching anchor.
func (da *disambiguator) surfaceLocals() {
	for _, scope := range da.b.arena.allScopes() {
		locals := scope.Locals()
		boxed := make([]any, len(locals))
		for i, sym := range locals {
			boxed[i] = sym
		}
		switch anchor := scope.anchor.(type) {
		case *syntax.FuncDef:
			anchor.LocalVariableSymbols = boxed
		case *syntax.ClassDef:
			anchor.LocalVariableSymbols = boxed
			attrs := scope.InstanceAttributes()
			boxedAttrs := make([]any, len(attrs))
			for i, sym := range attrs {
				boxedAttrs[i] = sym
			}
			anchor.InstanceAttributeSymbols = boxedAttrs
		case *syntax.FileInput:
			anchor.GlobalVariableSymbols = boxed
		}
	}
}

func (da *disambiguator) disambiguateOne(scope *Scope, name string) {
	sym := scope.symbolsByName[name]
	if sym == nil || sym.kind == KindAmbiguous {
		return
	}

	var bindingUsages []Usage
	hasDecl := false
	for _, u := range sym.usages {
		if !u.Kind.IsBinding() {
			continue
		}
		bindingUsages = append(bindingUsages, u)
		if u.Kind == FuncDeclaration || u.Kind == ClassDeclaration {
			hasDecl = true
		}
	}

	// Even outside an ambiguity, a class symbol still needs its declaring
	// node recorded so the base/member-attachment pass below can find it.
	if len(bindingUsages) == 1 && sym.kind == KindClass {
		if declNode, ok := bindingUsages[0].Node.Parent().(*syntax.ClassDef); ok {
			da.b.classSymbolByDecl[declNode] = sym
		}
	}
	if len(bindingUsages) == 1 && sym.kind == KindFunction {
		if declNode, ok := bindingUsages[0].Node.Parent().(*syntax.FuncDef); ok {
			da.b.funcSymbolByDecl[declNode] = sym
		}
	}

	if len(bindingUsages) < 2 || !hasDecl {
		return
	}

	alts := make([]*Symbol, 0, len(bindingUsages))
	for _, u := range bindingUsages {
		switch u.Kind {
		case FuncDeclaration:
			declNode, ok := u.Node.Parent().(*syntax.FuncDef)
			if !ok {
				continue
			}
			alt := da.buildFunctionAlt(declNode, scope)
			da.b.funcSymbolByDecl[declNode] = alt
			alts = append(alts, alt)
		case ClassDeclaration:
			declNode, ok := u.Node.Parent().(*syntax.ClassDef)
			if !ok {
				continue
			}
			alt := da.buildClassAlt(declNode, scope)
			da.b.classSymbolByDecl[declNode] = alt
			alts = append(alts, alt)
		default:
			alt := da.g.arena.newSymbol(sym.name, KindOther)
			alt.addUsage(u)
			if fqn, ok := sym.FullyQualifiedName(); ok {
				alt.setFQN(fqn)
			}
			alts = append(alts, alt)
		}
	}

	sym.kind = KindAmbiguous
	sym.alternatives = alts
}

func (da *disambiguator) buildFunctionAlt(declNode *syntax.FuncDef, scope *Scope) *Symbol {
	alt := da.g.arena.newSymbol(declNode.Name.Value, KindFunction)
	alt.decorators = decoratorNames(declNode.Decorators)
	alt.declPos = declNode.Pos()
	alt.declFile = da.b.file.Path
	if fqn, ok := da.scopeFQN(scope); ok {
		alt.setFQN(fqn + "." + declNode.Name.Value)
	}
	alt.params = make([]*ResolvedParameter, 0, len(declNode.Params))
	for _, p := range declNode.Params {
		alt.params = append(alt.params, &ResolvedParameter{
			Name:       paramName(p.Target),
			HasDefault: p.Default != nil,
			Flag:       p.Flag,
		})
	}
	return alt
}

func (da *disambiguator) buildClassAlt(declNode *syntax.ClassDef, scope *Scope) *Symbol {
	alt := da.g.arena.newSymbol(declNode.Name.Value, KindClass)
	alt.decorators = decoratorNames(declNode.Decorators)
	alt.declPos = declNode.Pos()
	alt.declFile = da.b.file.Path
	alt.members = make(map[string]*Symbol)
	if fqn, ok := da.scopeFQN(scope); ok {
		alt.setFQN(fqn + "." + declNode.Name.Value)
	}
	return alt
}

func (da *disambiguator) scopeFQN(scope *Scope) (string, bool) {
	if scope.kind == FileScope {
		return da.b.moduleFQN, da.b.moduleFQN != ""
	}
	return scope.anchorFQN()
}

// resolveBases implements spec §4.2/§4.5: base-class expressions are
// resolved against the module scope's name map. A base that is not a bare
// name, or that does not name a class or ambiguous symbol there, is
// unresolved — the class is marked as having an unresolved hierarchy (spec
// §7) and an unresolved-base-class soft failure is recorded; nothing is
// raised.
func (da *disambiguator) resolveBases(sym *Symbol, baseExprs []syntax.Node, moduleScope *Scope) {
	for _, expr := range baseExprs {
		name, ok := expr.(*syntax.Name)
		if !ok {
			sym.bases = append(sym.bases, nil)
			sym.hasUnresolvedHierarchy = true
			da.b.logSoft(unresolvedBaseClassError(da.b.file.Path, dottedExprName(expr)))
			continue
		}
		baseSym, ok := moduleScope.symbolsByName[name.Value]
		if !ok || (baseSym.kind != KindClass && baseSym.kind != KindAmbiguous) {
			sym.bases = append(sym.bases, nil)
			sym.hasUnresolvedHierarchy = true
			da.b.logSoft(unresolvedBaseClassError(da.b.file.Path, name.Value))
			continue
		}
		name.Symbol = baseSym
		sym.bases = append(sym.bases, baseSym)
	}
}

// finalizeMembers implements spec §4.5's class-member computation:
// members = symbolsByName ∪ {instance attributes not already present};
// on a name collision the class-body symbol wins but absorbs the instance
// attribute's usages.
func (da *disambiguator) finalizeMembers(sym *Symbol, classScope *Scope) {
	if sym.members == nil {
		sym.members = make(map[string]*Symbol)
	}
	for _, name := range classScope.symbolOrder {
		sym.members[name] = classScope.symbolsByName[name]
		sym.memberOrder = append(sym.memberOrder, name)
	}
	for _, name := range classScope.instanceAttrOrder {
		attr := classScope.instanceAttributesByName[name]
		if existing, ok := sym.members[name]; ok {
			existing.usages = append(existing.usages, attr.usages...)
			continue
		}
		sym.members[name] = attr
		sym.memberOrder = append(sym.memberOrder, name)
	}
}

func paramName(target syntax.Node) string {
	if n, ok := target.(*syntax.Name); ok {
		return n.Value
	}
	return ""
}
