package syntax

import (
	"encoding/json"
	"fmt"
	"go/token"
)

// DecodeFile builds a FileInput from the small JSON tree format the CLI and
// MCP front-ends read from disk (see DESIGN.md, "Open Question decisions":
// front ends consume a serialized tree rather than source text — building a tokenizer/grammar
// for the target language is explicitly out of scope, so this decoder
// stands in for the external parser spec §6 assumes upstream). Every node
// is a JSON object carrying a "kind" discriminator and that kind's fields;
// see testdata/*.json for worked examples.
//
// Positions are synthetic: each node is assigned the next integer in a
// single counter as it is decoded, so every node still gets a distinct,
// ordered token.Pos even though no real source text exists to measure
// against.
func DecodeFile(data []byte, path, pkg string) (*FileInput, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("syntax: decode %s: %w", path, err)
	}
	d := &decoder{pos: 1}
	body, err := d.nodeList(raw["body"])
	if err != nil {
		return nil, fmt.Errorf("syntax: decode %s: %w", path, err)
	}
	start := token.Pos(1)
	end := d.next()
	return NewFileInput(path, pkg, body, start, end), nil
}

type decoder struct{ pos int }

func (d *decoder) next() token.Pos {
	p := token.Pos(d.pos)
	d.pos++
	return p
}

func (d *decoder) nodeList(v any) ([]Node, error) {
	items, ok := v.([]any)
	if !ok {
		if v == nil {
			return nil, nil
		}
		return nil, fmt.Errorf("expected array, got %T", v)
	}
	out := make([]Node, 0, len(items))
	for _, item := range items {
		n, err := d.node(item)
		if err != nil {
			return nil, err
		}
		if n != nil {
			out = append(out, n)
		}
	}
	return out, nil
}

func (d *decoder) node(v any) (Node, error) {
	if v == nil {
		return nil, nil
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("expected object node, got %T", v)
	}
	kind, _ := obj["kind"].(string)
	start := d.next()

	switch kind {
	case "name":
		n := NewName(str(obj["value"]), start, d.next())
		return n, nil
	case "attribute":
		value, err := d.node(obj["value"])
		if err != nil {
			return nil, err
		}
		attrNode, err := d.node(obj["attr"])
		if err != nil {
			return nil, err
		}
		attr, ok := attrNode.(*Name)
		if !ok {
			attr = NewName(str(obj["attr"]), start, d.next())
		}
		return NewAttribute(value, attr, start, d.next()), nil
	case "constant":
		return NewConstant(str(obj["tag"]), start, d.next()), nil
	case "tuple":
		els, err := d.nodeList(obj["elements"])
		if err != nil {
			return nil, err
		}
		return NewTuple(els, start, d.next()), nil
	case "list":
		els, err := d.nodeList(obj["elements"])
		if err != nil {
			return nil, err
		}
		return NewListLit(els, start, d.next()), nil
	case "call":
		fn, err := d.node(obj["func"])
		if err != nil {
			return nil, err
		}
		args, err := d.nodeList(obj["args"])
		if err != nil {
			return nil, err
		}
		return NewCall(fn, args, start, d.next()), nil
	case "funcdef":
		return d.funcDef(obj, start)
	case "lambda":
		return d.lambda(obj, start)
	case "classdef":
		return d.classDef(obj, start)
	case "listcomp", "setcomp", "dictcomp", "genexp":
		return d.comprehension(kind, obj, start)
	case "assign":
		targets, err := d.nodeList(obj["targets"])
		if err != nil {
			return nil, err
		}
		value, err := d.node(obj["value"])
		if err != nil {
			return nil, err
		}
		return NewAssign(targets, value, start, d.next()), nil
	case "annassign":
		target, err := d.node(obj["target"])
		if err != nil {
			return nil, err
		}
		ann, err := d.node(obj["annotation"])
		if err != nil {
			return nil, err
		}
		val, err := d.node(obj["value"])
		if err != nil {
			return nil, err
		}
		return NewAnnAssign(target, ann, val, start, d.next()), nil
	case "augassign":
		target, err := d.node(obj["target"])
		if err != nil {
			return nil, err
		}
		val, err := d.node(obj["value"])
		if err != nil {
			return nil, err
		}
		return NewAugAssign(target, str(obj["op"]), val, start, d.next()), nil
	case "walrus":
		targetNode, err := d.node(obj["target"])
		if err != nil {
			return nil, err
		}
		target, _ := targetNode.(*Name)
		val, err := d.node(obj["value"])
		if err != nil {
			return nil, err
		}
		return NewWalrus(target, val, start, d.next()), nil
	case "for":
		target, err := d.node(obj["target"])
		if err != nil {
			return nil, err
		}
		iter, err := d.node(obj["iter"])
		if err != nil {
			return nil, err
		}
		body, err := d.nodeList(obj["body"])
		if err != nil {
			return nil, err
		}
		return NewFor(target, iter, body, start, d.next()), nil
	case "while":
		cond, err := d.node(obj["cond"])
		if err != nil {
			return nil, err
		}
		body, err := d.nodeList(obj["body"])
		if err != nil {
			return nil, err
		}
		return NewWhile(cond, body, start, d.next()), nil
	case "if":
		cond, err := d.node(obj["cond"])
		if err != nil {
			return nil, err
		}
		body, err := d.nodeList(obj["body"])
		if err != nil {
			return nil, err
		}
		els, err := d.nodeList(obj["else"])
		if err != nil {
			return nil, err
		}
		return NewIf(cond, body, els, start, d.next()), nil
	case "try":
		return d.try(obj, start)
	case "with":
		return d.with(obj, start)
	case "import":
		return d.importStmt(obj, start)
	case "importfrom":
		return d.importFrom(obj, start)
	case "global":
		return NewGlobal(strList(obj["names"]), start, d.next()), nil
	case "nonlocal":
		return NewNonlocal(strList(obj["names"]), start, d.next()), nil
	default:
		return nil, fmt.Errorf("unknown node kind %q", kind)
	}
}

func (d *decoder) funcDef(obj map[string]any, start token.Pos) (Node, error) {
	nameNode, err := d.node(obj["name"])
	if err != nil {
		return nil, err
	}
	name, _ := nameNode.(*Name)
	params, err := d.params(obj["params"])
	if err != nil {
		return nil, err
	}
	decorators, err := d.decorators(obj["decorators"])
	if err != nil {
		return nil, err
	}
	returns, err := d.node(obj["returns"])
	if err != nil {
		return nil, err
	}
	body, err := d.nodeList(obj["body"])
	if err != nil {
		return nil, err
	}
	return NewFuncDef(name, params, decorators, returns, body, start, d.next()), nil
}

func (d *decoder) lambda(obj map[string]any, start token.Pos) (Node, error) {
	params, err := d.params(obj["params"])
	if err != nil {
		return nil, err
	}
	body, err := d.node(obj["body"])
	if err != nil {
		return nil, err
	}
	return NewLambda(params, body, start, d.next()), nil
}

func (d *decoder) classDef(obj map[string]any, start token.Pos) (Node, error) {
	nameNode, err := d.node(obj["name"])
	if err != nil {
		return nil, err
	}
	name, _ := nameNode.(*Name)
	bases, err := d.nodeList(obj["bases"])
	if err != nil {
		return nil, err
	}
	decorators, err := d.decorators(obj["decorators"])
	if err != nil {
		return nil, err
	}
	body, err := d.nodeList(obj["body"])
	if err != nil {
		return nil, err
	}
	return NewClassDef(name, bases, decorators, body, start, d.next()), nil
}

func (d *decoder) comprehension(kind string, obj map[string]any, start token.Pos) (Node, error) {
	var ck CompKind
	switch kind {
	case "setcomp":
		ck = CompSet
	case "dictcomp":
		ck = CompDict
	case "genexp":
		ck = CompGenerator
	default:
		ck = CompList
	}
	elt, err := d.node(obj["elt"])
	if err != nil {
		return nil, err
	}
	valueElt, err := d.node(obj["value_elt"])
	if err != nil {
		return nil, err
	}
	rawClauses, _ := obj["clauses"].([]any)
	clauses := make([]CompClause, 0, len(rawClauses))
	for _, rc := range rawClauses {
		cobj, ok := rc.(map[string]any)
		if !ok {
			continue
		}
		target, err := d.node(cobj["target"])
		if err != nil {
			return nil, err
		}
		iter, err := d.node(cobj["iter"])
		if err != nil {
			return nil, err
		}
		conds, err := d.nodeList(cobj["conds"])
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, CompClause{Target: target, Iter: iter, Conds: conds})
	}
	return NewComprehension(ck, elt, valueElt, clauses, start, d.next()), nil
}

func (d *decoder) try(obj map[string]any, start token.Pos) (Node, error) {
	body, err := d.nodeList(obj["body"])
	if err != nil {
		return nil, err
	}
	rawHandlers, _ := obj["handlers"].([]any)
	handlers := make([]*ExceptHandler, 0, len(rawHandlers))
	for _, rh := range rawHandlers {
		hobj, ok := rh.(map[string]any)
		if !ok {
			continue
		}
		hstart := d.next()
		excType, err := d.node(hobj["exc_type"])
		if err != nil {
			return nil, err
		}
		targetNode, err := d.node(hobj["target"])
		if err != nil {
			return nil, err
		}
		target, _ := targetNode.(*Name)
		hbody, err := d.nodeList(hobj["body"])
		if err != nil {
			return nil, err
		}
		handlers = append(handlers, NewExceptHandler(excType, target, hbody, hstart, d.next()))
	}
	els, err := d.nodeList(obj["else"])
	if err != nil {
		return nil, err
	}
	finally, err := d.nodeList(obj["finally"])
	if err != nil {
		return nil, err
	}
	return NewTry(body, handlers, els, finally, start, d.next()), nil
}

func (d *decoder) with(obj map[string]any, start token.Pos) (Node, error) {
	rawItems, _ := obj["items"].([]any)
	items := make([]*WithItem, 0, len(rawItems))
	for _, ri := range rawItems {
		iobj, ok := ri.(map[string]any)
		if !ok {
			continue
		}
		istart := d.next()
		ctx, err := d.node(iobj["context_expr"])
		if err != nil {
			return nil, err
		}
		target, err := d.node(iobj["target"])
		if err != nil {
			return nil, err
		}
		items = append(items, NewWithItem(ctx, target, istart, d.next()))
	}
	body, err := d.nodeList(obj["body"])
	if err != nil {
		return nil, err
	}
	return NewWith(items, body, start, d.next()), nil
}

func (d *decoder) importStmt(obj map[string]any, start token.Pos) (Node, error) {
	rawNames, _ := obj["names"].([]any)
	names := make([]*ImportAlias, 0, len(rawNames))
	for _, rn := range rawNames {
		nobj, ok := rn.(map[string]any)
		if !ok {
			continue
		}
		nstart := d.next()
		var alias *Name
		if av, ok := nobj["alias"]; ok && av != nil {
			alias = NewName(str(av), nstart, d.next())
		}
		names = append(names, NewImportAlias(str(nobj["path"]), alias, nstart, d.next()))
	}
	return NewImport(names, start, d.next()), nil
}

func (d *decoder) importFrom(obj map[string]any, start token.Pos) (Node, error) {
	rawNames, _ := obj["names"].([]any)
	names := make([]*ImportFromName, 0, len(rawNames))
	for _, rn := range rawNames {
		nobj, ok := rn.(map[string]any)
		if !ok {
			continue
		}
		nstart := d.next()
		var alias *Name
		if av, ok := nobj["alias"]; ok && av != nil {
			alias = NewName(str(av), nstart, d.next())
		}
		names = append(names, NewImportFromName(str(nobj["name"]), alias, nstart, d.next()))
	}
	dottedPrefix := 0
	if v, ok := obj["dotted_prefix"].(float64); ok {
		dottedPrefix = int(v)
	}
	wildcard, _ := obj["wildcard"].(bool)
	return NewImportFrom(str(obj["module"]), dottedPrefix, names, wildcard, start, d.next()), nil
}

func (d *decoder) params(v any) ([]*Parameter, error) {
	rawParams, _ := v.([]any)
	out := make([]*Parameter, 0, len(rawParams))
	for _, rp := range rawParams {
		pobj, ok := rp.(map[string]any)
		if !ok {
			continue
		}
		pstart := d.next()
		target, err := d.node(pobj["target"])
		if err != nil {
			return nil, err
		}
		ann, err := d.node(pobj["annotation"])
		if err != nil {
			return nil, err
		}
		def, err := d.node(pobj["default"])
		if err != nil {
			return nil, err
		}
		out = append(out, NewParameter(target, ann, def, paramFlag(str(pobj["flag"])), pstart, d.next()))
	}
	return out, nil
}

func (d *decoder) decorators(v any) ([]*Decorator, error) {
	rawDecos, _ := v.([]any)
	out := make([]*Decorator, 0, len(rawDecos))
	for _, rd := range rawDecos {
		dstart := d.next()
		expr, err := d.node(rd)
		if err != nil {
			return nil, err
		}
		out = append(out, NewDecorator(expr, dstart, d.next()))
	}
	return out, nil
}

func paramFlag(s string) ParamFlag {
	switch s {
	case "positional_only":
		return ParamPositionalOnly
	case "keyword_only":
		return ParamKeywordOnly
	case "variadic_positional":
		return ParamVariadicPositional
	case "variadic_keyword":
		return ParamVariadicKeyword
	default:
		return ParamPlain
	}
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

func strList(v any) []string {
	items, _ := v.([]any)
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, str(it))
	}
	return out
}
