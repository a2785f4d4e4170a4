package syntax

import (
	"testing"
)

func TestDecodeFile_SimpleAssign(t *testing.T) {
	src := `{
		"body": [
			{"kind": "assign",
			 "targets": [{"kind": "name", "value": "x"}],
			 "value": {"kind": "constant", "tag": "int"}}
		]
	}`

	file, err := DecodeFile([]byte(src), "mod.json", "pkg")
	if err != nil {
		t.Fatalf("DecodeFile: %v", err)
	}
	if file.Path != "mod.json" || file.Package != "pkg" {
		t.Fatalf("unexpected file identity: %+v", file)
	}
	if len(file.Body) != 1 {
		t.Fatalf("expected 1 top-level statement, got %d", len(file.Body))
	}
	assign, ok := file.Body[0].(*Assign)
	if !ok {
		t.Fatalf("expected *Assign, got %T", file.Body[0])
	}
	if len(assign.Targets) != 1 {
		t.Fatalf("expected 1 target, got %d", len(assign.Targets))
	}
	name, ok := assign.Targets[0].(*Name)
	if !ok || name.Value != "x" {
		t.Fatalf("expected target name %q, got %#v", "x", assign.Targets[0])
	}
	constant, ok := assign.Value.(*Constant)
	if !ok || constant.LiteralTag != "int" {
		t.Fatalf("expected constant tag %q, got %#v", "int", assign.Value)
	}
}

func TestDecodeFile_PositionsAreDistinctAndOrdered(t *testing.T) {
	src := `{
		"body": [
			{"kind": "assign", "targets": [{"kind": "name", "value": "a"}], "value": {"kind": "constant", "tag": "int"}},
			{"kind": "assign", "targets": [{"kind": "name", "value": "b"}], "value": {"kind": "constant", "tag": "int"}}
		]
	}`

	file, err := DecodeFile([]byte(src), "mod.json", "")
	if err != nil {
		t.Fatalf("DecodeFile: %v", err)
	}
	first := file.Body[0]
	second := file.Body[1]
	if first.Pos() >= second.Pos() {
		t.Fatalf("expected first.Pos() < second.Pos(), got %d, %d", first.Pos(), second.Pos())
	}
	if first.Pos() == first.End() {
		t.Fatalf("expected distinct start/end positions, got %d for both", first.Pos())
	}
}

func TestDecodeFile_ClassDefWithBasesAndMethods(t *testing.T) {
	src := `{
		"body": [
			{"kind": "classdef",
			 "name": {"kind": "name", "value": "Dog"},
			 "bases": [{"kind": "name", "value": "Animal"}],
			 "body": [
				{"kind": "funcdef",
				 "name": {"kind": "name", "value": "bark"},
				 "params": [{"target": {"kind": "name", "value": "self"}, "flag": "plain"}],
				 "body": []}
			 ]}
		]
	}`

	file, err := DecodeFile([]byte(src), "mod.json", "")
	if err != nil {
		t.Fatalf("DecodeFile: %v", err)
	}
	class, ok := file.Body[0].(*ClassDef)
	if !ok {
		t.Fatalf("expected *ClassDef, got %T", file.Body[0])
	}
	if class.Name.Value != "Dog" {
		t.Fatalf("expected class name Dog, got %q", class.Name.Value)
	}
	if len(class.Bases) != 1 {
		t.Fatalf("expected 1 base, got %d", len(class.Bases))
	}
	if len(class.Body) != 1 {
		t.Fatalf("expected 1 method, got %d", len(class.Body))
	}
	method, ok := class.Body[0].(*FuncDef)
	if !ok {
		t.Fatalf("expected *FuncDef, got %T", class.Body[0])
	}
	if len(method.Params) != 1 || method.Params[0].Flag != ParamPlain {
		t.Fatalf("unexpected params: %#v", method.Params)
	}
}

func TestDecodeFile_UnknownKindIsAnError(t *testing.T) {
	src := `{"body": [{"kind": "not-a-real-kind"}]}`
	if _, err := DecodeFile([]byte(src), "mod.json", ""); err == nil {
		t.Fatal("expected an error for an unknown node kind")
	}
}

func TestDecodeFile_MalformedJSON(t *testing.T) {
	if _, err := DecodeFile([]byte("not json"), "mod.json", ""); err == nil {
		t.Fatal("expected an error for malformed JSON")
	}
}
