// Package types holds the error and position vocabulary shared by semcore's
// syntax, stub, and semantic packages.
package types

import "fmt"

// ErrorKind classifies an AnalysisError.
type ErrorKind int

const (
	// UnresolvedName: a read could not be matched to any symbol in the scope chain.
	UnresolvedName ErrorKind = iota
	// UnresolvedImport: a module named by an import statement was absent from
	// both the stub index and the global-symbol index.
	UnresolvedImport
	// UnresolvedBaseClass: a class's base-class expression did not resolve to
	// a Class symbol.
	UnresolvedBaseClass
	// UnresolvedParameterType: an annotation expression could not be resolved
	// to a nominal type tag.
	UnresolvedParameterType
)

func (k ErrorKind) String() string {
	switch k {
	case UnresolvedName:
		return "unresolved-name"
	case UnresolvedImport:
		return "unresolved-import"
	case UnresolvedBaseClass:
		return "unresolved-base-class"
	case UnresolvedParameterType:
		return "unresolved-parameter-type"
	default:
		return "unknown"
	}
}

// AnalysisError records a soft failure (spec §7): an absence of information
// that the builder encodes as a nullable field rather than raising. Build
// never returns it as an error — it is collected in Result.SoftErrors (and
// logged at Debug level) so callers who want visibility into "why is this field empty" can
// have it, without the builder ever failing the file over it.
type AnalysisError struct {
	Kind    ErrorKind
	Message string
	File    string
	Line    int
	Column  int
	Cause   error
}

func (e *AnalysisError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.File, e.Line, e.Column, e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AnalysisError) Unwrap() error { return e.Cause }

// MalformedTreeError is a hard failure (spec §7): a syntax-tree shape that
// should be impossible in the position it was found. It is a programmer
// error in the upstream parser/collaborator, not a condition the builder
// can represent softly. Workspace-level orchestration recovers it at file
// granularity so one bad file does not abort a whole build.
type MalformedTreeError struct {
	Message string
	File    string
	NodeKind string
}

func (e *MalformedTreeError) Error() string {
	return fmt.Sprintf("%s: malformed tree: unexpected %s: %s", e.File, e.NodeKind, e.Message)
}
