package syntax

import "go/token"

// FileSet is reused verbatim from go/token: it maps the byte-offset-based
// token.Pos values stored on every node to line/column pairs. The mechanism
// is language-agnostic (it only needs line-start offsets), so it works
// unchanged for the source language's tree even though go/token was built
// for Go source.
type FileSet = token.FileSet

// NewFileSet constructs a FileSet and adds a single file of the given size,
// returning the FileSet and the base Pos new nodes should offset from.
func NewFileSet(filename string, size int) (*FileSet, token.Pos) {
	fset := token.NewFileSet()
	f := fset.AddFile(filename, fset.Base(), size)
	return fset, token.Pos(f.Base())
}

// Position renders a Pos as a human-readable location using fset, or the
// zero Position when fset is nil or pos is NoPos.
func Position(fset *FileSet, pos token.Pos) token.Position {
	if fset == nil || pos == token.NoPos {
		return token.Position{}
	}
	return fset.Position(pos)
}
