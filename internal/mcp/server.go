// Package mcp exposes the symbol-table core over the Model Context
// Protocol: tools that load a tree fixture, run the four passes, and answer
// symbol/scope/reference queries for editor and agent tooling.
//
// Built on github.com/mark3labs/mcp-go, following the same tool/resource
// registration shape used elsewhere in this module's MCP surface (see
// DESIGN.md).
package mcp

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/arborcode/semcore/pkg/semantic"
	"github.com/arborcode/semcore/pkg/stubs"
	"github.com/arborcode/semcore/pkg/syntax"
)

// Server holds the shared, read-only stub index every loaded fixture's
// Builder is constructed against, plus a small cache of already-built
// results keyed by file path (spec §5: one Builder per file, reused here
// across tool calls instead of rebuilding on every query).
type Server struct {
	mu     sync.RWMutex
	index  *stubs.MemoryIndex
	logger *slog.Logger
	cache  map[string]*semantic.Result
}

// NewServer constructs a Server seeded with the builtin stub index.
func NewServer(logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		index:  stubs.NewMemoryIndex(stubs.StandardBuiltins(), nil),
		logger: logger,
		cache:  make(map[string]*semantic.Result),
	}
}

// Build loads and analyzes a fixture, caching the result by path. Callers
// that need a fresh build after a fixture changes on disk should use
// Invalidate first.
func (s *Server) Build(path, pkg string) (*semantic.Result, error) {
	s.mu.RLock()
	if r, ok := s.cache[path]; ok {
		s.mu.RUnlock()
		return r, nil
	}
	s.mu.RUnlock()

	data, err := readFile(path)
	if err != nil {
		return nil, err
	}
	file, err := syntax.DecodeFile(data, path, pkg)
	if err != nil {
		return nil, err
	}
	b := semantic.NewBuilder(s.index, s.index, s.logger)
	result := b.Build(file)

	s.mu.Lock()
	s.cache[path] = result
	s.mu.Unlock()
	return result, nil
}

// Invalidate drops a cached result so the next Build call re-reads the
// fixture from disk.
func (s *Server) Invalidate(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.cache, path)
}

func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}
