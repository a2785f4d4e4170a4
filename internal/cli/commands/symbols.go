package commands

import (
	"flag"
	"fmt"
	"os"

	"github.com/arborcode/semcore/internal/cli"
)

// SymbolsCommand lists every symbol in a tree fixture's arena, optionally
// filtered to one scope kind (spec §6's "localVariableSymbols" /
// "class-fields" surface, generalized to the whole file).
func SymbolsCommand(args []string) {
	fs := flag.NewFlagSet("symbols", flag.ExitOnError)
	scopeFilter := fs.String("scope", "", "restrict to scopes of this kind (File, Function, Lambda, Class, Comprehension)")
	fs.Parse(args)
	rest := fs.Args()

	if len(rest) < 1 {
		fmt.Fprintln(os.Stderr, "usage: semcore symbols [--scope <kind>] <file.json>")
		os.Exit(1)
	}

	result, err := LoadAndBuild(rest[0], *cli.GlobalFlags.Package)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	type entry struct {
		Name   string `json:"name"`
		Kind   string `json:"kind"`
		FQN    string `json:"fqn,omitempty"`
		Usages int    `json:"usages"`
		Scope  string `json:"scope"`
	}
	var entries []entry
	for _, scope := range result.AllScopes {
		if *scopeFilter != "" && scope.Kind().String() != *scopeFilter {
			continue
		}
		for _, sym := range scope.Locals() {
			e := entry{Name: sym.Name(), Kind: sym.Kind().String(), Usages: len(sym.Usages()), Scope: scope.Kind().String()}
			if fqn, ok := sym.FullyQualifiedName(); ok {
				e.FQN = fqn
			}
			entries = append(entries, e)
		}
	}

	if *cli.GlobalFlags.Json {
		OutputJSON(entries)
		return
	}

	fmt.Printf("Symbols in %s (%d):\n", result.File.Path, len(entries))
	for _, e := range entries {
		fqn := e.FQN
		if fqn == "" {
			fqn = "-"
		}
		fmt.Printf("  [%s] %-20s kind=%-10s fqn=%-30s usages=%d\n", e.Scope, e.Name, e.Kind, fqn, e.Usages)
	}
}
