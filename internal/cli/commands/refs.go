package commands

import (
	"fmt"
	"os"

	"github.com/arborcode/semcore/internal/cli"
)

// RefsCommand prints every usage recorded against a name (spec SPEC_FULL
// §4.9's "find references" convenience view): every scope's locals are
// searched for a symbol with the given name, and its usage list is printed
// with each usage's kind.
func RefsCommand(args []string) {
	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: semcore refs <file.json> <name>")
		os.Exit(1)
	}

	result, err := LoadAndBuild(args[0], *cli.GlobalFlags.Package)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	name := args[1]

	type usageOut struct {
		Kind string `json:"kind"`
	}
	type match struct {
		Scope  string     `json:"scope"`
		Kind   string     `json:"kind"`
		Usages []usageOut `json:"usages"`
	}
	var matches []match
	for _, scope := range result.AllScopes {
		for _, sym := range scope.Locals() {
			if sym.Name() != name {
				continue
			}
			m := match{Scope: scope.Kind().String(), Kind: sym.Kind().String()}
			for _, u := range sym.Usages() {
				m.Usages = append(m.Usages, usageOut{Kind: u.Kind.String()})
			}
			matches = append(matches, m)
		}
	}

	if *cli.GlobalFlags.Json {
		OutputJSON(matches)
		return
	}

	if len(matches) == 0 {
		fmt.Printf("No symbol named %q found.\n", name)
		return
	}
	for _, m := range matches {
		fmt.Printf("%s (%s scope), %d usage(s):\n", name, m.Scope, len(m.Usages))
		for _, u := range m.Usages {
			fmt.Printf("  - %s\n", u.Kind)
		}
	}
}
