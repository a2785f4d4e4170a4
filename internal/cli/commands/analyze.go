package commands

import (
	"fmt"
	"os"

	"github.com/arborcode/semcore/internal/cli"
)

// AnalyzeCommand builds a tree fixture's scope graph and symbol table and
// reports every soft failure recorded along the way (spec §7).
func AnalyzeCommand(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "usage: semcore analyze <file.json>")
		os.Exit(1)
	}

	result, err := LoadAndBuild(args[0], *cli.GlobalFlags.Package)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *cli.GlobalFlags.Json {
		type errOut struct {
			Kind    string `json:"kind"`
			Message string `json:"message"`
		}
		out := struct {
			File       string   `json:"file"`
			Scopes     int      `json:"scopes"`
			Symbols    int      `json:"symbols"`
			SoftErrors []errOut `json:"soft_errors"`
		}{
			File:    result.File.Path,
			Scopes:  len(result.AllScopes),
			Symbols: len(result.AllSymbols),
		}
		for _, e := range result.SoftErrors {
			out.SoftErrors = append(out.SoftErrors, errOut{Kind: e.Kind.String(), Message: e.Message})
		}
		OutputJSON(out)
		return
	}

	fmt.Printf("Analysis: %s\n", result.File.Path)
	fmt.Printf("==========\n")
	fmt.Printf("Scopes:  %d\n", len(result.AllScopes))
	fmt.Printf("Symbols: %d\n", len(result.AllSymbols))

	if len(result.SoftErrors) == 0 {
		fmt.Println("\nNo soft failures.")
		return
	}
	fmt.Printf("\nSoft Failures (%d):\n", len(result.SoftErrors))
	for _, e := range result.SoftErrors {
		fmt.Printf("  %s: %s\n", e.Kind, e.Message)
	}
}
