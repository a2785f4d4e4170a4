package cli

import (
	"flag"
	"fmt"
	"os"
)

// Usage prints the usage information for the semcore command.
func Usage() {
	fmt.Fprintf(os.Stderr, `semcore - symbol-table and scope analysis for a dynamically-typed scripting language

Usage: semcore [options] <command> [arguments]

Commands:
  analyze <file.json>
    Build the scope graph and symbol table for one tree fixture and report
    soft failures (unresolved names, unresolved imports, unresolved bases).

  symbols [--scope <kind>] <file.json>
    List every symbol discovered in a tree fixture: name, kind, FQN, and
    usage count. --scope filters to File, Function, Lambda, Class, or
    Comprehension scopes.

  refs <file.json> <name>
    Print every usage recorded against the given name, with the usage kind
    and the scope it was found in.

  version
    Show application version.

  help [command]
    Show help for a specific command.

Options:
`)
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, `
Examples:
  semcore analyze testdata/module.json
  semcore --json symbols testdata/module.json
  semcore refs testdata/module.json User
`)
}
