package commands

import (
	"fmt"
	"os"

	"github.com/arborcode/semcore/internal/cli"
)

// HelpCommand handles help requests for specific commands.
func HelpCommand(args []string) {
	if len(args) == 0 {
		cli.Usage()
		return
	}

	switch args[0] {
	case "analyze":
		fmt.Println(`Analyze Command - Build the scope graph and symbol table for one fixture

Usage: semcore analyze <file.json>

Runs the full binding, reference, disambiguation, and inference passes over
one tree fixture and reports the number of scopes and symbols found along
with any soft failures (unresolved names, imports, or base classes).

Examples:
  semcore analyze testdata/module.json
  semcore --json analyze testdata/module.json`)

	case "symbols":
		fmt.Println(`Symbols Command - List every symbol in a fixture

Usage: semcore symbols [--scope <kind>] <file.json>

Arguments:
  file.json   Tree fixture to analyze
  --scope     Restrict output to File, Function, Lambda, Class, or
              Comprehension scopes

Examples:
  semcore symbols testdata/module.json
  semcore symbols --scope Class testdata/module.json`)

	case "refs":
		fmt.Println(`Refs Command - Find references to a name

Usage: semcore refs <file.json> <name>

Prints every usage recorded against the given name across the fixture,
along with the usage kind (ASSIGNMENT_LHS, PARAMETER, FUNC_DECLARATION, ...).

Examples:
  semcore refs testdata/module.json User
  semcore --json refs testdata/module.json helper`)

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", args[0])
		cli.Usage()
	}
}
