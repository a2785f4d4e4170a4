// Command semcore is the CLI front-end over the symbol-table core: it
// reads tree fixtures from disk (pkg/syntax.DecodeFile), runs the four
// passes, and reports scopes, symbols, references, and soft failures.
package main

import (
	"github.com/arborcode/semcore/internal/cli"
	"github.com/arborcode/semcore/internal/cli/commands"
)

func main() {
	app := cli.NewApp()
	app.Initialize()

	runner := cli.NewRunner()
	runner.RegisterCommand("analyze", commands.AnalyzeCommand)
	runner.RegisterCommand("symbols", commands.SymbolsCommand)
	runner.RegisterCommand("refs", commands.RefsCommand)
	runner.RegisterCommand("version", commands.VersionCommand)
	runner.RegisterCommand("help", commands.HelpCommand)

	app.Run(runner)
}
