package commands

import (
	"fmt"

	"github.com/arborcode/semcore/internal/cli"
)

// VersionCommand handles the version command.
func VersionCommand(args []string) {
	if len(args) > 0 {
		fmt.Println(`Version Command - Show application version

Usage: semcore version

Shows the current version of semcore.`)
		return
	}

	cli.ShowVersion()
}
