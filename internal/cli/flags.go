package cli

import "flag"

// Flags holds all command line flags.
type Flags struct {
	Version   *bool
	Workspace *string
	Package   *string
	Json      *bool
	Verbose   *bool
}

// GlobalFlags holds the parsed command line flags.
var GlobalFlags *Flags

// InitFlags initializes all command line flags.
func InitFlags() *Flags {
	return &Flags{
		Version:   flag.Bool("version", false, "Show version information"),
		Workspace: flag.String("workspace", ".", "Directory of *.json tree fixtures (accepted; no command reads it)"),
		Package:   flag.String("package", "", "Dotted package path new files are loaded under"),
		Json:      flag.Bool("json", false, "Output results in JSON format"),
		Verbose:   flag.Bool("verbose", false, "Verbose output (accepted; no command reads it)"),
	}
}

// ParseFlags parses command line flags with custom usage.
func ParseFlags(usage func()) {
	if GlobalFlags == nil {
		GlobalFlags = InitFlags()
	}
	flag.Usage = usage
	flag.Parse()
}
