// Package which implements the which command.
package which

import (
	"context"
	"path"

	"github.com/kolkov/vshell/internal/core"
)

const defaultPath = "/bin:/usr/bin"

var help = core.Help{
	Name:    "which",
	Summary: "locate a command",
	Usage:   "which [-as] program ...",
	Options: []string{
		"-a         List all instances of executables found",
		"-s         No output, just return 0 if found, 1 if not",
		"--help     display this help and exit",
	},
}

// Run searches PATH for each named program and prints the paths found.
// The status is 1 if any name was not found.
func Run(_ context.Context, p *core.Process, args []string) int {
	if core.HasHelpFlag(args) {
		help.Write(p.Out)
		return core.ExitSuccess
	}

	showAll, silent := false, false
	var names []string
	for _, arg := range args {
		switch {
		case arg == "-a":
			showAll = true
		case arg == "-s":
			silent = true
		case arg == "-as" || arg == "-sa":
			showAll, silent = true, true
		case len(arg) > 1 && arg[0] == '-':
			// Unknown options are ignored.
		default:
			names = append(names, arg)
		}
	}
	if len(names) == 0 {
		return core.ExitFailure
	}

	pathEnv := p.Getenv("PATH")
	if pathEnv == "" {
		pathEnv = defaultPath
	}
	dirs := core.SplitPath(pathEnv)

	allFound := true
	for _, name := range names {
		found := false
		for _, dir := range dirs {
			full := path.Join(dir, name)
			if !p.Exists(full) {
				continue
			}
			found = true
			if !silent {
				p.Println(full)
			}
			if !showAll {
				break
			}
		}
		if !found {
			allFound = false
		}
	}

	if allFound {
		return core.ExitSuccess
	}
	return core.ExitFailure
}
