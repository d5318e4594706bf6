// Package cat implements the cat command.
package cat

import (
	"bufio"
	"context"
	"io"

	"github.com/kolkov/vshell/internal/core"
)

var help = core.Help{
	Name:    "cat",
	Summary: "concatenate files and print on the standard output",
	Usage:   "cat [-nb] [file ...]",
	Options: []string{
		"-n         number all output lines",
		"-b         number non-blank output lines",
		"--help     display this help and exit",
	},
}

// Options holds cat command options.
type Options struct {
	NumberLines    bool // -n: number all lines
	NumberNonBlank bool // -b: number non-blank lines
}

// Run executes the cat command with the given arguments.
func Run(ctx context.Context, p *core.Process, args []string) int {
	if core.HasHelpFlag(args) {
		help.Write(p.Out)
		return core.ExitSuccess
	}

	opts := Options{}
	files := []string{}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			files = append(files, args[i+1:]...)
			break
		}
		if len(arg) > 1 && arg[0] == '-' {
			for _, c := range arg[1:] {
				switch c {
				case 'n':
					opts.NumberLines = true
				case 'b':
					opts.NumberNonBlank = true
				default:
					return core.UsageError(&p.Stdio, "cat", "invalid option -- '"+string(c)+"'")
				}
			}
		} else {
			files = append(files, arg)
		}
	}

	if opts.NumberNonBlank {
		opts.NumberLines = false
	}

	if len(files) == 0 {
		files = []string{"-"}
	}

	// Line numbers run on across files.
	lineNum := 0
	exitCode := core.ExitSuccess
	for _, file := range files {
		if ctx.Err() != nil {
			return core.ExitFailure
		}
		if err := catFile(p, file, &opts, &lineNum); err != nil {
			core.FileError(&p.Stdio, "cat", file, err)
			exitCode = core.ExitFailure
		}
	}

	return exitCode
}

func catFile(p *core.Process, name string, opts *Options, lineNum *int) error {
	var reader io.Reader

	if name == "-" {
		if p.In == nil {
			return nil
		}
		reader = p.In
	} else {
		f, err := p.Open(name)
		if err != nil {
			return err
		}
		defer f.Close()
		reader = f
	}

	if !opts.NumberLines && !opts.NumberNonBlank {
		_, err := io.Copy(p.Out, reader)
		return err
	}

	br := bufio.NewReader(reader)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			blank := line == "\n"
			if opts.NumberLines || (opts.NumberNonBlank && !blank) {
				*lineNum++
				p.Printf("%6d\t", *lineNum)
			}
			p.Print(line)
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
