package awk

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"

	"github.com/kolkov/vshell/internal/lexer"
)

const (
	shortUsage = "usage: awk [-F fs] [-v var=value] [-f progfile | 'prog'] [file ...]"
	longUsage  = `awk - pattern scanning and processing language

Options:
  -F fs             field separator (default " "; -Ffs also accepted)
  -v var=value      assign var before BEGIN (repeatable)
  -f progfile       read the program from progfile (repeatable)
  --                end of options
  --help            display this help and exit
  --version         output version information and exit

Input files are read in order; "-" means standard input.
`
)

// Opener opens a named input file or program file.
type Opener func(name string) (io.ReadCloser, error)

// Exec runs the command line args (without the leading "awk") and returns
// the exit status. Every input file is opened before the program starts,
// so a missing file is reported without running anything.
//
// Exit status is 0 on success, the program's own status after exit n,
// 1 for usage and file errors, and 2 for syntax and runtime errors.
func Exec(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer, open Opener) int {
	errorf := func(format string, a ...any) int {
		fmt.Fprintf(stderr, "awk: "+format+"\n", a...)
		return 1
	}

	// Options are scanned by hand rather than with a flag package so that
	// attached values like -F: work as POSIX allows.
	var progFiles []string
	var vars []string
	fieldSep := ""
	i := 0
	for ; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			i++
			break
		}
		if arg == "-" || !strings.HasPrefix(arg, "-") {
			break
		}
		switch arg {
		case "-F", "-v", "-f":
			if i+1 >= len(args) {
				return errorf("flag needs an argument: %s", arg)
			}
			i++
			switch arg {
			case "-F":
				fieldSep = args[i]
			case "-v":
				vars = append(vars, args[i])
			default:
				progFiles = append(progFiles, args[i])
			}
		case "-h", "--help":
			fmt.Fprintf(stdout, "%s\n%s", shortUsage, longUsage)
			return 0
		case "-version", "--version":
			fmt.Fprintf(stdout, "awk version %s\n", Version)
			return 0
		default:
			switch {
			case strings.HasPrefix(arg, "-F"):
				fieldSep = arg[2:]
			case strings.HasPrefix(arg, "-v"):
				vars = append(vars, arg[2:])
			case strings.HasPrefix(arg, "-f"):
				progFiles = append(progFiles, arg[2:])
			default:
				fmt.Fprintf(stderr, "awk: flag provided but not defined: %s\n%s\n", arg, shortUsage)
				return 1
			}
		}
	}
	rest := args[i:]

	var program string
	if len(progFiles) > 0 {
		var sb strings.Builder
		for _, name := range progFiles {
			content, err := readAll(name, stdin, open)
			if err != nil {
				return errorf("%s", fileError(name, err))
			}
			sb.Write(content)
			sb.WriteByte('\n')
		}
		program = sb.String()
	} else if len(rest) > 0 {
		program, rest = rest[0], rest[1:]
	} else {
		fmt.Fprintf(stderr, "awk: missing program\n%s\n", shortUsage)
		return 1
	}

	config := &Config{FS: fieldSep, Output: stdout, Stderr: stderr, Args: rest}
	if len(vars) > 0 {
		config.Variables = make(map[string]string, len(vars))
		for _, v := range vars {
			name, value, ok := strings.Cut(v, "=")
			if !ok || name == "" {
				return errorf("invalid variable assignment: %s (expected var=value)", v)
			}
			config.Variables[name] = lexer.Unescape(value)
		}
	}

	sources := make([]Source, 0, len(rest))
	for _, name := range rest {
		if name == "-" {
			sources = append(sources, Source{Name: "-", Reader: stdin})
			continue
		}
		if open == nil {
			return errorf("%s: No such file or directory", name)
		}
		f, err := open(name)
		if err != nil {
			return errorf("%s", fileError(name, err))
		}
		defer f.Close()
		sources = append(sources, Source{Name: name, Reader: f})
	}
	if len(sources) == 0 && stdin != nil {
		sources = []Source{{Reader: stdin}}
	}

	prog, err := Compile(program)
	if err != nil {
		fmt.Fprintf(stderr, "awk: %v\n", err)
		return 2
	}
	_, err = prog.RunSources(ctx, sources, config)
	return exitStatus(err, stderr)
}

// exitStatus maps a run error to a process status. Runtime errors were
// already written to stderr as they happened.
func exitStatus(err error, stderr io.Writer) int {
	if err == nil {
		return 0
	}
	if code, ok := IsExitError(err); ok {
		return code
	}
	var ee *EvalError
	if errors.As(err, &ee) {
		return 2
	}
	fmt.Fprintf(stderr, "awk: %v\n", err)
	return 2
}

func readAll(name string, stdin io.Reader, open Opener) ([]byte, error) {
	if name == "-" {
		if stdin == nil {
			return nil, nil
		}
		return io.ReadAll(stdin)
	}
	if open == nil {
		return nil, fs.ErrNotExist
	}
	f, err := open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// fileError formats an open failure the way the shell reports it.
func fileError(name string, err error) string {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return name + ": No such file or directory"
	case errors.Is(err, fs.ErrPermission):
		return name + ": Permission denied"
	}
	var pe *fs.PathError
	if errors.As(err, &pe) {
		return fmt.Sprintf("%s: %v", name, pe.Err)
	}
	return fmt.Sprintf("%s: %v", name, err)
}
