// Package core provides the process model shared by the shell's commands.
package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
)

// Exit codes following POSIX shell conventions
const (
	ExitSuccess  = 0
	ExitFailure  = 1
	ExitUsage    = 2
	ExitNotFound = 127
)

// Stdio holds the standard I/O streams of one command.
type Stdio struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Errorf writes a formatted error message to stderr.
func (s *Stdio) Errorf(format string, args ...any) {
	fmt.Fprintf(s.Err, format, args...)
}

// Printf writes a formatted message to stdout.
func (s *Stdio) Printf(format string, args ...any) {
	fmt.Fprintf(s.Out, format, args...)
}

// Print writes a message to stdout.
func (s *Stdio) Print(args ...any) {
	fmt.Fprint(s.Out, args...)
}

// Println writes a message to stdout with a newline.
func (s *Stdio) Println(args ...any) {
	fmt.Fprintln(s.Out, args...)
}

// Process is the environment a command runs in: its streams, the virtual
// filesystem, the working directory and the variables visible to it.
type Process struct {
	Stdio
	FS  afero.Fs
	Dir string
	Env map[string]string
	Log *log.Logger
}

// Command is a program the shell can run. It returns the exit status.
type Command func(ctx context.Context, p *Process, args []string) int

// Getenv returns the value of an environment variable, or "".
func (p *Process) Getenv(name string) string {
	return p.Env[name]
}

// Abs resolves name against the working directory.
func (p *Process) Abs(name string) string {
	if path.IsAbs(name) {
		return path.Clean(name)
	}
	dir := p.Dir
	if dir == "" {
		dir = "/"
	}
	return path.Join(dir, name)
}

// Open opens a regular file for reading.
func (p *Process) Open(name string) (io.ReadCloser, error) {
	abs := p.Abs(name)
	info, err := p.FS.Stat(abs)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, &fs.PathError{Op: "open", Path: name, Err: ErrIsDir}
	}
	return p.FS.Open(abs)
}

// Exists reports whether name exists.
func (p *Process) Exists(name string) bool {
	ok, err := afero.Exists(p.FS, p.Abs(name))
	return ok && err == nil
}

// ErrIsDir is returned when a directory is opened as a file.
var ErrIsDir = errors.New("Is a directory")

// UsageError prints a usage error and returns ExitUsage.
func UsageError(stdio *Stdio, command, message string) int {
	stdio.Errorf("%s: %s\n", command, message)
	return ExitUsage
}

// FileError prints a file-related error and returns ExitFailure.
func FileError(stdio *Stdio, command, name string, err error) int {
	stdio.Errorf("%s: %s: %s\n", command, name, Describe(err))
	return ExitFailure
}

// Describe returns the conventional text for a filesystem error.
func Describe(err error) string {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "No such file or directory"
	case errors.Is(err, fs.ErrPermission):
		return "Permission denied"
	case errors.Is(err, ErrIsDir):
		return ErrIsDir.Error()
	}
	var pe *fs.PathError
	if errors.As(err, &pe) {
		return pe.Err.Error()
	}
	return err.Error()
}

// Help describes a command for --help output.
type Help struct {
	Name    string
	Summary string
	Usage   string
	Options []string
}

// Write prints the help text.
func (h Help) Write(w io.Writer) {
	fmt.Fprintf(w, "%s - %s\n\nUsage: %s\n", h.Name, h.Summary, h.Usage)
	if len(h.Options) > 0 {
		fmt.Fprintf(w, "\nOptions:\n")
		for _, opt := range h.Options {
			fmt.Fprintf(w, "  %s\n", opt)
		}
	}
}

// HasHelpFlag reports whether args ask for help before any "--".
func HasHelpFlag(args []string) bool {
	for _, a := range args {
		if a == "--" {
			return false
		}
		if a == "--help" {
			return true
		}
	}
	return false
}

// SplitPath splits a PATH value into its non-empty directories.
func SplitPath(value string) []string {
	var dirs []string
	for _, d := range strings.Split(value, ":") {
		if d != "" {
			dirs = append(dirs, d)
		}
	}
	return dirs
}
