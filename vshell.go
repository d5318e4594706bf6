// Package vshell is a virtual shell: command lines run against commands
// implemented in Go over an in-memory filesystem, with no host processes.
//
// The shell understands simple commands, pipelines, lists joined with ;
// && and ||, quoting, variable expansion and NAME=value assignments.
// Anything else, such as redirection, subshells or loops, is rejected with
// a diagnostic.
//
//	env, err := vshell.New(vshell.Options{
//	    Files: map[string]string{"/data.txt": "a b\nc d\n"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	res := env.Exec(ctx, "awk '{print $2}' /data.txt")
//	fmt.Print(res.Stdout) // b\nd\n
package vshell

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"maps"
	"path"
	"sort"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"github.com/kolkov/vshell/internal/applets/awk"
	"github.com/kolkov/vshell/internal/applets/cat"
	"github.com/kolkov/vshell/internal/applets/echo"
	"github.com/kolkov/vshell/internal/applets/which"
	"github.com/kolkov/vshell/internal/core"
)

// BinDir is where commands are registered on the filesystem.
const BinDir = "/bin"

// Options configures a new Env.
type Options struct {
	// FS is the filesystem commands see. Defaults to an empty in-memory
	// filesystem.
	FS afero.Fs

	// Files seeds the filesystem: path to content. Parent directories are
	// created as needed.
	Files map[string]string

	// Env holds initial variables. PATH defaults to /bin:/usr/bin.
	Env map[string]string

	// Dir is the working directory (default "/").
	Dir string

	// Logger receives debug logs of command dispatch. Defaults to a
	// discarding logger.
	Logger *log.Logger
}

// Result is the outcome of one command line.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Env is a shell session. Variables set by one command line are visible
// to the next. An Env is not safe for concurrent use.
type Env struct {
	fs       afero.Fs
	dir      string
	vars     map[string]string
	commands map[string]core.Command
	log      *log.Logger
}

// New creates a session, seeds its filesystem and registers the built-in
// commands under BinDir.
func New(opts Options) (*Env, error) {
	e := &Env{
		fs:  opts.FS,
		dir: opts.Dir,
		vars: map[string]string{
			"PATH": "/bin:/usr/bin",
			"HOME": "/",
		},
		commands: map[string]core.Command{
			"awk":   awk.Run,
			"cat":   cat.Run,
			"echo":  echo.Run,
			"which": which.Run,
			"true":  func(context.Context, *core.Process, []string) int { return core.ExitSuccess },
			"false": func(context.Context, *core.Process, []string) int { return core.ExitFailure },
		},
		log: opts.Logger,
	}
	if e.fs == nil {
		e.fs = afero.NewMemMapFs()
	}
	if e.dir == "" {
		e.dir = "/"
	}
	if e.log == nil {
		e.log = log.New(io.Discard)
	}
	maps.Copy(e.vars, opts.Env)
	e.vars["PWD"] = e.dir

	if err := e.fs.MkdirAll(BinDir, 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", BinDir, err)
	}
	for _, name := range e.Commands() {
		bin := path.Join(BinDir, name)
		if err := afero.WriteFile(e.fs, bin, []byte("#!vshell "+name+"\n"), 0o755); err != nil {
			return nil, fmt.Errorf("register %s: %w", name, err)
		}
	}

	names := make([]string, 0, len(opts.Files))
	for name := range opts.Files {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := e.WriteFile(name, opts.Files[name]); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// Exec runs a command line with empty standard input and returns what it
// printed.
func (e *Env) Exec(ctx context.Context, line string) Result {
	return e.ExecInput(ctx, line, "")
}

// ExecInput is like Exec with the given standard input.
func (e *Env) ExecInput(ctx context.Context, line, stdin string) Result {
	var stdout, stderr bytes.Buffer
	code := e.Run(ctx, line, bytes.NewBufferString(stdin), &stdout, &stderr)
	return Result{Stdout: stdout.String(), Stderr: stderr.String(), ExitCode: code}
}

// FS returns the session's filesystem.
func (e *Env) FS() afero.Fs {
	return e.fs
}

// Getenv returns a shell variable, or "".
func (e *Env) Getenv(name string) string {
	return e.vars[name]
}

// Setenv sets a shell variable.
func (e *Env) Setenv(name, value string) {
	e.vars[name] = value
}

// WriteFile creates or replaces a file, making parent directories.
func (e *Env) WriteFile(name, content string) error {
	abs := e.abs(name)
	if err := e.fs.MkdirAll(path.Dir(abs), 0o755); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := afero.WriteFile(e.fs, abs, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

// ReadFile returns the content of a file.
func (e *Env) ReadFile(name string) (string, error) {
	data, err := afero.ReadFile(e.fs, e.abs(name))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", name, err)
	}
	return string(data), nil
}

// Commands returns the names of the built-in commands, sorted.
func (e *Env) Commands() []string {
	names := make([]string, 0, len(e.commands))
	for name := range e.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (e *Env) abs(name string) string {
	p := core.Process{Dir: e.dir}
	return p.Abs(name)
}
