package vshell

import (
	"bytes"
	"context"
	"io"
	"maps"
	"path"
	"strconv"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/syntax"

	"github.com/kolkov/vshell/internal/core"
)

// Run parses and executes one command line, streaming the given
// standard input and output. It returns the exit status of the last
// command that ran.
func (e *Env) Run(ctx context.Context, line string, stdin io.Reader, stdout, stderr io.Writer) int {
	stdio := core.Stdio{In: stdin, Out: stdout, Err: stderr}
	file, err := syntax.NewParser().Parse(strings.NewReader(line), "")
	if err != nil {
		stdio.Errorf("vshell: %v\n", err)
		return e.setStatus(core.ExitUsage)
	}

	status := core.ExitSuccess
	for _, st := range file.Stmts {
		if err := ctx.Err(); err != nil {
			stdio.Errorf("vshell: %v\n", err)
			return e.setStatus(130)
		}
		status = e.setStatus(e.stmt(ctx, st, stdio))
	}
	return status
}

func (e *Env) setStatus(code int) int {
	e.vars["?"] = strconv.Itoa(code)
	return code
}

func (e *Env) stmt(ctx context.Context, st *syntax.Stmt, stdio core.Stdio) int {
	switch {
	case st.Background, st.Coprocess:
		return unsupported(stdio, "background jobs")
	case len(st.Redirs) > 0:
		return unsupported(stdio, "redirection")
	}
	status := e.command(ctx, st.Cmd, stdio)
	if st.Negated {
		if status == core.ExitSuccess {
			return core.ExitFailure
		}
		return core.ExitSuccess
	}
	return status
}

func (e *Env) command(ctx context.Context, cmd syntax.Command, stdio core.Stdio) int {
	switch c := cmd.(type) {
	case nil:
		return core.ExitSuccess
	case *syntax.CallExpr:
		return e.call(ctx, c, stdio)
	case *syntax.BinaryCmd:
		switch c.Op {
		case syntax.AndStmt:
			if status := e.stmt(ctx, c.X, stdio); status != core.ExitSuccess {
				return e.setStatus(status)
			}
			return e.stmt(ctx, c.Y, stdio)
		case syntax.OrStmt:
			if status := e.stmt(ctx, c.X, stdio); status == core.ExitSuccess {
				return e.setStatus(status)
			}
			return e.stmt(ctx, c.Y, stdio)
		case syntax.Pipe, syntax.PipeAll:
			var buf bytes.Buffer
			left := stdio
			left.Out = &buf
			if c.Op == syntax.PipeAll {
				left.Err = &buf
			}
			e.setStatus(e.stmt(ctx, c.X, left))
			right := stdio
			right.In = &buf
			return e.stmt(ctx, c.Y, right)
		}
	}
	return unsupported(stdio, describe(cmd))
}

func (e *Env) call(ctx context.Context, c *syntax.CallExpr, stdio core.Stdio) int {
	cfg := &expand.Config{Env: e.environ()}

	assigns := make(map[string]string, len(c.Assigns))
	for _, a := range c.Assigns {
		if a.Array != nil || a.Index != nil || a.Naked {
			return unsupported(stdio, "arrays")
		}
		value := ""
		if a.Value != nil {
			if code, ok := checkWord(stdio, a.Value); !ok {
				return code
			}
			v, err := expand.Literal(cfg, a.Value)
			if err != nil {
				stdio.Errorf("vshell: %v\n", err)
				return core.ExitFailure
			}
			value = v
		}
		if a.Append {
			value = e.vars[a.Name.Value] + value
		}
		assigns[a.Name.Value] = value
	}

	if len(c.Args) == 0 {
		maps.Copy(e.vars, assigns)
		return core.ExitSuccess
	}

	args := make([]string, 0, len(c.Args))
	for _, w := range c.Args {
		if code, ok := checkWord(stdio, w); !ok {
			return code
		}
		s, err := expand.Literal(cfg, w)
		if err != nil {
			stdio.Errorf("vshell: %v\n", err)
			return core.ExitFailure
		}
		args = append(args, s)
	}

	env := maps.Clone(e.vars)
	maps.Copy(env, assigns)
	return e.exec(ctx, args, env, stdio)
}

func (e *Env) exec(ctx context.Context, args []string, env map[string]string, stdio core.Stdio) int {
	name := args[0]
	cmd, ok := e.lookup(name)
	if !ok {
		stdio.Errorf("vshell: %s: command not found\n", name)
		return core.ExitNotFound
	}
	p := &core.Process{Stdio: stdio, FS: e.fs, Dir: e.dir, Env: env, Log: e.log}
	e.log.Debug("exec", "cmd", name, "args", args[1:])
	status := cmd(ctx, p, args[1:])
	e.log.Debug("exit", "cmd", name, "status", status)
	return status
}

// lookup finds a command by name. A name containing a slash must refer to
// a registered command file on the filesystem.
func (e *Env) lookup(name string) (core.Command, bool) {
	if !strings.Contains(name, "/") {
		cmd, ok := e.commands[name]
		return cmd, ok
	}
	abs := e.abs(name)
	info, err := e.fs.Stat(abs)
	if err != nil || info.IsDir() {
		return nil, false
	}
	cmd, ok := e.commands[path.Base(abs)]
	return cmd, ok
}

func (e *Env) environ() expand.Environ {
	pairs := make([]string, 0, len(e.vars))
	for k, v := range e.vars {
		pairs = append(pairs, k+"="+v)
	}
	return expand.ListEnviron(pairs...)
}

// checkWord rejects expansions that would need a subprocess or a
// directory listing.
func checkWord(stdio core.Stdio, w *syntax.Word) (int, bool) {
	var what string
	syntax.Walk(w, func(n syntax.Node) bool {
		if what != "" {
			return false
		}
		switch n.(type) {
		case *syntax.CmdSubst:
			what = "command substitution"
		case *syntax.ProcSubst:
			what = "process substitution"
		}
		return true
	})
	if what == "" {
		for _, part := range w.Parts {
			if lit, ok := part.(*syntax.Lit); ok && hasGlob(lit.Value) {
				what = "globbing"
				break
			}
		}
	}
	if what != "" {
		return unsupported(stdio, what), false
	}
	return core.ExitSuccess, true
}

// hasGlob reports whether an unquoted literal holds an unescaped pattern
// character.
func hasGlob(lit string) bool {
	for i := 0; i < len(lit); i++ {
		switch lit[i] {
		case '\\':
			i++
		case '*', '?', '[':
			return true
		}
	}
	return false
}

func unsupported(stdio core.Stdio, what string) int {
	stdio.Errorf("vshell: %s not supported\n", what)
	return core.ExitUsage
}

func describe(cmd syntax.Command) string {
	switch cmd.(type) {
	case *syntax.Subshell:
		return "subshells"
	case *syntax.Block:
		return "command groups"
	case *syntax.IfClause:
		return "if statements"
	case *syntax.WhileClause, *syntax.ForClause:
		return "loops"
	case *syntax.CaseClause:
		return "case statements"
	case *syntax.FuncDecl:
		return "functions"
	case *syntax.ArithmCmd, *syntax.LetClause:
		return "arithmetic commands"
	case *syntax.TestClause:
		return "test expressions"
	case *syntax.DeclClause:
		return "declarations"
	}
	return "this syntax"
}
