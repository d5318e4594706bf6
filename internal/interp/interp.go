package interp

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strconv"
	"strings"

	"github.com/kolkov/vshell/internal/ast"
	"github.com/kolkov/vshell/internal/runtime"
	"github.com/kolkov/vshell/internal/types"
)

// maxCallDepth bounds user function recursion.
const maxCallDepth = 1000

// Source is one named input stream. Name is what FILENAME reports.
type Source struct {
	Name   string
	Reader io.Reader
}

// Assign is a variable assignment applied before BEGIN, as with -v.
type Assign struct {
	Name  string
	Value string
}

// Config describes one run.
type Config struct {
	// Separators. Empty values keep the defaults.
	FS  string
	OFS string
	ORS string

	// Vars are assigned in order before BEGIN. Values become strnums.
	Vars []Assign

	// Args populate ARGV[1..] and ARGC.
	Args []string

	// Sources are read in order. When empty, Stdin is read.
	Sources []Source
	Stdin   io.Reader

	Output io.Writer
	Stderr io.Writer

	// POSIXRegex selects leftmost-longest matching.
	POSIXRegex bool

	// RegexFS makes FS values and split separators longer than one
	// character regular expressions instead of literal strings.
	RegexFS bool
}

// Interp runs a Program once.
type Interp struct {
	prog    *Program
	ctx     *ExecContext
	regexes map[string]*runtime.Regex
	out     *bufio.Writer
	stderr  io.Writer
	sources []Source
	done    <-chan struct{}
	cancel  func() error

	rangeActive []bool
	rand        *rand.Rand
	seed        float64

	exitCode int
	firstErr *EvalError
}

// Run executes p with cfg. Runtime errors in an action are written to
// cfg.Stderr and the run continues; the first one is returned at the end.
// An exit with a nonzero status returns *ExitError. Input errors and
// cancellation stop the run without END.
func (p *Program) Run(ctx context.Context, cfg *Config) error {
	in, err := newInterp(p, cfg)
	if err != nil {
		return err
	}
	in.done = ctx.Done()
	in.cancel = ctx.Err
	err = in.run(ctx)
	if ferr := in.out.Flush(); err == nil && ferr != nil {
		err = ferr
	}
	return err
}

func newInterp(p *Program, cfg *Config) (*Interp, error) {
	regexes := p.regexes
	if !cfg.POSIXRegex {
		regexes = make(map[string]*runtime.Regex, len(p.regexes))
		for pattern := range p.regexes {
			re, err := runtime.CompileWithConfig(pattern, runtime.RegexConfig{})
			if err != nil {
				return nil, err
			}
			regexes[pattern] = re
		}
	}

	out := cfg.Output
	if out == nil {
		out = io.Discard
	}
	stderr := cfg.Stderr
	if stderr == nil {
		stderr = io.Discard
	}

	cache := runtime.NewRegexCache(100, runtime.RegexConfig{POSIX: cfg.POSIXRegex})
	in := &Interp{
		prog:        p,
		ctx:         NewExecContext(cache),
		regexes:     regexes,
		out:         bufio.NewWriter(out),
		stderr:      stderr,
		rangeActive: make([]bool, len(p.ast.Rules)),
		rand:        rand.New(rand.NewSource(0)),
	}
	if cfg.RegexFS {
		in.ctx.fsRegexes = cache
	}
	if cfg.FS != "" {
		in.ctx.FS = cfg.FS
	}
	if cfg.OFS != "" {
		in.ctx.OFS = cfg.OFS
	}
	if cfg.ORS != "" {
		in.ctx.ORS = cfg.ORS
	}

	argv := in.ctx.Array("ARGV", true)
	argv["0"] = types.Str("awk")
	for i, a := range cfg.Args {
		argv[strconv.Itoa(i+1)] = types.StrNum(a)
	}
	in.ctx.SetGlobal("ARGC", types.Num(float64(len(cfg.Args)+1)))

	for _, a := range cfg.Vars {
		if err := in.assignVar(a.Name, a.Value); err != nil {
			return nil, err
		}
	}

	in.sources = cfg.Sources
	if len(in.sources) == 0 {
		stdin := cfg.Stdin
		if stdin == nil {
			stdin = strings.NewReader("")
		}
		in.sources = []Source{{Reader: stdin}}
	}
	return in, nil
}

func (in *Interp) assignVar(name, value string) error {
	if _, isFunc := in.prog.funcs[name]; isFunc {
		return fmt.Errorf("cannot assign to function name %q", name)
	}
	if isSpecial(name) {
		return in.setSpecial(name, types.StrNum(value))
	}
	in.ctx.SetGlobal(name, types.StrNum(value))
	return nil
}

func (in *Interp) run(ctx context.Context) error {
	exiting := false
	for _, b := range in.prog.ast.Begin {
		err := in.runOnce(b)
		if errors.As(err, new(*ExitError)) {
			exiting = true
			break
		}
		if err != nil {
			return err
		}
	}

	if !exiting && (len(in.prog.ast.Rules) > 0 || len(in.prog.ast.End) > 0) {
		err := in.readInput(ctx)
		if err != nil && !errors.As(err, new(*ExitError)) {
			return err
		}
	}

	for _, b := range in.prog.ast.End {
		err := in.runOnce(b)
		if errors.As(err, new(*ExitError)) {
			break
		}
		if err != nil {
			return err
		}
	}

	if in.exitCode != 0 {
		return &ExitError{Code: in.exitCode}
	}
	if in.firstErr != nil {
		return in.firstErr
	}
	return nil
}

// runOnce executes a BEGIN or END block.
func (in *Interp) runOnce(b *ast.BlockStmt) error {
	err := in.exec(b)
	if errors.Is(err, errNext) {
		err = evalErrorf(b.Pos(), "next used in BEGIN or END action")
	}
	var ee *EvalError
	if errors.As(err, &ee) {
		in.report(ee)
		return nil
	}
	return err
}

func (in *Interp) readInput(ctx context.Context) error {
	for _, src := range in.sources {
		in.ctx.Filename = src.Name
		in.ctx.FNR = 0
		rr := runtime.NewRecordReader(src.Name, src.Reader)
		for {
			if err := ctx.Err(); err != nil {
				return err
			}
			line, err := rr.Next()
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				return &InputError{Name: src.Name, Err: err}
			}
			in.ctx.NR++
			in.ctx.FNR++
			if err := in.ctx.SetRecord(types.StrNum(line)); err != nil {
				in.report(evalErrorf(in.prog.ast.Pos(), "invalid field separator %q: %v", in.ctx.FS, err))
				continue
			}
			if err := in.runRules(); err != nil {
				return err
			}
		}
	}
	return nil
}

// runRules runs every matching rule for the current record in order.
func (in *Interp) runRules() error {
	for i, rule := range in.prog.ast.Rules {
		ok, err := in.matches(i, rule)
		if err == nil && ok {
			err = in.action(rule)
		}
		if err == nil {
			continue
		}
		if errors.Is(err, errNext) {
			return nil
		}
		var ee *EvalError
		if errors.As(err, &ee) {
			in.report(ee)
			return nil
		}
		return err
	}
	return nil
}

func (in *Interp) matches(i int, rule *ast.Rule) (bool, error) {
	pat := rule.Pattern
	switch pat.Kind {
	case ast.PatternAlways:
		return true, nil
	case ast.PatternRange:
		if !in.rangeActive[i] {
			start, err := in.eval(pat.Expr)
			if err != nil || !start.Bool() {
				return false, err
			}
			in.rangeActive[i] = true
		}
		end, err := in.eval(pat.Until)
		if err != nil {
			return false, err
		}
		if end.Bool() {
			in.rangeActive[i] = false
		}
		return true, nil
	}
	v, err := in.eval(pat.Expr)
	if err != nil {
		return false, err
	}
	return v.Bool(), nil
}

func (in *Interp) action(rule *ast.Rule) error {
	if rule.Action == nil {
		return in.write(in.ctx.Record() + in.ctx.ORS)
	}
	return in.exec(rule.Action)
}

func (in *Interp) report(e *EvalError) {
	fmt.Fprintf(in.stderr, "awk: %v\n", e)
	if in.firstErr == nil {
		in.firstErr = e
	}
}

func (in *Interp) write(s string) error {
	_, err := in.out.WriteString(s)
	return err
}

// cancelled returns the context error once the run's context is done.
func (in *Interp) cancelled() error {
	select {
	case <-in.done:
		return in.cancel()
	default:
		return nil
	}
}
