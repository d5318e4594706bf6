package awk

import (
	"bytes"
	"context"
	"io"

	"github.com/kolkov/vshell/internal/ast"
	"github.com/kolkov/vshell/internal/interp"
)

// Program represents a parsed program ready for execution.
// It is safe for concurrent use; each call to Run creates an
// independent execution context.
type Program struct {
	prog   *interp.Program
	source string // Original source for debugging
}

// Source is a named input. Name is reported through FILENAME.
type Source struct {
	Name   string
	Reader io.Reader
}

// Run executes the program with the given input and configuration.
//
// If config is nil, default configuration is used.
// If config.Output is set, output is written there and the returned
// string will be empty. Otherwise the output is returned even when
// err is non-nil, so runtime errors and exit codes keep what was
// printed before them.
func (p *Program) Run(input io.Reader, config *Config) (string, error) {
	return p.RunContext(context.Background(), input, config)
}

// RunContext is like Run but stops when ctx is done. A cancelled run
// returns ctx.Err() and skips END.
func (p *Program) RunContext(ctx context.Context, input io.Reader, config *Config) (string, error) {
	var sources []Source
	if input != nil {
		sources = []Source{{Reader: input}}
	}
	return p.RunSources(ctx, sources, config)
}

// RunSources reads the sources in order, as if they were named on a
// command line. NR counts across all of them and FNR restarts for each.
// With no sources, rules see no input.
func (p *Program) RunSources(ctx context.Context, sources []Source, config *Config) (string, error) {
	var cfg Config
	if config != nil {
		cfg = *config
	}
	cfg.applyDefaults()

	var outputBuf *bytes.Buffer
	output := cfg.Output
	if output == nil {
		outputBuf = &bytes.Buffer{}
		output = outputBuf
	}

	ic := cfg.interpConfig(output)
	ic.Stdin = bytes.NewReader(nil)
	for _, s := range sources {
		ic.Sources = append(ic.Sources, interp.Source{Name: s.Name, Reader: s.Reader})
	}

	err := publicError(p.prog.Run(ctx, ic))
	if outputBuf != nil {
		return outputBuf.String(), err
	}
	return "", err
}

// Source returns the original program source code.
func (p *Program) Source() string {
	return p.source
}

// Dump returns the parsed program printed back as source, with every
// binary operation parenthesized. Useful for checking how an expression
// was grouped.
func (p *Program) Dump() string {
	return ast.String(p.prog.AST())
}
