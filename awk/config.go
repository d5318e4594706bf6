package awk

import (
	"io"
	"sort"

	"github.com/kolkov/vshell/internal/interp"
)

// Config holds configuration options for program execution.
type Config struct {
	// FS is the input field separator (default: " ").
	// A single space splits on runs of blanks, tabs and newlines and
	// ignores leading and trailing ones. Any other value splits on
	// exactly that string and keeps empty fields.
	FS string

	// OFS is the output field separator (default: " ").
	// Used between print arguments and when $0 is rebuilt.
	OFS string

	// ORS is the output record separator (default: "\n").
	// Appended after each print statement.
	ORS string

	// Variables contains pre-defined variables, set before BEGIN runs.
	// Values are treated like input, so numeric-looking ones compare
	// as numbers. They are used as given; escape processing is left to
	// the caller (Exec decodes -v values the way string literals are).
	// Example: map[string]string{"threshold": "100", "prefix": "LOG:"}
	Variables map[string]string

	// Output is the writer for print/printf statements.
	// If nil, output is captured and returned from Run.
	Output io.Writer

	// Stderr receives one line per runtime error.
	// If nil, diagnostics are discarded.
	Stderr io.Writer

	// Args become ARGV[1..]; ARGV[0] is "awk".
	Args []string

	// POSIXRegex enables POSIX leftmost-longest regex matching.
	// When nil or true, matches follow POSIX ERE semantics.
	// When false, uses leftmost-first matching (faster, Perl-like).
	POSIXRegex *bool

	// RegexFS makes FS values longer than one character, and the same
	// separators passed to split(), regular expressions. A regex literal
	// given to split() is always a regular expression.
	RegexFS bool
}

// applyDefaults fills in default values for unset Config fields.
func (c *Config) applyDefaults() {
	if c.FS == "" {
		c.FS = " "
	}
	if c.OFS == "" {
		c.OFS = " "
	}
	if c.ORS == "" {
		c.ORS = "\n"
	}
}

// interpConfig builds the evaluator configuration. Variables are applied
// in name order so runs are reproducible.
func (c *Config) interpConfig(output io.Writer) *interp.Config {
	names := make([]string, 0, len(c.Variables))
	for name := range c.Variables {
		names = append(names, name)
	}
	sort.Strings(names)
	vars := make([]interp.Assign, len(names))
	for i, name := range names {
		vars[i] = interp.Assign{Name: name, Value: c.Variables[name]}
	}

	posix := true
	if c.POSIXRegex != nil {
		posix = *c.POSIXRegex
	}
	return &interp.Config{
		FS:         c.FS,
		OFS:        c.OFS,
		ORS:        c.ORS,
		Vars:       vars,
		Args:       c.Args,
		Output:     output,
		Stderr:     c.Stderr,
		POSIXRegex: posix,
		RegexFS:    c.RegexFS,
	}
}
