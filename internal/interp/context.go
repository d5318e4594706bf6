package interp

import (
	"github.com/kolkov/vshell/internal/runtime"
	"github.com/kolkov/vshell/internal/types"
)

// ExecContext is the mutable state of one run: the current record and its
// fields, the built-in variables and the user variables. It is owned by
// the driver and never shared between runs.
type ExecContext struct {
	NR       int
	FNR      int
	Filename string

	FS      string
	OFS     string
	ORS     string
	SUBSEP  string
	OFMT    string
	CONVFMT string
	RSTART  int
	RLENGTH int

	record types.Value
	fields []types.Value // $1..$NF

	globals map[string]types.Value
	arrays  map[string]map[string]types.Value
	frames  []*frame

	regexes *runtime.RegexCache

	// fsRegexes is set when FS values longer than one character are
	// regular expressions. When nil they are literal strings.
	fsRegexes *runtime.RegexCache
}

// frame holds the parameters of one function call.
type frame struct {
	fn      *function
	scalars []types.Value
	arrays  []map[string]types.Value
}

// NewExecContext returns a context with the default separators and
// formats.
func NewExecContext(regexes *runtime.RegexCache) *ExecContext {
	return &ExecContext{
		FS:      " ",
		OFS:     " ",
		ORS:     "\n",
		SUBSEP:  "\x1c",
		OFMT:    "%.6g",
		CONVFMT: "%.6g",
		RLENGTH: -1,
		globals: make(map[string]types.Value),
		arrays:  make(map[string]map[string]types.Value),
		regexes: regexes,
	}
}

// NF returns the number of fields in the current record.
func (c *ExecContext) NF() int {
	return len(c.fields)
}

// Record returns $0.
func (c *ExecContext) Record() string {
	return c.record.Str(c.CONVFMT)
}

// SetRecord replaces $0 and splits it with the current FS.
func (c *ExecContext) SetRecord(v types.Value) error {
	c.record = v
	parts, err := runtime.SplitFields(v.Str(c.CONVFMT), c.FS, c.fsRegexes)
	if err != nil {
		c.fields = c.fields[:0]
		return err
	}
	c.fields = c.fields[:0]
	for _, p := range parts {
		c.fields = append(c.fields, types.StrNum(p))
	}
	return nil
}

// Field returns $i. Fields past NF and negative indexes are uninitialized.
func (c *ExecContext) Field(i int) types.Value {
	switch {
	case i == 0:
		return c.record
	case i > 0 && i <= len(c.fields):
		return c.fields[i-1]
	}
	return types.Null()
}

// SetField assigns $i for i >= 0. Assigning past NF adds empty fields;
// any field assignment rebuilds $0 with OFS.
func (c *ExecContext) SetField(i int, v types.Value) error {
	switch {
	case i < 0:
		return nil
	case i == 0:
		return c.SetRecord(v)
	}
	for len(c.fields) < i {
		c.fields = append(c.fields, types.StrNum(""))
	}
	c.fields[i-1] = v
	c.rebuild()
	return nil
}

// SetNF truncates or extends the field list and rebuilds $0.
func (c *ExecContext) SetNF(n int) {
	if n < len(c.fields) {
		c.fields = c.fields[:n]
	}
	for len(c.fields) < n {
		c.fields = append(c.fields, types.StrNum(""))
	}
	c.rebuild()
}

func (c *ExecContext) rebuild() {
	parts := make([]string, len(c.fields))
	for i, f := range c.fields {
		parts[i] = f.Str(c.CONVFMT)
	}
	c.record = types.StrNum(runtime.Join(parts, c.OFS))
}

// Global returns a user variable outside any function.
func (c *ExecContext) Global(name string) types.Value {
	return c.globals[name]
}

// SetGlobal assigns a user variable.
func (c *ExecContext) SetGlobal(name string, v types.Value) {
	c.globals[name] = v
}

// Array returns the global array name, creating it when create is set.
func (c *ExecContext) Array(name string, create bool) map[string]types.Value {
	arr, ok := c.arrays[name]
	if !ok && create {
		arr = make(map[string]types.Value)
		c.arrays[name] = arr
	}
	return arr
}

func (c *ExecContext) top() *frame {
	if len(c.frames) == 0 {
		return nil
	}
	return c.frames[len(c.frames)-1]
}
