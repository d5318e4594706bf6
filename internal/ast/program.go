package ast

// Program is a parsed program. It is read-only once the parser returns it.
type Program struct {
	Loc

	// Begin blocks run once, in source order, before any input is read.
	Begin []*BlockStmt

	// Rules run for every record, in source order. Every matching rule
	// fires, not only the first.
	Rules []*Rule

	// End blocks run once after input is exhausted.
	End []*BlockStmt

	// Funcs holds the user-defined functions in declaration order.
	Funcs []*FuncDecl
}

// PatternKind tells how a rule decides whether it applies to a record.
type PatternKind uint8

const (
	// PatternAlways matches every record: a bare { action }.
	PatternAlways PatternKind = iota
	// PatternRegex matches when Expr, a *RegexLit, matches $0.
	PatternRegex
	// PatternExpr matches when Expr evaluates to a true value.
	PatternExpr
	// PatternRange matches from a record where Expr is true through the
	// next record where Until is true, inclusive.
	PatternRange
)

func (k PatternKind) String() string {
	switch k {
	case PatternAlways:
		return "always"
	case PatternRegex:
		return "regex"
	case PatternExpr:
		return "expr"
	case PatternRange:
		return "range"
	}
	return "unknown"
}

// Pattern is the tagged pattern of a rule.
type Pattern struct {
	Kind  PatternKind
	Expr  Expr
	Until Expr // end of a range pattern
}

// Rule is a pattern/action unit.
type Rule struct {
	Loc
	Pattern Pattern
	// Action is nil for a bare pattern, which prints $0.
	Action *BlockStmt
}

// FuncDecl is function name(params) { body }. By convention extra
// parameters act as locals.
type FuncDecl struct {
	Loc
	Name   string
	Params []string
	Body   *BlockStmt
}

// Func returns the declaration of the named function or nil.
func (p *Program) Func(name string) *FuncDecl {
	for _, f := range p.Funcs {
		if f.Name == name {
			return f
		}
	}
	return nil
}
