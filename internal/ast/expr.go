package ast

import "github.com/kolkov/vshell/internal/token"

// NumLit is a numeric literal such as 42 or 1e3.
type NumLit struct {
	Loc
	Value float64
	Raw   string
}

// StrLit is a string literal with escapes already decoded.
type StrLit struct {
	Loc
	Value string
}

// RegexLit is a /regex/ literal. Used as an expression on its own it
// matches against $0.
type RegexLit struct {
	Loc
	Pattern string
}

// Ident names a scalar variable, an array or a builtin variable.
type Ident struct {
	Loc
	Name string
}

// FieldExpr is $expr.
type FieldExpr struct {
	Loc
	Index Expr
}

// IndexExpr is array[i] or array[i, j]; multiple subscripts are joined
// with SUBSEP.
type IndexExpr struct {
	Loc
	Array *Ident
	Index []Expr
}

// BinaryExpr covers arithmetic, comparison, logical operators and
// concatenation (Op is token.CONCAT for juxtaposition).
type BinaryExpr struct {
	Loc
	Op    token.Token
	Left  Expr
	Right Expr
}

// UnaryExpr is -x, +x or !x.
type UnaryExpr struct {
	Loc
	Op      token.Token
	Operand Expr
}

// IncDecExpr is ++x, x++, --x or x--.
type IncDecExpr struct {
	Loc
	Op     token.Token // INCR or DECR
	Target Expr
	Post   bool
}

// CondExpr is cond ? then : else.
type CondExpr struct {
	Loc
	Cond Expr
	Then Expr
	Else Expr
}

// AssignExpr is target = value or a compound assignment such as +=.
type AssignExpr struct {
	Loc
	Op     token.Token
	Target Expr
	Value  Expr
}

// MatchExpr is left ~ regex or left !~ regex. Regex is either a *RegexLit
// or a dynamic expression whose string value is compiled at run time.
type MatchExpr struct {
	Loc
	Left   Expr
	Regex  Expr
	Negate bool
}

// InExpr is (index) in array.
type InExpr struct {
	Loc
	Index []Expr
	Array *Ident
}

// GroupExpr is a parenthesized expression. It is kept in the tree so that
// the printer and the print statement can tell (a > b) from a > b.
type GroupExpr struct {
	Loc
	Expr Expr
}

// CallExpr calls a user-defined function.
type CallExpr struct {
	Loc
	Name string
	Args []Expr
}

// BuiltinExpr calls a builtin function such as length or substr.
type BuiltinExpr struct {
	Loc
	Func token.Token
	Args []Expr
}

func (*NumLit) exprNode()      {}
func (*StrLit) exprNode()      {}
func (*RegexLit) exprNode()    {}
func (*Ident) exprNode()       {}
func (*FieldExpr) exprNode()   {}
func (*IndexExpr) exprNode()   {}
func (*BinaryExpr) exprNode()  {}
func (*UnaryExpr) exprNode()   {}
func (*IncDecExpr) exprNode()  {}
func (*CondExpr) exprNode()    {}
func (*AssignExpr) exprNode()  {}
func (*MatchExpr) exprNode()   {}
func (*InExpr) exprNode()      {}
func (*GroupExpr) exprNode()   {}
func (*CallExpr) exprNode()    {}
func (*BuiltinExpr) exprNode() {}
