package ast

// ExprStmt evaluates an expression for its side effects.
type ExprStmt struct {
	Loc
	Expr Expr
}

// PrintStmt is print or printf. A print with no arguments prints $0.
type PrintStmt struct {
	Loc
	Printf bool
	Args   []Expr
}

// BlockStmt is { stmts }.
type BlockStmt struct {
	Loc
	Stmts []Stmt
}

// IfStmt is if (cond) then [else else].
type IfStmt struct {
	Loc
	Cond Expr
	Then Stmt
	Else Stmt // nil when absent
}

// WhileStmt is while (cond) body.
type WhileStmt struct {
	Loc
	Cond Expr
	Body Stmt
}

// DoStmt is do body while (cond).
type DoStmt struct {
	Loc
	Body Stmt
	Cond Expr
}

// ForStmt is for (init; cond; post) body. Any header part may be nil.
type ForStmt struct {
	Loc
	Init Stmt
	Cond Expr
	Post Stmt
	Body Stmt
}

// ForInStmt is for (key in array) body.
type ForInStmt struct {
	Loc
	Key   *Ident
	Array *Ident
	Body  Stmt
}

// BreakStmt leaves the innermost loop.
type BreakStmt struct{ Loc }

// ContinueStmt starts the next iteration of the innermost loop.
type ContinueStmt struct{ Loc }

// NextStmt stops processing the current record.
type NextStmt struct{ Loc }

// ExitStmt is exit [code].
type ExitStmt struct {
	Loc
	Code Expr
}

// ReturnStmt is return [value].
type ReturnStmt struct {
	Loc
	Value Expr
}

// DeleteStmt is delete array[index] or, with no index, delete array.
type DeleteStmt struct {
	Loc
	Array *Ident
	Index []Expr
}

func (*ExprStmt) stmtNode()     {}
func (*PrintStmt) stmtNode()    {}
func (*BlockStmt) stmtNode()    {}
func (*IfStmt) stmtNode()       {}
func (*WhileStmt) stmtNode()    {}
func (*DoStmt) stmtNode()       {}
func (*ForStmt) stmtNode()      {}
func (*ForInStmt) stmtNode()    {}
func (*BreakStmt) stmtNode()    {}
func (*ContinueStmt) stmtNode() {}
func (*NextStmt) stmtNode()     {}
func (*ExitStmt) stmtNode()     {}
func (*ReturnStmt) stmtNode()   {}
func (*DeleteStmt) stmtNode()   {}
