// Package ast defines the syntax tree of record-language programs.
//
// Node hierarchy:
//
//	Node (interface)
//	├── Expr - expressions that produce values
//	│   ├── NumLit, StrLit, RegexLit - literals
//	│   ├── Ident, FieldExpr, IndexExpr - references
//	│   ├── BinaryExpr, UnaryExpr, CondExpr - operations
//	│   ├── AssignExpr, IncDecExpr - mutations
//	│   ├── MatchExpr, InExpr, GroupExpr - special forms
//	│   └── CallExpr, BuiltinExpr - calls
//	├── Stmt - statements
//	│   ├── ExprStmt, PrintStmt, BlockStmt
//	│   ├── IfStmt, WhileStmt, DoStmt, ForStmt, ForInStmt
//	│   └── BreakStmt, ContinueStmt, NextStmt, ExitStmt, ReturnStmt, DeleteStmt
//	└── Program, Rule, FuncDecl - top level
package ast

import "github.com/kolkov/vshell/internal/token"

// Node is implemented by every syntax tree node.
type Node interface {
	// Pos returns the position of the node's first token.
	Pos() token.Position
}

// Expr is an expression node.
type Expr interface {
	Node
	exprNode()
}

// Stmt is a statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Loc records where a node starts. It is embedded in every node.
type Loc struct {
	Start token.Position
}

// Pos returns the start position.
func (l Loc) Pos() token.Position { return l.Start }

// At builds a Loc for pos.
func At(pos token.Position) Loc { return Loc{Start: pos} }

// IsLValue reports whether e can be assigned to, incremented or passed as
// the target of sub and gsub.
func IsLValue(e Expr) bool {
	switch e.(type) {
	case *Ident, *FieldExpr, *IndexExpr:
		return true
	}
	return false
}
