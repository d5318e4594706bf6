package ast

import (
	"testing"

	"github.com/kolkov/vshell/internal/token"
)

func TestIsLValue(t *testing.T) {
	tests := []struct {
		expr Expr
		want bool
	}{
		{&Ident{Name: "x"}, true},
		{&FieldExpr{Index: &NumLit{Value: 1}}, true},
		{&IndexExpr{Array: &Ident{Name: "a"}, Index: []Expr{&StrLit{Value: "k"}}}, true},
		{&NumLit{Value: 1}, false},
		{&GroupExpr{Expr: &Ident{Name: "x"}}, false},
	}
	for _, tt := range tests {
		if got := IsLValue(tt.expr); got != tt.want {
			t.Errorf("IsLValue(%s) = %v, want %v", ExprString(tt.expr), got, tt.want)
		}
	}
}

func TestWalkSkipsChildren(t *testing.T) {
	inner := &BinaryExpr{Op: token.ADD, Left: &Ident{Name: "a"}, Right: &Ident{Name: "b"}}
	prog := &Program{
		Rules: []*Rule{{
			Pattern: Pattern{Kind: PatternRegex, Expr: &RegexLit{Pattern: "x"}},
			Action: &BlockStmt{Stmts: []Stmt{
				&PrintStmt{Args: []Expr{inner}},
			}},
		}},
	}

	var idents, regexes int
	Walk(prog, func(n Node) bool {
		switch n.(type) {
		case *Ident:
			idents++
		case *RegexLit:
			regexes++
		}
		return true
	})
	if idents != 2 || regexes != 1 {
		t.Errorf("idents = %d, regexes = %d", idents, regexes)
	}

	idents = 0
	Walk(prog, func(n Node) bool {
		if _, ok := n.(*Ident); ok {
			idents++
		}
		_, isBinary := n.(*BinaryExpr)
		return !isBinary
	})
	if idents != 0 {
		t.Errorf("children of a pruned node were visited: %d", idents)
	}
}

func TestPatternKindString(t *testing.T) {
	for kind, want := range map[PatternKind]string{
		PatternAlways:  "always",
		PatternRegex:   "regex",
		PatternExpr:    "expr",
		PatternRange:   "range",
		PatternKind(9): "unknown",
	} {
		if got := kind.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", kind, got, want)
		}
	}
}

func TestPrintRule(t *testing.T) {
	rule := &Rule{
		Pattern: Pattern{Kind: PatternRegex, Expr: &RegexLit{Pattern: "a/b"}},
		Action: &BlockStmt{Stmts: []Stmt{
			&PrintStmt{Args: []Expr{&FieldExpr{Index: &NumLit{Value: 1}}}},
		}},
	}
	want := "/a\\/b/ {\n    print $1\n}\n"
	if got := String(rule); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
