package ast

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kolkov/vshell/internal/token"
)

// Printer writes a program back out as source text. Binary operations are
// fully parenthesized so the output shows how the parser grouped them.
type Printer struct {
	w      io.Writer
	indent int
	err    error
}

// NewPrinter creates a Printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Print writes node to the underlying writer.
func (p *Printer) Print(node Node) error {
	switch n := node.(type) {
	case *Program:
		p.program(n)
	case *Rule:
		p.rule(n)
	case *FuncDecl:
		p.funcDecl(n)
	case Stmt:
		p.stmt(n)
	case Expr:
		p.printf("%s", ExprString(n))
	}
	return p.err
}

// String returns the source form of node.
func String(node Node) string {
	var sb strings.Builder
	_ = NewPrinter(&sb).Print(node)
	return sb.String()
}

func (p *Printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *Printer) line(format string, args ...any) {
	p.printf("%s", strings.Repeat("    ", p.indent))
	p.printf(format, args...)
	p.printf("\n")
}

func (p *Printer) program(prog *Program) {
	for _, b := range prog.Begin {
		p.printf("BEGIN ")
		p.block(b)
	}
	for _, r := range prog.Rules {
		p.rule(r)
	}
	for _, b := range prog.End {
		p.printf("END ")
		p.block(b)
	}
	for _, f := range prog.Funcs {
		p.funcDecl(f)
	}
}

func (p *Printer) rule(r *Rule) {
	switch r.Pattern.Kind {
	case PatternRegex, PatternExpr:
		p.printf("%s", ExprString(r.Pattern.Expr))
	case PatternRange:
		p.printf("%s, %s", ExprString(r.Pattern.Expr), ExprString(r.Pattern.Until))
	}
	if r.Action == nil {
		p.printf("\n")
		return
	}
	if r.Pattern.Kind != PatternAlways {
		p.printf(" ")
	}
	p.block(r.Action)
}

func (p *Printer) funcDecl(f *FuncDecl) {
	p.printf("function %s(%s) ", f.Name, strings.Join(f.Params, ", "))
	p.block(f.Body)
}

// block prints { ... } starting at the current column.
func (p *Printer) block(b *BlockStmt) {
	p.printf("{\n")
	p.indent++
	for _, s := range b.Stmts {
		p.stmt(s)
	}
	p.indent--
	p.line("}")
}

func (p *Printer) body(s Stmt) {
	if b, ok := s.(*BlockStmt); ok {
		p.block(b)
		return
	}
	p.printf("\n")
	p.indent++
	p.stmt(s)
	p.indent--
}

func (p *Printer) stmt(s Stmt) {
	switch n := s.(type) {
	case *ExprStmt:
		p.line("%s", ExprString(n.Expr))
	case *PrintStmt:
		kw := "print"
		if n.Printf {
			kw = "printf"
		}
		if len(n.Args) == 0 {
			p.line("%s", kw)
		} else {
			p.line("%s %s", kw, exprList(n.Args))
		}
	case *BlockStmt:
		p.printf("%s", strings.Repeat("    ", p.indent))
		p.block(n)
	case *IfStmt:
		p.printf("%sif (%s) ", strings.Repeat("    ", p.indent), ExprString(n.Cond))
		p.body(n.Then)
		if n.Else != nil {
			p.printf("%selse ", strings.Repeat("    ", p.indent))
			p.body(n.Else)
		}
	case *WhileStmt:
		p.printf("%swhile (%s) ", strings.Repeat("    ", p.indent), ExprString(n.Cond))
		p.body(n.Body)
	case *DoStmt:
		p.printf("%sdo ", strings.Repeat("    ", p.indent))
		p.body(n.Body)
		p.line("while (%s)", ExprString(n.Cond))
	case *ForStmt:
		p.printf("%sfor (%s; %s; %s) ", strings.Repeat("    ", p.indent),
			simpleStmt(n.Init), optExpr(n.Cond), simpleStmt(n.Post))
		p.body(n.Body)
	case *ForInStmt:
		p.printf("%sfor (%s in %s) ", strings.Repeat("    ", p.indent), n.Key.Name, n.Array.Name)
		p.body(n.Body)
	case *BreakStmt:
		p.line("break")
	case *ContinueStmt:
		p.line("continue")
	case *NextStmt:
		p.line("next")
	case *ExitStmt:
		p.line("%s", strings.TrimSpace("exit "+optExpr(n.Code)))
	case *ReturnStmt:
		p.line("%s", strings.TrimSpace("return "+optExpr(n.Value)))
	case *DeleteStmt:
		if len(n.Index) == 0 {
			p.line("delete %s", n.Array.Name)
		} else {
			p.line("delete %s[%s]", n.Array.Name, exprList(n.Index))
		}
	}
}

func simpleStmt(s Stmt) string {
	if e, ok := s.(*ExprStmt); ok {
		return ExprString(e.Expr)
	}
	return ""
}

func optExpr(e Expr) string {
	if e == nil {
		return ""
	}
	return ExprString(e)
}

func exprList(list []Expr) string {
	parts := make([]string, len(list))
	for i, e := range list {
		parts[i] = ExprString(e)
	}
	return strings.Join(parts, ", ")
}

// ExprString returns the source form of an expression.
func ExprString(e Expr) string {
	switch n := e.(type) {
	case *NumLit:
		if n.Raw != "" {
			return n.Raw
		}
		return strconv.FormatFloat(n.Value, 'g', -1, 64)
	case *StrLit:
		return strconv.Quote(n.Value)
	case *RegexLit:
		return "/" + strings.ReplaceAll(n.Pattern, "/", `\/`) + "/"
	case *Ident:
		return n.Name
	case *FieldExpr:
		return "$" + ExprString(n.Index)
	case *IndexExpr:
		return n.Array.Name + "[" + exprList(n.Index) + "]"
	case *BinaryExpr:
		if n.Op == token.CONCAT {
			return "(" + ExprString(n.Left) + " " + ExprString(n.Right) + ")"
		}
		return "(" + ExprString(n.Left) + " " + n.Op.String() + " " + ExprString(n.Right) + ")"
	case *UnaryExpr:
		return "(" + n.Op.String() + ExprString(n.Operand) + ")"
	case *IncDecExpr:
		if n.Post {
			return ExprString(n.Target) + n.Op.String()
		}
		return n.Op.String() + ExprString(n.Target)
	case *CondExpr:
		return "(" + ExprString(n.Cond) + " ? " + ExprString(n.Then) + " : " + ExprString(n.Else) + ")"
	case *AssignExpr:
		return ExprString(n.Target) + " " + n.Op.String() + " " + ExprString(n.Value)
	case *MatchExpr:
		op := "~"
		if n.Negate {
			op = "!~"
		}
		return "(" + ExprString(n.Left) + " " + op + " " + ExprString(n.Regex) + ")"
	case *InExpr:
		if len(n.Index) == 1 {
			return "(" + ExprString(n.Index[0]) + " in " + n.Array.Name + ")"
		}
		return "((" + exprList(n.Index) + ") in " + n.Array.Name + ")"
	case *GroupExpr:
		return ExprString(n.Expr)
	case *CallExpr:
		return n.Name + "(" + exprList(n.Args) + ")"
	case *BuiltinExpr:
		return n.Func.String() + "(" + exprList(n.Args) + ")"
	}
	return "<nil>"
}
