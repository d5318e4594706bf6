package interp

import (
	"math"
	"strings"

	"github.com/kolkov/vshell/internal/ast"
	"github.com/kolkov/vshell/internal/runtime"
	"github.com/kolkov/vshell/internal/token"
	"github.com/kolkov/vshell/internal/types"
)

// maxField bounds field indexes so a stray $1e9 cannot exhaust memory.
const maxField = 1 << 20

func (in *Interp) eval(e ast.Expr) (types.Value, error) {
	switch e := e.(type) {
	case *ast.NumLit:
		return types.Num(e.Value), nil

	case *ast.StrLit:
		return types.Str(e.Value), nil

	case *ast.RegexLit:
		// A bare regex matches the current record.
		return types.Bool(in.regexes[e.Pattern].MatchString(in.ctx.Record())), nil

	case *ast.GroupExpr:
		return in.eval(e.Expr)

	case *ast.Ident:
		return in.variable(e)

	case *ast.FieldExpr:
		i, err := in.fieldIndex(e)
		if err != nil {
			return types.Null(), err
		}
		return in.ctx.Field(i), nil

	case *ast.IndexExpr:
		arr, err := in.array(e.Array)
		if err != nil {
			return types.Null(), err
		}
		key, err := in.subscript(e.Index)
		if err != nil {
			return types.Null(), err
		}
		v, ok := arr[key]
		if !ok {
			arr[key] = v
		}
		return v, nil

	case *ast.UnaryExpr:
		v, err := in.eval(e.Operand)
		if err != nil {
			return types.Null(), err
		}
		switch e.Op {
		case token.NOT:
			return types.Bool(!v.Bool()), nil
		case token.SUB:
			return types.Num(-v.Num()), nil
		}
		return types.Num(v.Num()), nil

	case *ast.BinaryExpr:
		return in.binaryExpr(e)

	case *ast.CondExpr:
		c, err := in.eval(e.Cond)
		if err != nil {
			return types.Null(), err
		}
		if c.Bool() {
			return in.eval(e.Then)
		}
		return in.eval(e.Else)

	case *ast.MatchExpr:
		left, err := in.eval(e.Left)
		if err != nil {
			return types.Null(), err
		}
		re, err := in.regexArg(e.Regex)
		if err != nil {
			return types.Null(), err
		}
		return types.Bool(re.MatchString(left.Str(in.ctx.CONVFMT)) != e.Negate), nil

	case *ast.InExpr:
		key, err := in.subscript(e.Index)
		if err != nil {
			return types.Null(), err
		}
		arr, err := in.array(e.Array)
		if err != nil {
			return types.Null(), err
		}
		_, ok := arr[key]
		return types.Bool(ok), nil

	case *ast.AssignExpr:
		return in.assignExpr(e)

	case *ast.IncDecExpr:
		lv, err := in.lvalue(e.Target)
		if err != nil {
			return types.Null(), err
		}
		old, err := in.get(lv)
		if err != nil {
			return types.Null(), err
		}
		n := old.Num()
		delta := 1.0
		if e.Op == token.DECR {
			delta = -1
		}
		if err := in.set(lv, types.Num(n+delta)); err != nil {
			return types.Null(), err
		}
		if e.Post {
			return types.Num(n), nil
		}
		return types.Num(n + delta), nil

	case *ast.CallExpr:
		return in.call(e)

	case *ast.BuiltinExpr:
		return in.builtin(e)
	}
	return types.Null(), evalErrorf(e.Pos(), "unexpected expression %T", e)
}

func (in *Interp) binaryExpr(e *ast.BinaryExpr) (types.Value, error) {
	left, err := in.eval(e.Left)
	if err != nil {
		return types.Null(), err
	}
	switch e.Op {
	case token.AND:
		if !left.Bool() {
			return types.Bool(false), nil
		}
		right, err := in.eval(e.Right)
		if err != nil {
			return types.Null(), err
		}
		return types.Bool(right.Bool()), nil
	case token.OR:
		if left.Bool() {
			return types.Bool(true), nil
		}
		right, err := in.eval(e.Right)
		if err != nil {
			return types.Null(), err
		}
		return types.Bool(right.Bool()), nil
	}
	right, err := in.eval(e.Right)
	if err != nil {
		return types.Null(), err
	}
	return in.binary(e.Pos(), e.Op, left, right)
}

func (in *Interp) binary(pos token.Position, op token.Token, l, r types.Value) (types.Value, error) {
	switch op {
	case token.ADD:
		return types.Num(l.Num() + r.Num()), nil
	case token.SUB:
		return types.Num(l.Num() - r.Num()), nil
	case token.MUL:
		return types.Num(l.Num() * r.Num()), nil
	case token.DIV:
		d := r.Num()
		if d == 0 {
			return types.Null(), evalErrorf(pos, "division by zero")
		}
		return types.Num(l.Num() / d), nil
	case token.MOD:
		d := r.Num()
		if d == 0 {
			return types.Null(), evalErrorf(pos, "division by zero in %%")
		}
		return types.Num(math.Mod(l.Num(), d)), nil
	case token.POW:
		return types.Num(math.Pow(l.Num(), r.Num())), nil
	case token.CONCAT:
		return types.Str(l.Str(in.ctx.CONVFMT) + r.Str(in.ctx.CONVFMT)), nil
	case token.EQUALS:
		return types.Bool(types.Compare(l, r, in.ctx.CONVFMT) == 0), nil
	case token.NOT_EQUALS:
		return types.Bool(types.Compare(l, r, in.ctx.CONVFMT) != 0), nil
	case token.LESS:
		return types.Bool(types.Compare(l, r, in.ctx.CONVFMT) < 0), nil
	case token.LTE:
		return types.Bool(types.Compare(l, r, in.ctx.CONVFMT) <= 0), nil
	case token.GREATER:
		return types.Bool(types.Compare(l, r, in.ctx.CONVFMT) > 0), nil
	case token.GTE:
		return types.Bool(types.Compare(l, r, in.ctx.CONVFMT) >= 0), nil
	}
	return types.Null(), evalErrorf(pos, "unexpected operator %s", op)
}

func (in *Interp) assignExpr(e *ast.AssignExpr) (types.Value, error) {
	v, err := in.eval(e.Value)
	if err != nil {
		return types.Null(), err
	}
	lv, err := in.lvalue(e.Target)
	if err != nil {
		return types.Null(), err
	}
	if e.Op != token.ASSIGN {
		old, err := in.get(lv)
		if err != nil {
			return types.Null(), err
		}
		if v, err = in.binary(e.Pos(), e.Op.BinaryOf(), old, v); err != nil {
			return types.Null(), err
		}
	}
	if err := in.set(lv, v); err != nil {
		return types.Null(), err
	}
	return v, nil
}

func (in *Interp) fieldIndex(e *ast.FieldExpr) (int, error) {
	v, err := in.eval(e.Index)
	if err != nil {
		return 0, err
	}
	n := v.Num()
	switch {
	case math.IsNaN(n):
		return 0, evalErrorf(e.Pos(), "field index %s is not a number", types.FormatNum(n, in.ctx.CONVFMT))
	case n < 0:
		return 0, evalErrorf(e.Pos(), "field index %s is negative", types.FormatNum(n, in.ctx.CONVFMT))
	case n > maxField:
		return 0, evalErrorf(e.Pos(), "field index %s is too large", types.FormatNum(n, in.ctx.CONVFMT))
	}
	return int(n), nil
}

// subscript joins a multi-dimensional index with SUBSEP.
func (in *Interp) subscript(index []ast.Expr) (string, error) {
	if len(index) == 1 {
		v, err := in.eval(index[0])
		if err != nil {
			return "", err
		}
		return v.Str(in.ctx.CONVFMT), nil
	}
	parts := make([]string, len(index))
	for i, e := range index {
		v, err := in.eval(e)
		if err != nil {
			return "", err
		}
		parts[i] = v.Str(in.ctx.CONVFMT)
	}
	return strings.Join(parts, in.ctx.SUBSEP), nil
}

// regexArg returns the regex an operand stands for: a literal as written,
// anything else as a dynamic pattern built from its string value.
func (in *Interp) regexArg(e ast.Expr) (*runtime.Regex, error) {
	if lit, ok := e.(*ast.RegexLit); ok {
		return in.regexes[lit.Pattern], nil
	}
	v, err := in.eval(e)
	if err != nil {
		return nil, err
	}
	pattern := v.Str(in.ctx.CONVFMT)
	re, err := in.ctx.regexes.Get(pattern)
	if err != nil {
		return nil, evalErrorf(e.Pos(), "invalid regex %q: %v", pattern, err)
	}
	return re, nil
}
