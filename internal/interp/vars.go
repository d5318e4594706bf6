package interp

import (
	"errors"
	"math"

	"github.com/kolkov/vshell/internal/ast"
	"github.com/kolkov/vshell/internal/types"
)

type lvalueKind uint8

const (
	lvGlobal lvalueKind = iota
	lvLocal
	lvSpecial
	lvField
	lvElem
)

// lvalue is a resolved assignment target. Indexes are evaluated once, so
// a[i++] += 1 increments i a single time.
type lvalue struct {
	kind  lvalueKind
	name  string
	index int // local slot or field number
	arr   map[string]types.Value
	key   string
	node  ast.Expr
}

func (in *Interp) lvalue(e ast.Expr) (lvalue, error) {
	switch e := e.(type) {
	case *ast.GroupExpr:
		return in.lvalue(e.Expr)
	case *ast.Ident:
		if f := in.ctx.top(); f != nil {
			if i, ok := f.fn.params[e.Name]; ok {
				if f.fn.arrays[i] {
					return lvalue{}, evalErrorf(e.Pos(), "can't assign to array %q", e.Name)
				}
				return lvalue{kind: lvLocal, name: e.Name, index: i, node: e}, nil
			}
		}
		if isSpecial(e.Name) {
			return lvalue{kind: lvSpecial, name: e.Name, node: e}, nil
		}
		if _, ok := in.ctx.arrays[e.Name]; ok {
			return lvalue{}, evalErrorf(e.Pos(), "can't assign to array %q", e.Name)
		}
		return lvalue{kind: lvGlobal, name: e.Name, node: e}, nil
	case *ast.FieldExpr:
		i, err := in.fieldIndex(e)
		if err != nil {
			return lvalue{}, err
		}
		return lvalue{kind: lvField, index: i, node: e}, nil
	case *ast.IndexExpr:
		arr, err := in.array(e.Array)
		if err != nil {
			return lvalue{}, err
		}
		key, err := in.subscript(e.Index)
		if err != nil {
			return lvalue{}, err
		}
		return lvalue{kind: lvElem, arr: arr, key: key, node: e}, nil
	}
	return lvalue{}, evalErrorf(e.Pos(), "cannot assign to %s", ast.ExprString(e))
}

func (in *Interp) get(lv lvalue) (types.Value, error) {
	switch lv.kind {
	case lvLocal:
		return in.ctx.top().scalars[lv.index], nil
	case lvSpecial:
		return in.special(lv.name), nil
	case lvField:
		return in.ctx.Field(lv.index), nil
	case lvElem:
		return lv.arr[lv.key], nil
	}
	return in.ctx.Global(lv.name), nil
}

func (in *Interp) set(lv lvalue, v types.Value) error {
	switch lv.kind {
	case lvLocal:
		in.ctx.top().scalars[lv.index] = v
	case lvSpecial:
		err := in.setSpecial(lv.name, v)
		var ee *EvalError
		if err != nil && errors.As(err, &ee) && !ee.Pos.IsValid() {
			ee.Pos = lv.node.Pos()
		}
		return err
	case lvField:
		if err := in.ctx.SetField(lv.index, v); err != nil {
			return evalErrorf(lv.node.Pos(), "invalid field separator %q: %v", in.ctx.FS, err)
		}
	case lvElem:
		lv.arr[lv.key] = v
	default:
		in.ctx.SetGlobal(lv.name, v)
	}
	return nil
}

// variable reads a scalar by name.
func (in *Interp) variable(id *ast.Ident) (types.Value, error) {
	if f := in.ctx.top(); f != nil {
		if i, ok := f.fn.params[id.Name]; ok {
			if f.fn.arrays[i] {
				return types.Null(), evalErrorf(id.Pos(), "can't use array %q in scalar context", id.Name)
			}
			return f.scalars[i], nil
		}
	}
	if isSpecial(id.Name) {
		return in.special(id.Name), nil
	}
	if _, ok := in.ctx.arrays[id.Name]; ok {
		return types.Null(), evalErrorf(id.Pos(), "can't use array %q in scalar context", id.Name)
	}
	return in.ctx.Global(id.Name), nil
}

// array resolves an array name, creating a global array on first use.
func (in *Interp) array(id *ast.Ident) (map[string]types.Value, error) {
	if f := in.ctx.top(); f != nil {
		if i, ok := f.fn.params[id.Name]; ok {
			if !f.fn.arrays[i] {
				return nil, evalErrorf(id.Pos(), "can't use scalar %q as array", id.Name)
			}
			if f.arrays[i] == nil {
				f.arrays[i] = make(map[string]types.Value)
			}
			return f.arrays[i], nil
		}
	}
	if isSpecial(id.Name) {
		return nil, evalErrorf(id.Pos(), "can't use scalar %q as array", id.Name)
	}
	if _, ok := in.ctx.globals[id.Name]; ok {
		return nil, evalErrorf(id.Pos(), "can't use scalar %q as array", id.Name)
	}
	return in.ctx.Array(id.Name, true), nil
}

// isArray reports whether id currently names an array.
func (in *Interp) isArray(id *ast.Ident) bool {
	if f := in.ctx.top(); f != nil {
		if i, ok := f.fn.params[id.Name]; ok {
			return f.fn.arrays[i]
		}
	}
	_, ok := in.ctx.arrays[id.Name]
	return ok
}

func isSpecial(name string) bool {
	switch name {
	case "NR", "NF", "FNR", "FILENAME", "FS", "OFS", "ORS", "SUBSEP",
		"OFMT", "CONVFMT", "RSTART", "RLENGTH":
		return true
	}
	return false
}

func (in *Interp) special(name string) types.Value {
	c := in.ctx
	switch name {
	case "NR":
		return types.Num(float64(c.NR))
	case "NF":
		return types.Num(float64(c.NF()))
	case "FNR":
		return types.Num(float64(c.FNR))
	case "FILENAME":
		return types.Str(c.Filename)
	case "FS":
		return types.Str(c.FS)
	case "OFS":
		return types.Str(c.OFS)
	case "ORS":
		return types.Str(c.ORS)
	case "SUBSEP":
		return types.Str(c.SUBSEP)
	case "OFMT":
		return types.Str(c.OFMT)
	case "CONVFMT":
		return types.Str(c.CONVFMT)
	case "RSTART":
		return types.Num(float64(c.RSTART))
	case "RLENGTH":
		return types.Num(float64(c.RLENGTH))
	}
	return types.Null()
}

func (in *Interp) setSpecial(name string, v types.Value) error {
	c := in.ctx
	switch name {
	case "NR":
		c.NR = int(v.Num())
	case "NF":
		n := v.Num()
		if math.IsNaN(n) || n < 0 || n > maxField {
			return &EvalError{Message: "NF set to " + types.FormatNum(n, c.CONVFMT)}
		}
		c.SetNF(int(n))
	case "FNR":
		c.FNR = int(v.Num())
	case "FILENAME":
		c.Filename = v.Str(c.CONVFMT)
	case "FS":
		c.FS = v.Str(c.CONVFMT)
	case "OFS":
		c.OFS = v.Str(c.CONVFMT)
	case "ORS":
		c.ORS = v.Str(c.CONVFMT)
	case "SUBSEP":
		c.SUBSEP = v.Str(c.CONVFMT)
	case "OFMT":
		c.OFMT = v.Str(c.CONVFMT)
	case "CONVFMT":
		c.CONVFMT = v.Str(c.CONVFMT)
	case "RSTART":
		c.RSTART = int(v.Num())
	case "RLENGTH":
		c.RLENGTH = int(v.Num())
	}
	return nil
}

func (in *Interp) call(e *ast.CallExpr) (types.Value, error) {
	fn := in.prog.funcs[e.Name]
	if len(in.ctx.frames) >= maxCallDepth {
		return types.Null(), evalErrorf(e.Pos(), "calling %q exceeds the maximum call depth of %d", e.Name, maxCallDepth)
	}
	n := len(fn.decl.Params)
	fr := &frame{
		fn:      fn,
		scalars: make([]types.Value, n),
		arrays:  make([]map[string]types.Value, n),
	}
	for i := range n {
		if fn.arrays[i] {
			if i >= len(e.Args) {
				fr.arrays[i] = make(map[string]types.Value)
				continue
			}
			id, ok := e.Args[i].(*ast.Ident)
			if !ok {
				return types.Null(), evalErrorf(e.Args[i].Pos(), "%s: argument %d must be an array", e.Name, i+1)
			}
			arr, err := in.array(id)
			if err != nil {
				return types.Null(), err
			}
			fr.arrays[i] = arr
			continue
		}
		if i < len(e.Args) {
			v, err := in.eval(e.Args[i])
			if err != nil {
				return types.Null(), err
			}
			fr.scalars[i] = v
		}
	}

	in.ctx.frames = append(in.ctx.frames, fr)
	err := in.exec(fn.decl.Body)
	in.ctx.frames = in.ctx.frames[:len(in.ctx.frames)-1]

	var ret *returnValue
	switch {
	case err == nil:
		return types.Null(), nil
	case errors.As(err, &ret):
		return ret.value, nil
	}
	return types.Null(), err
}
