package interp

import (
	"errors"
	"math"
	"sort"
	"strings"

	"github.com/kolkov/vshell/internal/ast"
	"github.com/kolkov/vshell/internal/types"
)

func (in *Interp) exec(s ast.Stmt) error {
	switch s := s.(type) {
	case *ast.BlockStmt:
		for _, st := range s.Stmts {
			if err := in.exec(st); err != nil {
				return err
			}
		}
		return nil

	case *ast.ExprStmt:
		_, err := in.eval(s.Expr)
		return err

	case *ast.PrintStmt:
		return in.print(s)

	case *ast.IfStmt:
		c, err := in.eval(s.Cond)
		if err != nil {
			return err
		}
		if c.Bool() {
			return in.exec(s.Then)
		}
		if s.Else != nil {
			return in.exec(s.Else)
		}
		return nil

	case *ast.WhileStmt:
		for {
			c, err := in.eval(s.Cond)
			if err != nil {
				return err
			}
			if !c.Bool() {
				return nil
			}
			if stop, err := in.loopBody(s.Body); stop || err != nil {
				return err
			}
		}

	case *ast.DoStmt:
		for {
			if stop, err := in.loopBody(s.Body); stop || err != nil {
				return err
			}
			c, err := in.eval(s.Cond)
			if err != nil {
				return err
			}
			if !c.Bool() {
				return nil
			}
		}

	case *ast.ForStmt:
		if s.Init != nil {
			if err := in.exec(s.Init); err != nil {
				return err
			}
		}
		for {
			if s.Cond != nil {
				c, err := in.eval(s.Cond)
				if err != nil {
					return err
				}
				if !c.Bool() {
					return nil
				}
			}
			if stop, err := in.loopBody(s.Body); stop || err != nil {
				return err
			}
			if s.Post != nil {
				if err := in.exec(s.Post); err != nil {
					return err
				}
			}
		}

	case *ast.ForInStmt:
		arr, err := in.array(s.Array)
		if err != nil {
			return err
		}
		key, err := in.lvalue(s.Key)
		if err != nil {
			return err
		}
		for _, k := range sortedKeys(arr) {
			if _, ok := arr[k]; !ok {
				continue // deleted by the body
			}
			if err := in.set(key, types.Str(k)); err != nil {
				return err
			}
			if stop, err := in.loopBody(s.Body); stop || err != nil {
				return err
			}
		}
		return nil

	case *ast.BreakStmt:
		return errBreak

	case *ast.ContinueStmt:
		return errContinue

	case *ast.NextStmt:
		return errNext

	case *ast.ExitStmt:
		if s.Code != nil {
			v, err := in.eval(s.Code)
			if err != nil {
				return err
			}
			in.exitCode = int(v.Num())
		}
		return &ExitError{Code: in.exitCode}

	case *ast.ReturnStmt:
		ret := &returnValue{}
		if s.Value != nil {
			v, err := in.eval(s.Value)
			if err != nil {
				return err
			}
			ret.value = v
		}
		return ret

	case *ast.DeleteStmt:
		arr, err := in.array(s.Array)
		if err != nil {
			return err
		}
		if s.Index == nil {
			clear(arr)
			return nil
		}
		key, err := in.subscript(s.Index)
		if err != nil {
			return err
		}
		delete(arr, key)
		return nil
	}
	return evalErrorf(s.Pos(), "unexpected statement %T", s)
}

// loopBody runs one iteration. stop is set when the loop must end, either
// by break or by an error.
func (in *Interp) loopBody(body ast.Stmt) (stop bool, err error) {
	if err := in.cancelled(); err != nil {
		return true, err
	}
	err = in.exec(body)
	switch {
	case err == nil, errors.Is(err, errContinue):
		return false, nil
	case errors.Is(err, errBreak):
		return true, nil
	}
	return true, err
}

func (in *Interp) print(s *ast.PrintStmt) error {
	if s.Printf {
		args := make([]types.Value, len(s.Args))
		for i, a := range s.Args {
			v, err := in.eval(a)
			if err != nil {
				return err
			}
			args[i] = v
		}
		return in.write(in.sprintf(args[0].Str(in.ctx.CONVFMT), args[1:]))
	}

	if len(s.Args) == 0 {
		return in.write(in.ctx.Record() + in.ctx.ORS)
	}
	var sb strings.Builder
	for i, a := range s.Args {
		v, err := in.eval(a)
		if err != nil {
			return err
		}
		if i > 0 {
			sb.WriteString(in.ctx.OFS)
		}
		sb.WriteString(v.Str(in.ctx.OFMT))
	}
	sb.WriteString(in.ctx.ORS)
	return in.write(sb.String())
}

// sortedKeys orders array keys for for-in: numeric keys by value first,
// then the rest as strings.
func sortedKeys(arr map[string]types.Value) []string {
	keys := make([]string, 0, len(arr))
	for k := range arr {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, aok := types.LooksNumeric(keys[i])
		b, bok := types.LooksNumeric(keys[j])
		switch {
		case aok && bok && a != b && !math.IsNaN(a) && !math.IsNaN(b):
			return a < b
		case aok != bok:
			return aok
		}
		return keys[i] < keys[j]
	})
	return keys
}
