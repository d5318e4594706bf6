// Package interp evaluates parsed record-language programs.
package interp

import (
	"github.com/kolkov/vshell/internal/ast"
	"github.com/kolkov/vshell/internal/runtime"
	"github.com/kolkov/vshell/internal/token"
)

// Program is a parsed program prepared for running. It is read-only and
// may be run from several goroutines at once.
type Program struct {
	ast     *ast.Program
	funcs   map[string]*function
	regexes map[string]*runtime.Regex // literal patterns, POSIX mode
}

type function struct {
	decl   *ast.FuncDecl
	params map[string]int
	arrays []bool // params used as arrays
}

// New prepares prog. Regex literals are compiled here, so a bad pattern is
// reported before anything runs.
func New(prog *ast.Program) (*Program, error) {
	p := &Program{
		ast:     prog,
		funcs:   make(map[string]*function, len(prog.Funcs)),
		regexes: make(map[string]*runtime.Regex),
	}
	for _, decl := range prog.Funcs {
		fn := &function{
			decl:   decl,
			params: make(map[string]int, len(decl.Params)),
			arrays: make([]bool, len(decl.Params)),
		}
		for i, name := range decl.Params {
			fn.params[name] = i
		}
		p.funcs[decl.Name] = fn
	}
	p.resolveArrayParams()

	var err error
	ast.Walk(prog, func(n ast.Node) bool {
		if err != nil {
			return false
		}
		re, ok := n.(*ast.RegexLit)
		if !ok {
			return true
		}
		if _, seen := p.regexes[re.Pattern]; seen {
			return true
		}
		compiled, cerr := runtime.Compile(re.Pattern)
		if cerr != nil {
			err = &RegexError{Pos: re.Pos(), Pattern: re.Pattern, Err: cerr}
			return false
		}
		p.regexes[re.Pattern] = compiled
		return true
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// AST returns the syntax tree.
func (p *Program) AST() *ast.Program {
	return p.ast
}

// resolveArrayParams marks the parameters each function uses as arrays,
// directly or by passing them on to another function's array parameter.
func (p *Program) resolveArrayParams() {
	for changed := true; changed; {
		changed = false
		for _, fn := range p.funcs {
			mark := func(name string) {
				if i, ok := fn.params[name]; ok && !fn.arrays[i] {
					fn.arrays[i] = true
					changed = true
				}
			}
			ast.Walk(fn.decl.Body, func(n ast.Node) bool {
				switch n := n.(type) {
				case *ast.IndexExpr:
					mark(n.Array.Name)
				case *ast.InExpr:
					mark(n.Array.Name)
				case *ast.ForInStmt:
					mark(n.Array.Name)
				case *ast.DeleteStmt:
					mark(n.Array.Name)
				case *ast.BuiltinExpr:
					if n.Func == token.F_SPLIT {
						mark(n.Args[1].(*ast.Ident).Name)
					}
				case *ast.CallExpr:
					callee := p.funcs[n.Name]
					for i, arg := range n.Args {
						if id, ok := arg.(*ast.Ident); ok && callee != nil && i < len(callee.arrays) && callee.arrays[i] {
							mark(id.Name)
						}
					}
				}
				return true
			})
		}
	}
}
