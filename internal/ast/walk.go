package ast

// Walk traverses the tree rooted at node in depth-first order, calling
// fn for each node. If fn returns false the node's children are skipped.
//
// Example: collect the names of all called functions
//
//	ast.Walk(prog, func(n ast.Node) bool {
//	    if c, ok := n.(*ast.CallExpr); ok {
//	        names = append(names, c.Name)
//	    }
//	    return true
//	})
func Walk(node Node, fn func(Node) bool) {
	if isNil(node) || !fn(node) {
		return
	}

	switch n := node.(type) {
	case *Program:
		for _, b := range n.Begin {
			Walk(b, fn)
		}
		for _, r := range n.Rules {
			Walk(r, fn)
		}
		for _, b := range n.End {
			Walk(b, fn)
		}
		for _, f := range n.Funcs {
			Walk(f, fn)
		}
	case *Rule:
		walkExpr(n.Pattern.Expr, fn)
		walkExpr(n.Pattern.Until, fn)
		if n.Action != nil {
			Walk(n.Action, fn)
		}
	case *FuncDecl:
		Walk(n.Body, fn)

	case *NumLit, *StrLit, *RegexLit, *Ident:
	case *FieldExpr:
		Walk(n.Index, fn)
	case *IndexExpr:
		Walk(n.Array, fn)
		walkList(n.Index, fn)
	case *BinaryExpr:
		Walk(n.Left, fn)
		Walk(n.Right, fn)
	case *UnaryExpr:
		Walk(n.Operand, fn)
	case *IncDecExpr:
		Walk(n.Target, fn)
	case *CondExpr:
		Walk(n.Cond, fn)
		Walk(n.Then, fn)
		Walk(n.Else, fn)
	case *AssignExpr:
		Walk(n.Target, fn)
		Walk(n.Value, fn)
	case *MatchExpr:
		Walk(n.Left, fn)
		Walk(n.Regex, fn)
	case *InExpr:
		walkList(n.Index, fn)
		Walk(n.Array, fn)
	case *GroupExpr:
		Walk(n.Expr, fn)
	case *CallExpr:
		walkList(n.Args, fn)
	case *BuiltinExpr:
		walkList(n.Args, fn)

	case *ExprStmt:
		Walk(n.Expr, fn)
	case *PrintStmt:
		walkList(n.Args, fn)
	case *BlockStmt:
		for _, s := range n.Stmts {
			Walk(s, fn)
		}
	case *IfStmt:
		Walk(n.Cond, fn)
		Walk(n.Then, fn)
		walkStmt(n.Else, fn)
	case *WhileStmt:
		Walk(n.Cond, fn)
		Walk(n.Body, fn)
	case *DoStmt:
		Walk(n.Body, fn)
		Walk(n.Cond, fn)
	case *ForStmt:
		walkStmt(n.Init, fn)
		walkExpr(n.Cond, fn)
		walkStmt(n.Post, fn)
		Walk(n.Body, fn)
	case *ForInStmt:
		Walk(n.Key, fn)
		Walk(n.Array, fn)
		Walk(n.Body, fn)
	case *BreakStmt, *ContinueStmt, *NextStmt:
	case *ExitStmt:
		walkExpr(n.Code, fn)
	case *ReturnStmt:
		walkExpr(n.Value, fn)
	case *DeleteStmt:
		Walk(n.Array, fn)
		walkList(n.Index, fn)
	}
}

func walkList(list []Expr, fn func(Node) bool) {
	for _, e := range list {
		Walk(e, fn)
	}
}

// walkExpr and walkStmt avoid handing a typed nil to Walk.
func walkExpr(e Expr, fn func(Node) bool) {
	if e != nil {
		Walk(e, fn)
	}
}

func walkStmt(s Stmt, fn func(Node) bool) {
	if s != nil {
		Walk(s, fn)
	}
}

func isNil(n Node) bool {
	if n == nil {
		return true
	}
	switch v := n.(type) {
	case *BlockStmt:
		return v == nil
	case *Ident:
		return v == nil
	}
	return false
}
