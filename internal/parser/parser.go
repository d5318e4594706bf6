package parser

import (
	"strconv"

	"github.com/kolkov/vshell/internal/ast"
	"github.com/kolkov/vshell/internal/lexer"
	"github.com/kolkov/vshell/internal/token"
)

// Parser is a recursive descent parser. It stops at the first error.
type Parser struct {
	lexer *lexer.Lexer
	tok   lexer.Token

	inBeginEnd bool   // next is not allowed
	funcName   string // enclosing function, empty at top level
	loopDepth  int    // break and continue need a loop

	noGreater bool // '>' is not a comparison directly inside print arguments

	// groupList holds the elements of a parenthesized comma list such as
	// (a, b). Only "print (a, b)" and "(a, b) in arr" may use one; group
	// is the placeholder node returned for it.
	groupList []ast.Expr
	group     *ast.GroupExpr

	calls []*ast.CallExpr
}

// Parse parses a complete program.
func Parse(src string) (prog *ast.Program, err error) {
	p := &Parser{lexer: lexer.NewFromString(src)}
	defer p.recover(&err)
	p.next()
	prog = p.program()
	p.checkCalls(prog)
	return prog, nil
}

// ParseExpr parses a single expression. It is mostly useful in tests.
func ParseExpr(src string) (expr ast.Expr, err error) {
	p := &Parser{lexer: lexer.NewFromString(src)}
	defer p.recover(&err)
	p.next()
	expr = p.expr()
	if p.tok.Type != token.EOF {
		p.unexpected()
	}
	return expr, nil
}

func (p *Parser) recover(err *error) {
	if r := recover(); r != nil {
		pe, ok := r.(*ParseError)
		if !ok {
			panic(r)
		}
		*err = pe
	}
}

func (p *Parser) fail(pos token.Position, format string, args ...any) {
	panic(errorf(pos, format, args...))
}

// -----------------------------------------------------------------------------
// Token handling
// -----------------------------------------------------------------------------

func (p *Parser) next() {
	p.tok = p.lexer.Scan()
	if p.tok.Type == token.ILLEGAL {
		p.fail(p.tok.Pos, "%s", p.tok.Value)
	}
}

func (p *Parser) expect(t token.Token) token.Position {
	pos := p.tok.Pos
	if p.tok.Type != t {
		p.fail(pos, "expected %s, got %s", describe(t, ""), p.tokenDesc())
	}
	p.next()
	return pos
}

func (p *Parser) expectName() *ast.Ident {
	id := &ast.Ident{Loc: ast.At(p.tok.Pos), Name: p.tok.Value}
	p.expect(token.NAME)
	return id
}

func (p *Parser) unexpected() {
	p.fail(p.tok.Pos, "unexpected %s", p.tokenDesc())
}

func (p *Parser) tokenDesc() string {
	return describe(p.tok.Type, p.tok.Value)
}

func describe(t token.Token, value string) string {
	switch t {
	case token.NAME, token.NUMBER:
		if value != "" {
			return value
		}
	case token.STRING:
		if value != "" {
			return strconv.Quote(value)
		}
	case token.EOF:
		return "end of input"
	case token.NEWLINE:
		return "newline"
	}
	return t.String()
}

func (p *Parser) optNewlines() {
	for p.tok.Type == token.NEWLINE {
		p.next()
	}
}

func (p *Parser) skipTerminators() {
	for p.tok.Type == token.NEWLINE || p.tok.Type == token.SEMICOLON {
		p.next()
	}
}

// endSimple consumes the terminator after a simple statement.
func (p *Parser) endSimple() {
	switch p.tok.Type {
	case token.SEMICOLON, token.NEWLINE:
		p.next()
		p.optNewlines()
	case token.RBRACE, token.EOF:
	case token.GREATER, token.APPEND, token.PIPE:
		p.fail(p.tok.Pos, "output redirection not supported")
	default:
		p.unexpected()
	}
}

// -----------------------------------------------------------------------------
// Program structure
// -----------------------------------------------------------------------------

func (p *Parser) program() *ast.Program {
	prog := &ast.Program{Loc: ast.At(p.tok.Pos)}
	p.skipTerminators()
	for p.tok.Type != token.EOF {
		switch p.tok.Type {
		case token.BEGIN:
			p.next()
			p.inBeginEnd = true
			prog.Begin = append(prog.Begin, p.block())
			p.inBeginEnd = false
		case token.END:
			p.next()
			p.inBeginEnd = true
			prog.End = append(prog.End, p.block())
			p.inBeginEnd = false
		case token.FUNCTION:
			fn := p.function()
			if prog.Func(fn.Name) != nil {
				p.fail(fn.Pos(), "function %q already defined", fn.Name)
			}
			prog.Funcs = append(prog.Funcs, fn)
		default:
			rule := p.rule()
			prog.Rules = append(prog.Rules, rule)
			if rule.Action == nil && p.tok.Type != token.EOF &&
				p.tok.Type != token.NEWLINE && p.tok.Type != token.SEMICOLON {
				p.unexpected()
			}
		}
		p.skipTerminators()
	}
	return prog
}

func (p *Parser) rule() *ast.Rule {
	rule := &ast.Rule{Loc: ast.At(p.tok.Pos)}
	if p.tok.Type != token.LBRACE {
		first := p.expr()
		switch {
		case p.tok.Type == token.COMMA:
			p.next()
			p.optNewlines()
			rule.Pattern = ast.Pattern{Kind: ast.PatternRange, Expr: first, Until: p.expr()}
		default:
			if _, ok := first.(*ast.RegexLit); ok {
				rule.Pattern = ast.Pattern{Kind: ast.PatternRegex, Expr: first}
			} else {
				rule.Pattern = ast.Pattern{Kind: ast.PatternExpr, Expr: first}
			}
		}
	}
	if p.tok.Type == token.LBRACE {
		rule.Action = p.block()
	}
	return rule
}

func (p *Parser) function() *ast.FuncDecl {
	fn := &ast.FuncDecl{Loc: ast.At(p.tok.Pos)}
	p.expect(token.FUNCTION)
	if p.tok.Type.IsBuiltin() {
		p.fail(p.tok.Pos, "cannot redefine builtin function %q", p.tok.Value)
	}
	fn.Name = p.expectName().Name
	p.expect(token.LPAREN)
	seen := make(map[string]bool)
	for p.tok.Type != token.RPAREN {
		if len(fn.Params) > 0 {
			p.expect(token.COMMA)
			p.optNewlines()
		}
		param := p.expectName()
		if param.Name == fn.Name {
			p.fail(param.Pos(), "cannot use function name %q as a parameter", fn.Name)
		}
		if seen[param.Name] {
			p.fail(param.Pos(), "duplicate parameter %q", param.Name)
		}
		seen[param.Name] = true
		fn.Params = append(fn.Params, param.Name)
	}
	p.next()
	p.optNewlines()

	p.funcName = fn.Name
	fn.Body = p.block()
	p.funcName = ""
	return fn
}

// checkCalls rejects calls to undefined functions and calls passing more
// arguments than the function declares.
func (p *Parser) checkCalls(prog *ast.Program) {
	for _, c := range p.calls {
		fn := prog.Func(c.Name)
		if fn == nil {
			p.fail(c.Pos(), "undefined function %q", c.Name)
		}
		if len(c.Args) > len(fn.Params) {
			p.fail(c.Pos(), "%q called with %d arguments, accepts %d", c.Name, len(c.Args), len(fn.Params))
		}
	}
}

func (p *Parser) block() *ast.BlockStmt {
	b := &ast.BlockStmt{Loc: ast.At(p.tok.Pos)}
	p.expect(token.LBRACE)
	p.skipTerminators()
	for p.tok.Type != token.RBRACE {
		if p.tok.Type == token.EOF {
			p.fail(p.tok.Pos, "unexpected end of input, expected }")
		}
		if s := p.stmt(); s != nil {
			b.Stmts = append(b.Stmts, s)
		}
		p.skipTerminators()
	}
	p.next()
	return b
}

// -----------------------------------------------------------------------------
// Statements
// -----------------------------------------------------------------------------

func (p *Parser) stmt() ast.Stmt {
	pos := p.tok.Pos
	switch p.tok.Type {
	case token.SEMICOLON:
		p.next()
		return nil
	case token.LBRACE:
		return p.block()
	case token.IF:
		p.next()
		p.expect(token.LPAREN)
		s := &ast.IfStmt{Loc: ast.At(pos), Cond: p.expr()}
		p.expect(token.RPAREN)
		s.Then = p.body()
		p.skipTerminators()
		if p.tok.Type == token.ELSE {
			p.next()
			s.Else = p.body()
		}
		return s
	case token.WHILE:
		p.next()
		p.expect(token.LPAREN)
		s := &ast.WhileStmt{Loc: ast.At(pos), Cond: p.expr()}
		p.expect(token.RPAREN)
		if p.tok.Type == token.SEMICOLON {
			p.next()
			s.Body = &ast.BlockStmt{Loc: ast.At(pos)}
			return s
		}
		s.Body = p.loopBody()
		return s
	case token.DO:
		p.next()
		s := &ast.DoStmt{Loc: ast.At(pos), Body: p.loopBody()}
		p.skipTerminators()
		p.expect(token.WHILE)
		p.expect(token.LPAREN)
		s.Cond = p.expr()
		p.expect(token.RPAREN)
		p.endSimple()
		return s
	case token.FOR:
		return p.forStmt()
	}

	s := p.simpleStmt()
	p.endSimple()
	return s
}

// body parses the statement controlled by if, else or a loop header.
// A lone ';' is an empty body.
func (p *Parser) body() ast.Stmt {
	p.optNewlines()
	if p.tok.Type == token.SEMICOLON {
		pos := p.tok.Pos
		p.next()
		return &ast.BlockStmt{Loc: ast.At(pos)}
	}
	return p.stmt()
}

func (p *Parser) loopBody() ast.Stmt {
	p.loopDepth++
	defer func() { p.loopDepth-- }()
	return p.body()
}

func (p *Parser) forStmt() ast.Stmt {
	pos := p.expect(token.FOR)
	p.expect(token.LPAREN)

	var init ast.Stmt
	if p.tok.Type != token.SEMICOLON {
		init = p.simpleStmt()
	}
	// for (k in a) parses its header as the expression "k in a".
	if p.tok.Type == token.RPAREN {
		if es, ok := init.(*ast.ExprStmt); ok {
			if in, ok := es.Expr.(*ast.InExpr); ok && len(in.Index) == 1 {
				if key, ok := in.Index[0].(*ast.Ident); ok {
					p.next()
					return &ast.ForInStmt{Loc: ast.At(pos), Key: key, Array: in.Array, Body: p.loopBody()}
				}
			}
		}
		p.unexpected()
	}

	s := &ast.ForStmt{Loc: ast.At(pos), Init: init}
	p.expect(token.SEMICOLON)
	p.optNewlines()
	if p.tok.Type != token.SEMICOLON {
		s.Cond = p.expr()
	}
	p.expect(token.SEMICOLON)
	p.optNewlines()
	if p.tok.Type != token.RPAREN {
		s.Post = p.simpleStmt()
	}
	p.expect(token.RPAREN)
	s.Body = p.loopBody()
	return s
}

func (p *Parser) simpleStmt() ast.Stmt {
	pos := p.tok.Pos
	switch p.tok.Type {
	case token.PRINT, token.PRINTF:
		return p.printStmt()
	case token.BREAK, token.CONTINUE:
		if p.loopDepth == 0 {
			p.fail(pos, "%s outside a loop", p.tok.Type)
		}
		t := p.tok.Type
		p.next()
		if t == token.BREAK {
			return &ast.BreakStmt{Loc: ast.At(pos)}
		}
		return &ast.ContinueStmt{Loc: ast.At(pos)}
	case token.NEXT:
		if p.inBeginEnd {
			p.fail(pos, "next used in BEGIN or END action")
		}
		p.next()
		return &ast.NextStmt{Loc: ast.At(pos)}
	case token.EXIT:
		p.next()
		s := &ast.ExitStmt{Loc: ast.At(pos)}
		if !p.atTerminator() {
			s.Code = p.expr()
		}
		return s
	case token.RETURN:
		if p.funcName == "" {
			p.fail(pos, "return outside a function")
		}
		p.next()
		s := &ast.ReturnStmt{Loc: ast.At(pos)}
		if !p.atTerminator() {
			s.Value = p.expr()
		}
		return s
	case token.DELETE:
		p.next()
		s := &ast.DeleteStmt{Loc: ast.At(pos), Array: p.expectName()}
		if p.tok.Type == token.LBRACKET {
			p.next()
			s.Index = p.exprList(token.RBRACKET)
			p.expect(token.RBRACKET)
		}
		return s
	case token.GETLINE:
		p.fail(pos, "getline not supported")
	}
	return &ast.ExprStmt{Loc: ast.At(pos), Expr: p.expr()}
}

func (p *Parser) atTerminator() bool {
	switch p.tok.Type {
	case token.NEWLINE, token.SEMICOLON, token.RBRACE, token.EOF:
		return true
	}
	return false
}

func (p *Parser) printStmt() *ast.PrintStmt {
	s := &ast.PrintStmt{Loc: ast.At(p.tok.Pos), Printf: p.tok.Type == token.PRINTF}
	p.next()
	if !p.atTerminator() && p.tok.Type != token.GREATER && p.tok.Type != token.APPEND && p.tok.Type != token.PIPE {
		s.Args = p.printArgs()
	}
	if s.Printf && len(s.Args) == 0 {
		p.fail(s.Pos(), "printf needs a format argument")
	}
	return s
}

func (p *Parser) printArgs() []ast.Expr {
	saved := p.noGreater
	p.noGreater = true
	defer func() { p.noGreater = saved }()

	p.group, p.groupList = nil, nil
	first := p.expr()
	if p.group != nil {
		group, list := p.group, p.groupList
		p.group, p.groupList = nil, nil
		if first != ast.Expr(group) || !p.atPrintEnd() {
			p.fail(group.Pos(), "unexpected parenthesized list")
		}
		return list
	}
	args := []ast.Expr{first}
	for p.tok.Type == token.COMMA {
		p.next()
		p.optNewlines()
		args = append(args, p.expr())
		if p.group != nil {
			p.fail(p.group.Pos(), "unexpected parenthesized list")
		}
	}
	return args
}

func (p *Parser) atPrintEnd() bool {
	switch p.tok.Type {
	case token.GREATER, token.APPEND, token.PIPE:
		return true
	}
	return p.atTerminator()
}

// -----------------------------------------------------------------------------
// Expressions, lowest precedence first
// -----------------------------------------------------------------------------

func (p *Parser) expr() ast.Expr {
	e := p.assign()
	if p.group != nil && !p.noGreater {
		p.fail(p.group.Pos(), "unexpected parenthesized list")
	}
	return e
}

// exprList parses comma separated expressions until end, which is not
// consumed. Inside brackets and call parentheses '>' is a comparison again.
func (p *Parser) exprList(end token.Token) []ast.Expr {
	saved := p.noGreater
	p.noGreater = false
	defer func() { p.noGreater = saved }()

	var list []ast.Expr
	p.optNewlines()
	for p.tok.Type != end {
		if len(list) > 0 {
			p.expect(token.COMMA)
			p.optNewlines()
		}
		list = append(list, p.expr())
		p.optNewlines()
	}
	return list
}

func (p *Parser) assign() ast.Expr {
	left := p.cond()
	if p.tok.Type.IsAssign() && ast.IsLValue(left) {
		pos, op := p.tok.Pos, p.tok.Type
		p.next()
		p.optNewlines()
		return &ast.AssignExpr{Loc: ast.At(pos), Op: op, Target: left, Value: p.assign()}
	}
	return left
}

func (p *Parser) cond() ast.Expr {
	c := p.or()
	if p.tok.Type != token.QUESTION {
		return c
	}
	pos := p.tok.Pos
	p.next()
	p.optNewlines()
	then := p.assign()
	p.optNewlines()
	p.expect(token.COLON)
	p.optNewlines()
	return &ast.CondExpr{Loc: ast.At(pos), Cond: c, Then: then, Else: p.assign()}
}

func (p *Parser) or() ast.Expr {
	left := p.and()
	for p.tok.Type == token.OR {
		pos := p.tok.Pos
		p.next()
		p.optNewlines()
		left = &ast.BinaryExpr{Loc: ast.At(pos), Op: token.OR, Left: left, Right: p.and()}
	}
	return left
}

func (p *Parser) and() ast.Expr {
	left := p.in()
	for p.tok.Type == token.AND {
		pos := p.tok.Pos
		p.next()
		p.optNewlines()
		left = &ast.BinaryExpr{Loc: ast.At(pos), Op: token.AND, Left: left, Right: p.in()}
	}
	return left
}

func (p *Parser) in() ast.Expr {
	left := p.match()
	for p.tok.Type == token.IN {
		pos := p.tok.Pos
		p.next()
		index := []ast.Expr{left}
		if p.group != nil && left == ast.Expr(p.group) {
			index = p.groupList
			p.group, p.groupList = nil, nil
		}
		left = &ast.InExpr{Loc: ast.At(pos), Index: index, Array: p.expectName()}
	}
	return left
}

func (p *Parser) match() ast.Expr {
	left := p.compare()
	for p.tok.Type == token.MATCH || p.tok.Type == token.NOT_MATCH {
		pos, negate := p.tok.Pos, p.tok.Type == token.NOT_MATCH
		p.next()
		left = &ast.MatchExpr{Loc: ast.At(pos), Left: left, Regex: p.compare(), Negate: negate}
	}
	return left
}

func (p *Parser) compare() ast.Expr {
	left := p.concat()
	switch p.tok.Type {
	case token.LESS, token.LTE, token.EQUALS, token.NOT_EQUALS, token.GTE:
	case token.GREATER:
		if p.noGreater {
			return left
		}
	default:
		return left
	}
	pos, op := p.tok.Pos, p.tok.Type
	p.next()
	return &ast.BinaryExpr{Loc: ast.At(pos), Op: op, Left: left, Right: p.concat()}
}

func (p *Parser) concat() ast.Expr {
	left := p.additive()
	for p.startsOperand() {
		pos := p.tok.Pos
		left = &ast.BinaryExpr{Loc: ast.At(pos), Op: token.CONCAT, Left: left, Right: p.additive()}
	}
	return left
}

// startsOperand reports whether the current token can begin the right
// side of a concatenation. '+' and '-' are always binary here.
func (p *Parser) startsOperand() bool {
	switch p.tok.Type {
	case token.DOLLAR, token.NOT, token.LPAREN, token.NAME, token.NUMBER,
		token.STRING, token.INCR, token.DECR:
		return true
	}
	return p.tok.Type.IsBuiltin()
}

func (p *Parser) additive() ast.Expr {
	left := p.multiplicative()
	for p.tok.Type == token.ADD || p.tok.Type == token.SUB {
		pos, op := p.tok.Pos, p.tok.Type
		p.next()
		left = &ast.BinaryExpr{Loc: ast.At(pos), Op: op, Left: left, Right: p.multiplicative()}
	}
	return left
}

func (p *Parser) multiplicative() ast.Expr {
	left := p.unary()
	for p.tok.Type == token.MUL || p.tok.Type == token.DIV || p.tok.Type == token.MOD {
		pos, op := p.tok.Pos, p.tok.Type
		p.next()
		left = &ast.BinaryExpr{Loc: ast.At(pos), Op: op, Left: left, Right: p.unary()}
	}
	return left
}

func (p *Parser) unary() ast.Expr {
	switch p.tok.Type {
	case token.NOT, token.SUB, token.ADD:
		pos, op := p.tok.Pos, p.tok.Type
		p.next()
		return &ast.UnaryExpr{Loc: ast.At(pos), Op: op, Operand: p.unary()}
	}
	return p.pow()
}

// pow is right associative and binds tighter than unary minus: -2^2 is -4.
func (p *Parser) pow() ast.Expr {
	base := p.incDec()
	if p.tok.Type != token.POW {
		return base
	}
	pos := p.tok.Pos
	p.next()
	return &ast.BinaryExpr{Loc: ast.At(pos), Op: token.POW, Left: base, Right: p.unary()}
}

func (p *Parser) incDec() ast.Expr {
	if p.tok.Type == token.INCR || p.tok.Type == token.DECR {
		pos, op := p.tok.Pos, p.tok.Type
		p.next()
		target := p.primary()
		if !ast.IsLValue(target) {
			p.fail(target.Pos(), "%s needs a variable, field or array element", op)
		}
		return &ast.IncDecExpr{Loc: ast.At(pos), Op: op, Target: target}
	}
	e := p.primary()
	if (p.tok.Type == token.INCR || p.tok.Type == token.DECR) && ast.IsLValue(e) {
		op := p.tok.Type
		p.next()
		return &ast.IncDecExpr{Loc: ast.At(e.Pos()), Op: op, Target: e, Post: true}
	}
	return e
}

func (p *Parser) primary() ast.Expr {
	pos := p.tok.Pos
	switch p.tok.Type {
	case token.NUMBER:
		raw := p.tok.Value
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			p.fail(pos, "invalid number %q", raw)
		}
		p.next()
		return &ast.NumLit{Loc: ast.At(pos), Value: v, Raw: raw}

	case token.STRING:
		s := &ast.StrLit{Loc: ast.At(pos), Value: p.tok.Value}
		p.next()
		return s

	case token.REGEX:
		re := &ast.RegexLit{Loc: ast.At(pos), Pattern: p.tok.Value}
		p.next()
		return re

	case token.DIV, token.DIV_ASSIGN:
		// A '/' the lexer took for division starts a regex here.
		p.tok = p.lexer.RescanRegex(p.tok)
		if p.tok.Type == token.ILLEGAL {
			p.fail(p.tok.Pos, "%s", p.tok.Value)
		}
		return p.primary()

	case token.DOLLAR:
		p.next()
		var index ast.Expr
		switch p.tok.Type {
		case token.INCR, token.DECR:
			index = p.incDec()
		case token.SUB, token.ADD, token.NOT:
			op, opPos := p.tok.Type, p.tok.Pos
			p.next()
			index = &ast.UnaryExpr{Loc: ast.At(opPos), Op: op, Operand: p.primary()}
		default:
			index = p.primary()
		}
		return &ast.FieldExpr{Loc: ast.At(pos), Index: index}

	case token.LPAREN:
		p.next()
		list := p.exprList(token.RPAREN)
		p.expect(token.RPAREN)
		switch {
		case len(list) == 0:
			p.fail(pos, "empty parentheses")
		case len(list) > 1:
			if p.tok.Type != token.IN && !p.noGreater {
				p.fail(pos, "unexpected parenthesized list")
			}
			p.group = &ast.GroupExpr{Loc: ast.At(pos), Expr: list[0]}
			p.groupList = list
			return p.group
		}
		return &ast.GroupExpr{Loc: ast.At(pos), Expr: list[0]}

	case token.NAME:
		name := p.tok.Value
		p.next()
		switch {
		case p.tok.Type == token.LBRACKET:
			p.next()
			index := p.exprList(token.RBRACKET)
			if len(index) == 0 {
				p.fail(p.tok.Pos, "empty array subscript")
			}
			p.expect(token.RBRACKET)
			return &ast.IndexExpr{Loc: ast.At(pos), Array: &ast.Ident{Loc: ast.At(pos), Name: name}, Index: index}
		case p.tok.Type == token.LPAREN && !p.lexer.HadSpace():
			p.next()
			call := &ast.CallExpr{Loc: ast.At(pos), Name: name, Args: p.exprList(token.RPAREN)}
			p.expect(token.RPAREN)
			p.calls = append(p.calls, call)
			return call
		}
		return &ast.Ident{Loc: ast.At(pos), Name: name}

	case token.GETLINE:
		p.fail(pos, "getline not supported")
	}

	if p.tok.Type.IsBuiltin() {
		return p.builtin()
	}
	p.unexpected()
	return nil
}

// arity is the allowed argument count range of each builtin.
var arity = map[token.Token][2]int{
	token.F_ATAN2:   {2, 2},
	token.F_COS:     {1, 1},
	token.F_EXP:     {1, 1},
	token.F_GSUB:    {2, 3},
	token.F_INDEX:   {2, 2},
	token.F_INT:     {1, 1},
	token.F_LENGTH:  {0, 1},
	token.F_LOG:     {1, 1},
	token.F_MATCH:   {2, 2},
	token.F_RAND:    {0, 0},
	token.F_SIN:     {1, 1},
	token.F_SPLIT:   {2, 3},
	token.F_SPRINTF: {1, -1},
	token.F_SQRT:    {1, 1},
	token.F_SRAND:   {0, 1},
	token.F_SUB:     {2, 3},
	token.F_SUBSTR:  {2, 3},
	token.F_TOLOWER: {1, 1},
	token.F_TOUPPER: {1, 1},
}

func (p *Parser) builtin() ast.Expr {
	pos, fn := p.tok.Pos, p.tok.Type
	p.next()
	b := &ast.BuiltinExpr{Loc: ast.At(pos), Func: fn}

	if p.tok.Type != token.LPAREN {
		if fn == token.F_LENGTH {
			return b
		}
		p.fail(p.tok.Pos, "expected ( after %s", fn)
	}
	p.next()
	b.Args = p.exprList(token.RPAREN)
	p.expect(token.RPAREN)

	n := len(b.Args)
	if r := arity[fn]; n < r[0] || (r[1] >= 0 && n > r[1]) {
		p.fail(pos, "wrong number of arguments to %s", fn)
	}
	switch fn {
	case token.F_SPLIT:
		if _, ok := b.Args[1].(*ast.Ident); !ok {
			p.fail(b.Args[1].Pos(), "split needs an array name as its second argument")
		}
	case token.F_SUB, token.F_GSUB:
		if n == 3 && !ast.IsLValue(b.Args[2]) {
			p.fail(b.Args[2].Pos(), "%s needs a variable, field or array element as its target", fn)
		}
	}
	return b
}
