// Package token defines the lexical tokens of the record language.
package token

// Token represents a lexical token type.
type Token uint8

const (
	// Special tokens
	ILLEGAL Token = iota
	EOF
	NEWLINE
	CONCAT

	// Operators and delimiters
	operatorStart
	ADD
	ADD_ASSIGN
	SUB
	SUB_ASSIGN
	MUL
	MUL_ASSIGN
	DIV
	DIV_ASSIGN
	MOD
	MOD_ASSIGN
	POW
	POW_ASSIGN

	ASSIGN
	EQUALS
	NOT_EQUALS
	LESS
	LTE
	GREATER
	GTE

	AND
	OR
	NOT
	MATCH
	NOT_MATCH

	INCR
	DECR
	APPEND
	PIPE

	LPAREN
	RPAREN
	LBRACE
	RBRACE
	LBRACKET
	RBRACKET
	COMMA
	SEMICOLON
	COLON
	QUESTION
	DOLLAR
	operatorEnd

	// Keywords
	keywordStart
	BEGIN
	END
	IF
	ELSE
	WHILE
	FOR
	DO
	BREAK
	CONTINUE
	FUNCTION
	RETURN
	DELETE
	EXIT
	NEXT
	GETLINE
	PRINT
	PRINTF
	IN
	keywordEnd

	// Built-in functions
	builtinStart
	F_ATAN2
	F_COS
	F_EXP
	F_GSUB
	F_INDEX
	F_INT
	F_LENGTH
	F_LOG
	F_MATCH
	F_RAND
	F_SIN
	F_SPLIT
	F_SPRINTF
	F_SQRT
	F_SRAND
	F_SUB
	F_SUBSTR
	F_TOLOWER
	F_TOUPPER
	builtinEnd

	// Literals
	NAME
	NUMBER
	STRING
	REGEX
)

var names = [...]string{
	ILLEGAL: "<illegal>",
	EOF:     "EOF",
	NEWLINE: "<newline>",
	CONCAT:  "<concat>",

	ADD:        "+",
	ADD_ASSIGN: "+=",
	SUB:        "-",
	SUB_ASSIGN: "-=",
	MUL:        "*",
	MUL_ASSIGN: "*=",
	DIV:        "/",
	DIV_ASSIGN: "/=",
	MOD:        "%",
	MOD_ASSIGN: "%=",
	POW:        "^",
	POW_ASSIGN: "^=",
	ASSIGN:     "=",
	EQUALS:     "==",
	NOT_EQUALS: "!=",
	LESS:       "<",
	LTE:        "<=",
	GREATER:    ">",
	GTE:        ">=",
	AND:        "&&",
	OR:         "||",
	NOT:        "!",
	MATCH:      "~",
	NOT_MATCH:  "!~",
	INCR:       "++",
	DECR:       "--",
	APPEND:     ">>",
	PIPE:       "|",
	LPAREN:     "(",
	RPAREN:     ")",
	LBRACE:     "{",
	RBRACE:     "}",
	LBRACKET:   "[",
	RBRACKET:   "]",
	COMMA:      ",",
	SEMICOLON:  ";",
	COLON:      ":",
	QUESTION:   "?",
	DOLLAR:     "$",

	BEGIN:    "BEGIN",
	END:      "END",
	IF:       "if",
	ELSE:     "else",
	WHILE:    "while",
	FOR:      "for",
	DO:       "do",
	BREAK:    "break",
	CONTINUE: "continue",
	FUNCTION: "function",
	RETURN:   "return",
	DELETE:   "delete",
	EXIT:     "exit",
	NEXT:     "next",
	GETLINE:  "getline",
	PRINT:    "print",
	PRINTF:   "printf",
	IN:       "in",

	F_ATAN2:   "atan2",
	F_COS:     "cos",
	F_EXP:     "exp",
	F_GSUB:    "gsub",
	F_INDEX:   "index",
	F_INT:     "int",
	F_LENGTH:  "length",
	F_LOG:     "log",
	F_MATCH:   "match",
	F_RAND:    "rand",
	F_SIN:     "sin",
	F_SPLIT:   "split",
	F_SPRINTF: "sprintf",
	F_SQRT:    "sqrt",
	F_SRAND:   "srand",
	F_SUB:     "sub",
	F_SUBSTR:  "substr",
	F_TOLOWER: "tolower",
	F_TOUPPER: "toupper",

	NAME:   "name",
	NUMBER: "number",
	STRING: "string",
	REGEX:  "regex",
}

// String returns the source spelling of operators, keywords and builtins,
// and a descriptive name for the other tokens.
func (t Token) String() string {
	if int(t) < len(names) && names[t] != "" {
		return names[t]
	}
	return "<unknown>"
}

// IsOperator returns true if the token is an operator or delimiter.
func (t Token) IsOperator() bool {
	return t > operatorStart && t < operatorEnd
}

// IsKeyword returns true if the token is a keyword.
func (t Token) IsKeyword() bool {
	return t > keywordStart && t < keywordEnd
}

// IsBuiltin returns true if the token is a built-in function.
func (t Token) IsBuiltin() bool {
	return t > builtinStart && t < builtinEnd
}

// IsLiteral returns true if the token is a name, number, string or regex.
func (t Token) IsLiteral() bool {
	return t == NAME || t == NUMBER || t == STRING || t == REGEX
}

// IsAssign reports whether t is "=" or a compound assignment operator.
func (t Token) IsAssign() bool {
	switch t {
	case ASSIGN, ADD_ASSIGN, SUB_ASSIGN, MUL_ASSIGN, DIV_ASSIGN, MOD_ASSIGN, POW_ASSIGN:
		return true
	}
	return false
}

// BinaryOf returns the arithmetic operator behind a compound assignment,
// e.g. ADD for ADD_ASSIGN. It returns ILLEGAL for anything else.
func (t Token) BinaryOf() Token {
	switch t {
	case ADD_ASSIGN:
		return ADD
	case SUB_ASSIGN:
		return SUB
	case MUL_ASSIGN:
		return MUL
	case DIV_ASSIGN:
		return DIV
	case MOD_ASSIGN:
		return MOD
	case POW_ASSIGN:
		return POW
	}
	return ILLEGAL
}

var idents = func() map[string]Token {
	m := make(map[string]Token)
	for t := keywordStart + 1; t < keywordEnd; t++ {
		m[names[t]] = t
	}
	for t := builtinStart + 1; t < builtinEnd; t++ {
		m[names[t]] = t
	}
	return m
}()

// LookupIdent returns the keyword or builtin token for ident, or NAME.
func LookupIdent(ident string) Token {
	if tok, ok := idents[ident]; ok {
		return tok
	}
	return NAME
}

// LookupBuiltin returns the token type for a builtin function, or ILLEGAL if not found.
func LookupBuiltin(name string) Token {
	if tok, ok := idents[name]; ok && tok.IsBuiltin() {
		return tok
	}
	return ILLEGAL
}
