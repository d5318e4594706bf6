// Package lexer turns record-language source into tokens.
package lexer

import (
	"fmt"
	"strings"

	"github.com/kolkov/vshell/internal/token"
)

// Lexer tokenizes program source. It is byte oriented: multi-byte UTF-8
// sequences can only appear inside strings, regexes and comments, where
// they are copied through unchanged.
type Lexer struct {
	src  []byte
	off  int // offset of the next unread byte
	line int
	col  int

	hadSpace bool        // whitespace preceded the last token
	lastTok  token.Token // previous token, decides regex vs division
}

// Token is a scanned token with its position and literal value.
// For ILLEGAL tokens Value holds the error message.
type Token struct {
	Type  token.Token
	Pos   token.Position
	Value string
}

// Error is a lexical error.
type Error struct {
	Pos     token.Position
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

// New creates a Lexer over src.
func New(src []byte) *Lexer {
	return &Lexer{src: src, line: 1, col: 1}
}

// NewFromString creates a Lexer from a string.
func NewFromString(src string) *Lexer {
	return New([]byte(src))
}

// Tokenize scans all of src. The returned slice ends with an EOF token.
func Tokenize(src string) ([]Token, error) {
	l := NewFromString(src)
	var toks []Token
	for {
		tok := l.Scan()
		if tok.Type == token.ILLEGAL {
			return toks, &Error{Pos: tok.Pos, Message: tok.Value}
		}
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			return toks, nil
		}
	}
}

// Scan returns the next token.
func (l *Lexer) Scan() Token {
	tok := l.scan()
	l.lastTok = tok.Type
	return tok
}

// HadSpace reports whether whitespace preceded the last scanned token.
// A function call requires the '(' to follow the name directly.
func (l *Lexer) HadSpace() bool {
	return l.hadSpace
}

// RescanRegex re-reads a DIV or DIV_ASSIGN token as the start of a regex
// literal. The parser calls it when a '/' shows up in operand position,
// which the previous-token heuristic cannot always see.
func (l *Lexer) RescanRegex(tok Token) Token {
	l.off = tok.Pos.Offset
	l.line = tok.Pos.Line
	l.col = tok.Pos.Column
	re := l.scanRegex()
	l.lastTok = re.Type
	return re
}

var twoCharOps = map[string]token.Token{
	"+=": token.ADD_ASSIGN,
	"-=": token.SUB_ASSIGN,
	"*=": token.MUL_ASSIGN,
	"/=": token.DIV_ASSIGN,
	"%=": token.MOD_ASSIGN,
	"^=": token.POW_ASSIGN,
	"==": token.EQUALS,
	"!=": token.NOT_EQUALS,
	"<=": token.LTE,
	">=": token.GTE,
	"&&": token.AND,
	"||": token.OR,
	"!~": token.NOT_MATCH,
	"++": token.INCR,
	"--": token.DECR,
	">>": token.APPEND,
}

var oneCharOps = map[byte]token.Token{
	'+': token.ADD,
	'-': token.SUB,
	'*': token.MUL,
	'/': token.DIV,
	'%': token.MOD,
	'^': token.POW,
	'=': token.ASSIGN,
	'<': token.LESS,
	'>': token.GREATER,
	'!': token.NOT,
	'~': token.MATCH,
	'|': token.PIPE,
	'(': token.LPAREN,
	')': token.RPAREN,
	'{': token.LBRACE,
	'}': token.RBRACE,
	'[': token.LBRACKET,
	']': token.RBRACKET,
	',': token.COMMA,
	';': token.SEMICOLON,
	':': token.COLON,
	'?': token.QUESTION,
	'$': token.DOLLAR,
}

func (l *Lexer) scan() Token {
	if pos, msg := l.skipBlanks(); msg != "" {
		return Token{Type: token.ILLEGAL, Pos: pos, Value: msg}
	}
	pos := l.pos()
	if l.off >= len(l.src) {
		return Token{Type: token.EOF, Pos: pos}
	}

	ch := l.src[l.off]
	switch {
	case ch == '\n':
		l.advance()
		return Token{Type: token.NEWLINE, Pos: pos}
	case ch == '"':
		return l.scanString()
	case isDigit(ch) || (ch == '.' && isDigit(l.peekAt(1))):
		return l.scanNumber()
	case isIdentStart(ch):
		return l.scanIdent()
	case ch == '/' && l.regexAllowed():
		return l.scanRegex()
	}

	if l.off+1 < len(l.src) {
		if t, ok := twoCharOps[string(l.src[l.off:l.off+2])]; ok {
			l.advance()
			l.advance()
			return Token{Type: t, Pos: pos, Value: t.String()}
		}
	}
	if t, ok := oneCharOps[ch]; ok {
		l.advance()
		return Token{Type: t, Pos: pos, Value: t.String()}
	}

	l.advance()
	return Token{Type: token.ILLEGAL, Pos: pos, Value: fmt.Sprintf("unexpected character %q", ch)}
}

// skipBlanks skips spaces, tabs, carriage returns, comments and
// backslash-newline continuations. It returns the position and a message
// for a stray backslash.
func (l *Lexer) skipBlanks() (token.Position, string) {
	l.hadSpace = false
	for l.off < len(l.src) {
		switch l.src[l.off] {
		case ' ', '\t', '\r':
			l.advance()
		case '#':
			for l.off < len(l.src) && l.src[l.off] != '\n' {
				l.advance()
			}
		case '\\':
			next := l.peekAt(1)
			if next == '\r' && l.peekAt(2) == '\n' {
				l.advance()
				next = '\n'
			}
			if next != '\n' {
				pos := l.pos()
				l.advance()
				return pos, "unexpected character '\\\\'"
			}
			l.advance()
			l.advance()
		default:
			return token.NoPos, ""
		}
		l.hadSpace = true
	}
	return token.NoPos, ""
}

func (l *Lexer) scanString() Token {
	pos := l.pos()
	l.advance() // opening quote
	start := l.off
	for l.off < len(l.src) && l.src[l.off] != '"' && l.src[l.off] != '\n' {
		if l.src[l.off] == '\\' && l.off+1 < len(l.src) && l.src[l.off+1] != '\n' {
			l.advance()
		}
		l.advance()
	}
	if l.off >= len(l.src) || l.src[l.off] != '"' {
		return Token{Type: token.ILLEGAL, Pos: pos, Value: "unterminated string"}
	}
	raw := string(l.src[start:l.off])
	l.advance() // closing quote
	return Token{Type: token.STRING, Pos: pos, Value: Unescape(raw)}
}

func (l *Lexer) scanRegex() Token {
	pos := l.pos()
	l.advance() // opening slash
	var sb strings.Builder
	for l.off < len(l.src) && l.src[l.off] != '/' && l.src[l.off] != '\n' {
		ch := l.src[l.off]
		if ch == '\\' && l.off+1 < len(l.src) {
			if l.src[l.off+1] == '/' {
				sb.WriteByte('/')
				l.advance()
				l.advance()
				continue
			}
			sb.WriteByte(ch)
			l.advance()
			ch = l.src[l.off]
			if ch == '\n' {
				break
			}
		}
		sb.WriteByte(ch)
		l.advance()
	}
	if l.off >= len(l.src) || l.src[l.off] != '/' {
		return Token{Type: token.ILLEGAL, Pos: pos, Value: "unterminated regex"}
	}
	l.advance() // closing slash
	return Token{Type: token.REGEX, Pos: pos, Value: sb.String()}
}

func (l *Lexer) scanNumber() Token {
	pos := l.pos()
	start := l.off
	for isDigit(l.peekAt(0)) {
		l.advance()
	}
	if l.peekAt(0) == '.' {
		l.advance()
		for isDigit(l.peekAt(0)) {
			l.advance()
		}
	}
	// 1e+a scans as 1, e, +, a
	if c := l.peekAt(0); c == 'e' || c == 'E' {
		n := 1
		if s := l.peekAt(1); s == '+' || s == '-' {
			n = 2
		}
		if isDigit(l.peekAt(n)) {
			for range n {
				l.advance()
			}
			for isDigit(l.peekAt(0)) {
				l.advance()
			}
		}
	}
	return Token{Type: token.NUMBER, Pos: pos, Value: string(l.src[start:l.off])}
}

func (l *Lexer) scanIdent() Token {
	pos := l.pos()
	start := l.off
	for isIdentStart(l.peekAt(0)) || isDigit(l.peekAt(0)) {
		l.advance()
	}
	name := string(l.src[start:l.off])
	return Token{Type: token.LookupIdent(name), Pos: pos, Value: name}
}

// regexAllowed reports whether a '/' after the previous token starts a
// regex rather than a division.
func (l *Lexer) regexAllowed() bool {
	switch l.lastTok {
	case token.NAME, token.NUMBER, token.STRING, token.REGEX,
		token.RPAREN, token.RBRACKET, token.DOLLAR, token.INCR, token.DECR:
		return false
	}
	return !l.lastTok.IsBuiltin()
}

func (l *Lexer) pos() token.Position {
	return token.Position{Line: l.line, Column: l.col, Offset: l.off}
}

func (l *Lexer) peekAt(n int) byte {
	if l.off+n < len(l.src) {
		return l.src[l.off+n]
	}
	return 0
}

func (l *Lexer) advance() {
	if l.off >= len(l.src) {
		return
	}
	if l.src[l.off] == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	l.off++
}

// Unescape decodes the backslash escapes of a string literal: \n \t \r
// \\ \" \/ \a \b \f \v and octal \ddd. An unknown escape keeps the
// backslash, the way most awks do. The awk command line applies it to
// -v values too.
func Unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 == len(s) {
			sb.WriteByte(c)
			continue
		}
		i++
		switch c = s[i]; c {
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r':
			sb.WriteByte('\r')
		case 'a':
			sb.WriteByte('\a')
		case 'b':
			sb.WriteByte('\b')
		case 'f':
			sb.WriteByte('\f')
		case 'v':
			sb.WriteByte('\v')
		case '\\', '"', '/':
			sb.WriteByte(c)
		case '0', '1', '2', '3', '4', '5', '6', '7':
			n := int(c - '0')
			for j := 0; j < 2 && i+1 < len(s) && s[i+1] >= '0' && s[i+1] <= '7'; j++ {
				i++
				n = n*8 + int(s[i]-'0')
			}
			sb.WriteByte(byte(n))
		default:
			sb.WriteByte('\\')
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}
