package lexer

import (
	"errors"
	"testing"

	"github.com/kolkov/vshell/internal/token"
)

func TestScanOperators(t *testing.T) {
	tests := []struct {
		input    string
		expected []token.Token
	}{
		{"+", []token.Token{token.ADD, token.EOF}},
		{"++", []token.Token{token.INCR, token.EOF}},
		{"+=", []token.Token{token.ADD_ASSIGN, token.EOF}},
		{"-", []token.Token{token.SUB, token.EOF}},
		{"--", []token.Token{token.DECR, token.EOF}},
		{"x /= 1", []token.Token{token.NAME, token.DIV_ASSIGN, token.NUMBER, token.EOF}},
		{"a / b", []token.Token{token.NAME, token.DIV, token.NAME, token.EOF}},
		{"%=", []token.Token{token.MOD_ASSIGN, token.EOF}},
		{"^", []token.Token{token.POW, token.EOF}},
		{"== != < <= > >=", []token.Token{token.EQUALS, token.NOT_EQUALS, token.LESS, token.LTE, token.GREATER, token.GTE, token.EOF}},
		{"&& || !", []token.Token{token.AND, token.OR, token.NOT, token.EOF}},
		{"~ !~", []token.Token{token.MATCH, token.NOT_MATCH, token.EOF}},
		{">> |", []token.Token{token.APPEND, token.PIPE, token.EOF}},
		{"( ) { } [ ]", []token.Token{token.LPAREN, token.RPAREN, token.LBRACE, token.RBRACE, token.LBRACKET, token.RBRACKET, token.EOF}},
		{", ; : ? $", []token.Token{token.COMMA, token.SEMICOLON, token.COLON, token.QUESTION, token.DOLLAR, token.EOF}},
		{"\n", []token.Token{token.NEWLINE, token.EOF}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			l := NewFromString(tt.input)
			for i, exp := range tt.expected {
				tok := l.Scan()
				if tok.Type != exp {
					t.Errorf("token[%d]: expected %v, got %v", i, exp, tok.Type)
				}
			}
		})
	}
}

func TestScanKeywordsAndBuiltins(t *testing.T) {
	tests := []struct {
		input string
		want  token.Token
	}{
		{"BEGIN", token.BEGIN},
		{"END", token.END},
		{"print", token.PRINT},
		{"printf", token.PRINTF},
		{"function", token.FUNCTION},
		{"getline", token.GETLINE},
		{"in", token.IN},
		{"length", token.F_LENGTH},
		{"substr", token.F_SUBSTR},
		{"gsub", token.F_GSUB},
		{"NR", token.NAME},
		{"begin", token.NAME},
		{"_x1", token.NAME},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tok := NewFromString(tt.input).Scan()
			if tok.Type != tt.want {
				t.Errorf("Scan(%q) = %v, want %v", tt.input, tok.Type, tt.want)
			}
			if tok.Value != tt.input {
				t.Errorf("Value = %q, want %q", tok.Value, tt.input)
			}
		})
	}
}

func TestScanNumbers(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"42", "42"},
		{"3.14", "3.14"},
		{".5", ".5"},
		{"1e10", "1e10"},
		{"2E-3", "2E-3"},
		{"1e+a", "1"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tok := NewFromString(tt.input).Scan()
			if tok.Type != token.NUMBER {
				t.Fatalf("type = %v, want number", tok.Type)
			}
			if tok.Value != tt.want {
				t.Errorf("Value = %q, want %q", tok.Value, tt.want)
			}
		})
	}
}

func TestScanStrings(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`"hello"`, "hello"},
		{`"a\nb"`, "a\nb"},
		{`"tab\there"`, "tab\there"},
		{`"q\"q"`, `q"q`},
		{`"back\\slash"`, `back\slash`},
		{`"\101"`, "A"},
		{`"\q"`, `\q`},
		{`"привет"`, "привет"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tok := NewFromString(tt.input).Scan()
			if tok.Type != token.STRING {
				t.Fatalf("type = %v (%s), want string", tok.Type, tok.Value)
			}
			if tok.Value != tt.want {
				t.Errorf("Value = %q, want %q", tok.Value, tt.want)
			}
		})
	}
}

func TestScanRegexVersusDivision(t *testing.T) {
	tests := []struct {
		input string
		types []token.Token
		regex string
	}{
		{"/^a/", []token.Token{token.REGEX, token.EOF}, "^a"},
		{"$0 ~ /x+/", []token.Token{token.DOLLAR, token.NUMBER, token.MATCH, token.REGEX, token.EOF}, "x+"},
		{`/a\/b/`, []token.Token{token.REGEX, token.EOF}, "a/b"},
		{`/\./`, []token.Token{token.REGEX, token.EOF}, `\.`},
		{"x / 2 / 3", []token.Token{token.NAME, token.DIV, token.NUMBER, token.DIV, token.NUMBER, token.EOF}, ""},
		{"(a) / 2", []token.Token{token.LPAREN, token.NAME, token.RPAREN, token.DIV, token.NUMBER, token.EOF}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			l := NewFromString(tt.input)
			for i, exp := range tt.types {
				tok := l.Scan()
				if tok.Type != exp {
					t.Fatalf("token[%d] = %v, want %v", i, tok.Type, exp)
				}
				if tok.Type == token.REGEX && tok.Value != tt.regex {
					t.Errorf("regex = %q, want %q", tok.Value, tt.regex)
				}
			}
		})
	}
}

func TestRescanRegex(t *testing.T) {
	l := NewFromString("x /=b/")
	if tok := l.Scan(); tok.Type != token.NAME {
		t.Fatalf("first token = %v", tok.Type)
	}
	div := l.Scan()
	if div.Type != token.DIV_ASSIGN {
		t.Fatalf("second token = %v, want /=", div.Type)
	}
	re := l.RescanRegex(div)
	if re.Type != token.REGEX || re.Value != "=b" {
		t.Fatalf("RescanRegex = %v %q, want regex \"=b\"", re.Type, re.Value)
	}
	if tok := l.Scan(); tok.Type != token.EOF {
		t.Errorf("after rescan = %v, want EOF", tok.Type)
	}
}

func TestPositions(t *testing.T) {
	l := NewFromString("BEGIN {\n  x = 1\n}")
	want := []token.Position{
		{Line: 1, Column: 1, Offset: 0},
		{Line: 1, Column: 7, Offset: 6},
		{Line: 1, Column: 8, Offset: 7},
		{Line: 2, Column: 3, Offset: 10},
	}
	for i, w := range want {
		tok := l.Scan()
		if tok.Pos != w {
			t.Errorf("token[%d] %v at %+v, want %+v", i, tok.Type, tok.Pos, w)
		}
	}
}

func TestCommentsAndContinuation(t *testing.T) {
	l := NewFromString("a # comment\\\nb \\\nc")
	want := []token.Token{token.NAME, token.NEWLINE, token.NAME, token.NAME, token.EOF}
	for i, w := range want {
		if tok := l.Scan(); tok.Type != w {
			t.Errorf("token[%d] = %v, want %v", i, tok.Type, w)
		}
	}
}

func TestHadSpace(t *testing.T) {
	l := NewFromString("f(x) g (y)")
	l.Scan() // f
	l.Scan() // (
	if l.HadSpace() {
		t.Error("HadSpace after f = true, want false")
	}
	l.Scan() // x
	l.Scan() // )
	l.Scan() // g
	l.Scan() // (
	if !l.HadSpace() {
		t.Error("HadSpace after g = false, want true")
	}
}

func TestTokenizeErrors(t *testing.T) {
	tests := []struct {
		input string
		msg   string
		line  int
		col   int
	}{
		{`"abc`, "unterminated string", 1, 1},
		{"x ~ /abc", "unterminated regex", 1, 5},
		{"{ print }\n  @", `unexpected character '@'`, 2, 3},
		{"a & b", `unexpected character '&'`, 1, 3},
		{`a \ b`, `unexpected character '\\'`, 1, 3},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := Tokenize(tt.input)
			var lerr *Error
			if !errors.As(err, &lerr) {
				t.Fatalf("Tokenize() error = %v, want *Error", err)
			}
			if lerr.Message != tt.msg {
				t.Errorf("Message = %q, want %q", lerr.Message, tt.msg)
			}
			if lerr.Pos.Line != tt.line || lerr.Pos.Column != tt.col {
				t.Errorf("Pos = %v, want %d:%d", lerr.Pos, tt.line, tt.col)
			}
		})
	}
}

func TestTokenize(t *testing.T) {
	toks, err := Tokenize(`{ print $1, "x" }`)
	if err != nil {
		t.Fatalf("Tokenize() error = %v", err)
	}
	want := []token.Token{token.LBRACE, token.PRINT, token.DOLLAR, token.NUMBER, token.COMMA, token.STRING, token.RBRACE, token.EOF}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(want))
	}
	for i := range want {
		if toks[i].Type != want[i] {
			t.Errorf("token[%d] = %v, want %v", i, toks[i].Type, want[i])
		}
	}
}

func TestUnescape(t *testing.T) {
	tests := []struct{ in, want string }{
		{"plain", "plain"},
		{`a\tb`, "a\tb"},
		{`\n`, "\n"},
		{`x\`, `x\`},
		{`\/`, "/"},
		{`\052`, "*"},
	}
	for _, tt := range tests {
		if got := Unescape(tt.in); got != tt.want {
			t.Errorf("Unescape(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
