package lexer

import (
	"testing"

	"github.com/kolkov/vshell/internal/token"
)

// FuzzLexer checks that the lexer terminates on arbitrary input and keeps
// positions moving forward.
func FuzzLexer(f *testing.F) {
	seeds := []string{
		`{ print $1 }`,
		`BEGIN { FS = ":" }`,
		`/pattern/ { count++ }`,
		`END { print count }`,
		`$1 ~ /foo/ || $2 !~ /bar/`,
		`123 456.789 .5 1e10`,
		`"hello" "world\n" "tab\there"`,
		``,
		`# comment only`,
		`\\\n`,
		`"unterminated`,
		`/unterminated`,
		`arr[i,j,k]`,
		`/foo\/bar/`,
		`"emoji 🎉"`,
	}
	for _, seed := range seeds {
		f.Add([]byte(seed))
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		l := New(data)
		last := -1
		for i := 0; i <= len(data)+1; i++ {
			tok := l.Scan()
			if tok.Pos.Offset < last {
				t.Fatalf("position went backwards: %d after %d", tok.Pos.Offset, last)
			}
			last = tok.Pos.Offset
			if tok.Type == token.EOF {
				return
			}
		}
		t.Fatalf("no EOF after %d tokens", len(data)+2)
	})
}
