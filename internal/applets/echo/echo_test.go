package echo

import (
	"bytes"
	"context"
	"testing"

	"github.com/kolkov/vshell/internal/core"
)

func TestEcho(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"words", []string{"hello", "world"}, "hello world\n"},
		{"no args", nil, "\n"},
		{"no newline", []string{"-n", "hi"}, "hi"},
		{"escapes off by default", []string{`a\tb`}, "a\\tb\n"},
		{"escapes", []string{"-e", `a\tb\nc`}, "a\tb\nc\n"},
		{"combined flags", []string{"-ne", `x\n`}, "x\n"},
		{"E disables", []string{"-e", "-E", `a\tb`}, "a\\tb\n"},
		{"octal", []string{"-e", `\0101`}, "A\n"},
		{"hex", []string{"-e", `\x41\x4a`}, "AJ\n"},
		{"bare hex", []string{"-e", `\xg`}, "\\xg\n"},
		{"stop output", []string{"-e", `ab\cde`}, "ab"},
		{"unknown escape", []string{"-e", `\q`}, "\\q\n"},
		{"not a flag", []string{"-x", "y"}, "-x y\n"},
		{"flag after text", []string{"a", "-n"}, "a -n\n"},
		{"lone dash", []string{"-"}, "-\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := &core.Process{Stdio: core.Stdio{Out: &out}}
			if code := Run(context.Background(), p, tt.args); code != core.ExitSuccess {
				t.Errorf("exit code = %d", code)
			}
			if out.String() != tt.want {
				t.Errorf("got %q, want %q", out.String(), tt.want)
			}
		})
	}
}

func TestEchoHelp(t *testing.T) {
	var out bytes.Buffer
	p := &core.Process{Stdio: core.Stdio{Out: &out}}
	Run(context.Background(), p, []string{"--help"})
	if !bytes.Contains(out.Bytes(), []byte("display a line of text")) {
		t.Errorf("help = %q", out.String())
	}
}

func FuzzProcessEscapes(f *testing.F) {
	for _, seed := range []string{`a\tb`, `\0101`, `\x4`, `\c`, `\`, `\\\\`} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, s string) {
		out, halt := processEscapes(s)
		if !halt && len(out) > len(s) {
			t.Errorf("processEscapes(%q) grew to %q", s, out)
		}
	})
}
