package awk_test

import (
	"bytes"
	"strings"
	"testing"

	goawkinterp "github.com/benhoyt/goawk/interp"
	goawkparser "github.com/benhoyt/goawk/parser"

	"github.com/kolkov/vshell/awk"
)

// compatTests run through both this engine and GoAWK; the outputs must
// agree. Programs avoid for-in over several keys, since GoAWK iterates
// maps in random order. They also avoid comparing or testing numeric-looking
// string constants, which GoAWK treats as plain strings. Field separators
// are regular expressions there, so RegexFS is on.
var compatTests = []struct {
	src string
	in  string
}{
	{`{ print $1 }`, "hello world\nfoo bar\n"},
	{`{ print $1, $3 }`, "a b c\n1 2 3\n"},
	{`{ print $2 }`, "one\ntwo three\n"},
	{`{ print NR, NF, $NF }`, "a b\n\n  c d e  \n"},
	{`BEGIN { FS = "," } { print $2 }`, "a,b,c\n1,,3\n"},
	{`BEGIN { FS = "[0-9]+" } { print NF, $2 }`, "a1b22c\n"},
	{`{ $3 = "x"; print; print NF }`, "a b\n"},
	{`BEGIN { OFS = "-" } { NF = 2; print }`, "a b c d\n"},
	{`{ s += $1 } END { print s, s / NR }`, "1\n2\n3\n4\n"},
	{`BEGIN { print 1/3, 100000 * 100000, 0.1 + 0.2 }`, ""},
	{`BEGIN { x = "3x"; print x + 0, "1e3" + 0, "abc" + 1 }`, ""},
	{`{ print ($1 < $2) }`, "9 10\nabc 10\n10 9\n"},
	{`BEGIN { print ("abc" < "abd"), (9 < 10), ("a" < "b") }`, ""},
	{`/^a/, /^c/`, "x\na\nb\nc\nd\na\n"},
	{`NR % 2 == 0`, "1\n2\n3\n4\n"},
	{`!seen[$0]++`, "a\nb\na\nc\nb\n"},
	{`{ n = split($0, p, ":"); print n, p[1], p[n] }`, "a:b:c\nsolo\n"},
	{`{ gsub(/[aeiou]/, "<&>"); print }`, "education\n"},
	{`{ sub(/o+/, "0"); print }`, "foo boo\n"},
	{`{ print length(), length($1), index($0, "lo") }`, "hello world\n"},
	{`{ print substr($0, 2), substr($0, 0, 3), substr($0, 4, 100) }`, "abcdef\n"},
	{`{ print toupper($1) tolower($2) }`, "abc DEF\n"},
	{`{ if (match($0, /[0-9]+/)) print RSTART, RLENGTH }`, "abc123def\nnone\n"},
	{`BEGIN { printf "%5.2f|%-4d|%x|%o|%c|%e\n", 3.14159, 7, 255, 8, 65, 12345.678 }`, ""},
	{`function fib(n) { return n < 2 ? n : fib(n-1) + fib(n-2) } BEGIN { print fib(20) }`, ""},
	{`function f(a) { a["x"] = 1 } BEGIN { f(arr); print length(arr), arr["x"] }`, ""},
	{`BEGIN { while (i < 5) { i++; if (i == 2) continue; if (i == 4) break; print i } }`, ""},
	{`BEGIN { do { print "once" } while (0) }`, ""},
	{`NR == 2 { next } { print }`, "a\nb\nc\n"},
	{`{ print } NR == 2 { exit } END { print "end" }`, "a\nb\nc\n"},
	{`BEGIN { a["k"] = 1; delete a["k"]; print ("k" in a), length(a) }`, ""},
	{`BEGIN { CONVFMT = "%.2g"; x = 3.14159; y = x ""; print y }`, ""},
	{`BEGIN { OFMT = "%.2f"; print 3.14159, 42 }`, ""},
	{`BEGIN { print int(-3.9), int("4.7xyz"), sqrt(2) }`, ""},
	{`BEGIN { x = 2; x ^= 10; print x, -2 ^ 2 }`, ""},
	{`{ $0 = toupper($0); print $2 }`, "a b c\n"},
	{`BEGIN { s = "aaa"; print gsub(/x*/, "-", s), s }`, ""},
}

func TestGoAWKCompat(t *testing.T) {
	for _, tt := range compatTests {
		t.Run(tt.src, func(t *testing.T) {
			want := runGoAWK(t, tt.src, tt.in)
			got, err := awk.Run(tt.src, strings.NewReader(tt.in), &awk.Config{RegexFS: true})
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if got != want {
				t.Errorf("got %q, GoAWK gives %q", got, want)
			}
		})
	}
}

func runGoAWK(t *testing.T, src, in string) string {
	t.Helper()
	prog, err := goawkparser.ParseProgram([]byte(src), nil)
	if err != nil {
		t.Fatalf("GoAWK parse error: %v", err)
	}
	var out bytes.Buffer
	_, err = goawkinterp.ExecProgram(prog, &goawkinterp.Config{
		Stdin:  strings.NewReader(in),
		Output: &out,
	})
	if err != nil {
		t.Fatalf("GoAWK error: %v", err)
	}
	return out.String()
}
