// Package echo implements the echo command.
package echo

import (
	"context"
	"strings"

	"github.com/kolkov/vshell/internal/core"
)

var help = core.Help{
	Name:    "echo",
	Summary: "display a line of text",
	Usage:   "echo [-neE] [string ...]",
	Options: []string{
		"-n         do not output the trailing newline",
		"-e         enable interpretation of backslash escapes",
		"-E         disable interpretation of backslash escapes (default)",
		"--help     display this help and exit",
	},
}

// Run executes the echo command with the given arguments.
func Run(_ context.Context, p *core.Process, args []string) int {
	if len(args) == 1 && args[0] == "--help" {
		help.Write(p.Out)
		return core.ExitSuccess
	}

	// Only -n, -e, -E and combinations of them are options; anything
	// else starts the text.
	noNewline := false
	enableEscapes := false
	startIdx := 0

	for i, arg := range args {
		if len(arg) < 2 || arg[0] != '-' || strings.Trim(arg[1:], "neE") != "" {
			break
		}
		for _, c := range arg[1:] {
			switch c {
			case 'n':
				noNewline = true
			case 'e':
				enableEscapes = true
			case 'E':
				enableEscapes = false
			}
		}
		startIdx = i + 1
	}

	output := strings.Join(args[startIdx:], " ")
	halt := false

	if enableEscapes {
		output, halt = processEscapes(output)
	}

	if noNewline || halt {
		p.Print(output)
	} else {
		p.Println(output)
	}

	return core.ExitSuccess
}

var simpleEscapes = map[byte]byte{
	'n':  '\n',
	't':  '\t',
	'r':  '\r',
	'\\': '\\',
	'a':  '\a',
	'b':  '\b',
	'f':  '\f',
	'v':  '\v',
}

// processEscapes handles \n, \t, \0NNN, \xHH and friends. The second
// result is true when \c cut the output short.
func processEscapes(s string) (string, bool) {
	var result strings.Builder
	for i := 0; i < len(s); {
		if s[i] != '\\' || i+1 >= len(s) {
			result.WriteByte(s[i])
			i++
			continue
		}
		c := s[i+1]
		if b, ok := simpleEscapes[c]; ok {
			result.WriteByte(b)
			i += 2
			continue
		}
		switch c {
		case '0':
			val, n := digits(s[i+2:], 8, 3)
			result.WriteByte(byte(val))
			i += 2 + n
		case 'x':
			val, n := digits(s[i+2:], 16, 2)
			if n == 0 {
				result.WriteString(`\x`)
			} else {
				result.WriteByte(byte(val))
			}
			i += 2 + n
		case 'c':
			return result.String(), true
		default:
			result.WriteByte('\\')
			i++
		}
	}
	return result.String(), false
}

// digits parses up to limit digits of the given base from the start of s.
func digits(s string, base, limit int) (val, n int) {
	for n < limit && n < len(s) {
		d := digitValue(s[n])
		if d < 0 || d >= base {
			break
		}
		val = val*base + d
		n++
	}
	return val, n
}

func digitValue(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	}
	return -1
}
