package interp

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/kolkov/vshell/internal/types"
)

// sprintf formats values the way printf does. Missing values format as
// empty strings or zero; extra values are ignored.
func (in *Interp) sprintf(format string, values []types.Value) string {
	var result strings.Builder
	next := 0
	nextValue := func() types.Value {
		if next < len(values) {
			v := values[next]
			next++
			return v
		}
		return types.Null()
	}

	i := 0
	for i < len(format) {
		if format[i] != '%' {
			result.WriteByte(format[i])
			i++
			continue
		}
		start := i
		i++
		if i >= len(format) {
			result.WriteByte('%')
			break
		}
		if format[i] == '%' {
			result.WriteByte('%')
			i++
			continue
		}

		var flags strings.Builder
		for i < len(format) && strings.IndexByte("-+ #0", format[i]) >= 0 {
			flags.WriteByte(format[i])
			i++
		}

		var width string
		if i < len(format) && format[i] == '*' {
			w := fmtCount(nextValue().Num())
			if w < 0 {
				flags.WriteByte('-')
				w = -w
			}
			width = strconv.Itoa(w)
			i++
		} else {
			for i < len(format) && isDigit(format[i]) {
				width += string(format[i])
				i++
			}
		}

		var precision string
		if i < len(format) && format[i] == '.' {
			precision = "."
			i++
			if i < len(format) && format[i] == '*' {
				if p := fmtCount(nextValue().Num()); p >= 0 {
					precision += strconv.Itoa(p)
				} else {
					precision = ""
				}
				i++
			} else {
				for i < len(format) && isDigit(format[i]) {
					precision += string(format[i])
					i++
				}
			}
		}

		if i >= len(format) {
			result.WriteString(format[start:])
			break
		}

		spec := format[i]
		i++
		verb := "%" + flags.String() + width + precision
		switch spec {
		case 'd', 'i':
			fmt.Fprintf(&result, verb+"d", toInt(nextValue().Num()))
		case 'o', 'x', 'X':
			fmt.Fprintf(&result, verb+string(spec), uint64(toInt(nextValue().Num())))
		case 'u':
			fmt.Fprintf(&result, verb+"d", uint64(toInt(nextValue().Num())))
		case 'e', 'E', 'f', 'F', 'g', 'G':
			fmt.Fprintf(&result, verb+string(spec), nextValue().Num())
		case 'c':
			fmt.Fprintf(&result, "%"+flags.String()+width+"s", in.char(nextValue()))
		case 's':
			fmt.Fprintf(&result, verb+"s", nextValue().Str(in.ctx.CONVFMT))
		default:
			result.WriteString(format[start:i])
		}
	}
	return result.String()
}

// char formats v for %c: a number is a code point, a string gives its
// first character.
func (in *Interp) char(v types.Value) string {
	n, numeric := 0.0, false
	switch v.Kind() {
	case types.KindNum, types.KindNull:
		n, numeric = v.Num(), true
	case types.KindStrNum:
		n, numeric = types.LooksNumeric(v.Str(in.ctx.CONVFMT))
	}
	if numeric {
		return string(rune(toInt(n)))
	}
	for _, r := range v.Str(in.ctx.CONVFMT) {
		return string(r)
	}
	return ""
}

// maxFmtCount bounds widths and precisions taken from * arguments.
const maxFmtCount = 1 << 16

// fmtCount converts a * argument to a width or precision, treating NaN as
// 0 and clamping to maxFmtCount either way.
func fmtCount(n float64) int {
	switch {
	case math.IsNaN(n):
		return 0
	case n > maxFmtCount:
		return maxFmtCount
	case n < -maxFmtCount:
		return -maxFmtCount
	}
	return int(n)
}

// toInt truncates n, saturating at the int64 range.
func toInt(n float64) int64 {
	switch {
	case math.IsNaN(n):
		return 0
	case n >= math.MaxInt64:
		return math.MaxInt64
	case n <= math.MinInt64:
		return math.MinInt64
	}
	return int64(n)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
