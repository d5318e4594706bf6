// Package types defines the dynamic value model of the record language.
package types

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind is the dynamic type of a Value.
type Kind uint8

const (
	KindNull   Kind = iota // never assigned: "" and 0 at once
	KindNum                // number
	KindStr                // string constant or result of a string operation
	KindStrNum             // string from input; numeric if it looks numeric
)

// String returns a short name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindNum:
		return "num"
	case KindStr:
		return "str"
	case KindStrNum:
		return "strnum"
	}
	return "unknown"
}

// Value is a tagged union of number and string. It is passed by value.
type Value struct {
	kind Kind
	num  float64
	str  string
}

// Null returns the uninitialized value.
func Null() Value { return Value{} }

// Num returns a numeric value.
func Num(n float64) Value { return Value{kind: KindNum, num: n} }

// Str returns a string value. It compares as a string even when it looks
// like a number.
func Str(s string) Value { return Value{kind: KindStr, str: s} }

// StrNum returns a value for text that came from input: fields, $0,
// split elements and -v assignments. It compares numerically when it looks
// like a number.
func StrNum(s string) Value { return Value{kind: KindStrNum, str: s} }

// Bool returns 1 or 0.
func Bool(b bool) Value {
	if b {
		return Num(1)
	}
	return Num(0)
}

// Kind returns the dynamic type.
func (v Value) Kind() Kind { return v.kind }

// Num converts v to a number. Strings use their longest numeric prefix, so
// "3abc" is 3 and "abc" is 0.
func (v Value) Num() float64 {
	switch v.kind {
	case KindNum:
		return v.num
	case KindStr, KindStrNum:
		return NumPrefix(v.str)
	}
	return 0
}

// Str converts v to a string. Integral numbers print without a decimal
// point; other numbers use format (CONVFMT or OFMT).
func (v Value) Str(format string) string {
	if v.kind == KindNum {
		return FormatNum(v.num, format)
	}
	return v.str
}

// Bool reports whether v is true: a nonzero number, a string other than
// "" and "0", or numeric-looking input that is nonzero.
func (v Value) Bool() bool {
	switch v.kind {
	case KindNum:
		return v.num != 0
	case KindStr:
		return v.str != "" && v.str != "0"
	case KindStrNum:
		if n, ok := LooksNumeric(v.str); ok {
			return n != 0
		}
		return v.str != ""
	}
	return false
}

// numeric reports whether v takes part in numeric comparison, and its
// number if so.
func (v Value) numeric() (float64, bool) {
	switch v.kind {
	case KindNum:
		return v.num, true
	case KindNull:
		return 0, true
	case KindStr, KindStrNum:
		return LooksNumeric(v.str)
	}
	return 0, false
}

// String returns a debug representation.
func (v Value) String() string {
	switch v.kind {
	case KindNum:
		return fmt.Sprintf("num(%s)", FormatNum(v.num, "%.6g"))
	case KindStr:
		return fmt.Sprintf("str(%q)", v.str)
	case KindStrNum:
		return fmt.Sprintf("strnum(%q)", v.str)
	}
	return "null"
}

// Compare orders a and b. Both sides numeric (numbers, uninitialized
// values or numeric-looking strings, constant or input) compare as numbers; anything else
// compares as strings converted with convfmt. The result is -1, 0 or 1.
func Compare(a, b Value, convfmt string) int {
	an, aok := a.numeric()
	bn, bok := b.numeric()
	if aok && bok {
		switch {
		case an < bn:
			return -1
		case an > bn:
			return 1
		}
		return 0
	}
	return strings.Compare(a.Str(convfmt), b.Str(convfmt))
}

// LooksNumeric reports whether the whole of s, ignoring surrounding blanks,
// is a decimal number, and returns it.
func LooksNumeric(s string) (float64, bool) {
	s = strings.Trim(s, " \t\n\r\v\f")
	if s == "" {
		return 0, false
	}
	end := numberEnd(s)
	if end != len(s) {
		return 0, false
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// Out of range values still parse to ±Inf.
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			return n, true
		}
		return 0, false
	}
	return n, true
}

// NumPrefix returns the value of the longest numeric prefix of s after
// leading blanks, or 0.
func NumPrefix(s string) float64 {
	s = strings.TrimLeft(s, " \t\n\r\v\f")
	end := numberEnd(s)
	if end == 0 {
		return 0
	}
	n, _ := strconv.ParseFloat(s[:end], 64)
	return n
}

// numberEnd returns the length of the decimal number at the start of s:
// sign, digits, optional fraction and optional exponent. It returns 0 when
// s does not start with a number.
func numberEnd(s string) int {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return 0
	}
	end := i
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		if i < len(s) && isDigit(s[i]) {
			for i < len(s) && isDigit(s[i]) {
				i++
			}
			end = i
		}
	}
	return end
}

// FormatNum formats n: integral values as integers, others with format.
func FormatNum(n float64, format string) string {
	switch {
	case math.IsNaN(n):
		return "nan"
	case math.IsInf(n, 1):
		return "inf"
	case math.IsInf(n, -1):
		return "-inf"
	case n == math.Trunc(n) && math.Abs(n) < 1e16:
		return strconv.FormatInt(int64(n), 10)
	case format == "%.6g":
		return strconv.FormatFloat(n, 'g', 6, 64)
	}
	return fmt.Sprintf(format, n)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
