package types

import (
	"math"
	"testing"
)

func TestNumConversion(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want float64
	}{
		{"null", Null(), 0},
		{"number", Num(2.5), 2.5},
		{"numeric string", Str("42"), 42},
		{"prefix", Str("3abc"), 3},
		{"leading blanks", StrNum("  7 "), 7},
		{"non numeric", Str("abc"), 0},
		{"exponent", Str("1e3x"), 1000},
		{"dangling exponent", Str("2e"), 2},
		{"negative", StrNum("-4.5"), -4.5},
		{"dot only", Str("."), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Num(); got != tt.want {
				t.Errorf("Num() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStrConversion(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{Null(), ""},
		{Num(30), "30"},
		{Num(-2), "-2"},
		{Num(0.1), "0.1"},
		{Num(3.14159265), "3.14159"},
		{Num(1e20), "1e+20"},
		{Num(math.Inf(1)), "inf"},
		{Str("x"), "x"},
		{StrNum("007"), "007"},
	}
	for _, tt := range tests {
		if got := tt.v.Str("%.6g"); got != tt.want {
			t.Errorf("%v.Str() = %q, want %q", tt.v, got, tt.want)
		}
	}
	if got := Num(1.5).Str("%.2f"); got != "1.50" {
		t.Errorf("Str(%%.2f) = %q, want 1.50", got)
	}
}

func TestBool(t *testing.T) {
	tests := []struct {
		v    Value
		want bool
	}{
		{Null(), false},
		{Num(0), false},
		{Num(-1), true},
		{Str(""), false},
		{Str("0"), false},
		{Str("00"), true},
		{Str(" 0"), true},
		{Str("a"), true},
		{StrNum("0"), false},
		{StrNum(" 0.0 "), false},
		{StrNum("1"), true},
		{StrNum("abc"), true},
		{StrNum(""), false},
	}
	for _, tt := range tests {
		if got := tt.v.Bool(); got != tt.want {
			t.Errorf("%v.Bool() = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want int
	}{
		{"numbers", Num(2), Num(10), -1},
		{"numeric input", StrNum("2"), StrNum("10"), -1},
		{"input against number", StrNum("10"), Num(10), 0},
		{"input with blanks", StrNum(" 5 "), Num(5), 0},
		{"numeric string constants compare as numbers", Str("2"), Str("10"), -1},
		{"numeric string against number", Str("10"), Num(9), 1},
		{"non numeric string constants compare as strings", Str("2a"), Str("10a"), 1},
		{"non numeric string against number", Str("x"), Num(9), 1},
		{"non numeric input", StrNum("abc"), Num(1), 1},
		{"null against zero", Null(), Num(0), 0},
		{"null against empty", Null(), Str(""), 0},
		{"null against input", Null(), StrNum("0"), 0},
		{"equal strings", Str("a"), Str("a"), 0},
		{"integral number as string", Num(30), Str("30"), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compare(tt.a, tt.b, "%.6g"); got != tt.want {
				t.Errorf("Compare(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestLooksNumeric(t *testing.T) {
	tests := []struct {
		s    string
		want bool
	}{
		{"1", true},
		{"-1.5", true},
		{"+.5", true},
		{"1e5", true},
		{" 12 ", true},
		{"", false},
		{" ", false},
		{"1a", false},
		{"0x1A", false},
		{"1e", false},
		{".", false},
		{"inf", false},
	}
	for _, tt := range tests {
		if _, got := LooksNumeric(tt.s); got != tt.want {
			t.Errorf("LooksNumeric(%q) = %v, want %v", tt.s, got, tt.want)
		}
	}
}

func TestDuality(t *testing.T) {
	// "3" and "4" are 7 in numeric context and "34" when concatenated.
	a, b := Str("3"), Str("4")
	if sum := a.Num() + b.Num(); sum != 7 {
		t.Errorf("numeric sum = %v, want 7", sum)
	}
	if cat := a.Str("%.6g") + b.Str("%.6g"); cat != "34" {
		t.Errorf("concatenation = %q, want 34", cat)
	}
}

func TestKindString(t *testing.T) {
	for k, want := range map[Kind]string{KindNull: "null", KindNum: "num", KindStr: "str", KindStrNum: "strnum", Kind(9): "unknown"} {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", k, got, want)
		}
	}
}
