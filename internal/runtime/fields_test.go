package runtime

import (
	"strings"
	"testing"
)

func TestSplitFields(t *testing.T) {
	tests := []struct {
		name   string
		record string
		fs     string
		want   []string
	}{
		{"default trims", "  a b\t\tc  ", " ", []string{"a", "b", "c"}},
		{"default blank record", "   ", " ", []string{}},
		{"empty record", "", ",", []string{}},
		{"comma keeps empties", "a,,b,", ",", []string{"a", "", "b", ""}},
		{"colon", "root:x:0:0", ":", []string{"root", "x", "0", "0"}},
		{"tab", "a b\tc", "\t", []string{"a b", "c"}},
		{"single metachar is literal", "a|b|c", "|", []string{"a", "b", "c"}},
		{"dot is literal", "1.2.3", ".", []string{"1", "2", "3"}},
		{"regex", "a1b22c", "[0-9]+", []string{"a", "b", "c"}},
		{"literal string", "a::b::c", "::", []string{"a", "b", "c"}},
		{"regex leading match", ",,a", ",+", []string{"", "a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cache := NewRegexCache(10, DefaultConfig())
			got, err := SplitFields(tt.record, tt.fs, cache)
			if err != nil {
				t.Fatalf("SplitFields: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("SplitFields(%q, %q) = %q, want %q", tt.record, tt.fs, got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("field %d = %q, want %q", i+1, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSplitFieldsLiteral(t *testing.T) {
	tests := []struct {
		record string
		fs     string
		want   []string
	}{
		{"a||b", "||", []string{"a", "b"}},
		{"x,y.,z", ".,", []string{"x,y", "z"}},
		{"a1b22c", "[0-9]+", []string{"a1b22c"}},
		{"::a::::b", "::", []string{"", "a", "", "b"}},
		{"  a b ", " ", []string{"a", "b"}},
	}
	for _, tt := range tests {
		got, err := SplitFields(tt.record, tt.fs, nil)
		if err != nil {
			t.Fatalf("SplitFields(%q, %q): %v", tt.record, tt.fs, err)
		}
		if strings.Join(got, "|") != strings.Join(tt.want, "|") || len(got) != len(tt.want) {
			t.Errorf("SplitFields(%q, %q) = %q, want %q", tt.record, tt.fs, got, tt.want)
		}
	}
}

func TestSplitFieldsBadRegex(t *testing.T) {
	cache := NewRegexCache(10, DefaultConfig())
	if _, err := SplitFields("a(b", "((", cache); err == nil {
		t.Fatal("expected error for invalid separator")
	}
}

func TestSplitJoinRoundTrip(t *testing.T) {
	cache := NewRegexCache(10, DefaultConfig())
	for _, rec := range []string{"a,b,c", ",x,,", "one", "a,,", ","} {
		fields, err := SplitFields(rec, ",", cache)
		if err != nil {
			t.Fatal(err)
		}
		if got := Join(fields, ","); got != rec {
			t.Errorf("Join(SplitFields(%q)) = %q", rec, got)
		}
	}
}

func FuzzSplitJoin(f *testing.F) {
	f.Add("a,b,c")
	f.Add(",,")
	f.Add("x")
	f.Fuzz(func(t *testing.T, rec string) {
		if rec == "" {
			return
		}
		fields, err := SplitFields(rec, ",", nil)
		if err != nil {
			t.Fatal(err)
		}
		if got := Join(fields, ","); got != rec {
			t.Errorf("round trip of %q gave %q", rec, got)
		}
		if !strings.Contains(rec, ",") && len(fields) != 1 {
			t.Errorf("%q without separator split into %d fields", rec, len(fields))
		}
	})
}

func TestSplitFieldsSingleCharWithCache(t *testing.T) {
	cache := NewRegexCache(10, DefaultConfig())
	for _, fs := range []string{`\`, ".", "|", "*"} {
		record := "a" + fs + "b"
		got, err := SplitFields(record, fs, cache)
		if err != nil {
			t.Fatalf("SplitFields(%q, %q): %v", record, fs, err)
		}
		if len(got) != 2 || got[0] != "a" || got[1] != "b" {
			t.Errorf("SplitFields(%q, %q) = %q, want [a b]", record, fs, got)
		}
	}
}
