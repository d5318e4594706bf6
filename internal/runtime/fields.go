package runtime

import (
	"strings"
)

// SplitFields splits record by the field separator fs:
//
//   - " " trims the record and splits on runs of blanks and newlines
//   - with a nil regexes, any other separator is split on literally
//   - with regexes, a single character is still literal and anything
//     longer is a regular expression taken from the cache
//
// An empty record has no fields. Separators other than " " keep empty
// fields.
func SplitFields(record, fs string, regexes *RegexCache) ([]string, error) {
	if record == "" {
		return nil, nil
	}
	switch {
	case fs == " ":
		return strings.FieldsFunc(record, isFieldBlank), nil
	case regexes == nil, len(fs) == 1:
		return strings.Split(record, fs), nil
	}
	re, err := regexes.Get(fs)
	if err != nil {
		return nil, err
	}
	return SplitRegex(record, re), nil
}

// SplitRegex splits s around the matches of re. An empty s has no fields.
func SplitRegex(s string, re *Regex) []string {
	if s == "" {
		return nil
	}
	return re.Split(s, -1)
}

// Join rebuilds a record from its fields.
func Join(fields []string, sep string) string {
	return strings.Join(fields, sep)
}

func isFieldBlank(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n'
}
