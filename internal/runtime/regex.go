// Package runtime provides the pieces the evaluator needs at run time:
// regular expressions, field splitting and record reading.
package runtime

import (
	"github.com/coregx/coregex"
)

// dotallPrefix is prepended to patterns so that dot matches newline.
const dotallPrefix = "(?s)"

// RegexConfig controls regex behavior.
type RegexConfig struct {
	// POSIX enables leftmost-longest matching. When false, matching is
	// leftmost-first.
	POSIX bool
}

// DefaultConfig returns the POSIX configuration.
func DefaultConfig() RegexConfig {
	return RegexConfig{POSIX: true}
}

// Regex wraps a compiled coregex pattern.
type Regex struct {
	pattern string
	re      *coregex.Regexp
	posix   bool
}

// Compile compiles pattern with the default configuration.
func Compile(pattern string) (*Regex, error) {
	return CompileWithConfig(pattern, DefaultConfig())
}

// CompileWithConfig compiles pattern with config. Dot matches any
// character including newline.
func CompileWithConfig(pattern string, config RegexConfig) (*Regex, error) {
	re, err := coregex.Compile(dotallPrefix + pattern)
	if err != nil {
		return nil, err
	}
	if config.POSIX {
		re.Longest()
	}
	return &Regex{pattern: pattern, re: re, posix: config.POSIX}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(pattern string) *Regex {
	re, err := Compile(pattern)
	if err != nil {
		panic(err)
	}
	return re
}

// Pattern returns the source pattern without the dotall prefix.
func (r *Regex) Pattern() string {
	return r.pattern
}

// IsPOSIX reports whether r uses leftmost-longest matching.
func (r *Regex) IsPOSIX() bool {
	return r.posix
}

// MatchString reports whether s contains a match.
func (r *Regex) MatchString(s string) bool {
	return r.re.MatchString(s)
}

// FindStringIndex returns the bounds of the first match, or nil.
func (r *Regex) FindStringIndex(s string) []int {
	return r.re.FindStringIndex(s)
}

// FindAllStringIndex returns the bounds of up to n non-overlapping matches.
// n < 0 means all of them.
func (r *Regex) FindAllStringIndex(s string, n int) [][]int {
	return r.re.FindAllStringIndex(s, n)
}

// Split slices s around the matches of r.
func (r *Regex) Split(s string, n int) []string {
	return r.re.Split(s, n)
}

// RegexCache holds patterns compiled from dynamic strings, such as FS or
// the right side of ~. It belongs to a single run and is not safe for
// concurrent use. When full, the oldest pattern is evicted.
type RegexCache struct {
	entries map[string]*Regex
	order   []string
	maxSize int
	config  RegexConfig
}

// NewRegexCache creates a cache holding at most maxSize patterns.
func NewRegexCache(maxSize int, config RegexConfig) *RegexCache {
	if maxSize <= 0 {
		maxSize = 100
	}
	return &RegexCache{
		entries: make(map[string]*Regex),
		order:   make([]string, 0, maxSize),
		maxSize: maxSize,
		config:  config,
	}
}

// Get returns the compiled pattern, compiling it on first use. Failed
// compilations are not cached.
func (c *RegexCache) Get(pattern string) (*Regex, error) {
	if re, ok := c.entries[pattern]; ok {
		return re, nil
	}
	re, err := CompileWithConfig(pattern, c.config)
	if err != nil {
		return nil, err
	}
	if len(c.order) >= c.maxSize {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
	c.entries[pattern] = re
	c.order = append(c.order, pattern)
	return re, nil
}

// Len returns the number of cached patterns.
func (c *RegexCache) Len() int {
	return len(c.entries)
}

// Config returns the configuration patterns are compiled with.
func (c *RegexCache) Config() RegexConfig {
	return c.config
}
