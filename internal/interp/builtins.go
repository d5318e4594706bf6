package interp

import (
	"math"
	"math/rand"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/kolkov/vshell/internal/ast"
	"github.com/kolkov/vshell/internal/runtime"
	"github.com/kolkov/vshell/internal/token"
	"github.com/kolkov/vshell/internal/types"
)

func (in *Interp) builtin(e *ast.BuiltinExpr) (types.Value, error) {
	switch e.Func {
	case token.F_LENGTH:
		if len(e.Args) == 0 {
			return types.Num(float64(utf8.RuneCountInString(in.ctx.Record()))), nil
		}
		if id, ok := e.Args[0].(*ast.Ident); ok && in.isArray(id) {
			arr, err := in.array(id)
			if err != nil {
				return types.Null(), err
			}
			return types.Num(float64(len(arr))), nil
		}
	case token.F_SPLIT:
		return in.split(e)
	case token.F_SUB, token.F_GSUB:
		return in.substitute(e)
	case token.F_MATCH:
		return in.match(e)
	}

	args := make([]types.Value, len(e.Args))
	for i, a := range e.Args {
		v, err := in.eval(a)
		if err != nil {
			return types.Null(), err
		}
		args[i] = v
	}
	str := func(i int) string { return args[i].Str(in.ctx.CONVFMT) }

	switch e.Func {
	case token.F_LENGTH:
		return types.Num(float64(utf8.RuneCountInString(str(0)))), nil
	case token.F_SUBSTR:
		length := math.Inf(1)
		if len(args) == 3 {
			length = args[2].Num()
		}
		return types.Str(substr(str(0), args[1].Num(), length)), nil
	case token.F_INDEX:
		s := str(0)
		i := strings.Index(s, str(1))
		if i < 0 {
			return types.Num(0), nil
		}
		return types.Num(float64(utf8.RuneCountInString(s[:i]) + 1)), nil
	case token.F_SPRINTF:
		return types.Str(in.sprintf(str(0), args[1:])), nil
	case token.F_TOLOWER:
		return types.Str(strings.ToLower(str(0))), nil
	case token.F_TOUPPER:
		return types.Str(strings.ToUpper(str(0))), nil
	case token.F_INT:
		return types.Num(math.Trunc(args[0].Num())), nil
	case token.F_SQRT:
		return types.Num(math.Sqrt(args[0].Num())), nil
	case token.F_EXP:
		return types.Num(math.Exp(args[0].Num())), nil
	case token.F_LOG:
		return types.Num(math.Log(args[0].Num())), nil
	case token.F_SIN:
		return types.Num(math.Sin(args[0].Num())), nil
	case token.F_COS:
		return types.Num(math.Cos(args[0].Num())), nil
	case token.F_ATAN2:
		return types.Num(math.Atan2(args[0].Num(), args[1].Num())), nil
	case token.F_RAND:
		return types.Num(in.rand.Float64()), nil
	case token.F_SRAND:
		prev := in.seed
		if len(args) == 0 {
			in.seed = float64(time.Now().Unix())
		} else {
			in.seed = args[0].Num()
		}
		in.rand = rand.New(rand.NewSource(int64(in.seed)))
		return types.Num(prev), nil
	}
	return types.Null(), evalErrorf(e.Pos(), "unexpected builtin %s", e.Func)
}

// split implements split(s, a [, fs]).
func (in *Interp) split(e *ast.BuiltinExpr) (types.Value, error) {
	sv, err := in.eval(e.Args[0])
	if err != nil {
		return types.Null(), err
	}
	s := sv.Str(in.ctx.CONVFMT)

	var parts []string
	switch {
	case len(e.Args) < 3:
		parts, err = runtime.SplitFields(s, in.ctx.FS, in.ctx.fsRegexes)
	default:
		if lit, ok := e.Args[2].(*ast.RegexLit); ok {
			parts = runtime.SplitRegex(s, in.regexes[lit.Pattern])
			break
		}
		var fs types.Value
		if fs, err = in.eval(e.Args[2]); err != nil {
			return types.Null(), err
		}
		sep := fs.Str(in.ctx.CONVFMT)
		if sep == "" {
			for _, r := range s {
				parts = append(parts, string(r))
			}
			break
		}
		parts, err = runtime.SplitFields(s, sep, in.ctx.fsRegexes)
	}
	if err != nil {
		return types.Null(), evalErrorf(e.Pos(), "split: invalid separator: %v", err)
	}

	arr, err := in.array(e.Args[1].(*ast.Ident))
	if err != nil {
		return types.Null(), err
	}
	clear(arr)
	for i, p := range parts {
		arr[strconv.Itoa(i+1)] = types.StrNum(p)
	}
	return types.Num(float64(len(parts))), nil
}

// substitute implements sub and gsub.
func (in *Interp) substitute(e *ast.BuiltinExpr) (types.Value, error) {
	re, err := in.regexArg(e.Args[0])
	if err != nil {
		return types.Null(), err
	}
	rv, err := in.eval(e.Args[1])
	if err != nil {
		return types.Null(), err
	}
	var target ast.Expr = &ast.FieldExpr{Loc: e.Loc, Index: &ast.NumLit{Loc: e.Loc}}
	if len(e.Args) == 3 {
		target = e.Args[2]
	}
	lv, err := in.lvalue(target)
	if err != nil {
		return types.Null(), err
	}
	old, err := in.get(lv)
	if err != nil {
		return types.Null(), err
	}

	limit := 1
	if e.Func == token.F_GSUB {
		limit = -1
	}
	out, n := replace(re, old.Str(in.ctx.CONVFMT), rv.Str(in.ctx.CONVFMT), limit)
	if n > 0 {
		if err := in.set(lv, types.Str(out)); err != nil {
			return types.Null(), err
		}
	}
	return types.Num(float64(n)), nil
}

// match implements match(s, re), setting RSTART and RLENGTH in characters.
func (in *Interp) match(e *ast.BuiltinExpr) (types.Value, error) {
	sv, err := in.eval(e.Args[0])
	if err != nil {
		return types.Null(), err
	}
	re, err := in.regexArg(e.Args[1])
	if err != nil {
		return types.Null(), err
	}
	s := sv.Str(in.ctx.CONVFMT)
	loc := re.FindStringIndex(s)
	if loc == nil {
		in.ctx.RSTART, in.ctx.RLENGTH = 0, -1
		return types.Num(0), nil
	}
	in.ctx.RSTART = utf8.RuneCountInString(s[:loc[0]]) + 1
	in.ctx.RLENGTH = utf8.RuneCountInString(s[loc[0]:loc[1]])
	return types.Num(float64(in.ctx.RSTART)), nil
}

// replace substitutes up to limit matches of re in s (all when limit < 0).
// In repl, & stands for the match, \& for a literal & and \\ for a
// backslash.
func replace(re *runtime.Regex, s, repl string, limit int) (string, int) {
	locs := re.FindAllStringIndex(s, limit)
	if len(locs) == 0 {
		return s, 0
	}
	var sb strings.Builder
	last := 0
	for _, loc := range locs {
		sb.WriteString(s[last:loc[0]])
		expandReplacement(&sb, repl, s[loc[0]:loc[1]])
		last = loc[1]
	}
	sb.WriteString(s[last:])
	return sb.String(), len(locs)
}

func expandReplacement(sb *strings.Builder, repl, matched string) {
	for i := 0; i < len(repl); i++ {
		c := repl[i]
		if c == '\\' && i+1 < len(repl) && (repl[i+1] == '&' || repl[i+1] == '\\') {
			i++
			sb.WriteByte(repl[i])
			continue
		}
		if c == '&' {
			sb.WriteString(matched)
			continue
		}
		sb.WriteByte(c)
	}
}

// substr returns the characters of s from position m (1-based) for n
// characters. Positions are rounded and clamped to the string.
func substr(s string, m, n float64) string {
	if math.IsNaN(m) || math.IsNaN(n) {
		return ""
	}
	runes := []rune(s)
	start := math.Round(m)
	end := start + math.Round(n)
	if math.IsInf(n, 1) {
		end = math.Inf(1)
	}
	if start < 1 {
		start = 1
	}
	if limit := float64(len(runes) + 1); end > limit {
		end = limit
	}
	if end <= start {
		return ""
	}
	return string(runes[int(start)-1 : int(end)-1])
}
