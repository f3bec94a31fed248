package query

import (
	"strconv"

	lru "github.com/hashicorp/golang-lru/v2"
)

// astCacheSize bounds the number of parsed ASTs the package-level
// cache retains. New consults it, so repeated /api/v1/query requests
// with the same text skip the lex/parse step; within one request the
// compiled predicate already reuses a single parsed AST for every
// record.
const astCacheSize = 256

var astCache *lru.Cache[string, Expr]

func init() {
	c, err := lru.New[string, Expr](astCacheSize)
	if err != nil {
		panic(err)
	}
	astCache = c
}

// Predicate is a reusable, pure, side-effect-free function from an
// environment to a boolean verdict.
type Predicate func(Env) (bool, error)

// Query is a side-effect-free expression compiled once and evaluated
// against many environments.
type Query struct {
	text string
	ast  Expr
}

// New lexes and parses text once; a syntactic error surfaces here
// rather than at Compile or predicate-invocation time.
func New(text string) (*Query, error) {
	if ast, ok := astCache.Get(text); ok {
		return &Query{text: text, ast: ast}, nil
	}
	ast, err := Parse(text)
	if err != nil {
		return nil, err
	}
	astCache.Add(text, ast)
	return &Query{text: text, ast: ast}, nil
}

// Compile returns a reusable predicate over the already-parsed AST.
func (q *Query) Compile() Predicate {
	ast := q.ast
	return func(env Env) (bool, error) {
		v, err := Eval(ast, env)
		if err != nil {
			return false, err
		}
		if v.Kind != KindBool {
			return false, errUnsupportedOperation("query did not evaluate to a boolean")
		}
		return v.Bool, nil
	}
}

// Coerce converts a raw string environment value into a Value,
// trying integer, then boolean, then falling back to string. It stops
// at the first successful parse — the open-question resolution this
// rework settles on (see SPEC_FULL.md §9.1): a numeric string binds as
// Num, a boolean string as Bool, anything else as Str.
func Coerce(raw string) Value {
	if n, err := strconv.ParseInt(raw, 10, 32); err == nil {
		return numVal(int32(n))
	}
	if b, err := strconv.ParseBool(raw); err == nil {
		return boolVal(b)
	}
	return strVal(raw)
}
