package blex

import (
	"slices"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/kolkov/blex/internal/value"
)

type resultOp uint8

const (
	resultLex resultOp = iota
	resultTokenize
)

type resultKey struct {
	op    resultOp
	input string
}

// result is one cached outcome. Matching is deterministic, so failures are
// cached as well.
type result struct {
	value  Value
	tokens []Token
	err    error
}

// clone copies the parts of r a caller can modify, so entries in the cache
// never alias what callers hold.
func (r result) clone() result {
	out := result{tokens: slices.Clone(r.tokens), err: r.err}
	if r.value != nil {
		out.value = value.Clone(r.value)
	}
	return out
}

// resultCache memoizes Lex and Tokenize results per input.
// The underlying LRU is internally synchronized.
type resultCache struct {
	*lru.Cache[resultKey, result]
}

func newResultCache(size int) *resultCache {
	c, err := lru.New[resultKey, result](size)
	// New only errors if given a non-positive size, which we don't.
	if err != nil {
		panic(err)
	}
	return &resultCache{Cache: c}
}

func (c *resultCache) lookup(op resultOp, input string) (result, bool) {
	if c == nil {
		return result{}, false
	}
	res, ok := c.Get(resultKey{op, input})
	if !ok {
		metricCacheLookups.WithLabelValues("miss").Inc()
		return result{}, false
	}
	metricCacheLookups.WithLabelValues("hit").Inc()
	return res.clone(), true
}

func (c *resultCache) store(op resultOp, input string, res result) {
	if c == nil {
		return
	}
	c.Add(resultKey{op, input}, res.clone())
}
