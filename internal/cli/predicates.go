package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/hupe1980/viewdb"
)

var predicates = map[string]viewdb.Predicate[int]{
	"always":   viewdb.Always[int](),
	"never":    viewdb.Never[int](),
	"positive": func(x int) bool { return x > 0 },
	"negative": func(x int) bool { return x < 0 },
	"nonzero":  func(x int) bool { return x != 0 },
	"even":     func(x int) bool { return x%2 == 0 },
	"odd":      func(x int) bool { return x%2 != 0 },
}

// PredicateNames returns the names accepted by --where, sorted.
func PredicateNames() []string {
	names := make([]string, 0, len(predicates))
	for name := range predicates {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// lookupPredicate resolves a single predicate name. A leading "!" negates it.
func lookupPredicate(name string) (viewdb.Predicate[int], error) {
	negate := strings.HasPrefix(name, "!")
	p, ok := predicates[strings.TrimPrefix(name, "!")]
	if !ok {
		return nil, fmt.Errorf("unknown predicate %q: must be one of %v", name, PredicateNames())
	}
	if negate {
		return viewdb.Not(p), nil
	}
	return p, nil
}

// parsePredicates resolves every name in order.
func parsePredicates(names []string) ([]viewdb.Predicate[int], error) {
	ps := make([]viewdb.Predicate[int], 0, len(names))
	for _, name := range names {
		p, err := lookupPredicate(name)
		if err != nil {
			return nil, err
		}
		ps = append(ps, p)
	}
	return ps, nil
}
