package search

import (
	"cmp"
	"slices"
	"strings"
	"sync"
	"unicode"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"

	"github.com/noelruault/shepherd/internal/core"
)

var initAlgo sync.Once

// Match is a function that matched the query.
type Match struct {
	Function core.FunctionSummary
	// Positions are the matched rune offsets in the name, ascending.
	Positions []int
	// Cost ranks the match; lower is better.
	Cost int
}

// Filter fuzzy-matches function names against query. Whitespace in the query
// is ignored and matching is case-insensitive. Results are ordered by cost,
// then by shorter name, then by input order.
func Filter(functions []core.FunctionSummary, query string) []Match {
	initAlgo.Do(func() { algo.Init("default") })

	pattern := []rune(strings.ToLower(stripSpace(query)))
	matches := make([]Match, 0, len(functions))
	for _, fn := range functions {
		chars := util.ToChars([]byte(fn.Name))
		result, pos := algo.FuzzyMatchV2(false, true, true, &chars, pattern, true, nil)
		if result.Start < 0 {
			continue
		}

		var positions []int
		if pos != nil && len(*pos) > 0 {
			positions = slices.Clone(*pos)
			slices.Sort(positions)
		}
		matches = append(matches, Match{Function: fn, Positions: positions, Cost: -result.Score})
	}

	slices.SortStableFunc(matches, func(a, b Match) int {
		if c := cmp.Compare(a.Cost, b.Cost); c != 0 {
			return c
		}
		return cmp.Compare(len(a.Function.Name), len(b.Function.Name))
	})
	return matches
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
