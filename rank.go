package regionstats

import (
	"fmt"
	"sort"
)

// NotRanked is the rank assigned to a missing value.
const NotRanked = "N/A"

// Ordinal returns n with its English ordinal suffix: 1st, 2nd, 11th...
func Ordinal(n int) string {
	if m := n % 100; m >= 11 && m <= 13 {
		return fmt.Sprintf("%dth", n)
	}

	suffix := "th"
	switch n % 10 {
	case 1:
		suffix = "st"
	case 2:
		suffix = "nd"
	case 3:
		suffix = "rd"
	}

	return fmt.Sprintf("%d%s", n, suffix)
}

// Ranks assigns an ordinal rank to each value using minimum tie-breaking:
// tied values share the best rank among them, and the next distinct value
// ranks at tie-group start plus tie-group size. Missing values rank
// NotRanked and do not compete. Rank 1 is the largest value unless
// ascending is set.
func Ranks(vals []Value, ascending bool) []string {
	ranks := make([]string, len(vals))
	for ind := range ranks {
		ranks[ind] = NotRanked
	}

	var present []int
	for ind, v := range vals {
		if !v.IsNA() {
			present = append(present, ind)
		}
	}

	sort.SliceStable(present, func(i, j int) bool {
		xi, _ := vals[present[i]].AsFloat()
		xj, _ := vals[present[j]].AsFloat()
		if ascending {
			return xi < xj
		}

		return xi > xj
	})

	rank := 0
	var prior float64
	for pos, ind := range present {
		x, _ := vals[ind].AsFloat()
		if pos == 0 || x != prior {
			rank = pos + 1
		}

		ranks[ind] = Ordinal(rank)
		prior = x
	}

	return ranks
}
