package regionstats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrdinal(t *testing.T) {
	cases := map[int]string{
		1: "1st", 2: "2nd", 3: "3rd", 4: "4th",
		11: "11th", 12: "12th", 13: "13th",
		21: "21st", 22: "22nd", 101: "101st", 111: "111th",
	}

	for n, exp := range cases {
		assert.Equal(t, exp, Ordinal(n))
	}
}

func TestRanksTies(t *testing.T) {
	// two regions tied at the top share 1st; the next distinct value is 3rd
	vals := []Value{Some(300000), Some(300000), Some(200000)}
	assert.Equal(t, []string{"1st", "1st", "3rd"}, Ranks(vals, false))
}

func TestRanksMissing(t *testing.T) {
	vals := []Value{Some(10), NA(), Some(30), NA()}

	ranks := Ranks(vals, false)
	assert.Equal(t, []string{"2nd", "N/A", "1st", "N/A"}, ranks)

	// N/A iff the underlying value is absent
	for ind, v := range vals {
		assert.Equal(t, v.IsNA(), ranks[ind] == NotRanked)
	}
}

func TestRanksAscending(t *testing.T) {
	vals := []Value{Some(5.0), Some(2.5), Some(7.1)}
	assert.Equal(t, []string{"2nd", "1st", "3rd"}, Ranks(vals, true))
}

func TestRanksPermutationInvariant(t *testing.T) {
	ids := []string{"a", "b", "c", "d", "e"}
	vals := []Value{Some(3), Some(1), Some(4), NA(), Some(3)}

	base := make(map[string]string)
	for ind, r := range Ranks(vals, false) {
		base[ids[ind]] = r
	}

	perm := []int{4, 2, 0, 3, 1}
	var pIDs []string
	var pVals []Value
	for _, ind := range perm {
		pIDs = append(pIDs, ids[ind])
		pVals = append(pVals, vals[ind])
	}

	for ind, r := range Ranks(pVals, false) {
		assert.Equal(t, base[pIDs[ind]], r)
	}
}
