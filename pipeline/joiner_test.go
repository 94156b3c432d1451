package pipeline

import (
	"strings"
	"testing"

	rs "github.com/invertedv/regionstats"
	"github.com/stretchr/testify/assert"
)

func testCombined() *Combined {
	c := NewCombined(testRegistry())

	c.MergePopulation(map[string]rs.Value{
		"texas":    rs.Some(29145505),
		"new_york": rs.Some(20201249),
		RegionDC:   rs.Some(689545),
		RegionPR:   rs.Some(3285874),
	})
	c.MergeIncome(map[string]rs.Value{
		"texas":    rs.Some(67321),
		"new_york": rs.Some(74314),
		RegionDC:   rs.Some(90842),
		RegionPR:   rs.Some(21058),
	})
	c.MergeSalePrices(map[string]rs.Value{
		"texas":    rs.Some(300000),
		"new_york": rs.Some(300000),
		RegionDC:   rs.Some(565000),
		RegionPR:   rs.Some(138000),
	})

	return c
}

func TestMergeIgnoresUnknownIDs(t *testing.T) {
	c := NewCombined(testRegistry())
	c.MergePopulation(map[string]rs.Value{"atlantis": rs.Some(1)})

	for _, r := range c.Records() {
		assert.True(t, r.Population.IsNA())
	}
}

func TestRankAll(t *testing.T) {
	c := testCombined()
	c.RankAll()

	r, _ := c.Record("texas")
	assert.Equal(t, "1st", r.PopulationRank)

	// tied sale prices share the minimum rank; DC outranks both
	dc, _ := c.Record(RegionDC)
	assert.Equal(t, "1st", dc.SalePriceRank)
	tx, _ := c.Record("texas")
	ny, _ := c.Record("new_york")
	assert.Equal(t, "2nd", tx.SalePriceRank)
	assert.Equal(t, "2nd", ny.SalePriceRank)
	pr, _ := c.Record(RegionPR)
	assert.Equal(t, "4th", pr.SalePriceRank)
}

func TestRanksNAIffAbsent(t *testing.T) {
	c := NewCombined(testRegistry())
	c.MergePopulation(map[string]rs.Value{"texas": rs.Some(29145505)})
	c.RankAll()

	for _, r := range c.Records() {
		assert.Equal(t, r.Population.IsNA(), r.PopulationRank == rs.NotRanked)
		assert.Equal(t, rs.NotRanked, r.IncomeRank)
	}
}

func TestComputeAffordability(t *testing.T) {
	c := testCombined()
	c.RankAll()
	c.ComputeAffordability()

	// 300000 / 67321 = 4.5; rank 1 is the lowest ratio
	tx, _ := c.Record("texas")
	x, ok := tx.Affordability.AsFloat()
	assert.True(t, ok)
	assert.Equal(t, 4.5, x)

	pr, _ := c.Record(RegionPR)
	x, _ = pr.Affordability.AsFloat()
	assert.Equal(t, 6.6, x)

	ny, _ := c.Record("new_york")
	assert.Equal(t, "1st", ny.AffordabilityRank)
}

func TestBlurbs(t *testing.T) {
	c := testCombined()
	c.RankAll()
	c.ComputeAffordability()
	c.Blurbs("February 2020")

	// population keeps "1st" verbatim, double space included
	tx, _ := c.Record("texas")
	assert.Equal(t,
		"Texas is 1st  in the nation in population among states, DC, and Puerto Rico.",
		tx.PopulationBlurb)

	// income substitutes "the highest" for "1st"
	dc, _ := c.Record(RegionDC)
	assert.Contains(t, dc.IncomeBlurb, "the highest")
	assert.NotContains(t, dc.IncomeBlurb, "1st")

	// sale price substitutes "single"
	assert.Contains(t, dc.SalePriceBlurb, "the single highest median sale price")
	assert.Contains(t, dc.SalePriceBlurb, "according to Redfin data from February 2020.")

	// affordability rank 1 also reads "single ... lowest"
	ny, _ := c.Record("new_york")
	assert.Contains(t, ny.AffordabilityBlurb, "the single lowest house affordability ratio")

	// non-1st ranks appear verbatim
	pr, _ := c.Record(RegionPR)
	assert.Contains(t, pr.SalePriceBlurb, "has the 4th highest")
}

func TestBlurbsMissing(t *testing.T) {
	c := NewCombined(testRegistry())
	c.RankAll()
	c.ComputeAffordability()
	c.Blurbs("")

	tx, _ := c.Record("texas")
	assert.Equal(t, "Texas has an N/A house affordability ratio.", tx.AffordabilityBlurb)
	assert.Contains(t, tx.PopulationBlurb, "is N/A  in the nation in population")
}

func TestBlurbDisplayNameFallback(t *testing.T) {
	cols := []string{"key_row", "region_type", "zillow_region_name", "alternative_name"}
	rows := [][]string{{"texas", "state", "Texas", ""}}
	tbl, _ := rs.NewTable("KEYS.tsv", cols, rows)

	reg, e := LoadKeys(tbl)
	assert.Nil(t, e)

	c := NewCombined(reg)
	c.RankAll()
	c.ComputeAffordability()
	c.Blurbs("")

	tx, _ := c.Record("texas")
	assert.True(t, strings.HasPrefix(tx.PopulationBlurb, "Region (texas) is"))
}
