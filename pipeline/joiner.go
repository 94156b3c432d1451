package pipeline

import (
	"fmt"

	rs "github.com/invertedv/regionstats"
)

// OutputColumns is the combined-table column set, in output order.
var OutputColumns = []string{
	"key_row",
	"census_population",
	"population_rank",
	"population_blurb",
	"median_household_income",
	"median_household_income_rank",
	"median_household_income_blurb",
	"median_sale_price",
	"median_sale_price_rank",
	"median_sale_price_blurb",
	"house_affordability_ratio",
	"house_affordability_ratio_rank",
	"house_affordability_ratio_blurb",
}

// Record is one region's row of the combined table.
type Record struct {
	RegionID string

	Population      rs.Value
	PopulationRank  string
	PopulationBlurb string

	Income      rs.Value
	IncomeRank  string
	IncomeBlurb string

	SalePrice      rs.Value
	SalePriceRank  string
	SalePriceBlurb string

	Affordability      rs.Value
	AffordabilityRank  string
	AffordabilityBlurb string
}

// Combined is the one merged table per run. Rows are created once in
// registry order with every value column absent; stages fill columns in
// by region id. The table is owned by the pipeline and mutated by one
// stage at a time.
type Combined struct {
	reg  *Registry
	recs []Record
	byID map[string]int
}

func NewCombined(reg *Registry) *Combined {
	c := &Combined{reg: reg, byID: make(map[string]int, reg.Len())}
	for _, k := range reg.Regions() {
		c.byID[k.ID] = len(c.recs)
		c.recs = append(c.recs, Record{
			RegionID:           k.ID,
			PopulationRank:     rs.NotRanked,
			IncomeRank:         rs.NotRanked,
			SalePriceRank:      rs.NotRanked,
			AffordabilityRank:  rs.NotRanked,
			PopulationBlurb:    "",
			IncomeBlurb:        "",
			SalePriceBlurb:     "",
			AffordabilityBlurb: "",
		})
	}

	return c
}

func (c *Combined) Len() int {
	return len(c.recs)
}

// Records returns the rows in registry order.
func (c *Combined) Records() []Record {
	return c.recs
}

func (c *Combined) Record(id string) (*Record, bool) {
	ind, ok := c.byID[id]
	if !ok {
		return nil, false
	}

	return &c.recs[ind], true
}

// Merge fills one value column by region id. Ids missing from vals
// leave the column absent; ids outside the registry are ignored.
func (c *Combined) Merge(vals map[string]rs.Value, set func(r *Record, v rs.Value)) {
	for id, v := range vals {
		if ind, ok := c.byID[id]; ok {
			set(&c.recs[ind], v)
		}
	}
}

// MergePopulation, MergeIncome and MergeSalePrices are the per-source
// merge stages.
func (c *Combined) MergePopulation(vals map[string]rs.Value) {
	c.Merge(vals, func(r *Record, v rs.Value) { r.Population = v })
}

func (c *Combined) MergeIncome(vals map[string]rs.Value) {
	c.Merge(vals, func(r *Record, v rs.Value) { r.Income = v })
}

func (c *Combined) MergeSalePrices(vals map[string]rs.Value) {
	c.Merge(vals, func(r *Record, v rs.Value) { r.SalePrice = v })
}

// RankAll ranks the three source metrics. Rank 1 is the highest value;
// missing values rank "N/A" and do not compete.
func (c *Combined) RankAll() {
	c.rank(func(r *Record) rs.Value { return r.Population },
		func(r *Record, s string) { r.PopulationRank = s }, false)
	c.rank(func(r *Record) rs.Value { return r.Income },
		func(r *Record, s string) { r.IncomeRank = s }, false)
	c.rank(func(r *Record) rs.Value { return r.SalePrice },
		func(r *Record, s string) { r.SalePriceRank = s }, false)
}

// ComputeAffordability fills the ratio column and ranks it ascending:
// rank 1 is the most affordable.
func (c *Combined) ComputeAffordability() {
	for ind := range c.recs {
		r := &c.recs[ind]
		r.Affordability = affordability(r.SalePrice, r.Income)
	}

	c.rank(func(r *Record) rs.Value { return r.Affordability },
		func(r *Record, s string) { r.AffordabilityRank = s }, true)
}

func (c *Combined) rank(get func(r *Record) rs.Value, set func(r *Record, s string), ascending bool) {
	vals := make([]rs.Value, len(c.recs))
	for ind := range c.recs {
		vals[ind] = get(&c.recs[ind])
	}

	ranks := rs.Ranks(vals, ascending)
	for ind := range c.recs {
		set(&c.recs[ind], ranks[ind])
	}
}

// Blurbs fills the four blurb columns. dataDate is the most recent
// sale-price column label, quoted in the sale-price and affordability
// blurbs.
//
// The rank-1 wording is deliberately uneven across metrics: population
// keeps "1st", income says "the highest", sale price and affordability
// say "single". Downstream consumers depend on the literal text.
func (c *Combined) Blurbs(dataDate string) {
	for ind := range c.recs {
		r := &c.recs[ind]
		name := c.displayName(r.RegionID)

		// the double space after the rank is part of the published template
		r.PopulationBlurb = fmt.Sprintf(
			"%s is %s  in the nation in population among states, DC, and Puerto Rico.",
			name, r.PopulationRank)

		incomeRank := r.IncomeRank
		if incomeRank == "1st" {
			incomeRank = "the highest"
		}
		r.IncomeBlurb = fmt.Sprintf(
			"%s is %s in the nation in median household income among states, DC, and Puerto Rico.",
			name, incomeRank)

		saleRank := r.SalePriceRank
		if saleRank == "1st" {
			saleRank = "single"
		}
		r.SalePriceBlurb = fmt.Sprintf(
			"%s has the %s highest median sale price on homes in the nation among states, DC, and Puerto Rico, according to Redfin data from %s.",
			name, saleRank, dataDate)

		affordRank := r.AffordabilityRank
		switch affordRank {
		case rs.NotRanked:
			r.AffordabilityBlurb = fmt.Sprintf("%s has an N/A house affordability ratio.", name)
		case "1st":
			affordRank = "single"
			fallthrough
		default:
			r.AffordabilityBlurb = fmt.Sprintf(
				"%s has the %s lowest house affordability ratio in the nation among states, DC, and Puerto Rico, according to Redfin data from %s.",
				name, affordRank, dataDate)
		}
	}
}

func (c *Combined) displayName(id string) string {
	if name, ok := c.reg.DisplayName(id); ok && name != "" {
		return name
	}

	return fmt.Sprintf("Region (%s)", id)
}
