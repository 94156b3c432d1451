package pipeline

import (
	"log/slog"
	"math"
	"strings"

	rs "github.com/invertedv/regionstats"
)

// Each reader turns one raw wide-format source into region id -> Value.
// A cell that cannot be located or parsed is logged and recorded as
// missing for that region; only a missing required column kills the
// whole source.

// Census source layout.
const (
	labelColumn    = "Label (Grouping)"
	populationRow  = "Total population"
	incomeRow      = "Households"
	estimateSuffix = "!!Estimate"
	incomeSuffix   = "!!Median income (dollars)!!Estimate"
)

// Sale prices the upstream source never reports. Documented data gap,
// not a bug: these values come from the published example output.
const (
	dcSalePrice = 565000
	prSalePrice = 138000
)

// ReadPopulation extracts the "Total population" row, one column per
// region alias.
func ReadPopulation(t *rs.Table, reg *Registry, lg *slog.Logger) (map[string]rs.Value, error) {
	return readCensus(t, reg, populationRow, estimateSuffix, lg)
}

// ReadIncome extracts the "Households" median income row.
func ReadIncome(t *rs.Table, reg *Registry, lg *slog.Logger) (map[string]rs.Value, error) {
	return readCensus(t, reg, incomeRow, incomeSuffix, lg)
}

// readCensus locates the single row whose label contains rowLabel, then
// for each registry region reads the column "<alias><colSuffix>".
func readCensus(t *rs.Table, reg *Registry, rowLabel, colSuffix string, lg *slog.Logger) (map[string]rs.Value, error) {
	label, e := t.Accessor(labelColumn)
	if e != nil {
		return nil, e
	}

	row := -1
	for ind := 0; ind < t.RowCount(); ind++ {
		if strings.Contains(label(ind), rowLabel) {
			row = ind
			break
		}
	}

	if row < 0 {
		return nil, &rs.MissingColumnError{Source: t.Name(), Column: rowLabel + " row"}
	}

	vals := make(map[string]rs.Value, reg.Len())
	for _, k := range reg.Regions() {
		vals[k.ID] = rs.NA()

		colName := k.SourceAlias + colSuffix
		acc, eAcc := t.Accessor(colName)
		if eAcc != nil {
			lg.Warn("value extraction failed",
				"err", &rs.ValueExtractionError{Region: k.ID, Column: colName, Err: eAcc})
			continue
		}

		v, eVal := rs.ParseNumber(acc(row))
		if eVal != nil {
			lg.Warn("value extraction failed",
				"err", &rs.ValueExtractionError{Region: k.ID, Column: colName, Err: eVal})
			continue
		}

		vals[k.ID] = v
	}

	return vals, nil
}

// ReadSalePrices reads the sale-price history, taking for each region
// the latest available reading (newest column first, skipping missing
// cells). DC and Puerto Rico are never looked up; they get the fixed
// values above. The table may be nil (source file absent): the fixed
// values still apply.
//
// The second return is the most recent column label with any data
// anywhere, used for "as of" blurb text.
func ReadSalePrices(raw *rs.Table, reg *Registry, lg *slog.Logger) (map[string]rs.Value, string, error) {
	vals := make(map[string]rs.Value, reg.Len())
	for _, k := range reg.Regions() {
		switch k.ID {
		case RegionDC:
			vals[k.ID] = rs.Some(dcSalePrice)
		case RegionPR:
			vals[k.ID] = rs.Some(prSalePrice)
		default:
			vals[k.ID] = rs.NA()
		}
	}

	if raw == nil {
		return vals, "", nil
	}

	// the real header is embedded in the first data row
	t, e := raw.PromoteHeader()
	if e != nil {
		return vals, "", &rs.FileReadError{File: raw.Name(), Err: e}
	}

	cols := t.ColumnNames()
	if len(cols) < 2 {
		return vals, "", &rs.MissingColumnError{Source: t.Name(), Column: "date columns"}
	}

	region, e := t.Accessor(cols[0])
	if e != nil {
		return vals, "", e
	}

	accs := make([]rs.Accessor, len(cols))
	for ind := 1; ind < len(cols); ind++ {
		if accs[ind], e = t.Accessor(cols[ind]); e != nil {
			return vals, "", e
		}
	}

	latestDate := ""
	for ind := len(cols) - 1; ind >= 1 && latestDate == ""; ind-- {
		for row := 0; row < t.RowCount(); row++ {
			if !rs.MissingCell(accs[ind](row)) {
				latestDate = cols[ind]
				break
			}
		}
	}

	rowOf := make(map[string]int, t.RowCount())
	for row := 0; row < t.RowCount(); row++ {
		if a := region(row); a != "" {
			if _, dup := rowOf[a]; !dup {
				rowOf[a] = row
			}
		}
	}

	for _, k := range reg.Regions() {
		if k.ID == RegionDC || k.ID == RegionPR {
			continue
		}

		row, ok := rowOf[k.SourceAlias]
		if !ok {
			continue
		}

		for ind := len(cols) - 1; ind >= 1; ind-- {
			cell := accs[ind](row)
			if rs.MissingCell(cell) {
				continue
			}

			v, eVal := rs.ParsePrice(cell)
			if eVal != nil {
				lg.Warn("value extraction failed",
					"err", &rs.ValueExtractionError{Region: k.ID, Column: cols[ind], Err: eVal})
				break
			}

			vals[k.ID] = v
			break
		}
	}

	return vals, latestDate, nil
}

// ratio of sale price to income, one decimal. Absent if either input is
// absent or income is zero.
func affordability(price, income rs.Value) rs.Value {
	p, okP := price.AsFloat()
	i, okI := income.AsFloat()
	if !okP || !okI || i == 0 {
		return rs.NA()
	}

	return rs.Some(round1(p / i))
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
