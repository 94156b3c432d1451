package timeseries

import (
	"fmt"
	"sort"

	"github.com/dustin/go-humanize"
	rs "github.com/invertedv/regionstats"
)

// colors for the highlighted trend lines
var palette = []string{
	"#66c2a5", "#fc8d62", "#8da0cb", "#e78ac3", "#a6d854",
	"#ffd92f", "#e5c494", "#b3b3b3", "#1b9e77", "#d95f02",
}

const backgroundColor = "#c0c0c0"

// WriteAnalysis writes one row per region: latest price, mom growth,
// yoy growth.
func WriteAnalysis(results []Result, fileName string) error {
	f := rs.NewFiles()
	f.FieldNames = []string{"state", "latest_price", "mom_growth", "yoy_growth"}
	f.FloatFormat = "%.2f"

	if e := f.Create(fileName); e != nil {
		return e
	}
	defer func() { _ = f.Close() }()

	if e := f.WriteHeader(); e != nil {
		return e
	}

	for _, r := range results {
		cells := []any{r.Region, intCell(r.LatestPrice), r.MoMGrowth, r.YoYGrowth}
		if e := f.WriteLine(cells); e != nil {
			return e
		}
	}

	return nil
}

func intCell(v rs.Value) any {
	if x, ok := v.AsInt(); ok {
		return x
	}

	return nil
}

// PlotTrends draws every region's price history on one chart, the top 5
// and bottom 5 regions by latest price highlighted and the rest dim
// gray.
func PlotTrends(h *History, fileName string) error {
	p := rs.NewPlot(
		rs.WithTitle("Median Sale Price Trends (Top 5 and Bottom 5 Highlighted)"),
		rs.WithWidth(1400), rs.WithHeight(700),
		rs.WithXlabel("Date"), rs.WithYlabel("Price ($)"),
		rs.WithLegend(true),
	)

	highlighted := highlightSet(h, 5)

	labels := make([]string, len(h.Dates))
	for ind, d := range h.Dates {
		labels[ind] = d.Format("2006-01")
	}

	// background first so the highlighted lines draw on top
	for ind, s := range h.Series {
		if !rs.Has(ind, highlighted) {
			x, y := points(labels, s.Prices)
			if e := p.PlotLine(x, y, s.Region, backgroundColor, 1); e != nil {
				return e
			}
		}
	}

	for pos, ind := range highlighted {
		s := h.Series[ind]
		x, y := points(labels, s.Prices)
		name := s.Region
		if latest, ok := s.Prices[len(s.Prices)-1].AsInt(); ok {
			name = fmt.Sprintf("%s ($%s)", s.Region, humanize.Comma(int64(latest)))
		}

		if e := p.PlotLine(x, y, name, palette[pos%len(palette)], 2.5); e != nil {
			return e
		}
	}

	p.Render(fileName)

	return nil
}

// PlotSummary draws the latest price and YoY growth bars, regions
// ordered by latest price, highest first.
func PlotSummary(results []Result, fileName string) error {
	ordered := make([]Result, len(results))
	copy(ordered, results)
	sort.SliceStable(ordered, func(i, j int) bool {
		xi, okI := ordered[i].LatestPrice.AsFloat()
		xj, okJ := ordered[j].LatestPrice.AsFloat()
		if okI != okJ {
			return okI
		}

		return xi > xj
	})

	p := rs.NewPlot(
		rs.WithTitle("Latest Median Sale Price and YoY Growth by Region"),
		rs.WithWidth(1400), rs.WithHeight(700),
		rs.WithXlabel("Region"),
		rs.WithLegend(true),
	)

	var xPrice []string
	var yPrice []float64
	var xGrowth []string
	var yGrowth []float64
	for _, r := range ordered {
		if x, ok := r.LatestPrice.AsFloat(); ok {
			xPrice = append(xPrice, r.Region)
			yPrice = append(yPrice, x)
		}
		if g, ok := r.YoYGrowth.AsFloat(); ok {
			xGrowth = append(xGrowth, r.Region)
			yGrowth = append(yGrowth, g)
		}
	}

	if e := p.PlotBar(xPrice, yPrice, "Latest Median Sale Price ($)"); e != nil {
		return e
	}

	if e := p.PlotBar(xGrowth, yGrowth, "YoY Growth (%)"); e != nil {
		return e
	}

	p.Render(fileName)

	return nil
}

// highlightSet returns the indices of the top n and bottom n series by
// latest price, among those with a latest value.
func highlightSet(h *History, n int) []int {
	var present []int
	for ind, s := range h.Series {
		if len(s.Prices) == 0 {
			continue
		}

		if _, ok := s.Prices[len(s.Prices)-1].AsFloat(); ok {
			present = append(present, ind)
		}
	}

	sort.SliceStable(present, func(i, j int) bool {
		xi, _ := h.Series[present[i]].Prices[len(h.Series[present[i]].Prices)-1].AsFloat()
		xj, _ := h.Series[present[j]].Prices[len(h.Series[present[j]].Prices)-1].AsFloat()
		return xi > xj
	})

	var out []int
	for ind := 0; ind < n && ind < len(present); ind++ {
		out = append(out, present[ind])
	}
	for ind := len(present) - n; ind < len(present); ind++ {
		if ind >= 0 && !rs.Has(present[ind], out) {
			out = append(out, present[ind])
		}
	}

	return out
}

// points filters missing cells out of one series.
func points(labels []string, prices []rs.Value) ([]string, []float64) {
	var x []string
	var y []float64
	for ind, v := range prices {
		if f, ok := v.AsFloat(); ok {
			x = append(x, labels[ind])
			y = append(y, f)
		}
	}

	return x, y
}
