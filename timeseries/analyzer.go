// Package timeseries reshapes the raw sale-price history into a
// date-indexed series per region and reports growth and summary
// statistics. It is independent of the join pipeline and consumes only
// the sale-price source file.
package timeseries

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	rs "github.com/invertedv/regionstats"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Date column labels look like "January 2020".
const dateLayout = "January 2006"

// SalePriceFile is the input name substring to analyze.
const SalePriceFile = "REDFIN_MEDIAN_SALE_PRICE"

// Output names under the chosen output directory.
const (
	AnalysisName = "median_sale_price_analysis.csv"
	TrendsChart  = "median_sale_price_trends.html"
	SummaryChart = "price_and_growth_summary.html"
)

// History is the reshaped source: chronological dates as columns, one
// price series per region aligned to them.
type History struct {
	Dates  []time.Time
	Series []Series
}

type Series struct {
	Region string
	Prices []rs.Value
}

// Growth holds the month-over-month and year-over-year growth at the
// most recent date only. Either is absent when the needed prior value
// is missing; there is no back-filling.
type Growth struct {
	MoM rs.Value
	YoY rs.Value
}

// Result is one region's row of the analysis output.
type Result struct {
	Region      string
	LatestPrice rs.Value
	MoMGrowth   rs.Value
	YoYGrowth   rs.Value
}

// Summary describes the latest-date cross-section, missing values
// excluded.
type Summary struct {
	PeriodStart string
	PeriodEnd   string
	Regions     int
	AvgLatest   float64
	MaxLatest   float64
	MinLatest   float64
}

// Load reads the sale-price history. The real header is embedded in the
// first data row; the first column names the region and the rest are
// "Month Year" date columns. Cells parse with the $/K convention;
// non-parsable cells become missing.
func Load(fileName string) (*History, error) {
	raw, e := rs.LoadTable(fileName)
	if e != nil {
		return nil, e
	}

	t, e := raw.PromoteHeader()
	if e != nil {
		return nil, &rs.FileReadError{File: raw.Name(), Err: e}
	}

	cols := t.ColumnNames()
	if len(cols) < 2 {
		return nil, &rs.MissingColumnError{Source: t.Name(), Column: "date columns"}
	}

	h := &History{}
	accs := make([]rs.Accessor, len(cols))
	for ind := 1; ind < len(cols); ind++ {
		d, eDate := time.Parse(dateLayout, cols[ind])
		if eDate != nil {
			return nil, &rs.FileReadError{File: t.Name(),
				Err: fmt.Errorf("column %q is not a %q date", cols[ind], dateLayout)}
		}

		h.Dates = append(h.Dates, d)
		if accs[ind], e = t.Accessor(cols[ind]); e != nil {
			return nil, e
		}
	}

	region, e := t.Accessor(cols[0])
	if e != nil {
		return nil, e
	}

	for row := 0; row < t.RowCount(); row++ {
		s := Series{Region: region(row), Prices: make([]rs.Value, len(h.Dates))}
		for ind := 1; ind < len(cols); ind++ {
			s.Prices[ind-1] = rs.NA()
			if cell := accs[ind](row); !rs.MissingCell(cell) {
				if v, eVal := rs.ParsePrice(cell); eVal == nil {
					s.Prices[ind-1] = v
				}
			}
		}

		h.Series = append(h.Series, s)
	}

	return h, nil
}

// GrowthRate computes the growth at the latest date of one series:
// mom against the prior period, yoy against 12 periods back.
func GrowthRate(prices []rs.Value) Growth {
	g := Growth{MoM: rs.NA(), YoY: rs.NA()}
	n := len(prices)
	if n == 0 {
		return g
	}

	latest, ok := prices[n-1].AsFloat()
	if !ok {
		return g
	}

	if n >= 2 {
		if prior, okP := prices[n-2].AsFloat(); okP && prior != 0 {
			g.MoM = rs.Some((latest/prior - 1) * 100)
		}
	}

	if n >= 13 {
		if prior, okP := prices[n-13].AsFloat(); okP && prior != 0 {
			g.YoY = rs.Some((latest/prior - 1) * 100)
		}
	}

	return g
}

// Results builds one row per region: latest price plus growth rates.
func (h *History) Results() []Result {
	var out []Result
	for _, s := range h.Series {
		g := GrowthRate(s.Prices)
		r := Result{Region: s.Region, LatestPrice: rs.NA(), MoMGrowth: g.MoM, YoYGrowth: g.YoY}
		if n := len(s.Prices); n > 0 {
			r.LatestPrice = s.Prices[n-1]
		}

		out = append(out, r)
	}

	return out
}

// Summarize computes the period and the latest-date price statistics.
func (h *History) Summarize() Summary {
	sm := Summary{Regions: len(h.Series)}
	if len(h.Dates) == 0 {
		return sm
	}

	sm.PeriodStart = h.Dates[0].Format("2006-01")
	sm.PeriodEnd = h.Dates[len(h.Dates)-1].Format("2006-01")

	var latest []float64
	for _, s := range h.Series {
		if x, ok := s.Prices[len(s.Prices)-1].AsFloat(); ok {
			latest = append(latest, x)
		}
	}

	if len(latest) > 0 {
		sm.AvgLatest = stat.Mean(latest, nil)
		sm.MaxLatest = floats.Max(latest)
		sm.MinLatest = floats.Min(latest)
	}

	return sm
}

// Analyzer runs the full time-series batch: load, summarize, growth,
// analysis CSV, charts.
type Analyzer struct {
	lg *slog.Logger
}

func NewAnalyzer(lg *slog.Logger) *Analyzer {
	if lg == nil {
		lg = slog.Default()
	}

	return &Analyzer{lg: lg}
}

// Run analyzes the sale-price source in inputDir and writes the
// analysis table and the two charts under outputDir.
func (a *Analyzer) Run(inputDir, outputDir string) (Summary, error) {
	files, e := rs.InputFiles(inputDir)
	if e != nil {
		return Summary{}, e
	}

	path, ok := rs.FindInput(files, SalePriceFile)
	if !ok {
		return Summary{}, &rs.NoInputFilesError{Dir: inputDir, Pattern: SalePriceFile}
	}

	h, e := Load(path)
	if e != nil {
		return Summary{}, e
	}
	a.lg.Info("read file", "file", filepath.Base(path), "regions", len(h.Series), "periods", len(h.Dates))

	if e = os.MkdirAll(outputDir, 0o755); e != nil {
		return Summary{}, e
	}

	results := h.Results()
	if e = WriteAnalysis(results, filepath.Join(outputDir, AnalysisName)); e != nil {
		return Summary{}, e
	}
	a.lg.Info("saved analysis", "file", AnalysisName)

	if e = PlotTrends(h, filepath.Join(outputDir, TrendsChart)); e != nil {
		return Summary{}, e
	}

	if e = PlotSummary(results, filepath.Join(outputDir, SummaryChart)); e != nil {
		return Summary{}, e
	}
	a.lg.Info("saved charts", "files", TrendsChart+", "+SummaryChart)

	return h.Summarize(), nil
}
