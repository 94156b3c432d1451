package pipeline

import (
	"log/slog"
	"os"
	"path/filepath"

	rs "github.com/invertedv/regionstats"
)

// Input files are matched by name substring.
const (
	KeysFile       = "KEYS"
	PopulationFile = "CENSUS_POPULATION"
	IncomeFile     = "CENSUS_MHI_STATE"
	SalePriceFile  = "REDFIN_MEDIAN_SALE_PRICE"
)

// OutputName is the combined-table file written under the output dir.
const OutputName = "output.csv"

// Pipeline runs the full join-and-enrich batch: registry, readers,
// merge, ranks, ratio, blurbs, output. Single-threaded; one stage fully
// completes before the next starts.
type Pipeline struct {
	lg *slog.Logger
}

func New(lg *slog.Logger) *Pipeline {
	if lg == nil {
		lg = slog.Default()
	}

	return &Pipeline{lg: lg}
}

// Run processes the input directory and writes the combined table under
// outputDir. A missing input directory or an unusable KEYS file is
// fatal; a failure in any other source degrades that source's columns
// to missing and the run continues.
func (p *Pipeline) Run(inputDir, outputDir string) (*Combined, error) {
	files, e := rs.InputFiles(inputDir)
	if e != nil {
		return nil, e
	}

	// KEYS first: every other source resolves regions through it.
	keysPath, ok := rs.FindInput(files, KeysFile)
	if !ok {
		return nil, &rs.NoInputFilesError{Dir: inputDir, Pattern: KeysFile}
	}

	keysTable, e := rs.LoadTable(keysPath)
	if e != nil {
		return nil, e
	}
	p.lg.Info("read file", "file", keysTable.Name())

	reg, e := LoadKeys(keysTable)
	if e != nil {
		return nil, e
	}
	p.lg.Info("loaded region keys", "regions", reg.Len())

	combined := NewCombined(reg)

	if t := p.load(files, PopulationFile); t != nil {
		if vals, eRead := ReadPopulation(t, reg, p.lg); eRead == nil {
			combined.MergePopulation(vals)
		} else {
			p.lg.Error("error processing population source", "file", t.Name(), "err", eRead)
		}
	}

	if t := p.load(files, IncomeFile); t != nil {
		if vals, eRead := ReadIncome(t, reg, p.lg); eRead == nil {
			combined.MergeIncome(vals)
		} else {
			p.lg.Error("error processing income source", "file", t.Name(), "err", eRead)
		}
	}

	// The sale-price stage always runs: DC and Puerto Rico carry fixed
	// values even when the source file is absent.
	salesTable := p.load(files, SalePriceFile)
	vals, dataDate, eRead := ReadSalePrices(salesTable, reg, p.lg)
	if eRead != nil {
		p.lg.Error("error processing sale-price source", "err", eRead)
	}
	combined.MergeSalePrices(vals)

	combined.RankAll()

	// Best effort from here: a late failure still flushes what was
	// computed, but never over a completed write.
	outPath := filepath.Join(outputDir, OutputName)
	if eFinal := p.finalize(combined, dataDate, outPath); eFinal != nil {
		p.lg.Error("error during final processing", "err", eFinal)
		if _, eStat := os.Stat(outPath); os.IsNotExist(eStat) {
			if eSave := Save(combined, outPath); eSave != nil {
				p.lg.Error("cannot save partial data", "err", eSave)
			} else {
				p.lg.Warn("saved partial data", "file", outPath)
			}
		}

		return combined, nil
	}

	p.lg.Info("saved combined data", "file", outPath)

	return combined, nil
}

// load finds and reads one source by name substring, or returns nil:
// file-level failures only cost that file's columns.
func (p *Pipeline) load(files []string, substr string) *rs.Table {
	path, ok := rs.FindInput(files, substr)
	if !ok {
		p.lg.Warn("input file not found", "pattern", substr)
		return nil
	}

	t, e := rs.LoadTable(path)
	if e != nil {
		p.lg.Error("error reading file", "err", e)
		return nil
	}

	p.lg.Info("read file", "file", t.Name())

	return t
}

func (p *Pipeline) finalize(combined *Combined, dataDate, outPath string) error {
	combined.ComputeAffordability()
	combined.Blurbs(dataDate)

	return Save(combined, outPath)
}

// Save writes the combined table. Numeric cells print with one decimal
// place for floats and plain for integers; absent values print empty.
func Save(c *Combined, fileName string) error {
	f := rs.NewFiles()
	f.FieldNames = OutputColumns

	if e := f.Create(fileName); e != nil {
		return e
	}
	defer func() { _ = f.Close() }()

	if e := f.WriteHeader(); e != nil {
		return e
	}

	for _, r := range c.Records() {
		cells := []any{
			r.RegionID,
			cellInt(r.Population),
			r.PopulationRank,
			r.PopulationBlurb,
			cellInt(r.Income),
			r.IncomeRank,
			r.IncomeBlurb,
			cellInt(r.SalePrice),
			r.SalePriceRank,
			r.SalePriceBlurb,
			r.Affordability,
			r.AffordabilityRank,
			r.AffordabilityBlurb,
		}

		if e := f.WriteLine(cells); e != nil {
			return e
		}
	}

	return nil
}

func cellInt(v rs.Value) any {
	if x, ok := v.AsInt(); ok {
		return x
	}

	return nil
}
