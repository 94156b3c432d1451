package regionstats

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Table holds one raw wide-format source: a header plus string rows.
// Columns are reached through accessors validated against the declared
// column set, so a bad lookup fails once at wiring time with a named
// error instead of failing per cell.
type Table struct {
	name string
	cols []string
	pos  map[string]int
	rows [][]string
}

// An Accessor returns the cell in its column for a row index. Rows may
// be ragged; out-of-range reads return the empty cell.
type Accessor func(row int) string

// LoadTable reads a delimited file. ".tsv" files are tab-delimited,
// everything else comma-delimited. The first record is the header.
func LoadTable(fileName string) (*Table, error) {
	f, e := os.Open(fileName)
	if e != nil {
		return nil, &FileReadError{File: filepath.Base(fileName), Err: e}
	}
	defer func() { _ = f.Close() }()

	rdr := csv.NewReader(f)
	rdr.FieldsPerRecord = -1
	rdr.LazyQuotes = true
	if strings.HasSuffix(fileName, ".tsv") {
		rdr.Comma = '\t'
	}

	recs, e := rdr.ReadAll()
	if e != nil {
		return nil, &FileReadError{File: filepath.Base(fileName), Err: e}
	}

	if len(recs) == 0 {
		return nil, &FileReadError{File: filepath.Base(fileName), Err: fmt.Errorf("file is empty")}
	}

	return NewTable(filepath.Base(fileName), recs[0], recs[1:])
}

func NewTable(name string, cols []string, rows [][]string) (*Table, error) {
	if len(cols) == 0 {
		return nil, fmt.Errorf("no columns in table %s", name)
	}

	pos := make(map[string]int, len(cols))
	for ind, c := range cols {
		if _, dup := pos[c]; !dup {
			pos[c] = ind
		}
	}

	return &Table{name: name, cols: cols, pos: pos, rows: rows}, nil
}

func (t *Table) Name() string {
	return t.name
}

func (t *Table) RowCount() int {
	return len(t.rows)
}

func (t *Table) ColumnNames() []string {
	return t.cols
}

// Accessor validates colName against the declared columns and returns a
// cell accessor for it.
func (t *Table) Accessor(colName string) (Accessor, error) {
	var (
		ind int
		ok  bool
	)

	if ind, ok = t.pos[colName]; !ok {
		return nil, &MissingColumnError{Source: t.name, Column: colName}
	}

	return func(row int) string {
		if row < 0 || row >= len(t.rows) || ind >= len(t.rows[row]) {
			return ""
		}

		return t.rows[row][ind]
	}, nil
}

// PromoteHeader treats row 0 as the real column header and shifts the
// data up by one. Some exports carry this two-row header artifact.
func (t *Table) PromoteHeader() (*Table, error) {
	if len(t.rows) == 0 {
		return nil, fmt.Errorf("table %s has no rows to promote", t.name)
	}

	return NewTable(t.name, t.rows[0], t.rows[1:])
}

// InputFiles returns the CSV/TSV files in dir, sorted by name. The
// directory must exist and contain at least one match.
func InputFiles(dir string) ([]string, error) {
	if fi, e := os.Stat(dir); e != nil || !fi.IsDir() {
		return nil, &MissingDirectoryError{Dir: dir}
	}

	var files []string
	for _, pat := range []string{"*.csv", "*.tsv"} {
		m, e := filepath.Glob(filepath.Join(dir, pat))
		if e != nil {
			return nil, e
		}

		files = append(files, m...)
	}

	if len(files) == 0 {
		return nil, &NoInputFilesError{Dir: dir}
	}

	return files, nil
}

// FindInput returns the first file whose base name contains substr.
func FindInput(files []string, substr string) (string, bool) {
	for _, f := range files {
		if strings.Contains(filepath.Base(f), substr) {
			return f, true
		}
	}

	return "", false
}
