package regionstats

import "fmt"

// The error taxonomy. Fatal errors (MissingDirectoryError,
// NoInputFilesError) surface to the run boundary; the rest are scoped to
// a file, a source column or a single cell and degrade the affected
// output to missing.

type MissingDirectoryError struct {
	Dir string
}

func (e *MissingDirectoryError) Error() string {
	return fmt.Sprintf("input directory %s does not exist", e.Dir)
}

// NoInputFilesError covers an input directory with nothing usable:
// no CSV/TSV files at all, or none matching a required name pattern.
type NoInputFilesError struct {
	Dir     string
	Pattern string
}

func (e *NoInputFilesError) Error() string {
	if e.Pattern != "" {
		return fmt.Sprintf("no %s file found in %s", e.Pattern, e.Dir)
	}

	return fmt.Sprintf("no CSV/TSV files found in %s", e.Dir)
}

type FileReadError struct {
	File string
	Err  error
}

func (e *FileReadError) Error() string {
	return fmt.Sprintf("error reading %s: %v", e.File, e.Err)
}

func (e *FileReadError) Unwrap() error {
	return e.Err
}

type MissingColumnError struct {
	Source string
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("%s: column %s not found", e.Source, e.Column)
}

type ValueExtractionError struct {
	Region string
	Column string
	Err    error
}

func (e *ValueExtractionError) Error() string {
	return fmt.Sprintf("region %s: cannot extract %s: %v", e.Region, e.Column, e.Err)
}

func (e *ValueExtractionError) Unwrap() error {
	return e.Err
}
