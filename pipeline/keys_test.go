package pipeline

import (
	"testing"

	rs "github.com/invertedv/regionstats"
	"github.com/stretchr/testify/assert"
)

func keysTable() *rs.Table {
	cols := []string{"key_row", "region_type", "zillow_region_name", "alternative_name"}
	rows := [][]string{
		{"texas", "state", "Texas", "Texas"},
		{"hawai'i", "state", "Hawaii", "Hawaii"},
		{"guam", "territory", "Guam", "Guam"},
		{"new_york", "state", "New York", "New York"},
	}

	t, e := rs.NewTable("KEYS.tsv", cols, rows)
	if e != nil {
		panic(e)
	}

	return t
}

func TestLoadKeys(t *testing.T) {
	reg, e := LoadKeys(keysTable())
	assert.Nil(t, e)

	// texas, new_york, plus the hard-coded DC and Puerto Rico; the
	// territory and the apostrophized duplicate are dropped
	assert.Equal(t, []string{"texas", "new_york", RegionDC, RegionPR}, reg.IDs())
}

func TestLoadKeysExistingExtras(t *testing.T) {
	cols := []string{"key_row", "region_type", "zillow_region_name", "alternative_name"}
	rows := [][]string{
		{"washington_dc", "state", "District of Columbia", "the District of Columbia"},
	}
	tbl, e := rs.NewTable("KEYS.tsv", cols, rows)
	assert.Nil(t, e)

	reg, e := LoadKeys(tbl)
	assert.Nil(t, e)
	assert.Equal(t, 2, reg.Len())

	// the file's own entry wins over the hard-coded one
	name, ok := reg.DisplayName(RegionDC)
	assert.True(t, ok)
	assert.Equal(t, "the District of Columbia", name)
}

func TestLoadKeysMissingColumn(t *testing.T) {
	tbl, e := rs.NewTable("KEYS.tsv", []string{"key_row", "region_type"}, nil)
	assert.Nil(t, e)

	_, e = LoadKeys(tbl)
	var mc *rs.MissingColumnError
	assert.ErrorAs(t, e, &mc)
}

func TestRegistryLookups(t *testing.T) {
	reg, e := LoadKeys(keysTable())
	assert.Nil(t, e)

	alias, ok := reg.Alias("texas")
	assert.True(t, ok)
	assert.Equal(t, "Texas", alias)

	name, ok := reg.DisplayName(RegionDC)
	assert.True(t, ok)
	assert.Equal(t, "Washington, DC", name)

	// a miss is a soft fail
	_, ok = reg.Alias("atlantis")
	assert.False(t, ok)
	_, ok = reg.DisplayName("atlantis")
	assert.False(t, ok)
}
