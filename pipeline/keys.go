// Package pipeline joins the regional statistics sources into one
// combined table per region, with ranks, an affordability ratio and
// templated blurb text.
package pipeline

import (
	"strings"

	rs "github.com/invertedv/regionstats"
)

// Region identifiers with special handling downstream.
const (
	RegionDC = "washington_dc"
	RegionPR = "puerto_rico"
)

// RegionKey is one canonical region: the slug used to key every stage,
// the alias used to locate it in the census sources, and the display
// name used in blurb text.
type RegionKey struct {
	ID            string
	RegionType    string
	DisplayName   string
	SourceAlias   string
	HasApostrophe bool
}

// Registry is the canonical region list, loaded once per run and
// immutable afterward. Order is the output row order.
type Registry struct {
	keys []RegionKey
	byID map[string]int
}

// Columns the KEYS source must declare.
const (
	colKeyRow      = "key_row"
	colRegionType  = "region_type"
	colSourceAlias = "zillow_region_name"
	colDisplayName = "alternative_name"
)

// LoadKeys filters the raw KEYS table down to state rows, drops
// apostrophized duplicates, and guarantees entries for DC and Puerto
// Rico (the sale-price source never reports them, so downstream stages
// special-case these two).
func LoadKeys(t *rs.Table) (*Registry, error) {
	var (
		id, rt, alias, name rs.Accessor
		e                   error
	)

	if id, e = t.Accessor(colKeyRow); e != nil {
		return nil, e
	}
	if rt, e = t.Accessor(colRegionType); e != nil {
		return nil, e
	}
	if alias, e = t.Accessor(colSourceAlias); e != nil {
		return nil, e
	}
	if name, e = t.Accessor(colDisplayName); e != nil {
		return nil, e
	}

	reg := &Registry{byID: make(map[string]int)}
	for row := 0; row < t.RowCount(); row++ {
		k := RegionKey{
			ID:            id(row),
			RegionType:    rt(row),
			DisplayName:   name(row),
			SourceAlias:   alias(row),
			HasApostrophe: strings.Contains(id(row), "'"),
		}

		if k.ID == "" || k.RegionType != "state" {
			continue
		}

		// apostrophized ids duplicate another canonical entry
		if k.HasApostrophe {
			continue
		}

		reg.add(k)
	}

	// The extras the sources special-case. Skipped if the KEYS file
	// already carries them as states.
	extras := []RegionKey{
		{ID: RegionDC, RegionType: "state", DisplayName: "Washington, DC", SourceAlias: "District of Columbia"},
		{ID: RegionPR, RegionType: "state", DisplayName: "Puerto Rico", SourceAlias: "Puerto Rico"},
	}
	for _, k := range extras {
		if !rs.Has(k.ID, reg.IDs()) {
			reg.add(k)
		}
	}

	return reg, nil
}

func (reg *Registry) add(k RegionKey) {
	if _, dup := reg.byID[k.ID]; dup {
		return
	}

	reg.byID[k.ID] = len(reg.keys)
	reg.keys = append(reg.keys, k)
}

func (reg *Registry) Len() int {
	return len(reg.keys)
}

// Regions returns the keys in registry (output) order.
func (reg *Registry) Regions() []RegionKey {
	return reg.keys
}

func (reg *Registry) IDs() []string {
	ids := make([]string, len(reg.keys))
	for ind, k := range reg.keys {
		ids[ind] = k.ID
	}

	return ids
}

// Alias returns the name a census source uses for id. A miss is a soft
// fail, not an error.
func (reg *Registry) Alias(id string) (string, bool) {
	ind, ok := reg.byID[id]
	if !ok {
		return "", false
	}

	return reg.keys[ind].SourceAlias, true
}

// DisplayName returns the name blurb text uses for id.
func (reg *Registry) DisplayName(id string) (string, bool) {
	ind, ok := reg.byID[id]
	if !ok {
		return "", false
	}

	return reg.keys[ind].DisplayName, true
}
