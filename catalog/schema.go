package catalog

import "fmt"

// Schema names the header columns mapped onto Star fields. Names are matched
// exactly (case-sensitive).
type Schema struct {
	ID    string
	RA    string
	Dec   string
	Bands [NumBands]string
}

// DefaultSchema returns the SDSS style column names.
func DefaultSchema() Schema {
	return Schema{
		ID:    "obj_id",
		RA:    "ra",
		Dec:   "dec",
		Bands: bandNames,
	}
}

// columns holds header positions resolved for a schema; -1 marks an absent
// optional column.
type columns struct {
	id, ra, dec int
	bands       [NumBands]int
	names       []string
}

func (s Schema) resolve(header []string) (*columns, error) {
	positions := make(map[string]int, len(header))
	for i, name := range header {
		if _, dup := positions[name]; dup {
			return nil, fmt.Errorf("%w: duplicate column %q", ErrSchema, name)
		}
		positions[name] = i
	}
	required := func(name string) (int, error) {
		if name == "" {
			return -1, fmt.Errorf("%w: empty required column name", ErrSchema)
		}
		pos, ok := positions[name]
		if !ok {
			return -1, fmt.Errorf("%w: missing required column %q", ErrSchema, name)
		}
		return pos, nil
	}
	cols := &columns{names: append([]string(nil), header...)}
	var err error
	if cols.id, err = required(s.ID); err != nil {
		return nil, err
	}
	if cols.ra, err = required(s.RA); err != nil {
		return nil, err
	}
	if cols.dec, err = required(s.Dec); err != nil {
		return nil, err
	}
	for b, name := range s.Bands {
		cols.bands[b] = -1
		if pos, ok := positions[name]; ok && name != "" {
			cols.bands[b] = pos
		}
	}
	return cols, nil
}
