package catalog

import (
	"math"
	"strconv"
)

// Band identifies one of the photometric bands carried by a star.
type Band int

const (
	BandU Band = iota
	BandG
	BandR
	BandI
	BandZ

	// NumBands is the number of photometric bands.
	NumBands = 5
)

var bandNames = [NumBands]string{"u", "g", "r", "i", "z"}

// String returns the lower-case band name.
func (b Band) String() string {
	if b < 0 || int(b) >= NumBands {
		return "band(" + strconv.Itoa(int(b)) + ")"
	}
	return bandNames[b]
}

// Bands returns all bands in declaration order.
func Bands() []Band {
	return []Band{BandU, BandG, BandR, BandI, BandZ}
}

// Magnitude is an optional photometric magnitude. The zero value is absent.
type Magnitude struct {
	value float64
	ok    bool
}

// Some returns a present magnitude.
func Some(v float64) Magnitude { return Magnitude{value: v, ok: true} }

// Get returns the value and whether it is present.
func (m Magnitude) Get() (float64, bool) { return m.value, m.ok }

// Present reports whether the magnitude has a value.
func (m Magnitude) Present() bool { return m.ok }

// String formats the magnitude, or "-" when absent.
func (m Magnitude) String() string {
	if !m.ok {
		return "-"
	}
	return strconv.FormatFloat(m.value, 'f', -1, 64)
}

// Star is a single catalog entry. RA and Dec are the indexed position.
type Star struct {
	ObjID      uint64
	RA         float64
	Dec        float64
	Magnitudes [NumBands]Magnitude
}

// Magnitude returns the magnitude for band b; out of range bands are absent.
func (s Star) Magnitude(b Band) Magnitude {
	if b < 0 || int(b) >= NumBands {
		return Magnitude{}
	}
	return s.Magnitudes[b]
}

// Valid reports whether the star position is finite.
func (s Star) Valid() bool {
	return isFinite(s.RA) && isFinite(s.Dec)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
