package engine

import (
	"database/sql/driver"
	"fmt"
	"sync"

	sqlite "modernc.org/sqlite"

	"github.com/viant/starindex/index"
)

var registerOnce sync.Once

// RegisterStarFunctions registers star_dist2 with the driver so it is
// available on new connections opened after this call.
// Note: existing open connections will not see new functions.
//
//	star_dist2(ra, dec, qra, qdec) -> squared Euclidean distance, NULL if any argument is NULL
func RegisterStarFunctions() error {
	var err error
	registerOnce.Do(func() {
		err = sqlite.RegisterDeterministicScalarFunction("star_dist2", 4, starDist2Impl)
	})
	return err
}

func asFloat(arg driver.Value) (float64, bool, error) {
	switch v := arg.(type) {
	case nil:
		return 0, false, nil
	case float64:
		return v, true, nil
	case int64:
		return float64(v), true, nil
	default:
		return 0, false, fmt.Errorf("star_dist2: unsupported argument type %T; want REAL", arg)
	}
}

func starDist2Impl(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	if len(args) != 4 {
		return nil, fmt.Errorf("star_dist2: expected 4 arguments, got %d", len(args))
	}
	var coords [4]float64
	for i, arg := range args {
		v, ok, err := asFloat(arg)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, nil
		}
		coords[i] = v
	}
	return index.DistanceSq(coords[0], coords[1], coords[2], coords[3]), nil
}
