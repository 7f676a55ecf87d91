package predictor

import (
	"github.com/flightlog/blackbox/errs"
	"github.com/flightlog/blackbox/format"
	"github.com/flightlog/blackbox/header"
)

// Context carries the frame-decoder state a predictor baseline is computed
// against (spec §4.5). Each slice is indexed by field position in the field
// list it was decoded with (Last/Last2: I/P; LastSlow: S; Current: the frame
// being built); a nil slice means "no history yet" and every baseline that would read it
// instead evaluates to 0, per §4.5's "same as raw until history" rule.
type Context struct {
	Last     []int64 // most recently accepted I/P frame
	Last2    []int64 // the one before that
	LastSlow []int64 // most recently accepted S frame
	GPSHome  [2]int64

	// Current holds the values decoded so far within the frame being built,
	// in field order; used by MOTOR_0, which refers to a field decoded
	// earlier in the same frame.
	Current []int64

	// MotorZeroIndex is the field-list position of "motor[0]" in the current
	// frame type, or -1 if absent.
	MotorZeroIndex int
	// TimeIndex is the field-list position of "time" in the I/P field list,
	// or -1 if absent.
	TimeIndex int
	// HomeCoordIndex selects GPSHome[0] or GPSHome[1] for HOME_COORD/
	// HOME_LAT baselines; the frame decoder passes 0 for the first such
	// field it decodes in a frame and 1 for the second.
	HomeCoordIndex int

	IsSlowFrame bool

	Header *header.Header
}

func at(slice []int64, i int) int64 {
	if i < 0 || i >= len(slice) {
		return 0
	}

	return slice[i]
}

// Apply combines raw with the baseline for predictor kind at field index
// idx, narrowing the result to 32-bit signed or unsigned per signed, and
// returns the field's logical value (widened back to int64 at the API
// boundary, per spec §9's "numeric width" design note).
func Apply(kind format.PredictorKind, raw int64, idx int, signed bool, ctx Context) (int64, error) {
	baseline, err := baseline(kind, idx, ctx)
	if err != nil {
		return 0, err
	}

	sum := raw + baseline
	if signed {
		return int64(int32(sum)), nil
	}

	return int64(uint32(sum)), nil
}

func baseline(kind format.PredictorKind, idx int, ctx Context) (int64, error) {
	switch kind {
	case format.PredictorZero:
		return 0, nil

	case format.PredictorPrevious:
		return at(ctx.Last, idx), nil

	case format.PredictorStraightLine:
		return 2*at(ctx.Last, idx) - at(ctx.Last2, idx), nil

	case format.PredictorAverage2:
		return floorDiv2(at(ctx.Last, idx)+at(ctx.Last2, idx)), nil

	case format.PredictorMinThrottle:
		v, err := ctx.Header.MinThrottle()
		if err != nil {
			return 0, err
		}

		return v, nil

	case format.PredictorMotor0:
		if ctx.MotorZeroIndex < 0 || ctx.MotorZeroIndex >= len(ctx.Current) {
			return 0, errs.ErrNoHistory
		}

		return ctx.Current[ctx.MotorZeroIndex], nil

	case format.PredictorInc:
		if ctx.IsSlowFrame {
			return at(ctx.LastSlow, idx) + 1, nil
		}

		return at(ctx.Last, idx) + 1, nil

	case format.PredictorHomeCoord, format.PredictorHomeLat:
		// HOME_LAT is a firmware-revision synonym for HOME_COORD (see
		// DESIGN.md); both read the same gps_home slot.
		if ctx.HomeCoordIndex < 0 || ctx.HomeCoordIndex > 1 {
			return 0, errs.ErrMalformedEncoding
		}

		return ctx.GPSHome[ctx.HomeCoordIndex], nil

	case format.Predictor1500:
		return 1500, nil

	case format.PredictorVBatRef:
		v, err := ctx.Header.VbatRef()
		if err != nil {
			return 0, err
		}

		return v, nil

	case format.PredictorLastMainFrameTime:
		return at(ctx.Last, ctx.TimeIndex), nil

	case format.PredictorMinMotor:
		min, _, err := ctx.Header.MotorOutput()
		if err != nil {
			return 0, err
		}

		return min, nil

	default:
		return 0, errs.ErrMalformedEncoding
	}
}

// floorDiv2 divides by 2, rounding toward negative infinity (spec §4.5,
// AVERAGE_2 note), unlike Go's truncating integer division.
func floorDiv2(v int64) int64 {
	if v >= 0 {
		return v / 2
	}

	return -((-v + 1) / 2)
}
