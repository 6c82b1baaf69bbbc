package timecode

import (
	"math"
	"time"
)

// Add returns tc advanced by amount. The amount is a signed frame delta (any
// integer kind, or a float rounded to the nearest frame), a timecode string,
// a time.Time or Components read at tc's rate and drop mode, or a Timecode
// whose own frame count is used as is. The result wraps at 24 hours; a
// result below zero is a RangeError.
func (tc Timecode) Add(amount interface{}) (Timecode, error) {
	return tc.add(amount, false, 0)
}

// Subtract returns tc moved back by amount. See Add.
func (tc Timecode) Subtract(amount interface{}) (Timecode, error) {
	return tc.add(amount, true, 0)
}

// AddWithRollover is Add, except that a result below zero wraps back into the
// previous day as long as it lands no later than maxHours:00:00:00.
func (tc Timecode) AddWithRollover(amount interface{}, maxHours int) (Timecode, error) {
	return tc.add(amount, false, maxHours)
}

// SubtractWithRollover is Subtract with the rollover rule of AddWithRollover.
func (tc Timecode) SubtractWithRollover(amount interface{}, maxHours int) (Timecode, error) {
	return tc.add(amount, true, maxHours)
}

func (tc Timecode) add(amount interface{}, negative bool, rolloverMaxHours int) (Timecode, error) {
	if tc.IsZero() {
		return Timecode{}, NewConfigurationError("arithmetic on an uninitialized timecode")
	}

	delta, err := tc.frameDelta(amount)
	if err != nil {
		return Timecode{}, err
	}
	if negative {
		delta = -delta
	}

	day := tc.DayFrames()
	count := tc.frameCount + delta
	if count < 0 {
		if rolloverMaxHours <= 0 {
			return Timecode{}, NewRangeError("negative timecode: %d frames", count).
				WithDetails(map[string]interface{}{"timecode": tc.String(), "delta": delta})
		}
		count += day
		if count < 0 || count > tc.hoursToFrames(rolloverMaxHours) {
			return Timecode{}, NewRangeError("rollover exceeds max permitted (%d hours)", rolloverMaxHours).
				WithDetails(map[string]interface{}{"timecode": tc.String(), "delta": delta})
		}
	}

	return fromFrameCount(count%day, tc.rate, tc.dropFrame)
}

// frameDelta turns an Add operand into a frame count.
func (tc Timecode) frameDelta(amount interface{}) (int64, error) {
	switch v := amount.(type) {
	case int:
		return int64(v), nil
	case int8:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case uint:
		if uint64(v) > math.MaxInt64 {
			return 0, NewValidationError("frame delta %d out of range", v)
		}
		return int64(v), nil
	case uint8:
		return int64(v), nil
	case uint16:
		return int64(v), nil
	case uint32:
		return int64(v), nil
	case float32:
		return roundFrames(float64(v))
	case float64:
		return roundFrames(v)
	case Timecode:
		return v.frameCount, nil
	case *Timecode:
		if v == nil {
			return 0, NewFormatError("nil timecode operand")
		}
		return v.frameCount, nil
	case string, time.Time, Components:
		operand, err := New(v, WithFrameRate(tc.rate), WithDropFrame(tc.dropFrame))
		if err != nil {
			return 0, err
		}
		return operand.frameCount, nil
	default:
		return 0, NewFormatError("cannot add %T to a timecode", amount)
	}
}

func roundFrames(v float64) (int64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, NewValidationError("frame delta must be finite, got %v", v)
	}
	return int64(math.Round(v)), nil
}

// hoursToFrames is the frame count of the label hours:00:00:00.
func (tc Timecode) hoursToFrames(hours int) int64 {
	return componentsToFrames(hours, 0, 0, 0, tc.rate, tc.dropFrame)
}
