package timecode

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"time"
)

var timecodePattern = regexp.MustCompile(`^([012]\d):(\d\d):(\d\d)([:;.])(\d\d)$`)

// Timecode is an SMPTE timecode: a frame count at a fixed frame rate together
// with its HH:MM:SS:FF view. The zero value is not valid; use one of the
// constructors.
type Timecode struct {
	rate       FrameRate
	dropFrame  bool
	frameCount int64

	hours   int
	minutes int
	seconds int
	frames  int
}

// Components is the HH:MM:SS:FF form of a timecode. A zero FrameRate and a
// nil DropFrame mean the values come from options or defaults.
type Components struct {
	Hours     int
	Minutes   int
	Seconds   int
	Frames    int
	FrameRate FrameRate
	DropFrame *bool
}

// Option configures the frame rate and drop-frame mode of a new Timecode.
type Option func(*options)

type options struct {
	rate      FrameRate
	dropFrame *bool
}

// WithFrameRate sets the frame rate.
func WithFrameRate(rate FrameRate) Option {
	return func(o *options) {
		o.rate = rate
	}
}

// WithDropFrame forces drop-frame counting on or off.
func WithDropFrame(dropFrame bool) Option {
	return func(o *options) {
		o.dropFrame = &dropFrame
	}
}

func applyOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// resolve fills in the defaults: 29.97 and drop-frame iff the rate allows it.
func (o options) resolve() (FrameRate, bool) {
	rate := o.rate
	if rate.IsZero() {
		rate = DefaultFrameRate
	}
	rate = NewFrameRate(rate.Num, rate.Den)
	if o.dropFrame != nil {
		return rate, *o.dropFrame
	}
	return rate, rate.DefaultDropFrame()
}

// New builds a Timecode from a frame count (any integer or float kind), a
// "HH:MM:SS:FF" string, a time.Time, Components, another Timecode, or nil
// for frame zero.
func New(value interface{}, opts ...Option) (Timecode, error) {
	switch v := value.(type) {
	case nil:
		return FromFrames(0, opts...)
	case int:
		return FromFrames(int64(v), opts...)
	case int8:
		return FromFrames(int64(v), opts...)
	case int16:
		return FromFrames(int64(v), opts...)
	case int32:
		return FromFrames(int64(v), opts...)
	case int64:
		return FromFrames(v, opts...)
	case uint:
		return FromFrames(int64(v), opts...)
	case uint8:
		return FromFrames(int64(v), opts...)
	case uint16:
		return FromFrames(int64(v), opts...)
	case uint32:
		return FromFrames(int64(v), opts...)
	case float32:
		return FromFloat(float64(v), opts...)
	case float64:
		return FromFloat(v, opts...)
	case string:
		return Parse(v, opts...)
	case time.Time:
		return FromTime(v, opts...)
	case Components:
		return FromComponents(v, opts...)
	case *Components:
		if v == nil {
			return FromFrames(0, opts...)
		}
		return FromComponents(*v, opts...)
	case Timecode:
		return FromTimecode(v, opts...)
	case *Timecode:
		if v == nil {
			return FromFrames(0, opts...)
		}
		return FromTimecode(*v, opts...)
	default:
		return Timecode{}, NewFormatError("cannot build a timecode from %T", value)
	}
}

// FromFrames builds a Timecode from a frame count.
func FromFrames(count int64, opts ...Option) (Timecode, error) {
	rate, dropFrame := applyOptions(opts).resolve()
	return fromFrameCount(count, rate, dropFrame)
}

// FromFloat builds a Timecode from a fractional frame count, rounded to the
// nearest frame (halves away from zero).
func FromFloat(count float64, opts ...Option) (Timecode, error) {
	if math.IsNaN(count) || math.IsInf(count, 0) {
		return Timecode{}, NewValidationError("frame count must be finite, got %v", count)
	}
	return FromFrames(int64(math.Round(count)), opts...)
}

// Parse builds a Timecode from "HH:MM:SS:FF". A ';' or '.' before the frames
// selects drop-frame unless WithDropFrame says otherwise.
func Parse(s string, opts ...Option) (Timecode, error) {
	o := applyOptions(opts)
	parts := timecodePattern.FindStringSubmatch(s)
	if parts == nil {
		return Timecode{}, NewFormatError("timecode %q must be HH:MM:SS:FF or HH:MM:SS;FF", s)
	}

	rate, dropFrame := o.resolve()
	if o.dropFrame == nil {
		dropFrame = parts[4] != ":"
	}

	// The pattern guarantees two decimal digits per field.
	h, _ := strconv.Atoi(parts[1])
	m, _ := strconv.Atoi(parts[2])
	sec, _ := strconv.Atoi(parts[3])
	f, _ := strconv.Atoi(parts[5])

	tc, err := fromComponents(h, m, sec, f, rate, dropFrame)
	if err != nil {
		if tcErr, ok := GetError(err); ok && tcErr.Details == nil {
			tcErr.WithDetails(map[string]interface{}{"input": s})
		}
		return Timecode{}, err
	}
	return tc, nil
}

// MustParse is like Parse but panics on error.
func MustParse(s string, opts ...Option) Timecode {
	tc, err := Parse(s, opts...)
	if err != nil {
		panic(err)
	}
	return tc
}

// FromComponents builds a Timecode from HH:MM:SS:FF. Rate and drop-frame
// mode given as options take precedence over those on c.
func FromComponents(c Components, opts ...Option) (Timecode, error) {
	o := applyOptions(opts)
	if o.rate.IsZero() && !c.FrameRate.IsZero() {
		o.rate = c.FrameRate
	}
	if o.dropFrame == nil && c.DropFrame != nil {
		o.dropFrame = c.DropFrame
	}
	rate, dropFrame := o.resolve()
	return fromComponents(c.Hours, c.Minutes, c.Seconds, c.Frames, rate, dropFrame)
}

// FromTimecode copies src. When a different frame rate is requested the
// HH:MM:SS:FF labels are kept and counted again at the new rate, which fails
// if they do not exist there.
func FromTimecode(src Timecode, opts ...Option) (Timecode, error) {
	o := applyOptions(opts)
	if o.rate.IsZero() || o.rate.Equal(src.rate) {
		o.rate = src.rate
		if o.dropFrame == nil {
			o.dropFrame = &src.dropFrame
		}
		rate, dropFrame := o.resolve()
		if dropFrame == src.dropFrame {
			return fromFrameCount(src.frameCount, rate, dropFrame)
		}
	}
	rate, dropFrame := o.resolve()
	return fromComponents(src.hours, src.minutes, src.seconds, src.frames, rate, dropFrame)
}

func fromFrameCount(count int64, rate FrameRate, dropFrame bool) (Timecode, error) {
	if err := validateRate(rate, dropFrame); err != nil {
		return Timecode{}, err
	}
	if count < 0 {
		return Timecode{}, NewValidationError("negative frame count %d", count)
	}
	if day := dayFrames(rate, dropFrame); count >= day {
		return Timecode{}, NewValidationError("frame count %d exceeds one day (%d frames)", count, day)
	}

	tc := Timecode{rate: rate, dropFrame: dropFrame, frameCount: count}
	tc.hours, tc.minutes, tc.seconds, tc.frames = framesToComponents(count, rate, dropFrame)
	return tc, nil
}

func fromComponents(h, m, s, f int, rate FrameRate, dropFrame bool) (Timecode, error) {
	if err := validateRate(rate, dropFrame); err != nil {
		return Timecode{}, err
	}
	if err := validateComponents(h, m, s, f, rate, dropFrame); err != nil {
		return Timecode{}, err
	}
	return Timecode{
		rate:       rate,
		dropFrame:  dropFrame,
		frameCount: componentsToFrames(h, m, s, f, rate, dropFrame),
		hours:      h,
		minutes:    m,
		seconds:    s,
		frames:     f,
	}, nil
}

func validateRate(rate FrameRate, dropFrame bool) error {
	if !rate.IsSupported() {
		return NewConfigurationError("unsupported frame rate %s", rate)
	}
	if dropFrame && !rate.SupportsDropFrame() {
		return NewConfigurationError("drop-frame is only supported at 29.97 and 59.94 fps, not %s", rate)
	}
	return nil
}

func validateComponents(h, m, s, f int, rate FrameRate, dropFrame bool) error {
	fps := int(rate.Nominal())
	switch {
	case h < 0 || h > 23:
		return NewValidationError("hours out of range: %d", h)
	case m < 0 || m > 59:
		return NewValidationError("minutes out of range: %d", m)
	case s < 0 || s > 59:
		return NewValidationError("seconds out of range: %d", s)
	case f < 0 || f >= fps:
		return NewValidationError("frames out of range: %d (rate %s)", f, rate)
	}

	if dropFrame && s == 0 && m%10 != 0 && f < int(rate.dropSize()) {
		return NewValidationError("frame %02d:%02d:%02d;%02d is dropped in drop-frame timecode", h, m, s, f)
	}
	return nil
}

// FrameRate returns the frame rate.
func (tc Timecode) FrameRate() FrameRate { return tc.rate }

// DropFrame reports whether drop-frame counting is used.
func (tc Timecode) DropFrame() bool { return tc.dropFrame }

// FrameCount returns the number of frames since 00:00:00:00.
func (tc Timecode) FrameCount() int64 { return tc.frameCount }

// NumericValue returns the frame count, for use wherever the timecode takes
// part in plain integer arithmetic.
func (tc Timecode) NumericValue() int64 { return tc.frameCount }

func (tc Timecode) Hours() int   { return tc.hours }
func (tc Timecode) Minutes() int { return tc.minutes }
func (tc Timecode) Seconds() int { return tc.seconds }
func (tc Timecode) Frames() int  { return tc.frames }

// Components returns the HH:MM:SS:FF view including rate and drop mode.
func (tc Timecode) Components() Components {
	dropFrame := tc.dropFrame
	return Components{
		Hours:     tc.hours,
		Minutes:   tc.minutes,
		Seconds:   tc.seconds,
		Frames:    tc.frames,
		FrameRate: tc.rate,
		DropFrame: &dropFrame,
	}
}

// DayFrames returns the number of frames in 24 hours at the timecode's rate
// and drop mode; frame counts wrap at this value.
func (tc Timecode) DayFrames() int64 {
	return dayFrames(tc.rate, tc.dropFrame)
}

// IsZero reports whether tc is the zero value rather than a constructed
// timecode.
func (tc Timecode) IsZero() bool {
	return tc.rate.IsZero()
}

// Equal reports whether two timecodes denote the same frame at the same rate
// and drop mode.
func (tc Timecode) Equal(other Timecode) bool {
	return tc.frameCount == other.frameCount &&
		tc.dropFrame == other.dropFrame &&
		tc.rate.Equal(other.rate)
}

// GoString is used by %#v.
func (tc Timecode) GoString() string {
	return fmt.Sprintf("timecode.Timecode{%s @ %s, frame %d}", tc.String(), tc.rate, tc.frameCount)
}
