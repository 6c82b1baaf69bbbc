package timecode

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FrameRate is an exact frame rate expressed as frames per second (Num/Den).
// NTSC rates are kept as their 1001 fractions so comparisons never depend on
// floating point.
type FrameRate struct {
	Num int64 // Numerator
	Den int64 // Denominator
}

// Supported frame rates
var (
	FrameRate24 = FrameRate{Num: 24, Den: 1}
	FrameRate25 = FrameRate{Num: 25, Den: 1} // PAL
	FrameRate30 = FrameRate{Num: 30, Den: 1}
	FrameRate50 = FrameRate{Num: 50, Den: 1}
	FrameRate60 = FrameRate{Num: 60, Den: 1}

	// NTSC frame rates
	FrameRate23_976 = FrameRate{Num: 24000, Den: 1001}
	FrameRate29_97  = FrameRate{Num: 30000, Den: 1001}
	FrameRate59_94  = FrameRate{Num: 60000, Den: 1001}
)

// DefaultFrameRate is used when no rate is given.
var DefaultFrameRate = FrameRate29_97

var supportedRates = []FrameRate{
	FrameRate23_976,
	FrameRate24,
	FrameRate25,
	FrameRate29_97,
	FrameRate30,
	FrameRate50,
	FrameRate59_94,
	FrameRate60,
}

// SupportedFrameRates returns the frame rates accepted by this package.
func SupportedFrameRates() []FrameRate {
	rates := make([]FrameRate, len(supportedRates))
	copy(rates, supportedRates)
	return rates
}

// NewFrameRate creates a frame rate reduced to lowest terms. It does not
// check the rate against the supported list; construction does that.
func NewFrameRate(num, den int64) FrameRate {
	if den == 0 {
		den = 1
	}
	if den < 0 {
		num, den = -num, -den
	}
	if g := gcd(abs64(num), den); g > 1 {
		num, den = num/g, den/g
	}
	return FrameRate{Num: num, Den: den}
}

// FrameRateFromFloat maps a decimal rate such as 29.97 onto its exact
// rational. Integer rates must match exactly; NTSC rates match within 0.001.
func FrameRateFromFloat(fps float64) (FrameRate, error) {
	if fps <= 0 || math.IsNaN(fps) || math.IsInf(fps, 0) {
		return FrameRate{}, NewConfigurationError("frame rate must be a positive number, got %v", fps)
	}
	for _, r := range supportedRates {
		if r.Den == 1 {
			if fps == float64(r.Num) {
				return r, nil
			}
			continue
		}
		if math.Abs(fps-r.Float64()) < 0.001 {
			return r, nil
		}
	}
	return FrameRate{}, NewConfigurationError("unsupported frame rate %v", fps)
}

// ParseFrameRate parses "29.97", "25" or "30000/1001".
func ParseFrameRate(s string) (FrameRate, error) {
	s = strings.TrimSpace(s)
	if num, den, ok := strings.Cut(s, "/"); ok {
		n, err := strconv.ParseInt(strings.TrimSpace(num), 10, 64)
		if err != nil {
			return FrameRate{}, WrapError(err, ErrorTypeConfiguration, fmt.Sprintf("invalid frame rate numerator %q", num))
		}
		d, err := strconv.ParseInt(strings.TrimSpace(den), 10, 64)
		if err != nil || d == 0 {
			return FrameRate{}, NewConfigurationError("invalid frame rate denominator %q", den)
		}
		r := NewFrameRate(n, d)
		if !r.IsSupported() {
			return FrameRate{}, NewConfigurationError("unsupported frame rate %s", r)
		}
		return r, nil
	}

	fps, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return FrameRate{}, WrapError(err, ErrorTypeConfiguration, fmt.Sprintf("invalid frame rate %q", s))
	}
	return FrameRateFromFloat(fps)
}

// MustFrameRate is like FrameRateFromFloat but panics on error.
func MustFrameRate(fps float64) FrameRate {
	r, err := FrameRateFromFloat(fps)
	if err != nil {
		panic(err)
	}
	return r
}

// IsZero reports whether the rate is unset.
func (r FrameRate) IsZero() bool {
	return r.Num == 0
}

// IsSupported reports whether r is one of the supported broadcast rates.
func (r FrameRate) IsSupported() bool {
	n := NewFrameRate(r.Num, r.Den)
	for _, s := range supportedRates {
		if s == n {
			return true
		}
	}
	return false
}

// Equal compares two rates by value, so 60/2 equals 30/1.
func (r FrameRate) Equal(other FrameRate) bool {
	return r.Num*other.Den == other.Num*r.Den
}

// Float64 returns the floating point representation
func (r FrameRate) Float64() float64 {
	if r.Den == 0 {
		return 0
	}
	return float64(r.Num) / float64(r.Den)
}

// Nominal returns round(rate), the frames-per-second base of the
// HH:MM:SS:FF representation.
func (r FrameRate) Nominal() int64 {
	if r.Den == 0 {
		return 0
	}
	return (2*r.Num + r.Den) / (2 * r.Den)
}

// SupportsDropFrame reports whether drop-frame counting is defined at r.
// Only 29.97 and 59.94 qualify.
func (r FrameRate) SupportsDropFrame() bool {
	n := NewFrameRate(r.Num, r.Den)
	return n == FrameRate29_97 || n == FrameRate59_94
}

// DefaultDropFrame returns the drop-frame mode assumed when none is given.
func (r FrameRate) DefaultDropFrame() bool {
	return r.SupportsDropFrame()
}

// dropSize is the number of frame labels skipped per dropped minute.
func (r FrameRate) dropSize() int64 {
	return 2 * r.Nominal() / 30
}

// String renders integer rates as "25" and fractional ones as "30000/1001".
func (r FrameRate) String() string {
	if r.Den == 1 {
		return strconv.FormatInt(r.Num, 10)
	}
	return fmt.Sprintf("%d/%d", r.Num, r.Den)
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
