package timecode

import "time"

// FromTime builds the time-of-day timecode of t: the real time elapsed since
// midnight of t's date in t's location, counted in frames and rounded to the
// nearest frame. The zone offsets of midnight and of t are looked up
// separately so a daylight-saving change during the day does not shift the
// result.
func FromTime(t time.Time, opts ...Option) (Timecode, error) {
	rate, dropFrame := applyOptions(opts).resolve()
	if err := validateRate(rate, dropFrame); err != nil {
		return Timecode{}, err
	}

	midnight := localMidnight(t)
	elapsed := t.Sub(midnight) + zoneOffset(t) - zoneOffset(midnight)

	count := divRound(int64(elapsed)*rate.Num, int64(time.Second)*rate.Den)
	// Rounding up in the last half frame of the day lands on midnight.
	return fromFrameCount(count%dayFrames(rate, dropFrame), rate, dropFrame)
}

// ToTime returns today's local wall-clock time at this timecode. Only the
// time of day is meaningful.
func (tc Timecode) ToTime() time.Time {
	return tc.ToTimeOn(time.Now())
}

// ToTimeOn returns the wall-clock time at this timecode on day's date, in
// day's location. The offset from midnight is corrected by the difference
// between the zone offsets of midnight and of the result.
func (tc Timecode) ToTimeOn(day time.Time) time.Time {
	midnight := localMidnight(day)
	offset := tc.Duration()
	naive := midnight.Add(offset)
	return midnight.Add(offset + zoneOffset(midnight) - zoneOffset(naive))
}

// Duration returns the real time elapsed from 00:00:00:00 to tc, which for
// NTSC rates is frames * 1001 / (fps * 1000) seconds.
func (tc Timecode) Duration() time.Duration {
	if tc.rate.Num == 0 {
		return 0
	}
	return time.Duration(divRound(tc.frameCount*int64(time.Second)*tc.rate.Den, tc.rate.Num))
}

func localMidnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func zoneOffset(t time.Time) time.Duration {
	_, offset := t.Zone()
	return time.Duration(offset) * time.Second
}

// divRound divides rounding halves away from zero; b must be positive.
func divRound(a, b int64) int64 {
	q, r := a/b, a%b
	switch {
	case r >= 0 && 2*r >= b:
		q++
	case r < 0 && -2*r >= b:
		q--
	}
	return q
}
