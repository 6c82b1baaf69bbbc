// Package timecode implements SMPTE timecodes: HH:MM:SS:FF labels at a fixed
// broadcast frame rate, backed by a frame count.
//
// A Timecode is built from exactly one source: a frame count, a
// "HH:MM:SS:FF" string, a time.Time, Components, or another Timecode.
//
//	tc, err := timecode.Parse("01:23:45;06")       // 29.97 drop-frame
//	tc, err = timecode.FromFrames(15000, timecode.WithFrameRate(timecode.FrameRate25))
//	next, err := tc.Add(60)                        // tc itself is unchanged
//
// Supported rates are 23.976, 24, 25, 29.97, 30, 50, 59.94 and 60 fps, kept
// as exact rationals (30000/1001 and so on). Drop-frame counting is available
// at 29.97 (two labels per minute) and 59.94 (four labels per minute) and is
// the default at those rates.
//
// Frame counts cover a single day: arithmetic wraps at 24:00:00:00 and fails
// with a RangeError below zero unless a rollover window is given.
package timecode
