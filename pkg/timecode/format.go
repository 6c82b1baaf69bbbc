package timecode

import "fmt"

// Format tokens accepted by Timecode.Format.
const (
	FormatDefault = ""
	FormatField   = "field"
)

// String renders HH:MM:SS:FF, or HH:MM:SS;FF for drop-frame timecode. The
// zero Timecode, as returned alongside errors, renders as "invalid timecode".
func (tc Timecode) String() string {
	if tc.IsZero() {
		return "invalid timecode"
	}
	return tc.render(tc.frames, "")
}

// Format renders the timecode. The "field" token appends the field index:
// ".0" at rates up to 30 fps, and at higher rates the frame number is halved
// and the parity of the frame count picks ".0" or ".1".
func (tc Timecode) Format(token string) (string, error) {
	switch token {
	case FormatDefault:
		return tc.String(), nil
	case FormatField:
		if tc.IsZero() {
			return tc.String(), nil
		}
		if tc.rate.Nominal() <= 30 {
			return tc.render(tc.frames, ".0"), nil
		}
		return tc.render(tc.frames/2, fmt.Sprintf(".%d", tc.frameCount%2)), nil
	default:
		return "", NewFormatError("unsupported timecode format %q", token)
	}
}

func (tc Timecode) render(frames int, field string) string {
	sep := ':'
	if tc.dropFrame {
		sep = ';'
	}
	return fmt.Sprintf("%02d:%02d:%02d%c%02d%s", tc.hours, tc.minutes, tc.seconds, sep, frames, field)
}

// MarshalText implements encoding.TextMarshaler. The zero Timecode
// marshals to empty text.
func (tc Timecode) MarshalText() ([]byte, error) {
	if tc.IsZero() {
		return []byte{}, nil
	}
	return []byte(tc.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. The receiver's frame
// rate is kept when it has one; otherwise the default rate is used. Empty
// text yields the zero Timecode.
func (tc *Timecode) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*tc = Timecode{}
		return nil
	}

	var opts []Option
	if !tc.rate.IsZero() {
		opts = append(opts, WithFrameRate(tc.rate))
	}
	parsed, err := Parse(string(text), opts...)
	if err != nil {
		return err
	}
	*tc = parsed
	return nil
}
