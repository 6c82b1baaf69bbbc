package timecode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var conversionModes = []struct {
	name      string
	rate      FrameRate
	dropFrame bool
}{
	{"23.976", FrameRate23_976, false},
	{"24", FrameRate24, false},
	{"25", FrameRate25, false},
	{"29.97 DF", FrameRate29_97, true},
	{"29.97 NDF", FrameRate29_97, false},
	{"30", FrameRate30, false},
	{"50", FrameRate50, false},
	{"59.94 DF", FrameRate59_94, true},
	{"59.94 NDF", FrameRate59_94, false},
	{"60", FrameRate60, false},
}

func TestFrameCountRoundTrip(t *testing.T) {
	for _, mode := range conversionModes {
		t.Run(mode.name, func(t *testing.T) {
			day := dayFrames(mode.rate, mode.dropFrame)
			step := int64(1)
			if !mode.dropFrame {
				// Non-drop conversion is plain division; sample it.
				step = 997
			}
			for count := int64(0); count < day; count += step {
				h, m, s, f := framesToComponents(count, mode.rate, mode.dropFrame)
				got := componentsToFrames(h, m, s, f, mode.rate, mode.dropFrame)
				if got != count {
					require.Equal(t, count, got, "%02d:%02d:%02d:%02d", h, m, s, f)
				}
				if err := validateComponents(h, m, s, f, mode.rate, mode.dropFrame); err != nil {
					require.NoError(t, err, "frame %d", count)
				}
			}
		})
	}
}

func TestComponentsRoundTrip(t *testing.T) {
	for _, mode := range []int{3, 7} {
		m := conversionModes[mode]
		t.Run(m.name, func(t *testing.T) {
			fps := int(m.rate.Nominal())
			df := int(m.rate.dropSize())
			for h := 0; h < 24; h++ {
				for mm := 0; mm < 60; mm++ {
					for s := 0; s < 60; s++ {
						for f := 0; f < fps; f++ {
							if s == 0 && mm%10 != 0 && f < df {
								continue
							}
							count := componentsToFrames(h, mm, s, f, m.rate, m.dropFrame)
							gh, gm, gs, gf := framesToComponents(count, m.rate, m.dropFrame)
							if gh != h || gm != mm || gs != s || gf != f {
								require.Failf(t, "round trip mismatch", "%02d:%02d:%02d;%02d came back as %02d:%02d:%02d;%02d",
									h, mm, s, f, gh, gm, gs, gf)
							}
						}
					}
				}
			}
		})
	}
}

func TestDayFrames(t *testing.T) {
	tests := []struct {
		rate      FrameRate
		dropFrame bool
		expected  int64
	}{
		{FrameRate23_976, false, 2073600},
		{FrameRate25, false, 2160000},
		{FrameRate29_97, true, 2589408},
		{FrameRate29_97, false, 2592000},
		{FrameRate59_94, true, 5178816},
		{FrameRate60, false, 5184000},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, dayFrames(tt.rate, tt.dropFrame), "rate %s drop %v", tt.rate, tt.dropFrame)
	}
}

func TestDropFrameMinuteBoundaries(t *testing.T) {
	// The first label after a dropped minute boundary.
	h, m, s, f := framesToComponents(1800, FrameRate29_97, true)
	assert.Equal(t, []int{0, 1, 0, 2}, []int{h, m, s, f})

	h, m, s, f = framesToComponents(1799, FrameRate29_97, true)
	assert.Equal(t, []int{0, 0, 59, 29}, []int{h, m, s, f})

	h, m, s, f = framesToComponents(3600, FrameRate59_94, true)
	assert.Equal(t, []int{0, 1, 0, 4}, []int{h, m, s, f})

	h, m, s, f = framesToComponents(35964, FrameRate59_94, true)
	assert.Equal(t, []int{0, 10, 0, 0}, []int{h, m, s, f})
}
