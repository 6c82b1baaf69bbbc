package timecode

// Drop-frame counting skips df frame labels at the start of every minute
// except minutes divisible by ten. df is 2 at 29.97 and 4 at 59.94.

// framesToComponents converts a frame count into HH:MM:SS:FF.
func framesToComponents(count int64, rate FrameRate, dropFrame bool) (h, m, s, f int) {
	fps := rate.Nominal()
	fc := count
	if dropFrame {
		df := rate.dropSize()
		tenMinutes := fps*600 - 9*df // frames in ten minutes
		oneMinute := fps*60 - df     // frames in a dropped minute

		blocks := count / tenMinutes
		rem := count % tenMinutes
		if rem < df {
			rem += df
		}
		fc += 9*df*blocks + df*((rem-df)/oneMinute)
	}

	f = int(fc % fps)
	s = int((fc / fps) % 60)
	m = int((fc / (fps * 60)) % 60)
	h = int((fc / (fps * 3600)) % 24)
	return h, m, s, f
}

// componentsToFrames converts HH:MM:SS:FF into a frame count.
func componentsToFrames(h, m, s, f int, rate FrameRate, dropFrame bool) int64 {
	fps := rate.Nominal()
	count := (int64(h)*3600+int64(m)*60+int64(s))*fps + int64(f)
	if dropFrame {
		totalMinutes := int64(h)*60 + int64(m)
		count -= rate.dropSize() * (totalMinutes - totalMinutes/10)
	}
	return count
}

// dayFrames returns the number of frames in 24 hours of timecode.
func dayFrames(rate FrameRate, dropFrame bool) int64 {
	return componentsToFrames(24, 0, 0, 0, rate, dropFrame)
}
