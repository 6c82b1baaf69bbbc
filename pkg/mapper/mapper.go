// Package mapper assigns SMPTE timecodes to media clock timestamps of a
// stream, such as the 90 kHz RTP timestamps of a video flow.
package mapper

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pion/rtcp"
	"github.com/pion/rtp"
	"golang.org/x/time/rate"

	"github.com/zsiec/timecode/pkg/config"
	"github.com/zsiec/timecode/pkg/logger"
	"github.com/zsiec/timecode/internal/metrics"
	"github.com/zsiec/timecode/pkg/timecode"
)

const defaultClockRate = 90000

// ErrSSRCMismatch is returned for packets and reports of another source.
var ErrSSRCMismatch = errors.New("ssrc does not match mapped stream")

// ntpEpoch is the zero point of 64-bit NTP timestamps.
var ntpEpoch = time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC)

// Config configures a Mapper.
type Config struct {
	StreamID      string
	SSRC          uint32 // 0 accepts any source
	ClockRate     uint32
	FrameRate     timecode.FrameRate
	DropFrame     *bool
	StartTimecode string
	Location      *time.Location // zone used to read sender report wall clocks
	MaxJump       time.Duration
	WarnInterval  time.Duration
	Metrics       bool

	// RolloverMaxHours lets timestamps that fall before 00:00:00:00 wrap
	// into the previous day, up to this label hour. Zero makes them fail
	// with a range error.
	RolloverMaxHours int
}

// Mapper converts 32-bit media timestamps into timecodes. The first
// timestamp seen is labelled with the start timecode and later timestamps
// advance it by the elapsed media time. RTCP sender reports re-anchor the
// label to the wall clock time of day they carry.
type Mapper struct {
	cfg     Config
	opts    []timecode.Option
	initial timecode.Timecode
	log     logger.Logger
	warn    *rate.Limiter
	closed  sync.Once

	mu         sync.Mutex
	started    bool
	anchor     timecode.Timecode
	baseExt    int64  // extended timestamp labelled with anchor
	lastExt    int64  // extended form of lastTS
	lastTS     uint32 // last raw timestamp seen
	last       timecode.Timecode
	wrapCount  int
	timestamps uint64
	jumps      uint64
	suppressed uint64
	reports    uint64
}

// Stats contains mapper statistics
type Stats struct {
	StreamID        string
	ClockRate       uint32
	FrameRate       timecode.FrameRate
	DropFrame       bool
	Anchor          timecode.Timecode
	Last            timecode.Timecode
	LastTimestamp   uint32
	Timestamps      uint64
	WrapCount       int
	Discontinuities uint64
	SenderReports   uint64
}

// New creates a mapper. A missing stream ID is replaced by a random UUID
// and a zero clock rate defaults to 90 kHz.
func New(cfg Config, log logger.Logger) (*Mapper, error) {
	if cfg.StreamID == "" {
		cfg.StreamID = uuid.NewString()
	}
	if cfg.ClockRate == 0 {
		cfg.ClockRate = defaultClockRate
	}
	if cfg.FrameRate.IsZero() {
		cfg.FrameRate = timecode.DefaultFrameRate
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.MaxJump <= 0 {
		cfg.MaxJump = 10 * time.Second
	}
	if log == nil {
		log = logger.NewNullLogger()
	}

	opts := []timecode.Option{timecode.WithFrameRate(cfg.FrameRate)}
	if cfg.DropFrame != nil {
		opts = append(opts, timecode.WithDropFrame(*cfg.DropFrame))
	}

	var (
		initial timecode.Timecode
		err     error
	)
	if cfg.StartTimecode != "" {
		initial, err = timecode.Parse(cfg.StartTimecode, opts...)
	} else {
		initial, err = timecode.FromFrames(0, opts...)
	}
	if err != nil {
		return nil, fmt.Errorf("start timecode: %w", err)
	}

	limit := rate.Inf
	if cfg.WarnInterval > 0 {
		limit = rate.Every(cfg.WarnInterval)
	}

	m := &Mapper{
		cfg:     cfg,
		opts:    opts,
		initial: initial,
		anchor:  initial,
		last:    initial,
		log:     logger.WithStream(logger.WithComponent(log, "mapper"), cfg.StreamID),
		warn:    rate.NewLimiter(limit, 1),
	}

	if cfg.Metrics {
		metrics.StreamStarted()
	}

	m.log.WithFields(map[string]interface{}{
		"clock_rate": cfg.ClockRate,
		"frame_rate": cfg.FrameRate.String(),
		"start":      initial.String(),
	}).Debug("Timecode mapper created")

	return m, nil
}

// NewFromConfig creates a mapper from loaded configuration.
func NewFromConfig(cfg *config.Config, log logger.Logger) (*Mapper, error) {
	fr, err := cfg.Defaults.Rate()
	if err != nil {
		return nil, err
	}

	loc, err := time.LoadLocation(cfg.Mapper.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("time zone: %w", err)
	}

	mc := Config{
		StreamID:      cfg.Mapper.StreamID,
		SSRC:          cfg.Mapper.SSRC,
		ClockRate:     cfg.Mapper.ClockRate,
		FrameRate:     fr,
		StartTimecode: cfg.Mapper.StartTimecode,
		Location:      loc,
		MaxJump:       cfg.Mapper.MaxJump,
		WarnInterval:  cfg.Mapper.WarnInterval,
		Metrics:       cfg.Metrics.Enabled,

		RolloverMaxHours: cfg.Defaults.RolloverMaxHours,
	}
	switch cfg.Defaults.DropFrame {
	case config.DropFrameOn:
		mc.DropFrame = boolPtr(true)
	case config.DropFrameOff:
		mc.DropFrame = boolPtr(false)
	}

	return New(mc, log)
}

// StreamID returns the identifier used in logs and metrics.
func (m *Mapper) StreamID() string {
	return m.cfg.StreamID
}

// Map returns the timecode of a media timestamp.
func (m *Mapper) Map(ts uint32) (timecode.Timecode, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.started {
		m.start(ts)
	} else {
		m.advance(ts)
	}

	tc, err := m.labelAt(m.lastExt)
	if err != nil {
		m.recordError(err)
		return timecode.Timecode{}, err
	}

	m.last = tc
	m.timestamps++
	if m.cfg.Metrics {
		metrics.RecordTimestamp(m.cfg.StreamID, tc.FrameCount())
	}

	return tc, nil
}

// MapPacket returns the timecode of an RTP packet's timestamp.
func (m *Mapper) MapPacket(pkt *rtp.Packet) (timecode.Timecode, error) {
	if m.cfg.SSRC != 0 && pkt.SSRC != m.cfg.SSRC {
		m.recordError(ErrSSRCMismatch)
		return timecode.Timecode{}, fmt.Errorf("%w: got %d, want %d", ErrSSRCMismatch, pkt.SSRC, m.cfg.SSRC)
	}
	return m.Map(pkt.Timestamp)
}

// SyncSenderReport re-anchors the stream so that the report's RTP
// timestamp is labelled with the time of day of its NTP timestamp.
func (m *Mapper) SyncSenderReport(sr *rtcp.SenderReport) (timecode.Timecode, error) {
	if m.cfg.SSRC != 0 && sr.SSRC != m.cfg.SSRC {
		m.recordError(ErrSSRCMismatch)
		return timecode.Timecode{}, fmt.Errorf("%w: got %d, want %d", ErrSSRCMismatch, sr.SSRC, m.cfg.SSRC)
	}

	wall := NTPTime(sr.NTPTime).In(m.cfg.Location)
	tc, err := timecode.FromTime(wall, m.opts...)
	if err != nil {
		m.recordError(err)
		return timecode.Timecode{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var drift int64
	ext := int64(sr.RTPTime)
	if m.started {
		ext = m.lastExt + int64(int32(sr.RTPTime-m.lastTS))
		if prev, err := m.labelAt(ext); err == nil {
			drift = frameDrift(prev, tc)
		}
	} else {
		m.started = true
		m.lastTS = sr.RTPTime
		m.lastExt = ext
		m.last = tc
	}

	m.anchor = tc
	m.baseExt = ext
	m.reports++
	if m.cfg.Metrics {
		metrics.RecordSenderReport(m.cfg.StreamID, drift)
	}

	m.log.WithFields(map[string]interface{}{
		"rtp_timestamp": sr.RTPTime,
		"timecode":      tc.String(),
		"drift_frames":  drift,
	}).Debug("Re-anchored timecode from sender report")

	return tc, nil
}

// Stats returns current mapper statistics
func (m *Mapper) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()

	return Stats{
		StreamID:        m.cfg.StreamID,
		ClockRate:       m.cfg.ClockRate,
		FrameRate:       m.initial.FrameRate(),
		DropFrame:       m.initial.DropFrame(),
		Anchor:          m.anchor,
		Last:            m.last,
		LastTimestamp:   m.lastTS,
		Timestamps:      m.timestamps,
		WrapCount:       m.wrapCount,
		Discontinuities: m.jumps,
		SenderReports:   m.reports,
	}
}

// Reset forgets all timestamps; the next one is labelled with the start
// timecode again.
func (m *Mapper) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.started = false
	m.anchor = m.initial
	m.last = m.initial
	m.baseExt = 0
	m.lastExt = 0
	m.lastTS = 0
	m.wrapCount = 0
	m.timestamps = 0
	m.jumps = 0
	m.suppressed = 0
	m.reports = 0
}

// Close releases the stream's metrics. Further calls do nothing.
func (m *Mapper) Close() {
	m.closed.Do(func() {
		if m.cfg.Metrics {
			metrics.StreamStopped(m.cfg.StreamID)
		}
	})
}

// NTPTime converts a 64-bit NTP timestamp (seconds since 1900 in the high
// word, binary fraction in the low word) to a UTC time.
func NTPTime(ntp uint64) time.Time {
	secs := ntp >> 32
	frac := ntp & 0xFFFFFFFF
	nanos := (frac*uint64(time.Second) + 1<<31) >> 32
	return ntpEpoch.Add(time.Duration(secs) * time.Second).Add(time.Duration(nanos))
}

func (m *Mapper) start(ts uint32) {
	m.started = true
	m.lastTS = ts
	m.lastExt = int64(ts)
	m.baseExt = m.lastExt

	m.log.WithFields(map[string]interface{}{
		"rtp_timestamp": ts,
		"timecode":      m.anchor.String(),
	}).Info("Timecode mapper anchored")
}

// advance extends ts to 64 bits relative to the previous timestamp. Steps
// of less than half the 32-bit range are taken in either direction.
func (m *Mapper) advance(ts uint32) {
	delta := int64(int32(ts - m.lastTS))

	if ts < m.lastTS && delta > 0 {
		m.wrapCount++
		if m.cfg.Metrics {
			metrics.IncrementWrap(m.cfg.StreamID)
		}
		m.log.WithField("wrap_count", m.wrapCount).Debug("Media clock wrapped")
	}

	maxTicks := int64(m.cfg.MaxJump / time.Millisecond * time.Duration(m.cfg.ClockRate) / 1000)
	if delta > maxTicks || delta < -maxTicks {
		m.jumps++
		if m.cfg.Metrics {
			metrics.IncrementDiscontinuity(m.cfg.StreamID)
		}
		if m.warn.Allow() {
			m.log.WithFields(map[string]interface{}{
				"delta_ticks": delta,
				"suppressed":  m.suppressed,
			}).Warn("Media timestamp discontinuity")
			m.suppressed = 0
		} else {
			m.suppressed++
		}
	}

	m.lastTS = ts
	m.lastExt += delta
}

// labelAt returns the timecode of an extended timestamp. Whole elapsed
// frames are counted, so a timestamp between two frames belongs to the
// earlier one. Labels before midnight follow the rollover setting.
func (m *Mapper) labelAt(ext int64) (timecode.Timecode, error) {
	r := m.anchor.FrameRate()
	ticks := ext - m.baseExt

	frames := floorDiv(ticks*r.Num, int64(m.cfg.ClockRate)*r.Den)
	frames %= m.anchor.DayFrames()

	if frames < 0 && m.cfg.RolloverMaxHours > 0 {
		return m.anchor.AddWithRollover(frames, m.cfg.RolloverMaxHours)
	}
	return m.anchor.Add(frames)
}

func (m *Mapper) recordError(err error) {
	errType := "mapper"
	if errors.Is(err, ErrSSRCMismatch) {
		errType = "ssrc_mismatch"
	} else if te, ok := timecode.GetError(err); ok {
		errType = string(te.Type)
	}

	if m.cfg.Metrics {
		metrics.IncrementError(m.cfg.StreamID, errType)
	}
	m.log.WithError(err).WithField("error_type", errType).Error("Timecode mapping failed")
}

// frameDrift returns the signed distance from a to b in frames, taking the
// shorter way around midnight.
func frameDrift(a, b timecode.Timecode) int64 {
	day := b.DayFrames()
	d := (b.FrameCount() - a.FrameCount()) % day
	if d > day/2 {
		d -= day
	} else if d < -day/2 {
		d += day
	}
	return d
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func boolPtr(b bool) *bool {
	return &b
}
