// Package synth synthesizes the modulated square wave a remote's IR LED
// would emit: a carrier-modulated on/off envelope, encoded per-protocol
// into stereo 16-bit PCM suitable for playback through an ordinary sound
// card's line or headphone output wired to an IR LED.
package synth

import "github.com/charmbracelet/log"

// MaxSamples bounds how many int16 values (left and right channel counted
// separately) a single Session may accumulate before Carrier starts refusing to emit more and logs instead
// of growing without bound.
const MaxSamples = 80000

// Config collects every synthesizer parameter that would otherwise be a
// translation-unit global: duty cycle, per-direction time-balancing
// factors, and the channel polarity/idle level used to drive the LED
// without leaving a DC bias on the line. Always passed by reference,
// never stored as package-level state.
type Config struct {
	// Multiplier raises the time resolution carried through Carrier's
	// internal arithmetic; 100 gives 1/100us ticks. Durations reach
	// Carrier in plain microseconds and are scaled by it there.
	Multiplier int

	// DutyPercent is the carrier's on-fraction of each period.
	DutyPercent int

	TimeFactor float64
	OnFactor   float64
	OffFactor  float64

	// TimeBalancing feeds each call's timing error back into Overtime so
	// the next call compensates for it; ValueTimeBalancing measures that
	// error against the undistorted duration instead of the on/off
	// skewed one.
	TimeBalancing      bool
	ValueTimeBalancing bool

	// EnsureLength keeps emitting until back at a period boundary
	// instead of stopping mid-high-half, so a carrier-off segment never
	// starts on a partial cycle.
	EnsureLength bool

	// StartupPulseUs, when nonzero, emits one extra full-amplitude
	// sample before an "on" segment, helping slow LEDs latch.
	StartupPulseUs int

	Hold                                   int16
	LeftEven, LeftOdd, RightEven, RightOdd int16

	// MarkEnd is the number of additional idle samples Pad appends; the
	// encoders do not call Pad themselves, so a caller adds this padding
	// once where it calls Pad, useful when testing playback through
	// equipment that trims a trailing silence.
	MarkEnd int
}

// DefaultConfig returns the polarity/duty-cycle scheme used throughout
// this package's protocol encoders: maximum-swing stereo drive with a
// small positive idle bias.
func DefaultConfig() *Config {
	return &Config{
		Multiplier:  100,
		DutyPercent: 50,
		TimeFactor:  1,
		OnFactor:    1,
		OffFactor:   1,
		Hold:        10,
		LeftEven:    -32767,
		LeftOdd:     32767,
		RightEven:   32767,
		RightOdd:    -32767,
	}
}

// Session accumulates the PCM samples and the overtime/diagnostic state
// shared across every Carrier call within one encoded frame. A frame's
// encoder creates one Session, issues its Carrier calls in sequence, and
// reads back Samples.
type Session struct {
	Config *Config
	Logger *log.Logger

	Overtime                 int
	MinOvertime, MaxOvertime int

	// RC5Toggle is the per-session bit that flips every time the same
	// key is retransmitted; it belongs to whatever owns a sequence of
	// Sessions across repeated transmissions, not to the package.
	RC5Toggle int

	buf []int16
}

// NewSession creates a Session ready for a sequence of Carrier calls.
func NewSession(cfg *Config) *Session {
	return &Session{Config: cfg, buf: make([]int16, 0, 4096)}
}

// Samples returns the stereo PCM accumulated so far (left/right
// interleaved).
func (s *Session) Samples() []int16 { return s.buf }

// Reset empties the sample buffer while keeping Overtime/RC5Toggle, so a
// single Session can synthesize one frame after another (e.g. code then
// repeat) while preserving the RC5 toggle across them.
func (s *Session) Reset() { s.buf = s.buf[:0] }

// Carrier appends one on/off segment: durationUs microseconds (scaled by
// Config's time factors) of either the modulated carrier (on) or the idle
// hold level, at the given carrier period and sample interval (both
// already expressed in Config.Multiplier-scaled microseconds).
func (s *Session) Carrier(on bool, durationUs, period, sampleUs int) {
	cfg := s.Config

	onFactor := cfg.OffFactor
	if on {
		onFactor = cfg.OnFactor
	}
	mul := float64(cfg.Multiplier)
	target := float64(durationUs)*cfg.TimeFactor*onFactor*mul - float64(sampleUs)/2
	equalTarget := float64(durationUs)*cfg.TimeFactor*mul - float64(sampleUs)/2
	stop := target - float64(s.Overtime)

	boundary := period * cfg.DutyPercent / 100
	if boundary < sampleUs {
		boundary = sampleUs
	}
	if boundary > period-sampleUs {
		boundary = period - sampleUs
	}

	if on && cfg.StartupPulseUs > 0 {
		if !s.emit(true, true) {
			return
		}
	}

	t := 0
	for {
		if !s.emit(on, t%period < boundary) {
			return
		}
		t += sampleUs
		if float64(t) < stop {
			continue
		}
		if cfg.EnsureLength && on && t%period >= boundary {
			continue
		}
		break
	}

	finalTarget := target
	if cfg.ValueTimeBalancing {
		finalTarget = equalTarget
	}
	o := int(float64(t) - finalTarget)
	if cfg.TimeBalancing {
		s.Overtime = o
	}
	if o < s.MinOvertime {
		s.MinOvertime = o
	}
	if o > s.MaxOvertime {
		s.MaxOvertime = o
	}
}

// emit appends one stereo sample pair and reports whether it fit within
// MaxSamples.
func (s *Session) emit(on, evenPhase bool) bool {
	if len(s.buf) >= MaxSamples-2 {
		if s.Logger != nil {
			s.Logger.Warnf("carrier: buffer overflow, truncating frame at %d samples", len(s.buf)/2)
		}
		return false
	}
	cfg := s.Config
	switch {
	case !on:
		s.buf = append(s.buf, cfg.Hold, cfg.Hold)
	case evenPhase:
		s.buf = append(s.buf, cfg.LeftEven, cfg.RightEven)
	default:
		s.buf = append(s.buf, cfg.LeftOdd, cfg.RightOdd)
	}
	return true
}

// Pad appends Config.MarkEnd idle samples, used by callers that want a
// deterministic trailing silence regardless of a frame's own trailer.
func (s *Session) Pad(period, sampleUs int) {
	for i := 0; i < s.Config.MarkEnd; i++ {
		s.Carrier(false, sampleUs/s.Config.Multiplier, period, sampleUs)
	}
}
