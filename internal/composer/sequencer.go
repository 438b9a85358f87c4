package composer

// Sequencer is the central clock for timing all musical events. It advances
// on rendered samples rather than wall time, so offline rendering and
// real-time playback share one clock: during playback the audio device pulls
// samples at exactly the sample rate, keeping the beat in step with wall
// time.
type Sequencer struct {
	bpm     float64
	elapsed float64 // seconds of audio rendered
}

// NewSequencer creates a sequencer running at the given tempo.
func NewSequencer(bpm float64) *Sequencer {
	return &Sequencer{bpm: bpm}
}

// BPM returns the current tempo.
func (s *Sequencer) BPM() float64 { return s.bpm }

// BeatDuration is the duration of one beat in seconds.
func (s *Sequencer) BeatDuration() float64 {
	return 60.0 / s.bpm
}

// Advance moves the clock forward by dt seconds of rendered audio.
func (s *Sequencer) Advance(dt float64) {
	s.elapsed += dt
}

// CurrentBeat is the (fractional) beat number since start.
func (s *Sequencer) CurrentBeat() float64 {
	return s.elapsed / s.BeatDuration()
}

// SetTempo changes the tempo, clamped to a musically reasonable range.
func (s *Sequencer) SetTempo(bpm float64) {
	s.bpm = clamp(bpm, 40, 120)
}
