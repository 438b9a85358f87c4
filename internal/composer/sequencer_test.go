package composer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSequencerBeatAdvancesWithSamples(t *testing.T) {
	s := NewSequencer(60) // one beat per second

	assert.Equal(t, 0.0, s.CurrentBeat())

	s.Advance(0.5)
	assert.InDelta(t, 0.5, s.CurrentBeat(), 0.001)

	s.Advance(1.5)
	assert.InDelta(t, 2.0, s.CurrentBeat(), 0.001)
}

func TestSequencerBeatDuration(t *testing.T) {
	s := NewSequencer(120)
	assert.InDelta(t, 0.5, s.BeatDuration(), 0.001)
}

func TestSequencerTempoClamped(t *testing.T) {
	s := NewSequencer(72)

	s.SetTempo(300)
	assert.Equal(t, 120.0, s.BPM())

	s.SetTempo(10)
	assert.Equal(t, 40.0, s.BPM())

	s.SetTempo(95)
	assert.Equal(t, 95.0, s.BPM())
}
