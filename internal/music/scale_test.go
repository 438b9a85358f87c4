package music

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSemitoneToFrequency(t *testing.T) {
	assert.InDelta(t, BaseFrequency, SemitoneToFrequency(0, BaseFrequency), 0.001)
	assert.InDelta(t, BaseFrequency*2, SemitoneToFrequency(12, BaseFrequency), 0.001)
	assert.InDelta(t, BaseFrequency/2, SemitoneToFrequency(-12, BaseFrequency), 0.001)

	// A4 is 9 semitones above C4
	assert.InDelta(t, 440, SemitoneToFrequency(9, BaseFrequency), 0.5)
}

func TestNoteName(t *testing.T) {
	assert.Equal(t, "A4", NoteName(440))
	assert.Equal(t, "C4", NoteName(261.63))
	assert.Equal(t, "C5", NoteName(523.25))
	assert.Equal(t, "-", NoteName(0))
	assert.Equal(t, "-", NoteName(-1))
}

func TestScalesStartAtRoot(t *testing.T) {
	for name, intervals := range Scales {
		assert.NotEmpty(t, intervals, name)
		assert.Equal(t, 0, intervals[0], "%s scale must start at the root", name)
		for i := 1; i < len(intervals); i++ {
			assert.Greater(t, intervals[i], intervals[i-1], "%s scale must ascend", name)
		}
	}
}
