package composer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArpUpdateNotesDedupesAndSorts(t *testing.T) {
	a := newArpLayer()
	a.UpdateNotes([]float64{440, 220, 440, 0, -5, 330})
	assert.Equal(t, []float64{220, 330, 440}, a.Notes())
}

func TestArpUpdateNotesKeepsLowestFour(t *testing.T) {
	a := newArpLayer()
	a.UpdateNotes([]float64{660, 110, 550, 220, 330, 440})
	assert.Equal(t, []float64{110, 220, 330, 440}, a.Notes())
}

func TestArpTriggerCyclesPattern(t *testing.T) {
	a := newArpLayer()
	a.UpdateNotes([]float64{100, 200, 300})

	// Default pattern is 0,1,2,1
	var played []float64
	for i := 0; i < 4; i++ {
		a.TriggerNext()
		played = append(played, a.currentNote)
	}
	assert.Equal(t, []float64{100, 200, 300, 200}, played)
}

func TestArpSetPatternWraps(t *testing.T) {
	a := newArpLayer()

	a.SetPattern(5)
	assert.Equal(t, 5%len(arpPatterns), a.Pattern())

	a.SetPattern(-3)
	assert.Equal(t, 3%len(arpPatterns), a.Pattern())
}

func TestArpSilentWithoutNotes(t *testing.T) {
	a := newArpLayer()
	a.TriggerNext()

	out := a.Samples(256, 44100)
	for _, s := range out {
		assert.Equal(t, 0.0, s)
	}
}
