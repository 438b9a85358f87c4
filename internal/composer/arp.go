package composer

import (
	"math"
	"sort"
)

// arpPatterns are the note-index sequences the arpeggiator cycles through.
// Button presses switch between them.
var arpPatterns = [][]int{
	{0, 1, 2, 1},
	{0, 1, 2, 3, 2, 1},
	{0, 2, 1, 3},
	{0, 0, 1, 2},
}

// ArpPatternNames are display names matching arpPatterns by index.
var ArpPatternNames = []string{"up-down", "extended", "alternating", "repeated"}

// ArpLayer is an arpeggiator that cycles through the chord built from the
// current lamp frequencies.
type ArpLayer struct {
	notes          []float64
	patternIdx     int
	currentNote    float64
	phase          float64
	envelope       float64
	currentPattern int
}

func newArpLayer() *ArpLayer {
	return &ArpLayer{}
}

// UpdateNotes sets the available notes from lamp frequencies: the lowest
// four distinct pitches.
func (a *ArpLayer) UpdateNotes(frequencies []float64) {
	seen := map[float64]bool{}
	var notes []float64
	for _, f := range frequencies {
		if f > 0 && !seen[f] {
			seen[f] = true
			notes = append(notes, f)
		}
	}
	sort.Float64s(notes)
	if len(notes) > 4 {
		notes = notes[:4]
	}
	a.notes = notes
}

// Notes returns the notes currently in the arpeggio.
func (a *ArpLayer) Notes() []float64 {
	out := make([]float64, len(a.notes))
	copy(out, a.notes)
	return out
}

// SetPattern selects an arpeggio pattern by index (wraps).
func (a *ArpLayer) SetPattern(idx int) {
	if idx < 0 {
		idx = -idx
	}
	a.currentPattern = idx % len(arpPatterns)
}

// Pattern returns the active pattern index.
func (a *ArpLayer) Pattern() int { return a.currentPattern }

// TriggerNext advances to the next note in the pattern.
func (a *ArpLayer) TriggerNext() {
	if len(a.notes) == 0 {
		return
	}

	pattern := arpPatterns[a.currentPattern%len(arpPatterns)]
	noteIdx := pattern[a.patternIdx%len(pattern)]

	if noteIdx < len(a.notes) {
		a.currentNote = a.notes[noteIdx]
		a.envelope = 1.0
	}

	a.patternIdx++
}

// Samples renders n arpeggio samples at the given rate.
func (a *ArpLayer) Samples(n, sampleRate int) []float64 {
	output := make([]float64, n)
	if a.currentNote <= 0 {
		return output
	}

	for i := 0; i < n; i++ {
		a.envelope *= 0.9997

		if a.envelope > 0.01 {
			a.phase += 2 * math.Pi * a.currentNote / float64(sampleRate)
			sample := math.Sin(a.phase) * 0.7
			sample += math.Sin(a.phase*2) * 0.2
			sample += math.Sin(a.phase*3) * 0.1
			output[i] = sample * a.envelope * 0.35
		}
	}

	return output
}
