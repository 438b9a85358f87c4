package music

import (
	"math"
	"strconv"
)

// BaseFrequency is the root note all scales are built from (C4).
const BaseFrequency = 261.63

// Scales maps a scale name to its semitone intervals above the root.
var Scales = map[string][]int{
	"major":      {0, 2, 4, 5, 7, 9, 11},
	"minor":      {0, 2, 3, 5, 7, 8, 10},
	"pentatonic": {0, 2, 4, 7, 9},
}

var noteNames = []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// SemitoneToFrequency converts a semitone offset from base to a frequency
// using equal temperament.
func SemitoneToFrequency(semitone int, base float64) float64 {
	return base * math.Pow(2, float64(semitone)/12)
}

// NoteName converts a frequency to a note name like "C4", or "-" for
// silence.
func NoteName(freq float64) string {
	if freq <= 0 {
		return "-"
	}
	midi := int(math.Round(69 + 12*math.Log2(freq/440)))
	if midi < 0 {
		return "-"
	}
	return noteNames[midi%12] + strconv.Itoa(midi/12-1)
}
