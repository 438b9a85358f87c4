package composer

import (
	"math"
	"math/rand"
)

// maxDroneVoices bounds how many lamps contribute drone voices at once.
const maxDroneVoices = 6

// DroneLayer renders slow evolving drone chords from lamp frequencies, with
// per-lamp timbres. Frequencies and amplitudes slew toward their targets so
// lamp changes fade in over seconds instead of clicking.
type DroneLayer struct {
	frequencies   []float64
	targetFreqs   []float64
	amplitudes    []float64
	targetAmps    []float64
	phases        []float64
	lfoPhase      float64
	lfoSpeed      float64
	personalities []LampPersonality
	rng           *rand.Rand
}

func newDroneLayer(rng *rand.Rand) *DroneLayer {
	return &DroneLayer{lfoSpeed: 0.15, rng: rng}
}

// UpdateFromLamps sets new drone targets from lamp data.
func (d *DroneLayer) UpdateFromLamps(frequencies, amplitudes []float64, personalities []LampPersonality) {
	d.targetFreqs = truncFloats(frequencies, maxDroneVoices)
	d.targetAmps = truncFloats(amplitudes, maxDroneVoices)
	if len(personalities) > maxDroneVoices {
		personalities = personalities[:maxDroneVoices]
	}
	d.personalities = personalities

	// New voices start at their target pitch but silent, with a random
	// phase so unison lamps don't sum into one loud oscillator.
	for len(d.frequencies) < len(d.targetFreqs) {
		d.frequencies = append(d.frequencies, d.targetFreqs[len(d.frequencies)])
		d.amplitudes = append(d.amplitudes, 0)
		d.phases = append(d.phases, d.rng.Float64()*2*math.Pi)
	}
}

// Frequencies returns the currently sounding drone frequencies.
func (d *DroneLayer) Frequencies() []float64 {
	out := make([]float64, len(d.frequencies))
	copy(out, d.frequencies)
	return out
}

// waveformSample generates one sample for the named waveform at the given
// phase and richness.
func waveformSample(phase float64, waveform string, richness float64) float64 {
	switch waveform {
	case "saw":
		// Additive sawtooth; harmonic count follows richness
		sample := 0.0
		harmonics := int(4 + richness*6)
		for h := 1; h < harmonics; h++ {
			sample += math.Sin(phase*float64(h)) / float64(h)
		}
		return sample * 0.5
	case "triangle":
		return math.Sin(phase) + math.Sin(phase*3)/9*richness
	case "square":
		// Soft square (filtered)
		sample := math.Sin(phase)
		sample += math.Sin(phase*3) / 3 * richness
		sample += math.Sin(phase*5) / 5 * richness * 0.5
		return sample * 0.7
	case "warm":
		// Fundamental + subtle even harmonics + sub-octave
		sample := math.Sin(phase) * 0.7
		sample += math.Sin(phase*2) * 0.2 * richness
		sample += math.Sin(phase*0.5) * 0.3
		return sample
	case "bell":
		// Inharmonic partials for a metallic sound
		sample := math.Sin(phase) * 0.5
		sample += math.Sin(phase*2.4) * 0.3 * richness
		sample += math.Sin(phase*5.95) * 0.15 * richness
		sample += math.Sin(phase*8.2) * 0.05 * richness
		return sample
	case "pad":
		// Detuned unison for a thick sound
		sample := math.Sin(phase) * 0.4
		sample += math.Sin(phase*1.002) * 0.3
		sample += math.Sin(phase*0.998) * 0.3
		sample += math.Sin(phase*0.5) * 0.2 * richness
		return sample
	default: // sine
		return math.Sin(phase)
	}
}

// Samples renders n drone samples at the given rate.
func (d *DroneLayer) Samples(n, sampleRate int) []float64 {
	output := make([]float64, n)
	if len(d.frequencies) == 0 {
		return output
	}

	lfoInc := d.lfoSpeed * 2 * math.Pi / float64(sampleRate)

	for i := 0; i < n; i++ {
		d.lfoPhase += lfoInc
		lfo := 0.7 + 0.3*math.Sin(d.lfoPhase)

		sample := 0.0
		for j := range d.frequencies {
			if j >= len(d.targetFreqs) {
				break
			}

			d.frequencies[j] += (d.targetFreqs[j] - d.frequencies[j]) * 0.0001
			targetAmp := 0.0
			if j < len(d.targetAmps) {
				targetAmp = d.targetAmps[j]
			}
			d.amplitudes[j] += (targetAmp - d.amplitudes[j]) * 0.001

			d.phases[j] += 2 * math.Pi * d.frequencies[j] / float64(sampleRate)

			var wave float64
			if j < len(d.personalities) {
				p := d.personalities[j]
				wave = waveformSample(d.phases[j], p.Waveform, p.Richness)
			} else {
				wave = math.Sin(d.phases[j])
			}

			sample += wave * d.amplitudes[j] * lfo * 0.25
		}

		output[i] = sample
	}

	return output
}

func truncFloats(vals []float64, max int) []float64 {
	out := make([]float64, 0, max)
	for i, v := range vals {
		if i >= max {
			break
		}
		out = append(out, v)
	}
	return out
}
