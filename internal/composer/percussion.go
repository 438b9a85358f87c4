package composer

import (
	"math"
	"math/rand"
)

// PercussionLayer renders simple synthesized percussion: a pitched kick with
// a falling sweep and a filtered-noise hi-hat.
type PercussionLayer struct {
	kickEnvelope float64
	kickFreq     float64
	kickPhase    float64
	hatEnvelope  float64
	hatNoise     float64
	rng          *rand.Rand
}

func newPercussionLayer(rng *rand.Rand) *PercussionLayer {
	return &PercussionLayer{kickFreq: 60, rng: rng}
}

// TriggerKick starts a kick drum hit.
func (p *PercussionLayer) TriggerKick() {
	p.kickEnvelope = 1.0
	p.kickFreq = 150.0
}

// TriggerHat starts a hi-hat hit.
func (p *PercussionLayer) TriggerHat() {
	p.hatEnvelope = 0.5
}

// Samples renders n percussion samples at the given rate.
func (p *PercussionLayer) Samples(n, sampleRate int) []float64 {
	output := make([]float64, n)

	for i := 0; i < n; i++ {
		sample := 0.0

		if p.kickEnvelope > 0.01 {
			p.kickEnvelope *= 0.997
			p.kickFreq *= 0.999
			if p.kickFreq < 40 {
				p.kickFreq = 40
			}
			p.kickPhase += 2 * math.Pi * p.kickFreq / float64(sampleRate)
			sample += math.Sin(p.kickPhase) * p.kickEnvelope * 0.5
		}

		if p.hatEnvelope > 0.01 {
			p.hatEnvelope *= 0.995
			noise := p.rng.Float64()*2 - 1
			p.hatNoise = p.hatNoise*0.7 + noise*0.3
			sample += p.hatNoise * p.hatEnvelope * 0.25
		}

		output[i] = sample
	}

	return output
}
