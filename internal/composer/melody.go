package composer

import (
	"math"
	"math/rand"
	"sort"

	"github.com/relabs-tech/hue_composer/internal/music"
)

// instrumentDecay maps an instrument type to its per-sample envelope decay.
var instrumentDecay = map[string]float64{
	"pluck":  0.9995,
	"bell":   0.9998,
	"pad":    0.99995,
	"chime":  0.9997,
	"mallet": 0.9993,
	"string": 0.99992,
}

// MelodyVoice is a single melody voice with its own personality. Each voice
// owns a random source seeded by its sensor ID, so the same sensor always
// wanders the scale the same way.
type MelodyVoice struct {
	personality SensorPersonality
	scale       []int
	rootFreq    float64
	degree      int
	currentFreq float64
	phase       float64
	envelope    float64
	octave      int

	patternPos int
	patternDir int

	rng *rand.Rand
}

// NewMelodyVoice creates a voice for one sensor.
func NewMelodyVoice(p SensorPersonality) *MelodyVoice {
	return &MelodyVoice{
		personality: p,
		scale:       music.Scales["pentatonic"],
		rootFreq:    music.BaseFrequency,
		degree:      2,
		octave:      1,
		patternDir:  1,
		rng:         rand.New(rand.NewSource(int64(p.MelodySeed))),
	}
}

// Personality returns the voice's sensor personality.
func (v *MelodyVoice) Personality() SensorPersonality { return v.personality }

// CurrentFrequency returns the pitch of the last triggered note.
func (v *MelodyVoice) CurrentFrequency() float64 { return v.currentFreq }

// Envelope returns the current envelope level.
func (v *MelodyVoice) Envelope() float64 { return v.envelope }

// SetScale sets the scale and root note.
func (v *MelodyVoice) SetScale(scaleType string, rootFreq float64) {
	scale, ok := music.Scales[scaleType]
	if !ok {
		scale = music.Scales["pentatonic"]
	}
	v.scale = scale
	v.rootFreq = rootFreq
}

// TriggerNote starts a new note chosen by the personality's movement
// pattern. Nervous sensors jump around more.
func (v *MelodyVoice) TriggerNote() {
	var step int
	if v.rng.Float64() < v.personality.Nervousness {
		step = []int{-3, -2, 2, 3}[v.rng.Intn(4)]
	} else {
		switch v.personality.PatternType {
		case "walk":
			step = v.rng.Intn(3) - 1
		case "up":
			if v.rng.Float64() > 0.3 {
				step = 1
			} else {
				step = -1
			}
		case "down":
			if v.rng.Float64() > 0.3 {
				step = -1
			} else {
				step = 1
			}
		case "zigzag":
			step = v.patternDir
			v.patternDir = -v.patternDir
		case "jump":
			step = []int{-2, 2}[v.rng.Intn(2)]
		case "repeat":
			if v.rng.Float64() > 0.4 {
				step = 0
			} else {
				step = []int{-1, 1}[v.rng.Intn(2)]
			}
		case "chord":
			// Jump by thirds/fifths
			step = []int{0, 2, 4, -2, -4}[v.rng.Intn(5)]
		case "trill":
			// Alternate between two adjacent notes
			if v.patternPos%2 == 0 {
				step = 1
			} else {
				step = -1
			}
		}
	}

	v.degree += step
	if v.degree < 0 {
		v.degree = 0
	}
	if v.degree > len(v.scale)-1 {
		v.degree = len(v.scale) - 1
	}

	semitone := v.scale[v.degree]
	v.currentFreq = v.rootFreq * math.Pow(2, float64(semitone)/12) * math.Pow(2, float64(v.octave))
	v.envelope = 1.0
	v.patternPos++
}

// Samples renders n samples with the voice's instrument timbre.
func (v *MelodyVoice) Samples(n, sampleRate int) []float64 {
	output := make([]float64, n)
	if v.currentFreq <= 0 || v.envelope < 0.01 {
		return output
	}

	instrument := v.personality.InstrumentType
	decay, ok := instrumentDecay[instrument]
	if !ok {
		decay = 0.9999
	}

	for i := 0; i < n; i++ {
		v.envelope *= decay

		if v.envelope > 0.01 {
			v.phase += 2 * math.Pi * v.currentFreq / float64(sampleRate)

			var sample float64
			switch instrument {
			case "bell":
				sample = math.Sin(v.phase) * 0.5
				sample += math.Sin(v.phase*2.4) * 0.3
				sample += math.Sin(v.phase*5.95) * 0.2
			case "pluck":
				sample = math.Sin(v.phase) * 0.6
				sample += math.Sin(v.phase*2) * 0.25
				sample += math.Sin(v.phase*3) * 0.15
			case "chime":
				sample = math.Sin(v.phase) * 0.4
				sample += math.Sin(v.phase*3) * 0.25
				sample += math.Sin(v.phase*5) * 0.2
				sample += math.Sin(v.phase*7) * 0.15
			case "mallet":
				sample = math.Sin(v.phase) * 0.7
				sample += math.Sin(v.phase*4) * 0.2
				sample += math.Sin(v.phase*0.5) * 0.1
			case "string":
				sample = math.Sin(v.phase) * 0.6
				sample += math.Sin(v.phase*2) * 0.2
				sample += math.Sin(v.phase*3) * 0.1
				sample += math.Sin(v.phase*1.01) * 0.1
			case "pad":
				sample = math.Sin(v.phase) * 0.8
				sample += math.Sin(v.phase*0.5) * 0.2
			default:
				sample = math.Sin(v.phase)
			}

			output[i] = sample * v.envelope * 0.4
		}
	}

	return output
}

// MelodyLayer is the multi-voice generative melody system, one voice per
// motion-capable sensor.
type MelodyLayer struct {
	voices      map[int]*MelodyVoice
	activeScale string
	rootFreq    float64

	totalNervousness float64
	complexity       int

	rng *rand.Rand
}

func newMelodyLayer(rng *rand.Rand) *MelodyLayer {
	return &MelodyLayer{
		voices:      make(map[int]*MelodyVoice),
		activeScale: "pentatonic",
		rootFreq:    music.BaseFrequency,
		rng:         rng,
	}
}

// UpdatePersonalities creates or updates voices from sensor personalities.
func (m *MelodyLayer) UpdatePersonalities(personalities []SensorPersonality) {
	totalNerv := 0.0
	for _, p := range personalities {
		totalNerv += p.Nervousness
		if _, ok := m.voices[p.SensorID]; !ok {
			m.voices[p.SensorID] = NewMelodyVoice(p)
		}
		m.voices[p.SensorID].SetScale(m.activeScale, m.rootFreq)
	}

	if len(personalities) > 0 {
		m.totalNervousness = totalNerv / float64(len(personalities))
	} else {
		m.totalNervousness = 0
	}
	m.complexity = len(personalities)
}

// SetScale sets the scale for all voices.
func (m *MelodyLayer) SetScale(scaleType string, rootFreq float64) {
	m.activeScale = scaleType
	m.rootFreq = rootFreq
	for _, v := range m.voices {
		v.SetScale(scaleType, rootFreq)
	}
}

// Voices returns the voice map keyed by sensor ID.
func (m *MelodyLayer) Voices() map[int]*MelodyVoice { return m.voices }

// TriggerRandomVoice triggers a note on one randomly chosen voice.
func (m *MelodyLayer) TriggerRandomVoice() {
	if len(m.voices) == 0 {
		return
	}
	// Sorted IDs keep the choice reproducible for a seeded source.
	ids := make([]int, 0, len(m.voices))
	for id := range m.voices {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	m.voices[ids[m.rng.Intn(len(ids))]].TriggerNote()
}

// TriggerBySensor triggers a note on the voice belonging to sensorID.
func (m *MelodyLayer) TriggerBySensor(sensorID int) {
	if v, ok := m.voices[sensorID]; ok {
		v.TriggerNote()
	}
}

// Samples renders the combined melody output of all active voices.
func (m *MelodyLayer) Samples(n, sampleRate int) []float64 {
	output := make([]float64, n)

	activeCount := 0
	for _, v := range m.voices {
		if v.envelope > 0.01 {
			activeCount++
			for i, s := range v.Samples(n, sampleRate) {
				output[i] += s
			}
		}
	}

	// Normalize when several voices overlap
	if activeCount > 1 {
		scale := 1.0 / math.Sqrt(float64(activeCount))
		for i := range output {
			output[i] *= scale
		}
	}

	return output
}
