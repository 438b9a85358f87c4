// Package composer generates evolving ambient music from lamp and sensor
// data. Four layers are mixed: a drone chord from lamp colors, an
// arpeggiator, per-sensor melody voices and sparse percussion.
package composer

import (
	"math/rand"
	"time"

	"github.com/relabs-tech/hue_composer/internal/music"
)

const baseBPM = 72

// Composer combines all layers and drives their beat-gated triggers.
// It is not safe for concurrent use; callers serialize access (the sound
// engine holds a lock around every call).
type Composer struct {
	sequencer  *Sequencer
	drone      *DroneLayer
	arp        *ArpLayer
	melody     *MelodyLayer
	percussion *PercussionLayer

	// Timing
	lastArpBeat    int
	lastMelodyBeat int
	arpSubdivision int
	melodyInterval int

	// State
	activeScale         string
	sensorPersonalities []SensorPersonality
	lampPersonalities   []LampPersonality
	avgBattery          float64
	avgNervousness      float64

	rng *rand.Rand
}

// New creates a composer with a time-seeded random source.
func New() *Composer {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded creates a composer with a deterministic random source.
func NewSeeded(seed int64) *Composer {
	rng := rand.New(rand.NewSource(seed))
	return &Composer{
		sequencer:      NewSequencer(baseBPM),
		drone:          newDroneLayer(rng),
		arp:            newArpLayer(),
		melody:         newMelodyLayer(rng),
		percussion:     newPercussionLayer(rng),
		lastArpBeat:    -1,
		lastMelodyBeat: -1,
		arpSubdivision: 2,
		melodyInterval: 4,
		activeScale:    "pentatonic",
		avgBattery:     100,
		rng:            rng,
	}
}

// UpdateFromLamps updates the drone, arp and melody root from lamp data.
func (c *Composer) UpdateFromLamps(frequencies, amplitudes []float64, scale string, personalities []LampPersonality) {
	c.lampPersonalities = personalities
	c.drone.UpdateFromLamps(frequencies, amplitudes, personalities)
	c.arp.UpdateNotes(frequencies)
	c.activeScale = scale

	root := lowestPositive(frequencies)
	if root <= 0 {
		root = music.BaseFrequency
	}
	if len(frequencies) > 0 {
		c.melody.SetScale(scale, root)
	}
}

// UpdateFromSensors updates melody voices and pacing from sensor metadata.
func (c *Composer) UpdateFromSensors(personalities []SensorPersonality) {
	c.sensorPersonalities = personalities
	c.melody.UpdatePersonalities(personalities)

	if len(personalities) == 0 {
		return
	}

	battSum, nervSum := 0.0, 0.0
	for _, p := range personalities {
		battSum += float64(p.Battery)
		nervSum += p.Nervousness
	}
	c.avgBattery = battSum / float64(len(personalities))
	c.avgNervousness = nervSum / float64(len(personalities))

	// Nervous sensors speed the arpeggio up and trigger melodies more often
	switch {
	case c.avgNervousness > 0.5:
		c.arpSubdivision, c.melodyInterval = 4, 2
	case c.avgNervousness > 0.2:
		c.arpSubdivision, c.melodyInterval = 2, 4
	default:
		c.arpSubdivision, c.melodyInterval = 1, 8
	}
}

// UpdateTempo adjusts the sequencer tempo from the environment's tempo
// modifier, boosted by overall nervousness.
func (c *Composer) UpdateTempo(tempoModifier float64) {
	nervousnessBoost := 1 + c.avgNervousness*0.3
	c.sequencer.SetTempo(baseBPM * tempoModifier * nervousnessBoost)
}

// TriggerMotion handles a motion sensor trigger: a melody note on the
// sensor's own voice (or a random one) and an occasional kick.
func (c *Composer) TriggerMotion(sensorID int) {
	if _, ok := c.melody.Voices()[sensorID]; ok {
		c.melody.TriggerBySensor(sensorID)
	} else {
		c.melody.TriggerRandomVoice()
	}

	if c.rng.Float64() < 0.3 {
		c.percussion.TriggerKick()
	}
}

// TriggerButton handles a dimmer/button press: a hat hit and a new arp
// pattern. buttonEvent is the raw Hue code, button*1000 + action, so the
// thousands digit identifies which button was pressed regardless of whether
// the event is a press, hold or release.
func (c *Composer) TriggerButton(buttonEvent int) {
	c.percussion.TriggerHat()
	c.arp.SetPattern((buttonEvent / 1000) % 5)
}

// Process renders n mixed samples, firing any beat-gated triggers that are
// due.
func (c *Composer) Process(n, sampleRate int) []float64 {
	c.sequencer.Advance(float64(n) / float64(sampleRate))

	currentBeat := int(c.sequencer.CurrentBeat() * float64(c.arpSubdivision))
	if currentBeat > c.lastArpBeat {
		c.lastArpBeat = currentBeat
		c.arp.TriggerNext()
	}

	melodyBeat := int(c.sequencer.CurrentBeat() / float64(c.melodyInterval))
	if melodyBeat > c.lastMelodyBeat {
		c.lastMelodyBeat = melodyBeat
		triggerChance := 0.3 + c.avgNervousness*0.4
		if c.rng.Float64() < triggerChance {
			c.melody.TriggerRandomVoice()
		}
	}

	droneOut := c.drone.Samples(n, sampleRate)
	arpOut := c.arp.Samples(n, sampleRate)
	melodyOut := c.melody.Samples(n, sampleRate)
	percOut := c.percussion.Samples(n, sampleRate)

	output := make([]float64, n)
	for i := 0; i < n; i++ {
		output[i] = droneOut[i] + arpOut[i] + melodyOut[i] + percOut[i]
	}
	return output
}

// Accessors used by the dashboard and status publishing.

func (c *Composer) BPM() float64                             { return c.sequencer.BPM() }
func (c *Composer) CurrentBeat() float64                     { return c.sequencer.CurrentBeat() }
func (c *Composer) ActiveScale() string                      { return c.activeScale }
func (c *Composer) AvgBattery() float64                      { return c.avgBattery }
func (c *Composer) AvgNervousness() float64                  { return c.avgNervousness }
func (c *Composer) DroneFrequencies() []float64              { return c.drone.Frequencies() }
func (c *Composer) ArpPattern() int                          { return c.arp.Pattern() }
func (c *Composer) ArpNotes() []float64                      { return c.arp.Notes() }
func (c *Composer) LampPersonalities() []LampPersonality     { return c.lampPersonalities }
func (c *Composer) SensorPersonalities() []SensorPersonality { return c.sensorPersonalities }
func (c *Composer) Melody() *MelodyLayer                     { return c.melody }

func lowestPositive(vals []float64) float64 {
	lowest := 0.0
	for _, v := range vals {
		if v > 0 && (lowest == 0 || v < lowest) {
			lowest = v
		}
	}
	return lowest
}
