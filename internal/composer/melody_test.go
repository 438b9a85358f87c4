package composer

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMelodyVoiceStaysOnScale(t *testing.T) {
	v := NewMelodyVoice(NewSensorPersonality(3, "Hall", "SML001", 15))
	v.SetScale("minor", 220)

	for i := 0; i < 200; i++ {
		v.TriggerNote()
		assert.GreaterOrEqual(t, v.degree, 0)
		assert.Less(t, v.degree, len(v.scale))
		assert.Greater(t, v.CurrentFrequency(), 0.0)
	}
}

func TestMelodyVoiceReproduciblePerSensor(t *testing.T) {
	walk := func() []float64 {
		v := NewMelodyVoice(NewSensorPersonality(5, "Hall", "SML001", 80))
		v.SetScale("pentatonic", 261.63)
		var freqs []float64
		for i := 0; i < 16; i++ {
			v.TriggerNote()
			freqs = append(freqs, v.CurrentFrequency())
		}
		return freqs
	}

	assert.Equal(t, walk(), walk(), "same sensor ID seeds the same melody")
}

func TestMelodyVoiceEnvelopeDecays(t *testing.T) {
	v := NewMelodyVoice(NewSensorPersonality(1, "S", "SML001", 100))
	v.SetScale("major", 261.63)
	v.TriggerNote()

	require.Equal(t, 1.0, v.Envelope())
	v.Samples(44100, 44100)
	assert.Less(t, v.Envelope(), 1.0)
}

func TestMelodyLayerVoicesFollowPersonalities(t *testing.T) {
	m := newMelodyLayer(rand.New(rand.NewSource(1)))

	m.UpdatePersonalities([]SensorPersonality{
		NewSensorPersonality(1, "A", "SML001", 90),
		NewSensorPersonality(2, "B", "RWL021", 60),
	})
	assert.Len(t, m.Voices(), 2)

	// Updating again keeps existing voices rather than resetting them
	m.Voices()[1].TriggerNote()
	before := m.Voices()[1].CurrentFrequency()
	m.UpdatePersonalities([]SensorPersonality{
		NewSensorPersonality(1, "A", "SML001", 90),
		NewSensorPersonality(2, "B", "RWL021", 60),
		NewSensorPersonality(3, "C", "ZGPSwitch", 0),
	})
	assert.Len(t, m.Voices(), 3)
	assert.Equal(t, before, m.Voices()[1].CurrentFrequency())
}

func TestMelodyTriggerBySensorOnlyHitsOwnVoice(t *testing.T) {
	m := newMelodyLayer(rand.New(rand.NewSource(1)))
	m.UpdatePersonalities([]SensorPersonality{
		NewSensorPersonality(1, "A", "SML001", 90),
		NewSensorPersonality(2, "B", "SML001", 90),
	})
	m.SetScale("pentatonic", 261.63)

	m.TriggerBySensor(2)
	assert.Equal(t, 0.0, m.Voices()[1].Envelope())
	assert.Equal(t, 1.0, m.Voices()[2].Envelope())

	// Unknown sensor is a no-op
	m.TriggerBySensor(99)
}

func TestMelodyTriggerRandomVoiceNeedsVoices(t *testing.T) {
	m := newMelodyLayer(rand.New(rand.NewSource(1)))
	m.TriggerRandomVoice() // must not panic on empty layer

	m.UpdatePersonalities([]SensorPersonality{NewSensorPersonality(1, "A", "SML001", 90)})
	m.TriggerRandomVoice()
	assert.Equal(t, 1.0, m.Voices()[1].Envelope())
}
