package composer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLampPersonalityByModel(t *testing.T) {
	cases := []struct {
		model     string
		waveform  string
		character string
	}{
		{"LCT007", "warm", "warm"},
		{"LST002", "saw", "sparkle"},
		{"LWB010", "sine", "neutral"},
		{"LCX004", "square", "deep"},
		// Signe floor lamp shares the LCT bulb sound
		{"LCT024", "warm", "warm"},
	}

	for _, c := range cases {
		p := NewLampPersonality(1, "Lamp", c.model, "", "")
		assert.Equal(t, c.waveform, p.Waveform, c.model)
		assert.Equal(t, c.character, p.Character, c.model)
	}
}

func TestLampPersonalityTypeFallback(t *testing.T) {
	p := NewLampPersonality(1, "Lamp", "UNKNOWN999", "Extended color light", "")
	assert.Equal(t, "warm", p.Waveform)

	p = NewLampPersonality(1, "Lamp", "UNKNOWN999", "Dimmable light", "")
	assert.Equal(t, "sine", p.Waveform)
}

func TestLampPersonalityOctaveFromID(t *testing.T) {
	// id % 5 - 2 spreads lamps across -2..+2
	assert.Equal(t, -2, NewLampPersonality(0, "L", "LCT007", "", "").OctaveOffset)
	assert.Equal(t, 0, NewLampPersonality(2, "L", "LCT007", "", "").OctaveOffset)
	assert.Equal(t, 2, NewLampPersonality(4, "L", "LCT007", "", "").OctaveOffset)
	assert.Equal(t, -2, NewLampPersonality(5, "L", "LCT007", "", "").OctaveOffset)
}

func TestLampPersonalityUniqueIDVariation(t *testing.T) {
	a := NewLampPersonality(1, "L", "LCT007", "", "00:17:88:01:aa")
	b := NewLampPersonality(1, "L", "LCT007", "", "00:17:88:01:bb")

	// Same model, different hardware: subtle differences
	assert.NotEqual(t, a.Attack, b.Attack)
	assert.GreaterOrEqual(t, a.Richness, 0.0)
	assert.LessOrEqual(t, a.Richness, 1.0)
}

func TestSensorPersonalityByModel(t *testing.T) {
	cases := []struct {
		model      string
		instrument string
		category   string
	}{
		{"SML001", "pad", "motion"},
		{"SML002", "bell", "motion"},
		{"RWL021", "pluck", "switch"},
		{"ROM001", "mallet", "button"},
		{"ZGPSWITCH", "pluck", "button"},
	}

	for _, c := range cases {
		p := NewSensorPersonality(1, "Sensor", c.model, 100)
		assert.Equal(t, c.instrument, p.InstrumentType, c.model)
		assert.Equal(t, c.category, p.SensorCategory, c.model)
	}
}

func TestSensorPersonalityTypeFallback(t *testing.T) {
	p := NewSensorPersonality(1, "Sensor", "ZLLTemperature", 100)
	assert.Equal(t, "string", p.InstrumentType)
	assert.Equal(t, "temp", p.SensorCategory)

	p = NewSensorPersonality(1, "Sensor", "ZLLPresence", 100)
	assert.Equal(t, "motion", p.SensorCategory)
}

func TestSensorNervousnessFromBattery(t *testing.T) {
	cases := []struct {
		battery     int
		nervousness float64
	}{
		{100, 0.1},
		{51, 0.1},
		{50, 0.3},
		{35, 0.5},
		{20, 0.8},
		{10, 1.0},
		{5, 1.0},
	}
	for _, c := range cases {
		p := NewSensorPersonality(1, "Sensor", "SML001", c.battery)
		assert.Equal(t, c.nervousness, p.Nervousness, "battery %d", c.battery)
	}
}

func TestButtonSensorsIgnoreBattery(t *testing.T) {
	// Tap switches are battery-free; a reported 0 must not make them nervous
	p := NewSensorPersonality(1, "Tap", "ZGPSWITCH", 0)
	assert.Equal(t, 0.1, p.Nervousness)
}

func TestSensorPatternStablePerID(t *testing.T) {
	a := NewSensorPersonality(3, "Sensor", "SML001", 100)
	b := NewSensorPersonality(3, "Sensor", "SML001", 100)
	assert.Equal(t, a.PatternType, b.PatternType)
	assert.Equal(t, a.MelodySeed, b.MelodySeed)
}
