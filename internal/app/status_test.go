package app

import (
	"image"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relabs-tech/hue_composer/internal/composer"
	"github.com/relabs-tech/hue_composer/internal/hue"
	"github.com/relabs-tech/hue_composer/internal/mapper"
)

func boolp(v bool) *bool { return &v }

func sampleFrame() StatusFrame {
	return StatusFrame{
		BridgeIP:  "192.168.1.42",
		LastPoll:  "10:00:00",
		PollCount: 12,
		Params: []mapper.MusicParams{
			{Frequency: 261.63, Amplitude: 0.5, Playing: true, Scale: "major", LightName: "Living Room", LightID: 1, ModelID: "LCT007"},
			{Playing: false, LightName: "Kitchen", LightID: 3, ModelID: "LWB010"},
		},
		Sensors: []hue.SensorState{
			{ID: 1, Name: "Hall", Type: "ZLLPresence", Presence: boolp(true)},
		},
		Env:              mapper.EnvironmentState{FilterCutoff: 0.8, TempoModifier: 1.05, IsDaytime: true},
		BPM:              76,
		Beat:             3.5,
		Scale:            "major",
		AvgBattery:       85,
		AvgNervousness:   0.1,
		DroneFrequencies: []float64{261.63, 392.0},
		ArpPattern:       "up-down",
		ArpNotes:         []float64{261.63},
		LampPersonalities: []composer.LampPersonality{
			composer.NewLampPersonality(1, "Living Room", "LCT007", "Extended color light", ""),
		},
		SensorPersonalities: []composer.SensorPersonality{
			composer.NewSensorPersonality(1, "Hall", "SML001", 85),
		},
		Voices: []VoiceStatus{
			{SensorID: 1, Name: "Hall", Frequency: 392, Envelope: 0.6},
		},
	}
}

func TestPrintDashboardDoesNotPanic(t *testing.T) {
	printDashboard(sampleFrame())
	printDashboard(StatusFrame{}) // empty frame is fine too
}

func TestRenderStatusCard(t *testing.T) {
	img := renderStatusCard(sampleFrame())
	require.NotNil(t, img)
	assert.Equal(t, image.Rect(0, 0, cardWidth, cardHeight), img.Bounds())

	// Mock mode renders without a bridge address
	empty := renderStatusCard(StatusFrame{})
	assert.Equal(t, image.Rect(0, 0, cardWidth, cardHeight), empty.Bounds())
}

func TestNervBar(t *testing.T) {
	assert.Equal(t, "·····", nervBar(0))
	assert.Equal(t, "▊▊▊▊▊", nervBar(1))
	assert.Equal(t, "▊▊▊··", nervBar(0.5))
}

func TestCutoffLabel(t *testing.T) {
	assert.Contains(t, cutoffLabel(0.2), "muffled")
	assert.Contains(t, cutoffLabel(0.5), "mellow")
	assert.Contains(t, cutoffLabel(0.9), "open")
}

func TestNoteList(t *testing.T) {
	assert.Equal(t, "-", noteList(nil))
	assert.Equal(t, "C4, G4", noteList([]float64{261.63, 392.0}))
}

func TestTrunc(t *testing.T) {
	assert.Equal(t, "short", trunc("short", 10))
	assert.Equal(t, "a ver…", trunc("a very long name", 6))

	// Multi-byte names must be cut on rune boundaries
	assert.Equal(t, "Küche…", trunc("Küchenlämpchen", 6))
	assert.True(t, utf8.ValidString(trunc("Gästezimmer Stehlampe", 12)))
}
