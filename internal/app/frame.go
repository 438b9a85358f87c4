package app

import (
	"sort"

	"github.com/relabs-tech/hue_composer/internal/composer"
	"github.com/relabs-tech/hue_composer/internal/engine"
	"github.com/relabs-tech/hue_composer/internal/hue"
	"github.com/relabs-tech/hue_composer/internal/mapper"
)

// VoiceStatus is one active melody voice in a status frame.
type VoiceStatus struct {
	SensorID  int     `json:"sensor_id"`
	Name      string  `json:"name"`
	Frequency float64 `json:"frequency"`
	Envelope  float64 `json:"envelope"`
}

// StatusFrame is the full generator state published to MQTT after each poll
// and rendered by the dashboard and web monitor.
type StatusFrame struct {
	BridgeIP  string `json:"bridge_ip"` // "" in mock mode
	LastPoll  string `json:"last_poll"`
	PollCount int    `json:"poll_count"`

	Params  []mapper.MusicParams    `json:"params"`
	Sensors []hue.SensorState       `json:"sensors"`
	Env     mapper.EnvironmentState `json:"env"`

	BPM            float64 `json:"bpm"`
	Beat           float64 `json:"beat"`
	Scale          string  `json:"scale"`
	AvgBattery     float64 `json:"avg_battery"`
	AvgNervousness float64 `json:"avg_nervousness"`

	DroneFrequencies []float64 `json:"drone_frequencies"`
	ArpPattern       string    `json:"arp_pattern"`
	ArpNotes         []float64 `json:"arp_notes"`

	LampPersonalities   []composer.LampPersonality   `json:"lamp_personalities"`
	SensorPersonalities []composer.SensorPersonality `json:"sensor_personalities"`
	Voices              []VoiceStatus                `json:"voices"`
}

// buildFrame assembles a status frame from the latest poll results and a
// consistent snapshot of composer state.
func buildFrame(eng *engine.Engine, bridgeIP, lastPoll string, pollCount int,
	params []mapper.MusicParams, sensors []hue.SensorState, env mapper.EnvironmentState) StatusFrame {

	frame := StatusFrame{
		BridgeIP:  bridgeIP,
		LastPoll:  lastPoll,
		PollCount: pollCount,
		Params:    params,
		Sensors:   sensors,
		Env:       env,
	}

	eng.Snapshot(func(c *composer.Composer) {
		frame.BPM = c.BPM()
		frame.Beat = c.CurrentBeat()
		frame.Scale = c.ActiveScale()
		frame.AvgBattery = c.AvgBattery()
		frame.AvgNervousness = c.AvgNervousness()
		frame.DroneFrequencies = c.DroneFrequencies()
		frame.ArpPattern = composer.ArpPatternNames[c.ArpPattern()%len(composer.ArpPatternNames)]
		frame.ArpNotes = c.ArpNotes()
		frame.LampPersonalities = c.LampPersonalities()
		frame.SensorPersonalities = c.SensorPersonalities()

		for id, v := range c.Melody().Voices() {
			if v.Envelope() > 0.01 {
				frame.Voices = append(frame.Voices, VoiceStatus{
					SensorID:  id,
					Name:      v.Personality().Name,
					Frequency: v.CurrentFrequency(),
					Envelope:  v.Envelope(),
				})
			}
		}
	})

	sort.Slice(frame.Voices, func(i, j int) bool {
		return frame.Voices[i].SensorID < frame.Voices[j].SensorID
	})
	return frame
}
