// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package hue

import (
	"context"
	"math"
	"time"
)

// Mock is a Collector that generates smooth, slowly changing lamp and sensor
// data so the generator can run without a bridge (demo mode).
type Mock struct {
	start time.Time

	// Clock, when set, replaces wall time as the simulation time source.
	// The offline renderer uses it to tie the mock to rendered time.
	Clock func() float64
}

// NewMock creates a mock collector.
func NewMock() *Mock {
	return &Mock{start: time.Now()}
}

// BridgeIP returns "" since there is no bridge in mock mode.
func (m *Mock) BridgeIP() string { return "" }

// clock returns elapsed mock time. The 0.2 scale keeps the waveforms below
// drifting slowly at a 500ms poll cadence.
func (m *Mock) clock() float64 {
	if m.Clock != nil {
		return m.Clock() * 0.2
	}
	return time.Since(m.start).Seconds() * 0.2
}

func intp(v int) *int    { return &v }
func boolp(v bool) *bool { return &v }

// Lights generates three lamps whose hue and brightness drift on slow
// sinusoids. The kitchen lamp blinks off occasionally.
func (m *Mock) Lights(_ context.Context) ([]LampState, error) {
	t := m.clock()

	return []LampState{
		{
			Name:         "Living Room",
			ID:           1,
			On:           true,
			Brightness:   int(127 + 127*math.Sin(t*0.5)),
			Hue:          intp(int(32767 + 32767*math.Sin(t*0.2))),
			Saturation:   intp(200),
			Reachable:    true,
			ModelID:      "LCT007",
			ProductName:  "Hue color lamp",
			Manufacturer: "Philips",
			Type:         "Extended color light",
			UniqueID:     "00:17:88:01:00:bd:c7:b9-0b",
		},
		{
			Name:         "Bedroom",
			ID:           2,
			On:           true,
			Brightness:   int(127 + 127*math.Cos(t*0.3)),
			Hue:          intp(int(32767 + 32767*math.Cos(t*0.15))),
			Saturation:   intp(150),
			Reachable:    true,
			ModelID:      "LST002",
			ProductName:  "Hue lightstrip plus",
			Manufacturer: "Philips",
			Type:         "Extended color light",
			UniqueID:     "00:17:88:01:01:15:4a:2c-0b",
		},
		{
			Name:         "Kitchen",
			ID:           3,
			On:           math.Mod(t, 10) < 7,
			Brightness:   180,
			Hue:          intp(int(50000 + 15000*math.Sin(t*0.1))),
			Saturation:   intp(254),
			Reachable:    true,
			ModelID:      "LWB010",
			ProductName:  "Hue white lamp",
			Manufacturer: "Philips",
			Type:         "Dimmable light",
			UniqueID:     "00:17:88:01:02:3a:8e:12-0b",
		},
	}, nil
}

// Sensors generates a motion sensor that triggers every ~8 seconds, a light
// level sensor, a temperature sensor drifting between 19-23°C and the
// bridge's software daylight sensor.
func (m *Mock) Sensors(_ context.Context) ([]SensorState, error) {
	t := m.clock()

	motionActive := math.Mod(t, 8) < 0.5
	temp := int(2100 + 200*math.Sin(t*0.05))
	lightLevel := int(20000 + 15000*math.Sin(t*0.02))
	hour := math.Mod(t, 24)

	return []SensorState{
		{
			Name:      "Hallway Motion",
			ID:        1,
			Type:      "ZLLPresence",
			ModelID:   "SML001",
			Presence:  boolp(motionActive),
			Battery:   intp(85),
			Reachable: true,
		},
		{
			Name:       "Living Room Light",
			ID:         2,
			Type:       "ZLLLightLevel",
			ModelID:    "SML001",
			LightLevel: intp(lightLevel),
			Dark:       boolp(lightLevel < 10000),
			Daylight:   boolp(lightLevel > 30000),
			Battery:    intp(90),
			Reachable:  true,
		},
		{
			Name:        "Bedroom Temp",
			ID:          3,
			Type:        "ZLLTemperature",
			ModelID:     "SML001",
			Temperature: intp(temp),
			Battery:     intp(75),
			Reachable:   true,
		},
		{
			Name:       "Daylight",
			ID:         4,
			Type:       "Daylight",
			IsDaylight: boolp(hour > 8 && hour < 20),
			Reachable:  true,
		},
	}, nil
}
