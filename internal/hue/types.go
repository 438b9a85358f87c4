package hue

import "context"

// LampState represents the state of a single Hue lamp.
type LampState struct {
	Name       string `json:"name"`
	ID         int    `json:"id"`
	On         bool   `json:"on"`
	Brightness int    `json:"brightness"` // 0-254
	Hue        *int   `json:"hue"`        // 0-65535, nil for non-color lights
	Saturation *int   `json:"saturation"` // 0-254, nil for non-color lights
	Reachable  bool   `json:"reachable"`

	// Extended metadata
	ModelID      string `json:"model_id,omitempty"`     // e.g. LCT007, LST002, LWB010
	ProductName  string `json:"product_name,omitempty"` // e.g. "Hue color lamp"
	Manufacturer string `json:"manufacturer,omitempty"`
	Type         string `json:"type,omitempty"` // e.g. "Extended color light"
	UniqueID     string `json:"unique_id,omitempty"`
}

// SensorState represents the state of a Hue sensor. Fields that do not apply
// to the sensor's type are nil.
type SensorState struct {
	Name    string `json:"name"`
	ID      int    `json:"id"`
	Type    string `json:"type"`               // ZLLPresence, ZLLLightLevel, ZLLTemperature, Daylight, ZLLSwitch
	ModelID string `json:"model_id,omitempty"` // e.g. SML001, RWL021, ZGPSWITCH

	// Motion sensor
	Presence *bool `json:"presence,omitempty"`
	// Light level sensor
	LightLevel *int  `json:"light_level,omitempty"` // 0-65535, log scale lux
	Dark       *bool `json:"dark,omitempty"`
	Daylight   *bool `json:"daylight,omitempty"`
	// Temperature sensor
	Temperature *int `json:"temperature,omitempty"` // Celsius * 100
	// Switch/button
	ButtonEvent *int `json:"button_event,omitempty"`
	// Daylight sensor (software sensor on the bridge)
	IsDaylight *bool `json:"is_daylight,omitempty"`
	// Common
	Battery     *int   `json:"battery,omitempty"` // percentage
	LastUpdated string `json:"last_updated,omitempty"`
	Reachable   bool   `json:"reachable"`
}

// Collector is anything that can provide lamp and sensor states over time.
// There are two implementations: the real bridge and a mock for demo mode.
type Collector interface {
	Lights(ctx context.Context) ([]LampState, error)
	Sensors(ctx context.Context) ([]SensorState, error)
	// BridgeIP returns the bridge address for display, or "" in mock mode.
	BridgeIP() string
}
