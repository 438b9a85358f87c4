package hue

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
)

// Bridge is a Philips Hue bridge reachable over its local HTTP API.
type Bridge struct {
	ip       string
	username string
	client   *http.Client
}

// NewBridge creates a new bridge client from an IP address and a registered
// API username. If client is nil, http.DefaultClient is used.
func NewBridge(ip, username string, client *http.Client) *Bridge {
	if client == nil {
		client = http.DefaultClient
	}
	return &Bridge{ip: ip, username: username, client: client}
}

// BridgeIP returns the bridge address.
func (b *Bridge) BridgeIP() string { return b.ip }

// apiError is a single element of the error array the bridge returns instead
// of a state object when a request is rejected.
type apiError struct {
	Error struct {
		Type        int    `json:"type"`
		Address     string `json:"address"`
		Description string `json:"description"`
	} `json:"error"`
}

type apiLightState struct {
	On        bool `json:"on"`
	Bri       int  `json:"bri"`
	Hue       *int `json:"hue"`
	Sat       *int `json:"sat"`
	Reachable bool `json:"reachable"`
}

type apiLight struct {
	Name             string        `json:"name"`
	State            apiLightState `json:"state"`
	ModelID          string        `json:"modelid"`
	ProductName      string        `json:"productname"`
	ManufacturerName string        `json:"manufacturername"`
	Type             string        `json:"type"`
	UniqueID         string        `json:"uniqueid"`
}

// apiSensor keeps state and config raw so debug tools can dump them verbatim.
type apiSensor struct {
	Name             string          `json:"name"`
	Type             string          `json:"type"`
	ModelID          string          `json:"modelid"`
	ManufacturerName string          `json:"manufacturername"`
	State            json.RawMessage `json:"state"`
	Config           json.RawMessage `json:"config"`
}

type apiSensorState struct {
	Presence    *bool  `json:"presence"`
	LightLevel  *int   `json:"lightlevel"`
	Dark        *bool  `json:"dark"`
	Daylight    *bool  `json:"daylight"`
	Temperature *int   `json:"temperature"`
	ButtonEvent *int   `json:"buttonevent"`
	LastUpdated string `json:"lastupdated"`
}

type apiSensorConfig struct {
	Battery   *int  `json:"battery"`
	Reachable *bool `json:"reachable"`
}

type apiState struct {
	Lights  map[string]apiLight  `json:"lights"`
	Sensors map[string]apiSensor `json:"sensors"`
}

// fetch retrieves the full bridge state in a single request.
func (b *Bridge) fetch(ctx context.Context) (*apiState, error) {
	u := url.URL{
		Scheme: "http",
		Host:   b.ip,
		Path:   "/api/" + b.username,
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	res, err := b.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code %d", res.StatusCode)
	}

	var raw json.RawMessage
	if err := json.NewDecoder(res.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode bridge response: %w", err)
	}

	// The bridge answers an array of errors (not an object) when the
	// username is unknown or the request is malformed.
	if len(raw) > 0 && raw[0] == '[' {
		var errs []apiError
		if err := json.Unmarshal(raw, &errs); err == nil && len(errs) > 0 {
			return nil, fmt.Errorf("bridge error %d: %s", errs[0].Error.Type, errs[0].Error.Description)
		}
		return nil, fmt.Errorf("unexpected bridge response")
	}

	state := &apiState{}
	if err := json.Unmarshal(raw, state); err != nil {
		return nil, fmt.Errorf("decode bridge state: %w", err)
	}
	return state, nil
}

// Lights returns the current state of all lights, sorted by light ID.
func (b *Bridge) Lights(ctx context.Context) ([]LampState, error) {
	state, err := b.fetch(ctx)
	if err != nil {
		return nil, err
	}

	lights := make([]LampState, 0, len(state.Lights))
	for id, l := range state.Lights {
		lightID, err := strconv.Atoi(id)
		if err != nil {
			continue
		}
		name := l.Name
		if name == "" {
			name = "Light " + id
		}
		lights = append(lights, LampState{
			Name:         name,
			ID:           lightID,
			On:           l.State.On,
			Brightness:   l.State.Bri,
			Hue:          l.State.Hue,
			Saturation:   l.State.Sat,
			Reachable:    l.State.Reachable,
			ModelID:      l.ModelID,
			ProductName:  l.ProductName,
			Manufacturer: l.ManufacturerName,
			Type:         l.Type,
			UniqueID:     l.UniqueID,
		})
	}
	sort.Slice(lights, func(i, j int) bool { return lights[i].ID < lights[j].ID })
	return lights, nil
}

// Sensors returns the current state of all sensors, sorted by sensor ID.
func (b *Bridge) Sensors(ctx context.Context) ([]SensorState, error) {
	state, err := b.fetch(ctx)
	if err != nil {
		return nil, err
	}
	return parseSensors(state.Sensors)
}

func parseSensors(raw map[string]apiSensor) ([]SensorState, error) {
	sensors := make([]SensorState, 0, len(raw))
	for id, s := range raw {
		sensorID, err := strconv.Atoi(id)
		if err != nil {
			continue
		}

		var st apiSensorState
		if len(s.State) > 0 {
			if err := json.Unmarshal(s.State, &st); err != nil {
				return nil, fmt.Errorf("sensor %s state: %w", id, err)
			}
		}
		var cfg apiSensorConfig
		if len(s.Config) > 0 {
			if err := json.Unmarshal(s.Config, &cfg); err != nil {
				return nil, fmt.Errorf("sensor %s config: %w", id, err)
			}
		}

		name := s.Name
		if name == "" {
			name = "Sensor " + id
		}
		sensor := SensorState{
			Name:        name,
			ID:          sensorID,
			Type:        s.Type,
			ModelID:     s.ModelID,
			Battery:     cfg.Battery,
			LastUpdated: st.LastUpdated,
			Reachable:   cfg.Reachable == nil || *cfg.Reachable,
		}

		switch s.Type {
		case "ZLLPresence", "ZHAPresence":
			presence := st.Presence != nil && *st.Presence
			sensor.Presence = &presence
		case "ZLLLightLevel", "ZHALightLevel":
			level := 0
			if st.LightLevel != nil {
				level = *st.LightLevel
			}
			dark := st.Dark != nil && *st.Dark
			daylight := st.Daylight != nil && *st.Daylight
			sensor.LightLevel = &level
			sensor.Dark = &dark
			sensor.Daylight = &daylight
		case "ZLLTemperature", "ZHATemperature":
			temp := 0
			if st.Temperature != nil {
				temp = *st.Temperature
			}
			sensor.Temperature = &temp
		case "ZLLSwitch", "ZHASwitch", "ZGPSwitch":
			sensor.ButtonEvent = st.ButtonEvent
		case "Daylight":
			day := st.Daylight != nil && *st.Daylight
			sensor.IsDaylight = &day
		}

		sensors = append(sensors, sensor)
	}
	sort.Slice(sensors, func(i, j int) bool { return sensors[i].ID < sensors[j].ID })
	return sensors, nil
}

// RawSensor is the undecoded bridge view of one sensor, for debug dumps.
type RawSensor struct {
	Name         string
	Type         string
	ModelID      string
	Manufacturer string
	State        json.RawMessage
	Config       json.RawMessage
}

// RawSensors returns the sensors section of the bridge state without
// interpretation, keyed by sensor ID.
func (b *Bridge) RawSensors(ctx context.Context) (map[string]RawSensor, error) {
	state, err := b.fetch(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]RawSensor, len(state.Sensors))
	for id, s := range state.Sensors {
		out[id] = RawSensor{
			Name:         s.Name,
			Type:         s.Type,
			ModelID:      s.ModelID,
			Manufacturer: s.ManufacturerName,
			State:        s.State,
			Config:       s.Config,
		}
	}
	return out, nil
}
