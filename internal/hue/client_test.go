package hue

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bridgeStateJSON = `{
	"lights": {
		"2": {
			"name": "Bedroom",
			"modelid": "LST002",
			"type": "Color light",
			"uniqueid": "00:17:88:01:02",
			"state": {"on": true, "bri": 120, "hue": 46000, "sat": 150, "reachable": true}
		},
		"1": {
			"name": "Living Room",
			"modelid": "LCT007",
			"type": "Extended color light",
			"uniqueid": "00:17:88:01:01",
			"state": {"on": true, "bri": 254, "hue": 8000, "sat": 220, "reachable": true}
		},
		"3": {
			"name": "Kitchen",
			"modelid": "LWB010",
			"type": "Dimmable light",
			"state": {"on": false, "bri": 0, "reachable": false}
		}
	},
	"sensors": {
		"1": {
			"name": "Hallway sensor",
			"type": "ZLLPresence",
			"modelid": "SML001",
			"manufacturername": "Signify",
			"state": {"presence": true, "lastupdated": "2026-08-24T10:00:00"},
			"config": {"battery": 47, "reachable": true}
		},
		"2": {
			"name": "Hallway light level",
			"type": "ZLLLightLevel",
			"modelid": "SML001",
			"state": {"lightlevel": 21000, "dark": false, "daylight": true},
			"config": {"battery": 47}
		},
		"3": {
			"name": "Hallway temperature",
			"type": "ZLLTemperature",
			"modelid": "SML001",
			"state": {"temperature": 2150},
			"config": {"battery": 47}
		},
		"4": {
			"name": "Dimmer",
			"type": "ZLLSwitch",
			"modelid": "RWL021",
			"state": {"buttonevent": 2002},
			"config": {"battery": 80}
		},
		"5": {
			"name": "Daylight",
			"type": "Daylight",
			"state": {"daylight": false},
			"config": {}
		}
	}
}`

func newTestBridge(t *testing.T, handler http.HandlerFunc) *Bridge {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	ip := strings.TrimPrefix(srv.URL, "http://")
	return NewBridge(ip, "testuser", srv.Client())
}

func TestBridgeLights(t *testing.T) {
	b := newTestBridge(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/testuser", r.URL.Path)
		w.Write([]byte(bridgeStateJSON))
	})

	lights, err := b.Lights(context.Background())
	require.NoError(t, err)
	require.Len(t, lights, 3)

	// Sorted by ID regardless of map order
	assert.Equal(t, []int{1, 2, 3}, []int{lights[0].ID, lights[1].ID, lights[2].ID})

	living := lights[0]
	assert.Equal(t, "Living Room", living.Name)
	assert.Equal(t, "LCT007", living.ModelID)
	assert.True(t, living.On)
	assert.Equal(t, 254, living.Brightness)
	require.NotNil(t, living.Hue)
	assert.Equal(t, 8000, *living.Hue)
	require.NotNil(t, living.Saturation)
	assert.Equal(t, 220, *living.Saturation)

	kitchen := lights[2]
	assert.False(t, kitchen.On)
	assert.False(t, kitchen.Reachable)
	assert.Nil(t, kitchen.Hue, "dimmable lights report no hue")
}

func TestBridgeSensors(t *testing.T) {
	b := newTestBridge(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(bridgeStateJSON))
	})

	sensors, err := b.Sensors(context.Background())
	require.NoError(t, err)
	require.Len(t, sensors, 5)

	motion := sensors[0]
	assert.Equal(t, "ZLLPresence", motion.Type)
	assert.Equal(t, "SML001", motion.ModelID)
	require.NotNil(t, motion.Presence)
	assert.True(t, *motion.Presence)
	require.NotNil(t, motion.Battery)
	assert.Equal(t, 47, *motion.Battery)
	assert.Nil(t, motion.Temperature)

	level := sensors[1]
	require.NotNil(t, level.LightLevel)
	assert.Equal(t, 21000, *level.LightLevel)

	temp := sensors[2]
	require.NotNil(t, temp.Temperature)
	assert.Equal(t, 2150, *temp.Temperature)

	dimmer := sensors[3]
	require.NotNil(t, dimmer.ButtonEvent)
	assert.Equal(t, 2002, *dimmer.ButtonEvent)

	daylight := sensors[4]
	require.NotNil(t, daylight.IsDaylight)
	assert.False(t, *daylight.IsDaylight)
}

func TestBridgeErrorArrayResponse(t *testing.T) {
	b := newTestBridge(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"error":{"type":1,"address":"/","description":"unauthorized user"}}]`))
	})

	_, err := b.Lights(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unauthorized user")
}

func TestBridgeBadStatus(t *testing.T) {
	b := newTestBridge(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := b.Sensors(context.Background())
	require.Error(t, err)
}

func TestBridgeRawSensors(t *testing.T) {
	b := newTestBridge(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(bridgeStateJSON))
	})

	raw, err := b.RawSensors(context.Background())
	require.NoError(t, err)
	require.Len(t, raw, 5)

	s, ok := raw["1"]
	require.True(t, ok)
	assert.Equal(t, "Hallway sensor", s.Name)
	assert.Equal(t, "SML001", s.ModelID)
	assert.Contains(t, string(s.State), "presence")
	assert.Contains(t, string(s.Config), "battery")
}
