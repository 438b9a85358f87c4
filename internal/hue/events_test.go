package hue

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func motionSensor(id int, present bool) SensorState {
	return SensorState{ID: id, Name: "motion", Type: "ZLLPresence", Presence: boolp(present)}
}

func buttonSensor(id, event int) SensorState {
	return SensorState{ID: id, Name: "dimmer", Type: "ZLLSwitch", ButtonEvent: intp(event)}
}

func TestMotionEventsRisingEdgeOnly(t *testing.T) {
	tr := NewEventTracker()

	// First poll: presence true with no history is a rising edge
	events := tr.MotionEvents([]SensorState{motionSensor(1, true)})
	assert.Len(t, events, 1)

	// Still true: no new event
	events = tr.MotionEvents([]SensorState{motionSensor(1, true)})
	assert.Empty(t, events)

	// Falling edge: no event
	events = tr.MotionEvents([]SensorState{motionSensor(1, false)})
	assert.Empty(t, events)

	// Rising again: event
	events = tr.MotionEvents([]SensorState{motionSensor(1, true)})
	assert.Len(t, events, 1)
	assert.Equal(t, 1, events[0].ID)
}

func TestMotionEventsIgnoreNonMotionSensors(t *testing.T) {
	tr := NewEventTracker()
	events := tr.MotionEvents([]SensorState{{ID: 9, Type: "ZLLTemperature", Temperature: intp(2100)}})
	assert.Empty(t, events)
}

func TestButtonEventsOnChange(t *testing.T) {
	tr := NewEventTracker()

	// First observation counts as a press
	events := tr.ButtonEvents([]SensorState{buttonSensor(4, 2002)})
	assert.Len(t, events, 1)

	// Same code again: no event
	events = tr.ButtonEvents([]SensorState{buttonSensor(4, 2002)})
	assert.Empty(t, events)

	// New code: event
	events = tr.ButtonEvents([]SensorState{buttonSensor(4, 3002)})
	assert.Len(t, events, 1)
	assert.Equal(t, 3002, *events[0].ButtonEvent)
}

func TestTrackerHandlesMultipleSensors(t *testing.T) {
	tr := NewEventTracker()

	events := tr.MotionEvents([]SensorState{
		motionSensor(1, true),
		motionSensor(2, false),
		motionSensor(3, true),
	})
	assert.Len(t, events, 2)

	events = tr.MotionEvents([]SensorState{
		motionSensor(1, true),
		motionSensor(2, true),
		motionSensor(3, false),
	})
	assert.Len(t, events, 1)
	assert.Equal(t, 2, events[0].ID)
}
