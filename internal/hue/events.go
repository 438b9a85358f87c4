package hue

// EventTracker detects state transitions between consecutive sensor polls.
// It is not safe for concurrent use; the poll loop owns it.
type EventTracker struct {
	prevMotion map[int]bool
	prevButton map[int]int
}

// NewEventTracker returns a tracker with no history; the first poll seeds it.
func NewEventTracker() *EventTracker {
	return &EventTracker{
		prevMotion: make(map[int]bool),
		prevButton: make(map[int]int),
	}
}

// MotionEvents returns the sensors whose presence just flipped to true
// (rising edge only).
func (t *EventTracker) MotionEvents(sensors []SensorState) []SensorState {
	var events []SensorState
	for _, s := range sensors {
		if s.Presence == nil {
			continue
		}
		prev := t.prevMotion[s.ID]
		if *s.Presence && !prev {
			events = append(events, s)
		}
		t.prevMotion[s.ID] = *s.Presence
	}
	return events
}

// ButtonEvents returns the sensors whose button event code changed since the
// previous poll. The first observation of a code counts as a press.
func (t *EventTracker) ButtonEvents(sensors []SensorState) []SensorState {
	var events []SensorState
	for _, s := range sensors {
		if s.ButtonEvent == nil {
			continue
		}
		prev, seen := t.prevButton[s.ID]
		if !seen || *s.ButtonEvent != prev {
			events = append(events, s)
		}
		t.prevButton[s.ID] = *s.ButtonEvent
	}
	return events
}
