package app

import (
	"context"
	"log"
	"time"

	"github.com/relabs-tech/hue_composer/internal/config"
	"github.com/relabs-tech/hue_composer/internal/engine"
	"github.com/relabs-tech/hue_composer/internal/hue"
	"github.com/relabs-tech/hue_composer/internal/mapper"
)

// renderPollInterval is how often, in rendered time, the offline renderer
// refreshes the composer from the mock bridge.
const renderPollInterval = 0.5

// RunRender renders seconds of mock-driven ambient music to a WAV file,
// without an audio device or a broker. With seed != 0 the output is
// reproducible.
func RunRender(out string, seconds float64, seed int64) error {
	cfg := config.Get()

	collector := hue.NewMock()
	tracker := hue.NewEventTracker()

	// Tie the mock to rendered time so the music evolves over the file's
	// duration, not over the (near-instant) wall time of the render.
	renderedTime := 0.0
	collector.Clock = func() float64 { return renderedTime }

	var eng *engine.Engine
	if seed != 0 {
		eng = engine.NewSeeded(cfg.SampleRate, cfg.BufferSize, cfg.MasterVolume, seed)
	} else {
		eng = engine.New(cfg.SampleRate, cfg.BufferSize, cfg.MasterVolume)
	}

	ctx := context.Background()
	nextPoll := 0.0

	start := time.Now()
	err := eng.RenderWAV(out, seconds, func(elapsed float64) {
		renderedTime = elapsed
		if elapsed < nextPoll {
			return
		}
		nextPoll = elapsed + renderPollInterval

		lamps, sensors, err := pollOnce(ctx, collector)
		if err != nil {
			// The mock never fails, but keep the loop honest.
			log.Printf("render: poll error: %v", err)
			return
		}

		env := mapper.MapSensors(sensors)
		params := mapper.MapLamps(lamps, cfg.BaseFrequency, &env)

		eng.Update(params)
		eng.UpdateSensors(sensors)
		eng.UpdateEnvironment(env)

		for _, s := range tracker.MotionEvents(sensors) {
			eng.TriggerPercussion(s.ID)
		}
		for _, s := range tracker.ButtonEvents(sensors) {
			eng.TriggerChordChange(*s.ButtonEvent)
		}
	})
	if err != nil {
		return err
	}

	log.Printf("rendered %.1fs of audio to %s in %s", seconds, out, time.Since(start).Round(time.Millisecond))
	return nil
}
