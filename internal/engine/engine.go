// Package engine wraps the composer behind a lock and feeds its output to
// the audio device.
package engine

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync"

	oto "github.com/ebitengine/oto/v3"

	"github.com/relabs-tech/hue_composer/internal/composer"
	"github.com/relabs-tech/hue_composer/internal/hue"
	"github.com/relabs-tech/hue_composer/internal/mapper"
)

// Engine generates ambient audio using the composer. The audio device pulls
// samples through Read on its own goroutine while the poll loop pushes state
// updates, so every composer access goes through the mutex.
type Engine struct {
	mu           sync.Mutex
	composer     *composer.Composer
	masterVolume float64
	sampleRate   int
	bufferSize   int

	otoCtx *oto.Context
	player *oto.Player
}

// New creates an engine around a fresh composer.
func New(sampleRate, bufferSize int, masterVolume float64) *Engine {
	return &Engine{
		composer:     composer.New(),
		masterVolume: masterVolume,
		sampleRate:   sampleRate,
		bufferSize:   bufferSize,
	}
}

// NewSeeded creates an engine whose composer uses a deterministic random
// source, for reproducible offline renders and tests.
func NewSeeded(sampleRate, bufferSize int, masterVolume float64, seed int64) *Engine {
	e := New(sampleRate, bufferSize, masterVolume)
	e.composer = composer.NewSeeded(seed)
	return e
}

// Composer exposes the underlying composer for status reads. Callers must
// not mutate it; state changes go through the engine's Update* methods.
func (e *Engine) Composer() *composer.Composer { return e.composer }

// Start opens the audio device and begins playback.
func (e *Engine) Start() error {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   e.sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	})
	if err != nil {
		return fmt.Errorf("failed to open audio device: %w", err)
	}
	<-ready

	e.otoCtx = ctx
	e.player = ctx.NewPlayer(e)
	// Keep the device buffer small so parameter changes are audible quickly.
	e.player.SetBufferSize(e.bufferSize * 4 * 4)
	e.player.Play()
	return nil
}

// Stop halts playback and releases the audio device.
func (e *Engine) Stop() {
	if e.player != nil {
		e.player.Close()
		e.player = nil
	}
}

// Process renders n mixed samples with master volume and a tanh soft clip
// applied.
func (e *Engine) Process(n int) []float64 {
	e.mu.Lock()
	samples := e.composer.Process(n, e.sampleRate)
	vol := e.masterVolume
	e.mu.Unlock()

	for i, s := range samples {
		samples[i] = math.Tanh(s * vol)
	}
	return samples
}

// Read implements io.Reader for the audio device: little-endian float32
// mono frames.
func (e *Engine) Read(p []byte) (int, error) {
	frames := len(p) / 4
	if frames == 0 {
		return 0, nil
	}
	samples := e.Process(frames)
	for i, s := range samples {
		binary.LittleEndian.PutUint32(p[i*4:], math.Float32bits(float32(s)))
	}
	return frames * 4, nil
}

// Update pushes new lamp parameters into the composer: frequencies,
// amplitudes, the majority scale and per-lamp personalities.
func (e *Engine) Update(params []mapper.MusicParams) {
	var frequencies, amplitudes []float64
	var personalities []composer.LampPersonality
	scaleCount := map[string]int{}

	for _, p := range params {
		if !p.Playing {
			continue
		}
		frequencies = append(frequencies, p.Frequency)
		amplitudes = append(amplitudes, p.Amplitude)
		scaleCount[p.Scale]++
		personalities = append(personalities, composer.NewLampPersonality(
			p.LightID, p.LightName, p.ModelID, p.LightType, p.UniqueID))
	}

	scale := "pentatonic"
	best := 0
	for _, name := range []string{"major", "minor", "pentatonic"} {
		if scaleCount[name] > best {
			best = scaleCount[name]
			scale = name
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.composer.UpdateFromLamps(frequencies, amplitudes, scale, personalities)
}

// UpdateSensors derives personalities for motion-capable sensors and pushes
// them into the composer.
func (e *Engine) UpdateSensors(sensors []hue.SensorState) {
	var personalities []composer.SensorPersonality
	for _, s := range sensors {
		if s.Presence == nil {
			continue
		}
		battery := 100
		if s.Battery != nil {
			battery = *s.Battery
		}
		model := s.ModelID
		if model == "" {
			model = s.Type
		}
		personalities = append(personalities,
			composer.NewSensorPersonality(s.ID, s.Name, model, battery))
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.composer.UpdateFromSensors(personalities)
}

// UpdateEnvironment pushes the sensor-derived environment into the composer.
func (e *Engine) UpdateEnvironment(env mapper.EnvironmentState) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.composer.UpdateTempo(env.TempoModifier)
}

// TriggerPercussion fires a percussion/melody trigger for a motion sensor.
func (e *Engine) TriggerPercussion(sensorID int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.composer.TriggerMotion(sensorID)
}

// TriggerChordChange fires a button-press trigger. buttonEvent is the raw
// Hue buttonevent code.
func (e *Engine) TriggerChordChange(buttonEvent int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.composer.TriggerButton(buttonEvent)
}

// SetMasterVolume sets the master volume, clamped to 0.0-1.0.
func (e *Engine) SetMasterVolume(volume float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.masterVolume = math.Max(0, math.Min(1, volume))
}

// Snapshot copies composer state for status publishing under the lock.
func (e *Engine) Snapshot(fn func(c *composer.Composer)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(e.composer)
}
