package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/relabs-tech/hue_composer/internal/config"
	"github.com/relabs-tech/hue_composer/internal/engine"
	"github.com/relabs-tech/hue_composer/internal/hue"
	"github.com/relabs-tech/hue_composer/internal/mapper"
)

// maxConsecutiveErrors is how many failed polls in a row are tolerated before
// the generator gives up. The music keeps playing from the last known state
// while errors accumulate.
const maxConsecutiveErrors = 5

// RunGenerator runs the main poll/compose/publish loop until interrupted.
// In mock mode a simulated bridge is used and no pairing is required.
func RunGenerator(mock, quiet bool, bridgeIP string) error {
	log.Println("starting hue-composer ambient generator")

	cfg := config.Get()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Choose lamp/sensor source (mock vs real bridge) ---
	var collector hue.Collector
	if mock {
		log.Println("using mock bridge (demo mode)")
		collector = hue.NewMock()
	} else {
		if bridgeIP == "" {
			bridgeIP = cfg.HueBridgeIP
		}
		creds, err := EnsureEnvironment(ctx, cfg.HueCredentialsFile, bridgeIP, nil)
		if err != nil {
			return err
		}
		log.Printf("using bridge at %s", creds.BridgeIP)
		collector = hue.NewBridge(creds.BridgeIP, creds.Username, nil)
	}

	// --- Start the sound engine ---
	eng := engine.New(cfg.SampleRate, cfg.BufferSize, cfg.MasterVolume)
	if err := eng.Start(); err != nil {
		return fmt.Errorf("failed to start sound engine: %w", err)
	}
	defer eng.Stop()

	// --- Connect to MQTT ---
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(cfg.MQTTClientIDGenerator)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("MQTT connect error: %w", token.Error())
	}
	defer client.Disconnect(250)

	log.Println("connected to MQTT, starting poll loop")
	log.Println("listening to your lights and sensors")

	tracker := hue.NewEventTracker()
	ticker := time.NewTicker(time.Duration(cfg.PollIntervalMS) * time.Millisecond)
	defer ticker.Stop()

	consecutiveErrors := 0
	pollCount := 0

	for {
		select {
		case <-ctx.Done():
			log.Println("Goodbye!")
			return nil

		case t := <-ticker.C:
			lamps, sensors, err := pollOnce(ctx, collector)
			if err != nil {
				consecutiveErrors++
				log.Printf("poll error (%d/%d), music continues with last known state: %v",
					consecutiveErrors, maxConsecutiveErrors, err)
				if consecutiveErrors >= maxConsecutiveErrors {
					return fmt.Errorf("bridge unreachable after %d consecutive polls: %w",
						consecutiveErrors, err)
				}
				continue
			}
			consecutiveErrors = 0
			pollCount++

			// 1) Sensors first: the environment shapes the lamp mapping
			env := mapper.MapSensors(sensors)
			params := mapper.MapLamps(lamps, cfg.BaseFrequency, &env)

			eng.Update(params)
			eng.UpdateSensors(sensors)
			eng.UpdateEnvironment(env)

			// 2) Edge-triggered events
			for _, s := range tracker.MotionEvents(sensors) {
				eng.TriggerPercussion(s.ID)
				publish(client, cfg.TopicMotion, s)
			}
			for _, s := range tracker.ButtonEvents(sensors) {
				eng.TriggerChordChange(*s.ButtonEvent)
				publish(client, cfg.TopicButton, s)
			}

			// 3) Publish the derived state
			publish(client, cfg.TopicParams, params)
			publish(client, cfg.TopicEnv, env)

			frame := buildFrame(eng, collector.BridgeIP(), t.Format("15:04:05"), pollCount,
				params, sensors, env)
			publish(client, cfg.TopicStatus, frame)

			if !quiet {
				printDashboard(frame)
			}
		}
	}
}

func pollOnce(ctx context.Context, collector hue.Collector) ([]hue.LampState, []hue.SensorState, error) {
	lamps, err := collector.Lights(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("lights: %w", err)
	}
	sensors, err := collector.Sensors(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("sensors: %w", err)
	}
	return lamps, sensors, nil
}

// publish marshals v and publishes it retained at QoS 0. Publish failures are
// logged, not fatal: the music must not stop because the broker hiccuped.
func publish(client mqtt.Client, topic string, v interface{}) {
	payload, err := json.Marshal(v)
	if err != nil {
		log.Printf("json marshal error (%s): %v", topic, err)
		return
	}
	if token := client.Publish(topic, 0, true, payload); token.Wait() && token.Error() != nil {
		log.Printf("MQTT publish error (%s): %v", topic, token.Error())
	}
}
