package app

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/relabs-tech/hue_composer/internal/config"
	"github.com/relabs-tech/hue_composer/internal/hue"
	"github.com/relabs-tech/hue_composer/internal/mapper"
)

// RunConsole follows the generator's MQTT topics and prints one line per
// message, for watching what the generator does from another machine.
func RunConsole() error {
	cfg := config.Get()

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(cfg.MQTTClientIDConsole)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	log.Printf("console: connected to MQTT broker at %s", cfg.MQTTBroker)

	// Subscribe to lamp parameters
	paramsToken := client.Subscribe(cfg.TopicParams, 0, func(_ mqtt.Client, msg mqtt.Message) {
		var params []mapper.MusicParams
		if err := json.Unmarshal(msg.Payload(), &params); err != nil {
			log.Printf("console: params unmarshal error: %v", err)
			return
		}
		for _, p := range params {
			if !p.Playing {
				continue
			}
			fmt.Printf("[PARAM] %-16s f=%7.2fHz amp=%.2f scale=%-10s reverb=%.1f\n",
				p.LightName, p.Frequency, p.Amplitude, p.Scale, p.Reverb)
		}
	})
	paramsToken.Wait()
	if paramsToken.Error() != nil {
		return paramsToken.Error()
	}
	log.Printf("console: subscribed to %s", cfg.TopicParams)

	// Subscribe to the environment
	envToken := client.Subscribe(cfg.TopicEnv, 0, func(_ mqtt.Client, msg mqtt.Message) {
		var env mapper.EnvironmentState
		if err := json.Unmarshal(msg.Payload(), &env); err != nil {
			log.Printf("console: env unmarshal error: %v", err)
			return
		}
		fmt.Printf("[ENV  ] cutoff=%.2f tempo=x%.2f daytime=%v reverb+=%.1f\n",
			env.FilterCutoff, env.TempoModifier, env.IsDaytime, env.ReverbBoost)
	})
	envToken.Wait()
	if envToken.Error() != nil {
		return envToken.Error()
	}
	log.Printf("console: subscribed to %s", cfg.TopicEnv)

	// Subscribe to motion events
	motionToken := client.Subscribe(cfg.TopicMotion, 0, func(_ mqtt.Client, msg mqtt.Message) {
		var s hue.SensorState
		if err := json.Unmarshal(msg.Payload(), &s); err != nil {
			log.Printf("console: motion unmarshal error: %v", err)
			return
		}
		fmt.Printf("[MOVE ] %s (sensor %d)\n", s.Name, s.ID)
	})
	motionToken.Wait()
	if motionToken.Error() != nil {
		return motionToken.Error()
	}
	log.Printf("console: subscribed to %s", cfg.TopicMotion)

	// Subscribe to button events
	buttonToken := client.Subscribe(cfg.TopicButton, 0, func(_ mqtt.Client, msg mqtt.Message) {
		var s hue.SensorState
		if err := json.Unmarshal(msg.Payload(), &s); err != nil {
			log.Printf("console: button unmarshal error: %v", err)
			return
		}
		event := 0
		if s.ButtonEvent != nil {
			event = *s.ButtonEvent
		}
		fmt.Printf("[BTN  ] %s (sensor %d) event=%d\n", s.Name, s.ID, event)
	})
	buttonToken.Wait()
	if buttonToken.Error() != nil {
		return buttonToken.Error()
	}
	log.Printf("console: subscribed to %s", cfg.TopicButton)

	// Subscribe to status frames
	statusToken := client.Subscribe(cfg.TopicStatus, 0, func(_ mqtt.Client, msg mqtt.Message) {
		var frame StatusFrame
		if err := json.Unmarshal(msg.Payload(), &frame); err != nil {
			log.Printf("console: status unmarshal error: %v", err)
			return
		}
		fmt.Printf("[STAT ] bpm=%.0f beat=%.1f scale=%-10s drone=%s arp=%s\n",
			frame.BPM, frame.Beat, frame.Scale,
			noteList(frame.DroneFrequencies), frame.ArpPattern)
	})
	statusToken.Wait()
	if statusToken.Error() != nil {
		return statusToken.Error()
	}
	log.Printf("console: subscribed to %s", cfg.TopicStatus)

	// Wait for Ctrl+C
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("console: shutting down")
	client.Disconnect(250)
	return nil
}
