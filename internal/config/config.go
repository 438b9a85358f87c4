package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
)

// Config holds all application configuration values.
type Config struct {
	// MQTT
	MQTTBroker            string
	MQTTClientIDGenerator string
	MQTTClientIDConsole   string
	MQTTClientIDWeb       string

	// Topics
	TopicParams string
	TopicEnv    string
	TopicMotion string
	TopicButton string
	TopicStatus string

	// Hue Bridge
	HueBridgeIP        string // optional; discovery is used when empty
	HueCredentialsFile string

	// Polling
	PollIntervalMS int

	// Audio
	SampleRate    int
	BufferSize    int
	MasterVolume  float64
	BaseFrequency float64

	// Web Server
	WebServerPort int

	// Logging
	LogFile string // optional; stderr when empty
}

// Default returns the compiled-in configuration used when no config file is
// present.
func Default() *Config {
	return &Config{
		MQTTBroker:            "tcp://localhost:1883",
		MQTTClientIDGenerator: "hue-composer-generator",
		MQTTClientIDConsole:   "hue-composer-console",
		MQTTClientIDWeb:       "hue-composer-web",
		TopicParams:           "hue/params",
		TopicEnv:              "hue/env",
		TopicMotion:           "hue/events/motion",
		TopicButton:           "hue/events/button",
		TopicStatus:           "hue/status",
		HueCredentialsFile:    ".hue_config.json",
		PollIntervalMS:        500,
		SampleRate:            44100,
		BufferSize:            512,
		MasterVolume:          0.7,
		BaseFrequency:         261.63,
		WebServerPort:         8080,
	}
}

// Package-level unexported variables for singleton pattern. External code
// must use InitGlobal() to set and Get() to read, ensuring thread safety.
var (
	globalConfig *Config
	configOnce   sync.Once
	configMu     sync.RWMutex
)

// Load reads the configuration file and returns a Config struct. Keys that
// are not present keep their compiled-in defaults.
func Load(configPath string) (*Config, error) {
	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	cfg := Default()
	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Parse KEY=VALUE
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid config line %d: %q", lineNum, line)
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		if err := cfg.setValue(key, value); err != nil {
			return nil, fmt.Errorf("config line %d: %w", lineNum, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// setValue sets a config value based on the key.
func (c *Config) setValue(key, value string) error {
	switch key {
	// MQTT
	case "MQTT_BROKER":
		c.MQTTBroker = value
	case "MQTT_CLIENT_ID_GENERATOR":
		c.MQTTClientIDGenerator = value
	case "MQTT_CLIENT_ID_CONSOLE":
		c.MQTTClientIDConsole = value
	case "MQTT_CLIENT_ID_WEB":
		c.MQTTClientIDWeb = value

	// Topics
	case "TOPIC_PARAMS":
		c.TopicParams = value
	case "TOPIC_ENV":
		c.TopicEnv = value
	case "TOPIC_MOTION":
		c.TopicMotion = value
	case "TOPIC_BUTTON":
		c.TopicButton = value
	case "TOPIC_STATUS":
		c.TopicStatus = value

	// Hue Bridge
	case "HUE_BRIDGE_IP":
		c.HueBridgeIP = value
	case "HUE_CREDENTIALS_FILE":
		c.HueCredentialsFile = value

	// Polling
	case "POLL_INTERVAL_MS":
		interval, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid POLL_INTERVAL_MS %q: %w", value, err)
		}
		if interval <= 0 {
			return fmt.Errorf("POLL_INTERVAL_MS must be positive, got %d", interval)
		}
		c.PollIntervalMS = interval

	// Audio
	case "SAMPLE_RATE":
		rate, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid SAMPLE_RATE %q: %w", value, err)
		}
		if rate <= 0 {
			return fmt.Errorf("SAMPLE_RATE must be positive, got %d", rate)
		}
		c.SampleRate = rate
	case "BUFFER_SIZE":
		size, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid BUFFER_SIZE %q: %w", value, err)
		}
		if size <= 0 {
			return fmt.Errorf("BUFFER_SIZE must be positive, got %d", size)
		}
		c.BufferSize = size
	case "MASTER_VOLUME":
		vol, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid MASTER_VOLUME %q: %w", value, err)
		}
		if vol < 0 || vol > 1 {
			return fmt.Errorf("MASTER_VOLUME must be 0.0-1.0, got %g", vol)
		}
		c.MasterVolume = vol
	case "BASE_FREQUENCY":
		freq, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid BASE_FREQUENCY %q: %w", value, err)
		}
		if freq <= 0 {
			return fmt.Errorf("BASE_FREQUENCY must be positive, got %g", freq)
		}
		c.BaseFrequency = freq

	// Web Server
	case "WEB_SERVER_PORT":
		port, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid WEB_SERVER_PORT %q: %w", value, err)
		}
		c.WebServerPort = port

	// Logging
	case "LOG_FILE":
		c.LogFile = value

	default:
		return fmt.Errorf("unknown config key: %q", key)
	}

	return nil
}

// validate checks that all required fields are set.
func (c *Config) validate() error {
	if c.MQTTBroker == "" {
		return fmt.Errorf("MQTT_BROKER is required")
	}
	if c.TopicParams == "" || c.TopicEnv == "" || c.TopicMotion == "" || c.TopicButton == "" || c.TopicStatus == "" {
		return fmt.Errorf("all TOPIC_* keys are required")
	}
	if c.HueCredentialsFile == "" {
		return fmt.Errorf("HUE_CREDENTIALS_FILE is required")
	}
	if c.PollIntervalMS == 0 {
		return fmt.Errorf("POLL_INTERVAL_MS is required")
	}
	if c.SampleRate == 0 {
		return fmt.Errorf("SAMPLE_RATE is required")
	}
	if c.BufferSize == 0 {
		return fmt.Errorf("BUFFER_SIZE is required")
	}
	return nil
}

// InitGlobal initializes the global configuration from file. A missing file
// is not an error: the compiled-in defaults are used instead, matching the
// behavior of running without a config file at all.
// Uses sync.Once to ensure this only runs once, even if called multiple times.
func InitGlobal(configPath string) error {
	var err error
	configOnce.Do(func() {
		configMu.Lock()
		defer configMu.Unlock()
		if _, statErr := os.Stat(configPath); os.IsNotExist(statErr) {
			globalConfig = Default()
			return
		}
		globalConfig, err = Load(configPath)
	})
	return err
}

// Get returns the global configuration instance.
// InitGlobal must be called first, or this will return nil.
func Get() *Config {
	configMu.RLock()
	defer configMu.RUnlock()
	return globalConfig
}
