package app

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/relabs-tech/hue_composer/internal/config"
	"github.com/relabs-tech/hue_composer/internal/hue"
	"github.com/relabs-tech/hue_composer/internal/mapper"
	"github.com/relabs-tech/hue_composer/internal/music"
)

// connectForDebug resolves a collector the same way the generator does but
// never starts a registration dance: missing credentials are an error.
func connectForDebug(mock bool) (hue.Collector, error) {
	if mock {
		return hue.NewMock(), nil
	}
	cfg := config.Get()
	creds, err := hue.LoadCredentials(cfg.HueCredentialsFile)
	if err != nil {
		return nil, fmt.Errorf("no saved pairing (run the generator once first): %w", err)
	}
	return hue.NewBridge(creds.BridgeIP, creds.Username, nil), nil
}

// RunDebugLights prints the lights-to-music mapping table once and exits.
func RunDebugLights(mock bool) error {
	collector, err := connectForDebug(mock)
	if err != nil {
		return err
	}

	ctx := context.Background()
	lamps, err := collector.Lights(ctx)
	if err != nil {
		return fmt.Errorf("lights: %w", err)
	}
	sensors, err := collector.Sensors(ctx)
	if err != nil {
		return fmt.Errorf("sensors: %w", err)
	}

	env := mapper.MapSensors(sensors)
	params := mapper.MapLamps(lamps, config.Get().BaseFrequency, &env)

	fmt.Println("LIGHTS -> MUSIC MAPPING")
	fmt.Printf("%-25s %-5s %-8s %-5s %-10s %-8s %s\n", "Light", "On", "Hue", "Bri", "Freq Hz", "Note", "Vol")

	active := 0
	uniqueFreqs := map[float64]struct{}{}
	for i, p := range params {
		lamp := lamps[i]
		if !p.Playing {
			fmt.Printf("%-25s %-5s %-8s %-5s %-10s %-8s -\n", lamp.Name, "off", "-", "-", "-", "-")
			continue
		}
		active++
		uniqueFreqs[p.Frequency] = struct{}{}

		hueStr := "-"
		if lamp.Hue != nil {
			hueStr = strconv.Itoa(*lamp.Hue)
		}
		fmt.Printf("%-25s %-5s %-8s %-5d %-10.1f %-8s %.2f\n",
			lamp.Name, "ON", hueStr, lamp.Brightness, p.Frequency,
			music.NoteName(p.Frequency), p.Amplitude)
	}

	fmt.Printf("\nActive voices: %d\n", active)
	fmt.Printf("Unique frequencies: %d\n", len(uniqueFreqs))
	return nil
}

// RunDebugSensors dumps the bridge's raw sensor section next to the parsed
// view, for diagnosing mapping gaps on unusual sensor hardware.
func RunDebugSensors(mock bool) error {
	collector, err := connectForDebug(mock)
	if err != nil {
		return err
	}
	ctx := context.Background()

	// Raw dump only exists on the real bridge
	if bridge, ok := collector.(*hue.Bridge); ok {
		raw, err := bridge.RawSensors(ctx)
		if err != nil {
			return fmt.Errorf("raw sensors: %w", err)
		}

		fmt.Println("RAW SENSOR DATA FROM HUE BRIDGE")
		fmt.Printf("\nTotal sensors found: %d\n\n", len(raw))

		ids := make([]string, 0, len(raw))
		for id := range raw {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		for _, id := range ids {
			s := raw[id]
			fmt.Printf("--- Sensor %s: %s ---\n", id, s.Name)
			fmt.Printf("  Type: %s\n", s.Type)
			fmt.Printf("  Model: %s\n", s.ModelID)
			fmt.Printf("  Manufacturer: %s\n", s.Manufacturer)
			fmt.Printf("  State: %s\n", indentJSON(s.State))
			fmt.Printf("  Config: %s\n\n", indentJSON(s.Config))
		}
	}

	parsed, err := collector.Sensors(ctx)
	if err != nil {
		return fmt.Errorf("sensors: %w", err)
	}

	fmt.Println("PARSED SENSORS")
	fmt.Printf("\nParsed sensors: %d\n\n", len(parsed))

	for _, s := range parsed {
		fmt.Printf("--- %s (ID: %d) ---\n", s.Name, s.ID)
		fmt.Printf("  Type: %s\n", s.Type)
		fmt.Printf("  Presence: %s\n", optBool(s.Presence))
		fmt.Printf("  Light level: %s\n", optInt(s.LightLevel))
		fmt.Printf("  Temperature: %s\n", optInt(s.Temperature))
		fmt.Printf("  Daylight: %s\n", optBool(s.IsDaylight))
		fmt.Printf("  Button event: %s\n", optInt(s.ButtonEvent))
		fmt.Printf("  Battery: %s%%\n", optInt(s.Battery))
		fmt.Printf("  Reachable: %v\n\n", s.Reachable)
	}
	return nil
}

func indentJSON(raw json.RawMessage) string {
	if len(raw) == 0 {
		return "{}"
	}
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return string(raw)
	}
	out, err := json.MarshalIndent(v, "  ", "  ")
	if err != nil {
		return string(raw)
	}
	return string(out)
}

func optBool(v *bool) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatBool(*v)
}

func optInt(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}
