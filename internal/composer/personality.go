package composer

import "strings"

// LampPersonality is the musical character derived from a lamp's hardware
// metadata. Different Hue product families get different timbres so a room
// full of mixed fixtures sounds like an ensemble rather than an organ.
type LampPersonality struct {
	LightID   int    `json:"light_id"`
	Name      string `json:"name"`
	ModelID   string `json:"model_id"`
	LightType string `json:"light_type"`
	UniqueID  string `json:"unique_id"`

	Waveform     string  `json:"waveform"`      // sine, saw, triangle, square, warm, bell, pad
	OctaveOffset int     `json:"octave_offset"` // -2 to +2
	Richness     float64 `json:"richness"`      // 0-1, harmonic content
	Attack       float64 `json:"attack"`
	Character    string  `json:"character"`    // warm, bright, deep, sparkle, soft, airy, neutral
	ProductType  string  `json:"product_type"` // bulb, strip, bar, spot, bloom, outdoor, plug, floor
}

// NewLampPersonality derives a personality from lamp metadata.
func NewLampPersonality(lightID int, name, modelID, lightType, uniqueID string) LampPersonality {
	p := LampPersonality{
		LightID:     lightID,
		Name:        name,
		ModelID:     modelID,
		LightType:   lightType,
		UniqueID:    uniqueID,
		Waveform:    "sine",
		Richness:    0.5,
		Attack:      0.1,
		Character:   "neutral",
		ProductType: "bulb",
	}

	model := strings.ToUpper(modelID)
	typeLower := strings.ToLower(lightType)

	switch {
	// LCT series: original color bulbs - rich, warm, full sound
	// (includes LCT024, the Signe floor lamp)
	case strings.HasPrefix(model, "LCT"):
		p.Waveform, p.Richness, p.Character, p.ProductType = "warm", 0.7, "warm", "bulb"

	// LCA series: newer color bulbs - similar but slightly brighter
	case strings.HasPrefix(model, "LCA"):
		p.Waveform, p.Richness, p.Character, p.ProductType = "warm", 0.75, "bright", "bulb"

	// LST series: lightstrips - sparkly, spread, ambient
	case strings.HasPrefix(model, "LST"):
		p.Waveform, p.Richness, p.Character, p.ProductType = "saw", 0.8, "sparkle", "strip"
		// Gradient strips are extra shimmery
		if model == "LST003" || model == "LST004" {
			p.Richness = 0.9
		}

	// LWB series: white only - pure, simple, clean
	case strings.HasPrefix(model, "LWB"):
		p.Waveform, p.Richness, p.Character, p.ProductType = "sine", 0.25, "neutral", "bulb"

	// LWA series: newer white
	case strings.HasPrefix(model, "LWA"):
		p.Waveform, p.Richness, p.Character, p.ProductType = "sine", 0.3, "soft", "bulb"

	// LTW/LTA series: adjustable white temperature - soft, warm
	case strings.HasPrefix(model, "LTW"), strings.HasPrefix(model, "LTA"):
		p.Waveform, p.Richness, p.Character, p.ProductType = "triangle", 0.5, "warm", "bulb"

	// LCG series: GU10 spots - focused, bright
	case strings.HasPrefix(model, "LCG"):
		p.Waveform, p.Richness, p.Character, p.ProductType = "triangle", 0.6, "bright", "spot"

	// LCF series: Fuzo outdoor spot - deep, focused
	case strings.HasPrefix(model, "LCF"):
		p.Waveform, p.Richness, p.Character, p.ProductType = "triangle", 0.55, "deep", "spot"

	// LCX series: play bars - modern, punchy, rhythmic
	case strings.HasPrefix(model, "LCX"):
		p.Waveform, p.Richness, p.Character, p.ProductType = "square", 0.65, "deep", "bar"

	// LLC series: Bloom, Iris, Friends of Hue
	case strings.HasPrefix(model, "LLC"):
		p.Waveform, p.Richness, p.Character, p.ProductType = "bell", 0.7, "airy", "bloom"
		// Iris is more ethereal
		if model == "LLC010" {
			p.Richness, p.Character = 0.8, "sparkle"
		}

	// LCL series: outdoor lights - deep, atmospheric
	case strings.HasPrefix(model, "LCL"):
		p.Waveform, p.Richness, p.Character, p.ProductType = "pad", 0.5, "deep", "outdoor"

	// LCS series: outdoor strip - spread, ambient
	case strings.HasPrefix(model, "LCS"):
		p.Waveform, p.Richness, p.Character, p.ProductType = "saw", 0.6, "sparkle", "outdoor"

	// LWO series: white outdoor
	case strings.HasPrefix(model, "LWO"):
		p.Waveform, p.Richness, p.Character, p.ProductType = "sine", 0.35, "soft", "outdoor"

	// LOM series: smart plugs - percussive, on/off
	case strings.HasPrefix(model, "LOM"):
		p.Waveform, p.Richness, p.Character, p.ProductType = "square", 0.2, "neutral", "plug"

	// Fallbacks from the light type string
	case strings.Contains(typeLower, "outdoor"):
		p.Waveform, p.Richness, p.Character, p.ProductType = "pad", 0.4, "deep", "outdoor"
	case strings.Contains(typeLower, "color"):
		p.Waveform, p.Richness, p.Character = "warm", 0.6, "warm"
	}

	// Light ID -> octave spread (keep voices separated)
	p.OctaveOffset = (lightID % 5) - 2

	// Unique ID hash gives subtle per-lamp variation
	if uniqueID != "" {
		hash := 0
		for _, c := range uniqueID {
			hash += int(c)
		}
		p.Attack = 0.05 + float64(hash%10)*0.02
		p.Richness += float64(hash%20-10) * 0.01
	}

	// Light type modifiers
	if strings.Contains(lightType, "Extended color") {
		p.Richness = clamp(p.Richness+0.15, 0, 1)
	} else if strings.Contains(lightType, "Dimmable") {
		if p.Richness -= 0.1; p.Richness < 0.15 {
			p.Richness = 0.15
		}
	}

	return p
}

// SensorPersonality is the musical character derived from a sensor's
// metadata. The sensor ID seeds the melody so a given sensor always plays
// the same way.
type SensorPersonality struct {
	SensorID int    `json:"sensor_id"`
	Name     string `json:"name"`
	Model    string `json:"model"`
	Battery  int    `json:"battery"`

	MelodySeed     int     `json:"melody_seed"`
	InstrumentType string  `json:"instrument_type"` // sine, bell, pluck, pad, chime, mallet, string
	Nervousness    float64 `json:"nervousness"`     // 0-1, affects speed/variation
	PatternType    string  `json:"pattern_type"`    // walk, up, down, zigzag, jump, repeat, chord, trill
	SensorCategory string  `json:"sensor_category"` // motion, switch, button, temp, light, daylight
}

var melodyPatterns = []string{"walk", "up", "down", "zigzag", "jump", "repeat", "chord", "trill"}

// NewSensorPersonality derives a personality from sensor metadata. battery
// should be 100 when the sensor reports none.
func NewSensorPersonality(sensorID int, name, model string, battery int) SensorPersonality {
	p := SensorPersonality{
		SensorID:       sensorID,
		Name:           name,
		Model:          model,
		Battery:        battery,
		MelodySeed:     sensorID,
		InstrumentType: "sine",
		SensorCategory: "motion",
	}

	m := strings.ToUpper(model)
	switch {
	// SML001: indoor motion sensor - soft, atmospheric pad
	case strings.Contains(m, "SML001"):
		p.InstrumentType, p.SensorCategory = "pad", "motion"
	// SML002: outdoor motion sensor - bell-like, alerting
	case strings.Contains(m, "SML002"):
		p.InstrumentType, p.SensorCategory = "bell", "motion"
	case strings.Contains(m, "SML003"):
		p.InstrumentType, p.SensorCategory = "pad", "motion"
	// SML004: motion sensor lite
	case strings.Contains(m, "SML004"):
		p.InstrumentType, p.SensorCategory = "chime", "motion"
	// RWL02x: dimmer switches - plucky, responsive
	case strings.HasPrefix(m, "RWL"):
		p.InstrumentType, p.SensorCategory = "pluck", "switch"
	// ROM001: smart button - single hit, mallet sound
	case strings.Contains(m, "ROM001"):
		p.InstrumentType, p.SensorCategory = "mallet", "button"
	// Hue Tap: 4 buttons, no battery - percussive
	case strings.Contains(m, "ZGPSWITCH"):
		p.InstrumentType, p.SensorCategory = "pluck", "button"
	case strings.Contains(m, "TEMPERATURE"):
		p.InstrumentType, p.SensorCategory = "string", "temp"
	case strings.Contains(m, "LIGHTLEVEL"):
		p.InstrumentType, p.SensorCategory = "chime", "light"
	case strings.Contains(m, "DAYLIGHT"):
		p.InstrumentType, p.SensorCategory = "pad", "daylight"
	case strings.Contains(m, "PRESENCE"):
		p.InstrumentType, p.SensorCategory = "pad", "motion"
	}

	// Battery -> nervousness: a dying sensor plays more erratically.
	switch {
	case p.SensorCategory == "button":
		// Tap switches have no battery
		p.Nervousness = 0.1
	case battery <= 10:
		p.Nervousness = 1.0
	case battery <= 20:
		p.Nervousness = 0.8
	case battery <= 35:
		p.Nervousness = 0.5
	case battery <= 50:
		p.Nervousness = 0.3
	default:
		p.Nervousness = 0.1
	}

	// Sensor ID -> movement pattern (consistent per sensor)
	p.PatternType = melodyPatterns[sensorID%len(melodyPatterns)]
	switch p.SensorCategory {
	case "button":
		// Buttons are more rhythmic
		p.PatternType = []string{"chord", "jump", "trill"}[sensorID%3]
	case "temp":
		// Temperature changes slowly
		p.PatternType = []string{"walk", "up", "down"}[sensorID%3]
	}

	return p
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
