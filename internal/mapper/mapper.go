// Package mapper converts Hue lamp and sensor states into musical
// parameters.
package mapper

import (
	"math"

	"github.com/relabs-tech/hue_composer/internal/hue"
	"github.com/relabs-tech/hue_composer/internal/music"
)

// MusicParams are the musical parameters derived from one lamp.
type MusicParams struct {
	Frequency float64 `json:"frequency"` // Hz
	Amplitude float64 `json:"amplitude"` // 0.0-1.0
	Playing   bool    `json:"playing"`
	Scale     string  `json:"scale"`  // major/minor/pentatonic
	Reverb    float64 `json:"reverb"` // 0.0-1.0
	LightName string  `json:"light_name"`

	// Lamp metadata carried through for the personality system
	LightID   int    `json:"light_id"`
	ModelID   string `json:"model_id,omitempty"`
	LightType string `json:"light_type,omitempty"`
	UniqueID  string `json:"unique_id,omitempty"`
}

// EnvironmentState is the combined musical environment from all sensors.
type EnvironmentState struct {
	FilterCutoff  float64 `json:"filter_cutoff"`  // 0.0-1.0, dark rooms muffle the mix
	TempoModifier float64 `json:"tempo_modifier"` // 0.9-1.1
	IsDaytime     bool    `json:"is_daytime"`
	ReverbBoost   float64 `json:"reverb_boost"` // extra reverb at night
}

// HueToSemitone converts a Hue color value (0-65535) to a semitone offset
// (0-11).
func HueToSemitone(hueValue int) int {
	return int(float64(hueValue)/65535*12) % 12
}

// SaturationToScale picks a scale from color saturation: saturated colors
// sound major (bright), washed-out colors minor (melancholic).
func SaturationToScale(saturation int) string {
	switch {
	case saturation > 200:
		return "major"
	case saturation > 100:
		return "pentatonic"
	default:
		return "minor"
	}
}

// BrightnessToAmplitude converts brightness (0-254) to amplitude (0.0-0.6).
// The curve is sub-linear for a more natural volume response; 0.6 caps the
// contribution of a single voice.
func BrightnessToAmplitude(brightness int) float64 {
	normalized := float64(brightness) / 254
	return math.Pow(normalized, 0.7) * 0.6
}

// LightLevelToCutoff converts a light level reading (0-65535, log scale) to
// a filter cutoff. Dark is muffled, bright is open.
func LightLevelToCutoff(lightLevel int) float64 {
	// Light level is logarithmic: 10000 = ~1 lux, 40000 = ~100 lux
	normalized := math.Min(1.0, math.Max(0.0, float64(lightLevel-5000)/40000))
	return 0.2 + normalized*0.8
}

// TemperatureToTempo converts a temperature (Celsius * 100) to a tempo
// modifier. Cold rooms slow down, warm rooms speed up, subtly: 15-25°C maps
// to 0.9-1.1.
func TemperatureToTempo(temperature int) float64 {
	celsius := float64(temperature) / 100
	normalized := (celsius - 15) / 10
	return 0.9 + math.Max(0.0, math.Min(1.0, normalized))*0.2
}

// MapLamp converts one lamp state to musical parameters. octaveOffset shifts
// the note by whole octaves so each lamp plays in its own register. baseFreq
// is the root of the semitone grid (C4 when <= 0). env may be nil.
func MapLamp(lamp hue.LampState, octaveOffset int, baseFreq float64, env *EnvironmentState) MusicParams {
	params := MusicParams{
		Scale:     "major",
		LightName: lamp.Name,
		LightID:   lamp.ID,
		ModelID:   lamp.ModelID,
		LightType: lamp.Type,
		UniqueID:  lamp.UniqueID,
	}
	if !lamp.On || !lamp.Reachable {
		return params
	}

	scale := "pentatonic"
	if lamp.Saturation != nil {
		scale = SaturationToScale(*lamp.Saturation)
	}

	semitone := 0
	if lamp.Hue != nil {
		raw := HueToSemitone(*lamp.Hue)
		semitone = quantizeToScale(raw, music.Scales[scale])
	}
	semitone += octaveOffset * 12

	amplitude := BrightnessToAmplitude(lamp.Brightness)
	if env != nil {
		// A dark room muffles every voice.
		amplitude *= env.FilterCutoff
	}

	// Warm color temperatures get more reverb, cool ones less.
	reverb := 0.3
	if lamp.Hue != nil {
		h := *lamp.Hue
		if h < 10000 || h > 55000 {
			reverb = 0.6
		} else if h > 35000 && h < 50000 {
			reverb = 0.1
		}
	}
	if env != nil {
		reverb = math.Min(1.0, reverb+env.ReverbBoost)
	}

	if baseFreq <= 0 {
		baseFreq = music.BaseFrequency
	}
	params.Frequency = music.SemitoneToFrequency(semitone, baseFreq)
	params.Amplitude = amplitude
	params.Playing = true
	params.Scale = scale
	params.Reverb = reverb
	return params
}

// quantizeToScale snaps a raw semitone to the nearest degree of the scale.
func quantizeToScale(semitone int, scale []int) int {
	if len(scale) == 0 {
		return semitone
	}
	best := scale[0]
	for _, s := range scale[1:] {
		if abs(s-semitone) < abs(best-semitone) {
			best = s
		}
	}
	return best
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// octavePattern spreads lamps across five octaves so the arrangement stays
// layered instead of clustered.
var octavePattern = []int{-2, -1, 0, 1, 2}

// MapLamps maps all lamps to music, assigning each a register from the
// octave pattern by index.
func MapLamps(lamps []hue.LampState, baseFreq float64, env *EnvironmentState) []MusicParams {
	params := make([]MusicParams, 0, len(lamps))
	for i, lamp := range lamps {
		octave := octavePattern[i%len(octavePattern)]
		params = append(params, MapLamp(lamp, octave, baseFreq, env))
	}
	return params
}

// MapSensors combines all sensor readings into one environment state.
// Light levels and temperatures are averaged; the first daylight sensor
// found decides day/night.
func MapSensors(sensors []hue.SensorState) EnvironmentState {
	env := EnvironmentState{
		FilterCutoff:  1.0,
		TempoModifier: 1.0,
		IsDaytime:     true,
	}

	var cutoffs, tempos []float64
	var isDay *bool

	for i, s := range sensors {
		if s.LightLevel != nil {
			cutoffs = append(cutoffs, LightLevelToCutoff(*s.LightLevel))
		}
		if s.Temperature != nil {
			tempos = append(tempos, TemperatureToTempo(*s.Temperature))
		}
		if s.IsDaylight != nil && isDay == nil {
			isDay = sensors[i].IsDaylight
		}
	}

	if len(cutoffs) > 0 {
		env.FilterCutoff = mean(cutoffs)
	}
	if len(tempos) > 0 {
		env.TempoModifier = mean(tempos)
	}
	if isDay != nil {
		env.IsDaytime = *isDay
		if !*isDay {
			env.ReverbBoost = 0.2
		}
	}

	return env
}

func mean(vals []float64) float64 {
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}
