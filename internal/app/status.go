package app

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/relabs-tech/hue_composer/internal/composer"
	"github.com/relabs-tech/hue_composer/internal/music"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("13"))
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	activeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// printDashboard redraws the live status screen from one frame. On a real
// terminal the screen is cleared first so the dashboard repaints in place;
// redirected output gets plain appended lines instead.
func printDashboard(frame StatusFrame) {
	if isatty.IsTerminal(os.Stdout.Fd()) {
		fmt.Print("\033[H\033[J")
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("HUE AMBIENT COMPOSER") + "\n")

	// Connection
	bridge := frame.BridgeIP
	if bridge == "" {
		bridge = "mock (demo)"
	}
	b.WriteString(sectionStyle.Render("CONNECTION") + "\n")
	fmt.Fprintf(&b, "  Bridge: %-20s Last poll: %-10s Polls: %d\n",
		bridge, frame.LastPoll, frame.PollCount)

	// Lights -> drone voices
	b.WriteString(sectionStyle.Render("LIGHTS → DRONE VOICES") + "\n")
	fmt.Fprintf(&b, "  %-16s %-9s %-9s %-9s %-6s %-5s %s\n",
		"Name", "Model", "Wave", "Char", "Note", "Vol", "Scale")
	persByID := map[int]composer.LampPersonality{}
	for _, p := range frame.LampPersonalities {
		persByID[p.LightID] = p
	}
	for _, p := range frame.Params {
		if !p.Playing {
			fmt.Fprintf(&b, "  %s\n", dimStyle.Render(fmt.Sprintf(
				"%-16s %-9s %-9s %-9s %-6s %-5s %s",
				trunc(p.LightName, 16), p.ModelID, "-", "-", "-", "-", "-")))
			continue
		}
		pers := persByID[p.LightID]
		fmt.Fprintf(&b, "  %-16s %-9s %-9s %-9s %-6s %.2f  %s\n",
			trunc(p.LightName, 16), p.ModelID, pers.Waveform, pers.Character,
			music.NoteName(p.Frequency), p.Amplitude, p.Scale)
	}

	// Motion sensors -> melody voices
	b.WriteString(sectionStyle.Render("MOTION SENSORS → MELODY VOICES") + "\n")
	if len(frame.SensorPersonalities) == 0 {
		b.WriteString(dimStyle.Render("  (no motion sensors)") + "\n")
	} else {
		fmt.Fprintf(&b, "  %-16s %-4s %-8s %-5s %-6s %-10s %s\n",
			"Name", "ID", "Pattern", "Bat", "Nerv", "Category", "Sound")
		for _, p := range frame.SensorPersonalities {
			fmt.Fprintf(&b, "  %-16s %-4d %-8s %3d%%  %-6s %-10s %s\n",
				trunc(p.Name, 16), p.SensorID, p.PatternType, p.Battery,
				nervBar(p.Nervousness), p.SensorCategory, p.InstrumentType)
		}
	}

	// Environment sensors -> music feel
	b.WriteString(sectionStyle.Render("ENVIRONMENT → MUSIC FEEL") + "\n")
	fmt.Fprintf(&b, "  Tempo: %.0f BPM (x%.2f)   Filter: %s   Battery avg: %.0f%% → nervousness %.0f%%\n",
		frame.BPM, frame.Env.TempoModifier, cutoffLabel(frame.Env.FilterCutoff),
		frame.AvgBattery, frame.AvgNervousness*100)
	mode := "night mode (extra reverb)"
	if frame.Env.IsDaytime {
		mode = "day mode"
	}
	fmt.Fprintf(&b, "  Daylight: %v → %s\n", frame.Env.IsDaytime, mode)

	// Current output
	b.WriteString(sectionStyle.Render("CURRENT OUTPUT") + "\n")
	fmt.Fprintf(&b, "  DRONE:  %s\n", noteList(frame.DroneFrequencies))
	fmt.Fprintf(&b, "  ARP:    pattern=%s notes=%s\n", frame.ArpPattern, noteList(frame.ArpNotes))
	if len(frame.Voices) == 0 {
		b.WriteString(dimStyle.Render("  MELODY: (waiting for trigger)") + "\n")
	} else {
		var parts []string
		for _, v := range frame.Voices {
			parts = append(parts, fmt.Sprintf("%s:%s(%.0f%%)",
				trunc(v.Name, 10), music.NoteName(v.Frequency), v.Envelope*100))
		}
		fmt.Fprintf(&b, "  MELODY: %s\n", activeStyle.Render(strings.Join(parts, "  ")))
	}
	fmt.Fprintf(&b, "  BPM: %.0f  |  Beat: %.1f  |  Scale: %s\n", frame.BPM, frame.Beat, frame.Scale)

	// Live triggers
	active, total := 0, 0
	for _, s := range frame.Sensors {
		if s.Presence != nil {
			total++
			if *s.Presence {
				active++
			}
		}
	}
	b.WriteString(sectionStyle.Render("LIVE TRIGGERS") + "\n")
	fmt.Fprintf(&b, "  Motion: %d/%d active → melody note + kick\n", active, total)
	b.WriteString("  Button: press dimmer → changes arp pattern\n")
	b.WriteString(dimStyle.Render("[Ctrl+C to stop]") + "\n")

	fmt.Print(b.String())
}

// trunc shortens s to at most n characters. Names are user-assigned and can
// contain multi-byte runes, so it counts characters, not bytes.
func trunc(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-1]) + "…"
}

func nervBar(nervousness float64) string {
	filled := int(nervousness*5 + 0.5)
	return strings.Repeat("▊", filled) + strings.Repeat("·", 5-filled)
}

func cutoffLabel(cutoff float64) string {
	switch {
	case cutoff < 0.4:
		return fmt.Sprintf("muffled (%.2f)", cutoff)
	case cutoff < 0.7:
		return fmt.Sprintf("mellow (%.2f)", cutoff)
	default:
		return fmt.Sprintf("open (%.2f)", cutoff)
	}
}

func noteList(freqs []float64) string {
	if len(freqs) == 0 {
		return "-"
	}
	names := make([]string, len(freqs))
	for i, f := range freqs {
		names[i] = music.NoteName(f)
	}
	return strings.Join(names, ", ")
}
