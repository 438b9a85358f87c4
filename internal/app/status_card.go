// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/relabs-tech/hue_composer/internal/music"
)

const (
	cardWidth  = 320
	cardHeight = 180
	lineHeight = 13
)

// renderStatusCard draws a compact summary of one status frame, sized for
// small external displays.
func renderStatusCard(frame StatusFrame) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, cardWidth, cardHeight))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.RGBA{16, 16, 24, 255}}, image.Point{}, draw.Src)

	drawer := &font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{color.RGBA{220, 220, 230, 255}},
		Face: basicfont.Face7x13,
	}

	y := lineHeight
	line := func(s string) {
		drawer.Dot = fixed.P(4, y)
		drawer.DrawString(s)
		y += lineHeight
	}

	bridge := frame.BridgeIP
	if bridge == "" {
		bridge = "mock"
	}
	line("HUE COMPOSER")
	line(fmt.Sprintf("Bridge: %s  polls: %d", bridge, frame.PollCount))
	line(fmt.Sprintf("BPM: %.0f  beat: %.1f  scale: %s", frame.BPM, frame.Beat, frame.Scale))
	line(fmt.Sprintf("Drone: %s", noteList(frame.DroneFrequencies)))
	line(fmt.Sprintf("Arp: %s %s", frame.ArpPattern, noteList(frame.ArpNotes)))

	if len(frame.Voices) == 0 {
		line("Melody: -")
	} else {
		for _, v := range frame.Voices {
			if y > cardHeight-lineHeight {
				break
			}
			line(fmt.Sprintf("Melody: %s %s", trunc(v.Name, 14), music.NoteName(v.Frequency)))
		}
	}

	playing := 0
	for _, p := range frame.Params {
		if p.Playing {
			playing++
		}
	}
	if y <= cardHeight-lineHeight {
		line(fmt.Sprintf("Lights: %d/%d playing  batt: %.0f%%", playing, len(frame.Params), frame.AvgBattery))
	}

	return img
}
