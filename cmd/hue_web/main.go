// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package main

import (
	"log"

	"github.com/relabs-tech/hue_composer/internal/app"
	"github.com/relabs-tech/hue_composer/internal/cli"
	"github.com/relabs-tech/hue_composer/internal/config"
)

func main() {
	log.Println("starting hue-composer web monitor (MQTT subscriber)")

	// Load configuration
	if err := config.InitGlobal(cli.DefaultConfigPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	log.Println("Note: the live view needs the generator to be running (hue_composer run)")

	if err := app.RunWeb(); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}
