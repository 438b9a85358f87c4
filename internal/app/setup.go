// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/relabs-tech/hue_composer/internal/hue"
)

// registrationDeviceType is the application identity sent to the bridge when
// pairing. The bridge shows it in its whitelist.
const registrationDeviceType = "hue_composer#generator"

// EnsureEnvironment makes sure a usable bridge pairing exists and returns it.
// When credentials are already saved (and match bridgeIP if one is given) it
// does nothing, so running it repeatedly is safe. Otherwise it discovers a
// bridge (unless bridgeIP is set), walks the user through the link-button
// registration and saves the result to credFile. client may be nil for the
// default HTTP client.
func EnsureEnvironment(ctx context.Context, credFile, bridgeIP string, client *http.Client) (*hue.Credentials, error) {
	if creds, err := hue.LoadCredentials(credFile); err == nil {
		if bridgeIP == "" || creds.BridgeIP == bridgeIP {
			return creds, nil
		}
		log.Printf("setup: saved credentials are for bridge %s, re-pairing with %s", creds.BridgeIP, bridgeIP)
	} else if _, statErr := os.Stat(credFile); statErr == nil {
		log.Printf("setup: ignoring unusable credentials file %s: %v", credFile, err)
	}

	ip := bridgeIP
	if ip == "" {
		var err error
		ip, err = hue.Discover(ctx, client)
		if err != nil {
			return nil, fmt.Errorf("no Hue bridge found: %w", err)
		}
		log.Printf("setup: found bridge at %s", ip)
	}

	log.Printf("setup: press the link button on the bridge at %s", ip)
	username, err := hue.Register(ctx, client, ip, registrationDeviceType)
	if err != nil {
		return nil, fmt.Errorf("bridge registration failed: %w", err)
	}

	creds := &hue.Credentials{BridgeIP: ip, Username: username}
	if err := hue.SaveCredentials(credFile, creds); err != nil {
		return nil, err
	}
	log.Printf("setup: registered with bridge, credentials saved to %s", credFile)
	return creds, nil
}
