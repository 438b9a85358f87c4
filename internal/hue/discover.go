package hue

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// discoveryURL is the Philips cloud discovery endpoint. Overridable in tests.
var discoveryURL = "https://discovery.meethue.com"

// commonBridgeIPs are probed when cloud discovery is unavailable.
var commonBridgeIPs = []string{
	"192.168.1.1", "192.168.0.1",
	"192.168.1.2", "192.168.0.2",
	"10.0.0.1", "10.0.0.2",
}

// Discover locates a Hue bridge on the network. It first asks the Philips
// discovery endpoint (requires internet), then probes common local addresses
// for a bridge answering /api/config.
func Discover(ctx context.Context, client *http.Client) (string, error) {
	if client == nil {
		client = http.DefaultClient
	}
	log.Println("searching for Hue bridge")

	if ip, err := discoverViaCloud(ctx, client); err == nil && ip != "" {
		log.Printf("found bridge via Philips discovery: %s", ip)
		return ip, nil
	}

	for _, ip := range commonBridgeIPs {
		if probeBridge(ctx, client, ip) {
			log.Printf("found bridge at: %s", ip)
			return ip, nil
		}
	}

	return "", fmt.Errorf("could not auto-discover bridge")
}

func discoverViaCloud(ctx context.Context, client *http.Client) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, discoveryURL, nil)
	if err != nil {
		return "", err
	}
	res, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code %d", res.StatusCode)
	}

	var bridges []struct {
		InternalIPAddress string `json:"internalipaddress"`
	}
	if err := json.NewDecoder(res.Body).Decode(&bridges); err != nil {
		return "", err
	}
	if len(bridges) == 0 {
		return "", fmt.Errorf("no bridges registered")
	}
	return bridges[0].InternalIPAddress, nil
}

// probeBridge checks whether a plain HTTP endpoint at ip answers like a Hue
// bridge. /api/config is the only unauthenticated resource.
func probeBridge(ctx context.Context, client *http.Client, ip string) bool {
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://"+ip+"/api/config", nil)
	if err != nil {
		return false
	}
	res, err := client.Do(req)
	if err != nil {
		return false
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, 4096))
	if err != nil {
		return false
	}
	return strings.Contains(strings.ToLower(string(body)), "bridgeid")
}
