package hue

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"
)

// linkButtonErrorType is the bridge error code meaning the link button has
// not been pressed yet.
const linkButtonErrorType = 101

// linkRetryInterval is how long to wait between registration attempts.
var linkRetryInterval = time.Second

// registerAttempts bounds the link-button wait to roughly 30 seconds.
const registerAttempts = 30

type registerResult struct {
	Success struct {
		Username string `json:"username"`
	} `json:"success"`
	Error struct {
		Type        int    `json:"type"`
		Description string `json:"description"`
	} `json:"error"`
}

// Register creates a new API username on the bridge. The bridge requires its
// physical link button to be pressed; Register polls for up to 30 seconds
// waiting for that to happen.
func Register(ctx context.Context, client *http.Client, ip, deviceType string) (string, error) {
	if client == nil {
		client = http.DefaultClient
	}

	log.Printf("found Hue bridge at %s", ip)
	log.Println(">>> press the button on your Hue bridge <<<")

	for attempt := 0; attempt < registerAttempts; attempt++ {
		username, pressErr, err := tryRegister(ctx, client, ip, deviceType)
		if err != nil {
			return "", err
		}
		if username != "" {
			return username, nil
		}
		_ = pressErr // link button not pressed yet; keep waiting

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(linkRetryInterval):
		}
	}

	return "", fmt.Errorf("timeout: bridge button was not pressed")
}

// tryRegister performs a single registration attempt. It returns the new
// username on success, a non-nil pressErr when the link button has not been
// pressed, and err for everything else.
func tryRegister(ctx context.Context, client *http.Client, ip, deviceType string) (username string, pressErr, err error) {
	payload, err := json.Marshal(map[string]string{"devicetype": deviceType})
	if err != nil {
		return "", nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "http://"+ip+"/api", bytes.NewReader(payload))
	if err != nil {
		return "", nil, err
	}
	res, err := client.Do(req)
	if err != nil {
		return "", nil, err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return "", nil, fmt.Errorf("unexpected status code %d", res.StatusCode)
	}

	var results []registerResult
	if err := json.NewDecoder(res.Body).Decode(&results); err != nil {
		return "", nil, fmt.Errorf("decode registration response: %w", err)
	}
	if len(results) == 0 {
		return "", nil, fmt.Errorf("empty registration response")
	}

	r := results[0]
	if r.Success.Username != "" {
		return r.Success.Username, nil, nil
	}
	if r.Error.Type == linkButtonErrorType {
		return "", fmt.Errorf("link button not pressed"), nil
	}
	return "", nil, fmt.Errorf("bridge error %d: %s", r.Error.Type, r.Error.Description)
}
