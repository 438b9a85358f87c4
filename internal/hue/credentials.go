package hue

import (
	"encoding/json"
	"fmt"
	"os"
)

// Credentials are the saved pairing between this program and a bridge. They
// live in a small gitignored JSON file next to the binary so that the
// link-button dance only ever happens once.
type Credentials struct {
	BridgeIP string `json:"bridge_ip"`
	Username string `json:"username"`
}

// LoadCredentials reads saved credentials from path.
func LoadCredentials(path string) (*Credentials, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials: %w", err)
	}
	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("failed to parse credentials: %w", err)
	}
	if creds.BridgeIP == "" || creds.Username == "" {
		return nil, fmt.Errorf("credentials file %s is incomplete", path)
	}
	return &creds, nil
}

// SaveCredentials writes credentials to path, creating or replacing the file.
func SaveCredentials(path string, creds *Credentials) error {
	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write credentials: %w", err)
	}
	return nil
}
