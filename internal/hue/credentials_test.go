package hue

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".hue_config.json")

	creds := &Credentials{BridgeIP: "192.168.1.42", Username: "abc123"}
	require.NoError(t, SaveCredentials(path, creds))

	loaded, err := LoadCredentials(path)
	require.NoError(t, err)
	assert.Equal(t, creds, loaded)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestLoadCredentialsMissingFile(t *testing.T) {
	_, err := LoadCredentials(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}

func TestLoadCredentialsIncomplete(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".hue_config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"bridge_ip":"192.168.1.42"}`), 0600))

	_, err := LoadCredentials(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "incomplete")
}
