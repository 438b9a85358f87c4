package hue

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterWaitsForLinkButton(t *testing.T) {
	old := linkRetryInterval
	linkRetryInterval = time.Millisecond
	defer func() { linkRetryInterval = old }()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api", r.URL.Path)

		// Button "pressed" on the third attempt
		if calls.Add(1) < 3 {
			w.Write([]byte(`[{"error":{"type":101,"description":"link button not pressed"}}]`))
			return
		}
		w.Write([]byte(`[{"success":{"username":"newuser123"}}]`))
	}))
	defer srv.Close()

	ip := strings.TrimPrefix(srv.URL, "http://")
	username, err := Register(context.Background(), srv.Client(), ip, "hue_composer#test")
	require.NoError(t, err)
	assert.Equal(t, "newuser123", username)
	assert.Equal(t, int32(3), calls.Load())
}

func TestRegisterOtherBridgeErrorIsFatal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"error":{"type":7,"description":"invalid value"}}]`))
	}))
	defer srv.Close()

	ip := strings.TrimPrefix(srv.URL, "http://")
	_, err := Register(context.Background(), srv.Client(), ip, "hue_composer#test")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid value")
}

func TestRegisterContextCancel(t *testing.T) {
	old := linkRetryInterval
	linkRetryInterval = time.Hour // force the wait path
	defer func() { linkRetryInterval = old }()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"error":{"type":101,"description":"link button not pressed"}}]`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	ip := strings.TrimPrefix(srv.URL, "http://")
	_, err := Register(ctx, srv.Client(), ip, "hue_composer#test")
	require.ErrorIs(t, err, context.Canceled)
}
