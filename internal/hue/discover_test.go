package hue

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscoverViaCloud(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"0017880102","internalipaddress":"192.168.1.42"}]`))
	}))
	defer srv.Close()

	old := discoveryURL
	discoveryURL = srv.URL
	defer func() { discoveryURL = old }()

	ip, err := Discover(context.Background(), srv.Client())
	require.NoError(t, err)
	assert.Equal(t, "192.168.1.42", ip)
}

func TestDiscoverNothingFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	old := discoveryURL
	discoveryURL = srv.URL
	defer func() { discoveryURL = old }()

	// Canceled context keeps the local probes from waiting on real hosts.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Discover(ctx, srv.Client())
	require.Error(t, err)
}

func TestProbeBridge(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/config", r.URL.Path)
		w.Write([]byte(`{"name":"Philips hue","bridgeid":"0017880102"}`))
	}))
	defer srv.Close()

	ip := srv.Listener.Addr().String()
	assert.True(t, probeBridge(context.Background(), srv.Client(), ip))
}
