package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderWAV(t *testing.T) {
	e := NewSeeded(8000, 256, 0.7, 42)
	e.Update(testParams())

	path := filepath.Join(t.TempDir(), "out.wav")

	var chunkCalls int
	err := e.RenderWAV(path, 0.5, func(elapsed float64) {
		chunkCalls++
		assert.GreaterOrEqual(t, elapsed, 0.0)
		assert.Less(t, elapsed, 0.5)
	})
	require.NoError(t, err)
	assert.Greater(t, chunkCalls, 1, "callback fires once per buffer")

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	dec := wav.NewDecoder(f)
	dec.ReadInfo()
	require.True(t, dec.IsValidFile())
	assert.Equal(t, uint32(8000), dec.SampleRate)
	assert.Equal(t, uint16(1), dec.NumChans)
	assert.Equal(t, uint16(16), dec.BitDepth)

	dur, err := dec.Duration()
	require.NoError(t, err)
	assert.InDelta(t, 0.5, dur.Seconds(), 0.01)
}

func TestRenderWAVRejectsBadDuration(t *testing.T) {
	e := NewSeeded(8000, 256, 0.7, 1)
	err := e.RenderWAV(filepath.Join(t.TempDir(), "out.wav"), 0, nil)
	require.Error(t, err)
}
