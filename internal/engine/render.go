package engine

import (
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// RenderWAV renders seconds of output to a 16-bit mono WAV file. onChunk, if
// non-nil, is called before each buffer with the elapsed time so the caller
// can feed the composer fresh data while rendering (the offline equivalent
// of the poll loop).
func (e *Engine) RenderWAV(path string, seconds float64, onChunk func(elapsed float64)) error {
	if seconds <= 0 {
		return fmt.Errorf("render duration must be positive, got %g", seconds)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	enc := wav.NewEncoder(f, e.sampleRate, 16, 1, 1)

	total := int(seconds * float64(e.sampleRate))
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: e.sampleRate},
		SourceBitDepth: 16,
	}

	for rendered := 0; rendered < total; {
		n := e.bufferSize
		if remaining := total - rendered; remaining < n {
			n = remaining
		}

		if onChunk != nil {
			onChunk(float64(rendered) / float64(e.sampleRate))
		}

		samples := e.Process(n)
		ints := make([]int, n)
		for i, s := range samples {
			ints[i] = int(s * 32767)
		}
		buf.Data = ints

		if err := enc.Write(buf); err != nil {
			return fmt.Errorf("failed to write samples: %w", err)
		}
		rendered += n
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to finalize wav: %w", err)
	}
	return nil
}
