// Package assetstest builds audio fixtures for tests.
package assetstest

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WAV returns a 16-bit PCM file holding frames of a quiet sine tone.
func WAV(tb testing.TB, sampleRate, channels, frames int) []byte {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), "fixture.wav")
	f, err := os.Create(path)
	if err != nil {
		tb.Fatalf("create fixture: %v", err)
	}

	data := make([]int, frames*channels)
	for i := 0; i < frames; i++ {
		v := int(math.Sin(2*math.Pi*440*float64(i)/float64(sampleRate)) * 8000)
		for c := 0; c < channels; c++ {
			data[i*channels+c] = v
		}
	}

	enc := wav.NewEncoder(f, sampleRate, 16, channels, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		tb.Fatalf("encode fixture: %v", err)
	}
	if err := enc.Close(); err != nil {
		tb.Fatalf("finish fixture: %v", err)
	}
	if err := f.Close(); err != nil {
		tb.Fatalf("close fixture: %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		tb.Fatalf("read fixture: %v", err)
	}
	return b
}
