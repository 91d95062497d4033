package ebitenout

import (
	"bytes"
	"fmt"
	"io"
	"path"
	"strings"
	"sync"

	"github.com/automoto/physsound/materials"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

// Clips resolves a clip reference to its encoded file.
type Clips interface {
	Bytes(clip materials.ClipRef) ([]byte, error)
}

// Loader decodes clips to 16-bit stereo PCM at one sample rate and caches the
// result.
type Loader struct {
	clips      Clips
	sampleRate int

	mu    sync.Mutex
	cache map[materials.ClipRef][]byte
}

func NewLoader(clips Clips, sampleRate int) *Loader {
	return &Loader{
		clips:      clips,
		sampleRate: sampleRate,
		cache:      make(map[materials.ClipRef][]byte),
	}
}

// Preload decodes a clip without creating a player. Call this at startup to
// avoid decode lag on first play.
func (l *Loader) Preload(clip materials.ClipRef) error {
	_, err := l.PCM(clip)
	return err
}

// PCM returns the decoded samples of clip.
func (l *Loader) PCM(clip materials.ClipRef) ([]byte, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if pcm, ok := l.cache[clip]; ok {
		return pcm, nil
	}

	data, err := l.clips.Bytes(clip)
	if err != nil {
		return nil, err
	}

	var stream io.Reader
	ext := strings.ToLower(path.Ext(string(clip)))
	switch ext {
	case ".ogg":
		stream, err = vorbis.DecodeWithSampleRate(l.sampleRate, bytes.NewReader(data))
	case ".wav":
		stream, err = wav.DecodeWithSampleRate(l.sampleRate, bytes.NewReader(data))
	case ".mp3":
		stream, err = mp3.DecodeWithSampleRate(l.sampleRate, bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("unsupported audio format: %s", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", clip, err)
	}

	pcm, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("failed to read decoded audio %s: %w", clip, err)
	}

	l.cache[clip] = pcm
	return pcm, nil
}
