package assets

import (
	"bytes"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"sync"

	"github.com/automoto/physsound/materials"
	gowav "github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
	"github.com/jfreymuth/oggvorbis"
	"go.uber.org/zap"
)

// Format is an audio container format, derived from the clip's extension.
type Format string

const (
	FormatWAV    Format = "wav"
	FormatVorbis Format = "ogg"
	FormatMP3    Format = "mp3"
)

// FormatOf returns the format of clip from its file extension.
func FormatOf(clip materials.ClipRef) (Format, error) {
	switch strings.ToLower(path.Ext(string(clip))) {
	case ".wav":
		return FormatWAV, nil
	case ".ogg":
		return FormatVorbis, nil
	case ".mp3":
		return FormatMP3, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, clip)
	}
}

// ClipInfo describes a clip without decoding all of it.
type ClipInfo struct {
	Format     Format
	SampleRate int
	Channels   int
	Seconds    float64
}

// Catalog resolves clip references to files in fsys and caches their raw
// bytes and metadata.
type Catalog struct {
	fsys fs.FS
	log  *zap.Logger

	mu    sync.Mutex
	data  map[materials.ClipRef][]byte
	infos map[materials.ClipRef]ClipInfo
}

func NewCatalog(fsys fs.FS, log *zap.Logger) *Catalog {
	if log == nil {
		log = zap.NewNop()
	}
	return &Catalog{
		fsys:  fsys,
		log:   log,
		data:  make(map[materials.ClipRef][]byte),
		infos: make(map[materials.ClipRef]ClipInfo),
	}
}

// Bytes returns the raw file contents of clip.
func (c *Catalog) Bytes(clip materials.ClipRef) ([]byte, error) {
	if clip == "" {
		return nil, ErrNoClip
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if b, ok := c.data[clip]; ok {
		return b, nil
	}
	b, err := fs.ReadFile(c.fsys, string(clip))
	if err != nil {
		return nil, fmt.Errorf("failed to read audio file %s: %w", clip, err)
	}
	c.data[clip] = b
	return b, nil
}

// Info probes clip for its format, rate, channel count and length.
func (c *Catalog) Info(clip materials.ClipRef) (ClipInfo, error) {
	c.mu.Lock()
	info, ok := c.infos[clip]
	c.mu.Unlock()
	if ok {
		return info, nil
	}

	format, err := FormatOf(clip)
	if err != nil {
		return ClipInfo{}, err
	}
	data, err := c.Bytes(clip)
	if err != nil {
		return ClipInfo{}, err
	}

	switch format {
	case FormatWAV:
		info, err = probeWAV(data)
	case FormatVorbis:
		info, err = probeVorbis(data)
	case FormatMP3:
		info, err = probeMP3(data)
	}
	if err != nil {
		return ClipInfo{}, fmt.Errorf("failed to probe %s: %w", clip, err)
	}
	info.Format = format

	c.mu.Lock()
	c.infos[clip] = info
	c.mu.Unlock()
	return info, nil
}

// Duration returns the clip length in seconds. It implements
// playback.Durations.
func (c *Catalog) Duration(clip materials.ClipRef) (float64, bool) {
	info, err := c.Info(clip)
	if err != nil {
		c.log.Warn("clip duration unavailable", zap.String("clip", string(clip)), zap.Error(err))
		return 0, false
	}
	return info.Seconds, true
}

// Validate probes every clip a material references and returns the first
// error. Missing slide or impact files are reported, not fatal.
func (c *Catalog) Validate(m *materials.Material) error {
	var first error
	for _, set := range m.AudioSets {
		clips := append([]materials.ClipRef(nil), set.Impacts...)
		if set.Slide != "" {
			clips = append(clips, set.Slide)
		}
		for _, clip := range clips {
			if _, err := c.Info(clip); err != nil {
				c.log.Warn("material references an unusable clip",
					zap.String("material", m.Name),
					zap.String("clip", string(clip)),
					zap.Error(err))
				if first == nil {
					first = err
				}
			}
		}
	}
	return first
}

func probeWAV(data []byte) (ClipInfo, error) {
	d := gowav.NewDecoder(bytes.NewReader(data))
	if !d.IsValidFile() {
		return ClipInfo{}, ErrInvalidWAV
	}
	dur, err := d.Duration()
	if err != nil {
		return ClipInfo{}, err
	}
	return ClipInfo{
		SampleRate: int(d.SampleRate),
		Channels:   int(d.NumChans),
		Seconds:    dur.Seconds(),
	}, nil
}

func probeVorbis(data []byte) (ClipInfo, error) {
	length, format, err := oggvorbis.GetLength(bytes.NewReader(data))
	if err != nil {
		return ClipInfo{}, err
	}
	if format.SampleRate <= 0 {
		return ClipInfo{}, ErrInvalidRate
	}
	return ClipInfo{
		SampleRate: format.SampleRate,
		Channels:   format.Channels,
		Seconds:    float64(length) / float64(format.SampleRate),
	}, nil
}

// go-mp3 always decodes to 16-bit stereo.
const mp3BytesPerFrame = 4

func probeMP3(data []byte) (ClipInfo, error) {
	d, err := mp3.NewDecoder(bytes.NewReader(data))
	if err != nil {
		return ClipInfo{}, err
	}
	if d.SampleRate() <= 0 {
		return ClipInfo{}, ErrInvalidRate
	}
	return ClipInfo{
		SampleRate: d.SampleRate(),
		Channels:   2,
		Seconds:    float64(d.Length()) / mp3BytesPerFrame / float64(d.SampleRate()),
	}, nil
}
