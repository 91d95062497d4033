// Package beepout plays clips through a beep mixer. Pitch is applied by
// resampling, so a pitch of 2 plays an octave up and twice as fast.
package beepout

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"path"
	"strings"
	"sync"
	"time"

	cfg "github.com/automoto/physsound/config"
	"github.com/automoto/physsound/materials"
	"github.com/automoto/physsound/playback"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/vorbis"
	"github.com/gopxl/beep/wav"
	"go.uber.org/zap"
)

// Clips resolves a clip reference to its encoded file.
type Clips interface {
	Bytes(clip materials.ClipRef) ([]byte, error)
}

type voice struct {
	loop      bool
	clip      materials.ClipRef
	srcRate   beep.SampleRate
	pitch     float64
	ctrl      *beep.Ctrl
	resampler *beep.Resampler
	volume    *effects.Volume
	finished  bool
}

// Backend implements playback.Backend. All voices feed one mixer; the locker
// guards every streamer the mixer can reach.
type Backend struct {
	clips   Clips
	rate    beep.SampleRate
	quality int
	lock    sync.Locker
	log     *zap.Logger
	mixer   *beep.Mixer

	mu      sync.Mutex
	next    playback.Handle
	voices  map[playback.Handle]*voice
	buffers map[materials.ClipRef]*beep.Buffer
}

// New builds a backend mixing at rate. The caller drains Mixer, either by
// handing it to the speaker or by streaming it directly.
func New(clips Clips, rate beep.SampleRate, lock sync.Locker, log *zap.Logger) *Backend {
	if log == nil {
		log = zap.NewNop()
	}
	if lock == nil {
		lock = &sync.Mutex{}
	}
	return &Backend{
		clips:   clips,
		rate:    rate,
		quality: cfg.Audio.ResampleQuality,
		lock:    lock,
		log:     log,
		mixer:   &beep.Mixer{},
		voices:  make(map[playback.Handle]*voice),
		buffers: make(map[materials.ClipRef]*beep.Buffer),
	}
}

type speakerLock struct{}

func (speakerLock) Lock()   { speaker.Lock() }
func (speakerLock) Unlock() { speaker.Unlock() }

// Open initializes the speaker at cfg.Audio.SampleRate and starts playing the
// backend's mixer on it.
func Open(clips Clips, log *zap.Logger) (*Backend, error) {
	rate := beep.SampleRate(cfg.Audio.SampleRate)
	if err := speaker.Init(rate, rate.N(time.Millisecond*100)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	b := New(clips, rate, speakerLock{}, log)
	speaker.Play(b.mixer)
	return b, nil
}

// Close stops every voice and the speaker.
func (b *Backend) Close() {
	b.lock.Lock()
	b.mixer.Clear()
	b.lock.Unlock()
	speaker.Close()
}

// Mixer returns the stream every voice is mixed into.
func (b *Backend) Mixer() beep.Streamer { return b.mixer }

// Lock returns the locker that must be held while streaming Mixer.
func (b *Backend) Lock() sync.Locker { return b.lock }

func (b *Backend) Acquire(loop bool) playback.Handle {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.next++
	b.voices[b.next] = &voice{loop: loop, finished: true}
	return b.next
}

func (b *Backend) Release(h playback.Handle) {
	b.Stop(h)

	b.mu.Lock()
	delete(b.voices, h)
	b.mu.Unlock()
}

func (b *Backend) Play(h playback.Handle, clip materials.ClipRef, volume, pitch float64) {
	v := b.voice(h)
	if v == nil {
		return
	}
	buf, err := b.buffer(clip)
	if err != nil {
		b.log.Warn("failed to load clip", zap.String("clip", string(clip)), zap.Error(err))
		return
	}

	b.lock.Lock()
	defer b.lock.Unlock()

	b.stopLocked(v)

	var src beep.Streamer = buf.Streamer(0, buf.Len())
	if v.loop {
		src = beep.Loop(-1, buf.Streamer(0, buf.Len()))
	}
	v.clip = clip
	v.srcRate = buf.Format().SampleRate
	v.pitch = pitch
	v.resampler = beep.ResampleRatio(b.quality, b.ratio(v), src)
	v.volume = &effects.Volume{Streamer: v.resampler, Base: 2}
	setGain(v.volume, volume)
	v.finished = false

	done := v
	v.ctrl = &beep.Ctrl{Streamer: beep.Seq(v.volume, beep.Callback(func() {
		done.finished = true
	}))}
	b.mixer.Add(v.ctrl)
}

func (b *Backend) Stop(h playback.Handle) {
	v := b.voice(h)
	if v == nil {
		return
	}
	b.lock.Lock()
	b.stopLocked(v)
	b.lock.Unlock()
}

func (b *Backend) stopLocked(v *voice) {
	if v.ctrl != nil {
		v.ctrl.Paused = true
		v.ctrl.Streamer = nil
		v.ctrl = nil
	}
	v.resampler = nil
	v.volume = nil
	v.finished = true
}

func (b *Backend) IsPlaying(h playback.Handle) bool {
	v := b.voice(h)
	if v == nil {
		return false
	}
	b.lock.Lock()
	defer b.lock.Unlock()
	return !v.finished
}

func (b *Backend) SetVolume(h playback.Handle, volume float64) {
	v := b.voice(h)
	if v == nil {
		return
	}
	b.lock.Lock()
	defer b.lock.Unlock()
	if v.volume != nil {
		setGain(v.volume, volume)
	}
}

func (b *Backend) SetPitch(h playback.Handle, pitch float64) {
	v := b.voice(h)
	if v == nil {
		return
	}
	b.lock.Lock()
	defer b.lock.Unlock()
	v.pitch = pitch
	if v.resampler != nil {
		v.resampler.SetRatio(b.ratio(v))
	}
}

func (b *Backend) voice(h playback.Handle) *voice {
	if h == playback.NoHandle {
		return nil
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.voices[h]
}

// ratio converts the clip to the mixer rate and applies pitch.
func (b *Backend) ratio(v *voice) float64 {
	pitch := v.pitch
	if pitch <= 0 {
		pitch = 1
	}
	return pitch * float64(v.srcRate) / float64(b.rate)
}

// setGain maps a linear volume onto effects.Volume's log2 scale.
func setGain(vol *effects.Volume, volume float64) {
	if volume <= 0 {
		vol.Volume = 0
		vol.Silent = true
		return
	}
	vol.Volume = math.Log2(volume)
	vol.Silent = false
}

// buffer decodes clip once and keeps its samples in memory.
func (b *Backend) buffer(clip materials.ClipRef) (*beep.Buffer, error) {
	b.mu.Lock()
	buf, ok := b.buffers[clip]
	b.mu.Unlock()
	if ok {
		return buf, nil
	}

	data, err := b.clips.Bytes(clip)
	if err != nil {
		return nil, err
	}

	rc := io.NopCloser(bytes.NewReader(data))
	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	ext := strings.ToLower(path.Ext(string(clip)))
	switch ext {
	case ".wav":
		streamer, format, err = wav.Decode(rc)
	case ".ogg":
		streamer, format, err = vorbis.Decode(rc)
	case ".mp3":
		streamer, format, err = mp3.Decode(rc)
	default:
		return nil, fmt.Errorf("unsupported audio format: %s", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", clip, err)
	}
	defer streamer.Close()

	buf = beep.NewBuffer(format)
	buf.Append(streamer)

	b.mu.Lock()
	b.buffers[clip] = buf
	b.mu.Unlock()
	return buf, nil
}
