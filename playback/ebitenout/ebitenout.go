// Package ebitenout plays clips on ebiten audio players. Ebiten players have
// no playback rate control, so pitch is tracked but not heard.
package ebitenout

import (
	"bytes"
	"sync"

	"github.com/automoto/physsound/materials"
	"github.com/automoto/physsound/playback"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"go.uber.org/zap"
)

type voice struct {
	loop   bool
	clip   materials.ClipRef
	pitch  float64
	player *audio.Player
}

// Backend implements playback.Backend on an ebiten audio context.
type Backend struct {
	ctx    *audio.Context
	loader *Loader
	log    *zap.Logger

	mu     sync.Mutex
	next   playback.Handle
	voices map[playback.Handle]*voice
}

// New uses the process audio context, creating it at sampleRate when none
// exists yet.
func New(clips Clips, sampleRate int, log *zap.Logger) *Backend {
	if log == nil {
		log = zap.NewNop()
	}
	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(sampleRate)
	}
	return &Backend{
		ctx:    ctx,
		loader: NewLoader(clips, ctx.SampleRate()),
		log:    log,
		voices: make(map[playback.Handle]*voice),
	}
}

// Loader exposes the PCM cache for preloading.
func (b *Backend) Loader() *Loader { return b.loader }

func (b *Backend) Acquire(loop bool) playback.Handle {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.next++
	b.voices[b.next] = &voice{loop: loop}
	return b.next
}

func (b *Backend) Release(h playback.Handle) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if v, ok := b.voices[h]; ok {
		closePlayer(v)
		delete(b.voices, h)
	}
}

func (b *Backend) Play(h playback.Handle, clip materials.ClipRef, volume, pitch float64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	v, ok := b.voices[h]
	if !ok {
		return
	}
	closePlayer(v)

	pcm, err := b.loader.PCM(clip)
	if err != nil {
		b.log.Warn("failed to load clip", zap.String("clip", string(clip)), zap.Error(err))
		return
	}

	var player *audio.Player
	if v.loop {
		player, err = b.ctx.NewPlayer(audio.NewInfiniteLoop(bytes.NewReader(pcm), int64(len(pcm))))
	} else {
		player = b.ctx.NewPlayerFromBytes(pcm)
	}
	if err != nil {
		b.log.Warn("failed to create player", zap.String("clip", string(clip)), zap.Error(err))
		return
	}

	v.clip = clip
	v.pitch = pitch
	v.player = player
	player.SetVolume(volume)
	player.Play()
}

func (b *Backend) Stop(h playback.Handle) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if v, ok := b.voices[h]; ok {
		closePlayer(v)
	}
}

func (b *Backend) IsPlaying(h playback.Handle) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	v, ok := b.voices[h]
	return ok && v.player != nil && v.player.IsPlaying()
}

func (b *Backend) SetVolume(h playback.Handle, volume float64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if v, ok := b.voices[h]; ok && v.player != nil {
		v.player.SetVolume(volume)
	}
}

func (b *Backend) SetPitch(h playback.Handle, pitch float64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if v, ok := b.voices[h]; ok {
		v.pitch = pitch
	}
}

func closePlayer(v *voice) {
	if v.player == nil {
		return
	}
	_ = v.player.Close()
	v.player = nil
}
