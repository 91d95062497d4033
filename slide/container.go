// Package slide drives the looping sound two surfaces make while they stay in
// contact.
//
// A Container separates the target volume, set whenever a contact event
// arrives, from the current volume, which is ramped toward the target once per
// tick. Contact events can be sparse or bursty; the ramp keeps the loop from
// popping.
package slide

import (
	"math"

	"github.com/automoto/physsound/config"
	"github.com/automoto/physsound/impact"
	"github.com/automoto/physsound/materials"
	"github.com/automoto/physsound/playback"
	"github.com/automoto/physsound/shared/gamemath"
)

type State int

const (
	Stopped State = iota
	Playing
)

func (s State) String() string {
	if s == Playing {
		return "playing"
	}
	return "stopped"
}

// Container owns the slide voice a sound object uses against one material type.
type Container struct {
	key     materials.Type
	clip    materials.ClipRef
	backend playback.Backend
	handle  playback.Handle

	state    State
	disabled bool

	targetVolume float64
	volume       float64
	pitch        float64

	baseVolume    float64
	basePitch     float64
	jitteredPitch float64

	rampStep   float64
	stopVolume float64
}

// New acquires a looping voice for clip. The voice starts silent.
func New(key materials.Type, clip materials.ClipRef, backend playback.Backend, baseVolume, basePitch float64) *Container {
	c := &Container{
		key:           key,
		clip:          clip,
		backend:       backend,
		baseVolume:    baseVolume,
		basePitch:     basePitch,
		jitteredPitch: basePitch,
		pitch:         basePitch,
		rampStep:      config.Audio.SlideRampStep,
		stopVolume:    config.Audio.SlideStopVolume,
	}
	if backend != nil && clip != "" {
		c.handle = backend.Acquire(true)
	}
	return c
}

func (c *Container) Key() materials.Type     { return c.key }
func (c *Container) Clip() materials.ClipRef { return c.clip }
func (c *Container) Handle() playback.Handle { return c.handle }
func (c *Container) State() State            { return c.state }
func (c *Container) Volume() float64         { return c.volume }
func (c *Container) TargetVolume() float64   { return c.targetVolume }
func (c *Container) Pitch() float64          { return c.pitch }
func (c *Container) Enabled() bool           { return !c.disabled }

// CompareKey reports whether the container reacts to material type k.
func (c *Container) CompareKey(k materials.Type) bool {
	return c.key == k
}

func (c *Container) inert() bool {
	return c.handle == playback.NoHandle || c.disabled
}

// SetTargetVolumeAndPitch feeds one contact event into the container. A
// stopped container starts playing with a freshly jittered pitch. mod scales
// the target, for example by a terrain blend weight; pass 1 otherwise.
func (c *Container) SetTargetVolumeAndPitch(m *materials.Material, relVel, normal gamemath.Vec3, exit bool, mod float64, rng impact.Rand) {
	if c.inert() || m == nil {
		return
	}

	starting := c.state == Stopped || !c.backend.IsPlaying(c.handle)
	if starting {
		c.jitteredPitch = impact.Pitch(c.basePitch, m.PitchRandomness, rng)
	}

	c.pitch = c.jitteredPitch + relVel.Magnitude()*m.SlidePitchMod
	if !finite(c.pitch) {
		c.pitch = c.jitteredPitch
	}
	if exit {
		c.targetVolume = 0
	} else {
		c.targetVolume = m.SlideVolume(relVel, normal) * c.baseVolume * mod
		if !finite(c.targetVolume) {
			c.targetVolume = 0
		}
	}

	if starting {
		c.state = Playing
		c.backend.Play(c.handle, c.clip, c.volume, c.pitch)
		return
	}
	c.backend.SetPitch(c.handle, c.pitch)
}

// Tick ramps the current volume toward the target by a fixed step and stops
// the voice once it falls below the stop volume.
func (c *Container) Tick() {
	if c.inert() {
		return
	}

	c.volume = gamemath.MoveTowards(c.volume, c.targetVolume, c.rampStep)
	if c.state != Playing {
		return
	}

	if c.volume < c.stopVolume {
		c.backend.Stop(c.handle)
		c.state = Stopped
		return
	}
	c.backend.SetVolume(c.handle, c.volume)
}

// Disable stops playback and ignores events until Enable.
func (c *Container) Disable() {
	if c.disabled {
		return
	}
	if c.handle != playback.NoHandle {
		c.backend.Stop(c.handle)
	}
	c.state = Stopped
	c.disabled = true
}

// Enable re-arms a disabled container. Volume state is kept.
func (c *Container) Enable() {
	c.disabled = false
}

// Close releases the voice. The container is inert afterwards.
func (c *Container) Close() {
	if c.handle != playback.NoHandle {
		c.backend.Release(c.handle)
	}
	c.handle = playback.NoHandle
	c.state = Stopped
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
