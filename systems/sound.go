package systems

import (
	"math/rand/v2"

	"github.com/automoto/physsound/components"
	cfg "github.com/automoto/physsound/config"
	"github.com/automoto/physsound/impact"
	"github.com/automoto/physsound/materials"
	"github.com/automoto/physsound/playback"
	"github.com/automoto/physsound/shared/gamemath"
	"github.com/automoto/physsound/slide"
	"github.com/automoto/physsound/surface"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"go.uber.org/zap"
)

// Contact is the collision context handed to the sound handlers. Exit events
// carry zero vectors.
type Contact struct {
	Other            *donburi.Entry
	RelativeVelocity gamemath.Vec3
	Normal           gamemath.Vec3
	Point            gamemath.Vec3
}

// SoundOptions configures a sound object. Zero base volumes and pitches fall
// back to cfg.Audio.
type SoundOptions struct {
	PlayClipAtPoint bool
	ImpactVolume    float64
	ImpactPitch     float64
	SlideVolume     float64
	SlidePitch      float64
}

func (o SoundOptions) withDefaults() SoundOptions {
	if o.ImpactVolume == 0 {
		o.ImpactVolume = cfg.Audio.ImpactBaseVolume
	}
	if o.ImpactPitch == 0 {
		o.ImpactPitch = cfg.Audio.ImpactBasePitch
	}
	if o.SlideVolume == 0 {
		o.SlideVolume = cfg.Audio.SlideBaseVolume
	}
	if o.SlidePitch == 0 {
		o.SlidePitch = cfg.Audio.SlideBasePitch
	}
	return o
}

// AttachSoundObject gives e a sound object for m. It acquires the impact voice
// and one slide container per audio set with a slide clip. A nil material
// leaves the object silent.
func AttachSoundObject(e *donburi.Entry, m *materials.Material, backend playback.Backend, opts SoundOptions) *components.SoundObjectData {
	if !e.HasComponent(components.SoundObject) {
		e.AddComponent(components.SoundObject)
	}
	opts = opts.withDefaults()

	so := components.SoundObject.Get(e)
	*so = components.SoundObjectData{
		Material:        m,
		Backend:         backend,
		PlayClipAtPoint: opts.PlayClipAtPoint,
		ImpactVolume:    opts.ImpactVolume,
		ImpactPitch:     opts.ImpactPitch,
		SlideVolume:     opts.SlideVolume,
		SlidePitch:      opts.SlidePitch,
		Enabled:         true,
	}
	if m == nil || backend == nil {
		return so
	}

	if !so.PlayClipAtPoint {
		so.Impact = backend.Acquire(false)
	}
	addContainers(so)
	return so
}

// addContainers creates the missing slide containers. The clip comes from the
// set that wins the lookup for its key.
func addContainers(so *components.SoundObjectData) {
	m := so.Material
	for _, set := range m.AudioSets {
		if !set.HasSlide() || so.Container(set.Key) != nil {
			continue
		}
		active, ok := m.Lookup().AudioSet(set.Key)
		if !ok || !active.HasSlide() {
			continue
		}
		c := slide.New(set.Key, active.Slide, so.Backend, so.SlideVolume, so.SlidePitch)
		if !so.Enabled {
			c.Disable()
		}
		so.Containers = append(so.Containers, c)
	}
}

// SyncContainers matches the slide containers of e to its material after the
// material's audio sets changed. Containers for types the material no longer
// defines are closed with a warning; new types get a container.
func SyncContainers(w donburi.World, e *donburi.Entry) {
	so := soundOf(e)
	if so == nil || so.Material == nil || so.Backend == nil {
		return
	}
	audio := audioOf(w)
	m := so.Material

	kept := so.Containers[:0]
	for _, c := range so.Containers {
		set, ok := m.Lookup().AudioSet(c.Key())
		if !ok || !set.HasSlide() {
			audio.Log.Warn("sound object has a slide container for a material type its material does not define",
				zap.String("material", m.Name),
				zap.Int("type", int(c.Key())))
			c.Close()
			continue
		}
		if set.Slide != c.Clip() {
			c.Close()
			c = slide.New(c.Key(), set.Slide, so.Backend, so.SlideVolume, so.SlidePitch)
			if !so.Enabled {
				c.Disable()
			}
		}
		kept = append(kept, c)
	}
	so.Containers = kept

	addContainers(so)
}

// DetachSoundObject releases every voice the sound object of e holds.
func DetachSoundObject(e *donburi.Entry) {
	so := soundOf(e)
	if so == nil {
		return
	}
	for _, c := range so.Containers {
		c.Close()
	}
	so.Containers = nil
	if so.Backend != nil {
		if so.Impact != playback.NoHandle {
			so.Backend.Release(so.Impact)
		}
		for _, t := range so.Transients {
			so.Backend.Release(t.Handle)
		}
	}
	so.Impact = playback.NoHandle
	so.Transients = nil
}

// PlayImpact plays the impact clip for e hitting contact.Other.
func PlayImpact(ecs *ecs.ECS, e *donburi.Entry, contact Contact) {
	audio := audioOf(ecs.World)
	so := soundOf(e)
	if !listening(so) {
		audio.Stats.IgnoredEvents++
		return
	}
	m := so.Material

	other := partnerMaterial(contact)
	res, ok := impact.Resolve(m, other, contact.RelativeVelocity, contact.Normal, audio.Rand)
	if !ok {
		audio.Stats.SilentImpacts++
		return
	}
	audio.Stats.Impacts++

	pitch := impact.Pitch(so.ImpactPitch, m.PitchRandomness, audio.Rand)
	volume := so.ImpactVolume
	if res.ScaleVolume {
		volume *= res.Volume
	}

	if so.PlayClipAtPoint {
		h := so.Backend.Acquire(false)
		if h == playback.NoHandle {
			return
		}
		remaining := -1.0
		if audio.Durations != nil {
			if d, ok := audio.Durations.Duration(res.Clip); ok {
				remaining = d
			}
		}
		so.Backend.Play(h, res.Clip, volume, pitch)
		so.Transients = append(so.Transients, components.TransientVoice{Handle: h, Remaining: remaining})
		return
	}

	so.Backend.Play(so.Impact, res.Clip, volume, pitch)
}

// SetSlideTargets feeds a continuing or ending contact into the slide
// containers of e. A blended partner such as terrain drives every container
// by its blend weight; any other partner drives the container for its type,
// or the fallback container.
func SetSlideTargets(ecs *ecs.ECS, e *donburi.Entry, contact Contact, exit bool) {
	audio := audioOf(ecs.World)
	so := soundOf(e)
	if !listening(so) {
		audio.Stats.IgnoredEvents++
		return
	}
	m := so.Material

	// A partner that vanished can no longer say which container it drove.
	if exit && contact.Other == nil {
		for _, c := range so.Containers {
			feedSlide(audio, c, m, contact, true, 0)
		}
		return
	}

	if blender, ok := partnerProvider(contact).(surface.Blender); ok {
		comp := blender.Composition(contact.Point)
		for _, c := range so.Containers {
			feedSlide(audio, c, m, contact, exit, comp[c.Key()])
		}
		return
	}

	var c *slide.Container
	if other := partnerMaterial(contact); other != nil {
		c = so.Container(other.TypeKey)
	}
	if c == nil {
		if fb := m.Lookup().FallbackKey(); fb != materials.NoType {
			c = so.Container(fb)
		}
	}
	if c == nil {
		return
	}
	feedSlide(audio, c, m, contact, exit, 1)
}

func feedSlide(audio *components.AudioData, c *slide.Container, m *materials.Material, contact Contact, exit bool, mod float64) {
	wasStopped := c.State() == slide.Stopped
	c.SetTargetVolumeAndPitch(m, contact.RelativeVelocity, contact.Normal, exit, mod, audio.Rand)
	if wasStopped && c.State() == slide.Playing {
		audio.Stats.SlideStarts++
	}
}

// UpdateSounds ramps every slide container one step and frees transient
// impact voices whose clip has finished. It runs once per frame after the
// contact events of that frame.
func UpdateSounds(ecs *ecs.ECS) {
	dt := 1 / float64(cfg.Sim.TickRate)

	components.SoundObject.Each(ecs.World, func(e *donburi.Entry) {
		so := components.SoundObject.Get(e)
		if so.Material == nil {
			return
		}
		for _, c := range so.Containers {
			c.Tick()
		}

		live := so.Transients[:0]
		for _, t := range so.Transients {
			if t.Remaining >= 0 {
				t.Remaining -= dt
				if t.Remaining <= 0 {
					so.Backend.Release(t.Handle)
					continue
				}
			} else if !so.Backend.IsPlaying(t.Handle) {
				so.Backend.Release(t.Handle)
				continue
			}
			live = append(live, t)
		}
		so.Transients = live
	})
}

// SetSoundEnabled enables or disables every voice of the sound object of e.
// A disabled object ignores contact events.
func SetSoundEnabled(e *donburi.Entry, enable bool) {
	so := soundOf(e)
	if so == nil || so.Enabled == enable {
		return
	}
	so.Enabled = enable

	for _, c := range so.Containers {
		if enable {
			c.Enable()
		} else {
			c.Disable()
		}
	}
	if enable || so.Backend == nil {
		return
	}
	if so.Impact != playback.NoHandle {
		so.Backend.Stop(so.Impact)
	}
	for _, t := range so.Transients {
		so.Backend.Release(t.Handle)
	}
	so.Transients = nil
}

// SetWorldSoundEnabled applies SetSoundEnabled to every sound object.
func SetWorldSoundEnabled(w donburi.World, enable bool) {
	components.SoundObject.Each(w, func(e *donburi.Entry) {
		SetSoundEnabled(e, enable)
	})
}

func soundOf(e *donburi.Entry) *components.SoundObjectData {
	if e == nil || !e.Valid() || !e.HasComponent(components.SoundObject) {
		return nil
	}
	return components.SoundObject.Get(e)
}

func listening(so *components.SoundObjectData) bool {
	return so != nil && so.Enabled && so.Material != nil && so.Backend != nil
}

func partnerProvider(contact Contact) surface.Provider {
	e := contact.Other
	if e == nil || !e.Valid() || !e.HasComponent(components.Surface) {
		return nil
	}
	return components.Surface.Get(e).Provider
}

func partnerMaterial(contact Contact) *materials.Material {
	p := partnerProvider(contact)
	if p == nil {
		return nil
	}
	return p.MaterialAt(contact.Point)
}

var defaultAudio = components.AudioData{
	Rand: rand.New(rand.NewPCG(1, 2)),
	Log:  zap.NewNop(),
}

// audioOf returns the world's audio singleton, or shared defaults when the
// world has none.
func audioOf(w donburi.World) *components.AudioData {
	entry, ok := components.Audio.First(w)
	if !ok {
		return &defaultAudio
	}
	audio := components.Audio.Get(entry)
	if audio.Rand == nil {
		audio.Rand = rand.New(rand.NewPCG(1, 2))
	}
	if audio.Log == nil {
		audio.Log = zap.NewNop()
	}
	return audio
}
