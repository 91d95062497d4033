package components

import (
	"github.com/automoto/physsound/materials"
	"github.com/automoto/physsound/playback"
	"github.com/automoto/physsound/slide"
	"github.com/yohamta/donburi"
)

// SoundObjectData is the sound state of one body: its material, a voice for
// impacts and one slide container per material type it can scrape against.
type SoundObjectData struct {
	Material *materials.Material
	Backend  playback.Backend

	Impact     playback.Handle
	Containers []*slide.Container

	// PlayClipAtPoint gives every impact its own voice, released once the clip
	// has run out, so impacts overlap instead of cutting each other off.
	PlayClipAtPoint bool
	Transients      []TransientVoice

	ImpactVolume float64
	ImpactPitch  float64
	SlideVolume  float64
	SlidePitch   float64

	Enabled bool
}

// TransientVoice is a one-shot voice with Remaining seconds of clip left.
type TransientVoice struct {
	Handle    playback.Handle
	Remaining float64
}

// Container returns the slide container for key, if any.
func (s *SoundObjectData) Container(key materials.Type) *slide.Container {
	for _, c := range s.Containers {
		if c.CompareKey(key) {
			return c
		}
	}
	return nil
}

var SoundObject = donburi.NewComponentType[SoundObjectData]()
