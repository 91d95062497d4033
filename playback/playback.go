// Package playback is the contract between the sound logic and an audio
// device. Clips are opaque references; backends resolve them to sample data.
package playback

import "github.com/automoto/physsound/materials"

// Handle identifies a voice owned by one sound object.
type Handle int

// NoHandle is returned when a backend cannot allocate a voice. Every Backend
// method must accept it and do nothing.
const NoHandle Handle = 0

// Backend plays clips on voices. Calls are fire-and-forget: failures to load
// or play a clip are the backend's to log, never the caller's to handle.
type Backend interface {
	// Acquire allocates a voice. Looping voices repeat their clip until stopped.
	Acquire(loop bool) Handle
	// Release stops the voice and frees it.
	Release(h Handle)

	Play(h Handle, clip materials.ClipRef, volume, pitch float64)
	Stop(h Handle)
	IsPlaying(h Handle) bool
	SetVolume(h Handle, volume float64)
	SetPitch(h Handle, pitch float64)
}

// Durations reports clip lengths in seconds so transient voices can be freed
// once their clip has finished.
type Durations interface {
	Duration(clip materials.ClipRef) (float64, bool)
}
