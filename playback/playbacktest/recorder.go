// Package playbacktest provides an in-memory playback.Backend for tests.
package playbacktest

import (
	"sync"

	"github.com/automoto/physsound/materials"
	"github.com/automoto/physsound/playback"
)

// Call is one recorded backend operation.
type Call struct {
	Op     string
	Handle playback.Handle
	Clip   materials.ClipRef
	Volume float64
	Pitch  float64
}

// Voice is the recorded state of a voice.
type Voice struct {
	Loop     bool
	Clip     materials.ClipRef
	Volume   float64
	Pitch    float64
	Playing  bool
	Released bool
}

// Recorder implements playback.Backend and remembers every call.
type Recorder struct {
	mu     sync.Mutex
	next   playback.Handle
	voices map[playback.Handle]*Voice
	calls  []Call
}

func NewRecorder() *Recorder {
	return &Recorder{voices: make(map[playback.Handle]*Voice)}
}

func (r *Recorder) Acquire(loop bool) playback.Handle {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.next++
	r.voices[r.next] = &Voice{Loop: loop}
	r.calls = append(r.calls, Call{Op: "acquire", Handle: r.next})
	return r.next
}

func (r *Recorder) Release(h playback.Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if v, ok := r.voices[h]; ok {
		v.Playing = false
		v.Released = true
	}
	r.calls = append(r.calls, Call{Op: "release", Handle: h})
}

func (r *Recorder) Play(h playback.Handle, clip materials.ClipRef, volume, pitch float64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if v, ok := r.voices[h]; ok && !v.Released {
		v.Clip, v.Volume, v.Pitch, v.Playing = clip, volume, pitch, true
	}
	r.calls = append(r.calls, Call{Op: "play", Handle: h, Clip: clip, Volume: volume, Pitch: pitch})
}

func (r *Recorder) Stop(h playback.Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if v, ok := r.voices[h]; ok {
		v.Playing = false
	}
	r.calls = append(r.calls, Call{Op: "stop", Handle: h})
}

func (r *Recorder) IsPlaying(h playback.Handle) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.voices[h]
	return ok && v.Playing
}

func (r *Recorder) SetVolume(h playback.Handle, volume float64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if v, ok := r.voices[h]; ok {
		v.Volume = volume
	}
	r.calls = append(r.calls, Call{Op: "volume", Handle: h, Volume: volume})
}

func (r *Recorder) SetPitch(h playback.Handle, pitch float64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if v, ok := r.voices[h]; ok {
		v.Pitch = pitch
	}
	r.calls = append(r.calls, Call{Op: "pitch", Handle: h, Pitch: pitch})
}

// Voice returns a copy of the voice state.
func (r *Recorder) Voice(h playback.Handle) (Voice, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.voices[h]
	if !ok {
		return Voice{}, false
	}
	return *v, true
}

// Finish marks a voice as no longer playing, as if its clip ran out.
func (r *Recorder) Finish(h playback.Handle) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if v, ok := r.voices[h]; ok {
		v.Playing = false
	}
}

// Calls returns the recorded calls with the given op, or all calls for "".
func (r *Recorder) Calls(op string) []Call {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []Call
	for _, c := range r.calls {
		if op == "" || c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

// Reset forgets the recorded calls but keeps voice state.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
}

// FixedDurations implements playback.Durations from a map.
type FixedDurations map[materials.ClipRef]float64

func (d FixedDurations) Duration(clip materials.ClipRef) (float64, bool) {
	s, ok := d[clip]
	return s, ok
}
