// Package impact decides which one-shot clip a collision plays and how loud.
package impact

import (
	"github.com/automoto/physsound/materials"
	"github.com/automoto/physsound/shared/gamemath"
)

// Rand is the randomness the resolver needs. *math/rand/v2.Rand satisfies it.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// Result is the outcome of a collision that makes a sound.
type Result struct {
	Clip materials.ClipRef
	Set  *materials.AudioSet

	// Volume is the normalized impact speed in [0, 1]. It is only meant to be
	// applied when ScaleVolume is set; otherwise the caller keeps its current
	// playback volume.
	Volume      float64
	ScaleVolume bool
}

// Resolve picks the impact clip for self hitting other. other may be nil when
// the partner has no sound material. It returns false when the collision
// should stay silent.
func Resolve(self, other *materials.Material, relVel, normal gamemath.Vec3, rng Rand) (Result, bool) {
	if self == nil {
		return Result{}, false
	}

	speed, ok := self.ImpactVolume(relVel, normal)
	if !ok {
		return Result{}, false
	}

	otherType := materials.NoType
	if other != nil {
		otherType = other.TypeKey
	}
	set, ok := self.Lookup().Resolve(otherType)
	if !ok {
		return Result{}, false
	}

	clip, ok := SelectClip(set, speed, !self.UseCollisionVelocity, rng)
	if !ok {
		return Result{}, false
	}

	return Result{
		Clip:        clip,
		Set:         set,
		Volume:      speed,
		ScaleVolume: self.ScaleImpactVolume,
	}, true
}

// SelectClip returns the clip at floor(speed*(n-1)) in deterministic mode, or
// a uniformly chosen one in random mode.
func SelectClip(set *materials.AudioSet, speed float64, random bool, rng Rand) (materials.ClipRef, bool) {
	if set == nil || len(set.Impacts) == 0 {
		return "", false
	}
	n := len(set.Impacts)
	if random {
		if rng == nil {
			return set.Impacts[0], set.Impacts[0] != ""
		}
		clip := set.Impacts[rng.IntN(n)]
		return clip, clip != ""
	}
	clip := set.Impacts[ClipIndex(speed, n)]
	return clip, clip != ""
}

// ClipIndex maps a normalized speed onto [0, n-1].
func ClipIndex(speed float64, n int) int {
	if n <= 0 {
		return -1
	}
	i := int(gamemath.Clamp01(speed) * float64(n-1))
	if i < 0 {
		i = 0
	}
	if i >= n {
		i = n - 1
	}
	return i
}

// Pitch returns base jittered by a uniform offset in [-randomness, randomness].
func Pitch(base, randomness float64, rng Rand) float64 {
	if randomness <= 0 || rng == nil {
		return base
	}
	return base + (rng.Float64()*2-1)*randomness
}
