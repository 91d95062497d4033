package materials

import (
	"math"
	"slices"
	"sync"

	"github.com/automoto/physsound/config"
	"github.com/automoto/physsound/shared/gamemath"
	"go.uber.org/zap"
)

// ClipRef is an opaque reference to an audio clip, usually an asset path.
// The empty ref means "no clip".
type ClipRef string

// AudioSet is what a material plays when it touches a given material type.
type AudioSet struct {
	Key     Type      `json:"key"`
	Impacts []ClipRef `json:"impacts,omitempty"`
	Slide   ClipRef   `json:"slide,omitempty"`
}

// HasSlide reports whether the set defines a slide loop.
func (s *AudioSet) HasSlide() bool {
	return s != nil && s.Slide != ""
}

// Range is a velocity window mapped onto [0, 1].
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Normalize maps v into [0, 1] against the range, clamping at both ends.
func (r Range) Normalize(v float64) float64 {
	if r.Max <= r.Min {
		if v >= r.Min {
			return 1
		}
		return 0
	}
	return gamemath.Clamp01((v - r.Min) / (r.Max - r.Min))
}

// Material is the acoustic profile of a surface. It is authored data; the
// derived lookup is rebuilt by Activate and by the setters below. Lookup is
// safe for concurrent use, the setters are not.
type Material struct {
	Name    string `json:"name"`
	TypeKey Type   `json:"type"`

	// FallbackIndex follows the authoring UI: 0 is "None", i selects AudioSets[i-1].
	FallbackIndex int `json:"fallbackIndex"`

	PitchRandomness      float64 `json:"pitchRandomness"`
	SlidePitchMod        float64 `json:"slidePitchMod"`
	VelocityThreshold    Range   `json:"velocityThreshold"`
	ImpactNormalBias     float64 `json:"impactNormalBias"`
	UseCollisionVelocity bool    `json:"useCollisionVelocity"`
	ScaleImpactVolume    bool    `json:"scaleImpactVolume"`

	AudioSets []AudioSet `json:"audioSets"`

	mu     sync.Mutex
	lookup *Lookup
	log    *zap.Logger
}

// NewMaterial returns a material of the given type with default parameters.
func NewMaterial(name string, key Type) *Material {
	return &Material{
		Name:                 name,
		TypeKey:              key,
		PitchRandomness:      config.Material.PitchRandomness,
		SlidePitchMod:        config.Material.SlidePitchMod,
		VelocityThreshold:    Range{Min: config.Material.VelocityMin, Max: config.Material.VelocityMax},
		ImpactNormalBias:     config.Material.ImpactNormalBias,
		UseCollisionVelocity: config.Material.UseCollisionVelocity,
		ScaleImpactVolume:    config.Material.ScaleImpactVolume,
	}
}

// Activate builds the lookup snapshot. Configuration problems are logged to
// log, which may be nil.
func (m *Material) Activate(log *zap.Logger) *Lookup {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.activate(log)
}

func (m *Material) activate(log *zap.Logger) *Lookup {
	if log == nil {
		log = zap.NewNop()
	}
	m.log = log
	m.lookup = BuildLookup(m, log)
	return m.lookup
}

// Lookup returns the current snapshot, building it on first use.
func (m *Material) Lookup() *Lookup {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.lookup == nil {
		return m.activate(m.log)
	}
	return m.lookup
}

// SetAudioSets replaces the authored list and rebuilds the lookup.
func (m *Material) SetAudioSets(sets []AudioSet) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AudioSets = slices.Clone(sets)
	m.activate(m.log)
}

// SetFallbackIndex changes the fallback selection and rebuilds the lookup.
func (m *Material) SetFallbackIndex(i int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FallbackIndex = i
	m.activate(m.log)
}

// HasAudioSet reports whether any authored set uses key.
func (m *Material) HasAudioSet(key Type) bool {
	return m.GetAudioSet(key) != nil
}

// GetAudioSet returns the first authored set for key, or nil.
func (m *Material) GetAudioSet(key Type) *AudioSet {
	if m == nil {
		return nil
	}
	for i := range m.AudioSets {
		if m.AudioSets[i].Key == key {
			return &m.AudioSets[i]
		}
	}
	return nil
}

// FallbackOptions lists the choices shown for the fallback selector:
// "None" followed by the type name of every authored set.
func (m *Material) FallbackOptions(reg *Registry) []string {
	names := make([]string, len(m.AudioSets)+1)
	names[0] = "None"
	for i, set := range m.AudioSets {
		names[i+1] = reg.Name(set.Key)
	}
	return names
}

// ImpactSpeed is the collision speed weighted toward the normal-aligned
// component as ImpactNormalBias approaches 1.
func (m *Material) ImpactSpeed(relVel, normal gamemath.Vec3) float64 {
	impactAmt := math.Abs(normal.Normalized().Dot(relVel.Normalized()))
	return (impactAmt + (1-impactAmt)*(1-m.ImpactNormalBias)) * relVel.Magnitude()
}

// ImpactVolume returns the normalized impact speed, and false when the impact
// is below the velocity threshold and should stay silent.
func (m *Material) ImpactVolume(relVel, normal gamemath.Vec3) (float64, bool) {
	speed := m.ImpactSpeed(relVel, normal)
	if math.IsNaN(speed) || math.IsInf(speed, 0) || speed < m.VelocityThreshold.Min {
		return 0, false
	}
	return m.VelocityThreshold.Normalize(speed), true
}

// SlideVolume returns the slide intensity in [0, 1], driven by the velocity
// component tangential to the contact.
func (m *Material) SlideVolume(relVel, normal gamemath.Vec3) float64 {
	slideAmt := 1 - math.Abs(normal.Dot(relVel))
	return m.VelocityThreshold.Normalize(slideAmt * relVel.Magnitude())
}
