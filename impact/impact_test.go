package impact

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/automoto/physsound/materials"
	"github.com/automoto/physsound/shared/gamemath"
)

const (
	wood  materials.Type = 1
	metal materials.Type = 2
	stone materials.Type = 3
)

func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

// woodAgainstMetal is the reference setup: a wood body with three metal
// impact clips and a 1..10 velocity window.
func woodAgainstMetal() (*materials.Material, *materials.Material) {
	self := materials.NewMaterial("wood", wood)
	self.VelocityThreshold = materials.Range{Min: 1, Max: 10}
	self.ImpactNormalBias = 0
	self.ScaleImpactVolume = true
	self.UseCollisionVelocity = true
	self.AudioSets = []materials.AudioSet{
		{Key: metal, Impacts: []materials.ClipRef{"clipA", "clipB", "clipC"}},
	}
	self.Activate(nil)

	other := materials.NewMaterial("metal", metal)
	other.Activate(nil)
	return self, other
}

func TestResolveReferenceScenario(t *testing.T) {
	self, other := woodAgainstMetal()
	vel := gamemath.V2(5.5, 0)
	normal := gamemath.V2(1, 0)

	got, ok := Resolve(self, other, vel, normal, newRand())
	if !ok {
		t.Fatal("Resolve() returned no sound")
	}
	if got.Clip != "clipB" {
		t.Errorf("Clip = %q, want clipB", got.Clip)
	}
	if got.Volume != 0.5 {
		t.Errorf("Volume = %v, want 0.5", got.Volume)
	}
	if !got.ScaleVolume {
		t.Error("ScaleVolume = false, want true")
	}
}

func TestResolveBelowThresholdIsSilent(t *testing.T) {
	self, other := woodAgainstMetal()
	directions := []gamemath.Vec3{
		gamemath.V2(1, 0),
		gamemath.V2(0, 1),
		gamemath.V2(1, 1),
		{X: 0.2, Y: -0.7, Z: 0.4},
	}
	for _, dir := range directions {
		vel := dir.Normalized().Scale(0.5)
		if _, ok := Resolve(self, other, vel, gamemath.V2(1, 0), newRand()); ok {
			t.Errorf("Resolve(|v|=0.5, dir %v) produced a sound", dir)
		}
	}
}

func TestResolveThresholdGateIsMonotonic(t *testing.T) {
	self, other := woodAgainstMetal()
	normal := gamemath.V2(0, 1)
	for v := 0.0; v < 1; v += 0.05 {
		if _, ok := Resolve(self, other, gamemath.V2(0, v), normal, newRand()); ok {
			t.Errorf("speed %v below min produced a sound", v)
		}
	}
	for v := 1.0; v < 30; v += 0.5 {
		if _, ok := Resolve(self, other, gamemath.V2(0, v), normal, newRand()); !ok {
			t.Errorf("speed %v at or above min was silent", v)
		}
	}
}

func TestResolveClampsAboveMax(t *testing.T) {
	self, other := woodAgainstMetal()
	for _, v := range []float64{10, 11, 500} {
		got, ok := Resolve(self, other, gamemath.V2(v, 0), gamemath.V2(1, 0), newRand())
		if !ok {
			t.Fatalf("speed %v was silent", v)
		}
		if got.Volume != 1 {
			t.Errorf("speed %v: Volume = %v, want 1", v, got.Volume)
		}
		if got.Clip != "clipC" {
			t.Errorf("speed %v: Clip = %q, want last clip", v, got.Clip)
		}
	}
}

func TestResolveFallback(t *testing.T) {
	self := materials.NewMaterial("wood", wood)
	self.VelocityThreshold = materials.Range{Min: 0, Max: 10}
	self.AudioSets = []materials.AudioSet{
		{Key: metal, Impacts: []materials.ClipRef{"metal.wav"}},
		{Key: stone, Impacts: []materials.ClipRef{"stone.wav"}},
	}
	grass := materials.NewMaterial("grass", 7)
	vel := gamemath.V2(0, 5)
	normal := gamemath.V2(0, 1)

	self.SetFallbackIndex(2)
	got, ok := Resolve(self, grass, vel, normal, newRand())
	if !ok || got.Clip != "stone.wav" {
		t.Errorf("with fallback: Resolve() = %v, %v; want stone.wav", got, ok)
	}

	got, ok = Resolve(self, nil, vel, normal, newRand())
	if !ok || got.Clip != "stone.wav" {
		t.Errorf("no partner material: Resolve() = %v, %v; want stone.wav", got, ok)
	}

	self.SetFallbackIndex(0)
	if got, ok := Resolve(self, grass, vel, normal, newRand()); ok {
		t.Errorf("without fallback: Resolve() = %v, want no sound", got)
	}
	if got, ok := Resolve(self, nil, vel, normal, newRand()); ok {
		t.Errorf("without fallback or partner: Resolve() = %v, want no sound", got)
	}
}

func TestResolveRandomModeStillScalesVolume(t *testing.T) {
	self, other := woodAgainstMetal()
	self.UseCollisionVelocity = false

	seen := map[materials.ClipRef]bool{}
	rng := newRand()
	for range 200 {
		got, ok := Resolve(self, other, gamemath.V2(5.5, 0), gamemath.V2(1, 0), rng)
		if !ok {
			t.Fatal("random mode returned no sound")
		}
		if got.Volume != 0.5 {
			t.Errorf("random mode Volume = %v, want velocity-derived 0.5", got.Volume)
		}
		seen[got.Clip] = true
	}
	if len(seen) != 3 {
		t.Errorf("random mode picked %d distinct clips over 200 tries, want 3", len(seen))
	}
}

func TestResolveEmptyClipsIsSilent(t *testing.T) {
	self, other := woodAgainstMetal()
	self.SetAudioSets([]materials.AudioSet{{Key: metal, Slide: "slide.wav"}})
	if got, ok := Resolve(self, other, gamemath.V2(5, 0), gamemath.V2(1, 0), newRand()); ok {
		t.Errorf("Resolve() with no impact clips = %v, want no sound", got)
	}
}

func TestResolveNilSelf(t *testing.T) {
	if _, ok := Resolve(nil, nil, gamemath.V2(5, 0), gamemath.V2(1, 0), newRand()); ok {
		t.Error("Resolve(nil self) produced a sound")
	}
}

func TestResolveNonFiniteVelocityIsSilent(t *testing.T) {
	self, other := woodAgainstMetal()
	velocities := []gamemath.Vec3{
		{X: math.Inf(1)},
		{Y: math.Inf(-1)},
		{X: math.NaN(), Y: 1},
	}
	for _, vel := range velocities {
		if got, ok := Resolve(self, other, vel, gamemath.V2(1, 0), newRand()); ok {
			t.Errorf("Resolve(%v) = %v, want no sound", vel, got)
		}
	}
}

func TestResolveZeroVelocity(t *testing.T) {
	self, other := woodAgainstMetal()
	self.VelocityThreshold = materials.Range{Min: 0, Max: 10}
	got, ok := Resolve(self, other, gamemath.Vec3{}, gamemath.V2(0, 1), newRand())
	if !ok {
		t.Fatal("zero velocity with min 0 should still resolve")
	}
	if got.Volume != 0 || got.Clip != "clipA" {
		t.Errorf("Resolve(zero velocity) = %v, want clipA at 0", got)
	}
}

func TestClipIndex(t *testing.T) {
	tests := []struct {
		speed float64
		n     int
		want  int
	}{
		{0, 1, 0},
		{1, 1, 0},
		{0, 4, 0},
		{0.33, 4, 0},
		{0.34, 4, 1},
		{0.5, 3, 1},
		{0.99, 4, 2},
		{1, 4, 3},
		{1.7, 4, 3},
		{-0.2, 4, 0},
		{math.NaN(), 4, 0},
		{math.Inf(-1), 4, 0},
		{math.Inf(1), 4, 3},
	}
	for _, tt := range tests {
		if got := ClipIndex(tt.speed, tt.n); got != tt.want {
			t.Errorf("ClipIndex(%v, %d) = %d, want %d", tt.speed, tt.n, got, tt.want)
		}
		if tt.speed >= 0 && tt.speed <= 1 {
			if want := int(math.Floor(tt.speed * float64(tt.n-1))); ClipIndex(tt.speed, tt.n) != want {
				t.Errorf("ClipIndex(%v, %d) disagrees with floor(s*(n-1)) = %d", tt.speed, tt.n, want)
			}
		}
	}
}

func TestPitch(t *testing.T) {
	rng := newRand()
	for range 500 {
		p := Pitch(1, 0.1, rng)
		if p < 0.9 || p > 1.1 {
			t.Fatalf("Pitch(1, 0.1) = %v, outside [0.9, 1.1]", p)
		}
	}
	if got := Pitch(1.2, 0, rng); got != 1.2 {
		t.Errorf("Pitch with no randomness = %v, want 1.2", got)
	}
}
