package materials

import (
	"math"
	"sync"
	"testing"

	"github.com/automoto/physsound/shared/gamemath"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const (
	wood  Type = 1
	metal Type = 2
	stone Type = 3
)

func newObservedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.WarnLevel)
	return zap.New(core), logs
}

func TestRangeNormalize(t *testing.T) {
	r := Range{Min: 1, Max: 10}
	tests := []struct {
		v, want float64
	}{
		{0, 0},
		{1, 0},
		{5.5, 0.5},
		{10, 1},
		{25, 1},
	}
	for _, tt := range tests {
		if got := r.Normalize(tt.v); got != tt.want {
			t.Errorf("Normalize(%v) = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestRangeNormalizeDegenerate(t *testing.T) {
	r := Range{Min: 2, Max: 2}
	if got := r.Normalize(1); got != 0 {
		t.Errorf("Normalize below degenerate range = %v, want 0", got)
	}
	if got := r.Normalize(2); got != 1 {
		t.Errorf("Normalize at degenerate range = %v, want 1", got)
	}
}

func TestBuildLookupDuplicateKeepsFirst(t *testing.T) {
	log, logs := newObservedLogger()
	m := NewMaterial("crate", wood)
	m.AudioSets = []AudioSet{
		{Key: metal, Impacts: []ClipRef{"first.wav"}},
		{Key: stone, Impacts: []ClipRef{"stone.wav"}},
		{Key: metal, Impacts: []ClipRef{"second.wav"}},
	}

	l := BuildLookup(m, log)

	set, ok := l.AudioSet(metal)
	if !ok {
		t.Fatal("AudioSet(metal) not found")
	}
	if set.Impacts[0] != "first.wav" {
		t.Errorf("AudioSet(metal) = %v, want the first authored set", set.Impacts)
	}
	if l.Len() != 2 {
		t.Errorf("Len() = %d, want 2", l.Len())
	}
	if n := logs.FilterMessageSnippet("duplicate audio set").Len(); n != 1 {
		t.Errorf("duplicate diagnostics = %d, want exactly 1", n)
	}
}

func TestBuildLookupDiagnosticPerDuplicate(t *testing.T) {
	log, logs := newObservedLogger()
	m := NewMaterial("crate", wood)
	m.AudioSets = []AudioSet{{Key: metal}, {Key: metal}, {Key: metal}, {Key: stone}, {Key: stone}}

	BuildLookup(m, log)

	if n := logs.FilterMessageSnippet("duplicate audio set").Len(); n != 3 {
		t.Errorf("duplicate diagnostics = %d, want 3", n)
	}
}

func TestBuildLookupFallback(t *testing.T) {
	tests := []struct {
		name     string
		index    int
		wantKey  Type
		wantWarn int
	}{
		{"none", 0, NoType, 0},
		{"first set", 1, metal, 0},
		{"second set", 2, stone, 0},
		{"out of range", 3, NoType, 1},
		{"negative", -4, NoType, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, logs := newObservedLogger()
			m := NewMaterial("crate", wood)
			m.AudioSets = []AudioSet{{Key: metal}, {Key: stone}}
			m.FallbackIndex = tt.index

			l := BuildLookup(m, log)
			if got := l.FallbackKey(); got != tt.wantKey {
				t.Errorf("FallbackKey() = %d, want %d", got, tt.wantKey)
			}
			if got := logs.Len(); got != tt.wantWarn {
				t.Errorf("warnings = %d, want %d", got, tt.wantWarn)
			}
		})
	}
}

func TestLookupIsSnapshot(t *testing.T) {
	m := NewMaterial("crate", wood)
	m.AudioSets = []AudioSet{{Key: metal, Impacts: []ClipRef{"a.wav"}}}
	l := m.Activate(nil)

	m.AudioSets[0].Impacts[0] = "changed.wav"
	set, _ := l.AudioSet(metal)
	if set.Impacts[0] != "a.wav" {
		t.Errorf("snapshot changed with authored list: %v", set.Impacts)
	}

	m.SetAudioSets([]AudioSet{{Key: stone}})
	if _, ok := m.Lookup().AudioSet(metal); ok {
		t.Error("rebuilt lookup still resolves a removed type")
	}
	if _, ok := m.Lookup().AudioSet(stone); !ok {
		t.Error("rebuilt lookup misses the new type")
	}
}

func TestLookupConcurrentFirstUse(t *testing.T) {
	m := NewMaterial("crate", wood)
	m.AudioSets = []AudioSet{{Key: metal, Impacts: []ClipRef{"a.wav"}}}

	var wg sync.WaitGroup
	got := make([]*Lookup, 8)
	for i := range got {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got[i] = m.Lookup()
		}()
	}
	wg.Wait()

	for i, l := range got {
		if l != got[0] {
			t.Fatalf("goroutine %d saw a different lookup", i)
		}
	}
	if _, ok := got[0].AudioSet(metal); !ok {
		t.Error("lazily built lookup misses metal")
	}
}

func TestLookupResolve(t *testing.T) {
	m := NewMaterial("crate", wood)
	m.AudioSets = []AudioSet{{Key: metal}, {Key: stone}}
	m.FallbackIndex = 2
	l := m.Activate(nil)

	if set, ok := l.Resolve(metal); !ok || set.Key != metal {
		t.Errorf("Resolve(metal) = %v, %v; want direct metal set", set, ok)
	}
	if set, ok := l.Resolve(wood); !ok || set.Key != stone {
		t.Errorf("Resolve(wood) = %v, %v; want fallback stone set", set, ok)
	}
	if set, ok := l.Resolve(NoType); !ok || set.Key != stone {
		t.Errorf("Resolve(NoType) = %v, %v; want fallback stone set", set, ok)
	}

	m.SetFallbackIndex(0)
	if _, ok := m.Lookup().Resolve(wood); ok {
		t.Error("Resolve(wood) found a set with no fallback configured")
	}
}

func TestHasAudioSet(t *testing.T) {
	m := NewMaterial("crate", wood)
	m.AudioSets = []AudioSet{{Key: metal, Slide: "slide.wav"}}
	if !m.HasAudioSet(metal) {
		t.Error("HasAudioSet(metal) = false, want true")
	}
	if m.HasAudioSet(stone) {
		t.Error("HasAudioSet(stone) = true, want false")
	}
	if !m.GetAudioSet(metal).HasSlide() {
		t.Error("GetAudioSet(metal).HasSlide() = false, want true")
	}
}

func TestFallbackOptions(t *testing.T) {
	reg := NewRegistry([]string{"Default", "Wood", "Metal"})
	m := NewMaterial("crate", wood)
	m.AudioSets = []AudioSet{{Key: metal}, {Key: 9}}

	got := m.FallbackOptions(reg)
	want := []string{"None", "Metal", ""}
	if len(got) != len(want) {
		t.Fatalf("FallbackOptions() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("FallbackOptions()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestImpactVolume(t *testing.T) {
	m := NewMaterial("crate", wood)
	m.VelocityThreshold = Range{Min: 1, Max: 10}
	m.ImpactNormalBias = 0

	normal := gamemath.V2(1, 0)
	tests := []struct {
		name   string
		vel    gamemath.Vec3
		want   float64
		wantOK bool
	}{
		{"below threshold", gamemath.V2(0.5, 0), 0, false},
		{"at min", gamemath.V2(1, 0), 0, true},
		{"midpoint", gamemath.V2(5.5, 0), 0.5, true},
		{"at max", gamemath.V2(10, 0), 1, true},
		{"above max", gamemath.V2(40, 0), 1, true},
		{"infinite", gamemath.Vec3{X: math.Inf(1)}, 0, false},
		{"nan", gamemath.Vec3{X: math.NaN()}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := m.ImpactVolume(tt.vel, normal)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("ImpactVolume(%v) = %v, %v; want %v, %v", tt.vel, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestImpactSpeedBias(t *testing.T) {
	m := NewMaterial("crate", wood)
	vel := gamemath.V2(3, 4) // |v| = 5
	normal := gamemath.V2(1, 0)

	m.ImpactNormalBias = 0
	if got := m.ImpactSpeed(vel, normal); math.Abs(got-5) > 1e-12 {
		t.Errorf("bias 0: ImpactSpeed = %v, want full speed 5", got)
	}

	m.ImpactNormalBias = 1
	if got := m.ImpactSpeed(vel, normal); math.Abs(got-3) > 1e-12 {
		t.Errorf("bias 1: ImpactSpeed = %v, want aligned component 3", got)
	}
}

func TestImpactSpeedZeroVectors(t *testing.T) {
	m := NewMaterial("crate", wood)
	if got := m.ImpactSpeed(gamemath.Vec3{}, gamemath.V2(0, 1)); got != 0 {
		t.Errorf("ImpactSpeed(zero velocity) = %v, want 0", got)
	}
	if got := m.ImpactSpeed(gamemath.V2(2, 0), gamemath.Vec3{}); math.IsNaN(got) {
		t.Error("ImpactSpeed(zero normal) is NaN")
	}
}

func TestSlideVolumeUsesTangentialSpeed(t *testing.T) {
	m := NewMaterial("crate", wood)
	m.VelocityThreshold = Range{Min: 0, Max: 4}
	normal := gamemath.V2(0, -1)

	if got := m.SlideVolume(gamemath.V2(2, 0), normal); got != 0.5 {
		t.Errorf("tangential slide volume = %v, want 0.5", got)
	}
	if got := m.SlideVolume(gamemath.V2(0, 2), normal); got != 0 {
		t.Errorf("head-on slide volume = %v, want 0", got)
	}
}
