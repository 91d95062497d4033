package materials

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"
)

const libraryJSON = `{
  "types": ["Default", "Wood", "Metal"],
  "materials": [
    {
      "name": "crate",
      "type": 1,
      "fallbackIndex": 0,
      "pitchRandomness": 0.1,
      "slidePitchMod": 0.05,
      "velocityThreshold": {"min": 1, "max": 10},
      "impactNormalBias": 0,
      "useCollisionVelocity": true,
      "scaleImpactVolume": true,
      "audioSets": [
        {"key": 2, "impacts": ["a.wav", "b.wav", "c.wav"], "slide": "scrape.wav"},
        {"key": 2, "impacts": ["dup.wav"]}
      ]
    },
    {
      "name": "pipe",
      "type": 2,
      "velocityThreshold": {"min": 0.5, "max": 6},
      "audioSets": [{"key": 1, "impacts": ["clang.wav"]}]
    }
  ]
}`

func TestDecodeLibrary(t *testing.T) {
	log, logs := newObservedLogger()
	lib, err := Decode(strings.NewReader(libraryJSON), log)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if lib.Types.Name(2) != "Metal" {
		t.Errorf("Types.Name(2) = %q, want Metal", lib.Types.Name(2))
	}

	crate, ok := lib.Get("crate")
	if !ok {
		t.Fatal("Get(crate) not found")
	}
	if len(crate.AudioSets) != 2 {
		t.Errorf("authored duplicates dropped on decode: %d sets", len(crate.AudioSets))
	}
	if n := logs.FilterMessageSnippet("duplicate audio set").Len(); n != 1 {
		t.Errorf("duplicate diagnostics = %d, want 1", n)
	}

	pipe, _ := lib.Get("pipe")
	if pipe.FallbackIndex != 0 || pipe.Lookup().FallbackKey() != NoType {
		t.Errorf("unset fallback decoded as %d / %d", pipe.FallbackIndex, pipe.Lookup().FallbackKey())
	}

	if m, ok := lib.ByType(2); !ok || m.Name != "pipe" {
		t.Errorf("ByType(2) = %v, %v; want pipe", m, ok)
	}
}

func TestLibraryRoundTrip(t *testing.T) {
	lib, err := Decode(strings.NewReader(libraryJSON), nil)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	var buf bytes.Buffer
	if err := lib.Encode(&buf); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	again, err := Decode(&buf, nil)
	if err != nil {
		t.Fatalf("Decode(Encode()) error = %v", err)
	}

	if !reflect.DeepEqual(lib.Types.Names(), again.Types.Names()) {
		t.Errorf("types changed: %v -> %v", lib.Types.Names(), again.Types.Names())
	}
	for _, m := range lib.Materials() {
		got, ok := again.Get(m.Name)
		if !ok {
			t.Errorf("material %q lost in round trip", m.Name)
			continue
		}
		if !reflect.DeepEqual(m.AudioSets, got.AudioSets) {
			t.Errorf("%s audio sets changed: %v -> %v", m.Name, m.AudioSets, got.AudioSets)
		}
		if m.VelocityThreshold != got.VelocityThreshold ||
			m.PitchRandomness != got.PitchRandomness ||
			m.SlidePitchMod != got.SlidePitchMod ||
			m.ImpactNormalBias != got.ImpactNormalBias ||
			m.UseCollisionVelocity != got.UseCollisionVelocity ||
			m.ScaleImpactVolume != got.ScaleImpactVolume ||
			m.FallbackIndex != got.FallbackIndex ||
			m.TypeKey != got.TypeKey {
			t.Errorf("%s parameters changed in round trip", m.Name)
		}
	}
}

func TestNewLibraryErrors(t *testing.T) {
	reg := NewRegistry([]string{"Wood"})

	if _, err := NewLibrary(reg, []*Material{{Name: ""}}, nil); !errors.Is(err, ErrUnnamedMaterial) {
		t.Errorf("unnamed material error = %v, want ErrUnnamedMaterial", err)
	}
	if _, err := NewLibrary(reg, []*Material{{Name: "a"}, {Name: "a"}}, nil); !errors.Is(err, ErrDuplicateName) {
		t.Errorf("duplicate name error = %v, want ErrDuplicateName", err)
	}
	if _, err := NewLibrary(reg, []*Material{{Name: "a", TypeKey: 4}}, nil); !errors.Is(err, ErrUnknownType) {
		t.Errorf("unknown type error = %v, want ErrUnknownType", err)
	}
}

func TestDecodeMalformed(t *testing.T) {
	if _, err := Decode(strings.NewReader("{"), nil); err == nil {
		t.Error("Decode() of truncated JSON returned no error")
	}
}
