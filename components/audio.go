package components

import (
	"math/rand/v2"

	"github.com/automoto/physsound/playback"
	"github.com/yohamta/donburi"
	"go.uber.org/zap"
)

// AudioData stores the world's audio output and shared randomness (singleton
// component).
type AudioData struct {
	Backend   playback.Backend
	Durations playback.Durations
	Rand      *rand.Rand
	Log       *zap.Logger
	Stats     AudioStats
}

// AudioStats counts sound events for diagnostics.
type AudioStats struct {
	Impacts       int
	SilentImpacts int
	SlideStarts   int
	IgnoredEvents int
}

var Audio = donburi.NewComponentType[AudioData]()
