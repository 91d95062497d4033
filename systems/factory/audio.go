package factory

import (
	"math/rand/v2"

	"github.com/automoto/physsound/archetypes"
	"github.com/automoto/physsound/components"
	"github.com/automoto/physsound/playback"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"go.uber.org/zap"
)

// CreateAudio spawns the audio singleton. seed fixes pitch jitter and random
// clip picks so runs can be replayed.
func CreateAudio(ecs *ecs.ECS, backend playback.Backend, durations playback.Durations, seed uint64, log *zap.Logger) *donburi.Entry {
	if log == nil {
		log = zap.NewNop()
	}
	audio := archetypes.Audio.Spawn(ecs)
	components.Audio.SetValue(audio, components.AudioData{
		Backend:   backend,
		Durations: durations,
		Rand:      rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		Log:       log,
	})
	return audio
}
