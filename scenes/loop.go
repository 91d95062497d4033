package scenes

import (
	"context"
	"time"

	"github.com/yohamta/donburi/ecs"
	"go.uber.org/zap"
)

// Loop drives a world without a window, either in real time or as fast as
// possible.
type Loop struct {
	ecs      *ecs.ECS
	tickRate int
	ticks    int
	log      *zap.Logger
}

func NewLoop(ecs *ecs.ECS, tickRate int, log *zap.Logger) *Loop {
	if log == nil {
		log = zap.NewNop()
	}
	if tickRate <= 0 {
		tickRate = 60
	}
	return &Loop{
		ecs:      ecs,
		tickRate: tickRate,
		log:      log,
	}
}

// Step advances the world n frames immediately.
func (l *Loop) Step(n int) {
	for i := 0; i < n; i++ {
		l.tick()
	}
}

// Run advances the world at the tick rate until ctx is done or maxTicks
// frames have run. maxTicks <= 0 means no limit.
func (l *Loop) Run(ctx context.Context, maxTicks int) {
	ticker := time.NewTicker(time.Second / time.Duration(l.tickRate))
	defer ticker.Stop()

	l.log.Info("loop started", zap.Int("tickRate", l.tickRate))

	for {
		select {
		case <-ctx.Done():
			l.log.Info("loop stopped", zap.Int("ticks", l.ticks))
			return
		case <-ticker.C:
			l.tick()
			if maxTicks > 0 && l.ticks >= maxTicks {
				l.log.Info("loop finished", zap.Int("ticks", l.ticks))
				return
			}
		}
	}
}

// Ticks returns the number of frames run so far.
func (l *Loop) Ticks() int {
	return l.ticks
}

func (l *Loop) tick() {
	l.ecs.Update()
	l.ticks++
}
