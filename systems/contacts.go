package systems

import (
	"github.com/automoto/physsound/components"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdateContacts turns the touches recorded this frame into sound events. A
// partner touched for the first time produces one impact, a partner still
// touched produces a continuous slide event and a partner no longer touched
// produces exactly one exit event.
func UpdateContacts(ecs *ecs.ECS) {
	w := ecs.World
	components.Contacts.Each(w, func(e *donburi.Entry) {
		c := components.Contacts.Get(e)

		for _, t := range c.Touches {
			other := entryOf(w, t.Other)
			if !touches(c.Active, t.Other) {
				PlayImpact(ecs, e, Contact{
					Other:            other,
					RelativeVelocity: t.Velocity,
					Normal:           t.Normal,
					Point:            t.Point,
				})
				continue
			}
			SetSlideTargets(ecs, e, Contact{
				Other:            other,
				RelativeVelocity: velocityOf(e).Sub(velocityOf(other)),
				Normal:           t.Normal,
				Point:            t.Point,
			}, false)
		}

		for _, t := range c.Active {
			if touches(c.Touches, t.Other) {
				continue
			}
			SetSlideTargets(ecs, e, Contact{Other: entryOf(w, t.Other)}, true)
		}

		c.Active = append(c.Active[:0], c.Touches...)
		c.Touches = c.Touches[:0]
	})
}

func touches(list []components.Touch, other donburi.Entity) bool {
	for _, t := range list {
		if t.Other == other {
			return true
		}
	}
	return false
}

func entryOf(w donburi.World, entity donburi.Entity) *donburi.Entry {
	if !w.Valid(entity) {
		return nil
	}
	return w.Entry(entity)
}
