package components

import (
	"github.com/automoto/physsound/shared/gamemath"
	"github.com/yohamta/donburi"
)

// Touch is one frame of contact between a body and another entity.
type Touch struct {
	Other  donburi.Entity
	Normal gamemath.Vec3
	Point  gamemath.Vec3
	// Velocity is the relative velocity when the bodies met, before the
	// collision response removed the approaching component.
	Velocity gamemath.Vec3
}

// ContactsData holds the touches recorded this frame and the ones that were
// active last frame.
type ContactsData struct {
	Touches []Touch
	Active  []Touch
}

// Record adds t unless the body already touches t.Other this frame.
func (c *ContactsData) Record(t Touch) {
	for _, have := range c.Touches {
		if have.Other == t.Other {
			return
		}
	}
	c.Touches = append(c.Touches, t)
}

var Contacts = donburi.NewComponentType[ContactsData]()
