package systems

import (
	"math"

	"github.com/automoto/physsound/components"
	cfg "github.com/automoto/physsound/config"
	"github.com/automoto/physsound/shared/gamemath"
	"github.com/automoto/physsound/tags"
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// touchTolerance lets resting boxes that drifted into each other by float
// error still count as touching.
const touchTolerance = 0.01

// UpdateCollisions moves every dynamic body by its speed, stopping it against
// solids and other bodies, and records what it touched this frame.
func UpdateCollisions(ecs *ecs.ECS) {
	tags.Body.Each(ecs.World, func(e *donburi.Entry) {
		physics := components.Physics.Get(e)
		if physics.Kinematic {
			return
		}
		obj := components.Object.Get(e)

		resolveHorizontalCollision(ecs.World, e, physics, obj.Object)
		resolveVerticalCollision(ecs.World, e, physics, obj.Object)
	})
}

// resolveHorizontalCollision handles horizontal movement and wall collision.
func resolveHorizontalCollision(w donburi.World, e *donburi.Entry, physics *components.PhysicsData, object *resolv.Object) {
	dx := physics.SpeedX
	if dx == 0 {
		return
	}

	check := object.Check(dx, 0, tags.ResolvSolid, tags.ResolvBody)
	if check == nil {
		object.X += dx
		return
	}

	var (
		blocker *resolv.Object
		move    = dx
	)
	for _, o := range check.Objects {
		// Only boxes sharing some height block horizontal movement.
		if o.Y >= object.Y+object.H || o.Y+o.H <= object.Y {
			continue
		}
		var gap float64
		if dx > 0 {
			gap = o.X - (object.X + object.W)
		} else {
			gap = object.X - (o.X + o.W)
		}
		if gap < -touchTolerance || gap > math.Abs(move) {
			continue
		}
		blocker = o
		move = math.Copysign(math.Max(gap, 0), dx)
	}
	if blocker == nil {
		object.X += dx
		return
	}

	recordTouch(w, e, object, blocker, move, 0)
	physics.SpeedX = 0
	object.X += move
}

// resolveVerticalCollision handles falling, landing and ceiling hits.
func resolveVerticalCollision(w donburi.World, e *donburi.Entry, physics *components.PhysicsData, object *resolv.Object) {
	physics.OnGround = nil
	dy := gamemath.ClampSpeed(physics.SpeedY, cfg.Sim.MaxSpeed)

	checkDistance := dy
	if dy >= 0 {
		checkDistance++
	}

	check := object.Check(0, checkDistance, tags.ResolvSolid, tags.ResolvBody)
	if check == nil {
		object.Y += dy
		return
	}

	var (
		blocker *resolv.Object
		move    = dy
	)
	for _, o := range check.Objects {
		// Only boxes sharing some width block vertical movement.
		if o.X >= object.X+object.W || o.X+o.W <= object.X {
			continue
		}
		var gap float64
		if dy >= 0 {
			gap = o.Y - (object.Y + object.H)
		} else {
			gap = object.Y - (o.Y + o.H)
		}
		if gap < -touchTolerance || gap > math.Abs(move) {
			continue
		}
		blocker = o
		move = math.Copysign(math.Max(gap, 0), checkDistance)
	}
	if blocker == nil {
		object.Y += dy
		return
	}

	recordTouch(w, e, object, blocker, 0, move)
	if dy >= 0 {
		physics.OnGround = blocker
	}
	physics.SpeedY = 0
	object.Y += move
}

// recordTouch stores the contact between the body's box, moved by dx and dy,
// and other. The relative velocity is taken before the collision response so
// impacts see the approach speed. A partner that tracks contacts gets the
// mirrored touch.
func recordTouch(w donburi.World, e *donburi.Entry, object, other *resolv.Object, dx, dy float64) {
	if !e.HasComponent(components.Contacts) {
		return
	}
	otherEntry, ok := other.Data.(*donburi.Entry)
	if !ok || !otherEntry.Valid() {
		return
	}

	self := gamemath.Rect{X: object.X + dx, Y: object.Y + dy, W: object.W, H: object.H}
	box := gamemath.Rect{X: other.X, Y: other.Y, W: other.W, H: other.H}
	normal := self.ContactNormal(box)
	point := self.ContactPoint(normal)
	rel := velocityOf(e).Sub(velocityOf(otherEntry))

	components.Contacts.Get(e).Record(components.Touch{
		Other:    otherEntry.Entity(),
		Normal:   normal,
		Point:    point,
		Velocity: rel,
	})

	if otherEntry.HasComponent(components.Contacts) {
		components.Contacts.Get(otherEntry).Record(components.Touch{
			Other:    e.Entity(),
			Normal:   normal.Scale(-1),
			Point:    point,
			Velocity: rel.Scale(-1),
		})
	}
}

func velocityOf(e *donburi.Entry) gamemath.Vec3 {
	if e == nil || !e.Valid() || !e.HasComponent(components.Physics) {
		return gamemath.Vec3{}
	}
	p := components.Physics.Get(e)
	return gamemath.V2(p.SpeedX, p.SpeedY)
}
