package systems

import (
	"github.com/automoto/physsound/components"
	"github.com/yohamta/donburi/ecs"
)

// UpdateObjects refreshes the space cells of every moved collision box.
func UpdateObjects(ecs *ecs.ECS) {
	for e := range components.Object.Iter(ecs.World) {
		obj := components.Object.Get(e)
		obj.Update()
	}
}
