package components

import (
	"github.com/automoto/physsound/surface"
	"github.com/yohamta/donburi"
)

// SurfaceData tells colliding bodies what material they touched.
type SurfaceData struct {
	Provider surface.Provider
}

var Surface = donburi.NewComponentType[SurfaceData]()
