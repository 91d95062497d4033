package tags

import "github.com/yohamta/donburi"

var (
	Body    = donburi.NewTag().SetName("Body")
	Terrain = donburi.NewTag().SetName("Terrain")
)

// Resolv tags for physics collision
const (
	ResolvSolid = "solid"
	ResolvBody  = "body"
)
