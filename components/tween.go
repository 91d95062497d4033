package components

import (
	"github.com/tanema/gween"
	"github.com/yohamta/donburi"
)

// Tween drives the X position of a kinematic body.
var Tween = donburi.NewComponentType[gween.Sequence]()
