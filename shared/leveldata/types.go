// Package leveldata provides TMX level parsing for the sandbox scenes.
// It has no dependencies on ebitengine, donburi, or resolv; pure data only.
package leveldata

// Level holds the terrain grid and body spawns parsed from a TMX file.
type Level struct {
	Name       string
	Cols, Rows int
	TileWidth  int
	TileHeight int
	Cells      []Cell
	Bodies     []BodySpawn
}

// Width returns the level width in pixels.
func (l *Level) Width() int { return l.Cols * l.TileWidth }

// Height returns the level height in pixels.
func (l *Level) Height() int { return l.Rows * l.TileHeight }

// Cell is a solid terrain tile and the material authored on its tileset tile.
type Cell struct {
	Col, Row int
	X, Y     float64
	W, H     float64
	Material string
}

// BodySpawn is a rigid body placed in the Bodies object group.
type BodySpawn struct {
	Name      string
	Material  string
	X, Y      float64
	W, H      float64
	VX, VY    float64
	Kinematic bool
	// MoveX and MoveSeconds describe a back and forth path for kinematic
	// bodies. A zero MoveSeconds keeps the body still.
	MoveX       float64
	MoveSeconds float64
}
