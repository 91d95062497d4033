package config

import "github.com/yohamta/donburi/ecs"

// Default is the only ECS layer the sound systems use.
const Default ecs.LayerID = 0

// MaterialConfig holds the defaults a freshly authored sound material starts with.
type MaterialConfig struct {
	PitchRandomness      float64
	SlidePitchMod        float64
	VelocityMin          float64
	VelocityMax          float64
	ImpactNormalBias     float64
	UseCollisionVelocity bool
	ScaleImpactVolume    bool
}

// TerrainConfig controls how composite terrain blends materials.
type TerrainConfig struct {
	CellSize    float64
	BlendRadius int // cells sampled on each side of the contact cell
}

// SimConfig contains headless simulation settings
type SimConfig struct {
	TickRate      int // updates per second
	Width         int
	Height        int
	SpaceCellSize int
	Gravity       float64
	Friction      float64
	MaxSpeed      float64
	PushAccel     float64 // speed added per frame while a push is held
	JumpSpeed     float64
}

// DebugConfig toggles development aids
type DebugConfig struct {
	Overlay bool // collision boxes and sound counters on screen
}

var Material MaterialConfig
var Terrain TerrainConfig
var Sim SimConfig
var Debug DebugConfig

func init() {
	Material = MaterialConfig{
		PitchRandomness:      0.1,
		SlidePitchMod:        0.05,
		VelocityMin:          0,
		VelocityMax:          1,
		ImpactNormalBias:     1,
		UseCollisionVelocity: true,
		ScaleImpactVolume:    true,
	}

	Terrain = TerrainConfig{
		CellSize:    16,
		BlendRadius: 1,
	}

	Sim = SimConfig{
		TickRate:      60,
		Width:         640,
		Height:        360,
		SpaceCellSize: 16,
		Gravity:       0.75,
		Friction:      0.05,
		MaxSpeed:      16,
		PushAccel:     0.3,
		JumpSpeed:     8,
	}

	Debug = DebugConfig{
		Overlay: false,
	}
}
