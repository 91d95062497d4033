// Package surface answers "which sound material is at this contact point".
package surface

import (
	"math"

	"github.com/automoto/physsound/materials"
	"github.com/automoto/physsound/shared/gamemath"
)

// Provider resolves the material a body presents at a contact point.
type Provider interface {
	MaterialAt(point gamemath.Vec3) *materials.Material
}

// Blender is a Provider whose material varies across its surface. Slide
// sounds use the blend weights instead of a single material.
type Blender interface {
	Provider
	Composition(point gamemath.Vec3) map[materials.Type]float64
}

// Body is a Provider with one material everywhere.
type Body struct {
	Material *materials.Material
}

func (b Body) MaterialAt(gamemath.Vec3) *materials.Material {
	return b.Material
}

// Terrain is a grid of materials in the XY plane. Cells without a material
// are nil.
type Terrain struct {
	originX, originY float64
	cellSize         float64
	cols, rows       int
	cells            []*materials.Material
	blendRadius      int
}

// NewTerrain returns an empty cols x rows grid with its top-left corner at
// (originX, originY).
func NewTerrain(originX, originY, cellSize float64, cols, rows, blendRadius int) *Terrain {
	if cellSize <= 0 {
		cellSize = 1
	}
	if blendRadius < 0 {
		blendRadius = 0
	}
	return &Terrain{
		originX:     originX,
		originY:     originY,
		cellSize:    cellSize,
		cols:        cols,
		rows:        rows,
		cells:       make([]*materials.Material, cols*rows),
		blendRadius: blendRadius,
	}
}

// Set assigns m to the cell at (col, row). Out-of-range cells are ignored.
func (t *Terrain) Set(col, row int, m *materials.Material) {
	if col < 0 || row < 0 || col >= t.cols || row >= t.rows {
		return
	}
	t.cells[row*t.cols+col] = m
}

// At returns the material of the cell at (col, row), or nil.
func (t *Terrain) At(col, row int) *materials.Material {
	if col < 0 || row < 0 || col >= t.cols || row >= t.rows {
		return nil
	}
	return t.cells[row*t.cols+col]
}

func (t *Terrain) Origin() (x, y float64) { return t.originX, t.originY }
func (t *Terrain) CellSize() float64      { return t.cellSize }
func (t *Terrain) Size() (cols, rows int) { return t.cols, t.rows }

func (t *Terrain) cellOf(point gamemath.Vec3) (int, int) {
	col := int(math.Floor((point.X - t.originX) / t.cellSize))
	row := int(math.Floor((point.Y - t.originY) / t.cellSize))
	return col, row
}

// Composition returns the share of each material type in the footprint
// around point. Shares sum to 1, or the map is empty when no cell in the
// footprint has a material.
func (t *Terrain) Composition(point gamemath.Vec3) map[materials.Type]float64 {
	col, row := t.cellOf(point)
	counts := make(map[materials.Type]float64)
	total := 0.0
	for dy := -t.blendRadius; dy <= t.blendRadius; dy++ {
		for dx := -t.blendRadius; dx <= t.blendRadius; dx++ {
			m := t.At(col+dx, row+dy)
			if m == nil {
				continue
			}
			counts[m.TypeKey]++
			total++
		}
	}
	for k := range counts {
		counts[k] /= total
	}
	return counts
}

// MaterialAt returns the dominant material in the footprint around point.
// Ties go to the cell under the point, then to the lowest type key.
func (t *Terrain) MaterialAt(point gamemath.Vec3) *materials.Material {
	col, row := t.cellOf(point)
	counts := make(map[materials.Type]int)
	first := make(map[materials.Type]*materials.Material)
	for dy := -t.blendRadius; dy <= t.blendRadius; dy++ {
		for dx := -t.blendRadius; dx <= t.blendRadius; dx++ {
			m := t.At(col+dx, row+dy)
			if m == nil {
				continue
			}
			if _, ok := first[m.TypeKey]; !ok {
				first[m.TypeKey] = m
			}
			counts[m.TypeKey]++
		}
	}

	under := t.At(col, row)
	best := materials.NoType
	for k, n := range counts {
		switch {
		case best == materials.NoType, n > counts[best]:
			best = k
		case n < counts[best]:
		case under != nil && under.TypeKey == k:
			best = k
		case under != nil && under.TypeKey == best:
		case k < best:
			best = k
		}
	}
	if best == materials.NoType {
		return nil
	}
	if under != nil && under.TypeKey == best {
		return under
	}
	return first[best]
}
