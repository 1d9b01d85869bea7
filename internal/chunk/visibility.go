package chunk

import (
	"math"
	"sort"
	"sync"

	"github.com/annel0/zoneworld/internal/config"
	"github.com/annel0/zoneworld/internal/vec"
	"github.com/annel0/zoneworld/internal/world/zone"
	"github.com/go-gl/mathgl/mgl64"
)

// neverCulled: чанки ближе этого расстояния (в чанках) не отсекаются по направлению взгляда
const neverCulled = 1.5

// Viewer хранит снимок положения и направления взгляда наблюдателя
type Viewer struct {
	Position mgl64.Vec3
	Facing   mgl64.Vec3
}

// Coord задаёт координаты чанка
type Coord struct {
	X int `json:"x"`
	Z int `json:"z"`
}

// Descriptor описывает чанк, который нужно показать, с уровнем детализации
type Descriptor struct {
	Coord
	LOD      zone.LOD `json:"lod"`
	Distance float64  `json:"distance"` // В чанках от чанка наблюдателя
}

// Visibility вычисляет набор видимых чанков вокруг наблюдателя.
// Пересчитывает набор только при заметном смещении или повороте.
type Visibility struct {
	cfg       config.ViewConfig
	chunkSize int

	mu      sync.Mutex
	last    Viewer
	lastSet []Descriptor
	valid   bool
}

// NewVisibility создаёт менеджер видимости
func NewVisibility(cfg config.ViewConfig, chunkSize int) *Visibility {
	return &Visibility{cfg: cfg, chunkSize: chunkSize}
}

// BlockOf возвращает индекс клетки, содержащей координату.
// Клетка i занимает [i-0.5, i+0.5).
func BlockOf(v float64) int {
	return int(math.Floor(v + 0.5))
}

// ChunkOf возвращает чанк, в котором находится точка
func (v *Visibility) ChunkOf(p mgl64.Vec3) Coord {
	c := vec.Vec2{X: BlockOf(p.X()), Z: BlockOf(p.Z())}.ToChunkCoords(v.chunkSize)
	return Coord{X: c.X, Z: c.Z}
}

// Compute возвращает видимые чанки, отсортированные по возрастанию расстояния.
// Чистая функция снимка наблюдателя.
func (v *Visibility) Compute(viewer Viewer) []Descriptor {
	center := v.ChunkOf(viewer.Position)
	radius := v.cfg.Radius

	facing := mgl64.Vec2{viewer.Facing.X(), viewer.Facing.Z()}
	cull := facing.Len() > 1e-9
	if cull {
		facing = facing.Normalize()
	}

	out := make([]Descriptor, 0, (2*radius+1)*(2*radius+1))
	for dx := -radius; dx <= radius; dx++ {
		for dz := -radius; dz <= radius; dz++ {
			dist := math.Hypot(float64(dx), float64(dz))
			if dist > float64(radius) {
				continue
			}
			if cull && dist >= neverCulled {
				dir := mgl64.Vec2{float64(dx), float64(dz)}.Mul(1 / dist)
				if dir.Dot(facing) < v.cfg.PeripheralDot {
					continue
				}
			}

			lod := zone.LodLow
			if dist <= float64(v.cfg.HighDetailRadius) {
				lod = zone.LodHigh
			}
			out = append(out, Descriptor{
				Coord:    Coord{X: center.X + dx, Z: center.Z + dz},
				LOD:      lod,
				Distance: dist,
			})
		}
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Distance != b.Distance {
			return a.Distance < b.Distance
		}
		if a.X != b.X {
			return a.X < b.X
		}
		return a.Z < b.Z
	})
	return out
}

// Update пересчитывает набор, если наблюдатель сместился или повернулся больше порога.
// Возвращает актуальный набор и признак пересчёта.
func (v *Visibility) Update(viewer Viewer) ([]Descriptor, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.valid && !v.movedLocked(viewer) {
		return v.lastSet, false
	}
	v.lastSet = v.Compute(viewer)
	v.last = viewer
	v.valid = true
	return v.lastSet, true
}

func (v *Visibility) movedLocked(viewer Viewer) bool {
	if viewer.Position.Sub(v.last.Position).Len() > v.cfg.PositionEpsilon {
		return true
	}
	if v.ChunkOf(viewer.Position) != v.ChunkOf(v.last.Position) {
		return true
	}
	return viewer.Facing.Sub(v.last.Facing).Len() > v.cfg.FacingEpsilon
}
