package chunk

import (
	"encoding/binary"
	"math"

	"github.com/annel0/zoneworld/internal/config"
	"github.com/annel0/zoneworld/internal/vec"
	"github.com/annel0/zoneworld/internal/world"
	"github.com/annel0/zoneworld/internal/world/block"
	"github.com/annel0/zoneworld/internal/world/zone"
	"github.com/cespare/xxhash/v2"
	"github.com/go-gl/mathgl/mgl32"
)

// Source классифицирует блоки, из которых строится геометрия.
// Реализация должна быть безопасна для конкурентного чтения.
type Source interface {
	TerrainHeight(x, z int) int
	BlockAtHeight(x, y, z, groundH int, lod zone.LOD) block.BlockID
}

// Instance описывает один экземпляр геометрии с положением, поворотом, масштабом и цветом
type Instance struct {
	Position mgl32.Vec3          `json:"position"`
	Yaw      float32             `json:"yaw"`
	Scale    mgl32.Vec3          `json:"scale"`
	Color    mgl32.Vec3          `json:"color"`
	Material block.MaterialClass `json:"material"`
	Block    block.BlockID       `json:"block"`
}

// Mesh хранит геометрию одного чанка, разбитую на твёрдую и жидкую группы.
// Строится заново при каждой пересборке и после публикации не изменяется.
type Mesh struct {
	Coord  Coord      `json:"coord"`
	LOD    zone.LOD   `json:"lod"`
	Solid  []Instance `json:"solid"`
	Liquid []Instance `json:"liquid"`
}

// Count возвращает общее число экземпляров
func (m *Mesh) Count() int {
	if m == nil {
		return 0
	}
	return len(m.Solid) + len(m.Liquid)
}

// Digest возвращает хеш всех записей меша для быстрой проверки детерминизма
func (m *Mesh) Digest() uint64 {
	d := xxhash.New()
	if m == nil {
		return d.Sum64()
	}

	var buf [4]byte
	putInt := func(v int) {
		binary.LittleEndian.PutUint32(buf[:], uint32(int32(v)))
		d.Write(buf[:])
	}
	putFloat := func(v float32) {
		binary.LittleEndian.PutUint32(buf[:], math.Float32bits(v))
		d.Write(buf[:])
	}

	putInt(m.Coord.X)
	putInt(m.Coord.Z)
	putInt(int(m.LOD))
	for _, group := range [][]Instance{m.Solid, m.Liquid} {
		putInt(len(group))
		for _, in := range group {
			for _, v := range [...]mgl32.Vec3{in.Position, in.Scale, in.Color} {
				putFloat(v[0])
				putFloat(v[1])
				putFloat(v[2])
			}
			putFloat(in.Yaw)
			putInt(int(in.Block))
		}
	}
	return d.Sum64()
}

// Mesher строит геометрию чанков из классификатора блоков
type Mesher struct {
	src       Source
	biomes    []world.Biome
	seed      uint64
	chunkSize int
	minY      int
	maxY      int
	water     int
	cfg       config.MeshConfig
}

// NewMesher создаёт построитель геометрии
func NewMesher(src Source, biomes []world.Biome, wc config.WorldConfig, mc config.MeshConfig) *Mesher {
	if mc.SampleStep <= 0 {
		mc.SampleStep = 1
	}
	return &Mesher{
		src:       src,
		biomes:    biomes,
		seed:      uint64(wc.Seed),
		chunkSize: wc.ChunkSize,
		minY:      wc.MinY,
		maxY:      wc.MaxY,
		water:     wc.WaterLevel,
		cfg:       mc,
	}
}

// NewWorldMesher создаёт построитель поверх реестра мира
func NewWorldMesher(r *world.Registry, mc config.MeshConfig) *Mesher {
	return NewMesher(r, r.Biomes(), r.Config(), mc)
}

// ChunkSize возвращает размер чанка в колонках
func (m *Mesher) ChunkSize() int { return m.chunkSize }

// Build строит геометрию чанка. Для чанка без непустых клеток возвращает nil.
func (m *Mesher) Build(c Coord, lod zone.LOD) *Mesh {
	origin := vec.Vec2{X: c.X, Z: c.Z}.ChunkOrigin(m.chunkSize)
	lo, hi := m.verticalWindow(origin.X, origin.Z)

	mesh := &Mesh{Coord: c, LOD: lod}
	for lx := 0; lx < m.chunkSize; lx++ {
		for lz := 0; lz < m.chunkSize; lz++ {
			col := origin.Add(vec.Vec2{X: lx, Z: lz})
			x, z := col.X, col.Z
			h := m.src.TerrainHeight(x, z)

			// Колонка между опорными точками может выйти за общее окно
			yFrom := min(lo, h-m.cfg.SubsurfaceDepth)
			yTo := max(hi, h+m.cfg.Headroom)
			yFrom = max(yFrom, m.minY)
			yTo = min(yTo, m.maxY)

			var tint mgl32.Vec3
			tinted := false
			for y := yFrom; y <= yTo; y++ {
				id := m.src.BlockAtHeight(x, y, z, h, lod)
				if block.IsEmpty(id) {
					continue
				}

				props, known := block.Get(id)
				if known && props.BiomeTinted && !tinted {
					tint = world.BlendColor(m.biomes, float64(x), float64(z))
					tinted = true
				}

				in := m.instance(id, x, y, z, tint)
				if in.Material == block.MaterialLiquid {
					mesh.Liquid = append(mesh.Liquid, in)
					continue
				}
				mesh.Solid = append(mesh.Solid, in)
				if known && props.FloatsOnWater {
					mesh.Liquid = append(mesh.Liquid, m.instance(block.WaterBlockID, x, y, z, tint))
				}
			}
		}
	}

	if mesh.Count() == 0 {
		return nil
	}
	return mesh
}

// verticalWindow оценивает общий диапазон высот чанка по грубой сетке опорных колонок
func (m *Mesher) verticalWindow(ox, oz int) (int, int) {
	minH, maxH := math.MaxInt, math.MinInt
	sample := func(lx, lz int) {
		h := m.src.TerrainHeight(ox+lx, oz+lz)
		minH = min(minH, h)
		maxH = max(maxH, h)
	}

	last := m.chunkSize - 1
	for lx := 0; ; lx += m.cfg.SampleStep {
		lx = min(lx, last)
		for lz := 0; ; lz += m.cfg.SampleStep {
			lz = min(lz, last)
			sample(lx, lz)
			if lz == last {
				break
			}
		}
		if lx == last {
			break
		}
	}

	// Вода стоит над низкой поверхностью
	return minH - m.cfg.SubsurfaceDepth, max(maxH, m.water) + m.cfg.Headroom
}

func (m *Mesher) instance(id block.BlockID, x, y, z int, tint mgl32.Vec3) Instance {
	shape := block.ShapeOf(id)
	in := Instance{
		Position: mgl32.Vec3{float32(x), float32(y), float32(z)}.Add(shape.Offset),
		Scale:    shape.Scale,
		Material: block.MaterialOf(id),
		Block:    id,
	}
	if shape.RandomYaw {
		in.Yaw = float32(m.cellHash(x, y, z) * 2 * math.Pi)
	}
	in.Color = block.TintOf(id, tint)
	return in
}

// cellHash возвращает детерминированное значение в [0,1) для клетки
func (m *Mesher) cellHash(x, y, z int) float64 {
	var buf [32]byte
	binary.LittleEndian.PutUint64(buf[0:], m.seed)
	binary.LittleEndian.PutUint64(buf[8:], uint64(int64(x)))
	binary.LittleEndian.PutUint64(buf[16:], uint64(int64(y)))
	binary.LittleEndian.PutUint64(buf[24:], uint64(int64(z)))
	return float64(xxhash.Sum64(buf[:])>>11) / (1 << 53)
}
