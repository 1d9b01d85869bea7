package world

import (
	"math"

	"github.com/annel0/zoneworld/internal/world/block"
	"github.com/annel0/zoneworld/internal/world/zone"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

// biomeEpsilon не даёт весу уйти в бесконечность в центре биома
const biomeEpsilon = 1e-3

// Biome задаёт именованную точку с характерным цветом растительности
type Biome struct {
	Name   string
	Center mgl64.Vec2
	Color  mgl32.Vec3
}

// DefaultBiomes собирает биомы из центров зон и макро-биомов дикой местности
func DefaultBiomes(landmarks []zone.Landmark, mile float64) []Biome {
	biomes := make([]Biome, 0, len(landmarks)+3)
	for _, l := range landmarks {
		biomes = append(biomes, Biome{Name: l.Name(), Center: l.Center(), Color: l.Foliage()})
	}
	return append(biomes,
		Biome{Name: "Eastern Mountains", Center: mgl64.Vec2{24 * mile, 0}, Color: block.MustHex("#4d7c0f")},
		Biome{Name: "Western Coast", Center: mgl64.Vec2{-5 * mile, 0}, Color: block.MustHex("#bef264")},
		Biome{Name: "Southern Forest", Center: mgl64.Vec2{0, 10 * mile}, Color: block.MustHex("#15803d")},
	)
}

// Biomes возвращает таблицу биомов мира
func (r *Registry) Biomes() []Biome {
	return append([]Biome(nil), r.biomes...)
}

// BlendColor смешивает цвета всех биомов с весом 1/(d+ε), нормированным к единице
func BlendColor(biomes []Biome, x, z float64) mgl32.Vec3 {
	if len(biomes) == 0 {
		return block.NeutralColor
	}

	var sum mgl64.Vec3
	total := 0.0
	for _, b := range biomes {
		d := math.Hypot(x-b.Center.X(), z-b.Center.Y())
		w := 1 / (d + biomeEpsilon)
		sum = sum.Add(mgl64.Vec3{float64(b.Color.X()), float64(b.Color.Y()), float64(b.Color.Z())}.Mul(w))
		total += w
	}
	sum = sum.Mul(1 / total)
	return mgl32.Vec3{float32(sum.X()), float32(sum.Y()), float32(sum.Z())}
}
