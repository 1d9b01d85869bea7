package world

import (
	"math"
	"sort"

	"github.com/annel0/zoneworld/internal/config"
	"github.com/annel0/zoneworld/internal/logging"
	"github.com/annel0/zoneworld/internal/noise"
	"github.com/annel0/zoneworld/internal/world/block"
	"github.com/annel0/zoneworld/internal/world/zone"
)

// Глобальная базовая высота
const (
	baseLevel        = 6.0
	baseNoiseScale   = 0.02
	baseNoiseAmp     = 3.0
	baseNoiseOctaves = 2
	continentalScale = 0.002
	strataDepth      = 4 // Слой земли над камнем
)

// Registry разрешает колонку в единственную зону и отвечает на запросы высоты и блоков.
// Неизменяем после создания; безопасен для чтения из любых горутин.
type Registry struct {
	field    *noise.Field
	cfg      config.WorldConfig
	zones    []zone.Zone
	fallback zone.Zone
	biomes   []Biome
}

// NewRegistry строит мир по конфигурации: поле шума и упорядоченный список зон
func NewRegistry(cfg config.WorldConfig) *Registry {
	field := noise.NewField(cfg.Seed)
	p := zone.Params{Mile: cfg.Mile, WaterLevel: cfg.WaterLevel}
	wild := zone.NewWilderness(field, p)

	// Порядок значим: при пересечении побеждает зона, стоящая раньше
	landmarks := []zone.Landmark{
		zone.NewCapital(field, wild),
		zone.NewVillage(field, wild),
		zone.NewFederation(field, wild, p),
		zone.NewIndustrial(field, wild, p),
		zone.NewCastle(wild, p),
		zone.NewHangar(wild, p),
		zone.NewGuild(field, wild, p),
	}
	zones := make([]zone.Zone, len(landmarks))
	for i, l := range landmarks {
		zones[i] = l
	}

	r := NewRegistryWithZones(cfg, field, zones, wild)
	r.biomes = DefaultBiomes(landmarks, cfg.Mile)

	logging.GetWorldLogger().Info("🌍 Мир создан: seed=%d, зон=%d, биомов=%d", cfg.Seed, len(zones), len(r.biomes))
	return r
}

// NewRegistryWithZones собирает реестр из явно переданного списка зон
func NewRegistryWithZones(cfg config.WorldConfig, field *noise.Field, zones []zone.Zone, fallback zone.Zone) *Registry {
	return &Registry{
		field:    field,
		cfg:      cfg,
		zones:    append([]zone.Zone(nil), zones...),
		fallback: fallback,
	}
}

// Field возвращает поле шума мира
func (r *Registry) Field() *noise.Field { return r.field }

// Config возвращает параметры мира
func (r *Registry) Config() config.WorldConfig { return r.cfg }

// Zones возвращает копию упорядоченного списка зон без зоны по умолчанию
func (r *Registry) Zones() []zone.Zone {
	return append([]zone.Zone(nil), r.zones...)
}

// Fallback возвращает зону по умолчанию
func (r *Registry) Fallback() zone.Zone { return r.fallback }

// Resolve возвращает первую зону, содержащую колонку, иначе зону по умолчанию
func (r *Registry) Resolve(x, z int) zone.Zone {
	for _, zn := range r.zones {
		if zn.IsInside(x, z) {
			return zn
		}
	}
	return r.fallback
}

// BaseHeight возвращает глобальную фрактальную высоту до вмешательства зон
func (r *Registry) BaseHeight(x, z int) float64 {
	fx, fz := float64(x), float64(z)
	h := baseLevel + r.field.OctaveNoise(fx*baseNoiseScale, fz*baseNoiseScale, baseNoiseOctaves, 0.5)*baseNoiseAmp
	if r.cfg.ContinentalAmplitude != 0 {
		c := r.field.Continental(fx*continentalScale, fz*continentalScale)
		h += (c - 0.5) * 2 * r.cfg.ContinentalAmplitude
	}
	return h
}

// TerrainHeight возвращает целую высоту поверхности колонки в пределах [MinY, MaxY]
func (r *Registry) TerrainHeight(x, z int) int {
	h := int(math.Floor(r.Resolve(x, z).GetHeight(x, z, r.BaseHeight(x, z))))
	if h < r.cfg.MinY {
		return r.cfg.MinY
	}
	if h > r.cfg.MaxY {
		return r.cfg.MaxY
	}
	return h
}

// BlockAt возвращает блок в клетке при полной детализации
func (r *Registry) BlockAt(x, y, z int) block.BlockID {
	return r.BlockAtHeight(x, y, z, r.TerrainHeight(x, z), zone.LodHigh)
}

// BlockAtHeight классифицирует клетку при уже известной высоте колонки:
// вода над низкой поверхностью, пласты под ней, иначе решает зона
func (r *Registry) BlockAtHeight(x, y, z, groundH int, lod zone.LOD) block.BlockID {
	switch {
	case y < r.cfg.MinY || y > r.cfg.MaxY:
		return block.AirBlockID
	case y > groundH && y <= r.cfg.WaterLevel:
		return block.WaterBlockID
	case y < groundH-strataDepth:
		return block.StoneBlockID
	case y < groundH:
		return block.DirtBlockID
	}
	return r.Resolve(x, z).GetBlock(x, y, z, groundH, lod)
}

// IsSolid проверяет твёрдость клетки для столкновений
func (r *Registry) IsSolid(x, y, z int) bool {
	return block.IsSolid(r.BlockAt(x, y, z))
}

// Atmosphere возвращает атмосферу зоны, владеющей колонкой
func (r *Registry) Atmosphere(x, z int) zone.Atmosphere {
	return r.Resolve(x, z).GetAtmosphere()
}

// ZoneDistance хранит расстояние от точки до центра именованной зоны
type ZoneDistance struct {
	Name     string  `json:"name"`
	Distance float64 `json:"distance"`
}

// Distances возвращает расстояния до центров всех именованных зон по возрастанию
func (r *Registry) Distances(x, z float64) []ZoneDistance {
	out := make([]ZoneDistance, 0, len(r.zones))
	for _, zn := range r.zones {
		l, ok := zn.(zone.Landmark)
		if !ok {
			continue
		}
		c := l.Center()
		out = append(out, ZoneDistance{
			Name:     l.Name(),
			Distance: math.Hypot(x-c.X(), z-c.Y()),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Distance < out[j].Distance })
	return out
}
