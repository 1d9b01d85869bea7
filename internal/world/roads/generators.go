package roads

import (
	"math"
	"math/rand"

	"github.com/annel0/zoneworld/internal/noise"
	"github.com/annel0/zoneworld/internal/vec"
)

// Константы органической застройки
const (
	organicPlazaRadius = 8    // Радиус центральной площади
	headingJitter      = 0.5  // Разброс изменения направления за шаг
	branchChance       = 0.02 // Вероятность ответвления на шаге
	branchLength       = 50   // Длина ответвления в шагах
)

// Константы промышленной сетки
const (
	alleyCell      = 4    // Размер клетки шума переулков
	alleyThreshold = 0.95 // Порог появления переулка
)

// Константы плановой застройки
const (
	plannedPlazaRadius = 35 // Радиус центральной площади
	sideStreetWidth    = 4  // Ширина второстепенных улиц
)

// GenerateOrganic строит стихийную сеть улиц: круглая площадь в центре и
// "ходоки", расходящиеся веером со случайным дрейфом направления и редкими
// перпендикулярными ответвлениями. Случайность берётся из rng, посеянного seed,
// поэтому карта воспроизводима.
func GenerateOrganic(seed int64, size, walkers, steps int) *RoadMap {
	m := NewRoadMap(size, size)
	rng := rand.New(rand.NewSource(seed))

	r2 := organicPlazaRadius * organicPlazaRadius
	for x := -organicPlazaRadius; x <= organicPlazaRadius; x++ {
		for z := -organicPlazaRadius; z <= organicPlazaRadius; z++ {
			if x*x+z*z < r2 {
				m.SetSurface(x, z, SurfacePlaza)
			}
		}
	}

	for i := 0; i < walkers; i++ {
		x, z := 0.0, 0.0
		angle := float64(i) / float64(walkers) * 2 * math.Pi
		dx, dz := math.Cos(angle), math.Sin(angle)

		for s := 0; s < steps; s++ {
			stampThick(m, x, z)

			dx += (rng.Float64() - 0.5) * headingJitter
			dz += (rng.Float64() - 0.5) * headingJitter
			if l := math.Hypot(dx, dz); l > 0 {
				dx /= l
				dz /= l
			}
			x += dx
			z += dz

			if rng.Float64() < branchChance {
				bx, bz := x, z
				bdx, bdz := -dz, dx // поворот на 90 градусов
				for b := 0; b < branchLength; b++ {
					setIfEmpty(m, int(math.Floor(bx)), int(math.Floor(bz)))
					bx += bdx
					bz += bdz
				}
			}
		}
	}
	return m
}

// stampThick ставит крест толщиной в одну клетку вокруг позиции ходока
func stampThick(m *RoadMap, x, z float64) {
	ix, iz := int(math.Floor(x)), int(math.Floor(z))
	setIfEmpty(m, ix, iz)
	setIfEmpty(m, ix+1, iz)
	setIfEmpty(m, ix-1, iz)
	setIfEmpty(m, ix, iz+1)
	setIfEmpty(m, ix, iz-1)
}

// setIfEmpty не затирает площадь улицей
func setIfEmpty(m *RoadMap, x, z int) {
	if m.Surface(x, z) == SurfaceNone {
		m.SetRoad(x, z)
	}
}

// GenerateIndustrialGrid строит ортогональную сетку улиц с шагом blockSize и
// шириной streetWidth, а внутри кварталов прорезает редкие переулки по шуму.
func GenerateIndustrialGrid(field *noise.Field, size, blockSize, streetWidth int) *RoadMap {
	m := NewRoadMap(size, size)
	if blockSize <= 0 {
		return m
	}

	half := size / 2
	for x := -half; x < size-half; x++ {
		for z := -half; z < size-half; z++ {
			onGridX := abs(x)%blockSize < streetWidth
			onGridZ := abs(z)%blockSize < streetWidth

			if onGridX || onGridZ {
				m.SetRoad(x, z)
				continue
			}

			if field.Hash(vec.FloorDiv(x, alleyCell), vec.FloorDiv(z, alleyCell)) > alleyThreshold {
				m.SetRoad(x, z)
			}
		}
	}
	return m
}

// GeneratePlannedGrid строит плановый город: круглая площадь, крест главных
// проспектов ширины avenueWidth и регулярная сетка узких улиц. Приоритет по
// расстоянию: площадь > проспекты > сетка.
func GeneratePlannedGrid(size, blockSize, avenueWidth int) *RoadMap {
	m := NewRoadMap(size, size)

	half := size / 2
	halfAvenue := float64(avenueWidth) / 2
	for x := -half; x < size-half; x++ {
		for z := -half; z < size-half; z++ {
			dist := math.Hypot(float64(x), float64(z))

			switch {
			case dist < plannedPlazaRadius:
				m.SetSurface(x, z, SurfacePlaza)
			case float64(abs(x)) < halfAvenue || float64(abs(z)) < halfAvenue:
				m.SetSurface(x, z, SurfaceAvenue)
			case blockSize > 0 && (abs(x)%blockSize < sideStreetWidth || abs(z)%blockSize < sideStreetWidth):
				m.SetRoad(x, z)
			}
		}
	}
	return m
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
