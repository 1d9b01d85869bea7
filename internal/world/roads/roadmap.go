package roads

// Surface задаёт тип покрытия клетки дорожной карты
type Surface uint8

const (
	SurfaceNone   Surface = iota // Не дорога
	SurfaceStreet                // Улица, переулок, тропа
	SurfaceAvenue                // Главный проспект
	SurfacePlaza                 // Площадь
)

// RoadMap хранит двумерную карту дорог в локальных координатах зоны.
// Начало координат находится в центре карты. Строится один раз при создании
// зоны и дальше только читается, поэтому безопасна для конкурентного чтения.
type RoadMap struct {
	width  int
	height int
	data   []Surface
}

// NewRoadMap создаёт пустую карту указанного размера
func NewRoadMap(width, height int) *RoadMap {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &RoadMap{
		width:  width,
		height: height,
		data:   make([]Surface, width*height),
	}
}

// Width возвращает ширину карты
func (m *RoadMap) Width() int { return m.width }

// Height возвращает высоту карты
func (m *RoadMap) Height() int { return m.height }

// index переводит локальные координаты в индекс массива.
// Вне границ карты возвращает ok=false, без заворачивания.
func (m *RoadMap) index(x, z int) (int, bool) {
	mapX := x + m.width/2
	mapZ := z + m.height/2
	if mapX < 0 || mapX >= m.width || mapZ < 0 || mapZ >= m.height {
		return 0, false
	}
	return mapZ*m.width + mapX, true
}

// SetRoad помечает клетку как улицу. Координаты вне карты игнорируются.
func (m *RoadMap) SetRoad(x, z int) {
	m.SetSurface(x, z, SurfaceStreet)
}

// SetSurface задаёт покрытие клетки. Координаты вне карты игнорируются.
func (m *RoadMap) SetSurface(x, z int, s Surface) {
	if i, ok := m.index(x, z); ok {
		m.data[i] = s
	}
}

// IsRoad проверяет, является ли клетка дорогой. Вне карты всегда false.
func (m *RoadMap) IsRoad(x, z int) bool {
	return m.Surface(x, z) != SurfaceNone
}

// Surface возвращает покрытие клетки. Вне карты всегда SurfaceNone.
func (m *RoadMap) Surface(x, z int) Surface {
	i, ok := m.index(x, z)
	if !ok {
		return SurfaceNone
	}
	return m.data[i]
}

// Count возвращает количество дорожных клеток
func (m *RoadMap) Count() int {
	n := 0
	for _, s := range m.data {
		if s != SurfaceNone {
			n++
		}
	}
	return n
}
