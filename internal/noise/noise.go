package noise

import (
	"encoding/binary"
	"math"

	"github.com/aquilax/go-perlin"
	"github.com/cespare/xxhash/v2"
)

// Параметры континентального слоя Перлина
const (
	perlinAlpha   = 2.0 // Сглаживание шума
	perlinBeta    = 2.0 // Частота шума
	perlinOctaves = 3   // Количество октав
)

// Field представляет детерминированный источник шума, привязанный к сиду.
// Значение неизменяемо после создания и безопасно для чтения из любых горутин.
type Field struct {
	seed   int64
	perlin *perlin.Perlin
}

// NewField создаёт поле шума для указанного сида
func NewField(seed int64) *Field {
	return &Field{
		seed:   seed,
		perlin: perlin.NewPerlin(perlinAlpha, perlinBeta, perlinOctaves, seed),
	}
}

// Seed возвращает сид поля
func (f *Field) Seed() int64 {
	return f.seed
}

// Hash возвращает псевдослучайное значение в [0,1) для целочисленной точки.
// Используется для дискретных решений (деревья, цветы, участки домов), где сглаживание не нужно.
func (f *Field) Hash(x, z int) float64 {
	var buf [24]byte
	binary.LittleEndian.PutUint64(buf[0:], uint64(f.seed))
	binary.LittleEndian.PutUint64(buf[8:], uint64(int64(x)))
	binary.LittleEndian.PutUint64(buf[16:], uint64(int64(z)))
	h := xxhash.Sum64(buf[:])
	// Старшие 53 бита точно представимы в float64
	return float64(h>>11) / (1 << 53)
}

// Noise2D возвращает сглаженный value-noise в [0,1)
func (f *Field) Noise2D(x, z float64) float64 {
	floorX := math.Floor(x)
	floorZ := math.Floor(z)
	ix, iz := int(floorX), int(floorZ)

	s := f.Hash(ix, iz)
	t := f.Hash(ix+1, iz)
	u := f.Hash(ix, iz+1)
	v := f.Hash(ix+1, iz+1)

	sx := smooth(x - floorX)
	sz := smooth(z - floorZ)

	x1 := s + (t-s)*sx
	x2 := u + (v-u)*sx
	return x1 + (x2-x1)*sz
}

// OctaveNoise суммирует октавы Noise2D с удвоением частоты и нормализует
// результат на максимально возможную амплитуду
func (f *Field) OctaveNoise(x, z float64, octaves int, persistence float64) float64 {
	if octaves < 1 {
		octaves = 1
	}

	total := 0.0
	frequency := 1.0
	amplitude := 1.0
	maxValue := 0.0
	for i := 0; i < octaves; i++ {
		total += f.Noise2D(x*frequency, z*frequency) * amplitude
		maxValue += amplitude
		amplitude *= persistence
		frequency *= 2
	}
	return total / maxValue
}

// Continental возвращает низкочастотный шум Перлина в [0,1].
// Даёт крупные возвышенности и низины под всеми зонами.
func (f *Field) Continental(x, z float64) float64 {
	n := (f.perlin.Noise2D(x, z) + 1.0) / 2.0
	return math.Max(0, math.Min(1, n))
}

// smooth: кубическая интерполяция 3t²-2t³
func smooth(t float64) float64 {
	return t * t * (3 - 2*t)
}
