package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Skin задаёт допуск, на который точки проверки отстоят от торцов тела
const Skin = 0.05

// ringPoints число точек на окружности радиуса коллайдера
const ringPoints = 8

// Solidity отвечает на вопрос, твёрда ли клетка мира
type Solidity interface {
	IsSolid(x, y, z int) bool
}

// SolidityFunc позволяет использовать функцию как Solidity
type SolidityFunc func(x, y, z int) bool

// IsSolid вызывает f(x, y, z)
func (f SolidityFunc) IsSolid(x, y, z int) bool { return f(x, y, z) }

// Cell возвращает индекс клетки, содержащей координату.
// Клетка i занимает [i-0.5, i+0.5).
func Cell(v float64) int {
	return int(math.Floor(v + 0.5))
}

// SolidAt проверяет твёрдость клетки, содержащей точку
func SolidAt(s Solidity, p mgl64.Vec3) bool {
	return s.IsSolid(Cell(p.X()), Cell(p.Y()), Cell(p.Z()))
}

// Collider описывает вертикальный цилиндр агента, проверяемый по точкам.
// Позиция агента соответствует верху цилиндра (уровню глаз), ноги на Height ниже.
type Collider struct {
	Radius float64
	Height float64
	ring   [ringPoints]mgl64.Vec2
}

// NewCollider создаёт коллайдер с заданными радиусом и высотой
func NewCollider(radius, height float64) *Collider {
	c := &Collider{Radius: radius, Height: height}
	for i := range c.ring {
		a := float64(i) / ringPoints * 2 * math.Pi
		c.ring[i] = mgl64.Vec2{math.Cos(a) * radius, math.Sin(a) * radius}
	}
	return c
}

// Feet возвращает высоту ног для позиции
func (c *Collider) Feet(pos mgl64.Vec3) float64 {
	return pos.Y() - c.Height
}

// sampleHeights возвращает уровни проверки у ног, посередине и у макушки.
// Шаг между уровнями меньше клетки, поэтому клетка, задевающая тело глубже Skin, попадёт хотя бы на один уровень.
func (c *Collider) sampleHeights(pos mgl64.Vec3) [3]float64 {
	feet := c.Feet(pos)
	return [3]float64{feet + Skin, feet + c.Height/2, pos.Y() - Skin}
}

// CollisionPoints возвращает точки проверки тела: центр и кольцо на каждом уровне
func (c *Collider) CollisionPoints(pos mgl64.Vec3) []mgl64.Vec3 {
	points := make([]mgl64.Vec3, 0, 3*(ringPoints+1))
	for _, y := range c.sampleHeights(pos) {
		points = append(points, mgl64.Vec3{pos.X(), y, pos.Z()})
		for _, off := range c.ring {
			points = append(points, mgl64.Vec3{pos.X() + off.X(), y, pos.Z() + off.Y()})
		}
	}
	return points
}

// Collides проверяет, задевает ли тело в позиции твёрдую клетку
func (c *Collider) Collides(s Solidity, pos mgl64.Vec3) bool {
	for _, p := range c.CollisionPoints(pos) {
		if SolidAt(s, p) {
			return true
		}
	}
	return false
}

// footprint возвращает центр и кольцо основания; среди точек кольца есть четыре сторонние
func (c *Collider) footprint(pos mgl64.Vec3) [ringPoints + 1]mgl64.Vec2 {
	var out [ringPoints + 1]mgl64.Vec2
	out[0] = mgl64.Vec2{pos.X(), pos.Z()}
	for i, off := range c.ring {
		out[i+1] = mgl64.Vec2{pos.X() + off.X(), pos.Z() + off.Y()}
	}
	return out
}

// Grounded проверяет опору чуть ниже ног под центром и кольцом основания
func (c *Collider) Grounded(s Solidity, pos mgl64.Vec3) bool {
	y := Cell(c.Feet(pos) - Skin)
	for _, p := range c.footprint(pos) {
		if s.IsSolid(Cell(p.X()), y, Cell(p.Y())) {
			return true
		}
	}
	return false
}

// SolidBelow проверяет твёрдую клетку прямо под центром ног
func (c *Collider) SolidBelow(s Solidity, pos mgl64.Vec3) bool {
	return s.IsSolid(Cell(pos.X()), Cell(c.Feet(pos)-Skin), Cell(pos.Z()))
}

// SweepDown опускает тело с позиции pos до высоты глаз targetY.
// При встрече опоры возвращает высоту глаз, при которой ноги стоят на её верхней грани.
func (c *Collider) SweepDown(s Solidity, pos mgl64.Vec3, targetY float64) (float64, bool) {
	feet := c.Feet(pos)
	newFeet := targetY - c.Height
	points := c.footprint(pos)

	// Верхняя клетка, чья верхняя грань не выше ног
	for cy := int(math.Floor(feet - 0.5 + 1e-9)); float64(cy)+0.5 > newFeet; cy-- {
		for _, p := range points {
			if s.IsSolid(Cell(p.X()), cy, Cell(p.Y())) {
				return float64(cy) + 0.5 + c.Height, true
			}
		}
	}
	return targetY, false
}

// SweepUp поднимает тело до высоты глаз targetY.
// При ударе головой возвращает высоту, при которой макушка касается нижней грани клетки.
func (c *Collider) SweepUp(s Solidity, pos mgl64.Vec3, targetY float64) (float64, bool) {
	top := pos.Y()
	points := c.footprint(pos)

	// Нижняя клетка, чья нижняя грань не ниже макушки
	for cy := int(math.Ceil(top + 0.5 - 1e-9)); float64(cy)-0.5 < targetY; cy++ {
		for _, p := range points {
			if s.IsSolid(Cell(p.X()), cy, Cell(p.Y())) {
				return float64(cy) - 0.5, true
			}
		}
	}
	return targetY, false
}
