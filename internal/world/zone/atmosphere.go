package zone

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Atmosphere содержит настройки тумана и неба для зоны
type Atmosphere struct {
	FogColor   mgl32.Vec3
	SkyTint    mgl32.Vec3
	FogDensity float32
	FixedTime  *float32 // Фиксированное время суток в долях, nil означает обычный цикл
}

func fixedTime(t float32) *float32 {
	return &t
}

// Lerp плавно смешивает атмосферу с целевой. t зажимается в [0,1].
// Фиксированное время интерполируется, если задано в обеих, иначе переключается на середине.
func (a Atmosphere) Lerp(to Atmosphere, t float32) Atmosphere {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}

	out := Atmosphere{
		FogColor:   a.FogColor.Add(to.FogColor.Sub(a.FogColor).Mul(t)),
		SkyTint:    a.SkyTint.Add(to.SkyTint.Sub(a.SkyTint).Mul(t)),
		FogDensity: a.FogDensity + (to.FogDensity-a.FogDensity)*t,
	}

	switch {
	case a.FixedTime != nil && to.FixedTime != nil:
		out.FixedTime = fixedTime(*a.FixedTime + (*to.FixedTime-*a.FixedTime)*t)
	case t < 0.5 && a.FixedTime != nil:
		out.FixedTime = fixedTime(*a.FixedTime)
	case t >= 0.5 && to.FixedTime != nil:
		out.FixedTime = fixedTime(*to.FixedTime)
	}
	return out
}
