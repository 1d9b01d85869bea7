package zone

import (
	"math"

	"github.com/annel0/zoneworld/internal/world/block"
)

// HouseStyle задаёт набор материалов дома
type HouseStyle struct {
	Foundation block.BlockID
	Wall       block.BlockID
	Corner     block.BlockID
	Window     block.BlockID
	Ceiling    block.BlockID
}

// MedievalStyle: штукатурка с брусом
var MedievalStyle = HouseStyle{
	Foundation: block.StoneBrickBlockID,
	Wall:       block.PlasterBlockID,
	Corner:     block.WoodLogBlockID,
	Window:     block.GlassBlockID,
	Ceiling:    block.WoodPlankBlockID,
}

// PlannedStyle используется домами плановой застройки
var PlannedStyle = HouseStyle{
	Foundation: block.CobblestoneBlockID,
	Wall:       block.PlasterBlockID,
	Corner:     block.WoodLogBlockID,
	Window:     block.GlassBlockID,
	Ceiling:    block.DarkPlankBlockID,
}

// Второй этаж
const (
	upperOverhang = 1 // Выступ второго этажа за первый
	upperHeight   = 4 // Высота стен второго этажа
)

// House задаёт параметры процедурного дома относительно центра участка.
// Первый ряд над поверхностью (ly=1) занимает фундамент.
type House struct {
	HouseStyle
	HalfW   int
	HalfD   int
	Height  int // Верх стен первого этажа
	Stories int
	Roof    block.BlockID
}

// HouseFromSeed выводит размеры и этажность дома из сида участка в [0,1)
func HouseFromSeed(seed float64, style HouseStyle) House {
	width := 6 + int(math.Mod(seed*100, 3))
	depth := 6 + int(math.Mod(seed*200, 3))
	h := House{
		HouseStyle: style,
		HalfW:      width / 2,
		HalfD:      depth / 2,
		Height:     5 + int(math.Mod(seed*300, 2)),
		Stories:    1,
		Roof:       style.Ceiling,
	}
	if seed > 0.6 {
		h.Stories = 2
		h.Roof = block.RoofBlueBlockID
		if math.Mod(seed*1000, 1) > 0.5 {
			h.Roof = block.RoofRedBlockID
		}
	}
	return h
}

// Block классифицирует клетку по смещению (dx, dz) от центра участка и высоте ly
// над поверхностью. ok=false означает, что клетка вне габарита дома.
func (h House) Block(dx, ly, dz int) (block.BlockID, bool) {
	if ly < 1 {
		return block.AirBlockID, false
	}
	adx, adz := abs(dx), abs(dz)

	if adx <= h.HalfW && adz <= h.HalfD {
		if ly == 1 {
			return h.Foundation, true
		}
		if ly <= h.Height {
			ring := adx == h.HalfW || adz == h.HalfD
			switch {
			case adx == h.HalfW && adz == h.HalfD:
				return h.Corner, true
			case ring && ly == 3 && (dx+dz)%2 != 0:
				return h.Window, true
			case ring:
				return h.Wall, true
			}
			return block.AirBlockID, true
		}
		if ly == h.Height+1 {
			return h.Ceiling, true
		}
	}

	if h.Stories < 2 {
		return h.roof(adx, adz, ly, h.Height+2, h.HalfW, h.HalfD)
	}

	w2, d2 := h.HalfW+upperOverhang, h.HalfD+upperOverhang
	h1, h2 := h.Height+1, h.Height+1+upperHeight
	if adx <= w2 && adz <= d2 && ly > h1 && ly <= h2 {
		ring := adx == w2 || adz == d2
		switch {
		case adx == w2 && adz == d2:
			return h.Corner, true
		case ring && ly == (h1+h2)/2:
			return h.Corner, true
		case ring && ly == h1+2 && (adx < w2-1 || adz < d2-1):
			return h.Window, true
		case ring:
			return h.Wall, true
		}
		return block.AirBlockID, true
	}
	return h.roof(adx, adz, ly, h2+1, w2, d2)
}

// roof строит полую пирамиду, сужающуюся на блок с каждым рядом
func (h House) roof(adx, adz, ly, start, w, d int) (block.BlockID, bool) {
	if ly < start {
		return block.AirBlockID, false
	}
	r := ly - start
	cw, cd := w+1-r, d+1-r
	if cw < 0 || cd < 0 || adx > cw || adz > cd {
		return block.AirBlockID, false
	}
	if adx == cw || adz == cd {
		return h.Roof, true
	}
	return block.AirBlockID, true
}
