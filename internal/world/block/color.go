package block

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// NeutralColor используется для неизвестных или повреждённых типов блоков
var NeutralColor = mgl32.Vec3{0.75, 0.75, 0.75}

// ParseHex разбирает цвет вида "#rrggbb" в компоненты [0,1]
func ParseHex(s string) (mgl32.Vec3, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return mgl32.Vec3{}, fmt.Errorf("некорректный цвет %q: ожидается 6 hex-символов", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return mgl32.Vec3{}, fmt.Errorf("некорректный цвет %q: %w", s, err)
	}
	return mgl32.Vec3{
		float32((v>>16)&0xff) / 255,
		float32((v>>8)&0xff) / 255,
		float32(v&0xff) / 255,
	}, nil
}

// MustHex разбирает цвет и возвращает NeutralColor при ошибке
func MustHex(s string) mgl32.Vec3 {
	c, err := ParseHex(s)
	if err != nil {
		return NeutralColor
	}
	return c
}

// Hex форматирует цвет обратно в "#rrggbb"
func Hex(c mgl32.Vec3) string {
	return fmt.Sprintf("#%02x%02x%02x", channel(c[0]), channel(c[1]), channel(c[2]))
}

func channel(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}
