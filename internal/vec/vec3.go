package vec

// Vec3 представляет координаты блока
type Vec3 struct {
	X int `json:"x"`
	Y int `json:"y"`
	Z int `json:"z"`
}

// Column отбрасывает высоту и возвращает колонку блока
func (v Vec3) Column() Vec2 {
	return Vec2{X: v.X, Z: v.Z}
}
