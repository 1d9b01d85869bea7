package vec

// Vec2 представляет координаты колонки или чанка на плоскости XZ
type Vec2 struct {
	X int `json:"x"`
	Z int `json:"z"`
}

// FloorDiv делит с округлением к минус бесконечности
func FloorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// FloorMod возвращает неотрицательный остаток для положительного b
func FloorMod(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}

// ToChunkCoords преобразует мировые координаты колонки в координаты чанка
func (v Vec2) ToChunkCoords(chunkSize int) Vec2 {
	return Vec2{X: FloorDiv(v.X, chunkSize), Z: FloorDiv(v.Z, chunkSize)}
}

// ChunkOrigin возвращает мировые координаты угловой колонки чанка
func (v Vec2) ChunkOrigin(chunkSize int) Vec2 {
	return Vec2{X: v.X * chunkSize, Z: v.Z * chunkSize}
}

// LocalInChunk возвращает локальные координаты внутри чанка
func (v Vec2) LocalInChunk(chunkSize int) Vec2 {
	return Vec2{X: FloorMod(v.X, chunkSize), Z: FloorMod(v.Z, chunkSize)}
}

// Add складывает два вектора
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{X: v.X + other.X, Z: v.Z + other.Z}
}
