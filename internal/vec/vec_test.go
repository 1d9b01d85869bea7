package vec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFloorDiv(t *testing.T) {
	assert.Equal(t, 0, FloorDiv(0, 32))
	assert.Equal(t, 0, FloorDiv(31, 32))
	assert.Equal(t, 1, FloorDiv(32, 32))
	assert.Equal(t, -1, FloorDiv(-1, 32))
	assert.Equal(t, -1, FloorDiv(-32, 32))
	assert.Equal(t, -2, FloorDiv(-33, 32))
}

func TestChunkCoordsRoundTrip(t *testing.T) {
	for _, col := range []Vec2{{X: 0, Z: 0}, {X: -1, Z: 5}, {X: 100, Z: -100}, {X: -64, Z: 63}} {
		chunk := col.ToChunkCoords(32)
		local := col.LocalInChunk(32)
		back := chunk.ChunkOrigin(32).Add(local)
		assert.Equal(t, col, back, "колонка должна восстанавливаться из чанка и локальных координат")
		assert.GreaterOrEqual(t, local.X, 0)
		assert.Less(t, local.Z, 32)
	}
}

func TestVec3Column(t *testing.T) {
	v := Vec3{X: 3, Y: 7, Z: -2}
	assert.Equal(t, Vec2{X: 3, Z: -2}, v.Column())
	assert.Equal(t, Vec2{X: 0, Z: 0}, v.Column().ToChunkCoords(3).Add(Vec2{X: -1, Z: 1}))
}
