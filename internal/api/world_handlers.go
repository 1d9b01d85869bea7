package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/annel0/zoneworld/internal/chunk"
	"github.com/annel0/zoneworld/internal/vec"
	"github.com/annel0/zoneworld/internal/world"
	"github.com/annel0/zoneworld/internal/world/block"
	"github.com/annel0/zoneworld/internal/world/zone"
	"github.com/gin-gonic/gin"
	"github.com/go-gl/mathgl/mgl64"
)

// syncTimeout ограничивает одну синхронизацию, запрошенную через API
const syncTimeout = 10 * time.Second

// AtmosphereResponse передаёт атмосферу зоны в виде hex-цветов
type AtmosphereResponse struct {
	FogColor   string   `json:"fog_color"`
	SkyTint    string   `json:"sky_tint"`
	FogDensity float32  `json:"fog_density"`
	FixedTime  *float32 `json:"fixed_time,omitempty"`
}

// ZoneResponse ответ /api/zone
type ZoneResponse struct {
	X          int                  `json:"x"`
	Z          int                  `json:"z"`
	Zone       string               `json:"zone"`
	Height     int                  `json:"height"`
	Atmosphere AtmosphereResponse   `json:"atmosphere"`
	Distances  []world.ZoneDistance `json:"distances"`
}

// BlockResponse ответ /api/block
type BlockResponse struct {
	vec.Vec3
	Chunk    vec.Vec2      `json:"chunk"`
	Local    vec.Vec2      `json:"local"`
	ID       block.BlockID `json:"id"`
	Name     string        `json:"name"`
	Known    bool          `json:"known"`
	Solid    bool          `json:"solid"`
	Material string        `json:"material"`
	Color    string        `json:"color"`
}

// PaletteEntry описывает один зарегистрированный блок
type PaletteEntry struct {
	ID         block.BlockID `json:"id"`
	Name       string        `json:"name"`
	Color      string        `json:"color"`
	Material   string        `json:"material"`
	Solid      bool          `json:"solid"`
	Decoration bool          `json:"decoration"`
}

// ChunkResponse ответ /api/chunk
type ChunkResponse struct {
	Coord  chunk.Coord `json:"coord"`
	LOD    string      `json:"lod"`
	Count  int         `json:"count"`
	Digest string      `json:"digest"`
	Mesh   *chunk.Mesh `json:"mesh,omitempty"`
}

// ViewerRequest содержит снимок наблюдателя для /api/visible и /api/stream
type ViewerRequest struct {
	Position mgl64.Vec3 `json:"position"`
	Facing   mgl64.Vec3 `json:"facing"`
}

func (v ViewerRequest) viewer() chunk.Viewer {
	return chunk.Viewer{Position: v.Position, Facing: v.Facing}
}

// handleWorldInfo возвращает параметры мира и список зон в порядке разрешения
func (rs *RestServer) handleWorldInfo(c *gin.Context) {
	zones := rs.world.Zones()
	names := make([]string, 0, len(zones)+1)
	for _, z := range zones {
		names = append(names, z.Name())
	}
	names = append(names, rs.world.Fallback().Name())

	ok(c, "Параметры мира", gin.H{
		"config": rs.world.Config(),
		"zones":  names,
	})
}

// handleZone возвращает зону колонки, её атмосферу и расстояния до ориентиров
func (rs *RestServer) handleZone(c *gin.Context) {
	q, valid := queryInts(c, "x", "z")
	if !valid {
		return
	}
	x, z := q[0], q[1]

	atm := rs.world.Atmosphere(x, z)
	ok(c, "Зона найдена", ZoneResponse{
		X:      x,
		Z:      z,
		Zone:   rs.world.Resolve(x, z).Name(),
		Height: rs.world.TerrainHeight(x, z),
		Atmosphere: AtmosphereResponse{
			FogColor:   block.Hex(atm.FogColor),
			SkyTint:    block.Hex(atm.SkyTint),
			FogDensity: atm.FogDensity,
			FixedTime:  atm.FixedTime,
		},
		Distances: rs.world.Distances(float64(x), float64(z)),
	})
}

// handleHeight возвращает высоту рельефа колонки
func (rs *RestServer) handleHeight(c *gin.Context) {
	q, valid := queryInts(c, "x", "z")
	if !valid {
		return
	}
	x, z := q[0], q[1]

	ok(c, "Высота рельефа", gin.H{
		"x":      x,
		"z":      z,
		"height": rs.world.TerrainHeight(x, z),
		"base":   rs.world.BaseHeight(x, z),
	})
}

// handleBlock классифицирует клетку при полной детализации
func (rs *RestServer) handleBlock(c *gin.Context) {
	q, valid := queryInts(c, "x", "y", "z")
	if !valid {
		return
	}
	pos := vec.Vec3{X: q[0], Y: q[1], Z: q[2]}
	col := pos.Column()
	size := rs.world.Config().ChunkSize

	id := rs.world.BlockAt(pos.X, pos.Y, pos.Z)
	resp := BlockResponse{
		Vec3:     pos,
		Chunk:    col.ToChunkCoords(size),
		Local:    col.LocalInChunk(size),
		ID:       id,
		Name:     "unknown",
		Known:    block.IsValidBlockID(id),
		Solid:    block.IsSolid(id),
		Material: block.MaterialOf(id).String(),
		Color:    block.Hex(block.ColorOf(id)),
	}
	if props, found := block.Get(id); found {
		resp.Name = props.Name
	}
	ok(c, "Блок классифицирован", resp)
}

// handleBlocks возвращает палитру зарегистрированных блоков
func (rs *RestServer) handleBlocks(c *gin.Context) {
	ids := block.IDs()
	palette := make([]PaletteEntry, 0, len(ids))
	for _, id := range ids {
		props, _ := block.Get(id)
		palette = append(palette, PaletteEntry{
			ID:         id,
			Name:       props.Name,
			Color:      block.Hex(block.ColorOf(id)),
			Material:   block.MaterialOf(id).String(),
			Solid:      block.IsSolid(id),
			Decoration: block.IsDecoration(id),
		})
	}
	ok(c, "Палитра блоков", palette)
}

// handleChunk строит геометрию чанка. Параметр lod: high (по умолчанию) или low.
func (rs *RestServer) handleChunk(c *gin.Context) {
	q, valid := queryInts(c, "x", "z")
	if !valid {
		return
	}
	lod, err := parseLOD(c.DefaultQuery("lod", "high"))
	if err != nil {
		fail(c, http.StatusBadRequest, err.Error())
		return
	}

	coord := chunk.Coord{X: q[0], Z: q[1]}
	mesh := rs.mesher.Build(coord, lod)
	resp := ChunkResponse{
		Coord:  coord,
		LOD:    lod.String(),
		Count:  mesh.Count(),
		Digest: fmt.Sprintf("%016x", mesh.Digest()),
	}
	if c.Query("instances") != "false" {
		resp.Mesh = mesh
	}
	ok(c, "Чанк построен", resp)
}

// handleVisible возвращает набор видимых чанков без изменения состояния подгрузчика
func (rs *RestServer) handleVisible(c *gin.Context) {
	var req ViewerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Неверный формат запроса: "+err.Error())
		return
	}
	if rs.streamer == nil {
		fail(c, http.StatusServiceUnavailable, "Подгрузчик чанков не настроен")
		return
	}

	visible := rs.streamer.Visibility().Compute(req.viewer())
	ok(c, "Видимые чанки", gin.H{
		"center":  rs.streamer.Visibility().ChunkOf(req.Position),
		"chunks":  visible,
		"visible": len(visible),
	})
}

// handleStream выполняет одну синхронизацию сцены для наблюдателя
func (rs *RestServer) handleStream(c *gin.Context) {
	var req ViewerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Неверный формат запроса: "+err.Error())
		return
	}
	if rs.streamer == nil {
		fail(c, http.StatusServiceUnavailable, "Подгрузчик чанков не настроен")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), syncTimeout)
	defer cancel()

	res, err := rs.streamer.Sync(ctx, req.viewer())
	if err != nil {
		rs.logger.Warn("Синхронизация сцены прервана: %v", err)
		fail(c, http.StatusServiceUnavailable, "Синхронизация прервана: "+err.Error())
		return
	}
	ok(c, "Сцена синхронизирована", gin.H{
		"result":  res,
		"loaded":  rs.streamer.Scene().Len(),
		"version": rs.streamer.Scene().Version(),
	})
}

func parseLOD(s string) (zone.LOD, error) {
	switch s {
	case "high":
		return zone.LodHigh, nil
	case "low":
		return zone.LodLow, nil
	default:
		return zone.LodHigh, fmt.Errorf("неизвестный уровень детализации %q", s)
	}
}
