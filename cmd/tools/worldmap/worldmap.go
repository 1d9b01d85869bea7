package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/annel0/zoneworld/internal/world"
	"github.com/klauspost/compress/zstd"
)

// maxSamples ограничивает размер одной карты
const maxSamples = 4 << 20

// Bounds задаёт прямоугольник выборки в блоках
type Bounds struct {
	X0, Z0        int
	Width, Height int
	Step          int
}

// WorldMap хранит выборку зон и высот по сетке.
// Zone и HeightMap хранятся построчно: индекс i = row*Width + col.
type WorldMap struct {
	Seed      int64    `json:"seed"`
	X0        int      `json:"x0"`
	Z0        int      `json:"z0"`
	Width     int      `json:"width"`
	Height    int      `json:"height"`
	Step      int      `json:"step"`
	Zones     []string `json:"zones"`
	Zone      []uint8  `json:"zone"`
	HeightMap []int    `json:"height_map"`
}

// Sample строит карту по реестру. Индекс зоны соответствует порядку разрешения,
// последняя запись соответствует зоне по умолчанию.
func Sample(r *world.Registry, b Bounds) (*WorldMap, error) {
	if b.Width <= 0 || b.Height <= 0 || b.Step <= 0 {
		return nil, fmt.Errorf("некорректные размеры карты %dx%d, шаг %d", b.Width, b.Height, b.Step)
	}
	if b.Width*b.Height > maxSamples {
		return nil, fmt.Errorf("карта %dx%d больше %d отсчётов", b.Width, b.Height, maxSamples)
	}

	zones := r.Zones()
	index := make(map[string]uint8, len(zones)+1)
	names := make([]string, 0, len(zones)+1)
	for _, z := range append(zones, r.Fallback()) {
		index[z.Name()] = uint8(len(names))
		names = append(names, z.Name())
	}

	m := &WorldMap{
		Seed:      r.Config().Seed,
		X0:        b.X0,
		Z0:        b.Z0,
		Width:     b.Width,
		Height:    b.Height,
		Step:      b.Step,
		Zones:     names,
		Zone:      make([]uint8, b.Width*b.Height),
		HeightMap: make([]int, b.Width*b.Height),
	}
	for row := 0; row < b.Height; row++ {
		z := b.Z0 + row*b.Step
		for col := 0; col < b.Width; col++ {
			x := b.X0 + col*b.Step
			i := row*b.Width + col
			m.Zone[i] = index[r.Resolve(x, z).Name()]
			m.HeightMap[i] = r.TerrainHeight(x, z)
		}
	}
	return m, nil
}

// WriteMap пишет карту как JSON, сжатый zstd
func WriteMap(path string, m *WorldMap) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}

	bw := bufio.NewWriterSize(enc, 256*1024)
	if err := json.NewEncoder(bw).Encode(m); err != nil {
		enc.Close()
		return fmt.Errorf("json encode: %w", err)
	}
	if err := bw.Flush(); err != nil {
		enc.Close()
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	return f.Close()
}

// ReadMap читает карту, записанную WriteMap
func ReadMap(path string) (*WorldMap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	var m WorldMap
	if err := json.NewDecoder(bufio.NewReaderSize(dec, 256*1024)).Decode(&m); err != nil {
		return nil, fmt.Errorf("json decode: %w", err)
	}
	return &m, nil
}
