package main

import (
	"flag"
	"log"
	"os"

	"github.com/annel0/zoneworld/internal/config"
	"github.com/annel0/zoneworld/internal/logging"
	"github.com/annel0/zoneworld/internal/world"
)

func main() {
	var (
		configPath = flag.String("config", "", "Путь к YAML конфигурации")
		x0         = flag.Int("x0", -4000, "Западная граница карты (блоки)")
		z0         = flag.Int("z0", -4000, "Северная граница карты (блоки)")
		width      = flag.Int("w", 400, "Ширина карты в отсчётах")
		height     = flag.Int("h", 400, "Высота карты в отсчётах")
		step       = flag.Int("step", 20, "Шаг между отсчётами (блоки)")
		out        = flag.String("out", "worldmap.json.zst", "Файл результата")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Ошибка загрузки конфигурации: %v", err)
	}

	r := world.NewRegistry(cfg.World)
	m, err := Sample(r, Bounds{X0: *x0, Z0: *z0, Width: *width, Height: *height, Step: *step})
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	if err := WriteMap(*out, m); err != nil {
		log.Fatalf("❌ Ошибка записи карты: %v", err)
	}

	info, _ := os.Stat(*out)
	var size int64
	if info != nil {
		size = info.Size()
	}
	logging.Info("🗺️  Карта %dx%d (шаг %d) записана в %s, %d байт", m.Width, m.Height, m.Step, *out, size)
}
