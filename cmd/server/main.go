package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/annel0/zoneworld/internal/api"
	"github.com/annel0/zoneworld/internal/chunk"
	"github.com/annel0/zoneworld/internal/config"
	"github.com/annel0/zoneworld/internal/logging"
	"github.com/annel0/zoneworld/internal/observability"
	"github.com/annel0/zoneworld/internal/world"
	"github.com/go-gl/mathgl/mgl64"
)

func main() {
	configPath := flag.String("config", "", "Путь к YAML конфигурации (по умолчанию ENV ZONEWORLD_CONFIG)")
	warmup := flag.Bool("warmup", true, "Подгрузить чанки вокруг точки возрождения перед стартом API")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Ошибка загрузки конфигурации: %v", err)
	}

	if err := configureLogging(cfg.Logging); err != nil {
		log.Fatalf("❌ Ошибка настройки логирования: %v", err)
	}
	if err := logging.InitDefaultLogger("server"); err != nil {
		log.Fatalf("❌ Ошибка инициализации логирования: %v", err)
	}
	defer logging.CloseDefaultLogger()
	defer logging.GetLoggerManager().CloseAll()

	logging.Info("🎮 Запуск Zoneworld (seed=%d, chunk=%d)", cfg.World.Seed, cfg.World.ChunkSize)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := observability.InitTelemetry(ctx, cfg.Server)
	if err != nil {
		logging.Warn("OpenTelemetry недоступен, трассировка выключена: %v", err)
		shutdownTelemetry = func(context.Context) error { return nil }
	}

	// === ИНИЦИАЛИЗАЦИЯ КОМПОНЕНТОВ ===
	registry := world.NewRegistry(cfg.World)
	mesher := chunk.NewWorldMesher(registry, cfg.Mesh)
	visibility := chunk.NewVisibility(cfg.View, cfg.World.ChunkSize)
	streamer := chunk.NewStreamer(mesher, visibility, cfg.Stream)

	if *warmup {
		warmupScene(ctx, streamer, cfg)
	}

	restPort := fmt.Sprintf(":%d", cfg.Server.GetRESTPort())
	server := api.NewRestServer(api.Config{
		Port:        restPort,
		ServiceName: cfg.Server.ServiceName,
		World:       registry,
		Mesher:      mesher,
		Streamer:    streamer,
		Physics:     cfg.Physics,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logging.Info("✅ Сервис запущен")
	logging.Info("   🌐 REST API: http://localhost%s", restPort)
	logging.Info("   ❤️  Health check: http://localhost%s/health", restPort)
	logging.Info("💡 Пример: curl 'http://localhost%s/api/zone?x=0&z=300'", restPort)

	select {
	case <-ctx.Done():
		logging.Info("📡 Получен сигнал завершения, остановка...")
	case err := <-errCh:
		if err != nil {
			logging.Error("❌ REST API остановлен с ошибкой: %v", err)
		}
	}

	// === GRACEFUL SHUTDOWN ===
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logging.Error("❌ Ошибка остановки REST API: %v", err)
	}
	if err := shutdownTelemetry(shutdownCtx); err != nil {
		logging.Error("❌ Ошибка остановки телеметрии: %v", err)
	}

	logging.Info("👋 Сервер успешно остановлен")
}

func configureLogging(cfg config.LoggingConfig) error {
	consoleLevel, err := logging.ParseLevel(cfg.ConsoleLevel)
	if err != nil {
		return err
	}
	fileLevel, err := logging.ParseLevel(cfg.FileLevel)
	if err != nil {
		return err
	}
	logging.Configure(logging.Options{
		Dir:          cfg.Dir,
		ConsoleLevel: consoleLevel,
		FileLevel:    fileLevel,
	})

	for component, raw := range cfg.Components {
		level, err := logging.ParseLevel(raw)
		if err != nil {
			return fmt.Errorf("logging.components.%s: %w", component, err)
		}
		if err := logging.GetLoggerManager().SetLogLevel(component, level, level); err != nil {
			return err
		}
	}
	return nil
}

// warmupScene синхронизирует сцену вокруг точки возрождения, пока не останется недостроенных чанков
func warmupScene(ctx context.Context, streamer *chunk.Streamer, cfg *config.Config) {
	viewer := chunk.Viewer{
		Position: mgl64.Vec3{cfg.Physics.SpawnX, cfg.Physics.SpawnY, cfg.Physics.SpawnZ},
		Facing:   mgl64.Vec3{0, 0, -1},
	}

	start := time.Now()
	for {
		res, err := streamer.Sync(ctx, viewer)
		if err != nil {
			logging.Warn("Прогрев сцены прерван: %v", err)
			return
		}
		if res.Pending == 0 {
			break
		}
	}
	logging.Info("🧱 Сцена прогрета: %d чанков за %s", streamer.Scene().Len(), time.Since(start).Round(time.Millisecond))
}
