package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/annel0/zoneworld/internal/chunk"
	"github.com/annel0/zoneworld/internal/config"
	"github.com/annel0/zoneworld/internal/logging"
	"github.com/annel0/zoneworld/internal/middleware"
	"github.com/annel0/zoneworld/internal/world"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const version = "v0.1.0"

// RestServer представляет инспекционный REST API над миром, подгрузчиком чанков и агентами
type RestServer struct {
	router   *gin.Engine
	server   *http.Server
	world    *world.Registry
	mesher   *chunk.Mesher
	streamer *chunk.Streamer
	agents   *SessionStore
	port     string
	metrics  *ServerMetrics
	logger   *logging.Logger
}

// Config содержит конфигурацию для REST сервера
type Config struct {
	Port        string               // порт для запуска сервера
	ServiceName string               // имя сервиса для трассировки и метрик
	World       *world.Registry      // реестр зон
	Mesher      *chunk.Mesher        // построитель геометрии для /api/chunk
	Streamer    *chunk.Streamer      // подгрузчик для /api/stream
	Physics     config.PhysicsConfig // параметры агентов
	Metrics     *prometheus.Registry // регистр HTTP-метрик; nil создаёт отдельный
}

// NewRestServer создает новый REST API сервер
func NewRestServer(cfg Config) *RestServer {
	if cfg.Port == "" {
		cfg.Port = ":8088"
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = "zoneworld"
	}
	if cfg.Metrics == nil {
		cfg.Metrics = prometheus.NewRegistry()
	}
	if cfg.Mesher == nil && cfg.World != nil {
		cfg.Mesher = chunk.NewWorldMesher(cfg.World, config.Default().Mesh)
	}

	gin.SetMode(gin.ReleaseMode)

	router := gin.New()        // без стандартного logger/recovery
	router.Use(gin.Recovery()) // добавим только recovery

	logger := logging.GetAPILogger()

	// === Observability middleware ===
	router.Use(otelgin.Middleware(cfg.ServiceName))
	router.Use(middleware.NewRequestLogger(logger).Handler())

	promMw := middleware.NewPrometheusMiddleware("zoneworld_api", cfg.Metrics)
	router.Use(promMw.Handler())
	promMw.RegisterMetricsEndpoint(router, prometheus.Gatherers{prometheus.DefaultGatherer, cfg.Metrics})

	rs := &RestServer{
		router:   router,
		world:    cfg.World,
		mesher:   cfg.Mesher,
		streamer: cfg.Streamer,
		agents:   NewSessionStore(cfg.World, cfg.Physics),
		port:     cfg.Port,
		metrics:  NewServerMetrics(),
		logger:   logger,
	}

	rs.setupRoutes()

	return rs
}

// setupRoutes настраивает маршруты REST API
func (rs *RestServer) setupRoutes() {
	rs.router.GET("/health", rs.handleHealth)

	api := rs.router.Group("/api")
	{
		api.GET("/server", rs.handleServerInfo)
		api.GET("/world", rs.handleWorldInfo)

		// Запросы к генератору
		api.GET("/zone", rs.handleZone)
		api.GET("/height", rs.handleHeight)
		api.GET("/block", rs.handleBlock)
		api.GET("/blocks", rs.handleBlocks)
		api.GET("/chunk", rs.handleChunk)
		api.POST("/visible", rs.handleVisible)
		api.POST("/stream", rs.handleStream)

		// Агенты
		agents := api.Group("/agents")
		agents.POST("", rs.handleCreateAgent)
		agents.GET("", rs.handleListAgents)
		agents.GET("/:id", rs.handleGetAgent)
		agents.POST("/:id/step", rs.handleStepAgent)
		agents.DELETE("/:id", rs.handleDeleteAgent)
	}
}

// Handler возвращает HTTP-обработчик сервера
func (rs *RestServer) Handler() http.Handler { return rs.router }

// Agents возвращает хранилище сессий агентов
func (rs *RestServer) Agents() *SessionStore { return rs.agents }

// Start запускает REST сервер и блокируется до Shutdown
func (rs *RestServer) Start() error {
	rs.server = &http.Server{Addr: rs.port, Handler: rs.router}
	rs.logger.Info("🌐 REST API слушает %s", rs.port)
	if err := rs.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("rest api: %w", err)
	}
	return nil
}

// Shutdown плавно останавливает сервер
func (rs *RestServer) Shutdown(ctx context.Context) error {
	if rs.server == nil {
		return nil
	}
	return rs.server.Shutdown(ctx)
}

// GenericResponse представляет общий ответ API
type GenericResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func ok(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, GenericResponse{Success: true, Message: message, Data: data})
}

func fail(c *gin.Context, status int, message string) {
	c.JSON(status, GenericResponse{Success: false, Message: message})
}

// queryInt читает обязательный целочисленный параметр запроса
func queryInt(c *gin.Context, name string) (int, error) {
	raw, present := c.GetQuery(name)
	if !present {
		return 0, fmt.Errorf("отсутствует параметр %s", name)
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("параметр %s должен быть целым: %q", name, raw)
	}
	return v, nil
}

// queryInts читает несколько обязательных параметров; первая ошибка отвечает 400
func queryInts(c *gin.Context, names ...string) ([]int, bool) {
	out := make([]int, len(names))
	for i, name := range names {
		v, err := queryInt(c, name)
		if err != nil {
			fail(c, http.StatusBadRequest, err.Error())
			return nil, false
		}
		out[i] = v
	}
	return out, true
}

// handleHealth проверка работоспособности
func (rs *RestServer) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": version,
	})
}

// handleServerInfo возвращает информацию о процессе
func (rs *RestServer) handleServerInfo(c *gin.Context) {
	memoryMB, _ := rs.metrics.GetMemoryUsage()
	cpuPercent, _ := rs.metrics.GetCPUUsage()

	info := map[string]interface{}{
		"version":     version,
		"name":        "Zoneworld",
		"status":      "running",
		"uptime":      rs.metrics.GetUptime(),
		"memory_mb":   fmt.Sprintf("%.1f", memoryMB),
		"cpu_percent": fmt.Sprintf("%.1f", cpuPercent),
		"runtime":     rs.metrics.GetDetailedMemoryStats(),
		"agents":      rs.agents.Len(),
	}
	if rs.streamer != nil {
		info["scene_chunks"] = rs.streamer.Scene().Len()
	}

	ok(c, "Информация о сервере", info)
}
