package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzhttp"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/annel0/dungeon-gen/internal/dungeon"
	"github.com/annel0/dungeon-gen/internal/logging"
	"github.com/annel0/dungeon-gen/internal/middleware"
	"github.com/annel0/dungeon-gen/internal/world"
)

const serviceName = "dungeon_api"

// RestServer REST API предпросмотра подземелий
type RestServer struct {
	router     *gin.Engine
	handler    http.Handler
	registry   *world.Registry
	port       string
	metrics    *ServerMetrics
	log        *logging.Logger
	httpServer *http.Server
}

// Config содержит конфигурацию для REST сервера
type Config struct {
	Port       string                // адрес для запуска сервера, например ":8088"
	Registry   *world.Registry       // миры по сидам
	Metrics    bool                  // включить /metrics и HTTP-метрики
	Gzip       bool                  // сжимать ответы
	Registerer prometheus.Registerer // куда регистрировать HTTP-метрики
	Gatherer   prometheus.Gatherer   // откуда /metrics берёт данные
}

// GenericResponse представляет общий ответ API
type GenericResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// NewRestServer создает новый REST API сервер
func NewRestServer(config Config) *RestServer {
	if config.Port == "" {
		config.Port = ":8088"
	}

	gin.SetMode(gin.ReleaseMode)

	router := gin.New()        // без стандартного logger/recovery
	router.Use(gin.Recovery()) // добавим только recovery

	// === Observability middleware ===
	router.Use(otelgin.Middleware(serviceName))

	loggerMw := middleware.NewRequestLogger(logging.GetAPILogger())
	router.Use(loggerMw.Handler())

	if config.Metrics {
		router.Use(middleware.NewHTTPMetrics(serviceName, config.Registerer).Handler())
		router.GET("/metrics", middleware.MetricsHandler(config.Gatherer))
	}

	server := &RestServer{
		router:   router,
		handler:  router,
		registry: config.Registry,
		port:     config.Port,
		metrics:  NewServerMetrics(),
		log:      logging.GetAPILogger(),
	}
	if config.Gzip {
		server.handler = gzhttp.GzipHandler(router)
	}

	server.setupRoutes()
	return server
}

// setupRoutes настраивает маршруты REST API
func (rs *RestServer) setupRoutes() {
	// Middleware для CORS
	rs.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	api := rs.router.Group("/api")
	{
		api.GET("/server", rs.handleServerInfo)

		levels := api.Group("/dungeons/:seed/levels")
		levels.GET("/:level", rs.handleLevel)
		levels.GET("/:level/ascii", rs.handleLevelASCII)
		levels.POST("/:level/seen", rs.handleMarkSeen)
	}

	rs.router.GET("/health", rs.handleHealth)
}

// Handler корневой обработчик вместе со сжатием
func (rs *RestServer) Handler() http.Handler {
	return rs.handler
}

// handleHealth проверка состояния сервера
func (rs *RestServer) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().Unix(),
	})
}

// handleServerInfo сводка по процессу и загруженным мирам
func (rs *RestServer) handleServerInfo(c *gin.Context) {
	info, err := rs.metrics.Collect(rs.registry)
	if err != nil {
		rs.log.Debug("Метрики процесса недоступны: %v", err)
	}

	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Информация о сервере",
		Data:    info,
	})
}

// SeenRequest отметки тумана войны
type SeenRequest struct {
	Rooms []int    `json:"rooms"`
	Tiles [][2]int `json:"tiles"` // пары [x, y]
}

// handleLevel возвращает уровень в JSON
func (rs *RestServer) handleLevel(c *gin.Context) {
	manager, m, ok := rs.loadLevel(c)
	if !ok {
		return
	}

	view := newLevelView(m)
	if ld := manager.LevelData(m.Level()); ld != nil {
		view.SeenRooms, view.SeenTiles = ld.SeenCount()
	}

	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Уровень сгенерирован",
		Data:    view,
	})
}

// handleLevelASCII возвращает уровень текстом
func (rs *RestServer) handleLevelASCII(c *gin.Context) {
	_, m, ok := rs.loadLevel(c)
	if !ok {
		return
	}
	c.String(http.StatusOK, m.String())
}

// handleMarkSeen отмечает комнаты и клетки уровня как увиденные
func (rs *RestServer) handleMarkSeen(c *gin.Context) {
	manager, m, ok := rs.loadLevel(c)
	if !ok {
		return
	}

	var req SeenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		rs.fail(c, http.StatusBadRequest, "Неверный формат запроса")
		return
	}
	for _, id := range req.Rooms {
		if m.Room(id) == nil {
			rs.fail(c, http.StatusBadRequest, fmt.Sprintf("Неизвестная комната %d", id))
			return
		}
	}
	for _, t := range req.Tiles {
		if !m.Grid().InBounds(t[0], t[1]) {
			rs.fail(c, http.StatusBadRequest, fmt.Sprintf("Клетка (%d, %d) вне карты", t[0], t[1]))
			return
		}
	}

	ld := manager.LevelData(m.Level())
	for _, id := range req.Rooms {
		ld.MarkRoomSeen(id)
	}
	for _, t := range req.Tiles {
		ld.MarkTileSeen(t[0], t[1])
	}

	rooms, tiles := ld.SeenCount()
	c.JSON(http.StatusOK, GenericResponse{
		Success: true,
		Message: "Отметки сохранены",
		Data: gin.H{
			"seen_rooms": rooms,
			"seen_tiles": tiles,
		},
	})
}

// loadLevel разбирает параметры пути и генерирует уровень. При ошибке ответ уже записан.
func (rs *RestServer) loadLevel(c *gin.Context) (*world.Manager, *dungeon.DungeonMap, bool) {
	seed, err := strconv.ParseInt(c.Param("seed"), 10, 64)
	if err != nil {
		rs.fail(c, http.StatusBadRequest, "Неверный сид")
		return nil, nil, false
	}
	level, err := strconv.Atoi(c.Param("level"))
	if err != nil {
		rs.fail(c, http.StatusBadRequest, "Неверный номер уровня")
		return nil, nil, false
	}

	manager := rs.registry.Get(seed)
	m, err := manager.Map(c.Request.Context(), level)
	switch {
	case err == nil:
		return manager, m, true
	case errors.Is(err, world.ErrLevelOutOfRange):
		rs.fail(c, http.StatusNotFound, "Уровень вне диапазона")
	case errors.Is(err, dungeon.ErrInvalidParams):
		rs.fail(c, http.StatusBadRequest, "Некорректные параметры генерации")
	case errors.Is(err, context.Canceled):
		c.Abort()
	default:
		rs.log.Error("Ошибка генерации seed=%d level=%d: %v", seed, level, err)
		rs.fail(c, http.StatusInternalServerError, "Внутренняя ошибка сервера")
	}
	return nil, nil, false
}

func (rs *RestServer) fail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, GenericResponse{
		Success: false,
		Message: message,
	})
}

// Start запускает REST сервер и блокируется до Stop
func (rs *RestServer) Start() error {
	rs.httpServer = &http.Server{
		Addr:              rs.port,
		Handler:           rs.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	rs.log.Info("🌐 REST API слушает %s", rs.port)
	if err := rs.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop останавливает REST сервер, дожидаясь активных запросов
func (rs *RestServer) Stop(ctx context.Context) error {
	if rs.httpServer == nil {
		return nil
	}
	return rs.httpServer.Shutdown(ctx)
}
