package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/annel0/dungeon-gen/internal/api"
	"github.com/annel0/dungeon-gen/internal/config"
	"github.com/annel0/dungeon-gen/internal/logging"
	"github.com/annel0/dungeon-gen/internal/observability"
	"github.com/annel0/dungeon-gen/internal/storage"
	"github.com/annel0/dungeon-gen/internal/world"
)

func main() {
	configPath := flag.String("config", "", "путь к YAML конфигурации (иначе $DUNGEON_CONFIG)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("❌ Ошибка загрузки конфигурации: %v", err)
	}
	consoleLevel, err := logging.ParseLevel(cfg.Logging.ConsoleLevel)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	fileLevel, err := logging.ParseLevel(cfg.Logging.FileLevel)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	logging.SetLogDir(cfg.Logging.Dir)
	if err := logging.InitDefaultLogger("server"); err != nil {
		log.Fatalf("❌ Ошибка инициализации логирования: %v", err)
	}

	err = run(cfg, consoleLevel, fileLevel)
	if err != nil {
		logging.Error("❌ %v", err)
	}
	if cerr := logging.CloseComponents(); cerr != nil {
		log.Printf("❌ %v", cerr)
	}
	logging.CloseDefaultLogger()
	if err != nil {
		os.Exit(1)
	}
}

// run поднимает сервер и блокируется до сигнала остановки.
// Файлы логов закрывает main, поэтому здесь только возврат ошибок.
func run(cfg *config.Config, consoleLevel, fileLevel logging.LogLevel) error {
	logging.SetDefaultLevels(consoleLevel, fileLevel)
	logging.SetComponentLevels(consoleLevel, fileLevel)

	logging.Info("🏰 Запуск сервера предпросмотра подземелий...")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTelemetry, err := observability.InitTelemetry(ctx, cfg.Telemetry)
	if err != nil {
		logging.Error("❌ Ошибка инициализации OpenTelemetry: %v", err)
		shutdownTelemetry = func(context.Context) error { return nil }
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			logging.Error("❌ Ошибка остановки OpenTelemetry: %v", err)
		}
	}()

	var metrics *world.GenerationMetrics
	if cfg.Server.Metrics {
		metrics = world.NewGenerationMetrics("dungeon", prometheus.DefaultRegisterer)
	}
	var opts []world.ManagerOption
	if cfg.Storage.Dir != "" {
		store, err := storage.NewFileLevelStore(cfg.Storage.Dir, cfg.Storage.Compress)
		if err != nil {
			return fmt.Errorf("инициализация хранилища: %w", err)
		}
		opts = append(opts, world.WithStore(store))
		logging.Info("💾 Туман войны сохраняется в %s", cfg.Storage.Dir)
	}
	registry := world.NewRegistry(cfg.Generator, metrics, world.DefaultRegistryCapacity, opts...)

	// Прогреваем мир по умолчанию: первый уровень должен генерироваться без ошибок
	if _, err := registry.Get(cfg.Generator.Seed).Enter(ctx, 0); err != nil {
		return fmt.Errorf("генерация уровня 0: %w", err)
	}

	restPort := fmt.Sprintf(":%d", cfg.Server.GetRESTPort())
	server := api.NewRestServer(api.Config{
		Port:       restPort,
		Registry:   registry,
		Metrics:    cfg.Server.Metrics,
		Gzip:       cfg.Server.Gzip,
		Registerer: prometheus.DefaultRegisterer,
		Gatherer:   prometheus.DefaultGatherer,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logging.Info("✅ Сервер запущен")
	logging.Info("   🌐 REST API: http://localhost%s", restPort)
	logging.Info("   ❤️  Health check: http://localhost%s/health", restPort)
	logging.Info("   🗺  Пример: curl http://localhost%s/api/dungeons/%d/levels/0/ascii", restPort, cfg.Generator.Seed)

	select {
	case <-ctx.Done():
		logging.Info("📡 Получен сигнал, завершение работы...")
	case err := <-errCh:
		if err != nil {
			logging.Error("❌ REST API остановился: %v", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Stop(shutdownCtx); err != nil {
		logging.Error("❌ Ошибка остановки REST API: %v", err)
	}
	if err := registry.SaveAll(shutdownCtx); err != nil {
		logging.Error("❌ Ошибка сохранения миров: %v", err)
	}

	logging.Info("👋 Сервер успешно остановлен")
	return nil
}
