package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/text/language"

	appanalytics "github.com/jhoicas/Inventario-maquinas/internal/application/analytics"
	"github.com/jhoicas/Inventario-maquinas/internal/application/inventory"
	"github.com/jhoicas/Inventario-maquinas/internal/application/ports"
	"github.com/jhoicas/Inventario-maquinas/internal/application/usecase"
	"github.com/jhoicas/Inventario-maquinas/internal/domain/repository"
	"github.com/jhoicas/Inventario-maquinas/internal/infrastructure/memory"
	"github.com/jhoicas/Inventario-maquinas/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/Inventario-maquinas/internal/infrastructure/pdf"
	"github.com/jhoicas/Inventario-maquinas/internal/infrastructure/postgres"
	"github.com/jhoicas/Inventario-maquinas/internal/infrastructure/xlsx"
	httpRouter "github.com/jhoicas/Inventario-maquinas/internal/interfaces/http"
	"github.com/jhoicas/Inventario-maquinas/pkg/config"
	"github.com/jhoicas/Inventario-maquinas/pkg/logger"
)

// storage repositorios del libro según el driver configurado.
type storage struct {
	txRunner    inventory.TxRunner
	snapshots   repository.SnapshotReader
	materials   repository.MaterialRepository
	allocations repository.AllocationRepository
	machines    repository.MachineRepository
	refs        repository.ReferenceRepository
	close       func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer store.close()

	lang, err := language.Parse(cfg.Query.Collation)
	if err != nil {
		log.Warn().Err(err).Str("collation", cfg.Query.Collation).Msg("colación inválida, se usa español")
		lang = language.Spanish
	}
	engine := inventory.NewEngine(inventory.EngineConfig{
		Language:        lang,
		DefaultPageSize: cfg.Query.DefaultPageSize,
		MaxPageSize:     cfg.Query.MaxPageSize,
	})

	var recorder ports.MetricsRecorder = ports.NopMetrics{}
	appCfg := httpRouter.AppConfig{
		Name:         cfg.App.Name,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		Log:          log,
	}
	if cfg.Metrics.Enabled {
		prom := metrics.NewRecorder()
		recorder = prom
		appCfg.MetricsPath = cfg.Metrics.Path
		appCfg.MetricsHandler = prom.Handler()
	}
	if cfg.Docs.Enabled {
		if _, err := os.Stat(cfg.Docs.FilePath); err == nil {
			appCfg.DocsFile = cfg.Docs.FilePath
		} else {
			log.Warn().Str("file", cfg.Docs.FilePath).Msg("swagger.json no encontrado, /docs desactivado")
		}
	}

	loader := inventory.NewSnapshotLoader(store.snapshots, recorder)
	allocationUC := inventory.NewAllocationUseCase(
		store.txRunner, store.allocations, store.materials, store.machines,
		loader, engine, recorder, log,
	)
	materialQueryUC := inventory.NewMaterialQueryUseCase(loader, engine, xlsx.NewMaterialExporter(), recorder)
	materialUC := usecase.NewMaterialUseCase(store.txRunner, store.materials, store.allocations, store.machines, store.refs, log)
	referenceUC := usecase.NewReferenceUseCase(store.machines, store.refs)
	// PDF: reporte de asignaciones por máquina
	dashboardUC := appanalytics.NewDashboardUseCase(loader, engine, infrapdf.NewMachineReportGenerator())

	app := httpRouter.NewApp(appCfg, httpRouter.RouterDeps{
		AllocationUC:    allocationUC,
		MaterialQueryUC: materialQueryUC,
		MaterialUC:      materialUC,
		ReferenceUC:     referenceUC,
		DashboardUC:     dashboardUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// openStorage abre PostgreSQL (con migraciones goose opcionales) o el store en memoria.
func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	if cfg.Storage.Driver == config.StorageDriverMemory {
		s := memory.NewStore()
		if cfg.Storage.SeedFile != "" {
			if err := s.LoadSeedFile(cfg.Storage.SeedFile); err != nil {
				return nil, err
			}
			log.Info().Str("file", cfg.Storage.SeedFile).Msg("datos iniciales cargados")
		}
		return &storage{
			txRunner:    s,
			snapshots:   s,
			materials:   s.Materials(),
			allocations: s.Allocations(),
			machines:    s.Machines(),
			refs:        s.References(),
			close:       func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if cfg.Storage.Migrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Msg("migraciones aplicadas")
	}
	return &storage{
		txRunner:    postgres.NewTxRunner(pool),
		snapshots:   postgres.NewSnapshotReader(pool),
		materials:   postgres.NewMaterialRepository(pool),
		allocations: postgres.NewAllocationRepository(pool),
		machines:    postgres.NewMachineRepository(pool),
		refs:        postgres.NewReferenceRepository(pool),
		close:       pool.Close,
	}, nil
}
