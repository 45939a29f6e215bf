package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Muebleria-admin/internal/application/catalog"
	"github.com/jhoicas/Muebleria-admin/internal/application/notify"
	"github.com/jhoicas/Muebleria-admin/internal/application/usecase"
	"github.com/jhoicas/Muebleria-admin/internal/infrastructure/backend"
	infrapdf "github.com/jhoicas/Muebleria-admin/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/Muebleria-admin/internal/interfaces/http"
	"github.com/jhoicas/Muebleria-admin/pkg/config"
	"github.com/jhoicas/Muebleria-admin/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("backend", cfg.Backend.BaseURL).
		Msg("iniciando aplicación")

	gateway := backend.New(cfg.Backend.BaseURL, cfg.Backend.Timeout())
	store := catalog.NewStore(cfg.Catalog.PageSize)
	sink := notify.NewSink(cfg.Catalog.NotifyTTL(), log)
	catalogUC := usecase.NewCatalogUseCase(gateway, store, sink, log)

	// Carga inicial del catálogo. Si el backend no responde, el servicio
	// arranca vacío y el operador puede recargar con POST /api/refresh.
	loadCtx, cancelLoad := context.WithTimeout(context.Background(), cfg.Backend.Timeout())
	if err := catalogUC.Refresh(loadCtx); err != nil {
		log.Warn().Err(err).Msg("carga inicial del catálogo")
	}
	cancelLoad()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CatalogUC: catalogUC,
		Sink:      sink,
		PDF:       infrapdf.NewCatalogPDFGenerator(),
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
