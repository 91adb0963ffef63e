package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jhoicas/vendor-management/docs"
	"github.com/jhoicas/vendor-management/internal/application/auth"
	"github.com/jhoicas/vendor-management/internal/application/report"
	"github.com/jhoicas/vendor-management/internal/application/usecase"
	inframetrics "github.com/jhoicas/vendor-management/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/vendor-management/internal/infrastructure/pdf"
	"github.com/jhoicas/vendor-management/internal/infrastructure/postgres"
	"github.com/jhoicas/vendor-management/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/vendor-management/internal/interfaces/http"
	"github.com/jhoicas/vendor-management/pkg/config"
	"github.com/jhoicas/vendor-management/pkg/logger"
)

// @title                       Vendor Management API
// @version                     1.0
// @description                 API de gestión de vendors y productos de software: permisos, reseñas y reportes.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
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
		Msg("iniciando aplicación")

	ctx := context.Background()
	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, cfg.DB.ConnectionString(), "up"); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	profileRepo := postgres.NewProfileRepository(pool)
	permissionRepo := postgres.NewPermissionRepository(pool)
	vendorRepo := postgres.NewVendorRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	documentRepo := postgres.NewDocumentRepository(pool)
	commentRepo := postgres.NewCommentRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	files, err := storage.NewLocalStorage(cfg.Storage.BaseDir, int64(cfg.Storage.MaxUploadMB)<<20)
	if err != nil {
		log.Fatal().Err(err).Msg("almacenamiento de archivos")
	}
	appMetrics := inframetrics.New()
	access := usecase.AccessPolicy{EnforceView: cfg.Authz.EnforceView}

	permissionUC := usecase.NewPermissionUseCase(permissionRepo, userRepo,
		usecase.PermissionPolicy{ProtectCatalog: cfg.Authz.ProtectCatalog}, appMetrics, log)
	if cfg.Seed.PermissionsOnStart {
		if _, err := permissionUC.SeedCatalog(ctx); err != nil {
			log.Fatal().Err(err).Msg("sembrar catálogo de permisos")
		}
	}

	commentUC := usecase.NewCommentUseCase(commentRepo, vendorRepo, productRepo, appMetrics, log)
	vendorUC := usecase.NewVendorUseCase(vendorRepo, productRepo, documentRepo, files, commentUC, access, log)
	productUC := usecase.NewProductUseCase(productRepo, documentRepo, vendorRepo, txRunner, files, commentUC, access, log)
	authUC := auth.NewAuthUseCase(userRepo, profileRepo, txRunner, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, auth.SignupPolicy{AllowAdmin: cfg.Auth.SignupAllowAdmin}, log)

	// PDF: listado de productos para el reporte
	reportUC := report.NewReportUseCase(productRepo, infrapdf.NewMarotoReportGenerator(cfg.App.Name))

	app := httpRouter.NewApp(httpRouter.AppConfig{
		Name:        cfg.App.Name,
		MaxUploadMB: cfg.Storage.MaxUploadMB,
		Log:         log,
		Observer:    appMetrics,
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		ActorSvc:     usecase.NewActorService(userRepo),
		VendorUC:     vendorUC,
		ProductUC:    productUC,
		CommentUC:    commentUC,
		PermissionUC: permissionUC,
		ReportUC:     reportUC,
		DashboardUC:  usecase.NewDashboardUseCase(userRepo, vendorRepo, productRepo),
		Storage:      files,
		Session:      httpRouter.SessionConfig{Secret: cfg.JWT.Secret, CookieName: cfg.Auth.CookieName},
		Cookie: httpRouter.CookieConfig{
			Name:       cfg.Auth.CookieName,
			Secure:     cfg.Auth.CookieSecure,
			ExpMinutes: cfg.JWT.Expiration,
		},
		Log:         log,
		Metrics:     appMetrics.Handler(),
		SwaggerFile: "./docs/swagger.json",
		AppName:     cfg.App.Name,
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
