package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jhoicas/sucursales-pos/internal/application/analytics"
	"github.com/jhoicas/sucursales-pos/internal/application/auth"
	"github.com/jhoicas/sucursales-pos/internal/application/sales"
	"github.com/jhoicas/sucursales-pos/internal/application/usecase"
	"github.com/jhoicas/sucursales-pos/internal/infrastructure/cache"
	infrapdf "github.com/jhoicas/sucursales-pos/internal/infrastructure/pdf"
	"github.com/jhoicas/sucursales-pos/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/sucursales-pos/internal/interfaces/http"
	"github.com/jhoicas/sucursales-pos/pkg/config"
	"github.com/jhoicas/sucursales-pos/pkg/logger"

	_ "github.com/jhoicas/sucursales-pos/docs"
)

// @title       Sucursales POS API
// @version     1.0
// @description Administración multi-sucursal: punto de venta, inventario, reservas y personal.
// @BasePath    /
// @securityDefinitions.apikey Bearer
// @in          header
// @name        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("tz", cfg.App.Timezone).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	loc := cfg.App.Location()

	branchRepo := postgres.NewBranchRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	movRepo := postgres.NewStockMovementRepository(pool)
	serviceRepo := postgres.NewServiceRepository(pool)
	categoryRepo := postgres.NewServiceCategoryRepository(pool)
	bookingRepo := postgres.NewBookingRepository(pool)
	txRepo := postgres.NewTransactionRepository(pool)
	householdRepo := postgres.NewHouseholdRepository(pool)
	dashboardRepo := postgres.NewDashboardRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, cfg.Org.DefaultPassword).RestrictToOrg(cfg.Org.ID)
	userUC := usecase.NewUserUseCase(userRepo, authUC)
	branchUC := usecase.NewBranchUseCase(branchRepo)
	customerUC := usecase.NewCustomerUseCase(customerRepo)
	productUC := usecase.NewProductUseCase(productRepo, movRepo, loc)
	stockUC := usecase.NewStockUseCase(movRepo, productRepo, loc)
	serviceUC := usecase.NewServiceUseCase(serviceRepo, categoryRepo)
	bookingUC := usecase.NewBookingUseCase(txRunner, bookingRepo, customerRepo)
	householdUC := usecase.NewHouseholdUseCase(householdRepo)

	transactionUC := sales.NewTransactionUseCase(
		txRunner, txRepo, productRepo, serviceRepo, movRepo, customerRepo, branchRepo,
		infrapdf.NewMarotoReceiptGenerator(), loc, log,
	)

	// Caché del dashboard: Redis si está configurado; si no responde, se sigue sin caché.
	var summaryCache analytics.SummaryCache = cache.NoopDashboardCache{}
	if cfg.Redis.Addr != "" {
		rc := cache.NewRedisDashboardCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		if err := rc.Ping(pingCtx); err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis no disponible, dashboard sin caché")
			_ = rc.Close()
		} else {
			summaryCache = rc
			defer rc.Close()
		}
		cancel()
	}
	dashboardUC := analytics.NewDashboardUseCase(dashboardRepo, productUC, summaryCache, cfg.Redis.DashboardTTL(), loc, log)
	transactionUC.WithListener(dashboardUC)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.AllowedOrigin,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, " + httpRouter.HeaderBranchID,
	}))
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Sucursales POS API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		BranchUC:      branchUC,
		UserUC:        userUC,
		CustomerUC:    customerUC,
		ProductUC:     productUC,
		StockUC:       stockUC,
		ServiceUC:     serviceUC,
		BookingUC:     bookingUC,
		HouseholdUC:   householdUC,
		TransactionUC: transactionUC,
		DashboardUC:   dashboardUC,
		JWTSecret:     cfg.JWT.Secret,
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
