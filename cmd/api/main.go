package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/pawsitive-care/inventory-api/docs"
	appanalytics "github.com/pawsitive-care/inventory-api/internal/application/analytics"
	"github.com/pawsitive-care/inventory-api/internal/application/auth"
	appinv "github.com/pawsitive-care/inventory-api/internal/application/inventory"
	"github.com/pawsitive-care/inventory-api/internal/application/purchasing"
	"github.com/pawsitive-care/inventory-api/internal/application/usecase"
	"github.com/pawsitive-care/inventory-api/internal/domain/inventory"
	"github.com/pawsitive-care/inventory-api/internal/infrastructure/notify"
	infrapdf "github.com/pawsitive-care/inventory-api/internal/infrastructure/pdf"
	httpRouter "github.com/pawsitive-care/inventory-api/internal/interfaces/http"
	"github.com/pawsitive-care/inventory-api/pkg/config"
	"github.com/pawsitive-care/inventory-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.App.Storage).
		Msg("iniciando aplicación")

	ctx := context.Background()
	st, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer st.close()

	classifier := inventory.NewClassifier(cfg.Inventory.ExpiryWindowDays)
	rules := inventory.DefaultPricingRules()
	rules.BulkTiers = []inventory.DiscountTier{{MinQuantity: cfg.Pricing.BulkBreakpoint, Rate: cfg.Pricing.BulkDiscount}}
	rules.PreferredRate = cfg.Pricing.PreferredDiscount

	// Alertas: suscriptores según NOTIFIER_DRIVERS. Un destino caído no impide arrancar.
	hub := appinv.NewAlertHub(log)
	closers := subscribeNotifiers(ctx, hub, cfg.Notifier, log)
	defer func() {
		for _, c := range closers {
			c()
		}
	}()

	movements := appinv.NewMovementUseCase(st.tx, classifier, hub)
	query := appinv.NewQueryUseCase(st.items, st.movements, classifier)
	reconcileUC := appinv.NewReconcileUseCase(st.items, st.movements, log)
	replenishmentUC := appinv.NewReplenishmentUseCase(st.items, st.suppliers)
	pricingUC := appinv.NewPricingUseCase(st.items, rules, classifier)

	// PDF: reporte de stock con maroto
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.App.Name)
	exportUC := appinv.NewExportUseCase(st.items, st.movements, st.analytics, query, classifier, pdfGenerator, cfg.App.Name)

	itemUC := usecase.NewItemUseCase(st.items, st.suppliers, st.tx, movements, classifier)
	supplierUC := usecase.NewSupplierUseCase(st.suppliers)
	userUC := usecase.NewUserUseCase(st.users)
	purchasingUC := purchasing.NewUseCase(st.tx, st.purchaseOrders, st.suppliers, movements, classifier, log)
	dashboardUC := appanalytics.NewDashboardUseCase(st.analytics, st.items, query, classifier)
	authUC := auth.NewAuthUseCase(st.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath:    "/",
		FileContent: []byte(docs.SwaggerInfo.ReadDoc()),
		Path:        "docs",
		Title:       "Pawsitive Care Inventory API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "storage": cfg.App.Storage})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		UserUC:        userUC,
		ItemUC:        itemUC,
		SupplierUC:    supplierUC,
		Movements:     movements,
		Query:         query,
		Reconcile:     reconcileUC,
		Replenishment: replenishmentUC,
		Export:        exportUC,
		Pricing:       pricingUC,
		Purchasing:    purchasingUC,
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

// subscribeNotifiers registra los destinos de alertas configurados y devuelve sus funciones de cierre.
func subscribeNotifiers(ctx context.Context, hub *appinv.AlertHub, cfg config.NotifierConfig, log *logger.Logger) []func() {
	var closers []func()
	if cfg.Enabled("log") {
		hub.Subscribe(notify.NewLogNotifier(log))
	}
	if cfg.Enabled("rabbitmq") {
		p, err := notify.NewRabbitMQPublisher(cfg.RabbitURL, cfg.RabbitAlertQueue)
		if err != nil {
			log.Error().Err(err).Msg("notificador rabbitmq deshabilitado")
		} else {
			hub.Subscribe(p)
			closers = append(closers, p.Close)
		}
	}
	if cfg.Enabled("redis") {
		p, err := notify.NewRedisPublisher(ctx, notify.RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Channel:  cfg.RedisChannel,
		})
		if err != nil {
			log.Error().Err(err).Msg("notificador redis deshabilitado")
		} else {
			hub.Subscribe(p)
			closers = append(closers, func() { _ = p.Close() })
		}
	}
	log.Info().Int("subscribers", hub.Subscribers()).Strs("drivers", cfg.Drivers).Msg("alertas configuradas")
	return closers
}
