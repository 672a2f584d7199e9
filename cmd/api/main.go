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
	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/stellarmotion-erp/internal/application/auth"
	"github.com/jhoicas/stellarmotion-erp/internal/application/billing"
	"github.com/jhoicas/stellarmotion-erp/internal/application/crm"
	"github.com/jhoicas/stellarmotion-erp/internal/application/invitation"
	"github.com/jhoicas/stellarmotion-erp/internal/application/messaging"
	"github.com/jhoicas/stellarmotion-erp/internal/application/owners"
	"github.com/jhoicas/stellarmotion-erp/internal/application/roles"
	"github.com/jhoicas/stellarmotion-erp/internal/application/usecase"
	infrakml "github.com/jhoicas/stellarmotion-erp/internal/infrastructure/kml"
	inframail "github.com/jhoicas/stellarmotion-erp/internal/infrastructure/mail"
	infrapdf "github.com/jhoicas/stellarmotion-erp/internal/infrastructure/pdf"
	"github.com/jhoicas/stellarmotion-erp/internal/infrastructure/postgres"
	"github.com/jhoicas/stellarmotion-erp/internal/infrastructure/queue"
	"github.com/jhoicas/stellarmotion-erp/internal/infrastructure/scheduler"
	"github.com/jhoicas/stellarmotion-erp/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/stellarmotion-erp/internal/interfaces/http"
	"github.com/jhoicas/stellarmotion-erp/pkg/config"
	"github.com/jhoicas/stellarmotion-erp/pkg/logger"

	_ "github.com/jhoicas/stellarmotion-erp/docs"
)

// @title                       StellarMotion ERP API
// @version                     1.0
// @description                 Backoffice de StellarMotion: facturas de marca, roles y permisos, invitaciones, CRM de leads, mensajería y soportes publicitarios.
// @BasePath                    /
// @securityDefinitions.apikey  Session
// @in                          cookie
// @name                        session
func main() {
	cfg, err := config.Load()
	if err != nil {
		_, _ = os.Stderr.WriteString("cargar configuración: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()
	log.Info().Str("db", postgres.RedactDSN(cfg.DB.ConnectionString())).Msg("conectado a PostgreSQL")

	if cfg.DB.AutoMigrate {
		if err := postgres.RunMigrations(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Msg("migraciones aplicadas")
	}

	userRepo := postgres.NewUserRepository(pool)
	roleRepo := postgres.NewRoleRepository(pool)
	invitationRepo := postgres.NewInvitationRepository(pool)
	leadRepo := postgres.NewLeadRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	conversationRepo := postgres.NewConversationRepository(pool)
	ownerRepo := postgres.NewOwnerRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Correo: SMTP detrás de una cola Redis; sin REDIS_URL se envía en línea.
	mailer := inframail.NewMailer(cfg.SMTP, log.Component("mail"))
	var rdb *redis.Client
	if cfg.Redis.URL != "" {
		rdb, err = queue.NewRedis(ctx, cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rdb.Close()
	}
	dispatcher := queue.NewDispatcher(rdb, cfg.Redis.EmailQueue, mailer)

	images, err := storage.NewLocalStore(cfg.Uploads.Dir, cfg.Uploads.PublicPrefix)
	if err != nil {
		log.Fatal().Err(err).Msg("directorio de subidas")
	}

	authUC := auth.NewAuthUseCase(userRepo, roleRepo, txRunner, auth.SessionConfig{
		Secret:     cfg.Session.Secret,
		ExpMinutes: cfg.Session.Expiration,
		Issuer:     cfg.Session.Issuer,
	})
	rolesUC := roles.NewUseCase(roleRepo, txRunner)
	permisoSvc := roles.NewPermisoService(roleRepo)
	invitationUC := invitation.NewUseCase(invitationRepo, roleRepo, txRunner, dispatcher, cfg.App.PublicBaseURL, log.Component("invitaciones"))
	leadUC := crm.NewLeadUseCase(leadRepo)
	invoiceUC := billing.NewInvoiceUseCase(invoiceRepo, txRunner)
	invoicePDF := billing.NewPDFUseCase(invoiceRepo, infrapdf.NewStatementGenerator("StellarMotion"))
	messagingUC := messaging.NewUseCase(conversationRepo, txRunner)
	ownersUC := owners.NewUseCase(ownerRepo, userRepo, roleRepo, log.Component("owners"))
	productUC := usecase.NewProductUseCase(productRepo, images, infrakml.NewExporter("Soportes StellarMotion"), usecase.ProductOptions{
		MaxImageBytes: int64(cfg.Uploads.MaxBytes),
		Placeholder:   cfg.Uploads.Placeholder,
	})

	app := newApp(cfg, log.Component("http"))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "StellarMotion ERP API",
	}))

	app.Static(cfg.Uploads.PublicPrefix, images.Dir())

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		RolesUC:        rolesUC,
		PermisoService: permisoSvc,
		InvitationUC:   invitationUC,
		LeadUC:         leadUC,
		InvoiceUC:      invoiceUC,
		InvoicePDF:     invoicePDF,
		MessagingUC:    messagingUC,
		OwnersUC:       ownersUC,
		ProductUC:      productUC,
		SessionSecret:  cfg.Session.Secret,
		Cookie: httpRouter.CookieConfig{
			Name:       cfg.Session.CookieName,
			Secure:     cfg.Session.CookieSecure,
			ExpMinutes: cfg.Session.Expiration,
		},
		LoginRateLimit: cfg.HTTP.LoginRateLimit,
		Log:            log.Component("http"),
	})

	// Trabajos periódicos
	sched := scheduler.New(log)
	if cfg.Scheduler.Enabled {
		err := sched.Register(
			scheduler.Job{Name: "expire_invitations", Spec: cfg.Scheduler.ExpireInvitations, Run: invitationUC.ExpirePending},
			scheduler.Job{Name: "mark_overdue_invoices", Spec: cfg.Scheduler.MarkOverdue, Run: invoiceUC.MarkOverdue},
		)
		if err != nil {
			log.Fatal().Err(err).Msg("registro de trabajos programados")
		}
		sched.Start()
	}

	// Workers de correo
	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	var workers *queue.Pool
	if rdb != nil {
		workers = queue.NewPool(rdb, cfg.Redis.EmailQueue, mailer, log.Component("worker"))
		workers.Start(workerCtx, cfg.Redis.Workers)
	}

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	sched.Stop(shutdownCtx)
	cancelWorkers()
	if workers != nil {
		workers.Wait()
	}

	log.Info().Msg("aplicación detenida")
}

// newApp crea la app Fiber con el manejador de errores, los middlewares comunes y /health.
func newApp(cfg *config.Config, log *logger.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    6 * cfg.Uploads.MaxBytes,
		ErrorHandler: httpRouter.ErrorHandler(log),
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log))
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.HTTP.AllowedOrigins,
		AllowCredentials: true,
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	return app
}
