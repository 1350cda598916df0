package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/brightpath-agency/brightpath/internal/blob"
	httpapi "github.com/brightpath-agency/brightpath/internal/http"
	"github.com/brightpath-agency/brightpath/internal/mail"
	"github.com/brightpath-agency/brightpath/internal/notify"
	"github.com/brightpath-agency/brightpath/internal/service"
	"github.com/brightpath-agency/brightpath/internal/store"
	"github.com/brightpath-agency/brightpath/internal/store/sqlite"
	"github.com/brightpath-agency/brightpath/internal/token"
	"github.com/brightpath-agency/brightpath/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the recruitment service with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db       store.Store
	mailer   *mail.Mailer // nil when SMTP is not configured
	s3       *blob.S3Store
	resolver *blob.Resolver
	codec    *token.Codec
	notifier *notify.Notifier

	// Services
	authService      *service.AuthService
	clientService    *service.ClientService
	companyService   *service.CompanyService
	lifecycleService *service.LifecycleService
	shareService     *service.ShareService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "brightpath",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	if err := app.initBlobStorage(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	if err := app.initMail(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.logger.Info("brightpath service starting", "port", app.cfg.Port, "version", BuildVersion)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down brightpath service...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if app.mailer != nil {
		if err := app.mailer.Close(); err != nil {
			app.logger.Error("error closing mail client", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("brightpath service stopped")
	return nil
}

// initDatabase initializes the database and applies migrations
func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initBlobStorage wires the S3 client when a bucket is configured. Without
// one, CV uploads are rejected and CV links resolve to nothing, but the rest
// of the service runs.
func (app *Application) initBlobStorage() error {
	if app.cfg.S3Bucket == "" {
		app.resolver = blob.NewResolver("", app.cfg.S3PublicBaseURL, nil, 0)
		app.logger.Warn("no S3 bucket configured, CV uploads disabled")
		return nil
	}

	s3store, err := blob.NewS3Store(context.Background(), blob.S3Config{
		Region:       app.cfg.S3Region,
		BaseEndpoint: app.cfg.S3Endpoint,
		AccessKey:    app.cfg.S3AccessKey,
		SecretKey:    app.cfg.S3SecretKey,
		Bucket:       app.cfg.S3Bucket,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize object storage: %w", err)
	}

	app.s3 = s3store
	app.resolver = blob.NewResolver(app.cfg.S3Bucket, app.cfg.S3PublicBaseURL, s3store, 0)
	app.logger.Info("object storage initialized", "bucket", app.cfg.S3Bucket)
	return nil
}

// initMail constructs the SMTP client. Without a host, notifications are
// logged and dropped instead of sent.
func (app *Application) initMail() error {
	if app.cfg.SMTPHost == "" {
		app.logger.Warn("no SMTP host configured, email notifications disabled")
		return nil
	}

	mailer, err := mail.NewMailer(mail.Config{
		Host:     app.cfg.SMTPHost,
		Port:     app.cfg.SMTPPort,
		Username: app.cfg.SMTPUsername,
		Password: app.cfg.SMTPPassword,
		From:     app.cfg.SMTPFrom,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize mail client: %w", err)
	}

	app.mailer = mailer
	app.logger.Info("mail client initialized", "host", app.cfg.SMTPHost)
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.codec = token.NewCodec([]byte(app.cfg.ShareTokenSecret), app.cfg.ShareTTL)

	var transport notify.Transport
	if app.mailer != nil {
		transport = app.mailer
	} else {
		transport = dropTransport{logger: app.logger}
	}

	app.notifier = &notify.Notifier{
		Transport:  transport,
		Resolver:   app.resolver,
		Codec:      app.codec,
		AppBaseURL: app.cfg.AppBaseURL,
	}

	app.authService = &service.AuthService{
		Store:     app.db,
		Secret:    []byte(app.cfg.AuthTokenSecret),
		Issuer:    app.cfg.Issuer,
		AccessTTL: service.DefaultAccessTokenTTL,
	}

	var uploader service.Uploader
	if app.s3 != nil {
		uploader = app.s3
	}

	app.clientService = &service.ClientService{Store: app.db, Uploader: uploader}
	app.companyService = &service.CompanyService{Store: app.db}
	app.lifecycleService = &service.LifecycleService{Store: app.db, Notifier: app.notifier}
	app.shareService = &service.ShareService{
		Store:    app.db,
		Codec:    app.codec,
		Resolver: app.resolver,
	}
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.authService,
		BuildVersion,
		app.db,
		app.logger,
	)

	// Wire services to router
	router.AuthService = app.authService
	router.ClientService = app.clientService
	router.CompanyService = app.companyService
	router.LifecycleService = app.lifecycleService
	router.ShareService = app.shareService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}

// dropTransport stands in for the mailer when SMTP is not configured.
type dropTransport struct {
	logger *slog.Logger
}

func (d dropTransport) Send(_ context.Context, msg mail.Message) error {
	d.logger.Info("email notification dropped, SMTP not configured",
		"to", msg.To, "subject", msg.Subject)
	return nil
}
