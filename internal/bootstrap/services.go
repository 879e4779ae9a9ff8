package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/luminaryawards/program-api/config"
	"github.com/luminaryawards/program-api/internal/adapters/push"
	redisadapter "github.com/luminaryawards/program-api/internal/adapters/redis"
	"github.com/luminaryawards/program-api/internal/data"
	"github.com/luminaryawards/program-api/internal/ports"
	"github.com/luminaryawards/program-api/internal/ratelimit"
	"github.com/luminaryawards/program-api/internal/service"
	"github.com/redis/go-redis/v9"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Awardees      *service.AwardeeService
	Posts         *service.PostService
	Announcements *service.AnnouncementService
	Events        *service.EventService
	Newsletter    *service.NewsletterService
	Inquiries     *service.InquiryService
	Push          *service.PushService
	Users         *service.UserService
	Auth          *service.AuthService
	Maintenance   *service.MaintenanceService

	// Limiter throttles public intake endpoints. Nil when rate limiting is
	// disabled by config.
	Limiter *ratelimit.Limiter
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// serviceRepositories groups data adapters backing service ports.
type serviceRepositories struct {
	DB               *sql.DB
	Redis            redis.UniversalClient
	AwardeeRepo      *data.AwardeeRepo
	PostRepo         *data.PostRepo
	AnnouncementRepo *data.AnnouncementRepo
	EventRepo        *data.EventRepo
	NewsletterRepo   *data.NewsletterRepo
	InquiryRepo      *data.InquiryRepo
	PushRepo         *data.PushSubscriptionRepo
	UserRepo         *data.UserRepo
}

// buildRepositories builds repositories backing service ports; no business rules here.
func buildRepositories(db *sql.DB, redis redis.UniversalClient) *serviceRepositories {
	return &serviceRepositories{
		DB:               db,
		Redis:            redis,
		AwardeeRepo:      data.NewAwardeeRepo(db),
		PostRepo:         data.NewPostRepo(db),
		AnnouncementRepo: data.NewAnnouncementRepo(db),
		EventRepo:        data.NewEventRepo(db),
		NewsletterRepo:   data.NewNewsletterRepo(db),
		InquiryRepo:      data.NewInquiryRepo(db),
		PushRepo:         data.NewPushSubscriptionRepo(db),
		UserRepo:         data.NewUserRepo(db),
	}
}

// buildRateLimiter wires the fixed-window limiter. Counters live in Redis so
// all HTTP replicas share windows; a process-local store is the fallback when
// Redis is unavailable.
func buildRateLimiter(cfg *config.AppConfig, redisClient redis.UniversalClient, logger *slog.Logger) *ratelimit.Limiter {
	if cfg == nil || !cfg.RateLimit.Enabled {
		return nil
	}

	var store ratelimit.Store
	if redisClient != nil {
		store = redisadapter.NewRateLimitStore(redisClient)
	} else {
		if logger != nil {
			logger.Warn("redis unavailable; rate limit counters are process-local")
		}
		store = ratelimit.NewMemoryStore()
	}

	return ratelimit.NewLimiter(ratelimit.LimiterOptions{
		Store:  store,
		Logger: logger,
	})
}

// buildPushSender wires the push delivery adapter when push is enabled.
//
//nolint:ireturn // Returning the PushSender port keeps the service decoupled from the adapter.
func buildPushSender(cfg config.PushConfig) ports.PushSender {
	if !cfg.Enabled {
		return nil
	}
	return push.NewSender(push.Config{
		RelayURL:     cfg.RelayURL,
		VAPIDSubject: cfg.VAPIDSubject,
		Timeout:      cfg.Timeout,
		RetryLimit:   cfg.RetryLimit,
		Client:       &http.Client{Timeout: cfg.Timeout},
	})
}

// NewServices wires repositories and adapters into the service container.
func NewServices(deps *ServiceDeps) ServiceContainer {
	if deps == nil {
		return ServiceContainer{}
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	appCfg := deps.Config
	if appCfg == nil {
		appCfg = &config.AppConfig{}
	}

	repos := buildRepositories(deps.DB, deps.RedisClient)

	authService := BuildAuthService(AuthConfig{
		Auth:        appCfg.Auth,
		RedisClient: deps.RedisClient,
		Users:       repos.UserRepo,
		Logger:      logger,
	})

	pushService := service.NewPushService(service.PushServiceOptions{
		SubscriptionRepo: repos.PushRepo,
		Sender:           buildPushSender(appCfg.Push),
		Logger:           logger,
	})

	maintenanceService := service.NewMaintenanceService(service.MaintenanceServiceOptions{
		PostRepo:              repos.PostRepo,
		AnnouncementRepo:      repos.AnnouncementRepo,
		AnnouncementRetention: appCfg.Maintenance.AnnouncementRetention,
		Logger:                logger,
	})

	return ServiceContainer{
		Awardees:      service.NewAwardeeService(service.AwardeeServiceOptions{AwardeeRepo: repos.AwardeeRepo}),
		Posts:         service.NewPostService(service.PostServiceOptions{PostRepo: repos.PostRepo}),
		Announcements: service.NewAnnouncementService(service.AnnouncementServiceOptions{AnnouncementRepo: repos.AnnouncementRepo}),
		Events:        service.NewEventService(service.EventServiceOptions{EventRepo: repos.EventRepo}),
		Newsletter:    service.NewNewsletterService(service.NewsletterServiceOptions{NewsletterRepo: repos.NewsletterRepo}),
		Inquiries:     service.NewInquiryService(service.InquiryServiceOptions{InquiryRepo: repos.InquiryRepo}),
		Push:          pushService,
		Users:         service.NewUserService(service.UserServiceOptions{UserRepo: repos.UserRepo}),
		Auth:          authService,
		Maintenance:   maintenanceService,
		Limiter:       buildRateLimiter(appCfg, deps.RedisClient, logger),
	}
}

// ServiceOrchestrationConfig contains configuration for service orchestration.
type ServiceOrchestrationConfig struct {
	Config      *config.AppConfig
	Services    ServiceContainer
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// shutdownWaitTimeout is the maximum time to wait for services to stop gracefully.
const shutdownWaitTimeout = 15 * time.Second

// serviceStartupDeps groups dependencies for service startup.
type serviceStartupDeps struct {
	ctx             context.Context
	cfg             *ServiceOrchestrationConfig
	logger          *slog.Logger
	enabledServices map[config.ServiceMode]bool
	errCh           chan error
}

// backgroundService describes a startable background component.
type backgroundService struct {
	mode  config.ServiceMode
	name  string
	start func(context.Context) error
}

// backgroundServiceHandle tracks a running background service.
type backgroundServiceHandle struct {
	mode config.ServiceMode
	name string
	done <-chan struct{}
}

// startHTTPServerIfEnabled starts the HTTP server if enabled.
func startHTTPServerIfEnabled(deps *serviceStartupDeps) *http.Server {
	if deps == nil || deps.cfg == nil || !deps.enabledServices[config.ServiceModeHTTP] {
		return nil
	}
	return StartHTTPServer(&HTTPServerConfig{
		Config:   deps.cfg.Config,
		Services: deps.cfg.Services,
		Logger:   deps.logger,
	})
}

func launchBackground(ctx context.Context, deps *serviceStartupDeps, descriptor backgroundService) <-chan struct{} {
	if deps == nil || !deps.enabledServices[descriptor.mode] {
		return nil
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := descriptor.start(ctx); err != nil {
			errMsg := fmt.Errorf("%s failed: %w", descriptor.name, err)
			select {
			case deps.errCh <- errMsg:
			case <-ctx.Done():
			default:
				deps.logger.WarnContext(ctx, "dropping background service error",
					"service", descriptor.name,
					"error", errMsg,
				)
			}
		}
	}()

	deps.logger.InfoContext(ctx, "background service started", "service", descriptor.name, "mode", descriptor.mode)

	return done
}

func startBackgroundServices(deps *serviceStartupDeps, services []backgroundService) []backgroundServiceHandle {
	if deps == nil {
		return nil
	}
	handles := make([]backgroundServiceHandle, 0, len(services))

	for _, svc := range services {
		done := launchBackground(deps.ctx, deps, svc)
		if done == nil {
			continue
		}

		handles = append(handles, backgroundServiceHandle{
			mode: svc.mode,
			name: svc.name,
			done: done,
		})
	}

	return handles
}

func newMaintenanceBackgroundService(deps *serviceStartupDeps) backgroundService {
	return backgroundService{
		mode: config.ServiceModeMaintenance,
		name: "maintenance",
		start: func(ctx context.Context) error {
			if deps == nil {
				return nil
			}
			var interval time.Duration
			if deps.cfg.Config != nil {
				interval = deps.cfg.Config.Maintenance.Interval
			}
			return RunMaintenance(ctx, MaintenanceRunnerConfig{
				Service:  deps.cfg.Services.Maintenance,
				Interval: interval,
				Logger:   deps.logger,
			})
		},
	}
}

// ServiceStartupResult holds the results of starting all services.
type ServiceStartupResult struct {
	HTTPServer *http.Server
	Background []backgroundServiceHandle
}

// startServices starts all enabled services and returns their completion channels.
func startServices(deps *serviceStartupDeps) ServiceStartupResult {
	return ServiceStartupResult{
		HTTPServer: startHTTPServerIfEnabled(deps),
		Background: startBackgroundServices(deps, []backgroundService{
			newMaintenanceBackgroundService(deps),
		}),
	}
}

// RunServicesWithShutdown starts all enabled services and manages their lifecycle.
// This function blocks until a shutdown signal is received or a service fails.
func RunServicesWithShutdown(cfg *ServiceOrchestrationConfig) error {
	if cfg == nil {
		return errors.New("service orchestration config is required")
	}
	ctx := context.Background()
	serviceCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if cfg.Config == nil {
		return errors.New("service orchestration config missing AppConfig")
	}

	// Determine which services are enabled
	enabledServices, err := cfg.Config.GetEnabledServices()
	if err != nil {
		return fmt.Errorf("determine enabled services: %w", err)
	}
	errCh := make(chan error, errorChannelBufferSize(enabledServices))

	// Start all enabled services
	result := startServices(&serviceStartupDeps{
		ctx:             serviceCtx,
		cfg:             cfg,
		logger:          logger,
		enabledServices: enabledServices,
		errCh:           errCh,
	})

	// Wait for shutdown signal or error
	return waitForShutdown(shutdownConfig{
		ctx:         serviceCtx,
		cancel:      cancel,
		errCh:       errCh,
		httpServer:  result.HTTPServer,
		logger:      logger,
		backgrounds: result.Background,
	})
}

func errorChannelBufferSize(enabled map[config.ServiceMode]bool) int {
	size := len(enabled) + 1
	if size < 1 {
		return 1
	}
	return size
}

// shutdownConfig contains dependencies for graceful shutdown.
type shutdownConfig struct {
	ctx         context.Context
	cancel      context.CancelFunc
	errCh       <-chan error
	httpServer  *http.Server
	logger      *slog.Logger
	backgrounds []backgroundServiceHandle
}

// waitForShutdown waits for shutdown signal or service error.
func waitForShutdown(cfg shutdownConfig) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case <-quit:
		cfg.logger.Info("shutting down services...")
		cfg.cancel() // Cancel service context before waiting
		return gracefulStop(cfg)
	case err := <-cfg.errCh:
		cfg.logger.Error("service error", "error", err)
		cfg.cancel() // Cancel service context before waiting
		if stopErr := gracefulStop(cfg); stopErr != nil {
			cfg.logger.Error("graceful stop failed", "error", stopErr)
		}
		return err
	}
}

// gracefulStop attempts to gracefully stop all services.
func gracefulStop(cfg shutdownConfig) error {
	// Gracefully stop HTTP server if running
	if cfg.httpServer != nil {
		// Create a timeout context for HTTP shutdown
		shutdownCtx, cancel := context.WithTimeout(cfg.ctx, shutdownWaitTimeout)
		defer cancel()

		if err := ShutdownHTTPServer(ShutdownConfig{
			Context: shutdownCtx,
			Server:  cfg.httpServer,
			Logger:  cfg.logger,
		}); err != nil {
			return err
		}
	}

	// Wait for background services to finish
	for _, svc := range cfg.backgrounds {
		waitForService(svc.done, svc.name, cfg.logger)
	}

	return nil
}

// waitForService waits for a service to finish with timeout.
func waitForService(done <-chan struct{}, name string, logger *slog.Logger) {
	if done == nil {
		return
	}
	select {
	case <-done:
		logger.Info(name + " stopped")
	case <-time.After(shutdownWaitTimeout):
		logger.Warn("timeout waiting for " + name + " to stop")
	}
}
