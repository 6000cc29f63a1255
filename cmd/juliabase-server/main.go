// cmd/juliabase-server/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	v1 "github.com/juliabase/juliabase/internal/api/rest/v1"
	"github.com/juliabase/juliabase/internal/app"
	"github.com/juliabase/juliabase/internal/domain/feeds"
	"github.com/juliabase/juliabase/internal/domain/processes"
	"github.com/juliabase/juliabase/internal/domain/samples"
	"github.com/juliabase/juliabase/internal/domain/status"
	"github.com/juliabase/juliabase/internal/domain/topics"
	"github.com/juliabase/juliabase/internal/domain/users"
	"github.com/juliabase/juliabase/internal/infrastructure/persistence"
	"github.com/juliabase/juliabase/internal/pkg/config"
	"github.com/juliabase/juliabase/internal/pkg/logger"
	"github.com/gin-contrib/cors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Application error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Parse configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./configs/juliabase.yaml"
	}

	serverConfig, err := config.InitializeServerConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	// Initialize logger
	if err := logger.InitLogger(&serverConfig.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	log, err := logger.GetLogger()
	if err != nil {
		return fmt.Errorf("failed to get logger: %w", err)
	}

	// Initialize application dependencies
	deps, err := initializeDependencies(serverConfig, log)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	// Seed the first admin account; registration itself is admin-only
	if serverConfig.Auth.BootstrapAdminLogin != "" {
		admin, err := deps.services.user.EnsureAdmin(context.Background(),
			serverConfig.Auth.BootstrapAdminLogin, serverConfig.Auth.BootstrapAdminPassword)
		if err != nil {
			return fmt.Errorf("failed to bootstrap admin account: %w", err)
		}
		log.Info("Admin account ensured: ", admin.LoginName)
	}

	// Run the feed fan-out worker for the lifetime of the server
	feedCtx, cancelFeed := context.WithCancel(context.Background())
	defer cancelFeed()
	go deps.dispatcher.Start()
	defer deps.dispatcher.Stop()
	go deps.services.feed.Run(feedCtx)

	// Setup and start server with graceful shutdown
	return startServerWithGracefulShutdown(serverConfig, deps, log)
}

// appDependencies holds all initialized application components
type appDependencies struct {
	services   *appServices
	dispatcher *feeds.Dispatcher
}

type appServices struct {
	user        users.UserService
	token       users.TokenService
	permissions users.PermissionChecker
	topic       topics.TopicService
	sample      samples.SampleService
	mySamples   samples.MySamplesService
	deposition  processes.DepositionService
	process     processes.ProcessService
	status      status.StatusService
	feed        feeds.FeedService
}

type repositories struct {
	user       users.UserRepository
	details    users.UserDetailsRepository
	permission users.PermissionRepository
	topic      topics.TopicRepository
	sample     samples.SampleRepository
	process    processes.ProcessRepository
	deposition processes.DepositionRepository
	feed       feeds.FeedRepository
	status     status.StatusRepository
}

// initializeDependencies sets up all application components
func initializeDependencies(cfg *config.ServerConfig, log logger.Logger) (*appDependencies, error) {
	// Initialize database
	db, err := persistence.NewDBConnection(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to create db connection: %w", err)
	}

	// Run migrations
	if err := persistence.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	log.Info("Database migrations completed successfully")

	// Initialize repositories
	repos, err := initializeRepositories(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize repositories: %w", err)
	}

	// Initialize services
	dispatcher := feeds.NewDispatcher()
	services, err := initializeApplicationServices(cfg, repos, dispatcher, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	return &appDependencies{
		services:   services,
		dispatcher: dispatcher,
	}, nil
}

func initializeRepositories(db *gorm.DB, log logger.Logger) (*repositories, error) {
	userRepo, err := persistence.NewGormUserRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create user repository: %w", err)
	}

	detailsRepo, err := persistence.NewGormUserDetailsRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create user details repository: %w", err)
	}

	permissionRepo, err := persistence.NewGormPermissionRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create permission repository: %w", err)
	}

	topicRepo, err := persistence.NewGormTopicRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create topic repository: %w", err)
	}

	sampleRepo, err := persistence.NewGormSampleRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create sample repository: %w", err)
	}

	processRepo, err := persistence.NewGormProcessRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create process repository: %w", err)
	}

	depositionRepo, err := persistence.NewGormDepositionRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create deposition repository: %w", err)
	}

	feedRepo, err := persistence.NewGormFeedRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create feed repository: %w", err)
	}

	statusRepo, err := persistence.NewGormStatusRepository(db, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create status repository: %w", err)
	}

	return &repositories{
		user:       userRepo,
		details:    detailsRepo,
		permission: permissionRepo,
		topic:      topicRepo,
		sample:     sampleRepo,
		process:    processRepo,
		deposition: depositionRepo,
		feed:       feedRepo,
		status:     statusRepo,
	}, nil
}

// initializeApplicationServices sets up all application services
func initializeApplicationServices(
	cfg *config.ServerConfig,
	repos *repositories,
	dispatcher *feeds.Dispatcher,
	log logger.Logger,
) (*appServices, error) {
	userService, err := app.NewUserService(repos.user, repos.details, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %w", err)
	}

	tokenService, err := app.NewTokenService(&cfg.Auth, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create token service: %w", err)
	}

	permissionChecker, err := app.NewPermissionChecker(repos.user, repos.permission, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create permission checker: %w", err)
	}

	feedService, err := app.NewFeedService(dispatcher, repos.feed, repos.details, repos.topic, userService, &cfg.Feeds, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create feed service: %w", err)
	}

	topicService, err := app.NewTopicService(repos.topic, repos.user, feedService, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create topic service: %w", err)
	}

	sampleService, err := app.NewSampleService(repos.sample, repos.topic, repos.user, repos.process, feedService, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create sample service: %w", err)
	}

	mySamplesService, err := app.NewMySamplesService(repos.sample, repos.details, userService, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create my-samples service: %w", err)
	}

	depositionService, err := app.NewDepositionService(repos.deposition, repos.sample, permissionChecker, feedService, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create deposition service: %w", err)
	}

	processService, err := app.NewProcessService(repos.process, repos.sample, permissionChecker, feedService, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create process service: %w", err)
	}

	statusService, err := app.NewStatusService(repos.status, repos.user, repos.permission, feedService, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create status service: %w", err)
	}

	log.Info("Application services initialized successfully")
	return &appServices{
		user:        userService,
		token:       tokenService,
		permissions: permissionChecker,
		topic:       topicService,
		sample:      sampleService,
		mySamples:   mySamplesService,
		deposition:  depositionService,
		process:     processService,
		status:      statusService,
		feed:        feedService,
	}, nil
}

// startServerWithGracefulShutdown starts the HTTP server and handles graceful shutdown
func startServerWithGracefulShutdown(cfg *config.ServerConfig, deps *appDependencies, log logger.Logger) error {
	// Setup router
	r := gin.Default()

	// Configure CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Setup API routes
	v1.SetupRoutes(r,
		deps.services.user,
		deps.services.token,
		deps.services.permissions,
		deps.services.topic,
		deps.services.sample,
		deps.services.mySamples,
		deps.services.deposition,
		deps.services.process,
		deps.services.status,
		deps.services.feed,
	)

	// Create HTTP server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attack
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start server in goroutine
	go func() {
		log.Info("Starting server on port ", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- fmt.Errorf("server failed to start: %w", err)
		}
	}()

	// Channel to listen for interrupt signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Block until we receive a signal or server error
	select {
	case err := <-serverErrors:
		return err
	case sig := <-quit:
		log.Info("Received signal ", sig, ", initiating graceful shutdown")
	}

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	log.Info("Shutting down server...")
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("Server stopped gracefully")
	return nil
}
