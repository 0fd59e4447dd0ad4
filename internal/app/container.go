// Package app provides the dependency injection container for the application.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"planforge/internal/domain"
	"planforge/internal/infra/config"
	"planforge/internal/infra/executor"
	"planforge/internal/infra/gitpub"
	"planforge/internal/infra/labelmap"
	"planforge/internal/infra/logging"
	"planforge/internal/infra/manifest"
	"planforge/internal/infra/registrar"
	"planforge/internal/infra/relay"
	"planforge/internal/infra/render"
	"planforge/internal/infra/taskspec"
	"planforge/internal/infra/watch"
	"planforge/internal/usecase"
)

// Config holds the application configuration paths.
type Config struct {
	Root    string // Working-tree root the engine operates on
	PlanDir string // Path to the plan directory
}

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for use cases.
type Container struct {
	// Ports (interfaces bound to implementations)
	Specs        domain.TaskSpecLoader
	Renderer     domain.Renderer
	Registrar    domain.Registrar
	Manifest     domain.ManifestWriter
	Publisher    domain.Publisher
	Dispatcher   domain.Dispatcher
	Labels       domain.LabelMapLoader
	ConfigLoader domain.ConfigLoader
	Clock        domain.Clock
	Logger       domain.Logger

	// Configuration
	Config Config

	fileLogger *logging.Logger
}

// New creates a new Container operating on the working tree at dir.
func New(dir string) (*Container, error) {
	cfg := Config{
		Root:    dir,
		PlanDir: filepath.Join(dir, domain.PlanDirName),
	}

	// Load app config for the registrar program, dispatch target and log
	// level. An absent file yields defaults; a malformed one is an error
	// worth stopping for.
	configLoader := config.NewLoader(cfg.PlanDir)
	appConfig, err := configLoader.Load()
	if err != nil {
		return nil, err
	}

	fileLogger := logging.New(cfg.PlanDir, logging.ParseLevel(appConfig.Log.Level))

	return &Container{
		Specs:        taskspec.NewLoader(),
		Renderer:     render.NewRenderer(cfg.Root),
		Registrar:    registrar.NewClient(executor.NewClient(), appConfig.Registrar.Program, cfg.Root),
		Manifest:     manifest.NewWriter(),
		Publisher:    gitpub.NewPublisher(cfg.Root, domain.RealClock{}),
		Dispatcher:   relay.NewClient(appConfig.Relay.DispatchURL(), os.Getenv(relay.DispatchTokenEnv)),
		Labels:       labelmap.NewLoader(),
		ConfigLoader: configLoader,
		Clock:        domain.RealClock{},
		Logger:       fileLogger,
		Config:       cfg,
		fileLogger:   fileLogger,
	}, nil
}

// NewWithDeps creates a new Container with custom dependencies for testing.
// Ports not covered here can be assigned directly; the fields are exported.
func NewWithDeps(
	cfg Config,
	specs domain.TaskSpecLoader,
	renderer domain.Renderer,
	reg domain.Registrar,
	man domain.ManifestWriter,
	logger domain.Logger,
) *Container {
	return &Container{
		Specs:     specs,
		Renderer:  renderer,
		Registrar: reg,
		Manifest:  man,
		Clock:     domain.RealClock{},
		Logger:    logger,
		Config:    cfg,
	}
}

// Close releases the log files held by the container.
func (c *Container) Close() {
	if c.fileLogger != nil {
		_ = c.fileLogger.Close()
	}
}

// UseCase factory methods

// GenerateUseCase returns a new Generate use case.
func (c *Container) GenerateUseCase() *usecase.Generate {
	return usecase.NewGenerate(c.Specs, c.Renderer, c.Registrar, c.Manifest, c.ConfigLoader, c.Logger, c.Config.Root, c.Config.PlanDir)
}

// PublishUseCase returns a new Publish use case.
func (c *Container) PublishUseCase() *usecase.Publish {
	return usecase.NewPublish(c.Publisher, c.Specs, c.ConfigLoader, c.Logger, c.Config.PlanDir)
}

// ValidateLabelsUseCase returns a new ValidateLabels use case.
func (c *Container) ValidateLabelsUseCase() *usecase.ValidateLabels {
	return usecase.NewValidateLabels(c.Labels, c.Logger, c.Config.PlanDir)
}

// RunRelay serves the webhook relay on addr, reading the Basic auth
// credentials from the environment. It blocks until the listener fails.
func (c *Container) RunRelay(addr string) error {
	user := os.Getenv(relay.UserEnv)
	pass := os.Getenv(relay.PassEnv)
	if user == "" || pass == "" {
		return fmt.Errorf("%w: set %s and %s", domain.ErrMissingCredentials, relay.UserEnv, relay.PassEnv)
	}
	server := relay.NewServer(c.Dispatcher, c.Logger, relay.Credentials{User: user, Pass: pass})
	return server.Run(addr)
}

// WatchTaskSpec reruns run whenever the taskspec file changes, blocking
// until ctx is cancelled.
func (c *Container) WatchTaskSpec(ctx context.Context, run func(context.Context) error) error {
	watcher, err := watch.New(c.Config.PlanDir, c.Logger, run)
	if err != nil {
		return err
	}
	if err := watcher.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	watcher.Stop()
	return nil
}
