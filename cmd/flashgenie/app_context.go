package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/flashgenie/internal/application/generation"
	apptheme "github.com/alexisbeaulieu97/flashgenie/internal/application/theme"
	"github.com/alexisbeaulieu97/flashgenie/internal/infrastructure/config"
	"github.com/alexisbeaulieu97/flashgenie/internal/infrastructure/environment"
	"github.com/alexisbeaulieu97/flashgenie/internal/infrastructure/events"
	logginginfra "github.com/alexisbeaulieu97/flashgenie/internal/infrastructure/logging"
	"github.com/alexisbeaulieu97/flashgenie/internal/infrastructure/remote"
	"github.com/alexisbeaulieu97/flashgenie/internal/infrastructure/storage"
	"github.com/alexisbeaulieu97/flashgenie/internal/infrastructure/tracing"
	"github.com/alexisbeaulieu97/flashgenie/internal/logger"
	"github.com/alexisbeaulieu97/flashgenie/internal/ports"
)

// logSink selects where diagnostics go for a command.
type logSink int

const (
	// sinkConsole writes to the command's stderr.
	sinkConsole logSink = iota
	// sinkFile writes to the configured log file so the terminal UI keeps
	// the screen.
	sinkFile
)

// AppContext bundles long-lived services created at startup.
type AppContext struct {
	Config     *config.Config
	Logger     ports.Logger
	Events     *events.LoggingPublisher
	Tracer     *tracing.Tracer
	Generator  ports.Generator
	Controller *generation.Controller
	Theme      *apptheme.Store

	closers []func(context.Context) error
}

// Seams replaced in tests.
var (
	openLogFile     = logger.OpenFile
	newRemoteClient = remote.NewClient
)

// newAppContext wires every collaborator. When a step fails, whatever was
// already opened is closed before the error is returned.
func newAppContext(ctx context.Context, flags *rootFlags, errOut io.Writer, sink logSink) (_ *AppContext, err error) {
	boot := logginginfra.NewBootstrapLogger(0)
	app := &AppContext{}
	defer func() {
		if err != nil {
			if closeErr := app.Close(context.Background()); closeErr != nil {
				err = errors.Join(err, closeErr)
			}
		}
	}()

	dir, err := config.DefaultDir()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(ctx, config.LoadOptions{Dir: dir, Path: flags.configPath, Logger: boot})
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	app.Config = cfg

	level := cfg.Log.Level
	if flags.verbose {
		level = "debug"
	}

	traceOut := errOut
	switch sink {
	case sinkFile:
		file, err := openLogFile(cfg.Log.File)
		if err != nil {
			fmt.Fprintf(errOut, "warning: %v; logging disabled\n", err)
			app.Logger = logginginfra.NewNoOpLogger()
			traceOut = io.Discard
			break
		}
		app.closers = append(app.closers, func(context.Context) error { return file.Close() })
		fileLogger, err := logger.New(logger.Options{Level: level, Writer: file})
		if err != nil {
			return nil, err
		}
		app.Logger = fileLogger.With("layer", "presentation")
		traceOut = file
	default:
		consoleLogger, err := logginginfra.New(logginginfra.Options{
			Writer:    errOut,
			Level:     level,
			Format:    logginginfra.Format(cfg.Log.Format),
			Layer:     "presentation",
			Component: "cli",
		})
		if err != nil {
			return nil, err
		}
		app.Logger = consoleLogger
	}
	boot.Attach(app.Logger)

	tracer, shutdown, err := tracing.Setup(ctx, tracing.Options{
		Enabled:  cfg.Tracing.Enabled,
		Exporter: cfg.Tracing.Exporter,
		Writer:   traceOut,
	})
	if err != nil {
		return nil, err
	}
	app.Tracer = tracer
	app.closers = append([]func(context.Context) error{shutdown}, app.closers...)

	app.Events = events.NewLoggingPublisher(app.Logger.With("component", "events"))

	client, err := newRemoteClient(remote.Options{
		BaseURL: cfg.Service.BaseURL,
		Timeout: cfg.Service.Timeout,
		Logger:  app.Logger.With("component", "remote", "layer", "infrastructure"),
		Tracer:  tracer,
	})
	if err != nil {
		return nil, fmt.Errorf("create generation client: %w", err)
	}
	app.Generator = remote.NewBreakerGenerator(client, remote.BreakerOptions{
		MaxFailures: cfg.Service.Breaker.MaxFailures,
		OpenTimeout: cfg.Service.Breaker.OpenTimeout,
		Logger:      app.Logger.With("component", "breaker", "layer", "infrastructure"),
	})
	app.Controller = generation.NewController(app.Generator,
		generation.WithLogger(app.Logger),
		generation.WithEvents(app.Events),
	)

	app.Theme = apptheme.NewStore(ctx, apptheme.Deps{
		Storage: app.openStorage(ctx, flags),
		Probe:   environment.NewProbe(),
		Applier: environment.LipglossApplier{},
		Logger:  app.Logger,
		Events:  app.Events,
		Tracer:  tracer,
	})

	return app, nil
}

// openStorage falls back to an in-memory store when the configured backend
// cannot be opened; preferences then last for this run only.
func (a *AppContext) openStorage(ctx context.Context, flags *rootFlags) ports.KeyValueStore {
	backend := a.Config.Storage.Backend
	if flags.ephemeral {
		backend = storage.BackendMemory
	}
	kv, closer, err := storage.Open(backend, a.Config.Storage.Path)
	if err != nil {
		a.Logger.Warn(ctx, "preference storage unavailable, using memory", "backend", backend, "path", a.Config.Storage.Path, "error", err)
		return storage.NewMemoryStore(nil)
	}
	a.closers = append(a.closers, func(context.Context) error { return closer.Close() })
	return kv
}

// CommandContext returns a context carrying a fresh correlation ID and a
// logger tagged with the command name.
func (a *AppContext) CommandContext(cmd *cobra.Command, name string) (context.Context, ports.Logger) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = ports.WithCorrelationID(ctx, ports.GenerateCorrelationID())
	return ctx, a.Logger.With("command", name)
}

// Close flushes traces and releases storage and log files.
func (a *AppContext) Close(ctx context.Context) error {
	var errs []error
	for _, closeFn := range a.closers {
		if err := closeFn(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
