package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/lexiplay/internal/api"
	"github.com/phrazzld/lexiplay/internal/config"
	"github.com/phrazzld/lexiplay/internal/content"
	"github.com/phrazzld/lexiplay/internal/domain/leveling"
	"github.com/phrazzld/lexiplay/internal/events"
	"github.com/phrazzld/lexiplay/internal/generation"
	"github.com/phrazzld/lexiplay/internal/platform/gemini"
	"github.com/phrazzld/lexiplay/internal/platform/openai"
	"github.com/phrazzld/lexiplay/internal/platform/postgres"
	"github.com/phrazzld/lexiplay/internal/service"
	"github.com/phrazzld/lexiplay/internal/service/play"
	"github.com/phrazzld/lexiplay/internal/task"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	childService    service.ChildService
	progressService service.ProgressService
	leveler         leveling.Service
	catalog         *content.Catalog
	playService     *play.Service

	eventEmitter *events.InMemoryEventEmitter
	taskRunner   *task.TaskRunner

	router http.Handler
}

// newApplication creates a new application instance with all dependencies initialized.
// The task runner is started; cleanup stops it.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	childStore := postgres.NewPostgresChildStore(db, logger)
	progressStore := postgres.NewPostgresProgressStore(db, logger)
	childRepo := service.NewChildRepositoryAdapter(childStore, db)
	progressRepo := service.NewProgressRepositoryAdapter(progressStore, db)

	var err error
	app.childService, err = service.NewChildService(childRepo, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create child service: %w", err)
	}
	app.progressService, err = service.NewProgressService(progressRepo, childRepo, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create progress service: %w", err)
	}

	app.leveler, err = leveling.NewServiceWithParams(leveling.NewParams(leveling.ParamsConfig{
		AffectWeight:   cfg.Leveling.AffectWeight,
		ScoreWeight:    cfg.Leveling.ScoreWeight,
		RaiseThreshold: cfg.Leveling.RaiseThreshold,
		LowerThreshold: cfg.Leveling.LowerThreshold,
	}))
	if err != nil {
		return nil, fmt.Errorf("failed to create leveling service: %w", err)
	}

	generator, err := newWordGenerator(ctx, cfg.LLM, logger)
	if err != nil {
		return nil, err
	}
	app.catalog = content.NewCatalog(generator, content.Config{
		WordsPerLevel: cfg.LLM.WordsPerLevel,
	}, logger)

	app.taskRunner = task.NewTaskRunner(task.TaskRunnerConfig{
		WorkerCount: cfg.Task.WorkerCount,
		QueueSize:   cfg.Task.QueueSize,
	}, logger)
	app.taskRunner.SetErrorHandler(func(t task.Task, err error) {
		logger.Error("session record task failed",
			"task_id", t.ID(),
			"task_type", t.Type(),
			"error", err)
	})

	app.eventEmitter = events.NewInMemoryEventEmitter(logger)
	app.eventEmitter.RegisterHandler(
		task.NewSessionEventHandler(app.progressService, app.taskRunner, cfg.Task.SinkTimeout, logger),
	)

	app.playService, err = play.NewService(
		app.progressService,
		app.catalog,
		app.leveler,
		app.eventEmitter,
		play.Config{
			ItemsPerSession:   cfg.Session.ItemsPerSession,
			SampleInterval:    cfg.Session.SampleInterval,
			EmotionBufferSize: cfg.Session.EmotionBufferSize,
			EmotionBonus:      cfg.Session.EmotionBonus,
			IdleTimeout:       cfg.Session.IdleTimeout,
			ResultRetention:   cfg.Session.ResultRetention,
		},
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create play service: %w", err)
	}

	app.router = newRouter(
		logger,
		api.NewChildHandler(app.childService, app.progressService, logger),
		api.NewSessionHandler(app.playService, logger),
		api.NewLevelHandler(app.leveler),
	)

	app.taskRunner.Start()
	logger.Info("application initialized",
		"word_generation", cfg.LLM.Enabled(),
		"items_per_session", cfg.Session.ItemsPerSession)
	return app, nil
}

// newWordGenerator returns the configured word generator, or nil when
// generation is disabled.
func newWordGenerator(ctx context.Context, cfg config.LLMConfig, logger *slog.Logger) (generation.WordGenerator, error) {
	switch cfg.Provider {
	case "":
		logger.Info("word generation disabled, serving built-in words only")
		return nil, nil
	case "gemini":
		g, err := gemini.NewWordGenerator(ctx, cfg, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize gemini word generator: %w", err)
		}
		return g, nil
	case "openai":
		g, err := openai.NewWordGenerator(cfg, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize openai word generator: %w", err)
		}
		return g, nil
	default:
		return nil, fmt.Errorf("%w: unknown llm provider %q", generation.ErrInvalidConfig, cfg.Provider)
	}
}

// Run serves HTTP until ctx is canceled, then shuts everything down.
func (app *application) Run(ctx context.Context) error {
	if err := app.startHTTPServer(ctx, app.router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup stops the components in dependency order: live sessions first,
// then the task runner draining their records, then the database.
func (app *application) cleanup(ctx context.Context) error {
	var errs []error

	if app.playService != nil {
		if err := app.playService.Close(ctx); err != nil {
			errs = append(errs, fmt.Errorf("closing play service: %w", err))
		}
	}
	if app.taskRunner != nil {
		if err := app.taskRunner.Stop(ctx); err != nil {
			errs = append(errs, fmt.Errorf("stopping task runner: %w", err))
		}
	}
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing database: %w", err))
		}
	}

	err := errors.Join(errs...)
	if err != nil {
		app.logger.Error("application shutdown completed with errors", "error", err)
	} else {
		app.logger.Info("application shutdown completed")
	}
	return err
}
