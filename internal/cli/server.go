package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"rag-assessment/internal/app"
	"rag-assessment/internal/config"
	"rag-assessment/internal/definition"
	"rag-assessment/internal/infra/filesystem"
	"rag-assessment/internal/infra/memory"
	pgloader "rag-assessment/internal/infra/postgres"
	redisstore "rag-assessment/internal/infra/redis"
	"rag-assessment/internal/report"
	transport "rag-assessment/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the assessment server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync()

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg, log); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
	}
	redisTTL := config.TTLDuration(cfg.Redis.TTL, 30*time.Minute)

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
	}

	loader, err := definitionLoader(cfg, pool)
	if err != nil {
		return err
	}

	definitionTTL := config.TTLDuration(cfg.Definition.TTL, 10*time.Minute)
	var definitions app.DefinitionRepository
	if redisClient != nil {
		definitions = redisstore.NewDefinitionRepository(redisClient, loader, definitionTTL)
	} else {
		definitions = memory.NewDefinitionRepository(loader, definitionTTL)
	}

	var store app.SessionRepository
	if redisClient != nil {
		store = redisstore.NewSessionStore(redisClient, redisTTL)
	} else {
		store = memory.NewSessionStore()
	}

	reports := report.NewService(report.Options{FontPath: cfg.Report.Font}, log)
	service := app.NewAssessmentService(store, definitions, reports, log)

	mux := transport.NewMux(
		transport.NewWSHandler(service, cfg.Definition.ID, log),
		transport.NewReportHandler(service, log),
	)
	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting assessment service", "port", finalPort, "definition", cfg.Definition.ID)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// definitionLoader chains the configured sources: Postgres first, then the
// definitions directory, then the documents built into the binary.
func definitionLoader(cfg config.Config, pool *pgxpool.Pool) (memory.DefinitionLoader, error) {
	builtin, err := definition.Builtin()
	if err != nil {
		return nil, err
	}
	var chain memory.ChainLoader
	if pool != nil {
		chain = append(chain, pgloader.NewDefinitionLoader(pool))
	}
	if cfg.Definition.Dir != "" {
		chain = append(chain, filesystem.NewDefinitionLoader(cfg.Definition.Dir))
	}
	chain = append(chain, memory.NewStaticDefinitionLoader(builtin))
	return chain, nil
}

