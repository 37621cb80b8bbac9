package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/cjbarker/trivia-app/internal/config"
	"github.com/cjbarker/trivia-app/internal/domain"
	"github.com/cjbarker/trivia-app/internal/game"
	"github.com/cjbarker/trivia-app/internal/infra/memory"
	pgloader "github.com/cjbarker/trivia-app/internal/infra/postgres"
	rediscache "github.com/cjbarker/trivia-app/internal/infra/redis"
	transport "github.com/cjbarker/trivia-app/internal/transport/http"
)

// questionSource yields a parsed question set, cached or otherwise.
type questionSource interface {
	GetSet(ctx context.Context, setID string) (domain.QuestionSet, error)
}

// NewServeCmd builds the CLI subcommand to start the server.
func NewServeCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the trivia server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
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
	}

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
	}

	loader := buildLoader(cfg, pool)
	questionTTL := config.Duration(cfg.Questions.TTL, 10*time.Minute)

	var source questionSource
	if redisClient != nil {
		source = rediscache.NewQuestionRepository(redisClient, loader, questionTTL)
	} else {
		source = memory.NewQuestionRepository(loader, questionTTL)
	}

	setID := cfg.Questions.Set
	if setID == "" {
		setID = "default"
	}
	set, err := source.GetSet(ctx, setID)
	if err != nil {
		return err
	}

	questionDuration := config.Duration(cfg.Game.QuestionDuration, game.DefaultQuestionDuration)
	g := game.New(set.Questions, questionDuration)
	srv := transport.NewServer(g, cfg.Admin.Password)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting trivia server on :%s with %d questions", finalPort, len(set.Questions))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	g.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// buildLoader prefers postgres when configured, then a markdown file,
// then a built-in sample set so the server always has something to run.
func buildLoader(cfg config.Config, pool *pgxpool.Pool) memory.SetLoader {
	if pool != nil {
		return pgloader.NewSetLoader(pool)
	}
	if cfg.Questions.File != "" {
		return memory.NewFileSetLoader(cfg.Questions.File)
	}
	return memory.NewStaticSetLoader(sampleSets())
}

// sampleSets keeps the server usable with zero configuration.
func sampleSets() map[string]domain.QuestionSet {
	return map[string]domain.QuestionSet{
		"default": {
			ID: "default",
			Questions: []domain.Question{
				{
					Text:          "What is the capital of France?",
					Type:          domain.MultipleChoice,
					Options:       []string{"Paris", "London", "Berlin", "Madrid"},
					CorrectAnswer: "Paris",
				},
				{
					Text:          "What is 2 + 2?",
					Type:          domain.MultipleChoice,
					Options:       []string{"3", "4", "5", "6"},
					CorrectAnswer: "4",
				},
				{
					Text:          "What planet is known as the Red Planet?",
					Type:          domain.FillInBlank,
					CorrectAnswer: "Mars",
				},
			},
		},
	}
}
