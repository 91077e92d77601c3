package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"pathmatch/internal/config"
	"pathmatch/internal/database"
	"pathmatch/internal/database/migration"
	dbpostgres "pathmatch/internal/database/postgres"
	"pathmatch/internal/delivery/http/handler"
	"pathmatch/internal/delivery/http/middleware"
	"pathmatch/internal/delivery/http/routes"
	"pathmatch/internal/embedding"
	"pathmatch/internal/infrastructure/cache"
	"pathmatch/internal/llm"
	"pathmatch/internal/pkg/jwt"
	"pathmatch/internal/repository"
	"pathmatch/internal/usecase"
	"pathmatch/internal/ws"
)

// Container owns every long-lived dependency. Construction order is
// config, storage, providers, repositories, usecases, delivery.
type Container struct {
	Config config.Config
	Log    *zap.Logger

	DB    database.DB
	Redis *cache.Redis
	Hub   *ws.Hub

	Jobs     repository.JobRepository
	Personas repository.PersonaRepository

	Dedup      usecase.DedupUsecase
	ScoreBatch usecase.ScoreBatchUsecase
	Ghost      usecase.GhostUsecase
	PersonaUC  usecase.PersonaUsecase
	AuthUC     usecase.AuthUsecase

	Registry *routes.Registry

	provider *embedding.GeminiProvider
	llm      llm.Client
}

func NewLogger(cfg config.AppConfig) (*zap.Logger, error) {
	if cfg.Environment == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func NewContainer(ctx context.Context, cfg config.Config, log *zap.Logger) (*Container, error) {
	if log == nil {
		log = zap.NewNop()
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(connectCtx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if err := (migration.Runner{Dir: "migrations"}).Run(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	redis := cache.NewRedis(cfg.Redis, log)

	provider, err := embedding.NewGeminiProvider(ctx, cfg.Gemini.APIKey, cfg.Gemini.EmbeddingModel, cfg.Gemini.EmbeddingDim)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("embedding provider: %w", err)
	}

	llmClient, err := llm.NewGeminiClient(ctx, cfg.Gemini.APIKey, cfg.Gemini.CompletionModel)
	if err != nil {
		_ = provider.Close()
		_ = db.Close()
		return nil, fmt.Errorf("llm client: %w", err)
	}

	jobs := repository.NewPostgresJobRepository(db)
	personas := repository.NewPostgresPersonaRepository(db)
	scores := repository.NewPostgresScoreRepository(db)
	users := repository.NewPostgresUserRepository(db)
	vectorStore := repository.NewPostgresEmbeddingStore(db)

	embCache, err := embedding.NewCache(provider, vectorStore, cfg.Scoring.CacheMaxEntries, log)
	if err != nil {
		_ = llmClient.Close()
		_ = provider.Close()
		_ = db.Close()
		return nil, fmt.Errorf("embedding cache: %w", err)
	}

	hub := ws.NewHub(log)
	notifier := ws.NewNotifier(hub)

	jwtSvc := jwt.NewHMACService(cfg.JWT.Secret, cfg.JWT.AccessTokenTTL, cfg.JWT.RefreshTokenTTL)

	dedupUC := usecase.NewDedupUsecase(jobs, embCache, log)
	scoreBatchUC := usecase.NewScoreBatchUsecase(
		personas, jobs, scores, embCache, redis, notifier,
		cfg.Scoring.Fit, cfg.Scoring.Stretch, cfg.Scoring.Ghost, log,
	)
	ghostUC := usecase.NewGhostUsecase(jobs, llm.NewVaguenessRater(llmClient, log), cfg.Scoring.Ghost, log)
	personaUC := usecase.NewPersonaUsecase(personas, scores, embCache, redis, log)
	authUC := usecase.NewAuthUsecase(users, jwtSvc)

	registry := &routes.Registry{
		Health:   handler.NewHealthHandler(db, redis),
		Auth:     handler.NewAuthHandler(authUC),
		Personas: handler.NewPersonaHandler(personaUC),
		Jobs:     handler.NewJobsHandler(jobs, dedupUC),
		Scores:   handler.NewScoreHandler(scoreBatchUC, ghostUC),
		WS:       ws.NewHandler(hub, log),
		AuthMw:   middleware.NewAuthMiddleware(jwtSvc),
	}

	return &Container{
		Config:     cfg,
		Log:        log,
		DB:         db,
		Redis:      redis,
		Hub:        hub,
		Jobs:       jobs,
		Personas:   personas,
		Dedup:      dedupUC,
		ScoreBatch: scoreBatchUC,
		Ghost:      ghostUC,
		PersonaUC:  personaUC,
		AuthUC:     authUC,
		Registry:   registry,
		provider:   provider,
		llm:        llmClient,
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.llm != nil {
		_ = c.llm.Close()
	}
	if c.provider != nil {
		_ = c.provider.Close()
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
