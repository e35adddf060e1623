package app

import (
	"context"
	"log"
	"time"

	"career-coach/internal/config"
	"career-coach/internal/database"
	dbpostgres "career-coach/internal/database/postgres"
	"career-coach/internal/delivery/http/handler"
	v1 "career-coach/internal/delivery/http/routes/v1"
	"career-coach/internal/infrastructure/cache"
	"career-coach/internal/infrastructure/genai"
	"career-coach/internal/infrastructure/persistence/postgres"
	"career-coach/internal/pkg/jwt"
	ucauth "career-coach/internal/usecase/auth"
	ucinsight "career-coach/internal/usecase/insight"
	ucquiz "career-coach/internal/usecase/quiz"
	ucuser "career-coach/internal/usecase/user"
	"career-coach/internal/worker"
	"career-coach/internal/ws"
)

type Container struct {
	Config config.Config
	DB     database.DB
	Redis  *cache.Redis
	Gemini *genai.GeminiClient
	Hub    *ws.Hub
	Pool   *worker.Pool

	Deps v1.Deps

	logger     *log.Logger
	cancelWork context.CancelFunc
}

func NewContainer(cfg config.Config, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = log.Default()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := database.EnsureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	redis := cache.NewRedis(cfg.Redis, logger)

	gemini, err := genai.NewGeminiClient(context.Background(), cfg.Gemini)
	if err != nil {
		_ = db.Close()
		_ = redis.Close()
		return nil, err
	}

	hub := ws.NewHub(logger)
	go hub.Run()
	ws.SetDefaultHub(hub)

	pool := worker.NewPool(cfg.Insights.RefreshWorkers, 32)
	workCtx, cancelWork := context.WithCancel(context.Background())
	results := pool.Run(workCtx)
	go drainResults(results, logger)

	userRepo := postgres.NewUserRepository(db)
	insightRepo := postgres.NewInsightRepository(db)
	assessmentRepo := postgres.NewAssessmentRepository(db)

	jwtSvc := jwt.NewHMACService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
	)

	authUC := ucauth.NewService(userRepo, jwtSvc)
	userUC := ucuser.NewService(userRepo)
	insightUC := ucinsight.NewService(userRepo, insightRepo, gemini, redis, pool, ucinsight.Options{
		StalenessWindow: cfg.Insights.StalenessWindow,
		RefreshInterval: cfg.Insights.RefreshInterval,
		MemoTTL:         cfg.Insights.MemoTTL,
		Notify:          ws.NotifyInsightsUpdated,
		Logger:          logger,
	})
	quizUC := ucquiz.NewService(userRepo, assessmentRepo, gemini, logger)

	deps := v1.Deps{
		JWT:       jwtSvc,
		Auth:      handler.NewAuthHandler(authUC),
		User:      handler.NewUserHandler(userUC),
		Insight:   handler.NewInsightHandler(insightUC),
		Quiz:      handler.NewQuizHandler(quizUC),
		WSHandler: ws.NewHandler(hub, logger),
	}

	return &Container{
		Config:     cfg,
		DB:         db,
		Redis:      redis,
		Gemini:     gemini,
		Hub:        hub,
		Pool:       pool,
		Deps:       deps,
		logger:     logger,
		cancelWork: cancelWork,
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}

	if c.Pool != nil {
		c.Pool.Close()
	}
	if c.cancelWork != nil {
		c.cancelWork()
	}
	if c.Gemini != nil {
		_ = c.Gemini.Close()
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}

// drainResults logs background task failures. Refreshes are best-effort, so
// errors stop here and never reach a request.
func drainResults(results <-chan worker.Result, logger *log.Logger) {
	for r := range results {
		if r.Err != nil && logger != nil {
			logger.Printf("[Worker] background task failed | err=%v", r.Err)
		}
	}
}
