package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/quangxuan98765/data-processing-api/internal/application/auth"
	"github.com/quangxuan98765/data-processing-api/internal/application/authz"
	"github.com/quangxuan98765/data-processing-api/internal/application/ports"
	"github.com/quangxuan98765/data-processing-api/internal/application/records"
	"github.com/quangxuan98765/data-processing-api/internal/config"
	infraauth "github.com/quangxuan98765/data-processing-api/internal/infrastructure/auth"
	httprouter "github.com/quangxuan98765/data-processing-api/internal/infrastructure/http"
	"github.com/quangxuan98765/data-processing-api/internal/infrastructure/http/handlers"
	"github.com/quangxuan98765/data-processing-api/internal/infrastructure/http/middleware"
	"github.com/quangxuan98765/data-processing-api/internal/infrastructure/lockout"
	"github.com/quangxuan98765/data-processing-api/internal/infrastructure/persistence/postgres"
	"github.com/quangxuan98765/data-processing-api/internal/infrastructure/queue"
	"github.com/quangxuan98765/data-processing-api/internal/infrastructure/security"
	"github.com/quangxuan98765/data-processing-api/internal/infrastructure/webhook"
)

const apiVersion = "1"

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to database")
	}
	defer pool.Close()

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Msg("redis ping failed; continuing without redis")
			redisClient = nil
		}
	}

	var emitter ports.WebhookEmitter
	if cfg.Webhook.URL != "" {
		opts := []webhook.HTTPEmitterOption{}
		if cfg.Webhook.APIKey != "" {
			opts = append(opts, webhook.WithHeader("X-API-Key", cfg.Webhook.APIKey))
		}
		emitter = webhook.NewHTTPEmitter(cfg.Webhook.URL, opts...)
	} else {
		emitter = webhook.NewNoopEmitter()
	}

	var taskEnqueuer ports.TaskEnqueuer
	var asynqWorker *queue.Worker
	if redisClient != nil {
		asynqOpt := asynq.RedisClientOpt{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB}
		asynqEnq := queue.NewAsynqEnqueuer(asynqOpt, log)
		defer asynqEnq.Close()
		taskEnqueuer = asynqEnq
		asynqWorker = queue.NewWorker(asynqOpt, emitter, log)
		go func() {
			if err := asynqWorker.Run(); err != nil {
				log.Warn().Err(err).Msg("asynq worker stopped")
			}
		}()
	} else {
		taskEnqueuer = queue.NewNoopEnqueuer()
	}

	userRepo := postgres.NewUserRepository(pool)
	tokenStore := postgres.NewTokenStore(pool)
	financialRepo := postgres.NewFinancialRepository(pool)
	speedTestRepo := postgres.NewSpeedTestRepository(pool)

	hasher := security.NewBcryptHasher(cfg.Bcrypt.Cost)
	issuer := infraauth.NewTokenIssuer(
		[]byte(cfg.JWT.Secret),
		cfg.JWT.Issuer,
		cfg.JWT.Audience,
		time.Duration(cfg.JWT.ExpiryMinutes)*time.Minute,
	)

	registerUC := auth.NewRegister(userRepo, hasher)
	loginUC := auth.NewLogin(userRepo, hasher, issuer, tokenStore, log)
	logoutUC := auth.NewLogout(tokenStore)
	changePasswordUC := auth.NewChangePassword(userRepo, hasher, tokenStore)
	validateTokenUC := auth.NewValidateToken(issuer, tokenStore, userRepo)

	gate := authz.NewGate()
	catalog := records.NewSourceCatalog(financialRepo)
	revenueSvc := records.NewRevenueService(financialRepo, catalog, gate)
	expenseSvc := records.NewExpenseService(financialRepo, catalog, gate)
	speedTestSvc := records.NewSpeedTestService(speedTestRepo, gate)

	lockoutStore := lockout.NewMemoryStore(cfg.Lockout.MaxAttempts, cfg.Lockout.CooldownSeconds)

	authHandler := handlers.NewAuthHandler(registerUC, loginUC, logoutUC, changePasswordUC, validateTokenUC, lockoutStore, taskEnqueuer, log)
	usersHandler := handlers.NewUsersHandler(log)
	revenueHandler := handlers.NewRecordsHandler(revenueSvc, taskEnqueuer, log)
	expenseHandler := handlers.NewRecordsHandler(expenseSvc, taskEnqueuer, log)
	speedTestHandler := handlers.NewSpeedTestHandler(speedTestSvc, log)
	healthHandler := handlers.NewHealthHandler(pool, redisClient)

	apiLimit, err := middleware.NewIPRateLimiter(strconv.FormatInt(cfg.RateLimit.APIPerMinute, 10) + "-M")
	if err != nil {
		log.Fatal().Err(err).Msg("create API rate limiter")
	}
	loginLimit, err := middleware.NewIPRateLimiter(strconv.FormatInt(cfg.RateLimit.LoginPerMinute, 10) + "-M")
	if err != nil {
		log.Fatal().Err(err).Msg("create login rate limiter")
	}
	secureMiddleware := middleware.NewSecure(middleware.SecureOptions(false))
	requireJWT := middleware.NewAuthValidator(validateTokenUC).Handler

	router := httprouter.NewRouter(httprouter.RouterConfig{
		AuthHandler:      authHandler,
		HealthHandler:    healthHandler,
		UsersHandler:     usersHandler,
		RevenueHandler:   revenueHandler,
		ExpenseHandler:   expenseHandler,
		SpeedTestHandler: speedTestHandler,
		RequireJWT:       requireJWT,
		Log:              log,
		Secure:           secureMiddleware,
		IPRateLimit:      apiLimit,
		LoginRateLimit:   loginLimit,
		APIVersion:       apiVersion,
		Metrics:          true,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	if asynqWorker != nil {
		asynqWorker.Shutdown()
	}
	log.Info().Msg("server stopped")
}
