package apiapp

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/David-1512/LearnHub/internal/config"
	pgrepo "github.com/David-1512/LearnHub/internal/repo/postgres"
	redrepo "github.com/David-1512/LearnHub/internal/repo/redis"
	authsvc "github.com/David-1512/LearnHub/internal/services/auth"
	feedsvc "github.com/David-1512/LearnHub/internal/services/feed"
	likessvc "github.com/David-1512/LearnHub/internal/services/likes"
	matchessvc "github.com/David-1512/LearnHub/internal/services/matches"
	mediasvc "github.com/David-1512/LearnHub/internal/services/media"
	passessvc "github.com/David-1512/LearnHub/internal/services/passes"
	profilessvc "github.com/David-1512/LearnHub/internal/services/profiles"
	ratesvc "github.com/David-1512/LearnHub/internal/services/rate"
	swipessvc "github.com/David-1512/LearnHub/internal/services/swipes"
	userssvc "github.com/David-1512/LearnHub/internal/services/users"
)

type App struct {
	cfg        config.Config
	logger     *zap.Logger
	server     *http.Server
	postgres   *pgxpool.Pool
	redis      *goredis.Client
	httpRouter http.Handler
}

func New(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		return nil, fmt.Errorf("logger is nil")
	}

	r := chi.NewRouter()
	ApplyMiddlewares(r, log)

	var pool *pgxpool.Pool
	if p, err := pgrepo.NewPool(ctx, cfg.Postgres.DSN); err != nil {
		log.Warn("postgres init failed, continuing in degraded mode", zap.Error(err))
	} else {
		pool = p
	}

	redisClient := redrepo.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	sessionRepo := redrepo.NewSessionRepo(redisClient)
	broadcastRepo := redrepo.NewBroadcastRepo(redisClient)
	deckRepo := redrepo.NewDeckRepo(redisClient)
	collectionCache := redrepo.NewCollectionCache(redisClient, 0)
	rateRepo := redrepo.NewRateRepo(redisClient)

	userRepo := pgrepo.NewUserRepo(pool)
	tutorRepo := pgrepo.NewTutorRepo(pool)
	studentRepo := pgrepo.NewStudentRepo(pool)
	likeRepo := pgrepo.NewLikeRepo(pool)
	passRepo := pgrepo.NewPassRepo(pool)
	avatarRepo := pgrepo.NewAvatarRepo(pool)

	jwtManager := authsvc.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTAccessTTL)
	authService := authsvc.NewService(jwtManager, userRepo, sessionRepo, broadcastRepo, cfg.Auth.IdleTTL)
	userService := userssvc.NewService(pool, userRepo, tutorRepo, studentRepo)
	profileService := profilessvc.NewService(tutorRepo, studentRepo)
	likeService := likessvc.NewService(likeRepo, collectionCache)
	passService := passessvc.NewService(passRepo)
	matchService := matchessvc.NewService(likeService)
	feedService := feedsvc.NewService(tutorRepo, deckRepo, cfg.Feed.PageLimit)
	swipeService := swipessvc.NewService(likeService, passService, deckRepo, cfg.Feed.SwipeThreshold)
	loginLimiter := ratesvc.NewLoginLimiter(rateRepo, cfg.Auth.LoginPerMinute, cfg.Auth.LoginPerQuarter)

	mediaStorage, err := mediasvc.NewS3Storage(mediasvc.S3Config{
		Endpoint:  cfg.S3.Endpoint,
		AccessKey: cfg.S3.AccessKey,
		SecretKey: cfg.S3.SecretKey,
		Bucket:    cfg.S3.Bucket,
		UseSSL:    cfg.S3.UseSSL,
	})
	if err != nil {
		log.Warn("s3 init failed, continuing in degraded mode", zap.Error(err))
	}
	mediaService := mediasvc.NewService(avatarRepo, mediaStorage)

	RegisterRoutes(r, Dependencies{
		AuthService:    authService,
		UserService:    userService,
		ProfileService: profileService,
		LikeService:    likeService,
		PassService:    passService,
		MatchService:   matchService,
		FeedService:    feedService,
		SwipeService:   swipeService,
		MediaService:   mediaService,
		LoginLimiter:   loginLimiter,
		Logger:         log,
		Config:         cfg,
	})

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      r,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	return &App{
		cfg:        cfg,
		logger:     log,
		server:     server,
		postgres:   pool,
		redis:      redisClient,
		httpRouter: r,
	}, nil
}

func (a *App) Run() error {
	a.logger.Info("api server started", zap.String("addr", a.cfg.HTTP.Addr))
	err := a.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (a *App) Shutdown(ctx context.Context) error {
	var shutdownErr error

	if err := a.server.Shutdown(ctx); err != nil {
		shutdownErr = err
	}
	if a.postgres != nil {
		a.postgres.Close()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil && shutdownErr == nil {
			shutdownErr = err
		}
	}

	return shutdownErr
}

func (a *App) Handler() http.Handler {
	return a.httpRouter
}
