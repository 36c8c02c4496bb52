// Package app wires configuration into the storefront's stores, services
// and HTTP handler.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"storefront/internal/config"
	"storefront/internal/metrics"
	"storefront/internal/mongo"
	"storefront/internal/mysql"
	"storefront/internal/routing"
	"storefront/pkg/auth"
	"storefront/pkg/blob"
	"storefront/pkg/cart"
	"storefront/pkg/category"
	"storefront/pkg/handlers"
	"storefront/pkg/middleware"
	"storefront/pkg/product"
	"storefront/pkg/ratelimit"
	"storefront/pkg/sequence"
	"storefront/pkg/session"
	"storefront/pkg/user"
)

const (
	limiterSweepInterval = time.Minute
	sessionSweepInterval = time.Hour
)

type App struct {
	Config  *config.Config
	Logger  *slog.Logger
	Metrics *metrics.Metrics

	DB       *mongodriver.Database
	Counters *sequence.MongoCounters
	Tokens   *auth.TokenManager
	Sessions session.Repository

	Users      *user.Service
	Products   *product.Service
	Categories *category.Service
	Cart       *cart.Service
	Images     *blob.ImageService

	Checks map[string]routing.Check

	redis      *redis.Client
	background []func(ctx context.Context)
	closers    []func(ctx context.Context) error
}

// Catalog connects to MongoDB and builds the services that need nothing
// else. The admin CLI stops here.
func Catalog(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := mongo.LoadDB(ctx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		return nil, err
	}

	a := &App{
		Config:   cfg,
		Logger:   logger,
		DB:       db,
		Counters: sequence.NewMongoCounters(db),
		Checks: map[string]routing.Check{
			"mongo": func(ctx context.Context) error { return db.Client().Ping(ctx, readpref.Primary()) },
		},
	}
	a.closers = append(a.closers, db.Client().Disconnect)

	if err := mongo.EnsureIndexes(ctx, db); err != nil {
		_ = a.Close(ctx)
		return nil, err
	}
	if err := mongo.SyncCounters(ctx, a.Counters, logger); err != nil {
		_ = a.Close(ctx)
		return nil, err
	}

	hasher := auth.NewHasher(cfg.BcryptCost)
	a.Users = user.NewService(user.NewMongoRepo(db), nil, nil, hasher, nil, a.Counters)

	productRepo := product.NewMongoRepo(db)
	a.Categories = category.NewService(category.NewMongoRepo(db), productRepo, a.Counters)
	a.Products = product.NewService(productRepo, a.Counters, nil, logger)

	return a, nil
}

// New builds everything the HTTP server needs.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	a, err := Catalog(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	if err := a.init(ctx); err != nil {
		_ = a.Close(ctx)
		return nil, err
	}
	return a, nil
}

func (a *App) init(ctx context.Context) error {
	cfg := a.Config
	a.Metrics = metrics.New()
	a.Tokens = auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)

	if err := a.initSessions(ctx); err != nil {
		return err
	}

	limiterOpts := ratelimit.Options{MaxAttempts: cfg.LoginMaxAttempts, Window: cfg.LoginWindow}
	var limiter ratelimit.Limiter
	if cfg.RateLimitBackend == config.BackendRedis {
		rdb, err := a.redisClient(ctx)
		if err != nil {
			return err
		}
		limiter = ratelimit.NewRedisLimiter(rdb, limiterOpts)
	} else {
		mem := ratelimit.NewMemoryLimiter(limiterOpts)
		a.background = append(a.background, func(ctx context.Context) { mem.Run(ctx, limiterSweepInterval) })
		limiter = mem
	}

	store, err := a.blobStore(ctx)
	if err != nil {
		return err
	}
	a.Images = blob.NewImageService(store, cfg.MaxUploadBytes)

	a.Users.Sessions = a.Sessions
	a.Users.Tokens = a.Tokens
	a.Users.Limiter = limiter
	a.Products.Images = a.Images
	a.Cart = cart.NewService(cart.NewMongoRepo(a.DB), product.NewMongoRepo(a.DB))
	return nil
}

// AttachSessions opens the session store on a Catalog app so user commands
// can revoke logins. The server gets it from New.
func (a *App) AttachSessions(ctx context.Context) error {
	if err := a.Config.ValidateSessions(); err != nil {
		return err
	}
	if err := a.initSessions(ctx); err != nil {
		return err
	}
	a.Users.Sessions = a.Sessions
	return nil
}

// redisClient connects on first use and is shared by every redis backend.
func (a *App) redisClient(ctx context.Context) (*redis.Client, error) {
	if a.redis != nil {
		return a.redis, nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     a.Config.RedisAddr,
		Password: a.Config.RedisPassword,
		DB:       a.Config.RedisDB,
	})
	a.closers = append(a.closers, func(context.Context) error { return rdb.Close() })
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	a.Checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	a.redis = rdb
	return rdb, nil
}

func (a *App) initSessions(ctx context.Context) error {
	if a.Config.SessionBackend == config.BackendRedis {
		rdb, err := a.redisClient(ctx)
		if err != nil {
			return err
		}
		a.Sessions = session.NewRedisRepo(rdb)
		return nil
	}

	db, err := mysql.LoadDB(ctx, a.Config.MySQLDSN)
	if err != nil {
		return err
	}
	a.closers = append(a.closers, func(context.Context) error { return db.Close() })
	a.Checks["mysql"] = db.PingContext

	repo := session.NewSQLRepo(db)
	a.Sessions = repo
	a.background = append(a.background, func(ctx context.Context) { a.sweepSessions(ctx, repo) })
	return nil
}

func (a *App) sweepSessions(ctx context.Context, repo *session.SQLRepo) {
	ticker := time.NewTicker(sessionSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := repo.DeleteExpired(ctx)
			if err != nil && !errors.Is(err, sql.ErrConnDone) {
				a.Logger.Error("sweep sessions", "error", err)
				continue
			}
			if n > 0 {
				a.Logger.Info("expired sessions removed", "count", n)
			}
		}
	}
}

func (a *App) blobStore(ctx context.Context) (blob.Store, error) {
	if a.Config.BlobBackend == config.BackendMinio {
		store, err := blob.NewMinioStore(ctx, blob.MinioConfig{
			Endpoint:  a.Config.S3Endpoint,
			AccessKey: a.Config.S3AccessKey,
			SecretKey: a.Config.S3SecretKey,
			Bucket:    a.Config.S3Bucket,
		})
		if err != nil {
			return nil, err
		}
		a.Checks["minio"] = store.Ping
		return store, nil
	}
	return blob.NewGridFSStore(a.DB, a.Config.GridFSBucket)
}

// Handler assembles the router: /api behind panic recovery, metrics and
// CheckJWT, then health, metrics, static files and the client fallback.
func (a *App) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.Panic(a.Logger))
	r.Use(middleware.Metrics(middleware.RequestObserver{
		Requests: a.Metrics.Requests,
		Duration: a.Metrics.Duration,
	}))

	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.CheckJWT(a.Tokens, a.Sessions, a.Logger))

	routing.InitRoutes(api, routing.Handlers{
		Auth:       handlers.NewAuthHandler(a.Users, a.Metrics, a.Logger),
		Products:   handlers.NewProductHandler(a.Products, a.Logger),
		Categories: handlers.NewCategoryHandler(a.Categories, a.Logger),
		Cart:       handlers.NewCartHandler(a.Cart, a.Logger),
		Images:     handlers.NewImageHandler(a.Images, a.Config.MaxUploadBytes, a.Metrics, a.Logger),
	}, middleware.RequireAdmin(a.Users, a.Logger))

	routing.ServeHealth(r, a.Checks, a.Logger)
	routing.ServeMetrics(r, a.Metrics.Handler())
	routing.ServeStaticFiles(r, a.Config.StaticDir)
	routing.ServeFallback(r, a.Config.StaticDir)
	return r
}

// RunBackground starts the janitors. They stop with ctx.
func (a *App) RunBackground(ctx context.Context) {
	for _, run := range a.background {
		go run(ctx)
	}
}

func (a *App) Close(ctx context.Context) error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i](ctx))
	}
	return errors.Join(errs...)
}
