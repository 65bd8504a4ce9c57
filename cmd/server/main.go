package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/apiscamp/apiscamp/go-services/handlers"
	"github.com/apiscamp/apiscamp/go-services/internal/config"
	"github.com/apiscamp/apiscamp/go-services/internal/database"
	personhandler "github.com/apiscamp/apiscamp/go-services/internal/person/handler"
	"github.com/apiscamp/apiscamp/go-services/internal/person/service"
	"github.com/apiscamp/apiscamp/go-services/internal/router"
	"github.com/apiscamp/apiscamp/go-services/internal/storage"
	"github.com/apiscamp/apiscamp/go-services/pkg/logger"
	"github.com/apiscamp/apiscamp/go-services/pkg/metrics"
	"github.com/apiscamp/apiscamp/go-services/pkg/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

func main() {
	logger.Init(os.Getenv("LOG_LEVEL"))
	logger.Println("Hello World")

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Init(cfg.LogLevel)
	logger.Infof("config loaded: mongo=%v store=%s redis=%v minio=%v message_style=%q", cfg.MongoDB.URI != "", cfg.MongoDB.Store, cfg.Redis.Host != "", cfg.MinIO.Endpoint != "", cfg.Server.MessageStyle)
	if cfg.Server.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps := map[string]func() bool{}

	// Redis is only used by the shared rate limiter
	var rdb *redis.Client
	if cfg.Redis.Host != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.Redis.Host + ":" + cfg.Redis.Port, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
		} else {
			logger.Infof("connected to Redis %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		}
		defer func() { _ = rdb.Close() }()
		deps["redis"] = func() bool {
			pctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			return rdb.Ping(pctx).Err() == nil
		}
	}

	var limiter gin.HandlerFunc
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && rdb != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			limiter = middleware.RedisRateLimitMiddleware(rdb, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win, nil)
			logger.Infof("rate limiter: redis, %.2f rps burst %d", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		} else {
			limiter = middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst, nil)
			logger.Infof("rate limiter: memory, %.2f rps burst %d", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		}
	}

	var assets handlers.AssetSource
	if cfg.MinIO.Endpoint != "" {
		st, err := storage.NewMinIOStorage(ctx, cfg.MinIO)
		if err != nil {
			logger.Warnf("minio unavailable, serving /public from %s: %v", cfg.Static.PublicDir, err)
		} else {
			if cfg.MinIO.SeedPublic {
				n, err := st.SyncDir(ctx, cfg.Static.PublicDir)
				if err != nil {
					logger.Warnf("minio: seeding bucket %s from %s: %v", st.Bucket(), cfg.Static.PublicDir, err)
				} else {
					logger.Infof("minio: uploaded %d assets to bucket %s", n, st.Bucket())
				}
			}
			assets = st
			deps["minio"] = func() bool {
				pctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
				defer cancel()
				return st.Ping(pctx)
			}
		}
	}

	var mounts []func(*gin.Engine)
	var mongoClient *mongo.Client
	switch {
	case cfg.MongoDB.Store == "memory":
		svc := service.NewMemoryService()
		mounts = append(mounts, func(r *gin.Engine) { personhandler.RegisterPeopleRoutes(r, svc) })
		logger.Infof("person API: in-memory store")
	case cfg.MongoDB.URI != "":
		client, err := database.ConnectMongoRetry(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout, 5, time.Second)
		if err != nil {
			logger.Warnf("person API disabled: %v", err)
			deps["mongo"] = func() bool { return false }
			break
		}
		mongoClient = client
		col := client.Database(cfg.MongoDB.Database).Collection(cfg.MongoDB.Collection)
		svc := service.NewMongoService(col)
		mounts = append(mounts, func(r *gin.Engine) { personhandler.RegisterPeopleRoutes(r, svc) })
		deps["mongo"] = func() bool {
			pctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return client.Ping(pctx, nil) == nil
		}
		logger.Infof("person API: mongo %s.%s", cfg.MongoDB.Database, cfg.MongoDB.Collection)
	default:
		logger.Infof("person API not mounted: no Mongo URI")
	}

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)

	r := router.New(router.Options{
		PublicDir:    cfg.Static.PublicDir,
		ViewsDir:     cfg.Static.ViewsDir,
		Assets:       assets,
		MessageStyle: func() string { return os.Getenv("MESSAGE_STYLE") },
		RateLimit:    limiter,
		Readiness: func() map[string]bool {
			out := make(map[string]bool, len(deps))
			for name, check := range deps {
				out[name] = check()
			}
			return out
		},
		Gatherer: prometheus.DefaultGatherer,
		Mount:    mounts,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Infof("shutting down")
	case err := <-errCh:
		logger.Errorf("server failed: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("shutdown: %v", err)
	}
	if mongoClient != nil {
		if err := mongoClient.Disconnect(shutdownCtx); err != nil {
			logger.Warnf("mongo disconnect: %v", err)
		}
	}
}
