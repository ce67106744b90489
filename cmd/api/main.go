package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/carwash-scheduler/internal/audit"
	"github.com/BruksfildServices01/carwash-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/carwash-scheduler/internal/db"
	infraRepo "github.com/BruksfildServices01/carwash-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/carwash-scheduler/internal/payment"
	"github.com/BruksfildServices01/carwash-scheduler/internal/routes"
	"github.com/BruksfildServices01/carwash-scheduler/internal/session"
	"github.com/BruksfildServices01/carwash-scheduler/internal/storage"
	ucPlan "github.com/BruksfildServices01/carwash-scheduler/internal/usecase/plan"
)

func main() {

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db := dbpkg.NewDB(cfg)

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		cancel()
		log.Fatalf("failed to connect to redis: %v", err)
	}
	cancel()

	dispatcher := audit.NewDispatcher(audit.New(db))

	deps := routes.Deps{
		DB:       db,
		Config:   cfg,
		Sessions: session.NewRedisStore(rdb),
		Redis:    rdb,
		Audit:    dispatcher,
	}

	if cfg.StorageEnabled() {
		deps.Files = storage.NewS3Store(cfg)
	} else {
		log.Printf("AWS_S3_BUCKET not set, avatar uploads disabled")
	}

	if cfg.PaymentsEnabled() {
		gw, err := payment.NewMercadoPago(cfg.MercadoPagoToken)
		if err != nil {
			log.Fatalf("failed to configure mercadopago: %v", err)
		}
		deps.Payments = gw
	} else {
		log.Printf("MP_ACCESS_TOKEN not set, online payments disabled")
	}

	seedCtx, cancelSeed := context.WithTimeout(context.Background(), 10*time.Second)
	if err := ucPlan.NewPlans(infraRepo.NewPlanGormRepository(db), nil).Seed(seedCtx); err != nil {
		log.Printf("failed to seed plans: %v", err)
	}
	cancelSeed()

	r := gin.Default()
	routes.RegisterRoutes(r, deps)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{Addr: cfg.Addr(), Handler: r}

	log.Printf("Server running on %s", cfg.Addr())
	err = serve(ctx, srv, func() {
		dispatcher.Close()
		_ = rdb.Close()
	})
	if err != nil {
		log.Fatalf("server error: %v", err)
	}
	log.Printf("Server stopped")
}

const shutdownTimeout = 10 * time.Second

// serve runs srv until ctx is done, then shuts it down gracefully. cleanup
// runs after the server has stopped, also when it failed to start.
func serve(ctx context.Context, srv *http.Server, cleanup func()) error {
	defer cleanup()

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
