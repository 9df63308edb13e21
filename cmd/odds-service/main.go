package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/saidozsoy1/sports-betting-app/internal/analytics"
	"github.com/saidozsoy1/sports-betting-app/internal/basket"
	"github.com/saidozsoy1/sports-betting-app/internal/httpapi"
	"github.com/saidozsoy1/sports-betting-app/internal/odds"
	ocache "github.com/saidozsoy1/sports-betting-app/internal/odds/cache"
	orepo "github.com/saidozsoy1/sports-betting-app/internal/odds/repo"
	sharedcache "github.com/saidozsoy1/sports-betting-app/internal/shared/cache"
	"github.com/saidozsoy1/sports-betting-app/internal/shared/config"
	"github.com/saidozsoy1/sports-betting-app/internal/shared/db"
	skafka "github.com/saidozsoy1/sports-betting-app/internal/shared/kafka"
	"github.com/saidozsoy1/sports-betting-app/internal/shared/logger"
	"github.com/saidozsoy1/sports-betting-app/internal/shared/metrics"
	"github.com/saidozsoy1/sports-betting-app/internal/ws"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.ServiceName, cfg.Env)
	if err != nil {
		panic(fmt.Errorf("logger init: %w", err))
	}
	defer log.Sync()

	log.Info("starting service")

	// Postgres (snapshot de odds)
	pg, err := db.ConnectPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("postgres connect", zap.Error(err))
	}
	defer pg.Close()

	// Redis (cache do snapshot)
	redisClient, err := sharedcache.ConnectRedis(cfg.RedisAddr)
	if err != nil {
		log.Fatal("redis connect", zap.Error(err))
	}
	defer redisClient.Close()

	// Kafka writer (tópico de analytics)
	writer := skafka.NewWriter(cfg.KafkaBrokers, cfg.TopicAnalytics)
	defer writer.Close()

	// Métricas Prometheus
	regionFetches := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "odds_region_fetches_total", Help: "fetches regionais por resultado",
	}, []string{"region", "result"})
	droppedEvents := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "odds_events_dropped_total", Help: "eventos descartados pelo filtro de odds utilizáveis",
	})
	snapshotSize := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "odds_snapshot_events", Help: "eventos no snapshot corrente",
	})
	basketOps := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "basket_ops_total", Help: "operações do basket",
	}, []string{"op"})
	basketSize := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "basket_items", Help: "seleções no basket",
	})
	prometheus.MustRegister(regionFetches, droppedEvents, snapshotSize, basketOps, basketSize)

	// Hub WebSocket para a camada de apresentação
	hub := ws.NewHub(func(r *http.Request) bool { return true })

	// Sink de analytics (fire-and-forget via Kafka)
	sink := analytics.NewKafkaSink(log, writer)

	// Aggregator: client do provedor + persistência/caching best effort
	agg := &odds.Aggregator{
		Log:   log,
		Fetch: odds.NewClient(cfg.OddsBaseURL, cfg.OddsAPIKey, cfg.RequestTimeout),
		Store: orepo.NewPostgresRepo(pg),
		Cache: ocache.New(redisClient, 10*time.Minute),

		OnRegionOK:    func(region string) { regionFetches.WithLabelValues(region, "ok").Inc() },
		OnRegionError: func(region string) { regionFetches.WithLabelValues(region, "error").Inc() },
		OnDropped:     func(n int) { droppedEvents.Add(float64(n)) },
		OnRefreshed: func(total int) {
			snapshotSize.Set(float64(total))
			hub.Broadcast(ws.Update{Type: "events_refreshed", Count: total})
		},
	}

	// Basket injetável (sem singleton); mutações notificam o hub
	bsk := basket.New(log, sink)
	bsk.OnAdd = func() { basketOps.WithLabelValues("add").Inc() }
	bsk.OnRemove = func() { basketOps.WithLabelValues("remove").Inc() }
	bsk.OnClear = func() { basketOps.WithLabelValues("clear").Inc() }
	bsk.Subscribe(func() {
		basketSize.Set(float64(bsk.Len()))
		hub.Broadcast(ws.Update{
			Type:       "basket_updated",
			Count:      bsk.Len(),
			TotalPrice: bsk.FormattedTotalPrice(),
		})
	})

	// Servidor de métricas e health
	metrics.StartMetricsServer(cfg.MetricsPort, func(ctx context.Context) error {
		if err := pg.PingContext(ctx); err != nil {
			return fmt.Errorf("postgres: %w", err)
		}
		if err := redisClient.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis: %w", err)
		}
		return nil
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Serve o último snapshot conhecido enquanto o primeiro fetch não chega
	if agg.Restore(ctx) {
		snapshotSize.Set(float64(len(agg.Events())))
	}

	// Fetch inicial + refresh periódico em background
	go func() {
		if _, err := agg.FetchAll(ctx); err != nil {
			log.Warn("initial fetch failed", zap.Error(err))
		}
		if cfg.RefreshInterval <= 0 {
			return
		}
		ticker := time.NewTicker(cfg.RefreshInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if _, err := agg.FetchAll(ctx); err != nil {
					log.Warn("background refresh failed", zap.Error(err))
				}
			}
		}
	}()

	// API REST pública
	api := &httpapi.API{Log: log, Agg: agg, Basket: bsk, Sink: sink, WS: hub.HandleWS}
	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: api.Router(),
	}

	go func() {
		log.Info("http listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("http server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Shutdown(shutdownCtx)
}
