// cmd/livesim runs the trend engine against a live candle feed: a
// Binance-style kline WebSocket stream or a simulated random walk.
//
// Incoming candles are persisted to SQLite, mirrored into a Redis tail cache
// for warm restarts, and fed through the trader loop one bar at a time —
// the incremental call convention of the strategies.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ranjananubhav7/algobot/config"
	"github.com/ranjananubhav7/algobot/internal/indicator"
	"github.com/ranjananubhav7/algobot/internal/logger"
	"github.com/ranjananubhav7/algobot/internal/marketdata/sim"
	"github.com/ranjananubhav7/algobot/internal/marketdata/ws"
	"github.com/ranjananubhav7/algobot/internal/metrics"
	"github.com/ranjananubhav7/algobot/internal/model"
	"github.com/ranjananubhav7/algobot/internal/notification"
	redisstore "github.com/ranjananubhav7/algobot/internal/store/redis"
	sqlitestore "github.com/ranjananubhav7/algobot/internal/store/sqlite"
	"github.com/ranjananubhav7/algobot/internal/trader"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[livesim] config: %v", err)
	}
	logger.Init("livesim", logger.ParseLevel(cfg.LogLevel))

	m := metrics.NewMetrics()
	health := metrics.NewHealthStatus()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		slog.Info("shutdown signal received")
		cancel()
	}()

	// Stores
	writer, err := sqlitestore.New(sqlitestore.WriterConfig{DBPath: cfg.SQLitePath})
	if err != nil {
		log.Fatalf("[livesim] sqlite: %v", err)
	}
	defer writer.Close()
	writer.OnCommit = func(n int, dur time.Duration) {
		m.SQLiteCommitDur.Observe(dur.Seconds())
	}

	var cache *redisstore.Cache
	if cfg.RedisAddr != "" {
		cache, err = redisstore.New(redisstore.CacheConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPass,
			DB:       cfg.RedisDB,
			TailLen:  cfg.MaxHistory,
		})
		if err != nil {
			log.Fatalf("[livesim] redis: %v", err)
		}
		defer cache.Close()
		cache.OnWrite = func(dur time.Duration) {
			m.RedisWriteDur.Observe(dur.Seconds())
		}
	}

	// Strategies and trader
	strategies, err := cfg.BuildStrategies(indicator.Calculator{})
	if err != nil {
		log.Fatalf("[livesim] strategies: %v", err)
	}
	td := trader.New(cfg.MaxHistory)
	for _, s := range strategies {
		td.Register(s)
	}
	td.OnEvaluate = func(name string, trend model.Trend, dur time.Duration, err error) {
		m.EvaluationsTotal.Inc()
		m.EvaluationDur.Observe(dur.Seconds())
		if err != nil {
			m.EvaluationErrors.Inc()
			return
		}
		m.SignalsTotal.WithLabelValues(name, trend.String()).Inc()
	}

	// Warm start: replay the cached tail through the trader so the rolling
	// state is primed before the first live bar.
	if cache != nil {
		tail, err := cache.Tail(ctx, cfg.Symbol, cfg.MaxHistory)
		if err != nil {
			slog.Warn("redis warm start failed", "err", err)
		} else if len(tail) > 0 {
			for _, c := range tail {
				if _, err := td.Step(c); err != nil {
					slog.Warn("warm start evaluation error", "err", err)
				}
			}
			slog.Info("warm started from redis tail", "candles", len(tail))
		}
	}

	// Notifications
	notifiers := []notification.Notifier{notification.NewLogNotifier()}
	if cfg.TelegramBotToken != "" && cfg.TelegramChatID != "" {
		notifiers = append(notifiers, notification.NewTelegramNotifier(cfg.TelegramBotToken, cfg.TelegramChatID))
	}
	if cfg.WebhookURL != "" {
		notifiers = append(notifiers, notification.NewWebhookNotifier(cfg.WebhookURL))
	}
	notifier := notification.NewMulti(notifiers...)

	// Metrics + health server
	srv := metrics.NewServer(cfg.MetricsAddr, health)
	srv.Start()
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 3*time.Second)
		srv.Stop(shutdownCtx)
		shutdownCancel()
	}()
	if cache != nil {
		health.StartLivenessChecker(ctx, cache.Client(), writer.DB(), 15*time.Second)
	} else {
		health.StartLivenessChecker(ctx, nil, writer.DB(), 15*time.Second)
	}

	// Pipeline: feed -> fanout (trader, sqlite, redis)
	feedCh := make(chan model.Candle, 1024)
	traderCh := make(chan model.Candle, 1024)
	sqliteCh := make(chan model.Candle, 1024)
	redisCh := make(chan model.Candle, 1024)
	changeCh := make(chan trader.TrendChange, 64)

	g, gctx := errgroup.WithContext(ctx)

	// Feed
	g.Go(func() error {
		defer close(feedCh)
		switch cfg.Feed {
		case "sim":
			feed := sim.New(sim.Config{Symbol: cfg.Symbol})
			health.SetFeedConnected(true)
			return feed.Start(gctx, feedCh)
		default:
			ing, err := ws.New(ws.Config{
				BaseURL:  cfg.WSBaseURL,
				Symbol:   cfg.Symbol,
				Interval: cfg.Interval,
			})
			if err != nil {
				return err
			}
			ing.OnReconnect = m.FeedReconnects.Inc
			ing.OnDrop = m.FeedDrops.Inc
			ing.OnConnected = health.SetFeedConnected
			return ing.Start(gctx, feedCh)
		}
	})

	// Fanout
	g.Go(func() error {
		defer close(traderCh)
		defer close(sqliteCh)
		defer close(redisCh)
		for {
			select {
			case <-gctx.Done():
				return nil
			case c, ok := <-feedCh:
				if !ok {
					return nil
				}
				m.CandlesTotal.Inc()
				health.SetLastCandleTime(c.TS)
				select {
				case traderCh <- c:
				case <-gctx.Done():
					return nil
				}
				select {
				case sqliteCh <- c:
				default:
				}
				if cache != nil {
					select {
					case redisCh <- c:
					default:
					}
				}
			}
		}
	})

	// Trader loop
	g.Go(func() error {
		defer close(changeCh)
		td.Run(gctx, traderCh, changeCh)
		return nil
	})

	// Trend-change notifications
	g.Go(func() error {
		for ch := range changeCh {
			slog.Info("trend change",
				"strategy", ch.Strategy, "symbol", ch.Symbol,
				"from", ch.From.String(), "to", ch.To.String())
			alert := notification.TrendAlert(ch.Strategy, ch.Symbol, ch.From, ch.To, ch.TS)
			sendCtx, sendCancel := context.WithTimeout(context.Background(), 10*time.Second)
			notifier.Send(sendCtx, alert)
			sendCancel()
		}
		return nil
	})

	// Persistence sinks
	g.Go(func() error {
		writer.Run(gctx, sqliteCh)
		return nil
	})
	if cache != nil {
		g.Go(func() error {
			cache.Run(gctx, redisCh)
			return nil
		})
	}

	if err := g.Wait(); err != nil && err != context.Canceled {
		log.Fatalf("[livesim] pipeline error: %v", err)
	}
	slog.Info("livesim stopped")
}
