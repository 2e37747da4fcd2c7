package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/roboricindustries/raycon-assign/pkg/assign"
	"github.com/roboricindustries/raycon-assign/pkg/metrics"
	"github.com/roboricindustries/raycon-assign/pkg/monitor"
	"github.com/roboricindustries/raycon-assign/pkg/pubsub"
	"github.com/roboricindustries/raycon-assign/pkg/shift"
	"github.com/roboricindustries/raycon-assign/pkg/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the assignment consumer and the liveness monitor",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serveRun()
	},
}

func serveRun() error {
	logger := newLogger(viper.GetString("log.level"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	clock := shift.NewClock(viper.GetString("timezone"), logger)
	st := store.NewClient(
		viper.GetString("store.base_url"),
		viper.GetDuration("store.timeout"),
		logger,
	)

	conn, err := pubsub.DialWithRetry(ctx, pubsub.ConnectionOptions{
		URL:           viper.GetString("rabbit.url"),
		RetryAttempts: viper.GetInt("rabbit.dial_attempts"),
		Delay:         viper.GetDuration("rabbit.dial_delay"),
		Logger:        logger,
	})
	if err != nil {
		return err
	}
	defer conn.Close()

	notifier, err := pubsub.NewPublisher(conn, logger)
	if err != nil {
		logger.Error("publisher setup failed, notices will be skipped", slog.Any("error", err))
		notifier = pubsub.NewFallback(logger)
	}

	handler := assign.NewHandler(st, notifier, clock, logger)
	consumer := pubsub.NewConsumer(
		conn,
		viper.GetString("rabbit.queue"),
		viper.GetInt("rabbit.prefetch"),
		handler.Handle,
		logger,
	)
	mon := monitor.New(
		st,
		viper.GetDuration("monitor.interval"),
		viper.GetDuration("monitor.threshold"),
		logger,
	)

	if addr := viper.GetString("metrics.addr"); addr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))
			logger.Info("metrics server listening", slog.String("addr", addr))
			if err := http.ListenAndServe(addr, mux); err != nil {
				logger.Error("metrics server error", slog.Any("error", err))
			}
		}()
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	errc := make(chan error, 2)
	go func() { errc <- consumer.Run(runCtx) }()
	go func() { errc <- mon.Run(runCtx) }()

	err = <-errc
	cancel()
	<-errc

	if errors.Is(err, context.Canceled) {
		logger.Info("shutdown complete")
		return nil
	}
	return err
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
