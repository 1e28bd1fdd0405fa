package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
)

func main() {
	envFile := flag.String("env", ".env", "dotenv file to load before reading GOMOKU_* variables")
	flag.Parse()

	config, err := LoadConfig(*envFile)
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}
	setupLogging(config.LogLevel)
	configStore.Update(config)

	controller := NewGameController(config.DriverSettings())
	hub := NewHub()
	ghostHub := NewGhostHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	controller.SetGhostPublisher(
		func() bool { return GetConfig().GhostMode },
		func(payload ghostPayload) {
			ghostHub.Publish(payload)
		},
	)

	go hub.Run(ctx.Done())
	go ghostHub.Run(ctx.Done())
	go runTicker(ctx, controller, hub)

	server := &http.Server{
		Addr:              config.Addr,
		Handler:           newRouter(controller, hub, ghostHub),
		ReadHeaderTimeout: 5 * time.Second,
	}
	serverErrCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrCh <- err
		}
		close(serverErrCh)
	}()

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	logrus.WithField("addr", config.Addr).Info("backend listening")
	var runErr error
	select {
	case <-sigCtx.Done():
		logrus.WithError(sigCtx.Err()).Info("shutdown signal received")
	case err, ok := <-serverErrCh:
		if ok {
			runErr = err
			logrus.WithError(err).Error("server error")
		}
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logrus.WithError(err).Warn("graceful shutdown failed")
		if closeErr := server.Close(); closeErr != nil && !errors.Is(closeErr, http.ErrServerClosed) {
			logrus.WithError(closeErr).Error("forced close failed")
		}
	}

	cancel()
	if runErr != nil {
		logrus.WithError(runErr).Error("exiting after server error")
		os.Exit(1)
	}
}

// runTicker drives computer moves and pushes each one to websocket clients.
// The period follows tick_ms in the live config.
func runTicker(ctx context.Context, controller *GameController, hub *Hub) {
	period := tickPeriod()
	ticker := time.NewTicker(period)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if next := tickPeriod(); next != period {
				period = next
				ticker.Reset(period)
				logrus.WithField("period", period).Debug("tick period changed")
			}
			if !controller.Tick() {
				continue
			}
			publishMove(hub, controller.Status())
		}
	}
}

func tickPeriod() time.Duration {
	return time.Duration(GetConfig().TickMs) * time.Millisecond
}
