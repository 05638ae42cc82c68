package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/Tajmaha8849/VideoCall/backend/config"
	"github.com/Tajmaha8849/VideoCall/backend/registry"
	httpServer "github.com/Tajmaha8849/VideoCall/backend/server/http"
	websocketServer "github.com/Tajmaha8849/VideoCall/backend/server/websocket"
	"github.com/Tajmaha8849/VideoCall/backend/service"
	store "github.com/Tajmaha8849/VideoCall/backend/storage/memory"
	sw "github.com/Tajmaha8849/VideoCall/backend/switch"
	"github.com/rs/zerolog"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to parse configuration")
	}

	lvl, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to parse loglevel")
	}
	logger = logger.Level(lvl)

	memStore := store.NewMemStore()
	svc := service.NewService(service.Config{
		RoomStore: memStore,
		Registry:  registry.New(),
		Switch:    sw.NewSwitch(&logger),
		Logger:    &logger,
	})
	httpSrv := httpServer.NewServer(httpServer.Config{
		Logger:     &logger,
		RoomStats:  memStore,
		ListenAddr: cfg.APIListenAddr,
	})
	wsSrv := websocketServer.NewServer(websocketServer.Config{
		Logger:      &logger,
		Coordinator: svc,
		ListenAddr:  cfg.WSListenAddr,
	})

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var (
		wg   = &sync.WaitGroup{}
		errc = make(chan error, 2)
	)
	wg.Add(2)
	go httpSrv.Run(ctx, wg, errc)
	go wsSrv.Run(ctx, wg, errc)

	select {
	case err = <-errc:
		logger.Error().Err(err).Msg("unexpected server error, shutting down")
	case <-ctx.Done():
		logger.Warn().Msg("interrupted")
	}
	cancel()
	wg.Wait()
}
