package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/haylibi/jellio-plus/api"
	"github.com/haylibi/jellio-plus/api/middleware"
	"github.com/haylibi/jellio-plus/internal/config"
	"github.com/haylibi/jellio-plus/internal/jellyfin"
	"github.com/haylibi/jellio-plus/internal/logger"
)

func main() {
	logger.InitLoggers()
	logger.LogInfo.Printf("main: initializing...")

	config.InitConfig()

	jellyfinClient := jellyfin.NewClient(
		config.JellyfinURL,
		config.JellyfinClientRetryAttempts,
		config.JellyfinClientRetryDelay,
	)

	router := api.BuildRouter(api.NewHandlers(jellyfinClient))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go middleware.CleanupLimiters(ctx)

	go func() {
		err := api.Serve(router)
		if err != nil {
			logger.LogFatal.Fatalf("main: fatal error when trying to serve: %s", err)
		}
	}()

	exit := make(chan os.Signal, 1)
	signal.Notify(exit, syscall.SIGTERM, syscall.SIGINT)

	<-exit
	logger.LogInfo.Printf("main: terminating...")
}
