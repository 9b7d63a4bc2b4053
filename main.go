package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "papertrack/app/configs"
	"papertrack/app/core/assistant"
	"papertrack/app/core/interaction/cli"
	httpchannel "papertrack/app/core/interaction/http"
	"papertrack/app/core/llm"
	"papertrack/app/core/project"
	"papertrack/app/pkg/logger"
)

func main() {
	if err := logger.Init("output/logs"); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	logger.Info("papertrack starting...")

	cfgManager, err := config.NewManager(config.DefaultPath())
	if err != nil {
		logger.Error("Failed to load config: %v", err)
		os.Exit(1)
	}
	cfg := cfgManager.Get()

	store := project.NewStore(cfg.Project.DataFile)
	if err := store.Ensure(); err != nil {
		logger.Error("Failed to initialize project data: %v", err)
		os.Exit(1)
	}
	logger.Info("Project data at %s", store.Path())

	completerFactory := func() (llm.Completer, error) {
		key, err := llm.ResolveAPIKey(cfg.Model.APIKeyEnv, cfg.Model.DotfileName)
		if err != nil {
			return nil, err
		}
		return llm.NewClient(key, cfg.Model.BaseURL, cfg.Model.Name, cfg.Model.MaxTokens), nil
	}

	asst := assistant.New(
		completerFactory,
		cfg.Project.TotalWeeks,
		cfg.Project.HistoryWindow,
		time.Duration(cfg.Model.RequestTimeoutSec)*time.Second,
	)

	server := httpchannel.NewServer(cfg.Server.Port, cfg.Server.StaticDir, store, asst)
	server.SetShutdownTimeout(time.Duration(cfg.Server.ShutdownTimeoutSec) * time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := server.Start(ctx); err != nil {
			logger.Error("HTTP server crashed: %v", err)
			os.Exit(1)
		}
	}()

	if cfg.Project.InteractiveCLI {
		go func() {
			if err := cli.NewChannel(store, asst).Start(ctx); err != nil {
				logger.Error("CLI channel stopped: %v", err)
			}
		}()
	}

	logger.Info("papertrack is ready.")
	fmt.Printf("Open in browser: http://localhost:%d\n", cfg.Server.Port)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	logger.Info("Received signal: %v. papertrack shutting down...", sig)
	cancel()
}
