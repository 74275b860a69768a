package main

import (
	"context"
	"log/slog"
	"os"

	"table_spider/internal/app"
	"table_spider/internal/config"
	"table_spider/internal/render"
)

func main() {
	log := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(log)

	cfg, err := config.LoadConfigOrDefault("config.yaml")
	if err != nil {
		log.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	spider, err := app.NewTableSpider(cfg)
	if err != nil {
		log.Error("failed to create spider", "err", err)
		os.Exit(1)
	}

	result, err := spider.Run(context.Background())
	if err != nil {
		log.Error("spider run failed", "err", err)
		os.Exit(1)
	}

	if err := render.Render(os.Stdout, result, cfg.Output.Format); err != nil {
		log.Error("failed to render table", "err", err)
		os.Exit(1)
	}
}
