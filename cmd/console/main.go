package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"admin-datagrid/config"
	"admin-datagrid/internal/cache"
	"admin-datagrid/internal/console"
	"admin-datagrid/internal/model"
	"admin-datagrid/internal/mutation"
	"admin-datagrid/internal/notify"
	"admin-datagrid/internal/remote"
	"admin-datagrid/internal/screen"
	"admin-datagrid/pkg/log"
	"admin-datagrid/pkg/schedule"
)

const usage = "usage: console [assignments|performance-records|audit-logs|products]"

func main() {
	collection := "products"
	if len(os.Args) > 1 {
		collection = os.Args[1]
	}

	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Cache store
	var store cache.Store
	switch cfg.Cache.Backend {
	case "redis":
		client, err := cache.Dial(ctx, cfg.Cache.RedisAddr)
		if err != nil {
			logger.Error(ctx, "Failed to connect to redis: ", err)
			return
		}
		defer client.Close()
		store = cache.NewRedisStore(client, cfg.Cache.RedisPrefix, cfg.Cache.TTL)
		logger.Infof(ctx, "Cache backend: redis at %s", cfg.Cache.RedisAddr)
	default:
		store = cache.NewMemoryStore(cfg.Cache.Size, cfg.Cache.TTL)
		logger.Infof(ctx, "Cache backend: memory (%d entries)", cfg.Cache.Size)
	}
	c := cache.New(store, logger, cache.Config{FetchTimeout: cfg.Cache.FetchTimeout})
	defer c.Close()

	// 4. REST client
	api := remote.New(remote.Config{
		BaseURL:       cfg.API.BaseURL,
		AccessToken:   cfg.API.AccessToken,
		Timeout:       cfg.API.Timeout,
		RatePerSecond: cfg.API.RatePerSecond,
		Burst:         cfg.API.Burst,
	}, logger)

	// 5. Notices
	feed := notify.NewFeed(32)
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case n := <-feed.C():
				fmt.Printf("\n[%s] %s\n", n.Level, n.Message)
			}
		}
	}()

	deps := screen.Deps{
		Cache:       c,
		Coordinator: mutation.New(c, logger),
		API:         api,
		Scheduler:   schedule.Wall(),
		Logger:      logger,
		Notifier:    notify.Multi{feed, notify.NewLogNotifier(logger)},
	}
	scfg := screen.Config{
		ClearDelay:    cfg.Screen.ClearDelay,
		DebounceDelay: cfg.Screen.DebounceDelay,
		DefaultLimit:  cfg.Screen.DefaultLimit,
	}

	// 6. Run
	switch collection {
	case "assignments":
		err = run(ctx, model.Assignments(), deps, scfg)
	case "performance-records":
		err = run(ctx, model.PerformanceRecords(), deps, scfg)
	case "audit-logs":
		err = run(ctx, model.AuditLogs(), deps, scfg)
	case "products":
		err = run(ctx, model.Products(), deps, scfg)
	default:
		fmt.Println(usage)
		return
	}
	if err != nil && ctx.Err() == nil {
		logger.Error(ctx, "Console stopped: ", err)
	}
}

func run[R model.Record](ctx context.Context, res model.Resource[R], deps screen.Deps, cfg screen.Config) error {
	scr, err := screen.New(res, deps, cfg)
	if err != nil {
		return err
	}
	defer scr.Close()

	fmt.Printf("%s (type help for commands)\n", res.Name)
	return console.New(scr, os.Stdout).Run(ctx, os.Stdin)
}
