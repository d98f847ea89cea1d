package main

import (
	"flag"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"mensabot-backend/lib/configutil"
	"mensabot-backend/lib/serviceutil"
	"mensabot-backend/lib/sqliteutil"
	"mensabot-backend/lib/telegram"
	"mensabot-backend/lib/timezone"
	"mensabot-backend/services/bot"
	"mensabot-backend/services/mensa"
	"mensabot-backend/services/subscribers"
	"mensabot-backend/services/subscribers/db"
)

type MensaConfig struct {
	Url                  string `json:"url"`
	CacheSize            int    `json:"cache_size"`
	RetryIntervalSeconds int    `json:"retry_interval_seconds"`
	RetryBudgetSeconds   int    `json:"retry_budget_seconds"`
}

type Config struct {
	BotToken     string      `json:"bot_token"`
	Database     string      `json:"database"`
	PushSchedule string      `json:"push_schedule"`
	Mensa        MensaConfig `json:"mensa"`
}

const defaultMenuUrl = "https://www.stwdo.de/mensa-co/tu-dortmund/hauptmensa/"

func main() {
	verbose := flag.Bool("v", false, "Enable verbose logging/instrumentation.")
	initialPush := flag.Bool("push", false, "Send the daily menu immediately on start.")
	flag.Parse()

	ctx := serviceutil.SignalContext()

	InitTelemetry(ctx, *verbose)

	cfg, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil {
		serviceutil.Fatal("read config", err)
	}
	if cfg.BotToken == "" {
		serviceutil.Fatal("read config", fmt.Errorf("bot_token is not set"))
	}
	if cfg.Mensa.Url == "" {
		cfg.Mensa.Url = defaultMenuUrl
	}
	if cfg.Mensa.CacheSize <= 0 {
		cfg.Mensa.CacheSize = 10
	}
	retry := mensa.DefaultRetryPolicy()
	if cfg.Mensa.RetryIntervalSeconds > 0 {
		retry.Interval = time.Duration(cfg.Mensa.RetryIntervalSeconds) * time.Second
	}
	if cfg.Mensa.RetryBudgetSeconds > 0 {
		retry.Budget = time.Duration(cfg.Mensa.RetryBudgetSeconds) * time.Second
	}

	database, err := sqliteutil.OpenDB(db.Schema, cfg.Database)
	if err != nil {
		serviceutil.Fatal("open subscriber db", err)
	}
	store := subscribers.NewStore(database)

	cache, err := mensa.NewMenuCache(
		mensa.NewHTTPFetcher(cfg.Mensa.Url),
		mensa.MealPlanExtractor{},
		cfg.Mensa.CacheSize,
		retry,
	)
	if err != nil {
		serviceutil.Fatal("init menu cache", err)
	}
	menuService := mensa.NewService(cache)

	tg := telegram.NewClient(cfg.BotToken)
	botService := bot.NewService(tg, tg, store, menuService)

	cronner := cron.New(cron.WithLocation(timezone.Location))
	schedule := cfg.PushSchedule
	if schedule == "" {
		schedule = "0 11 * * 1-5"
	}
	_, err = cronner.AddFunc(schedule, func() {
		botService.PushDaily(ctx)
	})
	if err != nil {
		serviceutil.Fatal("schedule daily push", err)
	}
	cronner.Start()

	if *initialPush {
		go botService.PushDaily(ctx)
	}

	slog.Info("bot running", "push_schedule", schedule)
	go botService.Run(ctx)
	<-ctx.Done()
}
