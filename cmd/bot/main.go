package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"itisinvest/internal/collector"
	"itisinvest/internal/config"
	"itisinvest/internal/history"
	"itisinvest/internal/narrative"
	"itisinvest/internal/notifier"
	"itisinvest/internal/runner"
	"itisinvest/internal/scheduler"
	"itisinvest/internal/screener"

	"golang.org/x/time/rate"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] itisinvest starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init fetcher
	fetcher := collector.NewYahooFetcher(cfg.Proxy)
	log.Printf("[INFO] data source: %s", fetcher.Name())

	// Init narrative engine. A missing API key degrades every narrative to
	// the fallback text instead of failing the process.
	var backend narrative.Backend
	if cfg.Gemini.APIKey != "" {
		gb, err := narrative.NewGeminiBackend(ctx, cfg.Gemini.APIKey)
		if err != nil {
			log.Printf("[WARN] init gemini backend: %v, narratives will use fallback", err)
		} else {
			backend = gb
		}
	} else {
		log.Println("[WARN] GEMINI_API_KEY not set, narratives will use fallback")
	}
	interval := time.Duration(cfg.Gemini.MinIntervalSeconds * float64(time.Second))
	limiter := rate.NewLimiter(rate.Every(interval), 1)
	engine := narrative.NewEngine(backend, cfg.Gemini.Models, limiter)

	// Init Telegram notifier
	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)

	// Init runner
	r := &runner.Runner{
		Fetcher: fetcher,
		Screener: &screener.Screener{
			Fetcher:         fetcher,
			Sessions:        cfg.Screener.Sessions,
			MinVariationPct: cfg.Screener.MinVariationPct,
			MinVolume:       cfg.Screener.MinVolume,
			TopN:            cfg.Screener.TopN,
			MASessions:      cfg.Screener.MAFilterSessions,
		},
		Narrative:     engine,
		Notifier:      tn,
		History:       history.NewStore(cfg.History.File),
		LedgerFile:    cfg.Ledger.File,
		Universe:      cfg.Screener.Universe,
		HeadlineCount: 3,
	}

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, r)
	if err := sched.Register(cfg.Schedule.DailyCron); err != nil {
		log.Fatalf("[FATAL] register cron task: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing evaluation now")
		go sched.RunNow()
	}

	log.Println("[INFO] itisinvest is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] itisinvest stopped")
}
