package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/joho/godotenv"

	"DivSentinel/internal/collector"
	"DivSentinel/internal/config"
	"DivSentinel/internal/notifier"
	"DivSentinel/internal/pipeline"
	"DivSentinel/internal/queue"
	"DivSentinel/internal/scheduler"
	"DivSentinel/internal/secrets"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] DivSentinel starting...")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil {
		log.Printf("[INFO] .env not loaded: %v", err)
	}

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

	// AWS clients
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWS.Region))
	if err != nil {
		log.Fatalf("[FATAL] load AWS config: %v", err)
	}

	// Upstream API credentials, loaded once for the whole process
	creds, err := secrets.Load(ctx, secretsmanager.NewFromConfig(awsCfg), cfg.AWS.SecretID)
	if err != nil {
		log.Fatalf("[FATAL] load credentials: %v", err)
	}

	loc, err := time.LoadLocation(cfg.Alpaca.MarketTimezone)
	if err != nil {
		log.Fatalf("[FATAL] load market timezone: %v", err)
	}

	// Init fetchers
	events := collector.NewPolygonFetcher(creds.PolygonKey, cfg.Proxy, cfg.PageDelay())
	events.BaseURL = cfg.Polygon.BaseURL
	bars := collector.NewAlpacaFetcher(creds.AlpacaKey, creds.AlpacaSecret, cfg.Proxy, loc)
	bars.BaseURL = cfg.Alpaca.BaseURL
	log.Printf("[INFO] data sources: %s, %s", events.Name(), bars.Name())

	loader := collector.NewLoader(bars, cfg.Alpaca.Timeframe, cfg.Alpaca.WindowBusinessDays)

	// Init queue consumer and notifier
	consumer := queue.NewConsumer(sqs.NewFromConfig(awsCfg), cfg.AWS.QueueURL)
	alerts := notifier.NewSNSNotifier(sns.NewFromConfig(awsCfg), cfg.AWS.TopicARN)

	// Init pipeline and scheduler
	p := pipeline.New(events, loader, alerts, loc)
	sched := scheduler.NewScheduler(consumer, p, cfg.CooldownDuration(), cfg.Run.Cron)

	log.Printf("[INFO] DivSentinel running in %q mode", cfg.Run.Mode)
	if err := sched.Run(ctx, cfg.Run.Mode); err != nil && ctx.Err() == nil {
		log.Fatalf("[FATAL] scheduler: %v", err)
	}
	log.Println("[INFO] DivSentinel stopped")
}
