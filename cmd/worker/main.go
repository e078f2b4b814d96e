package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/skyjourney/config"
	"github.com/Domenick1991/skyjourney/internal/email"
	"github.com/Domenick1991/skyjourney/internal/kafka"
	"github.com/spf13/pflag"
)

func main() {
	cfgFlag := pflag.String("config", "", "path to the YAML config (default $CONFIG_PATH or config.yaml)")
	pflag.Parse()

	bootLog := config.LogConfig{}.NewLogger(os.Stderr)
	cfg, err := config.LoadConfig(config.ResolvePath(*cfgFlag))
	if err != nil {
		bootLog.Error("load config", "error", err)
		os.Exit(1)
	}
	log := cfg.Log.NewLogger(os.Stderr)

	if len(cfg.Kafka.Brokers) == 0 {
		log.Error("kafka.brokers is empty; nothing to consume")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.BookingTopic, log)
	defer consumer.Close()

	sender := email.NewSender(cfg.Worker.EmailFrom, cfg.Site.CurrencySymbol, log)

	log.Info("worker started", "topic", cfg.Kafka.BookingTopic, "group", cfg.Kafka.GroupID)
	err = consumer.Consume(ctx, consumer.BookingEvents(func(ctx context.Context, event kafka.BookingEvent) error {
		if event.Type != kafka.EventBookingSubmitted {
			return nil
		}
		if err := sender.Send(ctx, event); err != nil {
			log.WarnContext(ctx, "send confirmation failed", "reference", event.Reference, "error", err)
		}
		return nil
	}))
	if err != nil {
		log.Error("consumer stopped", "error", err)
		os.Exit(1)
	}
	log.Info("worker stopped")
}
