package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-ess/internal/document"
	"go-ess/internal/messaging/kafka/consumer"
	"go-ess/internal/notification"
	"go-ess/internal/shared/config"
	"go-ess/internal/shared/connection"
	"go-ess/internal/shared/money"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer turns submission events into notifications until interrupted.
func RunConsumer(cfg config.Config) error {
	logger := zap.L().Named("app.consumer")

	gormDB, err := connection.ConnectGORMWithRetry(cfg.DB, cfg.MaxRetries)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if cfg.KafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		return err
	}

	notificationService := notification.NewService(document.NewStore(gormDB), loc, logger)

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{cfg.KafkaBroker},
		GroupID:        cfg.KafkaGroupID,
		GroupTopics:    consumer.SubmissionTopics,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumeSubmissionEvents(
		ctx,
		reader,
		notificationService,
		money.NewFormatter(cfg.Locale, cfg.Currency),
		logger,
	)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
