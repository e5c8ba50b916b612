package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/oral0005/backend-posylka/internal/application/factories/infrastructure"
	"github.com/oral0005/backend-posylka/internal/config"
	domainEvent "github.com/oral0005/backend-posylka/internal/domain/event"
	"github.com/oral0005/backend-posylka/internal/domain/inbox"
	"github.com/oral0005/backend-posylka/internal/domain/notification"
	"github.com/oral0005/backend-posylka/internal/domain/outbox"
	"github.com/oral0005/backend-posylka/internal/infrastructure/kafka"
	"github.com/oral0005/backend-posylka/internal/infrastructure/postgres"
	"github.com/oral0005/backend-posylka/internal/infrastructure/sms"
)

var (
	notificationsDispatched = promauto.NewCounter(prometheus.CounterOpts{
		Name: "notifier_notifications_dispatched_total",
		Help: "The total number of notifications dispatched out of band",
	})
	dispatchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "notifier_dispatch_duration_seconds",
		Help:    "Time taken to dispatch one notification",
		Buckets: []float64{0.1, 0.5, 1, 2, 5},
	})
)

// The notifier delivers lifecycle notifications out of band: it consumes
// NotificationCreated events, deduplicates them through the inbox table
// and texts the recipient. The in-app feed is written transactionally by
// the API; this path only adds the push channel.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.New()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Metrics server
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		logger.Info("Notifier metrics listening on :9091")
		http.ListenAndServe(":9091", mux)
	}()

	infraFactory := infrastructure.NewFactory(cfg)
	defer infraFactory.Close()

	pgPool, err := infraFactory.Postgres(ctx)
	if err != nil {
		logger.Error("failed to connect to postgres", "error", err)
		os.Exit(1)
	}

	inboxRepo := postgres.NewInboxRepository(pgPool)
	userRepo := postgres.NewUserRepository(pgPool)

	var smsSender sms.Sender = sms.LogSender{}
	if cfg.Verify.Configured() {
		smsSender = sms.NewClient(sms.ClientConfig{
			BaseURL:    cfg.Verify.SMSBaseURL,
			AccountSID: cfg.Verify.SMSAccountSID,
			AuthToken:  cfg.Verify.SMSAuthToken,
			From:       cfg.Verify.SMSFrom,
		})
	}

	groupID := cfg.Kafka.GroupID
	if groupID == "" {
		groupID = "notifier"
	}
	kafkaConsumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.Topic, groupID)
	defer kafkaConsumer.Close()

	consumerName := "notifier"
	logger.Info("Notifier started", "consumer", consumerName, "group_id", groupID)

	for {
		msg, err := kafkaConsumer.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			logger.Error("failed to fetch message", "error", err)
			time.Sleep(1 * time.Second)
			continue
		}

		// Retry loop with backoff; after maxRetries the message is dropped.
		const maxRetries = 5
		for attempt := 0; attempt <= maxRetries; attempt++ {
			if attempt > 0 {
				backoff := time.Duration(1<<attempt) * time.Second
				logger.Info("Retry attempt", "attempt", attempt, "max", maxRetries, "backoff", backoff)
				time.Sleep(backoff)
			}

			processErr := func() error {
				started := time.Now()

				var ev domainEvent.Message
				if err := json.Unmarshal(msg.Value, &ev); err != nil {
					// Not our envelope (or corrupt). Commit and move on.
					logger.Error("failed to unmarshal event envelope", "error", err)
					return nil
				}

				if ev.Type != outbox.EventNotificationCreated {
					return nil
				}

				var n notification.Notification
				if err := json.Unmarshal(ev.Payload, &n); err != nil {
					return fmt.Errorf("unmarshal notification payload: %w", err)
				}

				tx, err := pgPool.Begin(ctx)
				if err != nil {
					return fmt.Errorf("begin tx: %w", err)
				}
				defer tx.Rollback(ctx)

				isNew, err := inboxRepo.SaveIfNotExists(ctx, tx, &inbox.Event{
					Consumer:      consumerName,
					EventID:       ev.ID,
					EventType:     ev.Type,
					CorrelationID: ev.CorrelationID,
				})
				if err != nil {
					return fmt.Errorf("inbox save: %w", err)
				}

				if !isNew {
					if err := tx.Commit(ctx); err != nil {
						return fmt.Errorf("commit noop tx: %w", err)
					}
					return nil
				}

				recipient, err := userRepo.GetByID(postgres.WithTx(ctx, tx), n.RecipientID)
				if err != nil {
					return fmt.Errorf("get recipient: %w", err)
				}

				if err := smsSender.Send(ctx, recipient.PhoneNumber, n.Message); err != nil {
					return fmt.Errorf("send sms: %w", err)
				}

				if err := tx.Commit(ctx); err != nil {
					return fmt.Errorf("commit tx: %w", err)
				}

				notificationsDispatched.Inc()
				dispatchDuration.Observe(time.Since(started).Seconds())
				logger.Info("Notification dispatched", "notification_id", n.ID, "recipient_id", n.RecipientID, "type", n.Type)
				return nil
			}()

			if processErr == nil {
				if err := kafkaConsumer.CommitMessages(ctx, msg); err != nil {
					logger.Error("failed to commit kafka message", "error", err)
				}
				break
			}

			logger.Error("Processing failed", "error", processErr)
			if attempt == maxRetries {
				logger.Error("DLQ: Dropping message after retries", "retries", maxRetries, "error", processErr)
				if err := kafkaConsumer.CommitMessages(ctx, msg); err != nil {
					logger.Error("failed to commit drop to kafka", "error", err)
				}
			}
		}
	}
}
