package worker

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	domainEvent "github.com/oral0005/backend-posylka/internal/domain/event"
	"github.com/oral0005/backend-posylka/internal/domain/outbox"
	"github.com/oral0005/backend-posylka/internal/infrastructure/kafka"
)

var (
	eventsPublished = promauto.NewCounter(prometheus.CounterOpts{
		Name: "relay_outbox_events_published_total",
		Help: "The total number of outbox events published to Kafka",
	})
	publishErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "relay_outbox_publish_errors_total",
		Help: "The total number of failed publish attempts",
	})
)

// OutboxPoller drains the transactional outbox into Kafka. Failed events
// return to the new state and are retried on the next tick.
type OutboxPoller struct {
	outboxRepo outbox.Repository
	kafkaProd  *kafka.Producer
}

func NewOutboxPoller(outboxRepo outbox.Repository, kafkaProd *kafka.Producer) *OutboxPoller {
	return &OutboxPoller{
		outboxRepo: outboxRepo,
		kafkaProd:  kafkaProd,
	}
}

func (p *OutboxPoller) Run(ctx context.Context) error {
	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	log.Printf("OutboxPoller started (Topic: %s)", p.kafkaProd.Topic())

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := p.processBatch(ctx); err != nil {
				log.Printf("failed to process batch: %v", err)
			}
		}
	}
}

func (p *OutboxPoller) processBatch(ctx context.Context) error {
	events, err := p.outboxRepo.FetchBatch(ctx, 10)
	if err != nil {
		return err
	}

	if len(events) == 0 {
		return nil
	}

	var processedIDs []string
	var failedIDs []string

	for _, e := range events {
		key := []byte(e.CorrelationID)
		if len(key) == 0 {
			key = []byte(e.ID)
		}

		msg := domainEvent.Message{
			ID:            e.ID,
			Type:          e.EventType,
			CorrelationID: e.CorrelationID,
			CausationID:   e.CausationID,
			Producer:      e.Producer,
			OccurredAt:    time.Now().UTC(),
			Payload:       e.Payload,
		}

		value, err := json.Marshal(msg)
		if err != nil {
			log.Printf("failed to marshal event %s: %v", e.ID, err)
			publishErrors.Inc()
			failedIDs = append(failedIDs, e.ID)
			continue
		}

		sendCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err = p.kafkaProd.Publish(sendCtx, key, value)
		cancel()

		if err != nil {
			log.Printf("failed to send event %s to kafka: %v", e.ID, err)
			publishErrors.Inc()
			failedIDs = append(failedIDs, e.ID)
			continue
		}

		eventsPublished.Inc()
		processedIDs = append(processedIDs, e.ID)
	}

	if len(processedIDs) > 0 {
		if err := p.outboxRepo.MarkProcessed(ctx, processedIDs); err != nil {
			return err
		}
		log.Printf("Published %d events", len(processedIDs))
	}

	if len(failedIDs) > 0 {
		if err := p.outboxRepo.MarkFailed(ctx, failedIDs); err != nil {
			log.Printf("failed to mark events as failed: %v", err)
		}
	}

	return nil
}
