package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/IBM/sarama"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Astemirdum/library-management/library/internal/model"
	"github.com/Astemirdum/library-management/pkg/circuit_breaker"
	"github.com/Astemirdum/library-management/pkg/kafka"
)

const (
	cbRecordLength     = 10
	cbTimeout          = 10 * time.Second
	cbPercentile       = 0.5
	cbRecoveryRequests = 3
)

// Publisher sends borrowing lifecycle events to kafka. The database is the
// source of truth, so callers publish after commit and only log failures.
type Publisher struct {
	producer sarama.SyncProducer
	topic    string
	cb       circuit_breaker.CircuitBreaker
	log      *zap.Logger
}

func NewPublisher(producer sarama.SyncProducer, topic string, log *zap.Logger) *Publisher {
	if topic == "" {
		topic = kafka.BorrowingsTopic
	}
	return &Publisher{
		producer: producer,
		topic:    topic,
		cb:       circuit_breaker.New(cbRecordLength, cbTimeout, cbPercentile, cbRecoveryRequests),
		log:      log.Named("events"),
	}
}

func NewEvent(typ kafka.EventType, b model.Borrowing, book model.Book, at time.Time) kafka.EventBorrowing {
	return kafka.EventBorrowing{
		Timestamp:       at,
		EventType:       typ,
		BorrowingID:     b.ID.String(),
		UserID:          b.UserID.String(),
		BookID:          b.BookID.String(),
		AvailableCopies: book.AvailableCopies,
		DueDate:         b.DueDate,
	}
}

func (p *Publisher) Publish(ctx context.Context, event kafka.EventBorrowing) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "marshal event")
	}
	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.BookID),
		Value: sarama.ByteEncoder(data),
	}
	return p.cb.Call(func() error {
		partition, offset, err := p.producer.SendMessage(msg)
		if err != nil {
			return errors.Wrap(err, "SendMessage")
		}
		p.log.Debug("event published",
			zap.String("type", string(event.EventType)),
			zap.String("borrowing_id", event.BorrowingID),
			zap.Int32("partition", partition),
			zap.Int64("offset", offset))
		return nil
	})
}

func (p *Publisher) Close() error {
	return p.producer.Close()
}

// Nop drops every event. It is used when no kafka brokers are configured.
type Nop struct{}

func (Nop) Publish(context.Context, kafka.EventBorrowing) error { return nil }
