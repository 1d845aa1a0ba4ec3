package kafka

import (
	"time"

	"github.com/IBM/sarama"
)

const BorrowingsTopic = "library.borrowings"

type Config struct {
	Addrs []string `yaml:"addrs" envconfig:"KAFKA_ADDRS"`
	Topic string   `yaml:"topic" envconfig:"KAFKA_BORROWINGS_TOPIC" default:"library.borrowings"`
}

func (c Config) Enabled() bool {
	return len(c.Addrs) > 0
}

func NewProducer(cfg Config) (sarama.SyncProducer, error) {
	defaultCfg := sarama.NewConfig()

	defaultCfg.Producer.RequiredAcks = sarama.WaitForAll
	defaultCfg.Producer.Return.Successes = true
	defaultCfg.Producer.Retry.Max = 3
	defaultCfg.Producer.Timeout = 5 * time.Second

	return sarama.NewSyncProducer(cfg.Addrs, defaultCfg)
}

type EventType string

const (
	EventBorrowed EventType = "BORROWED"
	EventReturned EventType = "RETURNED"
)

// EventBorrowing is published after a borrow or return transaction commits.
type EventBorrowing struct {
	Timestamp       time.Time `json:"timestamp"`
	EventType       EventType `json:"event_type"`
	BorrowingID     string    `json:"borrowing_id"`
	UserID          string    `json:"user_id"`
	BookID          string    `json:"book_id"`
	AvailableCopies int       `json:"available_copies"`
	DueDate         time.Time `json:"due_date"`
}
