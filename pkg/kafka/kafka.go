package kafka

import (
	"time"

	"github.com/IBM/sarama"
)

type Config struct {
	Addrs []string `envconfig:"KAFKA_ADDRS"`
}

const EventsTopic = "bookshelf-events"

const (
	EventBookAdded     = "book.added"
	EventStatusToggled = "status.toggled"
)

// Event is the audit record published on catalog mutations.
type Event struct {
	Type       string    `json:"type"`
	BookID     string    `json:"bookId,omitempty"`
	CustomerID string    `json:"customerId,omitempty"`
	Status     string    `json:"status,omitempty"`
	At         time.Time `json:"at"`
}

func NewProducer(cfg Config) (sarama.SyncProducer, error) {
	defaultCfg := sarama.NewConfig()

	defaultCfg.Producer.RequiredAcks = sarama.WaitForAll
	defaultCfg.Producer.Return.Successes = true

	return sarama.NewSyncProducer(cfg.Addrs, defaultCfg)
}
