package handler

import (
	"encoding/json"
	"time"

	"github.com/IBM/sarama"
	"github.com/bookshelf-app/bookshelf-service/internal/model"
	"github.com/bookshelf-app/bookshelf-service/pkg/kafka"
	"go.uber.org/zap"
)

// Publisher emits audit events for catalog mutations. Failures are logged and
// never fail the request.
type Publisher interface {
	BookAdded(book model.Book)
	StatusToggled(status model.ReadStatus)
}

type kafkaPublisher struct {
	producer sarama.SyncProducer
	topic    string
	log      *zap.Logger
}

func NewPublisher(producer sarama.SyncProducer, topic string, log *zap.Logger) Publisher {
	return &kafkaPublisher{
		producer: producer,
		topic:    topic,
		log:      log.Named("events"),
	}
}

func (p *kafkaPublisher) BookAdded(book model.Book) {
	p.publish(kafka.Event{
		Type:   kafka.EventBookAdded,
		BookID: book.ID.Hex(),
		At:     time.Now().UTC(),
	})
}

func (p *kafkaPublisher) StatusToggled(status model.ReadStatus) {
	p.publish(kafka.Event{
		Type:       kafka.EventStatusToggled,
		BookID:     status.BookID.Hex(),
		CustomerID: status.CustomerID.Hex(),
		Status:     string(status.Status),
		At:         time.Now().UTC(),
	})
}

func (p *kafkaPublisher) publish(ev kafka.Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		p.log.Warn("marshal event", zap.Error(err))
		return
	}
	msg := &sarama.ProducerMessage{Topic: p.topic, Value: sarama.StringEncoder(data)}
	if _, _, err := p.producer.SendMessage(msg); err != nil {
		p.log.Warn("publish event", zap.String("type", ev.Type), zap.Error(err))
	}
}

// NopPublisher is used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) BookAdded(model.Book) {}

func (NopPublisher) StatusToggled(model.ReadStatus) {}
