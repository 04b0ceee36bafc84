// Package kafka publishes delivery status changes to a Kafka topic so
// downstream consumers (dashboards, analytics) can follow the lifecycle
// without polling the database.
package kafka

import (
	"encoding/json"
	"time"

	"couriertrack/internal/core/domain/model/delivery"

	"github.com/IBM/sarama"
)

// StatusChangedMessage is the wire payload published on every successful
// status change.
type StatusChangedMessage struct {
	DeliveryID string    `json:"deliveryId"`
	BusinessID string    `json:"businessId"`
	Status     string    `json:"status"`
	RiderID    string    `json:"riderId,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// StatusPublisher publishes status change messages through a synchronous
// Kafka producer. Messages are keyed by delivery ID so changes to one
// delivery land on one partition in order.
type StatusPublisher struct {
	producer sarama.SyncProducer
	topic    string
}

// NewStatusPublisher connects a synchronous producer to the given brokers.
func NewStatusPublisher(brokers []string, topic string) (*StatusPublisher, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.Timeout = 5 * time.Second

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, err
	}

	return &StatusPublisher{producer: producer, topic: topic}, nil
}

// PublishStatusChanged publishes one message describing the delivery's new
// status.
func (p *StatusPublisher) PublishStatusChanged(aggregate *delivery.Delivery) error {
	msg := StatusChangedMessage{
		DeliveryID: aggregate.ID().String(),
		BusinessID: aggregate.BusinessID().String(),
		Status:     aggregate.Status().String(),
		OccurredAt: time.Now().UTC(),
	}
	if rider := aggregate.Rider(); rider != nil {
		msg.RiderID = rider.String()
	}

	value, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	_, _, err = p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(msg.DeliveryID),
		Value: sarama.ByteEncoder(value),
	})
	return err
}

// Close shuts the underlying producer down.
func (p *StatusPublisher) Close() error {
	return p.producer.Close()
}
