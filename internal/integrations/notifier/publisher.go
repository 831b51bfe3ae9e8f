package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/m04kA/SMC-SpaBookingService/pkg/metrics"
)

// Logger printf-style logger
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher publishes booking events to a Kafka topic keyed by booking id,
// so all events of one booking land in the same partition in order.
type KafkaPublisher struct {
	writer  messageWriter
	topic   string
	metrics *metrics.Metrics
	log     Logger
}

// NewKafkaPublisher creates a publisher writing to topic on brokers.
func NewKafkaPublisher(brokers []string, topic string, timeout time.Duration, m *metrics.Metrics, log Logger) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		BatchTimeout:           10 * time.Millisecond,
		WriteTimeout:           timeout,
	}
	return newKafkaPublisher(writer, topic, m, log)
}

func newKafkaPublisher(writer messageWriter, topic string, m *metrics.Metrics, log Logger) *KafkaPublisher {
	return &KafkaPublisher{writer: writer, topic: topic, metrics: m, log: log}
}

// Publish sends the event synchronously.
func (p *KafkaPublisher) Publish(ctx context.Context, event Event) error {
	value, err := json.Marshal(event)
	if err != nil {
		p.metrics.ObserveNotification(string(event.Type), false)
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(event.BookingID, 10)),
		Value: value,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(event.Type)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.metrics.ObserveNotification(string(event.Type), false)
		return fmt.Errorf("%w: topic=%s booking=%d: %v", ErrPublish, p.topic, event.BookingID, err)
	}

	p.metrics.ObserveNotification(string(event.Type), true)
	p.log.Info("Notifier: published %s for booking id=%d", event.Type, event.BookingID)
	return nil
}

// Close flushes pending messages and closes the writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// Noop notifier used when Kafka is disabled
type Noop struct {
	log Logger
}

func NewNoop(log Logger) *Noop {
	return &Noop{log: log}
}

func (n *Noop) Publish(_ context.Context, event Event) error {
	n.log.Info("Notifier: disabled, skipping %s for booking id=%d", event.Type, event.BookingID)
	return nil
}

func (n *Noop) Close() error {
	return nil
}
