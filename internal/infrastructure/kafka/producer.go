package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/IBM/sarama"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Ordenes-api/internal/application/orders"
)

// TopicOrderEvents tópico de eventos de ciclo de vida de órdenes.
const TopicOrderEvents = "ordenes.order.events"

var _ orders.EventPublisher = (*Producer)(nil)

// Producer publica eventos de órdenes en Kafka con un SyncProducer idempotente.
type Producer struct {
	producer sarama.SyncProducer
	log      zerolog.Logger
}

// NewProducer crea el producer contra los brokers dados.
func NewProducer(brokers []string, log zerolog.Logger) (*Producer, error) {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5
	config.Producer.Return.Successes = true
	config.Producer.Compression = sarama.CompressionSnappy
	config.Producer.Idempotent = true
	config.Net.MaxOpenRequests = 1 // requerido por la idempotencia

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("crear kafka producer: %w", err)
	}

	return &Producer{
		producer: producer,
		log:      log.With().Str("component", "kafka-producer").Logger(),
	}, nil
}

// PublishOrderEvent publica el evento en TopicOrderEvents, con el ID de la
// orden como key para mantener el orden por partición.
func (p *Producer) PublishOrderEvent(ctx context.Context, event orders.OrderEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("serializar evento: %w", err)
	}

	msg := &sarama.ProducerMessage{
		Topic:     TopicOrderEvents,
		Key:       sarama.StringEncoder(event.OrderID),
		Value:     sarama.ByteEncoder(payload),
		Timestamp: event.Timestamp,
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		p.log.Error().Err(err).
			Str("event_type", event.EventType).
			Str("order_id", event.OrderID).
			Msg("fallo al publicar evento de orden")
		return fmt.Errorf("enviar mensaje: %w", err)
	}

	p.log.Debug().
		Str("event_type", event.EventType).
		Str("order_id", event.OrderID).
		Int32("partition", partition).
		Int64("offset", offset).
		Msg("evento de orden publicado")
	return nil
}

// Close cierra el producer.
func (p *Producer) Close() error {
	if err := p.producer.Close(); err != nil {
		return fmt.Errorf("cerrar kafka producer: %w", err)
	}
	return nil
}
