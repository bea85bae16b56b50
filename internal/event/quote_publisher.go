package event

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"quote-service/internal/models"

	json "github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	QuoteEventsQueue        = "quote_events"
	QuoteCalculatedEventKey = "quote.calculated"
)

// channel is the subset of *amqp.Channel the publisher needs.
type channel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// QuotePublisher publishes quote events to the quote_events queue.
type QuotePublisher struct {
	ch channel

	mu                sync.Mutex
	declared          bool
	messagesPublished int64
	messagesFailed    int64
}

func NewQuotePublisher(conn *RabbitMQConnection) *QuotePublisher {
	return &QuotePublisher{ch: conn.Channel}
}

func (p *QuotePublisher) PublishQuoteCalculated(ctx context.Context, evt models.QuoteCalculatedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.declared {
		_, err := p.ch.QueueDeclare(
			QuoteEventsQueue, // queue name
			true,             // durable
			false,            // delete when unused
			false,            // exclusive
			false,            // no-wait
			nil,              // arguments
		)
		if err != nil {
			p.messagesFailed++
			return fmt.Errorf("failed to declare queue: %w", err)
		}
		p.declared = true
	}

	body, err := json.Marshal(evt)
	if err != nil {
		p.messagesFailed++
		return fmt.Errorf("failed to marshal quote event: %w", err)
	}

	err = p.ch.PublishWithContext(
		ctx,
		"",               // exchange
		QuoteEventsQueue, // routing key (queue name)
		false,            // mandatory
		false,            // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Type:         QuoteCalculatedEventKey,
			MessageId:    evt.EventID,
			Body:         body,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		p.messagesFailed++
		return fmt.Errorf("failed to publish quote event: %w", err)
	}

	p.messagesPublished++
	slog.Info("Quote event published",
		"queue", QuoteEventsQueue,
		"quote_id", evt.QuoteID,
		"company_id", evt.CompanyID,
		"insurance_type", evt.InsuranceType)
	return nil
}

// Stats returns the published and failed message counts.
func (p *QuotePublisher) Stats() (published, failed int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.messagesPublished, p.messagesFailed
}
