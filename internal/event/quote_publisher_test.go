package event

import (
	"context"
	"errors"
	"testing"

	"quote-service/internal/models"

	json "github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChannel struct {
	declares   int
	published  []amqp.Publishing
	keys       []string
	publishErr error
}

func (f *fakeChannel) QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error) {
	f.declares++
	return amqp.Queue{Name: name}, nil
}

func (f *fakeChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	f.keys = append(f.keys, key)
	f.published = append(f.published, msg)
	return nil
}

func TestQuotePublisher_PublishQuoteCalculated(t *testing.T) {
	ch := &fakeChannel{}
	p := &QuotePublisher{ch: ch}

	evt := models.QuoteCalculatedEvent{EventID: "e1", QuoteID: "q1", CompanyID: "c1", InsuranceType: "auto", TotalPrice: 535}
	require.NoError(t, p.PublishQuoteCalculated(context.Background(), evt))
	require.NoError(t, p.PublishQuoteCalculated(context.Background(), evt))

	assert.Equal(t, 1, ch.declares, "queue declared once")
	require.Len(t, ch.published, 2)
	assert.Equal(t, QuoteEventsQueue, ch.keys[0])
	assert.Equal(t, QuoteCalculatedEventKey, ch.published[0].Type)
	assert.Equal(t, amqp.Persistent, ch.published[0].DeliveryMode)

	var decoded models.QuoteCalculatedEvent
	require.NoError(t, json.Unmarshal(ch.published[0].Body, &decoded))
	assert.Equal(t, "q1", decoded.QuoteID)
	assert.Equal(t, 535.0, decoded.TotalPrice)

	published, failed := p.Stats()
	assert.Equal(t, int64(2), published)
	assert.Equal(t, int64(0), failed)
}

func TestQuotePublisher_PublishFailure(t *testing.T) {
	p := &QuotePublisher{ch: &fakeChannel{publishErr: errors.New("channel closed")}}

	err := p.PublishQuoteCalculated(context.Background(), models.QuoteCalculatedEvent{QuoteID: "q1"})

	require.Error(t, err)
	_, failed := p.Stats()
	assert.Equal(t, int64(1), failed)
}
