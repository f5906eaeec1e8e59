// Package broadcaster publishes executed trades to Kafka as JSON
// events. It drains the service trade feed so the matching path never
// waits on the network.
package broadcaster

import (
	"context"
	"encoding/json"

	"github.com/IBM/sarama"
	"go.uber.org/zap"

	"matcha/domain/orderbook"
)

type Broadcaster struct {
	producer sarama.SyncProducer
	topic    string
	feed     <-chan orderbook.Trade
	log      *zap.Logger
}

// Event is the wire form of one trade execution.
type Event struct {
	V            int    `json:"v"`
	Type         string `json:"type"`
	OrderID      uint64 `json:"order_id"`
	Price        string `json:"price"`
	Volume       int64  `json:"volume"`
	IsBuy        bool   `json:"is_buy"`
	Client       string `json:"client"`
	Counterparty string `json:"counterparty"`
}

func New(brokers []string, topic string, feed <-chan orderbook.Trade, log *zap.Logger) (*Broadcaster, error) {
	cfg := sarama.NewConfig()
	cfg.Producer.Return.Successes = true
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 5

	producer, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, err
	}

	return &Broadcaster{
		producer: producer,
		topic:    topic,
		feed:     feed,
		log:      log,
	}, nil
}

// Run drains the trade feed until ctx is cancelled.
func (b *Broadcaster) Run(ctx context.Context) {
	b.log.Info("broadcaster started", zap.String("topic", b.topic))
	for {
		select {
		case <-ctx.Done():
			return
		case t := <-b.feed:
			b.send(t)
		}
	}
}

func (b *Broadcaster) send(t orderbook.Trade) {
	payload, err := json.Marshal(Event{
		V:            1,
		Type:         "trade",
		OrderID:      t.OrderID,
		Price:        t.Price.String(),
		Volume:       t.Volume,
		IsBuy:        t.IsBuy,
		Client:       t.Client,
		Counterparty: t.Counterparty,
	})
	if err != nil {
		b.log.Error("encode trade event", zap.Error(err))
		return
	}

	msg := &sarama.ProducerMessage{
		Topic: b.topic,
		Value: sarama.ByteEncoder(payload),
	}
	if _, _, err := b.producer.SendMessage(msg); err != nil {
		b.log.Error("publish trade event", zap.Error(err))
	}
}

func (b *Broadcaster) Close() error {
	return b.producer.Close()
}
