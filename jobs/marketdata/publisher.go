// Package marketdata publishes periodic depth snapshots of the book.
package marketdata

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"matcha/domain/orderbook"
	"matcha/infra/kafka"
	"matcha/service"
)

// Publisher snapshots the top of the book on a fixed interval and
// publishes the view as JSON.
type Publisher struct {
	svc      *service.OrderService
	producer *kafka.Producer
	depth    int
	interval time.Duration
	log      *zap.Logger
}

// Snapshot is the wire form of one depth update.
type Snapshot struct {
	Time    time.Time             `json:"time"`
	BestBid string                `json:"best_bid"`
	BestAsk string                `json:"best_ask"`
	Mid     string                `json:"mid"`
	Bids    []orderbook.BookLevel `json:"bids"`
	Asks    []orderbook.BookLevel `json:"asks"`
}

func New(svc *service.OrderService, producer *kafka.Producer, depth int, interval time.Duration, log *zap.Logger) *Publisher {
	return &Publisher{
		svc:      svc,
		producer: producer,
		depth:    depth,
		interval: interval,
		log:      log,
	}
}

// Run publishes on every tick until ctx is cancelled.
func (p *Publisher) Run(ctx context.Context) {
	p.log.Info("depth publisher started", zap.Duration("interval", p.interval))
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.publishOnce(ctx)
		}
	}
}

func (p *Publisher) publishOnce(ctx context.Context) {
	bids, asks := p.svc.Depth(p.depth)
	bid, ask, mid := p.svc.TopOfBook()

	payload, err := json.Marshal(Snapshot{
		Time:    time.Now(),
		BestBid: bid.String(),
		BestAsk: ask.String(),
		Mid:     mid.String(),
		Bids:    bids,
		Asks:    asks,
	})
	if err != nil {
		p.log.Error("encode depth snapshot", zap.Error(err))
		return
	}

	if err := p.producer.Publish(ctx, []byte("depth"), payload); err != nil {
		p.log.Error("publish depth snapshot", zap.Error(err))
	}
}
