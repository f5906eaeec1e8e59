package main

import (
	"context"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"matcha/domain/fixedpoint"
	"matcha/domain/orderbook"
	"matcha/infra/kafka"
	"matcha/infra/sequence"
	"matcha/jobs/broadcaster"
	"matcha/jobs/marketdata"
	"matcha/service"
)

type config struct {
	Brokers     []string
	TradesTopic string
	DepthTopic  string
	Orders      int
	Seed        int64
}

func loadConfig() config {
	_ = godotenv.Load()

	cfg := config{
		TradesTopic: envOr("MATCHA_TRADES_TOPIC", "matcha.trades"),
		DepthTopic:  envOr("MATCHA_DEPTH_TOPIC", "matcha.depth"),
		Orders:      envInt("MATCHA_ORDERS", 100_000),
		Seed:        int64(envInt("MATCHA_SEED", 42)),
	}
	if brokers := os.Getenv("MATCHA_BROKERS"); brokers != "" {
		cfg.Brokers = strings.Split(brokers, ",")
	}
	return cfg
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func main() {
	cfg := loadConfig()

	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	book := orderbook.NewOrderBook()
	ids := sequence.New(0)
	svc := service.NewOrderService(book, ids, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Kafka fan-out is optional: without brokers the simulator runs
	// the engine standalone.
	if len(cfg.Brokers) > 0 {
		bc, err := broadcaster.New(cfg.Brokers, cfg.TradesTopic, svc.Trades(), log)
		if err != nil {
			log.Fatal("broadcaster init failed", zap.Error(err))
		}
		defer bc.Close()
		go bc.Run(ctx)

		producer := kafka.NewProducer(cfg.Brokers, cfg.DepthTopic)
		defer producer.Close()
		go marketdata.New(svc, producer, 10, 2*time.Second, log).Run(ctx)
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	clients := make([]string, 8)
	for i := range clients {
		clients[i] = uuid.NewString()[:8]
	}

	start := time.Now()
	var placed, traded int
	for i := 0; i < cfg.Orders; i++ {
		side := orderbook.Buy
		if rng.Intn(2) == 1 {
			side = orderbook.Sell
		}

		// Prices between 95.0000 and 105.0000.
		price := fixedpoint.FromRaw(int64(95_0000 + rng.Intn(10_0001)))
		volume := int64(1 + rng.Intn(100))

		_, trades, res := svc.PlaceOrder(orderbook.Order{
			Client: clients[rng.Intn(len(clients))],
			Price:  price,
			Volume: volume,
			Side:   side,
		})
		if res != orderbook.InvalidOrder && res != orderbook.DuplicateOrderID {
			placed++
		}
		traded += len(trades)
	}
	elapsed := time.Since(start)

	orders, levels := svc.Counters()
	log.Info("simulation complete",
		zap.Int("orders_placed", placed),
		zap.Int("trades", traded),
		zap.Duration("elapsed", elapsed),
		zap.Int("resting_orders", orders),
		zap.Int("price_levels", levels),
	)

	svc.DumpBook(os.Stdout)
}
