package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/segmentio/kafka-go"

	"bookworm-search/internal/config"
)

func main() {
	cfg, err := config.Load(os.Getenv("BOOKWORM_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	broker := cfg.Kafka.Broker
	if broker == "" {
		broker = "localhost:9092"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, err := kafka.DialContext(ctx, "tcp", broker)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect to Kafka at %s: %v\n", broker, err)
		os.Exit(1)
	}
	defer conn.Close()

	partitions, err := conn.ReadPartitions(cfg.Kafka.Topic)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read metadata for topic %s: %v\n", cfg.Kafka.Topic, err)
		os.Exit(1)
	}

	fmt.Printf("connected to Kafka at %s (topic %s, %d partitions)\n", broker, cfg.Kafka.Topic, len(partitions))
}
