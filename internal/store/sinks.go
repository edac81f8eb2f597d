package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	mqttIface "github.com/nalxnet/openWB/internal/interface/mqtt"
	"github.com/redis/go-redis/v9"
)

// MQTTSink publishes retained JSON values, topic = key.
type MQTTSink struct {
	pub mqttIface.Publisher
}

func NewMQTTSink(pub mqttIface.Publisher) *MQTTSink {
	return &MQTTSink{pub: pub}
}

func (s *MQTTSink) Set(_ context.Context, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}
	return s.pub.PublishEvent(mqttIface.Message{
		Topic:   key,
		Payload: payload,
		QoS:     0,
		Retain:  true,
	})
}

type redisSetter interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// RedisSink mirrors the values into Redis/Valkey under the topic path.
type RedisSink struct {
	client redisSetter
	ttl    time.Duration
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
	// TTL of each key, zero keeps keys forever.
	TTL time.Duration
}

// NewRedisSink connects and pings the server.
func NewRedisSink(ctx context.Context, cfg RedisConfig) (*RedisSink, func() error, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Address,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  3 * time.Second,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Address, err)
	}
	return &RedisSink{client: client, ttl: cfg.TTL}, client.Close, nil
}

func (s *RedisSink) Set(ctx context.Context, key string, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}
	return s.client.Set(ctx, key, string(payload), s.ttl).Err()
}
