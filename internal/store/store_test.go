package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	mqttIface "github.com/nalxnet/openWB/internal/interface/mqtt"
	"github.com/nalxnet/openWB/internal/interface/mqtt/mock_mqtt"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

type fakeRedis struct {
	values map[string]interface{}
	ttl    time.Duration
	err    error
}

func (f *fakeRedis) Set(_ context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	if f.err != nil {
		return redis.NewStatusResult("", f.err)
	}
	if f.values == nil {
		f.values = map[string]interface{}{}
	}
	f.values[key] = value
	f.ttl = expiration
	return redis.NewStatusResult("OK", nil)
}

func TestSetInverterPublishesTopics(t *testing.T) {
	ctrl := gomock.NewController(t)
	pub := mock_mqtt.NewMockPublisher(ctrl)

	pub.EXPECT().PublishEvent(mqttIface.Message{
		Topic: "openWB/set/pv/2/get/power", Payload: []byte("-1500"), Retain: true,
	}).Return(nil)
	pub.EXPECT().PublishEvent(mqttIface.Message{
		Topic: "openWB/set/pv/2/get/exported", Payload: []byte("12345.5"), Retain: true,
	}).Return(nil)

	s := New(zerolog.Nop(), nil, NewMQTTSink(pub))
	if err := s.SetInverter(context.Background(), 2, InverterState{Power: -1500, Exported: 12345.5}); err != nil {
		t.Fatalf("err=%v", err)
	}
}

func TestSetCarWritesEverySink(t *testing.T) {
	ctrl := gomock.NewController(t)
	pub := mock_mqtt.NewMockPublisher(ctrl)
	pub.EXPECT().PublishEvent(gomock.Any()).Return(errors.New("broker down"))

	rd := &fakeRedis{}
	s := New(zerolog.Nop(), nil, NewMQTTSink(pub), &RedisSink{client: rd, ttl: time.Minute})

	err := s.SetCar(context.Background(), 1, CarState{SoC: 63})
	if err == nil {
		t.Fatalf("expected broker error to surface")
	}
	if got := rd.values["openWB/set/vehicle/1/get/soc"]; got != "63" {
		t.Fatalf("redis value = %v, want \"63\"", got)
	}
	if rd.ttl != time.Minute {
		t.Fatalf("ttl = %v", rd.ttl)
	}
}

func TestRedisSinkError(t *testing.T) {
	s := &RedisSink{client: &fakeRedis{err: errors.New("READONLY")}}
	if err := s.Set(context.Background(), "k", 1); err == nil {
		t.Fatalf("expected error")
	}
}

func TestMQTTSinkRejectsUnencodable(t *testing.T) {
	ctrl := gomock.NewController(t)
	pub := mock_mqtt.NewMockPublisher(ctrl)

	s := NewMQTTSink(pub)
	if err := s.Set(context.Background(), "k", func() {}); err == nil {
		t.Fatalf("expected marshal error")
	}
}
