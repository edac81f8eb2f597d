package mqtt

//go:generate mockgen -destination=mock_mqtt/mqtt.go -package=mock_mqtt github.com/nalxnet/openWB/internal/interface/mqtt Publisher

import mqtt "github.com/eclipse/paho.mqtt.golang"

type Message struct {
	Topic   string `json:"topic"`
	Payload []byte `json:"payload"`
	QoS     byte   `json:"qos"`
	Retain  bool   `json:"retain"`
}

type Subscription struct {
	Topic    string              `json:"topic"`
	QoS      byte                `json:"qos"`
	Callback mqtt.MessageHandler `json:"-"`
}

// Publisher is the part of Client the value store needs.
type Publisher interface {
	PublishEvent(message Message) error
}

type Client interface {
	API
	Publisher
	SubscribeToTopic(subscription Subscription) error
	Close(quiesce uint) error
}

type API interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
	Subscribe(topic string, qos byte, callback mqtt.MessageHandler) mqtt.Token
	Disconnect(quiesce uint)
	IsConnectionOpen() bool
}
