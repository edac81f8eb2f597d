// Package ha announces openWB components to Home Assistant through MQTT
// discovery. State topics point at the values the store already publishes.
package ha

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/nalxnet/openWB/internal/component"
	mqttIface "github.com/nalxnet/openWB/internal/interface/mqtt"
)

// StatusTopic carries Home Assistant's birth message; "online" means it
// restarted and discovery has to be sent again.
const StatusTopic = "homeassistant/status"

type Device struct {
	Identifiers  []string `json:"identifiers,omitempty"`
	Manufacturer string   `json:"manufacturer,omitempty"`
	Model        string   `json:"model,omitempty"`
	Name         string   `json:"name,omitempty"`
}

type SensorConfig struct {
	Name        string  `json:"name"`
	UniqueID    string  `json:"unique_id"`
	StateTopic  string  `json:"state_topic"`
	DeviceClass string  `json:"device_class,omitempty"`
	StateClass  string  `json:"state_class,omitempty"`
	UnitOfMeas  string  `json:"unit_of_measurement,omitempty"`
	Device      *Device `json:"device,omitempty"`

	object string
}

func TopicSensorConfig(object, unique string) string {
	return fmt.Sprintf("homeassistant/sensor/%s/%s/config", unique, object)
}

func uniqueID(info component.Info) string {
	return fmt.Sprintf("openwb_%s_%d", info.Type, info.ID)
}

// Sensors lists the discovery entries for one component.
func Sensors(info component.Info) []SensorConfig {
	unique := uniqueID(info)
	name := info.Name
	if name == "" {
		name = strings.ReplaceAll(unique, "_", " ")
	}
	device := &Device{
		Identifiers:  []string{unique},
		Manufacturer: "openWB",
		Model:        info.Type,
		Name:         name,
	}
	sensor := func(object, label, class, stateClass, unit string) SensorConfig {
		return SensorConfig{
			Name:        fmt.Sprintf("%s %s", name, label),
			UniqueID:    unique + "_" + object,
			StateTopic:  info.Topic(object),
			DeviceClass: class,
			StateClass:  stateClass,
			UnitOfMeas:  unit,
			Device:      device,
			object:      object,
		}
	}

	var out []SensorConfig
	switch info.Type {
	case "pv":
		out = append(out,
			sensor("power", "power", "power", "measurement", "W"),
			sensor("exported", "exported", "energy", "total_increasing", "Wh"),
		)
	case "vehicle":
		out = append(out, sensor("soc", "SoC", "battery", "measurement", "%"))
	}
	return append(out, sensor("fault_state", "fault state", "", "", ""))
}

// Announce publishes retained discovery configs for every component. All
// components are tried; errors are joined.
func Announce(pub mqttIface.Publisher, infos []component.Info) error {
	var errs []error
	for _, info := range infos {
		for _, s := range Sensors(info) {
			payload, err := json.Marshal(s)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			err = pub.PublishEvent(mqttIface.Message{
				Topic:   TopicSensorConfig(s.object, uniqueID(info)),
				Payload: payload,
				QoS:     1,
				Retain:  true,
			})
			if err != nil {
				errs = append(errs, fmt.Errorf("announce %s: %w", s.UniqueID, err))
			}
		}
	}
	return errors.Join(errs...)
}
