package publisher

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/TfGMEnterprise/uk-transport-sensors/dlog"
	"github.com/TfGMEnterprise/uk-transport-sensors/model"
	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/pkg/errors"
)

const (
	DefaultMQTTTopicPrefix = "uk-transport"
	defaultMQTTTimeout     = 10 * time.Second
)

// MQTTPublisher publishes each sensor as two retained topics so that a
// subscriber connecting between scans still gets the latest values:
// <prefix>/<key>/state carries the state string and
// <prefix>/<key>/attributes the attributes as JSON
type MQTTPublisher struct {
	Logger      *dlog.Logger
	Client      mqtt.Client
	TopicPrefix string
	Timeout     time.Duration
}

// NewMQTTClient connects to broker, e.g. tcp://localhost:1883
func NewMQTTClient(broker string, clientID string) (mqtt.Client, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetConnectTimeout(defaultMQTTTimeout).
		SetAutoReconnect(true)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, errors.Wrapf(token.Error(), "cannot connect to MQTT broker `%s`", broker)
	}

	return client, nil
}

func (mp *MQTTPublisher) Publish(states []model.SensorState) error {
	mp.Logger.Debug("MQTTPublisher Publish")

	for _, state := range states {
		attributesJSON, err := json.Marshal(state.Attributes)
		if err != nil {
			return errors.Wrapf(err, "cannot marshal attributes for %s", state.Key)
		}

		if err := mp.publish(mp.topic(state.Key, "state"), state.State); err != nil {
			return err
		}

		if err := mp.publish(mp.topic(state.Key, "attributes"), attributesJSON); err != nil {
			return err
		}
	}

	return nil
}

// topicLevel keeps a sensor key to one topic level without wildcards
var topicLevel = strings.NewReplacer("/", "_", "+", "_", "#", "_")

func (mp *MQTTPublisher) topic(key string, suffix string) string {
	prefix := mp.TopicPrefix
	if prefix == "" {
		prefix = DefaultMQTTTopicPrefix
	}

	return strings.Join([]string{
		strings.TrimRight(prefix, "/"),
		topicLevel.Replace(key),
		suffix,
	}, "/")
}

func (mp *MQTTPublisher) publish(topic string, payload interface{}) error {
	timeout := mp.Timeout
	if timeout <= 0 {
		timeout = defaultMQTTTimeout
	}

	token := mp.Client.Publish(topic, 1, true, payload)
	if !token.WaitTimeout(timeout) {
		return errors.Errorf("timed out publishing to MQTT topic `%s`", topic)
	}

	if err := token.Error(); err != nil {
		return errors.Wrapf(err, "cannot publish to MQTT topic `%s`", topic)
	}

	return nil
}
