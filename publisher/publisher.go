// Package publisher sends readings to an MQTT broker, one retained message
// per reading.
package publisher

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"artifactdev/smctemp/config"
)

// DefaultTimeout bounds connecting and every publish.
const DefaultTimeout = 10 * time.Second

// Publisher owns one broker connection for the lifetime of a run.
type Publisher struct {
	client  mqtt.Client
	prefix  string
	timeout time.Duration
}

// Connect opens a connection to the broker named in cfg. Readings are
// published below <mqtt_topic>/<hostname>.
func Connect(cfg *config.Config, hostname string) (*Publisher, error) {
	if !cfg.MQTTEnabled() {
		return nil, errors.New("mqtt_ip and mqtt_port must be set in the config file")
	}

	opts := mqtt.NewClientOptions()

	protocol := "tcp"
	if cfg.SSL {
		protocol = "ssl"
	}
	brokerURL := fmt.Sprintf("%s://%s:%s", protocol, cfg.IP, cfg.Port)
	log.Printf("Connecting to MQTT broker: %s", brokerURL)

	opts.AddBroker(brokerURL)
	if cfg.User != "" {
		opts.SetUsername(cfg.User)
	}
	if cfg.Password != "" {
		opts.SetPassword(cfg.Password)
	}
	opts.SetClientID(fmt.Sprintf("%s_smctemp_%d", hostname, time.Now().Unix()))
	opts.SetConnectTimeout(DefaultTimeout)
	opts.SetWriteTimeout(DefaultTimeout)
	opts.SetAutoReconnect(false)
	opts.SetCleanSession(true)

	client := mqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(DefaultTimeout) {
		return nil, fmt.Errorf("timed out connecting to MQTT broker %s", brokerURL)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %w", err)
	}

	return New(client, cfg.Topic+"/"+hostname), nil
}

// New wraps an already connected client.
func New(client mqtt.Client, prefix string) *Publisher {
	return &Publisher{client: client, prefix: prefix, timeout: DefaultTimeout}
}

// Topic returns the topic a reading called name is published to.
func (p *Publisher) Topic(name string) string {
	levels := strings.Split(name, "/")
	for i, l := range levels {
		levels[i] = topicLevel(l)
	}
	return p.prefix + "/" + strings.Join(levels, "/")
}

// topicLevel makes one level safe to publish to: no wildcards, no spaces.
func topicLevel(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Map(func(r rune) rune {
		switch r {
		case '+', '#', ' ', 0:
			return '_'
		}
		return r
	}, s)
	if s == "" {
		return "_"
	}
	return s
}

// Publish sends payload as a retained message and waits for it to leave.
func (p *Publisher) Publish(name, payload string) error {
	topic := p.Topic(name)
	token := p.client.Publish(topic, 0, true, payload)
	if !token.WaitTimeout(p.timeout) {
		return fmt.Errorf("timed out publishing to %s", topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}
	return nil
}

// Close disconnects, giving queued messages a moment to flush.
func (p *Publisher) Close() {
	p.client.Disconnect(250)
}
