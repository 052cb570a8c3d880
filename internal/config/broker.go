package config

import (
	"fmt"
	"strings"
)

// BrokerConfig holds the RabbitMQ connection used for transaction events.
type BrokerConfig struct {
	// URL is the AMQP URL; empty means events are only logged.
	URL string
	// Exchange is the topic exchange events are published to.
	Exchange string
}

// LoadBrokerConfigFromEnv loads broker configuration from environment variables.
func LoadBrokerConfigFromEnv() BrokerConfig {
	return BrokerConfig{
		URL:      GetEnv("RABBITMQ_URL", ""),
		Exchange: GetEnv("RABBITMQ_EXCHANGE", "roster.events"),
	}
}

// Enabled reports whether a broker is configured.
func (c BrokerConfig) Enabled() bool {
	return c.URL != ""
}

// Validate validates broker configuration.
func (c BrokerConfig) Validate() error {
	if !c.Enabled() {
		return nil
	}
	if !strings.HasPrefix(c.URL, "amqp://") && !strings.HasPrefix(c.URL, "amqps://") {
		return fmt.Errorf("invalid RABBITMQ_URL: must start with amqp:// or amqps://")
	}
	if c.Exchange == "" {
		return fmt.Errorf("RABBITMQ_EXCHANGE is required when RABBITMQ_URL is set")
	}
	return nil
}
