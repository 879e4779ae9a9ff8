package config

import (
	"strings"
	"time"
)

// PushConfig controls delivery of push notifications through the relay.
type PushConfig struct {
	// Enabled turns push broadcast delivery on or off. When disabled the
	// broadcast endpoint still validates requests but sends nothing.
	Enabled bool `env:"PUSH_ENABLED" envDefault:"false"`

	// RelayURL is the push relay endpoint. When empty, messages are posted
	// directly to each subscription's endpoint.
	RelayURL string `env:"PUSH_RELAY_URL"`

	// VAPIDSubject identifies the sender to push services, usually a
	// mailto: or https: URL.
	VAPIDSubject string `env:"PUSH_VAPID_SUBJECT" envDefault:"mailto:ops@luminaryawards.org"`

	// Timeout bounds each delivery request.
	Timeout time.Duration `env:"PUSH_TIMEOUT" envDefault:"5s"`

	// RetryLimit is the number of retries after a failed delivery attempt.
	RetryLimit int `env:"PUSH_RETRY_LIMIT" envDefault:"3"`
}

// Sanitize normalises push configuration values.
func (c *PushConfig) Sanitize() {
	c.RelayURL = strings.TrimSpace(c.RelayURL)
	c.VAPIDSubject = strings.TrimSpace(c.VAPIDSubject)
	if c.Timeout <= 0 {
		c.Timeout = 5 * time.Second
	}
	if c.RetryLimit < 0 {
		c.RetryLimit = 0
	}
}
