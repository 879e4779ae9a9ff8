package config

import "time"

// RatePolicyConfig describes one fixed-window rate limit bucket.
type RatePolicyConfig struct {
	// MaxRequests is the number of requests allowed per window.
	MaxRequests int `env:"MAX"`

	// Window is the fixed window length.
	Window time.Duration `env:"WINDOW"`
}

func (p *RatePolicyConfig) sanitize(defaultMax int, defaultWindow time.Duration) {
	if p.MaxRequests < 1 {
		p.MaxRequests = defaultMax
	}
	if p.Window <= 0 {
		p.Window = defaultWindow
	}
}

// RateLimitConfig groups the per-endpoint intake rate limit buckets.
type RateLimitConfig struct {
	// Enabled turns intake rate limiting on or off globally.
	Enabled bool `env:"RATE_LIMIT_ENABLED" envDefault:"true"`

	// Newsletter covers subscribe and unsubscribe.
	Newsletter RatePolicyConfig `envPrefix:"RATE_LIMIT_NEWSLETTER_"`

	// Contact covers partnership inquiry submission.
	Contact RatePolicyConfig `envPrefix:"RATE_LIMIT_CONTACT_"`

	// Push covers push subscription registration and removal.
	Push RatePolicyConfig `envPrefix:"RATE_LIMIT_PUSH_"`
}

// Sanitize applies guardrails to rate limit configuration values.
func (c *RateLimitConfig) Sanitize() {
	c.Newsletter.sanitize(5, time.Minute)
	c.Contact.sanitize(3, time.Minute)
	c.Push.sanitize(10, time.Minute)
}
