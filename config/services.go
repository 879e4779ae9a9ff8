package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ServiceMode represents the available service modes.
type ServiceMode string

const (
	// ServiceModeHTTP runs the HTTP server.
	ServiceModeHTTP ServiceMode = "http"
	// ServiceModeMaintenance runs the periodic content maintenance loop.
	ServiceModeMaintenance ServiceMode = "maintenance"
)

// ValidServiceModes returns all valid service mode names.
func ValidServiceModes() []ServiceMode {
	return []ServiceMode{
		ServiceModeHTTP,
		ServiceModeMaintenance,
	}
}

// ParseServices parses a comma-delimited string of service names and returns the enabled services.
// It validates that all service names are valid and returns an error if any are invalid.
func ParseServices(servicesStr string) (map[ServiceMode]bool, error) {
	services := make(map[ServiceMode]bool)

	if servicesStr == "" {
		return services, errors.New("at least one service must be specified")
	}

	parts := strings.Split(servicesStr, ",")
	for _, part := range parts {
		serviceName := strings.TrimSpace(part)
		if serviceName == "" {
			continue
		}

		mode := ServiceMode(serviceName)
		switch mode {
		case ServiceModeHTTP, ServiceModeMaintenance:
			services[mode] = true
		default:
			return nil, fmt.Errorf(
				"invalid service name: %q (valid options: http, maintenance)",
				serviceName,
			)
		}
	}

	if len(services) == 0 {
		return nil, errors.New("at least one valid service must be specified")
	}

	return services, nil
}

// MaintenanceConfig contains content maintenance service configuration.
type MaintenanceConfig struct {
	// Interval is the maintenance tick interval.
	Interval time.Duration `env:"MAINTENANCE_INTERVAL" envDefault:"1m"`

	// AnnouncementRetention is how long an expired announcement is kept
	// before being pruned.
	AnnouncementRetention time.Duration `env:"MAINTENANCE_ANNOUNCEMENT_RETENTION" envDefault:"720h"` // 30 days
}

// Sanitize applies guardrails to maintenance configuration values.
func (m *MaintenanceConfig) Sanitize() {
	// Enforce a minimum interval to prevent excessive database load
	if m.Interval < 15*time.Second {
		m.Interval = 15 * time.Second
	}
	if m.AnnouncementRetention < time.Hour {
		m.AnnouncementRetention = time.Hour
	}
}
