// Package metrics exposes the designer's operational metrics: prometheus
// counters for template and render activity plus low-cardinality HTTP server
// instruments.
package metrics

import "strings"

// Config identifies the service on every exported metric.
type Config struct {
	ServiceName string
	Environment string
}

func (c Config) serviceName() string {
	if name := strings.TrimSpace(c.ServiceName); name != "" {
		return name
	}
	return "belegdesigner"
}

func (c Config) environment() string {
	if env := strings.TrimSpace(c.Environment); env != "" {
		return env
	}
	return "unknown"
}
