// ConvivaBridge - Bitmovin Player to Conviva Analytics Integration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/convivabridge

// Package config provides layered configuration for the bridge using Koanf v2.
//
// Precedence: environment variables > config file > built-in defaults.
// Environment variable names map to config paths by lowercasing and
// replacing the first underscore after the section name with a dot:
//
//	CONVIVA_CUSTOMER_KEY       -> conviva.customer_key
//	INTEGRATION_STATE_DEBOUNCE -> integration.state_debounce
//	LOGGING_LEVEL              -> logging.level
package config

import (
	"fmt"
	"time"
)

// Config is the root configuration for the bridge.
type Config struct {
	Conviva     ConvivaConfig     `koanf:"conviva"`
	Integration IntegrationConfig `koanf:"integration"`
	Logging     LoggingConfig     `koanf:"logging"`
}

// ConvivaConfig configures the Conviva client lifecycle.
type ConvivaConfig struct {
	// CustomerKey identifies the Conviva account. Required.
	CustomerKey string `koanf:"customer_key"`

	// GatewayURL overrides the Conviva gateway endpoint. Typically only
	// set when validating against the Touchstone test gateway.
	GatewayURL string `koanf:"gateway_url"`

	// DebugLogging enables debug-level logging inside the client.
	DebugLogging bool `koanf:"debug_logging"`

	// HeartbeatInterval is the cadence of the ad analytics callback used
	// to report the play-head during ads.
	HeartbeatInterval time.Duration `koanf:"heartbeat_interval"`
}

// IntegrationConfig configures the session/event integration.
type IntegrationConfig struct {
	// ApplicationName is reported as the Conviva application name.
	ApplicationName string `koanf:"application_name"`

	// ViewerID identifies the viewer across sessions.
	ViewerID string `koanf:"viewer_id"`

	// CustomData is merged into the content metadata as custom tags.
	CustomData map[string]string `koanf:"custom_data"`

	// StateDebounce is the deferral applied to Paused, StallEnded and
	// SourceUnloaded handlers to let a trailing Error event win. The
	// player has been observed to emit those events before the Error on
	// connectivity failures.
	StateDebounce time.Duration `koanf:"state_debounce"`
}

// LoggingConfig configures bridge logging.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// defaultConfig returns a Config with all default values. Defaults are
// applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Conviva: ConvivaConfig{
			CustomerKey:       "",
			GatewayURL:        "",
			DebugLogging:      false,
			HeartbeatInterval: time.Second,
		},
		Integration: IntegrationConfig{
			ApplicationName: "ConvivaBridge",
			ViewerID:        "",
			CustomData:      map[string]string{},
			StateDebounce:   100 * time.Millisecond,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.Conviva.CustomerKey == "" {
		return fmt.Errorf("conviva.customer_key is required")
	}
	if c.Conviva.HeartbeatInterval <= 0 {
		return fmt.Errorf("conviva.heartbeat_interval must be positive, got %s", c.Conviva.HeartbeatInterval)
	}
	if c.Integration.StateDebounce < 0 {
		return fmt.Errorf("integration.state_debounce must not be negative, got %s", c.Integration.StateDebounce)
	}
	return nil
}
