// ConvivaBridge - Bitmovin Player to Conviva Analytics Integration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/convivabridge

package conviva

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/convivabridge/internal/logging"
	"github.com/tomtom215/convivabridge/internal/metrics"
)

// TelemetryTopic is the Pub/Sub topic all sink calls are published on.
const TelemetryTopic = "conviva.telemetry"

// Config configures the Conviva client.
type Config struct {
	// CustomerKey identifies the Conviva account. Required.
	CustomerKey string

	// GatewayURL overrides the Conviva gateway endpoint. Recorded on the
	// client for downstream transport consumers; the bridge itself does
	// not open network connections.
	GatewayURL string

	// DebugLogging enables debug output from the underlying publisher.
	DebugLogging bool

	// HeartbeatInterval is the cadence of the ad analytics callback.
	// Default: 1s.
	HeartbeatInterval time.Duration

	// OutputChannelBuffer sizes the in-process telemetry channel.
	// Default: 256.
	OutputChannelBuffer int64

	// Breaker configures the circuit breaker around publishes.
	Breaker BreakerConfig
}

// BreakerConfig holds circuit breaker settings for telemetry publishing.
type BreakerConfig struct {
	// MaxRequests is the number of probe requests allowed while half-open.
	MaxRequests uint32

	// Interval is the cyclic period to clear failure counts while closed.
	Interval time.Duration

	// Timeout is how long the breaker stays open before probing.
	Timeout time.Duration

	// FailureThreshold is the number of consecutive failures that trips
	// the breaker.
	FailureThreshold uint32
}

// DefaultBreakerConfig returns production defaults.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          10 * time.Second,
		FailureThreshold: 5,
	}
}

// Client is the process-wide Conviva sink. Create it with Init, build the
// per-session reporting channels with BuildVideoAnalytics and
// BuildAdAnalytics, and tear it down with Release.
type Client struct {
	cfg     Config
	pubSub  *gochannel.GoChannel
	breaker *gobreaker.CircuitBreaker[any]

	mu       sync.Mutex
	released bool
}

// Init initializes the Conviva client for this process. It must be balanced
// with Release before a new client can meaningfully replace it.
func Init(cfg Config) (*Client, error) {
	if cfg.CustomerKey == "" {
		return nil, fmt.Errorf("conviva: customer key is required")
	}
	if cfg.HeartbeatInterval <= 0 {
		cfg.HeartbeatInterval = time.Second
	}
	if cfg.OutputChannelBuffer <= 0 {
		cfg.OutputChannelBuffer = 256
	}
	if cfg.Breaker == (BreakerConfig{}) {
		cfg.Breaker = DefaultBreakerConfig()
	}

	pubSub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: cfg.OutputChannelBuffer},
		watermill.NewStdLogger(cfg.DebugLogging, false),
	)

	breaker := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        "conviva-telemetry",
		MaxRequests: cfg.Breaker.MaxRequests,
		Interval:    cfg.Breaker.Interval,
		Timeout:     cfg.Breaker.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.Breaker.FailureThreshold
		},
	})

	logging.Debug().
		Str("customer_key", cfg.CustomerKey).
		Str("gateway_url", cfg.GatewayURL).
		Msg("Conviva client initialized")

	return &Client{
		cfg:     cfg,
		pubSub:  pubSub,
		breaker: breaker,
	}, nil
}

// BuildVideoAnalytics creates the content-session reporting channel.
func (c *Client) BuildVideoAnalytics() VideoAnalytics {
	return &videoAnalytics{client: c, contentInfo: map[string]any{}}
}

// BuildAdAnalytics creates the ad reporting channel. The video channel the
// ad session nests in is accepted for call-shape parity with the sink API;
// the ad channel publishes independently.
func (c *Client) BuildAdAnalytics(_ VideoAnalytics) AdAnalytics {
	return &adAnalytics{client: c, stop: make(chan struct{})}
}

// ReportAppEvent reports a custom application event.
func (c *Client) ReportAppEvent(name string, attributes map[string]any) {
	ev := NewTelemetryEvent(c.cfg.CustomerKey, ChannelApp, CallAppEvent)
	ev.Name = name
	ev.Attributes = attributes
	c.publish(ev)
}

// ReportAppForegrounded signals the host app moved to the foreground.
func (c *Client) ReportAppForegrounded() {
	c.publish(NewTelemetryEvent(c.cfg.CustomerKey, ChannelApp, CallAppForegrounded))
}

// ReportAppBackgrounded signals the host app moved to the background.
func (c *Client) ReportAppBackgrounded() {
	c.publish(NewTelemetryEvent(c.cfg.CustomerKey, ChannelApp, CallAppBackgrounded))
}

// Subscribe returns the telemetry message stream. Consumers must drain the
// channel until it closes.
func (c *Client) Subscribe(ctx context.Context) (<-chan *message.Message, error) {
	return c.pubSub.Subscribe(ctx, TelemetryTopic)
}

// Released reports whether the client has been torn down.
func (c *Client) Released() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.released
}

// Release tears the client down. Telemetry published after Release is
// dropped. Safe to call more than once.
func (c *Client) Release() error {
	c.mu.Lock()
	if c.released {
		c.mu.Unlock()
		return nil
	}
	c.released = true
	c.mu.Unlock()

	logging.Debug().Msg("Conviva client released")
	return c.pubSub.Close()
}

// publish serializes and publishes one sink call. Failures are counted and
// logged but never returned: the sink is best-effort and must not disturb
// playback.
func (c *Client) publish(ev *TelemetryEvent) {
	if c.Released() {
		logging.Warn().Str("call", ev.Call).Msg("Telemetry dropped: client released")
		return
	}

	data, err := ev.Serialize()
	if err != nil {
		metrics.RecordPublishError("serialize")
		logging.Error().Err(err).Str("call", ev.Call).Msg("Telemetry serialization failed")
		return
	}

	msg := message.NewMessage(ev.EventID, data)
	msg.Metadata.Set("channel", ev.Channel)
	msg.Metadata.Set("call", ev.Call)

	_, err = c.breaker.Execute(func() (any, error) {
		return nil, c.pubSub.Publish(TelemetryTopic, msg)
	})
	if err != nil {
		metrics.RecordPublishError("publish")
		logging.Error().Err(err).Str("call", ev.Call).Msg("Telemetry publish failed")
		return
	}

	metrics.RecordSinkCall(ev.Channel, ev.Call)
}
