// ConvivaBridge - Bitmovin Player to Conviva Analytics Integration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/convivabridge

package conviva

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// Telemetry channels.
const (
	ChannelVideo = "video"
	ChannelAd    = "ad"
	ChannelApp   = "app"
)

// Telemetry call names. One per sink operation.
const (
	CallPlaybackRequested = "report_playback_requested"
	CallContentInfo       = "set_content_info"
	CallPlaybackEnded     = "report_playback_ended"
	CallPlaybackError     = "report_playback_error"
	CallPlaybackEvent     = "report_playback_event"
	CallPlaybackMetric    = "report_playback_metric"
	CallPlayerInfo        = "set_player_info"
	CallAdBreakStarted    = "report_ad_break_started"
	CallAdBreakEnded      = "report_ad_break_ended"
	CallAdLoaded          = "report_ad_loaded"
	CallAdStarted         = "report_ad_started"
	CallAdEnded           = "report_ad_ended"
	CallAdSkipped         = "report_ad_skipped"
	CallAdFailed          = "report_ad_failed"
	CallAdError           = "report_ad_error"
	CallAdMetric          = "report_ad_metric"
	CallAdInfo            = "set_ad_info"
	CallAdPlayerInfo      = "set_ad_player_info"
	CallAppEvent          = "report_app_event"
	CallAppForegrounded   = "report_app_foregrounded"
	CallAppBackgrounded   = "report_app_backgrounded"
)

// TelemetryEvent is the canonical wire record for one sink call. Every
// operation on VideoAnalytics, AdAnalytics or AppAnalytics maps to exactly
// one TelemetryEvent on the telemetry topic.
type TelemetryEvent struct {
	EventID     string    `json:"event_id"`
	CustomerKey string    `json:"customer_key"`
	Channel     string    `json:"channel"`
	Call        string    `json:"call"`
	Timestamp   time.Time `json:"timestamp"`

	// Key and Values carry metric calls (report_playback_metric,
	// report_ad_metric).
	Key    string `json:"key,omitempty"`
	Values []any  `json:"values,omitempty"`

	// Info carries metadata dictionaries (content info, ad info,
	// player info, ad break info).
	Info map[string]any `json:"info,omitempty"`

	// Name carries named events (report_playback_event,
	// report_app_event).
	Name string `json:"name,omitempty"`

	// Attributes carries custom app event attributes.
	Attributes map[string]any `json:"attributes,omitempty"`

	// Message and Severity carry error calls.
	Message  string `json:"message,omitempty"`
	Severity string `json:"severity,omitempty"`
}

// NewTelemetryEvent creates a telemetry event with a fresh id and timestamp.
func NewTelemetryEvent(customerKey, channel, call string) *TelemetryEvent {
	return &TelemetryEvent{
		EventID:     uuid.New().String(),
		CustomerKey: customerKey,
		Channel:     channel,
		Call:        call,
		Timestamp:   time.Now().UTC(),
	}
}

// Serialize encodes the event for publishing.
func (e *TelemetryEvent) Serialize() ([]byte, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("serialize telemetry event: %w", err)
	}
	return data, nil
}

// DeserializeTelemetryEvent decodes an event from the telemetry topic.
func DeserializeTelemetryEvent(data []byte) (*TelemetryEvent, error) {
	var e TelemetryEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("deserialize telemetry event: %w", err)
	}
	return &e, nil
}
