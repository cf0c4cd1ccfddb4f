// ConvivaBridge - Bitmovin Player to Conviva Analytics Integration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/convivabridge

// Package metrics provides Prometheus instrumentation for the bridge itself.
// These are operational metrics about the integration (sessions, sink calls,
// publish failures), not the playback metrics reported to Conviva.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SinkCalls counts telemetry calls issued to the analytics sink,
	// labeled by channel (video, ad, app) and call name.
	SinkCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "convivabridge_sink_calls_total",
			Help: "Total number of analytics sink calls issued by the bridge",
		},
		[]string{"channel", "call"},
	)

	// PublishErrors counts telemetry publish failures by stage
	// (serialize, breaker, publish). Failures are logged and dropped,
	// never surfaced to the host application.
	PublishErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "convivabridge_publish_errors_total",
			Help: "Total number of telemetry publish failures",
		},
		[]string{"stage"},
	)

	// SessionsStarted counts monitoring sessions reported to the sink.
	SessionsStarted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "convivabridge_sessions_started_total",
			Help: "Total number of analytics sessions started",
		},
	)

	// SessionsEnded counts monitoring sessions ended.
	SessionsEnded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "convivabridge_sessions_ended_total",
			Help: "Total number of analytics sessions ended",
		},
	)

	// StateTransitions counts player-state transitions reported to the
	// sink, labeled by the target state.
	StateTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "convivabridge_state_transitions_total",
			Help: "Total number of player state transitions reported",
		},
		[]string{"state"},
	)

	// DeferredTransitions counts deferred event handlers, labeled by
	// event kind and outcome (fired, cancelled).
	DeferredTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "convivabridge_deferred_transitions_total",
			Help: "Total number of deferred event transitions by outcome",
		},
		[]string{"event", "outcome"},
	)

	// AdBreaks counts reported ad breaks by type (client_side, server_side).
	AdBreaks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "convivabridge_ad_breaks_total",
			Help: "Total number of ad breaks reported",
		},
		[]string{"type"},
	)
)

// RecordSinkCall records a single sink call on the given channel.
func RecordSinkCall(channel, call string) {
	SinkCalls.WithLabelValues(channel, call).Inc()
}

// RecordPublishError records a telemetry publish failure at the given stage.
func RecordPublishError(stage string) {
	PublishErrors.WithLabelValues(stage).Inc()
}

// RecordSessionStarted records the start of an analytics session.
func RecordSessionStarted() {
	SessionsStarted.Inc()
}

// RecordSessionEnded records the end of an analytics session.
func RecordSessionEnded() {
	SessionsEnded.Inc()
}

// RecordStateTransition records a reported player-state transition.
func RecordStateTransition(state string) {
	StateTransitions.WithLabelValues(state).Inc()
}

// RecordDeferredTransition records a deferred handler outcome.
func RecordDeferredTransition(event, outcome string) {
	DeferredTransitions.WithLabelValues(event, outcome).Inc()
}

// RecordAdBreak records a reported ad break of the given type.
func RecordAdBreak(adType string) {
	AdBreaks.WithLabelValues(adType).Inc()
}
