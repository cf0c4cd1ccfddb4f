// ConvivaBridge - Bitmovin Player to Conviva Analytics Integration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/convivabridge

// Package conviva models the Conviva analytics sink consumed by the bridge.
//
// It provides the sink vocabulary (metadata dictionary keys, playback metric
// keys, player states, ad constants), the VideoAnalytics / AdAnalytics /
// AppAnalytics sink interfaces, and two implementations:
//
//   - Client: the production sink. Every sink call is normalized into a
//     TelemetryEvent and published on an in-process Watermill Pub/Sub topic,
//     protected by a circuit breaker. Downstream consumers (the real SDK
//     transport, a validation harness, cmd/bridge-sim) subscribe to the
//     topic; the bridge itself never blocks on, retries, or surfaces a
//     failed sink call.
//
//   - Recorder: an in-memory sink double for tests. It captures every call
//     with its payload so tests can assert on the exact sequence the
//     integration produced.
//
// Lifecycle mirrors the Conviva SDK model: Init creates a Client for the
// process, BuildVideoAnalytics and BuildAdAnalytics create the two reporting
// channels of a session pair, and Release tears everything down. Re-init
// after Release is supported; there is no implicit static state.
package conviva
