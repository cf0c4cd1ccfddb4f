// ConvivaBridge - Bitmovin Player to Conviva Analytics Integration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/convivabridge

// Package integration reconciles Bitmovin player events into Conviva's
// session and state model.
//
// # Architecture
//
// The Integration is the session state machine. It subscribes to player
// events through the player facade, decides when a monitoring session
// starts and ends, debounces state transitions the player is known to
// misorder, and issues the resulting sink calls. Content metadata flows
// through the contentMetadataBuilder, which merges player-derived values
// with application overrides and enforces the sink's rule that static
// content identity cannot change after playback starts.
//
//	player events -> Integration -> contentMetadataBuilder -> sink calls
//
// Server-stitched ads are not visible as player events; the host
// application reports them through the ssai subpackage, which shares the
// Integration's sink channels and player adapter.
//
// # Usage
//
//	client, err := conviva.Init(conviva.Config{CustomerKey: key})
//	if err != nil { ... }
//	i := integration.New(client, integration.Options{})
//	i.AttachPlayer(p) // before loading a source
//	defer i.Release(true)
//
// Sessions normally start lazily on the first Play event. Call
// InitializeSession to start tracking earlier, for example to measure
// pre-playback wait time.
package integration
