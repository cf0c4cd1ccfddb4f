// ConvivaBridge - Bitmovin Player to Conviva Analytics Integration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/convivabridge

// Package ssai reports server-side (stream-stitched) ad breaks and ads.
//
// Server-stitched ads are invisible to the player as discrete sources, so
// unlike client-side ads they cannot be tracked from player events. The
// host application drives this facade directly from its ad-tracking
// signals. All reporting methods degrade to no-ops when no ad break is
// active, so racy app-side calls never produce spurious sink traffic.
package ssai

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/tomtom215/convivabridge/conviva"
	"github.com/tomtom215/convivabridge/internal/logging"
	"github.com/tomtom215/convivabridge/internal/metrics"
)

// AdInfo is the host-supplied metadata for one server-side ad.
type AdInfo struct {
	// Title of the ad creative.
	Title string

	// Duration of the ad in seconds. Zero means unknown and is omitted.
	Duration float64

	// ID is the ad id from the ad server.
	ID string

	// AdSystem names the ad server.
	AdSystem string

	// Position of the ad relative to the content timeline.
	Position conviva.AdPosition

	// IsSlate marks filler content rather than a regular ad.
	IsSlate bool

	// AdStitcher names the stitching service.
	AdStitcher string

	// AdditionalMetadata is merged into the ad record last and
	// supersedes every derived key.
	AdditionalMetadata map[string]any
}

// PlaybackStateProvider supplies live player state for initial ad metrics.
type PlaybackStateProvider interface {
	PlayerState() conviva.PlayerState
	PlaybackVideoData() map[string][]any
}

// API is the server-side ad reporting facade.
type API struct {
	video conviva.VideoAnalytics
	ad    conviva.AdAnalytics
	log   zerolog.Logger

	mu            sync.Mutex
	player        PlaybackStateProvider
	adBreakActive bool
}

// New creates the facade on top of the given sink channels.
func New(video conviva.VideoAnalytics, ad conviva.AdAnalytics) *API {
	return &API{
		video: video,
		ad:    ad,
		log:   logging.With().Str("component", "ssai").Logger(),
	}
}

// SetPlayer binds the playback state provider used for initial ad metrics.
func (s *API) SetPlayer(p PlaybackStateProvider) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.player = p
}

// IsAdBreakActive reports whether a server-side ad break is active.
func (s *API) IsAdBreakActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.adBreakActive
}

// ReportAdBreakStarted reports the start of a server-side ad break. Must be
// called before the first ad starts. No-op if a break is already active.
// adBreakInfo may be nil.
func (s *API) ReportAdBreakStarted(adBreakInfo map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.adBreakActive {
		s.log.Debug().Msg("Server side ad break already active")
		return
	}
	s.adBreakActive = true
	s.log.Debug().Msg("Server side ad break started")
	metrics.RecordAdBreak("server_side")
	s.video.ReportAdBreakStarted(conviva.AdPlayerContent, conviva.AdTypeServerSide, adBreakInfo)
}

// ReportAdBreakFinished reports the end of the server-side ad break. No-op
// if no break is active.
func (s *API) ReportAdBreakFinished() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.adBreakActive {
		s.log.Debug().Msg("No server side ad break active")
		return
	}
	s.adBreakActive = false
	s.log.Debug().Msg("Server side ad break finished")
	s.video.ReportAdBreakEnded()
}

// ReportAdStarted reports the start of a server-side ad. No-op if no ad
// break is active or no player is bound yet.
func (s *API) ReportAdStarted(adInfo AdInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.adBreakActive {
		s.log.Debug().Msg("No server side ad break active")
		return
	}
	if s.player == nil {
		s.log.Warn().Msg("Player not yet set. Cannot report ad started.")
		return
	}
	s.log.Debug().Msg("Server side ad started")
	s.ad.ReportAdStarted(convertAdInfo(adInfo, s.video.MetadataInfo()))
	s.reportInitialAdMetrics()
}

// ReportAdFinished reports the regular end of the current server-side ad.
// No-op if no ad break is active.
func (s *API) ReportAdFinished() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.adBreakActive {
		s.log.Debug().Msg("No ad break active")
		return
	}
	s.log.Debug().Msg("Server side ad finished")
	s.ad.ReportAdEnded()
}

// ReportAdSkipped reports that the current server-side ad was skipped.
// No-op if no ad break is active.
func (s *API) ReportAdSkipped() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.adBreakActive {
		s.log.Debug().Msg("No ad break active")
		return
	}
	s.log.Debug().Msg("Server side ad skipped")
	s.ad.ReportAdSkipped()
}

// UpdateAdInfo updates the metadata of the current ad. No-op if no ad
// break is active.
func (s *API) UpdateAdInfo(adInfo AdInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.adBreakActive {
		s.log.Debug().Msg("No ad break active")
		return
	}
	s.log.Debug().Msg("Setting ad info")
	s.ad.SetAdInfo(convertAdInfo(adInfo, s.video.MetadataInfo()))
}

// Reset force-closes any active ad and ad break. Called on session end so
// no ad state leaks into the next session.
func (s *API) Reset() {
	s.ReportAdFinished()
	s.ReportAdBreakFinished()
}

// reportInitialAdMetrics seeds the ad channel with the current player
// state and video quality. Caller holds s.mu.
func (s *API) reportInitialAdMetrics() {
	s.ad.ReportAdMetric(conviva.MetricPlayerState, s.player.PlayerState())
	for key, values := range s.player.PlaybackVideoData() {
		s.ad.ReportAdMetric(key, values...)
	}
}

// contentKeys is the whitelist of content metadata copied onto every
// server-side ad record so the ad stays consistent with its session.
var contentKeys = []string{
	conviva.KeyStreamURL,
	conviva.KeyAssetName,
	conviva.KeyIsLive,
	conviva.KeyDefaultResource,
	conviva.KeyEncodedFrameRate,
	conviva.TagStreamType,
	conviva.TagIntegrationVersion,
}

// convertAdInfo builds the sink ad record: structured-field defaults,
// then the content whitelist, then the host-supplied fields, then any
// additional metadata on top.
func convertAdInfo(adInfo AdInfo, mainContent map[string]any) map[string]any {
	out := map[string]any{
		conviva.KeyAdID:                    conviva.ValueNA,
		conviva.KeyAdSystem:                conviva.ValueNA,
		conviva.KeyAdMediaFileAPIFramework: conviva.ValueNA,
		conviva.KeyAdFirstAdSystem:         conviva.ValueNA,
		conviva.KeyAdFirstAdID:             conviva.ValueNA,
		conviva.KeyAdFirstCreativeID:       conviva.ValueNA,
		conviva.KeyAdTechnology:            "Server Side",
	}

	for _, key := range contentKeys {
		if value, ok := mainContent[key]; ok {
			out[key] = value
		}
	}

	out[conviva.KeyAdIsSlate] = adInfo.IsSlate
	if adInfo.Title != "" {
		out[conviva.KeyAssetName] = adInfo.Title
	}
	if adInfo.Duration != 0 {
		out[conviva.KeyDuration] = adInfo.Duration
	}
	if adInfo.ID != "" {
		out[conviva.KeyAdID] = adInfo.ID
	}
	if adInfo.AdSystem != "" {
		out[conviva.KeyAdSystem] = adInfo.AdSystem
	}
	if adInfo.Position != "" {
		out[conviva.KeyAdPosition] = adInfo.Position
	}
	if adInfo.AdStitcher != "" {
		out[conviva.KeyAdStitcher] = adInfo.AdStitcher
	}

	for k, v := range adInfo.AdditionalMetadata {
		out[k] = v
	}

	return out
}
