// ConvivaBridge - Bitmovin Player to Conviva Analytics Integration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/convivabridge

package conviva

// VideoAnalytics is the content-session reporting channel of the sink.
//
// All calls are fire-and-forget from the caller's perspective: failures are
// handled inside the implementation and never propagated, since analytics
// must not interfere with playback.
type VideoAnalytics interface {
	// ReportPlaybackRequested starts a monitoring session with the given
	// content metadata.
	ReportPlaybackRequested(contentInfo map[string]any)

	// SetContentInfo updates the content metadata of the active session.
	SetContentInfo(contentInfo map[string]any)

	// ReportPlaybackEnded ends the monitoring session.
	ReportPlaybackEnded()

	// ReportPlaybackError reports a playback deficiency. A FATAL severity
	// implies the session cannot continue.
	ReportPlaybackError(message string, severity ErrorSeverity)

	// ReportPlaybackEvent reports a named playback event such as
	// EventBumperVideoStarted.
	ReportPlaybackEvent(name string)

	// ReportPlaybackMetric reports a playback metric such as
	// MetricPlayerState or MetricBitrate.
	ReportPlaybackMetric(key string, values ...any)

	// SetPlayerInfo declares the player framework name and version.
	SetPlayerInfo(playerInfo map[string]any)

	// ReportAdBreakStarted marks the start of an ad break on the content
	// session. adBreakInfo may be nil.
	ReportAdBreakStarted(adPlayer AdPlayer, adType AdType, adBreakInfo map[string]any)

	// ReportAdBreakEnded marks the end of the current ad break.
	ReportAdBreakEnded()

	// MetadataInfo returns the content metadata the sink currently holds
	// for the session. Ad reporting copies selected keys from it.
	MetadataInfo() map[string]any

	// Release frees the reporting channel. Further calls are no-ops.
	Release()
}

// AdAnalytics is the ad reporting channel of the sink, nested inside a
// content session.
type AdAnalytics interface {
	// ReportAdLoaded declares the upcoming ad's metadata.
	ReportAdLoaded(adInfo map[string]any)

	// ReportAdStarted marks the start of an individual ad.
	ReportAdStarted(adInfo map[string]any)

	// ReportAdEnded marks the regular end of the current ad.
	ReportAdEnded()

	// ReportAdSkipped marks the current ad as skipped.
	ReportAdSkipped()

	// ReportAdFailed marks the current ad as failed.
	ReportAdFailed(message string)

	// ReportAdError reports an error on the ad channel without ending
	// the ad.
	ReportAdError(message string, severity ErrorSeverity)

	// ReportAdMetric reports a playback metric scoped to the current ad.
	ReportAdMetric(key string, values ...any)

	// SetAdInfo updates the metadata of the current ad.
	SetAdInfo(adInfo map[string]any)

	// SetAdPlayerInfo declares the framework playing the ad.
	SetAdPlayerInfo(playerInfo map[string]any)

	// SetCallback registers a function the sink invokes on a fixed
	// cadence while the channel is alive. The integration uses it to
	// report the play-head during ads.
	SetCallback(fn func())

	// Release frees the reporting channel and stops the callback.
	// Further reporting calls are no-ops.
	Release()
}

// AppAnalytics is the application-level reporting channel of the sink.
type AppAnalytics interface {
	// ReportAppEvent reports a custom application event.
	ReportAppEvent(name string, attributes map[string]any)

	// ReportAppForegrounded signals the host app moved to the foreground.
	ReportAppForegrounded()

	// ReportAppBackgrounded signals the host app moved to the background.
	ReportAppBackgrounded()
}
