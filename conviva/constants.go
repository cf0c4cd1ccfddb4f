// ConvivaBridge - Bitmovin Player to Conviva Analytics Integration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/convivabridge

package conviva

// Content metadata dictionary keys.
const (
	KeyAssetName        = "Conviva.assetName"
	KeyViewerID         = "Conviva.viewerId"
	KeyApplicationName  = "Conviva.applicationName"
	KeyIsLive           = "Conviva.isLive"
	KeyDuration         = "Conviva.duration"
	KeyEncodedFrameRate = "Conviva.encodedFrameRate"
	KeyDefaultResource  = "Conviva.defaultResource"
	KeyStreamURL        = "Conviva.streamUrl"
	KeyFrameworkName    = "Conviva.frameworkName"
	KeyFrameworkVersion = "Conviva.frameworkVersion"
)

// Custom content tags set by the integration. These ride along in the
// content metadata map next to the Conviva.* keys.
const (
	TagStreamType         = "streamType"
	TagIntegrationVersion = "integrationVersion"
)

// Playback metric keys.
const (
	MetricPlayerState       = "Conviva.playback_state"
	MetricResolution        = "Conviva.playback_resolution"
	MetricBitrate           = "Conviva.playback_bitrate"
	MetricAvgBitrate        = "Conviva.playback_avg_bitrate"
	MetricRenderedFrameRate = "Conviva.playback_frame_rate"
	MetricSeekStarted       = "Conviva.playback_seek_started"
	MetricSeekEnded         = "Conviva.playback_seek_ended"
	MetricPlayHeadTime      = "Conviva.playback_head_time"
)

// Ad metadata dictionary keys.
const (
	KeyAdID                    = "c3.ad.id"
	KeyAdSystem                = "c3.ad.system"
	KeyAdMediaFileAPIFramework = "c3.ad.mediaFileApiFramework"
	KeyAdFirstAdSystem         = "c3.ad.firstAdSystem"
	KeyAdFirstAdID             = "c3.ad.firstAdId"
	KeyAdFirstCreativeID       = "c3.ad.firstCreativeId"
	KeyAdTechnology            = "c3.ad.technology"
	KeyAdPosition              = "c3.ad.position"
	KeyAdCreativeID            = "c3.ad.creativeId"
	KeyAdDescription           = "c3.ad.description"
	KeyAdIsSlate               = "c3.ad.isSlate"
	KeyAdStitcher              = "c3.ad.stitcher"
)

// ValueNA is the sentinel the sink expects for structured ad fields with no
// known value.
const ValueNA = "NA"

// PlayerState is the playback state projection reported to the sink.
type PlayerState string

// Player states.
const (
	StateStopped   PlayerState = "STOPPED"
	StatePlaying   PlayerState = "PLAYING"
	StatePaused    PlayerState = "PAUSED"
	StateBuffering PlayerState = "BUFFERING"
)

// StreamType classifies the content as live or on-demand.
type StreamType string

// Stream types.
const (
	StreamTypeVOD  StreamType = "VOD"
	StreamTypeLive StreamType = "LIVE"
)

// ErrorSeverity classifies a playback deficiency.
type ErrorSeverity string

// Error severities.
const (
	SeverityFatal   ErrorSeverity = "FATAL"
	SeverityWarning ErrorSeverity = "WARNING"
)

// AdPosition locates an ad relative to the content timeline.
type AdPosition string

// Ad positions.
const (
	AdPositionPreroll  AdPosition = "PREROLL"
	AdPositionMidroll  AdPosition = "MIDROLL"
	AdPositionPostroll AdPosition = "POSTROLL"
)

// AdType distinguishes client-stitched from server-stitched ads.
type AdType string

// Ad types.
const (
	AdTypeClientSide AdType = "CLIENT_SIDE"
	AdTypeServerSide AdType = "SERVER_SIDE"
)

// AdPlayer indicates which player renders the ad.
type AdPlayer string

// Ad players.
const (
	AdPlayerContent  AdPlayer = "CONTENT"
	AdPlayerSeparate AdPlayer = "SEPARATE"
)

// Named playback events understood by the sink.
const (
	EventBumperVideoStarted = "Conviva.BumperVideoStarted"
	EventBumperVideoEnded   = "Conviva.BumperVideoEnded"
	EventUserWaitStarted    = "Conviva.UserWaitStarted"
	EventUserWaitEnded      = "Conviva.UserWaitEnded"
)
