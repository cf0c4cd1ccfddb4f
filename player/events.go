// ConvivaBridge - Bitmovin Player to Conviva Analytics Integration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/convivabridge

package player

// Kind tags an event type for dispatch. The tag doubles as the event's
// display name for custom playback events ("on" + Kind).
type Kind string

// Event kinds.
const (
	KindPlay                        Kind = "Play"
	KindPlaying                     Kind = "Playing"
	KindPaused                      Kind = "Paused"
	KindStallStarted                Kind = "StallStarted"
	KindStallEnded                  Kind = "StallEnded"
	KindPlaybackFinished            Kind = "PlaybackFinished"
	KindSeek                        Kind = "Seek"
	KindSeeked                      Kind = "Seeked"
	KindTimeShift                   Kind = "TimeShift"
	KindTimeShifted                 Kind = "TimeShifted"
	KindMuted                       Kind = "Muted"
	KindUnmuted                     Kind = "Unmuted"
	KindSourceUnloaded              Kind = "SourceUnloaded"
	KindPlayerError                 Kind = "PlayerError"
	KindSourceError                 Kind = "SourceError"
	KindPlayerWarning               Kind = "PlayerWarning"
	KindSourceWarning               Kind = "SourceWarning"
	KindAdBreakStarted              Kind = "AdBreakStarted"
	KindAdBreakFinished             Kind = "AdBreakFinished"
	KindAdStarted                   Kind = "AdStarted"
	KindAdFinished                  Kind = "AdFinished"
	KindAdSkipped                   Kind = "AdSkipped"
	KindAdError                     Kind = "AdError"
	KindVideoPlaybackQualityChanged Kind = "VideoPlaybackQualityChanged"
	KindTimeChanged                 Kind = "TimeChanged"
)

// Event is the tagged union of all player events the bridge consumes.
type Event interface {
	EventKind() Kind
}

// Play signals an intent to play (user or API initiated).
type Play struct{}

// Playing signals playback actually progressing.
type Playing struct{}

// Paused signals playback paused.
type Paused struct{}

// StallStarted signals rebuffering began.
type StallStarted struct{}

// StallEnded signals rebuffering finished.
type StallEnded struct{}

// PlaybackFinished signals the content played to its end.
type PlaybackFinished struct{}

// Seek signals a VOD seek started. To is the target position in seconds.
type Seek struct {
	To float64
}

// Seeked signals a VOD seek finished.
type Seeked struct{}

// TimeShift signals a live time-shift started. Target is the destination
// offset in seconds relative to the live edge.
type TimeShift struct {
	Target float64
}

// TimeShifted signals a live time-shift finished.
type TimeShifted struct{}

// Muted signals the player was muted.
type Muted struct{}

// Unmuted signals the player was unmuted.
type Unmuted struct{}

// SourceUnloaded signals the current source was unloaded.
type SourceUnloaded struct{}

// PlayerError is a fatal player-scoped error.
type PlayerError struct {
	Code    int
	Message string
}

// SourceError is a fatal source-scoped error.
type SourceError struct {
	Code    int
	Message string
}

// PlayerWarning is a non-fatal player-scoped warning.
type PlayerWarning struct {
	Code    int
	Message string
}

// SourceWarning is a non-fatal source-scoped warning.
type SourceWarning struct {
	Code    int
	Message string
}

// AdBreakStarted signals a client-side ad break began.
type AdBreakStarted struct{}

// AdBreakFinished signals a client-side ad break ended.
type AdBreakFinished struct{}

// AdStarted signals an individual client-side ad began.
type AdStarted struct {
	// Client identifies the ad framework playing the ad.
	Client AdSourceType

	// TimeOffset is the scheduled position of the ad in seconds from the
	// start of the content. 0 marks a pre-roll.
	TimeOffset float64

	// Duration is the ad duration in seconds.
	Duration float64

	// Ad carries the ad's media and VAST metadata when known.
	Ad *Ad
}

// AdFinished signals the current ad played to its end.
type AdFinished struct{}

// AdSkipped signals the current ad was skipped.
type AdSkipped struct{}

// AdError signals the current ad failed.
type AdError struct {
	Message string
}

// VideoPlaybackQualityChanged signals the active video quality switched.
type VideoPlaybackQualityChanged struct{}

// TimeChanged is the periodic play-head progress tick. Time is the current
// position in seconds.
type TimeChanged struct {
	Time float64
}

// EventKind implementations.

func (Play) EventKind() Kind                        { return KindPlay }
func (Playing) EventKind() Kind                     { return KindPlaying }
func (Paused) EventKind() Kind                      { return KindPaused }
func (StallStarted) EventKind() Kind                { return KindStallStarted }
func (StallEnded) EventKind() Kind                  { return KindStallEnded }
func (PlaybackFinished) EventKind() Kind            { return KindPlaybackFinished }
func (Seek) EventKind() Kind                        { return KindSeek }
func (Seeked) EventKind() Kind                      { return KindSeeked }
func (TimeShift) EventKind() Kind                   { return KindTimeShift }
func (TimeShifted) EventKind() Kind                 { return KindTimeShifted }
func (Muted) EventKind() Kind                       { return KindMuted }
func (Unmuted) EventKind() Kind                     { return KindUnmuted }
func (SourceUnloaded) EventKind() Kind              { return KindSourceUnloaded }
func (PlayerError) EventKind() Kind                 { return KindPlayerError }
func (SourceError) EventKind() Kind                 { return KindSourceError }
func (PlayerWarning) EventKind() Kind               { return KindPlayerWarning }
func (SourceWarning) EventKind() Kind               { return KindSourceWarning }
func (AdBreakStarted) EventKind() Kind              { return KindAdBreakStarted }
func (AdBreakFinished) EventKind() Kind             { return KindAdBreakFinished }
func (AdStarted) EventKind() Kind                   { return KindAdStarted }
func (AdFinished) EventKind() Kind                  { return KindAdFinished }
func (AdSkipped) EventKind() Kind                   { return KindAdSkipped }
func (AdError) EventKind() Kind                     { return KindAdError }
func (VideoPlaybackQualityChanged) EventKind() Kind { return KindVideoPlaybackQualityChanged }
func (TimeChanged) EventKind() Kind                 { return KindTimeChanged }
