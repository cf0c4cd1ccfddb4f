// ConvivaBridge - Bitmovin Player to Conviva Analytics Integration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/convivabridge

// Package player defines the contract the bridge expects from the host
// video player: a read-only query surface plus a synchronous event emitter.
//
// The bridge never drives the player. It observes the queries and events
// defined here and translates them into analytics sink calls. Any player
// implementation satisfying Player can be attached to the integration.
package player

// BitrateNoValue marks an unknown bitrate in VideoQuality.
const BitrateNoValue = -1

// SourceType identifies the stream packaging of a source.
type SourceType string

// Source types.
const (
	SourceTypeDash        SourceType = "Dash"
	SourceTypeHLS         SourceType = "Hls"
	SourceTypeSmooth      SourceType = "Smooth"
	SourceTypeProgressive SourceType = "Progressive"
)

// Source describes the currently loaded stream.
type Source struct {
	Title string
	URL   string
	Type  SourceType
}

// VideoQuality describes the currently rendered video quality.
type VideoQuality struct {
	Width  int
	Height int

	// PeakBitrate and AverageBitrate are in bits per second, or
	// BitrateNoValue when unknown.
	PeakBitrate    int
	AverageBitrate int

	FrameRate float64
}

// AdSourceType identifies the framework serving a client-side ad.
type AdSourceType string

// Ad source types.
const (
	AdSourceIMA         AdSourceType = "Ima"
	AdSourceProgressive AdSourceType = "Progressive"
	AdSourceUnknown     AdSourceType = "Unknown"
)

// Ad describes a client-side ad creative.
type Ad struct {
	ID           string
	Width        int
	Height       int
	MediaFileURL string
	Data         *AdData
}

// AdData carries technical ad metadata. Vast is set for VAST-served ads.
type AdData struct {
	// Bitrate is in kbps, or 0 when unknown.
	Bitrate int
	Vast    *VastAdData
}

// VastAdData carries VAST-specific ad metadata. Wrapper lists are ordered
// innermost first; the outermost wrapper is the last element.
type VastAdData struct {
	AdTitle            string
	AdDescription      string
	AdSystem           *AdSystem
	Creative           *AdCreative
	WrapperAdSystems   []AdSystem
	WrapperAdIDs       []string
	WrapperCreativeIDs []string
}

// AdSystem names the ad server that produced an ad.
type AdSystem struct {
	Name    string
	Version string
}

// AdCreative identifies the creative inside a VAST response.
type AdCreative struct {
	ID string
}

// Player is the read-only facade plus event source the bridge consumes.
//
// Duration returns seconds and is +Inf for live streams. CurrentTime,
// TimeShift and MaxTimeShift are in seconds; time-shift values are
// negative offsets from the live edge, with MaxTimeShift marking the far
// end of the DVR window.
type Player interface {
	// Source returns the currently loaded source, or nil.
	Source() *Source

	IsLive() bool
	IsPaused() bool
	IsPlaying() bool
	IsStalled() bool

	// IsAd reports whether a client-side ad is currently the active
	// playback unit.
	IsAd() bool

	Duration() float64
	CurrentTime() float64
	TimeShift() float64
	MaxTimeShift() float64

	// PlaybackVideoData returns the active video quality, or nil when no
	// quality information is available yet.
	PlaybackVideoData() *VideoQuality

	// Version returns the player SDK version string.
	Version() string

	// WithEventEmitter grants scoped access to the player's event
	// emitter, used by the integration to attach and detach listeners
	// without leaking the concrete player type.
	WithEventEmitter(fn func(*Emitter))
}
