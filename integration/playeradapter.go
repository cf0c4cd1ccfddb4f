// ConvivaBridge - Bitmovin Player to Conviva Analytics Integration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/convivabridge

package integration

import (
	"math"

	"github.com/tomtom215/convivabridge/conviva"
	"github.com/tomtom215/convivabridge/player"
)

// PlayerAdapter projects raw player state into the sink's vocabulary.
// It is stateless; every method reads the player at call time.
type PlayerAdapter interface {
	// PlayerState maps the player's playback flags to a sink state.
	PlayerState() conviva.PlayerState

	// PlaybackVideoData returns the current video quality as metric
	// key to values. Keys with no known value are absent.
	PlaybackVideoData() map[string][]any

	// PlayHeadTimeMillis returns the current play-head position in
	// milliseconds. For live streams the position is relative to the
	// live window start.
	PlayHeadTimeMillis() int64

	// StreamTitle returns the loaded source title, or "".
	StreamTitle() string

	// StreamType classifies the loaded source, or "" without a source.
	StreamType() string

	// StreamURL returns the loaded source URL, or "".
	StreamURL() string
}

type defaultPlayerAdapter struct {
	player player.Player
}

// newPlayerAdapter wraps a player in the default adapter.
func newPlayerAdapter(p player.Player) PlayerAdapter {
	return &defaultPlayerAdapter{player: p}
}

func (a *defaultPlayerAdapter) PlayerState() conviva.PlayerState {
	switch {
	case a.player.IsPaused():
		return conviva.StatePaused
	case a.player.IsStalled():
		return conviva.StateBuffering
	default:
		return conviva.StatePlaying
	}
}

func (a *defaultPlayerAdapter) PlaybackVideoData() map[string][]any {
	out := map[string][]any{}
	quality := a.player.PlaybackVideoData()
	if quality == nil {
		return out
	}

	if quality.Width > 0 && quality.Height > 0 {
		out[conviva.MetricResolution] = []any{quality.Width, quality.Height}
	}
	if quality.PeakBitrate != player.BitrateNoValue {
		out[conviva.MetricBitrate] = []any{quality.PeakBitrate / 1000}
	}
	if quality.AverageBitrate != player.BitrateNoValue {
		out[conviva.MetricAvgBitrate] = []any{quality.AverageBitrate / 1000}
	}
	if quality.FrameRate > 0 {
		out[conviva.MetricRenderedFrameRate] = []any{int(math.Round(quality.FrameRate))}
	}
	return out
}

func (a *defaultPlayerAdapter) PlayHeadTimeMillis() int64 {
	if a.player.IsLive() {
		// Time shift values are negative seconds behind the live edge.
		// The play head is the offset from the earliest reachable
		// position, so the maximum shift anchors zero.
		windowStart := -int64(math.Round(a.player.MaxTimeShift() * 1000))
		position := -int64(math.Round(a.player.TimeShift() * 1000))
		return windowStart - position
	}
	return int64(math.Round(a.player.CurrentTime() * 1000))
}

func (a *defaultPlayerAdapter) StreamTitle() string {
	if source := a.player.Source(); source != nil {
		return source.Title
	}
	return ""
}

func (a *defaultPlayerAdapter) StreamType() string {
	if source := a.player.Source(); source != nil {
		return string(source.Type)
	}
	return ""
}

func (a *defaultPlayerAdapter) StreamURL() string {
	if source := a.player.Source(); source != nil {
		return source.URL
	}
	return ""
}
