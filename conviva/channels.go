// ConvivaBridge - Bitmovin Player to Conviva Analytics Integration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/convivabridge

package conviva

import (
	"sync"
	"time"
)

// videoAnalytics publishes content-session calls and mirrors the content
// metadata the sink would hold, so MetadataInfo can serve ad reporting.
type videoAnalytics struct {
	client *Client

	mu          sync.Mutex
	contentInfo map[string]any
	released    bool
}

func (v *videoAnalytics) ReportPlaybackRequested(contentInfo map[string]any) {
	v.mergeContentInfo(contentInfo)
	ev := v.newEvent(CallPlaybackRequested)
	ev.Info = copyInfo(contentInfo)
	v.publish(ev)
}

func (v *videoAnalytics) SetContentInfo(contentInfo map[string]any) {
	v.mergeContentInfo(contentInfo)
	ev := v.newEvent(CallContentInfo)
	ev.Info = copyInfo(contentInfo)
	v.publish(ev)
}

func (v *videoAnalytics) ReportPlaybackEnded() {
	v.publish(v.newEvent(CallPlaybackEnded))
}

func (v *videoAnalytics) ReportPlaybackError(message string, severity ErrorSeverity) {
	ev := v.newEvent(CallPlaybackError)
	ev.Message = message
	ev.Severity = string(severity)
	v.publish(ev)
}

func (v *videoAnalytics) ReportPlaybackEvent(name string) {
	ev := v.newEvent(CallPlaybackEvent)
	ev.Name = name
	v.publish(ev)
}

func (v *videoAnalytics) ReportPlaybackMetric(key string, values ...any) {
	ev := v.newEvent(CallPlaybackMetric)
	ev.Key = key
	ev.Values = values
	v.publish(ev)
}

func (v *videoAnalytics) SetPlayerInfo(playerInfo map[string]any) {
	ev := v.newEvent(CallPlayerInfo)
	ev.Info = copyInfo(playerInfo)
	v.publish(ev)
}

func (v *videoAnalytics) ReportAdBreakStarted(adPlayer AdPlayer, adType AdType, adBreakInfo map[string]any) {
	ev := v.newEvent(CallAdBreakStarted)
	ev.Values = []any{string(adPlayer), string(adType)}
	ev.Info = copyInfo(adBreakInfo)
	v.publish(ev)
}

func (v *videoAnalytics) ReportAdBreakEnded() {
	v.publish(v.newEvent(CallAdBreakEnded))
}

func (v *videoAnalytics) MetadataInfo() map[string]any {
	v.mu.Lock()
	defer v.mu.Unlock()
	return copyInfo(v.contentInfo)
}

func (v *videoAnalytics) Release() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.released = true
}

func (v *videoAnalytics) newEvent(call string) *TelemetryEvent {
	return NewTelemetryEvent(v.client.cfg.CustomerKey, ChannelVideo, call)
}

// publish drops the event once the channel has been released, keeping the
// no-op promise on every reporting method.
func (v *videoAnalytics) publish(ev *TelemetryEvent) {
	v.mu.Lock()
	released := v.released
	v.mu.Unlock()
	if released {
		return
	}
	v.client.publish(ev)
}

func (v *videoAnalytics) mergeContentInfo(info map[string]any) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for k, val := range info {
		v.contentInfo[k] = val
	}
}

// adAnalytics publishes ad-channel calls and owns the heartbeat goroutine
// driving the registered callback.
type adAnalytics struct {
	client *Client

	mu        sync.Mutex
	callback  func()
	ticking   bool
	released  bool
	stop      chan struct{}
	closeOnce sync.Once
}

func (a *adAnalytics) ReportAdLoaded(adInfo map[string]any) {
	ev := a.newEvent(CallAdLoaded)
	ev.Info = copyInfo(adInfo)
	a.publish(ev)
}

func (a *adAnalytics) ReportAdStarted(adInfo map[string]any) {
	ev := a.newEvent(CallAdStarted)
	ev.Info = copyInfo(adInfo)
	a.publish(ev)
}

func (a *adAnalytics) ReportAdEnded() {
	a.publish(a.newEvent(CallAdEnded))
}

func (a *adAnalytics) ReportAdSkipped() {
	a.publish(a.newEvent(CallAdSkipped))
}

func (a *adAnalytics) ReportAdFailed(message string) {
	ev := a.newEvent(CallAdFailed)
	ev.Message = message
	a.publish(ev)
}

func (a *adAnalytics) ReportAdError(message string, severity ErrorSeverity) {
	ev := a.newEvent(CallAdError)
	ev.Message = message
	ev.Severity = string(severity)
	a.publish(ev)
}

func (a *adAnalytics) ReportAdMetric(key string, values ...any) {
	ev := a.newEvent(CallAdMetric)
	ev.Key = key
	ev.Values = values
	a.publish(ev)
}

func (a *adAnalytics) SetAdInfo(adInfo map[string]any) {
	ev := a.newEvent(CallAdInfo)
	ev.Info = copyInfo(adInfo)
	a.publish(ev)
}

func (a *adAnalytics) SetAdPlayerInfo(playerInfo map[string]any) {
	ev := a.newEvent(CallAdPlayerInfo)
	ev.Info = copyInfo(playerInfo)
	a.publish(ev)
}

// SetCallback registers the heartbeat callback and starts the ticker on
// first registration. The callback runs on the heartbeat goroutine.
func (a *adAnalytics) SetCallback(fn func()) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.callback = fn
	if a.ticking || a.released || fn == nil {
		return
	}
	a.ticking = true
	go a.heartbeat()
}

func (a *adAnalytics) heartbeat() {
	ticker := time.NewTicker(a.client.cfg.HeartbeatInterval)
	defer ticker.Stop()
	for {
		select {
		case <-a.stop:
			return
		case <-ticker.C:
			a.mu.Lock()
			fn := a.callback
			a.mu.Unlock()
			if fn != nil {
				fn()
			}
		}
	}
}

func (a *adAnalytics) Release() {
	a.mu.Lock()
	a.released = true
	a.callback = nil
	a.mu.Unlock()
	a.closeOnce.Do(func() { close(a.stop) })
}

func (a *adAnalytics) newEvent(call string) *TelemetryEvent {
	return NewTelemetryEvent(a.client.cfg.CustomerKey, ChannelAd, call)
}

func (a *adAnalytics) publish(ev *TelemetryEvent) {
	a.mu.Lock()
	released := a.released
	a.mu.Unlock()
	if released {
		return
	}
	a.client.publish(ev)
}

// copyInfo shallow-copies a metadata dictionary. nil stays nil so optional
// payloads keep their absence on the wire.
func copyInfo(info map[string]any) map[string]any {
	if info == nil {
		return nil
	}
	out := make(map[string]any, len(info))
	for k, v := range info {
		out[k] = v
	}
	return out
}
