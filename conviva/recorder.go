// ConvivaBridge - Bitmovin Player to Conviva Analytics Integration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/convivabridge

package conviva

import "sync"

// SinkCall is one recorded sink operation.
type SinkCall struct {
	Channel  string
	Call     string
	Key      string
	Values   []any
	Info     map[string]any
	Name     string
	Message  string
	Severity ErrorSeverity
}

// Recorder is an in-memory sink double for tests. Its Video, Ad and App
// channels capture every call with its payload, in order.
type Recorder struct {
	mu          sync.Mutex
	calls       []SinkCall
	contentInfo map[string]any
	callback    func()
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{contentInfo: map[string]any{}}
}

// Video returns the recording VideoAnalytics channel.
func (r *Recorder) Video() VideoAnalytics { return &recorderVideo{r} }

// Ad returns the recording AdAnalytics channel.
func (r *Recorder) Ad() AdAnalytics { return &recorderAd{r} }

// App returns the recording AppAnalytics channel.
func (r *Recorder) App() AppAnalytics { return &recorderApp{r} }

// Calls returns a copy of all recorded calls in order.
func (r *Recorder) Calls() []SinkCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]SinkCall, len(r.calls))
	copy(out, r.calls)
	return out
}

// CallsNamed returns all recorded calls with the given call name.
func (r *Recorder) CallsNamed(call string) []SinkCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []SinkCall
	for _, c := range r.calls {
		if c.Call == call {
			out = append(out, c)
		}
	}
	return out
}

// MetricValues returns the values of every metric call on the given channel
// with the given key, in order.
func (r *Recorder) MetricValues(channel, key string) [][]any {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out [][]any
	for _, c := range r.calls {
		if c.Channel == channel && c.Key == key {
			out = append(out, c.Values)
		}
	}
	return out
}

// Last returns the most recent call with the given name.
func (r *Recorder) Last(call string) (SinkCall, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.calls) - 1; i >= 0; i-- {
		if r.calls[i].Call == call {
			return r.calls[i], true
		}
	}
	return SinkCall{}, false
}

// Reset discards all recorded calls and content info.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
	r.contentInfo = map[string]any{}
}

// InvokeCallback fires the registered ad callback once, standing in for the
// heartbeat ticker in tests.
func (r *Recorder) InvokeCallback() {
	r.mu.Lock()
	fn := r.callback
	r.mu.Unlock()
	if fn != nil {
		fn()
	}
}

func (r *Recorder) record(c SinkCall) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, c)
}

func (r *Recorder) mergeContentInfo(info map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for k, v := range info {
		r.contentInfo[k] = v
	}
}

type recorderVideo struct{ r *Recorder }

func (v *recorderVideo) ReportPlaybackRequested(contentInfo map[string]any) {
	v.r.mergeContentInfo(contentInfo)
	v.r.record(SinkCall{Channel: ChannelVideo, Call: CallPlaybackRequested, Info: copyInfo(contentInfo)})
}

func (v *recorderVideo) SetContentInfo(contentInfo map[string]any) {
	v.r.mergeContentInfo(contentInfo)
	v.r.record(SinkCall{Channel: ChannelVideo, Call: CallContentInfo, Info: copyInfo(contentInfo)})
}

func (v *recorderVideo) ReportPlaybackEnded() {
	v.r.record(SinkCall{Channel: ChannelVideo, Call: CallPlaybackEnded})
}

func (v *recorderVideo) ReportPlaybackError(message string, severity ErrorSeverity) {
	v.r.record(SinkCall{Channel: ChannelVideo, Call: CallPlaybackError, Message: message, Severity: severity})
}

func (v *recorderVideo) ReportPlaybackEvent(name string) {
	v.r.record(SinkCall{Channel: ChannelVideo, Call: CallPlaybackEvent, Name: name})
}

func (v *recorderVideo) ReportPlaybackMetric(key string, values ...any) {
	v.r.record(SinkCall{Channel: ChannelVideo, Call: CallPlaybackMetric, Key: key, Values: values})
}

func (v *recorderVideo) SetPlayerInfo(playerInfo map[string]any) {
	v.r.record(SinkCall{Channel: ChannelVideo, Call: CallPlayerInfo, Info: copyInfo(playerInfo)})
}

func (v *recorderVideo) ReportAdBreakStarted(adPlayer AdPlayer, adType AdType, adBreakInfo map[string]any) {
	v.r.record(SinkCall{
		Channel: ChannelVideo,
		Call:    CallAdBreakStarted,
		Values:  []any{string(adPlayer), string(adType)},
		Info:    copyInfo(adBreakInfo),
	})
}

func (v *recorderVideo) ReportAdBreakEnded() {
	v.r.record(SinkCall{Channel: ChannelVideo, Call: CallAdBreakEnded})
}

func (v *recorderVideo) MetadataInfo() map[string]any {
	v.r.mu.Lock()
	defer v.r.mu.Unlock()
	return copyInfo(v.r.contentInfo)
}

func (v *recorderVideo) Release() {}

type recorderAd struct{ r *Recorder }

func (a *recorderAd) ReportAdLoaded(adInfo map[string]any) {
	a.r.record(SinkCall{Channel: ChannelAd, Call: CallAdLoaded, Info: copyInfo(adInfo)})
}

func (a *recorderAd) ReportAdStarted(adInfo map[string]any) {
	a.r.record(SinkCall{Channel: ChannelAd, Call: CallAdStarted, Info: copyInfo(adInfo)})
}

func (a *recorderAd) ReportAdEnded() {
	a.r.record(SinkCall{Channel: ChannelAd, Call: CallAdEnded})
}

func (a *recorderAd) ReportAdSkipped() {
	a.r.record(SinkCall{Channel: ChannelAd, Call: CallAdSkipped})
}

func (a *recorderAd) ReportAdFailed(message string) {
	a.r.record(SinkCall{Channel: ChannelAd, Call: CallAdFailed, Message: message})
}

func (a *recorderAd) ReportAdError(message string, severity ErrorSeverity) {
	a.r.record(SinkCall{Channel: ChannelAd, Call: CallAdError, Message: message, Severity: severity})
}

func (a *recorderAd) ReportAdMetric(key string, values ...any) {
	a.r.record(SinkCall{Channel: ChannelAd, Call: CallAdMetric, Key: key, Values: values})
}

func (a *recorderAd) SetAdInfo(adInfo map[string]any) {
	a.r.record(SinkCall{Channel: ChannelAd, Call: CallAdInfo, Info: copyInfo(adInfo)})
}

func (a *recorderAd) SetAdPlayerInfo(playerInfo map[string]any) {
	a.r.record(SinkCall{Channel: ChannelAd, Call: CallAdPlayerInfo, Info: copyInfo(playerInfo)})
}

func (a *recorderAd) SetCallback(fn func()) {
	a.r.mu.Lock()
	defer a.r.mu.Unlock()
	a.r.callback = fn
}

func (a *recorderAd) Release() {}

type recorderApp struct{ r *Recorder }

func (p *recorderApp) ReportAppEvent(name string, attributes map[string]any) {
	p.r.record(SinkCall{Channel: ChannelApp, Call: CallAppEvent, Name: name, Info: copyInfo(attributes)})
}

func (p *recorderApp) ReportAppForegrounded() {
	p.r.record(SinkCall{Channel: ChannelApp, Call: CallAppForegrounded})
}

func (p *recorderApp) ReportAppBackgrounded() {
	p.r.record(SinkCall{Channel: ChannelApp, Call: CallAppBackgrounded})
}
