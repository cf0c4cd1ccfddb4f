// ConvivaBridge - Bitmovin Player to Conviva Analytics Integration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/convivabridge

package integration

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/convivabridge/conviva"
	"github.com/tomtom215/convivabridge/integration/ssai"
	"github.com/tomtom215/convivabridge/internal/logging"
	"github.com/tomtom215/convivabridge/internal/metrics"
	"github.com/tomtom215/convivabridge/player"
)

// Version is reported in the integrationVersion content tag.
const Version = "1.0.0"

// defaultStateDebounce is how long Paused, StallEnded and SourceUnloaded
// transitions wait for a superseding Error event. Players have been seen
// emitting these before the Error that caused them on connectivity loss.
const defaultStateDebounce = 100 * time.Millisecond

// defaultPlayerName is reported as the player framework name.
const defaultPlayerName = "Bitmovin Player"

// ErrAssetNameMissing is returned by InitializeSession when neither the
// attached player's source nor the metadata overrides provide an asset
// name. It is the one precondition the integration refuses to degrade on.
var ErrAssetNameMissing = errors.New("integration: asset name missing, set an asset name override or load a source before initializing")

var log = logging.With().Str("component", "integration").Logger()

// Options tunes an Integration.
type Options struct {
	// PlayerName is reported as the player framework name.
	// Default: "Bitmovin Player".
	PlayerName string

	// StateDebounce is the deferral delay for transitions that can be
	// superseded by a late Error event. Zero means the default of
	// 100ms; a negative value disables deferral entirely for players
	// with guaranteed event ordering.
	StateDebounce time.Duration
}

func (o Options) withDefaults() Options {
	if o.PlayerName == "" {
		o.PlayerName = defaultPlayerName
	}
	if o.StateDebounce == 0 {
		o.StateDebounce = defaultStateDebounce
	}
	return o
}

// Integration owns the analytics session for one player. It subscribes to
// player events, reconciles them into the sink's session and state model,
// and exposes the manual reporting surface the host application drives.
//
// Create it, attach the player before loading a source, and Release it
// when the player is destroyed.
type Integration struct {
	video conviva.VideoAnalytics
	ad    conviva.AdAnalytics
	app   conviva.AppAnalytics
	sink  *conviva.Client

	opts     Options
	builder  *contentMetadataBuilder
	deferrer *deferrer
	ssai     *ssai.API
	log      zerolog.Logger

	// mu serializes event handlers against the public API. Handlers
	// arrive on the player's emitter goroutine, public calls on the
	// application's.
	mu sync.Mutex

	player     player.Player
	adapter    PlayerAdapter
	offs       []func()
	sdkVersion string

	sessionActive    bool
	adStarted        bool
	backgrounded     bool
	trackingIsBumper bool
	overrides        *MetadataOverrides
	released         bool
}

// New creates an Integration backed by the given sink client. The video,
// ad and app reporting channels are built from the client; Release with
// releaseSink true tears the client down as well.
func New(client *conviva.Client, opts Options) *Integration {
	video := client.BuildVideoAnalytics()
	i := newIntegration(video, client.BuildAdAnalytics(video), client, opts)
	i.sink = client
	return i
}

// NewWithAnalytics creates an Integration on explicit reporting channels.
// app may be nil when application-level events are not reported.
func NewWithAnalytics(video conviva.VideoAnalytics, ad conviva.AdAnalytics, app conviva.AppAnalytics, opts Options) *Integration {
	return newIntegration(video, ad, app, opts)
}

func newIntegration(video conviva.VideoAnalytics, ad conviva.AdAnalytics, app conviva.AppAnalytics, opts Options) *Integration {
	opts = opts.withDefaults()
	i := &Integration{
		video:    video,
		ad:       ad,
		app:      app,
		opts:     opts,
		builder:  newContentMetadataBuilder(),
		deferrer: newDeferrer(opts.StateDebounce),
		ssai:     ssai.New(video, ad),
		log:      log,
	}
	ad.SetCallback(i.onAdHeartbeat)
	return i
}

// Ssai returns the server-side ad reporting facade.
func (i *Integration) Ssai() *ssai.API { return i.ssai }

// AttachPlayer binds the player and subscribes to its events. Attach
// before loading a source; events fired before attaching are lost. Only
// one player can ever be attached.
func (i *Integration) AttachPlayer(p player.Player) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.player != nil {
		i.log.Warn().Msg("Player already attached, ignoring")
		return
	}
	if p.Source() != nil {
		i.log.Warn().Msg("Player has a source loaded. Attach the integration before loading to avoid missing events.")
	}

	i.player = p
	i.adapter = newPlayerAdapter(p)
	i.sdkVersion = p.Version()
	i.ssai.SetPlayer(i.adapter)
	p.WithEventEmitter(i.attachHandlers)
}

// InitializeSession starts the monitoring session explicitly, ahead of
// the Play event. Returns ErrAssetNameMissing when no asset name can be
// resolved from the player source or the overrides. No-op while a
// session is active.
func (i *Integration) InitializeSession() error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.sessionActive {
		return nil
	}
	if i.resolveAssetName() == "" {
		return ErrAssetNameMissing
	}
	i.internalInitializeSession()
	return nil
}

// EndSession ends the monitoring session explicitly. Without an active
// session it still clears all accumulated metadata.
func (i *Integration) EndSession() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.internalEndSession()
}

// UpdateContentMetadata applies application metadata overrides. Before a
// session starts they are held and applied at session start; during a
// session only the dynamic fields take effect.
func (i *Integration) UpdateContentMetadata(overrides MetadataOverrides) {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.overrides = &overrides
	i.builder.SetOverrides(overrides)

	if !i.sessionActive {
		i.log.Debug().Msg("No active session. Metadata will be applied at session start.")
		return
	}
	i.createContentMetadata()
	i.updateSession()
}

// PauseTracking reports a tracking interruption. isBumper marks bumper
// video playback; otherwise the interruption counts as user wait time.
func (i *Integration) PauseTracking(isBumper bool) {
	i.mu.Lock()
	defer i.mu.Unlock()

	i.trackingIsBumper = isBumper
	name := conviva.EventUserWaitStarted
	if isBumper {
		name = conviva.EventBumperVideoStarted
	}
	i.log.Debug().Str("event", name).Msg("Tracking paused")
	i.video.ReportPlaybackEvent(name)
}

// ResumeTracking ends the interruption reported by the last PauseTracking.
func (i *Integration) ResumeTracking() {
	i.mu.Lock()
	defer i.mu.Unlock()

	name := conviva.EventUserWaitEnded
	if i.trackingIsBumper {
		name = conviva.EventBumperVideoEnded
	}
	i.log.Debug().Str("event", name).Msg("Tracking resumed")
	i.video.ReportPlaybackEvent(name)
	i.trackingIsBumper = false
}

// ReportPlaybackDeficiency reports a playback problem the integration
// cannot observe from player events. endSession ends the session after
// reporting; pass true for fatal problems. No-op without an active
// session.
func (i *Integration) ReportPlaybackDeficiency(message string, severity conviva.ErrorSeverity, endSession bool) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if !i.sessionActive {
		i.log.Debug().Msg("No active session, deficiency not reported")
		if endSession {
			i.internalEndSession()
		}
		return
	}
	i.video.ReportPlaybackError(message, severity)
	if endSession {
		i.internalEndSession()
	}
}

// SendCustomApplicationEvent reports an application-level event,
// independent of any session.
func (i *Integration) SendCustomApplicationEvent(name string, attributes map[string]any) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.app == nil {
		i.log.Warn().Str("event", name).Msg("No app analytics channel configured")
		return
	}
	i.app.ReportAppEvent(name, attributes)
}

// SendCustomPlaybackEvent reports a named event on the active session.
// No-op without an active session.
func (i *Integration) SendCustomPlaybackEvent(name string) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if !i.sessionActive {
		i.log.Debug().Str("event", name).Msg("No active session, event not reported")
		return
	}
	i.video.ReportPlaybackEvent(name)
}

// ReportAppBackgrounded signals the host app left the foreground. Latched;
// repeated calls report once.
func (i *Integration) ReportAppBackgrounded() {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.backgrounded || i.app == nil {
		return
	}
	i.backgrounded = true
	i.app.ReportAppBackgrounded()
}

// ReportAppForegrounded signals the host app returned to the foreground.
// Only reported after a matching ReportAppBackgrounded.
func (i *Integration) ReportAppForegrounded() {
	i.mu.Lock()
	defer i.mu.Unlock()
	if !i.backgrounded || i.app == nil {
		return
	}
	i.backgrounded = false
	i.app.ReportAppForegrounded()
}

// Release ends any active session, detaches from the player and frees the
// reporting channels. releaseSink also tears down the sink client when
// the Integration owns one. Safe to call more than once.
func (i *Integration) Release(releaseSink bool) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.released {
		return
	}
	i.released = true

	i.internalEndSession()
	for _, off := range i.offs {
		off()
	}
	i.offs = nil
	i.player = nil
	i.adapter = nil

	i.ad.Release()
	i.video.Release()
	if releaseSink && i.sink != nil {
		if err := i.sink.Release(); err != nil {
			i.log.Error().Err(err).Msg("Sink release failed")
		}
	}
}

// attachHandlers subscribes every event handler on the player's emitter.
// Runs under i.mu from AttachPlayer.
func (i *Integration) attachHandlers(em *player.Emitter) {
	on := func(k player.Kind, fn func(player.Event)) {
		i.offs = append(i.offs, em.On(k, fn))
	}

	on(player.KindPlay, i.onPlay)
	on(player.KindPlaying, i.onPlaying)
	on(player.KindPaused, i.onPaused)
	on(player.KindStallStarted, i.onStallStarted)
	on(player.KindStallEnded, i.onStallEnded)
	on(player.KindPlaybackFinished, i.onPlaybackFinished)
	on(player.KindSeek, i.onSeek)
	on(player.KindSeeked, i.onSeeked)
	on(player.KindTimeShift, i.onTimeShift)
	on(player.KindTimeShifted, i.onTimeShifted)
	on(player.KindMuted, i.onToggleEvent)
	on(player.KindUnmuted, i.onToggleEvent)
	on(player.KindSourceUnloaded, i.onSourceUnloaded)
	on(player.KindPlayerError, i.onError)
	on(player.KindSourceError, i.onError)
	on(player.KindPlayerWarning, i.onWarning)
	on(player.KindSourceWarning, i.onWarning)
	on(player.KindAdBreakStarted, i.onAdBreakStarted)
	on(player.KindAdBreakFinished, i.onAdBreakFinished)
	on(player.KindAdStarted, i.onAdStarted)
	on(player.KindAdFinished, i.onAdFinished)
	on(player.KindAdSkipped, i.onAdSkipped)
	on(player.KindAdError, i.onAdError)
	on(player.KindVideoPlaybackQualityChanged, i.onVideoPlaybackQualityChanged)
	on(player.KindTimeChanged, i.onTimeChanged)
}

func (i *Integration) onPlay(player.Event) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.log.Debug().Msg("On play")
	i.internalInitializeSession()
	i.createContentMetadata()
	i.updateSession()
}

func (i *Integration) onPlaying(player.Event) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.log.Debug().Msg("On playing")
	i.builder.SetPlaybackStarted(true)
	i.updateSession()
	i.transitionState(conviva.StatePlaying)
}

// onPaused defers the transition so a trailing Error can cancel it. The
// player emits Paused before Error on some connectivity failures.
func (i *Integration) onPaused(player.Event) {
	i.log.Debug().Msg("On paused")
	i.deferrer.Schedule(string(player.KindPaused), func() {
		i.mu.Lock()
		defer i.mu.Unlock()
		i.transitionState(conviva.StatePaused)
	})
}

func (i *Integration) onStallStarted(player.Event) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.log.Debug().Msg("On stall started")
	i.transitionState(conviva.StateBuffering)
}

// onStallEnded defers like onPaused; see the Paused handler.
func (i *Integration) onStallEnded(player.Event) {
	i.log.Debug().Msg("On stall ended")
	i.deferrer.Schedule(string(player.KindStallEnded), func() {
		i.mu.Lock()
		defer i.mu.Unlock()
		if i.player != nil && i.player.IsPaused() {
			i.transitionState(conviva.StatePaused)
			return
		}
		i.transitionState(conviva.StatePlaying)
	})
}

func (i *Integration) onPlaybackFinished(player.Event) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.log.Debug().Msg("On playback finished")
	i.transitionState(conviva.StateStopped)
	i.internalEndSession()
}

func (i *Integration) onSeek(ev player.Event) {
	i.mu.Lock()
	defer i.mu.Unlock()
	seek, ok := ev.(player.Seek)
	if !ok {
		return
	}
	i.seekStart(int64(math.Round(seek.To * 1000)))
}

func (i *Integration) onSeeked(player.Event) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.seekEnd()
}

// onTimeShift reports the live seek with the -1 sentinel: the sink wants
// a target position and a live time shift has no absolute one.
func (i *Integration) onTimeShift(player.Event) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.seekStart(-1)
}

func (i *Integration) onTimeShifted(player.Event) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.seekEnd()
}

func (i *Integration) onToggleEvent(ev player.Event) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if !i.sessionActive {
		return
	}
	i.video.ReportPlaybackEvent("on" + string(ev.EventKind()))
}

// onSourceUnloaded defers the session end so a trailing Error can report
// first; ending on the Error path cancels this.
func (i *Integration) onSourceUnloaded(player.Event) {
	i.log.Debug().Msg("On source unloaded")
	i.deferrer.Schedule(string(player.KindSourceUnloaded), func() {
		i.mu.Lock()
		defer i.mu.Unlock()
		i.internalEndSession()
	})
}

func (i *Integration) onError(ev player.Event) {
	i.mu.Lock()
	defer i.mu.Unlock()

	var code int
	var message string
	switch e := ev.(type) {
	case player.PlayerError:
		code, message = e.Code, e.Message
	case player.SourceError:
		code, message = e.Code, e.Message
	default:
		return
	}

	// The error supersedes any pending deferred transition.
	i.deferrer.CancelAll()
	i.log.Debug().Int("code", code).Str("message", message).Msg("On error")

	if !i.sessionActive {
		i.internalInitializeSession()
	}
	i.video.ReportPlaybackError(fmt.Sprintf("%d - %s", code, message), conviva.SeverityFatal)
	i.internalEndSession()
}

func (i *Integration) onWarning(ev player.Event) {
	i.mu.Lock()
	defer i.mu.Unlock()

	var code int
	var message string
	switch e := ev.(type) {
	case player.PlayerWarning:
		code, message = e.Code, e.Message
	case player.SourceWarning:
		code, message = e.Code, e.Message
	default:
		return
	}

	i.log.Debug().Int("code", code).Str("message", message).Msg("On warning")
	i.internalInitializeSession()
	i.video.ReportPlaybackError(fmt.Sprintf("%d - %s", code, message), conviva.SeverityWarning)
}

// onAdBreakStarted lazily initializes the session: pre-roll ad breaks
// fire before the first Play event.
func (i *Integration) onAdBreakStarted(player.Event) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.log.Debug().Msg("On ad break started")
	i.internalInitializeSession()
	metrics.RecordAdBreak("client_side")
	i.video.ReportAdBreakStarted(conviva.AdPlayerContent, conviva.AdTypeClientSide, nil)
}

func (i *Integration) onAdBreakFinished(player.Event) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.log.Debug().Msg("On ad break finished")
	i.video.ReportAdBreakEnded()
}

func (i *Integration) onAdStarted(ev player.Event) {
	i.mu.Lock()
	defer i.mu.Unlock()

	event, ok := ev.(player.AdStarted)
	if !ok {
		return
	}
	i.log.Debug().Msg("On ad started")

	name, version := i.adFramework(event.Client)
	duration := 0.0
	if i.player != nil {
		duration = i.player.Duration()
	}

	adInfo := buildAdInfo(event, i.video.MetadataInfo(), duration, name, version)
	i.ad.SetAdPlayerInfo(map[string]any{
		conviva.KeyFrameworkName:    name,
		conviva.KeyFrameworkVersion: version,
	})
	i.ad.ReportAdLoaded(adInfo)
	i.ad.ReportAdStarted(adInfo)
	i.adStarted = true

	if i.adapter != nil {
		i.ad.ReportAdMetric(conviva.MetricPlayerState, i.adapter.PlayerState())
		for key, values := range i.adapter.PlaybackVideoData() {
			i.ad.ReportAdMetric(key, values...)
		}
	}
}

func (i *Integration) onAdFinished(player.Event) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.log.Debug().Msg("On ad finished")
	i.adStarted = false
	i.ad.ReportAdEnded()
}

func (i *Integration) onAdSkipped(player.Event) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.log.Debug().Msg("On ad skipped")
	i.adStarted = false
	i.ad.ReportAdSkipped()
}

func (i *Integration) onAdError(ev player.Event) {
	i.mu.Lock()
	defer i.mu.Unlock()

	message := "Unknown ad error"
	if e, ok := ev.(player.AdError); ok && e.Message != "" {
		message = e.Message
	}
	i.log.Debug().Str("message", message).Msg("On ad error")
	i.adStarted = false
	i.ad.ReportAdFailed(message)
}

func (i *Integration) onVideoPlaybackQualityChanged(player.Event) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.log.Debug().Msg("On video quality changed")
	i.createContentMetadata()
	i.updateSession()
}

func (i *Integration) onTimeChanged(player.Event) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if !i.sessionActive || i.adapter == nil {
		return
	}
	i.video.ReportPlaybackMetric(conviva.MetricPlayHeadTime, i.adapter.PlayHeadTimeMillis())
}

// onAdHeartbeat is invoked by the ad channel's callback cadence and keeps
// the ad-side play-head current while an ad is the active playback unit.
func (i *Integration) onAdHeartbeat() {
	i.mu.Lock()
	defer i.mu.Unlock()
	if !i.sessionActive || i.adapter == nil || !i.isAdActive() {
		return
	}
	i.ad.ReportAdMetric(conviva.MetricPlayHeadTime, i.adapter.PlayHeadTimeMillis())
}

// internalInitializeSession starts the sink session. No-op while active.
// Caller holds i.mu.
func (i *Integration) internalInitializeSession() {
	if i.sessionActive {
		return
	}
	i.log.Debug().Msg("Initializing session")

	i.createContentMetadata()
	if i.overrides != nil {
		// Overrides supplied before session start are replayed so the
		// requested metadata already carries them.
		i.builder.SetOverrides(*i.overrides)
	}

	i.video.ReportPlaybackRequested(i.builder.Build())
	i.reportPlayerInfo()
	if i.adapter != nil {
		i.video.ReportPlaybackMetric(conviva.MetricPlayerState, i.adapter.PlayerState())
	}

	i.sessionActive = true
	metrics.RecordSessionStarted()
	i.updateSession()
}

// internalEndSession ends the sink session. Metadata and ad state are
// cleared even without an active session so nothing leaks into the next
// one. Caller holds i.mu.
func (i *Integration) internalEndSession() {
	i.deferrer.CancelAll()
	i.ssai.Reset()
	i.adStarted = false
	i.builder.Reset()

	if !i.sessionActive {
		return
	}
	i.log.Debug().Msg("Ending session")
	i.video.ReportPlaybackEnded()
	i.sessionActive = false
	metrics.RecordSessionEnded()
}

// createContentMetadata refreshes the builder's derived values from the
// player. Caller holds i.mu.
func (i *Integration) createContentMetadata() {
	if i.adapter == nil {
		return
	}

	if title := i.adapter.StreamTitle(); title != "" {
		i.builder.SetAssetName(title)
	}
	if url := i.adapter.StreamURL(); url != "" {
		i.builder.SetStreamURL(url)
	}

	custom := map[string]string{conviva.TagIntegrationVersion: Version}
	if streamType := i.adapter.StreamType(); streamType != "" {
		custom[conviva.TagStreamType] = streamType
	}
	i.builder.SetCustom(custom)

	if i.player != nil {
		if i.player.IsLive() {
			i.builder.SetStreamType(conviva.StreamTypeLive)
		} else {
			i.builder.SetStreamType(conviva.StreamTypeVOD)
			if duration := i.player.Duration(); duration > 0 {
				i.builder.SetDuration(int(math.Round(duration)))
			}
		}
		if quality := i.player.PlaybackVideoData(); quality != nil && quality.FrameRate > 0 {
			i.builder.SetEncodedFrameRate(int(math.Round(quality.FrameRate)))
		}
	}
}

// updateSession pushes the rebuilt metadata and current video quality to
// the sink. Caller holds i.mu.
func (i *Integration) updateSession() {
	if !i.sessionActive {
		return
	}

	i.video.SetContentInfo(i.builder.Build())

	if i.adapter == nil {
		return
	}
	adActive := i.isAdActive()
	for key, values := range i.adapter.PlaybackVideoData() {
		i.video.ReportPlaybackMetric(key, values...)
		if adActive {
			i.ad.ReportAdMetric(key, values...)
		}
	}
}

// transitionState reports a player state on the content session and, when
// an ad is the active playback unit, mirrors it to the ad channel so the
// two stay in lockstep. Caller holds i.mu.
func (i *Integration) transitionState(state conviva.PlayerState) {
	if !i.sessionActive {
		return
	}
	i.log.Debug().Str("state", string(state)).Msg("Transitioning player state")
	i.video.ReportPlaybackMetric(conviva.MetricPlayerState, state)
	if i.isAdActive() {
		i.ad.ReportAdMetric(conviva.MetricPlayerState, state)
	}
	metrics.RecordStateTransition(string(state))
}

// seekStart reports a seek or time shift beginning. A seek always implies
// rebuffering, so the state moves to BUFFERING. Caller holds i.mu.
func (i *Integration) seekStart(targetMillis int64) {
	if !i.sessionActive {
		return
	}
	i.video.ReportPlaybackMetric(conviva.MetricSeekStarted, targetMillis)
	i.transitionState(conviva.StateBuffering)
}

// seekEnd reports a seek or time shift completion. Caller holds i.mu.
func (i *Integration) seekEnd() {
	if !i.sessionActive {
		return
	}
	i.video.ReportPlaybackMetric(conviva.MetricSeekEnded)
	if i.player != nil && i.player.IsPlaying() {
		i.transitionState(conviva.StatePlaying)
		return
	}
	i.transitionState(conviva.StatePaused)
}

// isAdActive reports whether an ad is the active playback unit, by the
// client-side ad flag, the player's own ad flag or the SSAI break flag.
// Caller holds i.mu.
func (i *Integration) isAdActive() bool {
	if i.adStarted {
		return true
	}
	if i.player != nil && i.player.IsAd() {
		return true
	}
	return i.ssai.IsAdBreakActive()
}

// resolveAssetName applies the override-else-source precedence for the
// InitializeSession precondition. Caller holds i.mu.
func (i *Integration) resolveAssetName() string {
	if i.overrides != nil && i.overrides.AssetName != nil && *i.overrides.AssetName != "" {
		return *i.overrides.AssetName
	}
	if name := i.builder.AssetName(); name != "" {
		return name
	}
	if i.adapter != nil {
		return i.adapter.StreamTitle()
	}
	return ""
}

// reportPlayerInfo declares the player framework to the sink. Caller
// holds i.mu.
func (i *Integration) reportPlayerInfo() {
	version := i.sdkVersion
	if version == "" {
		version = conviva.ValueNA
	}
	i.video.SetPlayerInfo(map[string]any{
		conviva.KeyFrameworkName:    i.opts.PlayerName,
		conviva.KeyFrameworkVersion: version,
	})
}

// adFramework resolves the framework name and version reported for a
// client-side ad.
func (i *Integration) adFramework(client player.AdSourceType) (name, version string) {
	if client == player.AdSourceIMA {
		version = conviva.ValueNA
		if v := i.builder.ImaSdkVersion(); v != "" {
			version = v
		}
		return "Google IMA SDK", version
	}
	version = i.sdkVersion
	if version == "" {
		version = conviva.ValueNA
	}
	return i.opts.PlayerName, version
}
