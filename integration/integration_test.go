// ConvivaBridge - Bitmovin Player to Conviva Analytics Integration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/convivabridge

package integration

import (
	"math"
	"testing"
	"time"

	"github.com/tomtom215/convivabridge/conviva"
	"github.com/tomtom215/convivabridge/integration/ssai"
	"github.com/tomtom215/convivabridge/player"
)

// newTestIntegration wires an Integration to a recorder and a fresh fake
// player. Deferral is disabled so handlers run inline; tests exercising
// the deferral pass their own debounce.
func newTestIntegration(t *testing.T, opts Options) (*Integration, *conviva.Recorder, *fakePlayer) {
	t.Helper()
	if opts.StateDebounce == 0 {
		opts.StateDebounce = -1
	}
	rec := conviva.NewRecorder()
	i := NewWithAnalytics(rec.Video(), rec.Ad(), rec.App(), opts)
	p := newFakePlayer()
	p.source = &player.Source{
		Title: "Art of Motion",
		URL:   "https://cdn.example.com/art-of-motion.mpd",
		Type:  player.SourceTypeDash,
	}
	i.AttachPlayer(p)
	return i, rec, p
}

func lastStateOn(rec *conviva.Recorder, channel string) (conviva.PlayerState, bool) {
	states := rec.MetricValues(channel, conviva.MetricPlayerState)
	if len(states) == 0 {
		return "", false
	}
	last := states[len(states)-1]
	state, ok := last[0].(conviva.PlayerState)
	return state, ok
}

func TestSessionLifecycle(t *testing.T) {
	_, rec, p := newTestIntegration(t, Options{})

	p.emitter.Emit(player.Play{})

	requested := rec.CallsNamed(conviva.CallPlaybackRequested)
	if len(requested) != 1 {
		t.Fatalf("Expected 1 playback requested call, got %d", len(requested))
	}
	if requested[0].Info[conviva.KeyAssetName] != "Art of Motion" {
		t.Errorf("Expected source title as asset name, got %v", requested[0].Info[conviva.KeyAssetName])
	}
	if requested[0].Info[conviva.TagIntegrationVersion] != Version {
		t.Errorf("Expected integration version tag, got %v", requested[0].Info[conviva.TagIntegrationVersion])
	}
	if info, ok := rec.Last(conviva.CallPlayerInfo); !ok {
		t.Error("Expected player info to be declared at session start")
	} else if info.Info[conviva.KeyFrameworkName] != defaultPlayerName {
		t.Errorf("Expected default player name, got %v", info.Info[conviva.KeyFrameworkName])
	}

	p.playing = true
	p.emitter.Emit(player.Playing{})

	if state, _ := lastStateOn(rec, conviva.ChannelVideo); state != conviva.StatePlaying {
		t.Errorf("Expected PLAYING after playing event, got %v", state)
	}

	// Static metadata is locked once playing.
	p.source.Title = "Renamed"
	p.emitter.Emit(player.VideoPlaybackQualityChanged{})
	if last, ok := rec.Last(conviva.CallContentInfo); ok {
		if last.Info[conviva.KeyAssetName] != "Art of Motion" {
			t.Errorf("Expected locked asset name, got %v", last.Info[conviva.KeyAssetName])
		}
	}

	p.emitter.Emit(player.PlaybackFinished{})

	if state, _ := lastStateOn(rec, conviva.ChannelVideo); state != conviva.StateStopped {
		t.Errorf("Expected STOPPED after playback finished, got %v", state)
	}
	if len(rec.CallsNamed(conviva.CallPlaybackEnded)) != 1 {
		t.Error("Expected playback ended call")
	}

	// A second Play starts a clean new session.
	p.emitter.Emit(player.Play{})
	requested = rec.CallsNamed(conviva.CallPlaybackRequested)
	if len(requested) != 2 {
		t.Errorf("Expected a second playback requested call, got %d", len(requested))
	}
}

func TestPlayIsIdempotentWhileActive(t *testing.T) {
	_, rec, p := newTestIntegration(t, Options{})

	p.emitter.Emit(player.Play{})
	p.emitter.Emit(player.Play{})

	if got := len(rec.CallsNamed(conviva.CallPlaybackRequested)); got != 1 {
		t.Errorf("Expected 1 playback requested call, got %d", got)
	}
}

func TestInitializeSessionPrecondition(t *testing.T) {
	rec := conviva.NewRecorder()
	i := NewWithAnalytics(rec.Video(), rec.Ad(), rec.App(), Options{StateDebounce: -1})

	if err := i.InitializeSession(); err != ErrAssetNameMissing {
		t.Fatalf("Expected ErrAssetNameMissing, got %v", err)
	}
	if got := len(rec.CallsNamed(conviva.CallPlaybackRequested)); got != 0 {
		t.Fatalf("Expected no playback requested after failed init, got %d", got)
	}

	i.UpdateContentMetadata(MetadataOverrides{AssetName: strPtr("Override Asset")})
	if err := i.InitializeSession(); err != nil {
		t.Fatalf("Expected init to succeed with asset name override, got %v", err)
	}

	requested := rec.CallsNamed(conviva.CallPlaybackRequested)
	if len(requested) != 1 {
		t.Fatalf("Expected 1 playback requested call, got %d", len(requested))
	}
	if requested[0].Info[conviva.KeyAssetName] != "Override Asset" {
		t.Errorf("Expected override asset name, got %v", requested[0].Info[conviva.KeyAssetName])
	}

	// Re-entrant init is a no-op.
	if err := i.InitializeSession(); err != nil {
		t.Errorf("Expected re-entrant init to be a no-op, got %v", err)
	}
	if got := len(rec.CallsNamed(conviva.CallPlaybackRequested)); got != 1 {
		t.Errorf("Expected no second playback requested call, got %d", got)
	}
}

func TestEndSessionWithoutActiveSession(t *testing.T) {
	i, rec, p := newTestIntegration(t, Options{})

	// First session fills the metadata builder.
	p.emitter.Emit(player.Play{})
	p.emitter.Emit(player.PlaybackFinished{})
	rec.Reset()

	i.EndSession()
	if got := len(rec.Calls()); got != 0 {
		t.Errorf("Expected no sink calls ending an inactive session, got %d", got)
	}

	// The earlier source title must not leak into the next session.
	p.source = nil
	if err := i.InitializeSession(); err != ErrAssetNameMissing {
		t.Errorf("Expected metadata cleared after end, got %v", err)
	}
}

func TestDeferredPausedCancelledByError(t *testing.T) {
	_, rec, p := newTestIntegration(t, Options{StateDebounce: 20 * time.Millisecond})

	p.emitter.Emit(player.Play{})
	p.playing = true
	p.emitter.Emit(player.Playing{})

	// The player misorders Paused before the Error that caused it.
	p.emitter.Emit(player.Paused{})
	p.emitter.Emit(player.PlayerError{Code: 1001, Message: "connection lost"})

	time.Sleep(60 * time.Millisecond)

	if last, ok := rec.Last(conviva.CallPlaybackError); !ok {
		t.Fatal("Expected playback error call")
	} else {
		if last.Message != "1001 - connection lost" {
			t.Errorf("Expected formatted error message, got %q", last.Message)
		}
		if last.Severity != conviva.SeverityFatal {
			t.Errorf("Expected FATAL severity, got %v", last.Severity)
		}
	}
	if len(rec.CallsNamed(conviva.CallPlaybackEnded)) != 1 {
		t.Error("Expected session ended by fatal error")
	}

	for _, values := range rec.MetricValues(conviva.ChannelVideo, conviva.MetricPlayerState) {
		if values[0] == conviva.StatePaused {
			t.Error("Expected deferred PAUSED transition to be cancelled by the error")
		}
	}
}

func TestDeferredSourceUnloadedEndsSession(t *testing.T) {
	_, rec, p := newTestIntegration(t, Options{StateDebounce: 5 * time.Millisecond})

	p.emitter.Emit(player.Play{})
	p.emitter.Emit(player.SourceUnloaded{})

	if got := len(rec.CallsNamed(conviva.CallPlaybackEnded)); got != 0 {
		t.Fatalf("Expected session end to be deferred, got %d ended calls", got)
	}

	time.Sleep(40 * time.Millisecond)

	if got := len(rec.CallsNamed(conviva.CallPlaybackEnded)); got != 1 {
		t.Errorf("Expected deferred session end to fire, got %d ended calls", got)
	}
}

func TestStallAndResume(t *testing.T) {
	_, rec, p := newTestIntegration(t, Options{})

	p.emitter.Emit(player.Play{})
	p.playing = true
	p.emitter.Emit(player.Playing{})

	p.stalled = true
	p.emitter.Emit(player.StallStarted{})
	if state, _ := lastStateOn(rec, conviva.ChannelVideo); state != conviva.StateBuffering {
		t.Errorf("Expected BUFFERING during stall, got %v", state)
	}

	p.stalled = false
	p.emitter.Emit(player.StallEnded{})
	if state, _ := lastStateOn(rec, conviva.ChannelVideo); state != conviva.StatePlaying {
		t.Errorf("Expected PLAYING after stall while not paused, got %v", state)
	}

	p.paused = true
	p.emitter.Emit(player.StallEnded{})
	if state, _ := lastStateOn(rec, conviva.ChannelVideo); state != conviva.StatePaused {
		t.Errorf("Expected PAUSED after stall while paused, got %v", state)
	}
}

func TestSeekReporting(t *testing.T) {
	_, rec, p := newTestIntegration(t, Options{})

	p.emitter.Emit(player.Play{})
	p.playing = true
	p.emitter.Emit(player.Playing{})

	p.emitter.Emit(player.Seek{To: 95.5})
	starts := rec.MetricValues(conviva.ChannelVideo, conviva.MetricSeekStarted)
	if len(starts) != 1 || starts[0][0] != int64(95500) {
		t.Errorf("Expected seek start at 95500ms, got %v", starts)
	}
	if state, _ := lastStateOn(rec, conviva.ChannelVideo); state != conviva.StateBuffering {
		t.Errorf("Expected BUFFERING during seek, got %v", state)
	}

	p.emitter.Emit(player.Seeked{})
	if got := len(rec.MetricValues(conviva.ChannelVideo, conviva.MetricSeekEnded)); got != 1 {
		t.Errorf("Expected 1 seek end metric, got %d", got)
	}
	if state, _ := lastStateOn(rec, conviva.ChannelVideo); state != conviva.StatePlaying {
		t.Errorf("Expected PLAYING after seek, got %v", state)
	}

	// Live time shift uses the -1 sentinel target.
	p.emitter.Emit(player.TimeShift{Target: -30})
	starts = rec.MetricValues(conviva.ChannelVideo, conviva.MetricSeekStarted)
	if len(starts) != 2 || starts[1][0] != int64(-1) {
		t.Errorf("Expected time shift start with -1 sentinel, got %v", starts)
	}
	p.emitter.Emit(player.TimeShifted{})
	if got := len(rec.MetricValues(conviva.ChannelVideo, conviva.MetricSeekEnded)); got != 2 {
		t.Errorf("Expected 2 seek end metrics, got %d", got)
	}
}

func TestWarningKeepsSessionActive(t *testing.T) {
	_, rec, p := newTestIntegration(t, Options{})

	p.emitter.Emit(player.SourceWarning{Code: 2001, Message: "subtitle load failed"})

	if got := len(rec.CallsNamed(conviva.CallPlaybackRequested)); got != 1 {
		t.Fatalf("Expected warning to lazily start a session, got %d requested", got)
	}
	last, ok := rec.Last(conviva.CallPlaybackError)
	if !ok {
		t.Fatal("Expected playback error call")
	}
	if last.Severity != conviva.SeverityWarning {
		t.Errorf("Expected WARNING severity, got %v", last.Severity)
	}
	if got := len(rec.CallsNamed(conviva.CallPlaybackEnded)); got != 0 {
		t.Errorf("Expected session to stay active after warning, got %d ended", got)
	}

	// Playback continues to report on the same session.
	p.playing = true
	p.emitter.Emit(player.Playing{})
	if state, _ := lastStateOn(rec, conviva.ChannelVideo); state != conviva.StatePlaying {
		t.Errorf("Expected PLAYING after warning, got %v", state)
	}
}

func TestMuteEventsReportedByName(t *testing.T) {
	_, rec, p := newTestIntegration(t, Options{})

	p.emitter.Emit(player.Muted{})
	if got := len(rec.CallsNamed(conviva.CallPlaybackEvent)); got != 0 {
		t.Fatalf("Expected mute without session to be dropped, got %d events", got)
	}

	p.emitter.Emit(player.Play{})
	p.emitter.Emit(player.Muted{})
	p.emitter.Emit(player.Unmuted{})

	events := rec.CallsNamed(conviva.CallPlaybackEvent)
	if len(events) != 2 || events[0].Name != "onMuted" || events[1].Name != "onUnmuted" {
		t.Errorf("Expected onMuted and onUnmuted events, got %v", events)
	}
}

func TestPauseResumeTrackingPairs(t *testing.T) {
	i, rec, _ := newTestIntegration(t, Options{})

	i.PauseTracking(true)
	i.ResumeTracking()
	i.PauseTracking(false)
	i.ResumeTracking()

	events := rec.CallsNamed(conviva.CallPlaybackEvent)
	want := []string{
		conviva.EventBumperVideoStarted,
		conviva.EventBumperVideoEnded,
		conviva.EventUserWaitStarted,
		conviva.EventUserWaitEnded,
	}
	if len(events) != len(want) {
		t.Fatalf("Expected %d tracking events, got %d", len(want), len(events))
	}
	for n, name := range want {
		if events[n].Name != name {
			t.Errorf("Expected event %d to be %s, got %s", n, name, events[n].Name)
		}
	}
}

func TestReportPlaybackDeficiency(t *testing.T) {
	i, rec, p := newTestIntegration(t, Options{})

	i.ReportPlaybackDeficiency("stream blocked", conviva.SeverityFatal, true)
	if got := len(rec.Calls()); got != 0 {
		t.Fatalf("Expected deficiency without session to be dropped, got %d calls", got)
	}

	p.emitter.Emit(player.Play{})
	i.ReportPlaybackDeficiency("stream blocked", conviva.SeverityFatal, true)

	last, ok := rec.Last(conviva.CallPlaybackError)
	if !ok || last.Message != "stream blocked" {
		t.Errorf("Expected deficiency error, got %v", last)
	}
	if got := len(rec.CallsNamed(conviva.CallPlaybackEnded)); got != 1 {
		t.Errorf("Expected session ended with deficiency, got %d", got)
	}
}

func TestDeficiencyEndSessionClearsStateWithoutSession(t *testing.T) {
	i, rec, _ := newTestIntegration(t, Options{})

	i.Ssai().ReportAdBreakStarted(nil)
	if !i.Ssai().IsAdBreakActive() {
		t.Fatal("Expected server side ad break to be active")
	}
	rec.Reset()

	// Without endSession the latent state survives.
	i.ReportPlaybackDeficiency("stream blocked", conviva.SeverityFatal, false)
	if !i.Ssai().IsAdBreakActive() {
		t.Fatal("Expected ad break to survive a non-ending deficiency")
	}

	// With endSession the session teardown still runs so stale metadata
	// and ad state do not leak into the next session.
	i.ReportPlaybackDeficiency("stream blocked", conviva.SeverityFatal, true)
	if i.Ssai().IsAdBreakActive() {
		t.Error("Expected end-session deficiency to reset server side ad state")
	}
	if got := len(rec.CallsNamed(conviva.CallPlaybackError)); got != 0 {
		t.Errorf("Expected no error reported without a session, got %d", got)
	}
	if got := len(rec.CallsNamed(conviva.CallPlaybackEnded)); got != 0 {
		t.Errorf("Expected no session end reported without a session, got %d", got)
	}
}

func TestClientSideAdLifecycle(t *testing.T) {
	_, rec, p := newTestIntegration(t, Options{})
	p.duration = 600

	// Pre-roll ad breaks arrive before Play and lazily start the session.
	p.emitter.Emit(player.AdBreakStarted{})
	if got := len(rec.CallsNamed(conviva.CallPlaybackRequested)); got != 1 {
		t.Fatalf("Expected ad break to lazily start a session, got %d requested", got)
	}
	breaks := rec.CallsNamed(conviva.CallAdBreakStarted)
	if len(breaks) != 1 || breaks[0].Values[1] != string(conviva.AdTypeClientSide) {
		t.Fatalf("Expected CLIENT_SIDE ad break, got %v", breaks)
	}

	p.ad = true
	p.emitter.Emit(player.AdStarted{
		Client:     player.AdSourceProgressive,
		TimeOffset: 0,
		Duration:   15,
		Ad: &player.Ad{
			ID:           "ad-1",
			MediaFileURL: "https://ads.example.com/creative.mp4",
			Data: &player.AdData{Vast: &player.VastAdData{
				AdTitle:            "Spot",
				AdSystem:           &player.AdSystem{Name: "InnerSystem"},
				Creative:           &player.AdCreative{ID: "cr-1"},
				WrapperAdSystems:   []player.AdSystem{{Name: "MiddleSystem"}, {Name: "OuterSystem"}},
				WrapperAdIDs:       []string{"mid-id", "outer-id"},
				WrapperCreativeIDs: []string{"mid-cr", "outer-cr"},
			}},
		},
	})

	loaded := rec.CallsNamed(conviva.CallAdLoaded)
	started := rec.CallsNamed(conviva.CallAdStarted)
	if len(loaded) != 1 || len(started) != 1 {
		t.Fatalf("Expected ad loaded and started, got %d/%d", len(loaded), len(started))
	}
	info := started[0].Info
	if info[conviva.KeyAdPosition] != conviva.AdPositionPreroll {
		t.Errorf("Expected PREROLL for offset 0, got %v", info[conviva.KeyAdPosition])
	}
	if info[conviva.KeyAssetName] != "Spot" {
		t.Errorf("Expected VAST title, got %v", info[conviva.KeyAssetName])
	}
	if info[conviva.KeyAdFirstAdSystem] != "OuterSystem" {
		t.Errorf("Expected outermost wrapper ad system, got %v", info[conviva.KeyAdFirstAdSystem])
	}
	if info[conviva.KeyAdFirstAdID] != "outer-id" {
		t.Errorf("Expected outermost wrapper ad id, got %v", info[conviva.KeyAdFirstAdID])
	}
	if info[conviva.KeyAdTechnology] != "Client Side" {
		t.Errorf("Expected Client Side technology, got %v", info[conviva.KeyAdTechnology])
	}
	if info[conviva.KeyFrameworkName] != defaultPlayerName {
		t.Errorf("Expected player framework for non-IMA ads, got %v", info[conviva.KeyFrameworkName])
	}
	if states := rec.MetricValues(conviva.ChannelAd, conviva.MetricPlayerState); len(states) == 0 {
		t.Error("Expected initial player state on ad channel")
	}

	// Transitions mirror to the ad channel while the ad is active.
	p.stalled = true
	p.emitter.Emit(player.StallStarted{})
	if state, _ := lastStateOn(rec, conviva.ChannelAd); state != conviva.StateBuffering {
		t.Errorf("Expected BUFFERING mirrored to ad channel, got %v", state)
	}

	p.stalled = false
	p.ad = false
	p.emitter.Emit(player.AdFinished{})
	if got := len(rec.CallsNamed(conviva.CallAdEnded)); got != 1 {
		t.Errorf("Expected ad ended call, got %d", got)
	}

	p.emitter.Emit(player.AdBreakFinished{})
	if got := len(rec.CallsNamed(conviva.CallAdBreakEnded)); got != 1 {
		t.Errorf("Expected ad break ended call, got %d", got)
	}

	// After the break, transitions stay off the ad channel.
	p.playing = true
	p.emitter.Emit(player.Playing{})
	if state, _ := lastStateOn(rec, conviva.ChannelAd); state == conviva.StatePlaying {
		t.Error("Expected no ad channel mirroring after ad break end")
	}
}

func TestAdErrorEndsAd(t *testing.T) {
	_, rec, p := newTestIntegration(t, Options{})

	p.emitter.Emit(player.AdBreakStarted{})
	p.emitter.Emit(player.AdStarted{Duration: 10})
	p.emitter.Emit(player.AdError{Message: "VAST timeout"})

	last, ok := rec.Last(conviva.CallAdFailed)
	if !ok || last.Message != "VAST timeout" {
		t.Errorf("Expected ad failed with message, got %v", last)
	}
}

func TestAdPositionResolution(t *testing.T) {
	tests := []struct {
		name     string
		offset   float64
		duration float64
		want     conviva.AdPosition
	}{
		{"preroll", 0, 600, conviva.AdPositionPreroll},
		{"midroll", 300, 600, conviva.AdPositionMidroll},
		{"postroll", 600, 600, conviva.AdPositionPostroll},
		{"offset past duration", 700, 600, conviva.AdPositionMidroll},
		{"live midroll", 300, math.Inf(1), conviva.AdPositionMidroll},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := adPosition(tt.offset, tt.duration); got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestAdHeartbeatReportsPlayHead(t *testing.T) {
	_, rec, p := newTestIntegration(t, Options{})
	p.duration = 600
	p.emitter.Emit(player.Play{})
	p.currentTime = 7

	// Outside an ad the heartbeat callback stays quiet.
	rec.InvokeCallback()
	if got := rec.MetricValues(conviva.ChannelAd, conviva.MetricPlayHeadTime); len(got) != 0 {
		t.Fatalf("Expected no ad play-head without an active ad, got %v", got)
	}

	p.ad = true
	p.emitter.Emit(player.AdBreakStarted{})
	p.emitter.Emit(player.AdStarted{Duration: 15})

	rec.InvokeCallback()
	heads := rec.MetricValues(conviva.ChannelAd, conviva.MetricPlayHeadTime)
	if len(heads) != 1 || heads[0][0] != int64(7000) {
		t.Fatalf("Expected one ad play-head of 7000ms, got %v", heads)
	}

	p.ad = false
	p.emitter.Emit(player.AdFinished{})
	p.emitter.Emit(player.AdBreakFinished{})
	rec.InvokeCallback()
	if got := rec.MetricValues(conviva.ChannelAd, conviva.MetricPlayHeadTime); len(got) != 1 {
		t.Fatalf("Expected no further ad play-head after the break ended, got %v", got)
	}
}

func TestImaAdFrameworkResolution(t *testing.T) {
	i, rec, p := newTestIntegration(t, Options{})

	i.UpdateContentMetadata(MetadataOverrides{
		AssetName:     strPtr("Art of Motion"),
		ImaSdkVersion: strPtr("3.31.0"),
	})
	p.emitter.Emit(player.Play{})
	p.emitter.Emit(player.AdBreakStarted{})
	p.emitter.Emit(player.AdStarted{Client: player.AdSourceIMA, Duration: 20})

	started := rec.CallsNamed(conviva.CallAdStarted)
	if len(started) != 1 {
		t.Fatalf("Expected 1 ad started call, got %d", len(started))
	}
	if started[0].Info[conviva.KeyFrameworkName] != "Google IMA SDK" {
		t.Errorf("Expected IMA framework name, got %v", started[0].Info[conviva.KeyFrameworkName])
	}
	if started[0].Info[conviva.KeyFrameworkVersion] != "3.31.0" {
		t.Errorf("Expected IMA SDK version override, got %v", started[0].Info[conviva.KeyFrameworkVersion])
	}
}

func TestTimeChangedReportsPlayHead(t *testing.T) {
	_, rec, p := newTestIntegration(t, Options{})

	p.currentTime = 30
	p.emitter.Emit(player.TimeChanged{Time: 30})
	if got := len(rec.MetricValues(conviva.ChannelVideo, conviva.MetricPlayHeadTime)); got != 0 {
		t.Fatalf("Expected no play-head metric without session, got %d", got)
	}

	p.emitter.Emit(player.Play{})
	p.emitter.Emit(player.TimeChanged{Time: 30})

	heads := rec.MetricValues(conviva.ChannelVideo, conviva.MetricPlayHeadTime)
	if len(heads) != 1 || heads[0][0] != int64(30000) {
		t.Errorf("Expected play-head 30000ms, got %v", heads)
	}
}

func TestAppLifecycleLatch(t *testing.T) {
	i, rec, _ := newTestIntegration(t, Options{})

	i.ReportAppForegrounded()
	if got := len(rec.CallsNamed(conviva.CallAppForegrounded)); got != 0 {
		t.Errorf("Expected no foreground report without prior background, got %d", got)
	}

	i.ReportAppBackgrounded()
	i.ReportAppBackgrounded()
	if got := len(rec.CallsNamed(conviva.CallAppBackgrounded)); got != 1 {
		t.Errorf("Expected background latched to 1 report, got %d", got)
	}

	i.ReportAppForegrounded()
	i.ReportAppForegrounded()
	if got := len(rec.CallsNamed(conviva.CallAppForegrounded)); got != 1 {
		t.Errorf("Expected foreground latched to 1 report, got %d", got)
	}
}

func TestCustomEvents(t *testing.T) {
	i, rec, p := newTestIntegration(t, Options{})

	i.SendCustomApplicationEvent("appLaunched", map[string]any{"screen": "home"})
	app := rec.CallsNamed(conviva.CallAppEvent)
	if len(app) != 1 || app[0].Name != "appLaunched" {
		t.Fatalf("Expected app event, got %v", app)
	}

	i.SendCustomPlaybackEvent("castStarted")
	if got := len(rec.CallsNamed(conviva.CallPlaybackEvent)); got != 0 {
		t.Errorf("Expected playback event without session to be dropped, got %d", got)
	}

	p.emitter.Emit(player.Play{})
	i.SendCustomPlaybackEvent("castStarted")
	if last, ok := rec.Last(conviva.CallPlaybackEvent); !ok || last.Name != "castStarted" {
		t.Errorf("Expected castStarted playback event, got %v", last)
	}
}

func TestAttachPlayerGuards(t *testing.T) {
	i, _, p := newTestIntegration(t, Options{})

	// A second attach is ignored; the first player's events still land.
	other := newFakePlayer()
	i.AttachPlayer(other)
	if got := other.emitter.HandlerCount(player.KindPlay); got != 0 {
		t.Errorf("Expected no handlers on second player, got %d", got)
	}
	if got := p.emitter.HandlerCount(player.KindPlay); got == 0 {
		t.Error("Expected handlers on first player")
	}
}

func TestSsaiAdBreakMirrorsTransitions(t *testing.T) {
	i, rec, p := newTestIntegration(t, Options{})

	p.emitter.Emit(player.Play{})
	p.playing = true
	p.emitter.Emit(player.Playing{})

	i.Ssai().ReportAdBreakStarted(nil)
	i.Ssai().ReportAdStarted(ssai.AdInfo{Title: "stitched ad"})

	p.stalled = true
	p.emitter.Emit(player.StallStarted{})
	if state, _ := lastStateOn(rec, conviva.ChannelAd); state != conviva.StateBuffering {
		t.Errorf("Expected transition mirrored during SSAI break, got %v", state)
	}

	i.Ssai().ReportAdBreakFinished()
}

func TestReleaseEndsSessionAndDetaches(t *testing.T) {
	i, rec, p := newTestIntegration(t, Options{})

	p.emitter.Emit(player.Play{})
	i.Release(false)

	if got := len(rec.CallsNamed(conviva.CallPlaybackEnded)); got != 1 {
		t.Errorf("Expected release to end the session, got %d ended", got)
	}
	if got := p.emitter.HandlerCount(player.KindPlay); got != 0 {
		t.Errorf("Expected handlers detached on release, got %d", got)
	}

	before := len(rec.Calls())
	p.emitter.Emit(player.Play{})
	i.Release(false)
	if got := len(rec.Calls()); got != before {
		t.Errorf("Expected no calls after release, got %d extra", got-before)
	}
}
