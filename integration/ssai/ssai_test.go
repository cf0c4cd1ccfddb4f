// ConvivaBridge - Bitmovin Player to Conviva Analytics Integration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/convivabridge

package ssai

import (
	"testing"

	"github.com/tomtom215/convivabridge/conviva"
)

type fakeState struct {
	state conviva.PlayerState
	data  map[string][]any
}

func (f *fakeState) PlayerState() conviva.PlayerState    { return f.state }
func (f *fakeState) PlaybackVideoData() map[string][]any { return f.data }

func newTestAPI() (*API, *conviva.Recorder) {
	rec := conviva.NewRecorder()
	api := New(rec.Video(), rec.Ad())
	api.SetPlayer(&fakeState{
		state: conviva.StatePlaying,
		data:  map[string][]any{conviva.MetricBitrate: {2400}},
	})
	return api, rec
}

func TestAdBreakLifecycle(t *testing.T) {
	api, rec := newTestAPI()

	if api.IsAdBreakActive() {
		t.Error("Expected no active ad break before start")
	}

	api.ReportAdBreakStarted(map[string]any{"podIndex": 1})
	if !api.IsAdBreakActive() {
		t.Error("Expected active ad break after start")
	}

	started := rec.CallsNamed(conviva.CallAdBreakStarted)
	if len(started) != 1 {
		t.Fatalf("Expected 1 ad break started call, got %d", len(started))
	}
	if started[0].Info["podIndex"] != 1 {
		t.Errorf("Expected adBreakInfo to pass through, got %v", started[0].Info)
	}
	if started[0].Values[1] != string(conviva.AdTypeServerSide) {
		t.Errorf("Expected SERVER_SIDE ad type, got %v", started[0].Values[1])
	}

	api.ReportAdBreakFinished()
	if api.IsAdBreakActive() {
		t.Error("Expected no active ad break after finish")
	}
	if len(rec.CallsNamed(conviva.CallAdBreakEnded)) != 1 {
		t.Error("Expected ad break ended call")
	}
}

func TestAdBreakStartedIdempotent(t *testing.T) {
	api, rec := newTestAPI()

	api.ReportAdBreakStarted(nil)
	api.ReportAdBreakStarted(nil)

	if got := len(rec.CallsNamed(conviva.CallAdBreakStarted)); got != 1 {
		t.Errorf("Expected 1 ad break started call, got %d", got)
	}
}

func TestReportingNoopsWithoutActiveBreak(t *testing.T) {
	api, rec := newTestAPI()

	api.ReportAdStarted(AdInfo{Title: "ad"})
	api.ReportAdFinished()
	api.ReportAdSkipped()
	api.UpdateAdInfo(AdInfo{Title: "ad"})
	api.ReportAdBreakFinished()

	if got := len(rec.Calls()); got != 0 {
		t.Errorf("Expected no sink calls without active ad break, got %d", got)
	}
}

func TestAdStartedSeedsMetrics(t *testing.T) {
	api, rec := newTestAPI()

	api.ReportAdBreakStarted(nil)
	api.ReportAdStarted(AdInfo{Title: "Mid ad", ID: "ad-1"})

	started := rec.CallsNamed(conviva.CallAdStarted)
	if len(started) != 1 {
		t.Fatalf("Expected 1 ad started call, got %d", len(started))
	}
	if started[0].Info[conviva.KeyAssetName] != "Mid ad" {
		t.Errorf("Expected ad title as asset name, got %v", started[0].Info[conviva.KeyAssetName])
	}

	states := rec.MetricValues(conviva.ChannelAd, conviva.MetricPlayerState)
	if len(states) != 1 || states[0][0] != conviva.StatePlaying {
		t.Errorf("Expected PLAYING seeded on ad channel, got %v", states)
	}
	bitrates := rec.MetricValues(conviva.ChannelAd, conviva.MetricBitrate)
	if len(bitrates) != 1 || bitrates[0][0] != 2400 {
		t.Errorf("Expected bitrate seeded on ad channel, got %v", bitrates)
	}
}

func TestAdStartedRequiresPlayer(t *testing.T) {
	rec := conviva.NewRecorder()
	api := New(rec.Video(), rec.Ad())

	api.ReportAdBreakStarted(nil)
	api.ReportAdStarted(AdInfo{Title: "ad"})

	if got := len(rec.CallsNamed(conviva.CallAdStarted)); got != 0 {
		t.Errorf("Expected no ad started call without player, got %d", got)
	}
}

func TestResetClosesAdAndBreak(t *testing.T) {
	api, rec := newTestAPI()

	api.ReportAdBreakStarted(nil)
	api.ReportAdStarted(AdInfo{Title: "ad"})
	api.Reset()

	if api.IsAdBreakActive() {
		t.Error("Expected no active ad break after reset")
	}
	if len(rec.CallsNamed(conviva.CallAdEnded)) != 1 {
		t.Error("Expected ad ended call from reset")
	}
	if len(rec.CallsNamed(conviva.CallAdBreakEnded)) != 1 {
		t.Error("Expected ad break ended call from reset")
	}

	// Reset without an active break stays silent.
	before := len(rec.Calls())
	api.Reset()
	if got := len(rec.Calls()); got != before {
		t.Errorf("Expected idle reset to be a no-op, got %d extra calls", got-before)
	}
}

func TestConvertAdInfo(t *testing.T) {
	content := map[string]any{
		conviva.KeyAssetName:  "Main Content",
		conviva.KeyIsLive:     false,
		conviva.KeyStreamURL:  "https://cdn.example.com/main.mpd",
		conviva.KeyViewerID:   "viewer-1", // not whitelisted
		conviva.TagStreamType: "DASH",
	}

	out := convertAdInfo(AdInfo{
		Title:      "Spot",
		Duration:   30,
		ID:         "ad-42",
		AdSystem:   "FreeWheel",
		Position:   conviva.AdPositionMidroll,
		IsSlate:    false,
		AdStitcher: "MediaTailor",
		AdditionalMetadata: map[string]any{
			conviva.KeyAdID: "override-id",
			"campaign":      "summer",
		},
	}, content)

	if out[conviva.KeyAssetName] != "Spot" {
		t.Errorf("Expected ad title to supersede content asset name, got %v", out[conviva.KeyAssetName])
	}
	if out[conviva.KeyStreamURL] != "https://cdn.example.com/main.mpd" {
		t.Errorf("Expected whitelisted stream URL copied, got %v", out[conviva.KeyStreamURL])
	}
	if _, ok := out[conviva.KeyViewerID]; ok {
		t.Error("Expected viewer id to not be copied onto the ad record")
	}
	if out[conviva.KeyAdID] != "override-id" {
		t.Errorf("Expected additional metadata to supersede derived ad id, got %v", out[conviva.KeyAdID])
	}
	if out["campaign"] != "summer" {
		t.Errorf("Expected free-form additional metadata, got %v", out["campaign"])
	}
	if out[conviva.KeyAdFirstAdID] != conviva.ValueNA {
		t.Errorf("Expected NA default for firstAdId, got %v", out[conviva.KeyAdFirstAdID])
	}
	if out[conviva.KeyAdTechnology] != "Server Side" {
		t.Errorf("Expected Server Side technology, got %v", out[conviva.KeyAdTechnology])
	}
	if out[conviva.KeyDuration] != 30.0 {
		t.Errorf("Expected duration 30, got %v", out[conviva.KeyDuration])
	}

	// Zero duration and empty fields keep defaults.
	out = convertAdInfo(AdInfo{IsSlate: true}, nil)
	if _, ok := out[conviva.KeyDuration]; ok {
		t.Error("Expected unknown duration to be omitted")
	}
	if out[conviva.KeyAdIsSlate] != true {
		t.Errorf("Expected isSlate true, got %v", out[conviva.KeyAdIsSlate])
	}
	if out[conviva.KeyAdSystem] != conviva.ValueNA {
		t.Errorf("Expected NA ad system, got %v", out[conviva.KeyAdSystem])
	}
}
