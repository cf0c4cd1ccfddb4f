// ConvivaBridge - Bitmovin Player to Conviva Analytics Integration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/convivabridge

package conviva

import (
	"context"
	"testing"
	"time"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	client, err := Init(Config{CustomerKey: "test-key"})
	if err != nil {
		t.Fatalf("Init() returned error: %v", err)
	}
	t.Cleanup(func() { _ = client.Release() })
	return client
}

func TestInitRequiresCustomerKey(t *testing.T) {
	if _, err := Init(Config{}); err == nil {
		t.Error("Expected error for missing customer key")
	}
}

func TestPublishAndSubscribe(t *testing.T) {
	client := newTestClient(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	messages, err := client.Subscribe(ctx)
	if err != nil {
		t.Fatalf("Subscribe() returned error: %v", err)
	}

	video := client.BuildVideoAnalytics()
	video.ReportPlaybackRequested(map[string]any{KeyAssetName: "Art of Motion"})

	select {
	case msg := <-messages:
		msg.Ack()
		ev, err := DeserializeTelemetryEvent(msg.Payload)
		if err != nil {
			t.Fatalf("Deserialize returned error: %v", err)
		}
		if ev.Call != CallPlaybackRequested {
			t.Errorf("Expected call %s, got %s", CallPlaybackRequested, ev.Call)
		}
		if ev.Channel != ChannelVideo {
			t.Errorf("Expected channel video, got %s", ev.Channel)
		}
		if ev.Info[KeyAssetName] != "Art of Motion" {
			t.Errorf("Expected asset name in payload, got %v", ev.Info)
		}
		if ev.CustomerKey != "test-key" {
			t.Errorf("Expected customer key on event, got %s", ev.CustomerKey)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Timed out waiting for telemetry message")
	}
}

func TestMetadataInfoAccumulates(t *testing.T) {
	client := newTestClient(t)
	video := client.BuildVideoAnalytics()

	video.ReportPlaybackRequested(map[string]any{KeyAssetName: "Asset", KeyIsLive: false})
	video.SetContentInfo(map[string]any{KeyStreamURL: "https://example.com/stream.mpd"})

	info := video.MetadataInfo()
	if info[KeyAssetName] != "Asset" {
		t.Errorf("Expected asset name retained, got %v", info[KeyAssetName])
	}
	if info[KeyStreamURL] != "https://example.com/stream.mpd" {
		t.Errorf("Expected stream url merged, got %v", info[KeyStreamURL])
	}

	// The returned map is a copy.
	info[KeyAssetName] = "mutated"
	if video.MetadataInfo()[KeyAssetName] != "Asset" {
		t.Error("Expected MetadataInfo to return a copy")
	}
}

func TestPublishAfterReleaseIsDropped(t *testing.T) {
	client, err := Init(Config{CustomerKey: "test-key"})
	if err != nil {
		t.Fatalf("Init() returned error: %v", err)
	}
	video := client.BuildVideoAnalytics()

	if err := client.Release(); err != nil {
		t.Fatalf("Release() returned error: %v", err)
	}
	if !client.Released() {
		t.Error("Expected client to report released")
	}

	// Must not panic or block.
	video.ReportPlaybackEnded()

	// Double release is a no-op.
	if err := client.Release(); err != nil {
		t.Errorf("Second Release() returned error: %v", err)
	}
}

func TestChannelReleaseStopsReporting(t *testing.T) {
	client := newTestClient(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	messages, err := client.Subscribe(ctx)
	if err != nil {
		t.Fatalf("Subscribe() returned error: %v", err)
	}

	video := client.BuildVideoAnalytics()
	ad := client.BuildAdAnalytics(video)
	video.Release()
	ad.Release()

	video.ReportPlaybackEnded()
	video.ReportPlaybackMetric(MetricPlayerState, StateStopped)
	ad.ReportAdStarted(map[string]any{KeyAdID: "ad-1"})

	select {
	case msg := <-messages:
		msg.Ack()
		ev, _ := DeserializeTelemetryEvent(msg.Payload)
		t.Fatalf("Expected no events after channel release, got %v", ev)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestAdHeartbeatInvokesCallback(t *testing.T) {
	client, err := Init(Config{CustomerKey: "test-key", HeartbeatInterval: 5 * time.Millisecond})
	if err != nil {
		t.Fatalf("Init() returned error: %v", err)
	}
	defer func() { _ = client.Release() }()

	ad := client.BuildAdAnalytics(client.BuildVideoAnalytics())

	fired := make(chan struct{}, 1)
	ad.SetCallback(func() {
		select {
		case fired <- struct{}{}:
		default:
		}
	})

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("Expected heartbeat to invoke the callback")
	}

	ad.Release()
}

func TestRecorderCapturesCallOrder(t *testing.T) {
	rec := NewRecorder()
	video := rec.Video()

	video.ReportPlaybackRequested(map[string]any{KeyAssetName: "Asset"})
	video.ReportPlaybackMetric(MetricPlayerState, StatePlaying)
	video.ReportPlaybackEnded()

	calls := rec.Calls()
	want := []string{CallPlaybackRequested, CallPlaybackMetric, CallPlaybackEnded}
	if len(calls) != len(want) {
		t.Fatalf("Expected %d calls, got %d", len(want), len(calls))
	}
	for i, w := range want {
		if calls[i].Call != w {
			t.Errorf("Call %d: expected %s, got %s", i, w, calls[i].Call)
		}
	}

	states := rec.MetricValues(ChannelVideo, MetricPlayerState)
	if len(states) != 1 || states[0][0] != StatePlaying {
		t.Errorf("Expected one PLAYING state metric, got %v", states)
	}
}
