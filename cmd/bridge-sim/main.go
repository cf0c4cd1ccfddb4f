// ConvivaBridge - Bitmovin Player to Conviva Analytics Integration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/convivabridge

// bridge-sim drives the integration with a scripted player and prints the
// resulting sink telemetry. It exists to eyeball the call sequence the
// bridge produces for a typical session without a real player or a
// Conviva account.
package main

import (
	"context"
	"math"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/tomtom215/convivabridge/conviva"
	"github.com/tomtom215/convivabridge/integration"
	"github.com/tomtom215/convivabridge/integration/ssai"
	"github.com/tomtom215/convivabridge/internal/config"
	"github.com/tomtom215/convivabridge/internal/logging"
	"github.com/tomtom215/convivabridge/player"
)

func main() {
	// The simulation has no real Conviva account; default the one required
	// setting so it runs unconfigured.
	if os.Getenv("CONVIVA_CUSTOMER_KEY") == "" {
		os.Setenv("CONVIVA_CUSTOMER_KEY", "SIM-CUSTOMER-KEY")
	}

	cfg, err := config.Load()
	if err != nil {
		logging.Error().Err(err).Msg("Failed to load configuration")
		os.Exit(1)
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})
	log := logging.With().Str("component", "bridge-sim").Logger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := conviva.Init(conviva.Config{
		CustomerKey:       cfg.Conviva.CustomerKey,
		GatewayURL:        cfg.Conviva.GatewayURL,
		DebugLogging:      cfg.Conviva.DebugLogging,
		HeartbeatInterval: cfg.Conviva.HeartbeatInterval,
	})
	if err != nil {
		log.Error().Err(err).Msg("Failed to initialize Conviva client")
		os.Exit(1)
	}

	messages, err := client.Subscribe(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to subscribe to telemetry")
		os.Exit(1)
	}

	var drained sync.WaitGroup
	drained.Add(1)
	go func() {
		defer drained.Done()
		for msg := range messages {
			ev, err := conviva.DeserializeTelemetryEvent(msg.Payload)
			if err != nil {
				log.Error().Err(err).Msg("Telemetry decode failed")
				msg.Ack()
				continue
			}
			log.Info().
				Str("channel", ev.Channel).
				Str("call", ev.Call).
				Str("key", ev.Key).
				Interface("values", ev.Values).
				Interface("info", ev.Info).
				Str("name", ev.Name).
				Str("message", ev.Message).
				Msg("Sink call")
			msg.Ack()
		}
	}()

	i := integration.New(client, integration.Options{
		StateDebounce: cfg.Integration.StateDebounce,
	})
	i.UpdateContentMetadata(integration.MetadataOverrides{
		ApplicationName: ptr(cfg.Integration.ApplicationName),
		ViewerID:        ptr(cfg.Integration.ViewerID),
		Custom:          cfg.Integration.CustomData,
	})

	p := newSimPlayer()
	i.AttachPlayer(p)

	runScript(ctx, i, p)

	i.Release(true)
	drained.Wait()
	log.Info().Msg("Simulation finished")
}

// runScript plays one VOD session: pre-roll ad, playback with a stall and
// a seek, a server-side mid-roll, then a regular finish. The sleeps give
// the deferred transitions room to fire.
func runScript(ctx context.Context, i *integration.Integration, p *simPlayer) {
	step := func(d time.Duration, fn func()) {
		select {
		case <-ctx.Done():
			return
		case <-time.After(d):
			fn()
		}
	}

	p.load(&player.Source{
		Title: "Art of Motion",
		URL:   "https://cdn.example.com/art-of-motion.mpd",
		Type:  player.SourceTypeDash,
	}, 210)

	step(0, func() { p.emit(player.Play{}) })

	// Pre-roll.
	step(50*time.Millisecond, func() {
		p.ad = true
		p.emit(player.AdBreakStarted{})
		p.emit(player.AdStarted{
			Client:     player.AdSourceIMA,
			TimeOffset: 0,
			Duration:   15,
			Ad: &player.Ad{
				ID: "preroll-1",
				Data: &player.AdData{Vast: &player.VastAdData{
					AdTitle:  "Pre-roll Spot",
					AdSystem: &player.AdSystem{Name: "SimAdServer"},
				}},
			},
		})
	})
	step(200*time.Millisecond, func() {
		p.ad = false
		p.emit(player.AdFinished{})
		p.emit(player.AdBreakFinished{})
	})

	// Main content.
	step(50*time.Millisecond, func() {
		p.playing = true
		p.quality = &player.VideoQuality{
			Width: 1920, Height: 1080,
			PeakBitrate:    4_800_000,
			AverageBitrate: 4_200_000,
			FrameRate:      30,
		}
		p.emit(player.Playing{})
	})
	step(100*time.Millisecond, func() {
		p.currentTime = 12
		p.emit(player.TimeChanged{Time: p.currentTime})
	})

	// A short stall.
	step(100*time.Millisecond, func() {
		p.stalled = true
		p.emit(player.StallStarted{})
	})
	step(150*time.Millisecond, func() {
		p.stalled = false
		p.emit(player.StallEnded{})
	})

	// Seek forward.
	step(200*time.Millisecond, func() { p.emit(player.Seek{To: 90}) })
	step(80*time.Millisecond, func() {
		p.currentTime = 90
		p.emit(player.Seeked{})
	})

	// Server-stitched mid-roll, reported by the application.
	step(100*time.Millisecond, func() {
		i.Ssai().ReportAdBreakStarted(map[string]any{"podIndex": 1})
		i.Ssai().ReportAdStarted(ssai.AdInfo{
			Title:    "Stitched Mid-roll",
			Duration: 20,
			ID:       "ssai-1",
			AdSystem: "SimStitcher",
			Position: conviva.AdPositionMidroll,
		})
	})
	step(200*time.Millisecond, func() {
		i.Ssai().ReportAdFinished()
		i.Ssai().ReportAdBreakFinished()
	})

	// Finish.
	step(100*time.Millisecond, func() {
		p.currentTime = 210
		p.emit(player.TimeChanged{Time: p.currentTime})
		p.playing = false
		p.emit(player.PlaybackFinished{})
	})
	step(150*time.Millisecond, func() {})
}

func ptr(s string) *string { return &s }

// simPlayer is a hand-driven player.Player for the simulation.
type simPlayer struct {
	emitter *player.Emitter

	source      *player.Source
	duration    float64
	currentTime float64
	playing     bool
	paused      bool
	stalled     bool
	ad          bool
	quality     *player.VideoQuality
}

func newSimPlayer() *simPlayer {
	return &simPlayer{emitter: player.NewEmitter()}
}

func (p *simPlayer) load(source *player.Source, durationSeconds float64) {
	p.source = source
	p.duration = durationSeconds
}

func (p *simPlayer) emit(ev player.Event) { p.emitter.Emit(ev) }

func (p *simPlayer) Source() *player.Source { return p.source }
func (p *simPlayer) IsLive() bool           { return math.IsInf(p.duration, 1) }
func (p *simPlayer) IsPaused() bool         { return p.paused }
func (p *simPlayer) IsPlaying() bool        { return p.playing }
func (p *simPlayer) IsStalled() bool        { return p.stalled }
func (p *simPlayer) IsAd() bool             { return p.ad }
func (p *simPlayer) Duration() float64      { return p.duration }
func (p *simPlayer) CurrentTime() float64   { return p.currentTime }
func (p *simPlayer) TimeShift() float64     { return 0 }
func (p *simPlayer) MaxTimeShift() float64  { return 0 }

func (p *simPlayer) PlaybackVideoData() *player.VideoQuality { return p.quality }
func (p *simPlayer) Version() string                         { return "3.40.0-sim" }

func (p *simPlayer) WithEventEmitter(fn func(*player.Emitter)) { fn(p.emitter) }
