// ConvivaBridge - Bitmovin Player to Conviva Analytics Integration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/convivabridge

package integration

import (
	"sync"

	"github.com/tomtom215/convivabridge/conviva"
)

// durationNotSet is the sink sentinel for unknown content duration.
const durationNotSet = -1

// contentMetadataBuilder folds application overrides and player-derived
// metadata into the flat content record the sink expects. Overrides win
// field-by-field. Two fields lock once reported: the asset name after its
// first build, and every static field after playback has started. Dynamic
// fields (encoded frame rate, default resource, stream URL) are rebuilt
// on every call.
type contentMetadataBuilder struct {
	mu sync.Mutex

	override MetadataOverrides
	internal MetadataOverrides

	// output accumulates the built record across calls. Static fields
	// stick once present; dynamic fields are overwritten every build.
	output map[string]any

	playbackStarted bool
}

func newContentMetadataBuilder() *contentMetadataBuilder {
	return &contentMetadataBuilder{output: map[string]any{}}
}

// SetOverrides replaces the application overrides. After playback has
// started only the dynamic fields surface in Build.
func (b *contentMetadataBuilder) SetOverrides(overrides MetadataOverrides) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.playbackStarted {
		log.Warn().Msg("Playback has started. Only dynamic metadata will take effect.")
	}
	b.override = overrides
}

// SetPlaybackStarted locks the static metadata fields.
func (b *contentMetadataBuilder) SetPlaybackStarted(started bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.playbackStarted = started
}

func (b *contentMetadataBuilder) SetAssetName(name string) {
	b.setInternal(func(m *MetadataOverrides) { m.AssetName = &name })
}

func (b *contentMetadataBuilder) SetViewerID(id string) {
	b.setInternal(func(m *MetadataOverrides) { m.ViewerID = &id })
}

func (b *contentMetadataBuilder) SetApplicationName(name string) {
	b.setInternal(func(m *MetadataOverrides) { m.ApplicationName = &name })
}

func (b *contentMetadataBuilder) SetStreamType(st conviva.StreamType) {
	b.setInternal(func(m *MetadataOverrides) { m.StreamType = &st })
}

func (b *contentMetadataBuilder) SetDuration(seconds int) {
	b.setInternal(func(m *MetadataOverrides) { m.Duration = &seconds })
}

func (b *contentMetadataBuilder) SetCustom(custom map[string]string) {
	b.setInternal(func(m *MetadataOverrides) { m.Custom = custom })
}

// SetEncodedFrameRate sets a dynamic field, allowed at any time.
func (b *contentMetadataBuilder) SetEncodedFrameRate(fps int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.internal.EncodedFrameRate = &fps
}

// SetDefaultResource sets a dynamic field, allowed at any time.
func (b *contentMetadataBuilder) SetDefaultResource(resource string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.internal.DefaultResource = &resource
}

// SetStreamURL sets a dynamic field, allowed at any time.
func (b *contentMetadataBuilder) SetStreamURL(url string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.internal.StreamURL = &url
}

// setInternal applies a static-field mutation. The value is always stored
// so the accessors reflect it; Build stops surfacing static fields once
// playback has started.
func (b *contentMetadataBuilder) setInternal(fn func(*MetadataOverrides)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	fn(&b.internal)
}

// AssetName returns the effective asset name, override first.
func (b *contentMetadataBuilder) AssetName() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return stringOr(b.override.AssetName, b.internal.AssetName)
}

// ViewerID returns the effective viewer id, override first.
func (b *contentMetadataBuilder) ViewerID() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return stringOr(b.override.ViewerID, b.internal.ViewerID)
}

// ApplicationName returns the effective application name, override first.
func (b *contentMetadataBuilder) ApplicationName() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return stringOr(b.override.ApplicationName, b.internal.ApplicationName)
}

// StreamType returns the effective stream type, override first, or "".
func (b *contentMetadataBuilder) StreamType() conviva.StreamType {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.override.StreamType != nil {
		return *b.override.StreamType
	}
	if b.internal.StreamType != nil {
		return *b.internal.StreamType
	}
	return ""
}

// ImaSdkVersion returns the effective IMA SDK version override, or "".
func (b *contentMetadataBuilder) ImaSdkVersion() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return stringOr(b.override.ImaSdkVersion, b.internal.ImaSdkVersion)
}

// Build folds the current effective metadata into the content record and
// returns a copy. Before playback starts the static fields are refreshed;
// once started only dynamic fields change. The asset name is written at
// most once per session.
func (b *contentMetadataBuilder) Build() map[string]any {
	b.mu.Lock()
	defer b.mu.Unlock()

	effective := b.override.merge(b.internal)

	if !b.playbackStarted {
		// Asset name sticks with its first non-empty value.
		if _, ok := b.output[conviva.KeyAssetName]; !ok && effective.AssetName != nil {
			b.output[conviva.KeyAssetName] = *effective.AssetName
		}

		if effective.ViewerID != nil {
			b.output[conviva.KeyViewerID] = *effective.ViewerID
		}
		if effective.ApplicationName != nil {
			b.output[conviva.KeyApplicationName] = *effective.ApplicationName
		}
		if effective.StreamType != nil {
			b.output[conviva.KeyIsLive] = *effective.StreamType == conviva.StreamTypeLive
		}

		duration := durationNotSet
		if effective.Duration != nil {
			duration = *effective.Duration
		}
		b.output[conviva.KeyDuration] = duration

		for k, v := range effective.Custom {
			b.output[k] = v
		}
	}

	frameRate := durationNotSet
	if effective.EncodedFrameRate != nil {
		frameRate = *effective.EncodedFrameRate
	}
	b.output[conviva.KeyEncodedFrameRate] = frameRate

	if effective.DefaultResource != nil {
		b.output[conviva.KeyDefaultResource] = *effective.DefaultResource
	}
	if effective.StreamURL != nil {
		b.output[conviva.KeyStreamURL] = *effective.StreamURL
	}

	out := make(map[string]any, len(b.output))
	for k, v := range b.output {
		out[k] = v
	}
	return out
}

// Reset discards all accumulated state for the next session.
func (b *contentMetadataBuilder) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.override = MetadataOverrides{}
	b.internal = MetadataOverrides{}
	b.output = map[string]any{}
	b.playbackStarted = false
}

func stringOr(first, second *string) string {
	if first != nil {
		return *first
	}
	if second != nil {
		return *second
	}
	return ""
}
