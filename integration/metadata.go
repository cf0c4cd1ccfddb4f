// ConvivaBridge - Bitmovin Player to Conviva Analytics Integration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/convivabridge

package integration

import "github.com/tomtom215/convivabridge/conviva"

// MetadataOverrides carries application-supplied content metadata. Every
// field is optional; a nil field means "no opinion" and leaves the
// player-derived value in place. Overrides always win over player-derived
// values for the fields they set.
type MetadataOverrides struct {
	// AssetName is locked in at session start and ignored afterwards.
	AssetName *string

	// ViewerID identifies the viewer for the session.
	ViewerID *string

	// StreamType classifies the content as live or on-demand.
	StreamType *conviva.StreamType

	// ApplicationName names the integrating application.
	ApplicationName *string

	// Custom tags are merged key-by-key into the content record. A key
	// set here wins over the same internally derived key.
	Custom map[string]string

	// Duration of the content in seconds.
	Duration *int

	// EncodedFrameRate of the source in frames per second.
	EncodedFrameRate *int

	// DefaultResource names the default CDN resource.
	DefaultResource *string

	// StreamURL overrides the player-reported source URL.
	StreamURL *string

	// ImaSdkVersion is reported for client-side ads when the IMA SDK
	// renders them.
	ImaSdkVersion *string
}

// merge returns the receiver with every nil field filled from other.
// Non-nil fields and present custom keys on the receiver win.
func (m MetadataOverrides) merge(other MetadataOverrides) MetadataOverrides {
	out := m
	if out.AssetName == nil {
		out.AssetName = other.AssetName
	}
	if out.ViewerID == nil {
		out.ViewerID = other.ViewerID
	}
	if out.StreamType == nil {
		out.StreamType = other.StreamType
	}
	if out.ApplicationName == nil {
		out.ApplicationName = other.ApplicationName
	}
	if out.Duration == nil {
		out.Duration = other.Duration
	}
	if out.EncodedFrameRate == nil {
		out.EncodedFrameRate = other.EncodedFrameRate
	}
	if out.DefaultResource == nil {
		out.DefaultResource = other.DefaultResource
	}
	if out.StreamURL == nil {
		out.StreamURL = other.StreamURL
	}
	if out.ImaSdkVersion == nil {
		out.ImaSdkVersion = other.ImaSdkVersion
	}
	if len(other.Custom) > 0 {
		merged := make(map[string]string, len(other.Custom)+len(out.Custom))
		for k, v := range other.Custom {
			merged[k] = v
		}
		for k, v := range out.Custom {
			merged[k] = v
		}
		out.Custom = merged
	}
	return out
}
