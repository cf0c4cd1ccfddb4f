// ConvivaBridge - Bitmovin Player to Conviva Analytics Integration
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/convivabridge

package integration

import (
	"github.com/tomtom215/convivabridge/conviva"
	"github.com/tomtom215/convivabridge/player"
)

// adPosition maps an ad's scheduled offset onto the content timeline.
// Only an offset exactly at the content end is a post-roll; anything else
// past zero is a mid-roll. A live stream has an infinite duration, so its
// ads can never match the end and report as mid-rolls.
func adPosition(timeOffset, contentDuration float64) conviva.AdPosition {
	switch {
	case timeOffset == 0:
		return conviva.AdPositionPreroll
	case timeOffset == contentDuration:
		return conviva.AdPositionPostroll
	default:
		return conviva.AdPositionMidroll
	}
}

// buildAdInfo assembles the sink ad record for a client-side ad from the
// ad started event and the surrounding session. Structured fields the
// event cannot supply stay at the NA sentinel.
func buildAdInfo(event player.AdStarted, contentInfo map[string]any, contentDuration float64, frameworkName, frameworkVersion string) map[string]any {
	out := map[string]any{
		conviva.KeyAdID:                    conviva.ValueNA,
		conviva.KeyAdSystem:                conviva.ValueNA,
		conviva.KeyAdMediaFileAPIFramework: conviva.ValueNA,
		conviva.KeyAdFirstAdSystem:         conviva.ValueNA,
		conviva.KeyAdFirstAdID:             conviva.ValueNA,
		conviva.KeyAdFirstCreativeID:       conviva.ValueNA,
		conviva.KeyAdTechnology:            "Client Side",
	}

	out[conviva.KeyAdPosition] = adPosition(event.TimeOffset, contentDuration)
	out[conviva.KeyDuration] = event.Duration
	out[conviva.KeyFrameworkName] = frameworkName
	out[conviva.KeyFrameworkVersion] = frameworkVersion

	if isLive, ok := contentInfo[conviva.KeyIsLive]; ok {
		out[conviva.KeyIsLive] = isLive
	}

	ad := event.Ad
	if ad == nil {
		return out
	}

	if ad.ID != "" {
		out[conviva.KeyAdID] = ad.ID
	}
	if ad.MediaFileURL != "" {
		out[conviva.KeyStreamURL] = ad.MediaFileURL
	}

	if ad.Data == nil || ad.Data.Vast == nil {
		return out
	}
	vast := ad.Data.Vast

	if vast.AdTitle != "" {
		out[conviva.KeyAssetName] = vast.AdTitle
	}
	if vast.AdDescription != "" {
		out[conviva.KeyAdDescription] = vast.AdDescription
	}
	if vast.AdSystem != nil && vast.AdSystem.Name != "" {
		out[conviva.KeyAdSystem] = vast.AdSystem.Name
	}
	if vast.Creative != nil && vast.Creative.ID != "" {
		out[conviva.KeyAdCreativeID] = vast.Creative.ID
	}

	// First-in-chain fields come from the outermost VAST wrapper, which
	// sits at the end of each wrapper list. Without wrappers the ad is
	// its own first element.
	if n := len(vast.WrapperAdSystems); n > 0 {
		out[conviva.KeyAdFirstAdSystem] = vast.WrapperAdSystems[n-1].Name
	} else if vast.AdSystem != nil && vast.AdSystem.Name != "" {
		out[conviva.KeyAdFirstAdSystem] = vast.AdSystem.Name
	}
	if n := len(vast.WrapperAdIDs); n > 0 {
		out[conviva.KeyAdFirstAdID] = vast.WrapperAdIDs[n-1]
	} else if ad.ID != "" {
		out[conviva.KeyAdFirstAdID] = ad.ID
	}
	if n := len(vast.WrapperCreativeIDs); n > 0 {
		out[conviva.KeyAdFirstCreativeID] = vast.WrapperCreativeIDs[n-1]
	} else if vast.Creative != nil && vast.Creative.ID != "" {
		out[conviva.KeyAdFirstCreativeID] = vast.Creative.ID
	}

	return out
}
