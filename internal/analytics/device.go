// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package analytics

import (
	"github.com/MKhiriev/tapcard/models"
	"github.com/mileusna/useragent"
)

// ClassifyDevice maps a user agent to mobile, tablet or desktop.
// Empty, bot and unrecognised agents are [models.DeviceUnknown].
func ClassifyDevice(userAgent string) models.DeviceClass {
	if userAgent == "" {
		return models.DeviceUnknown
	}

	ua := useragent.Parse(userAgent)
	switch {
	case ua.Bot:
		return models.DeviceUnknown
	case ua.Tablet:
		return models.DeviceTablet
	case ua.Mobile:
		return models.DeviceMobile
	case ua.Desktop:
		return models.DeviceDesktop
	default:
		return models.DeviceUnknown
	}
}

// deviceOf prefers the class recorded on the event and falls back to the
// user agent.
func deviceOf(e models.Event) models.DeviceClass {
	switch e.DeviceClass {
	case models.DeviceMobile, models.DeviceDesktop, models.DeviceTablet:
		return e.DeviceClass
	case models.DeviceUnknown:
		return models.DeviceUnknown
	}
	return ClassifyDevice(e.UserAgent)
}
