// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// ChipType is the NFC chip family of a physical card.
type ChipType string

const (
	ChipNTAG213          ChipType = "NTAG213"
	ChipNTAG215          ChipType = "NTAG215"
	ChipNTAG216          ChipType = "NTAG216"
	ChipMifareUltralight ChipType = "MIFARE_ULTRALIGHT"
	ChipMifareClassic    ChipType = "MIFARE_CLASSIC"
)

// ChipTypes lists the supported chip families.
var ChipTypes = []ChipType{
	ChipNTAG213,
	ChipNTAG215,
	ChipNTAG216,
	ChipMifareUltralight,
	ChipMifareClassic,
}

// IsValid reports whether c is a supported chip family.
func (c ChipType) IsValid() bool {
	for _, t := range ChipTypes {
		if c == t {
			return true
		}
	}
	return false
}

// Card is a physical NFC card pointing at one profile at a time.
type Card struct {
	ID             int64 `json:"id"`
	UserID         int64 `json:"userId"`
	OrganizationID int64 `json:"organizationId"`
	ProfileID      int64 `json:"profileId"`

	// CardID is the identifier encoded on the chip and used in tap URLs.
	CardID       string   `json:"cardId"`
	SerialNumber string   `json:"serialNumber"`
	ChipType     ChipType `json:"chipType"`

	TapCount   int64      `json:"tapCount"`
	LastTapped *time.Time `json:"lastTapped,omitempty"`

	IsActive         bool      `json:"isActive"`
	IsWriteProtected bool      `json:"isWriteProtected"`
	CreatedAt        time.Time `json:"createdAt"`
}

// AssignCardRequest points a card at another profile.
type AssignCardRequest struct {
	ProfileID int64 `json:"profileId"`
}

// TapResult is returned after a card tap has been recorded.
type TapResult struct {
	Card        Card   `json:"card"`
	ProfileSlug string `json:"profileSlug"`
	RedirectURL string `json:"redirectUrl,omitempty"`
}
