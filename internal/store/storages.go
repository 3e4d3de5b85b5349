// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "github.com/MKhiriev/tapcard/internal/logger"

// Storages bundles every repository built over one database handle.
type Storages struct {
	UserRepository         UserRepository
	OrganizationRepository OrganizationRepository
	ProfileRepository      ProfileRepository
	TemplateRepository     TemplateRepository
	CardRepository         CardRepository
	EventRepository        EventRepository
}

// NewStorages wires all postgres repositories to db.
func NewStorages(db *DB, logger *logger.Logger) *Storages {
	return &Storages{
		UserRepository:         NewUserRepository(db, logger),
		OrganizationRepository: NewOrganizationRepository(db, logger),
		ProfileRepository:      NewProfileRepository(db, logger),
		TemplateRepository:     NewTemplateRepository(db, logger),
		CardRepository:         NewCardRepository(db, logger),
		EventRepository:        NewEventRepository(db, logger),
	}
}
