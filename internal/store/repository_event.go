// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/tapcard/internal/logger"
	"github.com/MKhiriev/tapcard/models"
)

type eventRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewEventRepository constructs an [EventRepository]. It satisfies the
// analytics event source.
func NewEventRepository(db *DB, logger *logger.Logger) EventRepository {
	logger.Debug().Msg("creating event repository")
	return &eventRepository{
		db:     db,
		logger: logger,
	}
}

func (r *eventRepository) ListEvents(ctx context.Context, query models.EventQuery) ([]models.Event, error) {
	log := logger.FromContext(ctx)

	sqlQuery, args, err := buildListEventsQuery(ctx, query)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		log.Err(err).
			Str("func", "eventRepository.ListEvents").
			Int("profiles", len(query.ProfileIDs)).
			Msg("failed to query events")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	events := make([]models.Event, 0, 64)
	for rows.Next() {
		var e models.Event
		scanErr := rows.Scan(
			&e.ID,
			&e.ProfileID,
			&e.Type,
			&e.Timestamp,
			&e.UserAgent,
			&e.DeviceClass,
			&e.Source,
			&e.LinkID,
			&e.Unique,
		)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "eventRepository.ListEvents").
				Msg("failed to scan event row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		events = append(events, e)
	}

	if err = rows.Err(); err != nil {
		log.Err(err).
			Str("func", "eventRepository.ListEvents").
			Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return events, nil
}
