// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/tapcard/internal/logger"
	"github.com/MKhiriev/tapcard/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListEvents(t *testing.T) {
	db, mock := newTestDB(t)
	repo := &eventRepository{db: db, logger: logger.Nop()}

	from := testNow.AddDate(0, 0, -6)
	to := testNow.AddDate(0, 0, 1)

	mock.ExpectQuery("SELECT event_id, profile_id").
		WithArgs(int64(5), int64(6), from, to).
		WillReturnRows(sqlmock.NewRows([]string{
			"event_id", "profile_id", "type", "occurred_at", "user_agent", "device_class", "source", "link_id", "is_unique",
		}).
			AddRow(int64(1), int64(5), "view", testNow, "ua", "mobile", "qr", "", true).
			AddRow(int64(2), int64(6), "tap", testNow, "", "unknown", "nfc", "", false))

	events, err := repo.ListEvents(context.Background(), models.EventQuery{
		ProfileIDs: []int64{5, 6},
		From:       from,
		To:         to,
	})

	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, models.EventView, events[0].Type)
	assert.Equal(t, models.DeviceMobile, events[0].DeviceClass)
	assert.True(t, events[0].Unique)
	assert.Equal(t, models.EventTap, events[1].Type)
	assert.NoError(t, mock.ExpectationsWereMet())
}
