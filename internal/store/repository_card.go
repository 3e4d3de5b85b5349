// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/tapcard/internal/logger"
	"github.com/MKhiriev/tapcard/models"
	"github.com/jackc/pgerrcode"
)

// cardRepository is the PostgreSQL-backed implementation of
// [CardRepository].
type cardRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewCardRepository constructs a [CardRepository] backed by the provided
// database connection and logger.
func NewCardRepository(db *DB, logger *logger.Logger) CardRepository {
	logger.Debug().Msg("creating card repository")
	return &cardRepository{
		db:     db,
		logger: logger,
	}
}

// CreateCard reserves a card slot against maxCards and inserts the card in
// the same transaction. A zero ProfileID registers an unassigned card.
func (r *cardRepository) CreateCard(ctx context.Context, card models.Card) (models.Card, error) {
	log := logger.FromContext(ctx)

	var created models.Card
	err := r.db.inTx(ctx, "cardRepository.CreateCard", func(tx *sql.Tx) error {
		if err := adjustUsage(ctx, tx, card.OrganizationID, models.ResourceCards, 1); err != nil {
			return err
		}

		c, err := scanCard(tx.QueryRowContext(ctx, createCard,
			card.UserID,
			card.OrganizationID,
			nullableID(card.ProfileID),
			card.CardID,
			card.SerialNumber,
			card.ChipType,
		))
		if err != nil {
			return classifyCardError(err)
		}

		created = c
		return nil
	})
	if err != nil {
		log.Err(err).
			Str("func", "cardRepository.CreateCard").
			Int64("organization_id", card.OrganizationID).
			Str("card_id", card.CardID).
			Msg("failed to create card")
		return models.Card{}, err
	}

	return created, nil
}

func (r *cardRepository) ListCards(ctx context.Context, organizationID int64) ([]models.Card, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listCards, organizationID)
	if err != nil {
		log.Err(err).
			Str("func", "cardRepository.ListCards").
			Int64("organization_id", organizationID).
			Msg("failed to query cards")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	cards := make([]models.Card, 0)
	for rows.Next() {
		card, scanErr := scanCard(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "cardRepository.ListCards").
				Msg("failed to scan card row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		cards = append(cards, card)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return cards, nil
}

func (r *cardRepository) GetCard(ctx context.Context, organizationID, id int64) (models.Card, error) {
	log := logger.FromContext(ctx)

	card, err := scanCard(r.db.QueryRowContext(ctx, getCard, organizationID, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Card{}, ErrCardNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "cardRepository.GetCard").
			Int64("id", id).
			Msg("failed to query card")
		return models.Card{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return card, nil
}

// AssignCard points a card at another profile. Write-protected cards are
// locked to their current profile and return [ErrCardWriteProtected].
func (r *cardRepository) AssignCard(ctx context.Context, organizationID, id, profileID int64) (models.Card, error) {
	log := logger.FromContext(ctx)

	var assigned models.Card
	err := r.db.inTx(ctx, "cardRepository.AssignCard", func(tx *sql.Tx) error {
		var writeProtected bool
		err := tx.QueryRowContext(ctx, lockCard, organizationID, id).Scan(&writeProtected)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrCardNotFound
		}
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
		if writeProtected {
			return ErrCardWriteProtected
		}

		card, err := scanCard(tx.QueryRowContext(ctx, assignCard, organizationID, id, nullableID(profileID)))
		if err != nil {
			return classifyCardError(err)
		}

		assigned = card
		return nil
	})
	if err != nil {
		log.Err(err).
			Str("func", "cardRepository.AssignCard").
			Int64("id", id).
			Int64("profile_id", profileID).
			Msg("failed to assign card")
		return models.Card{}, err
	}

	return assigned, nil
}

// DeleteCard removes a card and releases its usage slot.
func (r *cardRepository) DeleteCard(ctx context.Context, organizationID, id int64) error {
	log := logger.FromContext(ctx)

	err := r.db.inTx(ctx, "cardRepository.DeleteCard", func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, deleteCard, organizationID, id)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
		if affected == 0 {
			return ErrCardNotFound
		}

		return adjustUsage(ctx, tx, organizationID, models.ResourceCards, -1)
	})
	if err != nil {
		log.Err(err).
			Str("func", "cardRepository.DeleteCard").
			Int64("id", id).
			Msg("failed to delete card")
		return err
	}

	return nil
}

// Tap records one physical tap: the card tap counter and last tap time, the
// profile cardTaps counter and a tap event move together or not at all.
func (r *cardRepository) Tap(ctx context.Context, cardID string, event models.Event) (models.TapResult, error) {
	log := logger.FromContext(ctx)

	var result models.TapResult
	err := r.db.inTx(ctx, "cardRepository.Tap", func(tx *sql.Tx) error {
		card, err := scanCard(tx.QueryRowContext(ctx, tapCard, cardID, event.Timestamp))
		if errors.Is(err, sql.ErrNoRows) {
			return ErrCardNotFound
		}
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
		if card.ProfileID == 0 {
			return ErrCardNotAssigned
		}

		var slug string
		err = tx.QueryRowContext(ctx, countProfileTap, card.ProfileID).Scan(&slug)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrCardNotAssigned
		}
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}

		event.ProfileID = card.ProfileID
		if err = insertEvent(ctx, tx, event); err != nil {
			return err
		}

		result = models.TapResult{Card: card, ProfileSlug: slug}
		return nil
	})
	if err != nil {
		log.Err(err).
			Str("func", "cardRepository.Tap").
			Str("card_id", cardID).
			Msg("failed to record tap")
		return models.TapResult{}, err
	}

	return result, nil
}

func nullableID(id int64) sql.NullInt64 {
	return sql.NullInt64{Int64: id, Valid: id != 0}
}

func classifyCardError(err error) error {
	switch postgresError(err) {
	case pgerrcode.UniqueViolation:
		return ErrCardAlreadyRegistered
	case pgerrcode.ForeignKeyViolation:
		return ErrProfileNotFound
	case "":
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	default:
		return fmt.Errorf("unexpected DB error: %w", err)
	}
}

func scanCard(row rowScanner) (models.Card, error) {
	var (
		c          models.Card
		lastTapped sql.NullTime
	)
	err := row.Scan(
		&c.ID,
		&c.UserID,
		&c.OrganizationID,
		&c.ProfileID,
		&c.CardID,
		&c.SerialNumber,
		&c.ChipType,
		&c.TapCount,
		&lastTapped,
		&c.IsActive,
		&c.IsWriteProtected,
		&c.CreatedAt,
	)
	if err != nil {
		return models.Card{}, err
	}
	if lastTapped.Valid {
		t := lastTapped.Time
		c.LastTapped = &t
	}
	return c, nil
}
