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
)

type templateRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewTemplateRepository constructs a [TemplateRepository] backed by the
// provided database connection and logger.
func NewTemplateRepository(db *DB, logger *logger.Logger) TemplateRepository {
	logger.Debug().Msg("creating template repository")
	return &templateRepository{
		db:     db,
		logger: logger,
	}
}

func (r *templateRepository) ListTemplates(ctx context.Context, filter models.TemplateFilter) ([]models.Template, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListTemplatesQuery(ctx, filter)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "templateRepository.ListTemplates").
			Msg("failed to query templates")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	templates := make([]models.Template, 0)
	for rows.Next() {
		t, scanErr := scanTemplate(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "templateRepository.ListTemplates").
				Msg("failed to scan template row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		templates = append(templates, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return templates, nil
}

func (r *templateRepository) GetTemplate(ctx context.Context, templateID int64) (models.Template, error) {
	return r.getOne(ctx, "templateRepository.GetTemplate", getTemplate, templateID)
}

func (r *templateRepository) GetTemplateBySlug(ctx context.Context, slug string) (models.Template, error) {
	return r.getOne(ctx, "templateRepository.GetTemplateBySlug", getTemplateBySlug, slug)
}

func (r *templateRepository) getOne(ctx context.Context, funcName, query string, key any) (models.Template, error) {
	log := logger.FromContext(ctx)

	t, err := scanTemplate(r.db.QueryRowContext(ctx, query, key))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Template{}, ErrTemplateNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", funcName).
			Any("key", key).
			Msg("failed to query template")
		return models.Template{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return t, nil
}

func scanTemplate(row rowScanner) (models.Template, error) {
	var t models.Template
	err := row.Scan(
		&t.ID,
		&t.Name,
		&t.Slug,
		&t.Category,
		jsonb{&t.Structure},
		jsonb{&t.DefaultColors},
		jsonb{&t.DefaultFonts},
		&t.IsPremium,
		&t.IsActive,
		&t.UsageCount,
		&t.CreatedAt,
	)
	return t, err
}
