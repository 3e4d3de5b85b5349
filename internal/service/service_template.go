// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"

	"github.com/MKhiriev/tapcard/internal/logger"
	"github.com/MKhiriev/tapcard/internal/store"
	"github.com/MKhiriev/tapcard/models"
)

type templateService struct {
	templateRepository store.TemplateRepository

	logger *logger.Logger
}

func NewTemplateService(templateRepository store.TemplateRepository, logger *logger.Logger) TemplateService {
	return &templateService{
		templateRepository: templateRepository,
		logger:             logger,
	}
}

// ListTemplates returns the active catalogue, optionally narrowed to
// premium or free designs.
func (s *templateService) ListTemplates(ctx context.Context, filter models.TemplateFilter) ([]models.Template, error) {
	return s.templateRepository.ListTemplates(ctx, filter)
}

// GetTemplate returns an active template. Retired templates are reported
// as not found.
func (s *templateService) GetTemplate(ctx context.Context, slug string) (models.Template, error) {
	template, err := s.templateRepository.GetTemplateBySlug(ctx, slug)
	if err != nil {
		return models.Template{}, err
	}
	if !template.IsActive {
		return models.Template{}, store.ErrTemplateNotFound
	}

	return template, nil
}
