package services

import (
	"context"
	"errors"

	"github.com/omnireach/crm-backend/internal/models"
	"github.com/omnireach/crm-backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// TemplateService handles reusable campaign message templates
type TemplateService struct {
	templateRepo repositories.TemplateRepository
}

// NewTemplateService creates a new TemplateService
func NewTemplateService(templateRepo repositories.TemplateRepository) *TemplateService {
	return &TemplateService{templateRepo: templateRepo}
}

// CreateTemplate creates a new template
func (s *TemplateService) CreateTemplate(ctx context.Context, template *models.Template) error {
	return s.templateRepo.Create(ctx, template)
}

// GetTemplateByID retrieves a template by ID
func (s *TemplateService) GetTemplateByID(ctx context.Context, id primitive.ObjectID) (*models.Template, error) {
	template, err := s.templateRepo.FindByID(ctx, id)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrTemplateNotFound
	}
	return template, err
}

// GetAllTemplates lists all templates
func (s *TemplateService) GetAllTemplates(ctx context.Context) ([]*models.Template, error) {
	return s.templateRepo.FindAll(ctx)
}

// UpdateTemplate updates a template
func (s *TemplateService) UpdateTemplate(ctx context.Context, template *models.Template) error {
	if _, err := s.GetTemplateByID(ctx, template.ID); err != nil {
		return err
	}
	return s.templateRepo.Update(ctx, template)
}

// DeleteTemplate deletes a template
func (s *TemplateService) DeleteTemplate(ctx context.Context, id primitive.ObjectID) error {
	if _, err := s.GetTemplateByID(ctx, id); err != nil {
		return err
	}
	return s.templateRepo.Delete(ctx, id)
}
