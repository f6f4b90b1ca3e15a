package repositories

import (
	"context"

	"github.com/fundspace/backend/internal/models"
	"gorm.io/gorm"
)

// OrganizationRepository defines the interface for organization directory
// reads. Organizations are provisioned by the admin dashboard (out of scope)
// and read-only here.
type OrganizationRepository interface {
	GetOrganizationBySlug(ctx context.Context, slug string) (*models.Organization, error)
	GetOrganizations(ctx context.Context, orgType string, page, limit int) ([]models.Organization, int64, error)
	SearchByName(ctx context.Context, query string, limit int) ([]models.Organization, error)
}

// PostgresOrganizationRepository implements OrganizationRepository for PostgreSQL
type PostgresOrganizationRepository struct {
	db *gorm.DB
}

// NewPostgresOrganizationRepository creates a new PostgresOrganizationRepository
func NewPostgresOrganizationRepository(db *gorm.DB) *PostgresOrganizationRepository {
	return &PostgresOrganizationRepository{db: db}
}

func (r *PostgresOrganizationRepository) GetOrganizationBySlug(ctx context.Context, slug string) (*models.Organization, error) {
	var org models.Organization
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&org).Error; err != nil {
		return nil, err
	}
	return &org, nil
}

func (r *PostgresOrganizationRepository) GetOrganizations(ctx context.Context, orgType string, page, limit int) ([]models.Organization, int64, error) {
	var orgs []models.Organization
	var total int64

	q := r.db.WithContext(ctx).Model(&models.Organization{})
	if orgType != "" {
		q = q.Where("type = ?", orgType)
	}
	q.Count(&total)

	offset := (page - 1) * limit
	err := q.Order("name ASC").Offset(offset).Limit(limit).Find(&orgs).Error
	return orgs, total, err
}

// SearchByName searches organizations by name (case-insensitive substring
// match)
func (r *PostgresOrganizationRepository) SearchByName(ctx context.Context, query string, limit int) ([]models.Organization, error) {
	var orgs []models.Organization
	err := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE LOWER(?)", "%"+query+"%").
		Limit(limit).
		Find(&orgs).Error
	if err != nil {
		return nil, err
	}
	return orgs, nil
}
