package repositories

import (
	"context"

	"github.com/fundspace/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRepository defines the interface for profile data operations
type UserRepository interface {
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetUsers(ctx context.Context, page, limit int) ([]models.User, int64, error)
	SearchMembers(ctx context.Context, query string, limit int) ([]models.User, error)
}

// PostgresUserRepository implements UserRepository for PostgreSQL
type PostgresUserRepository struct {
	db *gorm.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository
func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// GetUserByID retrieves a profile by ID from PostgreSQL
func (r *PostgresUserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUsers retrieves the member directory with pagination
func (r *PostgresUserRepository) GetUsers(ctx context.Context, page, limit int) ([]models.User, int64, error) {
	var users []models.User
	var total int64

	r.db.WithContext(ctx).Model(&models.User{}).Count(&total)

	offset := (page - 1) * limit
	err := r.db.WithContext(ctx).
		Order("display_name ASC").
		Offset(offset).Limit(limit).
		Find(&users).Error
	return users, total, err
}

// SearchMembers searches profiles by display name, title or organization
// name (case-insensitive substring match)
func (r *PostgresUserRepository) SearchMembers(ctx context.Context, query string, limit int) ([]models.User, error) {
	var users []models.User
	pattern := "%" + query + "%"
	err := r.db.WithContext(ctx).
		Where("LOWER(display_name) LIKE LOWER(?) OR LOWER(title) LIKE LOWER(?) OR LOWER(organization_name) LIKE LOWER(?)",
			pattern, pattern, pattern).
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}
