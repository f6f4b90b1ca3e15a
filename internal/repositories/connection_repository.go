package repositories

import (
	"context"

	"github.com/fundspace/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ConnectionRepository defines the interface for connection data operations
type ConnectionRepository interface {
	CreateConnection(ctx context.Context, conn *models.Connection) error
	GetConnectionBetween(ctx context.Context, userA, userB uuid.UUID) (*models.Connection, error)
	UpdateConnectionStatus(ctx context.Context, id uint, status string) error
	DeleteConnection(ctx context.Context, id uint) error
	GetPendingRequestsFor(ctx context.Context, recipientID uuid.UUID) ([]models.Connection, error)
	GetConnectedUsers(ctx context.Context, userID uuid.UUID) ([]models.User, error)
}

// PostgresConnectionRepository implements ConnectionRepository for PostgreSQL
type PostgresConnectionRepository struct {
	db *gorm.DB
}

// NewPostgresConnectionRepository creates a new PostgresConnectionRepository
func NewPostgresConnectionRepository(db *gorm.DB) *PostgresConnectionRepository {
	return &PostgresConnectionRepository{db: db}
}

func (r *PostgresConnectionRepository) CreateConnection(ctx context.Context, conn *models.Connection) error {
	return r.db.WithContext(ctx).Create(conn).Error
}

// GetConnectionBetween looks up the row in either orientation, since the
// relationship is symmetric once accepted but stored directionally.
func (r *PostgresConnectionRepository) GetConnectionBetween(ctx context.Context, userA, userB uuid.UUID) (*models.Connection, error) {
	var conn models.Connection
	err := r.db.WithContext(ctx).
		Where("(requester_id = ? AND recipient_id = ?) OR (requester_id = ? AND recipient_id = ?)",
			userA, userB, userB, userA).
		First(&conn).Error
	if err != nil {
		return nil, err
	}
	return &conn, nil
}

func (r *PostgresConnectionRepository) UpdateConnectionStatus(ctx context.Context, id uint, status string) error {
	return r.db.WithContext(ctx).Model(&models.Connection{}).Where("id = ?", id).Update("status", status).Error
}

func (r *PostgresConnectionRepository) DeleteConnection(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Connection{}, id).Error
}

func (r *PostgresConnectionRepository) GetPendingRequestsFor(ctx context.Context, recipientID uuid.UUID) ([]models.Connection, error) {
	var requests []models.Connection
	if err := r.db.WithContext(ctx).
		Where("recipient_id = ? AND status = ?", recipientID, models.ConnectionStatusPending).
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// GetConnectedUsers retrieves all accepted counterparts for a user
func (r *PostgresConnectionRepository) GetConnectedUsers(ctx context.Context, userID uuid.UUID) ([]models.User, error) {
	var users []models.User
	subQuery1 := r.db.WithContext(ctx).Table("connections").Select("recipient_id").
		Where("requester_id = ? AND status = ?", userID, models.ConnectionStatusAccepted)
	subQuery2 := r.db.WithContext(ctx).Table("connections").Select("requester_id").
		Where("recipient_id = ? AND status = ?", userID, models.ConnectionStatusAccepted)

	if err := r.db.WithContext(ctx).
		Where("id IN (?) OR id IN (?)", subQuery1, subQuery2).
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
