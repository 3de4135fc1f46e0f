package repositories

import (
	"context"

	"github.com/anonto42/devfeed/backend/internal/models"
	"gorm.io/gorm"
)

// DashboardRepositoryStore defines the interface for dashboard repository cards
type DashboardRepositoryStore interface {
	CreateRepository(ctx context.Context, repo *models.DashboardRepository) error
	GetRepositoriesByUserID(ctx context.Context, userID string) ([]models.DashboardRepository, error)
}

// PostgresDashboardRepository implements DashboardRepositoryStore for PostgreSQL
type PostgresDashboardRepository struct {
	db *gorm.DB
}

// NewPostgresDashboardRepository creates a new PostgresDashboardRepository
func NewPostgresDashboardRepository(db *gorm.DB) *PostgresDashboardRepository {
	return &PostgresDashboardRepository{db: db}
}

func (r *PostgresDashboardRepository) CreateRepository(ctx context.Context, repo *models.DashboardRepository) error {
	return r.db.WithContext(ctx).Create(repo).Error
}

func (r *PostgresDashboardRepository) GetRepositoriesByUserID(ctx context.Context, userID string) ([]models.DashboardRepository, error) {
	repos := []models.DashboardRepository{}
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&repos).Error; err != nil {
		return nil, err
	}
	return repos, nil
}
