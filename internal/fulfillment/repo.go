package fulfillment

import (
	"context"

	"gorm.io/gorm"

	"github.com/maritalgrace/tickets-backend/pkg/db/models"
)

// Repository persists completed sales for the guest-list dashboard.
type Repository interface {
	Append(ctx context.Context, sale *models.TicketSale) error
	List(ctx context.Context) ([]models.TicketSale, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository builds the gorm-backed sales repository.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Append(ctx context.Context, sale *models.TicketSale) error {
	return r.db.WithContext(ctx).Create(sale).Error
}

func (r *gormRepository) List(ctx context.Context) ([]models.TicketSale, error) {
	var sales []models.TicketSale
	err := r.db.WithContext(ctx).Order("created_at ASC").Find(&sales).Error
	if err != nil {
		return nil, err
	}
	return sales, nil
}
