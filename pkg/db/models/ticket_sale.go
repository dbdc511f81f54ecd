package models

import (
	"time"

	"github.com/google/uuid"
)

// TicketSale is one completed fulfillment: a reference code was issued and a
// ticket email dispatched. Rows are append-only.
type TicketSale struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Reference string    `gorm:"not null;index" json:"reference"`
	Email     string    `gorm:"not null" json:"email"`
	Name      string    `json:"name"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	Status    string    `gorm:"not null" json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

func (TicketSale) TableName() string {
	return "ticket_sales"
}
