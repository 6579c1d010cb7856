package models

import (
	"etix/src/types"

	"github.com/google/uuid"
)

type Order struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	UserID      uint      `json:"user_id,omitempty"`
	Email       string    `json:"email,omitempty"`
	StudentID   string    `json:"student_id,omitempty"`
	ReferenceID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid()" json:"reference_id"`

	User    *User       `gorm:"foreignKey:user_id" json:"user,omitempty"`
	Items   []OrderItem `gorm:"foreignKey:order_id" json:"items,omitempty"`
	Payment *Payment    `gorm:"foreignKey:order_id" json:"payment,omitempty"`
	Revenue *Revenue    `gorm:"foreignKey:order_id" json:"revenue,omitempty"`

	types.Timestamps
}

type OrderItem struct {
	ID             uint  `gorm:"primarykey" json:"id"`
	OrderID        uint  `json:"order_id,omitempty"`
	TicketID       uint  `json:"ticket_id,omitempty"`
	Qty            uint  `json:"qty,omitempty"`
	UnitPriceCents int64 `json:"unit_price_cents"`

	Order  Order  `gorm:"foreignKey:order_id" json:"-"`
	Ticket Ticket `gorm:"foreignKey:ticket_id" json:"ticket,omitempty"`

	types.Timestamps
}
