package models

import "etix/src/types"

type Payment struct {
	ID          uint                `gorm:"primarykey" json:"id"`
	OrderID     uint                `gorm:"uniqueIndex" json:"order_id,omitempty"`
	Provider    string              `json:"provider,omitempty"`
	Status      types.PaymentStatus `gorm:"default:'PENDING'" json:"status,omitempty"`
	AmountCents int64               `json:"amount_cents"`

	Order Order `gorm:"foreignKey:order_id" json:"-"`

	types.Timestamps
}
