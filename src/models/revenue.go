package models

import "etix/src/types"

// Revenue records the platform's fee cut for one Order, computed at
// registration time so later rate changes never rewrite history.
type Revenue struct {
	ID               uint  `gorm:"primarykey" json:"id"`
	OrderID          uint  `gorm:"uniqueIndex" json:"order_id,omitempty"`
	PlatformFeeCents int64 `json:"platform_fee_cents"`

	Order Order `gorm:"foreignKey:order_id" json:"-"`

	types.Timestamps
}
