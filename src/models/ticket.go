package models

import "etix/src/types"

// Ticket is a priced, capacity-limited tier of one Event. PriceCents is
// immutable once referenced by an OrderItem; orders snapshot the unit price.
type Ticket struct {
	ID         uint  `gorm:"primarykey" json:"id"`
	EventID    uint  `json:"event_id,omitempty"`
	PriceCents int64 `json:"price_cents"`
	Quantity   uint  `json:"quantity,omitempty"`

	Event Event `gorm:"foreignKey:event_id" json:"event,omitempty"`

	types.Timestamps
}
