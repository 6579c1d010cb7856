package models

import (
	"etix/src/types"
	"time"
)

type Event struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	OrgID       uint      `json:"org_id,omitempty"`
	Title       string    `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	Venue       string    `json:"venue,omitempty"`
	StartsAt    time.Time `json:"starts_at,omitempty"`
	EndsAt      time.Time `gorm:"check:ends_after_start,ends_at > starts_at" json:"ends_at,omitempty"`
	Capacity    uint      `json:"capacity,omitempty"`
	Published   bool      `gorm:"default:false" json:"published,omitempty"`

	Organization Organization `gorm:"foreignKey:org_id" json:"-"`
	Tickets      []Ticket     `gorm:"foreignKey:event_id" json:"tickets,omitempty"`

	types.Timestamps
}
