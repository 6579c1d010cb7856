package models

import "etix/src/types"

type User struct {
	ID           uint    `gorm:"primarykey" json:"id"`
	Name         string  `json:"name,omitempty"`
	Email        string  `gorm:"uniqueIndex" json:"email,omitempty"`
	PasswordHash *string `json:"-"`
	StudentID    *string `json:"student_id,omitempty"`
	IsAdmin      bool    `gorm:"default:false" json:"is_admin,omitempty"`

	Orders      []Order     `gorm:"foreignKey:user_id" json:"orders,omitempty"`
	Memberships []OrgMember `gorm:"foreignKey:user_id" json:"-"`

	types.Timestamps
}
