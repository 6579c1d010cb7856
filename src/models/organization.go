package models

import "etix/src/types"

type Organization struct {
	ID           uint   `gorm:"primarykey" json:"id"`
	Name         string `json:"name,omitempty"`
	About        string `json:"about,omitempty"`
	ContactEmail string `json:"email,omitempty"`
	Slug         string `gorm:"uniqueIndex" json:"slug"`

	Events  []Event     `gorm:"foreignKey:org_id" json:"-"`
	Members []OrgMember `gorm:"foreignKey:org_id" json:"-"`

	types.Timestamps
}

type OrgMember struct {
	ID     uint   `gorm:"primarykey" json:"id"`
	OrgID  uint   `gorm:"uniqueIndex:org_member" json:"org_id,omitempty"`
	UserID uint   `gorm:"uniqueIndex:org_member" json:"user_id,omitempty"`
	Role   string `gorm:"default:'OWNER'" json:"role,omitempty"`

	Organization Organization `gorm:"foreignKey:org_id" json:"-"`
	User         User         `gorm:"foreignKey:user_id" json:"-"`

	types.Timestamps
}
