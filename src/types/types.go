package types

import (
	"time"

	"gorm.io/gorm"
)

type Timestamps struct {
	CreatedAt time.Time      `gorm:"autoCreateTime:nano" json:"created_at,omitempty"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime:nano" json:"updated_at,omitempty"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty,omitnil"`
}

type PaymentStatus string

const (
	PAYMENT_PENDING   PaymentStatus = "PENDING"
	PAYMENT_SUCCEEDED PaymentStatus = "SUCCEEDED"
	PAYMENT_FAILED    PaymentStatus = "FAILED"
)

type Role string

const (
	ROLE_GUEST Role = "guest"
	ROLE_USER  Role = "user"
	ROLE_ORG   Role = "org"
	ROLE_ADMIN Role = "admin"
)

const ORG_MEMBER_OWNER = "OWNER"

// LoginRequestBody doubles for the signup and login forms posted to /login.
// The submitted fields decide which path runs: a present OrgName marks a signup.
type LoginRequestBody struct {
	OrgName  string `json:"org_name,omitempty" form:"orgName"`
	Name     string `json:"name,omitempty" form:"name"`
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required,min=8"`
}

type CreateEventRequestBody struct {
	Title       string  `json:"title" form:"eventName" binding:"required"`
	Description string  `json:"description,omitempty" form:"eventDescription"`
	Venue       string  `json:"venue" form:"eventVenue" binding:"required"`
	StartsAt    string  `json:"starts_at" form:"eventDate" binding:"required,eventdate"`
	EndsAt      *string `json:"ends_at,omitempty" form:"eventEndDate" binding:"omitempty,eventdate"`
	Price       string  `json:"price" form:"ticketPrice" binding:"required"`
	Quantity    string  `json:"quantity" form:"ticketQuantity" binding:"required"`
	Capacity    *uint   `json:"capacity,omitempty" form:"eventCapacity"`
}

type RegisterRequestBody struct {
	EventID       uint   `json:"event" form:"event" binding:"required"`
	FullName      string `json:"fullname" form:"fullname" binding:"required"`
	Email         string `json:"email" form:"email" binding:"required,email"`
	StudentID     string `json:"student_id" form:"studentId" binding:"required"`
	PaymentMethod string `json:"payment_method" form:"paymentMethod" binding:"required"`
	Qty           uint   `json:"qty,omitempty" form:"qty"`
}

type UpdateOrderRequestParams struct {
	OrderID uint   `uri:"id" binding:"required"`
	Action  string `uri:"action" binding:"required,oneof=pay cancel"`
}

// EventListRow is the public listing projection: event fields plus the
// owning org's name and the cheapest ticket tier.
type EventListRow struct {
	EventID       uint      `json:"event_id"`
	Title         string    `json:"title"`
	Venue         string    `json:"venue"`
	StartsAt      time.Time `json:"starts_at"`
	EndsAt        time.Time `json:"ends_at"`
	OrgName       string    `json:"org_name"`
	MinPriceCents *int64    `json:"price_cents,omitempty"`
}

type RevenueReportRow struct {
	OrgID        uint   `json:"org_id,omitempty"`
	OrgName      string `json:"org_name,omitempty"`
	EventID      uint   `json:"event_id"`
	Title        string `json:"title"`
	TicketsSold  int64  `json:"tickets_sold"`
	RevenueCents int64  `json:"revenue_cents"`
	FeeCents     int64  `json:"fee_cents"`
}

type PendingOrderRow struct {
	OrderID     uint      `json:"order_id"`
	BuyerName   string    `json:"buyer_name"`
	BuyerEmail  string    `json:"buyer_email"`
	EventTitle  string    `json:"event_title"`
	AmountCents int64     `json:"amount_cents"`
	CreatedAt   time.Time `json:"created_at"`
}
