package utils

import (
	"errors"
	"etix/src/config"
	"etix/src/db"
	"etix/src/models"
	"etix/src/types"
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gosimple/slug"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Sentinel errors for conditions the handlers translate into user-visible
// responses. Anything else stays internal: raw database error text must
// never reach a response body.
var (
	ErrEmailTaken            = errors.New("an account with this email already exists")
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrEventNotFound         = errors.New("event does not exist")
	ErrTicketNotFound        = errors.New("no ticket tier is available for this event")
	ErrDuplicateRegistration = errors.New("this student is already registered for this event")
	ErrSoldOut               = errors.New("not enough tickets left for this event")
	ErrOrderNotFound         = errors.New("order does not exist")
	ErrNotAuthorized         = errors.New("not enough permissions to perform this action")
	ErrCheckInputs           = errors.New("could not create the event, please check your inputs")
)

func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

func GenerateJWT(email string, userID uint, role types.Role, orgID uint) (string, error) {
	now := time.Now()
	claims := types.Claims{
		Email:        email,
		Role:         role,
		Organization: orgID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(24 * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(config.SecretKey())
}

// ParseEventDate accepts the dashboard's datetime format and the plain HTML
// datetime-local fallback.
func ParseEventDate(value string) (time.Time, error) {
	dt, err := time.Parse(config.TIME_PARSE_FORMAT, value)
	if err == nil {
		return dt, nil
	}
	dt, err = time.Parse(config.TIME_PARSE_FORMAT_ALT, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("unrecognized date format: %q", value)
	}
	return dt, nil
}

// ParsePriceCents converts a decimal price string ("10.00") to integer cents.
func ParsePriceCents(value string) (int64, error) {
	price, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || price < 0 {
		return 0, fmt.Errorf("invalid price: %q", value)
	}
	return int64(math.Round(price * 100)), nil
}

// SignupOrganization creates the owner User, the Organization and the OWNER
// membership as one unit. A duplicate email aborts before any write.
func SignupOrganization(body *types.LoginRequestBody) (userID uint, orgID uint, err error) {
	hash, err := HashPassword(body.Password)
	if err != nil {
		return 0, 0, err
	}
	name := body.Name
	if name == "" {
		name = body.OrgName
	}
	db := db.GetDb()
	err = db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("email = ?", body.Email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrEmailTaken
		}
		user := models.User{
			Name:         name,
			Email:        body.Email,
			PasswordHash: &hash,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		org := models.Organization{
			Name:         body.OrgName,
			ContactEmail: body.Email,
			Slug:         slug.Make(body.OrgName),
		}
		if err := tx.Create(&org).Error; err != nil {
			return err
		}
		member := models.OrgMember{
			OrgID:  org.ID,
			UserID: user.ID,
			Role:   types.ORG_MEMBER_OWNER,
		}
		if err := tx.Create(&member).Error; err != nil {
			return err
		}
		userID = user.ID
		orgID = org.ID
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	return userID, orgID, nil
}

// AuthenticateUser verifies credentials and resolves the session role. A
// non-admin with an org membership is scoped to that org; a user with no
// membership logs in unscoped.
func AuthenticateUser(email, password string) (user *models.User, role types.Role, orgID uint, err error) {
	db := db.GetDb()
	var u models.User
	if err := db.Where(&models.User{Email: email}).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.ROLE_GUEST, 0, ErrInvalidCredentials
		}
		return nil, types.ROLE_GUEST, 0, err
	}
	if u.PasswordHash == nil || !CheckPassword(*u.PasswordHash, password) {
		return nil, types.ROLE_GUEST, 0, ErrInvalidCredentials
	}
	if u.IsAdmin {
		return &u, types.ROLE_ADMIN, 0, nil
	}
	var member models.OrgMember
	err = db.Where(&models.OrgMember{UserID: u.ID}).First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &u, types.ROLE_USER, 0, nil
		}
		return nil, types.ROLE_GUEST, 0, err
	}
	return &u, types.ROLE_ORG, member.OrgID, nil
}

const publishedEventsQuery = `
SELECT e.id AS event_id, e.title, e.venue, e.starts_at, e.ends_at,
       o.name AS org_name, MIN(t.price_cents) AS min_price_cents
FROM events e
JOIN organizations o ON o.id = e.org_id
LEFT JOIN tickets t ON t.event_id = e.id AND t.deleted_at IS NULL
WHERE e.published AND e.deleted_at IS NULL
GROUP BY e.id, o.name
ORDER BY e.starts_at ASC`

// ListPublishedEvents returns the public listing, soonest first. limit <= 0
// returns all rows.
func ListPublishedEvents(limit int) ([]types.EventListRow, error) {
	db := db.GetDb()
	rows := make([]types.EventListRow, 0)
	q := publishedEventsQuery
	args := []any{}
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}
	if err := db.Raw(q, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// CreateEventWithTicket delegates the atomic Event+Ticket insert to the
// create_event_with_ticket database routine. Validation happens before any
// write; database-level failures surface as a generic input error.
func CreateEventWithTicket(orgID uint, body *types.CreateEventRequestBody) (uint, error) {
	startsAt, err := ParseEventDate(body.StartsAt)
	if err != nil {
		return 0, err
	}
	endsAt := startsAt.Add(config.DEFAULT_EVENT_DURATION_HOURS * time.Hour)
	if body.EndsAt != nil {
		endsAt, err = ParseEventDate(*body.EndsAt)
		if err != nil {
			return 0, err
		}
	}
	priceCents, err := ParsePriceCents(body.Price)
	if err != nil {
		return 0, err
	}
	qty, err := strconv.Atoi(strings.TrimSpace(body.Quantity))
	if err != nil || qty < 1 {
		return 0, fmt.Errorf("invalid quantity: %q", body.Quantity)
	}
	capacity := uint(qty)
	if body.Capacity != nil && *body.Capacity > 0 {
		capacity = *body.Capacity
	}

	var eventID uint
	db := db.GetDb()
	err = db.Transaction(func(tx *gorm.DB) error {
		row := struct{ ID uint }{}
		if err := tx.
			Raw(
				"SELECT create_event_with_ticket(?, ?, ?, ?, ?, ?, ?, ?, ?) AS id",
				orgID, body.Title, body.Description, body.Venue,
				startsAt, endsAt, capacity, priceCents, qty,
			).
			Scan(&row).
			Error; err != nil {
			return err
		}
		eventID = row.ID
		return nil
	})
	if err != nil {
		log.Printf("create_event_with_ticket failed for org %d: %s\n", orgID, err.Error())
		return 0, ErrCheckInputs
	}
	return eventID, nil
}

const duplicateRegistrationQuery = `
SELECT COUNT(o.id)
FROM orders o
JOIN order_items oi ON oi.order_id = o.id
JOIN tickets t ON t.id = oi.ticket_id
WHERE o.student_id = ? AND t.event_id = ? AND o.deleted_at IS NULL`

const ticketsTakenQuery = `
SELECT COALESCE(SUM(oi.qty), 0)
FROM order_items oi
JOIN payments p ON p.order_id = oi.order_id
WHERE oi.ticket_id = ? AND p.status <> 'FAILED' AND oi.deleted_at IS NULL`

// RegisterForEvent converts a buyer submission into one consistent row set:
// User (if new), Order, OrderItem, Payment, Revenue. Any failure rolls the
// whole set back; no partial order state is ever visible.
//
// The duplicate guard is a pre-check inside the transaction, not a unique
// constraint; see DESIGN.md for the concurrency note. Each Order snapshots
// the submitted student id, so the guard sees every prior submission even
// when the account's stored student id has since changed.
func RegisterForEvent(body *types.RegisterRequestBody) (orderID uint, status types.PaymentStatus, err error) {
	qty := body.Qty
	if qty == 0 {
		qty = 1
	}
	db := db.GetDb()
	err = db.Transaction(func(tx *gorm.DB) error {
		var event models.Event
		if err := tx.Where(&models.Event{ID: body.EventID, Published: true}).First(&event).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}
			return err
		}
		var ticket models.Ticket
		if err := tx.
			Where(&models.Ticket{EventID: event.ID}).
			Order("price_cents asc").
			First(&ticket).
			Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTicketNotFound
			}
			return err
		}

		var dupes int64
		if err := tx.Raw(duplicateRegistrationQuery, body.StudentID, event.ID).Scan(&dupes).Error; err != nil {
			return err
		}
		if dupes > 0 {
			return ErrDuplicateRegistration
		}

		var taken int64
		if err := tx.Raw(ticketsTakenQuery, ticket.ID).Scan(&taken).Error; err != nil {
			return err
		}
		if taken+int64(qty) > int64(ticket.Quantity) {
			return ErrSoldOut
		}

		var user models.User
		if err := tx.
			Where(models.User{Email: body.Email}).
			Attrs(models.User{Name: body.FullName, StudentID: &body.StudentID}).
			FirstOrCreate(&user).
			Error; err != nil {
			return err
		}
		if user.StudentID == nil {
			if err := tx.
				Model(&models.User{}).
				Where("id = ?", user.ID).
				Update("student_id", body.StudentID).
				Error; err != nil {
				return err
			}
		}

		order := models.Order{UserID: user.ID, Email: body.Email, StudentID: body.StudentID}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		item := models.OrderItem{
			OrderID:        order.ID,
			TicketID:       ticket.ID,
			Qty:            qty,
			UnitPriceCents: ticket.PriceCents,
		}
		if err := tx.Create(&item).Error; err != nil {
			return err
		}

		amount := ticket.PriceCents * int64(qty)
		status = types.PAYMENT_SUCCEEDED
		if strings.EqualFold(body.PaymentMethod, "cash") {
			status = types.PAYMENT_PENDING
		}
		payment := models.Payment{
			OrderID:     order.ID,
			Provider:    body.PaymentMethod,
			Status:      status,
			AmountCents: amount,
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}
		revenue := models.Revenue{
			OrderID:          order.ID,
			PlatformFeeCents: config.PlatformFeeCents(amount),
		}
		if err := tx.Create(&revenue).Error; err != nil {
			return err
		}
		orderID = order.ID
		return nil
	})
	if err != nil {
		return 0, "", err
	}
	return orderID, status, nil
}

// GetOrgRevenueReport returns per-event sales for one org, counting only
// SUCCEEDED payments.
func GetOrgRevenueReport(orgID uint) ([]types.RevenueReportRow, error) {
	db := db.GetDb()
	rows := make([]types.RevenueReportRow, 0)
	if err := db.Raw("SELECT * FROM get_org_revenue_report(?)", orgID).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// GetAdminRevenueReport returns per-org, per-event sales across the platform.
func GetAdminRevenueReport() ([]types.RevenueReportRow, error) {
	db := db.GetDb()
	rows := make([]types.RevenueReportRow, 0)
	if err := db.Raw("SELECT * FROM get_admin_revenue_report()").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

const pendingOrdersQuery = `
SELECT o.id AS order_id, u.name AS buyer_name, o.email AS buyer_email,
       e.title AS event_title, p.amount_cents, o.created_at
FROM orders o
JOIN payments p ON p.order_id = o.id AND p.status = 'PENDING'
JOIN users u ON u.id = o.user_id
JOIN order_items oi ON oi.order_id = o.id
JOIN tickets t ON t.id = oi.ticket_id
JOIN events e ON e.id = t.event_id
WHERE o.deleted_at IS NULL`

// GetPendingOrders lists orders awaiting cash confirmation, scoped to the
// viewer: all of them for admins, only the org's own events otherwise.
func GetPendingOrders(role types.Role, orgID uint) ([]types.PendingOrderRow, error) {
	db := db.GetDb()
	rows := make([]types.PendingOrderRow, 0)
	q := pendingOrdersQuery
	args := []any{}
	if role != types.ROLE_ADMIN {
		q += " AND e.org_id = ?"
		args = append(args, orgID)
	}
	q += " ORDER BY o.created_at DESC"
	if err := db.Raw(q, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

const orderOwnershipQuery = `
SELECT COUNT(e.id)
FROM order_items oi
JOIN tickets t ON t.id = oi.ticket_id
JOIN events e ON e.id = t.event_id
WHERE oi.order_id = ? AND e.org_id = ?`

// UpdateOrderStatus transitions a Payment: "pay" confirms it, "cancel" fails
// it. Admins may mutate any order; an org owner only orders whose event
// belongs to their org, resolved through the OrderItem->Ticket->Event join.
func UpdateOrderStatus(orderID uint, action string, role types.Role, orgID uint) error {
	var newStatus types.PaymentStatus
	switch action {
	case "pay":
		newStatus = types.PAYMENT_SUCCEEDED
	case "cancel":
		newStatus = types.PAYMENT_FAILED
	default:
		return fmt.Errorf("unknown action: %q", action)
	}
	db := db.GetDb()
	return db.Transaction(func(tx *gorm.DB) error {
		var payment models.Payment
		if err := tx.Where(&models.Payment{OrderID: orderID}).First(&payment).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}
		if role != types.ROLE_ADMIN {
			if orgID == 0 {
				return ErrNotAuthorized
			}
			var owned int64
			if err := tx.Raw(orderOwnershipQuery, orderID, orgID).Scan(&owned).Error; err != nil {
				return err
			}
			if owned == 0 {
				return ErrNotAuthorized
			}
		}
		if err := tx.
			Model(&models.Payment{}).
			Where("order_id = ?", orderID).
			Update("status", newStatus).
			Error; err != nil {
			return err
		}
		return nil
	})
}
