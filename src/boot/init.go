package boot

import (
	"etix/src/db"
	"etix/src/models"
	"log"

	"gorm.io/gorm"
)

func InitDb() *gorm.DB {
	db := db.GetDb()

	err := db.AutoMigrate(
		&models.User{},
		&models.Organization{},
		&models.OrgMember{},
		&models.Event{},
		&models.Ticket{},
		&models.Order{},
		&models.OrderItem{},
		&models.Payment{},
		&models.Revenue{},
	)
	if err != nil {
		log.Fatalf("error on migration: %s", err.Error())
	}

	InstallRoutines(db)
	return db
}

// InstallRoutines creates the database routines the handlers delegate to.
// Their signatures are a fixed contract with the callers in utils.
func InstallRoutines(db *gorm.DB) {
	if err := db.Exec(createEventWithTicketSQL).Error; err != nil {
		log.Printf("Error creating FUNCTION create_event_with_ticket: %s\n", err.Error())
	}
	if err := db.Exec(getOrgRevenueReportSQL).Error; err != nil {
		log.Printf("Error creating FUNCTION get_org_revenue_report: %s\n", err.Error())
	}
	if err := db.Exec(getAdminRevenueReportSQL).Error; err != nil {
		log.Printf("Error creating FUNCTION get_admin_revenue_report: %s\n", err.Error())
	}
}

const createEventWithTicketSQL = `
CREATE OR REPLACE FUNCTION create_event_with_ticket(
	p_org_id bigint, p_title text, p_description text, p_venue text,
	p_starts_at timestamptz, p_ends_at timestamptz, p_capacity bigint,
	p_price_cents bigint, p_ticket_qty bigint
) RETURNS bigint AS $$
DECLARE
	v_event_id bigint;
BEGIN
	IF p_ends_at <= p_starts_at THEN
		RAISE EXCEPTION 'ends_at must be after starts_at';
	END IF;
	INSERT INTO events (org_id, title, description, venue, starts_at, ends_at, capacity, published, created_at, updated_at)
	VALUES (p_org_id, p_title, p_description, p_venue, p_starts_at, p_ends_at, p_capacity, TRUE, now(), now())
	RETURNING id INTO v_event_id;
	INSERT INTO tickets (event_id, price_cents, quantity, created_at, updated_at)
	VALUES (v_event_id, p_price_cents, p_ticket_qty, now(), now());
	RETURN v_event_id;
END;
$$ LANGUAGE plpgsql;
`

// Only SUCCEEDED payments count toward sold tickets and revenue. Events with
// no sales still appear with zero rows.
const getOrgRevenueReportSQL = `
CREATE OR REPLACE FUNCTION get_org_revenue_report(p_org_id bigint)
RETURNS TABLE(event_id bigint, title text, tickets_sold bigint, revenue_cents bigint, fee_cents bigint) AS $$
BEGIN
	RETURN QUERY
	SELECT e.id, e.title,
		COALESCE(SUM(oi.qty), 0)::bigint,
		COALESCE(SUM(oi.qty * oi.unit_price_cents), 0)::bigint,
		COALESCE(SUM(r.platform_fee_cents), 0)::bigint
	FROM events e
	LEFT JOIN tickets t ON t.event_id = e.id AND t.deleted_at IS NULL
	LEFT JOIN order_items oi ON oi.ticket_id = t.id AND oi.deleted_at IS NULL
	LEFT JOIN payments p ON p.order_id = oi.order_id AND p.status = 'SUCCEEDED'
	LEFT JOIN revenues r ON r.order_id = oi.order_id
	WHERE e.org_id = p_org_id AND e.deleted_at IS NULL
		AND (oi.id IS NULL OR p.id IS NOT NULL)
	GROUP BY e.id
	ORDER BY e.starts_at;
END;
$$ LANGUAGE plpgsql;
`

const getAdminRevenueReportSQL = `
CREATE OR REPLACE FUNCTION get_admin_revenue_report()
RETURNS TABLE(org_id bigint, org_name text, event_id bigint, title text, tickets_sold bigint, revenue_cents bigint, fee_cents bigint) AS $$
BEGIN
	RETURN QUERY
	SELECT o.id, o.name, e.id, e.title,
		COALESCE(SUM(oi.qty), 0)::bigint,
		COALESCE(SUM(oi.qty * oi.unit_price_cents), 0)::bigint,
		COALESCE(SUM(r.platform_fee_cents), 0)::bigint
	FROM organizations o
	JOIN events e ON e.org_id = o.id AND e.deleted_at IS NULL
	LEFT JOIN tickets t ON t.event_id = e.id AND t.deleted_at IS NULL
	LEFT JOIN order_items oi ON oi.ticket_id = t.id AND oi.deleted_at IS NULL
	LEFT JOIN payments p ON p.order_id = oi.order_id AND p.status = 'SUCCEEDED'
	LEFT JOIN revenues r ON r.order_id = oi.order_id
	WHERE o.deleted_at IS NULL
		AND (oi.id IS NULL OR p.id IS NOT NULL)
	GROUP BY o.id, e.id
	ORDER BY o.name, e.starts_at;
END;
$$ LANGUAGE plpgsql;
`
