package specification

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const historyTable = "customer_product_histories"

// HistoryByID filters a product history entry by id.
type HistoryByID struct {
	ID uuid.UUID
}

func (s HistoryByID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where(historyTable+".id = ?", s.ID)
}

// HistoryOwnedByTenant is the mandatory tenant filter for history queries.
type HistoryOwnedByTenant struct {
	AdminID uuid.UUID
}

func (s HistoryOwnedByTenant) Apply(db *gorm.DB) *gorm.DB {
	return db.Where(historyTable+".admin_id = ?", s.AdminID)
}

// HistoryOfPartner narrows to entries whose customer belongs to the partner.
type HistoryOfPartner struct {
	PartnerID uuid.UUID
}

func (s HistoryOfPartner) Apply(db *gorm.DB) *gorm.DB {
	sub := newSubquery(db).Table("customers").Select("customers.id").
		Where("customers.partner_id = ?", s.PartnerID)
	return db.Where(historyTable+".customer_id IN (?)", sub)
}

// ActiveEntitlement keeps only entries with status = true.
type ActiveEntitlement struct{}

func (s ActiveEntitlement) Apply(db *gorm.DB) *gorm.DB {
	return db.Where(historyTable+".status = ?", true)
}

// RenewalEligible keeps only entries with renewal = true.
type RenewalEligible struct{}

func (s RenewalEligible) Apply(db *gorm.DB) *gorm.DB {
	return db.Where(historyTable+".renewal = ?", true)
}

// ExpiryBetween filters expiry_date into the closed range [Start, End].
type ExpiryBetween struct {
	Start time.Time
	End   time.Time
}

func (s ExpiryBetween) Apply(db *gorm.DB) *gorm.DB {
	return db.Where(historyTable+".expiry_date BETWEEN ? AND ?", s.Start, s.End)
}

// ProductNameContains matches the product name case-insensitively.
type ProductNameContains struct {
	Name string
}

func (s ProductNameContains) Apply(db *gorm.DB) *gorm.DB {
	sub := newSubquery(db).Table("products").Select("products.id").
		Where(`LOWER(products.name) LIKE ? ESCAPE '\'`, containsPattern(s.Name))
	return db.Where(historyTable+".product_id IN (?)", sub)
}

// CustomerMatches matches the customer's company name or contact person. When
// PartnerSearch is set the partner condition is nested under the customer
// match: the same customer must satisfy both.
type CustomerMatches struct {
	Search        string
	PartnerSearch string
}

func (s CustomerMatches) Apply(db *gorm.DB) *gorm.DB {
	pattern := containsPattern(s.Search)
	sub := newSubquery(db).Table("customers").Select("customers.id").
		Where(`(LOWER(customers.company_name) LIKE ? ESCAPE '\' OR LOWER(customers.contact_person) LIKE ? ESCAPE '\')`, pattern, pattern)
	if s.PartnerSearch != "" {
		sub = sub.Joins("JOIN partners ON partners.id = customers.partner_id")
		sub = partnerNameWhere(sub, s.PartnerSearch)
	}
	return db.Where(historyTable+".customer_id IN (?)", sub)
}

// PartnerMatches matches the partner of the entry's customer, without any
// customer text condition.
type PartnerMatches struct {
	Search string
}

func (s PartnerMatches) Apply(db *gorm.DB) *gorm.DB {
	sub := newSubquery(db).Table("customers").Select("customers.id").
		Joins("JOIN partners ON partners.id = customers.partner_id")
	sub = partnerNameWhere(sub, s.Search)
	return db.Where(historyTable+".customer_id IN (?)", sub)
}

func partnerNameWhere(db *gorm.DB, term string) *gorm.DB {
	pattern := containsPattern(term)
	return db.Where(
		`(LOWER(partners.company_name) LIKE ? ESCAPE '\' OR LOWER(partners.first_name) LIKE ? ESCAPE '\' OR LOWER(partners.last_name) LIKE ? ESCAPE '\')`,
		pattern, pattern, pattern,
	)
}

// newSubquery starts a fresh statement on the same connection (and transaction, if any).
func newSubquery(db *gorm.DB) *gorm.DB {
	return db.Session(&gorm.Session{NewDB: true})
}

// RenewalsOfHistory filters product_renewal_histories by their back-reference.
type RenewalsOfHistory struct {
	HistoryID uuid.UUID
}

func (s RenewalsOfHistory) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("customer_product_history_id = ?", s.HistoryID)
}
