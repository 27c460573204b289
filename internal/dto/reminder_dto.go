package dto

import (
	"time"

	"github.com/google/uuid"
)

// ReminderQuery is bound from the query string of GET /api/reminders.
// startDate and endDate accept 2006-01-02 or RFC 3339.
type ReminderQuery struct {
	TimeWindow     string `query:"timeWindow"`
	StartDate      string `query:"startDate"`
	EndDate        string `query:"endDate"`
	ProductName    string `query:"productName" validate:"max=255"`
	CustomerSearch string `query:"customerSearch" validate:"max=255"`
	PartnerSearch  string `query:"partnerSearch" validate:"max=255"`
}

type ProductSummary struct {
	Id    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Price float64   `json:"price"`
}

type PartnerSummary struct {
	Id          uuid.UUID `json:"id"`
	CompanyName string    `json:"company_name"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
}

type CustomerSummary struct {
	Id            uuid.UUID       `json:"id"`
	CompanyName   string          `json:"company_name"`
	ContactPerson string          `json:"contact_person"`
	Email         string          `json:"email"`
	Partner       *PartnerSummary `json:"partner"`
}

type AdminSummary struct {
	Id          uuid.UUID `json:"id"`
	CompanyName string    `json:"company_name"`
	Email       string    `json:"email"`
}

type ReminderResponse struct {
	Id           uuid.UUID        `json:"id"`
	PurchaseDate time.Time        `json:"purchase_date"`
	ExpiryDate   *time.Time       `json:"expiry_date"`
	RenewalDate  *time.Time       `json:"renewal_date"`
	RenewPeriod  string           `json:"renew_period"`
	Renewal      bool             `json:"renewal"`
	Status       bool             `json:"status"`
	Product      *ProductSummary  `json:"product"`
	Customer     *CustomerSummary `json:"customer"`
	Admin        *AdminSummary    `json:"admin"`
}

type ReminderListResponse struct {
	Window    string              `json:"window"`
	StartDate time.Time           `json:"start_date"`
	EndDate   time.Time           `json:"end_date"`
	Count     int                 `json:"count"`
	Reminders []*ReminderResponse `json:"reminders"`
}
