package dto

import (
	"time"

	"github.com/google/uuid"
)

// UpdateHistoryRequest is the PATCH body. Omitted fields keep their value.
type UpdateHistoryRequest struct {
	PurchaseDate *string `json:"purchase_date" validate:"omitempty,datetime=2006-01-02"`
	ExpiryDate   *string `json:"expiry_date" validate:"omitempty,datetime=2006-01-02"`
	RenewalDate  *string `json:"renewal_date" validate:"omitempty,datetime=2006-01-02"`
	Renewal      *bool   `json:"renewal"`
	Status       *bool   `json:"status"`
}

type HistoryResponse struct {
	Id           uuid.UUID  `json:"id"`
	CustomerId   uuid.UUID  `json:"customer_id"`
	ProductId    uuid.UUID  `json:"product_id"`
	PurchaseDate time.Time  `json:"purchase_date"`
	ExpiryDate   *time.Time `json:"expiry_date"`
	RenewalDate  *time.Time `json:"renewal_date"`
	RenewPeriod  string     `json:"renew_period"`
	Renewal      bool       `json:"renewal"`
	Status       bool       `json:"status"`
}

type RenewalRecordResponse struct {
	Id                       uuid.UUID              `json:"id"`
	CustomerProductHistoryId uuid.UUID              `json:"customer_product_history_id"`
	ProductId                uuid.UUID              `json:"product_id"`
	PurchaseDate             time.Time              `json:"purchase_date"`
	ExpiryDate               *time.Time             `json:"expiry_date"`
	RenewalDate              *time.Time             `json:"renewal_date"`
	Metadata                 map[string]interface{} `json:"metadata"`
	CreatedAt                time.Time              `json:"created_at"`
}

type UpdateHistoryResponse struct {
	History  *HistoryResponse       `json:"history"`
	Archived *RenewalRecordResponse `json:"archived"`
}
