package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CustomerProductHistory struct {
	Id           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CustomerId   uuid.UUID  `gorm:"type:uuid;not null;index"`
	AdminId      uuid.UUID  `gorm:"type:uuid;not null;index"`
	ProductId    uuid.UUID  `gorm:"type:uuid;not null;index"`
	PurchaseDate time.Time  `gorm:"not null"`
	ExpiryDate   *time.Time `gorm:"index"`
	RenewalDate  *time.Time
	RenewPeriod  string    `gorm:"type:varchar(20);not null"`
	Renewal      bool      `gorm:"not null"`
	Status       bool      `gorm:"not null;index"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`

	Product  *Product  `gorm:"foreignKey:ProductId"`
	Customer *Customer `gorm:"foreignKey:CustomerId"`
	Admin    *Admin    `gorm:"foreignKey:AdminId"`
}

func (CustomerProductHistory) TableName() string {
	return "customer_product_histories"
}

func (h *CustomerProductHistory) BeforeCreate(tx *gorm.DB) error {
	if h.Id == uuid.Nil {
		h.Id = uuid.New()
	}
	return nil
}

// ProductRenewalHistory rows are insert-only.
type ProductRenewalHistory struct {
	Id                       uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CustomerProductHistoryId uuid.UUID  `gorm:"type:uuid;not null;index"`
	ProductId                uuid.UUID  `gorm:"type:uuid;not null"`
	PurchaseDate             time.Time  `gorm:"not null"`
	ExpiryDate               *time.Time
	RenewalDate              *time.Time
	Metadata                 datatypes.JSONMap
	CreatedAt                time.Time `gorm:"autoCreateTime"`
}

func (ProductRenewalHistory) TableName() string {
	return "product_renewal_histories"
}

func (r *ProductRenewalHistory) BeforeCreate(tx *gorm.DB) error {
	if r.Id == uuid.Nil {
		r.Id = uuid.New()
	}
	return nil
}
