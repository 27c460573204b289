package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Admin struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyName string    `gorm:"type:varchar(255)"`
	FirstName   string    `gorm:"type:varchar(100)"`
	LastName    string    `gorm:"type:varchar(100)"`
	Email       string    `gorm:"type:varchar(255);uniqueIndex;not null"`
}

func (Admin) TableName() string {
	return "admins"
}

func (a *Admin) BeforeCreate(tx *gorm.DB) error {
	if a.Id == uuid.Nil {
		a.Id = uuid.New()
	}
	return nil
}

type Partner struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey"`
	AdminId     uuid.UUID `gorm:"type:uuid;not null;index"`
	CompanyName string    `gorm:"type:varchar(255)"`
	FirstName   string    `gorm:"type:varchar(100)"`
	LastName    string    `gorm:"type:varchar(100)"`
	Email       string    `gorm:"type:varchar(255)"`
}

func (Partner) TableName() string {
	return "partners"
}

func (p *Partner) BeforeCreate(tx *gorm.DB) error {
	if p.Id == uuid.Nil {
		p.Id = uuid.New()
	}
	return nil
}

type Customer struct {
	Id            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	AdminId       uuid.UUID  `gorm:"type:uuid;not null;index"`
	PartnerId     *uuid.UUID `gorm:"type:uuid;index"`
	CompanyName   string     `gorm:"type:varchar(255)"`
	ContactPerson string     `gorm:"type:varchar(255)"`
	Email         string     `gorm:"type:varchar(255)"`

	Partner *Partner `gorm:"foreignKey:PartnerId"`
}

func (Customer) TableName() string {
	return "customers"
}

func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.Id == uuid.Nil {
		c.Id = uuid.New()
	}
	return nil
}

type Product struct {
	Id      uuid.UUID `gorm:"type:uuid;primaryKey"`
	AdminId uuid.UUID `gorm:"type:uuid;not null;index"`
	Name    string    `gorm:"type:varchar(255);not null"`
	Price   float64   `gorm:"type:decimal(10,2)"`
}

func (Product) TableName() string {
	return "products"
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.Id == uuid.Nil {
		p.Id = uuid.New()
	}
	return nil
}

// AllModels lists every table owned by this service, in migration order.
func AllModels() []interface{} {
	return []interface{}{
		&Admin{},
		&Partner{},
		&Customer{},
		&Product{},
		&Plan{},
		&Subscription{},
		&CustomerProductHistory{},
		&ProductRenewalHistory{},
	}
}
