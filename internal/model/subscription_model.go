package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Plan struct {
	Id       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name     string    `gorm:"type:varchar(255);not null"`
	Duration string    `gorm:"type:varchar(100)"`
	Price    float64   `gorm:"type:decimal(10,2);not null"`
}

func (Plan) TableName() string {
	return "plans"
}

func (p *Plan) BeforeCreate(tx *gorm.DB) error {
	if p.Id == uuid.Nil {
		p.Id = uuid.New()
	}
	return nil
}

type Subscription struct {
	Id          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	AdminId     uuid.UUID  `gorm:"type:uuid;not null;index"`
	PlanId      uuid.UUID  `gorm:"type:uuid;not null;index"`
	Status      string     `gorm:"type:varchar(20);not null;index"`
	StartsAt    time.Time  `gorm:"not null"`
	EndsAt      *time.Time `gorm:"index"`
	CancelledAt *time.Time
	RenewedAt   *time.Time
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`

	Plan *Plan `gorm:"foreignKey:PlanId"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}

func (s *Subscription) BeforeCreate(tx *gorm.DB) error {
	if s.Id == uuid.Nil {
		s.Id = uuid.New()
	}
	return nil
}
