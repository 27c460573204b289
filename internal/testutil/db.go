// Package testutil provides an in-memory database with the service schema
// and small seeding helpers for package tests.
package testutil

import (
	"io"
	"log"
	"testing"
	"time"

	"crm-renewal-be/internal/model"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB opens a private in-memory SQLite database and migrates every model.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.New(log.New(io.Discard, "", log.LstdFlags), logger.Config{LogLevel: logger.Silent}),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	// One connection keeps the shared in-memory database alive and serialises access.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.AutoMigrate(model.AllModels()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// Date returns midnight UTC of the given day.
func Date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DatePtr is Date returning a pointer.
func DatePtr(y int, m time.Month, d int) *time.Time {
	t := Date(y, m, d)
	return &t
}

// Tenant is a seeded admin with one product.
type Tenant struct {
	Admin   *model.Admin
	Product *model.Product
}

// SeedTenant creates an admin and a product named productName.
func SeedTenant(t *testing.T, db *gorm.DB, company, productName string) *Tenant {
	t.Helper()
	admin := &model.Admin{CompanyName: company, FirstName: "Ada", LastName: "Owner", Email: uuid.NewString() + "@example.com"}
	mustCreate(t, db, admin)
	product := &model.Product{AdminId: admin.Id, Name: productName, Price: 99}
	mustCreate(t, db, product)
	return &Tenant{Admin: admin, Product: product}
}

// SeedPartner creates a partner under adminId.
func SeedPartner(t *testing.T, db *gorm.DB, adminId uuid.UUID, company, first, last string) *model.Partner {
	t.Helper()
	p := &model.Partner{AdminId: adminId, CompanyName: company, FirstName: first, LastName: last}
	mustCreate(t, db, p)
	return p
}

// SeedCustomer creates a customer, optionally attached to a partner.
func SeedCustomer(t *testing.T, db *gorm.DB, adminId uuid.UUID, partnerId *uuid.UUID, company, contact string) *model.Customer {
	t.Helper()
	c := &model.Customer{AdminId: adminId, PartnerId: partnerId, CompanyName: company, ContactPerson: contact}
	mustCreate(t, db, c)
	return c
}

// SeedHistory inserts h as given.
func SeedHistory(t *testing.T, db *gorm.DB, h *model.CustomerProductHistory) *model.CustomerProductHistory {
	t.Helper()
	mustCreate(t, db, h)
	return h
}

func mustCreate(t *testing.T, db *gorm.DB, v interface{}) {
	t.Helper()
	if err := db.Create(v).Error; err != nil {
		t.Fatalf("seed %T: %v", v, err)
	}
}
