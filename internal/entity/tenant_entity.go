// FILE: internal/entity/tenant_entity.go
package entity

import "github.com/google/uuid"

type UserRole string

const (
	UserRoleAdmin      UserRole = "admin"
	UserRoleTeamMember UserRole = "team_member"
	UserRolePartner    UserRole = "partner"
)

// Admin is the tenant owning customers, partners, products and subscriptions.
type Admin struct {
	Id          uuid.UUID
	CompanyName string
	FirstName   string
	LastName    string
	Email       string
}

type Partner struct {
	Id          uuid.UUID
	AdminId     uuid.UUID
	CompanyName string
	FirstName   string
	LastName    string
	Email       string
}

type Customer struct {
	Id            uuid.UUID
	AdminId       uuid.UUID
	PartnerId     *uuid.UUID
	CompanyName   string
	ContactPerson string
	Email         string

	Partner *Partner
}

type Product struct {
	Id      uuid.UUID
	AdminId uuid.UUID
	Name    string
	Price   float64
}
