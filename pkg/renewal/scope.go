package renewal

import (
	"crm-renewal-be/internal/repository/specification"

	"github.com/google/uuid"
)

// Scope is the caller's tenant, optionally narrowed to one partner's customers.
type Scope struct {
	AdminId   uuid.UUID
	PartnerId *uuid.UUID
}

func (s Scope) validate() error {
	if s.AdminId == uuid.Nil {
		return ErrMissingTenant
	}
	return nil
}

// historySpecs restricts product history queries to the scope.
func (s Scope) historySpecs() []specification.Specification {
	specs := []specification.Specification{
		specification.HistoryOwnedByTenant{AdminID: s.AdminId},
	}
	if s.PartnerId != nil {
		specs = append(specs, specification.HistoryOfPartner{PartnerID: *s.PartnerId})
	}
	return specs
}
