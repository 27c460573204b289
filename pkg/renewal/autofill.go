package renewal

import (
	"time"

	"crm-renewal-be/internal/entity"
)

type UpdateMode string

const (
	ModeManual   UpdateMode = "manual"
	ModeAutofill UpdateMode = "autofill"
)

// ParseUpdateMode maps the request's mode string. Empty means manual.
func ParseUpdateMode(raw string) (UpdateMode, error) {
	switch UpdateMode(raw) {
	case "", ModeManual:
		return ModeManual, nil
	case ModeAutofill:
		return ModeAutofill, nil
	default:
		return "", ErrUnknownUpdateMode
	}
}

// ManualPayload carries caller-supplied values. A nil field keeps the
// existing value; it never clears it.
type ManualPayload struct {
	PurchaseDate *time.Time
	ExpiryDate   *time.Time
	RenewalDate  *time.Time
	Renewal      *bool
	Status       *bool
}

// ApplyUpdate computes the next state of a renewal-eligible history entry.
// Autofill does its month arithmetic in loc, the business calendar, whatever
// zone the stored dates come back in. existing is not modified.
func ApplyUpdate(existing *entity.CustomerProductHistory, mode UpdateMode, payload *ManualPayload, loc *time.Location) (*entity.CustomerProductHistory, error) {
	if mode == ModeAutofill {
		return autofill(existing, loc)
	}
	if mode != ModeManual {
		return nil, ErrUnknownUpdateMode
	}
	if !existing.Renewal {
		return nil, ErrRenewalNotEligible
	}
	return applyManual(existing, payload), nil
}

func applyManual(existing *entity.CustomerProductHistory, p *ManualPayload) *entity.CustomerProductHistory {
	next := existing.Clone()
	if p == nil {
		return next
	}
	if p.PurchaseDate != nil {
		next.PurchaseDate = *p.PurchaseDate
	}
	if p.ExpiryDate != nil {
		v := *p.ExpiryDate
		next.ExpiryDate = &v
	}
	if p.RenewalDate != nil {
		v := *p.RenewalDate
		next.RenewalDate = &v
	}
	if p.Renewal != nil {
		next.Renewal = *p.Renewal
	}
	if p.Status != nil {
		next.Status = *p.Status
	}
	return next
}

// autofill checks the cadence first: a custom period is never autofillable,
// whatever else the entry holds.
func autofill(existing *entity.CustomerProductHistory, loc *time.Location) (*entity.CustomerProductHistory, error) {
	if !IsFixedCadence(existing.RenewPeriod) {
		return nil, ErrAutofillNotApplicable
	}
	if !existing.Renewal {
		return nil, ErrRenewalNotEligible
	}
	if existing.RenewalDate == nil {
		return nil, ErrMissingRenewalDate
	}

	anchor := *existing.RenewalDate
	if loc != nil {
		anchor = anchor.In(loc)
	}
	c, err := Advance(anchor, existing.RenewPeriod)
	if err != nil {
		return nil, err
	}

	next := existing.Clone()
	next.PurchaseDate = anchor
	next.RenewalDate = &c.RenewalDate
	next.ExpiryDate = &c.ExpiryDate
	next.Renewal = true
	return next, nil
}
