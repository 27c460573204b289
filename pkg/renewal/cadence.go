package renewal

import (
	"fmt"
	"time"

	"crm-renewal-be/internal/entity"
)

// cadenceMonths is the single definition of how far each fixed renew period
// advances a renewal.
var cadenceMonths = map[entity.RenewPeriod]int{
	entity.RenewPeriodMonthly:    1,
	entity.RenewPeriodQuarterly:  3,
	entity.RenewPeriodHalfYearly: 6,
	entity.RenewPeriodYearly:     12,
}

// Cadence is the date pair produced by advancing an anchor by one period.
type Cadence struct {
	RenewalDate time.Time
	ExpiryDate  time.Time
}

// IsFixedCadence reports whether the period can be advanced mechanically.
func IsFixedCadence(period entity.RenewPeriod) bool {
	_, ok := cadenceMonths[period]
	return ok
}

// Advance moves anchor forward by the period's month step. The expiry date is
// the day before the renewal date.
func Advance(anchor time.Time, period entity.RenewPeriod) (Cadence, error) {
	months, ok := cadenceMonths[period]
	if !ok {
		return Cadence{}, fmt.Errorf("%w: %q", ErrUnsupportedCadence, period)
	}
	renewal := AddMonths(anchor, months)
	return Cadence{
		RenewalDate: renewal,
		ExpiryDate:  renewal.AddDate(0, 0, -1),
	}, nil
}

// AddMonths adds calendar months keeping the day of month, clamped to the last
// day of the target month (Jan 31 + 1 month = Feb 28/29). time.AddDate would
// normalise into March instead.
func AddMonths(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	hh, mm, ss := t.Clock()
	target := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	if last := daysInMonth(target); d > last {
		d = last
	}
	return time.Date(target.Year(), target.Month(), d, hh, mm, ss, t.Nanosecond(), t.Location())
}

func daysInMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}
