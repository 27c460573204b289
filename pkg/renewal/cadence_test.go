package renewal

import (
	"testing"
	"time"

	"crm-renewal-be/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdvance(t *testing.T) {
	tests := []struct {
		name        string
		anchor      time.Time
		period      entity.RenewPeriod
		wantRenewal time.Time
		wantExpiry  time.Time
	}{
		{"monthly", date(2025, 3, 15), entity.RenewPeriodMonthly, date(2025, 4, 15), date(2025, 4, 14)},
		{"quarterly", date(2025, 11, 30), entity.RenewPeriodQuarterly, date(2026, 2, 28), date(2026, 2, 27)},
		{"half yearly", date(2025, 8, 31), entity.RenewPeriodHalfYearly, date(2026, 2, 28), date(2026, 2, 27)},
		{"yearly", date(2025, 1, 1), entity.RenewPeriodYearly, date(2026, 1, 1), date(2025, 12, 31)},
		{"yearly from leap day", date(2024, 2, 29), entity.RenewPeriodYearly, date(2025, 2, 28), date(2025, 2, 27)},
		{"jan 31 monthly clamps to feb", date(2025, 1, 31), entity.RenewPeriodMonthly, date(2025, 2, 28), date(2025, 2, 27)},
		{"jan 31 monthly in leap year", date(2024, 1, 31), entity.RenewPeriodMonthly, date(2024, 2, 29), date(2024, 2, 28)},
		{"monthly into march", date(2025, 2, 1), entity.RenewPeriodMonthly, date(2025, 3, 1), date(2025, 2, 28)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Advance(tt.anchor, tt.period)
			require.NoError(t, err)
			assert.True(t, tt.wantRenewal.Equal(c.RenewalDate), "renewal = %s, want %s", c.RenewalDate, tt.wantRenewal)
			assert.True(t, tt.wantExpiry.Equal(c.ExpiryDate), "expiry = %s, want %s", c.ExpiryDate, tt.wantExpiry)
		})
	}
}

func TestAdvance_ExpiryIsDayBeforeRenewal(t *testing.T) {
	periods := []entity.RenewPeriod{
		entity.RenewPeriodMonthly,
		entity.RenewPeriodQuarterly,
		entity.RenewPeriodHalfYearly,
		entity.RenewPeriodYearly,
	}
	start := time.Date(2023, time.January, 1, 9, 30, 0, 0, time.UTC)

	for d := 0; d < 3*366; d += 7 {
		anchor := start.AddDate(0, 0, d)
		for _, p := range periods {
			c, err := Advance(anchor, p)
			require.NoError(t, err)
			assert.True(t, c.RenewalDate.AddDate(0, 0, -1).Equal(c.ExpiryDate), "%s from %s", p, anchor)
			assert.True(t, c.RenewalDate.After(anchor))
		}
	}
}

func TestAdvance_KeepsTimeOfDay(t *testing.T) {
	anchor := time.Date(2025, time.January, 31, 17, 45, 12, 0, time.UTC)

	c, err := Advance(anchor, entity.RenewPeriodMonthly)
	require.NoError(t, err)
	assert.Equal(t, time.February, c.RenewalDate.Month())
	assert.Equal(t, 28, c.RenewalDate.Day())
	assert.Equal(t, 17, c.RenewalDate.Hour())
	assert.Equal(t, 45, c.RenewalDate.Minute())
}

func TestAdvance_RejectsNonFixedPeriods(t *testing.T) {
	for _, p := range []entity.RenewPeriod{entity.RenewPeriodCustom, "weekly", ""} {
		_, err := Advance(date(2025, 1, 1), p)
		assert.ErrorIs(t, err, ErrUnsupportedCadence, "period %q", p)
	}
}
