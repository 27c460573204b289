package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"crm-renewal-be/internal/dto"
	"crm-renewal-be/internal/entity"
	"crm-renewal-be/internal/metrics"
	"crm-renewal-be/internal/model"
	"crm-renewal-be/internal/pkg/logger"
	"crm-renewal-be/internal/repository/unitofwork"
	"crm-renewal-be/internal/testutil"
	"crm-renewal-be/pkg/events"
	"crm-renewal-be/pkg/renewal"

	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHistoryService(t *testing.T, s *seeded, pub events.Publisher) (*productHistoryService, *metrics.Recorder, *model.CustomerProductHistory) {
	history := testutil.SeedHistory(t, s.db, &model.CustomerProductHistory{
		CustomerId:   s.customer.Id,
		AdminId:      s.tenant.Admin.Id,
		ProductId:    s.tenant.Product.Id,
		PurchaseDate: testutil.Date(2025, 1, 1),
		ExpiryDate:   testutil.DatePtr(2024, 12, 31),
		RenewalDate:  testutil.DatePtr(2025, 1, 1),
		RenewPeriod:  string(entity.RenewPeriodYearly),
		Renewal:      true,
		Status:       true,
	})

	recorder := metrics.NewRecorder()
	svc := NewProductHistoryService(unitofwork.NewRepositoryFactory(s.db), pub, recorder, time.UTC, logger.NewNopLogger()).(*productHistoryService)
	svc.now = fixedClock(time.Date(2025, 1, 2, 9, 0, 0, 0, time.UTC))
	return svc, recorder, history
}

func TestProductHistoryService_AutofillPublishesAndCounts(t *testing.T) {
	s := seed(t)
	pub := &recordingPublisher{}
	svc, recorder, history := newHistoryService(t, s, pub)

	res, err := svc.Update(context.Background(), renewal.Scope{AdminId: s.tenant.Admin.Id}, history.Id, "autofill", nil, "ops@example.com")
	require.NoError(t, err)

	assert.True(t, testutil.Date(2026, 1, 1).Equal(*res.History.RenewalDate))
	assert.True(t, testutil.Date(2024, 12, 31).Equal(*res.Archived.ExpiryDate))
	assert.Equal(t, float64(1), promtestutil.ToFloat64(recorder.RenewalUpdates.WithLabelValues("autofill")))

	require.Len(t, pub.events, 1)
	assert.Equal(t, events.TypeRenewalRecorded, pub.events[0].EventType())
	assert.Equal(t, res.Archived.Id.String(), pub.events[0].Payload()["renewal_record_id"])
}

func TestProductHistoryService_PublishFailureDoesNotFailUpdate(t *testing.T) {
	s := seed(t)
	svc, _, history := newHistoryService(t, s, &recordingPublisher{err: errors.New("nats down")})

	_, err := svc.Update(context.Background(), renewal.Scope{AdminId: s.tenant.Admin.Id}, history.Id, "autofill", nil, "")
	assert.NoError(t, err)
}

func TestProductHistoryService_ManualParsesDates(t *testing.T) {
	s := seed(t)
	svc, recorder, history := newHistoryService(t, s, events.NopPublisher{})

	res, err := svc.Update(context.Background(), renewal.Scope{AdminId: s.tenant.Admin.Id}, history.Id, "", &dto.UpdateHistoryRequest{
		ExpiryDate: strPtr("2025-06-30"),
		Status:     boolPtr(false),
	}, "")
	require.NoError(t, err)

	assert.True(t, testutil.Date(2025, 6, 30).Equal(*res.History.ExpiryDate))
	assert.True(t, testutil.Date(2025, 1, 1).Equal(*res.History.RenewalDate))
	assert.False(t, res.History.Status)
	assert.Equal(t, float64(1), promtestutil.ToFloat64(recorder.RenewalUpdates.WithLabelValues("manual")))
}

func TestProductHistoryService_RejectsBadInput(t *testing.T) {
	s := seed(t)
	svc, _, history := newHistoryService(t, s, events.NopPublisher{})
	scope := renewal.Scope{AdminId: s.tenant.Admin.Id}

	_, err := svc.Update(context.Background(), scope, history.Id, "sometimes", nil, "")
	assert.ErrorIs(t, err, renewal.ErrUnknownUpdateMode)

	_, err = svc.Update(context.Background(), scope, history.Id, "manual", &dto.UpdateHistoryRequest{RenewalDate: strPtr("next tuesday")}, "")
	assert.ErrorIs(t, err, renewal.ErrInvalidDate)
}

func TestProductHistoryService_ListRenewals(t *testing.T) {
	s := seed(t)
	svc, _, history := newHistoryService(t, s, events.NopPublisher{})
	scope := renewal.Scope{AdminId: s.tenant.Admin.Id}

	_, err := svc.Update(context.Background(), scope, history.Id, "autofill", nil, "ops@example.com")
	require.NoError(t, err)

	records, err := svc.ListRenewals(context.Background(), scope, history.Id)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "ops@example.com", records[0].Metadata["performed_by"])
}
