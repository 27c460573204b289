package renewal

import (
	"context"
	"sync"
	"testing"
	"time"

	"crm-renewal-be/internal/entity"
	"crm-renewal-be/internal/model"
	"crm-renewal-be/internal/pkg/logger"
	"crm-renewal-be/internal/repository/contract"
	"crm-renewal-be/internal/repository/specification"
	"crm-renewal-be/internal/repository/unitofwork"
	"crm-renewal-be/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type managerFixture struct {
	db      *gorm.DB
	uows    unitofwork.RepositoryFactory
	manager *Manager
	tenant  *testutil.Tenant
	partner *model.Partner
	history *model.CustomerProductHistory
}

func newManagerFixture(t *testing.T, period entity.RenewPeriod, renewal bool) *managerFixture {
	db := testutil.NewTestDB(t)
	tenant := testutil.SeedTenant(t, db, "Northwind", "Backup Suite")
	partner := testutil.SeedPartner(t, db, tenant.Admin.Id, "Reseller One", "Bob", "Builder")
	customer := testutil.SeedCustomer(t, db, tenant.Admin.Id, &partner.Id, "Acme Corp", "Wile E.")
	history := testutil.SeedHistory(t, db, &model.CustomerProductHistory{
		CustomerId:   customer.Id,
		AdminId:      tenant.Admin.Id,
		ProductId:    tenant.Product.Id,
		PurchaseDate: testutil.Date(2025, 1, 1),
		ExpiryDate:   testutil.DatePtr(2024, 12, 31),
		RenewalDate:  testutil.DatePtr(2025, 1, 1),
		RenewPeriod:  string(period),
		Renewal:      renewal,
		Status:       true,
	})

	return &managerFixture{
		db:      db,
		uows:    unitofwork.NewRepositoryFactory(db),
		manager: NewManager(time.UTC, logger.NewNopLogger()),
		tenant:  tenant,
		partner: partner,
		history: history,
	}
}

func (f *managerFixture) update(t *testing.T, req UpdateRequest) (*UpdateResult, error) {
	t.Helper()
	ctx := context.Background()
	return f.manager.UpdateHistory(ctx, f.uows.NewUnitOfWork(ctx), req)
}

func (f *managerFixture) reload(t *testing.T) *model.CustomerProductHistory {
	t.Helper()
	var m model.CustomerProductHistory
	require.NoError(t, f.db.First(&m, "id = ?", f.history.Id).Error)
	return &m
}

func (f *managerFixture) ledger(t *testing.T) []model.ProductRenewalHistory {
	t.Helper()
	var rows []model.ProductRenewalHistory
	require.NoError(t, f.db.Where("customer_product_history_id = ?", f.history.Id).Order("created_at ASC").Find(&rows).Error)
	return rows
}

func TestManager_AutofillArchivesPriorState(t *testing.T) {
	f := newManagerFixture(t, entity.RenewPeriodYearly, true)

	res, err := f.update(t, UpdateRequest{
		Scope:       Scope{AdminId: f.tenant.Admin.Id},
		HistoryId:   f.history.Id,
		Mode:        ModeAutofill,
		PerformedBy: "ops@example.com",
	})
	require.NoError(t, err)

	assert.True(t, testutil.Date(2026, 1, 1).Equal(*res.History.RenewalDate))
	assert.True(t, testutil.Date(2025, 12, 31).Equal(*res.History.ExpiryDate))

	stored := f.reload(t)
	assert.True(t, testutil.Date(2026, 1, 1).Equal(*stored.RenewalDate))
	assert.True(t, testutil.Date(2025, 12, 31).Equal(*stored.ExpiryDate))
	assert.True(t, testutil.Date(2025, 1, 1).Equal(stored.PurchaseDate))

	rows := f.ledger(t)
	require.Len(t, rows, 1)
	assert.True(t, testutil.Date(2025, 1, 1).Equal(rows[0].PurchaseDate))
	assert.True(t, testutil.Date(2024, 12, 31).Equal(*rows[0].ExpiryDate))
	assert.True(t, testutil.Date(2025, 1, 1).Equal(*rows[0].RenewalDate))
	assert.Equal(t, "autofill", rows[0].Metadata["mode"])
	assert.Equal(t, "ops@example.com", rows[0].Metadata["performed_by"])
	assert.Equal(t, res.Archived.Id, rows[0].Id)
}

func TestManager_EveryUpdateAppendsOneRecord(t *testing.T) {
	f := newManagerFixture(t, entity.RenewPeriodMonthly, true)
	scope := Scope{AdminId: f.tenant.Admin.Id}

	_, err := f.update(t, UpdateRequest{Scope: scope, HistoryId: f.history.Id, Mode: ModeAutofill})
	require.NoError(t, err)
	_, err = f.update(t, UpdateRequest{Scope: scope, HistoryId: f.history.Id, Mode: ModeAutofill})
	require.NoError(t, err)

	rows := f.ledger(t)
	require.Len(t, rows, 2)
	// the second record holds the state written by the first update
	assert.True(t, testutil.Date(2025, 2, 1).Equal(*rows[1].RenewalDate))
	assert.True(t, testutil.Date(2025, 1, 31).Equal(*rows[1].ExpiryDate))

	stored := f.reload(t)
	assert.True(t, testutil.Date(2025, 3, 1).Equal(*stored.RenewalDate))
}

func TestManager_ManualUpdateKeepsOmittedFields(t *testing.T) {
	f := newManagerFixture(t, entity.RenewPeriodCustom, true)
	newRenewal := testutil.Date(2025, 7, 15)

	_, err := f.update(t, UpdateRequest{
		Scope:     Scope{AdminId: f.tenant.Admin.Id},
		HistoryId: f.history.Id,
		Mode:      ModeManual,
		Payload:   &ManualPayload{RenewalDate: &newRenewal},
	})
	require.NoError(t, err)

	stored := f.reload(t)
	assert.True(t, newRenewal.Equal(*stored.RenewalDate))
	assert.True(t, testutil.Date(2024, 12, 31).Equal(*stored.ExpiryDate))
	assert.True(t, stored.Renewal)
	assert.True(t, stored.Status)
	assert.Len(t, f.ledger(t), 1)
}

func TestManager_NotEligibleAndMissingLookTheSame(t *testing.T) {
	f := newManagerFixture(t, entity.RenewPeriodYearly, false)
	scope := Scope{AdminId: f.tenant.Admin.Id}

	_, errIneligible := f.update(t, UpdateRequest{Scope: scope, HistoryId: f.history.Id, Mode: ModeManual})
	_, errMissing := f.update(t, UpdateRequest{Scope: scope, HistoryId: uuid.New(), Mode: ModeManual})

	assert.ErrorIs(t, errIneligible, ErrRenewalNotEligible)
	assert.ErrorIs(t, errMissing, ErrRenewalNotEligible)
	assert.Equal(t, errIneligible.Error(), errMissing.Error())
	assert.Empty(t, f.ledger(t))
}

func TestManager_OtherTenantCannotUpdate(t *testing.T) {
	f := newManagerFixture(t, entity.RenewPeriodYearly, true)
	other := testutil.SeedTenant(t, f.db, "Contoso", "Other Product")

	_, err := f.update(t, UpdateRequest{Scope: Scope{AdminId: other.Admin.Id}, HistoryId: f.history.Id, Mode: ModeAutofill})
	assert.ErrorIs(t, err, ErrRenewalNotEligible)

	stored := f.reload(t)
	assert.True(t, testutil.Date(2025, 1, 1).Equal(*stored.RenewalDate))
}

func TestManager_PartnerScope(t *testing.T) {
	f := newManagerFixture(t, entity.RenewPeriodYearly, true)
	stranger := testutil.SeedPartner(t, f.db, f.tenant.Admin.Id, "Elsewhere", "Carol", "Danvers")

	_, err := f.update(t, UpdateRequest{
		Scope:     Scope{AdminId: f.tenant.Admin.Id, PartnerId: &stranger.Id},
		HistoryId: f.history.Id,
		Mode:      ModeAutofill,
	})
	assert.ErrorIs(t, err, ErrRenewalNotEligible)

	_, err = f.update(t, UpdateRequest{
		Scope:     Scope{AdminId: f.tenant.Admin.Id, PartnerId: &f.partner.Id},
		HistoryId: f.history.Id,
		Mode:      ModeAutofill,
	})
	assert.NoError(t, err)
}

func TestManager_ValidationErrorLeavesStateUntouched(t *testing.T) {
	f := newManagerFixture(t, entity.RenewPeriodCustom, true)

	_, err := f.update(t, UpdateRequest{Scope: Scope{AdminId: f.tenant.Admin.Id}, HistoryId: f.history.Id, Mode: ModeAutofill})
	assert.ErrorIs(t, err, ErrAutofillNotApplicable)
	assert.Empty(t, f.ledger(t))
}

func TestManager_ArchiveFailureRollsBackUpdate(t *testing.T) {
	f := newManagerFixture(t, entity.RenewPeriodYearly, true)
	require.NoError(t, f.db.Migrator().DropTable(&model.ProductRenewalHistory{}))

	_, err := f.update(t, UpdateRequest{Scope: Scope{AdminId: f.tenant.Admin.Id}, HistoryId: f.history.Id, Mode: ModeAutofill})

	var storeErr *StoreError
	require.ErrorAs(t, err, &storeErr)

	stored := f.reload(t)
	assert.True(t, testutil.Date(2025, 1, 1).Equal(*stored.RenewalDate), "row update must be rolled back")
	assert.True(t, testutil.Date(2024, 12, 31).Equal(*stored.ExpiryDate))
}

func TestManager_MissingTenant(t *testing.T) {
	f := newManagerFixture(t, entity.RenewPeriodYearly, true)

	_, err := f.update(t, UpdateRequest{HistoryId: f.history.Id, Mode: ModeAutofill})
	assert.ErrorIs(t, err, ErrMissingTenant)
}

func TestManager_ListRenewals(t *testing.T) {
	f := newManagerFixture(t, entity.RenewPeriodMonthly, true)
	scope := Scope{AdminId: f.tenant.Admin.Id}
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := f.update(t, UpdateRequest{Scope: scope, HistoryId: f.history.Id, Mode: ModeAutofill})
		require.NoError(t, err)
	}

	records, err := f.manager.ListRenewals(ctx, f.uows.NewUnitOfWork(ctx), scope, f.history.Id)
	require.NoError(t, err)
	require.Len(t, records, 3)
	// newest first: the third update archived the state written by the second
	assert.True(t, testutil.Date(2025, 3, 1).Equal(*records[0].RenewalDate))

	count, err := f.uows.NewUnitOfWork(ctx).ProductRenewalHistoryRepository().Count(ctx,
		specification.RenewalsOfHistory{HistoryID: f.history.Id})
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)

	other := testutil.SeedTenant(t, f.db, "Contoso", "Other Product")
	_, err = f.manager.ListRenewals(ctx, f.uows.NewUnitOfWork(ctx), Scope{AdminId: other.Admin.Id}, f.history.Id)
	assert.ErrorIs(t, err, ErrRenewalNotEligible)
}

type specRecordingUoW struct {
	unitofwork.UnitOfWork
	specs *[]specification.Specification
}

func (u specRecordingUoW) ProductHistoryRepository() contract.ProductHistoryRepository {
	return specRecordingRepo{ProductHistoryRepository: u.UnitOfWork.ProductHistoryRepository(), specs: u.specs}
}

type specRecordingRepo struct {
	contract.ProductHistoryRepository
	specs *[]specification.Specification
}

func (r specRecordingRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.CustomerProductHistory, error) {
	*r.specs = append(*r.specs, specs...)
	return r.ProductHistoryRepository.FindOne(ctx, specs...)
}

func TestManager_UpdateLocksTheEntry(t *testing.T) {
	f := newManagerFixture(t, entity.RenewPeriodYearly, true)
	ctx := context.Background()

	var specs []specification.Specification
	uow := specRecordingUoW{UnitOfWork: f.uows.NewUnitOfWork(ctx), specs: &specs}

	_, err := f.manager.UpdateHistory(ctx, uow, UpdateRequest{
		Scope:     Scope{AdminId: f.tenant.Admin.Id},
		HistoryId: f.history.Id,
		Mode:      ModeAutofill,
	})
	require.NoError(t, err)
	assert.Contains(t, specs, specification.ForUpdate{})
}

func TestManager_ConcurrentAutofillsArchiveDistinctStates(t *testing.T) {
	f := newManagerFixture(t, entity.RenewPeriodYearly, true)
	scope := Scope{AdminId: f.tenant.Admin.Id}

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.update(t, UpdateRequest{Scope: scope, HistoryId: f.history.Id, Mode: ModeAutofill})
		}(i)
	}
	wg.Wait()
	require.NoError(t, errs[0])
	require.NoError(t, errs[1])

	stored := f.reload(t)
	assert.True(t, testutil.Date(2027, 1, 1).Equal(*stored.RenewalDate), "both updates advance the entry")

	records := f.ledger(t)
	require.Len(t, records, 2)
	assert.False(t, records[0].RenewalDate.Equal(*records[1].RenewalDate), "each record holds the state before its own update")
}
