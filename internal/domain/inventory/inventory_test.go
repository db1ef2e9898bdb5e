package inventory

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"videorental/internal/domain"
	"videorental/internal/domain/audit"
	"videorental/internal/domain/catalog"
	"videorental/internal/pkg/apperr"
)

type MockAuditRecorder struct {
	mock.Mock
}

func (m *MockAuditRecorder) Record(ctx context.Context, ev audit.Event) {
	m.Called(ctx, ev)
}

type clientRow struct {
	ID       int64 `gorm:"primaryKey"`
	FullName string
}

func (clientRow) TableName() string { return "clients" }

type rentalRow struct {
	ID                int64 `gorm:"primaryKey"`
	ClientID          int64
	MediaUnitID       int64
	RentalDate        time.Time
	PlannedReturnDate time.Time
	ActualReturnDate  *time.Time
	Status            domain.RentalStatus
	TotalCost         decimal.Decimal `gorm:"type:decimal(12,2)"`
}

func (rentalRow) TableName() string { return domain.RentalsTable }

type fixture struct {
	db      *gorm.DB
	svc     *Service
	ledger  *Ledger
	movieID int64
	rec     *MockAuditRecorder
}

func setup(t *testing.T) *fixture {
	t.Helper()
	dsn := fmt.Sprintf("file:inventory_test_%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&catalog.Genre{}, &catalog.Movie{}, &MediaUnit{}, &clientRow{}, &rentalRow{}))

	movie := &catalog.Movie{Title: "Heat", Year: 1995, IsActive: true}
	require.NoError(t, db.Omit("Genres").Create(movie).Error)

	rec := &MockAuditRecorder{}
	rec.On("Record", mock.Anything, mock.Anything).Return()

	ledger := NewLedger(db)
	movies := catalog.NewService(catalog.NewRepository(db), rec)
	svc := NewService(NewRepository(db), ledger, movies, rec)
	return &fixture{db: db, svc: svc, ledger: ledger, movieID: movie.ID, rec: rec}
}

func (f *fixture) createUnit(t *testing.T, serial string) *MediaUnit {
	t.Helper()
	price := decimal.NewFromInt(1000)
	u, err := f.svc.Create(context.Background(), 1, CreateUnitRequest{
		MovieID:       f.movieID,
		Serial:        serial,
		PurchasePrice: &price,
	})
	require.NoError(t, err)
	return u
}

func (f *fixture) unit(t *testing.T, id int64) *MediaUnit {
	t.Helper()
	u, err := f.svc.GetByID(context.Background(), id)
	require.NoError(t, err)
	return u
}

func TestLedger_Reserve(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	u := f.createUnit(t, "")
	at := time.Date(2024, 1, 3, 10, 0, 0, 0, time.UTC)

	require.NoError(t, f.ledger.Reserve(ctx, u.ID, at))
	got := f.unit(t, u.ID)
	assert.Equal(t, StatusRented, got.Status)
	assert.Equal(t, 1, got.RentalCount)
	require.NotNil(t, got.LastRentalDate)
	assert.True(t, got.LastRentalDate.Equal(at))

	// a rented unit cannot be reserved again and is left untouched
	err := f.ledger.Reserve(ctx, u.ID, at.Add(time.Hour))
	assert.ErrorIs(t, err, ErrUnitUnavailable)
	assert.True(t, apperr.IsConflict(err))
	assert.Equal(t, 1, f.unit(t, u.ID).RentalCount)

	err = f.ledger.Reserve(ctx, 999, at)
	assert.ErrorIs(t, err, ErrUnitNotFound)
}

func TestLedger_Reserve_Concurrent(t *testing.T) {
	f := setup(t)
	sqlDB, err := f.db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	u := f.createUnit(t, "")

	const workers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		conflicts int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := f.ledger.Reserve(context.Background(), u.ID, time.Now().UTC())
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case apperr.IsConflict(err):
				conflicts++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, workers-1, conflicts)
	assert.Equal(t, 1, f.unit(t, u.ID).RentalCount)
}

func TestLedger_Release(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	now := time.Now().UTC()

	good := f.createUnit(t, "")
	require.NoError(t, f.ledger.Reserve(ctx, good.ID, now))
	require.NoError(t, f.ledger.Release(ctx, good.ID, domain.ConditionFair))
	got := f.unit(t, good.ID)
	assert.Equal(t, StatusAvailable, got.Status)
	assert.Equal(t, domain.ConditionFair, got.Condition)

	broken := f.createUnit(t, "")
	require.NoError(t, f.ledger.Reserve(ctx, broken.ID, now))
	require.NoError(t, f.ledger.Release(ctx, broken.ID, domain.ConditionPoor))
	got = f.unit(t, broken.ID)
	assert.Equal(t, StatusDamaged, got.Status)
	assert.Equal(t, domain.ConditionPoor, got.Condition)

	err := f.ledger.Release(ctx, good.ID, domain.ConditionGood)
	assert.ErrorIs(t, err, ErrUnitNotRented)
}

func TestLedger_ReleaseUnchanged(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	u := f.createUnit(t, "")

	require.NoError(t, f.ledger.Reserve(ctx, u.ID, time.Now().UTC()))
	require.NoError(t, f.ledger.ReleaseUnchanged(ctx, u.ID))
	got := f.unit(t, u.ID)
	assert.Equal(t, StatusAvailable, got.Status)
	assert.Equal(t, domain.ConditionGood, got.Condition)

	assert.ErrorIs(t, f.ledger.ReleaseUnchanged(ctx, u.ID), ErrUnitNotRented)
}

func TestLedger_WithTxRollsBack(t *testing.T) {
	f := setup(t)
	u := f.createUnit(t, "")

	err := f.db.Transaction(func(tx *gorm.DB) error {
		if err := f.ledger.WithTx(tx).Reserve(context.Background(), u.ID, time.Now().UTC()); err != nil {
			return err
		}
		return fmt.Errorf("client update failed")
	})
	require.Error(t, err)
	assert.Equal(t, StatusAvailable, f.unit(t, u.ID).Status)
}

func TestService_Create(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	first := f.createUnit(t, "")
	assert.Equal(t, "CAS-000001", first.Serial)
	assert.Equal(t, FormatVHS, first.Format)
	assert.Equal(t, domain.ConditionGood, first.Condition)
	assert.Equal(t, StatusAvailable, first.Status)
	require.NotNil(t, first.Movie)
	assert.Equal(t, "Heat", first.Movie.Title)

	named := f.createUnit(t, " cas-000002 ")
	assert.Equal(t, "CAS-000002", named.Serial)

	// the generator skips serials that are already in use
	third := f.createUnit(t, "")
	assert.Equal(t, "CAS-000003", third.Serial)

	price := decimal.NewFromInt(10)
	_, err := f.svc.Create(ctx, 1, CreateUnitRequest{MovieID: f.movieID, Serial: "cas-000001", PurchasePrice: &price})
	assert.ErrorIs(t, err, ErrSerialTaken)

	_, err = f.svc.Create(ctx, 1, CreateUnitRequest{MovieID: f.movieID, Format: "DVD", PurchasePrice: &price})
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, err = f.svc.Create(ctx, 1, CreateUnitRequest{MovieID: f.movieID})
	assert.ErrorIs(t, err, ErrPurchasePriceNeed)

	_, err = f.svc.Create(ctx, 1, CreateUnitRequest{MovieID: 999, PurchasePrice: &price})
	assert.ErrorIs(t, err, catalog.ErrMovieNotFound)
}

func TestService_Update_StatusOwnership(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	u := f.createUnit(t, "")

	rented := StatusRented
	_, err := f.svc.Update(ctx, 1, u.ID, UpdateUnitRequest{Status: &rented})
	assert.ErrorIs(t, err, ErrStatusRented)

	lost := StatusLost
	got, err := f.svc.Update(ctx, 1, u.ID, UpdateUnitRequest{Status: &lost})
	require.NoError(t, err)
	assert.Equal(t, StatusLost, got.Status)

	available := StatusAvailable
	_, err = f.svc.Update(ctx, 1, u.ID, UpdateUnitRequest{Status: &available})
	require.NoError(t, err)

	require.NoError(t, f.ledger.Reserve(ctx, u.ID, time.Now().UTC()))
	_, err = f.svc.Update(ctx, 1, u.ID, UpdateUnitRequest{Status: &available})
	assert.ErrorIs(t, err, ErrUnitRented)

	// other fields stay editable while rented
	notes := "label peeling"
	got, err = f.svc.Update(ctx, 1, u.ID, UpdateUnitRequest{Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, StatusRented, got.Status)
	assert.Equal(t, notes, got.Notes)
}

// reserveDuringUpdate reserves unitID on the statement's own connection just
// before the first UPDATE of media units runs, the way a concurrent issue
// would commit between the edit's read and its write.
func (f *fixture) reserveDuringUpdate(t *testing.T, unitID int64) {
	t.Helper()
	var fired bool
	err := f.db.Callback().Update().Before("gorm:update").Register("test:reserve_unit", func(db *gorm.DB) {
		if fired || db.Statement.Table != domain.MediaUnitsTable {
			return
		}
		fired = true
		ledger := NewLedger(db.Session(&gorm.Session{NewDB: true}))
		_ = db.AddError(ledger.Reserve(db.Statement.Context, unitID, time.Now().UTC()))
	})
	require.NoError(t, err)
}

func TestService_Update_KeepsConcurrentReservation(t *testing.T) {
	t.Run("details edit", func(t *testing.T) {
		f := setup(t)
		ctx := context.Background()
		u := f.createUnit(t, "")
		f.reserveDuringUpdate(t, u.ID)

		notes := "sleeve replaced"
		got, err := f.svc.Update(ctx, 1, u.ID, UpdateUnitRequest{Notes: &notes})
		require.NoError(t, err)
		assert.Equal(t, StatusRented, got.Status)
		assert.Equal(t, notes, got.Notes)

		stored := f.unit(t, u.ID)
		assert.Equal(t, StatusRented, stored.Status)
		assert.Equal(t, 1, stored.RentalCount)
		assert.NotNil(t, stored.LastRentalDate)
		assert.Equal(t, notes, stored.Notes)
	})

	t.Run("status edit", func(t *testing.T) {
		f := setup(t)
		ctx := context.Background()
		u := f.createUnit(t, "")
		f.reserveDuringUpdate(t, u.ID)

		lost := StatusLost
		_, err := f.svc.Update(ctx, 1, u.ID, UpdateUnitRequest{Status: &lost})
		assert.ErrorIs(t, err, ErrUnitRented)
		assert.True(t, apperr.IsConflict(err))
	})
}

func TestService_Delete_LiveRental(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	u := f.createUnit(t, "")
	now := time.Now().UTC()

	rental := &rentalRow{ClientID: 1, MediaUnitID: u.ID, RentalDate: now, PlannedReturnDate: now.Add(-time.Hour), Status: domain.RentalOverdue}
	require.NoError(t, f.db.Create(rental).Error)

	err := f.svc.Delete(ctx, 1, u.ID)
	assert.ErrorIs(t, err, ErrUnitInUse)

	require.NoError(t, f.db.Model(rental).Update("status", domain.RentalReturned).Error)
	require.NoError(t, f.svc.Delete(ctx, 1, u.ID))

	_, err = f.svc.Get(ctx, u.ID)
	assert.ErrorIs(t, err, ErrUnitNotFound)
	f.rec.AssertCalled(t, "Record", mock.Anything, mock.MatchedBy(func(ev audit.Event) bool {
		return ev.Type == audit.TypeCassetteDelete && ev.EntityID == u.ID
	}))
}

func TestService_Get_RecentRentals(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	u := f.createUnit(t, "")
	client := &clientRow{FullName: "Ivan Petrov"}
	require.NoError(t, f.db.Create(client).Error)

	base := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 12; i++ {
		start := base.AddDate(0, 0, i*5)
		require.NoError(t, f.db.Create(&rentalRow{
			ClientID:          client.ID,
			MediaUnitID:       u.ID,
			RentalDate:        start,
			PlannedReturnDate: start.AddDate(0, 0, 3),
			Status:            domain.RentalActive,
			TotalCost:         decimal.NewFromInt(150),
		}).Error)
	}

	details, err := f.svc.Get(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, details.RecentRentals, 10)
	first := details.RecentRentals[0]
	assert.Equal(t, "Ivan Petrov", first.ClientName)
	assert.True(t, first.RentalDate.Equal(base.AddDate(0, 0, 55)))
	// stored active but long past due
	assert.Equal(t, domain.RentalOverdue, first.Status)
}

func TestService_List_Filters(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	a := f.createUnit(t, "")
	f.createUnit(t, "")
	f.createUnit(t, "VHS-777")
	require.NoError(t, f.ledger.Reserve(ctx, a.ID, time.Now().UTC()))

	yes := true
	res, err := f.svc.List(ctx, Filter{Available: &yes})
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Total)

	res, err = f.svc.List(ctx, Filter{Status: StatusRented})
	require.NoError(t, err)
	require.Len(t, res.Units, 1)
	assert.Equal(t, a.ID, res.Units[0].ID)

	res, err = f.svc.List(ctx, Filter{Search: "vhs"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Total)

	_, err = f.svc.List(ctx, Filter{Status: "missing"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}
