package employee

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"videorental/internal/domain/audit"
	"videorental/internal/pkg/apperr"
)

type MockAuditRecorder struct {
	mock.Mock
}

func (m *MockAuditRecorder) Record(ctx context.Context, ev audit.Event) {
	m.Called(ctx, ev)
}

type rentalRow struct {
	ID         int64 `gorm:"primaryKey"`
	EmployeeID int64
	ReturnedBy *int64
	Status     string
}

func (rentalRow) TableName() string { return "rentals" }

func setupTestService(t *testing.T) (*Service, *gorm.DB, *MockAuditRecorder) {
	t.Helper()
	dsn := fmt.Sprintf("file:employee_test_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Employee{}, &rentalRow{}))

	rec := &MockAuditRecorder{}
	rec.On("Record", mock.Anything, mock.Anything).Return()

	svc := NewService(NewRepository(db), rec)
	svc.SetPasswordCost(bcrypt.MinCost)
	return svc, db, rec
}

func createEmployee(t *testing.T, svc *Service, login string, role Role) *Employee {
	t.Helper()
	e, err := svc.Create(context.Background(), 1, CreateEmployeeRequest{
		FullName: "Staff " + login,
		Login:    login,
		Password: "secret1",
		Role:     role,
	})
	require.NoError(t, err)
	return e
}

func TestService_Create_NormalizesAndHashes(t *testing.T) {
	svc, _, rec := setupTestService(t)

	e, err := svc.Create(context.Background(), 1, CreateEmployeeRequest{
		FullName: "Anna Petrova",
		Login:    "  APetrova ",
		Password: "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, "apetrova", e.Login)
	assert.Equal(t, RoleCashier, e.Role)
	assert.True(t, e.IsActive)
	assert.NotEqual(t, "secret1", e.PasswordHash)
	assert.True(t, e.CheckPassword("secret1"))
	assert.False(t, e.CheckPassword("secret2"))

	rec.AssertCalled(t, "Record", mock.Anything, mock.MatchedBy(func(ev audit.Event) bool {
		return ev.Type == audit.TypeEmployeeCreate && ev.EntityID == e.ID
	}))
}

func TestService_Create_Validation(t *testing.T) {
	svc, _, _ := setupTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, 1, CreateEmployeeRequest{FullName: "X", Login: "ab", Password: "secret1"})
	assert.ErrorIs(t, err, ErrLoginTooShort)

	_, err = svc.Create(ctx, 1, CreateEmployeeRequest{FullName: "X", Login: "abc", Password: "123"})
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	createEmployee(t, svc, "boris", RoleCashier)
	_, err = svc.Create(ctx, 1, CreateEmployeeRequest{FullName: "X", Login: "BORIS", Password: "secret1"})
	assert.ErrorIs(t, err, ErrLoginTaken)
	assert.True(t, apperr.IsConflict(err))
}

func TestService_Delete_LastActiveAdminGuard(t *testing.T) {
	svc, _, _ := setupTestService(t)
	ctx := context.Background()

	admin := createEmployee(t, svc, "admin", RoleAdmin)
	cashier := createEmployee(t, svc, "cashier", RoleCashier)

	err := svc.Delete(ctx, cashier.ID, admin.ID)
	assert.ErrorIs(t, err, ErrLastActiveAdmin)

	second := createEmployee(t, svc, "admin2", RoleAdmin)
	require.NoError(t, svc.Delete(ctx, second.ID, admin.ID))

	_, err = svc.GetByID(ctx, admin.ID)
	assert.ErrorIs(t, err, ErrEmployeeNotFound)
}

func TestService_Delete_Self(t *testing.T) {
	svc, _, _ := setupTestService(t)
	admin := createEmployee(t, svc, "admin", RoleAdmin)
	createEmployee(t, svc, "admin2", RoleAdmin)

	err := svc.Delete(context.Background(), admin.ID, admin.ID)
	assert.ErrorIs(t, err, ErrDeleteSelf)
}

func TestService_Update_CannotDemoteLastAdmin(t *testing.T) {
	svc, _, _ := setupTestService(t)
	ctx := context.Background()
	admin := createEmployee(t, svc, "admin", RoleAdmin)

	cashierRole := RoleCashier
	_, err := svc.Update(ctx, admin.ID, admin.ID, UpdateEmployeeRequest{Role: &cashierRole})
	assert.ErrorIs(t, err, ErrLastActiveAdmin)

	inactive := false
	_, err = svc.Update(ctx, admin.ID, admin.ID, UpdateEmployeeRequest{IsActive: &inactive})
	assert.ErrorIs(t, err, ErrLastActiveAdmin)

	name := "Chief"
	updated, err := svc.Update(ctx, admin.ID, admin.ID, UpdateEmployeeRequest{FullName: &name})
	require.NoError(t, err)
	assert.Equal(t, "Chief", updated.FullName)
}

func TestService_ChangePassword(t *testing.T) {
	svc, _, _ := setupTestService(t)
	ctx := context.Background()
	e := createEmployee(t, svc, "vera", RoleCashier)

	assert.ErrorIs(t, svc.ChangePassword(ctx, e.ID, "wrong", "newsecret"), ErrWrongPassword)
	assert.ErrorIs(t, svc.ChangePassword(ctx, e.ID, "secret1", "123"), ErrPasswordTooShort)
	require.NoError(t, svc.ChangePassword(ctx, e.ID, "secret1", "newsecret"))

	reloaded, err := svc.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.CheckPassword("newsecret"))
}

func TestService_ListIncludesStats(t *testing.T) {
	svc, db, _ := setupTestService(t)
	ctx := context.Background()
	e := createEmployee(t, svc, "oleg", RoleCashier)

	other := e.ID + 100
	require.NoError(t, db.Create(&[]rentalRow{
		{EmployeeID: e.ID, Status: "active"},
		{EmployeeID: e.ID, Status: "returned", ReturnedBy: &e.ID},
		{EmployeeID: e.ID, Status: "returned", ReturnedBy: &other},
		{EmployeeID: other, Status: "returned", ReturnedBy: &e.ID},
	}).Error)

	list, err := svc.List(ctx, "", false)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(3), list[0].Stats.RentalsProcessed)
	assert.Equal(t, int64(2), list[0].Stats.ReturnsProcessed)
}
