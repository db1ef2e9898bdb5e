package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"videorental/internal/domain/audit"
	"videorental/internal/domain/employee"
	"videorental/internal/domain/rental"
	"videorental/internal/pkg/jwt"
)

type MockAuditRecorder struct {
	mock.Mock
}

func (m *MockAuditRecorder) Record(ctx context.Context, ev audit.Event) {
	m.Called(ctx, ev)
}

type MockRentalStats struct {
	mock.Mock
}

func (m *MockRentalStats) Statistics(ctx context.Context, employeeID int64, period rental.Period) (*rental.PeriodStats, error) {
	args := m.Called(ctx, employeeID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rental.PeriodStats), args.Error(1)
}

func (m *MockRentalStats) RecentByEmployee(ctx context.Context, employeeID int64, limit int) ([]rental.Rental, error) {
	args := m.Called(ctx, employeeID, limit)
	return args.Get(0).([]rental.Rental), args.Error(1)
}

type rentalRow struct {
	ID         int64 `gorm:"primaryKey"`
	EmployeeID int64
	ReturnedBy *int64
	Status     string
}

func (rentalRow) TableName() string { return "rentals" }

type fixture struct {
	svc       *Service
	employees *employee.Service
	rentals   *MockRentalStats
	rec       *MockAuditRecorder
	tokens    *jwt.Service
}

func setup(t *testing.T) *fixture {
	t.Helper()
	dsn := fmt.Sprintf("file:auth_test_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&employee.Employee{}, &rentalRow{}))

	rec := &MockAuditRecorder{}
	rec.On("Record", mock.Anything, mock.Anything).Return()

	employees := employee.NewService(employee.NewRepository(db), rec)
	employees.SetPasswordCost(bcrypt.MinCost)

	f := &fixture{
		employees: employees,
		rentals:   &MockRentalStats{},
		rec:       rec,
		tokens:    jwt.New("test-secret", 8*time.Hour),
	}
	f.svc = NewService(employees, f.rentals, f.tokens, rec)
	return f
}

func (f *fixture) createEmployee(t *testing.T, login string, active bool) *employee.Employee {
	t.Helper()
	e, err := f.employees.Create(context.Background(), 1, employee.CreateEmployeeRequest{
		FullName: "Staff " + login,
		Login:    login,
		Password: "secret1",
		IsActive: &active,
	})
	require.NoError(t, err)
	return e
}

func TestService_Login(t *testing.T) {
	f := setup(t)
	e := f.createEmployee(t, "cashier", true)

	ctx := audit.WithOrigin(context.Background(), audit.Origin{IP: "10.0.0.7", UserAgent: "test"})
	res, err := f.svc.Login(ctx, LoginRequest{Login: " Cashier ", Password: "secret1"})
	require.NoError(t, err)

	claims, err := f.tokens.Parse(res.Token)
	require.NoError(t, err)
	assert.Equal(t, e.ID, claims.EmployeeID)
	assert.Equal(t, "cashier", claims.Role)
	assert.WithinDuration(t, time.Now().Add(8*time.Hour), res.ExpiresAt, time.Minute)

	stored, err := f.employees.GetByID(context.Background(), e.ID)
	require.NoError(t, err)
	assert.NotNil(t, stored.LastLoginAt)

	f.rec.AssertCalled(t, "Record", mock.Anything, mock.MatchedBy(func(ev audit.Event) bool {
		return ev.Type == audit.TypeLogin && ev.EmployeeID == e.ID && ev.Details["ip"] == "10.0.0.7"
	}))
}

func TestService_Login_Rejections(t *testing.T) {
	f := setup(t)
	f.createEmployee(t, "cashier", true)
	f.createEmployee(t, "former", false)

	tests := []struct {
		name string
		req  LoginRequest
		want error
	}{
		{"unknown login", LoginRequest{Login: "nobody", Password: "secret1"}, ErrInvalidCredentials},
		{"wrong password", LoginRequest{Login: "cashier", Password: "secret2"}, ErrInvalidCredentials},
		{"empty", LoginRequest{}, ErrInvalidCredentials},
		{"inactive", LoginRequest{Login: "former", Password: "secret1"}, ErrAccountDisabled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Login(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	f.rec.AssertNotCalled(t, "Record", mock.Anything, mock.MatchedBy(func(ev audit.Event) bool {
		return ev.Type == audit.TypeLogin
	}))
}

func TestService_ProfileAndPassword(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	e := f.createEmployee(t, "cashier", true)

	name := "Anna Petrova"
	p, err := f.svc.UpdateProfile(ctx, e.ID, employee.ProfileUpdate{FullName: &name})
	require.NoError(t, err)
	assert.Equal(t, "Anna Petrova", p.FullName)
	assert.Equal(t, int64(0), p.Stats.RentalsProcessed)

	err = f.svc.ChangePassword(ctx, e.ID, ChangePasswordRequest{CurrentPassword: "wrong", NewPassword: "secret2"})
	assert.ErrorIs(t, err, employee.ErrWrongPassword)

	require.NoError(t, f.svc.ChangePassword(ctx, e.ID, ChangePasswordRequest{CurrentPassword: "secret1", NewPassword: "secret2"}))
	_, err = f.svc.Login(ctx, LoginRequest{Login: "cashier", Password: "secret2"})
	assert.NoError(t, err)
}

func TestService_Me_Deactivated(t *testing.T) {
	f := setup(t)
	e := f.createEmployee(t, "former", false)

	_, err := f.svc.Me(context.Background(), e.ID)
	assert.ErrorIs(t, err, ErrAccountDisabled)

	_, err = f.svc.Me(context.Background(), 999)
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestService_Statistics_DefaultsToMonth(t *testing.T) {
	f := setup(t)
	st := &rental.PeriodStats{TotalRentals: 4, TotalRevenue: decimal.NewFromInt(400)}
	f.rentals.On("Statistics", mock.Anything, int64(3), rental.PeriodMonth).Return(st, nil)
	f.rentals.On("RecentByEmployee", mock.Anything, int64(3), recentActivityLimit).Return([]rental.Rental{{ID: 9}}, nil)

	got, err := f.svc.Statistics(context.Background(), 3, "decade")
	require.NoError(t, err)
	assert.Equal(t, rental.PeriodMonth, got.Period)
	assert.Equal(t, int64(4), got.Rentals.TotalRentals)
	require.Len(t, got.RecentActivity, 1)
	f.rentals.AssertExpectations(t)
}

func TestHandler_Login(t *testing.T) {
	gin.SetMode(gin.TestMode)
	f := setup(t)
	f.createEmployee(t, "cashier", true)
	f.createEmployee(t, "former", false)

	r := gin.New()
	NewHandler(f.svc).RegisterPublicRoutes(r.Group("/api"))

	tests := []struct {
		name     string
		body     string
		wantCode int
		wantErr  string
	}{
		{"ok", `{"login":"cashier","password":"secret1"}`, http.StatusOK, ""},
		{"bad password", `{"login":"cashier","password":"nope"}`, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{"inactive", `{"login":"former","password":"secret1"}`, http.StatusForbidden, "ACCOUNT_DISABLED"},
		{"missing fields", `{"login":""}`, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"bad json", `{`, http.StatusBadRequest, "INVALID_JSON"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
			var body struct {
				Success bool `json:"success"`
				Data    struct {
					Token string `json:"token"`
				} `json:"data"`
				Error struct {
					Code string `json:"code"`
				} `json:"error"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			if tt.wantErr == "" {
				assert.True(t, body.Success)
				assert.NotEmpty(t, body.Data.Token)
				return
			}
			assert.Equal(t, tt.wantErr, body.Error.Code)
		})
	}
}
