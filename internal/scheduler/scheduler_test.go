package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"videorental/internal/config"
)

type MockOverdueMarker struct {
	mock.Mock
}

func (m *MockOverdueMarker) MarkOverdue(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

type MockAuditPurger struct {
	mock.Mock
}

func (m *MockAuditPurger) Purge(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func TestNew_RegistersConfiguredJobs(t *testing.T) {
	s, err := New(config.JobsConfig{
		OverdueSchedule:    "0 */15 * * * *",
		AuditPurgeSchedule: "0 30 3 * * *",
	}, &MockOverdueMarker{}, &MockAuditPurger{})
	require.NoError(t, err)
	assert.Equal(t, 2, s.Jobs())

	s, err = New(config.JobsConfig{OverdueSchedule: "0 */15 * * * *"}, &MockOverdueMarker{}, &MockAuditPurger{})
	require.NoError(t, err)
	assert.Equal(t, 1, s.Jobs())
}

func TestNew_InvalidSchedule(t *testing.T) {
	_, err := New(config.JobsConfig{OverdueSchedule: "every now and then"}, &MockOverdueMarker{}, &MockAuditPurger{})
	assert.Error(t, err)
}

func TestMarkOverdueRentals(t *testing.T) {
	now := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	overdue := &MockOverdueMarker{}
	overdue.On("MarkOverdue", mock.Anything, now).Return(int64(3), nil).Once()
	overdue.On("MarkOverdue", mock.Anything, now).Return(int64(0), errors.New("db down")).Once()

	s, err := New(config.JobsConfig{}, overdue, &MockAuditPurger{})
	require.NoError(t, err)
	s.now = func() time.Time { return now }

	s.MarkOverdueRentals()
	s.MarkOverdueRentals()
	overdue.AssertNumberOfCalls(t, "MarkOverdue", 2)
}

func TestPurgeAuditLog(t *testing.T) {
	purger := &MockAuditPurger{}
	purger.On("Purge", mock.Anything).Return(int64(12), nil)

	s, err := New(config.JobsConfig{}, &MockOverdueMarker{}, purger)
	require.NoError(t, err)
	s.PurgeAuditLog()
	purger.AssertExpectations(t)
}
