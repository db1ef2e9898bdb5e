package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCondition_WorseThan(t *testing.T) {
	assert.True(t, ConditionPoor.WorseThan(ConditionGood))
	assert.True(t, ConditionFair.WorseThan(ConditionExcellent))
	assert.False(t, ConditionGood.WorseThan(ConditionGood))
	assert.False(t, ConditionExcellent.WorseThan(ConditionPoor))
	assert.False(t, Condition("broken").WorseThan(ConditionGood))
}

func TestParseCondition(t *testing.T) {
	c, ok := ParseCondition(" Poor ")
	assert.True(t, ok)
	assert.Equal(t, ConditionPoor, c)

	_, ok = ParseCondition("mint")
	assert.False(t, ok)
}

func TestRentalStatus_Live(t *testing.T) {
	assert.True(t, RentalActive.Live())
	assert.True(t, RentalOverdue.Live())
	assert.False(t, RentalReturned.Live())
	assert.False(t, RentalCancelled.Live())
	assert.False(t, RentalStatus("lost").Valid())
}

func TestEffectiveStatus(t *testing.T) {
	planned := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, RentalActive, EffectiveStatus(RentalActive, planned, planned))
	assert.Equal(t, RentalOverdue, EffectiveStatus(RentalActive, planned, planned.Add(time.Millisecond)))
	assert.Equal(t, RentalReturned, EffectiveStatus(RentalReturned, planned, planned.Add(72*time.Hour)))
	assert.Equal(t, RentalOverdue, EffectiveStatus(RentalOverdue, planned, planned.Add(-time.Hour)))
}
