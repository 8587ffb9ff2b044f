package fine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var due = time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC)

func TestCompute_OnTime(t *testing.T) {
	amount, days := Compute(due, due, 5)
	assert.Equal(t, 0.0, amount)
	assert.Equal(t, 0, days)
}

func TestCompute_EarlyReturn(t *testing.T) {
	amount, days := Compute(due, due.Add(-48*time.Hour), 5)
	assert.Equal(t, 0.0, amount)
	assert.Equal(t, 0, days)
}

func TestCompute_OneSecondLateIsOneDay(t *testing.T) {
	amount, days := Compute(due, due.Add(time.Second), 5)
	assert.Equal(t, 5.0, amount)
	assert.Equal(t, 1, days)
}

func TestCompute_ExactDayBoundary(t *testing.T) {
	// Exactly 24h late is one day, not two.
	amount, days := Compute(due, due.Add(24*time.Hour), 5)
	assert.Equal(t, 5.0, amount)
	assert.Equal(t, 1, days)
}

func TestCompute_SevenDaysOneSecond(t *testing.T) {
	amount, days := Compute(due, due.Add(7*24*time.Hour+time.Second), 5)
	assert.Equal(t, 40.0, amount)
	assert.Equal(t, 8, days)
}

func TestCompute_TwoWholeDays(t *testing.T) {
	amount, days := Compute(due, due.Add(48*time.Hour), 5)
	assert.Equal(t, 10.0, amount)
	assert.Equal(t, 2, days)
}

func TestCompute_RateIsParameter(t *testing.T) {
	amount, days := Compute(due, due.Add(3*24*time.Hour), 2.5)
	assert.Equal(t, 7.5, amount)
	assert.Equal(t, 3, days)
}

func TestCompute_NoCap(t *testing.T) {
	amount, days := Compute(due, due.Add(365*24*time.Hour), 5)
	assert.Equal(t, 365, days)
	assert.Equal(t, 1825.0, amount)
}
