package sale

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSale_TotalIsFrozen(t *testing.T) {
	s := NewSale(1, 3, 10.0)
	assert.Equal(t, uint(1), s.ProductID)
	assert.Equal(t, 3, s.Quantity)
	assert.Equal(t, 10.0, s.Price)
	assert.Equal(t, 30.0, s.Total)
}

func TestParseMonth(t *testing.T) {
	p, err := ParseMonth("2024-02")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), p.Start)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), p.End)
	assert.Equal(t, "2024-02", p.Label)

	// 12月跨年
	p, err = ParseMonth("2023-12")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), p.End)
}

func TestParseMonth_Errors(t *testing.T) {
	_, err := ParseMonth("")
	assert.ErrorIs(t, err, ErrMonthRequired)

	_, err = ParseMonth("2024-13")
	assert.ErrorIs(t, err, ErrInvalidMonth)

	_, err = ParseMonth("marzo")
	assert.ErrorIs(t, err, ErrInvalidMonth)
}

func TestParseDay(t *testing.T) {
	p, err := ParseDay("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), p.Start)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), p.End)

	_, err = ParseDay(" ")
	assert.ErrorIs(t, err, ErrDayRequired)

	_, err = ParseDay("2023-02-29")
	assert.ErrorIs(t, err, ErrInvalidDay)
}

func TestPeriodContains(t *testing.T) {
	p, err := ParseDay("2024-05-10")
	require.NoError(t, err)

	assert.True(t, p.Contains(time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)))
	assert.True(t, p.Contains(time.Date(2024, 5, 10, 23, 59, 59, 0, time.UTC)))
	assert.False(t, p.Contains(time.Date(2024, 5, 11, 0, 0, 0, 0, time.UTC)))
	assert.False(t, p.Contains(time.Date(2024, 5, 9, 23, 59, 59, 0, time.UTC)))
}
