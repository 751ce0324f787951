package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeDashboardStats(t *testing.T) {
	items := []*Item{
		{IsAvailable: true},
		{IsAvailable: false},
		{IsAvailable: true},
		{IsAvailable: false},
		{IsAvailable: false},
	}

	stats := ComputeDashboardStats(items)

	assert.Equal(t, 5, stats.TotalItems)
	assert.Equal(t, 2, stats.AvailableItems)
	assert.Equal(t, 3, stats.ClaimedItems)
}

func TestComputeDashboardStats_Empty(t *testing.T) {
	stats := ComputeDashboardStats(nil)

	assert.Equal(t, DashboardStats{}, stats)
}
