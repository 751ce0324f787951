package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestItemFilter_Match(t *testing.T) {
	item := &Item{
		Title:       "Vintage Road Bike",
		Description: "Steel frame, needs new tires",
		Category:    "Sports",
		Condition:   ConditionFair,
	}

	tests := []struct {
		name   string
		filter ItemFilter
		want   bool
	}{
		{name: "empty filter matches", filter: ItemFilter{}, want: true},
		{name: "term in title, case-insensitive", filter: ItemFilter{Term: "road bike"}, want: true},
		{name: "term in description", filter: ItemFilter{Term: "TIRES"}, want: true},
		{name: "term absent", filter: ItemFilter{Term: "sofa"}, want: false},
		{name: "category match", filter: ItemFilter{Category: "Sports"}, want: true},
		{name: "category mismatch", filter: ItemFilter{Category: "Books"}, want: false},
		{name: "condition match", filter: ItemFilter{Condition: ConditionFair}, want: true},
		{name: "condition mismatch", filter: ItemFilter{Condition: ConditionNew}, want: false},
		{
			name:   "all predicates must hold",
			filter: ItemFilter{Term: "bike", Category: "Sports", Condition: ConditionNew},
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Match(item))
		})
	}
}

func TestItemFilter_Match_NilItem(t *testing.T) {
	assert.False(t, ItemFilter{}.Match(nil))
}

func TestFilterItems_PreservesOrder(t *testing.T) {
	first := &Item{ID: uuid.New(), Title: "Bike pump", Category: "Sports"}
	second := &Item{ID: uuid.New(), Title: "Cookbook", Category: "Books"}
	third := &Item{ID: uuid.New(), Title: "Bike helmet", Category: "Sports"}

	filtered := FilterItems([]*Item{first, second, third}, ItemFilter{Term: "bike"})

	assert.Equal(t, []*Item{first, third}, filtered)
}

func TestFilterItems_EmptyInput(t *testing.T) {
	filtered := FilterItems(nil, ItemFilter{Term: "anything"})

	assert.NotNil(t, filtered)
	assert.Empty(t, filtered)
}

func TestCondition_Valid(t *testing.T) {
	for _, c := range Conditions {
		assert.True(t, c.Valid(), "condition %q", c)
	}
	assert.False(t, Condition("").Valid())
	assert.False(t, Condition("mint").Valid())
}
