package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewItemID(t *testing.T) {
	seen := make(map[string]struct{})
	for range 100 {
		id := NewItemID()
		require.NotEmpty(t, id)
		_, dup := seen[id]
		require.False(t, dup, "ids must never repeat")
		seen[id] = struct{}{}
	}
}

func TestLineItemValidate(t *testing.T) {
	valid := LineItem{ID: NewItemID(), Name: "Latte", Price: 150}
	require.NoError(t, valid.Validate())

	noID := valid
	noID.ID = ""
	assert.ErrorIs(t, noID.Validate(), ErrEmptyID)

	negative := valid
	negative.Price = -1
	assert.ErrorIs(t, negative.Validate(), ErrNegativePrice)
}

func TestLineItemClone(t *testing.T) {
	orig := LineItem{ID: "ci-1", Name: "Mocha", Extras: []string{"Cinnamon"}, Price: 145}
	clone := orig.Clone()

	clone.Extras[0] = "Pearl Pop"
	assert.Equal(t, "Cinnamon", orig.Extras[0], "clone must not share backing array")
}

func TestDisplayName(t *testing.T) {
	base := Base{ID: "lat-01", Name: "Latte", Price: 130}

	tests := []struct {
		name   string
		custom string
		size   Size
		flavor string
		want   string
	}{
		{name: "custom name wins", custom: "My Drink", size: SizeLarge, flavor: "Mocha", want: "My Drink"},
		{name: "custom name trimmed", custom: "  My Drink  ", want: "My Drink"},
		{name: "derived full", size: SizeLarge, flavor: "Mocha", want: "Large Mocha Latte"},
		{name: "derived no flavor", size: SizeSmall, want: "Small Latte"},
		{name: "derived base only", want: "Latte"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DisplayName(tt.custom, tt.size, tt.flavor, base))
		})
	}
}
