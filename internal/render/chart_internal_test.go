package render

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFitBars(t *testing.T) {
	tests := []struct {
		name                    string
		n, canvas, width, space int
		wantWidth, wantSpacing  int
	}{
		{name: "Fits", n: 3, canvas: 300, width: 80, space: 20, wantWidth: 80, wantSpacing: 20},
		{name: "ShrinksSpacing", n: 4, canvas: 300, width: 60, space: 30, wantWidth: 60, wantSpacing: 15},
		{name: "ShrinksWidth", n: 5, canvas: 300, width: 80, space: 20, wantWidth: 60, wantSpacing: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, s := fitBars(tt.n, tt.canvas, tt.width, tt.space)
			assert.Equal(t, tt.wantWidth, w)
			assert.Equal(t, tt.wantSpacing, s)
		})
	}
}

func TestRenderBars_WithValueLabels(t *testing.T) {
	data, err := renderBars("Spend", []bar{
		{label: "Food", value: decimal.RequireFromString("1234.5"), color: skyBlue},
		{label: "Gifts", value: decimal.Zero, color: skyBlue},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}
