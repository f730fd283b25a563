package money_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tkay6677/lunchpay/internal/money"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    money.Cents
		wantErr error
	}{
		{name: "whole dollars", input: "45", want: 4500},
		{name: "dollars and cents", input: "15.50", want: 1550},
		{name: "single cent", input: "0.01", want: 1},
		{name: "zero", input: "0", want: 0},
		{name: "negative rejected", input: "-5.00", wantErr: money.ErrNegativeAmount},
		{name: "sub-cent precision rejected", input: "1.005", wantErr: money.ErrInvalidAmount},
		{name: "garbage rejected", input: "lunch", wantErr: money.ErrInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := money.Parse(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCents_String(t *testing.T) {
	assert.Equal(t, "$45.00", money.FromDollars(45, 0).String())
	assert.Equal(t, "$15.50", money.FromDollars(15, 50).String())
	assert.Equal(t, "$0.00", money.Cents(0).String())
}

func TestCents_JSON(t *testing.T) {
	data, err := json.Marshal(money.FromDollars(85, 0))
	require.NoError(t, err)
	assert.Equal(t, `"85.00"`, string(data))

	var c money.Cents
	require.NoError(t, json.Unmarshal([]byte(`"25.00"`), &c))
	assert.Equal(t, money.FromDollars(25, 0), c)

	assert.Error(t, json.Unmarshal([]byte(`"-1.00"`), &c))
}
