//go:build unit

package money_test

import (
	"testing"

	"sublet-booking/internal/pkg/money"

	"github.com/stretchr/testify/assert"
)

func TestDivRound(t *testing.T) {
	cases := []struct {
		name string
		n, d int64
		want int64
	}{
		{name: "exact", n: 90000, d: 30, want: 3000},
		{name: "below half", n: 100001, d: 30, want: 3333},
		{name: "exact half rounds up", n: 15, d: 10, want: 2},
		{name: "exact half negative rounds away", n: -15, d: 10, want: -2},
		{name: "odd divisor", n: 1, d: 3, want: 0},
		{name: "odd divisor above half", n: 2, d: 3, want: 1},
		{name: "zero", n: 0, d: 7, want: 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, money.DivRound(tc.n, tc.d))
		})
	}
}

func TestPercent(t *testing.T) {
	assert.Equal(t, int64(4200), money.Percent(42000, 10))
	assert.Equal(t, int64(1), money.Percent(5, 10))
	assert.Equal(t, int64(0), money.Percent(4, 10))
	assert.Equal(t, int64(0), money.Percent(1000, 0))
}
