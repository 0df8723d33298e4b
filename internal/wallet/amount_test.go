package wallet

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMinorToWei(t *testing.T) {
	cases := []struct {
		name  string
		minor int64
		want  string // wei（10進文字列）
	}{
		{name: "1セント", minor: 1, want: "10000000000000000"},
		{name: "1ドル", minor: 100, want: "1000000000000000000"},
		{name: "25.50", minor: 2550, want: "25500000000000000000"},
		{name: "端数あり", minor: 999, want: "9990000000000000000"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := MinorToWei(tc.minor)
			assert.NoError(t, err)

			want, ok := new(big.Int).SetString(tc.want, 10)
			assert.True(t, ok)
			assert.Equal(t, 0, got.Cmp(want))
		})
	}
}

func TestMinorToWei_RejectsNonPositive(t *testing.T) {
	_, err := MinorToWei(0)
	assert.Error(t, err)

	_, err = MinorToWei(-100)
	assert.Error(t, err)
}
