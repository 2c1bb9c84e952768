package infra

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompareOrderedKey(t *testing.T) {
	testcases := []struct {
		name string
		i, j int
		want int64
	}{
		{"equal", 5, 5, 0},
		{"less", 3, 5, -1},
		{"greater", 8, 5, 1},
		{"negative", -8, -5, -1},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			require.Equal(tt, tc.want, CompareOrderedKey(tc.i, tc.j))
		})
	}

	require.Equal(t, int64(-1), CompareOrderedKey("abc", "abd"))
	require.Equal(t, int64(1), CompareOrderedKey(2.5, 2.25))
}
