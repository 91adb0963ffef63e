package review_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vendor-management/internal/domain/review"
)

func TestFromRatings_SinResenas_PromedioNil(t *testing.T) {
	s := review.FromRatings(nil)
	assert.Equal(t, 0, s.Count)
	assert.Nil(t, s.Average)
	assert.False(t, s.Exact.Valid)
}

func TestFromRatings_345_Es4(t *testing.T) {
	s := review.FromRatings([]int{3, 4, 5})
	require.NotNil(t, s.Average)
	assert.Equal(t, 3, s.Count)
	assert.Equal(t, 4, *s.Average)
	assert.True(t, s.Exact.Decimal.Equal(decimal.NewFromInt(4)))
}

func TestFromRatings_RedondeoEmpateAPar(t *testing.T) {
	cases := []struct {
		ratings []int
		want    int
	}{
		{[]int{2, 3}, 2},    // 2.5
		{[]int{3, 4}, 4},    // 3.5
		{[]int{4, 4, 5}, 4}, // 4.33
		{[]int{4, 5, 5}, 5}, // 4.67
		{[]int{1}, 1},
	}
	for _, tc := range cases {
		s := review.FromRatings(tc.ratings)
		require.NotNil(t, s.Average)
		assert.Equal(t, tc.want, *s.Average, "%v", tc.ratings)
	}
}

func TestSummarize_AvgNuloConConteo(t *testing.T) {
	s := review.Summarize(0, decimal.NullDecimal{})
	assert.Nil(t, s.Average)

	s = review.Summarize(3, decimal.NullDecimal{})
	assert.Nil(t, s.Average, "AVG nulo no debe producir un promedio")
}

func TestSummarize_ExactoConDosDecimales(t *testing.T) {
	avg := decimal.RequireFromString("4.333333333")
	s := review.Summarize(3, decimal.NullDecimal{Decimal: avg, Valid: true})
	assert.Equal(t, "4.33", s.Exact.Decimal.StringFixed(2))
}
