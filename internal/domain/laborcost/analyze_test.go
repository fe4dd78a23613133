package laborcost

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestToCents(t *testing.T) {
	cases := []struct {
		input string
		want  int64
	}{
		{"1000000.00", 100_000_000},
		{"250000.00", 25_000_000},
		{"0", 0},
		{"0.01", 1},
		{"99.99", 9999},
		{"10.005", 1001}, // rounds half away from zero
	}
	for _, c := range cases {
		d, err := decimal.NewFromString(c.input)
		assert.NoError(t, err)
		assert.Equal(t, c.want, ToCents(d), "ToCents(%s)", c.input)
	}
}

func TestComputePercentage(t *testing.T) {
	cases := []struct {
		name       string
		salesCents int64
		laborCents int64
		want       int64
	}{
		{"quarter of sales", 100_000_000, 25_000_000, 2500},
		{"thirty percent exactly", 100_000_000, 30_000_000, 3000},
		{"rounds to nearest", 300, 100, 3333}, // 33.333...%
		{"zero sales zero labor", 0, 0, 0},
		{"zero sales with labor", 0, 5_000, 1_000_000},
		{"labor exceeds sales", 1_000, 2_000, 20_000},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, ComputePercentage(c.salesCents, c.laborCents))
		})
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		percentage int64
		status     string
		rating     string
	}{
		{0, StatusExcellent, RatingGood},
		{2500, StatusExcellent, RatingGood},
		{2999, StatusExcellent, RatingGood},
		{3000, StatusHigh, RatingGood}, // strict <, boundary tips over
		{3499, StatusHigh, RatingGood},
		{3500, StatusHigh, RatingWarning},
		{4499, StatusHigh, RatingWarning},
		{4500, StatusPoor, RatingWarning},
		{4999, StatusPoor, RatingWarning},
		{5000, StatusPoor, RatingCritical},
		{1_000_000, StatusPoor, RatingCritical},
	}
	for _, c := range cases {
		status, rating := Classify(c.percentage)
		assert.Equal(t, c.status, status, "Classify(%d) status", c.percentage)
		assert.Equal(t, c.rating, rating, "Classify(%d) rating", c.percentage)
	}
}

func TestFormatPercentage(t *testing.T) {
	assert.Equal(t, "25.0%", FormatPercentage(2500))
	assert.Equal(t, "33.3%", FormatPercentage(3333))
	assert.Equal(t, "0.0%", FormatPercentage(0))
	assert.Equal(t, "10000.0%", FormatPercentage(1_000_000))
}
