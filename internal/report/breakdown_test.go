package report

import (
	"testing"
	"time"

	"github.com/findash/findash/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func amt(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCategoryBreakdown(t *testing.T) {
	categories := []model.Category{
		{ID: 1, Name: "Food"},
		{ID: 2, Name: "Rent"},
		{ID: 3, Name: "Idle"},
	}
	expenses := []model.Expense{
		{ID: 100, CategoryID: 1, Amount: amt("30.00")},
		{ID: 101, CategoryID: 1, Amount: amt("20.00")},
		{ID: 102, CategoryID: 2, Amount: amt("50.00")},
	}

	b := CategoryBreakdown(expenses, categories)

	assert.True(t, b.Total.Equal(amt("100.00")))
	require.Len(t, b.Slices, 2, "categories without spending are omitted")

	assert.Equal(t, "Food", b.Slices[0].Name)
	assert.True(t, b.Slices[0].Total.Equal(amt("50.00")))
	assert.InDelta(t, 50.0, b.Slices[0].Percent, 0.001)
	assert.Equal(t, 2, b.Slices[0].Count)

	assert.Equal(t, "Rent", b.Slices[1].Name)
	assert.InDelta(t, 50.0, b.Slices[1].Percent, 0.001)
}

func TestCategoryBreakdown_DanglingReferencesGoToUnknownBucket(t *testing.T) {
	categories := []model.Category{{ID: 1, Name: "Food"}}
	expenses := []model.Expense{
		{ID: 100, CategoryID: 1, Amount: amt("75.00")},
		{ID: 101, CategoryID: 99, Amount: amt("25.00")},
	}

	b := CategoryBreakdown(expenses, categories)

	require.Len(t, b.Slices, 2)
	last := b.Slices[len(b.Slices)-1]
	assert.Equal(t, UnknownCategory, last.Name)
	assert.True(t, last.Total.Equal(amt("25.00")))
	assert.InDelta(t, 25.0, last.Percent, 0.001)
}

func TestCategoryBreakdown_Empty(t *testing.T) {
	b := CategoryBreakdown(nil, nil)
	assert.True(t, b.Total.IsZero())
	assert.Empty(t, b.Slices)
}

func TestExpenseSlices_FiltersCategoryAndInclusiveRange(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, 3, d, 12, 0, 0, 0, time.UTC) }
	expenses := []model.Expense{
		{ID: 1, CategoryID: 1, Amount: amt("10"), Date: day(1), Description: "coffee"},
		{ID: 2, CategoryID: 1, Amount: amt("20"), Date: day(5)},
		{ID: 3, CategoryID: 2, Amount: amt("30"), Date: day(5), Description: "other category"},
		{ID: 4, CategoryID: 1, Amount: amt("40"), Date: day(9), Description: "too late"},
	}

	start := day(1)
	end := day(5)
	slices := ExpenseSlices(expenses, 1, &start, &end)

	require.Len(t, slices, 2)
	assert.Equal(t, "coffee", slices[0].Label)
	assert.Equal(t, NoDescription, slices[1].Label)
	assert.True(t, SliceTotal(slices).Equal(amt("30")))
}

func TestExpenseSlices_NilBoundsMeanUnbounded(t *testing.T) {
	expenses := []model.Expense{
		{ID: 1, CategoryID: 1, Amount: amt("10"), Date: time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)},
		{ID: 2, CategoryID: 1, Amount: amt("20"), Date: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)},
	}

	slices := ExpenseSlices(expenses, 1, nil, nil)
	assert.Len(t, slices, 2)
}

func TestParseInputDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{name: "date only", input: "2024-03-05", want: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
		{name: "datetime-local", input: "2024-03-05T12:30", want: time.Date(2024, 3, 5, 12, 30, 0, 0, time.UTC)},
		{name: "rfc3339", input: "2024-03-05T12:30:00Z", want: time.Date(2024, 3, 5, 12, 30, 0, 0, time.UTC)},
		{name: "garbage", input: "half past three", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseInputDate(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got))
		})
	}
}

func TestFormatDates(t *testing.T) {
	ts := time.Date(2024, 3, 5, 14, 45, 0, 0, time.UTC)
	assert.Equal(t, "03/05/2024 02:45 PM", FormatDateUS(ts))
	assert.Equal(t, "03/05/2024", FormatDateShortUS(ts))
}

func TestFormatUSD(t *testing.T) {
	assert.Equal(t, "$12.50", FormatUSD(amt("12.5")))
	assert.Equal(t, "$1,234.56", FormatUSD(amt("1234.56")))
	assert.Equal(t, "$1,234,567.00", FormatUSD(amt("1234567")))
	assert.Equal(t, "-$0.99", FormatUSD(amt("-0.99")))
}
