package recurrence

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/simaogato/ledgerflow-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rentTemplate(base domain.Date) Template {
	return Template{
		Description: "Rent",
		Amount:      decimal.NewFromInt(800),
		Category:    domain.CategoryHousing,
		Owner:       domain.OwnerMine,
		BaseDate:    base,
	}
}

func dueDates(series *Series) []string {
	out := make([]string, 0, len(series.Drafts))
	for _, d := range series.Drafts {
		out = append(out, d.DueDate.String())
	}
	return out
}

func TestExpand_MonthEndClampsInLeapYear(t *testing.T) {
	series, err := Expand(rentTemplate(domain.MustParseDate("2024-01-31")), 3)
	require.NoError(t, err)

	assert.Equal(t, []string{"2024-01-31", "2024-02-29", "2024-03-31"}, dueDates(series))
}

func TestExpand_ClampIsComputedFromBaseDate(t *testing.T) {
	// A clamped February must not drag later months down to the 28th
	series, err := Expand(rentTemplate(domain.MustParseDate("2023-01-31")), 5)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"2023-01-31",
		"2023-02-28",
		"2023-03-31",
		"2023-04-30",
		"2023-05-31",
	}, dueDates(series))
}

func TestExpand_CrossesYearBoundary(t *testing.T) {
	series, err := Expand(rentTemplate(domain.MustParseDate("2024-11-15")), 4)
	require.NoError(t, err)

	assert.Equal(t, []string{"2024-11-15", "2024-12-15", "2025-01-15", "2025-02-15"}, dueDates(series))
}

func TestExpand_SharesOneSeriesID(t *testing.T) {
	tpl := rentTemplate(domain.MustParseDate("2024-05-01"))

	first, err := Expand(tpl, 6)
	require.NoError(t, err)
	second, err := Expand(tpl, 6)
	require.NoError(t, err)

	assert.Len(t, first.Drafts, 6)
	assert.NotEqual(t, uuid.Nil, first.SeriesID)
	assert.NotEqual(t, first.SeriesID, second.SeriesID, "each request gets a fresh series id")

	for _, d := range first.Drafts {
		assert.Equal(t, "Rent", d.Description)
		assert.True(t, decimal.NewFromInt(800).Equal(d.Amount))
		assert.Equal(t, domain.CategoryHousing, d.Category)
		assert.Equal(t, domain.OwnerMine, d.Owner)
	}
}

func TestExpand_SingleOccurrence(t *testing.T) {
	series, err := Expand(rentTemplate(domain.MustParseDate("2024-05-01")), 1)
	require.NoError(t, err)

	assert.Equal(t, []string{"2024-05-01"}, dueDates(series))
}

func TestExpand_RejectsInvalidInput(t *testing.T) {
	base := domain.MustParseDate("2024-05-01")

	tests := []struct {
		name   string
		tpl    Template
		n      int
		errMsg string
	}{
		{
			name:   "zero count",
			tpl:    rentTemplate(base),
			n:      0,
			errMsg: "invalid count: must be between 1 and 1200",
		},
		{
			name:   "negative count",
			tpl:    rentTemplate(base),
			n:      -3,
			errMsg: "invalid count: must be between 1 and 1200",
		},
		{
			name:   "too many occurrences",
			tpl:    rentTemplate(base),
			n:      MaxOccurrences + 1,
			errMsg: "invalid count: must be between 1 and 1200",
		},
		{
			name: "zero amount",
			tpl: func() Template {
				tpl := rentTemplate(base)
				tpl.Amount = decimal.Zero
				return tpl
			}(),
			n:      2,
			errMsg: "invalid amount: must be positive",
		},
		{
			name: "empty description",
			tpl: func() Template {
				tpl := rentTemplate(base)
				tpl.Description = ""
				return tpl
			}(),
			n:      2,
			errMsg: "invalid description: cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			series, err := Expand(tt.tpl, tt.n)
			assert.Nil(t, series)
			require.Error(t, err)
			assert.Equal(t, tt.errMsg, err.Error())

			var validationErr *domain.ValidationError
			assert.True(t, errors.As(err, &validationErr))
		})
	}
}

func TestAddMonths(t *testing.T) {
	tests := []struct {
		base string
		k    int
		want string
	}{
		{"2024-01-31", 1, "2024-02-29"},
		{"2023-01-31", 1, "2023-02-28"},
		{"2024-03-31", 1, "2024-04-30"},
		{"2024-08-31", 1, "2024-09-30"},
		{"2024-01-15", 12, "2025-01-15"},
		{"2024-02-29", 12, "2025-02-28"},
		{"2024-02-29", 48, "2028-02-29"},
		{"2024-03-31", -1, "2024-02-29"},
		{"2024-01-10", -1, "2023-12-10"},
		{"2024-06-30", 0, "2024-06-30"},
	}

	for _, tt := range tests {
		t.Run(tt.base, func(t *testing.T) {
			got := AddMonths(domain.MustParseDate(tt.base), tt.k)
			assert.Equal(t, tt.want, got.String())
		})
	}

	// Never a fixed-day increment
	assert.Equal(t, time.March, AddMonths(domain.MustParseDate("2024-02-01"), 1).Month())
}
