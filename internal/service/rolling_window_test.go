package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/student-report-api/internal/models"
)

func TestRollingMonths(t *testing.T) {
	cases := []struct {
		name string
		now  time.Time
		want []models.YearMonth
	}{
		{
			name: "wraps into previous year",
			now:  time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC),
			want: []models.YearMonth{
				{Year: 2023, Month: time.October},
				{Year: 2023, Month: time.November},
				{Year: 2023, Month: time.December},
				{Year: 2024, Month: time.January},
				{Year: 2024, Month: time.February},
				{Year: 2024, Month: time.March},
			},
		},
		{
			name: "january",
			now:  time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
			want: []models.YearMonth{
				{Year: 2024, Month: time.August},
				{Year: 2024, Month: time.September},
				{Year: 2024, Month: time.October},
				{Year: 2024, Month: time.November},
				{Year: 2024, Month: time.December},
				{Year: 2025, Month: time.January},
			},
		},
		{
			name: "same year",
			now:  time.Date(2024, time.June, 30, 23, 59, 0, 0, time.UTC),
			want: []models.YearMonth{
				{Year: 2024, Month: time.January},
				{Year: 2024, Month: time.February},
				{Year: 2024, Month: time.March},
				{Year: 2024, Month: time.April},
				{Year: 2024, Month: time.May},
				{Year: 2024, Month: time.June},
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, RollingMonths(tc.now, analyticsWindowMonths))
		})
	}
}

func TestRollingMonthsClampsSize(t *testing.T) {
	now := time.Date(2024, time.May, 2, 0, 0, 0, 0, time.UTC)
	assert.Len(t, RollingMonths(now, 0), 1)
	assert.Len(t, RollingMonths(now, 40), 12)
	assert.Equal(t, models.YearMonth{Year: 2023, Month: time.June}, RollingMonths(now, 12)[0])
}

func TestWindowBounds(t *testing.T) {
	from, to := windowBounds(RollingMonths(time.Date(2024, time.December, 9, 0, 0, 0, 0, time.UTC), 6))
	assert.Equal(t, time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), to)
}
