package analytics_test

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/moneymanager/internal/analytics"
)

func date(s string) *time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}

	return &t
}

func TestResolveLength(t *testing.T) {
	type args struct {
		window analytics.Window
		first  *time.Time
		last   *time.Time
		now    time.Time
	}

	type testCase struct {
		name    string
		args    args
		want    int
		wantErr bool
	}

	now := time.Date(2024, 3, 10, 15, 30, 0, 0, time.UTC)

	tests := []testCase{
		{
			name: "BothBounds",
			args: args{window: analytics.Window{From: date("2024-01-01"), To: date("2024-01-03")}, now: now},
			want: 3,
		},
		{
			name: "SingleDay",
			args: args{window: analytics.Window{From: date("2024-01-01"), To: date("2024-01-01")}, now: now},
			want: 1,
		},
		{
			name: "BothBoundsIgnoreExtent",
			args: args{
				window: analytics.Window{From: date("2024-01-01"), To: date("2024-01-31")},
				first:  date("2024-01-10"),
				last:   date("2024-01-12"),
				now:    now,
			},
			want: 31,
		},
		{
			name: "FromUntilLastTransaction",
			args: args{window: analytics.Window{From: date("2024-03-01")}, last: date("2024-03-05"), now: now},
			want: 5,
		},
		{
			name: "FromUntilNow",
			args: args{window: analytics.Window{From: date("2024-03-01")}, now: now},
			want: 10,
		},
		{
			name: "ToFromFirstTransaction",
			args: args{window: analytics.Window{To: date("2024-02-29")}, first: date("2024-02-01"), now: now},
			want: 29,
		},
		{
			name: "CenturiesApart",
			args: args{window: analytics.Window{From: date("1700-01-01"), To: date("2024-01-01")}, now: now},
			want: 118342,
		},
		{
			name: "WholeCalendar",
			args: args{window: analytics.Window{From: date("0001-01-01"), To: date("9999-12-31")}, now: now},
			want: 3652059,
		},
		{
			name: "ToFromEpochFloor",
			args: args{window: analytics.Window{To: date("1970-01-10")}, now: now},
			want: 10,
		},
		{
			name: "NoBounds",
			args: args{now: now, first: date("2020-01-01"), last: date("2024-01-01")},
			want: analytics.DefaultWindowDays,
		},
		{
			name:    "Inverted",
			args:    args{window: analytics.Window{From: date("2024-01-05"), To: date("2024-01-01")}, now: now},
			wantErr: true,
		},
		{
			name:    "FromAfterNow",
			args:    args{window: analytics.Window{From: date("2024-04-01")}, now: now},
			wantErr: true,
		},
		{
			name:    "FromAfterLastTransaction",
			args:    args{window: analytics.Window{From: date("2024-03-01")}, last: date("2024-02-20"), now: now},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := analytics.ResolveLength(tt.args.window, tt.args.first, tt.args.last, tt.args.now)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, analytics.IsValidation(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			again, err := analytics.ResolveLength(tt.args.window, tt.args.first, tt.args.last, tt.args.now)
			require.NoError(t, err)
			assert.Equal(t, got, again)
		})
	}
}

func TestResolveLength_IgnoresTimeOfDay(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	from := time.Date(2024, 3, 9, 23, 59, 0, 0, ny)
	to := time.Date(2024, 3, 11, 0, 1, 0, 0, ny) // spans the DST switch

	got, err := analytics.ResolveLength(analytics.Between(from, to), nil, nil, to)
	require.NoError(t, err)
	assert.Equal(t, 3, got)
}

func TestWindow_Validate(t *testing.T) {
	_, err := analytics.NewWindow(date("2024-02-01"), date("2024-01-01"))
	require.Error(t, err)

	var verr *analytics.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "invalid date range: 'from_date' must be before 'to_date'", verr.Error())

	w, err := analytics.NewWindow(nil, date("2024-01-01"))
	require.NoError(t, err)
	assert.Nil(t, w.From)
}

func TestWindow_Contains(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	w := analytics.Window{From: date("2024-01-01"), To: date("2024-01-01")}

	assert.True(t, w.Contains(time.Date(2024, 1, 1, 0, 0, 0, 0, ny), ny))
	assert.True(t, w.Contains(time.Date(2024, 1, 1, 23, 59, 59, 999999000, ny), ny))
	assert.False(t, w.Contains(time.Date(2024, 1, 2, 0, 0, 0, 0, ny), ny))
	assert.False(t, w.Contains(time.Date(2023, 12, 31, 23, 59, 59, 0, ny), ny))

	// 03:00 UTC on Jan 2 is still Jan 1 in New York.
	assert.True(t, w.Contains(time.Date(2024, 1, 2, 3, 0, 0, 0, time.UTC), ny))

	assert.True(t, analytics.Window{}.Contains(time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC), ny))
}

func TestDateRangeText(t *testing.T) {
	tests := []struct {
		name   string
		window analytics.Window
		want   string
	}{
		{"Single", analytics.Window{From: date("2024-01-01"), To: date("2024-01-01")}, "Date: 2024-01-01"},
		{"Range", analytics.Window{From: date("2024-01-01"), To: date("2024-01-31")}, "Date Range: 2024-01-01 to 2024-01-31"},
		{"FromOnly", analytics.Window{From: date("2024-01-01")}, "Date Range: From 2024-01-01"},
		{"ToOnly", analytics.Window{To: date("2024-01-31")}, "Date Range: To 2024-01-31"},
		{"All", analytics.Window{}, "Date Range: All"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, analytics.DateRangeText(tt.window))
		})
	}
}
