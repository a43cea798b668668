package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeRange(t *testing.T) {
	r, err := NewTimeRange("14:00", 90)
	require.NoError(t, err)
	assert.Equal(t, TimeRange{Start: "14:00", End: "15:30"}, r)

	_, err = NewTimeRange("23:30", 60)
	assert.Error(t, err)
}

func TestTimeRange_Overlaps(t *testing.T) {
	base := TimeRange{Start: "10:00", End: "11:00"}

	tests := []struct {
		name  string
		other TimeRange
		want  bool
	}{
		{name: "identical", other: TimeRange{Start: "10:00", End: "11:00"}, want: true},
		{name: "partial overlap left", other: TimeRange{Start: "09:30", End: "10:30"}, want: true},
		{name: "partial overlap right", other: TimeRange{Start: "10:30", End: "11:30"}, want: true},
		{name: "fully inside", other: TimeRange{Start: "10:15", End: "10:45"}, want: true},
		{name: "fully contains", other: TimeRange{Start: "09:00", End: "12:00"}, want: true},
		{name: "back to back before", other: TimeRange{Start: "09:00", End: "10:00"}, want: false},
		{name: "back to back after", other: TimeRange{Start: "11:00", End: "12:00"}, want: false},
		{name: "disjoint", other: TimeRange{Start: "12:00", End: "13:00"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Overlaps(tt.other))
			assert.Equal(t, tt.want, tt.other.Overlaps(base))
		})
	}
}

func TestTimeRange_Contains(t *testing.T) {
	shift := TimeRange{Start: "09:00", End: "18:00"}

	assert.True(t, shift.Contains(TimeRange{Start: "09:00", End: "18:00"}))
	assert.True(t, shift.Contains(TimeRange{Start: "14:00", End: "16:30"}))
	assert.False(t, shift.Contains(TimeRange{Start: "08:30", End: "10:00"}))
	assert.False(t, shift.Contains(TimeRange{Start: "17:00", End: "18:30"}))
}

func TestTimeRange_IsValid(t *testing.T) {
	assert.True(t, TimeRange{Start: "09:00", End: "10:00"}.IsValid())
	assert.False(t, TimeRange{Start: "10:00", End: "10:00"}.IsValid())
	assert.False(t, TimeRange{Start: "11:00", End: "10:00"}.IsValid())
}
