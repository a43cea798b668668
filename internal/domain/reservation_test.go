package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from ReservationStatus
		to   ReservationStatus
		want bool
	}{
		{from: StatusConfirmed, to: StatusCompleted, want: true},
		{from: StatusConfirmed, to: StatusCancelled, want: true},
		{from: StatusConfirmed, to: StatusNoShow, want: true},
		{from: StatusConfirmed, to: StatusConfirmed, want: false},
		{from: StatusCancelled, to: StatusConfirmed, want: true},
		{from: StatusCancelled, to: StatusCompleted, want: false},
		{from: StatusNoShow, to: StatusConfirmed, want: true},
		{from: StatusNoShow, to: StatusCancelled, want: false},
		{from: StatusCompleted, to: StatusConfirmed, want: false},
		{from: StatusCompleted, to: StatusCancelled, want: false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestParseReservationStatus(t *testing.T) {
	status, ok := ParseReservationStatus("confirmed")
	assert.True(t, ok)
	assert.Equal(t, StatusConfirmed, status)

	_, ok = ParseReservationStatus("unknown")
	assert.False(t, ok)

	_, ok = ParseReservationStatus("")
	assert.False(t, ok)
}

func TestReservation_CountsForConflict(t *testing.T) {
	confirmed := Reservation{Status: StatusConfirmed}
	assert.True(t, confirmed.CountsForConflict())

	for _, status := range []ReservationStatus{StatusCancelled, StatusNoShow, StatusCompleted} {
		r := Reservation{Status: status}
		assert.False(t, r.CountsForConflict(), "status %s", status)
	}
}

func TestReservation_Window(t *testing.T) {
	r := Reservation{StartTime: "14:00", EndTime: "16:30"}
	assert.Equal(t, TimeRange{Start: "14:00", End: "16:30"}, r.Window())
}
