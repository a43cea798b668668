package list_reservations

import (
	"context"

	"github.com/hikari-salon/reservation-service/internal/service/reservations/models"
)

type ReservationService interface {
	GetReservations(ctx context.Context, req *models.GetReservationsRequest) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
