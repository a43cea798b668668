package domain

import "github.com/hikari-salon/reservation-service/pkg/types"

// Slot кандидат на время начала визита на сетке доступности
type Slot struct {
	Time      types.TimeString
	Available bool
	StaffID   *int64 // мастер, способный принять визит в это время (если слот доступен)
}
