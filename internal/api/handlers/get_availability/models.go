package get_availability

import (
	"strconv"
	"strings"
	"time"

	"github.com/hikari-salon/reservation-service/internal/domain"
	getAvailability "github.com/hikari-salon/reservation-service/internal/usecase/get_availability"
)

// ToUseCaseRequest собирает модель use case из query параметров
func ToUseCaseRequest(dateStr, menuIDsStr, staffIDStr string) (*getAvailability.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	menuIDs, err := parseMenuIDs(menuIDsStr)
	if err != nil {
		return nil, err
	}

	req := &getAvailability.Request{
		Date:    date,
		MenuIDs: menuIDs,
	}

	if staffIDStr != "" {
		staffID, err := strconv.ParseInt(staffIDStr, 10, 64)
		if err != nil {
			return nil, err
		}
		req.StaffID = &staffID
	}

	return req, nil
}

// parseMenuIDs разбирает список ID услуг из "1,2,3"
func parseMenuIDs(s string) ([]int64, error) {
	parts := strings.Split(s, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
