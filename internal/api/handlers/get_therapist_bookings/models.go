package get_therapist_bookings

import (
	"time"

	"github.com/m04kA/TheraConnect-BookingService/internal/domain"
	"github.com/m04kA/TheraConnect-BookingService/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
func ToServiceRequest(userID int64, fromStr, toStr, statusStr string) (*models.GetTherapistBookingsRequest, error) {
	req := &models.GetTherapistBookingsRequest{UserID: userID}

	if fromStr != "" {
		from, err := time.Parse(domain.DateFormat, fromStr)
		if err != nil {
			return nil, err
		}
		req.StartDate = &from
	}

	if toStr != "" {
		to, err := time.Parse(domain.DateFormat, toStr)
		if err != nil {
			return nil, err
		}
		req.EndDate = &to
	}

	if statusStr != "" {
		req.Status = &statusStr
	}

	return req, nil
}
