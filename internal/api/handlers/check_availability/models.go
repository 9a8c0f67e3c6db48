package check_availability

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/TheraConnect-BookingService/internal/domain"
	checkAvailability "github.com/m04kA/TheraConnect-BookingService/internal/usecase/check_availability"
	"github.com/m04kA/TheraConnect-BookingService/pkg/types"
)

var (
	errInvalidDate = errors.New("invalid date")
	errInvalidTime = errors.New("invalid time")
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	TherapistID int64  `json:"therapistId"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Available   bool   `json:"available"`
}

// ToUseCaseRequest парсит query параметры
func ToUseCaseRequest(therapistID int64, dateStr, timeStr string) (*checkAvailability.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidDate, err)
	}

	startTime, err := types.NewTimeStringFromString(timeStr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidTime, err)
	}

	return &checkAvailability.Request{
		TherapistID: therapistID,
		Date:        date,
		StartTime:   startTime,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkAvailability.Response) *AvailabilityResponse {
	return &AvailabilityResponse{
		TherapistID: resp.TherapistID,
		Date:        resp.Date.Format(domain.DateFormat),
		Time:        resp.StartTime.String(),
		Available:   resp.Available,
	}
}
