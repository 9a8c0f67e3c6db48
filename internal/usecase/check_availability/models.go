package check_availability

import (
	"time"

	"github.com/m04kA/TheraConnect-BookingService/pkg/types"
)

// Request модель запроса проверки слота
type Request struct {
	TherapistID int64
	Date        time.Time
	StartTime   types.TimeString
}

// Response результат проверки
type Response struct {
	TherapistID int64
	Date        time.Time
	StartTime   types.TimeString
	Available   bool
}
