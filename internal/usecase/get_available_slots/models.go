package get_available_slots

import (
	"time"

	"github.com/m04kA/TheraConnect-BookingService/pkg/types"
)

// Request модель запроса на получение слотов терапевта
type Request struct {
	TherapistID int64     // ID терапевта
	Date        time.Time // Дата (без времени)
}

// Response модель ответа со списком слотов
type Response struct {
	TherapistID int64
	Date        time.Time
	Slots       []Slot
}

// Slot модель временного слота
type Slot struct {
	StartTime       types.TimeString // Время начала слота (например, "10:00")
	DurationMinutes int              // Длительность слота в минутах
	Available       bool             // Слот свободен
}
