package booking

import (
	"github.com/m04kA/TheraConnect-BookingService/pkg/dbmetrics"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
// Поддерживает *sql.DB, *sql.Tx и *dbmetrics.DB
type DBExecutor = dbmetrics.DBExecutor
